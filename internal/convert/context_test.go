package convert

import (
	"testing"

	"github.com/CafeFPS/rmdlconv/internal/rmem"
)

func TestContextOffsetResolution(t *testing.T) {
	src := make([]byte, 64)

	abs := newContext(src, rmem.AbsoluteFromHeader, nil)
	if got := abs.resolve(40); got != 40 {
		t.Fatalf("absolute resolve(40) = %d", got)
	}
	if got := abs.resolve(0); got != 0 {
		t.Fatalf("absolute resolve(0) = %d", got)
	}

	rel := newContext(src, rmem.RelativeToStruct, nil)
	if got := rel.resolve(40); got != 40 {
		t.Fatalf("relative resolve(40) = %d", got)
	}

	// Record sub-data is record relative under either convention, and a
	// stored zero still means absent.
	for _, c := range []*Context{abs, rel} {
		if got := c.resolveFrom(100, 8); got != 108 {
			t.Fatalf("resolveFrom(100, 8) = %d", got)
		}
		if got := c.resolveFrom(100, 0); got != 0 {
			t.Fatalf("resolveFrom(100, 0) = %d", got)
		}
	}
}
