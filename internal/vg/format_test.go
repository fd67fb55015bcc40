package vg

import (
	"encoding/binary"
	"testing"
)

func TestDetect(t *testing.T) {
	rev1 := make([]byte, 16)
	binary.LittleEndian.PutUint32(rev1, Magic)
	binary.LittleEndian.PutUint32(rev1[4:], 1)
	if got := Detect(rev1); got != KindRev1 {
		t.Fatalf("rev1 detected as %v", got)
	}

	rev2 := make([]byte, 16)
	binary.LittleEndian.PutUint32(rev2, Magic)
	binary.LittleEndian.PutUint32(rev2[4:], 3)
	if got := Detect(rev2); got != KindRev2 {
		t.Fatalf("rev2 detected as %v", got)
	}

	// Rev4 has no magic: a plausible LOD count and a non-zero LOD mask.
	rev4 := make([]byte, 16)
	rev4[1] = 2    // lod count
	rev4[3] = 0x03 // lod map
	if got := Detect(rev4); got != KindRev4 {
		t.Fatalf("rev4 detected as %v", got)
	}

	zero := make([]byte, 16)
	if got := Detect(zero); got != KindUnknown {
		t.Fatalf("zero buffer detected as %v", got)
	}

	tooManyLODs := make([]byte, 16)
	tooManyLODs[1] = 9
	tooManyLODs[3] = 1
	if got := Detect(tooManyLODs); got != KindUnknown {
		t.Fatalf("implausible LOD count detected as %v", got)
	}

	if got := Detect([]byte{1, 2, 3}); got != KindUnknown {
		t.Fatalf("short buffer detected as %v", got)
	}
}

func TestRecordSizes(t *testing.T) {
	// The rev1 layout is fixed by the runtime that streams it.
	if HeaderV1Size != 224 {
		t.Fatalf("rev1 header size = %d", HeaderV1Size)
	}
	if MeshV1Size != 72 {
		t.Fatalf("rev1 mesh size = %d", MeshV1Size)
	}
	if LODV1Size != 8 {
		t.Fatalf("rev1 LOD size = %d", LODV1Size)
	}
	if StripV1Size != 35 {
		t.Fatalf("rev1 strip size = %d", StripV1Size)
	}
}
