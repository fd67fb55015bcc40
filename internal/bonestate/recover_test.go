package bonestate

import (
	"bytes"
	"testing"
)

// fill returns a buffer whose every byte fails validRun for small bone
// counts, so only deliberately planted runs qualify.
func fill(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = 0xEE
	}
	return b
}

func plantHeader(data []byte, off int) {
	hdr := data[off-16 : off]
	hdr[0] = 2
	hdr[4], hdr[8], hdr[12], hdr[15] = 0, 0, 0, 0
}

func TestRecoverHeaderValidatedScan(t *testing.T) {
	data := fill(0x1400)
	run := []byte{3, 0, 1, 2}
	off := len(data) - 0x80
	copy(data[off:], run)
	plantHeader(data, off)

	got, conf := Recover(data, len(run), 8, 0)
	if conf != HeaderValidatedScan {
		t.Fatalf("confidence = %v, want header-validated scan", conf)
	}
	if !bytes.Equal(got, run) {
		t.Fatalf("table = %v, want %v", got, run)
	}
}

func TestRecoverPrefersValidatedOverBareRun(t *testing.T) {
	data := fill(0x1400)

	// A bare run later in the file, and a header-validated one before it.
	decoy := []byte{0, 1, 2, 3}
	copy(data[len(data)-0x20:], decoy)

	run := []byte{3, 0, 1, 2}
	off := len(data) - 0x200
	copy(data[off:], run)
	plantHeader(data, off)

	got, conf := Recover(data, len(run), 8, 0)
	if conf != HeaderValidatedScan {
		t.Fatalf("confidence = %v, want header-validated scan", conf)
	}
	if !bytes.Equal(got, run) {
		t.Fatalf("table = %v, want %v", got, run)
	}
}

func TestRecoverUnvalidatedScan(t *testing.T) {
	data := fill(0x1400)
	run := []byte{2, 1, 0}
	copy(data[0x1100:], run)

	got, conf := Recover(data, len(run), 4, 0)
	if conf != UnvalidatedScan {
		t.Fatalf("confidence = %v, want unvalidated scan", conf)
	}
	if !bytes.Equal(got, run) {
		t.Fatalf("table = %v, want %v", got, run)
	}
}

func TestRecoverDeclaredOffset(t *testing.T) {
	data := fill(0x1400)
	// Below the scan floor, so only the declared offset can find it.
	run := []byte{1, 0, 2}
	copy(data[0x800:], run)

	got, conf := Recover(data, len(run), 4, 0x800)
	if conf != DeclaredOffset {
		t.Fatalf("confidence = %v, want declared offset", conf)
	}
	if !bytes.Equal(got, run) {
		t.Fatalf("table = %v, want %v", got, run)
	}
}

func TestRecoverIdentityFallback(t *testing.T) {
	data := fill(0x1400)

	got, conf := Recover(data, 4, 4, 0)
	if conf != IdentityFallback {
		t.Fatalf("confidence = %v, want identity fallback", conf)
	}
	if !bytes.Equal(got, []byte{0, 1, 2, 3}) {
		t.Fatalf("table = %v", got)
	}
}

func TestRecoverRejectsDuplicatesAndOutOfRange(t *testing.T) {
	data := fill(0x1400)
	copy(data[0x1100:], []byte{1, 1, 0})  // duplicate entry
	copy(data[0x1200:], []byte{0, 1, 99}) // names a missing bone

	_, conf := Recover(data, 3, 4, 0)
	if conf != IdentityFallback {
		t.Fatalf("confidence = %v, want identity fallback", conf)
	}
}

func TestConfidenceOrdering(t *testing.T) {
	if !(IdentityFallback < DeclaredOffset && DeclaredOffset < UnvalidatedScan && UnvalidatedScan < HeaderValidatedScan) {
		t.Fatalf("confidence levels out of order")
	}
}
