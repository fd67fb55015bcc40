package phy

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/CafeFPS/rmdlconv/internal/studio"
)

func TestConvert(t *testing.T) {
	body := []byte("solid data\x00kv text\x00")
	src := make([]byte, 4+len(body))
	binary.LittleEndian.PutUint16(src, 1)     // version
	binary.LittleEndian.PutUint16(src[2:], 8) // key values offset
	copy(src[4:], body)

	out, err := Convert(src, 0x1234)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(out) != HeaderSize+len(body) {
		t.Fatalf("output size = %d, want %d", len(out), HeaderSize+len(body))
	}

	var hdr Header
	if _, err := binary.Decode(out, binary.LittleEndian, &hdr); err != nil {
		t.Fatalf("decode header: %v", err)
	}
	if hdr.Size != int32(HeaderSize) || hdr.ID != 1 || hdr.SolidCount != 1 {
		t.Fatalf("header = %+v", hdr)
	}
	if hdr.Checksum != 0x1234 {
		t.Fatalf("checksum = 0x%X", hdr.Checksum)
	}
	// The text block shifts by the header growth: 20 - 4 bytes.
	if hdr.KeyValuesOffset != 8+16 {
		t.Fatalf("key values offset = %d", hdr.KeyValuesOffset)
	}
	if !bytes.Equal(out[HeaderSize:], body) {
		t.Fatalf("body not copied verbatim")
	}
}

func TestConvertRejectsBadInput(t *testing.T) {
	if _, err := Convert([]byte{1}, 0); err == nil {
		t.Fatalf("short file converted")
	}

	src := make([]byte, 8)
	binary.LittleEndian.PutUint16(src, 2)
	if _, err := Convert(src, 0); err == nil {
		t.Fatalf("wrong version converted")
	}
}

func TestPatchModelPhySize(t *testing.T) {
	model := make([]byte, studio.HeaderV10Size)
	if err := PatchModelPhySize(model, 1234); err != nil {
		t.Fatalf("patch: %v", err)
	}
	got := binary.LittleEndian.Uint32(model[studio.HeaderV10PhySizeOff:])
	if got != 1234 {
		t.Fatalf("patched size = %d", got)
	}

	if err := PatchModelPhySize(make([]byte, 4), 1); err == nil {
		t.Fatalf("short model patched")
	}
}
