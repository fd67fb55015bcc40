// Package phy rewrites physics siblings (.phy) from the compact header of
// newer models back to the IVPS header older runtimes parse.
package phy

import (
	"encoding/binary"
	"fmt"

	"github.com/CafeFPS/rmdlconv/internal/studio"
)

// Header is the 20-byte IVPS file header of the v10 layout. Newer files
// carry only a 4-byte stub (version uint16, key values offset uint16); the
// solid data behind either header is identical.
type Header struct {
	Size            int32
	ID              int32
	SolidCount      int32
	Checksum        int32
	KeyValuesOffset int32
}

var HeaderSize = studio.SizeOf(Header{})

const stubHeaderSize = 4

// Convert wraps a compact physics buffer in an IVPS header. checksum is the
// owning model's checksum, which ties the sibling to the model at load time.
func Convert(src []byte, checksum int32) ([]byte, error) {
	if len(src) < stubHeaderSize {
		return nil, fmt.Errorf("phy: file too small for a header (%d bytes)", len(src))
	}

	version := binary.LittleEndian.Uint16(src)
	keyValuesOffset := binary.LittleEndian.Uint16(src[2:])

	if version != 1 {
		return nil, fmt.Errorf("phy: unexpected compact header version %d", version)
	}

	hdr := Header{
		Size:            int32(HeaderSize),
		ID:              1,
		SolidCount:      1,
		Checksum:        checksum,
		// The text block shifts by the header growth.
		KeyValuesOffset: int32(keyValuesOffset) + int32(HeaderSize-stubHeaderSize),
	}

	out := make([]byte, HeaderSize+len(src)-stubHeaderSize)
	if _, err := binary.Encode(out, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("phy: encode header: %w", err)
	}
	copy(out[HeaderSize:], src[stubHeaderSize:])

	return out, nil
}

// PatchModelPhySize stamps the physics file size into a converted model
// image so the runtime maps the right amount of sibling data.
func PatchModelPhySize(model []byte, phySize int32) error {
	off := studio.HeaderV10PhySizeOff
	if len(model) < off+4 {
		return fmt.Errorf("phy: model image too small to patch (%d bytes)", len(model))
	}
	binary.LittleEndian.PutUint32(model[off:], uint32(phySize))
	return nil
}
