// Package vg rewrites hardware geometry siblings (.vg) from the headerless
// rev4 layout of newer models into the rev1 layout older runtimes stream.
package vg

import (
	"encoding/binary"

	"github.com/CafeFPS/rmdlconv/internal/studio"
)

// Magic is the "0tVG" identifier carried by rev1 through rev3 files. Rev4
// dropped the magic entirely, so that layout is detected structurally.
const Magic = 0x47567430

// HeaderV1 is the 224-byte rev1 file header.
type HeaderV1 struct {
	ID       int32
	Version  int32
	Unk      int32
	DataSize int32

	BoneStateChangeOffset int64
	BoneStateChangeCount  int64

	MeshOffset int64
	MeshCount  int64

	IndexOffset int64
	IndexCount  int64

	VertOffset     int64
	VertBufferSize int64

	ExtraBoneWeightOffset int64
	ExtraBoneWeightSize   int64

	UnknownOffset int64
	UnknownCount  int64

	LODOffset int64
	LODCount  int64

	LegacyWeightOffset int64
	LegacyWeightCount  int64

	StripOffset int64
	StripCount  int64

	Unused [16]int32
}

var HeaderV1Size = studio.SizeOf(HeaderV1{})

// MeshV1 is the 72-byte rev1 mesh header. Buffer offsets are element
// relative: indices count 16-bit units, vertices count bytes.
type MeshV1 struct {
	Flags uint64

	VertOffset    uint32
	VertCacheSize uint32
	VertCount     uint32

	IndexOffset int32
	IndexCount  int32

	ExtraBoneWeightOffset int32
	ExtraBoneWeightSize   int32

	LegacyWeightOffset int32
	LegacyWeightCount  int32

	StripOffset int32
	StripCount  int32

	Unused [5]int32
}

var MeshV1Size = studio.SizeOf(MeshV1{})

// LODV1 is the 8-byte rev1 LOD header; MeshOffset indexes into the flat
// mesh header array.
type LODV1 struct {
	MeshOffset  int16
	MeshCount   int16
	SwitchPoint float32
}

var LODV1Size = studio.SizeOf(LODV1{})

// UnkVGDataSize is the per-LOD 0x30 byte blob the rev1 layout reserves; its
// content is never read by the runtime, so it stays zeroed.
const UnkVGDataSize = 0x30

// StripFlagTriList marks a strip as an indexed triangle list.
const StripFlagTriList = 0x01

// StripV1 is the 35-byte packed strip record.
type StripV1 struct {
	NumIndices  int32
	IndexOffset int32
	NumVerts    int32
	VertOffset  int32

	NumBones int16
	Flags    uint8

	NumBoneStateChanges   int32
	BoneStateChangeOffset int32

	NumTopologyIndices int32
	TopologyOffset     int32
}

var StripV1Size = studio.SizeOf(StripV1{})

// headerV4 leads a rev4 file. There is no magic; the layout is recognized
// by a plausible LOD count and a non-zero LOD presence mask.
type headerV4 struct {
	LODIndex   uint8
	LODCount   uint8
	GroupIndex uint8
	LODMap     uint8

	LODOffset int32
	Unused    [2]int32
}

var headerV4Size = studio.SizeOf(headerV4{})

// lodV4 offsets are relative to the record.
type lodV4 struct {
	MeshCount  uint16
	Unused     uint16
	MeshOffset int32
	SwitchPoint float32
}

var lodV4Size = studio.SizeOf(lodV4{})

// meshV4 offsets are relative to the record.
type meshV4 struct {
	Flags uint64

	VertCount      uint32
	VertCacheSize  uint32
	VertOffset     int32
	VertBufferSize int32

	IndexCount int32
	IndexOffset int32

	ExtraBoneWeightSize   int32
	ExtraBoneWeightOffset int32

	VertBoneCount int32
	Unused        [3]int32
}

var meshV4Size = studio.SizeOf(meshV4{})

// Kind classifies a geometry sibling buffer.
type Kind int

const (
	KindUnknown Kind = iota
	KindRev1         // already in the target layout
	KindRev2         // "0tVG" magic with a newer version field
	KindRev4         // headerless per-group layout
)

func (k Kind) String() string {
	switch k {
	case KindRev1:
		return "rev1"
	case KindRev2:
		return "rev2"
	case KindRev4:
		return "rev4"
	default:
		return "unknown"
	}
}

// Detect classifies a buffer. Rev4 has no magic, so it is recognized by a
// LOD count between 1 and 8 and a non-zero LOD presence mask.
func Detect(data []byte) Kind {
	if len(data) < 16 {
		return KindUnknown
	}

	if binary.LittleEndian.Uint32(data) == Magic {
		if binary.LittleEndian.Uint32(data[4:]) == 1 {
			return KindRev1
		}
		return KindRev2
	}

	lodCount := data[1]
	lodMap := data[3]
	if lodCount >= 1 && lodCount <= 8 && lodMap != 0 {
		return KindRev4
	}

	return KindUnknown
}
