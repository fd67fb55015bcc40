package vg

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/CafeFPS/rmdlconv/internal/studio"
)

func encodeAt(t *testing.T, buf []byte, off int, v any) {
	t.Helper()
	if _, err := binary.Encode(buf[off:], binary.LittleEndian, v); err != nil {
		t.Fatalf("encode %T at 0x%x: %v", v, off, err)
	}
}

func decodeAt(t *testing.T, buf []byte, off int, v any) {
	t.Helper()
	if _, err := binary.Decode(buf[off:], binary.LittleEndian, v); err != nil {
		t.Fatalf("decode %T at 0x%x: %v", v, off, err)
	}
}

// buildRev4 lays out one LOD with one mesh. Vertices are position plus blend
// indices unless uv2 is set, which appends an 8-byte second UV channel that
// conversion must strip.
func buildRev4(t *testing.T, uv2 bool) ([]byte, []byte) {
	t.Helper()

	flags := uint64(studio.VertFlagPosition | studio.VertFlagBlendIndices)
	stride := studio.VertexStride(flags)
	cache := stride
	if uv2 {
		flags |= studio.MeshFlagUV2
		cache += 8
	}

	const vertCount = 3
	lodOff := headerV4Size
	meshOff := lodOff + lodV4Size
	vertOff := meshOff + meshV4Size
	indexOff := vertOff + vertCount*cache
	total := indexOff + vertCount*2

	buf := make([]byte, total)

	encodeAt(t, buf, 0, &headerV4{
		LODCount:  1,
		LODMap:    1,
		LODOffset: int32(lodOff),
	})
	encodeAt(t, buf, lodOff, &lodV4{
		MeshCount:   1,
		MeshOffset:  int32(meshOff - lodOff),
		SwitchPoint: 100,
	})
	encodeAt(t, buf, meshOff, &meshV4{
		Flags:         flags,
		VertCount:     vertCount,
		VertCacheSize: uint32(cache),
		VertOffset:    int32(vertOff - meshOff),
		IndexCount:    vertCount,
		IndexOffset:   int32(indexOff - meshOff),
		VertBoneCount: 1,
	})

	verts := make([]byte, 0, vertCount*cache)
	for v := 0; v < vertCount; v++ {
		vert := make([]byte, cache)
		for i := 0; i < stride; i++ {
			vert[i] = byte(v*16 + i)
		}
		for i := stride; i < cache; i++ {
			vert[i] = 0xAA // UV2 tail, must not survive
		}
		// Blend indices sit behind the position; all vertices ride bone 0.
		vert[12], vert[13], vert[14], vert[15] = 0, 0, 0, 0
		verts = append(verts, vert...)
	}
	copy(buf[vertOff:], verts)

	for i := 0; i < vertCount; i++ {
		binary.LittleEndian.PutUint16(buf[indexOff+i*2:], uint16(i))
	}

	return buf, buf[indexOff : indexOff+vertCount*2]
}

func TestConvertRev4(t *testing.T) {
	src, indices := buildRev4(t, false)

	out, err := ConvertRev4(src, []byte{0}, nil)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	var hdr HeaderV1
	decodeAt(t, out, 0, &hdr)

	if hdr.ID != Magic || hdr.Version != 1 {
		t.Fatalf("header id/version = 0x%X/%d", hdr.ID, hdr.Version)
	}
	if int(hdr.DataSize) != len(out) {
		t.Fatalf("data size = %d, file size = %d", hdr.DataSize, len(out))
	}
	if hdr.LODCount != 1 || hdr.MeshCount != 1 || hdr.StripCount != 1 {
		t.Fatalf("counts = %d LODs, %d meshes, %d strips", hdr.LODCount, hdr.MeshCount, hdr.StripCount)
	}
	if hdr.BoneStateChangeCount != 1 || out[hdr.BoneStateChangeOffset] != 0 {
		t.Fatalf("bone states not carried")
	}
	if hdr.IndexCount != 3 || hdr.VertBufferSize != 3*16 {
		t.Fatalf("totals = %d indices, %d vertex bytes", hdr.IndexCount, hdr.VertBufferSize)
	}
	if hdr.LegacyWeightCount != 3 {
		t.Fatalf("legacy weight count = %d", hdr.LegacyWeightCount)
	}

	if got := out[hdr.IndexOffset : int(hdr.IndexOffset)+6]; !bytes.Equal(got, indices) {
		t.Fatalf("index buffer = %v", got)
	}
	if hdr.IndexOffset%16 != 0 || hdr.VertOffset%16 != 0 {
		t.Fatalf("buffers unaligned: indices 0x%x, vertices 0x%x", hdr.IndexOffset, hdr.VertOffset)
	}

	var mesh MeshV1
	decodeAt(t, out, int(hdr.MeshOffset), &mesh)
	if mesh.VertCount != 3 || mesh.VertCacheSize != 16 || mesh.IndexCount != 3 {
		t.Fatalf("mesh = %+v", mesh)
	}
	if mesh.StripCount != 1 || mesh.LegacyWeightCount != 3 {
		t.Fatalf("mesh strips/weights = %d/%d", mesh.StripCount, mesh.LegacyWeightCount)
	}

	var lod LODV1
	decodeAt(t, out, int(hdr.LODOffset), &lod)
	if lod.MeshOffset != 0 || lod.MeshCount != 1 {
		t.Fatalf("lod = %+v", lod)
	}

	// Every vertex gets a full-weight first bone.
	weight := out[hdr.LegacyWeightOffset : int(hdr.LegacyWeightOffset)+16]
	if !bytes.Equal(weight[:4], []byte{0x00, 0x00, 0x80, 0x3F}) {
		t.Fatalf("legacy weight = %v", weight[:4])
	}

	var strip StripV1
	decodeAt(t, out, int(hdr.StripOffset), &strip)
	if strip.NumIndices != 3 || strip.NumVerts != 3 || strip.NumBones != 1 {
		t.Fatalf("strip = %+v", strip)
	}
	if strip.Flags&StripFlagTriList == 0 {
		t.Fatalf("strip flags = 0x%X", strip.Flags)
	}
}

func TestConvertRev4StripsUV2(t *testing.T) {
	src, _ := buildRev4(t, true)

	out, err := ConvertRev4(src, []byte{0}, nil)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	var hdr HeaderV1
	decodeAt(t, out, 0, &hdr)

	// The 8-byte UV2 tail drops from every vertex.
	if hdr.VertBufferSize != 3*16 {
		t.Fatalf("vertex buffer size = %d, want %d", hdr.VertBufferSize, 3*16)
	}

	var mesh MeshV1
	decodeAt(t, out, int(hdr.MeshOffset), &mesh)
	if mesh.VertCacheSize != 16 {
		t.Fatalf("output stride = %d", mesh.VertCacheSize)
	}
	if mesh.Flags&studio.MeshFlagUV2 != 0 {
		t.Fatalf("UV2 flag survived: 0x%X", mesh.Flags)
	}

	verts := out[hdr.VertOffset : int(hdr.VertOffset)+int(hdr.VertBufferSize)]
	if bytes.IndexByte(verts, 0xAA) >= 0 {
		t.Fatalf("UV2 bytes survived the copy")
	}
}

func TestConvertRev4IdentityFallback(t *testing.T) {
	src, _ := buildRev4(t, false)

	// No recovered mapping: bone indices in the vertices bound a sequential
	// identity table.
	out, err := ConvertRev4(src, nil, nil)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	var hdr HeaderV1
	decodeAt(t, out, 0, &hdr)
	if hdr.BoneStateChangeCount != 1 {
		t.Fatalf("fallback bone state count = %d", hdr.BoneStateChangeCount)
	}
}
