package vg

import (
	"fmt"

	"github.com/CafeFPS/rmdlconv/internal/arena"
	"github.com/CafeFPS/rmdlconv/internal/rmem"
	"github.com/CafeFPS/rmdlconv/internal/studio"
)

// meshSource pins one rev4 mesh with its buffer positions resolved to
// absolute offsets.
type meshSource struct {
	flags uint64

	vertCount     int
	vertCacheSize int
	vertOff       int

	indexCount int
	indexOff   int

	extraWeightSize int
	extraWeightOff  int

	vertBoneCount int
}

// ConvertRev4 rewrites a headerless rev4 buffer into a rev1 file image.
// boneStates is the hardware-to-model bone mapping recovered from the model
// file; when empty, an identity mapping sized by the highest bone index seen
// in the vertices stands in, which keeps static geometry working but breaks
// skinned animation.
func ConvertRev4(data []byte, boneStates []byte, logf func(string, ...any)) ([]byte, error) {
	log := func(format string, args ...any) {
		if logf != nil {
			logf(format, args...)
		}
	}

	src := rmem.NewReader(data)

	var gh headerV4
	if err := src.Struct(0, &gh); err != nil {
		return nil, fmt.Errorf("vg: short rev4 header: %w", err)
	}
	if gh.LODCount == 0 {
		return nil, fmt.Errorf("vg: rev4 buffer declares no LODs")
	}

	log("converting geometry (rev4 -> rev1), %d LODs...\n", gh.LODCount)

	lodCount := int(gh.LODCount)
	lods := make([]lodV4, lodCount)
	meshes := make([][]meshSource, lodCount)

	totalMeshCount := 0
	totalVertexCount := 0
	totalVertexBufSize := 0
	totalIndexBufSize := 0
	totalExtraWeightSize := 0
	totalStripCount := 0
	maxBoneIndex := 0

	for l := 0; l < lodCount; l++ {
		lodOff := int(gh.LODOffset) + l*lodV4Size
		if err := src.Struct(lodOff, &lods[l]); err != nil {
			return nil, fmt.Errorf("vg: LOD %d header: %w", l, err)
		}

		meshes[l] = make([]meshSource, lods[l].MeshCount)
		for m := range meshes[l] {
			meshOff := lodOff + int(lods[l].MeshOffset) + m*meshV4Size

			var mh meshV4
			if err := src.Struct(meshOff, &mh); err != nil {
				return nil, fmt.Errorf("vg: LOD %d mesh %d header: %w", l, m, err)
			}

			ms := meshSource{
				flags:           mh.Flags,
				vertCount:       int(mh.VertCount),
				vertCacheSize:   int(mh.VertCacheSize),
				vertOff:         meshOff + int(mh.VertOffset),
				indexCount:      int(mh.IndexCount),
				indexOff:        meshOff + int(mh.IndexOffset),
				extraWeightSize: int(mh.ExtraBoneWeightSize),
				extraWeightOff:  meshOff + int(mh.ExtraBoneWeightOffset),
				vertBoneCount:   int(mh.VertBoneCount),
			}
			meshes[l][m] = ms

			totalMeshCount++
			totalVertexCount += ms.vertCount
			totalVertexBufSize += studio.VertexStride(studio.FilterMeshFlags(ms.flags)) * ms.vertCount
			totalIndexBufSize += ms.indexCount * 2
			totalExtraWeightSize += ms.extraWeightSize
			if ms.flags != 0 && ms.vertCount > 0 {
				totalStripCount++
			}

			if ms.flags&studio.VertFlagBlendIndices != 0 {
				boneOff := studio.VertexBoneOffset(ms.flags)
				for v := 0; v < ms.vertCount; v++ {
					bones, err := src.Bytes(ms.vertOff+v*ms.vertCacheSize+boneOff, 4)
					if err != nil {
						return nil, fmt.Errorf("vg: LOD %d mesh %d vertex bones: %w", l, m, err)
					}
					for _, b := range bones {
						if int(b) > maxBoneIndex {
							maxBoneIndex = int(b)
						}
					}
				}
			}
		}
	}

	if len(boneStates) == 0 {
		log("  WARNING: no bone mapping recovered, using sequential indices; animations may be broken\n")
		boneStates = make([]byte, maxBoneIndex+1)
		for i := range boneStates {
			boneStates[i] = byte(i)
		}
	}

	unknownCount := totalMeshCount / lodCount
	legacyWeightSize := totalVertexCount * 16

	capacity := HeaderV1Size +
		len(boneStates) +
		totalMeshCount*MeshV1Size +
		totalIndexBufSize + 16 +
		totalVertexBufSize + 16 +
		totalExtraWeightSize +
		unknownCount*UnkVGDataSize +
		lodCount*LODV1Size +
		legacyWeightSize +
		totalStripCount*StripV1Size +
		4096

	out := arena.New(capacity)

	var hdr HeaderV1
	hdr.ID = Magic
	hdr.Version = 1
	hdr.LODCount = int64(lodCount)
	hdr.MeshCount = int64(totalMeshCount)

	if _, err := out.Reserve(HeaderV1Size); err != nil {
		return nil, err
	}

	hdr.BoneStateChangeOffset = int64(out.Position())
	hdr.BoneStateChangeCount = int64(len(boneStates))
	if _, err := out.Write(boneStates); err != nil {
		return nil, err
	}

	hdr.MeshOffset = int64(out.Position())
	meshHdrBase, err := out.Reserve(totalMeshCount * MeshV1Size)
	if err != nil {
		return nil, err
	}

	if err := out.Align(16); err != nil {
		return nil, err
	}
	hdr.IndexOffset = int64(out.Position())
	for l := 0; l < lodCount; l++ {
		for _, ms := range meshes[l] {
			if ms.indexCount == 0 {
				continue
			}
			b, err := src.Bytes(ms.indexOff, ms.indexCount*2)
			if err != nil {
				return nil, fmt.Errorf("vg: index buffer: %w", err)
			}
			if _, err := out.Write(b); err != nil {
				return nil, err
			}
		}
	}

	if err := out.Align(16); err != nil {
		return nil, err
	}
	hdr.VertOffset = int64(out.Position())
	for l := 0; l < lodCount; l++ {
		for _, ms := range meshes[l] {
			if ms.vertCount == 0 {
				continue
			}

			// Per-vertex copy at the output stride; the UV2 bytes at the
			// tail of each vertex are dropped with the flag bit.
			newStride := studio.VertexStride(studio.FilterMeshFlags(ms.flags))
			vert := make([]byte, newStride)
			for v := 0; v < ms.vertCount; v++ {
				b, err := src.Bytes(ms.vertOff+v*ms.vertCacheSize, min(ms.vertCacheSize, newStride))
				if err != nil {
					return nil, fmt.Errorf("vg: vertex buffer: %w", err)
				}
				n := copy(vert, b)
				for i := n; i < newStride; i++ {
					vert[i] = 0
				}
				if _, err := out.Write(vert); err != nil {
					return nil, err
				}
			}
		}
	}

	hdr.ExtraBoneWeightOffset = int64(out.Position())
	for l := 0; l < lodCount; l++ {
		for _, ms := range meshes[l] {
			if ms.extraWeightSize == 0 {
				continue
			}
			b, err := src.Bytes(ms.extraWeightOff, ms.extraWeightSize)
			if err != nil {
				return nil, fmt.Errorf("vg: extra bone weights: %w", err)
			}
			if _, err := out.Write(b); err != nil {
				return nil, err
			}
		}
	}

	hdr.UnknownOffset = int64(out.Position())
	hdr.UnknownCount = int64(unknownCount)
	if _, err := out.Reserve(unknownCount * UnkVGDataSize); err != nil {
		return nil, err
	}

	hdr.LODOffset = int64(out.Position())
	lodHdrBase, err := out.Reserve(lodCount * LODV1Size)
	if err != nil {
		return nil, err
	}

	// Every vertex gets a full-weight first bone; real weights live packed
	// inside the vertices themselves.
	hdr.LegacyWeightOffset = int64(out.Position())
	hdr.LegacyWeightCount = int64(totalVertexCount)
	legacy := [16]byte{}
	legacy[0], legacy[1], legacy[2], legacy[3] = 0x00, 0x00, 0x80, 0x3F
	for v := 0; v < totalVertexCount; v++ {
		if _, err := out.Write(legacy[:]); err != nil {
			return nil, err
		}
	}

	hdr.StripOffset = int64(out.Position())
	hdr.StripCount = int64(totalStripCount)
	for l := 0; l < lodCount; l++ {
		for _, ms := range meshes[l] {
			if ms.flags == 0 || ms.vertCount == 0 {
				continue
			}
			strip := StripV1{
				NumIndices: int32(ms.indexCount),
				NumVerts:   int32(ms.vertCount),
				NumBones:   int16(ms.vertBoneCount),
				Flags:      StripFlagTriList,
			}
			if _, err := out.Place(&strip); err != nil {
				return nil, err
			}
		}
	}

	// Backfill the LOD and mesh headers now that the running offsets are
	// known.
	meshIdx := 0
	indexOffset := 0
	vertexOffset := 0
	weightOffset := 0
	legacyWeightIdx := 0
	stripIdx := 0

	for l := 0; l < lodCount; l++ {
		lod := LODV1{
			MeshOffset: int16(meshIdx),
			MeshCount:  int16(len(meshes[l])),
		}
		if err := out.PlaceAt(lodHdrBase+l*LODV1Size, &lod); err != nil {
			return nil, err
		}

		for _, ms := range meshes[l] {
			v10Flags := studio.FilterMeshFlags(ms.flags)
			newStride := studio.VertexStride(v10Flags)

			nm := MeshV1{
				Flags:                 v10Flags,
				VertOffset:            uint32(vertexOffset),
				VertCacheSize:         uint32(newStride),
				VertCount:             uint32(ms.vertCount),
				IndexOffset:           int32(indexOffset / 2),
				IndexCount:            int32(ms.indexCount),
				ExtraBoneWeightOffset: int32(weightOffset),
				ExtraBoneWeightSize:   int32(ms.extraWeightSize),
				LegacyWeightOffset:    int32(legacyWeightIdx),
				LegacyWeightCount:     int32(ms.vertCount),
			}
			if ms.flags != 0 && ms.vertCount > 0 {
				nm.StripOffset = int32(stripIdx)
				nm.StripCount = 1
				stripIdx++
			}
			if err := out.PlaceAt(meshHdrBase+meshIdx*MeshV1Size, &nm); err != nil {
				return nil, err
			}

			indexOffset += ms.indexCount * 2
			vertexOffset += newStride * ms.vertCount
			weightOffset += ms.extraWeightSize

			hdr.IndexCount += int64(ms.indexCount)
			hdr.VertBufferSize += int64(newStride * ms.vertCount)
			hdr.ExtraBoneWeightSize += int64(ms.extraWeightSize)

			legacyWeightIdx += ms.vertCount
			meshIdx++
		}
	}

	hdr.DataSize = int32(out.Position())
	if err := out.PlaceAt(0, &hdr); err != nil {
		return nil, err
	}

	log("  geometry: %d LODs, %d meshes, %d strips, %d bytes\n", lodCount, totalMeshCount, totalStripCount, hdr.DataSize)
	return out.Bytes(), nil
}
