package convert

import (
	"bytes"
	"testing"

	"github.com/CafeFPS/rmdlconv/internal/rmem"
	"github.com/CafeFPS/rmdlconv/internal/studio"
)

// buildCollisionV120 lays out a two-header collision block at offset 0. Every
// buffer is filled with a distinct byte so a copy of the wrong length shows
// up as a content mismatch, not just a size mismatch.
//
//	0   model          16 bytes
//	16  header 0       40 bytes
//	56  header 1       40 bytes
//	96  surface props  16 bytes (0x50)
//	112 content masks   8 bytes (0x4D)
//	120 surface names   8 bytes
//	128 vert 0         16 bytes (0x10)
//	144 leaf 0         16 bytes (0x11)
//	160 vert 1         24 bytes (0x20)
//	184 leaf 1          8 bytes (0x21)
//	192 node 0         20 bytes (0x30)
//	212 node 1         16 bytes (0x31)
func buildCollisionV120(t *testing.T) []byte {
	t.Helper()

	src := make([]byte, 228)

	encodeAt(t, src, 0, &studio.CollModel{
		SurfacePropsIndex: 96,
		ContentMasksIndex: 112,
		SurfaceNamesIndex: 120,
		HeaderCount:       2,
	})
	encodeAt(t, src, 16, &studio.CollHeaderV120{
		VertIndex:    128,
		BVHLeafIndex: 144,
		BVHNodeIndex: 192,
		Origin:       [3]float32{1, 2, 3},
		Scale:        0.5,
		Unk:          7,
	})
	encodeAt(t, src, 56, &studio.CollHeaderV120{
		VertIndex:    160,
		BVHLeafIndex: 184,
		BVHNodeIndex: 212,
		Origin:       [3]float32{4, 5, 6},
		Scale:        0.25,
		Unk:          9,
	})

	fill := func(from, to int, b byte) {
		for i := from; i < to; i++ {
			src[i] = b
		}
	}
	fill(96, 112, 0x50)
	fill(112, 120, 0x4D)
	copy(src[120:], "metal\x00\x00\x00")
	fill(128, 144, 0x10)
	fill(144, 160, 0x11)
	fill(160, 184, 0x20)
	fill(184, 192, 0x21)
	fill(192, 212, 0x30)
	fill(212, 228, 0x31)

	return src
}

func TestConvertCollisionV120(t *testing.T) {
	src := buildCollisionV120(t)

	c := newContext(src, rmem.RelativeToStruct, nil)
	c.reserve(studio.HeaderV10Size)
	convertCollisionV120(c, 0, len(src))
	if err := c.Err(); err != nil {
		t.Fatalf("convert collision: %v", err)
	}

	out := c.out.Bytes()
	base := studio.HeaderV10Size

	var bvhOff int32
	decodeAt(t, out, studio.HeaderV10BVHOffsetOff, &bvhOff)
	if int(bvhOff) != base {
		t.Fatalf("collision offset slot = 0x%x, block at 0x%x", bvhOff, base)
	}

	var cm studio.CollModel
	decodeAt(t, out, base, &cm)
	if cm.HeaderCount != 2 {
		t.Fatalf("header count = %d", cm.HeaderCount)
	}

	// Shared tables keep their exact sizes and contents.
	if got := out[base+int(cm.SurfacePropsIndex):][:16]; !bytes.Equal(got, src[96:112]) {
		t.Fatalf("surface props = %v", got)
	}
	if cm.SurfaceNamesIndex-cm.ContentMasksIndex != 8 {
		t.Fatalf("content mask span = %d", cm.SurfaceNamesIndex-cm.ContentMasksIndex)
	}
	if got := out[base+int(cm.ContentMasksIndex):][:8]; !bytes.Equal(got, src[112:120]) {
		t.Fatalf("content masks = %v", got)
	}
	if got := out[base+int(cm.SurfaceNamesIndex):][:8]; !bytes.Equal(got, src[120:128]) {
		t.Fatalf("surface names = %q", got)
	}

	// Each buffer length is the gap to the next header's offset; the last
	// node buffer runs to the end of the file.
	wantVert := [][]byte{src[128:144], src[160:184]}
	wantLeaf := [][]byte{src[144:160], src[184:192]}
	wantNode := [][]byte{src[192:212], src[212:228]}
	wantOrigin := [][3]float32{{1, 2, 3}, {4, 5, 6}}
	wantScale := []float32{0.5, 0.25}
	wantUnk := []int32{7, 9}

	for i := 0; i < 2; i++ {
		var h studio.CollHeaderV10
		decodeAt(t, out, base+studio.CollModelSize+i*studio.CollHeaderV10Size, &h)

		if h.Origin != wantOrigin[i] || h.Scale != wantScale[i] || h.Unk != wantUnk[i] {
			t.Fatalf("header %d fields = %+v", i, h)
		}
		if (base+int(h.VertIndex))%64 != 0 || (base+int(h.BVHLeafIndex))%64 != 0 || (base+int(h.BVHNodeIndex))%64 != 0 {
			t.Fatalf("header %d buffers unaligned: %+v", i, h)
		}
		if got := out[base+int(h.VertIndex):][:len(wantVert[i])]; !bytes.Equal(got, wantVert[i]) {
			t.Fatalf("header %d vertices = %v", i, got)
		}
		if got := out[base+int(h.BVHLeafIndex):][:len(wantLeaf[i])]; !bytes.Equal(got, wantLeaf[i]) {
			t.Fatalf("header %d leaves = %v", i, got)
		}
		if got := out[base+int(h.BVHNodeIndex):][:len(wantNode[i])]; !bytes.Equal(got, wantNode[i]) {
			t.Fatalf("header %d nodes = %v", i, got)
		}
	}
}

// buildCollisionV160 lays out a single-header block whose surface property
// ids route through an indirection table. The property table holds three
// rows but the indirection table only distinguishes two ids, so the copy has
// to walk the full array span.
//
//	0   model            16 bytes
//	16  header           40 bytes
//	56  surface props    24 bytes (3 rows)
//	80  content masks     8 bytes (0x4D)
//	88  surface names     8 bytes
//	96  indirection      32 bytes (2 ids x 2 arrays)
//	128 verts            16 bytes (0x10)
//	144 leaves           16 bytes (0x11)
//	160 nodes            16 bytes (0x30)
func buildCollisionV160(t *testing.T) []byte {
	t.Helper()

	src := make([]byte, 176)

	encodeAt(t, src, 0, &studio.CollModel{
		SurfacePropsIndex: 56,
		ContentMasksIndex: 80,
		SurfaceNamesIndex: 88,
		HeaderCount:       1,
	})
	encodeAt(t, src, 16, &studio.CollHeaderV16{
		VertIndex:             128,
		BVHLeafIndex:          144,
		BVHNodeIndex:          160,
		Origin:                [3]float32{1, 2, 3},
		Scale:                 0.5,
		Unk:                   7,
		SurfacePropDataIndex:  96,
		SurfacePropArrayCount: 2,
	})

	encodeAt(t, src, 56, &studio.SurfaceProperty{SurfacePropID: 0, ContentMaskIndex: 5})
	encodeAt(t, src, 64, &studio.SurfaceProperty{SurfacePropID: 1, ContentMaskIndex: 6})
	encodeAt(t, src, 72, &studio.SurfaceProperty{SurfacePropID: 0, ContentMaskIndex: 7})

	fill := func(from, to int, b byte) {
		for i := from; i < to; i++ {
			src[i] = b
		}
	}
	fill(80, 88, 0x4D)
	copy(src[88:], "stone\x00\x00\x00")

	// Two arrays per id; only the first row of each id's span counts.
	encodeAt(t, src, 96, &studio.SurfacePropertyData{SurfacePropID1: 11, SurfacePropID2: 99})
	encodeAt(t, src, 104, &studio.SurfacePropertyData{SurfacePropID1: 77, SurfacePropID2: 77})
	encodeAt(t, src, 112, &studio.SurfacePropertyData{SurfacePropID1: 22, SurfacePropID2: 99})
	encodeAt(t, src, 120, &studio.SurfacePropertyData{SurfacePropID1: 77, SurfacePropID2: 77})

	fill(128, 144, 0x10)
	fill(144, 160, 0x11)
	fill(160, 176, 0x30)

	return src
}

func TestConvertCollisionV160(t *testing.T) {
	src := buildCollisionV160(t)

	c := newContext(src, rmem.AbsoluteFromHeader, nil)
	c.reserve(studio.HeaderV10Size)
	convertCollisionV160(c, 0, len(src))
	if err := c.Err(); err != nil {
		t.Fatalf("convert collision: %v", err)
	}

	out := c.out.Bytes()
	base := studio.HeaderV10Size

	var cm studio.CollModel
	decodeAt(t, out, base, &cm)
	if cm.HeaderCount != 1 {
		t.Fatalf("header count = %d", cm.HeaderCount)
	}
	if cm.ContentMasksIndex-cm.SurfacePropsIndex != 24 {
		t.Fatalf("surface prop span = %d", cm.ContentMasksIndex-cm.SurfacePropsIndex)
	}

	// Every row in the table gets its id collapsed through the indirection
	// table, including the rows past the distinct id count; content mask
	// references move untouched.
	wantID := []int32{11, 22, 11}
	wantMask := []int32{5, 6, 7}
	for i := range wantID {
		var sp studio.SurfaceProperty
		decodeAt(t, out, base+int(cm.SurfacePropsIndex)+i*studio.SurfacePropertySize, &sp)
		if sp.SurfacePropID != wantID[i] {
			t.Fatalf("row %d id = %d, want %d", i, sp.SurfacePropID, wantID[i])
		}
		if sp.ContentMaskIndex != wantMask[i] {
			t.Fatalf("row %d content mask = %d, want %d", i, sp.ContentMaskIndex, wantMask[i])
		}
	}

	// The name buffer ends where the indirection table begins; the table
	// itself does not survive conversion.
	if got := out[base+int(cm.SurfaceNamesIndex):][:8]; !bytes.Equal(got, src[88:96]) {
		t.Fatalf("surface names = %q", got)
	}

	var h studio.CollHeaderV10
	decodeAt(t, out, base+studio.CollModelSize, &h)
	if h.Origin != [3]float32{1, 2, 3} || h.Scale != 0.5 || h.Unk != 7 {
		t.Fatalf("header fields = %+v", h)
	}
	if got := out[base+int(h.VertIndex):][:16]; !bytes.Equal(got, src[128:144]) {
		t.Fatalf("vertices = %v", got)
	}
	if got := out[base+int(h.BVHLeafIndex):][:16]; !bytes.Equal(got, src[144:160]) {
		t.Fatalf("leaves = %v", got)
	}
	if got := out[base+int(h.BVHNodeIndex):][:16]; !bytes.Equal(got, src[160:176]) {
		t.Fatalf("nodes = %v", got)
	}
}

func TestConvertCollisionImplausibleCount(t *testing.T) {
	src := buildCollisionV120(t)
	encodeAt(t, src, 0, &studio.CollModel{HeaderCount: 200})

	c := newContext(src, rmem.RelativeToStruct, nil)
	c.reserve(studio.HeaderV10Size)
	pos := c.pos()
	convertCollisionV120(c, 0, len(src))

	if err := c.Err(); err != nil {
		t.Fatalf("dropping collision errored: %v", err)
	}
	if c.pos() != pos {
		t.Fatalf("dropped collision still wrote %d bytes", c.pos()-pos)
	}
}
