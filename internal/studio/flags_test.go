package studio

import "testing"

func TestVertexStrideFollowsFlags(t *testing.T) {
	flags := uint64(VertFlagPosition | VertFlagNormal | VertFlagBlendIndices | VertFlagBlendWeights | VertFlagUV2)
	if got := VertexStride(flags); got != 12+4+4+8+8 {
		t.Fatalf("stride = %d", got)
	}

	// Dropping the second UV channel must shrink the stride by its cost.
	filtered := flags &^ VertFlagUV2
	if got := VertexStride(flags) - VertexStride(filtered); got != 8 {
		t.Fatalf("UV2 cost = %d, want 8", got)
	}

	if got := VertexStride(0); got != 0 {
		t.Fatalf("empty stride = %d", got)
	}
}

func TestVertexBoneOffset(t *testing.T) {
	flags := uint64(VertFlagPosition | VertFlagBlendWeights | VertFlagBlendIndices)
	if got := VertexBoneOffset(flags); got != 12+8 {
		t.Fatalf("bone offset = %d", got)
	}
	packed := uint64(VertFlagPackedPos | VertFlagBlendIndices)
	if got := VertexBoneOffset(packed); got != 8 {
		t.Fatalf("packed bone offset = %d", got)
	}
}

func TestFlagFiltersIdempotent(t *testing.T) {
	bone := int32(0x12340000 | BoneUsedByBoneMerge)
	once := FilterBoneFlags(bone)
	if once&BoneUsedByBoneMerge != 0 {
		t.Fatalf("bone merge bit survived: 0x%X", once)
	}
	if FilterBoneFlags(once) != once {
		t.Fatalf("bone filter not idempotent")
	}

	hdr := int32(HdrFlagUsesUV2 | HdrFlagAmbientBoost | HdrFlagSubdivisionSurface | 0x4)
	if got := FilterHeaderFlags(hdr); got != 0x4 {
		t.Fatalf("header flags = 0x%X", got)
	}
	if FilterHeaderFlags(FilterHeaderFlags(hdr)) != FilterHeaderFlags(hdr) {
		t.Fatalf("header filter not idempotent")
	}

	mesh := MeshFlagUV2 | 0x11
	if got := FilterMeshFlags(mesh); got != 0x11 {
		t.Fatalf("mesh flags = 0x%X", got)
	}
	if FilterMeshFlags(FilterMeshFlags(mesh)) != FilterMeshFlags(mesh) {
		t.Fatalf("mesh filter not idempotent")
	}
}

func TestAnimFlagSize(t *testing.T) {
	// 4 bits per bone, padded to 2 bytes.
	cases := map[int]int{1: 2, 2: 2, 3: 2, 4: 2, 5: 4, 8: 4, 16: 8}
	for bones, want := range cases {
		if got := AnimFlagSize(bones); got != want {
			t.Fatalf("AnimFlagSize(%d) = %d, want %d", bones, got, want)
		}
	}
}

func TestAnimSectionCount(t *testing.T) {
	if got := AnimSectionCount(100, 0, 0); got != 1 {
		t.Fatalf("unsectioned count = %d", got)
	}
	if got := AnimSectionCount(100, 30, 0); got != (100-1)/30+2 {
		t.Fatalf("sectioned count = %d", got)
	}
}
