package studio

// Bone flags meaningful only in newer generations are stripped before a bone
// record is written to the v10 layout.
const BoneUsedByBoneMerge = 0x00040000

// FilterBoneFlags drops bone flag bits the v10 runtime does not know.
// Applying it twice is a no-op.
func FilterBoneFlags(flags int32) int32 {
	return flags &^ BoneUsedByBoneMerge
}

// Header flags set by newer sources that v10 originals never carry.
const (
	HdrFlagAmbientBoost       = 0x10000
	HdrFlagSubdivisionSurface = 0x80000
	HdrFlagUsesUV2            = 0x2000000
)

// FilterHeaderFlags drops header flag bits the v10 runtime does not know.
// UV2 is cleared because the geometry converter strips the second UV channel.
func FilterHeaderFlags(flags int32) int32 {
	return flags &^ (HdrFlagUsesUV2 | HdrFlagAmbientBoost | HdrFlagSubdivisionSurface)
}

// MeshFlagUV2 marks a second UV channel on a vertex-geometry mesh.
const MeshFlagUV2 = uint64(0x200000000)

// FilterMeshFlags drops the UV2 attribute bit from a mesh flag word.
func FilterMeshFlags(flags uint64) uint64 {
	return flags &^ MeshFlagUV2
}

// Vertex attribute flag bits and their fixed per-vertex byte costs.
const (
	VertFlagPosition      = 0x1       // 12 bytes
	VertFlagPackedPos     = 0x2       // 8 bytes
	VertFlagNormal        = 0x10      // 4 bytes
	VertFlagColor         = 0x200     // 4 bytes
	VertFlagBlendIndices  = 0x1000    // 4 bytes
	VertFlagBlendWeights  = 0x2000    // 8 bytes
	VertFlagUnkAttr       = 0x4000    // 4 bytes
	VertFlagUV2           = 0x2000000 // 8 bytes
)

// VertexStride derives the per-vertex byte stride purely from the attribute
// flag bitmask; dropping a flag bit must shrink the stride.
func VertexStride(flags uint64) int {
	size := 0
	if flags&VertFlagPosition != 0 {
		size += 12
	}
	if flags&VertFlagPackedPos != 0 {
		size += 8
	}
	if flags&VertFlagNormal != 0 {
		size += 4
	}
	if flags&VertFlagColor != 0 {
		size += 4
	}
	if flags&VertFlagBlendIndices != 0 {
		size += 4
	}
	if flags&VertFlagBlendWeights != 0 {
		size += 8
	}
	if flags&VertFlagUnkAttr != 0 {
		size += 4
	}
	if flags&VertFlagUV2 != 0 {
		size += 8
	}
	return size
}

// VertexBoneOffset returns the byte offset of the 4 blend indices within a
// vertex of the given attribute flags.
func VertexBoneOffset(flags uint64) int {
	off := 0
	if flags&VertFlagPosition != 0 {
		off += 12
	} else if flags&VertFlagPackedPos != 0 {
		off += 8
	}
	if flags&VertFlagBlendWeights != 0 {
		off += 8
	}
	if flags&VertFlagUnkAttr != 0 {
		off += 4
	}
	return off
}

// Procedural bone types. Only jiggle bones survive conversion to v10; every
// other type is demoted to "no procedural data".
const (
	ProcBoneAxisInterp  = 1
	ProcBoneQuatInterp  = 2
	ProcBoneAimAtBone   = 3
	ProcBoneAimAtAttach = 4
	ProcBoneJiggle      = 5
	ProcBoneTwistMaster = 6
	ProcBoneTwistSlave  = 7
)

// Animation descriptor flags.
const (
	AnimFlagAllZeros = 0x20 // no per-bone motion payload follows
)

// Material shader type byte written for every texture on converted models.
const ShaderTypeRGDP = 0x5

// AnimFlagSize returns the byte size of the per-bone flag nibble array that
// precedes RLE animation data: 4 bits per bone, padded to 2 bytes.
func AnimFlagSize(numBones int) int {
	return ((4*numBones+7)/8 + 1) &^ 1
}

// AnimSectionCount returns how many section records an animation with the
// given frame counts carries.
func AnimSectionCount(numFrames, sectionFrames, stallFrames int) int {
	if sectionFrames <= 0 {
		return 1
	}
	return (numFrames-stallFrames-1)/sectionFrames + 2
}
