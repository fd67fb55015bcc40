package convert

import (
	"strings"

	"github.com/CafeFPS/rmdlconv/internal/studio"
)

// canonicalModelName rewrites a source model name into the asset path the
// v10 runtime expects: an mdl/ prefix and an .rmdl extension.
func canonicalModelName(name string) string {
	if !strings.HasPrefix(name, "mdl/") {
		name = "mdl/" + name
	}
	if strings.HasSuffix(name, ".mdl") {
		name = strings.TrimSuffix(name, ".mdl") + ".rmdl"
	}
	return name
}

// writeModelName stores the canonical name inline and queues it for the
// string table.
func writeModelName(c *Context, name string) {
	studio.PutName(c.hdr.Name[:], name)
	c.intern(0, studio.HeaderV10NameSlot, name)
}

// convertHeaderV16 fills the output header from a 16 through 19 source.
// Offsets and the length stay zero until the matching converter runs; fields
// with no v10 meaning stay zero for good.
func convertHeaderV16(c *Context, old *studio.HeaderV16) {
	h := c.hdr

	h.ID = studio.IDMagic
	h.Version = studio.TargetVersion
	h.Checksum = old.Checksum
	h.Length = studio.LengthSentinel

	h.IllumPosition = old.IllumPosition
	h.HullMin = old.HullMin
	h.HullMax = old.HullMax
	h.Mins = old.HullMin
	h.Maxs = old.HullMax
	h.ViewBBMin = old.ViewBBMin
	h.ViewBBMax = old.ViewBBMax

	h.Flags = studio.FilterHeaderFlags(old.Flags)

	h.NumBones = int32(old.BoneCount)
	h.NumBoneControllers = 0
	h.NumHitboxSets = int32(old.HitboxSetCount)
	h.NumLocalAnim = 0
	h.NumLocalSeq = int32(old.LocalSeqCount)
	h.ActivityListVersion = int32(old.ActivityListVersion)

	h.NumTextures = int32(old.TextureCount)
	h.NumCDTextures = 1
	h.NumSkinRef = int32(old.SkinRefCount)
	h.NumSkinFamilies = int32(old.SkinFamilyCount)
	h.NumBodyParts = int32(old.BodyPartCount)
	h.NumLocalAttachments = int32(old.AttachmentCount)

	h.NumLocalNodes = int32(old.NodeCount)
	h.NumIKChains = int32(old.IKChainCount)
	h.NumLocalPoseParameters = int32(old.PoseParamCount)
	h.NumSrcBoneTransform = int32(old.SrcBoneTransformCount)

	h.NumIncludeModels = -1

	h.Mass = old.Mass
	h.Contents = old.Contents

	h.DefaultFadeDist = old.FadeDistance
	h.VertAnimFixedPointScale = 1.0

	h.SourceFilenameOffset = 0

	// Geometry and physics live in sibling files.
	h.PhyOffset = studio.PhyOffsetSentinel
	h.PhySize = 0

	c.numBones = int(old.BoneCount)
}

// convertHeaderV14 fills the output header from a 14/15 source, which shares
// the wide layout so nearly every scalar copies straight across.
func convertHeaderV14(c *Context, old *studio.HeaderV14) {
	h := c.hdr

	h.ID = studio.IDMagic
	h.Version = studio.TargetVersion
	h.Checksum = old.Checksum
	h.Length = studio.LengthSentinel

	h.EyePosition = old.EyePosition
	h.IllumPosition = old.IllumPosition
	h.HullMin = old.HullMin
	h.HullMax = old.HullMax
	h.Mins = old.HullMin
	h.Maxs = old.HullMax
	h.ViewBBMin = old.ViewBBMin
	h.ViewBBMax = old.ViewBBMax

	h.Flags = old.Flags

	h.NumBones = old.NumBones
	h.NumBoneControllers = old.NumBoneControllers
	h.NumHitboxSets = old.NumHitboxSets
	h.NumLocalAnim = 0
	h.NumLocalSeq = old.NumLocalSeq
	h.ActivityListVersion = old.ActivityListVersion

	h.NumTextures = old.NumTextures
	h.NumCDTextures = old.NumCDTextures
	h.NumSkinRef = old.NumSkinRef
	h.NumSkinFamilies = old.NumSkinFamilies
	h.NumBodyParts = old.NumBodyParts
	h.NumLocalAttachments = old.NumLocalAttachments

	h.KeyValueSize = old.KeyValueSize
	h.NumIncludeModels = -1
	h.NumSrcBoneTransform = old.NumSrcBoneTransform

	h.Mass = old.Mass
	h.Contents = old.Contents

	h.DefaultFadeDist = old.DefaultFadeDist
	h.VertAnimFixedPointScale = old.VertAnimFixedPointScale

	h.PhyOffset = old.PhyOffset
	h.VTXSize = old.VTXSize
	h.VVDSize = old.VVDSize
	h.VVCSize = old.VVCSize
	h.VVWSize = old.VVWSize
	h.PhySize = old.PhySize

	c.numBones = int(old.NumBones)
}
