package convert

import (
	"github.com/CafeFPS/rmdlconv/internal/rmem"
	"github.com/CafeFPS/rmdlconv/internal/studio"
)

// ConvertRMDL140 rewrites a sub-version 14/14.1 model down to sub-version
// 10. The wide record layouts already match the output, so most of the work
// is re-basing offsets and re-interning names.
func ConvertRMDL140(src []byte, logf func(string, ...any)) ([]byte, error) {
	return convertWide(src, false, logf)
}

// ConvertRMDL150 rewrites a sub-version 15 model, identical to 14 except
// for two extra body part fields.
func ConvertRMDL150(src []byte, logf func(string, ...any)) ([]byte, error) {
	return convertWide(src, true, logf)
}

func convertWide(src []byte, v15 bool, logf func(string, ...any)) ([]byte, error) {
	c := newContext(src, rmem.RelativeToStruct, logf)

	var old studio.HeaderV14
	c.srcStruct(0, &old)
	if err := c.Err(); err != nil {
		return nil, err
	}

	c.log("header: checksum=0x%08X bones=%d seqs=%d bodyparts=%d textures=%d\n",
		old.Checksum, old.NumBones, old.NumLocalSeq, old.NumBodyParts, old.NumTextures)

	c.reserve(studio.HeaderV10Size)
	convertHeaderV14(c, &old)

	// The source filename block sits between the header and the bones and
	// has no size field of its own; the bone offset bounds it.
	if old.SourceFilenameOffset != 0 && old.BoneIndex > old.SourceFilenameOffset {
		size := int(old.BoneIndex - old.SourceFilenameOffset)
		c.hdr.SourceFilenameOffset = int32(c.pos())
		c.write(c.srcBytes(c.resolve(int(old.SourceFilenameOffset)), size))
	}

	writeModelName(c, canonicalModelName(c.srcString(c.resolve(int(old.NameIndex)))))
	c.intern(0, studio.HeaderV10SurfPropSlot, c.srcString(c.resolve(int(old.SurfacePropIndex))))
	c.intern(0, studio.HeaderV10UnkStringSlot, "")

	convertBonesV14(c, &old)
	c.hdr.LocalAttachmentIndex = int32(convertAttachmentsV14(c, &old))
	convertHitboxesV14(c, &old)

	if old.BoneTableByNameIndex > 0 {
		c.hdr.BoneTableByNameIndex = int32(c.pos())
		c.write(c.srcBytes(c.resolve(int(old.BoneTableByNameIndex)), int(old.NumBones)))
		c.align(4)
	}

	convertSequencesV14(c, &old)
	convertBodyPartsV14(c, &old, v15)
	c.hdr.LocalPoseParamIndex = int32(convertPoseParamsV14(c, &old))
	convertIKChainsV14(c, &old)
	convertUIPanels(c, int(old.UIPanelCount), c.resolve(int(old.UIPanelOffset)))
	convertTexturesV14(c, &old)
	convertSkinsV14(c, &old)

	writeKeyValues(c)

	c.hdr.SrcBoneTransformIndex = int32(convertSrcBoneTransformsV14(c, &old))

	copyLinearBoneTableV14(c, &old)

	c.finalizeStrings()
	c.align(64)

	if old.BVHOffset > 0 {
		convertCollisionV120(c, c.resolve(int(old.BVHOffset)), len(src))
	}

	return c.finish()
}

func convertSrcBoneTransformsV14(c *Context, old *studio.HeaderV14) int {
	num := int(old.NumSrcBoneTransform)
	index := c.pos()

	if num == 0 {
		return index
	}

	c.log("converting %d srcbonetransforms...\n", num)

	for i := 0; i < num; i++ {
		srcOff := c.resolve(int(old.SrcBoneTransformIndex)) + i*studio.SrcBoneTransformV10Size

		var ot studio.SrcBoneTransformV10
		c.srcStruct(srcOff, &ot)

		name := c.srcString(c.resolveFrom(srcOff, int(ot.NameIndex)))
		ot.NameIndex = 0

		off := c.place(&ot)
		c.intern(off, studio.SrcBoneTransformV10NameSlot, name)
	}

	c.align(4)
	return index
}
