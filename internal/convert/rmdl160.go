package convert

import (
	"strings"

	"github.com/CafeFPS/rmdlconv/internal/rmem"
	"github.com/CafeFPS/rmdlconv/internal/studio"
)

// modelKeyValues replaces the source keyvalues block, which later versions
// dropped; the runtime only needs the prop_data stanza to exist.
const modelKeyValues = "mdlkeyvalue{prop_data{base \"\"}}\n"

func writeKeyValues(c *Context) {
	c.hdr.KeyValueIndex = int32(c.pos())
	c.hdr.KeyValueSize = int32((len(modelKeyValues) + 2) &^ 1)
	c.write(append([]byte(modelKeyValues), 0))
	c.align(4)
}

// ConvertRMDL160 rewrites a sub-version 16 through 19 model down to
// sub-version 10. name is the source file name; it carries the full model
// path that the truncated inline header name lost.
func ConvertRMDL160(src []byte, name string, sub studio.Version, logf func(string, ...any)) ([]byte, error) {
	return convertModern(src, name, studio.SeqDescStride(sub), readAnimDescV16, convertCollisionV160, logf)
}

// ConvertRMDL191 rewrites a sub-version 19.1 model, which moved the
// animation payload into external assets and reshaped the collision
// headers.
func ConvertRMDL191(src []byte, name string, logf func(string, ...any)) ([]byte, error) {
	return convertModern(src, name, studio.SeqDescStride(studio.Version191), readAnimDescV191, convertCollisionV191, logf)
}

func convertModern(src []byte, name string, seqStride int, readAnim func(*Context, int) animDescSource, convertCollision func(*Context, int, int), logf func(string, ...any)) ([]byte, error) {
	c := newContext(src, rmem.AbsoluteFromHeader, logf)

	var old studio.HeaderV16
	c.srcStruct(0, &old)
	if err := c.Err(); err != nil {
		return nil, err
	}

	c.log("header: checksum=0x%08X bones=%d seqs=%d bodyparts=%d textures=%d\n",
		old.Checksum, old.BoneCount, old.LocalSeqCount, old.BodyPartCount, old.TextureCount)

	c.reserve(studio.HeaderV10Size)
	convertHeaderV16(c, &old)

	writeModelName(c, canonicalModelName(strings.TrimSuffix(name, ".rmdl")))

	if old.SurfacePropOffset > 0 {
		c.intern(0, studio.HeaderV10SurfPropSlot, c.srcString(c.resolve(int(old.SurfacePropOffset))))
	}
	c.intern(0, studio.HeaderV10UnkStringSlot, "")

	convertBonesV16(c, &old)
	c.hdr.LocalAttachmentIndex = int32(convertAttachmentsV16(c, &old))
	convertHitboxesV16(c, &old)

	if old.BoneTableByNameOffset > 0 {
		c.hdr.BoneTableByNameIndex = int32(c.pos())
		c.write(c.srcBytes(c.resolve(int(old.BoneTableByNameOffset)), int(old.BoneCount)))
		c.align(4)
	}

	convertSequencesV16(c, &old, seqStride, readAnim)
	convertBodyPartsV16(c, &old)
	c.hdr.LocalPoseParamIndex = int32(convertPoseParamsV16(c, &old))
	convertIKChainsV16(c, &old)
	convertTexturesV16(c, &old)
	convertSkinsV16(c, &old)
	convertUIPanels(c, int(old.UIPanelCount), c.resolve(int(old.UIPanelOffset)))

	writeKeyValues(c)

	convertLinearBoneTableV16(c, &old)

	c.finalizeStrings()
	c.align(64)

	if old.BVHOffset > 0 {
		convertCollision(c, c.resolve(int(old.BVHOffset)), len(src))
	}

	return c.finish()
}
