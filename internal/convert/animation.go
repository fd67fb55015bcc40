package convert

import "github.com/CafeFPS/rmdlconv/internal/studio"

// animDescSource is a normalized view of one source animation descriptor.
// Offsets are absolute within the source buffer; zero means absent. The
// per-version readers translate field widths here so the writer below stays
// version independent.
type animDescSource struct {
	ok bool

	name      string // empty falls back to the sequence label
	fps       float32
	flags     int32
	numFrames int32

	numIKRules int
	ikRuleOff  int

	animDataOff int // embedded per-bone run-length payload

	sectionOff    int
	sectionFrames int
	sectionStall  int

	external uint64 // external animation asset guid, 19.1 only
}

func readAnimDescV16(c *Context, off int) animDescSource {
	var ad studio.AnimDescV16
	c.srcStruct(off, &ad)

	src := animDescSource{
		ok:            true,
		fps:           ad.FPS,
		flags:         int32(ad.Flags),
		numFrames:     ad.NumFrames,
		sectionFrames: int(ad.SectionFrames),
		sectionStall:  int(ad.SectionStallFrames),
	}
	if ad.NameOffset > 0 {
		src.name = c.srcString(c.resolveFrom(off, int(ad.NameOffset)))
	}
	if ad.NumIKRules > 0 && ad.IKRuleIndex > 0 {
		src.numIKRules = int(ad.NumIKRules)
		src.ikRuleOff = c.resolveFrom(off, int(ad.IKRuleIndex))
	}
	if ad.AnimIndex > 0 {
		src.animDataOff = c.resolveFrom(off, int(ad.AnimIndex))
	}
	if ad.SectionIndex > 0 {
		src.sectionOff = c.resolveFrom(off, int(ad.SectionIndex))
	}
	return src
}

func readAnimDescV191(c *Context, off int) animDescSource {
	var ad studio.AnimDescV191
	c.srcStruct(off, &ad)

	src := animDescSource{
		ok:            true,
		fps:           ad.FPS,
		flags:         int32(ad.Flags),
		numFrames:     ad.NumFrames,
		sectionFrames: int(ad.SectionFrames),
		sectionStall:  int(ad.SectionStallFrames),
		external:      ad.AnimDataAsset,
	}
	if ad.NameOffset > 0 {
		src.name = c.srcString(c.resolveFrom(off, int(ad.NameOffset)))
	}
	if ad.NumIKRules > 0 && ad.IKRuleIndex > 0 {
		src.numIKRules = int(ad.NumIKRules)
		src.ikRuleOff = c.resolveFrom(off, int(ad.IKRuleIndex))
	}
	if ad.SectionIndex > 0 {
		src.sectionOff = c.resolveFrom(off, int(ad.SectionIndex))
	}
	return src
}

// rleMaxBoneSize bounds one bone's run-length record; anything larger means
// the payload is corrupt and the remaining bones are skipped.
const rleMaxBoneSize = 4096

// writeAnimData emits one v10 animation descriptor plus its payload and
// returns the descriptor's offset. A missing source descriptor becomes a
// one-frame all-zeros placeholder so every blend slot stays addressable.
func writeAnimData(c *Context, src animDescSource, seqLabel string) int {
	animOff := c.place(&studio.AnimDescV10{})

	var na studio.AnimDescV10

	if !src.ok {
		c.intern(animOff, studio.AnimDescV10NameSlot, seqLabel)
		na.FPS = 30
		na.Flags = studio.AnimFlagAllZeros
		na.NumFrames = 1

		c.align(4)
		na.AnimIndex = int32(c.pos() - animOff)
		writeZeroBoneFlags(c)

		c.placeAt(animOff, &na)
		return animOff
	}

	name := src.name
	if name == "" {
		name = seqLabel
	}
	c.intern(animOff, studio.AnimDescV10NameSlot, name)

	na.FPS = src.fps
	na.Flags = src.flags
	na.NumFrames = src.numFrames

	if src.external != 0 {
		c.log("    WARNING: animation '%s' references external asset 0x%016X, frame data not recoverable\n", name, src.external)
	}

	if src.numIKRules > 0 {
		c.align(4)
		na.IKRuleIndex = int32(c.pos() - animOff)
		na.NumIKRules = int32(src.numIKRules)

		for ik := 0; ik < src.numIKRules; ik++ {
			ruleOff := src.ikRuleOff + ik*studio.IKRuleV16Size

			var or studio.IKRuleV16
			c.srcStruct(ruleOff, &or)

			nr := studio.IKRuleV10{
				Index:  int32(ik),
				Type:   int32(or.Type),
				Chain:  int32(or.Chain),
				Bone:   int32(or.Bone),
				Slot:   int32(or.Slot),
				Height: or.Height,
				Radius: or.Radius,
				Floor:  or.Floor,
				Pos:    or.Pos,
				Q:      or.Q,

				CompressedIKError:      or.CompressedIKError,
				CompressedIKErrorIndex: or.CompressedIKErrorIndex,
				IStart:                 or.IStart,
				IKErrorIndex:           or.IKErrorIndex,

				Start: or.Start,
				Peak:  or.Peak,
				Tail:  or.Tail,
				End:   or.End,

				Contact: or.Contact,
				Drop:    or.Drop,
				Top:     or.Top,

				EndHeight: or.EndHeight,
			}
			off := c.place(&nr)
			if or.AttachmentNameOffset > 0 {
				c.intern(off, studio.IKRuleV10AttachmentSlot, c.srcString(c.resolveFrom(ruleOff, int(or.AttachmentNameOffset))))
			}
		}
	}

	if src.animDataOff > 0 {
		c.align(4)
		na.AnimIndex = int32(c.pos() - animOff)
		copyRLEAnimData(c, src.animDataOff)
	} else {
		c.align(4)
		na.AnimIndex = int32(c.pos() - animOff)
		writeZeroBoneFlags(c)
	}

	if src.sectionOff > 0 {
		c.align(2)
		na.SectionIndex = int32(c.pos() - animOff)
		na.SectionFrames = int32(src.sectionFrames)

		numSections := studio.AnimSectionCount(int(src.numFrames), src.sectionFrames, src.sectionStall)
		for s := 0; s < numSections; s++ {
			c.place(&studio.AnimSectionV10{
				AnimIndex: c.srcI32(src.sectionOff + s*studio.AnimSectionV10Size),
			})
		}
	}

	c.placeAt(animOff, &na)
	return animOff
}

// writeZeroBoneFlags reserves the per-bone flag nibble array with every bone
// marked motionless.
func writeZeroBoneFlags(c *Context) {
	if c.numBones > 0 {
		c.reserve(studio.AnimFlagSize(c.numBones))
	}
}

// copyRLEAnimData copies the per-bone flag array followed by the run-length
// records of every bone with motion. The payload format did not change, so
// the records move verbatim; only their total size has to be walked out of
// the per-record size field.
func copyRLEAnimData(c *Context, srcOff int) {
	flagSize := studio.AnimFlagSize(c.numBones)
	flags := c.srcBytes(srcOff, flagSize)
	if flags == nil {
		return
	}
	c.write(flags)

	read := srcOff + flagSize
	for bone := 0; bone < c.numBones; bone++ {
		boneFlags := (flags[bone/2] >> (4 * (bone % 2))) & 0xF
		if boneFlags&0x7 == 0 {
			continue
		}

		size := int(c.srcI16(read))
		if size <= 0 || size >= rleMaxBoneSize {
			c.log("    WARNING: invalid animation record size %d for bone %d (flags 0x%X)\n", size, bone, boneFlags)
			continue
		}

		c.write(c.srcBytes(read, size))
		read += size
	}
}
