package convert

import "github.com/CafeFPS/rmdlconv/internal/studio"

var hitboxSetIndexSlot = studio.FieldOffset(studio.HitboxSetV10{}, "HitboxIndex")

// convertHitboxesV16 writes the set headers first, then each set's hitboxes,
// backfilling every set's hitbox offset once its boxes are placed.
func convertHitboxesV16(c *Context, old *studio.HeaderV16) {
	numSets := int(old.HitboxSetCount)
	c.log("converting %d hitboxsets...\n", numSets)

	c.hdr.HitboxSetIndex = int32(c.pos())

	srcSets := make([]studio.HitboxSetV16, numSets)
	setOffs := make([]int, numSets)

	for i := 0; i < numSets; i++ {
		srcOff := c.resolve(int(old.HitboxSetOffset)) + i*studio.HitboxSetV16Size
		c.srcStruct(srcOff, &srcSets[i])

		ns := studio.HitboxSetV10{NumHitboxes: int32(srcSets[i].NumHitboxes)}
		setOffs[i] = c.place(&ns)
		c.intern(setOffs[i], studio.HitboxSetV10NameSlot, c.srcString(c.resolveFrom(srcOff, int(srcSets[i].NameOffset))))
	}

	for i := 0; i < numSets; i++ {
		srcSetOff := c.resolve(int(old.HitboxSetOffset)) + i*studio.HitboxSetV16Size
		c.putI32(setOffs[i]+hitboxSetIndexSlot, int32(c.pos()-setOffs[i]))

		for j := 0; j < int(srcSets[i].NumHitboxes); j++ {
			srcOff := c.resolveFrom(srcSetOff, int(srcSets[i].HitboxIndex)) + j*studio.HitboxV16Size

			var ob studio.HitboxV16
			c.srcStruct(srcOff, &ob)

			nb := studio.HitboxV10{
				Bone:  int32(ob.Bone),
				Group: int32(ob.Group),
				BBMin: ob.BBMin,
				BBMax: ob.BBMax,
			}
			off := c.place(&nb)
			c.intern(off, studio.HitboxV10NameSlot, c.srcString(c.resolveFrom(srcOff, int(ob.NameOffset))))
			c.intern(off, studio.HitboxV10HitDataGroupSlot, c.srcString(c.resolveFrom(srcOff, int(ob.HitDataGroupOffset))))
		}
	}

	c.align(4)
}

// convertHitboxesV14 does the same over the wide records, which carry the
// output shape already.
func convertHitboxesV14(c *Context, old *studio.HeaderV14) {
	numSets := int(old.NumHitboxSets)
	c.log("converting %d hitboxsets...\n", numSets)

	c.hdr.HitboxSetIndex = int32(c.pos())

	srcSets := make([]studio.HitboxSetV14, numSets)
	setOffs := make([]int, numSets)

	for i := 0; i < numSets; i++ {
		srcOff := c.resolve(int(old.HitboxSetIndex)) + i*studio.HitboxSetV14Size
		c.srcStruct(srcOff, &srcSets[i])

		ns := studio.HitboxSetV10{NumHitboxes: srcSets[i].NumHitboxes}
		setOffs[i] = c.place(&ns)
		c.intern(setOffs[i], studio.HitboxSetV10NameSlot, c.srcString(c.resolveFrom(srcOff, int(srcSets[i].NameIndex))))
	}

	for i := 0; i < numSets; i++ {
		srcSetOff := c.resolve(int(old.HitboxSetIndex)) + i*studio.HitboxSetV14Size
		c.putI32(setOffs[i]+hitboxSetIndexSlot, int32(c.pos()-setOffs[i]))

		for j := 0; j < int(srcSets[i].NumHitboxes); j++ {
			srcOff := c.resolveFrom(srcSetOff, int(srcSets[i].HitboxIndex)) + j*studio.HitboxV14Size

			var ob studio.HitboxV14
			c.srcStruct(srcOff, &ob)

			nb := studio.HitboxV10{
				Bone:  ob.Bone,
				Group: ob.Group,
				BBMin: ob.BBMin,
				BBMax: ob.BBMax,
			}
			off := c.place(&nb)
			c.intern(off, studio.HitboxV10NameSlot, c.srcString(c.resolveFrom(srcOff, int(ob.NameIndex))))
			c.intern(off, studio.HitboxV10HitDataGroupSlot, c.srcString(c.resolveFrom(srcOff, int(ob.HitDataGroupOffset))))
		}
	}

	c.align(4)
}
