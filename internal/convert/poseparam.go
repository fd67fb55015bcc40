package convert

import "github.com/CafeFPS/rmdlconv/internal/studio"

// convertPoseParamsV16 returns the offset of the pose parameter array.
func convertPoseParamsV16(c *Context, old *studio.HeaderV16) int {
	num := int(old.PoseParamCount)
	index := c.pos()

	if num == 0 {
		return index
	}

	c.log("converting %d poseparams...\n", num)

	for i := 0; i < num; i++ {
		srcOff := c.resolve(int(old.PoseParamOffset)) + i*studio.PoseParamV16Size

		var op studio.PoseParamV16
		c.srcStruct(srcOff, &op)

		np := studio.PoseParamV10{
			Flags: int32(op.Flags),
			Start: op.Start,
			End:   op.End,
			Loop:  op.Loop,
		}
		off := c.place(&np)
		c.intern(off, studio.PoseParamV10NameSlot, c.srcString(c.resolveFrom(srcOff, int(op.NameOffset))))
	}

	c.align(4)
	return index
}

func convertPoseParamsV14(c *Context, old *studio.HeaderV14) int {
	num := int(old.NumLocalPoseParameters)
	index := c.pos()

	if num == 0 {
		return index
	}

	c.log("converting %d poseparams...\n", num)

	for i := 0; i < num; i++ {
		srcOff := c.resolve(int(old.LocalPoseParamIndex)) + i*studio.PoseParamV14Size

		var op studio.PoseParamV14
		c.srcStruct(srcOff, &op)

		np := studio.PoseParamV10{
			Flags: op.Flags,
			Start: op.Start,
			End:   op.End,
			Loop:  op.Loop,
		}
		off := c.place(&np)
		c.intern(off, studio.PoseParamV10NameSlot, c.srcString(c.resolveFrom(srcOff, int(op.NameIndex))))
	}

	c.align(4)
	return index
}
