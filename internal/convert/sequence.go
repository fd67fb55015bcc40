package convert

import "github.com/CafeFPS/rmdlconv/internal/studio"

// convertSequencesV16 handles sub-versions 16 through 19.1. The record
// stride grows by 4 bytes from sub-version 18 and the trailing bytes carry
// nothing the output needs; 19.1 swaps the embedded animation payload for an
// external asset reference, expressed through the readAnim callback.
func convertSequencesV16(c *Context, old *studio.HeaderV16, stride int, readAnim func(c *Context, off int) animDescSource) {
	numSeqs := int(old.LocalSeqCount)

	c.hdr.LocalSeqIndex = int32(c.pos())
	c.hdr.NumLocalSeq = int32(numSeqs)

	if numSeqs == 0 {
		return
	}

	c.log("converting %d sequences (stride=%d bytes)...\n", numSeqs, stride)

	seqBase := c.resolve(int(old.LocalSeqOffset))

	srcSeqs := make([]studio.SeqDescV16, numSeqs)
	newSeqs := make([]studio.SeqDescV10, numSeqs)
	seqOffs := make([]int, numSeqs)
	labels := make([]string, numSeqs)

	for i := 0; i < numSeqs; i++ {
		srcOff := seqBase + i*stride
		c.srcStruct(srcOff, &srcSeqs[i])
		os := &srcSeqs[i]

		labels[i] = c.srcString(c.resolveFrom(srcOff, int(os.LabelOffset)))
		c.log("  seq %d: label='%s'\n", i, labels[i])

		ns := &newSeqs[i]
		ns.Flags = os.Flags
		if os.Activity == 65535 {
			ns.Activity = -1
		} else {
			ns.Activity = int32(os.Activity)
		}
		ns.ActWeight = int32(os.ActWeight)
		ns.BBMin = os.BBMin
		ns.BBMax = os.BBMax
		ns.NumBlends = int32(os.NumBlends)
		ns.GroupSize[0] = int32(os.GroupSize[0])
		ns.GroupSize[1] = int32(os.GroupSize[1])
		ns.ParamIndex[0] = int32(os.ParamIndex[0])
		ns.ParamIndex[1] = int32(os.ParamIndex[1])
		ns.ParamStart = os.ParamStart
		ns.ParamEnd = os.ParamEnd
		ns.FadeInTime = os.FadeInTime
		ns.FadeOutTime = os.FadeOutTime
		ns.LocalEntryNode = int32(os.LocalEntryNode)
		ns.LocalExitNode = int32(os.LocalExitNode)
		ns.NumIKRules = int32(os.NumIKRules)
		ns.NumAutoLayers = int32(os.NumAutoLayers)
		ns.NumIKLocks = int32(os.NumIKLocks)
		ns.NumActivityModifiers = int32(os.NumActivityModifiers)
		ns.IKResetMask = os.IKResetMask
		ns.CyclePoseIndex = int32(os.CyclePoseIndex)

		seqOffs[i] = c.place(ns)
		c.intern(seqOffs[i], studio.SeqDescV10LabelSlot, labels[i])
		if os.ActivityNameOffset > 0 {
			c.intern(seqOffs[i], studio.SeqDescV10ActivitySlot, c.srcString(c.resolveFrom(srcOff, int(os.ActivityNameOffset))))
		}
	}

	for i := 0; i < numSeqs; i++ {
		srcOff := seqBase + i*stride
		os := &srcSeqs[i]
		ns := &newSeqs[i]
		seqOff := seqOffs[i]

		numAnims := int(os.GroupSize[0]) * int(os.GroupSize[1])
		if numAnims <= 0 {
			numAnims = 1
		}

		c.align(4)
		ns.AnimIndexIndex = int32(c.pos() - seqOff)
		animIndexOff := c.reserve(numAnims * 4)

		for a := 0; a < numAnims; a++ {
			c.align(4)

			src := animDescSource{}
			if os.AnimIndexIndex > 0 {
				rel := c.srcU16(c.resolveFrom(srcOff, int(os.AnimIndexIndex)) + a*2)
				if rel > 0 {
					src = readAnim(c, c.resolveFrom(srcOff, int(rel)))
				}
			}

			animOff := writeAnimData(c, src, labels[i])
			c.putI32(animIndexOff+a*4, int32(animOff-seqOff))

			c.align(2)
		}

		if os.NumAutoLayers > 0 && os.AutoLayerIndex > 0 {
			c.align(4)
			ns.AutoLayerIndex = int32(c.pos() - seqOff)

			for a := 0; a < int(os.NumAutoLayers); a++ {
				var oa studio.AutoLayerV16
				c.srcStruct(c.resolveFrom(srcOff, int(os.AutoLayerIndex))+a*studio.AutoLayerV16Size, &oa)

				// The leading asset reference has no v10 slot.
				c.place(&studio.AutoLayerV10{
					ISequence: oa.ISequence,
					IPose:     oa.IPose,
					Flags:     oa.Flags,
					Start:     oa.Start,
					Peak:      oa.Peak,
					Tail:      oa.Tail,
					End:       oa.End,
				})
			}
		}

		if os.NumEvents > 0 && os.EventIndex > 0 {
			c.align(4)
			ns.EventIndex = int32(c.pos() - seqOff)
			ns.NumEvents = int32(os.NumEvents)

			c.log("    converting %d events...\n", os.NumEvents)

			for e := 0; e < int(os.NumEvents); e++ {
				evOff := c.resolveFrom(srcOff, int(os.EventIndex)) + e*studio.EventV16Size

				var oe studio.EventV16
				c.srcStruct(evOff, &oe)

				ne := studio.EventV10{
					Cycle: oe.Cycle,
					Event: oe.Event,
					Type:  oe.Type,
				}
				if oe.OptionsOffset > 0 {
					studio.PutName(ne.Options[:], c.srcString(c.resolveFrom(evOff, int(oe.OptionsOffset))))
				}
				off := c.place(&ne)
				if oe.EventNameOffset > 0 {
					c.intern(off, studio.EventV10NameSlot, c.srcString(c.resolveFrom(evOff, int(oe.EventNameOffset))))
				}
			}
		}

		if os.WeightListIndex > 0 {
			c.align(4)
			ns.WeightListIndex = int32(c.pos() - seqOff)
			c.write(c.srcBytes(c.resolveFrom(srcOff, int(os.WeightListIndex)), c.numBones*4))
		}

		// Pose keys define blend positions along each axis, so the count is
		// the sum of the group sizes, not their product.
		if os.PoseKeyIndex > 0 {
			c.align(4)
			ns.PoseKeyIndex = int32(c.pos() - seqOff)
			numPoseKeys := int(os.GroupSize[0]) + int(os.GroupSize[1])
			c.write(c.srcBytes(c.resolveFrom(srcOff, int(os.PoseKeyIndex)), numPoseKeys*4))
		}

		if os.NumIKLocks > 0 && os.IKLockIndex > 0 {
			c.align(4)
			ns.IKLockIndex = int32(c.pos() - seqOff)

			for ik := 0; ik < int(os.NumIKLocks); ik++ {
				var ol studio.IKLockV16
				c.srcStruct(c.resolveFrom(srcOff, int(os.IKLockIndex))+ik*studio.IKLockV16Size, &ol)

				c.place(&studio.IKLockV10{
					Chain:        int32(ol.Chain),
					PosWeight:    ol.PosWeight,
					LocalQWeight: ol.LocalQWeight,
					Flags:        int32(ol.Flags),
				})
			}
		}

		if os.NumActivityModifiers > 0 && os.ActivityModifierIndex > 0 {
			c.align(4)
			ns.ActivityModifierIndex = int32(c.pos() - seqOff)

			for am := 0; am < int(os.NumActivityModifiers); am++ {
				amOff := c.resolveFrom(srcOff, int(os.ActivityModifierIndex)) + am*studio.ActivityModifierV16Size

				var om studio.ActivityModifierV16
				c.srcStruct(amOff, &om)

				off := c.place(&studio.ActivityModifierV10{Negate: int32(om.Negate)})
				c.intern(off, studio.ActivityModifierV10NameSlot, c.srcString(c.resolveFrom(amOff, int(om.NameOffset))))
				c.align(4)
			}
		}

		c.placeAt(seqOff, ns)
	}

	c.align(4)
}
