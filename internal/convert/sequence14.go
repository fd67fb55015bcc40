package convert

import "github.com/CafeFPS/rmdlconv/internal/studio"

// convertSequencesV14 copies the wide 14/15 sequence records, which match
// the output layout, and rebuilds the blend data behind them. The blend
// slot count in this family is the sum of the group sizes. Event, autolayer
// and IK lock data is not carried across, so those counts reset to keep the
// records self consistent.
func convertSequencesV14(c *Context, old *studio.HeaderV14) {
	numSeqs := int(old.NumLocalSeq)

	c.hdr.LocalSeqIndex = int32(c.pos())
	c.hdr.NumLocalSeq = int32(numSeqs)

	if numSeqs == 0 {
		return
	}

	c.log("converting %d sequences...\n", numSeqs)

	seqBase := c.resolve(int(old.LocalSeqIndex))

	srcSeqs := make([]studio.SeqDescV14, numSeqs)
	newSeqs := make([]studio.SeqDescV10, numSeqs)
	seqOffs := make([]int, numSeqs)
	labels := make([]string, numSeqs)

	for i := 0; i < numSeqs; i++ {
		srcOff := seqBase + i*studio.SeqDescV14Size
		c.srcStruct(srcOff, &srcSeqs[i])
		os := &srcSeqs[i]

		labels[i] = c.srcString(c.resolveFrom(srcOff, int(os.LabelIndex)))
		c.log("  seq %d: label='%s'\n", i, labels[i])

		ns := studio.SeqDescV10(*os)
		ns.LabelIndex = 0
		ns.ActivityNameIndex = 0

		ns.NumEvents = 0
		ns.EventIndex = 0
		ns.NumAutoLayers = 0
		ns.AutoLayerIndex = 0
		ns.NumIKLocks = 0
		ns.IKLockIndex = 0
		ns.NumActivityModifiers = 0
		ns.ActivityModifierIndex = 0
		ns.KeyValueIndex = 0
		ns.KeyValueSize = 0
		ns.AnimIndexIndex = 0
		ns.WeightListIndex = 0
		ns.PoseKeyIndex = 0

		newSeqs[i] = ns
		seqOffs[i] = c.place(&newSeqs[i])
		c.intern(seqOffs[i], studio.SeqDescV10LabelSlot, labels[i])
		if os.ActivityNameIndex > 0 {
			c.intern(seqOffs[i], studio.SeqDescV10ActivitySlot, c.srcString(c.resolveFrom(srcOff, int(os.ActivityNameIndex))))
		}
	}

	for i := 0; i < numSeqs; i++ {
		srcOff := seqBase + i*studio.SeqDescV14Size
		os := &srcSeqs[i]
		ns := &newSeqs[i]
		seqOff := seqOffs[i]

		numAnims := int(os.GroupSize[0]) + int(os.GroupSize[1])

		if numAnims > 0 && os.AnimIndexIndex > 0 {
			ns.AnimIndexIndex = int32(c.pos() - seqOff)
			animIndexOff := c.reserve(numAnims * 4)

			for a := 0; a < numAnims; a++ {
				oldRel := c.srcI32(c.resolveFrom(srcOff, int(os.AnimIndexIndex)) + a*4)
				animOff := copyAnimDescV14(c, c.resolveFrom(srcOff, int(oldRel)), labels[i])
				c.putI32(animIndexOff+a*4, int32(animOff-seqOff))
			}
		}

		if os.WeightListIndex > 0 {
			ns.WeightListIndex = int32(c.pos() - seqOff)
			c.write(c.srcBytes(c.resolveFrom(srcOff, int(os.WeightListIndex)), c.numBones*4))
		}

		if os.PoseKeyIndex > 0 {
			ns.PoseKeyIndex = int32(c.pos() - seqOff)
			c.write(c.srcBytes(c.resolveFrom(srcOff, int(os.PoseKeyIndex)), numAnims*4))
		}

		c.placeAt(seqOff, ns)
	}

	c.align(4)
}

// copyAnimDescV14 copies one wide animation descriptor and its embedded
// run-length payload, returning the new descriptor's offset.
func copyAnimDescV14(c *Context, srcOff int, seqLabel string) int {
	var oa studio.AnimDescV14
	c.srcStruct(srcOff, &oa)

	animOff := c.place(&studio.AnimDescV10{})

	var na studio.AnimDescV10
	na.BasePtr = oa.BasePtr
	na.FPS = oa.FPS
	na.Flags = oa.Flags
	na.NumFrames = oa.NumFrames

	name := ""
	if oa.NameIndex > 0 {
		name = c.srcString(c.resolveFrom(srcOff, int(oa.NameIndex)))
	}
	if name == "" {
		name = seqLabel
	}
	c.intern(animOff, studio.AnimDescV10NameSlot, name)

	na.AnimIndex = int32(c.pos() - animOff)
	if oa.AnimIndex > 0 {
		copyRLEAnimData(c, c.resolveFrom(srcOff, int(oa.AnimIndex)))
	} else {
		writeZeroBoneFlags(c)
	}

	c.placeAt(animOff, &na)
	return animOff
}
