package convert

import "github.com/CafeFPS/rmdlconv/internal/studio"

// convertAttachmentsV16 returns the offset of the attachment array.
func convertAttachmentsV16(c *Context, old *studio.HeaderV16) int {
	num := int(old.AttachmentCount)
	c.log("converting %d attachments...\n", num)

	index := c.pos()

	for i := 0; i < num; i++ {
		srcOff := c.resolve(int(old.AttachmentOffset)) + i*studio.AttachmentV16Size

		var oa studio.AttachmentV16
		c.srcStruct(srcOff, &oa)

		na := studio.AttachmentV10{
			Flags:     oa.Flags,
			LocalBone: int32(oa.LocalBone),
			Local:     oa.Local,
		}
		off := c.place(&na)
		c.intern(off, studio.AttachmentV10NameSlot, c.srcString(c.resolveFrom(srcOff, int(oa.NameOffset))))
	}

	c.align(4)
	return index
}

func convertAttachmentsV14(c *Context, old *studio.HeaderV14) int {
	num := int(old.NumLocalAttachments)
	c.log("converting %d attachments...\n", num)

	index := c.pos()

	for i := 0; i < num; i++ {
		srcOff := c.resolve(int(old.LocalAttachmentIndex)) + i*studio.AttachmentV14Size

		var oa studio.AttachmentV14
		c.srcStruct(srcOff, &oa)

		na := studio.AttachmentV10{
			Flags:     oa.Flags,
			LocalBone: oa.LocalBone,
			Local:     oa.Local,
		}
		off := c.place(&na)
		c.intern(off, studio.AttachmentV10NameSlot, c.srcString(c.resolveFrom(srcOff, int(oa.NameIndex))))
	}

	c.align(4)
	return index
}
