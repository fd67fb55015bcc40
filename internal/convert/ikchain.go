package convert

import "github.com/CafeFPS/rmdlconv/internal/studio"

// convertIKChainsV16 writes all chain headers followed by all links; each
// header's link offset is computed up front from the remaining header run
// and the links already placed.
func convertIKChainsV16(c *Context, old *studio.HeaderV16) {
	c.hdr.IKChainIndex = int32(c.pos())

	numChains := int(old.IKChainCount)
	if numChains == 0 {
		return
	}

	c.log("converting %d ikchains...\n", numChains)

	srcChains := make([]studio.IKChainV16, numChains)
	linkCount := 0

	for i := 0; i < numChains; i++ {
		srcOff := c.resolve(int(old.IKChainOffset)) + i*studio.IKChainV16Size
		c.srcStruct(srcOff, &srcChains[i])

		nc := studio.IKChainV10{
			LinkType:  int32(srcChains[i].LinkType),
			NumLinks:  srcChains[i].NumLinks,
			LinkIndex: int32(studio.IKLinkV10Size*linkCount + studio.IKChainV10Size*(numChains-i)),
			Unk:       srcChains[i].Unk,
		}
		off := c.place(&nc)
		c.intern(off, studio.IKChainV10NameSlot, c.srcString(c.resolveFrom(srcOff, int(srcChains[i].NameOffset))))

		linkCount += int(srcChains[i].NumLinks)
	}

	for i := 0; i < numChains; i++ {
		srcChainOff := c.resolve(int(old.IKChainOffset)) + i*studio.IKChainV16Size

		for j := 0; j < int(srcChains[i].NumLinks); j++ {
			srcOff := c.resolveFrom(srcChainOff, int(srcChains[i].LinkIndex)) + j*studio.IKLinkV16Size

			var ol studio.IKLinkV16
			c.srcStruct(srcOff, &ol)

			c.place(&studio.IKLinkV10{Bone: ol.Bone, KneeDir: ol.KneeDir})
		}
	}

	c.align(4)
}

func convertIKChainsV14(c *Context, old *studio.HeaderV14) {
	c.hdr.IKChainIndex = int32(c.pos())

	numChains := int(old.NumIKChains)
	if numChains == 0 {
		return
	}

	c.log("converting %d ikchains...\n", numChains)

	srcChains := make([]studio.IKChainV14, numChains)
	linkCount := 0

	for i := 0; i < numChains; i++ {
		srcOff := c.resolve(int(old.IKChainIndex)) + i*studio.IKChainV14Size
		c.srcStruct(srcOff, &srcChains[i])

		nc := studio.IKChainV10{
			LinkType:  srcChains[i].LinkType,
			NumLinks:  srcChains[i].NumLinks,
			LinkIndex: int32(studio.IKLinkV10Size*linkCount + studio.IKChainV10Size*(numChains-i)),
			Unk:       srcChains[i].Unk,
		}
		off := c.place(&nc)
		c.intern(off, studio.IKChainV10NameSlot, c.srcString(c.resolveFrom(srcOff, int(srcChains[i].NameIndex))))

		linkCount += int(srcChains[i].NumLinks)
	}

	for i := 0; i < numChains; i++ {
		srcChainOff := c.resolve(int(old.IKChainIndex)) + i*studio.IKChainV14Size

		for j := 0; j < int(srcChains[i].NumLinks); j++ {
			srcOff := c.resolveFrom(srcChainOff, int(srcChains[i].LinkIndex)) + j*studio.IKLinkV14Size

			var ol studio.IKLinkV14
			c.srcStruct(srcOff, &ol)

			c.place(&studio.IKLinkV10{Bone: ol.Bone, KneeDir: ol.KneeDir})
		}
	}

	c.align(4)
}
