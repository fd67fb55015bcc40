package convert

import (
	"fmt"

	"github.com/CafeFPS/rmdlconv/internal/studio"
)

// convertTexturesV16 expands the material guid array into texture records.
// Newer versions dropped material names entirely, so every record gets the
// same placeholder name and keeps its guid for lookup; the shader type table
// and a single empty texture directory are emitted alongside.
func convertTexturesV16(c *Context, old *studio.HeaderV16) {
	numTextures := int(old.TextureCount)
	c.log("converting %d textures...\n", numTextures)

	c.hdr.TextureIndex = int32(c.pos())

	for i := 0; i < numTextures; i++ {
		guid := c.srcU64(c.resolve(int(old.TextureOffset)) + i*8)

		nt := studio.TextureV10{Guid: guid}
		off := c.place(&nt)
		c.intern(off, studio.TextureV10NameSlot, "dev/empty")

		c.log("  texture %d: GUID=0x%016X\n", i, guid)
	}
	c.align(4)

	c.hdr.MaterialTypesIndex = int32(c.pos())
	types := make([]byte, numTextures)
	for i := range types {
		types[i] = studio.ShaderTypeRGDP
	}
	c.write(types)
	c.align(4)

	c.hdr.CDTextureIndex = int32(c.pos())
	slot := c.reserve(4)
	c.intern(0, slot, "")
}

// convertSkinsV16 copies the skin reference table and re-interns the family
// names, which newer versions store as unaligned 16-bit offsets right after
// the table. Families with a missing or garbage name get a generated one.
func convertSkinsV16(c *Context, old *studio.HeaderV16) {
	numSkinRef := int(old.SkinRefCount)
	numFamilies := int(old.SkinFamilyCount)
	c.log("converting %d skins (%d skinrefs)...\n", numFamilies, numSkinRef)

	c.hdr.SkinIndex = int32(c.pos())

	tableSize := 2 * numSkinRef * numFamilies
	c.write(c.srcBytes(c.resolve(int(old.SkinOffset)), tableSize))
	c.align(4)

	nameTableOff := c.resolve(int(old.SkinOffset)) + tableSize

	for i := 0; i < numFamilies-1; i++ {
		nameOffset := c.srcU16(nameTableOff + i*2)

		name := ""
		if nameOffset > 0 {
			name = c.srcString(c.resolve(int(nameOffset)))
		}
		if name == "" || len(name) >= 256 {
			name = fmt.Sprintf("skin%d", i+1)
		}

		slot := c.reserve(4)
		c.intern(0, slot, name)
	}

	c.align(4)
}

// convertTexturesV14 keeps the original material names and directories of
// the wide layout.
func convertTexturesV14(c *Context, old *studio.HeaderV14) {
	numTextures := int(old.NumTextures)
	c.log("converting %d textures...\n", numTextures)

	c.hdr.TextureIndex = int32(c.pos())

	for i := 0; i < numTextures; i++ {
		srcOff := c.resolve(int(old.TextureIndex)) + i*studio.TextureV14Size

		var ot studio.TextureV14
		c.srcStruct(srcOff, &ot)

		nt := studio.TextureV10{Guid: ot.Guid}
		off := c.place(&nt)
		c.intern(off, studio.TextureV10NameSlot, c.srcString(c.resolveFrom(srcOff, int(ot.NameIndex))))
	}
	c.align(4)

	if old.MaterialTypesIndex > 0 {
		c.hdr.MaterialTypesIndex = int32(c.pos())
		c.write(c.srcBytes(c.resolve(int(old.MaterialTypesIndex)), numTextures))
	} else {
		c.hdr.MaterialTypesIndex = int32(c.pos())
		types := make([]byte, numTextures)
		for i := range types {
			types[i] = studio.ShaderTypeRGDP
		}
		c.write(types)
	}
	c.align(4)

	c.hdr.CDTextureIndex = int32(c.pos())
	for i := 0; i < int(old.NumCDTextures); i++ {
		dir := c.srcString(c.resolve(int(c.srcI32(c.resolve(int(old.CDTextureIndex)) + i*4))))
		slot := c.reserve(4)
		c.intern(0, slot, dir)
	}
	c.align(4)
}

// convertSkinsV14 copies the aligned skin table of the wide layout.
func convertSkinsV14(c *Context, old *studio.HeaderV14) {
	numSkinRef := int(old.NumSkinRef)
	numFamilies := int(old.NumSkinFamilies)
	c.log("converting %d skins (%d skinrefs)...\n", numFamilies, numSkinRef)

	c.hdr.SkinIndex = int32(c.pos())

	tableSize := 2 * numSkinRef * numFamilies
	c.write(c.srcBytes(c.resolve(int(old.SkinIndex)), tableSize))
	c.align(4)

	nameTableOff := c.resolve(int(old.SkinIndex)) + tableSize
	if rem := nameTableOff % 4; rem != 0 {
		nameTableOff += 4 - rem
	}

	for i := 0; i < numFamilies-1; i++ {
		nameOffset := c.srcI32(nameTableOff + i*4)

		name := ""
		if nameOffset > 0 {
			name = c.srcString(c.resolve(int(nameOffset)))
		}
		if name == "" || len(name) >= 256 {
			name = fmt.Sprintf("skin%d", i+1)
		}

		slot := c.reserve(4)
		c.intern(0, slot, name)
	}

	c.align(4)
}
