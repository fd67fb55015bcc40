package convert

import "github.com/CafeFPS/rmdlconv/internal/studio"

var (
	bodyPartModelSlot = studio.FieldOffset(studio.BodyPartV10{}, "ModelIndex")
	modelMeshSlot     = studio.FieldOffset(studio.ModelV10{}, "MeshIndex")
)

// convertBodyPartsV16 expands the compact body part tree into the wide
// records. Vertex counts and offsets stay zero; the geometry lives in the
// sibling file.
func convertBodyPartsV16(c *Context, old *studio.HeaderV16) {
	numBodyParts := int(old.BodyPartCount)
	c.log("converting %d bodyparts...\n", numBodyParts)

	c.hdr.BodyPartIndex = int32(c.pos())

	srcParts := make([]studio.BodyPartV16, numBodyParts)
	partOffs := make([]int, numBodyParts)

	for i := 0; i < numBodyParts; i++ {
		srcOff := c.resolve(int(old.BodyPartOffset)) + i*studio.BodyPartV16Size
		c.srcStruct(srcOff, &srcParts[i])

		name := c.srcString(c.resolveFrom(srcOff, int(srcParts[i].NameOffset)))
		c.log("  bodypart: %s\n", name)

		np := studio.BodyPartV10{
			NumModels: srcParts[i].NumModels,
			Base:      srcParts[i].Base,
		}
		partOffs[i] = c.place(&np)
		c.intern(partOffs[i], studio.BodyPartV10NameSlot, name)
	}

	for i := 0; i < numBodyParts; i++ {
		srcPartOff := c.resolve(int(old.BodyPartOffset)) + i*studio.BodyPartV16Size
		c.putI32(partOffs[i]+bodyPartModelSlot, int32(c.pos()-partOffs[i]))

		numModels := int(srcParts[i].NumModels)
		srcModels := make([]studio.ModelV16, numModels)
		modelOffs := make([]int, numModels)

		for j := 0; j < numModels; j++ {
			srcOff := c.resolveFrom(srcPartOff, int(srcParts[i].ModelIndex)) + j*studio.ModelV16Size
			c.srcStruct(srcOff, &srcModels[j])

			var nm studio.ModelV10
			studio.PutName(nm.Name[:], c.srcString(c.resolveFrom(srcOff, int(srcModels[j].NameOffset))))
			nm.NumMeshes = srcModels[j].NumMeshes
			modelOffs[j] = c.place(&nm)
		}

		for j := 0; j < numModels; j++ {
			srcModelOff := c.resolveFrom(srcPartOff, int(srcParts[i].ModelIndex)) + j*studio.ModelV16Size
			c.putI32(modelOffs[j]+modelMeshSlot, int32(c.pos()-modelOffs[j]))

			for k := 0; k < int(srcModels[j].NumMeshes); k++ {
				srcOff := c.resolveFrom(srcModelOff, int(srcModels[j].MeshIndex)) + k*studio.MeshV16Size

				var om studio.MeshV16
				c.srcStruct(srcOff, &om)

				nm := studio.MeshV10{
					Material: om.Material,
					MeshID:   om.MeshID,
					Center:   om.Center,
				}
				meshOff := c.pos()
				nm.ModelIndex = int32(modelOffs[j] - meshOff)
				c.place(&nm)
			}
		}
	}

	c.align(4)
}

// convertBodyPartsV14 copies the wide 14/15 records; v15 body parts carry
// two extra fields the output drops. The model record loses the split mesh
// counts and the third UV channel.
func convertBodyPartsV14(c *Context, old *studio.HeaderV14, v15 bool) {
	numBodyParts := int(old.NumBodyParts)
	c.log("converting %d bodyparts...\n", numBodyParts)

	c.hdr.BodyPartIndex = int32(c.pos())

	partStride := studio.BodyPartV14Size
	if v15 {
		partStride = studio.BodyPartV15Size
	}

	srcParts := make([]studio.BodyPartV15, numBodyParts)
	partOffs := make([]int, numBodyParts)

	for i := 0; i < numBodyParts; i++ {
		srcOff := c.resolve(int(old.BodyPartIndex)) + i*partStride
		if v15 {
			c.srcStruct(srcOff, &srcParts[i])
		} else {
			var p studio.BodyPartV14
			c.srcStruct(srcOff, &p)
			srcParts[i] = studio.BodyPartV15{
				NameIndex:  p.NameIndex,
				NumModels:  p.NumModels,
				Base:       p.Base,
				ModelIndex: p.ModelIndex,
			}
		}

		name := c.srcString(c.resolveFrom(srcOff, int(srcParts[i].NameIndex)))
		c.log("  bodypart: %s\n", name)

		np := studio.BodyPartV10{
			NumModels: srcParts[i].NumModels,
			Base:      srcParts[i].Base,
		}
		partOffs[i] = c.place(&np)
		c.intern(partOffs[i], studio.BodyPartV10NameSlot, name)
	}

	for i := 0; i < numBodyParts; i++ {
		srcPartOff := c.resolve(int(old.BodyPartIndex)) + i*partStride
		c.putI32(partOffs[i]+bodyPartModelSlot, int32(c.pos()-partOffs[i]))

		numModels := int(srcParts[i].NumModels)
		srcModels := make([]studio.ModelV14, numModels)
		modelOffs := make([]int, numModels)

		for j := 0; j < numModels; j++ {
			srcOff := c.resolveFrom(srcPartOff, int(srcParts[i].ModelIndex)) + j*studio.ModelV14Size
			c.srcStruct(srcOff, &srcModels[j])

			om := &srcModels[j]
			nm := studio.ModelV10{
				Name:            om.Name,
				Type:            om.Type,
				BoundingRadius:  om.BoundingRadius,
				NumMeshes:       om.NumMeshes,
				NumVertices:     om.NumVertices,
				VertexIndex:     om.VertexIndex,
				TangentsIndex:   om.TangentsIndex,
				NumAttachments:  om.NumAttachments,
				AttachmentIndex: om.AttachmentIndex,
				ColorIndex:      om.ColorIndex,
				UV2Index:        om.UV2Index,
			}
			modelOffs[j] = c.place(&nm)
		}

		for j := 0; j < numModels; j++ {
			srcModelOff := c.resolveFrom(srcPartOff, int(srcParts[i].ModelIndex)) + j*studio.ModelV14Size
			c.putI32(modelOffs[j]+modelMeshSlot, int32(c.pos()-modelOffs[j]))

			for k := 0; k < int(srcModels[j].NumMeshes); k++ {
				srcOff := c.resolveFrom(srcModelOff, int(srcModels[j].MeshIndex)) + k*studio.MeshV14Size

				var om studio.MeshV14
				c.srcStruct(srcOff, &om)

				nm := studio.MeshV10{
					Material:       int32(om.Material),
					NumVertices:    om.NumVertices,
					VertexOffset:   om.VertexOffset,
					MeshID:         om.MeshID,
					Center:         om.Center,
					NumLODVertexes: om.NumLODVertexes,
				}
				meshOff := c.pos()
				nm.ModelIndex = int32(modelOffs[j] - meshOff)
				c.place(&nm)
			}
		}
	}

	c.align(4)
}
