package convert

import "github.com/CafeFPS/rmdlconv/internal/studio"

var ruiMeshIndexSlot = studio.FieldOffset(studio.RUIHeaderV10{}, "RUIMeshIndex")

// convertUIPanels copies the panel mesh blobs, which kept the v10 layout in
// every later version; only the header-relative mesh offsets change because
// the copied data lands behind the realigned header run. Offsets inside one
// mesh are relative to the end of its mesh record and survive as-is.
func convertUIPanels(c *Context, uiPanelCount, uiPanelOffset int) {
	if uiPanelCount == 0 {
		return
	}

	c.log("converting %d UI panel meshes...\n", uiPanelCount)

	c.hdr.UIPanelCount = int32(uiPanelCount)
	c.hdr.UIPanelOffset = int32(c.pos())

	hdrOffs := make([]int, uiPanelCount)
	srcHdrs := make([]studio.RUIHeaderV10, uiPanelCount)

	for i := 0; i < uiPanelCount; i++ {
		srcOff := uiPanelOffset + i*studio.RUIHeaderV10Size
		c.srcStruct(srcOff, &srcHdrs[i])
		hdrOffs[i] = c.place(&srcHdrs[i])
	}

	c.align(16)

	for i := 0; i < uiPanelCount; i++ {
		srcMeshOff := uiPanelOffset + i*studio.RUIHeaderV10Size + int(srcHdrs[i].RUIMeshIndex)

		var mesh studio.RUIMeshV10
		c.srcStruct(srcMeshOff, &mesh)

		meshOff := c.place(&mesh)
		c.putI32(hdrOffs[i]+ruiMeshIndexSlot, int32(meshOff-hdrOffs[i]))

		after := srcMeshOff + studio.RUIMeshV10Size

		// Mesh name and padding fill the gap up to the parent array.
		c.write(c.srcBytes(after, int(mesh.ParentIndex)))
		c.write(c.srcBytes(after+int(mesh.ParentIndex), int(mesh.NumParents)*2))
		c.write(c.srcBytes(after+int(mesh.VertMapIndex), int(mesh.NumFaces)*studio.RUIVertMapV10Size))
		c.write(c.srcBytes(after+int(mesh.UnkIndex), int(mesh.NumFaces)*studio.RUIFourthVertV10Size))
		c.write(c.srcBytes(after+int(mesh.VertexIndex), int(mesh.NumVertices)*studio.RUIVertV10Size))
		c.write(c.srcBytes(after+int(mesh.FaceDataIndex), int(mesh.NumFaces)*studio.RUIMeshFaceV10Size))

		c.log("  UI panel %d: %d parents, %d verts, %d faces\n",
			i, mesh.NumParents, mesh.NumVertices, mesh.NumFaces)
	}

	c.align(4)
}
