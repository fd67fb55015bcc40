package convert

import "github.com/CafeFPS/rmdlconv/internal/studio"

// collMaxLastNodeSize caps the inferred node buffer of the last collision
// header. Its true size is not recorded anywhere, so the copy is bounded by
// the file end and clamped.
const collMaxLastNodeSize = 1 << 20

// collMaxHeaderCount bounds a plausible collision header count; anything
// outside means the declared offset points at garbage and the collision
// block is dropped.
const collMaxHeaderCount = 100

// collHeaderSource is a layout independent view of one input collision
// header. Offsets are relative to the collision block.
type collHeaderSource struct {
	unk       int32
	origin    [3]float32
	scale     float32
	vertIndex int
	leafIndex int
	nodeIndex int
}

// writeCollision rebuilds the collision block at the current output position
// and stamps the header's collision offset. The surface name buffer has no
// size field of its own, so surfaceNamesEnd bounds it. remapSurfaceProp,
// when set, rewrites each surface property id after the copy.
func writeCollision(c *Context, collOff, fileSize int, cm studio.CollModel, headers []collHeaderSource, surfaceNamesEnd int, remapSurfaceProp func(oldID int32) int32) {
	base := c.pos()
	c.putI32(studio.HeaderV10BVHOffsetOff, int32(base))

	headerCount := len(headers)

	var ncm studio.CollModel
	ncm.HeaderCount = int32(headerCount)
	c.place(&ncm)

	newHeaders := make([]studio.CollHeaderV10, headerCount)
	hdrOffs := make([]int, headerCount)
	for i := range newHeaders {
		hdrOffs[i] = c.place(&newHeaders[i])
	}

	surfacePropsSize := int(cm.ContentMasksIndex - cm.SurfacePropsIndex)
	contentMasksSize := int(cm.SurfaceNamesIndex - cm.ContentMasksIndex)
	surfaceNamesSize := surfaceNamesEnd - int(cm.SurfaceNamesIndex)

	ncm.SurfacePropsIndex = int32(c.pos() - base)
	surfPropsOut := c.write(c.srcBytes(c.resolveFrom(collOff, int(cm.SurfacePropsIndex)), surfacePropsSize))

	ncm.ContentMasksIndex = int32(c.pos() - base)
	c.write(c.srcBytes(c.resolveFrom(collOff, int(cm.ContentMasksIndex)), contentMasksSize))

	ncm.SurfaceNamesIndex = int32(c.pos() - base)
	c.write(c.srcBytes(c.resolveFrom(collOff, int(cm.SurfaceNamesIndex)), surfaceNamesSize))

	if remapSurfaceProp != nil {
		// The count comes from the array span, not the header's surface
		// property count, which counts the indirection rows instead. Every
		// entry has to be remapped or climbing surfaces break.
		count := surfacePropsSize / studio.SurfacePropertySize
		for i := 0; i < count; i++ {
			oldID := c.srcI32(c.resolveFrom(collOff, int(cm.SurfacePropsIndex)) + i*studio.SurfacePropertySize)
			c.putI32(surfPropsOut+i*studio.SurfacePropertySize, remapSurfaceProp(oldID))
		}
	}

	for i := range headers {
		oh := &headers[i]
		nh := &newHeaders[i]

		nh.Unk = oh.unk
		nh.Origin = oh.origin
		nh.Scale = oh.scale

		vertSize := oh.leafIndex - oh.vertIndex
		c.align(64)
		nh.VertIndex = int32(c.pos() - base)
		c.write(c.srcBytes(c.resolveFrom(collOff, oh.vertIndex), vertSize))

		// A header's leaves end where the next header's vertices begin; the
		// last header's leaves end at the first node buffer.
		var leafSize int
		if i != headerCount-1 {
			leafSize = headers[i+1].vertIndex - oh.leafIndex
		} else {
			leafSize = headers[0].nodeIndex - oh.leafIndex
		}
		c.align(64)
		nh.BVHLeafIndex = int32(c.pos() - base)
		c.write(c.srcBytes(c.resolveFrom(collOff, oh.leafIndex), leafSize))
	}

	// Node buffers sit contiguously behind every vertex and leaf run.
	for i := range headers {
		oh := &headers[i]
		nh := &newHeaders[i]

		var nodeSize int
		if i != headerCount-1 {
			nodeSize = headers[i+1].nodeIndex - oh.nodeIndex
		} else {
			nodeSize = fileSize - collOff - oh.nodeIndex
			if nodeSize > collMaxLastNodeSize {
				nodeSize = collMaxLastNodeSize
			}
		}
		c.align(64)
		nh.BVHNodeIndex = int32(c.pos() - base)
		c.write(c.srcBytes(c.resolveFrom(collOff, oh.nodeIndex), nodeSize))
	}

	for i := range newHeaders {
		c.placeAt(hdrOffs[i], &newHeaders[i])
	}
	c.placeAt(base, &ncm)

	c.log("  collision converted: %d headers, %d bytes at offset 0x%X\n", headerCount, c.pos()-base, base)
}

// convertCollisionV160 handles the 16 through 19 block, where surface
// property ids route through an indirection table that has to be collapsed
// back to direct ids.
func convertCollisionV160(c *Context, collOff, fileSize int) {
	var cm studio.CollModel
	c.srcStruct(collOff, &cm)

	if cm.HeaderCount <= 0 || cm.HeaderCount >= collMaxHeaderCount {
		c.log("  WARNING: implausible collision header count %d, dropping collision\n", cm.HeaderCount)
		return
	}

	oldHeaders := make([]studio.CollHeaderV16, cm.HeaderCount)
	headers := make([]collHeaderSource, cm.HeaderCount)
	for i := range oldHeaders {
		c.srcStruct(collOff+studio.CollModelSize+i*studio.CollHeaderV16Size, &oldHeaders[i])
		headers[i] = collHeaderSource{
			unk:       oldHeaders[i].Unk,
			origin:    oldHeaders[i].Origin,
			scale:     oldHeaders[i].Scale,
			vertIndex: int(oldHeaders[i].VertIndex),
			leafIndex: int(oldHeaders[i].BVHLeafIndex),
			nodeIndex: int(oldHeaders[i].BVHNodeIndex),
		}
	}

	propDataOff := c.resolveFrom(collOff, int(oldHeaders[0].SurfacePropDataIndex))
	arrayCount := int(oldHeaders[0].SurfacePropArrayCount)

	remap := func(oldID int32) int32 {
		var row studio.SurfacePropertyData
		c.srcStruct(propDataOff+arrayCount*int(oldID)*studio.SurfacePropertyDataSize, &row)
		return row.SurfacePropID1
	}

	writeCollision(c, collOff, fileSize, cm, headers, int(oldHeaders[0].SurfacePropDataIndex), remap)
}

// convertCollisionV191 handles the 19.1 block, which keeps direct surface
// property ids but renames and reorders the header fields.
func convertCollisionV191(c *Context, collOff, fileSize int) {
	var cm studio.CollModel
	c.srcStruct(collOff, &cm)

	if cm.HeaderCount <= 0 || cm.HeaderCount >= collMaxHeaderCount {
		c.log("  WARNING: implausible collision header count %d, dropping collision\n", cm.HeaderCount)
		return
	}

	oldHeaders := make([]studio.CollHeaderV191, cm.HeaderCount)
	headers := make([]collHeaderSource, cm.HeaderCount)
	for i := range oldHeaders {
		c.srcStruct(collOff+studio.CollModelSize+i*studio.CollHeaderV191Size, &oldHeaders[i])
		headers[i] = collHeaderSource{
			unk:       oldHeaders[i].BVHFlags,
			origin:    oldHeaders[i].Origin,
			scale:     oldHeaders[i].DecodeScale,
			vertIndex: int(oldHeaders[i].VertsOfs),
			leafIndex: int(oldHeaders[i].LeafDataOfs),
			nodeIndex: int(oldHeaders[i].NodesOfs),
		}
	}

	writeCollision(c, collOff, fileSize, cm, headers, int(oldHeaders[0].VertsOfs), nil)
}

// convertCollisionV120 handles the 12 through 15 block, already in the
// output header layout with direct surface property ids.
func convertCollisionV120(c *Context, collOff, fileSize int) {
	var cm studio.CollModel
	c.srcStruct(collOff, &cm)

	if cm.HeaderCount <= 0 || cm.HeaderCount >= collMaxHeaderCount {
		c.log("  WARNING: implausible collision header count %d, dropping collision\n", cm.HeaderCount)
		return
	}

	oldHeaders := make([]studio.CollHeaderV120, cm.HeaderCount)
	headers := make([]collHeaderSource, cm.HeaderCount)
	for i := range oldHeaders {
		c.srcStruct(collOff+studio.CollModelSize+i*studio.CollHeaderV120Size, &oldHeaders[i])
		headers[i] = collHeaderSource{
			unk:       oldHeaders[i].Unk,
			origin:    oldHeaders[i].Origin,
			scale:     oldHeaders[i].Scale,
			vertIndex: int(oldHeaders[i].VertIndex),
			leafIndex: int(oldHeaders[i].BVHLeafIndex),
			nodeIndex: int(oldHeaders[i].BVHNodeIndex),
		}
	}

	writeCollision(c, collOff, fileSize, cm, headers, int(oldHeaders[0].VertIndex), nil)
}
