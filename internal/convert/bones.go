package convert

import (
	"sort"

	"github.com/CafeFPS/rmdlconv/internal/studio"
)

// convertBonesV16 rewrites the split bone header/data arrays into the wide
// v10 bone records. Pose transforms prefer the linear bone table when its
// bone count matches; alignment and scale always come from the inline data
// because the newer linear table no longer carries them.
func convertBonesV16(c *Context, old *studio.HeaderV16) {
	numBones := int(old.BoneCount)
	c.log("converting %d bones...\n", numBones)

	c.hdr.BoneIndex = int32(c.pos())

	var lb *studio.LinearBoneV16
	lbOff := c.resolve(int(old.LinearBoneOffset))
	if lbOff > 0 {
		var tmp studio.LinearBoneV16
		c.srcStruct(lbOff, &tmp)
		if int(tmp.NumBones) == numBones {
			lb = &tmp
		}
	}

	type procBone struct {
		boneOff int // offset of the emitted bone record
		srcOff  int // offset of the jiggle payload in the source
	}
	var procBones []procBone

	for i := 0; i < numBones; i++ {
		hdrOff := c.resolve(int(old.BoneHdrOffset)) + i*studio.BoneHdrV16Size
		dataOff := c.resolve(int(old.BoneDataOffset)) + i*studio.BoneDataV16Size

		var bh studio.BoneHdrV16
		var bd studio.BoneDataV16
		c.srcStruct(hdrOff, &bh)
		c.srcStruct(dataOff, &bd)

		var nb studio.BoneV10
		nb.Parent = int32(bd.Parent)
		nb.Flags = studio.FilterBoneFlags(bd.Flags)
		nb.ProcType = int32(bd.ProcType)
		nb.ProcIndex = bd.ProcIndex
		nb.Contents = bh.Contents
		nb.SurfacePropLookup = int32(bh.SurfacePropLookup)
		nb.PhysicsBone = int32(bh.PhysicsBone)
		if bd.CollisionIndex == 0xFF {
			nb.CollisionIndex = -1
		} else {
			nb.CollisionIndex = int32(bd.CollisionIndex)
		}
		for k := range nb.BoneController {
			nb.BoneController[k] = -1
		}

		if lb != nil {
			c.srcStruct(c.resolveFrom(lbOff, int(lb.PosIndex))+i*studio.SizeOf(studio.Vector3{}), &nb.Pos)
			c.srcStruct(c.resolveFrom(lbOff, int(lb.QuatIndex))+i*studio.SizeOf(studio.Quaternion{}), &nb.Quat)
			c.srcStruct(c.resolveFrom(lbOff, int(lb.RotIndex))+i*studio.SizeOf(studio.RadianEuler{}), &nb.Rot)
			c.srcStruct(c.resolveFrom(lbOff, int(lb.PoseToBoneIndex))+i*studio.SizeOf(studio.Matrix3x4{}), &nb.PoseToBone)
			nb.QAlignment = bd.QAlignment
			nb.Scale = bd.Scale
		} else {
			nb.Pos = bd.Pos
			nb.Quat = bd.Quat
			nb.Rot = bd.Rot
			nb.Scale = bd.Scale
			nb.PoseToBone = bd.PoseToBone
			nb.QAlignment = bd.QAlignment
		}

		isJiggle := int(bd.ProcType) == studio.ProcBoneJiggle
		if !isJiggle && bd.ProcType > 0 {
			// Other procedural types have no v10 representation.
			nb.ProcType = 0
			nb.ProcIndex = 0
		}

		name := c.srcString(c.resolveFrom(hdrOff, int(bh.NameOffset)))
		surfProp := c.srcString(c.resolveFrom(hdrOff, int(bh.SurfacePropOffset)))

		boneOff := c.place(&nb)
		c.intern(boneOff, studio.BoneV10NameSlot, name)
		c.intern(boneOff, studio.BoneV10SurfPropSlot, surfProp)

		if isJiggle {
			procBones = append(procBones, procBone{boneOff: boneOff, srcOff: c.resolveFrom(dataOff, int(bd.ProcIndex))})
		}
	}
	c.align(4)

	if len(procBones) == 0 {
		return
	}

	c.log("copying %d jiggle bones...\n", len(procBones))

	// Insertion order is kept as the table value while the table itself is
	// written sorted by bone id.
	order := make(map[uint8]uint8)
	for _, pb := range procBones {
		var jb studio.JiggleBoneV10
		c.srcStruct(pb.srcOff, &jb)
		jOff := c.place(&jb)
		c.putI32(pb.boneOff+studio.BoneV10ProcIndexSlot, int32(jOff-pb.boneOff))
		if _, ok := order[uint8(jb.Bone)]; !ok {
			order[uint8(jb.Bone)] = uint8(len(order))
		}
	}
	c.align(4)

	writeProcBoneTables(c, order, numBones)
}

// writeProcBoneTables emits the sorted procedural bone table and the
// per-bone lookup array, 0xFF marking bones with no procedural data.
func writeProcBoneTables(c *Context, order map[uint8]uint8, numBones int) {
	if len(order) == 0 {
		return
	}

	c.hdr.ProcBoneCount = int32(len(order))
	c.hdr.ProcBoneTableOffset = int32(c.pos())

	ids := make([]int, 0, len(order))
	for id := range order {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	for _, id := range ids {
		c.write([]byte{byte(id)})
	}

	c.hdr.LinearProcBoneOffset = int32(c.pos())
	for i := 0; i < numBones; i++ {
		v := byte(0xFF)
		if idx, ok := order[uint8(i)]; ok {
			v = idx
		}
		c.write([]byte{v})
	}
	c.align(4)
}

// convertBonesV14 handles the wide 14/15 bone records, which already match
// the v10 shape. Names are re-interned, controllers reset and unsupported
// procedural types dropped, same as the newer path.
func convertBonesV14(c *Context, old *studio.HeaderV14) {
	numBones := int(old.NumBones)
	c.log("converting %d bones...\n", numBones)

	c.hdr.BoneIndex = int32(c.pos())

	type procBone struct {
		boneOff int
		srcOff  int
	}
	var procBones []procBone

	for i := 0; i < numBones; i++ {
		srcOff := c.resolve(int(old.BoneIndex)) + i*studio.BoneV14Size

		var ob studio.BoneV14
		c.srcStruct(srcOff, &ob)

		nb := studio.BoneV10(ob)
		nb.Flags = studio.FilterBoneFlags(nb.Flags)
		for k := range nb.BoneController {
			nb.BoneController[k] = -1
		}

		isJiggle := int(nb.ProcType) == studio.ProcBoneJiggle
		if !isJiggle && nb.ProcType > 0 {
			nb.ProcType = 0
			nb.ProcIndex = 0
		}

		name := c.srcString(c.resolveFrom(srcOff, int(ob.NameIndex)))
		surfProp := c.srcString(c.resolveFrom(srcOff, int(ob.SurfacePropIndex)))

		boneOff := c.place(&nb)
		c.intern(boneOff, studio.BoneV10NameSlot, name)
		c.intern(boneOff, studio.BoneV10SurfPropSlot, surfProp)

		if isJiggle {
			procBones = append(procBones, procBone{boneOff: boneOff, srcOff: c.resolveFrom(srcOff, int(ob.ProcIndex))})
		}
	}
	c.align(4)

	if len(procBones) == 0 {
		return
	}

	c.log("copying %d jiggle bones...\n", len(procBones))

	order := make(map[uint8]uint8)
	for _, pb := range procBones {
		var jb studio.JiggleBoneV10
		c.srcStruct(pb.srcOff, &jb)
		jOff := c.place(&jb)
		c.putI32(pb.boneOff+studio.BoneV10ProcIndexSlot, int32(jOff-pb.boneOff))
		if _, ok := order[uint8(jb.Bone)]; !ok {
			order[uint8(jb.Bone)] = uint8(len(order))
		}
	}
	c.align(4)

	writeProcBoneTables(c, order, numBones)
}
