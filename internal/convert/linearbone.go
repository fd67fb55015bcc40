package convert

import (
	"strings"

	"github.com/CafeFPS/rmdlconv/internal/studio"
)

// convertLinearBoneTableV16 rebuilds the struct-of-arrays pose table. Flags
// are refiltered and a root bone named after the delta pose gets the fixed
// 120 degree alignment quaternion the v10 runtime expects.
func convertLinearBoneTableV16(c *Context, old *studio.HeaderV16) {
	if old.LinearBoneOffset == 0 || old.BoneCount <= 1 {
		return
	}

	srcOff := c.resolve(int(old.LinearBoneOffset))
	var lb studio.LinearBoneV16
	c.srcStruct(srcOff, &lb)

	numBones := int(old.BoneCount)

	c.hdr.LinearBoneIndex = int32(c.pos())

	start := c.place(&studio.LinearBoneV10{})
	var nl studio.LinearBoneV10
	nl.NumBones = int32(numBones)

	c.align(4)
	nl.FlagsIndex = int32(c.pos() - start)
	for i := 0; i < numBones; i++ {
		flags := c.srcI32(c.resolveFrom(srcOff, int(lb.FlagsIndex)) + i*4)
		c.place(studio.FilterBoneFlags(flags))
	}

	c.align(4)
	nl.ParentIndex = int32(c.pos() - start)
	for i := 0; i < numBones; i++ {
		c.place(c.srcI32(c.resolveFrom(srcOff, int(lb.ParentIndex)) + i*4))
	}

	c.align(4)
	nl.PosIndex = int32(c.pos() - start)
	for i := 0; i < numBones; i++ {
		var v studio.Vector3
		c.srcStruct(c.resolveFrom(srcOff, int(lb.PosIndex))+i*studio.SizeOf(studio.Vector3{}), &v)
		c.place(&v)
	}

	c.align(4)
	nl.QuatIndex = int32(c.pos() - start)
	for i := 0; i < numBones; i++ {
		var q studio.Quaternion
		c.srcStruct(c.resolveFrom(srcOff, int(lb.QuatIndex))+i*studio.SizeOf(studio.Quaternion{}), &q)

		if i == 0 && isDeltaBone(c, old, i) {
			q = studio.DeltaQuat
		}
		c.place(&q)
	}

	c.align(4)
	nl.RotIndex = int32(c.pos() - start)
	for i := 0; i < numBones; i++ {
		var r studio.RadianEuler
		c.srcStruct(c.resolveFrom(srcOff, int(lb.RotIndex))+i*studio.SizeOf(studio.RadianEuler{}), &r)
		c.place(&r)
	}

	c.align(4)
	nl.PoseToBoneIndex = int32(c.pos() - start)
	for i := 0; i < numBones; i++ {
		var m studio.Matrix3x4
		c.srcStruct(c.resolveFrom(srcOff, int(lb.PoseToBoneIndex))+i*studio.SizeOf(studio.Matrix3x4{}), &m)
		c.place(&m)
	}

	c.align(4)
	c.placeAt(start, &nl)
}

func isDeltaBone(c *Context, old *studio.HeaderV16, i int) bool {
	hdrOff := c.resolve(int(old.BoneHdrOffset)) + i*studio.BoneHdrV16Size
	var bh studio.BoneHdrV16
	c.srcStruct(hdrOff, &bh)
	name := c.srcString(c.resolveFrom(hdrOff, int(bh.NameOffset)))
	return strings.Contains(name, "delta")
}

// copyLinearBoneTableV14 moves the already v10-shaped table across, array
// by array so the rebuilt offsets stay valid regardless of source padding.
func copyLinearBoneTableV14(c *Context, old *studio.HeaderV14) {
	if old.LinearBoneIndex == 0 || old.NumBones <= 1 {
		return
	}

	srcOff := c.resolve(int(old.LinearBoneIndex))
	var lb studio.LinearBoneV10
	c.srcStruct(srcOff, &lb)

	numBones := int(lb.NumBones)

	c.hdr.LinearBoneIndex = int32(c.pos())

	start := c.place(&studio.LinearBoneV10{})
	var nl studio.LinearBoneV10
	nl.NumBones = lb.NumBones

	copyArray := func(index int32, elem int) int32 {
		c.align(4)
		rel := int32(c.pos() - start)
		c.write(c.srcBytes(c.resolveFrom(srcOff, int(index)), numBones*elem))
		return rel
	}

	nl.FlagsIndex = copyArray(lb.FlagsIndex, 4)
	nl.ParentIndex = copyArray(lb.ParentIndex, 4)
	nl.PosIndex = copyArray(lb.PosIndex, studio.SizeOf(studio.Vector3{}))
	nl.QuatIndex = copyArray(lb.QuatIndex, studio.SizeOf(studio.Quaternion{}))
	nl.RotIndex = copyArray(lb.RotIndex, studio.SizeOf(studio.RadianEuler{}))
	nl.PoseToBoneIndex = copyArray(lb.PoseToBoneIndex, studio.SizeOf(studio.Matrix3x4{}))

	c.align(4)
	c.placeAt(start, &nl)
}
