// Package studio defines the packed on-disk records of the studio model
// format: the version 54 sub-version 10 output layout every converter emits,
// and the per-source-version input views it reads.
package studio

import (
	"encoding/binary"
	"fmt"
	"reflect"
)

// Model container magic, 'IDST' on disk.
const IDMagic = 0x54534449

// TargetVersion is the studio version the converters emit.
const TargetVersion = 54

// LengthSentinel fills the header length field until the real value is known.
const LengthSentinel = 0x0badf00d

// PhyOffsetSentinel marks physics data living in an external .phy file.
const PhyOffsetSentinel = -123456

type Vector3 struct {
	X, Y, Z float32
}

type Quaternion struct {
	X, Y, Z, W float32
}

// DeltaQuat is forced onto a recognized "delta" root bone: a 120 degree
// rotation about (1,1,1).
var DeltaQuat = Quaternion{X: 0.5, Y: 0.5, Z: 0.5, W: 0.5}

type RadianEuler struct {
	X, Y, Z float32
}

type Matrix3x4 [3][4]float32

// SizeOf returns the packed byte size of a record.
func SizeOf(v any) int {
	n := binary.Size(v)
	if n < 0 {
		panic(fmt.Sprintf("studio: type %T has no fixed size", v))
	}
	return n
}

// FieldOffset returns the packed byte offset of a named field within a
// record. Used to compute string table patch slots and in-place header
// patches; panics on a misspelled field since that is a programming defect.
func FieldOffset(v any, field string) int {
	rv := reflect.ValueOf(v)
	rt := rv.Type()
	off := 0
	for i := 0; i < rt.NumField(); i++ {
		if rt.Field(i).Name == field {
			return off
		}
		n := binary.Size(rv.Field(i).Interface())
		if n < 0 {
			panic(fmt.Sprintf("studio: field %s.%s has no fixed size", rt.Name(), rt.Field(i).Name))
		}
		off += n
	}
	panic(fmt.Sprintf("studio: no field %q in %s", field, rt.Name()))
}

// PutName copies s into a fixed-size name field, truncating if needed and
// always leaving a null terminator.
func PutName(dst []byte, s string) {
	n := copy(dst, s)
	if n == len(dst) {
		n--
	}
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}
