package convert

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/CafeFPS/rmdlconv/internal/studio"
)

func encodeAt(t *testing.T, buf []byte, off int, v any) {
	t.Helper()
	if _, err := binary.Encode(buf[off:], binary.LittleEndian, v); err != nil {
		t.Fatalf("encode %T at 0x%x: %v", v, off, err)
	}
}

func decodeAt(t *testing.T, buf []byte, off int, v any) {
	t.Helper()
	if _, err := binary.Decode(buf[off:], binary.LittleEndian, v); err != nil {
		t.Fatalf("decode %T at 0x%x: %v", v, off, err)
	}
}

// buildV16Source lays out a minimal but internally consistent sub-version 16
// model: one bone, one sequence with a 2x1 blend grid and no embedded
// animation payload.
func buildV16Source(t *testing.T, checksum int32) []byte {
	t.Helper()

	boneHdrOff := studio.HeaderV16Size
	boneDataOff := boneHdrOff + studio.BoneHdrV16Size
	seqOff := boneDataOff + studio.BoneDataV16Size
	boneTableOff := seqOff + studio.SeqDescV16Size
	surfPropOff := boneTableOff + 4
	boneNameOff := surfPropOff + len("default") + 1
	labelOff := boneNameOff + len("root") + 1
	total := labelOff + len("idle") + 1

	src := make([]byte, total)

	hdr := studio.HeaderV16{
		Flags:             studio.HdrFlagUsesUV2 | 0x4,
		Checksum:          checksum,
		SurfacePropOffset: uint16(surfPropOff),

		BoneCount:      1,
		BoneHdrOffset:  int32(boneHdrOff),
		BoneDataOffset: int32(boneDataOff),

		LocalSeqCount:  1,
		LocalSeqOffset: int32(seqOff),

		BoneTableByNameOffset: int32(boneTableOff),
	}
	encodeAt(t, src, 0, &hdr)

	bh := studio.BoneHdrV16{
		NameOffset:        int32(boneNameOff - boneHdrOff),
		Contents:          1,
		SurfacePropOffset: uint16(surfPropOff - boneHdrOff),
		PhysicsBone:       0,
	}
	encodeAt(t, src, boneHdrOff, &bh)

	bd := studio.BoneDataV16{
		Parent:         -1,
		CollisionIndex: 0xFF,
		ProcType:       studio.ProcBoneTwistMaster,
		ProcIndex:      64,
		Flags:          studio.BoneUsedByBoneMerge | 0x100,
		Pos:            studio.Vector3{X: 1, Y: 2, Z: 3},
		Quat:           studio.Quaternion{W: 1},
	}
	encodeAt(t, src, boneDataOff, &bd)

	seq := studio.SeqDescV16{
		LabelOffset: uint16(labelOff - seqOff),
		Activity:    65535,
		ActWeight:   1,
		NumBlends:   2,
		GroupSize:   [2]uint8{2, 1},
	}
	encodeAt(t, src, seqOff, &seq)

	copy(src[surfPropOff:], "default\x00")
	copy(src[boneNameOff:], "root\x00")
	copy(src[labelOff:], "idle\x00")

	return src
}

func TestConvertV16EndToEnd(t *testing.T) {
	src := buildV16Source(t, 0x1337BEEF)

	out, err := Convert(src, "test.rmdl", studio.Version160, nil)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	var hdr studio.HeaderV10
	decodeAt(t, out, 0, &hdr)

	if hdr.ID != studio.IDMagic || hdr.Version != studio.TargetVersion {
		t.Fatalf("header magic/version = 0x%X/%d", hdr.ID, hdr.Version)
	}
	if hdr.Checksum != 0x1337BEEF {
		t.Fatalf("checksum = 0x%X", hdr.Checksum)
	}

	// The stamped length must be the exact file size.
	if int(hdr.Length) != len(out) {
		t.Fatalf("length = %d, file size = %d", hdr.Length, len(out))
	}

	// Newer-generation header flag bits are stripped.
	if hdr.Flags != 0x4 {
		t.Fatalf("flags = 0x%X, want 0x4", hdr.Flags)
	}

	if hdr.NumBones != 1 || hdr.NumLocalSeq != 1 {
		t.Fatalf("counts = bones %d seqs %d", hdr.NumBones, hdr.NumLocalSeq)
	}
	if hdr.PhyOffset != studio.PhyOffsetSentinel {
		t.Fatalf("phy offset = %d", hdr.PhyOffset)
	}

	// Name comes from the file name, canonicalized.
	if !bytes.HasPrefix(hdr.Name[:], []byte("mdl/test\x00")) {
		t.Fatalf("inline name = %q", hdr.Name[:16])
	}
	nameOff := int(hdr.NameIndex)
	if got := cstring(out, nameOff); got != "mdl/test" {
		t.Fatalf("interned name = %q", got)
	}
	if got := cstring(out, int(hdr.SurfacePropIndex)); got != "default" {
		t.Fatalf("surface prop = %q", got)
	}
}

func TestConvertV16Bone(t *testing.T) {
	src := buildV16Source(t, 1)

	out, err := Convert(src, "test.rmdl", studio.Version160, nil)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	var hdr studio.HeaderV10
	decodeAt(t, out, 0, &hdr)

	boneOff := int(hdr.BoneIndex)
	var bone studio.BoneV10
	decodeAt(t, out, boneOff, &bone)

	if bone.Parent != -1 {
		t.Fatalf("parent = %d", bone.Parent)
	}
	// 0xFF widens to -1.
	if bone.CollisionIndex != -1 {
		t.Fatalf("collision index = %d", bone.CollisionIndex)
	}
	if bone.Flags != 0x100 {
		t.Fatalf("bone flags = 0x%X", bone.Flags)
	}
	// Twist bones have no v10 representation.
	if bone.ProcType != 0 || bone.ProcIndex != 0 {
		t.Fatalf("procedural data survived: type %d index %d", bone.ProcType, bone.ProcIndex)
	}
	for i, bc := range bone.BoneController {
		if bc != -1 {
			t.Fatalf("bone controller %d = %d", i, bc)
		}
	}
	if bone.Pos != (studio.Vector3{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("pos = %+v", bone.Pos)
	}

	if got := cstring(out, boneOff+int(bone.NameIndex)); got != "root" {
		t.Fatalf("bone name = %q", got)
	}
	if got := cstring(out, boneOff+int(bone.SurfacePropIndex)); got != "default" {
		t.Fatalf("bone surface prop = %q", got)
	}
}

func TestConvertV16SequencePlaceholders(t *testing.T) {
	src := buildV16Source(t, 1)

	out, err := Convert(src, "test.rmdl", studio.Version160, nil)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	var hdr studio.HeaderV10
	decodeAt(t, out, 0, &hdr)

	seqOff := int(hdr.LocalSeqIndex)
	var seq studio.SeqDescV10
	decodeAt(t, out, seqOff, &seq)

	// 65535 widens to -1.
	if seq.Activity != -1 {
		t.Fatalf("activity = %d", seq.Activity)
	}
	if seq.GroupSize != [2]int32{2, 1} {
		t.Fatalf("group size = %v", seq.GroupSize)
	}
	if got := cstring(out, seqOff+int(seq.LabelIndex)); got != "idle" {
		t.Fatalf("label = %q", got)
	}

	// A 2x1 blend grid owns two animation slots; with no source payload
	// each gets a distinct one-frame placeholder.
	if seq.AnimIndexIndex <= 0 {
		t.Fatalf("anim index array missing")
	}
	var animOffs [2]int32
	decodeAt(t, out, seqOff+int(seq.AnimIndexIndex), &animOffs)
	if animOffs[0] == animOffs[1] {
		t.Fatalf("blend slots share a descriptor")
	}

	for i, rel := range animOffs {
		var anim studio.AnimDescV10
		decodeAt(t, out, seqOff+int(rel), &anim)

		if anim.FPS != 30 || anim.NumFrames != 1 {
			t.Fatalf("anim %d: fps %v frames %d", i, anim.FPS, anim.NumFrames)
		}
		if anim.Flags&studio.AnimFlagAllZeros == 0 {
			t.Fatalf("anim %d: flags 0x%X", i, anim.Flags)
		}
		if anim.AnimIndex <= 0 {
			t.Fatalf("anim %d: no flag array", i)
		}
		if got := cstring(out, seqOff+int(rel)+int(anim.NameIndex)); got != "idle" {
			t.Fatalf("anim %d name = %q", i, got)
		}
	}
}

func TestConvertV16KeyValues(t *testing.T) {
	src := buildV16Source(t, 1)

	out, err := Convert(src, "test.rmdl", studio.Version160, nil)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	var hdr studio.HeaderV10
	decodeAt(t, out, 0, &hdr)

	if int(hdr.KeyValueSize) != (len(modelKeyValues)+2)&^1 {
		t.Fatalf("key value size = %d", hdr.KeyValueSize)
	}
	kv := out[hdr.KeyValueIndex : int(hdr.KeyValueIndex)+len(modelKeyValues)]
	if string(kv) != modelKeyValues {
		t.Fatalf("key values = %q", kv)
	}
}

func TestConvertRejectsBadInput(t *testing.T) {
	if _, err := Convert(make([]byte, 16), "x.rmdl", studio.Version160, nil); err == nil {
		t.Fatalf("short buffer converted")
	}

	src := buildV16Source(t, 1)
	_, err := Convert(src, "x.rmdl", studio.Version121, nil)
	if err == nil || !strings.Contains(err.Error(), "no converter") {
		t.Fatalf("unsupported version error = %v", err)
	}
}

func cstring(buf []byte, off int) string {
	end := bytes.IndexByte(buf[off:], 0)
	if end < 0 {
		return string(buf[off:])
	}
	return string(buf[off : off+end])
}
