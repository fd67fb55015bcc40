package studio

// Input layout for studio sub-versions 16 through 19. These versions shrink
// most record fields to 16 bits and move every name into a trailing string
// block; offsets are byte offsets relative to the owning record unless noted.

type HeaderV16 struct {
	Flags    int32
	Checksum int32

	NameOffset        uint16
	SurfacePropOffset uint16

	HullMin       Vector3
	HullMax       Vector3
	ViewBBMin     Vector3
	ViewBBMax     Vector3
	IllumPosition Vector3

	BoneCount      uint16
	HitboxSetCount uint16
	BoneHdrOffset  int32
	BoneDataOffset int32

	HitboxSetOffset int32

	LocalSeqCount       uint16
	ActivityListVersion uint16
	LocalSeqOffset      int32

	BodyPartCount   uint16
	AttachmentCount uint16
	BodyPartOffset  int32

	AttachmentOffset int32

	NodeCount      uint16
	PoseParamCount uint16

	PoseParamOffset int32

	IKChainCount uint16
	TextureCount uint16
	IKChainOffset int32

	TextureOffset int32

	SkinRefCount    uint16
	SkinFamilyCount uint16
	SkinOffset      int32

	// Absolute from the header, like BVHOffset.
	BoneTableByNameOffset int32
	LinearBoneOffset      int32

	Mass     float32
	Contents int32

	SrcBoneTransformCount uint16
	UIPanelCount          uint16
	UIPanelOffset         int32

	FadeDistance float32

	BVHOffset int32

	BoneStateCount  uint16
	Unused0         uint16
	BoneStateOffset int32

	Unused [8]int32
}

var HeaderV16Size = SizeOf(HeaderV16{})

// BoneHdrV16 carries the name and material binding of a bone; the transform
// lives in the parallel BoneDataV16 array.
type BoneHdrV16 struct {
	NameOffset        int32
	Contents          int32
	SurfacePropOffset uint16
	SurfacePropLookup uint16
	PhysicsBone       int16
	Unused            int16
}

var BoneHdrV16Size = SizeOf(BoneHdrV16{})

type BoneDataV16 struct {
	Parent         int16
	CollisionIndex uint8
	ProcType       uint8
	Flags          int32
	ProcIndex      int32

	Pos        Vector3
	Quat       Quaternion
	Rot        RadianEuler
	Scale      Vector3
	PoseToBone Matrix3x4
	QAlignment Quaternion
}

var BoneDataV16Size = SizeOf(BoneDataV16{})

// LinearBoneV16 matches the output record; only the arrays behind it moved.
type LinearBoneV16 struct {
	NumBones        int32
	FlagsIndex      int32
	ParentIndex     int32
	PosIndex        int32
	QuatIndex       int32
	RotIndex        int32
	PoseToBoneIndex int32
	Unused          int32
}

var LinearBoneV16Size = SizeOf(LinearBoneV16{})

type HitboxSetV16 struct {
	NameOffset  uint16
	NumHitboxes uint16
	HitboxIndex int32
}

var HitboxSetV16Size = SizeOf(HitboxSetV16{})

type HitboxV16 struct {
	Bone  int16
	Group int16
	BBMin Vector3
	BBMax Vector3

	NameOffset         uint16
	Unused             uint16
	HitDataGroupOffset int32
	Unused2            int32
}

var HitboxV16Size = SizeOf(HitboxV16{})

type AttachmentV16 struct {
	NameOffset uint16
	LocalBone  uint16
	Flags      int32
	Local      Matrix3x4
	Unused     int32
}

var AttachmentV16Size = SizeOf(AttachmentV16{})

type BodyPartV16 struct {
	NameOffset uint16
	Unused     uint16
	NumModels  int32
	Base       int32
	ModelIndex int32
}

var BodyPartV16Size = SizeOf(BodyPartV16{})

type ModelV16 struct {
	NameOffset uint16
	Unused0    uint16
	NumMeshes  int32
	MeshIndex  int32
	Unused     [2]int32
}

var ModelV16Size = SizeOf(ModelV16{})

type MeshV16 struct {
	Material int32
	MeshID   int32
	Center   Vector3
	Unused   [2]int32
}

var MeshV16Size = SizeOf(MeshV16{})

type IKChainV16 struct {
	NameOffset uint16
	LinkType   uint16
	NumLinks   int32
	LinkIndex  int32
	Unk        float32
}

var IKChainV16Size = SizeOf(IKChainV16{})

type IKLinkV16 struct {
	Bone    int32
	KneeDir Vector3
}

var IKLinkV16Size = SizeOf(IKLinkV16{})

type PoseParamV16 struct {
	NameOffset uint16
	Flags      uint16
	Start      float32
	End        float32
	Loop       float32
}

var PoseParamV16Size = SizeOf(PoseParamV16{})

// SeqDescV16 is the 112-byte descriptor of sub-versions 16 and 17.
// Sub-versions 18 and 19 append 4 bytes the converter ignores, so readers
// step by an explicit stride rather than this record's size.
type SeqDescV16 struct {
	LabelOffset        uint16
	ActivityNameOffset uint16
	Flags              int32

	Activity  uint16
	ActWeight uint16

	NumEvents  uint16
	EventIndex uint16

	BBMin Vector3
	BBMax Vector3

	NumBlends      uint16
	AnimIndexIndex uint16
	MovementIndex  uint16

	GroupSize  [2]uint8
	ParamIndex [2]uint8
	Pad0       uint16

	ParamStart [2]float32
	ParamEnd   [2]float32

	FadeInTime  float32
	FadeOutTime float32

	LocalEntryNode uint16
	LocalExitNode  uint16

	NumIKRules    uint16
	NumAutoLayers uint16

	AutoLayerIndex  uint16
	WeightListIndex uint16

	PoseKeyIndex uint16
	NumIKLocks   uint16

	IKLockIndex           uint16
	ActivityModifierIndex uint16

	NumActivityModifiers uint16
	CyclePoseIndex       uint16

	IKResetMask int32
	Unused      [2]int32
}

var SeqDescV16Size = SizeOf(SeqDescV16{})

// SeqDescStride returns the sequence record stride for a given sub-version.
func SeqDescStride(subVersion Version) int {
	if subVersion >= Version180 {
		return SeqDescV16Size + 4
	}
	return SeqDescV16Size
}

type AnimDescV16 struct {
	NameOffset uint16
	Flags      uint16
	FPS        float32
	NumFrames  int32

	AnimIndex int32

	NumIKRules  uint16
	IKRuleIndex uint16

	SectionIndex       int32
	SectionFrames      uint16
	SectionStallFrames uint16

	Unused int32
}

var AnimDescV16Size = SizeOf(AnimDescV16{})

type IKRuleV16 struct {
	Chain uint16
	Type  uint16
	Bone  uint16
	Slot  uint16

	Height float32
	Radius float32
	Floor  float32
	Pos    Vector3
	Q      Quaternion

	CompressedIKError      IKErrorData
	CompressedIKErrorIndex int32
	IStart                 int32
	IKErrorIndex           int32

	Start float32
	Peak  float32
	Tail  float32
	End   float32

	Contact float32
	Drop    float32
	Top     float32

	EndHeight float32

	AttachmentNameOffset uint16
	Unused               uint16
}

var IKRuleV16Size = SizeOf(IKRuleV16{})

type EventV16 struct {
	Cycle float32
	Event int32
	Type  int32
	Unk   int32

	OptionsOffset   uint16
	EventNameOffset uint16
}

var EventV16Size = SizeOf(EventV16{})

type AutoLayerV16 struct {
	AssetSequence uint64
	ISequence     int16
	IPose         int16
	Flags         int32
	Start         float32
	Peak          float32
	Tail          float32
	End           float32
}

var AutoLayerV16Size = SizeOf(AutoLayerV16{})

type IKLockV16 struct {
	Chain        uint16
	Flags        uint16
	PosWeight    float32
	LocalQWeight float32
}

var IKLockV16Size = SizeOf(IKLockV16{})

type ActivityModifierV16 struct {
	NameOffset uint16
	Negate     uint8
}

var ActivityModifierV16Size = SizeOf(ActivityModifierV16{})

// Collision input headers. Sub-version 16 routes surface properties through
// an indirection table; 12.x keeps the direct id plus the table geometry.

type CollHeaderV16 struct {
	VertIndex            int32
	BVHLeafIndex         int32
	BVHNodeIndex         int32
	Origin               [3]float32
	Scale                float32
	Unk                  int32
	SurfacePropDataIndex int32
	SurfacePropArrayCount int32
}

var CollHeaderV16Size = SizeOf(CollHeaderV16{})

// SurfacePropertyData is one row of the sub-version 16 surface indirection
// table; only the first id survives conversion.
type SurfacePropertyData struct {
	SurfacePropID1 int32
	SurfacePropID2 int32
}

var SurfacePropertyDataSize = SizeOf(SurfacePropertyData{})
