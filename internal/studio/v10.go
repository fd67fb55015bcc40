package studio

// Output layout: studio version 54, rmdl sub-version 10. Every converter
// emits these records through the arena; offsets inside them are patched by
// the string table or by a second emission pass.

// HeaderV10 is the structural file header. The Length field is stamped after
// the string table is written; PhySize is patched in place once the sibling
// physics file has been converted.
type HeaderV10 struct {
	ID       int32
	Version  int32
	Checksum int32
	NameIndex int32
	Name     [64]byte
	Length   int32

	EyePosition   Vector3
	IllumPosition Vector3
	HullMin       Vector3
	HullMax       Vector3
	ViewBBMin     Vector3
	ViewBBMax     Vector3
	Mins          Vector3
	Maxs          Vector3

	Flags int32

	NumBones            int32
	BoneIndex           int32
	NumBoneControllers  int32
	BoneControllerIndex int32
	NumHitboxSets       int32
	HitboxSetIndex      int32
	NumLocalAnim        int32
	LocalAnimIndex      int32
	NumLocalSeq         int32
	LocalSeqIndex       int32
	ActivityListVersion int32
	EventsIndexed       int32

	NumTextures     int32
	TextureIndex    int32
	NumCDTextures   int32
	CDTextureIndex  int32
	NumSkinRef      int32
	NumSkinFamilies int32
	SkinIndex       int32

	NumBodyParts  int32
	BodyPartIndex int32

	NumLocalAttachments  int32
	LocalAttachmentIndex int32
	NumLocalNodes        int32
	LocalNodeIndex       int32
	LocalNodeNameIndex   int32

	NumIKChains            int32
	IKChainIndex           int32
	NumLocalPoseParameters int32
	LocalPoseParamIndex    int32

	SurfacePropIndex int32
	KeyValueIndex    int32
	KeyValueSize     int32

	NumLocalIKAutoplayLocks  int32
	LocalIKAutoplayLockIndex int32

	Mass     float32
	Contents int32

	NumIncludeModels  int32
	IncludeModelIndex int32

	BoneTableByNameIndex int32

	VTXOffset int32
	VVDOffset int32
	VVCOffset int32
	VVWOffset int32
	VTXSize   int32
	VVDSize   int32
	VVCSize   int32
	VVWSize   int32
	PhyOffset int32
	PhySize   int32

	SourceFilenameOffset  int32
	NumSrcBoneTransform   int32
	SrcBoneTransformIndex int32

	DefaultFadeDist         float32
	VertAnimFixedPointScale float32

	MaterialTypesIndex   int32
	ProcBoneCount        int32
	ProcBoneTableOffset  int32
	LinearProcBoneOffset int32
	LinearBoneIndex      int32

	UIPanelCount  int32
	UIPanelOffset int32

	BVHOffset       int32
	UnkStringOffset int32

	Unused [8]int32
}

// Patch slot offsets inside HeaderV10, computed once at init.
var (
	HeaderV10Size          = SizeOf(HeaderV10{})
	HeaderV10ChecksumOff   = FieldOffset(HeaderV10{}, "Checksum")
	HeaderV10NameSlot      = FieldOffset(HeaderV10{}, "NameIndex")
	HeaderV10SurfPropSlot  = FieldOffset(HeaderV10{}, "SurfacePropIndex")
	HeaderV10UnkStringSlot = FieldOffset(HeaderV10{}, "UnkStringOffset")
	HeaderV10LengthOff     = FieldOffset(HeaderV10{}, "Length")
	HeaderV10PhySizeOff    = FieldOffset(HeaderV10{}, "PhySize")
	HeaderV10BVHOffsetOff  = FieldOffset(HeaderV10{}, "BVHOffset")
)

type BoneV10 struct {
	NameIndex      int32
	Parent         int32
	BoneController [6]int32

	Pos        Vector3
	Quat       Quaternion
	Rot        RadianEuler
	Scale      Vector3
	PoseToBone Matrix3x4
	QAlignment Quaternion

	Flags             int32
	ProcType          int32
	ProcIndex         int32
	PhysicsBone       int32
	SurfacePropIndex  int32
	Contents          int32
	SurfacePropLookup int32
	CollisionIndex    int32

	Unused [4]int32
}

var (
	BoneV10Size          = SizeOf(BoneV10{})
	BoneV10NameSlot      = FieldOffset(BoneV10{}, "NameIndex")
	BoneV10SurfPropSlot  = FieldOffset(BoneV10{}, "SurfacePropIndex")
	BoneV10ProcIndexSlot = FieldOffset(BoneV10{}, "ProcIndex")
)

// JiggleBoneV10 is copied field for field from the source; only the owning
// bone index is inspected to build the procedural bone tables.
type JiggleBoneV10 struct {
	Flags int32
	Bone  int32

	Length  float32
	TipMass float32

	YawStiffness   float32
	YawDamping     float32
	PitchStiffness float32
	PitchDamping   float32
	AlongStiffness float32
	AlongDamping   float32

	AngleLimit float32

	MinYaw      float32
	MaxYaw      float32
	YawFriction float32
	YawBounce   float32

	MinPitch      float32
	MaxPitch      float32
	PitchFriction float32
	PitchBounce   float32

	BaseMass         float32
	BaseStiffness    float32
	BaseDamping      float32
	BaseMinLeft      float32
	BaseMaxLeft      float32
	BaseLeftFriction float32
	BaseMinUp        float32
	BaseMaxUp        float32
	BaseUpFriction   float32
	BaseMinForward   float32
	BaseMaxForward   float32
	BaseForwardFriction float32
}

var JiggleBoneV10Size = SizeOf(JiggleBoneV10{})

type HitboxSetV10 struct {
	NameIndex   int32
	NumHitboxes int32
	HitboxIndex int32
}

var (
	HitboxSetV10Size     = SizeOf(HitboxSetV10{})
	HitboxSetV10NameSlot = FieldOffset(HitboxSetV10{}, "NameIndex")
)

type HitboxV10 struct {
	Bone      int32
	Group     int32
	BBMin     Vector3
	BBMax     Vector3
	NameIndex int32
	Unused    [6]int32
	HitDataGroupOffset int32
}

var (
	HitboxV10Size              = SizeOf(HitboxV10{})
	HitboxV10NameSlot          = FieldOffset(HitboxV10{}, "NameIndex")
	HitboxV10HitDataGroupSlot  = FieldOffset(HitboxV10{}, "HitDataGroupOffset")
)

type AttachmentV10 struct {
	NameIndex int32
	Flags     int32
	LocalBone int32
	Local     Matrix3x4
	Unused    [8]int32
}

var (
	AttachmentV10Size     = SizeOf(AttachmentV10{})
	AttachmentV10NameSlot = FieldOffset(AttachmentV10{}, "NameIndex")
)

type BodyPartV10 struct {
	NameIndex  int32
	NumModels  int32
	Base       int32
	ModelIndex int32
}

var (
	BodyPartV10Size     = SizeOf(BodyPartV10{})
	BodyPartV10NameSlot = FieldOffset(BodyPartV10{}, "NameIndex")
)

type ModelV10 struct {
	Name           [64]byte
	Type           int32
	BoundingRadius float32

	NumMeshes int32
	MeshIndex int32

	NumVertices  int32
	VertexIndex  int32
	TangentsIndex int32

	NumAttachments  int32
	AttachmentIndex int32

	DeprecatedNumEyeballs int32
	DeprecatedEyeballIndex int32

	ColorIndex int32
	UV2Index   int32

	Unused [4]int32
}

var ModelV10Size = SizeOf(ModelV10{})

type MeshV10 struct {
	Material   int32
	ModelIndex int32

	NumVertices  int32
	VertexOffset int32

	DeprecatedNumFlexes int32
	DeprecatedFlexIndex int32

	MaterialType  int32
	MaterialParam int32

	MeshID int32
	Center Vector3

	Unk             float32
	NumLODVertexes  [8]int32

	Unused [4]int32
}

var MeshV10Size = SizeOf(MeshV10{})

type TextureV10 struct {
	NameIndex int32
	Unused    int32
	Guid      uint64
}

var (
	TextureV10Size     = SizeOf(TextureV10{})
	TextureV10NameSlot = FieldOffset(TextureV10{}, "NameIndex")
)

type IKChainV10 struct {
	NameIndex int32
	LinkType  int32
	NumLinks  int32
	LinkIndex int32
	Unk       float32
	Unused    [3]int32
}

var (
	IKChainV10Size     = SizeOf(IKChainV10{})
	IKChainV10NameSlot = FieldOffset(IKChainV10{}, "NameIndex")
)

type IKLinkV10 struct {
	Bone    int32
	KneeDir Vector3
	Unused  Vector3
}

var IKLinkV10Size = SizeOf(IKLinkV10{})

type PoseParamV10 struct {
	NameIndex int32
	Flags     int32
	Start     float32
	End       float32
	Loop      float32
}

var (
	PoseParamV10Size     = SizeOf(PoseParamV10{})
	PoseParamV10NameSlot = FieldOffset(PoseParamV10{}, "NameIndex")
)

type SeqDescV10 struct {
	BasePtr           int32
	LabelIndex        int32
	ActivityNameIndex int32

	Flags     int32
	Activity  int32
	ActWeight int32

	NumEvents  int32
	EventIndex int32

	BBMin Vector3
	BBMax Vector3

	NumBlends      int32
	AnimIndexIndex int32
	MovementIndex  int32

	GroupSize  [2]int32
	ParamIndex [2]int32
	ParamStart [2]float32
	ParamEnd   [2]float32
	ParamParent int32

	FadeInTime  float32
	FadeOutTime float32

	LocalEntryNode int32
	LocalExitNode  int32
	NodeFlags      int32

	EntryPhase float32
	ExitPhase  float32
	LastFrame  float32

	NextSeq int32
	Pose    int32

	NumIKRules      int32
	NumAutoLayers   int32
	AutoLayerIndex  int32
	WeightListIndex int32
	PoseKeyIndex    int32
	NumIKLocks      int32
	IKLockIndex     int32

	KeyValueIndex int32
	KeyValueSize  int32

	CyclePoseIndex int32

	ActivityModifierIndex int32
	NumActivityModifiers  int32

	IKResetMask int32
	Unused      [3]int32
}

var (
	SeqDescV10Size         = SizeOf(SeqDescV10{})
	SeqDescV10LabelSlot    = FieldOffset(SeqDescV10{}, "LabelIndex")
	SeqDescV10ActivitySlot = FieldOffset(SeqDescV10{}, "ActivityNameIndex")
)

type AnimDescV10 struct {
	BasePtr   int32
	NameIndex int32
	FPS       float32
	Flags     int32
	NumFrames int32

	NumMovements  int32
	MovementIndex int32
	FrameMovementIndex int32

	AnimIndex int32

	NumIKRules  int32
	IKRuleIndex int32

	SectionIndex  int32
	SectionFrames int32

	Unused [4]int32
}

var (
	AnimDescV10Size     = SizeOf(AnimDescV10{})
	AnimDescV10NameSlot = FieldOffset(AnimDescV10{}, "NameIndex")
)

// IKErrorData holds the compressed IK error scales carried by an IK rule.
type IKErrorData struct {
	SectionFrames int32
	Scale         [6]float32
}

type IKRuleV10 struct {
	Index int32
	Type  int32
	Chain int32
	Bone  int32
	Slot  int32

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

	AttachmentIndex int32
	Unused          [4]int32
}

var (
	IKRuleV10Size           = SizeOf(IKRuleV10{})
	IKRuleV10AttachmentSlot = FieldOffset(IKRuleV10{}, "AttachmentIndex")
)

// EventV10 inlines the options string that newer versions keep in the string
// table.
type EventV10 struct {
	Cycle   float32
	Event   int32
	Type    int32
	Options [64]byte
	EventIndex int32
}

var (
	EventV10Size      = SizeOf(EventV10{})
	EventV10NameSlot  = FieldOffset(EventV10{}, "EventIndex")
)

type AutoLayerV10 struct {
	ISequence int16
	IPose     int16
	Flags     int32
	Start     float32
	Peak      float32
	Tail      float32
	End       float32
}

var AutoLayerV10Size = SizeOf(AutoLayerV10{})

type IKLockV10 struct {
	Chain        int32
	PosWeight    float32
	LocalQWeight float32
	Flags        int32
	Unused       [4]int32
}

var IKLockV10Size = SizeOf(IKLockV10{})

type ActivityModifierV10 struct {
	NameIndex int32
	Negate    int32
}

var (
	ActivityModifierV10Size     = SizeOf(ActivityModifierV10{})
	ActivityModifierV10NameSlot = FieldOffset(ActivityModifierV10{}, "NameIndex")
)

type AnimSectionV10 struct {
	AnimIndex int32
}

var AnimSectionV10Size = SizeOf(AnimSectionV10{})

// LinearBoneV10 heads the struct-of-arrays pose table; the index fields are
// relative to this record.
type LinearBoneV10 struct {
	NumBones        int32
	FlagsIndex      int32
	ParentIndex     int32
	PosIndex        int32
	QuatIndex       int32
	RotIndex        int32
	PoseToBoneIndex int32
	Unused          int32
}

var LinearBoneV10Size = SizeOf(LinearBoneV10{})

// UI panel (RUI) mesh records. These are layout-identical between the newer
// sources and v10, so conversion is a copy with re-based offsets.

type RUIHeaderV10 struct {
	RUIMeshIndex int32
	Unused       int32
}

var RUIHeaderV10Size = SizeOf(RUIHeaderV10{})

// RUIMeshV10 offsets are relative to the end of this record.
type RUIMeshV10 struct {
	NumParents  int16
	NumVertexMaps int16
	NumVertices int16
	NumFaces    int16

	ParentIndex   int32
	VertMapIndex  int32
	UnkIndex      int32
	VertexIndex   int32
	FaceDataIndex int32

	Unused [3]int32
}

var RUIMeshV10Size = SizeOf(RUIMeshV10{})

type RUIVertMapV10 struct {
	VertIndex int16
	FaceIndex int16
}

var RUIVertMapV10Size = SizeOf(RUIVertMapV10{})

type RUIFourthVertV10 struct {
	Unk [2]float32
}

var RUIFourthVertV10Size = SizeOf(RUIFourthVertV10{})

type RUIVertV10 struct {
	Pos Vector3
	Unk int32
}

var RUIVertV10Size = SizeOf(RUIVertV10{})

type RUIMeshFaceV10 struct {
	FaceData [8]float32
}

var RUIMeshFaceV10Size = SizeOf(RUIMeshFaceV10{})

// SrcBoneTransformV10 is shared by the 14/15 input and the v10 output.
type SrcBoneTransformV10 struct {
	NameIndex     int32
	PreTransform  Matrix3x4
	PostTransform Matrix3x4
}

var (
	SrcBoneTransformV10Size     = SizeOf(SrcBoneTransformV10{})
	SrcBoneTransformV10NameSlot = FieldOffset(SrcBoneTransformV10{}, "NameIndex")
)

// Collision records shared by the v10 output and the newer inputs.

type CollModel struct {
	ContentMasksIndex int32
	SurfacePropsIndex int32
	SurfaceNamesIndex int32
	HeaderCount       int32
}

var CollModelSize = SizeOf(CollModel{})

type CollHeaderV10 struct {
	VertIndex    int32
	BVHLeafIndex int32
	BVHNodeIndex int32
	Origin       [3]float32
	Scale        float32
	Unk          int32
	Unused       [2]int32
}

var CollHeaderV10Size = SizeOf(CollHeaderV10{})

// SurfaceProperty is one entry in the shared surface-property table.
type SurfaceProperty struct {
	SurfacePropID    int32
	ContentMaskIndex int32
}

var SurfacePropertySize = SizeOf(SurfaceProperty{})
