package studio

// Input layout for studio sub-versions 14, 14.1 and 15. These versions still
// use the wide v10-style records with 32-bit offsets and a shared string
// block, so most record shapes match the output layout byte for byte. The
// exceptions are the model and mesh records, which split counts and shrink
// the material reference, and the v15 body part, which grows by two fields.

type HeaderV14 HeaderV10

var HeaderV14Size = SizeOf(HeaderV14{})

type BoneV14 BoneV10

var BoneV14Size = SizeOf(BoneV14{})

type SeqDescV14 SeqDescV10

var SeqDescV14Size = SizeOf(SeqDescV14{})

type AnimDescV14 AnimDescV10

var AnimDescV14Size = SizeOf(AnimDescV14{})

type BodyPartV14 BodyPartV10

var BodyPartV14Size = SizeOf(BodyPartV14{})

// BodyPartV15 appends two fields the conversion drops.
type BodyPartV15 struct {
	NameIndex  int32
	NumModels  int32
	Base       int32
	ModelIndex int32
	Unk        int32
	MeshOffset int32
}

var BodyPartV15Size = SizeOf(BodyPartV15{})

// ModelV14 splits the mesh count into three fields; only the total survives.
// It also carries a third UV channel index the v10 layout has no slot for.
type ModelV14 struct {
	Name           [64]byte
	Type           int32
	BoundingRadius float32

	NumMeshes int32
	Unk0      int32
	Unk1      int32
	MeshIndex int32

	NumVertices   int32
	VertexIndex   int32
	TangentsIndex int32

	NumAttachments  int32
	AttachmentIndex int32

	ColorIndex int32
	UV2Index   int32
	UV3Index   int32

	Unused [4]int32
}

var ModelV14Size = SizeOf(ModelV14{})

// MeshV14 narrows the material reference to 16 bits.
type MeshV14 struct {
	Material uint16
	Unused0  uint16

	NumVertices  int32
	VertexOffset int32

	MeshID int32
	Center Vector3

	Unk            float32
	NumLODVertexes [8]int32

	Unused [2]int32
}

var MeshV14Size = SizeOf(MeshV14{})

type TextureV14 TextureV10

var TextureV14Size = SizeOf(TextureV14{})

type AttachmentV14 AttachmentV10

var AttachmentV14Size = SizeOf(AttachmentV14{})

type HitboxSetV14 HitboxSetV10

var HitboxSetV14Size = SizeOf(HitboxSetV14{})

type HitboxV14 HitboxV10

var HitboxV14Size = SizeOf(HitboxV14{})

type IKChainV14 IKChainV10

var IKChainV14Size = SizeOf(IKChainV14{})

type IKLinkV14 IKLinkV10

var IKLinkV14Size = SizeOf(IKLinkV14{})

type PoseParamV14 PoseParamV10

var PoseParamV14Size = SizeOf(PoseParamV14{})

type EventV14 EventV10

var EventV14Size = SizeOf(EventV14{})

type AutoLayerV14 AutoLayerV10

var AutoLayerV14Size = SizeOf(AutoLayerV14{})

type IKLockV14 IKLockV10

var IKLockV14Size = SizeOf(IKLockV14{})

type ActivityModifierV14 ActivityModifierV10

var ActivityModifierV14Size = SizeOf(ActivityModifierV14{})

type IKRuleV14 IKRuleV10

var IKRuleV14Size = SizeOf(IKRuleV14{})

// CollHeaderV120 is the collision header of the 12.x through 15 range. The
// surface property id is stored directly on each leaf, so conversion is a
// re-based copy without the indirection pass of later versions.
type CollHeaderV120 struct {
	VertIndex    int32
	BVHLeafIndex int32
	BVHNodeIndex int32
	Origin       [3]float32
	Scale        float32
	Unk          int32
	Unused       [2]int32
}

var CollHeaderV120Size = SizeOf(CollHeaderV120{})
