package studio

// Sub-version 19.1 reuses the v16 record family except for the animation
// descriptor, which replaces the embedded frame data offset with an external
// asset guid, and the collision headers, which grow to 40 bytes.

type AnimDescV191 struct {
	NameOffset uint16
	Flags      uint16
	FPS        float32
	NumFrames  int32

	AnimDataAsset uint64

	NumIKRules  uint16
	IKRuleIndex uint16

	SectionIndex        int32
	SectionFrames       uint16
	SectionStallFrames  uint16
	SectionDataExternal int32
}

var AnimDescV191Size = SizeOf(AnimDescV191{})

type CollHeaderV191 struct {
	BVHFlags    int32
	Origin      [3]float32
	DecodeScale float32
	VertsOfs    int32
	LeafDataOfs int32
	NodesOfs    int32
	Unused      [2]int32
}

var CollHeaderV191Size = SizeOf(CollHeaderV191{})
