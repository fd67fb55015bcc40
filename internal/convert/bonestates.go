package convert

import (
	"github.com/CafeFPS/rmdlconv/internal/bonestate"
	"github.com/CafeFPS/rmdlconv/internal/rmem"
	"github.com/CafeFPS/rmdlconv/internal/studio"
)

// RecoverBoneStates pulls the hardware bone mapping out of a source model so
// the geometry sibling can be rewritten with it. Sub-versions before 16 carry
// no bone state table.
func RecoverBoneStates(src []byte, v studio.Version) ([]byte, bonestate.Confidence) {
	if v < studio.Version160 {
		return nil, bonestate.IdentityFallback
	}

	var old studio.HeaderV16
	if err := rmem.NewReader(src).Struct(0, &old); err != nil {
		return nil, bonestate.IdentityFallback
	}
	if old.BoneStateCount == 0 {
		return nil, bonestate.IdentityFallback
	}

	return bonestate.Recover(src, int(old.BoneStateCount), int(old.BoneCount), int(old.BoneStateOffset))
}
