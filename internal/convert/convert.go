package convert

import (
	"fmt"

	"github.com/CafeFPS/rmdlconv/internal/studio"
)

// Convert rewrites a model buffer from the given sub-version down to
// sub-version 10. name is the source file name, used where the inline model
// name is truncated or missing.
func Convert(src []byte, name string, v studio.Version, logf func(string, ...any)) ([]byte, error) {
	if len(src) < studio.HeaderV16Size {
		return nil, fmt.Errorf("convert: %s: file too small for a model header (%d bytes)", name, len(src))
	}

	switch v {
	case studio.Version140:
		return ConvertRMDL140(src, logf)
	case studio.Version150:
		return ConvertRMDL150(src, logf)
	case studio.Version160, studio.Version170, studio.Version180, studio.Version190:
		return ConvertRMDL160(src, name, v, logf)
	case studio.Version191:
		return ConvertRMDL191(src, name, logf)
	default:
		return nil, fmt.Errorf("convert: sub-version %d is recognized but has no converter", int(v))
	}
}
