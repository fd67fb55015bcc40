package rmem

// AddrBase selects how a stored offset is turned into an absolute buffer
// offset. Older studio versions store offsets relative to the record that
// holds them; newer ones store offsets from the header (file) start.
type AddrBase int

const (
	// RelativeToStruct adds the stored offset to the owning record's position.
	RelativeToStruct AddrBase = iota
	// AbsoluteFromHeader adds the stored offset to the header's position.
	AbsoluteFromHeader
)

// Resolve converts a stored offset into an absolute buffer offset. A stored
// offset of zero means "no data" in every known version and resolves to zero
// so callers can keep the usual `if off > 0` guard.
func Resolve(base AddrBase, stored, structOff, headerOff int) int {
	if stored == 0 {
		return 0
	}
	switch base {
	case AbsoluteFromHeader:
		return headerOff + stored
	default:
		return structOff + stored
	}
}
