// Package bonestate recovers the bone state change table of a vertex
// geometry file. The offset declared in newer model headers frequently
// points at unrelated data, so the table is located by scanning the model
// buffer for a plausible run and only trusting the declared offset as a
// fallback.
package bonestate

// Confidence reports how the returned table was located, ordered from least
// to most trustworthy.
type Confidence int

const (
	IdentityFallback Confidence = iota
	DeclaredOffset
	UnvalidatedScan
	HeaderValidatedScan
)

func (c Confidence) String() string {
	switch c {
	case HeaderValidatedScan:
		return "header-validated scan"
	case UnvalidatedScan:
		return "unvalidated scan"
	case DeclaredOffset:
		return "declared offset"
	default:
		return "identity fallback"
	}
}

// scanFloor keeps the scan out of the file header region, where small
// distinct byte runs occur by accident.
const scanFloor = 0x1000

// validRun reports whether run is a plausible bone state table: every entry
// names an existing bone and no bone appears twice.
func validRun(run []byte, totalBones int) bool {
	var seen [256]bool
	for _, b := range run {
		if int(b) >= totalBones || seen[b] {
			return false
		}
		seen[b] = true
	}
	return true
}

// validHeader checks the 16 bytes preceding a candidate run for the shape of
// the record that precedes the real table: a small positive lead value and
// zeroed words elsewhere.
func validHeader(hdr []byte) bool {
	if hdr[0] < 1 || hdr[0] > 8 {
		return false
	}
	return hdr[4] == 0 && hdr[8] == 0 && hdr[12] == 0 && hdr[15] == 0
}

// Recover locates the bone state change table inside data. It returns count
// bytes and the confidence of the match; the identity fallback is returned
// when nothing in the buffer qualifies.
func Recover(data []byte, count, totalBones, declaredOff int) ([]byte, Confidence) {
	out := make([]byte, count)

	if count > 0 && count <= 256 && totalBones > 0 && len(data) >= scanFloor+count {
		// The table sits near the end of the file, so scan backwards.
		for off := len(data) - count; off >= scanFloor; off-- {
			if off >= 16 && validRun(data[off:off+count], totalBones) && validHeader(data[off-16:off]) {
				copy(out, data[off:off+count])
				return out, HeaderValidatedScan
			}
		}
		for off := scanFloor; off <= len(data)-count; off++ {
			if validRun(data[off:off+count], totalBones) {
				copy(out, data[off:off+count])
				return out, UnvalidatedScan
			}
		}
	}

	if count > 0 && declaredOff > 0 && declaredOff+count <= len(data) &&
		validRun(data[declaredOff:declaredOff+count], totalBones) {
		copy(out, data[declaredOff:declaredOff+count])
		return out, DeclaredOffset
	}

	for i := range out {
		out[i] = byte(i)
	}
	return out, IdentityFallback
}
