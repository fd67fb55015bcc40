package rmem

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Reader is a bounds-checked view over a source file buffer. All offsets are
// absolute from the start of the buffer; reads past the end return an error
// instead of touching memory.
type Reader struct {
	data []byte
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) Size() int {
	return len(r.data)
}

// Data returns the underlying buffer. Callers must not mutate it.
func (r *Reader) Data() []byte {
	return r.data
}

// Bytes returns n bytes starting at off.
func (r *Reader) Bytes(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(r.data) {
		return nil, fmt.Errorf("rmem: read %d bytes at 0x%x exceeds buffer size 0x%x", n, off, len(r.data))
	}
	return r.data[off : off+n], nil
}

// Struct decodes a packed little-endian record at off into v.
func (r *Reader) Struct(off int, v any) error {
	n := binary.Size(v)
	if n < 0 {
		return fmt.Errorf("rmem: type %T has no fixed size", v)
	}
	b, err := r.Bytes(off, n)
	if err != nil {
		return err
	}
	if _, err := binary.Decode(b, binary.LittleEndian, v); err != nil {
		return fmt.Errorf("rmem: decode %T at 0x%x: %w", v, off, err)
	}
	return nil
}

// CString reads a null-terminated string starting at off.
func (r *Reader) CString(off int) (string, error) {
	if off < 0 || off >= len(r.data) {
		return "", fmt.Errorf("rmem: string at 0x%x exceeds buffer size 0x%x", off, len(r.data))
	}
	for i := off; i < len(r.data); i++ {
		if r.data[i] == 0 {
			return string(r.data[off:i]), nil
		}
	}
	return "", fmt.Errorf("rmem: unterminated string at 0x%x", off)
}

func (r *Reader) U8(off int) (uint8, error) {
	b, err := r.Bytes(off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) U16(off int) (uint16, error) {
	b, err := r.Bytes(off, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) I16(off int) (int16, error) {
	v, err := r.U16(off)
	return int16(v), err
}

func (r *Reader) U32(off int) (uint32, error) {
	b, err := r.Bytes(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) I32(off int) (int32, error) {
	v, err := r.U32(off)
	return int32(v), err
}

func (r *Reader) U64(off int) (uint64, error) {
	b, err := r.Bytes(off, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) F32(off int) (float32, error) {
	v, err := r.U32(off)
	return math.Float32frombits(v), err
}
