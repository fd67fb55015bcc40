// Package arena implements the forward-only output buffer a conversion run
// writes through, plus the deferred string table that backfills name offsets
// once all structural data is in place.
package arena

import (
	"encoding/binary"
	"fmt"
)

// DefaultCapacity comfortably exceeds any legitimate model file.
const DefaultCapacity = 32 * 1024 * 1024

// Arena is a pre-sized write buffer with a monotonically advancing cursor.
// The cursor never moves backwards; records that need later fixups are
// reserved first and patched in place with PlaceAt/WriteAt.
type Arena struct {
	buf []byte
	cur int
}

func New(capacity int) *Arena {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Arena{buf: make([]byte, capacity)}
}

// Position returns the current write cursor as an offset from the base.
func (a *Arena) Position() int {
	return a.cur
}

func (a *Arena) Capacity() int {
	return len(a.buf)
}

// Bytes returns the written portion of the buffer.
func (a *Arena) Bytes() []byte {
	return a.buf[:a.cur]
}

// ensure checks capacity before any write advances the cursor. Overflow is
// fatal for the file being converted, never silently truncated.
func (a *Arena) ensure(n int) error {
	if n < 0 {
		return fmt.Errorf("arena: negative write size %d", n)
	}
	if a.cur+n > len(a.buf) {
		return fmt.Errorf("arena: write of %d bytes at 0x%x exceeds capacity 0x%x", n, a.cur, len(a.buf))
	}
	return nil
}

// Reserve advances the cursor over n zeroed bytes and returns their offset.
func (a *Arena) Reserve(n int) (int, error) {
	if err := a.ensure(n); err != nil {
		return 0, err
	}
	off := a.cur
	a.cur += n
	return off, nil
}

// Write appends b and returns its offset.
func (a *Arena) Write(b []byte) (int, error) {
	if err := a.ensure(len(b)); err != nil {
		return 0, err
	}
	off := a.cur
	copy(a.buf[off:], b)
	a.cur += len(b)
	return off, nil
}

// WriteAt overwrites already-reserved space. It never extends the cursor.
func (a *Arena) WriteAt(off int, b []byte) error {
	if off < 0 || off+len(b) > a.cur {
		return fmt.Errorf("arena: patch of %d bytes at 0x%x outside written region 0x%x", len(b), off, a.cur)
	}
	copy(a.buf[off:], b)
	return nil
}

// Place encodes a packed little-endian record at the cursor and returns its
// offset.
func (a *Arena) Place(v any) (int, error) {
	n := binary.Size(v)
	if n < 0 {
		return 0, fmt.Errorf("arena: type %T has no fixed size", v)
	}
	if err := a.ensure(n); err != nil {
		return 0, err
	}
	off := a.cur
	if _, err := binary.Encode(a.buf[off:off+n], binary.LittleEndian, v); err != nil {
		return 0, fmt.Errorf("arena: encode %T: %w", v, err)
	}
	a.cur += n
	return off, nil
}

// PlaceAt re-encodes a record over space reserved earlier.
func (a *Arena) PlaceAt(off int, v any) error {
	n := binary.Size(v)
	if n < 0 {
		return fmt.Errorf("arena: type %T has no fixed size", v)
	}
	if off < 0 || off+n > a.cur {
		return fmt.Errorf("arena: patch of %T at 0x%x outside written region 0x%x", v, off, a.cur)
	}
	if _, err := binary.Encode(a.buf[off:off+n], binary.LittleEndian, v); err != nil {
		return fmt.Errorf("arena: encode %T: %w", v, err)
	}
	return nil
}

// PutI32 patches a single 4-byte slot.
func (a *Arena) PutI32(off int, v int32) error {
	return a.PlaceAt(off, v)
}

// Align advances the cursor to the next multiple of boundary.
func (a *Arena) Align(boundary int) error {
	rem := a.cur % boundary
	if rem == 0 {
		return nil
	}
	_, err := a.Reserve(boundary - rem)
	return err
}
