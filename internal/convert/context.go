// Package convert rewrites studio model files from newer sub-versions down
// to sub-version 10. Each source family gets its own entry point; the
// shared record emitters live alongside and work through a Context so runs
// never share state.
package convert

import (
	"fmt"

	"github.com/CafeFPS/rmdlconv/internal/arena"
	"github.com/CafeFPS/rmdlconv/internal/rmem"
	"github.com/CafeFPS/rmdlconv/internal/studio"
)

// Context carries the state of a single model conversion: the source reader,
// the output arena, the deferred string table and the output header being
// filled in. Errors from the arena stick to the context so emitters can run
// straight-line; the orchestrator checks Err once per phase.
type Context struct {
	src     *rmem.Reader
	out     *arena.Arena
	strings *arena.StringTable
	hdr     *studio.HeaderV10
	base    rmem.AddrBase

	numBones int
	logf     func(format string, args ...any)

	err error
}

func newContext(src []byte, base rmem.AddrBase, logf func(string, ...any)) *Context {
	return &Context{
		src:     rmem.NewReader(src),
		out:     arena.New(arena.DefaultCapacity),
		strings: arena.NewStringTable(),
		hdr:     &studio.HeaderV10{},
		base:    base,
		logf:    logf,
	}
}

// resolve maps a stored header offset onto the source buffer using the
// version's addressing convention. The header record sits at offset zero.
func (c *Context) resolve(stored int) int {
	return rmem.Resolve(c.base, stored, 0, 0)
}

// resolveFrom maps a stored record-relative offset (names, nested arrays)
// onto the source buffer. Record sub-data stays record relative in every
// version, including the ones that store header offsets absolutely.
func (c *Context) resolveFrom(recordOff, stored int) int {
	return rmem.Resolve(rmem.RelativeToStruct, stored, recordOff, 0)
}

// Err returns the first failure recorded by any emitter.
func (c *Context) Err() error {
	return c.err
}

func (c *Context) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *Context) failf(format string, args ...any) {
	c.fail(fmt.Errorf(format, args...))
}

func (c *Context) log(format string, args ...any) {
	if c.logf != nil {
		c.logf(format, args...)
	}
}

// Output helpers. All of them are no-ops once an error is recorded.

func (c *Context) pos() int {
	return c.out.Position()
}

func (c *Context) place(v any) int {
	if c.err != nil {
		return 0
	}
	off, err := c.out.Place(v)
	if err != nil {
		c.fail(err)
	}
	return off
}

func (c *Context) placeAt(off int, v any) {
	if c.err != nil {
		return
	}
	c.fail(c.out.PlaceAt(off, v))
}

func (c *Context) reserve(n int) int {
	if c.err != nil {
		return 0
	}
	off, err := c.out.Reserve(n)
	if err != nil {
		c.fail(err)
	}
	return off
}

func (c *Context) write(b []byte) int {
	if c.err != nil {
		return 0
	}
	off, err := c.out.Write(b)
	if err != nil {
		c.fail(err)
	}
	return off
}

func (c *Context) putI32(off int, v int32) {
	if c.err != nil {
		return
	}
	c.fail(c.out.PutI32(off, v))
}

func (c *Context) align(boundary int) {
	if c.err != nil {
		return
	}
	c.fail(c.out.Align(boundary))
}

// intern queues text for the string table; the slot at ownerOff+slotOff is
// backfilled when the table is flushed.
func (c *Context) intern(ownerOff, slotOff int, text string) {
	c.strings.Intern(ownerOff, ownerOff+slotOff, text)
}

// Source helpers.

func (c *Context) srcStruct(off int, v any) {
	if c.err != nil {
		return
	}
	c.fail(c.src.Struct(off, v))
}

func (c *Context) srcBytes(off, n int) []byte {
	if c.err != nil {
		return nil
	}
	b, err := c.src.Bytes(off, n)
	if err != nil {
		c.fail(err)
		return nil
	}
	return b
}

func (c *Context) srcString(off int) string {
	if c.err != nil {
		return ""
	}
	s, err := c.src.CString(off)
	if err != nil {
		c.fail(err)
		return ""
	}
	return s
}

func (c *Context) srcI32(off int) int32 {
	if c.err != nil {
		return 0
	}
	v, err := c.src.I32(off)
	if err != nil {
		c.fail(err)
		return 0
	}
	return v
}

func (c *Context) srcU16(off int) uint16 {
	if c.err != nil {
		return 0
	}
	v, err := c.src.U16(off)
	if err != nil {
		c.fail(err)
		return 0
	}
	return v
}

func (c *Context) srcI16(off int) int16 {
	if c.err != nil {
		return 0
	}
	v, err := c.src.I16(off)
	if err != nil {
		c.fail(err)
		return 0
	}
	return v
}

func (c *Context) srcU8(off int) uint8 {
	if c.err != nil {
		return 0
	}
	v, err := c.src.U8(off)
	if err != nil {
		c.fail(err)
		return 0
	}
	return v
}

func (c *Context) srcU64(off int) uint64 {
	if c.err != nil {
		return 0
	}
	v, err := c.src.U64(off)
	if err != nil {
		c.fail(err)
		return 0
	}
	return v
}

// finalizeStrings encodes the in-memory header over its reserved space and
// flushes the deferred string table behind the structural data. Header
// fields stamped later (length, collision offset, physics size) are patched
// through their byte slots so the interned name offsets survive.
func (c *Context) finalizeStrings() {
	if c.err != nil {
		return
	}
	c.placeAt(0, c.hdr)
	c.fail(c.strings.Finalize(c.out))
}

// finish stamps the final file length and returns the file image.
func (c *Context) finish() ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.putI32(studio.HeaderV10LengthOff, int32(c.out.Position()))
	if c.err != nil {
		return nil, c.err
	}
	return c.out.Bytes(), nil
}
