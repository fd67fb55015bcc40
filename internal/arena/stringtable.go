package arena

import "fmt"

type stringRef struct {
	owner int // offset of the record that owns the patch slot
	slot  int // offset of the 4-byte slot to backfill
	entry int
}

// StringTable collects names during conversion and writes them once, after
// all structural data. Each patch slot receives the string's final offset
// relative to its owning record, matching how the runtime resolves names.
type StringTable struct {
	entries []string
	index   map[string]int
	refs    []stringRef
}

func NewStringTable() *StringTable {
	return &StringTable{index: make(map[string]int)}
}

// Intern registers text for the patch slot at slotOff, owned by the record at
// ownerOff. Interning the same text twice stores it once; both slots resolve
// to the identical final offset.
func (t *StringTable) Intern(ownerOff, slotOff int, text string) {
	entry, ok := t.index[text]
	if !ok {
		entry = len(t.entries)
		t.entries = append(t.entries, text)
		t.index[text] = entry
	}
	t.refs = append(t.refs, stringRef{owner: ownerOff, slot: slotOff, entry: entry})
}

// Len returns the number of unique strings collected so far.
func (t *StringTable) Len() int {
	return len(t.entries)
}

// Finalize writes the deduplicated, null-terminated strings at the arena
// cursor and resolves every pending patch slot. Every reference is resolved
// exactly once; a slot outside the written region is a programming defect
// surfaced as an error.
func (t *StringTable) Finalize(a *Arena) error {
	offsets := make([]int, len(t.entries))
	for i, s := range t.entries {
		off, err := a.Write(append([]byte(s), 0))
		if err != nil {
			return fmt.Errorf("arena: write string %q: %w", s, err)
		}
		offsets[i] = off
	}
	for _, ref := range t.refs {
		if err := a.PutI32(ref.slot, int32(offsets[ref.entry]-ref.owner)); err != nil {
			return fmt.Errorf("arena: resolve string slot at 0x%x: %w", ref.slot, err)
		}
	}
	return nil
}
