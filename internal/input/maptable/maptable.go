// Package maptable stores key remapping definitions: which raw input
// sequence rewrites to which output sequence, per mode.
package maptable

import (
	"bytes"
	"slices"

	"github.com/dshills/remap/internal/input/notation"
)

// Mapping is one remapping entry. It is immutable once created.
type Mapping struct {
	// Input is the left-hand side, the raw sequence to match.
	Input []byte

	// Output is the right-hand side substituted for Input. Its length
	// may differ from Input's.
	Output []byte

	// Mode names the input mode this mapping is active in.
	Mode string
}

// Table is an ordered collection of mappings, newest-inserted first.
// Scan order is the tie-break when two mappings of equal input length
// match: the most recently inserted one wins. The table is exclusively
// owned by the engine and is not safe for concurrent use.
type Table struct {
	entries []*Mapping
}

// New creates an empty mapping table.
func New() *Table {
	return &Table{}
}

// Insert parses lhs and rhs as key notation and prepends the resulting
// mapping. Duplicate inputs are not rejected; a newer duplicate shadows
// older ones because the scan reaches it first.
func (t *Table) Insert(mode, lhs, rhs string) {
	m := &Mapping{
		Input:  notation.Parse(lhs),
		Output: notation.Parse(rhs),
		Mode:   mode,
	}
	t.entries = slices.Insert(t.entries, 0, m)
}

// Delete removes the first entry whose mode and input sequence exactly
// match lhs. It reports whether one was found.
func (t *Table) Delete(mode, lhs string) bool {
	input := notation.Parse(lhs)
	for i, m := range t.entries {
		if m.Mode == mode && bytes.Equal(m.Input, input) {
			t.entries = slices.Delete(t.entries, i, i+1)
			return true
		}
	}
	return false
}

// Each calls fn for every entry active in mode, in scan order (newest
// first). Iteration stops early if fn returns false.
func (t *Table) Each(mode string, fn func(*Mapping) bool) {
	for _, m := range t.entries {
		if m.Mode != mode {
			continue
		}
		if !fn(m) {
			return
		}
	}
}

// Mappings returns a snapshot of the entries active in mode, in scan
// order. An empty mode returns all entries.
func (t *Table) Mappings(mode string) []*Mapping {
	out := make([]*Mapping, 0, len(t.entries))
	for _, m := range t.entries {
		if mode == "" || m.Mode == mode {
			out = append(out, m)
		}
	}
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Clear removes all entries.
func (t *Table) Clear() {
	t.entries = nil
}
