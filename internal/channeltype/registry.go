package channeltype

import (
	"fmt"
)

// Registry is an immutable id -> Entry mapping. It is built once at startup
// and is safe for concurrent readers without locking.
type Registry struct {
	entries []Entry     // source order
	byID    map[int]int // id -> index into entries
}

// New builds a registry from an ordered list of entries. It fails on the
// first invalid entry or duplicate identifier instead of letting a later
// declaration overwrite an earlier one.
func New(entries []Entry) (*Registry, error) {
	r := &Registry{
		entries: make([]Entry, 0, len(entries)),
		byID:    make(map[int]int, len(entries)),
	}

	for i, e := range entries {
		if err := validateEntry(i, e); err != nil {
			return nil, err
		}
		if first, exists := r.byID[e.ID]; exists {
			return nil, &DuplicateIDError{
				ID:          e.ID,
				FirstIndex:  first,
				FirstLabel:  r.entries[first].Label,
				SecondIndex: i,
				SecondLabel: e.Label,
			}
		}
		r.byID[e.ID] = len(r.entries)
		r.entries = append(r.entries, e)
	}

	return r, nil
}

// MustNew is like New but panics on error. Use it only for compiled-in tables.
func MustNew(entries []Entry) *Registry {
	r, err := New(entries)
	if err != nil {
		panic(fmt.Sprintf("channeltype: %v", err))
	}
	return r
}

// Lookup returns the entry registered under id. Absent ids yield ErrNotFound;
// the caller picks the fallback.
func (r *Registry) Lookup(id int) (Entry, error) {
	idx, ok := r.byID[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return r.entries[idx], nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id int) bool {
	_, ok := r.byID[id]
	return ok
}

// ListAll returns every entry once, in source order.
func (r *Registry) ListAll() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of registered channel types.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Colors returns the colors in use, in legend order.
func (r *Registry) Colors() []StatusColor {
	used := make(map[StatusColor]bool)
	for _, e := range r.entries {
		used[e.Color] = true
	}
	out := make([]StatusColor, 0, len(used))
	for _, c := range knownColors {
		if used[c] {
			out = append(out, c)
		}
	}
	return out
}

// ByColor groups entries by color, keeping source order inside each group.
func (r *Registry) ByColor() map[StatusColor][]Entry {
	out := make(map[StatusColor][]Entry)
	for _, e := range r.entries {
		out[e.Color] = append(out[e.Color], e)
	}
	return out
}
