// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package authority

// AdversarySet is a sticky membership set: once an ID is marked, it
// stays marked for the lifetime of the instance. The reference
// implementation keeps this as a dense []bool bitmap; a map is the
// idiomatic Go rendering for a sparse, append-only id set of this
// size.
type AdversarySet struct {
	marked map[ID]struct{}
}

// NewAdversarySet returns an empty AdversarySet sized for n
// authorities.
func NewAdversarySet(n int) *AdversarySet {
	return &AdversarySet{marked: make(map[ID]struct{}, n)}
}

// Mark flags id as adversarial. Marking an already-marked id is a
// no-op.
func (a *AdversarySet) Mark(id ID) {
	a.marked[id] = struct{}{}
}

// IsMarked reports whether id has ever been marked.
func (a *AdversarySet) IsMarked(id ID) bool {
	_, ok := a.marked[id]
	return ok
}

// Len returns the number of marked authorities.
func (a *AdversarySet) Len() int {
	return len(a.marked)
}

// List returns the marked authorities in no particular order.
func (a *AdversarySet) List() []ID {
	ids := make([]ID, 0, len(a.marked))
	for id := range a.marked {
		ids = append(ids, id)
	}
	return ids
}
