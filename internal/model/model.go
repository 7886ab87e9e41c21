// Copyright 2024, alexa2anylist contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package model holds the data types shared by every component of the
// synchronizer: the primary (id-bearing, API-driven) list, the secondary
// (name-only) list, and the snapshot pair the Diff Engine consumes.
package model

// PrimaryItem is a single entry on the primary list. Fields beyond ID, Name
// and Checked are carried opaquely by callers and never inspected by the
// core.
type PrimaryItem struct {
	ID      string
	Name    string
	Checked bool

	// Extra carries any primary-side fields the core does not model
	// (quantity, details, category, ...). It is opaque and round-tripped
	// as-is by PrimaryClient implementations; the core never reads it.
	Extra map[string]any
}

// PrimaryList is an ordered collection of PrimaryItems, indexed by ID.
type PrimaryList struct {
	items []PrimaryItem
	byID  map[string]int
}

// NewPrimaryList builds a PrimaryList from items, preserving their order.
// If two items share an ID, the later one wins the index lookup; the core
// otherwise treats IDs as unique.
func NewPrimaryList(items []PrimaryItem) PrimaryList {
	byID := make(map[string]int, len(items))
	for i, it := range items {
		byID[it.ID] = i
	}
	return PrimaryList{items: items, byID: byID}
}

// Items returns the list's items in traversal order. The slice is owned by
// the caller; mutating it does not affect the PrimaryList.
func (l PrimaryList) Items() []PrimaryItem {
	out := make([]PrimaryItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len reports the number of items in the list.
func (l PrimaryList) Len() int {
	return len(l.items)
}

// ByID looks up an item by its stable identifier.
func (l PrimaryList) ByID(id string) (PrimaryItem, bool) {
	idx, ok := l.byID[id]
	if !ok {
		return PrimaryItem{}, false
	}
	return l.items[idx], true
}

// ByName looks up the first unchecked item with the given name, then falls
// back to the first item with that name at all. Name collisions on the
// primary are not supported by the secondary's data model; callers that
// need to warn about collisions should count names over Items themselves,
// since ActiveNames collapses duplicates.
func (l PrimaryList) ByName(name string) (PrimaryItem, bool) {
	var checkedMatch PrimaryItem
	found := false
	for _, it := range l.items {
		if it.Name != name {
			continue
		}
		if !it.Checked {
			return it, true
		}
		checkedMatch = it
		found = true
	}
	return checkedMatch, found
}

// ActiveNames returns the set of names belonging to unchecked ("active")
// items. If two active items share a name, the set collapses them to one
// slot — the secondary has no concept of duplicate names.
func (l PrimaryList) ActiveNames() map[string]struct{} {
	names := make(map[string]struct{})
	for _, it := range l.items {
		if !it.Checked {
			names[it.Name] = struct{}{}
		}
	}
	return names
}

// SecondaryList is a set of name strings; duplicates are not meaningful.
type SecondaryList map[string]struct{}

// NewSecondaryList builds a SecondaryList from a slice of names.
func NewSecondaryList(names []string) SecondaryList {
	l := make(SecondaryList, len(names))
	for _, n := range names {
		l[n] = struct{}{}
	}
	return l
}

// Contains reports whether name is present on the secondary.
func (l SecondaryList) Contains(name string) bool {
	_, ok := l[name]
	return ok
}

// Names returns the set's members as a slice, in unspecified order.
func (l SecondaryList) Names() []string {
	out := make([]string, 0, len(l))
	for n := range l {
		out = append(out, n)
	}
	return out
}

// Add inserts name into the set, mutating it in place.
func (l SecondaryList) Add(name string) {
	l[name] = struct{}{}
}

// Remove deletes name from the set, mutating it in place. A no-op if name
// is absent.
func (l SecondaryList) Remove(name string) {
	delete(l, name)
}

// Clone returns an independent copy of the set.
func (l SecondaryList) Clone() SecondaryList {
	out := make(SecondaryList, len(l))
	for n := range l {
		out[n] = struct{}{}
	}
	return out
}

// Snapshot is a point-in-time view of both sides of the sync.
type Snapshot struct {
	Primary   PrimaryList
	Secondary SecondaryList
}
