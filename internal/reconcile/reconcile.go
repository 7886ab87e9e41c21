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

// Package reconcile implements the Reconciler: it applies a ChangeSet to
// both sides of the sync, primary authoritative on conflict, recording
// every intended mutation in the Journal before executing it.
package reconcile

import (
	"context"
	"sort"

	"github.com/alexiri/alexa2anylist/internal/journal"
	"github.com/alexiri/alexa2anylist/internal/logging"
	"github.com/alexiri/alexa2anylist/internal/model"
)

// Reconciler applies ChangeSets to the primary and secondary sides and
// journals intent before acting.
type Reconciler struct {
	primary   PrimaryMutator
	secondary SecondaryMutator
	journal   *journal.Journal
}

// New builds a Reconciler wired to the given mutators and Journal.
func New(primary PrimaryMutator, secondary SecondaryMutator, j *journal.Journal) *Reconciler {
	return &Reconciler{primary: primary, secondary: secondary, journal: j}
}

// Prepare records cs into the Journal and persists it: reset the buckets,
// populate them from cs, then save.
func (r *Reconciler) Prepare(cs model.ChangeSet) error {
	r.journal.Reset()
	r.journal.Populate(cs)
	return r.journal.Save()
}

// Commit applies whatever ChangeSet the Journal currently holds. prevPrimary
// supplies the pre-rename name for BucketPrimaryRenamed entries; curPrimary
// supplies every primary item's current name/checked state; curSecondary
// seeds the working view each predicate checks. None of the three is
// re-fetched — Commit never re-diffs, it only replays the Journal's intent.
//
// On success, the Journal is reset and re-persisted.
func (r *Reconciler) Commit(ctx context.Context, prevPrimary, curPrimary model.PrimaryList, curSecondary model.SecondaryList) error {
	if !r.journal.IsDirty() {
		logging.Infof("reconcile: journal is clean, nothing to do")
		return nil
	}

	cs := r.journal.ChangeSet()
	view := curSecondary.Clone()
	if err := r.apply(ctx, cs, prevPrimary, curPrimary, view); err != nil {
		return err
	}

	r.journal.Reset()
	return r.journal.Save()
}

// apply walks the ChangeSet bucket by bucket in a fixed order:
// primary-originated buckets (pushing the authority's state to
// the secondary) before secondary-originated buckets (reflecting user
// edits back to the authority). secView is mutated in place as each
// secondary mutation succeeds, so a later bucket in the same commit sees
// the effect of an earlier one without a network round trip.
func (r *Reconciler) apply(ctx context.Context, cs model.ChangeSet, prevPrimary, curPrimary model.PrimaryList, secView model.SecondaryList) error {
	for _, id := range cs.PrimaryNew {
		item, ok := curPrimary.ByID(id)
		if !ok {
			continue
		}
		if err := r.pushPrimaryNew(ctx, item, secView); err != nil {
			return err
		}
	}
	for _, id := range cs.PrimaryChecked {
		item, ok := curPrimary.ByID(id)
		if !ok {
			continue
		}
		if err := r.pushPrimaryChecked(ctx, item, secView); err != nil {
			return err
		}
	}
	for _, id := range cs.PrimaryUnchecked {
		item, ok := curPrimary.ByID(id)
		if !ok {
			continue
		}
		if err := r.pushPrimaryUnchecked(ctx, item, secView); err != nil {
			return err
		}
	}
	for _, id := range cs.PrimaryRenamed {
		item, ok := curPrimary.ByID(id)
		if !ok {
			continue
		}
		oldItem, ok := prevPrimary.ByID(id)
		if !ok {
			continue
		}
		if err := r.pushPrimaryRenamed(ctx, oldItem, item, secView); err != nil {
			return err
		}
	}
	for _, id := range cs.PrimaryDeleted {
		item, ok := prevPrimary.ByID(id)
		if !ok {
			continue
		}
		if err := r.pushPrimaryDeleted(ctx, item, secView); err != nil {
			return err
		}
	}
	for _, name := range cs.SecondaryNew {
		if err := r.pushSecondaryNew(ctx, name, curPrimary); err != nil {
			return err
		}
	}
	for _, name := range cs.SecondaryDeleted {
		if err := r.pushSecondaryDeleted(ctx, name, curPrimary); err != nil {
			return err
		}
	}
	return nil
}

// pushPrimaryNew: predicate "item.name ∉ secondary" -> add to secondary.
func (r *Reconciler) pushPrimaryNew(ctx context.Context, item model.PrimaryItem, secView model.SecondaryList) error {
	if secView.Contains(item.Name) {
		return nil
	}
	logging.Debugf("reconcile: adding %q to secondary (new on primary)", item.Name)
	if err := r.secondary.Add(ctx, item.Name); err != nil {
		return err
	}
	secView.Add(item.Name)
	return nil
}

// pushPrimaryChecked: predicate "item.name ∈ secondary" -> remove from
// secondary.
func (r *Reconciler) pushPrimaryChecked(ctx context.Context, item model.PrimaryItem, secView model.SecondaryList) error {
	if !secView.Contains(item.Name) {
		return nil
	}
	logging.Debugf("reconcile: removing %q from secondary (checked on primary)", item.Name)
	if err := r.secondary.Remove(ctx, item.Name); err != nil {
		return err
	}
	secView.Remove(item.Name)
	return nil
}

// pushPrimaryUnchecked: predicate "item.name ∉ secondary" -> add to
// secondary.
func (r *Reconciler) pushPrimaryUnchecked(ctx context.Context, item model.PrimaryItem, secView model.SecondaryList) error {
	if secView.Contains(item.Name) {
		return nil
	}
	logging.Debugf("reconcile: adding %q to secondary (unchecked on primary)", item.Name)
	if err := r.secondary.Add(ctx, item.Name); err != nil {
		return err
	}
	secView.Add(item.Name)
	return nil
}

// pushPrimaryRenamed: predicate "old.name ∈ secondary ∧ new.name ∉
// secondary" -> rename old.name to new.name on secondary.
func (r *Reconciler) pushPrimaryRenamed(ctx context.Context, oldItem, newItem model.PrimaryItem, secView model.SecondaryList) error {
	if !secView.Contains(oldItem.Name) || secView.Contains(newItem.Name) {
		return nil
	}
	logging.Debugf("reconcile: renaming %q to %q on secondary", oldItem.Name, newItem.Name)
	if err := r.secondary.Rename(ctx, oldItem.Name, newItem.Name); err != nil {
		return err
	}
	secView.Remove(oldItem.Name)
	secView.Add(newItem.Name)
	return nil
}

// pushPrimaryDeleted: predicate "item.name ∈ secondary" -> remove from
// secondary.
func (r *Reconciler) pushPrimaryDeleted(ctx context.Context, item model.PrimaryItem, secView model.SecondaryList) error {
	if !secView.Contains(item.Name) {
		return nil
	}
	logging.Debugf("reconcile: removing %q from secondary (deleted on primary)", item.Name)
	if err := r.secondary.Remove(ctx, item.Name); err != nil {
		return err
	}
	secView.Remove(item.Name)
	return nil
}

// pushSecondaryNew: predicate "primary has no active item with this name"
// -> add-or-uncheck on primary.
func (r *Reconciler) pushSecondaryNew(ctx context.Context, name string, curPrimary model.PrimaryList) error {
	item, exists := curPrimary.ByName(name)
	if exists && !item.Checked {
		return nil
	}
	logging.Debugf("reconcile: add-or-uncheck %q on primary (new on secondary)", name)
	return r.primary.AddOrUncheck(ctx, name)
}

// pushSecondaryDeleted: predicate "primary has an item with this name" ->
// mark it checked on primary.
func (r *Reconciler) pushSecondaryDeleted(ctx context.Context, name string, curPrimary model.PrimaryList) error {
	item, exists := curPrimary.ByName(name)
	if !exists {
		return nil
	}
	logging.Debugf("reconcile: checking %q on primary (deleted on secondary)", name)
	return r.primary.Check(ctx, item.ID)
}

// Clobber runs the one-shot startup reconciliation: if primary's
// active-name set does not equal secondary's, it brings secondary in line
// with primary directly, bypassing the Journal entirely. It is the only
// path that deletes from secondary without journaling — safe only because
// it runs once, before the first normal cycle, while no commit is
// in flight.
func (r *Reconciler) Clobber(ctx context.Context, primaryList model.PrimaryList, secondaryList model.SecondaryList) error {
	active := primaryList.ActiveNames()

	names := make([]string, 0, len(active))
	for name := range active {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if secondaryList.Contains(name) {
			continue
		}
		logging.Infof("reconcile: clobber adding %q to secondary", name)
		if err := r.secondary.Add(ctx, name); err != nil {
			return err
		}
	}

	// Any secondary name with no corresponding active primary item is
	// stale, whether it never existed on primary or belongs only to a now
	// checked item.
	stale := secondaryList.Names()
	sort.Strings(stale)
	for _, name := range stale {
		if _, ok := active[name]; ok {
			continue
		}
		logging.Infof("reconcile: clobber removing %q from secondary", name)
		if err := r.secondary.Remove(ctx, name); err != nil {
			return err
		}
	}

	return nil
}

// WarnNameCollisions logs a WARNING for every name shared by two or more
// active primary items: the secondary's data model cannot represent the
// collision, so the core treats it as one slot (last-writer-wins by
// name).
func WarnNameCollisions(primary model.PrimaryList) {
	counts := make(map[string]int)
	for _, it := range primary.Items() {
		if !it.Checked {
			counts[it.Name]++
		}
	}
	names := make([]string, 0)
	for name, n := range counts {
		if n > 1 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		logging.Warningf("reconcile: %d active primary items share the name %q; secondary can only represent one", counts[name], name)
	}
}
