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

package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiri/alexa2anylist/internal/journal"
	"github.com/alexiri/alexa2anylist/internal/model"
	"github.com/alexiri/alexa2anylist/internal/primary"
	"github.com/alexiri/alexa2anylist/internal/secondary"
)

func TestReconciler_PrimaryNewAddsToSecondary(t *testing.T) {
	ctx := context.Background()
	p := primary.NewFakeClient([]model.PrimaryItem{{ID: "1", Name: "apple"}})
	s := secondary.NewFakeDriver(nil)
	j := journal.New("")
	r := New(p, s, j)

	r.Prepare(model.ChangeSet{PrimaryNew: []string{"1"}})

	cur, err := p.Snapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, r.Commit(ctx, cur, cur, model.NewSecondaryList(nil)))

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Contains("apple"))
}

func TestReconciler_PrimaryNewSkipsIfAlreadyOnSecondary(t *testing.T) {
	ctx := context.Background()
	p := primary.NewFakeClient([]model.PrimaryItem{{ID: "1", Name: "apple"}})
	s := secondary.NewFakeDriver([]string{"apple"})
	j := journal.New("")
	r := New(p, s, j)

	r.Prepare(model.ChangeSet{PrimaryNew: []string{"1"}})

	cur, err := p.Snapshot(ctx)
	require.NoError(t, err)
	secSnap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, r.Commit(ctx, cur, cur, secSnap))

	names, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, len(names))
}

func TestReconciler_PrimaryCheckedRemovesFromSecondary(t *testing.T) {
	ctx := context.Background()
	p := primary.NewFakeClient([]model.PrimaryItem{{ID: "1", Name: "apple", Checked: true}})
	s := secondary.NewFakeDriver([]string{"apple"})
	j := journal.New("")
	r := New(p, s, j)

	r.Prepare(model.ChangeSet{PrimaryChecked: []string{"1"}})

	cur, err := p.Snapshot(ctx)
	require.NoError(t, err)
	secSnap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, r.Commit(ctx, cur, cur, secSnap))

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.False(t, snap.Contains("apple"))
}

func TestReconciler_SecondaryNewAddsOrUnchecksOnPrimary(t *testing.T) {
	ctx := context.Background()
	p := primary.NewFakeClient(nil)
	s := secondary.NewFakeDriver([]string{"bread"})
	j := journal.New("")
	r := New(p, s, j)

	r.Prepare(model.ChangeSet{SecondaryNew: []string{"bread"}})

	cur, err := p.Snapshot(ctx)
	require.NoError(t, err)
	secSnap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, r.Commit(ctx, cur, cur, secSnap))

	after, err := p.Snapshot(ctx)
	require.NoError(t, err)
	item, ok := after.ByName("bread")
	require.True(t, ok)
	assert.False(t, item.Checked)
}

func TestReconciler_SecondaryNewUnchecksExistingCheckedItem(t *testing.T) {
	ctx := context.Background()
	p := primary.NewFakeClient([]model.PrimaryItem{{ID: "1", Name: "milk", Checked: true}})
	s := secondary.NewFakeDriver([]string{"milk"})
	j := journal.New("")
	r := New(p, s, j)

	r.Prepare(model.ChangeSet{SecondaryNew: []string{"milk"}})

	cur, err := p.Snapshot(ctx)
	require.NoError(t, err)
	secSnap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, r.Commit(ctx, cur, cur, secSnap))

	after, err := p.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, after.Len(), "add-or-uncheck must not create a duplicate item")
	item, ok := after.ByID("1")
	require.True(t, ok)
	assert.False(t, item.Checked)
}

func TestReconciler_SecondaryDeletedChecksOnPrimary(t *testing.T) {
	ctx := context.Background()
	p := primary.NewFakeClient([]model.PrimaryItem{{ID: "1", Name: "milk"}})
	s := secondary.NewFakeDriver(nil)
	j := journal.New("")
	r := New(p, s, j)

	r.Prepare(model.ChangeSet{SecondaryDeleted: []string{"milk"}})

	cur, err := p.Snapshot(ctx)
	require.NoError(t, err)
	secSnap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, r.Commit(ctx, cur, cur, secSnap))

	after, err := p.Snapshot(ctx)
	require.NoError(t, err)
	item, ok := after.ByID("1")
	require.True(t, ok)
	assert.True(t, item.Checked)
}

func TestReconciler_RenameOnPrimaryRenamesOnSecondary(t *testing.T) {
	ctx := context.Background()
	prev := model.NewPrimaryList([]model.PrimaryItem{{ID: "X", Name: "milc"}})
	p := primary.NewFakeClient([]model.PrimaryItem{{ID: "X", Name: "milk"}})
	s := secondary.NewFakeDriver([]string{"milc"})
	j := journal.New("")
	r := New(p, s, j)

	r.Prepare(model.ChangeSet{PrimaryRenamed: []string{"X"}})

	cur, err := p.Snapshot(ctx)
	require.NoError(t, err)
	secSnap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, r.Commit(ctx, prev, cur, secSnap))

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Contains("milk"))
	assert.False(t, snap.Contains("milc"))
}

func TestReconciler_CleanJournalCommitsNothing(t *testing.T) {
	ctx := context.Background()
	p := primary.NewFakeClient(nil)
	s := secondary.NewFakeDriver(nil)
	j := journal.New("")
	r := New(p, s, j)

	cur, err := p.Snapshot(ctx)
	require.NoError(t, err)
	assert.NoError(t, r.Commit(ctx, cur, cur, model.NewSecondaryList(nil)))
}

func TestReconciler_Clobber_AddsMissingActiveNames(t *testing.T) {
	ctx := context.Background()
	p := primary.NewFakeClient([]model.PrimaryItem{{ID: "1", Name: "apple"}})
	s := secondary.NewFakeDriver(nil)
	j := journal.New("")
	r := New(p, s, j)

	cur, err := p.Snapshot(ctx)
	require.NoError(t, err)
	secSnap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, r.Clobber(ctx, cur, secSnap))

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Contains("apple"))
}

func TestReconciler_Clobber_RemovesStaleSecondaryNames(t *testing.T) {
	ctx := context.Background()
	p := primary.NewFakeClient([]model.PrimaryItem{{ID: "1", Name: "apple", Checked: true}})
	s := secondary.NewFakeDriver([]string{"apple", "ghost"})
	j := journal.New("")
	r := New(p, s, j)

	cur, err := p.Snapshot(ctx)
	require.NoError(t, err)
	secSnap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, r.Clobber(ctx, cur, secSnap))

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.False(t, snap.Contains("apple"))
	assert.False(t, snap.Contains("ghost"))
}

func TestReconciler_PredicateSafety_ReplayDoesNotDoubleApply(t *testing.T) {
	// Simulates scenario 6 followed by a second replay: the same ChangeSet
	// is committed twice, as happens when a crash hits after the secondary
	// mutation but before the journal reset. The second commit's predicate
	// sees the name on the freshly-read secondary and skips the add.
	ctx := context.Background()
	p := primary.NewFakeClient([]model.PrimaryItem{{ID: "1", Name: "eggs"}})
	s := secondary.NewFakeDriver(nil)
	j := journal.New("")
	r := New(p, s, j)

	r.Prepare(model.ChangeSet{PrimaryNew: []string{"1"}})

	cur, err := p.Snapshot(ctx)
	require.NoError(t, err)
	secSnap, err := s.Snapshot(ctx)
	require.NoError(t, err)

	// First commit applies the mutation and resets the journal.
	require.NoError(t, r.Commit(ctx, cur, cur, secSnap))
	assert.False(t, j.IsDirty())

	// Replay the same ChangeSet against a freshly-read secondary.
	r.Prepare(model.ChangeSet{PrimaryNew: []string{"1"}})
	secSnap, err = s.Snapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, r.Commit(ctx, cur, cur, secSnap))
	assert.False(t, j.IsDirty())

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, len(snap))
}
