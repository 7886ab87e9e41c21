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

package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexiri/alexa2anylist/internal/model"
)

func TestCompute_NewUncheckedItem(t *testing.T) {
	prev := model.NewPrimaryList(nil)
	cur := model.NewPrimaryList([]model.PrimaryItem{{ID: "1", Name: "milk"}})

	cs := Compute(prev, cur, model.NewSecondaryList(nil), model.NewSecondaryList(nil))

	assert.Equal(t, []string{"1"}, cs.PrimaryNew)
	assert.Empty(t, cs.PrimaryChecked)
}

func TestCompute_NewAlreadyCheckedItemIgnored(t *testing.T) {
	prev := model.NewPrimaryList(nil)
	cur := model.NewPrimaryList([]model.PrimaryItem{{ID: "1", Name: "milk", Checked: true}})

	cs := Compute(prev, cur, model.NewSecondaryList(nil), model.NewSecondaryList(nil))

	assert.Empty(t, cs.PrimaryNew, "a new-but-already-checked item must never reach the secondary")
	assert.Empty(t, cs.PrimaryChecked)
}

func TestCompute_CheckedTransition(t *testing.T) {
	prev := model.NewPrimaryList([]model.PrimaryItem{{ID: "1", Name: "milk"}})
	cur := model.NewPrimaryList([]model.PrimaryItem{{ID: "1", Name: "milk", Checked: true}})

	cs := Compute(prev, cur, model.NewSecondaryList(nil), model.NewSecondaryList(nil))

	assert.Equal(t, []string{"1"}, cs.PrimaryChecked)
}

func TestCompute_UncheckedTransition(t *testing.T) {
	prev := model.NewPrimaryList([]model.PrimaryItem{{ID: "1", Name: "milk", Checked: true}})
	cur := model.NewPrimaryList([]model.PrimaryItem{{ID: "1", Name: "milk"}})

	cs := Compute(prev, cur, model.NewSecondaryList(nil), model.NewSecondaryList(nil))

	assert.Equal(t, []string{"1"}, cs.PrimaryUnchecked)
}

func TestCompute_CheckAndRenameInSameCycle(t *testing.T) {
	prev := model.NewPrimaryList([]model.PrimaryItem{{ID: "1", Name: "milk"}})
	cur := model.NewPrimaryList([]model.PrimaryItem{{ID: "1", Name: "oat milk", Checked: true}})

	cs := Compute(prev, cur, model.NewSecondaryList(nil), model.NewSecondaryList(nil))

	assert.Equal(t, []string{"1"}, cs.PrimaryChecked, "check-state wins over rename in the same cycle")
	assert.Empty(t, cs.PrimaryRenamed)
}

func TestCompute_Renamed(t *testing.T) {
	prev := model.NewPrimaryList([]model.PrimaryItem{{ID: "1", Name: "milk"}})
	cur := model.NewPrimaryList([]model.PrimaryItem{{ID: "1", Name: "oat milk"}})

	cs := Compute(prev, cur, model.NewSecondaryList(nil), model.NewSecondaryList(nil))

	assert.Equal(t, []string{"1"}, cs.PrimaryRenamed)
}

func TestCompute_Deleted(t *testing.T) {
	prev := model.NewPrimaryList([]model.PrimaryItem{{ID: "1", Name: "milk"}})
	cur := model.NewPrimaryList(nil)

	cs := Compute(prev, cur, model.NewSecondaryList(nil), model.NewSecondaryList(nil))

	assert.Equal(t, []string{"1"}, cs.PrimaryDeleted)
}

func TestCompute_SecondaryNewAndDeleted(t *testing.T) {
	prevSecondary := model.NewSecondaryList([]string{"eggs"})
	curSecondary := model.NewSecondaryList([]string{"bread"})

	cs := Compute(model.NewPrimaryList(nil), model.NewPrimaryList(nil), prevSecondary, curSecondary)

	assert.Equal(t, []string{"bread"}, cs.SecondaryNew)
	assert.Equal(t, []string{"eggs"}, cs.SecondaryDeleted)
}

func TestCompute_IsDeterministicAcrossRuns(t *testing.T) {
	prevSecondary := model.NewSecondaryList([]string{"a", "b", "c", "d", "e"})
	curSecondary := model.NewSecondaryList([]string{"f", "g", "h", "i", "j"})

	first := Compute(model.NewPrimaryList(nil), model.NewPrimaryList(nil), prevSecondary, curSecondary)
	for i := 0; i < 20; i++ {
		again := Compute(model.NewPrimaryList(nil), model.NewPrimaryList(nil), prevSecondary, curSecondary)
		assert.Equal(t, first, again, "equal inputs must always produce an equal ChangeSet")
	}
}

func TestCompute_NoChanges(t *testing.T) {
	primaryList := model.NewPrimaryList([]model.PrimaryItem{{ID: "1", Name: "milk"}})
	secondaryList := model.NewSecondaryList([]string{"milk"})

	cs := Compute(primaryList, primaryList, secondaryList, secondaryList)

	assert.True(t, cs.IsEmpty())
}
