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

// Package diff implements the Diff Engine: a pure function from two
// snapshot pairs to a ChangeSet. It never performs I/O and has no
// observable state; the same inputs always produce an equal ChangeSet.
package diff

import (
	"sort"

	"github.com/alexiri/alexa2anylist/internal/model"
)

// Compute produces the ChangeSet describing how prevPrimary/prevSecondary
// changed into curPrimary/curSecondary.
func Compute(prevPrimary, curPrimary model.PrimaryList, prevSecondary, curSecondary model.SecondaryList) model.ChangeSet {
	var cs model.ChangeSet

	for _, item := range curPrimary.Items() {
		prevItem, existed := prevPrimary.ByID(item.ID)
		switch {
		case existed && item.Checked != prevItem.Checked:
			// Check-state changes override rename detection for the same
			// item in the same cycle: the next cycle's diff against the
			// now-updated previous snapshot will pick up any simultaneous
			// rename.
			if item.Checked {
				cs.PrimaryChecked = append(cs.PrimaryChecked, item.ID)
			} else {
				cs.PrimaryUnchecked = append(cs.PrimaryUnchecked, item.ID)
			}
		case existed && item.Name != prevItem.Name:
			cs.PrimaryRenamed = append(cs.PrimaryRenamed, item.ID)
		case !existed && !item.Checked:
			// A brand-new-but-already-checked item is intentionally
			// ignored: it cannot affect the secondary.
			cs.PrimaryNew = append(cs.PrimaryNew, item.ID)
		}
	}

	for _, item := range prevPrimary.Items() {
		if _, stillThere := curPrimary.ByID(item.ID); !stillThere {
			cs.PrimaryDeleted = append(cs.PrimaryDeleted, item.ID)
		}
	}

	for name := range curSecondary {
		if !prevSecondary.Contains(name) {
			cs.SecondaryNew = append(cs.SecondaryNew, name)
		}
	}
	for name := range prevSecondary {
		if !curSecondary.Contains(name) {
			cs.SecondaryDeleted = append(cs.SecondaryDeleted, name)
		}
	}
	// Secondary buckets come from set differences over Go maps; sort them
	// so that equal inputs always produce an equal ChangeSet, since map
	// iteration order is randomized per-process.
	sort.Strings(cs.SecondaryNew)
	sort.Strings(cs.SecondaryDeleted)

	return cs
}
