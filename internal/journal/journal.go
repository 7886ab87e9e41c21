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

// Package journal implements the durable, append-style log of pending
// operations: a dirty-flagged, timestamped set of change buckets,
// persisted atomically so a crash mid-commit can be detected and replayed
// on the next start.
package journal

import (
	"encoding/json"
	"os"
	"time"

	"github.com/alexiri/alexa2anylist/internal/atomicfile"
	"github.com/alexiri/alexa2anylist/internal/logging"
	"github.com/alexiri/alexa2anylist/internal/model"
)

// persisted is the on-disk shape of the Journal: a single self-contained
// object with fields {dirty, last_update_time, data}.
type persisted struct {
	Dirty          bool                  `json:"dirty"`
	LastUpdateTime int64                 `json:"last_update_time"`
	Data           map[model.Bucket][]string `json:"data"`
}

// Journal is an in-memory change-bucket store with optional file backing.
// It is not safe for concurrent use; exactly one Sync Loop owns it.
type Journal struct {
	path string

	data           map[model.Bucket][]string
	dirty          bool
	lastUpdateTime time.Time

	now func() time.Time
}

// New creates a Journal backed by path. If path is empty, the Journal is
// purely in-memory (Load/Save become no-ops), which is useful for tests.
func New(path string) *Journal {
	j := &Journal{path: path, now: time.Now}
	j.reset(j.now())
	return j
}

// Reset clears all buckets, sets Dirty to false, and stamps
// LastUpdateTime to now.
func (j *Journal) Reset() {
	j.reset(j.now())
}

func (j *Journal) reset(at time.Time) {
	j.data = make(map[model.Bucket][]string)
	j.dirty = false
	j.lastUpdateTime = at
}

// Add appends entry to bucket, sets Dirty to true, and updates
// LastUpdateTime.
func (j *Journal) Add(bucket model.Bucket, entry string) {
	j.data[bucket] = append(j.data[bucket], entry)
	j.dirty = true
	j.lastUpdateTime = j.now()
}

// Get returns a copy of bucket's entries; callers can never reach the
// Journal's internal storage through it.
func (j *Journal) Get(bucket model.Bucket) []string {
	entries := j.data[bucket]
	out := make([]string, len(entries))
	copy(out, entries)
	return out
}

// ChangeSet reconstructs the ChangeSet currently held by the Journal, in
// bucket order, for callers that want to replay a commit at startup
// without re-deriving it bucket by bucket.
func (j *Journal) ChangeSet() model.ChangeSet {
	return model.ChangeSet{
		PrimaryNew:       j.Get(model.BucketPrimaryNew),
		PrimaryChecked:   j.Get(model.BucketPrimaryChecked),
		PrimaryUnchecked: j.Get(model.BucketPrimaryUnchecked),
		PrimaryRenamed:   j.Get(model.BucketPrimaryRenamed),
		PrimaryDeleted:   j.Get(model.BucketPrimaryDeleted),
		SecondaryNew:     j.Get(model.BucketSecondaryNew),
		SecondaryDeleted: j.Get(model.BucketSecondaryDeleted),
	}
}

// Populate records every entry of a freshly-computed ChangeSet into the
// Journal's buckets, in the order the Reconciler will apply them.
func (j *Journal) Populate(cs model.ChangeSet) {
	for _, b := range model.Buckets {
		for _, entry := range cs.Get(b) {
			j.Add(b, entry)
		}
	}
}

// IsDirty reports whether the Journal currently represents an in-flight
// reconciliation.
func (j *Journal) IsDirty() bool {
	return j.dirty
}

// LastUpdateTime reports the timestamp of the most recent Add or Reset.
func (j *Journal) LastUpdateTime() time.Time {
	return j.lastUpdateTime
}

// Load reads the persisted form from disk. On a parse error it logs and
// leaves the in-memory state as freshly reset — a corrupt Journal is
// treated as clean rather than fatal.
func (j *Journal) Load() {
	if j.path == "" {
		return
	}

	raw, err := os.ReadFile(j.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warningf("journal: error reading %s, treating as clean: %v", j.path, err)
		}
		j.reset(j.now())
		return
	}

	var p persisted
	if err := json.Unmarshal(raw, &p); err != nil {
		logging.Warningf("journal: error parsing %s, treating as clean: %v", j.path, err)
		j.reset(j.now())
		return
	}

	j.dirty = p.Dirty
	j.lastUpdateTime = time.Unix(p.LastUpdateTime, 0)
	j.data = p.Data
	if j.data == nil {
		j.data = make(map[model.Bucket][]string)
	}
}

// Save writes the current state atomically. Failures propagate: journal
// I/O errors are always fatal, since correctness depends on durability.
func (j *Journal) Save() error {
	if j.path == "" {
		return nil
	}

	p := persisted{
		Dirty:          j.dirty,
		LastUpdateTime: j.lastUpdateTime.Unix(),
		Data:           j.data,
	}
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return logging.Wrap(err, "marshaling journal")
	}
	if err := atomicfile.Write(j.path, raw, 0o600); err != nil {
		return logging.Wrap(err, "saving journal")
	}
	return nil
}
