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

package model

// Bucket identifies one of the seven change buckets produced by the Diff
// Engine and consumed by the Reconciler and the Journal. The string values
// are fixed for on-disk compatibility and must never change.
type Bucket string

const (
	// BucketPrimaryNew holds ids of primary items added since the last
	// snapshot that are not checked.
	BucketPrimaryNew Bucket = "anylist_new_items"
	// BucketPrimaryChecked holds ids of primary items that transitioned
	// unchecked -> checked.
	BucketPrimaryChecked Bucket = "anylist_checked_items"
	// BucketPrimaryUnchecked holds ids of primary items that transitioned
	// checked -> unchecked.
	BucketPrimaryUnchecked Bucket = "anylist_unchecked_items"
	// BucketPrimaryRenamed holds ids of primary items whose name changed
	// with the id held stable.
	BucketPrimaryRenamed Bucket = "anylist_renamed_items"
	// BucketPrimaryDeleted holds ids of primary items removed since the
	// last snapshot.
	BucketPrimaryDeleted Bucket = "anylist_deleted_items"
	// BucketSecondaryNew holds names that appeared on the secondary list.
	BucketSecondaryNew Bucket = "alexa_new_items"
	// BucketSecondaryDeleted holds names that disappeared from the
	// secondary list.
	BucketSecondaryDeleted Bucket = "alexa_deleted_items"
)

// Buckets enumerates every bucket, in the order the Reconciler applies them:
// primary-originated buckets (push authority to the secondary) before
// secondary-originated buckets (reflect user edits back to the authority).
var Buckets = []Bucket{
	BucketPrimaryNew,
	BucketPrimaryChecked,
	BucketPrimaryUnchecked,
	BucketPrimaryRenamed,
	BucketPrimaryDeleted,
	BucketSecondaryNew,
	BucketSecondaryDeleted,
}

// ChangeSet is the seven-bucket delta produced by the Diff Engine. Entries
// in primary buckets are primary item ids; entries in secondary
// buckets are name strings.
type ChangeSet struct {
	PrimaryNew       []string
	PrimaryChecked   []string
	PrimaryUnchecked []string
	PrimaryRenamed   []string
	PrimaryDeleted   []string
	SecondaryNew     []string
	SecondaryDeleted []string
}

// IsEmpty reports whether every bucket is empty.
func (c ChangeSet) IsEmpty() bool {
	return len(c.PrimaryNew) == 0 &&
		len(c.PrimaryChecked) == 0 &&
		len(c.PrimaryUnchecked) == 0 &&
		len(c.PrimaryRenamed) == 0 &&
		len(c.PrimaryDeleted) == 0 &&
		len(c.SecondaryNew) == 0 &&
		len(c.SecondaryDeleted) == 0
}

// Get returns the entries of a single bucket, in the traversal order the
// Diff Engine produced them.
func (c ChangeSet) Get(b Bucket) []string {
	switch b {
	case BucketPrimaryNew:
		return c.PrimaryNew
	case BucketPrimaryChecked:
		return c.PrimaryChecked
	case BucketPrimaryUnchecked:
		return c.PrimaryUnchecked
	case BucketPrimaryRenamed:
		return c.PrimaryRenamed
	case BucketPrimaryDeleted:
		return c.PrimaryDeleted
	case BucketSecondaryNew:
		return c.SecondaryNew
	case BucketSecondaryDeleted:
		return c.SecondaryDeleted
	default:
		return nil
	}
}
