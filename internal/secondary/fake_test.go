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

package secondary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeDriver_SnapshotIsIndependentCopy(t *testing.T) {
	ctx := context.Background()
	d := NewFakeDriver([]string{"apple"})

	snap, err := d.Snapshot(ctx)
	require.NoError(t, err)
	snap.Add("bread")

	after, err := d.Snapshot(ctx)
	require.NoError(t, err)
	assert.False(t, after.Contains("bread"), "mutating a returned snapshot must not affect the driver")
}

func TestFakeDriver_AddThenContains(t *testing.T) {
	ctx := context.Background()
	d := NewFakeDriver(nil)

	require.NoError(t, d.Add(ctx, "milk"))

	snap, err := d.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Contains("milk"))
}

func TestFakeDriver_RemoveUnknownNameErrors(t *testing.T) {
	ctx := context.Background()
	d := NewFakeDriver(nil)

	assert.Error(t, d.Remove(ctx, "ghost"))
}

func TestFakeDriver_RenameUnknownNameErrors(t *testing.T) {
	ctx := context.Background()
	d := NewFakeDriver(nil)

	assert.Error(t, d.Rename(ctx, "ghost", "apple"))
}

func TestFakeDriver_RenameMovesMembership(t *testing.T) {
	ctx := context.Background()
	d := NewFakeDriver([]string{"milc"})

	require.NoError(t, d.Rename(ctx, "milc", "milk"))

	snap, err := d.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Contains("milk"))
	assert.False(t, snap.Contains("milc"))
}
