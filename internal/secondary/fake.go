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
	"fmt"
	"sync"

	"github.com/alexiri/alexa2anylist/internal/model"
)

// FakeDriver is a complete in-memory Driver (C11), set-backed, used by the
// Reconciler and Sync Loop tests and the scenario tests in place of
// browser automation.
type FakeDriver struct {
	mu    sync.Mutex
	names model.SecondaryList
}

// NewFakeDriver returns a FakeDriver seeded with names.
func NewFakeDriver(names []string) *FakeDriver {
	return &FakeDriver{names: model.NewSecondaryList(names)}
}

func (d *FakeDriver) Snapshot(ctx context.Context) (model.SecondaryList, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.names.Clone(), nil
}

func (d *FakeDriver) Add(ctx context.Context, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names.Add(name)
	return nil
}

func (d *FakeDriver) Remove(ctx context.Context, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.names.Contains(name) {
		return fmt.Errorf("secondary: no item named %q", name)
	}
	d.names.Remove(name)
	return nil
}

func (d *FakeDriver) Rename(ctx context.Context, old, newName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.names.Contains(old) {
		return fmt.Errorf("secondary: no item named %q", old)
	}
	d.names.Remove(old)
	d.names.Add(newName)
	return nil
}

var _ Driver = (*FakeDriver)(nil)
