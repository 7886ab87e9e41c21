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

package primary

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/alexiri/alexa2anylist/internal/model"
)

// FakeClient is a complete in-memory Client (C11), used by the Reconciler
// and Sync Loop tests and the scenario tests driving the core end to end.
// It is safe for concurrent use since a real push-notification task would
// run concurrently with the Sync Loop calling the mutators.
type FakeClient struct {
	mu    sync.Mutex
	items []model.PrimaryItem

	// FailAuth, when true, makes the next mutator call return ErrAuth and
	// clears itself, so later calls succeed — tests use it to exercise
	// retryclient's one-retry behavior. Snapshot ignores it.
	FailAuth bool
}

// NewFakeClient returns a FakeClient seeded with items.
func NewFakeClient(items []model.PrimaryItem) *FakeClient {
	return &FakeClient{items: append([]model.PrimaryItem(nil), items...)}
}

func (f *FakeClient) Snapshot(ctx context.Context) (model.PrimaryList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return model.NewPrimaryList(append([]model.PrimaryItem(nil), f.items...)), nil
}

func (f *FakeClient) Add(ctx context.Context, name string) error {
	return f.mutate(func() error {
		f.items = append(f.items, model.PrimaryItem{ID: uuid.NewString(), Name: name})
		return nil
	})
}

func (f *FakeClient) Remove(ctx context.Context, id string) error {
	return f.mutate(func() error {
		idx := f.indexByID(id)
		if idx < 0 {
			return fmt.Errorf("primary: no item with id %q", id)
		}
		f.items = append(f.items[:idx], f.items[idx+1:]...)
		return nil
	})
}

func (f *FakeClient) Check(ctx context.Context, id string) error {
	return f.setChecked(id, true)
}

func (f *FakeClient) Uncheck(ctx context.Context, id string) error {
	return f.setChecked(id, false)
}

func (f *FakeClient) Rename(ctx context.Context, id, name string) error {
	return f.mutate(func() error {
		idx := f.indexByID(id)
		if idx < 0 {
			return fmt.Errorf("primary: no item with id %q", id)
		}
		f.items[idx].Name = name
		return nil
	})
}

func (f *FakeClient) AddOrUncheck(ctx context.Context, name string) error {
	return f.mutate(func() error {
		for i, it := range f.items {
			if it.Name == name {
				f.items[i].Checked = false
				return nil
			}
		}
		f.items = append(f.items, model.PrimaryItem{ID: uuid.NewString(), Name: name})
		return nil
	})
}

func (f *FakeClient) setChecked(id string, checked bool) error {
	return f.mutate(func() error {
		idx := f.indexByID(id)
		if idx < 0 {
			return fmt.Errorf("primary: no item with id %q", id)
		}
		f.items[idx].Checked = checked
		return nil
	})
}

// indexByID must be called with mu held.
func (f *FakeClient) indexByID(id string) int {
	for i, it := range f.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (f *FakeClient) mutate(do func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailAuth {
		f.FailAuth = false
		return ErrAuth
	}
	return do()
}

var _ Client = (*FakeClient)(nil)
