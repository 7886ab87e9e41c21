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

// Package secondary defines the Secondary Driver contract: the UI-only,
// name-only shopping list reached through browser automation. A
// concrete implementation needs a real browser driver and session
// handling and lives outside this repository; this package carries the
// interface and an in-memory fake used by tests.
//
// The interface intentionally has no session-persistence method: a save
// path that writes session cookies to disk on shutdown is tempting to
// add, but with no real Driver implementation in this repository to
// exercise it, it would be dead code. Session handling is left entirely
// to a real Driver's own internals, behind this opaque interface.
package secondary

import (
	"context"

	"github.com/alexiri/alexa2anylist/internal/model"
)

// Driver is the contract the Sync Loop and Reconciler depend on.
// FakeDriver is an in-memory stand-in for tests.
type Driver interface {
	// Snapshot returns every name currently visible on the list. Real
	// implementations are responsible for paginating or scrolling until
	// the enumeration is complete.
	Snapshot(ctx context.Context) (model.SecondaryList, error)

	Add(ctx context.Context, name string) error
	Remove(ctx context.Context, name string) error
	Rename(ctx context.Context, old, new string) error
}
