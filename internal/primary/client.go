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

// Package primary defines the Primary Client contract: the authoritative,
// id-bearing shopping list service. A concrete implementation needs real
// HTTP calls and credentials and lives outside this repository; this
// package carries the interface, the retry decorator, the
// push-invalidation channel, the credential cache, and an in-memory fake
// used by tests.
package primary

import (
	"context"

	"github.com/alexiri/alexa2anylist/internal/model"
)

// Client is the contract the Sync Loop and Reconciler depend on. A real
// implementation talks to the primary service's API; FakeClient is an
// in-memory stand-in for tests.
type Client interface {
	// Snapshot returns the current, possibly cached, view of the list. A
	// push-invalidation signal (see PushChannel) is a hint that the next
	// call should bypass any cache; it is never a correctness requirement.
	Snapshot(ctx context.Context) (model.PrimaryList, error)

	Add(ctx context.Context, name string) error
	Remove(ctx context.Context, id string) error
	Check(ctx context.Context, id string) error
	Uncheck(ctx context.Context, id string) error
	Rename(ctx context.Context, id, name string) error
	AddOrUncheck(ctx context.Context, name string) error
}
