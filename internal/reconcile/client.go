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

import "context"

// PrimaryMutator is the subset of the Primary Client contract the
// Reconciler drives. It is satisfied by primary.Client.
type PrimaryMutator interface {
	Add(ctx context.Context, name string) error
	Remove(ctx context.Context, id string) error
	Check(ctx context.Context, id string) error
	Uncheck(ctx context.Context, id string) error
	Rename(ctx context.Context, id, name string) error
	AddOrUncheck(ctx context.Context, name string) error
}

// SecondaryMutator is the subset of the Secondary Driver contract the
// Reconciler drives. It is satisfied by secondary.Driver.
type SecondaryMutator interface {
	Add(ctx context.Context, name string) error
	Remove(ctx context.Context, name string) error
	Rename(ctx context.Context, old, new string) error
}
