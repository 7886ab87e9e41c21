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
	"errors"

	"github.com/cenkalti/backoff/v4"
	pkgerrors "github.com/pkg/errors"

	"github.com/alexiri/alexa2anylist/internal/logging"
	"github.com/alexiri/alexa2anylist/internal/model"
)

// ErrAuth is the sentinel a Client implementation should wrap its auth
// failures in, so retryclient can recognize them with errors.Is.
var ErrAuth = errors.New("primary: authentication required")

// Reauthenticator refreshes whatever credentials the wrapped Client needs.
// It is called at most once per failing mutator call.
type Reauthenticator interface {
	Reauthenticate(ctx context.Context) error
}

// retryclient decorates a Client so that an ErrAuth failure from any
// mutator triggers one Reauthenticate call followed by exactly one retry.
// A second failure after the retry is surfaced unchanged.
type retryclient struct {
	inner Client
	auth  Reauthenticator
}

// WithRetry wraps inner so its mutators retry once, after a
// reauthentication, on ErrAuth.
func WithRetry(inner Client, auth Reauthenticator) Client {
	return &retryclient{inner: inner, auth: auth}
}

func (c *retryclient) Snapshot(ctx context.Context) (model.PrimaryList, error) {
	var out model.PrimaryList
	err := c.once(ctx, func() error {
		var innerErr error
		out, innerErr = c.inner.Snapshot(ctx)
		return innerErr
	})
	return out, err
}

func (c *retryclient) Add(ctx context.Context, name string) error {
	return c.once(ctx, func() error { return c.inner.Add(ctx, name) })
}

func (c *retryclient) Remove(ctx context.Context, id string) error {
	return c.once(ctx, func() error { return c.inner.Remove(ctx, id) })
}

func (c *retryclient) Check(ctx context.Context, id string) error {
	return c.once(ctx, func() error { return c.inner.Check(ctx, id) })
}

func (c *retryclient) Uncheck(ctx context.Context, id string) error {
	return c.once(ctx, func() error { return c.inner.Uncheck(ctx, id) })
}

func (c *retryclient) Rename(ctx context.Context, id, name string) error {
	return c.once(ctx, func() error { return c.inner.Rename(ctx, id, name) })
}

func (c *retryclient) AddOrUncheck(ctx context.Context, name string) error {
	return c.once(ctx, func() error { return c.inner.AddOrUncheck(ctx, name) })
}

// once runs call, and on an ErrAuth failure, reauthenticates and runs call
// exactly one more time. Anything beyond that single retry is fatal for
// the cycle.
func (c *retryclient) once(ctx context.Context, call func() error) error {
	err := call()
	if err == nil || !errors.Is(err, ErrAuth) {
		return err
	}

	logging.Warningf("primary: auth error, reauthenticating before one retry: %v", err)

	boff := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 0), ctx)
	reauthErr := backoff.Retry(func() error { return c.auth.Reauthenticate(ctx) }, boff)
	if reauthErr != nil {
		return pkgerrors.Wrap(reauthErr, "reauthenticating after primary auth error")
	}

	return call()
}
