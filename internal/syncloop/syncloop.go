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

// Package syncloop implements the Sync Loop: it drives one
// synchronization cycle roughly every fixed interval, orchestrating
// snapshot, diff, journal, and commit in sequence.
package syncloop

import (
	"context"
	"time"

	"github.com/alexiri/alexa2anylist/internal/diff"
	"github.com/alexiri/alexa2anylist/internal/journal"
	"github.com/alexiri/alexa2anylist/internal/logging"
	"github.com/alexiri/alexa2anylist/internal/model"
	"github.com/alexiri/alexa2anylist/internal/reconcile"
)

// PrimarySnapshotter is the read side of the Primary Client the loop
// depends on.
type PrimarySnapshotter interface {
	Snapshot(ctx context.Context) (model.PrimaryList, error)
}

// SecondarySnapshotter is the read side of the Secondary Driver the loop
// depends on.
type SecondarySnapshotter interface {
	Snapshot(ctx context.Context) (model.SecondaryList, error)
}

// Loop drives the per-cycle protocol against a primary snapshotter, a
// secondary snapshotter, and a Reconciler wired to their mutators.
type Loop struct {
	primary         PrimarySnapshotter
	secondary       SecondarySnapshotter
	reconciler      *reconcile.Reconciler
	journal         *journal.Journal
	interval        time.Duration
	recoveryHorizon time.Duration

	prevPrimary   model.PrimaryList
	prevSecondary model.SecondaryList
}

// New builds a Loop. interval is the wait between the end of one cycle and
// the start of the next;
// recoveryHorizon is the maximum age of a dirty Journal that Start will
// still replay.
func New(primary PrimarySnapshotter, secondary SecondarySnapshotter, reconciler *reconcile.Reconciler, j *journal.Journal, interval, recoveryHorizon time.Duration) *Loop {
	return &Loop{
		primary:         primary,
		secondary:       secondary,
		reconciler:      reconciler,
		journal:         j,
		interval:        interval,
		recoveryHorizon: recoveryHorizon,
	}
}

// Start runs the startup protocol: load the Journal, and if it is dirty
// and young enough, replay its commit against freshly-fetched
// snapshots before resetting it. A dirty-but-stale Journal is discarded
// without replay. It then runs Clobber once the Journal is guaranteed
// clean, and records the resulting snapshots as "previous" for the first
// normal cycle.
func (l *Loop) Start(ctx context.Context) error {
	l.journal.Load()

	curPrimary, err := l.primary.Snapshot(ctx)
	if err != nil {
		return logging.Wrap(err, "fetching initial primary snapshot")
	}
	curSecondary, err := l.secondary.Snapshot(ctx)
	if err != nil {
		return logging.Wrap(err, "fetching initial secondary snapshot")
	}

	age := time.Since(l.journal.LastUpdateTime())
	if l.journal.IsDirty() && age < l.recoveryHorizon {
		logging.Infof("syncloop: replaying dirty journal from %s ago", age)
		if err := l.reconciler.Commit(ctx, curPrimary, curPrimary, curSecondary); err != nil {
			return logging.Wrap(err, "replaying journal on startup")
		}
	} else if l.journal.IsDirty() {
		logging.Warningf("syncloop: discarding stale dirty journal (%s old, horizon %s)", age, l.recoveryHorizon)
		l.journal.Reset()
		if err := l.journal.Save(); err != nil {
			return logging.Wrap(err, "discarding stale journal")
		}
	}

	// Re-fetch after a possible replay so Clobber and the first cycle see
	// the now-settled state.
	curPrimary, err = l.primary.Snapshot(ctx)
	if err != nil {
		return logging.Wrap(err, "re-fetching primary snapshot after startup replay")
	}
	curSecondary, err = l.secondary.Snapshot(ctx)
	if err != nil {
		return logging.Wrap(err, "re-fetching secondary snapshot after startup replay")
	}

	reconcile.WarnNameCollisions(curPrimary)
	if !namesEqual(curPrimary.ActiveNames(), curSecondary) {
		logging.Infof("syncloop: primary and secondary diverge at startup, clobbering")
		if err := l.reconciler.Clobber(ctx, curPrimary, curSecondary); err != nil {
			return logging.Wrap(err, "clobbering at startup")
		}
		curSecondary, err = l.secondary.Snapshot(ctx)
		if err != nil {
			return logging.Wrap(err, "re-fetching secondary snapshot after clobber")
		}
	}

	l.prevPrimary = curPrimary
	l.prevSecondary = curSecondary
	return nil
}

// Run executes cycles until ctx is canceled or a cycle fails. Cancellation
// is only observed between cycles: a cycle in flight always runs to
// completion or to a fatal error.
func (l *Loop) Run(ctx context.Context) error {
	timer := time.NewTimer(0) // fire immediately for the first cycle
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		if err := l.cycle(ctx); err != nil {
			return logging.Wrap(err, "sync cycle failed")
		}

		timer.Reset(l.interval)
	}
}

// cycle runs one full pass of the per-cycle protocol.
func (l *Loop) cycle(ctx context.Context) error {
	logging.Infof("syncloop: cycle starting")

	curPrimary, err := l.primary.Snapshot(ctx)
	if err != nil {
		return logging.Wrap(err, "fetching primary snapshot")
	}
	curSecondary, err := l.secondary.Snapshot(ctx)
	if err != nil {
		return logging.Wrap(err, "fetching secondary snapshot")
	}

	cs := diff.Compute(l.prevPrimary, curPrimary, l.prevSecondary, curSecondary)
	if cs.IsEmpty() {
		logging.Debugf("syncloop: no changes this cycle")
	} else {
		if err := l.reconciler.Prepare(cs); err != nil {
			return logging.Wrap(err, "preparing journal")
		}
		if err := l.reconciler.Commit(ctx, l.prevPrimary, curPrimary, curSecondary); err != nil {
			return logging.Wrap(err, "committing changes")
		}
	}

	// The commit may have mutated the secondary (and, via secondary_new/
	// secondary_deleted, the primary); re-snapshot so next cycle's "previous"
	// reflects what was actually applied rather than a locally-simulated
	// guess.
	curPrimary, err = l.primary.Snapshot(ctx)
	if err != nil {
		return logging.Wrap(err, "re-fetching primary snapshot after commit")
	}
	curSecondary, err = l.secondary.Snapshot(ctx)
	if err != nil {
		return logging.Wrap(err, "re-fetching secondary snapshot after commit")
	}

	l.prevPrimary = curPrimary
	l.prevSecondary = curSecondary

	logging.Infof("syncloop: cycle complete")
	return nil
}

func namesEqual(active map[string]struct{}, secondary model.SecondaryList) bool {
	if len(active) != len(secondary) {
		return false
	}
	for name := range active {
		if !secondary.Contains(name) {
			return false
		}
	}
	return true
}
