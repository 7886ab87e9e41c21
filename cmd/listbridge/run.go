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

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexiri/alexa2anylist/internal/config"
	"github.com/alexiri/alexa2anylist/internal/journal"
	"github.com/alexiri/alexa2anylist/internal/logging"
	"github.com/alexiri/alexa2anylist/internal/primary"
	"github.com/alexiri/alexa2anylist/internal/reconcile"
	"github.com/alexiri/alexa2anylist/internal/secondary"
	"github.com/alexiri/alexa2anylist/internal/syncloop"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the sync loop until a fatal error or signal",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			return runSyncLoop(cmd.Context(), path)
		},
	}
	configPathFlag(cmd)
	return cmd
}

func runSyncLoop(parent context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		logging.Errorf(err, "run: loading config from %s", configPath)
		return err
	}

	stateDir := filepath.Dir(configPath)
	credCache := primary.NewCredentialCache(filepath.Join(stateDir, "credentials.json"))
	journalPath := filepath.Join(stateDir, "journal.json")

	// A concrete primary client and secondary driver need real HTTP calls,
	// credentials and a browser session; run wires the in-memory fakes here
	// only so the loop is exercisable end to end without live accounts. A
	// production deployment replaces these two constructions with real
	// clients built from cfg and credCache.
	primaryClient := primary.NewFakeClient(nil)
	secondaryDriver := secondary.NewFakeDriver(nil)
	_ = credCache // loaded/saved by a real C5 implementation, not by run itself

	j := journal.New(journalPath)
	r := reconcile.New(primaryClient, secondaryDriver, j)
	loop := syncloop.New(primaryClient, secondaryDriver, r, j, cfg.PollInterval(), cfg.JournalRecoveryHorizon())

	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := loop.Start(ctx); err != nil {
		logging.Errorf(err, "run: startup failed")
		return err
	}

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Errorf(err, "run: sync loop exited")
		return err
	}
	logging.Infof("run: shutting down")
	return nil
}
