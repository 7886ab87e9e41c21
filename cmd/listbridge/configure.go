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
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/alexiri/alexa2anylist/internal/config"
)

func newConfigureCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Interactively build a listbridge config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			return runConfigureWizard(path)
		},
	}
	configPathFlag(cmd)
	return cmd
}

func runConfigureWizard(path string) error {
	cfg := config.Config{
		PollIntervalSeconds:           10,
		JournalRecoveryHorizonSeconds: 600,
	}

	questions := []*survey.Question{
		{Name: "PrimaryUsername", Prompt: &survey.Input{Message: "Primary account username/email:"}, Validate: survey.Required},
		{Name: "PrimaryPassword", Prompt: &survey.Password{Message: "Primary account password:"}, Validate: survey.Required},
		{Name: "PrimaryListName", Prompt: &survey.Input{Message: "Name of the primary list to sync:"}, Validate: survey.Required},
		{Name: "SecondaryUsername", Prompt: &survey.Input{Message: "Secondary account username/email:"}, Validate: survey.Required},
		{Name: "SecondaryPassword", Prompt: &survey.Password{Message: "Secondary account password:"}, Validate: survey.Required},
		{
			Name:     "SecondaryMFASecret",
			Prompt:   &survey.Input{Message: "Secondary account TOTP/MFA seed:"},
			Validate: validateTOTPSeedAnswer,
		},
		{Name: "SecondaryURL", Prompt: &survey.Input{Message: "Secondary service regional host (e.g. alexa.amazon.com):"}, Validate: survey.Required},
	}

	if err := survey.Ask(questions, &cfg); err != nil {
		return errors.Wrap(err, "configure: prompting for config values")
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configure: generated config is invalid")
	}

	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "configure: marshaling config")
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return errors.Wrapf(err, "configure: writing %s", path)
	}
	return nil
}

// validateTOTPSeedAnswer adapts config.ValidateTOTPSeed to survey's
// Validator signature so a malformed seed is rejected inline, before the
// wizard ever writes a file.
func validateTOTPSeedAnswer(ans interface{}) error {
	if err := survey.Required(ans); err != nil {
		return err
	}
	seed, ok := ans.(string)
	if !ok {
		return errors.New("configure: expected a string answer")
	}
	return config.ValidateTOTPSeed(seed)
}
