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

// Package config loads and validates the single configuration object the
// core depends on: primary/secondary credentials, the secondary's
// regional host, and the two tunable durations. A missing required key or a
// malformed value is always a fatal startup error; only the two tunables
// fall back to defaults when absent.
package config

import (
	"encoding/base32"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/pquerna/otp"
	"gopkg.in/yaml.v2"
)

// Config is the single object the core reads all of its settings from.
type Config struct {
	PrimaryUsername    string `yaml:"primary_username"`
	PrimaryPassword    string `yaml:"primary_password"`
	PrimaryListName    string `yaml:"primary_list_name"`
	SecondaryUsername  string `yaml:"secondary_username"`
	SecondaryPassword  string `yaml:"secondary_password"`
	SecondaryMFASecret string `yaml:"secondary_mfa_secret"`
	SecondaryURL       string `yaml:"secondary_url"`

	PollIntervalSeconds           int `yaml:"poll_interval_seconds"`
	JournalRecoveryHorizonSeconds int `yaml:"journal_recovery_horizon_seconds"`
}

const (
	defaultPollIntervalSeconds           = 10
	defaultJournalRecoveryHorizonSeconds = 600
)

// PollInterval is PollIntervalSeconds as a time.Duration.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// JournalRecoveryHorizon is JournalRecoveryHorizonSeconds as a
// time.Duration.
func (c Config) JournalRecoveryHorizon() time.Duration {
	return time.Duration(c.JournalRecoveryHorizonSeconds) * time.Second
}

// Load reads and validates a Config from a YAML file at path. Any failure
// — unreadable file, malformed YAML, missing key, invalid value — is
// wrapped with enough context to log and fail startup with a non-zero
// exit code.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config file %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config file %s", path)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.PollIntervalSeconds == 0 {
		c.PollIntervalSeconds = defaultPollIntervalSeconds
	}
	if c.JournalRecoveryHorizonSeconds == 0 {
		c.JournalRecoveryHorizonSeconds = defaultJournalRecoveryHorizonSeconds
	}
}

// Validate checks every required key is present and well-formed. It is
// exported so `listbridge configure` can check the assembled config before
// writing it; the MFA seed answer is checked in-line via ValidateTOTPSeed.
func (c Config) Validate() error {
	required := map[string]string{
		"primary_username":     c.PrimaryUsername,
		"primary_password":     c.PrimaryPassword,
		"primary_list_name":    c.PrimaryListName,
		"secondary_username":   c.SecondaryUsername,
		"secondary_password":   c.SecondaryPassword,
		"secondary_mfa_secret": c.SecondaryMFASecret,
		"secondary_url":        c.SecondaryURL,
	}
	for key, value := range required {
		if value == "" {
			return errors.Errorf("config: missing required key %q", key)
		}
	}

	if err := ValidateTOTPSeed(c.SecondaryMFASecret); err != nil {
		return errors.Wrap(err, "config: secondary_mfa_secret")
	}

	if c.PollIntervalSeconds <= 0 {
		return errors.Errorf("config: poll_interval_seconds must be positive, got %d", c.PollIntervalSeconds)
	}
	if c.JournalRecoveryHorizonSeconds <= 0 {
		return errors.Errorf("config: journal_recovery_horizon_seconds must be positive, got %d", c.JournalRecoveryHorizonSeconds)
	}
	return nil
}

// padToMultipleOf8 pads s with trailing '=' until its length is a
// multiple of 8 — TOTP seeds are frequently copied without their base32
// padding.
func padToMultipleOf8(s string) string {
	for len(s)%8 != 0 {
		s += "="
	}
	return s
}

// ValidateTOTPSeed reports whether seed, once padded to a multiple of 8,
// has the shape of a valid base32 TOTP seed. It builds the same kind of
// otpauth:// key a real authenticator app would parse, via pquerna/otp,
// then confirms the embedded secret actually base32-decodes. It never
// generates or submits a code — that is the secondary driver's job,
// entirely out of scope here.
func ValidateTOTPSeed(seed string) error {
	padded := padToMultipleOf8(seed)

	values := url.Values{}
	values.Set("secret", padded)
	values.Set("issuer", "listbridge")
	keyURL := "otpauth://totp/listbridge?" + values.Encode()

	key, err := otp.NewKeyFromURL(keyURL)
	if err != nil {
		return errors.Wrap(err, "not a well-formed TOTP key")
	}

	if _, err := base32.StdEncoding.DecodeString(strings.ToUpper(key.Secret())); err != nil {
		return errors.Wrap(err, "not a valid base32 TOTP seed")
	}
	return nil
}
