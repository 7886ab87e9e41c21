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
	"encoding/json"
	stderrors "errors"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/alexiri/alexa2anylist/internal/atomicfile"
)

// UpdateMethod records how a Credentials value was last refreshed,
// recorded for diagnostics only — the core never interprets it.
type UpdateMethod string

const (
	UpdateMethodFetch   UpdateMethod = "fetch"
	UpdateMethodRefresh UpdateMethod = "refresh"
)

// Credentials is the on-disk shape of the credential cache. It is opaque
// to the rest of the core; only the primary client package reads or
// writes it.
type Credentials struct {
	ClientID          string       `json:"client_id"`
	AccessToken       string       `json:"access_token"`
	RefreshToken      string       `json:"refresh_token"`
	LastUpdated       time.Time    `json:"last_updated"`
	LastUpdatedMethod UpdateMethod `json:"last_updated_method"`
}

// CredentialCache loads and atomically persists a Credentials value at a
// fixed path, generating a stable client_id on first use.
type CredentialCache struct {
	path string
}

// NewCredentialCache returns a cache backed by path.
func NewCredentialCache(path string) *CredentialCache {
	return &CredentialCache{path: path}
}

// Load reads the cached credentials. If the file does not exist, it
// returns a fresh Credentials with a newly generated ClientID and no
// tokens, exactly as a first run would need.
func (c *CredentialCache) Load() (Credentials, error) {
	raw, err := atomicfile.Read(c.path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return Credentials{ClientID: uuid.NewString()}, nil
		}
		return Credentials{}, errors.Wrap(err, "loading credential cache")
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return Credentials{}, errors.Wrap(err, "parsing credential cache")
	}
	if creds.ClientID == "" {
		creds.ClientID = uuid.NewString()
	}
	return creds, nil
}

// Save persists creds atomically, stamping LastUpdated to now and
// LastUpdatedMethod to method.
func (c *CredentialCache) Save(creds Credentials, method UpdateMethod) error {
	creds.LastUpdated = time.Now()
	creds.LastUpdatedMethod = method

	raw, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling credential cache")
	}
	if err := atomicfile.Write(c.path, raw, 0o600); err != nil {
		return errors.Wrap(err, "saving credential cache")
	}
	return nil
}
