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

// Package atomicfile provides the write-temp-then-rename primitive that
// both the Journal and the credential cache rely on for crash-safe
// persistence, plus a file lock so two processes never interleave writes
// to the same path.
package atomicfile

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// Write replaces path's contents with data atomically: it writes to a
// sibling temp file, fsyncs it, then renames it over path. A crash at any
// point leaves path either in its old state or fully replaced, never
// half-written.
func Write(path string, data []byte, perm os.FileMode) (err error) {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return errors.Wrapf(err, "locking %s", path)
	}
	defer func() {
		if uerr := lock.Unlock(); err == nil && uerr != nil {
			err = errors.Wrapf(uerr, "unlocking %s", path)
		}
	}()

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "creating temp file for %s", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "writing temp file for %s", path)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "syncing temp file for %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing temp file for %s", path)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return errors.Wrapf(err, "chmod temp file for %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "renaming temp file onto %s", path)
	}
	return nil
}

// Read reads path's full contents. It returns os.ErrNotExist (wrapped,
// checkable with errors.Is) if the file is absent, so callers can
// distinguish "never written" from "write failed".
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return data, nil
}
