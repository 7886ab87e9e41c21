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

// Package logging is the leveled logger every component in this module
// uses. It is a thin wrapper around glog: INFO/WARNING/ERROR map directly
// onto glog's levels, and per-item DEBUG logging is glog's V(1) so it can
// be toggled at runtime with the standard -v flag without a rebuild.
package logging

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// debugVerbosity is the glog -v level that gates per-item DEBUG logging.
const debugVerbosity glog.Level = 1

// Infof logs at INFO: cycle start/end and significant decisions (clobber,
// replay).
func Infof(format string, args ...any) {
	glog.Infof(format, args...)
}

// Debugf logs at DEBUG: per-item mutations. Gated behind -v=1 so normal
// operation stays quiet.
func Debugf(format string, args ...any) {
	if glog.V(debugVerbosity) {
		glog.Infof(format, args...)
	}
}

// Warningf logs at WARNING: recoverable auth issues, dropped stale
// journals, name collisions.
func Warningf(format string, args ...any) {
	glog.Warningf(format, args...)
}

// Errorf logs at ERROR. If err is non-nil and carries a stack trace
// (anything produced by or wrapped with github.com/pkg/errors), it is
// rendered with %+v so the trace reaches the log — fatal cycle exits
// always go through this path.
func Errorf(err error, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if err == nil {
		glog.Errorf("%s", msg)
		return
	}
	glog.Errorf("%s: %+v", msg, err)
}

// Wrap annotates err with message (rendered as "message: err") and a stack
// trace captured at the call site, via github.com/pkg/errors. Safe to call
// on nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, message)
}

// Flush forces any buffered log lines to be written. Call before process
// exit so a fatal ERROR line is never lost to glog's buffering.
func Flush() {
	glog.Flush()
}
