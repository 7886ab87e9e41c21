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

// Command listbridge runs the synchronizer between the primary and
// secondary shopping-list services, or interactively writes its config
// file.
package main

import (
	"os"

	"github.com/alexiri/alexa2anylist/internal/logging"
)

func main() {
	defer logging.Flush()

	if err := newRootCommand().Execute(); err != nil {
		logging.Errorf(err, "listbridge: fatal")
		os.Exit(1)
	}
}
