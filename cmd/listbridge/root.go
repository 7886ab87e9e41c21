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

	"github.com/spf13/cobra"
)

const defaultConfigPath = "listbridge.yaml"

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "listbridge",
		Short:         "Synchronize a primary shopping list with a secondary one",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCommand())
	root.AddCommand(newConfigureCommand())
	return root
}

func configPathFlag(cmd *cobra.Command) *string {
	path := os.Getenv("LISTBRIDGE_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}
	return cmd.Flags().String("config", path, "path to the listbridge config file")
}
