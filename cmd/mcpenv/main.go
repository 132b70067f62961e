// Copyright 2025 walteh LLC
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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/mcpenv/cmd/mcpenv/commands"
	"github.com/walteh/mcpenv/cmd/mcpenv/opts"
)

func main() {
	rootOpts := &opts.RootOpts{}
	rootCmd := newRootCmd(rootOpts)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %s\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the root command with every subcommand attached.
// rootOpts starts empty and is filled in once flags are parsed.
func newRootCmd(rootOpts *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mcpenv",
		Short: "Switch MCP environment configurations per workspace",
		Long: `mcpenv keeps a set of named environment configurations and switches a
single active MCP configuration file between them. Environments are
declared in a properties file, each with its own JSON config and an
optional endpoint companion, and the current selection is tracked
per workspace.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Dependencies are wired here so flags are parsed before any
		// of them read flag values.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, rootOpts)
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewListCmd(rootOpts),
		commands.NewCurrentCmd(rootOpts),
		commands.NewUseCmd(rootOpts),
		commands.NewCycleCmd(rootOpts),
		commands.NewValidateCmd(rootOpts),
		commands.NewInitCmd(rootOpts),
		commands.NewMigrateCmd(rootOpts),
		commands.NewRefreshCmd(rootOpts),
		commands.NewDoctorCmd(rootOpts),
		newVersionCmd(),
	)

	return rootCmd
}
