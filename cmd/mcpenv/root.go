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
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/mcpenv/cmd/mcpenv/opts"
	"github.com/walteh/mcpenv/pkg/config"
	"github.com/walteh/mcpenv/pkg/credential"
	"github.com/walteh/mcpenv/pkg/env"
	"github.com/walteh/mcpenv/pkg/log"
	"github.com/walteh/mcpenv/pkg/migrate"
	"github.com/walteh/mcpenv/pkg/operation"
	"github.com/walteh/mcpenv/pkg/state"
	"github.com/walteh/mcpenv/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configRoot string
	workspace  string
	activeFile string
	debug      bool
	async      bool
)

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&configRoot, "config-root", "", "config root directory (defaults to the per-user config dir)")
	cmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "workspace directory (defaults to the working directory)")
	cmd.PersistentFlags().StringVar(&activeFile, "active-file", "", "override the active configuration file location")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&async, "async", false, "run operation steps concurrently")
}

// setupLogging configures zerolog based on flags
func setupLogging() zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger

	return logger
}

// setup wires the shared dependencies into ro. It runs once per
// invocation, after cobra has parsed the flags.
func setup(cmd *cobra.Command, ro *opts.RootOpts) error {
	logger := setupLogging()
	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	root := configRoot
	if root == "" {
		var err error
		root, err = config.DefaultRoot()
		if err != nil {
			return errors.Errorf("resolving config root: %w", err)
		}
	}

	paths := config.NewPaths(root)
	if err := paths.EnsureDirs(); err != nil {
		return errors.Errorf("preparing config directories: %w", err)
	}

	settings, err := config.LoadSettings(ctx, paths)
	if err != nil {
		return errors.Errorf("loading settings: %w", err)
	}

	// The flag wins over the settings file for the active file location.
	paths = paths.WithActiveFile(settings.ActivePath)
	paths = paths.WithActiveFile(activeFile)

	files := status.New()

	loader, err := env.NewLoader(env.LoaderOptions{
		PropertiesPath:  paths.PropertiesFile,
		EnvironmentsDir: paths.EnvironmentsDir,
		Files:           files,
	})
	if err != nil {
		return errors.Errorf("creating environment loader: %w", err)
	}

	ws := workspace
	if ws == "" {
		ws, err = os.Getwd()
		if err != nil {
			return errors.Errorf("resolving workspace: %w", err)
		}
	}

	store, err := state.New(state.Options{
		StateDir:  paths.StateDir,
		Workspace: ws,
		Files:     files,
	})
	if err != nil {
		return errors.Errorf("creating state store: %w", err)
	}

	migrator, err := migrate.New(migrate.Options{
		Loader: loader,
		State:  store,
		Files:  files,
		Paths:  paths,
	})
	if err != nil {
		return errors.Errorf("creating migrator: %w", err)
	}

	// Legacy installs are upgraded on every start. A failed upgrade is
	// reported but never blocks the command itself.
	if _, err := migrator.Run(ctx); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("legacy migration failed, continuing")
	}

	refresher, err := credential.New(credential.Options{
		Loader:   loader,
		State:    store,
		Files:    files,
		Paths:    paths,
		Interval: settings.RefreshEvery(),
		Client:   credential.NewClient(credential.ClientOptions{Timeout: settings.Timeout()}),
	})
	if err != nil {
		return errors.Errorf("creating credential refresher: %w", err)
	}

	operator, err := operation.New(operation.Options{
		Loader: loader,
		State:  store,
		Files:  files,
		Paths:  paths,
		Sender: refresher,
	})
	if err != nil {
		return errors.Errorf("creating operator: %w", err)
	}

	displayLevel := zerolog.InfoLevel
	if debug {
		displayLevel = zerolog.DebugLevel
	}

	ro.Paths = paths
	ro.Settings = settings
	ro.Files = files
	ro.Loader = loader
	ro.Operator = operator
	ro.Refresher = refresher
	ro.Migrator = migrator
	ro.Runner = operation.NewRunner(async)
	ro.Reporter = status.NewReporter(ctx)
	ro.Logger = log.New(os.Stdout, displayLevel)

	return nil
}
