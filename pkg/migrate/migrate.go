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

// Package migrate upgrades installs from the fixed three-environment
// scheme to the properties-file layout.
package migrate

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/mcpenv/pkg/config"
	"github.com/walteh/mcpenv/pkg/env"
	"github.com/walteh/mcpenv/pkg/state"
	"github.com/walteh/mcpenv/pkg/status"
)

// Fixed filenames the legacy scheme created.
var legacyConfigFileNames = []string{"mcp-local.json", "mcp-dev.json", "mcp-prod.json"}

// legacyNameRemap maps legacy short tokens to their display names.
var legacyNameRemap = map[string]string{
	"local": "Local",
	"dev":   "Dev",
	"prod":  "Prod",
}

// ⚙️ Options configures a Migrator.
type Options struct {
	Loader *env.Loader        // Required: environment definitions
	State  *state.Store       // Required: per-workspace current environment
	Files  status.FileManager // Required: file capability
	Paths  config.Paths       // Required: properties and environments locations
}

// 🚚 Migrator performs the one-time legacy upgrade. Running it on an
// already-migrated or fresh install changes nothing.
type Migrator struct {
	loader *env.Loader
	state  *state.Store
	files  status.FileManager
	paths  config.Paths
}

// 🏭 New creates a migrator, validating its options.
func New(opts Options) (*Migrator, error) {
	if opts.Loader == nil {
		return nil, errors.Errorf("loader is required")
	}
	if opts.State == nil {
		return nil, errors.Errorf("state store is required")
	}
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}
	if opts.Paths.PropertiesFile == "" || opts.Paths.EnvironmentsDir == "" {
		return nil, errors.Errorf("paths are required")
	}
	return &Migrator{
		loader: opts.Loader,
		state:  opts.State,
		files:  opts.Files,
		paths:  opts.Paths,
	}, nil
}

// 📊 Outcome reports what a migration run changed.
type Outcome struct {
	LegacyDetected    bool   // At least one legacy fixed-name file exists
	PropertiesCreated bool   // A properties file was written for them
	CurrentRemapped   bool   // The persisted current value was rewritten
	RemappedFrom      string // Legacy short token that was replaced
	RemappedTo        string // Display name it was replaced with
}

// 🔍 Detect reports whether any legacy fixed-name config file exists.
func (m *Migrator) Detect(ctx context.Context) (bool, error) {
	for _, name := range legacyConfigFileNames {
		exists, err := m.files.FileExists(ctx, filepath.Join(m.paths.EnvironmentsDir, name))
		if err != nil {
			return false, errors.Errorf("checking legacy file %s: %w", name, err)
		}
		if exists {
			return true, nil
		}
	}
	return false, nil
}

// 🎯 Run performs the migration: establish a properties file covering the
// legacy environments, then rewrite a persisted legacy short token to its
// display name. Legacy files themselves are never renamed or moved.
func (m *Migrator) Run(ctx context.Context) (*Outcome, error) {
	logger := zerolog.Ctx(ctx)
	outcome := &Outcome{}

	detected, err := m.Detect(ctx)
	if err != nil {
		return nil, err
	}
	outcome.LegacyDetected = detected

	if detected {
		exists, err := m.files.FileExists(ctx, m.paths.PropertiesFile)
		if err != nil {
			return nil, errors.Errorf("checking properties file: %w", err)
		}
		if !exists {
			if err := m.files.CreateDir(ctx, filepath.Dir(m.paths.PropertiesFile)); err != nil {
				return nil, errors.Errorf("creating config root: %w", err)
			}
			if err := m.files.WriteFileAtomic(ctx, m.paths.PropertiesFile, []byte(env.DefaultPropertiesText)); err != nil {
				return nil, errors.Errorf("writing properties file: %w", err)
			}
			outcome.PropertiesCreated = true
			logger.Info().Str("path", m.paths.PropertiesFile).Msg("created properties file for legacy environments")
		}
	} else {
		logger.Debug().Msg("no legacy environment files found")
	}

	m.remapCurrent(ctx, outcome)
	return outcome, nil
}

// remapCurrent rewrites a persisted legacy short token to its display name
// when that environment is actually defined. Corrective only, it never
// fails the migration.
func (m *Migrator) remapCurrent(ctx context.Context, outcome *Outcome) {
	logger := zerolog.Ctx(ctx)

	name, err := m.state.CurrentEnvironment(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("reading current environment")
		return
	}
	replacement, ok := legacyNameRemap[name]
	if !ok {
		return
	}

	col := m.loader.Load(ctx)
	if _, defined := col.Lookup(replacement); !defined {
		logger.Debug().
			Str("legacy", name).
			Str("replacement", replacement).
			Msg("replacement environment not defined, leaving value alone")
		return
	}

	if err := m.state.SetCurrentEnvironment(ctx, replacement); err != nil {
		logger.Warn().Err(err).Msg("persisting remapped environment")
		return
	}

	outcome.CurrentRemapped = true
	outcome.RemappedFrom = name
	outcome.RemappedTo = replacement
	logger.Info().Str("from", name).Str("to", replacement).Msg("remapped legacy environment name")
}
