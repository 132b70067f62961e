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

package env

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🗄️ FileStore is the file capability the loader needs.
type FileStore interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
	FileExists(ctx context.Context, path string) (bool, error)
	CreateDir(ctx context.Context, path string) error
}

// ⚙️ LoaderOptions configures a Loader.
type LoaderOptions struct {
	PropertiesPath  string    // Canonical properties file location
	EnvironmentsDir string    // Directory holding per-environment config files
	Files           FileStore // File capability
}

// 📥 Loader resolves, creates, validates, and parses the properties file.
type Loader struct {
	propertiesPath  string
	environmentsDir string
	files           FileStore
}

// 🏭 NewLoader creates a loader, validating its options.
func NewLoader(opts LoaderOptions) (*Loader, error) {
	if opts.PropertiesPath == "" {
		return nil, errors.Errorf("properties path is required")
	}
	if opts.EnvironmentsDir == "" {
		return nil, errors.Errorf("environments directory is required")
	}
	if opts.Files == nil {
		return nil, errors.Errorf("file store is required")
	}
	return &Loader{
		propertiesPath:  opts.PropertiesPath,
		environmentsDir: opts.EnvironmentsDir,
		files:           opts.Files,
	}, nil
}

// 🎯 Load returns the current collection. It never fails and never returns
// an empty collection: any read, decode, or validation error falls back to
// the default collection. Every call re-reads the filesystem; callers that
// need a stable view within one operation must load once and reuse it.
func (l *Loader) Load(ctx context.Context) *Collection {
	col, err := l.load(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("falling back to default environments")
		return DefaultCollection(ctx)
	}
	return col
}

func (l *Loader) load(ctx context.Context) (*Collection, error) {
	logger := zerolog.Ctx(ctx)

	if err := l.EnsureProperties(ctx); err != nil {
		return nil, errors.Errorf("ensuring properties file: %w", err)
	}

	data, err := l.files.ReadFile(ctx, l.propertiesPath)
	if err != nil {
		return nil, errors.Errorf("reading properties file: %w", err)
	}
	text := string(data)

	result := ValidateText(ctx, text)
	for _, w := range result.Warnings {
		logger.Warn().Str("path", l.propertiesPath).Msg(w)
	}
	if !result.IsValid() {
		for _, e := range result.Errors {
			logger.Error().Str("path", l.propertiesPath).Msg(e)
		}
		return nil, errors.Errorf("properties file has %d validation errors", len(result.Errors))
	}

	return Parse(ctx, text), nil
}

// 🧱 EnsureProperties writes the default template when no properties file
// exists yet. Existing files are never touched.
func (l *Loader) EnsureProperties(ctx context.Context) error {
	exists, err := l.files.FileExists(ctx, l.propertiesPath)
	if err != nil {
		return errors.Errorf("checking properties file: %w", err)
	}
	if exists {
		return nil
	}

	if err := l.files.CreateDir(ctx, filepath.Dir(l.propertiesPath)); err != nil {
		return errors.Errorf("creating config root: %w", err)
	}
	if err := l.files.WriteFileAtomic(ctx, l.propertiesPath, []byte(DefaultPropertiesText)); err != nil {
		return errors.Errorf("writing default properties: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("path", l.propertiesPath).Msg("created default properties file")
	return nil
}

// 📄 EnsureEnvironmentFiles creates a default config file for every
// environment in the collection that has none yet. Returns the names of the
// files it created.
func (l *Loader) EnsureEnvironmentFiles(ctx context.Context, col *Collection) ([]string, error) {
	if err := l.files.CreateDir(ctx, l.environmentsDir); err != nil {
		return nil, errors.Errorf("creating environments directory: %w", err)
	}

	var created []string
	for _, e := range col.Environments {
		path := filepath.Join(l.environmentsDir, e.ConfigFileName)
		exists, err := l.files.FileExists(ctx, path)
		if err != nil {
			return created, errors.Errorf("checking config for %q: %w", e.DisplayName, err)
		}
		if exists {
			continue
		}
		if err := l.files.WriteFileAtomic(ctx, path, []byte(DefaultEnvironmentFileContent)); err != nil {
			return created, errors.Errorf("writing config for %q: %w", e.DisplayName, err)
		}
		created = append(created, e.ConfigFileName)
	}

	if len(created) > 0 {
		zerolog.Ctx(ctx).Info().Strs("files", created).Msg("created default environment files")
	}
	return created, nil
}

// 📂 EnvironmentsDir returns the directory holding per-environment files.
func (l *Loader) EnvironmentsDir() string {
	return l.environmentsDir
}

// 🧭 ConfigPath returns the absolute path of an environment's config file.
func (l *Loader) ConfigPath(e Environment) string {
	return filepath.Join(l.environmentsDir, e.ConfigFileName)
}

// 🧭 CompanionPath returns the absolute path of an environment's optional
// endpoint-URL companion file.
func (l *Loader) CompanionPath(e Environment) string {
	return filepath.Join(l.environmentsDir, e.CompanionFileName())
}
