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

package state

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/mcpenv/pkg/status"
)

// Fixed keys for well-known values.
const (
	KeyCurrentEnvironment = "currentEnvironment"
	KeyAppliedChecksum    = "appliedChecksum"
)

// Length of the workspace hash used in state file names.
const workspaceHashLength = 12

// 📦 stateFile is the on-disk shape of one workspace's store
type stateFile struct {
	Workspace string            `json:"workspace"`
	Values    map[string]string `json:"values"`
}

// ⚙️ Options configures a Store.
type Options struct {
	StateDir  string             // Directory holding per-workspace state files
	Workspace string             // Workspace directory this store is scoped to
	Files     status.FileManager // File capability
}

// 🗃️ Store persists string values scoped to one workspace directory. The
// backing file is the source of truth: every Get re-reads it and every Set
// rewrites it whole.
type Store struct {
	mu        sync.RWMutex
	path      string
	workspace string
	files     status.FileManager
}

// 🏭 New creates a store for the given workspace, validating its options.
func New(opts Options) (*Store, error) {
	if opts.StateDir == "" {
		return nil, errors.Errorf("state directory is required")
	}
	if opts.Workspace == "" {
		return nil, errors.Errorf("workspace is required")
	}
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}

	workspace, err := filepath.Abs(opts.Workspace)
	if err != nil {
		return nil, errors.Errorf("resolving workspace path: %w", err)
	}

	return &Store{
		path:      filepath.Join(opts.StateDir, workspaceFileName(workspace)),
		workspace: workspace,
		files:     opts.Files,
	}, nil
}

// workspaceFileName derives a stable file name from the workspace path.
func workspaceFileName(workspace string) string {
	hash := sha256.Sum256([]byte(workspace))
	return hex.EncodeToString(hash[:])[:workspaceHashLength] + ".json"
}

// 🧭 Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// 🧭 Workspace returns the absolute workspace path this store is scoped to.
func (s *Store) Workspace() string {
	return s.workspace
}

// 🔍 Get returns the value for key and whether it was set.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load(ctx)
	if err != nil {
		return "", false, err
	}
	value, ok := file.Values[key]
	return value, ok, nil
}

// 📝 Set stores the value for key, rewriting the state file whole.
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load(ctx)
	if err != nil {
		return err
	}
	file.Values[key] = value

	if err := s.write(ctx, file); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().
		Str("key", key).
		Str("value", value).
		Str("workspace", s.workspace).
		Msg("persisted state value")
	return nil
}

// 🗑️ Delete removes a key. Deleting an absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := file.Values[key]; !ok {
		return nil
	}
	delete(file.Values, key)
	return s.write(ctx, file)
}

// 🔍 CurrentEnvironment returns the persisted current environment name, or
// empty when none was ever set.
func (s *Store) CurrentEnvironment(ctx context.Context) (string, error) {
	value, _, err := s.Get(ctx, KeyCurrentEnvironment)
	if err != nil {
		return "", errors.Errorf("reading current environment: %w", err)
	}
	return value, nil
}

// 📝 SetCurrentEnvironment persists the current environment name.
func (s *Store) SetCurrentEnvironment(ctx context.Context, name string) error {
	if err := s.Set(ctx, KeyCurrentEnvironment, name); err != nil {
		return errors.Errorf("persisting current environment: %w", err)
	}
	return nil
}

// 🔍 AppliedChecksum returns the checksum recorded by the last apply.
func (s *Store) AppliedChecksum(ctx context.Context) (string, error) {
	value, _, err := s.Get(ctx, KeyAppliedChecksum)
	if err != nil {
		return "", errors.Errorf("reading applied checksum: %w", err)
	}
	return value, nil
}

// 📝 SetAppliedChecksum records the checksum of the last applied content.
func (s *Store) SetAppliedChecksum(ctx context.Context, sum string) error {
	if err := s.Set(ctx, KeyAppliedChecksum, sum); err != nil {
		return errors.Errorf("persisting applied checksum: %w", err)
	}
	return nil
}

// load reads the state file. A missing file is an empty store.
func (s *Store) load(ctx context.Context) (*stateFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &stateFile{Workspace: s.workspace, Values: map[string]string{}}, nil
		}
		return nil, errors.Errorf("reading state file: %w", err)
	}

	var file stateFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Errorf("parsing state file: %w", err)
	}
	if file.Values == nil {
		file.Values = map[string]string{}
	}
	file.Workspace = s.workspace
	return &file, nil
}

func (s *Store) write(ctx context.Context, file *stateFile) error {
	data, err := json.MarshalIndent(file, "", "\t")
	if err != nil {
		return errors.Errorf("marshaling state file: %w", err)
	}
	if err := s.files.WriteFileAtomic(ctx, s.path, data); err != nil {
		return errors.Errorf("writing state file: %w", err)
	}
	return nil
}
