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

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileState describes how a managed file relates to its expected state
type FileState int

const (
	StateUnknown  FileState = iota
	StateOK                 // File exists where expected
	StateMissing            // Referenced file does not exist
	StateOrphaned           // File exists but nothing references it
	StateDrifted            // File content differs from what was last applied
)

// String returns a string representation of FileState
func (s FileState) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateMissing:
		return "missing"
	case StateOrphaned:
		return "orphaned"
	case StateDrifted:
		return "drifted"
	default:
		return "unknown"
	}
}

// 💾 FileManager handles all file system operations. Paths are absolute;
// writes are always full-file replaces, never in-place patches.
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
	CopyFile(ctx context.Context, src, dst string) (string, error)
	FileExists(ctx context.Context, path string) (bool, error)
	CreateDir(ctx context.Context, path string) error
}

// 🔧 Manager implements FileManager against the local filesystem
type Manager struct{}

// 🏭 New creates a new file manager
func New() *Manager {
	return &Manager{}
}

// 🔍 Checksum generates a SHA-256 hash of the content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// WriteFileAtomic writes content to a temp file in the target directory and
// renames it over the destination. Parent directories are created as needed.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// CopyFile reads src whole and atomically replaces dst with it, returning
// the checksum of the copied content.
func (m *Manager) CopyFile(ctx context.Context, src, dst string) (string, error) {
	content, err := m.ReadFile(ctx, src)
	if err != nil {
		return "", errors.Errorf("reading source: %w", err)
	}
	if err := m.WriteFileAtomic(ctx, dst, content); err != nil {
		return "", errors.Errorf("writing destination: %w", err)
	}

	sum := Checksum(content)
	zerolog.Ctx(ctx).Debug().
		Str("src", src).
		Str("dst", dst).
		Str("checksum", sum).
		Msg("copied file")
	return sum, nil
}

func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

func (m *Manager) CreateDir(ctx context.Context, path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.Errorf("creating directory: %w", err)
	}
	return nil
}
