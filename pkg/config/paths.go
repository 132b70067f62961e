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

package config

import (
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// Well-known names under the config root.
const (
	appDirName          = "mcpenv"
	PropertiesFileName  = "environments.properties"
	EnvironmentsDirName = "environments"
	ActiveFileName      = "mcp.json"
	EndpointFileName    = "endpoint.url"
	StateDirName        = "state"
	settingsBaseName    = "settings"
)

// 🗺️ Paths holds every location the tool manages under its config root.
type Paths struct {
	Root            string // Per-user config root
	PropertiesFile  string // Environment declarations
	EnvironmentsDir string // Per-environment config files
	ActiveFile      string // The single active-configuration file
	EndpointFile    string // Optional global endpoint-URL file
	StateDir        string // Per-workspace state files
}

// 🏠 DefaultRoot resolves the per-user config root.
func DefaultRoot() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// 🏭 NewPaths builds the standard path set under the given root.
func NewPaths(root string) Paths {
	return Paths{
		Root:            root,
		PropertiesFile:  filepath.Join(root, PropertiesFileName),
		EnvironmentsDir: filepath.Join(root, EnvironmentsDirName),
		ActiveFile:      filepath.Join(root, ActiveFileName),
		EndpointFile:    filepath.Join(root, EndpointFileName),
		StateDir:        filepath.Join(root, StateDirName),
	}
}

// 🔧 WithActiveFile returns a copy with the active file location overridden.
func (p Paths) WithActiveFile(path string) Paths {
	if path == "" {
		return p
	}
	p.ActiveFile = path
	return p
}

// 📂 EnsureDirs creates the directories the tool writes into.
func (p Paths) EnsureDirs() error {
	for _, dir := range []string{p.Root, p.EnvironmentsDir, p.StateDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// 🔍 SettingsCandidates returns the settings file locations in precedence
// order. The first existing one wins.
func (p Paths) SettingsCandidates() []string {
	return []string{
		filepath.Join(p.Root, settingsBaseName+".yaml"),
		filepath.Join(p.Root, settingsBaseName+".yml"),
		filepath.Join(p.Root, settingsBaseName+".json"),
		filepath.Join(p.Root, settingsBaseName+".hcl"),
	}
}
