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
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/mcpenv/cmd/mcpenv/opts"
	"github.com/walteh/mcpenv/pkg/config"
	"github.com/walteh/mcpenv/pkg/env"
	"github.com/walteh/mcpenv/pkg/state"
	"github.com/walteh/mcpenv/pkg/status"
)

func runCommand(t *testing.T, root, workspace string, args ...string) error {
	t.Helper()

	rootOpts := &opts.RootOpts{}
	cmd := newRootCmd(rootOpts)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--config-root", root, "--workspace", workspace))

	return cmd.ExecuteContext(context.Background())
}

func storedCurrent(t *testing.T, paths config.Paths, workspace string) string {
	t.Helper()

	store, err := state.New(state.Options{
		StateDir:  paths.StateDir,
		Workspace: workspace,
		Files:     status.New(),
	})
	require.NoError(t, err, "creating state store")

	name, err := store.CurrentEnvironment(context.Background())
	require.NoError(t, err, "reading current environment")

	return name
}

func TestCommandsSmoke(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "list", args: []string{"list"}},
		{name: "current", args: []string{"current"}},
		{name: "validate", args: []string{"validate"}},
		{name: "init", args: []string{"init"}},
		{name: "doctor", args: []string{"doctor"}},
		{name: "migrate", args: []string{"migrate"}},
		{name: "refresh", args: []string{"refresh"}},
		{name: "version", args: []string{"version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCommand(t, t.TempDir(), t.TempDir(), tt.args...)
			require.NoError(t, err, "running %v on a fresh root", tt.args)
		})
	}
}

func TestInitCreatesConfigTree(t *testing.T) {
	root := t.TempDir()
	ws := t.TempDir()
	paths := config.NewPaths(root)

	err := runCommand(t, root, ws, "init")
	require.NoError(t, err, "running init")

	data, err := os.ReadFile(paths.PropertiesFile)
	require.NoError(t, err, "reading properties file")
	assert.Equal(t, env.DefaultPropertiesText, string(data), "properties file should hold the default template")

	for _, name := range []string{"mcp-local.json", "mcp-dev.json", "mcp-prod.json"} {
		_, err := os.Stat(filepath.Join(paths.EnvironmentsDir, name))
		assert.NoError(t, err, "stub config %s should exist", name)
	}
}

func TestUseAppliesEnvironment(t *testing.T) {
	root := t.TempDir()
	ws := t.TempDir()
	paths := config.NewPaths(root)

	require.NoError(t, runCommand(t, root, ws, "init"), "running init")
	require.NoError(t, runCommand(t, root, ws, "use", "Prod"), "running use")

	assert.Equal(t, "Prod", storedCurrent(t, paths, ws), "state should record the selection")

	active, err := os.ReadFile(paths.ActiveFile)
	require.NoError(t, err, "reading active file")
	source, err := os.ReadFile(filepath.Join(paths.EnvironmentsDir, "mcp-prod.json"))
	require.NoError(t, err, "reading source config")
	assert.Equal(t, source, active, "active file should match the selected config")
}

func TestUseUnknownEnvironmentFails(t *testing.T) {
	root := t.TempDir()
	ws := t.TempDir()

	require.NoError(t, runCommand(t, root, ws, "init"), "running init")

	err := runCommand(t, root, ws, "use", "Ghost")
	require.Error(t, err, "unknown environment should fail")
	assert.Contains(t, err.Error(), "unknown environment", "error should name the problem")
}

func TestCycleAdvancesCurrent(t *testing.T) {
	root := t.TempDir()
	ws := t.TempDir()
	paths := config.NewPaths(root)

	require.NoError(t, runCommand(t, root, ws, "init"), "running init")

	require.NoError(t, runCommand(t, root, ws, "cycle"), "first cycle")
	assert.Equal(t, "Local", storedCurrent(t, paths, ws), "first cycle starts at the first environment")

	require.NoError(t, runCommand(t, root, ws, "cycle"), "second cycle")
	assert.Equal(t, "Dev", storedCurrent(t, paths, ws), "second cycle advances in declaration order")
}

func TestMigrateConvertsLegacyLayout(t *testing.T) {
	root := t.TempDir()
	ws := t.TempDir()
	paths := config.NewPaths(root)

	require.NoError(t, os.MkdirAll(paths.EnvironmentsDir, 0755), "creating environments dir")
	legacy := filepath.Join(paths.EnvironmentsDir, "mcp-dev.json")
	require.NoError(t, os.WriteFile(legacy, []byte(`{"mcpServers": {}}`), 0644), "seeding legacy config")

	err := runCommand(t, root, ws, "migrate")
	require.NoError(t, err, "running migrate")

	data, err := os.ReadFile(paths.PropertiesFile)
	require.NoError(t, err, "reading properties file")
	assert.Equal(t, env.DefaultPropertiesText, string(data), "migration should write the default declarations")
}

func TestWorkspacesAreIsolated(t *testing.T) {
	root := t.TempDir()
	wsA := t.TempDir()
	wsB := t.TempDir()
	paths := config.NewPaths(root)

	require.NoError(t, runCommand(t, root, wsA, "init"), "running init")
	require.NoError(t, runCommand(t, root, wsA, "use", "Prod"), "switching workspace A")
	require.NoError(t, runCommand(t, root, wsB, "use", "Dev"), "switching workspace B")

	assert.Equal(t, "Prod", storedCurrent(t, paths, wsA), "workspace A keeps its own selection")
	assert.Equal(t, "Dev", storedCurrent(t, paths, wsB), "workspace B keeps its own selection")
}
