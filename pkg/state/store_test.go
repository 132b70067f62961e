package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/mcpenv/pkg/status"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func newTestStore(t *testing.T, stateDir, workspace string) *Store {
	t.Helper()
	store, err := New(Options{
		StateDir:  stateDir,
		Workspace: workspace,
		Files:     status.New(),
	})
	require.NoError(t, err, "creating store")
	return store
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name        string
		opts        Options
		errContains string
	}{
		{
			name:        "missing_state_dir",
			opts:        Options{Workspace: "/tmp/ws", Files: status.New()},
			errContains: "state directory is required",
		},
		{
			name:        "missing_workspace",
			opts:        Options{StateDir: "/tmp/state", Files: status.New()},
			errContains: "workspace is required",
		},
		{
			name:        "missing_files",
			opts:        Options{StateDir: "/tmp/state", Workspace: "/tmp/ws"},
			errContains: "file manager is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			require.Error(t, err, "expected error")
			assert.Contains(t, err.Error(), tt.errContains, "error should name the missing option")
		})
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := testContext(t)
	stateDir := t.TempDir()
	workspace := t.TempDir()

	store := newTestStore(t, stateDir, workspace)

	// Unset key reads as absent
	_, ok, err := store.Get(ctx, KeyCurrentEnvironment)
	require.NoError(t, err, "getting unset key")
	assert.False(t, ok, "unset key should be absent")

	current, err := store.CurrentEnvironment(ctx)
	require.NoError(t, err, "reading unset current environment")
	assert.Empty(t, current, "unset current environment should be empty")

	// Set and read back
	require.NoError(t, store.SetCurrentEnvironment(ctx, "Dev"), "setting current environment")
	current, err = store.CurrentEnvironment(ctx)
	require.NoError(t, err, "reading current environment")
	assert.Equal(t, "Dev", current, "current environment should round-trip")

	// A fresh store against the same workspace sees the persisted value
	reopened := newTestStore(t, stateDir, workspace)
	current, err = reopened.CurrentEnvironment(ctx)
	require.NoError(t, err, "reading via reopened store")
	assert.Equal(t, "Dev", current, "value should persist across store instances")

	// Checksum helper uses a separate key
	require.NoError(t, store.SetAppliedChecksum(ctx, "abc123"), "setting checksum")
	sum, err := store.AppliedChecksum(ctx)
	require.NoError(t, err, "reading checksum")
	assert.Equal(t, "abc123", sum, "checksum should round-trip")
	current, err = store.CurrentEnvironment(ctx)
	require.NoError(t, err, "re-reading current environment")
	assert.Equal(t, "Dev", current, "setting checksum should not clobber other keys")
}

func TestStoreDelete(t *testing.T) {
	ctx := testContext(t)
	store := newTestStore(t, t.TempDir(), t.TempDir())

	require.NoError(t, store.Set(ctx, "k", "v"), "setting key")
	require.NoError(t, store.Delete(ctx, "k"), "deleting key")

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err, "getting deleted key")
	assert.False(t, ok, "deleted key should be absent")

	// Deleting again is a no-op
	require.NoError(t, store.Delete(ctx, "k"), "deleting absent key")
}

func TestStoreWorkspaceIsolation(t *testing.T) {
	ctx := testContext(t)
	stateDir := t.TempDir()
	wsA := t.TempDir()
	wsB := t.TempDir()

	storeA := newTestStore(t, stateDir, wsA)
	storeB := newTestStore(t, stateDir, wsB)

	assert.NotEqual(t, storeA.Path(), storeB.Path(), "workspaces should map to distinct state files")

	require.NoError(t, storeA.SetCurrentEnvironment(ctx, "Prod"), "setting in workspace A")

	current, err := storeB.CurrentEnvironment(ctx)
	require.NoError(t, err, "reading workspace B")
	assert.Empty(t, current, "workspace B should not see workspace A's value")
}

func TestStoreCorruptFile(t *testing.T) {
	ctx := testContext(t)
	stateDir := t.TempDir()
	store := newTestStore(t, stateDir, t.TempDir())

	require.NoError(t, os.MkdirAll(stateDir, 0755), "ensuring state dir")
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0644), "writing corrupt state")

	_, _, err := store.Get(ctx, "k")
	require.Error(t, err, "corrupt state file should error")
	assert.Contains(t, err.Error(), "parsing state file", "error should name the parse step")
}

func TestWorkspaceFileName(t *testing.T) {
	a := workspaceFileName("/home/dev/project-a")
	b := workspaceFileName("/home/dev/project-b")

	assert.Equal(t, a, workspaceFileName("/home/dev/project-a"), "file name should be stable")
	assert.NotEqual(t, a, b, "different workspaces should hash differently")
	assert.Equal(t, workspaceHashLength+len(".json"), len(a), "file name should be hash prefix plus extension")
	assert.Equal(t, filepath.Ext(a), ".json", "state files are json")
}
