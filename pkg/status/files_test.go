package status

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestWriteFileAtomic(t *testing.T) {
	ctx := testContext(t)
	mgr := New()
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		content string
	}{
		{
			name:    "plain_write",
			path:    filepath.Join(dir, "a.json"),
			content: `{"mcpServers": {}}`,
		},
		{
			name:    "creates_parent_dirs",
			path:    filepath.Join(dir, "nested", "deep", "b.json"),
			content: "content",
		},
		{
			name:    "empty_content",
			path:    filepath.Join(dir, "empty.json"),
			content: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mgr.WriteFileAtomic(ctx, tt.path, []byte(tt.content))
			require.NoError(t, err, "writing file")

			data, err := os.ReadFile(tt.path)
			require.NoError(t, err, "reading file back")
			assert.Equal(t, tt.content, string(data), "content should match")

			_, err = os.Stat(tt.path + ".tmp")
			assert.True(t, os.IsNotExist(err), "temp file should not remain")
		})
	}
}

func TestWriteFileAtomicReplaces(t *testing.T) {
	ctx := testContext(t)
	mgr := New()
	path := filepath.Join(t.TempDir(), "replace.json")

	require.NoError(t, mgr.WriteFileAtomic(ctx, path, []byte("first")), "first write")
	require.NoError(t, mgr.WriteFileAtomic(ctx, path, []byte("second")), "second write")

	data, err := os.ReadFile(path)
	require.NoError(t, err, "reading file")
	assert.Equal(t, "second", string(data), "second write should replace the first")
}

func TestCopyFile(t *testing.T) {
	ctx := testContext(t)
	mgr := New()
	dir := t.TempDir()

	src := filepath.Join(dir, "src.json")
	dst := filepath.Join(dir, "dst.json")
	content := []byte(`{"mcpServers": {"db": {}}}`)
	require.NoError(t, os.WriteFile(src, content, 0644), "seeding source")

	sum, err := mgr.CopyFile(ctx, src, dst)
	require.NoError(t, err, "copying file")
	assert.Equal(t, Checksum(content), sum, "checksum should cover the copied content")

	data, err := os.ReadFile(dst)
	require.NoError(t, err, "reading destination")
	assert.Equal(t, content, data, "destination should match the source")
}

func TestCopyFileMissingSource(t *testing.T) {
	ctx := testContext(t)
	mgr := New()
	dir := t.TempDir()

	_, err := mgr.CopyFile(ctx, filepath.Join(dir, "absent.json"), filepath.Join(dir, "dst.json"))
	require.Error(t, err, "copying a missing source should fail")
	assert.Contains(t, err.Error(), "reading source", "error should name the failing step")
}

func TestFileExists(t *testing.T) {
	ctx := testContext(t)
	mgr := New()
	dir := t.TempDir()

	path := filepath.Join(dir, "probe.json")
	exists, err := mgr.FileExists(ctx, path)
	require.NoError(t, err, "checking missing file")
	assert.False(t, exists, "missing file should report false")

	require.NoError(t, os.WriteFile(path, []byte("x"), 0644), "seeding file")
	exists, err = mgr.FileExists(ctx, path)
	require.NoError(t, err, "checking existing file")
	assert.True(t, exists, "existing file should report true")
}

func TestChecksum(t *testing.T) {
	a := Checksum([]byte("content"))
	b := Checksum([]byte("content"))
	c := Checksum([]byte("different"))

	assert.Equal(t, a, b, "same content should hash the same")
	assert.NotEqual(t, a, c, "different content should hash differently")
	assert.Len(t, a, 64, "hex sha256 is 64 characters")
}
