package operation_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectFreshTree(t *testing.T) {
	fix := newFixture(t)
	ctx := testContext(t)

	report, err := fix.operator.Inspect(ctx)
	require.NoError(t, err, "inspect should succeed")

	require.Len(t, report.Entries, 3, "every environment should be reported")
	for _, e := range report.Entries {
		assert.False(t, e.Missing, "fixture creates every config file")
	}
	assert.Empty(t, report.Orphans, "a fresh tree has no orphans")
	assert.True(t, report.ActiveMissing, "nothing was applied yet")
	assert.False(t, report.ActiveDrifted, "nothing can drift before an apply")
	assert.False(t, report.Endpoint, "no endpoint is configured by default")
}

func TestInspectAfterSwitch(t *testing.T) {
	fix := newFixture(t)
	ctx := testContext(t)

	require.NoError(t, os.WriteFile(fix.envPath("mcp-prod.url"), []byte("https://example.test"), 0644), "companion should be seeded")

	_, err := fix.operator.Select(ctx, "Prod")
	require.NoError(t, err, "select should succeed")

	report, err := fix.operator.Inspect(ctx)
	require.NoError(t, err, "inspect should succeed")
	assert.False(t, report.ActiveMissing, "the active file was written by the switch")
	assert.False(t, report.ActiveDrifted, "a fresh apply matches its recorded checksum")
	assert.True(t, report.Endpoint, "the companion copy configured the endpoint")
}

func TestInspectDetectsDrift(t *testing.T) {
	fix := newFixture(t)
	ctx := testContext(t)

	_, err := fix.operator.Select(ctx, "Local")
	require.NoError(t, err, "select should succeed")

	require.NoError(t, os.WriteFile(fix.paths.ActiveFile, []byte(`{"edited": "by hand"}`), 0644), "editing the active file should succeed")

	report, err := fix.operator.Inspect(ctx)
	require.NoError(t, err, "inspect should succeed")
	assert.True(t, report.ActiveDrifted, "an external edit should be flagged as drift")
}

func TestInspectFindsOrphans(t *testing.T) {
	fix := newFixture(t)
	ctx := testContext(t)

	require.NoError(t, os.WriteFile(filepath.Join(fix.paths.EnvironmentsDir, "stray.json"), []byte("{}"), 0644), "stray file should be seeded")

	report, err := fix.operator.Inspect(ctx)
	require.NoError(t, err, "inspect should succeed")
	assert.Equal(t, []string{"stray.json"}, report.Orphans, "unreferenced managed files should be reported")
}
