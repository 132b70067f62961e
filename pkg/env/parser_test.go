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
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantNames []string
		wantFiles []string
	}{
		{
			name:      "three_environments",
			text:      "Local:mcp-local\nDev:mcp-dev\nProd:mcp-prod",
			wantNames: []string{"Local", "Dev", "Prod"},
			wantFiles: []string{"mcp-local.json", "mcp-dev.json", "mcp-prod.json"},
		},
		{
			name:      "already_suffixed",
			text:      "Local:mcp-local.json",
			wantNames: []string{"Local"},
			wantFiles: []string{"mcp-local.json"},
		},
		{
			name:      "whitespace_trimmed",
			text:      "  Staging  :   mcp-staging   ",
			wantNames: []string{"Staging"},
			wantFiles: []string{"mcp-staging.json"},
		},
		{
			name:      "comments_and_blanks_skipped",
			text:      "# header comment\n\nLocal:mcp-local\n   \n# trailing comment",
			wantNames: []string{"Local"},
			wantFiles: []string{"mcp-local.json"},
		},
		{
			name:      "malformed_lines_dropped",
			text:      "no separator here\n:missing-name\nNoFile:\nGood:mcp-good",
			wantNames: []string{"Good"},
			wantFiles: []string{"mcp-good.json"},
		},
		{
			name:      "crlf_input",
			text:      "Local:mcp-local\r\nDev:mcp-dev\r\n",
			wantNames: []string{"Local", "Dev"},
			wantFiles: []string{"mcp-local.json", "mcp-dev.json"},
		},
		{
			name:      "duplicate_names_kept",
			text:      "Dup:one\nDup:two",
			wantNames: []string{"Dup", "Dup"},
			wantFiles: []string{"one.json", "two.json"},
		},
		{
			name:      "first_separator_wins",
			text:      "Weird:base:extra",
			wantNames: []string{"Weird"},
			wantFiles: []string{"base:extra.json"},
		},
		{
			name:      "empty_input",
			text:      "",
			wantNames: nil,
			wantFiles: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := Parse(testContext(t), tt.text)

			require.Equal(t, len(tt.wantNames), col.TotalCount, "total count should match accepted lines")
			require.Len(t, col.Environments, col.TotalCount, "total count should equal sequence length")
			for i, e := range col.Environments {
				assert.Equal(t, tt.wantNames[i], e.DisplayName, "display name at %d", i)
				assert.Equal(t, tt.wantFiles[i], e.ConfigFileName, "config file at %d", i)
				assert.Equal(t, i, e.Position, "position should be the 0-based accepted index")
			}
		})
	}
}

func TestParsePositionsForAnySize(t *testing.T) {
	ctx := testContext(t)

	for n := 1; n <= 6; n++ {
		t.Run(fmt.Sprintf("n_%d", n), func(t *testing.T) {
			text := ""
			for i := 0; i < n; i++ {
				text += fmt.Sprintf("Env%d:file-%d\n", i, i)
			}

			col := Parse(ctx, text)
			require.Equal(t, n, col.TotalCount, "all well-formed lines should be accepted")
			for i, e := range col.Environments {
				assert.Equal(t, i, e.Position, "positions run 0..n-1 in file order")
				assert.Equal(t, fmt.Sprintf("file-%d.json", i), e.ConfigFileName, "exactly one .json suffix")
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	ctx := testContext(t)

	tests := []struct {
		name string
		text string
	}{
		{name: "default_template", text: DefaultPropertiesText},
		{name: "custom_set", text: "A:one\nB:two.json\nC:three"},
		{name: "single_entry", text: "Only:solo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := Parse(ctx, tt.text)
			second := Parse(ctx, first.Format())
			assert.Equal(t, first, second, "parsing the canonical re-serialization should reproduce the collection")
		})
	}
}

func TestNormalizeConfigFileName(t *testing.T) {
	assert.Equal(t, "mcp-local.json", NormalizeConfigFileName("mcp-local"), "suffix should be appended")
	assert.Equal(t, "mcp-local.json", NormalizeConfigFileName("mcp-local.json"), "existing suffix should be kept")
	assert.Equal(t, "a.b.json", NormalizeConfigFileName("a.b"), "dots elsewhere are untouched")
}

func TestCompanionFileName(t *testing.T) {
	e := Environment{DisplayName: "Local", ConfigFileName: "mcp-local.json"}
	assert.Equal(t, "mcp-local.url", e.CompanionFileName(), "companion swaps .json for .url")
}

func TestCollectionLookup(t *testing.T) {
	col := Parse(testContext(t), "Local:mcp-local\nDev:mcp-dev")

	e, ok := col.Lookup("Dev")
	require.True(t, ok, "existing name should be found")
	assert.Equal(t, 1, e.Position, "lookup should return the right descriptor")

	_, ok = col.Lookup("Ghost")
	assert.False(t, ok, "absent name should report not found")

	dups := Parse(testContext(t), "Dup:one\nDup:two")
	d, ok := dups.Lookup("Dup")
	require.True(t, ok, "duplicated name should be found")
	assert.Equal(t, "one.json", d.ConfigFileName, "lookup resolves to the first occurrence")

	first, ok := col.First()
	require.True(t, ok, "non-empty collection has a first entry")
	assert.Equal(t, "Local", first.DisplayName, "first should be position 0")

	assert.Equal(t, []string{"Local", "Dev"}, col.Names(), "names in order")
	assert.Equal(t, []string{"mcp-local.json", "mcp-dev.json"}, col.ConfigFileNames(), "files in order")
}

func TestDefaultCollection(t *testing.T) {
	col := DefaultCollection(testContext(t))

	require.Equal(t, 3, col.TotalCount, "default collection has three entries")
	assert.Equal(t, []string{"Local", "Dev", "Prod"}, col.Names(), "default names")
	assert.Equal(t, []string{"mcp-local.json", "mcp-dev.json", "mcp-prod.json"}, col.ConfigFileNames(), "default files")

	result := ValidateCollection(testContext(t), col, "")
	assert.True(t, result.IsValid(), "default collection must satisfy collection invariants")
}
