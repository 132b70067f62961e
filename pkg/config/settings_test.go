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
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsFile(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		content     string
		wantErr     bool
		errContains string
		check       func(t *testing.T, s *Settings)
	}{
		{
			name:     "valid_yaml",
			filename: "settings.yaml",
			content: `
active_path: /tmp/custom/mcp.json
refresh_interval: 30m
http_timeout: 10s
`,
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, "/tmp/custom/mcp.json", s.ActivePath, "active path should be set")
				assert.Equal(t, 30*time.Minute, s.RefreshEvery(), "refresh interval should parse")
				assert.Equal(t, 10*time.Second, s.Timeout(), "http timeout should parse")
			},
		},
		{
			name:     "valid_json",
			filename: "settings.json",
			content:  `{"refresh_interval": "2h"}`,
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, 2*time.Hour, s.RefreshEvery(), "refresh interval should parse")
				assert.Equal(t, DefaultHTTPTimeout, s.Timeout(), "http timeout should default")
			},
		},
		{
			name:     "valid_hcl",
			filename: "settings.hcl",
			content: `
active_path = "/tmp/elsewhere/mcp.json"
http_timeout = "45s"
`,
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, "/tmp/elsewhere/mcp.json", s.ActivePath, "active path should be set")
				assert.Equal(t, 45*time.Second, s.Timeout(), "http timeout should parse")
				assert.Equal(t, DefaultRefreshInterval, s.RefreshEvery(), "refresh interval should default")
			},
		},
		{
			name:        "unknown_field_yaml",
			filename:    "settings.yaml",
			content:     `bogus_field: true`,
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_field_json",
			filename:    "settings.json",
			content:     `{"bogus_field": true}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "bad_duration",
			filename:    "settings.yaml",
			content:     `refresh_interval: often`,
			wantErr:     true,
			errContains: "parsing refresh_interval",
		},
		{
			name:        "negative_duration",
			filename:    "settings.yaml",
			content:     `http_timeout: -5s`,
			wantErr:     true,
			errContains: "must be positive",
		},
		{
			name:        "unsupported_extension",
			filename:    "settings.toml",
			content:     `refresh_interval = "1h"`,
			wantErr:     true,
			errContains: "unsupported settings extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644), "writing settings file")

			s, err := LoadSettingsFile(context.Background(), path)
			if tt.wantErr {
				require.Error(t, err, "expected error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}
			require.NoError(t, err, "loading settings")
			if tt.check != nil {
				tt.check(t, s)
			}
		})
	}
}

func TestLoadSettingsAbsent(t *testing.T) {
	paths := NewPaths(t.TempDir())

	s, err := LoadSettings(context.Background(), paths)
	require.NoError(t, err, "absent settings should not error")
	assert.Equal(t, DefaultRefreshInterval, s.RefreshEvery(), "refresh interval should default")
	assert.Equal(t, DefaultHTTPTimeout, s.Timeout(), "http timeout should default")
	assert.Empty(t, s.ActivePath, "active path should default to empty")
}

func TestLoadSettingsPrecedence(t *testing.T) {
	root := t.TempDir()
	paths := NewPaths(root)

	require.NoError(t, os.WriteFile(filepath.Join(root, "settings.yaml"), []byte("refresh_interval: 15m"), 0644), "writing yaml")
	require.NoError(t, os.WriteFile(filepath.Join(root, "settings.json"), []byte(`{"refresh_interval": "3h"}`), 0644), "writing json")

	s, err := LoadSettings(context.Background(), paths)
	require.NoError(t, err, "loading settings")
	assert.Equal(t, 15*time.Minute, s.RefreshEvery(), "yaml candidate should win over json")
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, DefaultRefreshInterval, s.RefreshEvery(), "refresh interval default")
	assert.Equal(t, DefaultHTTPTimeout, s.Timeout(), "http timeout default")
}
