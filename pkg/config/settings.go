package config

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Defaults applied by Validate.
const (
	DefaultRefreshInterval = time.Hour
	DefaultHTTPTimeout     = 30 * time.Second
)

// ⚙️ Settings tunes optional behavior. Every field has a working default;
// the settings file itself is optional.
type Settings struct {
	ActivePath      string `json:"active_path,omitempty" yaml:"active_path,omitempty" hcl:"active_path,optional"`
	RefreshInterval string `json:"refresh_interval,omitempty" yaml:"refresh_interval,omitempty" hcl:"refresh_interval,optional"`
	HTTPTimeout     string `json:"http_timeout,omitempty" yaml:"http_timeout,omitempty" hcl:"http_timeout,optional"`

	refreshInterval time.Duration
	httpTimeout     time.Duration
}

// 🔍 Validate applies defaults and checks durations.
func (s *Settings) Validate() error {
	if s.RefreshInterval == "" {
		s.refreshInterval = DefaultRefreshInterval
	} else {
		d, err := time.ParseDuration(s.RefreshInterval)
		if err != nil {
			return errors.Errorf("parsing refresh_interval: %w", err)
		}
		if d <= 0 {
			return errors.Errorf("refresh_interval must be positive, got %q", s.RefreshInterval)
		}
		s.refreshInterval = d
	}

	if s.HTTPTimeout == "" {
		s.httpTimeout = DefaultHTTPTimeout
	} else {
		d, err := time.ParseDuration(s.HTTPTimeout)
		if err != nil {
			return errors.Errorf("parsing http_timeout: %w", err)
		}
		if d <= 0 {
			return errors.Errorf("http_timeout must be positive, got %q", s.HTTPTimeout)
		}
		s.httpTimeout = d
	}

	return nil
}

// ⏱️ RefreshEvery returns the credential refresh period.
func (s *Settings) RefreshEvery() time.Duration {
	return s.refreshInterval
}

// ⏱️ Timeout returns the outbound HTTP timeout.
func (s *Settings) Timeout() time.Duration {
	return s.httpTimeout
}

// 🧱 DefaultSettings returns validated defaults.
func DefaultSettings() *Settings {
	s := &Settings{}
	// Validate cannot fail on empty settings.
	_ = s.Validate()
	return s
}

// 🎯 LoadSettings finds and loads the optional settings file under the
// config root. An absent file yields defaults, never an error.
func LoadSettings(ctx context.Context, paths Paths) (*Settings, error) {
	logger := zerolog.Ctx(ctx)

	for _, candidate := range paths.SettingsCandidates() {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		logger.Debug().Str("path", candidate).Msg("loading settings")
		return LoadSettingsFile(ctx, candidate)
	}

	logger.Debug().Str("root", paths.Root).Msg("no settings file, using defaults")
	return DefaultSettings(), nil
}

// LoadSettingsFile loads a settings file. The format is determined by the
// file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
func LoadSettingsFile(ctx context.Context, path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading settings file: %w", err)
	}

	var settings *Settings
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		settings, err = loadJSON(data)
	case ".yaml", ".yml":
		settings, err = loadYAML(data)
	case ".hcl":
		settings, err = loadHCL(data, path)
	default:
		return nil, errors.Errorf("unsupported settings extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	if err := settings.Validate(); err != nil {
		return nil, errors.Errorf("validating settings: %w", err)
	}
	return settings, nil
}

// loadJSON loads settings from JSON data
func loadJSON(data []byte) (*Settings, error) {
	var settings Settings
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&settings); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &settings, nil
}

// loadYAML loads settings from YAML data
func loadYAML(data []byte) (*Settings, error) {
	var settings Settings
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&settings); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &settings, nil
}

// loadHCL loads settings from HCL data
func loadHCL(data []byte, filename string) (*Settings, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var settings Settings
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &settings)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &settings, nil
}
