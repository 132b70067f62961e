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
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// Display names longer than this still work, they just render poorly.
const maxDisplayNameLength = 50

var safeFileNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// 📋 ValidationResult separates hard errors from soft warnings.
// Warnings never affect validity.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// ✅ IsValid reports whether the input had no hard errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// 🔍 ValidateText checks raw properties text line by line, producing
// line-numbered diagnostics. Line numbers count every line of the input,
// but blank lines and comments are never flagged. The checks mirror the
// parser's filtering, so every hard error here is a line the parser drops.
func ValidateText(ctx context.Context, text string) *ValidationResult {
	result := &ValidationResult{}
	seenNames := map[string]int{}
	seenFiles := map[string]int{}
	accepted := 0

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		name, base, ok := strings.Cut(line, pairSeparator)
		if !ok {
			result.addError("Line %d: Missing ':' separator", lineNo)
			continue
		}
		name = strings.TrimSpace(name)
		base = strings.TrimSpace(base)

		if name == "" {
			result.addError("Line %d: Empty display name", lineNo)
			continue
		}
		if first, dup := seenNames[name]; dup {
			result.addError("Line %d: Duplicate display name %q (first declared on line %d)", lineNo, name, first)
			continue
		}
		seenNames[name] = lineNo

		if base == "" {
			result.addError("Line %d: Empty config file name", lineNo)
			continue
		}
		file := NormalizeConfigFileName(base)
		if first, dup := seenFiles[file]; dup {
			result.addError("Line %d: Duplicate config file %q (first declared on line %d)", lineNo, file, first)
			continue
		}
		seenFiles[file] = lineNo
		accepted++

		if len(name) > maxDisplayNameLength {
			result.addWarning("Line %d: Display name %q is longer than %d characters", lineNo, name, maxDisplayNameLength)
		}
		if !safeFileNamePattern.MatchString(file) {
			result.addWarning("Line %d: Config file %q contains characters outside [a-zA-Z0-9._-]", lineNo, file)
		}
	}

	if accepted == 0 {
		result.addError("No environments defined")
	}

	logValidation(ctx, "text", result)
	return result
}

// 🔍 ValidateCollection checks an already-built collection. When envDir is
// non-empty, each referenced config file is checked for existence there; a
// missing file is only a warning because callers may create it on demand.
func ValidateCollection(ctx context.Context, col *Collection, envDir string) *ValidationResult {
	result := &ValidationResult{}

	if col == nil || col.TotalCount == 0 {
		result.addError("No environments defined")
		logValidation(ctx, "collection", result)
		return result
	}

	seenNames := map[string]bool{}
	seenFiles := map[string]bool{}
	for _, e := range col.Environments {
		if seenNames[e.DisplayName] {
			result.addError("Duplicate display name %q", e.DisplayName)
		}
		seenNames[e.DisplayName] = true

		if seenFiles[e.ConfigFileName] {
			result.addError("Duplicate config file %q", e.ConfigFileName)
		}
		seenFiles[e.ConfigFileName] = true

		if envDir != "" {
			path := filepath.Join(envDir, e.ConfigFileName)
			if _, err := os.Stat(path); err != nil {
				result.addWarning("Config file not found for %q: %s", e.DisplayName, path)
			}
		}
	}

	logValidation(ctx, "collection", result)
	return result
}

func logValidation(ctx context.Context, kind string, result *ValidationResult) {
	zerolog.Ctx(ctx).Debug().
		Str("kind", kind).
		Bool("valid", result.IsValid()).
		Int("errors", len(result.Errors)).
		Int("warnings", len(result.Warnings)).
		Msg("validated environments")
}
