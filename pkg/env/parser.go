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
	"strings"

	"github.com/rs/zerolog"
)

const (
	jsonSuffix    = ".json"
	urlSuffix     = ".url"
	commentPrefix = "#"
	pairSeparator = ":"
)

// 🎯 Parse turns properties text into an ordered collection.
//
// One environment per line, "DisplayName:ConfigBaseName". Blank lines and
// '#' comments are skipped. Malformed lines (no separator, empty halves)
// are dropped without error; ValidateText reports them separately. The
// base name gains a ".json" suffix unless it already carries one.
func Parse(ctx context.Context, text string) *Collection {
	var envs []Environment
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		name, base, ok := strings.Cut(line, pairSeparator)
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		base = strings.TrimSpace(base)
		if name == "" || base == "" {
			continue
		}

		envs = append(envs, Environment{
			DisplayName:    name,
			ConfigFileName: NormalizeConfigFileName(base),
			Position:       len(envs),
		})
	}

	zerolog.Ctx(ctx).Debug().Int("environments", len(envs)).Msg("parsed properties text")

	return &Collection{Environments: envs, TotalCount: len(envs)}
}

// 🔧 NormalizeConfigFileName appends ".json" unless the name already ends with it.
func NormalizeConfigFileName(base string) string {
	if strings.HasSuffix(base, jsonSuffix) {
		return base
	}
	return base + jsonSuffix
}

// 📝 Format renders the canonical re-serialization of a collection.
// Parsing the output reproduces an equal collection.
func (c *Collection) Format() string {
	var b strings.Builder
	for _, e := range c.Environments {
		fmt.Fprintf(&b, "%s%s%s\n", e.DisplayName, pairSeparator, e.ConfigFileName)
	}
	return b.String()
}
