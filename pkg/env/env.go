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
	"strings"
)

// 📦 Environment describes one named deployment target backed by a config file
type Environment struct {
	DisplayName    string // Unique name shown to the user (e.g. "Local")
	ConfigFileName string // Normalized file name, always ends in ".json"
	Position       int    // 0-based declaration order, stable within a collection
}

// 🔗 CompanionFileName returns the optional endpoint-URL file paired with
// this environment's config file (mcp-local.json -> mcp-local.url).
func (e Environment) CompanionFileName() string {
	return strings.TrimSuffix(e.ConfigFileName, jsonSuffix) + urlSuffix
}

// 📚 Collection is an ordered set of environments built from one parse.
// Positions are exactly 0..TotalCount-1 in sequence order.
type Collection struct {
	Environments []Environment
	TotalCount   int
}

// 🔍 Lookup finds an environment by display name. Absence is not an error.
func (c *Collection) Lookup(displayName string) (Environment, bool) {
	for _, e := range c.Environments {
		if e.DisplayName == displayName {
			return e, true
		}
	}
	return Environment{}, false
}

// 🥇 First returns the first environment in declaration order.
func (c *Collection) First() (Environment, bool) {
	if len(c.Environments) == 0 {
		return Environment{}, false
	}
	return c.Environments[0], true
}

// 📝 Names returns the display names in declaration order.
func (c *Collection) Names() []string {
	names := make([]string, 0, len(c.Environments))
	for _, e := range c.Environments {
		names = append(names, e.DisplayName)
	}
	return names
}

// 🔗 ConfigFileNames returns the normalized config file names in order.
func (c *Collection) ConfigFileNames() []string {
	files := make([]string, 0, len(c.Environments))
	for _, e := range c.Environments {
		files = append(files, e.ConfigFileName)
	}
	return files
}
