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

package status

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/walteh/mcpenv/pkg/env"
)

func init() {
	// Enable debug output for development
	pterm.EnableDebugMessages()
}

// 📢 Reporter provides user-friendly feedback about environment operations
type Reporter struct {
	log zerolog.Logger // for debug/error logging
}

// 🎯 NewReporter creates a new reporter
func NewReporter(ctx context.Context) *Reporter {
	return &Reporter{
		log: *zerolog.Ctx(ctx),
	}
}

// 🎨 ChangeType represents the kind of change reported to the user
type ChangeType int

const (
	ChangeSwitched ChangeType = iota
	ChangeApplied
	ChangeCreated
	ChangeSkipped
	ChangeError
)

// 🖼️ Change represents one user-visible change
type Change struct {
	Type        ChangeType
	Subject     string
	Description string
	Error       error
}

// 📝 LogChange logs a change with appropriate emoji and formatting
func (r *Reporter) LogChange(change Change) {
	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case ChangeSwitched:
		prefix = "🔀"
		action = "Switched to"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case ChangeApplied:
		prefix = "✨"
		action = "Applied"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case ChangeCreated:
		prefix = "📄"
		action = "Created"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	case ChangeSkipped:
		prefix = "⏭️"
		action = "Skipped"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	case ChangeError:
		prefix = "❌"
		action = "Failed"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: prefix})
	}

	msg := fmt.Sprintf("%s %s", action, change.Subject)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	if change.Error != nil {
		printer.Println(msg)
		pterm.Error.Println(change.Error)
		r.log.Error().Err(change.Error).Msg(msg) // Also log to zerolog for debugging
	} else {
		printer.Println(msg)
		r.log.Info().Msg(msg) // Also log to zerolog for debugging
	}
}

// 🔍 LogValidation renders a validation result, one line per finding
func (r *Reporter) LogValidation(result *env.ValidationResult, source string) {
	if result.IsValid() {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Printf("%s is valid\n", source)
		r.log.Info().Str("source", source).Msg("validation passed")
	} else {
		for _, e := range result.Errors {
			pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(e)
			r.log.Error().Str("source", source).Msg(e)
		}
	}
	for _, w := range result.Warnings {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(w)
		r.log.Warn().Str("source", source).Msg(w)
	}
}

// 📊 LogFileState renders the state of one managed file
func (r *Reporter) LogFileState(state FileState, path string, description string) {
	msg := path
	if description != "" {
		msg += fmt.Sprintf(" (%s)", description)
	}
	switch state {
	case StateOK:
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✓"}).Println(msg)
	case StateMissing:
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "∅"}).Println(msg)
	case StateOrphaned:
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "👻"}).Println(msg)
	case StateDrifted:
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "≠"}).Println(msg)
	default:
		pterm.Info.WithPrefix(pterm.Prefix{Text: "•"}).Println(msg)
	}
	r.log.Debug().Str("path", path).Str("state", state.String()).Msg("file state")
}
