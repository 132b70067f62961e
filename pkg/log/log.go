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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/walteh/mcpenv/pkg/env"
)

// 🎨 Display configuration
const (
	entryIndent = 4  // spaces to indent environment entries
	nameWidth   = 24 // Base width for display name
	fileWidth   = 28 // Width for config file name
)

// 🎯 EnvironmentLine represents one environment for list rendering
type EnvironmentLine struct {
	Name       string   // Display name
	ConfigFile string   // Normalized config file name
	Position   int      // 0-based position in the collection
	Tier       env.Tier // Derived tier
	Current    bool     // Whether this is the current environment
	Missing    bool     // Whether the config file is absent on disk
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 🎨 TierColor maps a tier to its console color attribute
func TierColor(t env.Tier) color.Attribute {
	switch t {
	case env.TierCaution:
		return color.FgYellow
	case env.TierCritical:
		return color.FgRed
	default:
		return color.FgGreen
	}
}

// 📝 formatEnvironmentLine formats one environment for display
func (l *Logger) formatEnvironmentLine(line EnvironmentLine) string {
	marker := " "
	if line.Current {
		marker = color.New(color.Bold, color.FgCyan).Sprint("▶")
	}

	tierColor := TierColor(line.Tier)
	name := color.New(tierColor).Sprint(fmt.Sprintf("%-*s", nameWidth, line.Name))

	state := ""
	if line.Missing {
		state = color.New(color.Faint).Sprint("(config missing)")
	}

	return fmt.Sprintf("%s%s %s %s %-*s %s",
		fmt.Sprintf("%*s", entryIndent, ""),
		marker,
		line.Tier.Glyph(),
		name,
		fileWidth, line.ConfigFile,
		state)
}

// 📝 LogEnvironment logs one environment entry
func (l *Logger) LogEnvironment(ctx context.Context, line EnvironmentLine) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatEnvironmentLine(line))

	l.zlog.Info().
		Str("environment", line.Name).
		Str("file", line.ConfigFile).
		Int("position", line.Position).
		Str("tier", line.Tier.String()).
		Bool("current", line.Current).
		Bool("missing", line.Missing).
		Msg("environment")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	nameText := color.New(color.Bold, color.FgCyan).Sprint("mcpenv")
	fmt.Fprintf(l.console, "\n%s %s\n\n", nameText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
