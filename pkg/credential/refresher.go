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

package credential

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/mcpenv/pkg/config"
	"github.com/walteh/mcpenv/pkg/env"
	"github.com/walteh/mcpenv/pkg/state"
	"github.com/walteh/mcpenv/pkg/status"
	"github.com/walteh/mcpenv/pkg/text"
)

// TokenPlaceholder is the literal every environment config may embed where
// a fresh token should be injected.
const TokenPlaceholder = "{{MCP_TOKEN}}"

// ⚙️ Options configures a Refresher.
type Options struct {
	Loader   *env.Loader        // Required: source of environment definitions
	State    *state.Store       // Required: per-workspace current environment
	Files    status.FileManager // Required: file capability
	Paths    config.Paths       // Required: active file and endpoint locations
	Interval time.Duration      // Zero means config.DefaultRefreshInterval
	Client   *Client            // Optional: a default client is built when nil
}

// 🔁 Refresher rotates tokens into the active configuration and posts
// credential records on a fixed interval. At most one loop runs at a time.
type Refresher struct {
	mu       sync.Mutex
	loader   *env.Loader
	state    *state.Store
	files    status.FileManager
	paths    config.Paths
	interval time.Duration
	client   *Client
	replacer text.TextReplacer
	handle   *Handle
}

// 🏭 New creates a refresher, validating its options.
func New(opts Options) (*Refresher, error) {
	if opts.Loader == nil {
		return nil, errors.Errorf("loader is required")
	}
	if opts.State == nil {
		return nil, errors.Errorf("state store is required")
	}
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}
	if opts.Paths.ActiveFile == "" || opts.Paths.EndpointFile == "" {
		return nil, errors.Errorf("paths are required")
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = config.DefaultRefreshInterval
	}
	client := opts.Client
	if client == nil {
		client = NewClient(ClientOptions{})
	}

	return &Refresher{
		loader:   opts.Loader,
		state:    opts.State,
		files:    opts.Files,
		paths:    opts.Paths,
		interval: interval,
		client:   client,
		replacer: text.NewSimpleReplacer(),
	}, nil
}

// 📊 Result reports what one refresh run did. A run that skips the send is
// still a successful run.
type Result struct {
	Environment  string // Display name the run resolved to
	TokenRotated bool   // Placeholder was found and replaced
	Sent         bool   // Credential record reached the endpoint
	Reason       string // Why nothing was sent, empty when Sent is true
}

// 🚀 Start launches the refresh loop with an immediate first run. Calling
// Start while a loop is live returns the existing handle instead of
// creating a second one.
func (r *Refresher) Start(ctx context.Context) *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.handle != nil {
		zerolog.Ctx(ctx).Info().Msg("credential refresh already running")
		return r.handle
	}

	runCtx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}
	r.handle = h

	go r.run(runCtx, h)

	zerolog.Ctx(ctx).Info().Dur("interval", r.interval).Msg("credential refresh started")
	return h
}

// Running reports whether a refresh loop is currently live.
func (r *Refresher) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handle != nil
}

func (r *Refresher) run(ctx context.Context, h *Handle) {
	defer close(h.done)
	defer r.release(h)

	r.RefreshNow(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.RefreshNow(ctx)
		}
	}
}

func (r *Refresher) release(h *Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handle == h {
		r.handle = nil
	}
}

// 🎯 RefreshNow performs one refresh run. It is best effort by contract:
// every failure is logged and swallowed, the returned Result only describes
// what happened. Safe to call while the loop is running; both writers
// replace files whole.
func (r *Refresher) RefreshNow(ctx context.Context) Result {
	logger := zerolog.Ctx(ctx)

	col := r.loader.Load(ctx)
	current := r.resolveCurrent(ctx, col)

	result := Result{Environment: current.DisplayName}
	token := uuid.New().String()

	rotated, err := r.applyToken(ctx, current, token)
	if err != nil {
		logger.Warn().Err(err).Str("environment", current.DisplayName).Msg("token substitution failed")
	}
	result.TokenRotated = rotated

	url, reason := r.endpointURL(ctx)
	if url == "" {
		result.Reason = reason
		logger.Debug().Str("reason", reason).Msg("credential send skipped")
		return result
	}

	record := Record{
		Token:     token,
		UserInfo:  CollectUserInfo(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err := r.client.Send(ctx, url, record); err != nil {
		result.Reason = "send failed"
		logger.Warn().Err(err).Str("url", url).Msg("credential send failed")
		return result
	}

	result.Sent = true
	logger.Debug().
		Str("environment", current.DisplayName).
		Bool("rotated", rotated).
		Msg("credential record sent")

	return result
}

// resolveCurrent returns the persisted current environment, falling back to
// the first one when the value is unset or no longer defined. The
// correction is persisted so later reads agree.
func (r *Refresher) resolveCurrent(ctx context.Context, col *env.Collection) env.Environment {
	logger := zerolog.Ctx(ctx)

	name, err := r.state.CurrentEnvironment(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("reading current environment")
	}
	if name != "" {
		if current, ok := col.Lookup(name); ok {
			return current
		}
		logger.Info().Str("stale", name).Msg("current environment no longer defined")
	}

	first, _ := col.First()
	if err := r.state.SetCurrentEnvironment(ctx, first.DisplayName); err != nil {
		logger.Warn().Err(err).Msg("persisting corrected current environment")
	}
	return first
}

// applyToken substitutes the placeholder from the environment's source file
// into the active configuration. A source without the placeholder is left
// alone and the active file is not rewritten.
func (r *Refresher) applyToken(ctx context.Context, current env.Environment, token string) (bool, error) {
	source := r.loader.ConfigPath(current)
	content, err := r.files.ReadFile(ctx, source)
	if err != nil {
		return false, errors.Errorf("reading environment config: %w", err)
	}

	res, err := r.replacer.ReplaceText(ctx, bytes.NewReader(content), []text.ReplacementRule{
		{FromText: TokenPlaceholder, ToText: token},
	})
	if err != nil {
		return false, errors.Errorf("substituting token: %w", err)
	}
	if !res.WasModified {
		return false, nil
	}

	if err := r.files.WriteFileAtomic(ctx, r.paths.ActiveFile, res.ModifiedContent); err != nil {
		return false, errors.Errorf("writing active configuration: %w", err)
	}

	// The active file changed, so the recorded checksum has to follow or
	// drift detection would flag every rotation.
	if err := r.state.SetAppliedChecksum(ctx, status.Checksum(res.ModifiedContent)); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("recording applied checksum")
	}
	return true, nil
}

// endpointURL reads the global endpoint file. The second return value
// explains an empty URL.
func (r *Refresher) endpointURL(ctx context.Context) (string, string) {
	exists, err := r.files.FileExists(ctx, r.paths.EndpointFile)
	if err != nil || !exists {
		return "", "endpoint not configured"
	}

	data, err := r.files.ReadFile(ctx, r.paths.EndpointFile)
	if err != nil {
		return "", "endpoint not readable"
	}

	url := strings.TrimSpace(string(data))
	if url == "" {
		return "", "endpoint file is empty"
	}
	return url, ""
}

// 🛑 Handle owns one running refresh loop. Start hands it out, Stop ends
// the loop and waits for it to exit. Stopping twice is a no-op.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	stop   sync.Once
}

// Stop cancels the loop and blocks until it has exited.
func (h *Handle) Stop() {
	h.stop.Do(func() {
		h.cancel()
		<-h.done
	})
}
