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

package operation

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/mcpenv/pkg/env"
)

// 🔀 Transition describes one attempted switch. A transition whose Applied
// flag is false was still recorded as the current environment.
type Transition struct {
	From      string          // Raw previous value, empty when none was persisted
	To        env.Environment // Target environment
	Tier      env.Tier        // Target's derived tier
	Applied   bool            // Config content reached the active file
	Companion bool            // Endpoint companion was copied alongside
	Sent      bool            // Credential record was posted after the apply
	Checksum  string          // Checksum of the applied content
}

// Select implements Operator.Select
func (o *operator) Select(ctx context.Context, name string) (*Transition, error) {
	col := o.loader.Load(ctx)

	target, ok := col.Lookup(name)
	if !ok {
		return nil, errors.Errorf("unknown environment %q (defined: %s)", name, strings.Join(col.Names(), ", "))
	}
	return o.transition(ctx, col, target)
}

// Cycle implements Operator.Cycle
func (o *operator) Cycle(ctx context.Context) (*Transition, error) {
	col := o.loader.Load(ctx)

	// The raw persisted value decides the starting index. A value that is
	// unset or no longer defined acts like index -1, so the cycle restarts
	// at the first environment.
	name, err := o.state.CurrentEnvironment(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("reading current environment")
	}
	index := -1
	if current, ok := col.Lookup(name); ok {
		index = current.Position
	}

	next := col.Environments[(index+1)%col.TotalCount]
	return o.transition(ctx, col, next)
}

// transition runs one switch: persist intent, apply the config, copy the
// companion, then fire the credential send. Steps run strictly in that
// order and an apply failure never undoes the persisted intent.
func (o *operator) transition(ctx context.Context, col *env.Collection, target env.Environment) (*Transition, error) {
	logger := zerolog.Ctx(ctx)

	previous, err := o.state.CurrentEnvironment(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("reading previous environment")
	}

	tr := &Transition{
		From: previous,
		To:   target,
		Tier: env.Classify(target.Position, col.TotalCount),
	}

	if err := o.state.SetCurrentEnvironment(ctx, target.DisplayName); err != nil {
		return nil, errors.Errorf("persisting environment selection: %w", err)
	}

	checksum, err := o.files.CopyFile(ctx, o.loader.ConfigPath(target), o.paths.ActiveFile)
	if err != nil {
		return tr, errors.Errorf("applying environment %q: %w", target.DisplayName, err)
	}
	tr.Applied = true
	tr.Checksum = checksum

	if err := o.state.SetAppliedChecksum(ctx, checksum); err != nil {
		logger.Warn().Err(err).Msg("recording applied checksum")
	}

	companion := o.loader.CompanionPath(target)
	exists, err := o.files.FileExists(ctx, companion)
	if err != nil {
		logger.Warn().Err(err).Str("path", companion).Msg("checking companion file")
	}
	if exists {
		if _, err := o.files.CopyFile(ctx, companion, o.paths.EndpointFile); err != nil {
			logger.Warn().Err(err).Str("path", companion).Msg("copying companion file")
		} else {
			tr.Companion = true
		}
	}

	if o.sender != nil && tr.Companion {
		tr.Sent = o.sender.RefreshNow(ctx).Sent
	}

	logger.Info().
		Str("from", previous).
		Str("to", target.DisplayName).
		Str("tier", tr.Tier.String()).
		Bool("companion", tr.Companion).
		Msg("switched environment")

	return tr, nil
}
