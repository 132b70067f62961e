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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Operation is a unit of work the runner can execute
type Operation interface {
	// Name identifies the operation in logs and errors
	Name() string
	// Execute runs the operation
	Execute(ctx context.Context) error
}

// 🔧 Func adapts a plain function into an Operation
type Func struct {
	OpName string
	Run    func(ctx context.Context) error
}

func (f Func) Name() string { return f.OpName }

func (f Func) Execute(ctx context.Context) error { return f.Run(ctx) }

// 🏃 Runner executes operations, sequentially by default
type Runner struct {
	async bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(async bool) *Runner {
	return &Runner{async: async}
}

// Run executes the operations. Async runners fan out and return the first
// failure; the remaining operations still run to completion.
func (r *Runner) Run(ctx context.Context, ops ...Operation) error {
	if r.async {
		return r.runAsync(ctx, ops)
	}
	return r.runSync(ctx, ops)
}

// 🔄 runSync runs operations one after another, stopping on failure
func (r *Runner) runSync(ctx context.Context, ops []Operation) error {
	for _, op := range ops {
		zerolog.Ctx(ctx).Debug().Str("operation", op.Name()).Msg("executing operation")
		if err := op.Execute(ctx); err != nil {
			return errors.Errorf("executing %s: %w", op.Name(), err)
		}
	}
	return nil
}

// ⚡ runAsync runs all operations concurrently
func (r *Runner) runAsync(ctx context.Context, ops []Operation) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, op := range ops {
		g.Go(func() error {
			zerolog.Ctx(gctx).Debug().Str("operation", op.Name()).Msg("executing operation")
			if err := op.Execute(gctx); err != nil {
				return errors.Errorf("executing %s: %w", op.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
