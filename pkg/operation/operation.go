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

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/mcpenv/pkg/config"
	"github.com/walteh/mcpenv/pkg/credential"
	"github.com/walteh/mcpenv/pkg/env"
	"github.com/walteh/mcpenv/pkg/state"
	"github.com/walteh/mcpenv/pkg/status"
)

// 🎯 Operator drives environment listing and switching for one workspace
type Operator interface {
	// List returns every defined environment with its render metadata
	List(ctx context.Context) ([]Entry, error)
	// Current resolves the active environment, correcting stale state
	Current(ctx context.Context) (Entry, error)
	// Select switches to the named environment
	Select(ctx context.Context, name string) (*Transition, error)
	// Cycle switches to the environment after the currently persisted one
	Cycle(ctx context.Context) (*Transition, error)
	// Inspect reports on-disk health across the configuration tree
	Inspect(ctx context.Context) (*Report, error)
}

// 📤 CredentialSender is the one-shot send hook a switch fires after a
// successful apply. credential.Refresher satisfies it.
type CredentialSender interface {
	RefreshNow(ctx context.Context) credential.Result
}

// 🔧 Options contains dependencies for the operator
type Options struct {
	// Loader provides environment definitions
	Loader *env.Loader
	// State persists the per-workspace current environment
	State *state.Store
	// Files performs all file operations
	Files status.FileManager
	// Paths locates the active and endpoint files
	Paths config.Paths
	// Sender is optional; no send is triggered when nil
	Sender CredentialSender
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
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
	return &operator{
		loader: opts.Loader,
		state:  opts.State,
		files:  opts.Files,
		paths:  opts.Paths,
		sender: opts.Sender,
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	loader *env.Loader
	state  *state.Store
	files  status.FileManager
	paths  config.Paths
	sender CredentialSender
}

// List, Current are implemented in list.go
// Select, Cycle are implemented in switch.go
// Inspect is implemented in inspect.go
