package opts

import (
	"github.com/walteh/mcpenv/pkg/config"
	"github.com/walteh/mcpenv/pkg/credential"
	"github.com/walteh/mcpenv/pkg/env"
	"github.com/walteh/mcpenv/pkg/log"
	"github.com/walteh/mcpenv/pkg/migrate"
	"github.com/walteh/mcpenv/pkg/operation"
	"github.com/walteh/mcpenv/pkg/status"
)

// RootOpts contains shared dependencies used by all commands.
// It is populated after flag parsing, before any RunE runs.
type RootOpts struct {
	Paths     config.Paths
	Settings  *config.Settings
	Files     status.FileManager
	Loader    *env.Loader
	Operator  operation.Operator
	Refresher *credential.Refresher
	Migrator  *migrate.Migrator
	Runner    *operation.Runner
	Reporter  *status.Reporter
	Logger    *log.Logger
}
