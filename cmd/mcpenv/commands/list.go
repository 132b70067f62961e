package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/mcpenv/cmd/mcpenv/opts"
	"github.com/walteh/mcpenv/pkg/log"
	"github.com/walteh/mcpenv/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewListCmd creates a new list command
func NewListCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List defined environments",
		Long: `List shows every environment declared in the properties file, in
declaration order. It will:
1. Load the properties file (creating the default one if missing)
2. Resolve the current environment for this workspace
3. Print each environment with its tier and config file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "list").Logger().WithContext(ctx)

			entries, err := opts.Operator.List(ctx)
			if err != nil {
				return errors.Errorf("listing environments: %w", err)
			}

			opts.Logger.Header("environments")
			for _, entry := range entries {
				opts.Logger.LogEnvironment(ctx, environmentLine(entry))
			}
			opts.Logger.LogNewline()

			return nil
		},
	}

	return cmd
}

func environmentLine(entry operation.Entry) log.EnvironmentLine {
	return log.EnvironmentLine{
		Name:       entry.Environment.DisplayName,
		ConfigFile: entry.Environment.ConfigFileName,
		Position:   entry.Environment.Position,
		Tier:       entry.Tier,
		Current:    entry.Current,
		Missing:    entry.Missing,
	}
}
