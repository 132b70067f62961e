package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/mcpenv/cmd/mcpenv/opts"
	"gitlab.com/tozd/go/errors"
)

// NewCurrentCmd creates a new current command
func NewCurrentCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the current environment for this workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "current").Logger().WithContext(ctx)

			entry, err := opts.Operator.Current(ctx)
			if err != nil {
				return errors.Errorf("resolving current environment: %w", err)
			}

			opts.Logger.LogEnvironment(ctx, environmentLine(entry))

			return nil
		},
	}

	return cmd
}
