package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/mcpenv/cmd/mcpenv/opts"
	"github.com/walteh/mcpenv/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewInitCmd creates a new init command
func NewInitCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default properties file and stub configs",
		Long: `Init prepares the config root for first use. It will:
1. Write the default properties file when none exists
2. Create a stub JSON config for every declared environment
3. Leave existing files untouched`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "init").Logger().WithContext(ctx)

			if err := opts.Loader.EnsureProperties(ctx); err != nil {
				return errors.Errorf("ensuring properties file: %w", err)
			}

			col := opts.Loader.Load(ctx)
			created, err := opts.Loader.EnsureEnvironmentFiles(ctx, col)
			if err != nil {
				return errors.Errorf("creating environment files: %w", err)
			}

			for _, name := range created {
				opts.Reporter.LogChange(status.Change{
					Type:        status.ChangeCreated,
					Subject:     name,
					Description: "stub config created",
				})
			}
			if len(created) == 0 {
				opts.Reporter.LogChange(status.Change{
					Type:        status.ChangeSkipped,
					Subject:     opts.Paths.EnvironmentsDir,
					Description: "all environment configs already exist",
				})
			}

			return nil
		},
	}

	return cmd
}
