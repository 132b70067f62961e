package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/mcpenv/cmd/mcpenv/opts"
	"github.com/walteh/mcpenv/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewMigrateCmd creates a new migrate command
func NewMigrateCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Upgrade a legacy fixed-environment install",
		Long: `Migrate upgrades installs that predate the properties file. It will:
1. Look for the legacy fixed config files (local, dev, prod)
2. Write a properties file declaring those three environments
3. Remap a persisted legacy short name to its display name`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "migrate").Logger().WithContext(ctx)

			outcome, err := opts.Migrator.Run(ctx)
			if err != nil {
				return errors.Errorf("migrating legacy layout: %w", err)
			}

			if outcome.CurrentRemapped {
				opts.Logger.Infof("remapped current environment %q to %q", outcome.RemappedFrom, outcome.RemappedTo)
			}

			if !outcome.LegacyDetected {
				opts.Logger.Info("no legacy environment files found")
				return nil
			}

			if outcome.PropertiesCreated {
				opts.Reporter.LogChange(status.Change{
					Type:        status.ChangeCreated,
					Subject:     opts.Paths.PropertiesFile,
					Description: "declares the three legacy environments",
				})
			} else {
				opts.Reporter.LogChange(status.Change{
					Type:        status.ChangeSkipped,
					Subject:     opts.Paths.PropertiesFile,
					Description: "properties file already present",
				})
			}

			return nil
		},
	}

	return cmd
}
