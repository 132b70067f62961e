package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/mcpenv/cmd/mcpenv/opts"
	"github.com/walteh/mcpenv/pkg/env"
	"gitlab.com/tozd/go/errors"
)

// NewValidateCmd creates a new validate command
func NewValidateCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the properties file",
		Long: `Validate checks the environment declarations without changing anything.
It will:
1. Read the properties file
2. Report malformed lines, duplicates, and unsafe file names
3. Warn about declared configs that are missing on disk`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "validate").Logger().WithContext(ctx)

			if err := opts.Loader.EnsureProperties(ctx); err != nil {
				return errors.Errorf("ensuring properties file: %w", err)
			}

			data, err := opts.Files.ReadFile(ctx, opts.Paths.PropertiesFile)
			if err != nil {
				return errors.Errorf("reading properties file: %w", err)
			}

			result := env.ValidateText(ctx, string(data))
			if result.IsValid() {
				col := env.Parse(ctx, string(data))
				check := env.ValidateCollection(ctx, col, opts.Paths.EnvironmentsDir)
				result.Errors = append(result.Errors, check.Errors...)
				result.Warnings = append(result.Warnings, check.Warnings...)
			}

			opts.Reporter.LogValidation(result, opts.Paths.PropertiesFile)

			if !result.IsValid() {
				return errors.Errorf("properties file has %d error(s)", len(result.Errors))
			}

			return nil
		},
	}

	return cmd
}
