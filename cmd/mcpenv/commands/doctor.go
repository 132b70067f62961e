package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/mcpenv/cmd/mcpenv/opts"
	"github.com/walteh/mcpenv/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewDoctorCmd creates a new doctor command
func NewDoctorCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Inspect the config tree for problems",
		Long: `Doctor inspects the whole config tree and reports what it finds. It will:
1. Check every declared environment for a missing config file
2. List orphaned config files nothing declares
3. Compare the active file against the last applied content
4. Report whether a credential endpoint is configured`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "doctor").Logger().WithContext(ctx)

			report, err := opts.Operator.Inspect(ctx)
			if err != nil {
				return errors.Errorf("inspecting config tree: %w", err)
			}

			opts.Logger.Infof("config root: %s", opts.Paths.Root)
			for _, entry := range report.Entries {
				if entry.Current {
					opts.Logger.LogEnvironment(ctx, environmentLine(entry))
				}
			}
			opts.Logger.LogNewline()

			opts.Logger.Header("environment configs")
			for _, entry := range report.Entries {
				if entry.Missing {
					opts.Reporter.LogFileState(status.StateMissing, entry.Environment.DisplayName, entry.Environment.ConfigFileName+" not found")
					continue
				}
				opts.Reporter.LogFileState(status.StateOK, entry.Environment.DisplayName, entry.Environment.ConfigFileName)
			}
			for _, orphan := range report.Orphans {
				opts.Reporter.LogFileState(status.StateOrphaned, orphan, "not declared in the properties file")
			}

			opts.Logger.LogNewline()
			opts.Logger.Header("active configuration")
			switch {
			case report.ActiveMissing:
				opts.Reporter.LogFileState(status.StateMissing, opts.Paths.ActiveFile, "no environment applied yet")
			case report.ActiveDrifted:
				opts.Reporter.LogFileState(status.StateDrifted, opts.Paths.ActiveFile, "modified since it was applied")
			default:
				opts.Reporter.LogFileState(status.StateOK, opts.Paths.ActiveFile, "matches the applied environment")
			}

			if report.Endpoint {
				opts.Reporter.LogFileState(status.StateOK, opts.Paths.EndpointFile, "credential endpoint configured")
			} else {
				opts.Reporter.LogFileState(status.StateUnknown, opts.Paths.EndpointFile, "no credential endpoint, refresh sends are skipped")
			}

			return nil
		},
	}

	return cmd
}
