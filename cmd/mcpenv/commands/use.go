package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/mcpenv/cmd/mcpenv/opts"
	"github.com/walteh/mcpenv/pkg/operation"
	"github.com/walteh/mcpenv/pkg/status"
)

// NewUseCmd creates a new use command
func NewUseCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <environment>",
		Short: "Switch the active configuration to a named environment",
		Long: `Use switches this workspace to the named environment. It will:
1. Look up the environment in the properties file
2. Record the selection in per-workspace state
3. Copy the environment config over the active configuration file
4. Copy the endpoint companion when one exists
5. Rotate the credential token when an endpoint is configured`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "use").Logger().WithContext(ctx)

			var tr *operation.Transition
			op := operation.Func{
				OpName: "switch",
				Run: func(ctx context.Context) error {
					var err error
					tr, err = opts.Operator.Select(ctx, args[0])
					return err
				},
			}

			if err := opts.Runner.Run(ctx, op); err != nil {
				if tr != nil && !tr.Applied {
					opts.Logger.Warning("selection was recorded, the config was not applied")
				}
				return err
			}

			opts.Reporter.LogChange(status.Change{
				Type:        status.ChangeSwitched,
				Subject:     tr.To.DisplayName,
				Description: fmt.Sprintf("%s tier, %s applied", tr.Tier, tr.To.ConfigFileName),
			})
			if tr.Sent {
				opts.Logger.Info("credential record sent")
			}

			return nil
		},
	}

	return cmd
}
