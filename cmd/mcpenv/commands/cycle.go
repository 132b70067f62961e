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

// NewCycleCmd creates a new cycle command
func NewCycleCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Switch to the next environment in declaration order",
		Long: `Cycle advances this workspace to the environment declared after the
current one, wrapping from the last back to the first. A workspace
that never selected an environment starts at the first one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "cycle").Logger().WithContext(ctx)

			var tr *operation.Transition
			op := operation.Func{
				OpName: "cycle",
				Run: func(ctx context.Context) error {
					var err error
					tr, err = opts.Operator.Cycle(ctx)
					return err
				},
			}

			if err := opts.Runner.Run(ctx, op); err != nil {
				if tr != nil && !tr.Applied {
					opts.Logger.Warning("selection was recorded, the config was not applied")
				}
				return err
			}

			from := tr.From
			if from == "" {
				from = "(none)"
			}
			opts.Reporter.LogChange(status.Change{
				Type:        status.ChangeSwitched,
				Subject:     tr.To.DisplayName,
				Description: fmt.Sprintf("cycled from %s, %s tier", from, tr.Tier),
			})
			if tr.Sent {
				opts.Logger.Info("credential record sent")
			}

			return nil
		},
	}

	return cmd
}
