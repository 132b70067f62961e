package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/mcpenv/cmd/mcpenv/opts"
	"github.com/walteh/mcpenv/pkg/credential"
)

// NewRefreshCmd creates a new refresh command
func NewRefreshCmd(opts *opts.RootOpts) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Rotate the credential token in the active configuration",
		Long: `Refresh runs one credential pass: it substitutes a fresh token into the
active configuration and posts a credential record to the configured
endpoint, when one exists. With --watch it keeps refreshing on the
configured interval until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "refresh").Logger().WithContext(ctx)

			if watch {
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()

				handle := opts.Refresher.Start(ctx)
				opts.Logger.Infof("refreshing every %s, interrupt to stop", opts.Settings.RefreshEvery())

				<-ctx.Done()
				handle.Stop()

				opts.Logger.LogNewline()
				opts.Logger.Info("refresh loop stopped")
				return nil
			}

			renderRefresh(opts, opts.Refresher.RefreshNow(ctx))
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "keep refreshing on the configured interval")

	return cmd
}

func renderRefresh(opts *opts.RootOpts, res credential.Result) {
	if res.Environment == "" {
		opts.Logger.Warning("no environments defined, nothing to refresh")
		return
	}

	if res.TokenRotated {
		opts.Logger.Successf("rotated token for %s", res.Environment)
	} else {
		opts.Logger.Infof("no token placeholder in the %s config", res.Environment)
	}

	if res.Sent {
		opts.Logger.Success("credential record sent")
	} else {
		opts.Logger.Infof("record not sent: %s", res.Reason)
	}
}
