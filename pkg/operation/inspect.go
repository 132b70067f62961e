package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/mcpenv/pkg/env"
	"github.com/walteh/mcpenv/pkg/status"
)

// 🩺 Report summarizes on-disk health across the configuration tree
type Report struct {
	Entries       []Entry  // Every environment with its metadata
	Orphans       []string // Managed-looking files no environment references
	ActiveMissing bool     // No active configuration file exists yet
	ActiveDrifted bool     // Active file no longer matches the recorded checksum
	Endpoint      bool     // A global endpoint URL is configured
}

// Inspect implements Operator.Inspect
func (o *operator) Inspect(ctx context.Context) (*Report, error) {
	col := o.loader.Load(ctx)
	current := o.resolveCurrent(ctx, col)

	report := &Report{Entries: make([]Entry, col.TotalCount)}

	g, gctx := errgroup.WithContext(ctx)
	for i, e := range col.Environments {
		g.Go(func() error {
			missing, err := o.configMissing(gctx, e)
			if err != nil {
				return err
			}
			report.Entries[i] = Entry{
				Environment: e,
				Tier:        env.Classify(e.Position, col.TotalCount),
				Current:     e.DisplayName == current.DisplayName,
				Missing:     missing,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Errorf("checking environment files: %w", err)
	}

	orphans, err := env.ScanOrphans(ctx, col, o.loader.EnvironmentsDir())
	if err != nil {
		return nil, errors.Errorf("scanning for orphans: %w", err)
	}
	report.Orphans = orphans

	activeExists, err := o.files.FileExists(ctx, o.paths.ActiveFile)
	if err != nil {
		return nil, errors.Errorf("checking active file: %w", err)
	}
	report.ActiveMissing = !activeExists

	if activeExists {
		recorded, err := o.state.AppliedChecksum(ctx)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("reading applied checksum")
		} else if recorded != "" {
			content, err := o.files.ReadFile(ctx, o.paths.ActiveFile)
			if err != nil {
				return nil, errors.Errorf("reading active file: %w", err)
			}
			report.ActiveDrifted = status.Checksum(content) != recorded
		}
	}

	endpointExists, err := o.files.FileExists(ctx, o.paths.EndpointFile)
	if err != nil {
		return nil, errors.Errorf("checking endpoint file: %w", err)
	}
	report.Endpoint = endpointExists

	return report, nil
}
