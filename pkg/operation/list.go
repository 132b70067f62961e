package operation

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/walteh/mcpenv/pkg/env"
)

// 📋 Entry pairs an environment with its render metadata
type Entry struct {
	Environment env.Environment
	Tier        env.Tier
	Current     bool
	Missing     bool // No config file exists for this environment
}

// List implements Operator.List
func (o *operator) List(ctx context.Context) ([]Entry, error) {
	col := o.loader.Load(ctx)
	current := o.resolveCurrent(ctx, col)

	entries := make([]Entry, 0, col.TotalCount)
	for _, e := range col.Environments {
		missing, err := o.configMissing(ctx, e)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Environment: e,
			Tier:        env.Classify(e.Position, col.TotalCount),
			Current:     e.DisplayName == current.DisplayName,
			Missing:     missing,
		})
	}
	return entries, nil
}

// Current implements Operator.Current
func (o *operator) Current(ctx context.Context) (Entry, error) {
	col := o.loader.Load(ctx)
	current := o.resolveCurrent(ctx, col)

	missing, err := o.configMissing(ctx, current)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Environment: current,
		Tier:        env.Classify(current.Position, col.TotalCount),
		Current:     true,
		Missing:     missing,
	}, nil
}

// resolveCurrent returns the persisted current environment, falling back to
// the first one when the value is unset or no longer defined. Corrections
// are persisted so later reads agree.
func (o *operator) resolveCurrent(ctx context.Context, col *env.Collection) env.Environment {
	logger := zerolog.Ctx(ctx)

	name, err := o.state.CurrentEnvironment(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("reading current environment")
	}
	if name != "" {
		if current, ok := col.Lookup(name); ok {
			return current
		}
		logger.Info().Str("stale", name).Msg("current environment no longer defined")
	}

	first, _ := col.First()
	if err := o.state.SetCurrentEnvironment(ctx, first.DisplayName); err != nil {
		logger.Warn().Err(err).Msg("persisting corrected current environment")
	}
	return first
}

func (o *operator) configMissing(ctx context.Context, e env.Environment) (bool, error) {
	exists, err := o.files.FileExists(ctx, o.loader.ConfigPath(e))
	if err != nil {
		return false, err
	}
	return !exists, nil
}
