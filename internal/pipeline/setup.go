package pipeline

import (
	"smart-meter-exploration/internal/cluster"
	"smart-meter-exploration/internal/config"
	"smart-meter-exploration/internal/model"
	"smart-meter-exploration/internal/variant"
)

// FromConfig builds a runner over m with the configured engine parameters.
// The configured variants replace the defaults when any are declared.
func FromConfig(m *model.UsageMatrix, cfg *config.Config) (*Runner, error) {
	registry := variant.Defaults()
	if len(cfg.Variants) > 0 {
		var err error
		if registry, err = variant.FromConfig(cfg.Variants); err != nil {
			return nil, err
		}
	}
	engine := cluster.New(cluster.Params{
		Restarts: cfg.Clustering.Restarts,
		MaxIter:  cfg.Clustering.MaxIter,
		Seed:     cfg.Clustering.Seed,
	})
	return New(m, registry, engine), nil
}
