package config

import (
	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/handlers/registry"
	"github.com/arthur-debert/snipper/pkg/processor"
	"github.com/arthur-debert/snipper/pkg/types"
)

// Build turns the configuration into processor configurations. Handler
// names are resolved through the handler registry.
func (c *Config) Build() ([]*processor.Configuration, error) {
	if len(c.Configurations) == 0 {
		return nil, errors.New(errors.ErrConfigValid, "no configurations defined")
	}
	out := make([]*processor.Configuration, 0, len(c.Configurations))
	for i, cc := range c.Configurations {
		pc := processor.NewConfiguration().
			WithName(cc.Name).
			File(cc.File).
			Exclude(cc.Exclude...)

		hs := make([]types.Handler, 0, len(cc.Handlers))
		for j, hc := range cc.Handlers {
			h, err := registry.Create(hc.Name, hc.Passes, hc.Options)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigValid,
					"configuration %d (%s), handler %d (%s)", i+1, cc.Name, j+1, hc.Name).
					WithDetail("configuration", cc.Name).
					WithDetail("handler", hc.Name)
			}
			hs = append(hs, h)
		}
		pc.Handler(hs...)

		if err := pc.Validate(); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "configuration %d (%s)", i+1, cc.Name).
				WithDetail("configuration", cc.Name)
		}
		out = append(out, pc)
	}
	return out, nil
}

// ProcessorOptions returns the processor options the configuration sets
func (c *Config) ProcessorOptions() []processor.Option {
	opts := []processor.Option{processor.WithRoot(c.Root)}
	if c.IgnoreDirs != nil {
		opts = append(opts, processor.WithIgnoreDirs(c.IgnoreDirs...))
	}
	if c.Concurrency > 0 {
		opts = append(opts, processor.WithConcurrency(c.Concurrency))
	}
	return opts
}
