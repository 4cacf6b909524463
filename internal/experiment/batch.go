package experiment

import (
	"context"
	"sync"

	"github.com/joshdey/pydemic/internal/config"
	"github.com/joshdey/pydemic/internal/epi"
)

// Sweep runs a set of scenario variants concurrently. Each variant gets its
// own simulation instance, so runs never share integrator scratch state.
type Sweep struct {
	registry *Registry
	configs  []*config.Config
}

func NewSweep(r *Registry, configs []*config.Config) *Sweep {
	return &Sweep{registry: r, configs: configs}
}

func (s *Sweep) Run(ctx context.Context) ([]*epi.Result, error) {
	results := make([]*epi.Result, len(s.configs))
	errs := make([]error, len(s.configs))

	var wg sync.WaitGroup
	for i, cfg := range s.configs {
		wg.Add(1)
		go func(idx int, cfg *config.Config) {
			defer wg.Done()

			exp := New(cfg)
			if err := exp.Setup(s.registry); err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = exp.Run(ctx)
		}(i, cfg)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
