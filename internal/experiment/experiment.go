// Package experiment assembles configured scenarios into runnable
// simulations.
package experiment

import (
	"context"
	"fmt"

	"github.com/joshdey/pydemic/internal/config"
	"github.com/joshdey/pydemic/internal/epi"
)

// Scenario is a fully assembled run: a simulation, its seeded initial
// state, and the time span to integrate over.
type Scenario struct {
	Model string
	Sim   *epi.Simulation
	Y0    map[string]epi.Array
	Span  epi.TimeSpan
	Dt    float64
}

type Experiment struct {
	cfg      *config.Config
	scenario *Scenario
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds the scenario and attaches the registry's default metrics.
func (e *Experiment) Setup(r *Registry) error {
	scenario, err := r.Build(e.cfg)
	if err != nil {
		return err
	}
	for _, m := range r.DefaultMetrics(scenario.Model) {
		scenario.Sim.AddMetric(m)
	}
	e.scenario = scenario
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*epi.Result, error) {
	if e.scenario == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.scenario.Sim.Run(ctx, e.scenario.Span, e.scenario.Y0, e.scenario.Dt)
}

// Scenario returns the assembled scenario for adding observers.
func (e *Experiment) Scenario() *Scenario {
	return e.scenario
}
