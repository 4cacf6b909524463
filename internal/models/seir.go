// Package models wires epidemiological parameters into reaction networks
// for the epi engine. Time is measured in days.
package models

import "github.com/joshdey/pydemic/internal/epi"

// SEIRParams parameterize the four-compartment
// susceptible/exposed/infectious/removed model. Population normalizes the
// infection pressure; when zero, the live population total is used instead.
type SEIRParams struct {
	AvgInfectionRate float64
	InfectiousRate   float64
	RemovalRate      float64
	Population       float64
}

func DefaultSEIRParams() SEIRParams {
	return SEIRParams{
		AvgInfectionRate: 10,
		InfectiousRate:   5,
		RemovalRate:      1,
	}
}

// SEIR is the classic compartment chain with mass-action infection.
type SEIR struct {
	*epi.Simulation
	Params SEIRParams
}

func NewSEIR(p SEIRParams) *SEIR {
	population := func(y *epi.State) float64 {
		if p.Population > 0 {
			return p.Population
		}
		return y.Total()
	}

	return &SEIR{
		Params: p,
		Simulation: epi.New(
			epi.NewReaction("susceptible", "exposed", func(t float64, y *epi.State) epi.Array {
				return y.Get("susceptible").Scaled(
					p.AvgInfectionRate * y.Get("infectious").Sum() / population(y))
			}),
			epi.NewReaction("exposed", "infectious", func(t float64, y *epi.State) epi.Array {
				return y.Get("exposed").Scaled(p.InfectiousRate)
			}),
			epi.NewReaction("infectious", "removed", func(t float64, y *epi.State) epi.Array {
				return y.Get("infectious").Scaled(p.RemovalRate)
			}),
		),
	}
}

// InitialState seeds a well-mixed population with the given number of
// initially infectious individuals.
func (m *SEIR) InitialState(population, infectious float64) map[string]epi.Array {
	return map[string]epi.Array{
		"susceptible": {population - infectious},
		"exposed":     {0},
		"infectious":  {infectious},
		"removed":     {0},
	}
}
