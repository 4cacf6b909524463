package models

import "github.com/joshdey/pydemic/internal/epi"

// ExtendedParams parameterize the Erlang-staged demonstration model.
type ExtendedParams struct {
	Population       float64
	AvgInfectionRate float64
}

// Extended is a SEIR variant whose progression flows are Erlang processes,
// so sojourn times in the exposed and infectious compartments follow Gamma
// rather than exponential distributions.
type Extended struct {
	*epi.Simulation
	Params ExtendedParams
}

func NewExtended(p ExtendedParams) *Extended {
	return &Extended{
		Params: p,
		Simulation: epi.New(
			epi.NewReaction("susceptible", "exposed", func(t float64, y *epi.State) epi.Array {
				return y.Get("susceptible").Scaled(
					p.AvgInfectionRate * y.Get("infectious").Sum() / p.Population)
			}),
			epi.NewErlangProcess("exposed", "infectious", 3, epi.ConstScale(5)),
			epi.NewReaction("infectious", "critical", func(t float64, y *epi.State) epi.Array {
				return y.Get("infectious").Scaled(1.0 / 5)
			}),
			epi.NewErlangProcess("infectious", "recovered", 4, epi.ConstScale(5)),
			epi.NewErlangProcess("infectious", "dead", 3, epi.ConstScale(10)),
			epi.NewReaction("critical", "dead", func(t float64, y *epi.State) epi.Array {
				return y.Get("critical").Scaled(1.0 / 14)
			}),
			epi.NewReaction("critical", "recovered", func(t float64, y *epi.State) epi.Array {
				return y.Get("critical").Scaled(1.0 / 7)
			}),
		),
	}
}

// InitialState seeds a well-mixed population with the given number of
// initially infectious individuals.
func (m *Extended) InitialState(infectious float64) map[string]epi.Array {
	return map[string]epi.Array{
		"susceptible": {m.Params.Population - infectious},
		"exposed":     {0},
		"infectious":  {infectious},
		"recovered":   {0},
		"critical":    {0},
		"dead":        {0},
	}
}
