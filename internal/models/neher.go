package models

import (
	"context"
	"math"
	"time"

	"github.com/joshdey/pydemic/internal/containment"
	"github.com/joshdey/pydemic/internal/epi"
)

// NeherParams assemble the age-structured COVID scenario model. Severity
// arrays must have one entry per age group. Containment is an external
// forcing multiplier on the infection rate; nil means no containment.
type NeherParams struct {
	Epidemiology  EpidemiologyParams
	Severity      SeverityParams
	ImportsPerDay float64
	AgeGroups     int
	Containment   func(t float64) float64
}

// Neher runs nine reactions over the compartments susceptible, exposed,
// infectious, hospitalized, critical, recovered and dead, each resolved per
// age group. Infection pressure is normalized by the live population total,
// and modulated by seasonal forcing and the containment factor.
type Neher struct {
	*epi.Simulation
	Params NeherParams
}

func NewNeher(p NeherParams) *Neher {
	if p.AgeGroups == 0 {
		p.AgeGroups = AgeGroups
	}
	cont := p.Containment
	if cont == nil {
		cont = func(t float64) float64 { return 1 }
	}

	epid := p.Epidemiology
	sev := p.Severity
	n := p.AgeGroups

	// translate severity percentages into per-age branching rates
	dHospital := make(epi.Array, n)
	isolatedFrac := make(epi.Array, n)
	infectiousHospitalizedRate := make(epi.Array, n)
	infectiousRecoveredRate := make(epi.Array, n)
	hospitalizedDischargedRate := make(epi.Array, n)
	hospitalizedCriticalRate := make(epi.Array, n)
	criticalHospitalizedRate := make(epi.Array, n)
	criticalDeadRate := make(epi.Array, n)
	for j := 0; j < n; j++ {
		dHospital[j] = sev.Severe[j] / 100 * sev.Confirmed[j] / 100
		dCritical := sev.Critical[j] / 100
		dFatal := sev.Fatal[j] / 100
		isolatedFrac[j] = sev.Isolated[j] / 100

		infectiousHospitalizedRate[j] = dHospital[j] / epid.InfectiousPeriod
		infectiousRecoveredRate[j] = (1 - dHospital[j]) / epid.InfectiousPeriod
		hospitalizedDischargedRate[j] = (1 - dCritical) / epid.LengthHospitalStay
		hospitalizedCriticalRate[j] = dCritical / epid.LengthHospitalStay
		criticalHospitalizedRate[j] = (1 - dFatal) / epid.LengthICUStay
		criticalDeadRate[j] = dFatal / epid.LengthICUStay
	}
	exposedInfectiousRate := 1 / epid.IncubationTime

	avgInfectionRate := epid.R0 / epid.InfectiousPeriod
	peakDay := 30*float64(epid.PeakMonth) + 14.75
	beta := func(t float64) float64 {
		phase := 2 * math.Pi * (t - peakDay) / 365
		return avgInfectionRate * (1 + epid.SeasonalForcing*math.Cos(phase))
	}

	scaledBy := func(name string, k epi.Array) epi.RateFunc {
		return func(t float64, y *epi.State) epi.Array {
			src := y.Get(name)
			out := make(epi.Array, len(src))
			for j := range src {
				out[j] = src[j] * k[j]
			}
			return out
		}
	}

	return &Neher{
		Params: p,
		Simulation: epi.New(
			epi.NewReaction("susceptible", "exposed", func(t float64, y *epi.State) epi.Array {
				s := y.Get("susceptible")
				pressure := cont(t) * beta(t) * y.Get("infectious").Sum() / y.Total()
				out := make(epi.Array, len(s))
				for j := range s {
					out[j] = (1 - isolatedFrac[j]) * pressure * s[j]
				}
				return out
			}),
			epi.NewReaction("susceptible", "exposed", func(t float64, y *epi.State) epi.Array {
				return epi.Scalar(p.ImportsPerDay / float64(n))
			}),
			epi.NewReaction("exposed", "infectious", func(t float64, y *epi.State) epi.Array {
				return y.Get("exposed").Scaled(exposedInfectiousRate)
			}),
			epi.NewReaction("infectious", "hospitalized", scaledBy("infectious", infectiousHospitalizedRate)),
			epi.NewReaction("infectious", "recovered", scaledBy("infectious", infectiousRecoveredRate)),
			epi.NewReaction("hospitalized", "recovered", scaledBy("hospitalized", hospitalizedDischargedRate)),
			epi.NewReaction("hospitalized", "critical", scaledBy("hospitalized", hospitalizedCriticalRate)),
			epi.NewReaction("critical", "hospitalized", scaledBy("critical", criticalHospitalizedRate)),
			epi.NewReaction("critical", "dead", scaledBy("critical", criticalDeadRate)),
		),
	}
}

// RunDates integrates between calendar dates, converted to day offsets from
// 2020-01-01.
func (m *Neher) RunDates(ctx context.Context, start, end time.Time, y0 map[string]epi.Array, dt float64) (*epi.Result, error) {
	span := epi.TimeSpan{
		Start: containment.DaysSince2020(start),
		End:   containment.DaysSince2020(end),
	}
	return m.Run(ctx, span, y0, dt)
}

// InitialPopulation distributes populationServed across the age bins and
// seeds suspected cases into the middle bin, split 70/30 between exposed
// and infectious.
func (m *Neher) InitialPopulation(populationServed float64, ageCounts epi.Array, suspectedCases float64) map[string]epi.Array {
	n := len(ageCounts)
	total := ageCounts.Sum()

	susceptible := make(epi.Array, n)
	for j := range ageCounts {
		susceptible[j] = math.Round(ageCounts[j] * populationServed / total)
	}

	y0 := map[string]epi.Array{
		"susceptible":  susceptible,
		"exposed":      epi.Zeros(n),
		"infectious":   epi.Zeros(n),
		"recovered":    epi.Zeros(n),
		"hospitalized": epi.Zeros(n),
		"critical":     epi.Zeros(n),
		"dead":         epi.Zeros(n),
	}

	mid := n/2 + 1
	y0["susceptible"][mid] -= suspectedCases
	y0["exposed"][mid] += suspectedCases * 0.7
	y0["infectious"][mid] += suspectedCases * 0.3
	return y0
}
