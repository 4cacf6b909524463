package experiment

import (
	"fmt"
	"sort"

	"github.com/joshdey/pydemic/internal/config"
	"github.com/joshdey/pydemic/internal/containment"
	"github.com/joshdey/pydemic/internal/epi"
	"github.com/joshdey/pydemic/internal/metrics"
	"github.com/joshdey/pydemic/internal/models"
)

// Builder assembles a runnable scenario from its configuration.
type Builder func(cfg *config.Config) (*Scenario, error)

type Registry struct {
	models map[string]Builder
}

func NewRegistry() *Registry {
	r := &Registry{models: make(map[string]Builder)}

	r.models["seir"] = buildSEIR
	r.models["neher"] = buildNeher
	r.models["extended"] = buildExtended

	return r
}

func (r *Registry) Build(cfg *config.Config) (*Scenario, error) {
	fn, ok := r.models[cfg.Model]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", cfg.Model)
	}
	return fn(cfg)
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(model string) []epi.Metric {
	switch model {
	case "seir":
		return []epi.Metric{
			metrics.NewPeak("infectious"),
			metrics.NewFinal("removed"),
			metrics.NewAttackRate(),
			metrics.NewConservationDrift(),
		}
	default:
		return []epi.Metric{
			metrics.NewPeak("infectious"),
			metrics.NewFinal("recovered"),
			metrics.NewFinal("dead"),
			metrics.NewAttackRate(),
			metrics.NewConservationDrift(),
		}
	}
}

func buildSEIR(cfg *config.Config) (*Scenario, error) {
	m := models.NewSEIR(models.SEIRParams{
		AvgInfectionRate: cfg.SEIR.AvgInfectionRate,
		InfectiousRate:   cfg.SEIR.InfectiousRate,
		RemovalRate:      cfg.SEIR.RemovalRate,
		Population:       cfg.Population.Total,
	})
	return &Scenario{
		Model: "seir",
		Sim:   m.Simulation,
		Y0:    m.InitialState(cfg.Population.Total, cfg.Population.Infectious),
		Span:  epi.TimeSpan{End: cfg.Days},
		Dt:    cfg.Dt,
	}, nil
}

func buildNeher(cfg *config.Config) (*Scenario, error) {
	start, err := cfg.Start()
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := cfg.End()
	if err != nil {
		return nil, err
	}

	if got := len(cfg.Population.AgeCounts); got != models.AgeGroups {
		return nil, fmt.Errorf("expected %d age bins, got %d", models.AgeGroups, got)
	}

	var cont func(float64) float64
	if len(cfg.Mitigation) > 0 {
		policy := containment.New(start, end)
		for _, ev := range cfg.Mitigation {
			ts, err := ev.Time()
			if err != nil {
				return nil, fmt.Errorf("invalid mitigation date %q: %w", ev.Date, err)
			}
			policy.AddSharpEvent(ts, ev.Factor)
		}
		cont = policy.Factor
	}

	m := models.NewNeher(models.NeherParams{
		Epidemiology: models.EpidemiologyParams{
			R0:                 cfg.Epidemiology.R0,
			IncubationTime:     cfg.Epidemiology.IncubationTime,
			InfectiousPeriod:   cfg.Epidemiology.InfectiousPeriod,
			LengthHospitalStay: cfg.Epidemiology.LengthHospitalStay,
			LengthICUStay:      cfg.Epidemiology.LengthICUStay,
			SeasonalForcing:    cfg.Epidemiology.SeasonalForcing,
			PeakMonth:          cfg.Epidemiology.PeakMonth,
		},
		Severity:      models.DefaultSeverity(),
		ImportsPerDay: cfg.Population.ImportsPerDay,
		Containment:   cont,
	})

	return &Scenario{
		Model: "neher",
		Sim:   m.Simulation,
		Y0:    m.InitialPopulation(cfg.Population.Total, epi.Array(cfg.Population.AgeCounts), cfg.Population.Infectious),
		Span: epi.TimeSpan{
			Start: containment.DaysSince2020(start),
			End:   containment.DaysSince2020(end),
		},
		Dt: cfg.Dt,
	}, nil
}

func buildExtended(cfg *config.Config) (*Scenario, error) {
	m := models.NewExtended(models.ExtendedParams{
		Population:       cfg.Population.Total,
		AvgInfectionRate: cfg.SEIR.AvgInfectionRate,
	})
	return &Scenario{
		Model: "extended",
		Sim:   m.Simulation,
		Y0:    m.InitialState(cfg.Population.Infectious),
		Span:  epi.TimeSpan{End: cfg.Days},
		Dt:    cfg.Dt,
	}, nil
}
