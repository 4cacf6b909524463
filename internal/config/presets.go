package config

var Presets = map[string]map[string]*Config{
	"seir": {
		"textbook": {
			Model: "seir", Dt: 0.01, Days: 10.0,
			Population: PopulationConfig{Total: 1000, Infectious: 1},
			SEIR:       SEIRConfig{AvgInfectionRate: 10, InfectiousRate: 5, RemovalRate: 1},
		},
		"slow_burn": {
			Model: "seir", Dt: 0.01, Days: 120.0,
			Population: PopulationConfig{Total: 1e6, Infectious: 10},
			SEIR:       SEIRConfig{AvgInfectionRate: 0.6, InfectiousRate: 0.2, RemovalRate: 0.3},
		},
	},
	"neher": {
		"unmitigated": {
			Model: "neher", Dt: 0.05, Days: 180.0, StartDate: "2020-03-01",
			Population: PopulationConfig{
				Total: 1e6, Infectious: 100, ImportsPerDay: 1.1,
				AgeCounts: []float64{1200, 1300, 1350, 1300, 1250, 1300, 1100, 800, 400},
			},
			Epidemiology: EpidemiologyConfig{
				R0: 3.0, IncubationTime: 5.0, InfectiousPeriod: 3.0,
				LengthHospitalStay: 4.0, LengthICUStay: 14.0,
				SeasonalForcing: 0.2,
			},
		},
		"lockdown": {
			Model: "neher", Dt: 0.05, Days: 180.0, StartDate: "2020-03-01",
			Population: PopulationConfig{
				Total: 1e6, Infectious: 100, ImportsPerDay: 1.1,
				AgeCounts: []float64{1200, 1300, 1350, 1300, 1250, 1300, 1100, 800, 400},
			},
			Epidemiology: EpidemiologyConfig{
				R0: 3.0, IncubationTime: 5.0, InfectiousPeriod: 3.0,
				LengthHospitalStay: 4.0, LengthICUStay: 14.0,
				SeasonalForcing: 0.2,
			},
			Mitigation: []MitigationEvent{
				{Date: "2020-03-15", Factor: 0.3},
				{Date: "2020-06-01", Factor: 0.7},
			},
		},
	},
	"extended": {
		"staged": {
			Model: "extended", Dt: 0.01, Days: 60.0,
			Population: PopulationConfig{Total: 10000, Infectious: 10},
			SEIR:       SEIRConfig{AvgInfectionRate: 2},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
