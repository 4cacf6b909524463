package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt         = 0.01
	DefaultDays       = 80.0
	DefaultPopulation = 1e6
	DefaultInfectious = 10.0
	DefaultImports    = 1.1
	DefaultStartDate  = "2020-03-01"

	dateLayout = "2006-01-02"
)

type Config struct {
	Model        string             `yaml:"model"`
	Dt           float64            `yaml:"dt"`
	Days         float64            `yaml:"days"`
	StartDate    string             `yaml:"start_date"`
	Population   PopulationConfig   `yaml:"population"`
	SEIR         SEIRConfig         `yaml:"seir"`
	Epidemiology EpidemiologyConfig `yaml:"epidemiology"`
	Mitigation   []MitigationEvent  `yaml:"mitigation"`
}

type PopulationConfig struct {
	Total         float64   `yaml:"total"`
	Infectious    float64   `yaml:"infectious"`
	ImportsPerDay float64   `yaml:"imports_per_day"`
	AgeCounts     []float64 `yaml:"age_counts"`
}

type SEIRConfig struct {
	AvgInfectionRate float64 `yaml:"avg_infection_rate"`
	InfectiousRate   float64 `yaml:"infectious_rate"`
	RemovalRate      float64 `yaml:"removal_rate"`
}

type EpidemiologyConfig struct {
	R0                 float64 `yaml:"r0"`
	IncubationTime     float64 `yaml:"incubation_time"`
	InfectiousPeriod   float64 `yaml:"infectious_period"`
	LengthHospitalStay float64 `yaml:"length_hospital_stay"`
	LengthICUStay      float64 `yaml:"length_icu_stay"`
	SeasonalForcing    float64 `yaml:"seasonal_forcing"`
	PeakMonth          int     `yaml:"peak_month"`
}

// MitigationEvent schedules a sharp containment event: from Date on, the
// transmission rate is multiplied by Factor.
type MitigationEvent struct {
	Date   string  `yaml:"date"`
	Factor float64 `yaml:"factor"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:     "seir",
		Dt:        DefaultDt,
		Days:      DefaultDays,
		StartDate: DefaultStartDate,
		Population: PopulationConfig{
			Total:         DefaultPopulation,
			Infectious:    DefaultInfectious,
			ImportsPerDay: DefaultImports,
			AgeCounts:     []float64{1200, 1300, 1350, 1300, 1250, 1300, 1100, 800, 400},
		},
		SEIR: SEIRConfig{
			AvgInfectionRate: 10,
			InfectiousRate:   5,
			RemovalRate:      1,
		},
		Epidemiology: EpidemiologyConfig{
			R0:                 3.0,
			IncubationTime:     5.0,
			InfectiousPeriod:   3.0,
			LengthHospitalStay: 4.0,
			LengthICUStay:      14.0,
			SeasonalForcing:    0.2,
			PeakMonth:          0,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Start parses the scenario's start date in UTC.
func (c *Config) Start() (time.Time, error) {
	return time.Parse(dateLayout, c.StartDate)
}

// End is the scenario's start date plus its duration.
func (c *Config) End() (time.Time, error) {
	start, err := c.Start()
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(c.Days * 24 * float64(time.Hour))), nil
}

func (e MitigationEvent) Time() (time.Time, error) {
	return time.Parse(dateLayout, e.Date)
}
