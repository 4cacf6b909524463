package models

import "github.com/joshdey/pydemic/internal/epi"

// AgeGroups is the default demographic resolution: decade bins
// 0-9 through 70-79 plus 80+.
const AgeGroups = 9

// EpidemiologyParams are the population-level disease parameters. Durations
// are in days.
type EpidemiologyParams struct {
	R0                 float64
	IncubationTime     float64
	InfectiousPeriod   float64
	LengthHospitalStay float64
	LengthICUStay      float64
	SeasonalForcing    float64
	PeakMonth          int
	OverflowSeverity   float64
}

// DefaultEpidemiology is a COVID-like parameterization.
func DefaultEpidemiology() EpidemiologyParams {
	return EpidemiologyParams{
		R0:                 3.0,
		IncubationTime:     5.0,
		InfectiousPeriod:   3.0,
		LengthHospitalStay: 4.0,
		LengthICUStay:      14.0,
		SeasonalForcing:    0.2,
		PeakMonth:          0,
		OverflowSeverity:   2.0,
	}
}

// SeverityParams hold per-age-group outcome percentages (0-100). Every
// array must have one entry per age group.
type SeverityParams struct {
	Isolated  epi.Array
	Confirmed epi.Array
	Severe    epi.Array
	Critical  epi.Array
	Fatal     epi.Array
}

// DefaultSeverity mirrors the published age-stratified severity table for
// the nine decade bins.
func DefaultSeverity() SeverityParams {
	return SeverityParams{
		Isolated:  epi.Array{0, 0, 0, 0, 0, 0, 0, 0, 0},
		Confirmed: epi.Array{5, 5, 10, 15, 20, 25, 30, 40, 50},
		Severe:    epi.Array{1, 3, 3, 3, 6, 10, 25, 35, 50},
		Critical:  epi.Array{5, 10, 10, 15, 20, 25, 35, 45, 55},
		Fatal:     epi.Array{30, 30, 30, 30, 30, 40, 40, 50, 50},
	}
}
