// Package containment models time-dependent contact-reduction policies as a
// piecewise-linear multiplier on the infection rate. Times are fractional
// days since 2020-01-01 UTC, the epoch shared with the scenario models.
package containment

import (
	"sort"
	"time"
)

var epoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// sharp events ramp over 30 seconds so the factor stays interpolable
const rampDays = 30.0 / 86400.0

// DaysSince2020 converts an instant to fractional days since the epoch.
func DaysSince2020(t time.Time) float64 {
	return t.Sub(epoch).Seconds() / 86400.0
}

// Model is a piecewise-linear containment factor over [start, end]. A fresh
// model is the identity factor 1.0 everywhere.
type Model struct {
	times   []float64
	factors []float64
}

func New(start, end time.Time) *Model {
	return &Model{
		times:   []float64{DaysSince2020(start), DaysSince2020(end)},
		factors: []float64{1, 1},
	}
}

// AddSharpEvent drops the factor to the given value at the event instant,
// ramping over 30 seconds, and holds it for every later knot.
func (m *Model) AddSharpEvent(at time.Time, factor float64) {
	ts := DaysSince2020(at)

	before := m.factors[0]
	for i, v := range m.times {
		if v < ts {
			before = m.factors[i]
		}
	}
	for i, v := range m.times {
		if v > ts {
			m.factors[i] = factor
		}
	}

	m.times = append(m.times, ts-rampDays, ts+rampDays)
	m.factors = append(m.factors, before, factor)
	m.sortKnots()
}

func (m *Model) sortKnots() {
	idx := make([]int, len(m.times))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return m.times[idx[a]] < m.times[idx[b]] })

	times := make([]float64, len(idx))
	factors := make([]float64, len(idx))
	for i, j := range idx {
		times[i] = m.times[j]
		factors[i] = m.factors[j]
	}
	m.times, m.factors = times, factors
}

// Factor linearly interpolates the containment multiplier at time t (days
// since the epoch), clamping outside the modeled span.
func (m *Model) Factor(t float64) float64 {
	if t <= m.times[0] {
		return m.factors[0]
	}
	last := len(m.times) - 1
	if t >= m.times[last] {
		return m.factors[last]
	}
	i := sort.SearchFloat64s(m.times, t)
	t0, t1 := m.times[i-1], m.times[i]
	f0, f1 := m.factors[i-1], m.factors[i]
	if t1 == t0 {
		return f1
	}
	return f0 + (f1-f0)*(t-t0)/(t1-t0)
}

// Knots exposes the knot instants and factors, for serialization and
// inspection.
func (m *Model) Knots() (times []float64, factors []float64) {
	times = make([]float64, len(m.times))
	factors = make([]float64, len(m.factors))
	copy(times, m.times)
	copy(factors, m.factors)
	return times, factors
}
