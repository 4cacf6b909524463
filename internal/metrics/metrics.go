// Package metrics provides run-level scalar summaries observed during a
// simulation.
package metrics

import (
	"math"

	"github.com/joshdey/pydemic/internal/epi"
)

// Peak tracks the maximum total occupancy of one compartment.
type Peak struct {
	compartment string
	max         float64
	when        float64
	samples     int
}

func NewPeak(compartment string) *Peak {
	return &Peak{compartment: compartment}
}

func (p *Peak) Name() string { return "peak_" + p.compartment }

func (p *Peak) Observe(t float64, y *epi.State) {
	v := y.Get(p.compartment).Sum()
	if p.samples == 0 || v > p.max {
		p.max = v
		p.when = t
	}
	p.samples++
}

func (p *Peak) Value() float64 { return p.max }

// Time reports when the peak was observed.
func (p *Peak) Time() float64 { return p.when }

func (p *Peak) Reset() {
	p.max = 0
	p.when = 0
	p.samples = 0
}

// Final reports the last observed total of one compartment.
type Final struct {
	compartment string
	last        float64
}

func NewFinal(compartment string) *Final {
	return &Final{compartment: compartment}
}

func (f *Final) Name() string { return "final_" + f.compartment }

func (f *Final) Observe(t float64, y *epi.State) {
	f.last = y.Get(f.compartment).Sum()
}

func (f *Final) Value() float64 { return f.last }

func (f *Final) Reset() { f.last = 0 }

// AttackRate is the fraction of the initially susceptible population that
// left the susceptible compartment by the end of the run.
type AttackRate struct {
	initial float64
	current float64
	samples int
}

func NewAttackRate() *AttackRate {
	return &AttackRate{}
}

func (a *AttackRate) Name() string { return "attack_rate" }

func (a *AttackRate) Observe(t float64, y *epi.State) {
	s := y.Get("susceptible")
	if s == nil {
		return
	}
	v := s.Sum()
	if a.samples == 0 {
		a.initial = v
	}
	a.current = v
	a.samples++
}

func (a *AttackRate) Value() float64 {
	if a.initial == 0 {
		return 0
	}
	return (a.initial - a.current) / a.initial
}

func (a *AttackRate) Reset() {
	a.initial = 0
	a.current = 0
	a.samples = 0
}

// ConservationDrift is the maximum relative deviation of the population
// total from its initial value; it should stay at floating-point noise.
type ConservationDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewConservationDrift() *ConservationDrift {
	return &ConservationDrift{}
}

func (c *ConservationDrift) Name() string { return "conservation_drift" }

func (c *ConservationDrift) Observe(t float64, y *epi.State) {
	total := y.Total()
	if c.samples == 0 {
		c.initial = total
	}
	c.samples++
	if c.initial != 0 {
		drift := math.Abs(total-c.initial) / math.Abs(c.initial)
		c.maxDrift = math.Max(c.maxDrift, drift)
	}
}

func (c *ConservationDrift) Value() float64 { return c.maxDrift }

func (c *ConservationDrift) Reset() {
	c.initial = 0
	c.maxDrift = 0
	c.samples = 0
}
