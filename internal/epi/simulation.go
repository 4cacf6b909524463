package epi

import (
	"context"
	"math"
)

// DefaultDt is the fixed integration step used when the caller passes 0.
const DefaultDt = 0.01

// TimeSpan bounds a run in model time units (days for the bundled models).
type TimeSpan struct {
	Start float64
	End   float64
}

// Metric aggregates a scalar over a run, observed once per step.
type Metric interface {
	Name() string
	Observe(t float64, y *State)
	Value() float64
	Reset()
}

// Observer is notified after every integration step.
type Observer interface {
	OnStep(t float64, y *State)
}

// Result is the dense trajectory of a run. Y maps every compartment name,
// visible and hidden, to its per-sample value arrays; buffers have length
// ceil((end-start)/dt)+2 with rows past the final step left zero.
type Result struct {
	Times   []float64
	Y       map[string][]Array
	Metrics map[string]float64
	Steps   int
}

// Simulation owns an immutable reaction network and advances full states
// over requested time spans.
type Simulation struct {
	net       *Network
	metrics   []Metric
	observers []Observer

	// per-step scratch, reused across steps
	incr    []Array
	claimed []Array
}

// New flattens the reaction specs into a network and wraps it in a
// simulation.
func New(specs ...ReactionSpec) *Simulation {
	return &Simulation{net: NewNetwork(specs...)}
}

func (s *Simulation) Network() *Network { return s.net }

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates from span.Start to span.End with fixed step dt (DefaultDt
// when 0), logging every compartment after every step. The loop is bounded
// by time comparison, so the final recorded time may overshoot span.End by
// less than dt.
func (s *Simulation) Run(ctx context.Context, span TimeSpan, y0 map[string]Array, dt float64) (*Result, error) {
	state, nSteps, err := s.prepare(span, y0, &dt)
	if err != nil {
		return nil, err
	}

	logger := NewStateLogger(state, nSteps)
	for _, m := range s.metrics {
		m.Reset()
	}

	t := span.Start
	steps := 0
	for t < span.End {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(t, state)
		}
		for _, o := range s.observers {
			o.OnStep(t, state)
		}

		s.step(t, state, dt)
		if err := logger.Extend(state); err != nil {
			return nil, err
		}
		t += dt
		steps++
	}

	times := make([]float64, nSteps)
	for k := range times {
		times[k] = span.Start + float64(k)*dt
	}

	result := &Result{
		Times:   times,
		Y:       logger.Trajectory(),
		Metrics: make(map[string]float64, len(s.metrics)),
		Steps:   steps,
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// RunWithCallback integrates without logging, handing each post-step state
// to cb. Returning false from cb stops the run early.
func (s *Simulation) RunWithCallback(ctx context.Context, span TimeSpan, y0 map[string]Array, dt float64, cb func(t float64, y *State) bool) error {
	state, _, err := s.prepare(span, y0, &dt)
	if err != nil {
		return err
	}

	t := span.Start
	for t < span.End {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.step(t, state, dt)
		t += dt
		if !cb(t, state) {
			return nil
		}
	}
	return nil
}

func (s *Simulation) prepare(span TimeSpan, y0 map[string]Array, dt *float64) (*State, int, error) {
	if *dt == 0 {
		*dt = DefaultDt
	}
	if *dt < 0 {
		return nil, 0, ErrInvalidStep
	}
	if span.End < span.Start {
		return nil, 0, ErrInvalidTimeSpan
	}
	state, err := s.net.InitialState(y0)
	if err != nil {
		return nil, 0, err
	}
	nSteps := int(math.Ceil((span.End-span.Start) / *dt)) + 2
	return state, nSteps, nil
}

func (s *Simulation) ensureScratch(shape int) {
	if len(s.incr) == len(s.net.reactions) && len(s.incr) > 0 && len(s.incr[0]) == shape {
		return
	}
	if len(s.net.reactions) > 0 {
		s.incr = make([]Array, len(s.net.reactions))
		for i := range s.incr {
			s.incr[i] = make(Array, shape)
		}
	}
	s.claimed = make([]Array, s.net.arena.size())
	for i := range s.claimed {
		s.claimed[i] = make(Array, shape)
	}
}

// step advances state by dt in place. All rates are evaluated against the
// pre-step snapshot; each reaction's increment is clamped by what its source
// compartment still holds after the increments already claimed this step, in
// network declaration order; then every increment is applied at once. The
// clamp caps outflow only, so a source can never go negative within a step,
// while total mass is conserved exactly.
func (s *Simulation) step(t float64, state *State, dt float64) {
	s.ensureScratch(state.shape)
	for _, cl := range s.claimed {
		cl.Fill(0)
	}

	for i, r := range s.net.reactions {
		rate := r.rate(t, state)
		src := state.vals[r.lhs]
		claimed := s.claimed[r.lhs]
		inc := s.incr[i]
		for j := range src {
			dY := dt * rate.at(j)
			if budget := src[j] - claimed[j]; dY > budget {
				dY = budget
			}
			inc[j] = dY
			claimed[j] += dY
		}
	}

	for i, r := range s.net.reactions {
		src := state.vals[r.lhs]
		dst := state.vals[r.rhs]
		for j, dY := range s.incr[i] {
			src[j] -= dY
			dst[j] += dY
		}
	}
}
