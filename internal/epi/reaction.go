package epi

import "fmt"

// RateFunc evaluates the instantaneous flow of a reaction. It may read any
// compartment in the state, not only the ones it transitions, and must
// return a non-negative Array broadcastable to the compartment shape.
type RateFunc func(t float64, y *State) Array

// ScaleFunc evaluates the (possibly time- and state-dependent) mean sojourn
// time of an Erlang process.
type ScaleFunc func(t float64, y *State) float64

// ConstScale wraps a fixed sojourn time as a ScaleFunc.
func ConstScale(v float64) ScaleFunc {
	return func(t float64, y *State) float64 { return v }
}

// ReactionSpec is the closed set of declarable transitions. Each variant
// expands into one or more elementary reactions; the set is sealed by the
// unexported methods.
type ReactionSpec interface {
	endpoints() (lhs, rhs string)
	expand(a *arena) []elementary
}

// Reaction moves mass from Lhs to Rhs at the rate given by Rate. It expands
// to exactly one elementary reaction.
type Reaction struct {
	Lhs  string
	Rhs  string
	Rate RateFunc
}

func NewReaction(lhs, rhs string, rate RateFunc) Reaction {
	return Reaction{Lhs: lhs, Rhs: rhs, Rate: rate}
}

func (r Reaction) endpoints() (string, string) { return r.Lhs, r.Rhs }

func (r Reaction) expand(a *arena) []elementary {
	return []elementary{{
		lhs:  a.intern(r.Lhs),
		rhs:  a.intern(r.Rhs),
		rate: r.Rate,
	}}
}

// ErlangProcess moves mass from Lhs to Rhs with a Gamma(Shape, Scale)
// distributed sojourn time, realized as Shape sequential exponential stages
// each with rate Shape/Scale. The Shape-1 intermediate stages become hidden
// compartments. Shape 1 is equivalent to a plain Reaction with rate
// y[lhs]/Scale.
type ErlangProcess struct {
	Lhs   string
	Rhs   string
	Shape int
	Scale ScaleFunc
}

func NewErlangProcess(lhs, rhs string, shape int, scale ScaleFunc) ErlangProcess {
	return ErlangProcess{Lhs: lhs, Rhs: rhs, Shape: shape, Scale: scale}
}

func (p ErlangProcess) endpoints() (string, string) { return p.Lhs, p.Rhs }

func (p ErlangProcess) expand(a *arena) []elementary {
	k := p.Shape
	if k < 1 {
		k = 1
	}
	stageRate := func(stage int) RateFunc {
		return func(t float64, y *State) Array {
			return y.At(stage).Scaled(float64(k) / p.Scale(t, y))
		}
	}

	chain := make([]elementary, 0, k)
	prev := a.intern(p.Lhs)
	for i := 1; i <= k; i++ {
		var next int
		if i == k {
			next = a.intern(p.Rhs)
		} else {
			next = a.fresh(fmt.Sprintf("%s:%s:%d", p.Lhs, p.Rhs, i))
		}
		chain = append(chain, elementary{lhs: prev, rhs: next, rate: stageRate(prev)})
		prev = next
	}
	return chain
}
