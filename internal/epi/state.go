package epi

// State maps every compartment of a network, visible and hidden, to its
// current value array. It is created per Run and mutated in place once per
// time step.
type State struct {
	arena *arena
	vals  []Array
	shape int
}

// Get returns the value array for a named compartment, or nil when the
// network does not know the name. The returned slice aliases the live state.
func (s *State) Get(name string) Array {
	h, ok := s.arena.handle(name)
	if !ok {
		return nil
	}
	return s.vals[h]
}

// At returns the value array for a compartment handle.
func (s *State) At(h int) Array {
	return s.vals[h]
}

// Shape is the per-compartment array length.
func (s *State) Shape() int { return s.shape }

// Names returns every compartment name in network order.
func (s *State) Names() []string {
	names := make([]string, len(s.arena.names))
	copy(names, s.arena.names)
	return names
}

// Total sums every compartment over every sub-group. Reactions only move
// mass, so this is invariant over a run.
func (s *State) Total() float64 {
	total := 0.0
	for _, ary := range s.vals {
		total += ary.Sum()
	}
	return total
}
