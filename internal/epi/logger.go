package epi

// StateLogger accumulates the dense trajectory. Every compartment gets one
// pre-allocated buffer of nSteps rows backed by a single flat slice; row 0
// holds the initial state and extend fills the next free row.
type StateLogger struct {
	names  []string
	series [][]Array
	cursor int
}

// NewStateLogger allocates the trajectory for nSteps samples and records
// state as sample 0.
func NewStateLogger(state *State, nSteps int) *StateLogger {
	l := &StateLogger{
		names:  state.Names(),
		series: make([][]Array, len(state.vals)),
	}
	shape := state.shape
	for c := range state.vals {
		backing := make([]float64, nSteps*shape)
		rows := make([]Array, nSteps)
		for k := 0; k < nSteps; k++ {
			rows[k] = backing[k*shape : (k+1)*shape]
		}
		copy(rows[0], state.vals[c])
		l.series[c] = rows
	}
	return l
}

// Extend copies the current state into the next row. Exceeding the
// pre-allocated capacity is a loop-bound bug and fails hard.
func (l *StateLogger) Extend(state *State) error {
	l.cursor++
	if len(l.series) > 0 && l.cursor >= len(l.series[0]) {
		return ErrLoggerOverrun
	}
	for c, rows := range l.series {
		copy(rows[l.cursor], state.vals[c])
	}
	return nil
}

// Samples is the number of rows written so far, the initial row included.
func (l *StateLogger) Samples() int { return l.cursor + 1 }

// Trajectory returns the full pre-allocated buffers keyed by compartment
// name. Rows past the last extend remain zero.
func (l *StateLogger) Trajectory() map[string][]Array {
	y := make(map[string][]Array, len(l.names))
	for c, name := range l.names {
		y[name] = l.series[c]
	}
	return y
}
