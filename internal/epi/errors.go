package epi

import "errors"

// Domain errors for simulation operations.
var (
	// ErrEmptyInitialState indicates Run was given no initial compartment values.
	ErrEmptyInitialState = errors.New("epi: empty initial state")

	// ErrShapeMismatch indicates initial compartment arrays of unequal length.
	ErrShapeMismatch = errors.New("epi: initial compartment arrays have mismatched shapes")

	// ErrUnknownCompartment indicates an initial value for a compartment the
	// network never mentions.
	ErrUnknownCompartment = errors.New("epi: unknown compartment in initial state")

	// ErrLoggerOverrun indicates more extend calls than the pre-allocated
	// trajectory length allows. It signals a step-count/loop-bound bug and is
	// never silently truncated.
	ErrLoggerOverrun = errors.New("epi: state logger capacity exceeded")

	// ErrInvalidTimeSpan indicates a span whose end precedes its start.
	ErrInvalidTimeSpan = errors.New("epi: time span end precedes start")

	// ErrInvalidStep indicates a negative step size.
	ErrInvalidStep = errors.New("epi: step size must be positive")
)
