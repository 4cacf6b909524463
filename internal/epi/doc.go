// Package epi provides the reaction-network engine for compartmental
// epidemic models.
//
// A model is declared as a list of reaction specs moving population mass
// between named compartments:
//
//   - [Reaction]: a single transition with a caller-supplied rate evaluator
//   - [ErlangProcess]: a multi-stage sojourn process that expands into a
//     chain of elementary reactions through hidden stage compartments
//
// Specs are flattened into a [Network] once, at construction time. The
// [Simulation] then advances the full state (visible plus hidden
// compartments) with a fixed time step under a conservation-preserving
// update: per step, every reaction's outflow is clamped so that no source
// compartment can be driven below zero, and all increments are applied
// together so that total population is exactly conserved.
//
// # Example
//
//	sim := epi.New(
//		epi.NewReaction("susceptible", "infectious", rate),
//		epi.NewReaction("infectious", "removed", removal),
//	)
//	result, _ := sim.Run(ctx, epi.TimeSpan{End: 100}, y0, 0.01)
//
// # Thread Safety
//
// Simulation instances are NOT thread-safe. Each Run owns its state and
// trajectory for the duration of the call; run concurrent simulations on
// separate Simulation values.
package epi
