// Package viz provides a terminal replay view for computed epidemic
// trajectories.
//
// The package implements an interactive TUI using the Bubble Tea framework.
// A finished run is loaded as a whole and played back sample by sample, so
// scrubbing never re-integrates anything.
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from the first sample
//	Tab   - Cycle the charted compartment
//	[]/   - Scrub backward/forward
//	+/-   - Playback speed
//	H     - Toggle hidden stage compartments
//	?     - Show help overlay
package viz
