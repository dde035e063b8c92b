// Package viz provides the terminal viewer for flow fields and tracer runs.
//
// The viewer is a Bubble Tea program with two panes:
//
//   - field: |u| on an x-z slice of the domain, drawn with shade characters
//   - tracers: replay of a saved run on a Braille [Canvas]
//
// # Key Bindings
//
//	Up/Down   - Move the slice in y
//	Tab       - Cycle flows
//	+/-       - Contrast
//	M         - Switch between field and tracers
//	Space     - Pause/Resume replay
//	[ ]       - Step replay backwards/forwards
//	T         - Cycle color themes
//	Q         - Quit
package viz
