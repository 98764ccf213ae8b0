// Package viz renders gallery simulations in the terminal.
//
// Point clouds are projected through a [Camera] onto a braille [Canvas]
// (2×4 dots per cell). Rasters are drawn with [RenderHalfBlocks], two pixel
// rows per line. [Model] is a Bubble Tea program that steps one simulation,
// plots a running metric and exposes its parameters for tuning.
//
// # Key Bindings
//
//	Space  - Pause/Resume
//	N      - Single step while paused
//	R      - Reset
//	Tab    - Select parameter
//	[ ]    - Tune parameter
//	+ -    - Zoom
//	Arrows - Pan fractals, orbit point clouds
//	T      - Cycle themes
//	?      - Help overlay
package viz
