// Package compute provides the worker backends used for data-parallel
// kernels such as escape-time rendering.
//
//   - CPU: splits [0, n) into contiguous chunks, one goroutine per chunk
//   - Serial: runs everything on the caller, useful for profiling and tests
//
// Work is handed out as disjoint half-open ranges; callers write results by
// index, so completion order never matters:
//
//	backend := compute.Default()
//	backend.ParallelRows(height, func(y0, y1 int) {
//	    for y := y0; y < y1; y++ {
//	        renderRow(buf.Row(y), y)
//	    }
//	})
package compute
