// Package palette maps normalized values to colors.
//
// Schemes are precomputed into lookup tables at init; gradients blend in
// L*a*b* space via go-colorful and hue based colors go through colorconv.
package palette
