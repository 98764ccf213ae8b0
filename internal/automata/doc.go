// Package automata holds the grid kernels: Life-like rules, elementary and
// cyclic automata, Brian's Brain, Langton's ant, the abelian sandpile, a
// falling-sand material toy and Gray-Scott reaction-diffusion.
//
// Each kernel advances one generation per Step and converts frame time into
// generations through a rate accumulator in Tick. Compute scales the lattice
// to the requested image by nearest cell.
package automata
