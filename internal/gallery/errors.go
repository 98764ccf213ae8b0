package gallery

import (
	"errors"
	"fmt"
)

// Errors returned at the parameter and catalog boundary. Kernels themselves
// never fail.
var (
	// ErrUnknownParam indicates a parameter name the simulation does not expose.
	ErrUnknownParam = errors.New("gallery: unknown parameter")

	// ErrParameterBounds indicates a parameter value outside its declared range.
	ErrParameterBounds = errors.New("gallery: parameter out of valid bounds")

	// ErrUnknownSimulation indicates a simulation name missing from the catalog.
	ErrUnknownSimulation = errors.New("gallery: unknown simulation")

	// ErrNotConfigurable indicates a simulation without a parameter surface.
	ErrNotConfigurable = errors.New("gallery: simulation has no parameters")
)

// ParamError wraps a parameter failure with the simulation and value involved.
type ParamError struct {
	Sim     string
	Param   string
	Value   float64
	Wrapped error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%g: %v", e.Sim, e.Param, e.Value, e.Wrapped)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
