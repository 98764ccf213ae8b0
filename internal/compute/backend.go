package compute

import (
	"fmt"
	"runtime"
)

// Backend runs index-range work. fn receives half-open ranges [start, end)
// that never overlap, so workers may write disjoint slices without locking.
type Backend interface {
	Name() string
	Workers() int
	ParallelRows(n int, fn func(start, end int))
}

var defaultBackend Backend = NewCPUBackend(0)

// Default returns the shared CPU backend.
func Default() Backend {
	return defaultBackend
}

// New returns a backend by name. workers <= 0 selects one worker per CPU.
func New(name string, workers int) (Backend, error) {
	switch name {
	case "", "cpu":
		return NewCPUBackend(workers), nil
	case "pool":
		return NewPoolBackend(workers), nil
	case "serial":
		return Serial{}, nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", name)
	}
}

// Names lists the backends New accepts.
func Names() []string {
	return []string{"cpu", "pool", "serial"}
}

// Serial runs all work on the calling goroutine.
type Serial struct{}

func (Serial) Name() string { return "serial" }
func (Serial) Workers() int { return 1 }

func (Serial) ParallelRows(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	fn(0, n)
}

func defaultWorkers() int {
	return runtime.NumCPU()
}
