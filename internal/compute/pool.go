package compute

import "golang.org/x/sync/errgroup"

// bandRows is the height of one work item in the pool backend.
const bandRows = 4

// PoolBackend hands out thin row bands to a bounded set of goroutines, so
// rows that are expensive to compute do not stall a single worker.
type PoolBackend struct {
	workers int
}

func NewPoolBackend(workers int) *PoolBackend {
	if workers <= 0 {
		workers = defaultWorkers()
	}
	return &PoolBackend{workers: workers}
}

func (p *PoolBackend) Name() string { return "pool" }
func (p *PoolBackend) Workers() int { return p.workers }

func (p *PoolBackend) ParallelRows(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if p.workers <= 1 || n <= bandRows {
		fn(0, n)
		return
	}

	var eg errgroup.Group
	eg.SetLimit(p.workers)
	for start := 0; start < n; start += bandRows {
		end := min(start+bandRows, n)
		eg.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = eg.Wait()
}
