package gallery

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Gallery holds the simulations a host drives each frame. Instances never
// share state, so StepAll may advance different instances concurrently.
type Gallery struct {
	rasters []RasterSimulation
	clouds  []PointCloudSimulation
	workers int
}

func New() *Gallery {
	return &Gallery{workers: runtime.NumCPU()}
}

// SetWorkers bounds how many instances are stepped at once. n < 1 means one.
func (g *Gallery) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	g.workers = n
}

func (g *Gallery) AddRaster(s RasterSimulation)         { g.rasters = append(g.rasters, s) }
func (g *Gallery) AddPointCloud(s PointCloudSimulation) { g.clouds = append(g.clouds, s) }

// Add files s under the contract it implements. It reports false when s
// implements neither.
func (g *Gallery) Add(s Simulation) bool {
	switch v := s.(type) {
	case RasterSimulation:
		g.AddRaster(v)
	case PointCloudSimulation:
		g.AddPointCloud(v)
	default:
		return false
	}
	return true
}

func (g *Gallery) Rasters() []RasterSimulation         { return g.rasters }
func (g *Gallery) PointClouds() []PointCloudSimulation { return g.clouds }
func (g *Gallery) Len() int                            { return len(g.rasters) + len(g.clouds) }

// StepAll advances every point cloud and every animated raster by dt. Each
// instance is stepped by exactly one goroutine. Cancellation is observed
// between instances, never inside a step.
func (g *Gallery) StepAll(ctx context.Context, dt float32) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	for _, s := range g.clouds {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.Step(dt)
			return nil
		})
	}
	for _, r := range g.rasters {
		a, ok := r.(Animated)
		if !ok {
			continue
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a.Tick(dt)
			return nil
		})
	}
	return eg.Wait()
}

// Frame steps every simulation, then computes every raster at w x h and
// collects every point cloud. Results are indexed like Rasters and
// PointClouds.
func (g *Gallery) Frame(ctx context.Context, dt float32, w, h int) ([]PixelBuffer, [][]Point3, error) {
	if err := g.StepAll(ctx, dt); err != nil {
		return nil, nil, err
	}

	buffers := make([]PixelBuffer, len(g.rasters))
	points := make([][]Point3, len(g.clouds))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, r := range g.rasters {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			buffers[i] = r.Compute(w, h)
			return nil
		})
	}
	for i, c := range g.clouds {
		eg.Go(func() error {
			points[i] = c.Points()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return buffers, points, nil
}

// ResetAll resets every simulation that supports it.
func (g *Gallery) ResetAll() {
	for _, c := range g.clouds {
		c.Reset()
	}
	for _, r := range g.rasters {
		if rs, ok := r.(Resettable); ok {
			rs.Reset()
		}
	}
}
