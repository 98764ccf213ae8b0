package registry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/san-kum/simgallery/internal/attractors"
	"github.com/san-kum/simgallery/internal/automata"
	"github.com/san-kum/simgallery/internal/field"
	"github.com/san-kum/simgallery/internal/fractal"
	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/particles"
)

type Kind int

const (
	Raster Kind = iota
	PointCloud
)

func (k Kind) String() string {
	if k == PointCloud {
		return "points"
	}
	return "raster"
}

type Entry struct {
	Name   string
	Group  string
	Kind   Kind
	Create func() gallery.Simulation
}

type Registry struct {
	entries map[string]Entry
}

func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]Entry)}

	r.raster("fractal", "mandelbrot", func() gallery.Simulation { return fractal.NewMandelbrot() })
	r.raster("fractal", "julia", func() gallery.Simulation { return fractal.NewJulia() })
	r.raster("fractal", "burning-ship", func() gallery.Simulation { return fractal.NewBurningShip() })

	for _, name := range attractors.Families() {
		r.points("attractor", name, func() gallery.Simulation {
			a, _ := attractors.NewFamily(name)
			return a
		})
	}
	r.points("attractor", "swarm", func() gallery.Simulation { return attractors.NewSwarm() })
	r.points("pendulum", "double-pendulum", func() gallery.Simulation { return attractors.NewDoublePendulum() })
	r.points("map", "dejong", func() gallery.Simulation { return attractors.NewDeJong() })
	r.points("map", "clifford", func() gallery.Simulation { return attractors.NewClifford() })

	r.points("particles", "sph", func() gallery.Simulation { return particles.NewSPH() })
	r.points("particles", "nbody", func() gallery.Simulation { return particles.NewNBody() })
	r.points("particles", "boids", func() gallery.Simulation { return particles.NewBoids() })
	r.points("particles", "magnetic", func() gallery.Simulation { return particles.NewMagneticField() })
	r.points("particles", "vortex", func() gallery.Simulation { return particles.NewVortex() })
	r.points("particles", "galaxy", func() gallery.Simulation { return particles.NewGalaxy() })
	r.points("particles", "flow", func() gallery.Simulation { return particles.NewFlowField() })

	r.raster("automata", "life", func() gallery.Simulation { return automata.NewLife() })
	r.raster("automata", "elementary", func() gallery.Simulation { return automata.NewElementary() })
	r.raster("automata", "cyclic", func() gallery.Simulation { return automata.NewCyclic() })
	r.raster("automata", "brians-brain", func() gallery.Simulation { return automata.NewBriansBrain() })
	r.raster("automata", "ant", func() gallery.Simulation { return automata.NewAnt() })
	r.raster("automata", "sandpile", func() gallery.Simulation { return automata.NewSandpile() })
	r.raster("automata", "falling-sand", func() gallery.Simulation { return automata.NewFallingSand() })
	r.raster("automata", "gray-scott", func() gallery.Simulation { return automata.NewGrayScott() })
	r.raster("automata", "dla", func() gallery.Simulation { return automata.NewDLA() })
	r.raster("automata", "slime", func() gallery.Simulation { return automata.NewSlime() })

	r.raster("field", "waves", func() gallery.Simulation { return field.NewWaves() })

	return r
}

func (r *Registry) raster(group, name string, fn func() gallery.Simulation) {
	r.entries[name] = Entry{Name: name, Group: group, Kind: Raster, Create: fn}
}

func (r *Registry) points(group, name string, fn func() gallery.Simulation) {
	r.entries[name] = Entry{Name: name, Group: group, Kind: PointCloud, Create: fn}
}

// Register adds or replaces an entry.
func (r *Registry) Register(e Entry) error {
	if e.Name == "" || e.Create == nil {
		return fmt.Errorf("registry: entry needs a name and a constructor")
	}
	r.entries[e.Name] = e
	return nil
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

func (r *Registry) Lookup(name string) (Entry, error) {
	e, ok := r.entries[normalize(name)]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", gallery.ErrUnknownSimulation, name)
	}
	return e, nil
}

// New builds a fresh instance with its default configuration.
func (r *Registry) New(name string) (gallery.Simulation, error) {
	e, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return e.Create(), nil
}

func (r *Registry) GetRaster(name string) (gallery.RasterSimulation, error) {
	s, err := r.New(name)
	if err != nil {
		return nil, err
	}
	rs, ok := s.(gallery.RasterSimulation)
	if !ok {
		return nil, fmt.Errorf("%s is not a raster simulation", name)
	}
	return rs, nil
}

func (r *Registry) GetPointCloud(name string) (gallery.PointCloudSimulation, error) {
	s, err := r.New(name)
	if err != nil {
		return nil, err
	}
	ps, ok := s.(gallery.PointCloudSimulation)
	if !ok {
		return nil, fmt.Errorf("%s is not a point cloud simulation", name)
	}
	return ps, nil
}

// List returns the registered names, sorted by group and then name.
func (r *Registry) List() []string {
	entries := r.Entries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if c := strings.Compare(a.Group, b.Group); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Group lists the names in one group.
func (r *Registry) Group(group string) []string {
	var names []string
	for _, e := range r.Entries() {
		if e.Group == group {
			names = append(names, e.Name)
		}
	}
	return names
}
