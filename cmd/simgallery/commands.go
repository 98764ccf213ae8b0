package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/simgallery/internal/analysis"
	"github.com/san-kum/simgallery/internal/attractors"
	"github.com/san-kum/simgallery/internal/compute"
	"github.com/san-kum/simgallery/internal/config"
	"github.com/san-kum/simgallery/internal/export"
	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/integrators"
	"github.com/san-kum/simgallery/internal/registry"
	"github.com/san-kum/simgallery/internal/storage"
	"github.com/san-kum/simgallery/internal/viz"
)

func listSimulations(cmd *cobra.Command, args []string) error {
	reg := registry.NewRegistry()
	fmt.Println(headerStyle.Render(fmt.Sprintf("%d simulations", len(reg.List()))))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGROUP\tKIND\tPARAMETERS")
	for _, e := range reg.Entries() {
		var keys []string
		if c, ok := e.Create().(gallery.Configurable); ok {
			keys = gallery.Keys(c.Params())
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.Group, e.Kind, strings.Join(keys, " "))
	}
	return w.Flush()
}

// advance steps sim for n frames of dt seconds.
func advance(sim gallery.Simulation, n int, dt float32) {
	for i := 0; i < n; i++ {
		switch s := sim.(type) {
		case gallery.PointCloudSimulation:
			s.Step(dt)
		case gallery.Animated:
			s.Tick(dt)
		}
	}
}

func cameraFor(entry registry.Entry, pts []gallery.Point3) *viz.Camera {
	cam := viz.NewCamera()
	if entry.Group == "attractor" {
		cam.ZUp()
	}
	cam.Fit(pts)
	return cam
}

func renderSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	sim, entry, err := build(registry.NewRegistry(), cfg)
	if err != nil {
		return err
	}

	progress("rendering %s: %d frames at dt %.4f\n", entry.Name, cfg.Frames, cfg.Dt)
	start := time.Now()
	advance(sim, cfg.Frames, float32(cfg.Dt))

	switch s := sim.(type) {
	case gallery.RasterSimulation:
		out := cfg.Output
		if out == "" {
			out = entry.Name + ".png"
		}
		buf := s.Compute(cfg.Width, cfg.Height)
		if err := export.Save(out, func(w io.Writer) error { return export.WritePNG(w, buf) }); err != nil {
			return err
		}
		progress("wrote %s (%dx%d, coverage %.3f) in %v\n", out, cfg.Width, cfg.Height,
			analysis.Coverage(buf, gallery.Black), time.Since(start).Round(time.Millisecond))

	case gallery.PointCloudSimulation:
		out := cfg.Output
		if out == "" {
			out = entry.Name + ".svg"
		}
		pts := s.Points()
		cam := cameraFor(entry, pts)
		err := export.Save(out, func(w io.Writer) error {
			return export.WritePointsSVG(w, pts, cam, cfg.Width, cfg.Height, export.DefaultSVGStyle())
		})
		if err != nil {
			return err
		}
		if csvPath != "" {
			if err := export.Save(csvPath, func(w io.Writer) error { return export.WritePointsCSV(w, pts) }); err != nil {
				return err
			}
		}
		st := analysis.Stats(pts)
		progress("wrote %s (%d points, radius %.3f) in %v\n", out, st.Count, st.Radius, time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// metric samples the per-simulation series plotted by run: mean radius for
// point clouds, lit fraction for rasters.
func metric(sim gallery.Simulation, w, h int) float64 {
	switch s := sim.(type) {
	case gallery.PointCloudSimulation:
		return analysis.Stats(s.Points()).Radius
	case gallery.RasterSimulation:
		return analysis.Coverage(s.Compute(w, h), gallery.Black)
	}
	return math.NaN()
}

func runSimulations(cmd *cobra.Command, args []string) error {
	reg := registry.NewRegistry()
	g := gallery.New()

	var cfg *config.Config
	names := make([]string, 0, len(args))
	sims := make([]gallery.Simulation, 0, len(args))
	for _, name := range args {
		c, err := loadConfig(cmd, name)
		if err != nil {
			return err
		}
		sim, entry, err := build(reg, c)
		if err != nil {
			return err
		}
		g.Add(sim)
		names = append(names, entry.Name)
		sims = append(sims, sim)
		cfg = c
	}
	g.SetWorkers(cfg.Workers)

	series := make([][]float64, len(sims))
	every := max(1, cfg.Frames/100)
	ctx := context.Background()
	start := time.Now()
	for f := 0; f < cfg.Frames; f++ {
		if err := g.StepAll(ctx, float32(cfg.Dt)); err != nil {
			return err
		}
		if f%every != 0 && f != cfg.Frames-1 {
			continue
		}
		for i, s := range sims {
			series[i] = append(series[i], metric(s, cfg.Width, cfg.Height))
		}
		progress("\rframe %d/%d", f+1, cfg.Frames)
	}
	progress("\n")
	elapsed := time.Since(start)

	fmt.Println(headerStyle.Render(fmt.Sprintf("%d frames in %v (%.1f fps)",
		cfg.Frames, elapsed.Round(time.Millisecond), float64(cfg.Frames)/elapsed.Seconds())))
	for i, name := range names {
		s := finiteOnly(series[i])
		if len(s) < 2 {
			continue
		}
		caption := name + " radius"
		if _, ok := sims[i].(gallery.RasterSimulation); ok {
			caption = name + " coverage"
		}
		fmt.Println(asciigraph.Plot(s,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption(caption),
		))
		fmt.Println()
	}

	if csvPath != "" {
		header := append([]string{"sample"}, names...)
		index := make([]float64, len(series[0]))
		for i := range index {
			index[i] = float64(i)
		}
		cols := append([][]float64{index}, series...)
		if err := export.Save(csvPath, func(w io.Writer) error { return export.WriteSeriesCSV(w, header, cols) }); err != nil {
			return err
		}
		progress("wrote %s\n", csvPath)
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(storage.RunMetadata{
			Simulations: names,
			Seed:        cfg.Seed,
			Dt:          cfg.Dt,
			Frames:      cfg.Frames,
			Width:       cfg.Width,
			Height:      cfg.Height,
			Backend:     cfg.Backend,
			Elapsed:     elapsed.Seconds(),
		}, series)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", id)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSIMULATIONS\tTIME\tFRAMES\tDT\tSEED\tELAPSED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%d\t%.2fs\n",
			run.ID,
			strings.Join(run.Simulations, ","),
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Dt,
			run.Seed,
			run.Elapsed,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d at dt %.4f\n\n", meta.Frames, meta.Dt)
	for _, name := range meta.Simulations {
		data := finiteOnly(series[name])
		if len(data) < 2 {
			fmt.Printf("%s: not enough samples\n", name)
			continue
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		))
		fmt.Println()
	}
	return nil
}

func finiteOnly(s []float64) []float64 {
	out := make([]float64, 0, len(s))
	for _, v := range s {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	sim, entry, err := build(registry.NewRegistry(), cfg)
	if err != nil {
		return err
	}
	if _, ok := viz.ThemeByName(theme); !ok {
		return fmt.Errorf("unknown theme: %s (available: %s)", theme, strings.Join(viz.ThemeNames(), ", "))
	}
	opts := viz.Options{
		Dt:    float32(cfg.Dt),
		Theme: theme,
		ZUp:   entry.Group == "attractor",
	}
	if cmd.Flags().Changed("width") {
		opts.Cols = cfg.Width
	}
	if cmd.Flags().Changed("height") {
		opts.Rows = cfg.Height
	}
	return viz.Run(sim, opts)
}

func listPresets(cmd *cobra.Command, args []string) error {
	if dumpPreset != "" {
		if len(args) == 0 {
			return fmt.Errorf("--dump needs a simulation")
		}
		p := config.GetPreset(args[0], dumpPreset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", dumpPreset, config.ListPresets(args[0]))
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	}

	reg := registry.NewRegistry()
	names := reg.List()
	if len(args) == 1 {
		e, err := reg.Lookup(args[0])
		if err != nil {
			return err
		}
		names = []string{e.Name}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIMULATION\tRUN PRESETS\tSIMULATION PRESETS")
	for _, name := range names {
		run := config.ListPresets(name)
		var own []string
		sim, _ := reg.New(name)
		if p, ok := sim.(gallery.Presetter); ok {
			own = p.Presets()
		}
		if len(run) == 0 && len(own) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, orDash(run), orDash(own))
	}
	return w.Flush()
}

func orDash(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, " ")
}

func analyzeAttractor(cmd *cobra.Command, args []string) error {
	a, err := attractors.NewFamily(args[0])
	if err != nil {
		return fmt.Errorf("%w (attractors: %s)", err, strings.Join(attractors.Families(), ", "))
	}
	model := a.Model()
	overrides, err := parseSets(sets)
	if err != nil {
		return err
	}
	for k, v := range overrides {
		if err := gallery.Assign(args[0], model.Params(), k, v); err != nil {
			return err
		}
	}
	if stepSize <= 0 || duration <= 0 {
		return fmt.Errorf("step %v and time %v must be positive", stepSize, duration)
	}
	x0 := a.Position()
	if axis < 0 || axis >= len(x0) {
		return fmt.Errorf("axis %d out of range [0, %d)", axis, len(x0))
	}
	integ := integrators.NewRK4()

	fmt.Println(headerStyle.Render(model.Name()))
	lambda := analysis.LyapunovExponent(model, integ, x0, stepSize, duration, 1e-8)
	fmt.Printf("largest lyapunov exponent: %.4f", lambda)
	if lambda > 0.01 {
		fmt.Print(" (chaotic)")
	}
	fmt.Println()

	n := int(duration / stepSize)
	traj := analysis.Trajectory(model, integ, x0, axis, stepSize, n)
	if bin, ok := analysis.DominantFrequency(traj, 1/stepSize); ok {
		fmt.Printf("dominant frequency of x%d: %.4f hz", axis, bin.Freq)
		if bin.Freq > 0 {
			fmt.Printf(" (period %.3f)", 1/bin.Freq)
		}
		fmt.Println()
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(downsample(traj, 400),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("x%d over %.0f time units", axis, duration)),
	))

	if svgPath != "" {
		xs := analysis.Trajectory(model, integ, x0, 0, stepSize, n)
		zs := analysis.Trajectory(model, integ, x0, 2, stepSize, n)
		if err := export.Save(svgPath, func(w io.Writer) error {
			return export.WritePathSVG(w, xs, zs, 800, 600, "#ff00ff")
		}); err != nil {
			return err
		}
		progress("wrote %s\n", svgPath)
	}

	if sweep != "" {
		data, err := analysis.BifurcationDiagram(model, integ, x0, analysis.Sweep{
			Param:     sweep,
			Min:       sweepFrom,
			Max:       sweepTo,
			Steps:     80,
			Axis:      axis,
			Dt:        stepSize,
			Transient: duration / 2,
			Record:    duration / 2,
		})
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(headerStyle.Render(fmt.Sprintf("bifurcation of x%d over %s in [%g, %g]", axis, sweep, sweepFrom, sweepTo)))
		fmt.Println(analysis.BifurcationToASCII(data, 80, 20))
	}
	return nil
}

func downsample(s []float64, n int) []float64 {
	if len(s) <= n || n <= 0 {
		return s
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = s[i*len(s)/n]
	}
	return out
}

func benchSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	reg := registry.NewRegistry()
	entry, err := reg.Lookup(cfg.Simulation)
	if err != nil {
		return err
	}
	n := max(cfg.Frames, 1)

	fmt.Println(headerStyle.Render(fmt.Sprintf("benchmarking %s: %d frames", entry.Name, n)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tSTEP\tCOMPUTE\tFRAMES/SEC")

	backends := []string{cfg.Backend}
	if entry.Kind == registry.Raster && !cmd.Flags().Changed("backend") {
		backends = compute.Names()
	}
	for _, b := range backends {
		c := cfg.Clone()
		c.Backend = b
		sim, _, err := build(reg, c)
		if err != nil {
			return err
		}
		var stepTime, computeTime time.Duration
		for i := 0; i < n; i++ {
			t0 := time.Now()
			advance(sim, 1, float32(c.Dt))
			t1 := time.Now()
			switch s := sim.(type) {
			case gallery.RasterSimulation:
				s.Compute(c.Width, c.Height)
			case gallery.PointCloudSimulation:
				s.Points()
			}
			stepTime += t1.Sub(t0)
			computeTime += time.Since(t1)
		}
		total := stepTime + computeTime
		fmt.Fprintf(w, "%s\t%v\t%v\t%.1f\n", b,
			(stepTime / time.Duration(n)).Round(time.Microsecond),
			(computeTime / time.Duration(n)).Round(time.Microsecond),
			float64(n)/total.Seconds())
	}
	return w.Flush()
}
