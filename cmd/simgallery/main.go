package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/san-kum/simgallery/internal/compute"
	"github.com/san-kum/simgallery/internal/config"
	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/registry"
)

var (
	dataDir    string
	save       bool
	configFile string
	preset     string
	seed       int64
	sets       []string
	backend    string
	workers    int
	quiet      bool
	frames     int
	dt         float64
	width      int
	height     int
	outPath    string
	csvPath    string
	theme      string
	dumpPreset string
	// analyze
	axis      int
	duration  float64
	stepSize  float64
	svgPath   string
	sweep     string
	sweepFrom float64
	sweepTo   float64
)

var headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)

// main registers the commands and exits with status 1 when one fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "simgallery",
		Short:        "fractals, attractors, particles and cellular automata",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".simgallery", "data directory for saved runs")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list simulations",
		RunE:  listSimulations,
	}

	renderCmd := &cobra.Command{
		Use:   "render [simulation]",
		Short: "step a simulation and write a PNG, or an SVG for point clouds",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSimulation,
	}
	runFlags(renderCmd)
	renderCmd.Flags().StringVar(&csvPath, "csv", "", "also write point cloud coordinates as CSV")

	runCmd := &cobra.Command{
		Use:   "run [simulation...]",
		Short: "step simulations headless and plot a running metric",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSimulations,
	}
	runFlags(runCmd)
	runCmd.Flags().StringVar(&csvPath, "csv", "", "write the metric series as CSV")
	runCmd.Flags().BoolVar(&save, "save", false, "store the run under --data")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [simulation]",
		Short: "interactive terminal viewer",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	runFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", "neon", "color theme")

	presetsCmd := &cobra.Command{
		Use:   "presets [simulation]",
		Short: "list run presets and simulation presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}
	presetsCmd.Flags().StringVar(&dumpPreset, "dump", "", "print the named run preset as YAML")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [attractor]",
		Short: "lyapunov exponent, spectrum and bifurcation of an attractor",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeAttractor,
	}
	analyzeCmd.Flags().IntVar(&axis, "axis", 0, "state coordinate to analyze")
	analyzeCmd.Flags().Float64Var(&duration, "time", 100, "integration time")
	analyzeCmd.Flags().Float64Var(&stepSize, "step", 0.01, "integration step")
	analyzeCmd.Flags().StringVar(&svgPath, "svg", "", "write the x-z phase path as SVG")
	analyzeCmd.Flags().StringVar(&sweep, "sweep", "", "parameter to sweep for a bifurcation diagram")
	analyzeCmd.Flags().Float64Var(&sweepFrom, "from", 0, "sweep start")
	analyzeCmd.Flags().Float64Var(&sweepTo, "to", 0, "sweep end")
	analyzeCmd.Flags().StringArrayVar(&sets, "set", nil, "override a model parameter (name=value)")

	benchCmd := &cobra.Command{
		Use:   "bench [simulation]",
		Short: "time Step and Compute",
		Args:  cobra.ExactArgs(1),
		RunE:  benchSimulation,
	}
	runFlags(benchCmd)

	rootCmd.AddCommand(listCmd, renderCmd, runCmd, runsCmd, plotCmd, liveCmd, presetsCmd, analyzeCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runFlags registers the flags shared by every command that builds a
// simulation from a config.
func runFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "run preset or simulation preset name")
	f.Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	f.StringArrayVar(&sets, "set", nil, "override a parameter (name=value), repeatable")
	f.StringVar(&backend, "backend", "cpu", "compute backend: "+strings.Join(compute.Names(), ", "))
	f.IntVar(&workers, "workers", 0, "worker count (0 = all cores)")
	f.BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
	f.IntVar(&frames, "frames", config.DefaultFrames, "frames to step")
	f.Float64Var(&dt, "dt", config.DefaultDt, "seconds per frame")
	f.IntVar(&width, "width", config.DefaultWidth, "output width")
	f.IntVar(&height, "height", config.DefaultHeight, "output height")
	f.StringVarP(&outPath, "out", "o", "", "output path")
}

// loadConfig layers the config file, a run preset and explicitly set flags,
// in that order. A --preset that names no run preset is passed on to the
// simulation itself.
func loadConfig(cmd *cobra.Command, sim string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if sim != "" {
		cfg.Simulation = sim
	}

	if p := cmd.Flags().Lookup("preset"); p != nil && p.Changed {
		if run := config.GetPreset(cfg.Simulation, preset); run != nil {
			cfg.Merge(run)
		} else {
			cfg.Preset = preset
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("out") {
		cfg.Output = outPath
	}
	overrides, err := parseSets(sets)
	if err != nil {
		return nil, err
	}
	cfg.Merge(&config.Config{Params: overrides})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseSets(sets []string) (map[string]float64, error) {
	if len(sets) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(sets))
	for _, s := range sets {
		name, raw, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: expected name=value", s)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", s, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

type backendSetter interface {
	SetBackend(compute.Backend)
}

// build creates the simulation named by cfg and applies its settings.
func build(reg *registry.Registry, cfg *config.Config) (gallery.Simulation, registry.Entry, error) {
	entry, err := reg.Lookup(cfg.Simulation)
	if err != nil {
		return nil, entry, err
	}
	sim := entry.Create()
	if err := config.Apply(sim, cfg); err != nil {
		return nil, entry, err
	}
	if b, ok := sim.(backendSetter); ok {
		be, err := cfg.ComputeBackend()
		if err != nil {
			return nil, entry, err
		}
		b.SetBackend(be)
	}
	return sim, entry, nil
}

func progress(format string, args ...any) {
	if !quiet {
		fmt.Printf(format, args...)
	}
}
