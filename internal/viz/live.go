package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/simgallery/internal/analysis"
	"github.com/san-kum/simgallery/internal/gallery"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	panelWidth      = 46
	historyCapacity = 300
	panFraction     = 0.1
	rotateStep      = 0.1
)

// Options configures a live session.
type Options struct {
	Cols, Rows int     // canvas size in text cells
	Dt         float32 // simulated seconds per frame
	Theme      string
	ZUp        bool // world z points up the screen for point clouds
}

func (o Options) withDefaults() Options {
	if o.Cols <= 0 {
		o.Cols = defaultCols
	}
	if o.Rows <= 0 {
		o.Rows = defaultRows
	}
	if !gallery.ValidDelta(o.Dt) {
		o.Dt = gallery.ReferenceFrame
	}
	return o
}

type TickMsg time.Time

// panner is implemented by raster views that can move and zoom.
type panner interface {
	Pan(dx, dy float64, width, height int)
	ZoomBy(delta float64)
}

// Model drives one simulation in the terminal.
type Model struct {
	sim      gallery.Simulation
	opts     Options
	canvas   *Canvas
	camera   *Camera
	fitted   bool
	raster   gallery.PixelBuffer
	running  bool
	showHelp bool
	theme    int
	selected int
	frames   int
	elapsed  float64
	metric   []float64
	status   string
}

func NewModel(sim gallery.Simulation, opts Options) Model {
	opts = opts.withDefaults()
	cam := NewCamera()
	if opts.ZUp {
		cam.ZUp()
	}
	m := Model{
		sim:     sim,
		opts:    opts,
		canvas:  NewCanvas(opts.Cols, opts.Rows),
		camera:  cam,
		running: true,
		theme:   themeIndex(opts.Theme),
		metric:  make([]float64, 0, historyCapacity),
	}
	m.draw()
	return m
}

// Run starts an interactive session on the alternate screen.
func Run(sim gallery.Simulation, opts Options) error {
	p := tea.NewProgram(NewModel(sim, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width-panelWidth-4, msg.Height-1)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			m.theme = (m.theme + 1) % len(themes)
		case "?":
			m.showHelp = !m.showHelp
		case "n":
			if !m.running {
				m.step()
			}
		case "+", "=":
			m.zoom(true)
		case "-", "_":
			m.zoom(false)
		case "left", "h":
			m.move(-1, 0)
		case "right", "l":
			m.move(1, 0)
		case "up", "k":
			m.move(0, -1)
		case "down", "j":
			m.move(0, 1)
		case "tab":
			m.cycleParam(1)
		case "shift+tab":
			m.cycleParam(-1)
		case "]":
			m.adjustParam(1)
		case "[":
			m.adjustParam(-1)
		case "f":
			m.fitted = false
		}
		m.draw()
	case TickMsg:
		if m.running {
			m.step()
			m.draw()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	m.opts.Cols, m.opts.Rows = cols, rows
	m.canvas = NewCanvas(cols, rows)
	m.draw()
}

func (m *Model) step() {
	switch s := m.sim.(type) {
	case gallery.PointCloudSimulation:
		s.Step(m.opts.Dt)
	case gallery.Animated:
		s.Tick(m.opts.Dt)
	}
	m.frames++
	m.elapsed += float64(m.opts.Dt)
}

func (m *Model) reset() {
	if r, ok := m.sim.(gallery.Resettable); ok {
		r.Reset()
	}
	m.frames, m.elapsed = 0, 0
	m.metric = m.metric[:0]
	m.fitted = false
	m.status = ""
}

// zoom scales the fractal view or the camera.
func (m *Model) zoom(in bool) {
	if p, ok := m.sim.(panner); ok {
		if in {
			p.ZoomBy(250)
		} else {
			p.ZoomBy(-200)
		}
		return
	}
	if in {
		m.camera.ZoomIn()
	} else {
		m.camera.ZoomOut()
	}
}

// move pans a raster view or orbits the camera.
func (m *Model) move(dx, dy int) {
	if p, ok := m.sim.(panner); ok {
		w, h := m.opts.Cols, m.opts.Rows*2
		p.Pan(-float64(dx)*panFraction*float64(w), -float64(dy)*panFraction*float64(h), w, h)
		return
	}
	m.camera.Rotate(float32(dx)*rotateStep, float32(dy)*rotateStep)
}

func (m *Model) params() []gallery.Param {
	if c, ok := m.sim.(gallery.Configurable); ok {
		return c.Params()
	}
	return nil
}

func (m *Model) cycleParam(dir int) {
	n := len(m.params())
	if n == 0 {
		return
	}
	m.selected = ((m.selected+dir)%n + n) % n
}

// adjustParam nudges the selected parameter one notch. Bounded floats move
// by a fiftieth of their range, unbounded ones by five percent.
func (m *Model) adjustParam(dir int) {
	c, ok := m.sim.(gallery.Configurable)
	if !ok {
		return
	}
	ps := c.Params()
	if len(ps) == 0 {
		return
	}
	p := ps[m.selected%len(ps)]
	v := nudge(p, float64(dir))
	if err := c.SetParam(p.Key, v); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
	m.fitted = false
}

func nudge(p gallery.Param, dir float64) float64 {
	v := p.Value()
	switch p.Kind {
	case gallery.ParamBool:
		return 1 - v
	case gallery.ParamInt, gallery.ParamChoice:
		v += dir
	default:
		if p.Max > p.Min {
			v += dir * (p.Max - p.Min) / 50
		} else if v == 0 {
			v = dir * 0.1
		} else {
			v *= 1 + dir*0.05
		}
	}
	if p.Max > p.Min {
		v = math.Min(math.Max(v, p.Min), p.Max)
	}
	return v
}

// draw renders the current frame and records the panel metric: mean radius
// for point clouds, lit coverage for rasters.
func (m *Model) draw() {
	var sample float64
	switch s := m.sim.(type) {
	case gallery.RasterSimulation:
		m.raster = s.Compute(m.opts.Cols, m.opts.Rows*2)
		sample = analysis.Coverage(m.raster, gallery.Black)
	case gallery.PointCloudSimulation:
		pts := s.Points()
		if !m.fitted {
			m.camera.Fit(pts)
			m.fitted = true
		}
		m.canvas.Clear()
		DrawPoints(m.canvas, m.camera, pts)
		sample = analysis.Stats(pts).Radius
	default:
		return
	}
	if math.IsNaN(sample) || math.IsInf(sample, 0) {
		return
	}
	m.metric = append(m.metric, sample)
	if len(m.metric) > historyCapacity {
		m.metric = m.metric[1:]
	}
}

func (m Model) metricName() string {
	if _, ok := m.sim.(gallery.RasterSimulation); ok {
		return "Coverage"
	}
	return "Radius"
}

func (m Model) View() string {
	theme := themes[m.theme]
	st := newStyles(theme)

	var view string
	if _, ok := m.sim.(gallery.RasterSimulation); ok {
		view = RenderHalfBlocks(m.raster)
	} else {
		view = st.dots.Render(strings.TrimSuffix(m.canvas.String(), "\n"))
	}

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.sim.Name())) + "\n")
	if m.running {
		s.WriteString(st.running.Render("RUNNING") + "\n")
	} else {
		s.WriteString(st.paused.Render("PAUSED") + "\n")
	}
	if len(m.metric) > 1 {
		chart := asciigraph.Plot(m.metric,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption(m.metricName()),
			asciigraph.SeriesColors(theme.Graph))
		s.WriteString(st.graph.Render(chart) + "\n")
	}
	s.WriteString(st.label.Render("Frames") + st.value.Render(fmt.Sprintf("%d", m.frames)) + "\n")
	s.WriteString(st.label.Render("Time") + st.value.Render(fmt.Sprintf("%.2fs", m.elapsed)) + "\n")
	if n := len(m.metric); n > 0 {
		s.WriteString(st.label.Render(m.metricName()) + st.value.Render(fmt.Sprintf("%.3f", m.metric[n-1])) + "\n")
	}
	s.WriteString(st.label.Render("Theme") + st.value.Render(theme.Name) + "\n")

	s.WriteString("\nPARAMETERS\n")
	ps := m.params()
	if len(ps) == 0 {
		s.WriteString(st.label.Render("  (none)") + "\n")
	}
	for i, p := range ps {
		val := fmt.Sprintf("%.4g", p.Value())
		if l := p.Label(); l != "" {
			val = l
		}
		line := fmt.Sprintf("%-16s %s %s", p.Key, ParamBar(p.Value(), p.Min, p.Max, 8), val)
		if i == m.selected%len(ps) {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.value.Render(line) + "\n")
		}
	}
	if m.status != "" {
		s.WriteString("\n" + st.errText.Render(m.status) + "\n")
	}
	s.WriteString(st.help.Render("SP:Pause R:Reset Q:Quit T:Theme ?:Help\nTab:Param [ ]:Tune +/-:Zoom Arrows:Move"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, st.canvas.Render(view), st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + main
	}
	return main
}

const helpText = `
  Space      pause or resume
  N          single step while paused
  R          reset
  Q          quit
  Tab        next parameter (shift+tab previous)
  [ ]        decrease or increase the parameter
  + -        zoom
  Arrows     pan a fractal, orbit a point cloud
  F          refit the camera
  T          cycle themes
  ?          toggle this help
`
