package viz

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/simgallery/internal/gallery"
)

func TestCanvasSetAndString(t *testing.T) {
	c := NewCanvas(2, 1)
	if w, h := c.Dots(); w != 4 || h != 4 {
		t.Fatalf("expected 4x4 dots, got %dx%d", w, h)
	}
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	rows := c.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	runes := []rune(rows[0])
	if runes[0] != brailleBase+0x1 {
		t.Errorf("expected dot 1, got %U", runes[0])
	}
	if runes[1] != brailleBase+0x80 {
		t.Errorf("expected dot 8, got %U", runes[1])
	}
	if c.Lit() != 2 {
		t.Errorf("expected 2 lit dots, got %d", c.Lit())
	}

	c.Unset(0, 0)
	if c.IsSet(0, 0) || !c.IsSet(3, 3) {
		t.Error("unset cleared the wrong dot")
	}
	c.Clear()
	if c.Lit() != 0 {
		t.Error("expected empty canvas after Clear")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"horizontal", 0, 0, 9, 0, 10},
		{"vertical", 2, 0, 2, 7, 8},
		{"diagonal", 0, 0, 7, 7, 8},
		{"single", 3, 3, 3, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(5, 2)
			c.DrawLine(tt.x0, tt.y0, tt.x1, tt.y1)
			if c.Lit() != tt.want {
				t.Errorf("expected %d dots, got %d", tt.want, c.Lit())
			}
			if !c.IsSet(tt.x0, tt.y0) || !c.IsSet(tt.x1, tt.y1) {
				t.Error("line must include both endpoints")
			}
		})
	}
}

func TestCameraProjectCentre(t *testing.T) {
	cam := NewCamera()
	x, y, _, ok := cam.Project(gallery.Point3{}, 100, 80)
	if !ok || x != 50 || y != 40 {
		t.Errorf("expected centre (50,40), got (%d,%d) ok=%v", x, y, ok)
	}
	if _, _, _, ok := cam.Project(gallery.Point3{}, 0, 0); ok {
		t.Error("empty screen must not project")
	}
	nan := float32(math.NaN())
	if _, _, _, ok := cam.Project(gallery.Point3{nan, 0, 0}, 100, 80); ok {
		t.Error("NaN point must not project")
	}
}

func TestCameraOrientation(t *testing.T) {
	cam := NewCamera()
	cam.Distance = 0
	sw, sh := 100, 100

	x, _, _, _ := cam.Project(gallery.Point3{0.5, 0, 0}, sw, sh)
	if x <= 50 {
		t.Errorf("+x should land right of centre, got %d", x)
	}
	_, y, _, _ := cam.Project(gallery.Point3{0, 0.5, 0}, sw, sh)
	if y >= 50 {
		t.Errorf("+y should land above centre, got %d", y)
	}

	cam.ZUp()
	cam.Pitch = -math.Pi / 2
	_, y, _, _ = cam.Project(gallery.Point3{0, 0, 0.5}, sw, sh)
	if y >= 50 {
		t.Errorf("with z up, +z should land above centre, got %d", y)
	}
}

func TestCameraFit(t *testing.T) {
	pts := []gallery.Point3{{10, 10, 10}, {20, 10, 10}, {15, 30, 10}}
	cam := NewCamera()
	cam.Distance = 0
	cam.Fit(pts)
	for _, p := range pts {
		if _, _, _, ok := cam.Project(p, 80, 60); !ok {
			t.Errorf("fitted point %v fell off screen", p)
		}
	}

	before := *cam
	cam.Fit(nil)
	if *cam != before {
		t.Error("fitting nothing must leave the camera unchanged")
	}
}

func TestCameraZoomClamped(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 100; i++ {
		cam.ZoomIn()
	}
	if cam.Zoom != maxZoom {
		t.Errorf("expected zoom %v, got %v", float32(maxZoom), cam.Zoom)
	}
	for i := 0; i < 100; i++ {
		cam.ZoomOut()
	}
	if cam.Zoom != minZoom {
		t.Errorf("expected zoom %v, got %v", float32(minZoom), cam.Zoom)
	}
}

func TestCameraBehindEye(t *testing.T) {
	cam := NewCamera()
	if _, _, _, ok := cam.Project(gallery.Point3{0, 0, 10}, 100, 100); ok {
		t.Error("point behind the eye must not project")
	}
}

func TestDrawPoints(t *testing.T) {
	c := NewCanvas(20, 10)
	cam := NewCamera()
	pts := []gallery.Point3{{0, 0, 0}, {0.2, 0.2, 0}, {100, 0, 0}}
	if n := DrawPoints(c, cam, pts); n != 2 {
		t.Errorf("expected 2 visible points, got %d", n)
	}
	DrawAxes(c, cam, 0.5)
	if c.Lit() <= 2 {
		t.Error("expected axes to light dots")
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	buf := gallery.NewPixelBuffer(4, 5)
	out := RenderHalfBlocks(buf)
	if got := strings.Count(out, halfBlock); got != 4*3 {
		t.Errorf("expected %d blocks, got %d", 12, got)
	}
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("expected 3 lines, got %d newlines", got)
	}
	if RenderHalfBlocks(gallery.PixelBuffer{}) != "" {
		t.Error("empty buffer must render nothing")
	}
}

func TestThemes(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(Themes()) || len(names) == 0 {
		t.Fatalf("theme lists disagree")
	}
	for _, n := range names {
		if th, ok := ThemeByName(n); !ok || th.Name != n {
			t.Errorf("%s: lookup failed", n)
		}
	}
	if th, ok := ThemeByName("plaid"); ok || th.Name != names[0] {
		t.Error("unknown theme should fall back to the default")
	}
}

func TestParamBar(t *testing.T) {
	tests := []struct {
		v, lo, hi float64
		want      string
	}{
		{0, 0, 10, "[----]"},
		{5, 0, 10, "[==--]"},
		{20, 0, 10, "[====]"},
		{3, 0, 0, "[----]"},
	}
	for _, tt := range tests {
		if got := ParamBar(tt.v, tt.lo, tt.hi, 4); got != tt.want {
			t.Errorf("ParamBar(%v, %v, %v) = %s, expected %s", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

type fakeCloud struct {
	cfg   struct{ Spread float64 }
	steps int
}

func (f *fakeCloud) Name() string { return "fake" }
func (f *fakeCloud) Step(dt float32) {
	f.steps++
}
func (f *fakeCloud) Points() []gallery.Point3 {
	s := float32(f.cfg.Spread)
	return []gallery.Point3{{-s, 0, 0}, {s, 0, 0}, {0, s, 0}}
}
func (f *fakeCloud) Reset() { f.steps = 0 }
func (f *fakeCloud) Params() []gallery.Param {
	cfg := f.cfg
	return []gallery.Param{gallery.Float("spread", &cfg.Spread, 0, 10)}
}
func (f *fakeCloud) GetParams() map[string]float64 { return gallery.Values(f.Params()) }
func (f *fakeCloud) SetParam(name string, v float64) error {
	cfg := f.cfg
	if err := gallery.Assign(f.Name(), []gallery.Param{gallery.Float("spread", &cfg.Spread, 0, 10)}, name, v); err != nil {
		return err
	}
	f.cfg = cfg
	return nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelStepsAndPauses(t *testing.T) {
	sim := &fakeCloud{}
	sim.cfg.Spread = 1
	m := NewModel(sim, Options{Cols: 20, Rows: 10})

	m = update(m, TickMsg{})
	m = update(m, TickMsg{})
	if sim.steps != 2 || m.frames != 2 {
		t.Fatalf("expected 2 steps, got %d (frames %d)", sim.steps, m.frames)
	}

	m = update(m, key(" "))
	m = update(m, TickMsg{})
	if sim.steps != 2 {
		t.Errorf("paused model stepped: %d", sim.steps)
	}
	m = update(m, key("n"))
	if sim.steps != 3 {
		t.Errorf("expected single step while paused, got %d", sim.steps)
	}

	m = update(m, key("r"))
	if sim.steps != 0 || m.frames != 0 || m.elapsed != 0 {
		t.Error("reset should clear the simulation and counters")
	}
}

func TestModelAdjustParam(t *testing.T) {
	sim := &fakeCloud{}
	sim.cfg.Spread = 5
	m := NewModel(sim, Options{})

	m = update(m, key("]"))
	if math.Abs(sim.cfg.Spread-5.2) > 1e-9 {
		t.Errorf("expected spread 5.2, got %v", sim.cfg.Spread)
	}
	for i := 0; i < 100; i++ {
		m = update(m, key("["))
	}
	if sim.cfg.Spread != 0 {
		t.Errorf("expected spread clamped to 0, got %v", sim.cfg.Spread)
	}
	if m.status != "" {
		t.Errorf("clamped adjustments should not error: %s", m.status)
	}
}

func TestModelView(t *testing.T) {
	sim := &fakeCloud{}
	sim.cfg.Spread = 1
	m := NewModel(sim, Options{Cols: 20, Rows: 6})
	m = update(m, TickMsg{})
	m = update(m, TickMsg{})

	v := m.View()
	for _, want := range []string{"FAKE", "RUNNING", "spread", "Radius"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = update(m, key("?"))
	if !strings.Contains(m.View(), "toggle this help") {
		t.Error("expected help overlay")
	}
	if !utf8.ValidString(m.View()) {
		t.Error("view is not valid UTF-8")
	}
}

func TestModelQuits(t *testing.T) {
	m := NewModel(&fakeCloud{}, Options{})
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestNudge(t *testing.T) {
	var b bool
	var n int
	p := gallery.Bool("on", &b)
	if nudge(p, 1) != 1 {
		t.Error("bool should toggle on")
	}
	q := gallery.Int("count", &n, 0, 3)
	if nudge(q, -1) != 0 {
		t.Error("int should clamp at its minimum")
	}
	var f float64
	u := gallery.Float("free", &f, 0, 0)
	if nudge(u, 1) != 0.1 {
		t.Error("unbounded zero should step to 0.1")
	}
}
