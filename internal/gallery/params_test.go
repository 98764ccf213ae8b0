package gallery

import (
	"errors"
	"math"
	"testing"
)

type mode int

type testConfig struct {
	Zoom   float64
	Count  int
	Smooth bool
	Mode   mode
	Speed  float32
}

func (c *testConfig) Params() []Param {
	return []Param{
		Float("zoom", &c.Zoom, 0.1, 100),
		Int("count", &c.Count, 0, 10),
		Bool("smooth", &c.Smooth),
		Choice("mode", &c.Mode, "a", "b", "c"),
		Float32("speed", &c.Speed, 0, 0),
	}
}

type testSim struct{ cfg testConfig }

func (s *testSim) Name() string { return "test" }

func (s *testSim) Params() []Param {
	cfg := s.cfg
	return cfg.Params()
}

func (s *testSim) GetParams() map[string]float64 { return Values(s.Params()) }

func (s *testSim) SetParam(name string, v float64) error {
	cfg := s.cfg
	if err := Assign(s.Name(), cfg.Params(), name, v); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

func TestAssign(t *testing.T) {
	tests := []struct {
		name    string
		param   string
		value   float64
		wantErr error
	}{
		{"float in range", "zoom", 50, nil},
		{"float too high", "zoom", 500, ErrParameterBounds},
		{"int rounds", "count", 3.6, nil},
		{"int out of range", "count", 11, ErrParameterBounds},
		{"bool", "smooth", 1, nil},
		{"choice", "mode", 2, nil},
		{"choice out of range", "mode", 3, ErrParameterBounds},
		{"unbounded float", "speed", 1e6, nil},
		{"nan rejected", "speed", math.NaN(), ErrParameterBounds},
		{"unknown", "nope", 1, ErrUnknownParam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &testSim{}
			err := s.SetParam(tt.param, tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSetParamWritesThrough(t *testing.T) {
	s := &testSim{}
	if err := s.SetParam("count", 3.6); err != nil {
		t.Fatal(err)
	}
	if s.cfg.Count != 4 {
		t.Errorf("expected count 4, got %d", s.cfg.Count)
	}
	if err := s.SetParam("mode", 2); err != nil {
		t.Fatal(err)
	}
	if s.cfg.Mode != 2 {
		t.Errorf("expected mode 2, got %d", s.cfg.Mode)
	}

	before := s.cfg
	_ = s.SetParam("zoom", 1000)
	if s.cfg != before {
		t.Error("failed assignment must not change config")
	}
}

func TestApply(t *testing.T) {
	s := &testSim{}
	err := Apply(s, map[string]float64{"zoom": 2, "smooth": 1})
	if err != nil {
		t.Fatal(err)
	}
	vals := s.GetParams()
	if vals["zoom"] != 2 || vals["smooth"] != 1 {
		t.Errorf("unexpected values: %v", vals)
	}

	var pe *ParamError
	err = Apply(s, map[string]float64{"missing": 1})
	if !errors.As(err, &pe) || pe.Param != "missing" {
		t.Errorf("expected ParamError for missing, got %v", err)
	}
}

func TestChoiceLabel(t *testing.T) {
	cfg := testConfig{Mode: 1}
	for _, p := range cfg.Params() {
		if p.Key == "mode" && p.Label() != "b" {
			t.Errorf("expected label b, got %q", p.Label())
		}
	}
}

type shade uint8

func TestChoiceByteEnum(t *testing.T) {
	var s shade
	params := []Param{Choice("shade", &s, "dark", "mid", "light")}
	if err := Assign("test", params, "shade", 2); err != nil {
		t.Fatal(err)
	}
	if s != 2 {
		t.Errorf("expected shade 2, got %d", s)
	}
	if params[0].Label() != "light" {
		t.Errorf("expected label light, got %q", params[0].Label())
	}
	if err := Assign("test", params, "shade", 3); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("expected bounds error, got %v", err)
	}
}
