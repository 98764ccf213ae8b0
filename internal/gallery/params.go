package gallery

import (
	"math"
	"sort"
)

type ParamKind string

const (
	ParamFloat  ParamKind = "float"
	ParamInt    ParamKind = "int"
	ParamBool   ParamKind = "bool"
	ParamChoice ParamKind = "choice"
)

// Param describes one tunable value and binds it to a config field. Bounds
// are inclusive; Min == Max means unbounded.
type Param struct {
	Key     string
	Kind    ParamKind
	Min     float64
	Max     float64
	Choices []string

	get func() float64
	set func(float64)
}

// Configurable is the generic numeric parameter surface used by the host.
type Configurable interface {
	Params() []Param
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

func Float(key string, p *float64, min, max float64) Param {
	return Param{
		Key: key, Kind: ParamFloat, Min: min, Max: max,
		get: func() float64 { return *p },
		set: func(v float64) { *p = v },
	}
}

func Float32(key string, p *float32, min, max float64) Param {
	return Param{
		Key: key, Kind: ParamFloat, Min: min, Max: max,
		get: func() float64 { return float64(*p) },
		set: func(v float64) { *p = float32(v) },
	}
}

func Int(key string, p *int, min, max int) Param {
	return Param{
		Key: key, Kind: ParamInt, Min: float64(min), Max: float64(max),
		get: func() float64 { return float64(*p) },
		set: func(v float64) { *p = int(math.Round(v)) },
	}
}

func Bool(key string, p *bool) Param {
	return Param{
		Key: key, Kind: ParamBool, Min: 0, Max: 1,
		get: func() float64 {
			if *p {
				return 1
			}
			return 0
		},
		set: func(v float64) { *p = v != 0 },
	}
}

// Choice binds an enum-like field whose values index choices.
func Choice[T ~int | ~uint8](key string, p *T, choices ...string) Param {
	return Param{
		Key: key, Kind: ParamChoice, Min: 0, Max: float64(len(choices) - 1), Choices: choices,
		get: func() float64 { return float64(*p) },
		set: func(v float64) { *p = T(int(math.Round(v))) },
	}
}

func (p Param) Value() float64 {
	if p.get == nil {
		return 0
	}
	return p.get()
}

// Label renders the current value, using the choice name for enums.
func (p Param) Label() string {
	if p.Kind == ParamChoice {
		i := int(p.Value())
		if i >= 0 && i < len(p.Choices) {
			return p.Choices[i]
		}
	}
	return ""
}

func (p Param) inBounds(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	if p.Max <= p.Min && p.Kind == ParamFloat {
		return true
	}
	return v >= p.Min && v <= p.Max
}

// Values snapshots the current value of every parameter.
func Values(params []Param) map[string]float64 {
	out := make(map[string]float64, len(params))
	for _, p := range params {
		out[p.Key] = p.Value()
	}
	return out
}

// Keys returns parameter names in sorted order.
func Keys(params []Param) []string {
	keys := make([]string, 0, len(params))
	for _, p := range params {
		keys = append(keys, p.Key)
	}
	sort.Strings(keys)
	return keys
}

// Assign validates v against the named parameter and writes it through the
// binding.
func Assign(sim string, params []Param, name string, v float64) error {
	for _, p := range params {
		if p.Key != name {
			continue
		}
		if !p.inBounds(v) {
			return &ParamError{Sim: sim, Param: name, Value: v, Wrapped: ErrParameterBounds}
		}
		p.set(v)
		return nil
	}
	return &ParamError{Sim: sim, Param: name, Value: v, Wrapped: ErrUnknownParam}
}

// Apply pushes every entry of values through sim's parameter surface.
// Names are applied in sorted order so failures are reproducible.
func Apply(sim Simulation, values map[string]float64) error {
	if len(values) == 0 {
		return nil
	}
	c, ok := sim.(Configurable)
	if !ok {
		return ErrNotConfigurable
	}
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		if err := c.SetParam(k, values[k]); err != nil {
			return err
		}
	}
	return nil
}
