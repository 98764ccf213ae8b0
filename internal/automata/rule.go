package automata

import (
	"fmt"
	"strings"
)

// Rule is an outer-totalistic Life-like rule stored as birth and survival
// bitmasks over neighbor counts 0..8.
type Rule struct {
	Birth   uint16
	Survive uint16
}

// ParseRule reads rules in B/S notation such as "B3/S23" or "b36/s23". The
// two parts may appear in either order and either may be empty.
func ParseRule(s string) (Rule, error) {
	var r Rule
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(s)), "/")
	if len(parts) != 2 {
		return r, fmt.Errorf("invalid rule %q: want B<digits>/S<digits>", s)
	}
	seen := map[byte]bool{}
	for _, p := range parts {
		if p == "" {
			return r, fmt.Errorf("invalid rule %q: empty part", s)
		}
		kind := p[0]
		if (kind != 'B' && kind != 'S') || seen[kind] {
			return r, fmt.Errorf("invalid rule %q: unexpected %q", s, p)
		}
		seen[kind] = true
		var mask uint16
		for _, c := range p[1:] {
			if c < '0' || c > '8' {
				return r, fmt.Errorf("invalid rule %q: bad count %q", s, c)
			}
			mask |= 1 << (c - '0')
		}
		if kind == 'B' {
			r.Birth = mask
		} else {
			r.Survive = mask
		}
	}
	return r, nil
}

func MustParseRule(s string) Rule {
	r, err := ParseRule(s)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Rule) String() string {
	var b strings.Builder
	b.WriteByte('B')
	for i := 0; i <= 8; i++ {
		if r.Birth&(1<<i) != 0 {
			b.WriteByte(byte('0' + i))
		}
	}
	b.WriteString("/S")
	for i := 0; i <= 8; i++ {
		if r.Survive&(1<<i) != 0 {
			b.WriteByte(byte('0' + i))
		}
	}
	return b.String()
}

// NextState applies the rule to one cell with n live neighbors.
func (r Rule) NextState(alive bool, n int) bool {
	if n < 0 || n > 8 {
		return false
	}
	if alive {
		return r.Survive&(1<<n) != 0
	}
	return r.Birth&(1<<n) != 0
}

type namedRule struct {
	name string
	rule Rule
}

var lifeRules = []namedRule{
	{"conway", MustParseRule("B3/S23")},
	{"highlife", MustParseRule("B36/S23")},
	{"seeds", MustParseRule("B2/S")},
	{"life-without-death", MustParseRule("B3/S012345678")},
	{"day-night", MustParseRule("B3678/S34678")},
	{"maze", MustParseRule("B3/S12345")},
}

// RuleNames lists the built-in Life rules.
func RuleNames() []string {
	out := make([]string, len(lifeRules))
	for i, r := range lifeRules {
		out[i] = r.name
	}
	return out
}

// LookupRule returns a built-in rule by name.
func LookupRule(name string) (Rule, bool) {
	for _, r := range lifeRules {
		if r.name == name {
			return r.rule, true
		}
	}
	return Rule{}, false
}
