package automata

// pattern is a list of live cell offsets.
type pattern [][2]int

type namedPattern struct {
	name     string
	cells    pattern
	centered bool
}

var lifePatterns = []namedPattern{
	{"glider-gun", pattern{
		{1, 5}, {1, 6}, {2, 5}, {2, 6},
		{11, 5}, {11, 6}, {11, 7}, {12, 4}, {12, 8}, {13, 3}, {13, 9}, {14, 3}, {14, 9},
		{15, 6}, {16, 4}, {16, 8}, {17, 5}, {17, 6}, {17, 7}, {18, 6},
		{21, 3}, {21, 4}, {21, 5}, {22, 3}, {22, 4}, {22, 5}, {23, 2}, {23, 6},
		{25, 1}, {25, 2}, {25, 6}, {25, 7},
		{35, 3}, {35, 4}, {36, 3}, {36, 4},
	}, false},
	{"glider", pattern{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}, true},
	{"pulsar", pattern{
		{2, 0}, {3, 0}, {4, 0}, {8, 0}, {9, 0}, {10, 0},
		{0, 2}, {5, 2}, {7, 2}, {12, 2},
		{0, 3}, {5, 3}, {7, 3}, {12, 3},
		{0, 4}, {5, 4}, {7, 4}, {12, 4},
		{2, 5}, {3, 5}, {4, 5}, {8, 5}, {9, 5}, {10, 5},
		{2, 7}, {3, 7}, {4, 7}, {8, 7}, {9, 7}, {10, 7},
		{0, 8}, {5, 8}, {7, 8}, {12, 8},
		{0, 9}, {5, 9}, {7, 9}, {12, 9},
		{0, 10}, {5, 10}, {7, 10}, {12, 10},
		{2, 12}, {3, 12}, {4, 12}, {8, 12}, {9, 12}, {10, 12},
	}, true},
	{"pentadecathlon", pattern{
		{0, 1}, {1, 1}, {2, 1}, {3, 1}, {4, 1}, {5, 1}, {6, 1}, {7, 1},
		{0, 0}, {2, 0}, {5, 0}, {7, 0},
		{0, 2}, {2, 2}, {5, 2}, {7, 2},
	}, true},
	{"lwss", pattern{{1, 0}, {4, 0}, {0, 1}, {0, 2}, {4, 2}, {0, 3}, {1, 3}, {2, 3}, {3, 3}}, true},
	{"acorn", pattern{{1, 0}, {3, 1}, {0, 2}, {1, 2}, {4, 2}, {5, 2}, {6, 2}}, true},
	{"blinker", pattern{{0, 0}, {1, 0}, {2, 0}}, true},
	{"random", nil, false},
}

// PatternNames lists the Life seed patterns.
func PatternNames() []string {
	out := make([]string, len(lifePatterns))
	for i, p := range lifePatterns {
		out[i] = p.name
	}
	return out
}

// stamp writes the pattern into g at the given origin, clipping at the edges.
func (p pattern) stamp(g *Grid, ox, oy int, v uint8) {
	for _, c := range p {
		g.Set(ox+c[0], oy+c[1], v)
	}
}
