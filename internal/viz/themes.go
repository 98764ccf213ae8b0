package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme colors the panel, the dot canvas and the metric graph.
type Theme struct {
	Name   string
	Title  lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Dots   lipgloss.Color
	Border lipgloss.Color
	Graph  asciigraph.AnsiColor
}

var themes = []Theme{
	{
		Name:   "neon",
		Title:  lipgloss.Color("#ff00ff"),
		Accent: lipgloss.Color("#00ffff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666688"),
		Dots:   lipgloss.Color("#00ffff"),
		Border: lipgloss.Color("#444466"),
		Graph:  asciigraph.Fuchsia,
	},
	{
		Name:   "phosphor",
		Title:  lipgloss.Color("#00ff00"),
		Accent: lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Dots:   lipgloss.Color("#33ff33"),
		Border: lipgloss.Color("#005500"),
		Graph:  asciigraph.Lime,
	},
	{
		Name:   "mono",
		Title:  lipgloss.Color("#ffffff"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Dots:   lipgloss.Color("#ffffff"),
		Border: lipgloss.Color("#444444"),
		Graph:  asciigraph.White,
	},
	{
		Name:   "ocean",
		Title:  lipgloss.Color("#00a8cc"),
		Accent: lipgloss.Color("#ffd700"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Dots:   lipgloss.Color("#66ccff"),
		Border: lipgloss.Color("#0077be"),
		Graph:  asciigraph.DeepSkyBlue,
	},
	{
		Name:   "ember",
		Title:  lipgloss.Color("#ff6b6b"),
		Accent: lipgloss.Color("#feca57"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Dots:   lipgloss.Color("#ff9f43"),
		Border: lipgloss.Color("#8b6b8c"),
		Graph:  asciigraph.Orange,
	},
}

// Themes returns the built-in themes; the first is the default.
func Themes() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// ThemeByName returns the named theme, or the default and false.
func ThemeByName(name string) (Theme, bool) {
	for _, t := range themes {
		if t.Name == name {
			return t, true
		}
	}
	return themes[0], false
}

func themeIndex(name string) int {
	for i, t := range themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}
