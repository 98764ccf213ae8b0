package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	canvas  lipgloss.Style
	dots    lipgloss.Style
	panel   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	active  lipgloss.Style
	graph   lipgloss.Style
	help    lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	errText lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Padding(0, 1),
		dots:   lipgloss.NewStyle().Foreground(t.Dots),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(0, 2).
			Width(panelWidth),
		header:  lipgloss.NewStyle().Foreground(t.Title).Bold(true),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		active:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		graph:   lipgloss.NewStyle().Padding(1, 0),
		help:    lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		running: lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")).Bold(true),
		paused:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00")).Bold(true),
		errText: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")),
	}
}

// ParamBar renders where v sits in [lo, hi] as a fixed width bar.
// Unbounded ranges render empty.
func ParamBar(v, lo, hi float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if hi > lo {
		filled = int((v - lo) / (hi - lo) * float64(width))
		filled = min(max(filled, 0), width)
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}
