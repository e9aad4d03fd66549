package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles are derived from the active theme on every render.
type styles struct {
	wire, active  lipgloss.Style
	canvas, stats lipgloss.Style
	header, label lipgloss.Style
	value, graph  lipgloss.Style
	solved        lipgloss.Style
	paused, help  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		wire:   lipgloss.NewStyle().Foreground(t.Wire),
		active: lipgloss.NewStyle().Foreground(t.Active).Bold(true),
		canvas: lipgloss.NewStyle().Padding(1, 2),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(statsWidth),
		header: lipgloss.NewStyle().Foreground(t.Header).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		graph:  lipgloss.NewStyle().Foreground(t.Graph).Padding(1, 0),
		solved: lipgloss.NewStyle().Foreground(t.Solved).Bold(true),
		paused: lipgloss.NewStyle().Foreground(t.Paused).Bold(true),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
	}
}

// ProgressBar renders a fraction in [0, 1] as a fixed-width bar.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
