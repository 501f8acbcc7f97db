package charts

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"})
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316")).Bold(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#243141")).Padding(0, 1)
)

// Placeholder renders the explicit empty-state panel every chart falls
// back to: absent input never yields a blank or broken frame.
func Placeholder(msg string, w, h int) string {
	box := boxStyle.Render(dimStyle.Render(msg))
	return lipgloss.Place(max(10, w), max(3, h), lipgloss.Center, lipgloss.Center, box)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}

func padTo(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
