package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle  = lipgloss.NewStyle().Padding(1, 2)
	statsStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(11)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	limitedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("108")).Padding(1, 0)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// ProgressBar renders season progress as a fixed-width bar.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}
