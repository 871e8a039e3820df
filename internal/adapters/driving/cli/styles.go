package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// palette holds the colours used in terminal output.
var palette = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Border  lipgloss.Color
}{
	Primary: lipgloss.Color("#7C3AED"), // Purple
	Muted:   lipgloss.Color("#6C7086"), // Medium gray
	Success: lipgloss.Color("#A6E3A1"), // Green
	Warning: lipgloss.Color("#F9E2AF"), // Yellow
	Error:   lipgloss.Color("#F38BA8"), // Red
	Border:  lipgloss.Color("#45475A"), // Border gray
}

// Effectiveness thresholds for colouring, in percent.
const (
	goodEffectiveness = 85.0
	fairEffectiveness = 60.0
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(palette.Primary).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(palette.Muted)
	borderStyle = lipgloss.NewStyle().Foreground(palette.Border)
)

// effectivenessStyle colours a cell by how good the value is.
func effectivenessStyle(v float64) lipgloss.Style {
	switch {
	case v >= goodEffectiveness:
		return cellStyle.Foreground(palette.Success)
	case v >= fairEffectiveness:
		return cellStyle.Foreground(palette.Warning)
	default:
		return cellStyle.Foreground(palette.Error)
	}
}
