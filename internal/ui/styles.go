package ui

import "github.com/charmbracelet/lipgloss"

// Color palette. Single accent color, amber like a traffic light.
const (
	ColorAmber    = "214" // Primary accent - headers, codes
	ColorWhite    = "255" // Important text
	ColorGray     = "245" // Secondary text, labels
	ColorDarkGray = "238" // Separators
	ColorRed      = "196" // Errors, gravíssima
	ColorYellow   = "220" // Warnings, suggestions
)

// Styles holds the terminal styles for envelope rendering.
type Styles struct {
	Header     lipgloss.Style
	Code       lipgloss.Style
	Severity   lipgloss.Style
	Label      lipgloss.Style
	Dim        lipgloss.Style
	Error      lipgloss.Style
	Suggestion lipgloss.Style
}

// DefaultStyles returns styled components for terminal output.
func DefaultStyles() Styles {
	return Styles{
		Header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAmber)),
		Code:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Severity:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Label:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
	}
}

// NoColorStyles returns unstyled components for plain or piped output.
func NoColorStyles() Styles {
	return Styles{
		Header:     lipgloss.NewStyle(),
		Code:       lipgloss.NewStyle(),
		Severity:   lipgloss.NewStyle(),
		Label:      lipgloss.NewStyle(),
		Dim:        lipgloss.NewStyle(),
		Error:      lipgloss.NewStyle(),
		Suggestion: lipgloss.NewStyle(),
	}
}
