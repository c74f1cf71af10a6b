package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mkovach/crewboard/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StaffingColor returns the style for a staffing status.
func StaffingColor(status domain.StaffingStatus) lipgloss.Style {
	switch status {
	case domain.StaffingFullyStaffed:
		return StyleGreen
	case domain.StaffingUnderstaffed:
		return StyleYellow
	case domain.StaffingOverstaffed:
		return StylePurple
	case domain.StaffingNoWorkers:
		return StyleRed
	default:
		return StyleDim
	}
}

// StaffingIndicator returns a colored fill indicator such as "● 2/3".
func StaffingIndicator(assigned, required int, status domain.StaffingStatus) string {
	return StaffingColor(status).Render("● " + CountPair(assigned, required))
}
