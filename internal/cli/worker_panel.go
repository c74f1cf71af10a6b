package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mkovach/crewboard/internal/cli/formatter"
	"github.com/mkovach/crewboard/internal/domain"
)

// statusSeverity orders staffing statuses from healthy to urgent, for
// picking a cell badge color.
func statusSeverity(s domain.StaffingStatus) int {
	switch s {
	case domain.StaffingFullyStaffed:
		return 0
	case domain.StaffingOverstaffed:
		return 1
	case domain.StaffingUnderstaffed:
		return 2
	case domain.StaffingNoWorkers:
		return 3
	}
	return 0
}

// renderWorkerPanel renders the drag-source worker list. Unavailable
// workers are dimmed; they refuse to be grabbed.
func (v *boardView) renderWorkerPanel(width int) string {
	session := v.state.Session
	dragged := v.state.Drop.Dragging()

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("Workers") + "\n")

	if len(session.Workers) == 0 {
		b.WriteString(formatter.Dim("no workers loaded") + "\n")
	}

	for i := range session.Workers {
		w := &session.Workers[i]

		marker := "  "
		if v.focus == focusWorkers && i == v.workerCursor {
			marker = formatter.StyleHeader.Render("> ")
		}

		name := formatter.Truncate(w.Name, width-12)
		switch {
		case dragged != nil && dragged.ID == w.ID:
			name = formatter.StyleHeader.Render(name + " ✥")
		case !w.Available:
			name = formatter.Dim(name + " (off)")
		default:
			name = formatter.StyleFg.Render(name)
		}

		b.WriteString(marker + name + "\n")
		b.WriteString("    " + formatter.Dim(
			formatter.RoleShort(string(w.DefaultRole()))+
				" · "+strconv.Itoa(w.AvailabilityScore)+"%"+
				" · "+strconv.Itoa(w.CurrentShiftsCount)+" shifts") + "\n")
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}
