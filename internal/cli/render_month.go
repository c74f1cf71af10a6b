package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mkovach/crewboard/internal/cli/formatter"
	"github.com/mkovach/crewboard/internal/staffing"
)

var weekdayHeadings = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// renderMonth renders the full-week month grid. Other-month cells are
// dimmed but remain valid cursor and drop targets.
func (v *boardView) renderMonth(width int) string {
	session := v.state.Session
	grid := session.Grid()
	cellWidth := width/7 - 1
	if cellWidth < 6 {
		cellWidth = 6
	}

	var b strings.Builder
	for _, h := range weekdayHeadings {
		b.WriteString(formatter.Bold(formatter.PadRight(h, cellWidth)) + " ")
	}
	b.WriteString("\n")

	for row := 0; row*7 < len(grid); row++ {
		cells := make([]string, 0, 7)
		for col := 0; col < 7; col++ {
			i := row*7 + col
			cells = append(cells, v.renderMonthCell(i, cellWidth))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	if sh := v.selectedShift(); sh != nil {
		b.WriteString("\n" + v.renderShiftCard(sh, width, true))
	}
	if n := len(session.Index.Unscheduled); n > 0 {
		b.WriteString(formatter.StyleYellow.Render(strconv.Itoa(n) + " unscheduled shift(s)\n"))
	}
	return b.String()
}

func (v *boardView) renderMonthCell(i, cellWidth int) string {
	session := v.state.Session
	grid := session.Grid()
	bucket := grid[i]

	day := strconv.Itoa(bucket.Date.Day())
	shifts := session.Index.ByDate(bucket.DateKey())

	var line string
	switch {
	case i == v.cursor && v.state.Drop.Dragging() != nil:
		line = formatter.StyleHeader.Render("▼" + day)
	case i == v.cursor:
		line = formatter.StyleHeader.Render(">" + day)
	case bucket.OtherMonth:
		line = formatter.Dim(" " + day)
	default:
		line = formatter.StyleFg.Render(" " + day)
	}

	if len(shifts) > 0 {
		// Badge colored by the worst staffing status in the cell.
		worst := staffing.Reconcile(shifts[0].RoleRequirements, shifts[0].AssignedWorkers).Status
		for _, sh := range shifts[1:] {
			s := staffing.Reconcile(sh.RoleRequirements, sh.AssignedWorkers).Status
			if statusSeverity(s) > statusSeverity(worst) {
				worst = s
			}
		}
		line += formatter.StaffingColor(worst).Render(" " + strconv.Itoa(len(shifts)) + "●")
	}

	return lipgloss.NewStyle().Width(cellWidth + 1).Render(line)
}
