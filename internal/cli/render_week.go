package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mkovach/crewboard/internal/cli/formatter"
)

// renderWeek renders seven day columns. The selected column carries the
// hour cursor so drops land on a concrete hour slot.
func (v *boardView) renderWeek(width int) string {
	session := v.state.Session
	grid := session.Grid()
	colWidth := width/7 - 1
	if colWidth < 8 {
		colWidth = 8
	}

	cols := make([]string, 0, 7)
	for i, bucket := range grid {
		var b strings.Builder

		heading := formatter.FormatDateHeading(bucket.Date)
		if i == v.cursor {
			hour := strconv.Itoa(v.hourCursor)
			if v.hourCursor < 10 {
				hour = "0" + hour
			}
			b.WriteString(formatter.StyleHeader.Render(formatter.PadRight(heading, colWidth)) + "\n")
			if v.state.Drop.Dragging() != nil {
				b.WriteString(formatter.StyleHeader.Render("▼ "+hour+":00") + "\n")
			} else {
				b.WriteString(formatter.StyleBlue.Render("@ "+hour+":00") + "\n")
			}
		} else {
			b.WriteString(formatter.Bold(formatter.PadRight(heading, colWidth)) + "\n")
			b.WriteString("\n")
		}

		shifts := session.Index.ByDate(bucket.DateKey())
		if len(shifts) == 0 {
			b.WriteString(formatter.Dim("—") + "\n")
		}
		for j := range shifts {
			line := v.compactShiftLine(&shifts[j], colWidth)
			if i == v.cursor && j == v.shiftCursor {
				line = formatter.StyleHeader.Render("▸") + line
			}
			b.WriteString(line + "\n")
		}

		cols = append(cols, lipgloss.NewStyle().Width(colWidth).Render(b.String()))
	}

	out := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	if n := len(session.Index.Unscheduled); n > 0 {
		out += "\n" + formatter.StyleYellow.Render(strconv.Itoa(n)+" unscheduled shift(s)")
	}
	return out
}
