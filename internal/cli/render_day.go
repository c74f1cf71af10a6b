package cli

import (
	"strconv"
	"strings"

	"github.com/mkovach/crewboard/internal/cli/formatter"
)

// renderDay renders 24 hour rows for the anchor date. Hours holding shifts
// expand into cards; empty hours collapse to a single line.
func (v *boardView) renderDay(width int) string {
	session := v.state.Session
	grid := session.Grid()

	var b strings.Builder
	for i, bucket := range grid {
		label := strconv.Itoa(bucket.Hour)
		if bucket.Hour < 10 {
			label = "0" + label
		}
		label += ":00"

		marker := "  "
		if i == v.cursor {
			if v.state.Drop.Dragging() != nil {
				marker = formatter.StyleHeader.Render("▼ ")
			} else {
				marker = formatter.StyleHeader.Render("> ")
			}
			label = formatter.StyleHeader.Render(label)
		} else {
			label = formatter.Dim(label)
		}

		shifts := session.Index.AtBucket(bucket)
		b.WriteString(marker + label)
		if len(shifts) == 0 {
			b.WriteString("\n")
			continue
		}
		b.WriteString("\n")
		for j := range shifts {
			selected := i == v.cursor && j == v.shiftCursor
			card := v.renderShiftCard(&shifts[j], width-6, selected)
			for _, line := range strings.Split(strings.TrimRight(card, "\n"), "\n") {
				b.WriteString("      " + line + "\n")
			}
		}
	}

	if n := len(session.Index.Unscheduled); n > 0 {
		b.WriteString(formatter.StyleYellow.Render("\n" + strconv.Itoa(n) + " unscheduled shift(s)"))
		b.WriteString("\n")
	}
	return b.String()
}
