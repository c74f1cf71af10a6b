package formatter

import (
	"fmt"
	"strings"
	"time"
)

// Dim renders s in the dim style.
func Dim(s string) string { return StyleDim.Render(s) }

// Bold renders s in the bold foreground style.
func Bold(s string) string { return StyleBold.Render(s) }

// CountPair renders "assigned/required".
func CountPair(assigned, required int) string {
	return fmt.Sprintf("%d/%d", assigned, required)
}

// Truncate shortens s to max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// PadRight pads s with spaces to exactly width display cells, truncating
// when longer.
func PadRight(s string, width int) string {
	t := Truncate(s, width)
	if pad := width - len([]rune(t)); pad > 0 {
		return t + strings.Repeat(" ", pad)
	}
	return t
}

// FormatTimeRange renders a shift window like "09:00–13:00".
func FormatTimeRange(start, end time.Time) string {
	if start.IsZero() {
		return "unscheduled"
	}
	return start.Format("15:04") + "–" + end.Format("15:04")
}

// FormatDateHeading renders a bucket date like "Mon Mar 4".
func FormatDateHeading(t time.Time) string {
	return t.Format("Mon Jan 2")
}

// RoleShort abbreviates a role string for narrow cells.
func RoleShort(role string) string {
	switch role {
	case "stagehand":
		return "SH"
	case "crew_chief":
		return "CC"
	case "forklift_operator":
		return "FO"
	case "truck_driver":
		return "TD"
	}
	return strings.ToUpper(Truncate(role, 2))
}
