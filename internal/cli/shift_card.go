package cli

import (
	"sort"
	"strings"

	"github.com/mkovach/crewboard/internal/cli/formatter"
	"github.com/mkovach/crewboard/internal/domain"
	"github.com/mkovach/crewboard/internal/staffing"
)

// jobLabel resolves a shift's job reference against the loaded directory.
func (v *boardView) jobLabel(sh *domain.Shift) string {
	if sh.JobID == "" {
		return "(no job)"
	}
	for i := range v.state.Session.Jobs {
		if v.state.Session.Jobs[i].ID == sh.JobID {
			return v.state.Session.Jobs[i].Label()
		}
	}
	return sh.JobID
}

// renderShiftCard renders the full card for a shift: job, window, staffing
// indicator and per-role counts. Staffing is recomputed here on every
// render, never cached.
func (v *boardView) renderShiftCard(sh *domain.Shift, width int, selected bool) string {
	sum := staffing.Reconcile(sh.RoleRequirements, sh.AssignedWorkers)

	var b strings.Builder
	title := formatter.Truncate(v.jobLabel(sh), width-8)
	if selected {
		title = formatter.StyleHeader.Render("▸ " + title)
	} else {
		title = formatter.Bold(title)
	}
	b.WriteString(title)
	b.WriteString(" ")
	b.WriteString(formatter.StaffingIndicator(sum.Assigned, sum.Required, sum.Status))
	if sum.RoleMismatch {
		b.WriteString(" " + formatter.StyleYellow.Render("⚠ roles"))
	}
	b.WriteString("\n")

	b.WriteString("  " + formatter.Dim(formatter.FormatTimeRange(sh.Start, sh.End)))
	if sh.ClientPONumber != "" {
		b.WriteString(formatter.Dim("  PO " + sh.ClientPONumber))
	}
	b.WriteString("\n")

	// Stable role order for per-role counts.
	roles := make([]domain.Role, 0, len(sum.PerRole))
	for role := range sum.PerRole {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	if len(roles) > 0 {
		parts := make([]string, 0, len(roles))
		for _, role := range roles {
			rc := sum.PerRole[role]
			parts = append(parts, formatter.RoleShort(string(role))+" "+formatter.CountPair(rc.Assigned, rc.Required))
		}
		b.WriteString("  " + formatter.Dim(strings.Join(parts, "  ")) + "\n")
	}

	for _, a := range sh.AssignedWorkers {
		b.WriteString("  " + formatter.StyleFg.Render(formatter.Truncate(a.Name, width-8)) +
			formatter.Dim(" · "+formatter.RoleShort(string(a.RoleAssigned))) + "\n")
	}
	return b.String()
}

// compactShiftLine renders a one-line summary used in week columns.
func (v *boardView) compactShiftLine(sh *domain.Shift, width int) string {
	sum := staffing.Reconcile(sh.RoleRequirements, sh.AssignedWorkers)
	line := sh.Start.Format("15:04") + " " + formatter.Truncate(v.jobLabel(sh), width-12)
	return formatter.StaffingColor(sum.Status).Render("●") + " " + line
}
