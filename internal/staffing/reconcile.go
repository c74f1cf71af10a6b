// Package staffing reconciles a shift's role requirements against its
// assigned roster and classifies the fill level.
package staffing

import "github.com/mkovach/crewboard/internal/domain"

// RoleCount pairs required and assigned headcounts for one role.
type RoleCount struct {
	Required int
	Assigned int
}

// Summary is the derived staffing picture for one shift. It is recomputed
// on every render and never cached.
type Summary struct {
	Required int
	Assigned int
	Status   domain.StaffingStatus

	// PerRole covers every role with a nonzero requirement, plus any role
	// somebody is assigned to (those appear with Required=0).
	PerRole map[domain.Role]RoleCount

	// RoleMismatch reports that the headcount picture hides a role-level
	// problem: some role is over its requirement or short while the overall
	// counts look fine. It is advisory only and never feeds Status.
	RoleMismatch bool
}

// Reconcile computes the staffing summary for the given requirement map and
// roster. Classification is by headcount only, in this precedence:
// no workers, understaffed, fully staffed, overstaffed. It does not check
// that assignees carry the required roles; RoleMismatch carries that signal
// separately.
func Reconcile(requirements map[domain.Role]int, assigned []domain.AssignedWorker) Summary {
	s := Summary{PerRole: make(map[domain.Role]RoleCount)}

	for role, n := range requirements {
		if n <= 0 {
			continue
		}
		s.Required += n
		s.PerRole[role] = RoleCount{Required: n}
	}

	s.Assigned = len(assigned)
	for _, a := range assigned {
		rc := s.PerRole[a.RoleAssigned]
		rc.Assigned++
		s.PerRole[a.RoleAssigned] = rc
	}

	switch {
	case s.Assigned == 0:
		s.Status = domain.StaffingNoWorkers
	case s.Assigned < s.Required:
		s.Status = domain.StaffingUnderstaffed
	case s.Assigned == s.Required:
		s.Status = domain.StaffingFullyStaffed
	default:
		s.Status = domain.StaffingOverstaffed
	}

	for _, rc := range s.PerRole {
		if rc.Assigned > rc.Required || (s.Assigned >= s.Required && rc.Assigned < rc.Required) {
			s.RoleMismatch = true
			break
		}
	}

	return s
}
