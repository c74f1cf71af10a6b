package domain

import "time"

// AssignedWorker is one worker slot on a shift's roster. RoleAssigned need
// not match a key in the shift's requirement map; over-assignment is
// representable and left for the staffing summary to flag.
type AssignedWorker struct {
	UserID       string
	RoleAssigned Role
	Name         string
}

// Shift is a span of work for a job. ID is empty for shifts that have not
// been created on the server yet; JobID is empty until a job is chosen in
// the editor.
type Shift struct {
	ID    string
	JobID string

	Start time.Time
	End   time.Time

	// RoleRequirements maps role -> required headcount. Counts are
	// non-negative; absent roles require zero.
	RoleRequirements map[Role]int

	// AssignedWorkers is ordered; assignment order is preserved across
	// reloads.
	AssignedWorkers []AssignedWorker

	ClientPONumber      string
	SpecialInstructions string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Scheduled reports whether the shift carries a start instant. Unscheduled
// shifts are excluded from time-keyed views.
func (s *Shift) Scheduled() bool {
	return !s.Start.IsZero()
}

// RequiredCount returns the total required headcount across all roles.
func (s *Shift) RequiredCount() int {
	total := 0
	for _, n := range s.RoleRequirements {
		total += n
	}
	return total
}

// HasWorker reports whether the given worker is already on the roster.
func (s *Shift) HasWorker(userID string) bool {
	for _, a := range s.AssignedWorkers {
		if a.UserID == userID {
			return true
		}
	}
	return false
}
