package domain

// Worker is a person available for assignment. The board holds a read-only
// snapshot per load cycle; it is never mutated locally.
type Worker struct {
	ID           string
	Name         string
	EmployeeType Role

	// Certifications are free-form capability flags ("forklift", "rigging").
	Certifications []string

	// AvailabilityScore is advisory, 0-100.
	AvailabilityScore int

	// CurrentShiftsCount is an advisory load indicator.
	CurrentShiftsCount int

	// Available gates dragging: unavailable workers cannot start a drag.
	Available bool
}

// DefaultRole returns the worker's primary role, defaulting to stagehand
// when the employee type is unset.
func (w *Worker) DefaultRole() Role {
	if w.EmployeeType == "" {
		return RoleStagehand
	}
	return w.EmployeeType
}
