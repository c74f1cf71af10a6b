package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/mkovach/crewboard/internal/domain"
)

// Worker options
type WorkerOption func(*domain.Worker)

func WithEmployeeType(r domain.Role) WorkerOption {
	return func(w *domain.Worker) { w.EmployeeType = r }
}

func WithCertifications(certs ...string) WorkerOption {
	return func(w *domain.Worker) { w.Certifications = certs }
}

func Unavailable() WorkerOption {
	return func(w *domain.Worker) { w.Available = false }
}

func NewTestWorker(name string, opts ...WorkerOption) *domain.Worker {
	w := &domain.Worker{
		ID:                uuid.New().String(),
		Name:              name,
		EmployeeType:      domain.RoleStagehand,
		AvailabilityScore: 100,
		Available:         true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func NewTestJob(name, client string) *domain.Job {
	return &domain.Job{
		ID:         uuid.New().String(),
		Name:       name,
		ClientName: client,
	}
}

// Shift options
type ShiftOption func(*domain.Shift)

func WithJob(jobID string) ShiftOption {
	return func(s *domain.Shift) { s.JobID = jobID }
}

func WithRequirement(role domain.Role, n int) ShiftOption {
	return func(s *domain.Shift) { s.RoleRequirements[role] = n }
}

func WithAssigned(workers ...domain.AssignedWorker) ShiftOption {
	return func(s *domain.Shift) {
		s.AssignedWorkers = append(s.AssignedWorkers, workers...)
	}
}

func Unscheduled() ShiftOption {
	return func(s *domain.Shift) {
		s.Start = time.Time{}
		s.End = time.Time{}
	}
}

// NewTestShift creates a 4-hour shift starting at start.
func NewTestShift(start time.Time, opts ...ShiftOption) *domain.Shift {
	s := &domain.Shift{
		ID:               uuid.New().String(),
		Start:            start,
		End:              start.Add(4 * time.Hour),
		RoleRequirements: make(map[domain.Role]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
