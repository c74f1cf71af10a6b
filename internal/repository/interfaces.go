package repository

import (
	"context"
	"time"

	"github.com/mkovach/crewboard/internal/domain"
)

// ShiftRepo persists shifts with their requirement maps and rosters.
// Implementations load and store a shift as one aggregate: requirements and
// assignments travel with it.
type ShiftRepo interface {
	Create(ctx context.Context, s *domain.Shift) error
	GetByID(ctx context.Context, id string) (*domain.Shift, error)
	// ListWindow returns shifts overlapping [start, end], ordered by
	// start. Unscheduled shifts (NULL start) are always included so the
	// board can surface them.
	ListWindow(ctx context.Context, start, end time.Time, jobID string) ([]*domain.Shift, error)
	Update(ctx context.Context, s *domain.Shift) error
	Delete(ctx context.Context, id string) error

	Assign(ctx context.Context, shiftID, workerID string, role domain.Role) error
	Unassign(ctx context.Context, shiftID, workerID string) error
}

type WorkerRepo interface {
	Create(ctx context.Context, w *domain.Worker) error
	GetByID(ctx context.Context, id string) (*domain.Worker, error)
	List(ctx context.Context) ([]*domain.Worker, error)
	Update(ctx context.Context, w *domain.Worker) error
	Delete(ctx context.Context, id string) error
}

type JobRepo interface {
	Create(ctx context.Context, j *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context) ([]*domain.Job, error)
	// ListByClient filters jobs by client name.
	ListByClient(ctx context.Context, clientName string) ([]*domain.Job, error)
	Delete(ctx context.Context, id string) error
}
