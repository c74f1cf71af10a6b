package cli

import (
	"context"
	"time"

	"github.com/mkovach/crewboard/internal/dispatch"
	"github.com/mkovach/crewboard/internal/domain"
)

// WorkerDirectory is the read-only worker list the board consumes at its
// boundary.
type WorkerDirectory interface {
	List(ctx context.Context) ([]*domain.Worker, error)
}

// JobDirectory is the read-only job/client list used to populate the
// editor's job selector.
type JobDirectory interface {
	List(ctx context.Context) ([]*domain.Job, error)
}

// App holds the collaborators the board UI depends on.
type App struct {
	Dispatcher *dispatch.Dispatcher
	Workers    WorkerDirectory
	Jobs       JobDirectory

	// Loc is the board's display timezone.
	Loc *time.Location

	// Now is the clock; tests pin it.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	// Seed inserts sample data. Wired by main so the UI layer never
	// touches storage directly.
	Seed func(ctx context.Context) error
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
