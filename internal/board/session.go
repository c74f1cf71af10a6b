// Package board holds the client-side state of one scheduling-board
// session: the loaded shift/worker/job snapshots, filter and view state,
// the drag/drop controller, and the shift editor. The board owns this
// state exclusively; every mutation goes out through the command sink and
// comes back as a wholesale reload.
package board

import (
	"time"

	"github.com/mkovach/crewboard/internal/calendar"
	"github.com/mkovach/crewboard/internal/domain"
	"github.com/mkovach/crewboard/internal/protocol"
	"github.com/mkovach/crewboard/internal/staffing"
)

// CommandSink accepts commands for dispatch. The dispatcher implements it;
// tests substitute a recorder.
type CommandSink interface {
	Dispatch(cmd protocol.Command) error
}

// Filters narrow which shifts the board shows. Job and client filters ride
// on the fetch; worker, role and status filters are applied client-side
// against the loaded snapshot.
type Filters struct {
	JobID    string
	ClientID string
	WorkerID string
	Role     domain.Role
	Status   domain.StaffingStatus
}

// Wire converts the filter state to its protocol form.
func (f Filters) Wire() protocol.Filters {
	return protocol.Filters{
		JobID:    f.JobID,
		ClientID: f.ClientID,
		WorkerID: f.WorkerID,
		Role:     string(f.Role),
		Status:   string(f.Status),
	}
}

// Session is the single owner of board state for one sitting.
type Session struct {
	Loc    *time.Location
	Anchor time.Time
	View   calendar.ViewKind
	Filter Filters

	shifts  []domain.Shift
	Workers []domain.Worker
	Jobs    []domain.Job

	// Index is rebuilt whenever the shift snapshot or filters change.
	Index calendar.Index
}

// NewSession creates a session anchored on now, in week view.
func NewSession(now time.Time, loc *time.Location) *Session {
	if loc == nil {
		loc = time.Local
	}
	s := &Session{
		Loc:    loc,
		Anchor: now.In(loc),
		View:   calendar.ViewWeek,
	}
	s.reindex()
	return s
}

// SetShifts replaces the shift snapshot wholesale (reload-on-success).
func (s *Session) SetShifts(shifts []domain.Shift) {
	s.shifts = shifts
	s.reindex()
}

// Shifts returns the unfiltered snapshot.
func (s *Session) Shifts() []domain.Shift { return s.shifts }

// SetFilter replaces the filter state and reindexes.
func (s *Session) SetFilter(f Filters) {
	s.Filter = f
	s.reindex()
}

// VisibleShifts applies the client-side filters to the snapshot.
func (s *Session) VisibleShifts() []domain.Shift {
	var out []domain.Shift
	for _, sh := range s.shifts {
		if s.matches(&sh) {
			out = append(out, sh)
		}
	}
	return out
}

func (s *Session) matches(sh *domain.Shift) bool {
	f := s.Filter
	if f.JobID != "" && sh.JobID != f.JobID {
		return false
	}
	if f.WorkerID != "" && !sh.HasWorker(f.WorkerID) {
		return false
	}
	if f.Role != "" {
		found := sh.RoleRequirements[f.Role] > 0
		for _, a := range sh.AssignedWorkers {
			if a.RoleAssigned == f.Role {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	if f.Status != "" {
		sum := staffing.Reconcile(sh.RoleRequirements, sh.AssignedWorkers)
		if sum.Status != f.Status {
			return false
		}
	}
	return true
}

func (s *Session) reindex() {
	s.Index = calendar.Aggregate(s.VisibleShifts(), s.Loc)
}

// Grid returns the buckets for the current anchor and view.
func (s *Session) Grid() []calendar.Bucket {
	return calendar.Grid(s.Anchor, s.View)
}

// Window returns the current view's fetch window as wire dates.
func (s *Session) Window() (startDate, endDate string) {
	grid := s.Grid()
	return calendar.DateKey(grid[0].Date), calendar.DateKey(grid[len(grid)-1].Date)
}

// FetchCommand builds the fetch for the current window and filters.
func (s *Session) FetchCommand() *protocol.FetchSchedule {
	start, end := s.Window()
	return &protocol.FetchSchedule{
		StartDate: start,
		EndDate:   end,
		ViewType:  string(s.View),
		Filters:   s.Filter.Wire(),
	}
}

// Next advances the anchor one view step forward.
func (s *Session) Next() { s.step(1) }

// Prev moves the anchor one view step back.
func (s *Session) Prev() { s.step(-1) }

// Today re-anchors on the current date.
func (s *Session) Today(now time.Time) { s.Anchor = now.In(s.Loc) }

func (s *Session) step(dir int) {
	switch s.View {
	case calendar.ViewDay:
		s.Anchor = s.Anchor.AddDate(0, 0, dir)
	case calendar.ViewMonth:
		// Pin to the 1st so short months never skip ahead.
		y, m, _ := s.Anchor.Date()
		s.Anchor = time.Date(y, m, 1, 0, 0, 0, 0, s.Loc).AddDate(0, dir, 0)
	default:
		s.Anchor = s.Anchor.AddDate(0, 0, 7*dir)
	}
}

// CycleView rotates day -> week -> month -> day.
func (s *Session) CycleView() {
	switch s.View {
	case calendar.ViewDay:
		s.View = calendar.ViewWeek
	case calendar.ViewWeek:
		s.View = calendar.ViewMonth
	default:
		s.View = calendar.ViewDay
	}
}

// WorkerByID resolves a worker from the directory snapshot.
func (s *Session) WorkerByID(id string) *domain.Worker {
	for i := range s.Workers {
		if s.Workers[i].ID == id {
			return &s.Workers[i]
		}
	}
	return nil
}

// ShiftByID resolves a shift from the loaded snapshot.
func (s *Session) ShiftByID(id string) *domain.Shift {
	for i := range s.shifts {
		if s.shifts[i].ID == id {
			return &s.shifts[i]
		}
	}
	return nil
}
