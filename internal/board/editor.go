package board

import (
	"errors"
	"fmt"
	"time"

	"github.com/mkovach/crewboard/internal/domain"
	"github.com/mkovach/crewboard/internal/protocol"
)

// ErrInvalidWindow is returned by SaveCommand when end is not after start.
var ErrInvalidWindow = errors.New("board: shift end must be after start")

// EditorMode distinguishes creating a new shift from editing an existing
// one.
type EditorMode int

const (
	EditorCreate EditorMode = iota
	EditorEdit
)

// Editor is the shift detail form's state machine. It accumulates field
// edits and turns them into create/update commands; assign, unassign and
// delete are independent sub-actions available in edit mode only.
type Editor struct {
	mode    EditorMode
	shiftID string

	JobID               string
	Start               time.Time
	End                 time.Time
	Requirements        map[domain.Role]int
	ClientPONumber      string
	SpecialInstructions string

	// roster mirrors the edited shift's assignments for pool exclusion.
	roster []domain.AssignedWorker
}

// NewCreateEditor opens the editor in create mode over the given window.
func NewCreateEditor(start, end time.Time) *Editor {
	return &Editor{
		mode:         EditorCreate,
		Start:        start,
		End:          end,
		Requirements: make(map[domain.Role]int),
	}
}

// NewEditEditor opens the editor over an existing shift.
func NewEditEditor(s *domain.Shift) *Editor {
	e := &Editor{
		mode:                EditorEdit,
		shiftID:             s.ID,
		JobID:               s.JobID,
		Start:               s.Start,
		End:                 s.End,
		Requirements:        make(map[domain.Role]int, len(s.RoleRequirements)),
		ClientPONumber:      s.ClientPONumber,
		SpecialInstructions: s.SpecialInstructions,
		roster:              append([]domain.AssignedWorker(nil), s.AssignedWorkers...),
	}
	for role, n := range s.RoleRequirements {
		e.Requirements[role] = n
	}
	return e
}

// Mode returns the editor mode.
func (e *Editor) Mode() EditorMode { return e.mode }

// ShiftID returns the edited shift's id, empty in create mode.
func (e *Editor) ShiftID() string { return e.shiftID }

// SetRequirement sets a role's required headcount. Negative counts are
// rejected; zero removes the role from the map.
func (e *Editor) SetRequirement(role domain.Role, n int) error {
	if n < 0 {
		return fmt.Errorf("board: requirement for %s must be >= 0", role)
	}
	if n == 0 {
		delete(e.Requirements, role)
		return nil
	}
	e.Requirements[role] = n
	return nil
}

// SaveCommand validates the window and builds the create or update command
// for the current field state. Update sends every editable field; the
// server treats the requirement map as a wholesale replacement.
func (e *Editor) SaveCommand() (protocol.Command, error) {
	if !e.End.After(e.Start) {
		return nil, ErrInvalidWindow
	}

	reqs := make(map[string]int, len(e.Requirements))
	for role, n := range e.Requirements {
		reqs[string(role)] = n
	}

	if e.mode == EditorCreate {
		return &protocol.CreateShift{
			JobID:               e.JobID,
			ShiftStart:          protocol.FormatTime(e.Start),
			ShiftEnd:            protocol.FormatTime(e.End),
			RoleRequirements:    reqs,
			ClientPONumber:      e.ClientPONumber,
			SpecialInstructions: e.SpecialInstructions,
		}, nil
	}

	jobID := e.JobID
	start := protocol.FormatTime(e.Start)
	end := protocol.FormatTime(e.End)
	po := e.ClientPONumber
	instr := e.SpecialInstructions
	return &protocol.UpdateShift{
		ShiftID:             e.shiftID,
		JobID:               &jobID,
		ShiftStart:          &start,
		ShiftEnd:            &end,
		RoleRequirements:    reqs,
		ClientPONumber:      &po,
		SpecialInstructions: &instr,
	}, nil
}

// AssignCommand builds an assign for the edited shift. Edit mode only.
func (e *Editor) AssignCommand(workerID string, role domain.Role) (protocol.Command, error) {
	if e.mode != EditorEdit {
		return nil, errors.New("board: assign requires an existing shift")
	}
	return &protocol.AssignWorker{
		ShiftID:      e.shiftID,
		WorkerID:     workerID,
		RoleAssigned: string(role),
	}, nil
}

// UnassignCommand builds an unassign for the edited shift. Edit mode only.
func (e *Editor) UnassignCommand(workerID string, role domain.Role) (protocol.Command, error) {
	if e.mode != EditorEdit {
		return nil, errors.New("board: unassign requires an existing shift")
	}
	return &protocol.UnassignWorker{
		ShiftID:      e.shiftID,
		WorkerID:     workerID,
		RoleAssigned: string(role),
	}, nil
}

// DeleteCommand builds the delete for the edited shift. Edit mode only;
// there is no undo.
func (e *Editor) DeleteCommand() (protocol.Command, error) {
	if e.mode != EditorEdit {
		return nil, errors.New("board: delete requires an existing shift")
	}
	return &protocol.DeleteShift{ShiftID: e.shiftID}, nil
}

// AssignablePool filters the worker directory down to workers not already
// on the edited shift's roster.
func (e *Editor) AssignablePool(workers []domain.Worker) []domain.Worker {
	onRoster := make(map[string]bool, len(e.roster))
	for _, a := range e.roster {
		onRoster[a.UserID] = true
	}
	var pool []domain.Worker
	for _, w := range workers {
		if !onRoster[w.ID] {
			pool = append(pool, w)
		}
	}
	return pool
}

// Roster returns the edited shift's assignment snapshot.
func (e *Editor) Roster() []domain.AssignedWorker { return e.roster }
