// Package server implements the authoritative side of the scheduling
// protocol: it decodes request envelopes, applies them to the SQLite-backed
// schedule, and produces response envelopes. The board never touches the
// database directly; everything it knows arrives through here.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mkovach/crewboard/internal/db"
	"github.com/mkovach/crewboard/internal/domain"
	"github.com/mkovach/crewboard/internal/protocol"
	"github.com/mkovach/crewboard/internal/repository"
)

// ScheduleServer handles one request frame at a time. It satisfies
// transport.Handler.
type ScheduleServer struct {
	shifts repository.ShiftRepo
	jobs   repository.JobRepo
	uow    db.UnitOfWork
	loc    *time.Location
}

// New creates a ScheduleServer over the given repositories. Multi-table
// writes (create with auto-assign, update with requirements) run inside the
// unit of work.
func New(shifts repository.ShiftRepo, jobs repository.JobRepo, uow db.UnitOfWork, loc *time.Location) *ScheduleServer {
	if loc == nil {
		loc = time.Local
	}
	return &ScheduleServer{shifts: shifts, jobs: jobs, uow: uow, loc: loc}
}

// Handle decodes frame, executes the command, and returns the encoded
// response. Failures become success:false envelopes; Handle never panics on
// malformed input.
func (s *ScheduleServer) Handle(ctx context.Context, frame []byte) []byte {
	cmd, err := protocol.DecodeRequest(frame)
	if err != nil {
		return protocol.ErrResponse(0, err.Error()).Encode()
	}

	var resp *protocol.Response
	switch c := cmd.(type) {
	case *protocol.FetchSchedule:
		resp = s.fetchSchedule(ctx, c)
	case *protocol.AssignWorker:
		resp = s.assignWorker(ctx, c)
	case *protocol.UnassignWorker:
		resp = s.unassignWorker(ctx, c)
	case *protocol.CreateShift:
		resp = s.createShift(ctx, c)
	case *protocol.UpdateShift:
		resp = s.updateShift(ctx, c)
	case *protocol.DeleteShift:
		resp = s.deleteShift(ctx, c)
	default:
		resp = protocol.ErrResponse(cmd.Code(), fmt.Sprintf("unhandled operation %s", cmd.Code()))
	}
	return resp.Encode()
}

func (s *ScheduleServer) fetchSchedule(ctx context.Context, c *protocol.FetchSchedule) *protocol.Response {
	start, err := time.ParseInLocation(protocol.DateLayout, c.StartDate, s.loc)
	if err != nil {
		return protocol.ErrResponse(c.Code(), fmt.Sprintf("invalid start_date %q", c.StartDate))
	}
	end, err := time.ParseInLocation(protocol.DateLayout, c.EndDate, s.loc)
	if err != nil {
		return protocol.ErrResponse(c.Code(), fmt.Sprintf("invalid end_date %q", c.EndDate))
	}
	// The window is inclusive of the end date's whole day.
	end = end.Add(24*time.Hour - time.Second)

	jobID := c.Filters.JobID
	if jobID == "" && c.Filters.ClientID != "" {
		// Client filter resolves to that client's jobs; an unknown client
		// matches nothing, which an empty window expresses naturally.
		jobs, err := s.jobs.ListByClient(ctx, c.Filters.ClientID)
		if err != nil {
			return protocol.ErrResponse(c.Code(), err.Error())
		}
		payload := protocol.SchedulePayload{Shifts: []protocol.WireShift{}}
		for _, j := range jobs {
			shifts, err := s.shifts.ListWindow(ctx, start, end, j.ID)
			if err != nil {
				return protocol.ErrResponse(c.Code(), err.Error())
			}
			for _, sh := range shifts {
				payload.Shifts = append(payload.Shifts, protocol.ToWireShift(sh))
			}
		}
		return protocol.OKResponse(c.Code(), payload, "")
	}

	shifts, err := s.shifts.ListWindow(ctx, start, end, jobID)
	if err != nil {
		return protocol.ErrResponse(c.Code(), err.Error())
	}
	payload := protocol.SchedulePayload{Shifts: make([]protocol.WireShift, 0, len(shifts))}
	for _, sh := range shifts {
		payload.Shifts = append(payload.Shifts, protocol.ToWireShift(sh))
	}
	return protocol.OKResponse(c.Code(), payload, "")
}

func (s *ScheduleServer) assignWorker(ctx context.Context, c *protocol.AssignWorker) *protocol.Response {
	if c.ShiftID == "" || c.WorkerID == "" {
		return protocol.ErrResponse(c.Code(), "shift_id and worker_id are required")
	}
	role := domain.NormalizeRole(c.RoleAssigned)
	if err := s.shifts.Assign(ctx, c.ShiftID, c.WorkerID, role); err != nil {
		return protocol.ErrResponse(c.Code(), err.Error())
	}
	return protocol.OKResponse(c.Code(), nil, "worker assigned")
}

func (s *ScheduleServer) unassignWorker(ctx context.Context, c *protocol.UnassignWorker) *protocol.Response {
	if c.ShiftID == "" || c.WorkerID == "" {
		return protocol.ErrResponse(c.Code(), "shift_id and worker_id are required")
	}
	if err := s.shifts.Unassign(ctx, c.ShiftID, c.WorkerID); err != nil {
		return protocol.ErrResponse(c.Code(), err.Error())
	}
	return protocol.OKResponse(c.Code(), nil, "worker unassigned")
}

func (s *ScheduleServer) createShift(ctx context.Context, c *protocol.CreateShift) *protocol.Response {
	start, err := protocol.ParseTime(c.ShiftStart, s.loc)
	if err != nil {
		return protocol.ErrResponse(c.Code(), err.Error())
	}
	end, err := protocol.ParseTime(c.ShiftEnd, s.loc)
	if err != nil {
		return protocol.ErrResponse(c.Code(), err.Error())
	}
	if !start.IsZero() && !end.After(start) {
		return protocol.ErrResponse(c.Code(), "shift end must be after start")
	}

	shift := &domain.Shift{
		ID:                  uuid.New().String(),
		JobID:               c.JobID,
		Start:               start,
		End:                 end,
		RoleRequirements:    make(map[domain.Role]int, len(c.RoleRequirements)),
		ClientPONumber:      c.ClientPONumber,
		SpecialInstructions: c.SpecialInstructions,
	}
	for role, n := range c.RoleRequirements {
		if n < 0 {
			return protocol.ErrResponse(c.Code(), fmt.Sprintf("negative requirement for %s", role))
		}
		shift.RoleRequirements[domain.NormalizeRole(role)] = n
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txShifts := repository.NewSQLiteShiftRepo(tx, s.loc)
		if err := txShifts.Create(ctx, shift); err != nil {
			return err
		}
		if c.AutoAssignWorker != nil {
			role := domain.NormalizeRole(c.AutoAssignWorker.RoleAssigned)
			if err := txShifts.Assign(ctx, shift.ID, c.AutoAssignWorker.WorkerID, role); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return protocol.ErrResponse(c.Code(), err.Error())
	}

	created, err := s.shifts.GetByID(ctx, shift.ID)
	if err != nil {
		return protocol.ErrResponse(c.Code(), err.Error())
	}
	return protocol.OKResponse(c.Code(), protocol.ShiftPayload{Shift: protocol.ToWireShift(created)}, "shift created")
}

func (s *ScheduleServer) updateShift(ctx context.Context, c *protocol.UpdateShift) *protocol.Response {
	if c.ShiftID == "" {
		return protocol.ErrResponse(c.Code(), "shift_id is required")
	}

	var updated *domain.Shift
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txShifts := repository.NewSQLiteShiftRepo(tx, s.loc)
		shift, err := txShifts.GetByID(ctx, c.ShiftID)
		if err != nil {
			return err
		}

		if c.JobID != nil {
			shift.JobID = *c.JobID
		}
		if c.ShiftStart != nil {
			t, err := protocol.ParseTime(*c.ShiftStart, s.loc)
			if err != nil {
				return err
			}
			shift.Start = t
		}
		if c.ShiftEnd != nil {
			t, err := protocol.ParseTime(*c.ShiftEnd, s.loc)
			if err != nil {
				return err
			}
			shift.End = t
		}
		if !shift.Start.IsZero() && !shift.End.After(shift.Start) {
			return fmt.Errorf("shift end must be after start")
		}
		if c.RoleRequirements != nil {
			shift.RoleRequirements = make(map[domain.Role]int, len(c.RoleRequirements))
			for role, n := range c.RoleRequirements {
				if n < 0 {
					return fmt.Errorf("negative requirement for %s", role)
				}
				shift.RoleRequirements[domain.NormalizeRole(role)] = n
			}
		}
		if c.ClientPONumber != nil {
			shift.ClientPONumber = *c.ClientPONumber
		}
		if c.SpecialInstructions != nil {
			shift.SpecialInstructions = *c.SpecialInstructions
		}

		if err := txShifts.Update(ctx, shift); err != nil {
			return err
		}
		updated = shift
		return nil
	})
	if err != nil {
		return protocol.ErrResponse(c.Code(), err.Error())
	}
	return protocol.OKResponse(c.Code(), protocol.ShiftPayload{Shift: protocol.ToWireShift(updated)}, "shift updated")
}

func (s *ScheduleServer) deleteShift(ctx context.Context, c *protocol.DeleteShift) *protocol.Response {
	if c.ShiftID == "" {
		return protocol.ErrResponse(c.Code(), "shift_id is required")
	}
	if err := s.shifts.Delete(ctx, c.ShiftID); err != nil {
		return protocol.ErrResponse(c.Code(), err.Error())
	}
	return protocol.OKResponse(c.Code(), nil, "shift deleted")
}
