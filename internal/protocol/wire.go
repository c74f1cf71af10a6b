package protocol

import (
	"fmt"
	"time"

	"github.com/mkovach/crewboard/internal/domain"
)

// Wire layouts. Instants travel as local wall-clock datetimes; dates as
// plain calendar dates.
const (
	TimeLayout = "2006-01-02T15:04:05"
	DateLayout = "2006-01-02"
)

// WireAssignedWorker is one roster entry as it appears on the wire.
type WireAssignedWorker struct {
	UserID       string `json:"user_id"`
	RoleAssigned string `json:"role_assigned"`
	Name         string `json:"name"`
}

// WireShift is a shift as carried in fetch-schedule responses.
type WireShift struct {
	ID                  string               `json:"id"`
	JobID               string               `json:"job_id,omitempty"`
	ShiftStart          string               `json:"shift_start_datetime,omitempty"`
	ShiftEnd            string               `json:"shift_end_datetime,omitempty"`
	RoleRequirements    map[string]int       `json:"role_requirements"`
	AssignedWorkers     []WireAssignedWorker `json:"assigned_workers"`
	ClientPONumber      string               `json:"client_po_number,omitempty"`
	SpecialInstructions string               `json:"special_instructions,omitempty"`
}

// SchedulePayload is the data object of a successful fetch-schedule
// response.
type SchedulePayload struct {
	Shifts []WireShift `json:"shifts"`
}

// ShiftPayload is the data object of a successful create/update response.
type ShiftPayload struct {
	Shift WireShift `json:"shift"`
}

// FormatTime renders an instant in the wire datetime layout.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

// ParseTime parses a wire datetime in loc. Empty input yields the zero
// time without error (unscheduled shifts).
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(TimeLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing datetime %q: %w", s, err)
	}
	return t, nil
}

// ToWireShift converts a domain shift to its wire form.
func ToWireShift(s *domain.Shift) WireShift {
	w := WireShift{
		ID:                  s.ID,
		JobID:               s.JobID,
		ShiftStart:          FormatTime(s.Start),
		ShiftEnd:            FormatTime(s.End),
		RoleRequirements:    make(map[string]int, len(s.RoleRequirements)),
		AssignedWorkers:     make([]WireAssignedWorker, 0, len(s.AssignedWorkers)),
		ClientPONumber:      s.ClientPONumber,
		SpecialInstructions: s.SpecialInstructions,
	}
	for role, n := range s.RoleRequirements {
		w.RoleRequirements[string(role)] = n
	}
	for _, a := range s.AssignedWorkers {
		w.AssignedWorkers = append(w.AssignedWorkers, WireAssignedWorker{
			UserID:       a.UserID,
			RoleAssigned: string(a.RoleAssigned),
			Name:         a.Name,
		})
	}
	return w
}

// FromWireShift converts a wire shift back to domain form, interpreting
// datetimes in loc. A malformed datetime leaves the shift unscheduled
// rather than failing the whole reload.
func FromWireShift(w WireShift, loc *time.Location) domain.Shift {
	s := domain.Shift{
		ID:                  w.ID,
		JobID:               w.JobID,
		RoleRequirements:    make(map[domain.Role]int, len(w.RoleRequirements)),
		ClientPONumber:      w.ClientPONumber,
		SpecialInstructions: w.SpecialInstructions,
	}
	if t, err := ParseTime(w.ShiftStart, loc); err == nil {
		s.Start = t
	}
	if t, err := ParseTime(w.ShiftEnd, loc); err == nil {
		s.End = t
	}
	for role, n := range w.RoleRequirements {
		s.RoleRequirements[domain.Role(role)] = n
	}
	for _, a := range w.AssignedWorkers {
		s.AssignedWorkers = append(s.AssignedWorkers, domain.AssignedWorker{
			UserID:       a.UserID,
			RoleAssigned: domain.Role(a.RoleAssigned),
			Name:         a.Name,
		})
	}
	return s
}
