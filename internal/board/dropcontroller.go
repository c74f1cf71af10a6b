package board

import (
	"time"

	"github.com/mkovach/crewboard/internal/calendar"
	"github.com/mkovach/crewboard/internal/domain"
	"github.com/mkovach/crewboard/internal/protocol"
)

// Default spans for drop-to-create. Hourly buckets get a 4-hour shift from
// the bucket's start; month (whole-day) buckets get a 9-to-5.
const (
	hourlyDropDuration = 4 * time.Hour
	dayDropStartHour   = 9
	dayDropEndHour     = 17
)

// DropController tracks the worker being dragged and turns drops into
// assign or create commands. It is UI-agnostic: views call DragStart, Drop
// and DragEnd and never build commands themselves.
type DropController struct {
	sink    CommandSink
	dragged *domain.Worker
}

// NewDropController creates a controller emitting commands into sink.
func NewDropController(sink CommandSink) *DropController {
	return &DropController{sink: sink}
}

// DragStart begins a drag. Unavailable workers are refused silently: the
// drag never starts and no error surfaces.
func (c *DropController) DragStart(w *domain.Worker) bool {
	if w == nil || !w.Available {
		return false
	}
	c.dragged = w
	return true
}

// Dragging returns the worker currently held, or nil.
func (c *DropController) Dragging() *domain.Worker { return c.dragged }

// DragEnd clears the drag without issuing anything.
func (c *DropController) DragEnd() { c.dragged = nil }

// Drop resolves a drop on bucket against the aggregated index. If the
// bucket already holds shifts, the worker is assigned to the first one in
// bucket order; otherwise a shift is created spanning the bucket's default
// duration with the worker auto-assigned. Drag state clears either way.
// The issued command (nil when nothing was dragged) is returned alongside
// any dispatch error.
func (c *DropController) Drop(bucket calendar.Bucket, idx calendar.Index) (protocol.Command, error) {
	w := c.dragged
	c.dragged = nil
	if w == nil {
		return nil, nil
	}

	role := w.DefaultRole()

	if existing := idx.AtBucket(bucket); len(existing) > 0 {
		cmd := &protocol.AssignWorker{
			ShiftID:      existing[0].ID,
			WorkerID:     w.ID,
			RoleAssigned: string(role),
		}
		return cmd, c.sink.Dispatch(cmd)
	}

	start, end := dropSpan(bucket)
	cmd := &protocol.CreateShift{
		ShiftStart:       protocol.FormatTime(start),
		ShiftEnd:         protocol.FormatTime(end),
		RoleRequirements: map[string]int{string(role): 1},
		AutoAssignWorker: &protocol.AutoAssign{
			WorkerID:     w.ID,
			RoleAssigned: string(role),
		},
	}
	return cmd, c.sink.Dispatch(cmd)
}

func dropSpan(bucket calendar.Bucket) (time.Time, time.Time) {
	if bucket.Hour < 0 {
		start := bucket.Date.Add(dayDropStartHour * time.Hour)
		return start, bucket.Date.Add(dayDropEndHour * time.Hour)
	}
	start := bucket.Start()
	return start, start.Add(hourlyDropDuration)
}
