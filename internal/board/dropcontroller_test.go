package board

import (
	"testing"
	"time"

	"github.com/mkovach/crewboard/internal/calendar"
	"github.com/mkovach/crewboard/internal/domain"
	"github.com/mkovach/crewboard/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures dispatched commands.
type recordingSink struct {
	cmds []protocol.Command
	err  error
}

func (r *recordingSink) Dispatch(cmd protocol.Command) error {
	r.cmds = append(r.cmds, cmd)
	return r.err
}

func availableWorker(id string, role domain.Role) *domain.Worker {
	return &domain.Worker{ID: id, Name: id, EmployeeType: role, Available: true}
}

func TestDragStart_RefusesUnavailableWorker(t *testing.T) {
	c := NewDropController(&recordingSink{})

	off := &domain.Worker{ID: "w-1", Available: false}
	assert.False(t, c.DragStart(off))
	assert.Nil(t, c.Dragging())

	assert.False(t, c.DragStart(nil))
}

func TestDrop_AssignsToFirstShiftInBucket(t *testing.T) {
	sink := &recordingSink{}
	c := NewDropController(sink)

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	idx := calendar.Aggregate([]domain.Shift{
		{ID: "s-1", JobID: "j-1", Start: day.Add(9 * time.Hour), End: day.Add(13 * time.Hour)},
		{ID: "s-2", JobID: "j-1", Start: day.Add(9 * time.Hour), End: day.Add(17 * time.Hour)},
	}, time.UTC)

	require.True(t, c.DragStart(availableWorker("w-1", domain.RoleCrewChief)))
	cmd, err := c.Drop(calendar.Bucket{Date: day, Hour: 9}, idx)
	require.NoError(t, err)

	asg, ok := cmd.(*protocol.AssignWorker)
	require.True(t, ok, "occupied bucket must assign, never create")
	assert.Equal(t, "s-1", asg.ShiftID, "first shift in bucket order wins")
	assert.Equal(t, "w-1", asg.WorkerID)
	assert.Equal(t, "crew_chief", asg.RoleAssigned)

	assert.Nil(t, c.Dragging(), "drop clears drag state")
	require.Len(t, sink.cmds, 1)
}

func TestDrop_EmptyHourlyBucketCreatesFourHourShift(t *testing.T) {
	sink := &recordingSink{}
	c := NewDropController(sink)

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	require.True(t, c.DragStart(availableWorker("w-1", domain.RoleCrewChief)))

	cmd, err := c.Drop(calendar.Bucket{Date: day, Hour: 9}, calendar.Index{})
	require.NoError(t, err)

	create, ok := cmd.(*protocol.CreateShift)
	require.True(t, ok)
	assert.Equal(t, "2024-03-04T09:00:00", create.ShiftStart)
	assert.Equal(t, "2024-03-04T13:00:00", create.ShiftEnd)
	assert.Equal(t, map[string]int{"crew_chief": 1}, create.RoleRequirements)
	require.NotNil(t, create.AutoAssignWorker)
	assert.Equal(t, "w-1", create.AutoAssignWorker.WorkerID)
	assert.Equal(t, "crew_chief", create.AutoAssignWorker.RoleAssigned)
}

func TestDrop_EmptyDayBucketCreatesNineToFive(t *testing.T) {
	sink := &recordingSink{}
	c := NewDropController(sink)

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	require.True(t, c.DragStart(availableWorker("w-1", "")))

	cmd, err := c.Drop(calendar.Bucket{Date: day, Hour: -1}, calendar.Index{})
	require.NoError(t, err)

	create, ok := cmd.(*protocol.CreateShift)
	require.True(t, ok)
	assert.Equal(t, "2024-03-04T09:00:00", create.ShiftStart)
	assert.Equal(t, "2024-03-04T17:00:00", create.ShiftEnd)
	assert.Equal(t, "stagehand", create.AutoAssignWorker.RoleAssigned, "uncertified workers default to stagehand")
}

func TestDrop_WithoutDragIsNoop(t *testing.T) {
	sink := &recordingSink{}
	c := NewDropController(sink)

	cmd, err := c.Drop(calendar.Bucket{Date: time.Now(), Hour: 9}, calendar.Index{})
	assert.NoError(t, err)
	assert.Nil(t, cmd)
	assert.Empty(t, sink.cmds)
}

func TestDragEnd_ClearsWithoutDispatch(t *testing.T) {
	sink := &recordingSink{}
	c := NewDropController(sink)

	require.True(t, c.DragStart(availableWorker("w-1", "")))
	c.DragEnd()
	assert.Nil(t, c.Dragging())
	assert.Empty(t, sink.cmds)
}

func TestDrop_DispatchErrorStillClearsDrag(t *testing.T) {
	sink := &recordingSink{err: assert.AnError}
	c := NewDropController(sink)

	require.True(t, c.DragStart(availableWorker("w-1", "")))
	_, err := c.Drop(calendar.Bucket{Date: time.Now(), Hour: 9}, calendar.Index{})
	assert.Error(t, err)
	assert.Nil(t, c.Dragging())
}
