package board

import (
	"testing"
	"time"

	"github.com/mkovach/crewboard/internal/domain"
	"github.com/mkovach/crewboard/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func editedShift() *domain.Shift {
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	return &domain.Shift{
		ID:    "s-1",
		JobID: "j-1",
		Start: start,
		End:   start.Add(8 * time.Hour),
		RoleRequirements: map[domain.Role]int{
			domain.RoleStagehand: 2,
		},
		AssignedWorkers: []domain.AssignedWorker{
			{UserID: "w-1", RoleAssigned: domain.RoleStagehand, Name: "Dana"},
		},
		ClientPONumber: "PO-7",
	}
}

func TestSaveCommand_CreateMode(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	e := NewCreateEditor(start, start.Add(4*time.Hour))
	e.JobID = "j-1"
	require.NoError(t, e.SetRequirement(domain.RoleCrewChief, 1))

	cmd, err := e.SaveCommand()
	require.NoError(t, err)

	create, ok := cmd.(*protocol.CreateShift)
	require.True(t, ok)
	assert.Equal(t, "j-1", create.JobID)
	assert.Equal(t, "2024-03-04T09:00:00", create.ShiftStart)
	assert.Equal(t, "2024-03-04T13:00:00", create.ShiftEnd)
	assert.Equal(t, map[string]int{"crew_chief": 1}, create.RoleRequirements)
	assert.Nil(t, create.AutoAssignWorker)
}

func TestSaveCommand_EditModeSendsAllFields(t *testing.T) {
	e := NewEditEditor(editedShift())
	e.SpecialInstructions = "Dock 4"
	require.NoError(t, e.SetRequirement(domain.RoleStagehand, 3))

	cmd, err := e.SaveCommand()
	require.NoError(t, err)

	upd, ok := cmd.(*protocol.UpdateShift)
	require.True(t, ok)
	assert.Equal(t, "s-1", upd.ShiftID)
	require.NotNil(t, upd.ShiftStart)
	assert.Equal(t, "2024-03-04T09:00:00", *upd.ShiftStart)
	assert.Equal(t, map[string]int{"stagehand": 3}, upd.RoleRequirements)
	require.NotNil(t, upd.SpecialInstructions)
	assert.Equal(t, "Dock 4", *upd.SpecialInstructions)
}

func TestSaveCommand_RejectsInvertedWindow(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	e := NewCreateEditor(start, start.Add(-time.Hour))
	_, err := e.SaveCommand()
	assert.ErrorIs(t, err, ErrInvalidWindow)

	e = NewCreateEditor(start, start)
	_, err = e.SaveCommand()
	assert.ErrorIs(t, err, ErrInvalidWindow, "zero-length shifts are invalid too")
}

func TestSetRequirement_NegativeRejectedZeroRemoves(t *testing.T) {
	e := NewCreateEditor(time.Now(), time.Now().Add(time.Hour))

	assert.Error(t, e.SetRequirement(domain.RoleStagehand, -1))

	require.NoError(t, e.SetRequirement(domain.RoleStagehand, 2))
	require.NoError(t, e.SetRequirement(domain.RoleStagehand, 0))
	_, ok := e.Requirements[domain.RoleStagehand]
	assert.False(t, ok)
}

func TestRosterActions_EditModeOnly(t *testing.T) {
	e := NewCreateEditor(time.Now(), time.Now().Add(time.Hour))

	_, err := e.AssignCommand("w-1", domain.RoleStagehand)
	assert.Error(t, err)
	_, err = e.UnassignCommand("w-1", domain.RoleStagehand)
	assert.Error(t, err)
	_, err = e.DeleteCommand()
	assert.Error(t, err)
}

func TestRosterActions_TargetEditedShift(t *testing.T) {
	e := NewEditEditor(editedShift())

	cmd, err := e.AssignCommand("w-2", domain.RoleCrewChief)
	require.NoError(t, err)
	asg := cmd.(*protocol.AssignWorker)
	assert.Equal(t, "s-1", asg.ShiftID)
	assert.Equal(t, "crew_chief", asg.RoleAssigned)

	cmd, err = e.UnassignCommand("w-1", domain.RoleStagehand)
	require.NoError(t, err)
	assert.Equal(t, "s-1", cmd.(*protocol.UnassignWorker).ShiftID)

	cmd, err = e.DeleteCommand()
	require.NoError(t, err)
	assert.Equal(t, "s-1", cmd.(*protocol.DeleteShift).ShiftID)
}

func TestAssignablePool_ExcludesRoster(t *testing.T) {
	e := NewEditEditor(editedShift())

	pool := e.AssignablePool([]domain.Worker{
		{ID: "w-1", Name: "Dana"},
		{ID: "w-2", Name: "Sam"},
		{ID: "w-3", Name: "Luca"},
	})

	require.Len(t, pool, 2)
	assert.Equal(t, "w-2", pool[0].ID)
	assert.Equal(t, "w-3", pool[1].ID)
}
