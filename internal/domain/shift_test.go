package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShift_Scheduled(t *testing.T) {
	var s Shift
	assert.False(t, s.Scheduled())

	s.Start = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	assert.True(t, s.Scheduled())
}

func TestShift_RequiredCount(t *testing.T) {
	s := Shift{RoleRequirements: map[Role]int{
		RoleStagehand:   2,
		RoleCrewChief:   1,
		RoleTruckDriver: 0,
	}}
	assert.Equal(t, 3, s.RequiredCount())

	assert.Zero(t, (&Shift{}).RequiredCount())
}

func TestShift_HasWorker(t *testing.T) {
	s := Shift{AssignedWorkers: []AssignedWorker{
		{UserID: "w-1", RoleAssigned: RoleStagehand},
	}}
	assert.True(t, s.HasWorker("w-1"))
	assert.False(t, s.HasWorker("w-2"))
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleCrewChief, NormalizeRole("crew_chief"))
	assert.Equal(t, RoleStagehand, NormalizeRole(""))
	assert.Equal(t, RoleStagehand, NormalizeRole("operator"))
}

func TestWorker_DefaultRole(t *testing.T) {
	w := Worker{EmployeeType: RoleTruckDriver}
	assert.Equal(t, RoleTruckDriver, w.DefaultRole())

	assert.Equal(t, RoleStagehand, (&Worker{}).DefaultRole())
}
