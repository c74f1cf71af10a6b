package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mkovach/crewboard/internal/domain"
	"github.com/mkovach/crewboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shiftFixture struct {
	shifts  *SQLiteShiftRepo
	workers *SQLiteWorkerRepo
	jobs    *SQLiteJobRepo
	job     *domain.Job
	dana    *domain.Worker
	sam     *domain.Worker
}

func newShiftFixture(t *testing.T) *shiftFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	f := &shiftFixture{
		shifts:  NewSQLiteShiftRepo(database, time.UTC),
		workers: NewSQLiteWorkerRepo(database),
		jobs:    NewSQLiteJobRepo(database),
	}

	ctx := context.Background()
	f.job = testutil.NewTestJob("Spring Expo", "Harbor Convention Center")
	require.NoError(t, f.jobs.Create(ctx, f.job))

	f.dana = testutil.NewTestWorker("Dana", testutil.WithEmployeeType(domain.RoleCrewChief))
	f.sam = testutil.NewTestWorker("Sam")
	require.NoError(t, f.workers.Create(ctx, f.dana))
	require.NoError(t, f.workers.Create(ctx, f.sam))
	return f
}

func TestShiftRepo_CreateAndGetAggregate(t *testing.T) {
	f := newShiftFixture(t)
	ctx := context.Background()

	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	s := testutil.NewTestShift(start,
		testutil.WithJob(f.job.ID),
		testutil.WithRequirement(domain.RoleStagehand, 2),
		testutil.WithRequirement(domain.RoleCrewChief, 1),
		testutil.WithAssigned(domain.AssignedWorker{UserID: f.dana.ID, RoleAssigned: domain.RoleCrewChief}),
	)
	s.ClientPONumber = "PO-7"
	require.NoError(t, f.shifts.Create(ctx, s))

	got, err := f.shifts.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, f.job.ID, got.JobID)
	assert.True(t, got.Start.Equal(start))
	assert.True(t, got.End.Equal(start.Add(4*time.Hour)))
	assert.Equal(t, "PO-7", got.ClientPONumber)
	assert.Equal(t, map[domain.Role]int{
		domain.RoleStagehand: 2,
		domain.RoleCrewChief: 1,
	}, got.RoleRequirements)
	require.Len(t, got.AssignedWorkers, 1)
	assert.Equal(t, "Dana", got.AssignedWorkers[0].Name, "roster rows join worker names")
	assert.False(t, got.CreatedAt.IsZero())
}

func TestShiftRepo_GetMissing(t *testing.T) {
	f := newShiftFixture(t)
	_, err := f.shifts.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShiftRepo_ListWindow(t *testing.T) {
	f := newShiftFixture(t)
	ctx := context.Background()

	winStart := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	winEnd := time.Date(2024, 3, 9, 23, 59, 59, 0, time.UTC)

	mar4 := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	inWindow := testutil.NewTestShift(mar4, testutil.WithJob(f.job.ID))
	before := testutil.NewTestShift(mar4.AddDate(0, 0, -10))
	hold := testutil.NewTestShift(mar4, testutil.Unscheduled())
	// Starts Saturday 22:00, ends Sunday 02:00: overlaps the window edge.
	spansIn := testutil.NewTestShift(winStart.Add(-2 * time.Hour))
	endsBefore := testutil.NewTestShift(winStart.Add(-6 * time.Hour))
	for _, s := range []*domain.Shift{inWindow, before, hold, spansIn, endsBefore} {
		require.NoError(t, f.shifts.Create(ctx, s))
	}

	got, err := f.shifts.ListWindow(ctx, winStart, winEnd, "")
	require.NoError(t, err)

	ids := make(map[string]bool, len(got))
	for _, s := range got {
		ids[s.ID] = true
	}
	assert.True(t, ids[inWindow.ID])
	assert.False(t, ids[before.ID], "fully past shifts are excluded")
	assert.True(t, ids[hold.ID], "unscheduled shifts ride along with every window")
	assert.True(t, ids[spansIn.ID], "a shift spanning midnight into the window is fetched")
	assert.False(t, ids[endsBefore.ID], "ending before the window still excludes")
}

func TestShiftRepo_ListWindowFiltersByJob(t *testing.T) {
	f := newShiftFixture(t)
	ctx := context.Background()

	other := testutil.NewTestJob("Gala", "Meridian Events")
	require.NoError(t, f.jobs.Create(ctx, other))

	mar4 := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	expo := testutil.NewTestShift(mar4, testutil.WithJob(f.job.ID))
	gala := testutil.NewTestShift(mar4, testutil.WithJob(other.ID))
	require.NoError(t, f.shifts.Create(ctx, expo))
	require.NoError(t, f.shifts.Create(ctx, gala))

	got, err := f.shifts.ListWindow(ctx, mar4.Add(-time.Hour), mar4.Add(time.Hour), f.job.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, expo.ID, got[0].ID)
}

func TestShiftRepo_UpdateReplacesRequirements(t *testing.T) {
	f := newShiftFixture(t)
	ctx := context.Background()

	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	s := testutil.NewTestShift(start, testutil.WithRequirement(domain.RoleStagehand, 2))
	require.NoError(t, f.shifts.Create(ctx, s))

	s.End = start.Add(8 * time.Hour)
	s.RoleRequirements = map[domain.Role]int{domain.RoleTruckDriver: 1}
	s.SpecialInstructions = "Dock 4"
	require.NoError(t, f.shifts.Update(ctx, s))

	got, err := f.shifts.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, got.End.Equal(start.Add(8*time.Hour)))
	assert.Equal(t, map[domain.Role]int{domain.RoleTruckDriver: 1}, got.RoleRequirements,
		"update replaces the requirement map wholesale")
	assert.Equal(t, "Dock 4", got.SpecialInstructions)
}

func TestShiftRepo_UpdateMissing(t *testing.T) {
	f := newShiftFixture(t)
	s := testutil.NewTestShift(time.Now())
	assert.ErrorIs(t, f.shifts.Update(context.Background(), s), ErrNotFound)
}

func TestShiftRepo_AssignOrderAndDuplicates(t *testing.T) {
	f := newShiftFixture(t)
	ctx := context.Background()

	s := testutil.NewTestShift(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))
	require.NoError(t, f.shifts.Create(ctx, s))

	require.NoError(t, f.shifts.Assign(ctx, s.ID, f.dana.ID, domain.RoleCrewChief))
	require.NoError(t, f.shifts.Assign(ctx, s.ID, f.sam.ID, domain.RoleStagehand))
	assert.ErrorIs(t, f.shifts.Assign(ctx, s.ID, f.dana.ID, domain.RoleStagehand), ErrAlreadyAssigned)

	got, err := f.shifts.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, got.AssignedWorkers, 2)
	assert.Equal(t, f.dana.ID, got.AssignedWorkers[0].UserID, "assignment order is stable")
	assert.Equal(t, f.sam.ID, got.AssignedWorkers[1].UserID)
}

func TestShiftRepo_Unassign(t *testing.T) {
	f := newShiftFixture(t)
	ctx := context.Background()

	s := testutil.NewTestShift(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))
	require.NoError(t, f.shifts.Create(ctx, s))
	require.NoError(t, f.shifts.Assign(ctx, s.ID, f.dana.ID, domain.RoleCrewChief))

	require.NoError(t, f.shifts.Unassign(ctx, s.ID, f.dana.ID))
	assert.ErrorIs(t, f.shifts.Unassign(ctx, s.ID, f.dana.ID), ErrNotFound)

	got, err := f.shifts.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, got.AssignedWorkers)
}

func TestShiftRepo_DeleteCascadesChildren(t *testing.T) {
	f := newShiftFixture(t)
	ctx := context.Background()

	s := testutil.NewTestShift(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		testutil.WithRequirement(domain.RoleStagehand, 1))
	require.NoError(t, f.shifts.Create(ctx, s))
	require.NoError(t, f.shifts.Assign(ctx, s.ID, f.dana.ID, domain.RoleStagehand))

	require.NoError(t, f.shifts.Delete(ctx, s.ID))
	_, err := f.shifts.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.shifts.Delete(ctx, s.ID), ErrNotFound)
}
