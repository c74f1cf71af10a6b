package board

import (
	"testing"
	"time"

	"github.com/mkovach/crewboard/internal/calendar"
	"github.com/mkovach/crewboard/internal/domain"
	"github.com/mkovach/crewboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWeekSession() *Session {
	return NewSession(testutil.MidWeek, time.UTC)
}

func scheduledShift(id string, start time.Time, opts ...func(*domain.Shift)) domain.Shift {
	s := domain.Shift{
		ID:               id,
		JobID:            "j-1",
		Start:            start,
		End:              start.Add(4 * time.Hour),
		RoleRequirements: map[domain.Role]int{domain.RoleStagehand: 1},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func TestSession_WindowMatchesView(t *testing.T) {
	s := newWeekSession()

	start, end := s.Window()
	assert.Equal(t, "2024-03-03", start)
	assert.Equal(t, "2024-03-09", end)

	s.View = calendar.ViewDay
	start, end = s.Window()
	assert.Equal(t, "2024-03-06", start)
	assert.Equal(t, "2024-03-06", end)

	s.View = calendar.ViewMonth
	start, end = s.Window()
	assert.Equal(t, "2024-02-25", start, "month window includes the leading other-month cells")
	assert.Equal(t, "2024-04-06", end)
}

func TestSession_FetchCommandCarriesFilters(t *testing.T) {
	s := newWeekSession()
	s.SetFilter(Filters{JobID: "j-1", ClientID: "Harbor"})

	cmd := s.FetchCommand()
	assert.Equal(t, "week", cmd.ViewType)
	assert.Equal(t, "2024-03-03", cmd.StartDate)
	assert.Equal(t, "j-1", cmd.Filters.JobID)
	assert.Equal(t, "Harbor", cmd.Filters.ClientID)
}

func TestSession_StepByView(t *testing.T) {
	s := newWeekSession()

	s.Next()
	assert.Equal(t, "2024-03-13", calendar.DateKey(s.Anchor))
	s.Prev()
	assert.Equal(t, "2024-03-06", calendar.DateKey(s.Anchor))

	s.View = calendar.ViewDay
	s.Next()
	assert.Equal(t, "2024-03-07", calendar.DateKey(s.Anchor))

	s.View = calendar.ViewMonth
	s.Next()
	assert.Equal(t, "2024-04-01", calendar.DateKey(s.Anchor), "month steps pin to the 1st")
	s.Prev()
	assert.Equal(t, "2024-03-01", calendar.DateKey(s.Anchor))
}

func TestSession_MonthStepNeverSkipsShortMonths(t *testing.T) {
	s := NewSession(time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC), time.UTC)
	s.View = calendar.ViewMonth

	s.Next()
	assert.Equal(t, time.February, s.Anchor.Month())
	s.Next()
	assert.Equal(t, time.March, s.Anchor.Month())
}

func TestSession_CycleView(t *testing.T) {
	s := newWeekSession()
	assert.Equal(t, calendar.ViewWeek, s.View)
	s.CycleView()
	assert.Equal(t, calendar.ViewMonth, s.View)
	s.CycleView()
	assert.Equal(t, calendar.ViewDay, s.View)
	s.CycleView()
	assert.Equal(t, calendar.ViewWeek, s.View)
}

func TestSession_ClientSideFilters(t *testing.T) {
	s := newWeekSession()
	day := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	withDana := func(sh *domain.Shift) {
		sh.AssignedWorkers = []domain.AssignedWorker{
			{UserID: "w-dana", RoleAssigned: domain.RoleStagehand},
		}
	}
	needsChief := func(sh *domain.Shift) {
		sh.RoleRequirements = map[domain.Role]int{domain.RoleCrewChief: 1}
	}
	s.SetShifts([]domain.Shift{
		scheduledShift("s-1", day, withDana),
		scheduledShift("s-2", day.Add(2*time.Hour)),
		scheduledShift("s-3", day.Add(4*time.Hour), needsChief),
	})

	s.SetFilter(Filters{WorkerID: "w-dana"})
	vis := s.VisibleShifts()
	require.Len(t, vis, 1)
	assert.Equal(t, "s-1", vis[0].ID)

	s.SetFilter(Filters{Role: domain.RoleCrewChief})
	vis = s.VisibleShifts()
	require.Len(t, vis, 1)
	assert.Equal(t, "s-3", vis[0].ID)

	s.SetFilter(Filters{Status: domain.StaffingFullyStaffed})
	vis = s.VisibleShifts()
	require.Len(t, vis, 1)
	assert.Equal(t, "s-1", vis[0].ID, "only the shift with its one stagehand is fully staffed")
}

func TestSession_FilterFeedsIndex(t *testing.T) {
	s := newWeekSession()
	day := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	s.SetShifts([]domain.Shift{
		scheduledShift("s-1", day),
		{ID: "s-hold", JobID: "j-2", RoleRequirements: map[domain.Role]int{domain.RoleStagehand: 1}},
	})

	assert.Equal(t, 1, s.Index.DateCount("2024-03-04"))
	require.Len(t, s.Index.Unscheduled, 1)

	s.SetFilter(Filters{JobID: "j-2"})
	assert.Zero(t, s.Index.DateCount("2024-03-04"), "filtered-out shifts leave the index")
	require.Len(t, s.Index.Unscheduled, 1)
}

func TestSession_Lookups(t *testing.T) {
	s := newWeekSession()
	day := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	s.SetShifts([]domain.Shift{scheduledShift("s-1", day)})
	s.Workers = []domain.Worker{{ID: "w-1", Name: "Dana"}}

	require.NotNil(t, s.ShiftByID("s-1"))
	assert.Nil(t, s.ShiftByID("missing"))
	require.NotNil(t, s.WorkerByID("w-1"))
	assert.Nil(t, s.WorkerByID("missing"))
}

func TestSession_Today(t *testing.T) {
	s := newWeekSession()
	s.Next()
	s.Today(time.Date(2024, 3, 6, 22, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-06", calendar.DateKey(s.Anchor))
}
