package calendar

import (
	"testing"
	"time"

	"github.com/mkovach/crewboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shiftAt(id string, start time.Time) domain.Shift {
	return domain.Shift{
		ID:    id,
		JobID: "j-1",
		Start: start,
		End:   start.Add(4 * time.Hour),
	}
}

func TestAggregate_GroupsByDateAndHour(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	shifts := []domain.Shift{
		shiftAt("s-1", day.Add(9*time.Hour)),
		shiftAt("s-2", day.Add(9*time.Hour+30*time.Minute)),
		shiftAt("s-3", day.Add(14*time.Hour)),
		shiftAt("s-4", day.AddDate(0, 0, 1).Add(9*time.Hour)),
	}

	idx := Aggregate(shifts, time.UTC)

	nine := idx.At("2024-03-04", 9)
	require.Len(t, nine, 2)
	assert.Equal(t, "s-1", nine[0].ID, "input order preserved inside a bucket")
	assert.Equal(t, "s-2", nine[1].ID)

	require.Len(t, idx.At("2024-03-04", 14), 1)
	assert.Empty(t, idx.At("2024-03-04", 10))

	assert.Equal(t, 3, idx.DateCount("2024-03-04"))
	assert.Equal(t, 1, idx.DateCount("2024-03-05"))
	assert.Zero(t, idx.DateCount("2024-03-06"))
}

func TestAggregate_UnscheduledKeptOutOfBuckets(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	shifts := []domain.Shift{
		shiftAt("s-1", day.Add(9*time.Hour)),
		{ID: "s-hold", JobID: "j-1"},
	}

	idx := Aggregate(shifts, time.UTC)

	require.Len(t, idx.Unscheduled, 1)
	assert.Equal(t, "s-hold", idx.Unscheduled[0].ID)
	assert.Equal(t, 1, idx.DateCount("2024-03-04"), "unscheduled shifts never join dated buckets")
}

func TestAggregate_KeysInDisplayLocation(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	// 03:00 UTC on Mar 5 is still Mar 4 evening in Chicago.
	s := shiftAt("s-1", time.Date(2024, 3, 5, 3, 0, 0, 0, time.UTC))
	idx := Aggregate([]domain.Shift{s}, chicago)

	assert.Equal(t, 1, idx.DateCount("2024-03-04"))
	assert.Zero(t, idx.DateCount("2024-03-05"))
	require.Len(t, idx.At("2024-03-04", 21), 1)
}

func TestAtBucket_HourVersusDay(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	idx := Aggregate([]domain.Shift{
		shiftAt("s-1", day.Add(9*time.Hour)),
		shiftAt("s-2", day.Add(14*time.Hour)),
	}, time.UTC)

	hourly := idx.AtBucket(Bucket{Date: day, Hour: 9})
	require.Len(t, hourly, 1)
	assert.Equal(t, "s-1", hourly[0].ID)

	whole := idx.AtBucket(Bucket{Date: day, Hour: -1})
	assert.Len(t, whole, 2)
}
