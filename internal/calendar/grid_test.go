package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayGrid_24HourlyBuckets(t *testing.T) {
	anchor := time.Date(2024, 3, 6, 14, 37, 0, 0, time.UTC)
	buckets := Grid(anchor, ViewDay)

	require.Len(t, buckets, 24)
	for h, b := range buckets {
		assert.Equal(t, h, b.Hour)
		assert.Equal(t, "2024-03-06", b.DateKey())
	}
	assert.Equal(t, time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC), buckets[9].Start())
}

func TestWeekGrid_SundayThroughSaturday(t *testing.T) {
	// 2024-03-06 is a Wednesday; its week runs Sun Mar 3 .. Sat Mar 9.
	anchor := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	buckets := Grid(anchor, ViewWeek)

	require.Len(t, buckets, 7)
	assert.Equal(t, "2024-03-03", buckets[0].DateKey())
	assert.Equal(t, time.Sunday, buckets[0].Date.Weekday())
	assert.Equal(t, "2024-03-09", buckets[6].DateKey())
	assert.Equal(t, time.Saturday, buckets[6].Date.Weekday())
	for _, b := range buckets {
		assert.Equal(t, -1, b.Hour, "week buckets are day buckets")
	}
}

func TestWeekGrid_AnchorOnSunday(t *testing.T) {
	anchor := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	buckets := Grid(anchor, ViewWeek)

	require.Len(t, buckets, 7)
	assert.Equal(t, "2024-03-03", buckets[0].DateKey(), "a Sunday anchors its own week")
}

func TestMonthGrid_RectangularAndComplete(t *testing.T) {
	cases := []struct {
		name   string
		anchor time.Time
		first  string
		last   string
	}{
		{"march 2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "2024-03-01", "2024-03-31"},
		{"february leap", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "2024-02-01", "2024-02-29"},
		{"starts on sunday", time.Date(2024, 9, 10, 0, 0, 0, 0, time.UTC), "2024-09-01", "2024-09-30"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buckets := Grid(tc.anchor, ViewMonth)

			require.NotEmpty(t, buckets)
			assert.Zero(t, len(buckets)%7, "month grid must be whole weeks")
			assert.Equal(t, time.Sunday, buckets[0].Date.Weekday())
			assert.Equal(t, time.Saturday, buckets[len(buckets)-1].Date.Weekday())

			keys := make(map[string]bool, len(buckets))
			for _, b := range buckets {
				keys[b.DateKey()] = true
			}
			assert.True(t, keys[tc.first], "first of month present")
			assert.True(t, keys[tc.last], "last of month present")
		})
	}
}

func TestMonthGrid_OtherMonthFlag(t *testing.T) {
	// March 2024 starts on a Friday, so the leading Sunday..Thursday cells
	// belong to February.
	buckets := Grid(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ViewMonth)

	assert.True(t, buckets[0].OtherMonth, "leading February cell")
	for _, b := range buckets {
		assert.Equal(t, b.Date.Month() != time.March, b.OtherMonth, b.DateKey())
	}
}

func TestGrid_Idempotent(t *testing.T) {
	anchor := time.Date(2024, 7, 19, 16, 45, 12, 0, time.UTC)
	for _, view := range []ViewKind{ViewDay, ViewWeek, ViewMonth} {
		first := Grid(anchor, view)
		second := Grid(anchor, view)
		assert.Equal(t, first, second, "grid for %s must not depend on call count", view)
	}
}

func TestBucketStart_DayBucketIsMidnight(t *testing.T) {
	b := Bucket{Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Hour: -1}
	assert.Equal(t, b.Date, b.Start())
}
