// Package calendar provides the pure time-bucket machinery behind the
// scheduling board: grid generation for the three view granularities and
// aggregation of shifts into date/hour buckets.
package calendar

import "time"

// ViewKind selects the board granularity.
type ViewKind string

const (
	ViewDay   ViewKind = "day"
	ViewWeek  ViewKind = "week"
	ViewMonth ViewKind = "month"
)

// Bucket is one calendar cell: an hour of a day for the day view, a whole
// day for week and month views.
type Bucket struct {
	Date time.Time // midnight of the bucket's calendar date

	// Hour is the hour-of-day for hourly buckets, -1 for day buckets.
	Hour int

	// OtherMonth marks leading/trailing month-grid cells that belong to an
	// adjacent month. They render dimmed but stay interactive.
	OtherMonth bool
}

// Start returns the instant the bucket begins.
func (b Bucket) Start() time.Time {
	if b.Hour < 0 {
		return b.Date
	}
	return b.Date.Add(time.Duration(b.Hour) * time.Hour)
}

// DateKey returns the bucket's calendar-date key.
func (b Bucket) DateKey() string {
	return b.Date.Format(dateKeyLayout)
}

// Grid produces the ordered bucket sequence for anchor and view. It is pure
// and idempotent: the same (anchor, view) always yields the same grid.
//
//   - day: 24 hourly buckets on the anchor's date.
//   - week: the Sunday..Saturday week containing the anchor, 7 day buckets.
//   - month: full weeks covering the anchor's month, from the Sunday on or
//     before the 1st through the Saturday on or after the last day, so the
//     grid is always rectangular with 7 columns.
func Grid(anchor time.Time, view ViewKind) []Bucket {
	switch view {
	case ViewDay:
		return dayGrid(anchor)
	case ViewMonth:
		return monthGrid(anchor)
	default:
		return weekGrid(anchor)
	}
}

func dayGrid(anchor time.Time) []Bucket {
	d := midnight(anchor)
	buckets := make([]Bucket, 0, 24)
	for h := 0; h < 24; h++ {
		buckets = append(buckets, Bucket{Date: d, Hour: h})
	}
	return buckets
}

func weekGrid(anchor time.Time) []Bucket {
	start := WeekStart(anchor)
	buckets := make([]Bucket, 0, 7)
	for i := 0; i < 7; i++ {
		buckets = append(buckets, Bucket{Date: start.AddDate(0, 0, i), Hour: -1})
	}
	return buckets
}

func monthGrid(anchor time.Time) []Bucket {
	year, month, _ := anchor.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, anchor.Location())
	last := first.AddDate(0, 1, -1)

	start := WeekStart(first)
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	var buckets []Bucket
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		buckets = append(buckets, Bucket{
			Date:       d,
			Hour:       -1,
			OtherMonth: d.Month() != month,
		})
	}
	return buckets
}

// WeekStart returns midnight of the Sunday on or before t.
func WeekStart(t time.Time) time.Time {
	return midnight(t).AddDate(0, 0, -int(t.Weekday()))
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
