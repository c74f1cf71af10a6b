package calendar

import (
	"time"

	"github.com/mkovach/crewboard/internal/domain"
)

const dateKeyLayout = "2006-01-02"

// DateKey formats t as the calendar-date key used throughout the board.
// Keys compare by calendar date in the display location, not by instant.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// Index is the two-level shift lookup produced by Aggregate:
// date key -> hour -> shifts. Day and week views use both levels; the month
// view consults only the date level via ByDate.
type Index struct {
	byDateHour map[string]map[int][]domain.Shift
	byDate     map[string][]domain.Shift

	// Unscheduled collects shifts lacking a start instant. They never
	// appear in keyed buckets and are surfaced separately.
	Unscheduled []domain.Shift
}

// Aggregate groups shifts by calendar date and hour in loc. A nil loc means
// the shifts' own locations are trusted as display-local. Order within a
// bucket follows input order.
func Aggregate(shifts []domain.Shift, loc *time.Location) Index {
	idx := Index{
		byDateHour: make(map[string]map[int][]domain.Shift),
		byDate:     make(map[string][]domain.Shift),
	}
	for _, s := range shifts {
		if !s.Scheduled() {
			idx.Unscheduled = append(idx.Unscheduled, s)
			continue
		}
		start := s.Start
		if loc != nil {
			start = start.In(loc)
		}
		key := DateKey(start)
		hour := start.Hour()

		hours := idx.byDateHour[key]
		if hours == nil {
			hours = make(map[int][]domain.Shift)
			idx.byDateHour[key] = hours
		}
		hours[hour] = append(hours[hour], s)
		idx.byDate[key] = append(idx.byDate[key], s)
	}
	return idx
}

// At returns the shifts starting in the given date/hour bucket, in input
// order. The returned slice must not be mutated.
func (idx Index) At(dateKey string, hour int) []domain.Shift {
	return idx.byDateHour[dateKey][hour]
}

// ByDate returns all scheduled shifts on the given date, in input order.
func (idx Index) ByDate(dateKey string) []domain.Shift {
	return idx.byDate[dateKey]
}

// AtBucket resolves a grid bucket to its shifts: hourly buckets use the
// date/hour lookup, day buckets the whole date.
func (idx Index) AtBucket(b Bucket) []domain.Shift {
	if b.Hour < 0 {
		return idx.ByDate(b.DateKey())
	}
	return idx.At(b.DateKey(), b.Hour)
}

// DateCount returns the number of scheduled shifts on a date. Used for
// month-cell badges.
func (idx Index) DateCount(dateKey string) int {
	return len(idx.byDate[dateKey])
}
