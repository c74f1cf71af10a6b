package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"shorter than max", "Dana", 10, "Dana"},
		{"exactly max", "Dana", 4, "Dana"},
		{"cut with ellipsis", "Spring Expo", 8, "Spring …"},
		{"max one", "Spring Expo", 1, "…"},
		{"max zero", "Spring Expo", 0, ""},
		{"multibyte runes", "Café Rigging", 5, "Café…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.max))
		})
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "Dana      ", PadRight("Dana", 10))
	assert.Equal(t, "Spring E…", PadRight("Spring Expo", 9))
	assert.Equal(t, "Dana", PadRight("Dana", 4))
}

func TestFormatTimeRange(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 4, 13, 0, 0, 0, time.UTC)
	assert.Equal(t, "09:00–13:00", FormatTimeRange(start, end))
	assert.Equal(t, "unscheduled", FormatTimeRange(time.Time{}, time.Time{}))
}

func TestFormatDateHeading(t *testing.T) {
	assert.Equal(t, "Mon Mar 4", FormatDateHeading(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)))
}

func TestRoleShort(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"stagehand", "SH"},
		{"crew_chief", "CC"},
		{"forklift_operator", "FO"},
		{"truck_driver", "TD"},
		{"rigger", "RI"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoleShort(tt.role))
	}
}

func TestCountPair(t *testing.T) {
	assert.Equal(t, "2/3", CountPair(2, 3))
	assert.Equal(t, "0/0", CountPair(0, 0))
}
