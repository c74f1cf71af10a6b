package repository

import (
	"database/sql"
	"strings"
	"time"
)

// storedTimeLayout is how instants are stored in SQLite. Wall-clock local
// time, matching the wire datetime format.
const storedTimeLayout = "2006-01-02T15:04:05"

// parseStoredTime parses a sql.NullString into a time.Time in loc.
// Returns the zero time for NULL, empty, or unparseable values.
func parseStoredTime(s sql.NullString, loc *time.Location) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(storedTimeLayout, s.String, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// storedTimeValue converts an instant to a value suitable for SQLite
// storage. The zero time stores as SQL NULL (unscheduled).
func storedTimeValue(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(storedTimeLayout)
}

// joinCerts flattens certification flags for storage.
func joinCerts(certs []string) string {
	return strings.Join(certs, ",")
}

// splitCerts restores certification flags from storage.
func splitCerts(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
