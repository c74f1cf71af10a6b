package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/mkovach/crewboard/internal/db"
)

// MidWeek is the anchor instant board tests pin their clocks to: a
// Wednesday mid-morning, so the surrounding week window (Sunday 03-03
// through Saturday 03-09) and its day buckets are deterministic.
var MidWeek = time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

// MidWeekClock returns a fixed clock for wiring into the app in tests.
func MidWeekClock() func() time.Time {
	return func() time.Time { return MidWeek }
}

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
