package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are applied in order on every open. Statements are written to
// be re-runnable; ALTER TABLE duplicates are tolerated below.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS workers (
		id                   TEXT PRIMARY KEY,
		name                 TEXT NOT NULL,
		employee_type        TEXT NOT NULL DEFAULT 'stagehand'
		                     CHECK(employee_type IN ('stagehand','crew_chief','forklift_operator','truck_driver')),
		certifications       TEXT NOT NULL DEFAULT '',
		availability_score   INTEGER NOT NULL DEFAULT 100,
		current_shifts_count INTEGER NOT NULL DEFAULT 0,
		available            INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS jobs (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		client_name TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS shifts (
		id                   TEXT PRIMARY KEY,
		job_id               TEXT REFERENCES jobs(id) ON DELETE SET NULL,
		start_datetime       TEXT,
		end_datetime         TEXT,
		client_po_number     TEXT NOT NULL DEFAULT '',
		special_instructions TEXT NOT NULL DEFAULT '',
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS shift_requirements (
		shift_id TEXT NOT NULL REFERENCES shifts(id) ON DELETE CASCADE,
		role     TEXT NOT NULL
		         CHECK(role IN ('stagehand','crew_chief','forklift_operator','truck_driver')),
		required INTEGER NOT NULL DEFAULT 0 CHECK(required >= 0),
		PRIMARY KEY (shift_id, role)
	)`,

	`CREATE TABLE IF NOT EXISTS shift_assignments (
		shift_id      TEXT NOT NULL REFERENCES shifts(id) ON DELETE CASCADE,
		worker_id     TEXT NOT NULL REFERENCES workers(id) ON DELETE CASCADE,
		role_assigned TEXT NOT NULL DEFAULT 'stagehand',
		position      INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (shift_id, worker_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_shifts_start ON shifts(start_datetime)`,
	`CREATE INDEX IF NOT EXISTS idx_shifts_job ON shifts(job_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_worker ON shift_assignments(worker_id)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
