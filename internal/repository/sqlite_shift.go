package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkovach/crewboard/internal/db"
	"github.com/mkovach/crewboard/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("repository: not found")

// ErrAlreadyAssigned is returned when a worker is assigned to a shift they
// are already on.
var ErrAlreadyAssigned = errors.New("repository: worker already assigned to shift")

// shiftColumns is the canonical SELECT column list for shifts.
const shiftColumns = `id, job_id, start_datetime, end_datetime,
		client_po_number, special_instructions, created_at, updated_at`

// SQLiteShiftRepo implements ShiftRepo over a DBTX, so the same code runs
// against the database or inside a unit-of-work transaction.
type SQLiteShiftRepo struct {
	db  db.DBTX
	loc *time.Location
}

// NewSQLiteShiftRepo creates a shift repo. Stored datetimes are
// interpreted in loc; nil means time.Local.
func NewSQLiteShiftRepo(dbtx db.DBTX, loc *time.Location) *SQLiteShiftRepo {
	if loc == nil {
		loc = time.Local
	}
	return &SQLiteShiftRepo{db: dbtx, loc: loc}
}

func (r *SQLiteShiftRepo) Create(ctx context.Context, s *domain.Shift) error {
	query := `INSERT INTO shifts (id, job_id, start_datetime, end_datetime,
		client_po_number, special_instructions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	now := nowUTC()
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		nullableString(s.JobID),
		storedTimeValue(s.Start),
		storedTimeValue(s.End),
		s.ClientPONumber,
		s.SpecialInstructions,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("inserting shift: %w", err)
	}
	if err := r.writeRequirements(ctx, s.ID, s.RoleRequirements); err != nil {
		return err
	}
	for i, a := range s.AssignedWorkers {
		if err := r.insertAssignment(ctx, s.ID, a.UserID, a.RoleAssigned, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteShiftRepo) GetByID(ctx context.Context, id string) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = ?`
	s, err := r.scanShift(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, []*domain.Shift{s}); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteShiftRepo) ListWindow(ctx context.Context, start, end time.Time, jobID string) ([]*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts
		WHERE (start_datetime IS NULL OR (end_datetime >= ? AND start_datetime <= ?))`
	args := []any{storedTimeValue(start), storedTimeValue(end)}
	if jobID != "" {
		query += ` AND job_id = ?`
		args = append(args, jobID)
	}
	query += ` ORDER BY start_datetime`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing shifts: %w", err)
	}
	defer rows.Close()

	var shifts []*domain.Shift
	for rows.Next() {
		s, err := r.scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating shifts: %w", err)
	}
	if err := r.loadChildren(ctx, shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *SQLiteShiftRepo) Update(ctx context.Context, s *domain.Shift) error {
	query := `UPDATE shifts SET job_id = ?, start_datetime = ?, end_datetime = ?,
		client_po_number = ?, special_instructions = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableString(s.JobID),
		storedTimeValue(s.Start),
		storedTimeValue(s.End),
		s.ClientPONumber,
		s.SpecialInstructions,
		nowUTC(),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating shift: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM shift_requirements WHERE shift_id = ?`, s.ID); err != nil {
		return fmt.Errorf("clearing shift requirements: %w", err)
	}
	return r.writeRequirements(ctx, s.ID, s.RoleRequirements)
}

func (r *SQLiteShiftRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting shift: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteShiftRepo) Assign(ctx context.Context, shiftID, workerID string, role domain.Role) error {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shift_assignments WHERE shift_id = ? AND worker_id = ?`,
		shiftID, workerID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking assignment: %w", err)
	}
	if exists > 0 {
		return ErrAlreadyAssigned
	}

	var next sql.NullInt64
	err = r.db.QueryRowContext(ctx,
		`SELECT MAX(position) + 1 FROM shift_assignments WHERE shift_id = ?`, shiftID).Scan(&next)
	if err != nil {
		return fmt.Errorf("computing assignment position: %w", err)
	}
	pos := 0
	if next.Valid {
		pos = int(next.Int64)
	}
	return r.insertAssignment(ctx, shiftID, workerID, role, pos)
}

func (r *SQLiteShiftRepo) Unassign(ctx context.Context, shiftID, workerID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM shift_assignments WHERE shift_id = ? AND worker_id = ?`,
		shiftID, workerID)
	if err != nil {
		return fmt.Errorf("deleting assignment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteShiftRepo) insertAssignment(ctx context.Context, shiftID, workerID string, role domain.Role, pos int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO shift_assignments (shift_id, worker_id, role_assigned, position)
		VALUES (?, ?, ?, ?)`,
		shiftID, workerID, string(role), pos)
	if err != nil {
		return fmt.Errorf("inserting assignment: %w", err)
	}
	return nil
}

func (r *SQLiteShiftRepo) writeRequirements(ctx context.Context, shiftID string, reqs map[domain.Role]int) error {
	for role, n := range reqs {
		if n <= 0 {
			continue
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO shift_requirements (shift_id, role, required) VALUES (?, ?, ?)`,
			shiftID, string(role), n)
		if err != nil {
			return fmt.Errorf("inserting requirement %s: %w", role, err)
		}
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan code.
type scanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteShiftRepo) scanShift(row scanner) (*domain.Shift, error) {
	var s domain.Shift
	var jobID, start, end sql.NullString
	var createdAt, updatedAt string
	err := row.Scan(&s.ID, &jobID, &start, &end,
		&s.ClientPONumber, &s.SpecialInstructions, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning shift: %w", err)
	}
	s.JobID = jobID.String
	s.Start = parseStoredTime(start, r.loc)
	s.End = parseStoredTime(end, r.loc)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		s.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		s.UpdatedAt = t
	}
	s.RoleRequirements = make(map[domain.Role]int)
	return &s, nil
}

// loadChildren populates requirement maps and ordered rosters for the
// given shifts.
func (r *SQLiteShiftRepo) loadChildren(ctx context.Context, shifts []*domain.Shift) error {
	if len(shifts) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Shift, len(shifts))
	for _, s := range shifts {
		byID[s.ID] = s
	}

	reqRows, err := r.db.QueryContext(ctx,
		`SELECT shift_id, role, required FROM shift_requirements`)
	if err != nil {
		return fmt.Errorf("loading requirements: %w", err)
	}
	defer reqRows.Close()
	for reqRows.Next() {
		var shiftID, role string
		var required int
		if err := reqRows.Scan(&shiftID, &role, &required); err != nil {
			return fmt.Errorf("scanning requirement: %w", err)
		}
		if s, ok := byID[shiftID]; ok {
			s.RoleRequirements[domain.Role(role)] = required
		}
	}
	if err := reqRows.Err(); err != nil {
		return fmt.Errorf("iterating requirements: %w", err)
	}

	asgRows, err := r.db.QueryContext(ctx,
		`SELECT a.shift_id, a.worker_id, a.role_assigned, w.name
		FROM shift_assignments a
		JOIN workers w ON w.id = a.worker_id
		ORDER BY a.shift_id, a.position`)
	if err != nil {
		return fmt.Errorf("loading assignments: %w", err)
	}
	defer asgRows.Close()
	for asgRows.Next() {
		var shiftID, workerID, role, name string
		if err := asgRows.Scan(&shiftID, &workerID, &role, &name); err != nil {
			return fmt.Errorf("scanning assignment: %w", err)
		}
		if s, ok := byID[shiftID]; ok {
			s.AssignedWorkers = append(s.AssignedWorkers, domain.AssignedWorker{
				UserID:       workerID,
				RoleAssigned: domain.Role(role),
				Name:         name,
			})
		}
	}
	if err := asgRows.Err(); err != nil {
		return fmt.Errorf("iterating assignments: %w", err)
	}
	return nil
}

// nullableString stores empty strings as SQL NULL (for nullable FKs).
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
