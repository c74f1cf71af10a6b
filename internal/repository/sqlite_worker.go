package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkovach/crewboard/internal/db"
	"github.com/mkovach/crewboard/internal/domain"
)

// workerColumns is the canonical SELECT column list for workers.
const workerColumns = `id, name, employee_type, certifications,
		availability_score, current_shifts_count, available`

// SQLiteWorkerRepo implements WorkerRepo using a SQLite database.
type SQLiteWorkerRepo struct {
	db db.DBTX
}

// NewSQLiteWorkerRepo creates a new SQLiteWorkerRepo.
func NewSQLiteWorkerRepo(dbtx db.DBTX) *SQLiteWorkerRepo {
	return &SQLiteWorkerRepo{db: dbtx}
}

func (r *SQLiteWorkerRepo) Create(ctx context.Context, w *domain.Worker) error {
	query := `INSERT INTO workers (id, name, employee_type, certifications,
		availability_score, current_shifts_count, available)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.Name,
		string(w.DefaultRole()),
		joinCerts(w.Certifications),
		w.AvailabilityScore,
		w.CurrentShiftsCount,
		boolToInt(w.Available),
	)
	if err != nil {
		return fmt.Errorf("inserting worker: %w", err)
	}
	return nil
}

func (r *SQLiteWorkerRepo) GetByID(ctx context.Context, id string) (*domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE id = ?`
	return scanWorker(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteWorkerRepo) List(ctx context.Context) ([]*domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing workers: %w", err)
	}
	defer rows.Close()

	var workers []*domain.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workers: %w", err)
	}
	return workers, nil
}

func (r *SQLiteWorkerRepo) Update(ctx context.Context, w *domain.Worker) error {
	query := `UPDATE workers SET name = ?, employee_type = ?, certifications = ?,
		availability_score = ?, current_shifts_count = ?, available = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		w.Name,
		string(w.DefaultRole()),
		joinCerts(w.Certifications),
		w.AvailabilityScore,
		w.CurrentShiftsCount,
		boolToInt(w.Available),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating worker: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteWorkerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting worker: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanWorker(row scanner) (*domain.Worker, error) {
	var w domain.Worker
	var empType, certs string
	var available int
	err := row.Scan(&w.ID, &w.Name, &empType, &certs,
		&w.AvailabilityScore, &w.CurrentShiftsCount, &available)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning worker: %w", err)
	}
	w.EmployeeType = domain.Role(empType)
	w.Certifications = splitCerts(certs)
	w.Available = intToBool(available)
	return &w, nil
}
