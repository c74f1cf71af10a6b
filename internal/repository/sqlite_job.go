package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkovach/crewboard/internal/db"
	"github.com/mkovach/crewboard/internal/domain"
)

// SQLiteJobRepo implements JobRepo using a SQLite database.
type SQLiteJobRepo struct {
	db db.DBTX
}

// NewSQLiteJobRepo creates a new SQLiteJobRepo.
func NewSQLiteJobRepo(dbtx db.DBTX) *SQLiteJobRepo {
	return &SQLiteJobRepo{db: dbtx}
}

func (r *SQLiteJobRepo) Create(ctx context.Context, j *domain.Job) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO jobs (id, name, client_name) VALUES (?, ?, ?)`,
		j.ID, j.Name, j.ClientName)
	if err != nil {
		return fmt.Errorf("inserting job: %w", err)
	}
	return nil
}

func (r *SQLiteJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, client_name FROM jobs WHERE id = ?`, id)
	return scanJob(row)
}

func (r *SQLiteJobRepo) List(ctx context.Context) ([]*domain.Job, error) {
	return r.list(ctx, `SELECT id, name, client_name FROM jobs ORDER BY name`)
}

func (r *SQLiteJobRepo) ListByClient(ctx context.Context, clientName string) ([]*domain.Job, error) {
	return r.list(ctx,
		`SELECT id, name, client_name FROM jobs WHERE client_name = ? ORDER BY name`,
		clientName)
}

func (r *SQLiteJobRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteJobRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating jobs: %w", err)
	}
	return jobs, nil
}

func scanJob(row scanner) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(&j.ID, &j.Name, &j.ClientName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning job: %w", err)
	}
	return &j, nil
}
