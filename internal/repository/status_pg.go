package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskmanager/internal/apperr"
	"taskmanager/internal/models"
)

type PgTaskStatusRepository struct {
	db *sql.DB
}

func NewPgTaskStatusRepository(db *sql.DB) *PgTaskStatusRepository {
	return &PgTaskStatusRepository{db: db}
}

func (r *PgTaskStatusRepository) Create(ctx context.Context, status *models.TaskStatus) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO task_statuses (name) VALUES ($1) RETURNING id, created_at`,
		status.Name,
	).Scan(&status.ID, &status.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating task status: %w", translatePgError(err))
	}
	return nil
}

func (r *PgTaskStatusRepository) GetByID(ctx context.Context, id int) (models.TaskStatus, error) {
	var status models.TaskStatus
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM task_statuses WHERE id = $1`, id,
	).Scan(&status.ID, &status.Name, &status.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TaskStatus{}, apperr.NotFound("task status", id)
	}
	if err != nil {
		return models.TaskStatus{}, fmt.Errorf("fetching task status %d: %w", id, err)
	}
	return status, nil
}

func (r *PgTaskStatusRepository) GetAll(ctx context.Context) ([]models.TaskStatus, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM task_statuses ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("fetching task statuses: %w", err)
	}
	defer rows.Close()

	statuses := []models.TaskStatus{}
	for rows.Next() {
		var status models.TaskStatus
		if err := rows.Scan(&status.ID, &status.Name, &status.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning task status: %w", err)
		}
		statuses = append(statuses, status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating over task statuses: %w", err)
	}
	return statuses, nil
}

func (r *PgTaskStatusRepository) Update(ctx context.Context, status *models.TaskStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE task_statuses SET name = $1 WHERE id = $2`, status.Name, status.ID)
	if err != nil {
		return fmt.Errorf("updating task status %d: %w", status.ID, translatePgError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("task status", status.ID)
	}
	return nil
}

func (r *PgTaskStatusRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM task_statuses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting task status %d: %w", id, translatePgError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("task status", id)
	}
	return nil
}
