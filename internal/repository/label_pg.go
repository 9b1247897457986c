package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskmanager/internal/apperr"
	"taskmanager/internal/models"
)

type PgLabelRepository struct {
	db *sql.DB
}

func NewPgLabelRepository(db *sql.DB) *PgLabelRepository {
	return &PgLabelRepository{db: db}
}

func (r *PgLabelRepository) Create(ctx context.Context, label *models.Label) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO labels (name) VALUES ($1) RETURNING id, created_at`,
		label.Name,
	).Scan(&label.ID, &label.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating label: %w", translatePgError(err))
	}
	return nil
}

func (r *PgLabelRepository) GetByID(ctx context.Context, id int) (models.Label, error) {
	var label models.Label
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM labels WHERE id = $1`, id,
	).Scan(&label.ID, &label.Name, &label.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Label{}, apperr.NotFound("label", id)
	}
	if err != nil {
		return models.Label{}, fmt.Errorf("fetching label %d: %w", id, err)
	}
	return label, nil
}

func (r *PgLabelRepository) GetAll(ctx context.Context) ([]models.Label, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM labels ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("fetching labels: %w", err)
	}
	defer rows.Close()

	labels := []models.Label{}
	for rows.Next() {
		var label models.Label
		if err := rows.Scan(&label.ID, &label.Name, &label.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning label: %w", err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating over labels: %w", err)
	}
	return labels, nil
}

func (r *PgLabelRepository) Update(ctx context.Context, label *models.Label) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE labels SET name = $1 WHERE id = $2`, label.Name, label.ID)
	if err != nil {
		return fmt.Errorf("updating label %d: %w", label.ID, translatePgError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("label", label.ID)
	}
	return nil
}

func (r *PgLabelRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM labels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting label %d: %w", id, translatePgError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("label", id)
	}
	return nil
}
