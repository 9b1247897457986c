package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskmanager/internal/apperr"
	"taskmanager/internal/models"
)

type PgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) *PgUserRepository {
	return &PgUserRepository{db: db}
}

func (r *PgUserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (first_name, last_name, email, password)
		 VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		user.FirstName, user.LastName, user.Email, user.Password,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating user: %w", translatePgError(err))
	}
	return nil
}

func (r *PgUserRepository) GetByID(ctx context.Context, id int) (models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, password, created_at
		 FROM users WHERE id = $1`, id,
	).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Password, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, apperr.NotFound("user", id)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("fetching user %d: %w", id, err)
	}
	return user, nil
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, password, created_at
		 FROM users WHERE email = $1`, email,
	).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Password, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user with email %s: %w", email, apperr.ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("fetching user by email: %w", err)
	}
	return user, nil
}

func (r *PgUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, email, password, created_at
		 FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Password, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating over users: %w", err)
	}
	return users, nil
}

func (r *PgUserRepository) Update(ctx context.Context, user *models.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET first_name = $1, last_name = $2, email = $3, password = $4
		 WHERE id = $5`,
		user.FirstName, user.LastName, user.Email, user.Password, user.ID)
	if err != nil {
		return fmt.Errorf("updating user %d: %w", user.ID, translatePgError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("user", user.ID)
	}
	return nil
}

func (r *PgUserRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting user %d: %w", id, translatePgError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("user", id)
	}
	return nil
}
