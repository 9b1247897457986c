package repository

import (
	"errors"

	"taskmanager/internal/apperr"

	"github.com/lib/pq"
)

// Postgres error codes the service layer cares about.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func notFoundTask(id int) error {
	return apperr.NotFound("task", id)
}

// translatePgError maps constraint violations onto the shared taxonomy so
// the database constraints back the uniqueness and integrity guards.
func translatePgError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return apperr.Conflict("already exists")
		case foreignKeyViolation:
			return apperr.Conflict("entity is referenced by another entity")
		}
	}
	return err
}
