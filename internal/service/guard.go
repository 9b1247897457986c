package service

import (
	"context"

	"taskmanager/internal/apperr"
	"taskmanager/internal/models"
	"taskmanager/internal/repository"
)

// AuthGuard evaluates ownership for mutating operations. Callers must have
// established that the resource exists first, so a missing resource surfaces
// as NotFound rather than Forbidden.
type AuthGuard struct{}

func (AuthGuard) CanModifyUser(principal models.Principal, target models.User) error {
	if principal.Email != target.Email {
		return apperr.Forbidden("only the user may modify their own account")
	}
	return nil
}

func (AuthGuard) CanModifyTask(principal models.Principal, author models.User) error {
	if principal.Email != author.Email {
		return apperr.Forbidden("only the task author may modify the task")
	}
	return nil
}

// IntegrityGuard rejects deletion of an entity that a task still references.
// The count and the delete run inside the same service operation; the FK
// constraints in the schema are the backstop for a concurrent create slipping
// in between.
type IntegrityGuard struct {
	tasks repository.TaskRepository
}

func NewIntegrityGuard(tasks repository.TaskRepository) IntegrityGuard {
	return IntegrityGuard{tasks: tasks}
}

func (g IntegrityGuard) CanDeleteStatus(ctx context.Context, statusID int) error {
	n, err := g.tasks.CountByStatus(ctx, statusID)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflict("task status is referenced by a task")
	}
	return nil
}

func (g IntegrityGuard) CanDeleteUser(ctx context.Context, userID int) error {
	n, err := g.tasks.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflict("user is referenced by a task")
	}
	return nil
}

func (g IntegrityGuard) CanDeleteLabel(ctx context.Context, labelID int) error {
	n, err := g.tasks.CountByLabel(ctx, labelID)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflict("label is referenced by a task")
	}
	return nil
}
