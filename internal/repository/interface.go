package repository

import (
	"context"
	"time"

	"taskmanager/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int) error
}

type TaskStatusRepository interface {
	Create(ctx context.Context, status *models.TaskStatus) error
	GetByID(ctx context.Context, id int) (models.TaskStatus, error)
	GetAll(ctx context.Context) ([]models.TaskStatus, error)
	Update(ctx context.Context, status *models.TaskStatus) error
	Delete(ctx context.Context, id int) error
}

type LabelRepository interface {
	Create(ctx context.Context, label *models.Label) error
	GetByID(ctx context.Context, id int) (models.Label, error)
	GetAll(ctx context.Context) ([]models.Label, error)
	Update(ctx context.Context, label *models.Label) error
	Delete(ctx context.Context, id int) error
}

// TaskRecord is the storage shape of a task: references held as ids. The
// task service resolves them into full entities before responding.
type TaskRecord struct {
	ID           int
	Name         string
	Description  string
	TaskStatusID int
	AuthorID     int
	ExecutorID   *int
	LabelIDs     []int
	CreatedAt    time.Time
}

// TaskFilter narrows a task listing; nil fields match everything. Filters
// combine by equality, there is no query language.
type TaskFilter struct {
	TaskStatusID *int
	AuthorID     *int
	ExecutorID   *int
	LabelID      *int
}

type TaskRepository interface {
	Create(ctx context.Context, task *TaskRecord) error
	GetByID(ctx context.Context, id int) (TaskRecord, error)
	Find(ctx context.Context, filter TaskFilter) ([]TaskRecord, error)
	Update(ctx context.Context, task *TaskRecord) error
	Delete(ctx context.Context, id int) error

	// Reference counters backing the integrity guard on deletes.
	CountByStatus(ctx context.Context, statusID int) (int, error)
	CountByUser(ctx context.Context, userID int) (int, error)
	CountByLabel(ctx context.Context, labelID int) (int, error)
}
