// Package inmemory provides map-backed repositories mirroring the Postgres
// semantics, including uniqueness checks. Used by the test suites.
package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskmanager/internal/apperr"
	"taskmanager/internal/models"
	"taskmanager/internal/repository"
)

type UserRepository struct {
	mu     sync.RWMutex
	nextID int
	users  map[int]models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{nextID: 1, users: map[int]models.User{}}
}

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return apperr.Conflict("already exists")
		}
	}
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return models.User{}, apperr.NotFound("user", id)
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, fmt.Errorf("user with email %s: %w", email, apperr.ErrNotFound)
}

func (r *UserRepository) GetAll(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := []models.User{}
	for id := 1; id < r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *UserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.users[user.ID]
	if !ok {
		return apperr.NotFound("user", user.ID)
	}
	for _, u := range r.users {
		if u.Email == user.Email && u.ID != user.ID {
			return apperr.Conflict("already exists")
		}
	}
	user.CreatedAt = current.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperr.NotFound("user", id)
	}
	delete(r.users, id)
	return nil
}

type TaskStatusRepository struct {
	mu       sync.RWMutex
	nextID   int
	statuses map[int]models.TaskStatus
}

func NewTaskStatusRepository() *TaskStatusRepository {
	return &TaskStatusRepository{nextID: 1, statuses: map[int]models.TaskStatus{}}
}

func (r *TaskStatusRepository) Create(_ context.Context, status *models.TaskStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.statuses {
		if s.Name == status.Name {
			return apperr.Conflict("already exists")
		}
	}
	status.ID = r.nextID
	status.CreatedAt = time.Now()
	r.nextID++
	r.statuses[status.ID] = *status
	return nil
}

func (r *TaskStatusRepository) GetByID(_ context.Context, id int) (models.TaskStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	status, ok := r.statuses[id]
	if !ok {
		return models.TaskStatus{}, apperr.NotFound("task status", id)
	}
	return status, nil
}

func (r *TaskStatusRepository) GetAll(_ context.Context) ([]models.TaskStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	statuses := []models.TaskStatus{}
	for id := 1; id < r.nextID; id++ {
		if status, ok := r.statuses[id]; ok {
			statuses = append(statuses, status)
		}
	}
	return statuses, nil
}

func (r *TaskStatusRepository) Update(_ context.Context, status *models.TaskStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.statuses[status.ID]
	if !ok {
		return apperr.NotFound("task status", status.ID)
	}
	for _, s := range r.statuses {
		if s.Name == status.Name && s.ID != status.ID {
			return apperr.Conflict("already exists")
		}
	}
	status.CreatedAt = current.CreatedAt
	r.statuses[status.ID] = *status
	return nil
}

func (r *TaskStatusRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.statuses[id]; !ok {
		return apperr.NotFound("task status", id)
	}
	delete(r.statuses, id)
	return nil
}

type LabelRepository struct {
	mu     sync.RWMutex
	nextID int
	labels map[int]models.Label
}

func NewLabelRepository() *LabelRepository {
	return &LabelRepository{nextID: 1, labels: map[int]models.Label{}}
}

func (r *LabelRepository) Create(_ context.Context, label *models.Label) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.labels {
		if l.Name == label.Name {
			return apperr.Conflict("already exists")
		}
	}
	label.ID = r.nextID
	label.CreatedAt = time.Now()
	r.nextID++
	r.labels[label.ID] = *label
	return nil
}

func (r *LabelRepository) GetByID(_ context.Context, id int) (models.Label, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	label, ok := r.labels[id]
	if !ok {
		return models.Label{}, apperr.NotFound("label", id)
	}
	return label, nil
}

func (r *LabelRepository) GetAll(_ context.Context) ([]models.Label, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	labels := []models.Label{}
	for id := 1; id < r.nextID; id++ {
		if label, ok := r.labels[id]; ok {
			labels = append(labels, label)
		}
	}
	return labels, nil
}

func (r *LabelRepository) Update(_ context.Context, label *models.Label) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.labels[label.ID]
	if !ok {
		return apperr.NotFound("label", label.ID)
	}
	for _, l := range r.labels {
		if l.Name == label.Name && l.ID != label.ID {
			return apperr.Conflict("already exists")
		}
	}
	label.CreatedAt = current.CreatedAt
	r.labels[label.ID] = *label
	return nil
}

func (r *LabelRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.labels[id]; !ok {
		return apperr.NotFound("label", id)
	}
	delete(r.labels, id)
	return nil
}

type TaskRepository struct {
	mu     sync.RWMutex
	nextID int
	tasks  map[int]repository.TaskRecord
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{nextID: 1, tasks: map[int]repository.TaskRecord{}}
}

func (r *TaskRepository) Create(_ context.Context, task *repository.TaskRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task.ID = r.nextID
	task.CreatedAt = time.Now()
	r.nextID++
	r.tasks[task.ID] = cloneTask(*task)
	return nil
}

func (r *TaskRepository) GetByID(_ context.Context, id int) (repository.TaskRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks[id]
	if !ok {
		return repository.TaskRecord{}, apperr.NotFound("task", id)
	}
	return cloneTask(task), nil
}

func (r *TaskRepository) Find(_ context.Context, filter repository.TaskFilter) ([]repository.TaskRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tasks := []repository.TaskRecord{}
	for id := 1; id < r.nextID; id++ {
		task, ok := r.tasks[id]
		if !ok || !matches(task, filter) {
			continue
		}
		tasks = append(tasks, cloneTask(task))
	}
	return tasks, nil
}

func (r *TaskRepository) Update(_ context.Context, task *repository.TaskRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.tasks[task.ID]
	if !ok {
		return apperr.NotFound("task", task.ID)
	}
	task.AuthorID = current.AuthorID
	task.CreatedAt = current.CreatedAt
	r.tasks[task.ID] = cloneTask(*task)
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return apperr.NotFound("task", id)
	}
	delete(r.tasks, id)
	return nil
}

func (r *TaskRepository) CountByStatus(_ context.Context, statusID int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, task := range r.tasks {
		if task.TaskStatusID == statusID {
			n++
		}
	}
	return n, nil
}

func (r *TaskRepository) CountByUser(_ context.Context, userID int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, task := range r.tasks {
		if task.AuthorID == userID || (task.ExecutorID != nil && *task.ExecutorID == userID) {
			n++
		}
	}
	return n, nil
}

func (r *TaskRepository) CountByLabel(_ context.Context, labelID int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, task := range r.tasks {
		for _, id := range task.LabelIDs {
			if id == labelID {
				n++
				break
			}
		}
	}
	return n, nil
}

func matches(task repository.TaskRecord, filter repository.TaskFilter) bool {
	if filter.TaskStatusID != nil && task.TaskStatusID != *filter.TaskStatusID {
		return false
	}
	if filter.AuthorID != nil && task.AuthorID != *filter.AuthorID {
		return false
	}
	if filter.ExecutorID != nil && (task.ExecutorID == nil || *task.ExecutorID != *filter.ExecutorID) {
		return false
	}
	if filter.LabelID != nil {
		found := false
		for _, id := range task.LabelIDs {
			if id == *filter.LabelID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func cloneTask(task repository.TaskRecord) repository.TaskRecord {
	if task.LabelIDs != nil {
		task.LabelIDs = append([]int(nil), task.LabelIDs...)
	}
	if task.ExecutorID != nil {
		id := *task.ExecutorID
		task.ExecutorID = &id
	}
	return task
}
