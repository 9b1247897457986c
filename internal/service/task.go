package service

import (
	"context"

	"taskmanager/internal/models"
	"taskmanager/internal/repository"
)

type TaskInput struct {
	Name         string
	Description  string
	TaskStatusID int
	ExecutorID   *int
	LabelIDs     []int
}

type TaskService struct {
	tasks    repository.TaskRepository
	users    repository.UserRepository
	statuses repository.TaskStatusRepository
	labels   repository.LabelRepository
	guard    AuthGuard
}

func NewTaskService(
	tasks repository.TaskRepository,
	users repository.UserRepository,
	statuses repository.TaskStatusRepository,
	labels repository.LabelRepository,
) *TaskService {
	return &TaskService{tasks: tasks, users: users, statuses: statuses, labels: labels}
}

// Create stores a new task authored by the principal. Any author supplied by
// the caller is ignored; the author is always the authenticated principal.
func (s *TaskService) Create(ctx context.Context, principal models.Principal, in TaskInput) (models.Task, error) {
	author, err := s.users.GetByEmail(ctx, principal.Email)
	if err != nil {
		return models.Task{}, err
	}
	if err := s.checkReferences(ctx, in); err != nil {
		return models.Task{}, err
	}

	record := repository.TaskRecord{
		Name:         in.Name,
		Description:  in.Description,
		TaskStatusID: in.TaskStatusID,
		AuthorID:     author.ID,
		ExecutorID:   in.ExecutorID,
		LabelIDs:     in.LabelIDs,
	}
	if err := s.tasks.Create(ctx, &record); err != nil {
		return models.Task{}, err
	}
	return s.assemble(ctx, record)
}

func (s *TaskService) GetByID(ctx context.Context, id int) (models.Task, error) {
	record, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	return s.assemble(ctx, record)
}

func (s *TaskService) Find(ctx context.Context, filter repository.TaskFilter) ([]models.Task, error) {
	records, err := s.tasks.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	tasks := []models.Task{}
	for _, record := range records {
		task, err := s.assemble(ctx, record)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Update replaces the mutable fields of the task. Author and creation time
// are preserved; only the author may update.
func (s *TaskService) Update(ctx context.Context, principal models.Principal, id int, in TaskInput) (models.Task, error) {
	current, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	author, err := s.users.GetByID(ctx, current.AuthorID)
	if err != nil {
		return models.Task{}, err
	}
	if err := s.guard.CanModifyTask(principal, author); err != nil {
		return models.Task{}, err
	}
	if err := s.checkReferences(ctx, in); err != nil {
		return models.Task{}, err
	}

	record := repository.TaskRecord{
		ID:           current.ID,
		Name:         in.Name,
		Description:  in.Description,
		TaskStatusID: in.TaskStatusID,
		AuthorID:     current.AuthorID,
		ExecutorID:   in.ExecutorID,
		LabelIDs:     in.LabelIDs,
		CreatedAt:    current.CreatedAt,
	}
	if err := s.tasks.Update(ctx, &record); err != nil {
		return models.Task{}, err
	}
	return s.assemble(ctx, record)
}

func (s *TaskService) Delete(ctx context.Context, principal models.Principal, id int) error {
	current, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	author, err := s.users.GetByID(ctx, current.AuthorID)
	if err != nil {
		return err
	}
	if err := s.guard.CanModifyTask(principal, author); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, id)
}

// checkReferences fails with NotFound if the status, executor, or any label
// the input references does not exist.
func (s *TaskService) checkReferences(ctx context.Context, in TaskInput) error {
	if _, err := s.statuses.GetByID(ctx, in.TaskStatusID); err != nil {
		return err
	}
	if in.ExecutorID != nil {
		if _, err := s.users.GetByID(ctx, *in.ExecutorID); err != nil {
			return err
		}
	}
	for _, labelID := range in.LabelIDs {
		if _, err := s.labels.GetByID(ctx, labelID); err != nil {
			return err
		}
	}
	return nil
}

// assemble resolves the record's references into a fully populated task.
func (s *TaskService) assemble(ctx context.Context, record repository.TaskRecord) (models.Task, error) {
	status, err := s.statuses.GetByID(ctx, record.TaskStatusID)
	if err != nil {
		return models.Task{}, err
	}
	author, err := s.users.GetByID(ctx, record.AuthorID)
	if err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		TaskStatus:  status,
		Author:      author,
		Labels:      []models.Label{},
		CreatedAt:   record.CreatedAt,
	}
	if record.ExecutorID != nil {
		executor, err := s.users.GetByID(ctx, *record.ExecutorID)
		if err != nil {
			return models.Task{}, err
		}
		task.Executor = &executor
	}
	for _, labelID := range record.LabelIDs {
		label, err := s.labels.GetByID(ctx, labelID)
		if err != nil {
			return models.Task{}, err
		}
		task.Labels = append(task.Labels, label)
	}
	return task, nil
}
