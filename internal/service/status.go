package service

import (
	"context"

	"taskmanager/internal/models"
	"taskmanager/internal/repository"
)

type TaskStatusService struct {
	statuses  repository.TaskStatusRepository
	integrity IntegrityGuard
}

func NewTaskStatusService(statuses repository.TaskStatusRepository, integrity IntegrityGuard) *TaskStatusService {
	return &TaskStatusService{statuses: statuses, integrity: integrity}
}

func (s *TaskStatusService) Create(ctx context.Context, name string) (models.TaskStatus, error) {
	status := models.TaskStatus{Name: name}
	if err := s.statuses.Create(ctx, &status); err != nil {
		return models.TaskStatus{}, err
	}
	return status, nil
}

func (s *TaskStatusService) GetByID(ctx context.Context, id int) (models.TaskStatus, error) {
	return s.statuses.GetByID(ctx, id)
}

func (s *TaskStatusService) GetAll(ctx context.Context) ([]models.TaskStatus, error) {
	return s.statuses.GetAll(ctx)
}

func (s *TaskStatusService) Update(ctx context.Context, id int, name string) (models.TaskStatus, error) {
	status, err := s.statuses.GetByID(ctx, id)
	if err != nil {
		return models.TaskStatus{}, err
	}
	status.Name = name
	if err := s.statuses.Update(ctx, &status); err != nil {
		return models.TaskStatus{}, err
	}
	return status, nil
}

func (s *TaskStatusService) Delete(ctx context.Context, id int) error {
	if _, err := s.statuses.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.integrity.CanDeleteStatus(ctx, id); err != nil {
		return err
	}
	return s.statuses.Delete(ctx, id)
}
