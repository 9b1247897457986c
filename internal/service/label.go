package service

import (
	"context"

	"taskmanager/internal/models"
	"taskmanager/internal/repository"
)

type LabelService struct {
	labels    repository.LabelRepository
	integrity IntegrityGuard
}

func NewLabelService(labels repository.LabelRepository, integrity IntegrityGuard) *LabelService {
	return &LabelService{labels: labels, integrity: integrity}
}

func (s *LabelService) Create(ctx context.Context, name string) (models.Label, error) {
	label := models.Label{Name: name}
	if err := s.labels.Create(ctx, &label); err != nil {
		return models.Label{}, err
	}
	return label, nil
}

func (s *LabelService) GetByID(ctx context.Context, id int) (models.Label, error) {
	return s.labels.GetByID(ctx, id)
}

func (s *LabelService) GetAll(ctx context.Context) ([]models.Label, error) {
	return s.labels.GetAll(ctx)
}

func (s *LabelService) Update(ctx context.Context, id int, name string) (models.Label, error) {
	label, err := s.labels.GetByID(ctx, id)
	if err != nil {
		return models.Label{}, err
	}
	label.Name = name
	if err := s.labels.Update(ctx, &label); err != nil {
		return models.Label{}, err
	}
	return label, nil
}

func (s *LabelService) Delete(ctx context.Context, id int) error {
	if _, err := s.labels.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.integrity.CanDeleteLabel(ctx, id); err != nil {
		return err
	}
	return s.labels.Delete(ctx, id)
}
