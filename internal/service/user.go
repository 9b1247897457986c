package service

import (
	"context"
	"fmt"

	"taskmanager/internal/models"
	"taskmanager/internal/repository"
	"taskmanager/pkg/crypto"
)

type UserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type UserService struct {
	users     repository.UserRepository
	guard     AuthGuard
	integrity IntegrityGuard
}

func NewUserService(users repository.UserRepository, integrity IntegrityGuard) *UserService {
	return &UserService{users: users, integrity: integrity}
}

func (s *UserService) Create(ctx context.Context, in UserInput) (models.User, error) {
	hashed, err := crypto.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}
	user := models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hashed,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.users.GetAll(ctx)
}

// Update replaces the mutable fields of the user identified by id. Identity
// and creation time are preserved; the password is re-hashed.
func (s *UserService) Update(ctx context.Context, principal models.Principal, id int, in UserInput) (models.User, error) {
	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if err := s.guard.CanModifyUser(principal, target); err != nil {
		return models.User{}, err
	}

	hashed, err := crypto.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}
	updated := models.User{
		ID:        target.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hashed,
		CreatedAt: target.CreatedAt,
	}
	if err := s.users.Update(ctx, &updated); err != nil {
		return models.User{}, err
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, principal models.Principal, id int) error {
	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.CanModifyUser(principal, target); err != nil {
		return err
	}
	if err := s.integrity.CanDeleteUser(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}
