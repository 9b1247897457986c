package service

import (
	"context"
	"errors"

	"taskmanager/internal/apperr"
	"taskmanager/internal/repository"
	"taskmanager/internal/token"
	"taskmanager/pkg/crypto"
)

type AuthService struct {
	users  repository.UserRepository
	tokens *token.Service
}

func NewAuthService(users repository.UserRepository, tokens *token.Service) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login verifies the credentials and issues a bearer token. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", apperr.Unauthorized("invalid credentials")
		}
		return "", err
	}
	if !crypto.CheckPassword(password, user.Password) {
		return "", apperr.Unauthorized("invalid credentials")
	}
	return s.tokens.Issue(user)
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims token.Claims) error {
	return s.tokens.Revoke(ctx, claims)
}
