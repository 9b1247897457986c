// Package token issues and verifies the stateless bearer tokens that carry
// the authenticated principal. Tokens are HS256 JWTs with a short expiry and
// a jti claim so individual tokens can be revoked on logout.
package token

import (
	"context"
	"fmt"
	"time"

	"taskmanager/internal/apperr"
	"taskmanager/internal/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type Claims struct {
	UserID    int
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// RevocationStore remembers revoked token ids until their expiry passes.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Service struct {
	secret []byte
	ttl    time.Duration
	store  RevocationStore
}

func NewService(secret []byte, ttl time.Duration, store RevocationStore) *Service {
	return &Service{secret: secret, ttl: ttl, store: store}
}

func (s *Service) Issue(user models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"sub":     user.Email,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return tokenString, nil
}

func (s *Service) Verify(ctx context.Context, tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, apperr.Unauthorized("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, apperr.Unauthorized("invalid token claims")
	}
	claims, err := fromMapClaims(mapClaims)
	if err != nil {
		return Claims{}, err
	}

	revoked, err := s.store.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return Claims{}, fmt.Errorf("checking token revocation: %w", err)
	}
	if revoked {
		return Claims{}, apperr.Unauthorized("token revoked")
	}
	return claims, nil
}

// Revoke blacklists the token id until the token would have expired anyway.
func (s *Service) Revoke(ctx context.Context, claims Claims) error {
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.store.Revoke(ctx, claims.TokenID, ttl)
}

func fromMapClaims(mapClaims jwt.MapClaims) (Claims, error) {
	userID, ok := mapClaims["user_id"].(float64)
	if !ok {
		return Claims{}, apperr.Unauthorized("invalid user id in token")
	}
	email, ok := mapClaims["sub"].(string)
	if !ok {
		return Claims{}, apperr.Unauthorized("invalid subject in token")
	}
	tokenID, ok := mapClaims["jti"].(string)
	if !ok {
		return Claims{}, apperr.Unauthorized("invalid token id in token")
	}
	exp, ok := mapClaims["exp"].(float64)
	if !ok {
		return Claims{}, apperr.Unauthorized("missing expiry in token")
	}
	return Claims{
		UserID:    int(userID),
		Email:     email,
		TokenID:   tokenID,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}
