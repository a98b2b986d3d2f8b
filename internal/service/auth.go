package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinicapi/internal/auth"
	"clinicapi/internal/model"
	"clinicapi/internal/repository"
)

// AuthService registers clinicians and issues their bearer tokens.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (int64, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenIssuer
	now    func() time.Time
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenIssuer) AuthService {
	return &authService{users: users, tokens: tokens, now: time.Now}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (int64, error) {
	if err := requireFields("name", name, "email", email, "password", password); err != nil {
		return 0, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, err
	}
	id, err := s.users.Create(ctx, &model.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		CreatedAt:    s.now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}
	return id, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	if err := requireFields("email", email, "password", password); err != nil {
		return "", err
	}
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	return s.tokens.Issue(u.ID, u.Email)
}
