package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// SessionTTL bounds how long a login stays valid.
const SessionTTL = 24 * time.Hour

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

// Login verifies credentials and mints a bearer session token.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	p, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !CheckPassword(p.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	sess := &Session{
		Token:     uuid.NewString(),
		ProfileID: p.ID,
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	return &LoginResponse{Token: sess.Token, Profile: p}, nil
}

// Authenticate resolves a bearer token into a profile.
func (s *Service) Authenticate(ctx context.Context, token string) (*Profile, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	return s.repo.GetBySessionToken(ctx, token)
}
