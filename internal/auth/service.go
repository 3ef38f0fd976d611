package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrWrongCredentials = errors.New("wrong credentials")

// Service combines the credential check with the token manager.
type Service struct {
	admin  *Admin
	tokens *TokenManager
}

func NewService(admin *Admin, tokens *TokenManager) *Service {
	return &Service{
		admin:  admin,
		tokens: tokens,
	}
}

// Login returns a new token only if creds match the admin credentials.
func (s *Service) Login(creds Credentials) (string, time.Time, error) {
	if !s.admin.Check(creds) {
		return "", time.Time{}, ErrWrongCredentials
	}

	token, expiresAt, err := s.tokens.Issue()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}
	return token, expiresAt, nil
}

func (s *Service) Verify(ctx context.Context, raw string) (string, error) {
	return s.tokens.Verify(ctx, raw)
}

func (s *Service) TokenTTL() time.Duration {
	return s.tokens.TTL()
}
