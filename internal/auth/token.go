package auth

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/portfolio/internal/telemetry/tracing"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const (
	RoleAdmin  = "admin"
	DefaultTTL = time.Hour
)

var (
	// ErrInvalidToken covers every verification failure: missing, malformed,
	// forged, expired or carrying the wrong role. Callers never learn which.
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySecret  = errors.New("token signing secret is empty")
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies the HS256 signed session tokens.
// It holds no session state; the token is the whole session.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	// injectable clock, for tests
	Now func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		Now:    time.Now,
	}, nil
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a new admin token, valid for the manager's TTL from now.
func (m *TokenManager) Issue() (string, time.Time, error) {
	now := m.Now()
	claims := &Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, claims.ExpiresAt.Time, nil
}

// Verify checks the signature, then expiry (now < exp), then the role claim.
func (m *TokenManager) Verify(ctx context.Context, raw string) (string, error) {
	_, span := tracing.GlobalTracer.Start(ctx, "auth.token.verify")
	defer span.End()

	if raw == "" {
		span.SetStatus(codes.Error, "invalid")
		return "", ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		raw,
		claims,
		func(*jwt.Token) (any, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.Now),
	)
	if err != nil || !token.Valid {
		log.Tracef("token verification failed: %v", err)
		span.SetStatus(codes.Error, "invalid")
		return "", ErrInvalidToken
	}

	if claims.Role != RoleAdmin {
		log.Tracef("token verification failed: role [%s]", claims.Role)
		span.SetStatus(codes.Error, "invalid")
		return "", ErrInvalidToken
	}

	span.SetStatus(codes.Ok, "valid")
	return claims.Role, nil
}
