package server

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/config"
)

// Claims are the bearer token claims. The auth service names the user in "user_id"; tokens
// that only carry the standard subject are accepted too.
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// User returns the first of user_id and sub that is a non-nil UUID
func (c *Claims) User() uuid.UUID {
	for _, v := range []string{c.UserID, c.Subject} {
		if id, err := uuid.Parse(v); err == nil && id != uuid.Nil {
			return id
		}
	}
	return uuid.Nil
}

// JWTService verifies HS256 bearer tokens shared with the auth service
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService creates a JWTService from cfg
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{
		secret: []byte(cfg.Secret),
		ttl:    time.Duration(cfg.ExpirationHours) * time.Hour,
	}
}

// Verify implements middleware.Verifier
func (s *JWTService) Verify(token string) (uuid.UUID, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid token: %w", err)
	}
	user := claims.User()
	if user == uuid.Nil {
		return uuid.Nil, fmt.Errorf("invalid token: no user id in user_id or sub")
	}
	return user, nil
}

// Issue signs a token for userID. Production tokens come from the auth service; this backs
// the token command and tests.
func (s *JWTService) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
