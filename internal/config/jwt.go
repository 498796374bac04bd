package config

import (
	"fmt"
	"os"
	"strconv"
)

// minJWTSecretLength is the shortest HMAC secret accepted
const minJWTSecretLength = 16

// JWTConfig holds configuration for bearer token validation.
// Tokens are issued by the external auth service; Issue exists for tests and local tooling.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig creates a JWT configuration from secret and JWT_EXPIRATION_HOURS (default: 24).
// It returns nil, nil when secret is empty, meaning authentication is disabled.
func NewJWTConfig(secret string) (*JWTConfig, error) {
	if secret == "" {
		return nil, nil
	}

	expirationStr := os.Getenv("JWT_EXPIRATION_HOURS")
	if expirationStr == "" {
		expirationStr = "24" // default
	}

	expirationHours, err := strconv.Atoi(expirationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
	}

	config := &JWTConfig{
		Secret:          secret,
		ExpirationHours: expirationHours,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if len(c.Secret) < minJWTSecretLength {
		return fmt.Errorf("JWT secret must be at least %d characters", minJWTSecretLength)
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
