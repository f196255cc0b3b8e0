// Package auth issues and validates the JWT tokens that protect the
// admin video endpoints. There is a single admin identity, configured
// through environment variables; the public form routes never touch
// this package.
package auth

import (
	"crypto/subtle"
	"fmt"
	"os"
	"strings"
	"time"

	"solidarity-api/pkg/config"
)

// Config holds the admin authentication settings.
type Config struct {
	// Secret signs and verifies tokens (HS256).
	Secret []byte

	// AdminEmail and AdminPassword are the credentials accepted by the
	// token endpoint.
	AdminEmail    string
	AdminPassword string

	// TokenTTL bounds how long an issued token stays valid.
	TokenTTL time.Duration
}

// weakPasswordList contains common weak passwords that must be rejected.
var weakPasswordList = []string{
	"admin",
	"password",
	"123456",
	"secret",
	"admin123",
	"password123",
	"qwerty",
	"letmein",
	"welcome",
	"test123",
	"default",
}

// minPasswordLength is the minimum required admin password length.
const minPasswordLength = 12

// LoadConfig reads the admin authentication settings from environment
// variables and validates them. It fails closed: weak or missing
// credentials prevent startup instead of shipping a guessable admin
// account.
//
// Environment Variables:
//   - JWT_SECRET: token signing secret (min 32 bytes)
//   - ADMIN_EMAIL: admin login email
//   - ADMIN_PASSWORD: admin login password (min 12 chars, not a common password)
//   - AUTH_TOKEN_TTL: token lifetime (default 1h)
func LoadConfig() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if len(secret) < 32 {
		return nil, fmt.Errorf("auth config: JWT_SECRET must be at least 32 bytes")
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		return nil, fmt.Errorf("auth config: ADMIN_EMAIL must not be empty")
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if err := validateAdminPassword(password); err != nil {
		return nil, err
	}

	return &Config{
		Secret:        []byte(secret),
		AdminEmail:    email,
		AdminPassword: password,
		TokenTTL:      config.GetEnvDuration("AUTH_TOKEN_TTL", time.Hour),
	}, nil
}

// validateAdminPassword rejects empty, short, and commonly used
// passwords. The error messages are safe to log.
func validateAdminPassword(password string) error {
	if password == "" {
		return fmt.Errorf("auth config: ADMIN_PASSWORD must not be empty")
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("auth config: ADMIN_PASSWORD must be at least %d characters", minPasswordLength)
	}

	lower := strings.ToLower(password)
	for _, weak := range weakPasswordList {
		if lower == weak || strings.HasPrefix(lower, weak) {
			return fmt.Errorf("auth config: ADMIN_PASSWORD must not be based on a common weak password")
		}
	}
	return nil
}

// checkCredentials compares the submitted credentials against the
// configured admin account in constant time.
func (c *Config) checkCredentials(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(c.AdminEmail)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.AdminPassword)) == 1
	return emailOK && passwordOK
}
