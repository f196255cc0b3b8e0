package ratelimit

import (
	"fmt"
	"time"
)

// Config holds the limit and window for a single scope.
type Config struct {
	// Limit is the maximum number of requests allowed per window.
	Limit int

	// Window is the fixed window duration.
	Window time.Duration
}

// RouteConfig contains the rate limiting configuration for the API.
//
// Form endpoints carry tight limits because they gate writes; the
// default scope covers everything else.
type RouteConfig struct {
	// Contact limits POST /api/contact submissions per IP.
	Contact Config

	// Petition limits POST /api/petition signatures per IP.
	Petition Config

	// Newsletter limits POST /api/newsletter signups per IP.
	Newsletter Config

	// Auth limits POST /auth/token attempts per IP.
	Auth Config

	// Default covers all other rate limited endpoints.
	Default Config

	// SweepInterval is how often expired windows are removed.
	SweepInterval time.Duration

	// MaxActiveKeys bounds the number of keys in the in-memory store.
	MaxActiveKeys int

	// Enabled toggles rate limiting globally.
	Enabled bool
}

// DefaultRouteConfig returns the production defaults.
func DefaultRouteConfig() RouteConfig {
	return RouteConfig{
		Contact:       Config{Limit: 5, Window: 10 * time.Minute},
		Petition:      Config{Limit: 3, Window: 10 * time.Minute},
		Newsletter:    Config{Limit: 5, Window: 10 * time.Minute},
		Auth:          Config{Limit: 5, Window: 1 * time.Minute},
		Default:       Config{Limit: 100, Window: 1 * time.Minute},
		SweepInterval: 5 * time.Minute,
		MaxActiveKeys: 10000,
		Enabled:       true,
	}
}

// Validate checks if the RouteConfig is valid.
//
// Returns an error if any configuration values are invalid.
func (c *RouteConfig) Validate() error {
	scopes := []struct {
		name string
		cfg  Config
	}{
		{"Contact", c.Contact},
		{"Petition", c.Petition},
		{"Newsletter", c.Newsletter},
		{"Auth", c.Auth},
		{"Default", c.Default},
	}

	for _, s := range scopes {
		if s.cfg.Limit < 0 {
			return fmt.Errorf("%s.Limit must be non-negative, got %d", s.name, s.cfg.Limit)
		}
		if s.cfg.Window < 0 {
			return fmt.Errorf("%s.Window must be non-negative, got %s", s.name, s.cfg.Window)
		}
	}

	if c.SweepInterval < 0 {
		return fmt.Errorf("SweepInterval must be non-negative, got %s", c.SweepInterval)
	}
	if c.MaxActiveKeys < 0 {
		return fmt.Errorf("MaxActiveKeys must be non-negative, got %d", c.MaxActiveKeys)
	}

	return nil
}

// ApplyDefaults sets safe default values for any missing or zero
// configuration values.
//
// This ensures the rate limiter can function even if the configuration
// is incomplete.
func (c *RouteConfig) ApplyDefaults() {
	def := DefaultRouteConfig()

	if c.Contact.Limit == 0 {
		c.Contact.Limit = def.Contact.Limit
	}
	if c.Contact.Window == 0 {
		c.Contact.Window = def.Contact.Window
	}
	if c.Petition.Limit == 0 {
		c.Petition.Limit = def.Petition.Limit
	}
	if c.Petition.Window == 0 {
		c.Petition.Window = def.Petition.Window
	}
	if c.Newsletter.Limit == 0 {
		c.Newsletter.Limit = def.Newsletter.Limit
	}
	if c.Newsletter.Window == 0 {
		c.Newsletter.Window = def.Newsletter.Window
	}
	if c.Auth.Limit == 0 {
		c.Auth.Limit = def.Auth.Limit
	}
	if c.Auth.Window == 0 {
		c.Auth.Window = def.Auth.Window
	}
	if c.Default.Limit == 0 {
		c.Default.Limit = def.Default.Limit
	}
	if c.Default.Window == 0 {
		c.Default.Window = def.Default.Window
	}
	if c.SweepInterval == 0 {
		c.SweepInterval = def.SweepInterval
	}
	if c.MaxActiveKeys == 0 {
		c.MaxActiveKeys = def.MaxActiveKeys
	}
}
