package config

import (
	"log/slog"
	"time"

	"solidarity-api/pkg/ratelimit"
)

// LoadRateLimitConfig reads the per-route rate limit settings from the
// environment. Invalid values are logged and replaced with defaults
// rather than failing startup.
//
// Environment variables:
//   - RATELIMIT_ENABLED: Enable/disable rate limiting (default: true)
//   - RATELIMIT_CONTACT_LIMIT: Contact form limit per window (default: 5)
//   - RATELIMIT_CONTACT_WINDOW: Contact form window (default: 10m)
//   - RATELIMIT_PETITION_LIMIT: Petition limit per window (default: 3)
//   - RATELIMIT_PETITION_WINDOW: Petition window (default: 10m)
//   - RATELIMIT_NEWSLETTER_LIMIT: Newsletter limit per window (default: 5)
//   - RATELIMIT_NEWSLETTER_WINDOW: Newsletter window (default: 10m)
//   - RATELIMIT_AUTH_LIMIT: Token endpoint limit per window (default: 5)
//   - RATELIMIT_AUTH_WINDOW: Token endpoint window (default: 1m)
//   - RATELIMIT_DEFAULT_LIMIT: Default limit per window (default: 100)
//   - RATELIMIT_DEFAULT_WINDOW: Default window (default: 1m)
//   - RATELIMIT_MAX_KEYS: Maximum keys in memory (default: 10000)
//   - RATELIMIT_SWEEP_INTERVAL: Expired window sweep interval (default: 5m)
func LoadRateLimitConfig() (*ratelimit.RouteConfig, error) {
	def := ratelimit.DefaultRouteConfig()

	cfg := &ratelimit.RouteConfig{
		Enabled: GetEnvBool("RATELIMIT_ENABLED", true),
		Contact: ratelimit.Config{
			Limit:  GetEnvInt("RATELIMIT_CONTACT_LIMIT", def.Contact.Limit),
			Window: loadWindow("RATELIMIT_CONTACT_WINDOW", def.Contact.Window),
		},
		Petition: ratelimit.Config{
			Limit:  GetEnvInt("RATELIMIT_PETITION_LIMIT", def.Petition.Limit),
			Window: loadWindow("RATELIMIT_PETITION_WINDOW", def.Petition.Window),
		},
		Newsletter: ratelimit.Config{
			Limit:  GetEnvInt("RATELIMIT_NEWSLETTER_LIMIT", def.Newsletter.Limit),
			Window: loadWindow("RATELIMIT_NEWSLETTER_WINDOW", def.Newsletter.Window),
		},
		Auth: ratelimit.Config{
			Limit:  GetEnvInt("RATELIMIT_AUTH_LIMIT", def.Auth.Limit),
			Window: loadWindow("RATELIMIT_AUTH_WINDOW", def.Auth.Window),
		},
		Default: ratelimit.Config{
			Limit:  GetEnvInt("RATELIMIT_DEFAULT_LIMIT", def.Default.Limit),
			Window: loadWindow("RATELIMIT_DEFAULT_WINDOW", def.Default.Window),
		},
		MaxActiveKeys: GetEnvInt("RATELIMIT_MAX_KEYS", def.MaxActiveKeys),
		SweepInterval: loadSweepInterval(def.SweepInterval),
	}

	if err := cfg.Validate(); err != nil {
		slog.Warn("rate limit configuration validation failed, applying defaults",
			slog.String("error", err.Error()))
		*cfg = def
	}

	return cfg, nil
}

// loadWindow reads a duration environment variable and falls back to the
// default when the value is missing or not positive.
func loadWindow(key string, defaultValue time.Duration) time.Duration {
	value := GetEnvDuration(key, defaultValue)
	if err := ValidatePositiveDuration(value); err != nil {
		slog.Warn("invalid window duration, using default",
			slog.String("key", key),
			slog.String("value", value.String()),
			slog.String("default", defaultValue.String()),
			slog.String("error", err.Error()))
		return defaultValue
	}
	return value
}

// loadSweepInterval bounds RATELIMIT_SWEEP_INTERVAL to a sane range.
// Sweeping every few seconds only churns locks, and sweeping less than
// hourly lets expired windows pile up in memory.
func loadSweepInterval(defaultValue time.Duration) time.Duration {
	value := GetEnvDuration("RATELIMIT_SWEEP_INTERVAL", defaultValue)
	if err := ValidateDurationRange(value, 10*time.Second, time.Hour); err != nil {
		slog.Warn("invalid sweep interval, using default",
			slog.String("value", value.String()),
			slog.String("default", defaultValue.String()),
			slog.String("error", err.Error()))
		return defaultValue
	}
	return value
}
