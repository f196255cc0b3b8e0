// Package config reads configuration from environment variables with
// typed accessors and defaults. Malformed values never fail startup;
// they are logged and replaced with the default.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// GetEnvString returns the variable's value, or defaultValue when it
// is unset or empty.
//
//	dsn := GetEnvString("DATABASE_URL", "postgres://localhost/solidarity")
func GetEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt parses the variable as an integer. Unparseable values are
// logged and replaced with defaultValue.
//
//	handles := GetEnvInt("DB_MAX_CLIENT_HANDLES", 100)
func GetEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		slog.Warn("invalid integer value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.Int("default", defaultValue),
			slog.String("error", err.Error()))
		return defaultValue
	}
	return value
}

// GetEnvBool parses the variable as a boolean. It accepts the
// strconv.ParseBool spellings: 1/t/true and 0/f/false in any of their
// cases. Anything else is logged and replaced with defaultValue.
//
//	enabled := GetEnvBool("RATELIMIT_ENABLED", true)
func GetEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	switch valueStr {
	case "1", "t", "T", "true", "TRUE", "True":
		return true
	case "0", "f", "F", "false", "FALSE", "False":
		return false
	default:
		slog.Warn("invalid boolean value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.Bool("default", defaultValue))
		return defaultValue
	}
}

// GetEnvDuration parses the variable with time.ParseDuration, so
// values like "30s" and "1h30m" work. Unparseable values are logged
// and replaced with defaultValue.
//
//	window := GetEnvDuration("RATELIMIT_PETITION_WINDOW", 10*time.Minute)
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		slog.Warn("invalid duration value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.String("default", defaultValue.String()),
			slog.String("error", err.Error()))
		return defaultValue
	}
	return value
}

// GetEnvStringList splits the variable on commas, trimming whitespace
// and dropping empty entries. A list that ends up empty falls back to
// defaultValue.
//
//	proxies := GetEnvStringList("TRUSTED_PROXIES", nil)
//	// TRUSTED_PROXIES="10.0.0.0/8, 172.16.0.0/12" -> two CIDRs
func GetEnvStringList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
