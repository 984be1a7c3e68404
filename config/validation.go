package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errors []string
	addErr := func(field, message string) {
		errors = append(errors, ValidationError{Field: field, Message: message}.Error())
	}

	if cfg.ServerPort == "" {
		addErr("SERVER_PORT", "is required")
	}

	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DBHost == "" {
			addErr("DB_HOST", "is required for the postgres driver")
		}
		if cfg.DBName == "" {
			addErr("DB_NAME", "is required for the postgres driver")
		}
		if cfg.DBPassword == "" && (env == CI || env == Production) {
			addErr("DB_PASSWORD", "is required in "+string(env))
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			addErr("SQLITE_PATH", "is required for the sqlite driver")
		}
	case DriverMemory:
		if env == Production {
			addErr("STORE_DRIVER", "memory store is not allowed in production")
		}
	default:
		addErr("STORE_DRIVER", fmt.Sprintf("unknown driver %q", cfg.StoreDriver))
	}

	if cfg.RateLimit < 0 {
		addErr("RATE_LIMIT", "must not be negative")
	}
	if cfg.RateLimit > 0 && cfg.RateLimitWindow <= 0 {
		addErr("RATE_LIMIT_WINDOW", "must be positive when rate limiting is enabled")
	}

	for _, origin := range cfg.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			addErr("CORS_ORIGINS", fmt.Sprintf("origin %q must start with http:// or https://", origin))
		}
	}

	switch cfg.LogFormat {
	case "json", "text":
	default:
		addErr("LOG_FORMAT", fmt.Sprintf("unknown format %q", cfg.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
