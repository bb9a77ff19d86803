package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	API    APIConfig
	Geo    GeoConfig
	Auth   AuthConfig
	Logger LoggerConfig
	List   ListConfig
	Policy PolicyConfig
}

// APIConfig holds order backend configuration.
type APIConfig struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// GeoConfig holds the country/city lookup service configuration.
type GeoConfig struct {
	BaseURL string
	Timeout time.Duration
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Token string // optional pre-provisioned bearer token
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// ListConfig holds order list behaviour configuration.
type ListConfig struct {
	PageSize         int
	SearchDebounce   time.Duration
	AllowedPageSizes []int
}

// PolicyConfig holds behaviour toggles that product has not settled yet.
type PolicyConfig struct {
	// AllowStatusEditWhenClosed permits status changes on orders that are
	// no longer Pending.
	AllowStatusEditWhenClosed bool

	// PruneZeroQuantityOnSubmit drops zero-quantity items from the update
	// payload instead of sending them through.
	PruneZeroQuantityOnSubmit bool
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL:      getEnv("API_BASE_URL", "http://localhost:8080"),
			Timeout:      getEnvAsDuration("API_TIMEOUT", 30*time.Second),
			MaxRetries:   getEnvAsInt("API_MAX_RETRIES", 3),
			RetryWaitMin: getEnvAsDuration("API_RETRY_WAIT_MIN", time.Second),
			RetryWaitMax: getEnvAsDuration("API_RETRY_WAIT_MAX", 5*time.Second),
		},
		Geo: GeoConfig{
			BaseURL: getEnv("GEO_BASE_URL", "https://countriesnow.space/api/v0.1"),
			Timeout: getEnvAsDuration("GEO_TIMEOUT", 15*time.Second),
		},
		Auth: AuthConfig{
			Token: getEnv("AUTH_TOKEN", ""),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		List: ListConfig{
			PageSize:         getEnvAsInt("LIST_PAGE_SIZE", 5),
			SearchDebounce:   getEnvAsDuration("LIST_SEARCH_DEBOUNCE", 500*time.Millisecond),
			AllowedPageSizes: []int{5, 10, 25},
		},
		Policy: PolicyConfig{
			AllowStatusEditWhenClosed: getEnvAsBool("POLICY_STATUS_EDIT_WHEN_CLOSED", true),
			PruneZeroQuantityOnSubmit: getEnvAsBool("POLICY_PRUNE_ZERO_QUANTITY", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("invalid API timeout: %s", c.API.Timeout)
	}

	if c.API.MaxRetries < 0 {
		return fmt.Errorf("API max retries must not be negative")
	}

	if c.Geo.BaseURL == "" {
		return fmt.Errorf("geo base URL is required")
	}

	if c.List.SearchDebounce <= 0 {
		return fmt.Errorf("invalid search debounce: %s", c.List.SearchDebounce)
	}

	if !c.List.PageSizeAllowed(c.List.PageSize) {
		return fmt.Errorf("invalid page size: %d (must be one of %v)", c.List.PageSize, c.List.AllowedPageSizes)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// PageSizeAllowed reports whether size is in the allowed page size set.
func (c *ListConfig) PageSizeAllowed(size int) bool {
	for _, allowed := range c.AllowedPageSizes {
		if size == allowed {
			return true
		}
	}
	return false
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
