package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting of the bracket server.
type Config struct {
	ServerPort       int
	SessionSecretKey string
	SessionTTL       time.Duration

	CatalogPath      string
	CatalogObjectKey string
	ShuffleSeed      *int64

	ExportDir     string
	PublicBaseURL string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// R2Enabled reports whether object storage is configured.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != ""
}

// Load reads the configuration from the environment, loading a .env file first when one
// exists.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a getenv-style lookup.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		SessionSecretKey:  getenv("SESSION_SECRET_KEY"),
		CatalogPath:       getenv("CATALOG_PATH"),
		CatalogObjectKey:  getenv("CATALOG_OBJECT_KEY"),
		ExportDir:         valueOr(getenv("EXPORT_DIR"), "./exports"),
		R2AccountID:       getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   getenv("R2_PUBLIC_BASE_URL"),
	}

	if cfg.SessionSecretKey == "" {
		return nil, errors.New("SESSION_SECRET_KEY environment variable is not set")
	}

	port, err := strconv.Atoi(valueOr(getenv("SERVER_PORT"), "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}
	cfg.ServerPort = port
	cfg.PublicBaseURL = strings.TrimSuffix(valueOr(getenv("PUBLIC_BASE_URL"), fmt.Sprintf("http://localhost:%d", port)), "/")

	cfg.SessionTTL, err = time.ParseDuration(valueOr(getenv("SESSION_TTL"), "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL environment variable: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}

	if raw := getenv("SHUFFLE_SEED"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SHUFFLE_SEED environment variable: %w", err)
		}
		cfg.ShuffleSeed = &seed
	}

	cfg.RateLimitRPS, err = strconv.ParseFloat(valueOr(getenv("RATE_LIMIT_RPS"), "5"), 64)
	if err != nil || cfg.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must be a positive number, got %q", getenv("RATE_LIMIT_RPS"))
	}
	cfg.RateLimitBurst, err = strconv.Atoi(valueOr(getenv("RATE_LIMIT_BURST"), "20"))
	if err != nil || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_BURST must be a positive integer, got %q", getenv("RATE_LIMIT_BURST"))
	}

	for _, origin := range strings.Split(valueOr(getenv("CORS_ALLOWED_ORIGINS"), "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if err := cfg.validateR2(); err != nil {
		return nil, err
	}
	if cfg.CatalogPath != "" && cfg.CatalogObjectKey != "" {
		return nil, errors.New("CATALOG_PATH and CATALOG_OBJECT_KEY are mutually exclusive")
	}
	if cfg.CatalogObjectKey != "" && !cfg.R2Enabled() {
		return nil, errors.New("CATALOG_OBJECT_KEY requires R2 storage to be configured")
	}

	return cfg, nil
}

// validateR2 requires the R2 settings to be either all set or all empty.
func (c *Config) validateR2() error {
	values := map[string]string{
		"R2_ACCOUNT_ID":        c.R2AccountID,
		"R2_ACCESS_KEY_ID":     c.R2AccessKeyID,
		"R2_SECRET_ACCESS_KEY": c.R2SecretAccessKey,
		"R2_BUCKET_NAME":       c.R2BucketName,
		"R2_PUBLIC_BASE_URL":   c.R2PublicBaseURL,
	}
	var missing []string
	for name, v := range values {
		if v == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	if len(missing) > 0 && len(missing) < len(values) {
		return fmt.Errorf("incomplete R2 configuration, missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
