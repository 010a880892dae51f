package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	defaultAppEnv             = "dev"
	defaultDatabaseURL        = "file:groupstays.db?_pragma=foreign_keys(1)"
	defaultJWTSecret          = "change-me-jwt-secret"
	defaultJWTTTL             = "24h"
	defaultUploadDir          = "./uploads"
	defaultUploadURLBase      = "/static/uploads"
	defaultPropertyAPIURL     = "http://localhost:8080/api"
	defaultPropertyAPITimeout = "15s"
	defaultSessionTTL         = "2h"
	defaultSessionCacheSize   = "5000"
	defaultPlanRetrySchedule  = "0 */5 * * * *"
	defaultPlanRetryAttempts  = "12"
)

// Config is shared by every binary; each reads the sections it needs.
type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	JWTSecret   string
	JWTTTL      time.Duration
	CORSOrigins []string

	LogLevel  string
	LogFormat string

	UploadDir     string
	UploadURLBase string

	// INTERNAL_TOKEN_HASH is the bcrypt hash the API checks;
	// INTERNAL_API_TOKEN is the plain token the portal sends.
	InternalTokenHash string
	InternalAPIToken  string

	PropertyAPIURL     string
	PropertyAPITimeout time.Duration

	SessionTTL       time.Duration
	SessionCacheSize int64

	PlanRetrySchedule    string
	PlanRetryMaxAttempts int
}

// Load reads .env when present, then the environment. defaultAddr differs per binary.
func Load(defaultAddr string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		AppEnv:            strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", defaultAppEnv))),
		HTTPAddr:          strings.TrimSpace(getEnv("HTTP_ADDR", defaultAddr)),
		DatabaseURL:       strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL)),
		JWTSecret:         strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
		CORSOrigins:       splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		LogLevel:          strings.TrimSpace(getEnv("LOG_LEVEL", "info")),
		LogFormat:         strings.TrimSpace(getEnv("LOG_FORMAT", "json")),
		UploadDir:         strings.TrimSpace(getEnv("UPLOAD_DIR", defaultUploadDir)),
		UploadURLBase:     strings.TrimRight(strings.TrimSpace(getEnv("UPLOAD_URL_BASE", defaultUploadURLBase)), "/"),
		InternalTokenHash: strings.TrimSpace(os.Getenv("INTERNAL_TOKEN_HASH")),
		InternalAPIToken:  strings.TrimSpace(os.Getenv("INTERNAL_API_TOKEN")),
		PropertyAPIURL:    strings.TrimRight(strings.TrimSpace(getEnv("PROPERTY_API_URL", defaultPropertyAPIURL)), "/"),
		PlanRetrySchedule: strings.TrimSpace(getEnv("PLAN_RETRY_SCHEDULE", defaultPlanRetrySchedule)),
	}

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.PropertyAPITimeout, err = parseDurationEnv("PROPERTY_API_TIMEOUT", defaultPropertyAPITimeout); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = parseDurationEnv("SESSION_TTL", defaultSessionTTL); err != nil {
		return nil, err
	}
	if cfg.SessionCacheSize, err = parseIntEnv("SESSION_CACHE_SIZE", defaultSessionCacheSize); err != nil {
		return nil, err
	}
	attempts, err := parseIntEnv("PLAN_RETRY_MAX_ATTEMPTS", defaultPlanRetryAttempts)
	if err != nil {
		return nil, err
	}
	cfg.PlanRetryMaxAttempts = int(attempts)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProdLike() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.PropertyAPITimeout <= 0 {
		return fmt.Errorf("PROPERTY_API_TIMEOUT must be > 0")
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.SessionCacheSize <= 0 {
		return fmt.Errorf("SESSION_CACHE_SIZE must be > 0")
	}
	if cfg.PlanRetryMaxAttempts <= 0 {
		return fmt.Errorf("PLAN_RETRY_MAX_ATTEMPTS must be > 0")
	}
	if _, err := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).
		Parse(cfg.PlanRetrySchedule); err != nil {
		return fmt.Errorf("invalid PLAN_RETRY_SCHEDULE %q: %w", cfg.PlanRetrySchedule, err)
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.InternalTokenHash == "" && cfg.InternalAPIToken == "" {
			return fmt.Errorf("in prod/release INTERNAL_TOKEN_HASH or INTERNAL_API_TOKEN must be set")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
