package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort              = "8080"
	defaultDatabaseURL       = "tailorshop.db"
	defaultJWTSecret         = "change-me-jwt-secret"
	defaultJWTTTL            = "168h"
	defaultConnMaxLifetime   = "1h"
	defaultConnectTimeout    = "5s"
	defaultSweepLockTTL      = "2m"
	defaultShutdownTimeout   = "10s"
	defaultLoginRateLimit    = "10-M"
	defaultLogLevel          = "info"
	defaultLogFormat         = "text"
	defaultPhoneRegion       = "US"
	defaultMaxOpenConns      = 20
	defaultMaxIdleConns      = 5
	defaultSideEffectBuffer  = 256
	defaultMeasurementExpiry = 365
)

type Config struct {
	AppEnv string
	Port   string

	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig

	CORSAllowedOrigins []string
	RedisAddr          string
	SweepLockTTL       time.Duration
	LoginRateLimit     string
	SideEffectBuffer   int
	ShutdownTimeout    time.Duration

	MeasurementValidityDays int
	DefaultPhoneRegion      string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
	Migrations      bool
}

type AuthConfig struct {
	JWTSecret string
	JWTTTL    time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// a missing .env is normal outside of local development
	_ = godotenv.Load()

	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)
	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))

	var err error
	cfg.Database.URL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	if cfg.Database.MaxOpenConns, err = parseIntEnv("DB_MAX_OPEN_CONNS", defaultMaxOpenConns); err != nil {
		return nil, err
	}
	if cfg.Database.MaxIdleConns, err = parseIntEnv("DB_MAX_IDLE_CONNS", defaultMaxIdleConns); err != nil {
		return nil, err
	}
	if cfg.Database.ConnMaxLifetime, err = parseDurationEnv("DB_CONN_MAX_LIFETIME", defaultConnMaxLifetime); err != nil {
		return nil, err
	}
	if cfg.Database.ConnectTimeout, err = parseDurationEnv("DB_CONNECT_TIMEOUT", defaultConnectTimeout); err != nil {
		return nil, err
	}
	cfg.Database.Migrations = parseBoolEnv("MIGRATIONS", "false")

	cfg.Auth.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	if cfg.Auth.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(getEnv("LOG_FORMAT", defaultLogFormat)))

	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "*"))
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if cfg.SweepLockTTL, err = parseDurationEnv("SWEEP_LOCK_TTL", defaultSweepLockTTL); err != nil {
		return nil, err
	}
	cfg.LoginRateLimit = strings.TrimSpace(getEnv("LOGIN_RATE_LIMIT", defaultLoginRateLimit))
	if cfg.SideEffectBuffer, err = parseIntEnv("SIDE_EFFECT_BUFFER", defaultSideEffectBuffer); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout); err != nil {
		return nil, err
	}
	if cfg.MeasurementValidityDays, err = parseIntEnv("MEASUREMENT_VALIDITY_DAYS", defaultMeasurementExpiry); err != nil {
		return nil, err
	}
	cfg.DefaultPhoneRegion = strings.ToUpper(strings.TrimSpace(getEnv("DEFAULT_PHONE_REGION", defaultPhoneRegion)))

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProd reports whether the config belongs to a production-like environment.
func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.Auth.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.Database.ConnMaxLifetime <= 0 {
		return fmt.Errorf("DB_CONN_MAX_LIFETIME must be > 0")
	}
	if cfg.Database.ConnectTimeout <= 0 {
		return fmt.Errorf("DB_CONNECT_TIMEOUT must be > 0")
	}
	if cfg.SweepLockTTL <= 0 {
		return fmt.Errorf("SWEEP_LOCK_TTL must be > 0")
	}
	if cfg.SideEffectBuffer <= 0 {
		return fmt.Errorf("SIDE_EFFECT_BUFFER must be > 0")
	}
	if cfg.MeasurementValidityDays <= 0 {
		return fmt.Errorf("MEASUREMENT_VALIDITY_DAYS must be > 0")
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("LOG_FORMAT must be one of: text, json")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.Auth.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
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

func parseIntEnv(name string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
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
