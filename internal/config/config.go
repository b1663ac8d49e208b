package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/Nixie-Tech-LLC/solat/internal/jakim"
	"github.com/Nixie-Tech-LLC/solat/internal/prayer"
)

// Config holds environment-based settings
type Config struct {
	Environment    string
	LogLevel       string
	DatabaseURL    string
	MigrationsPath string
	JWTSecret      string
	ServerAddress  string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBrokerURL string
	MQTTClientID  string

	JakimBaseURL     string
	JakimTimeout     time.Duration
	CacheMaxAge      time.Duration
	StaleRetention   time.Duration
	RangeConcurrency int
	RefreshCron      string
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given). Missing files are ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	cfg := &Config{
		Environment:    getenv("APP_ENV", "production"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		DatabaseURL:    dbURL,
		MigrationsPath: getenv("MIGRATIONS_PATH", "./migrations"),
		JWTSecret:      secret,
		ServerAddress:  getenv("SERVER_ADDRESS", ":8080"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),
		MQTTClientID:  getenv("MQTT_CLIENT_ID", "solat-server"),

		JakimBaseURL: getenv("JAKIM_BASE_URL", jakim.DefaultBaseURL),
		RefreshCron:  getenv("REFRESH_CRON", "*/15 * * * *"),
	}

	var err error
	if cfg.JakimTimeout, err = durationEnv("JAKIM_TIMEOUT", jakim.DefaultTimeout); err != nil {
		return nil, err
	}
	if cfg.CacheMaxAge, err = durationEnv("PRAYER_CACHE_MAX_AGE", prayer.DefaultMaxAge); err != nil {
		return nil, err
	}
	if cfg.StaleRetention, err = durationEnv("PRAYER_STALE_RETENTION", 0); err != nil {
		return nil, err
	}
	if cfg.RangeConcurrency, err = intEnv("PRAYER_RANGE_CONCURRENCY", prayer.DefaultRangeConcurrency); err != nil {
		return nil, err
	}

	if cfg.JakimTimeout <= 0 || cfg.CacheMaxAge <= 0 {
		return nil, fmt.Errorf("JAKIM_TIMEOUT and PRAYER_CACHE_MAX_AGE must be positive")
	}
	if cfg.StaleRetention < 0 {
		return nil, fmt.Errorf("PRAYER_STALE_RETENTION must not be negative")
	}
	if cfg.RangeConcurrency < 1 {
		return nil, fmt.Errorf("PRAYER_RANGE_CONCURRENCY must be at least 1")
	}
	if _, err := cron.ParseStandard(cfg.RefreshCron); err != nil {
		return nil, fmt.Errorf("REFRESH_CRON %q: %w", cfg.RefreshCron, err)
	}
	return cfg, nil
}

// Development reports whether APP_ENV selects development mode.
func (c *Config) Development() bool { return c.Environment == "development" }

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
