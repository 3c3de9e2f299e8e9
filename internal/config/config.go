// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Store drivers.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ServerHost string `env:"OZ_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"OZ_SERVER_PORT" envDefault:"5000"`
	Env        string `env:"OZ_ENV" envDefault:"development"`
	LogLevel   string `env:"OZ_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"OZ_LOG_FORMAT" envDefault:"text"`

	// Store configuration
	StoreDriver string `env:"OZ_STORE_DRIVER" envDefault:"file"`
	DataPath    string `env:"OZ_DATA_PATH" envDefault:"./data/db.json"` // JSON document or SQLite database
	MongoURI    string `env:"OZ_MONGO_URI"`
	MongoDB     string `env:"OZ_MONGO_DB" envDefault:"ozpolat"`
	Seed        bool   `env:"OZ_STORE_SEED" envDefault:"true"` // Seed an empty file store with default content

	UploadsDir     string `env:"OZ_UPLOADS_DIR" envDefault:"./uploads"`
	MaxUploadSize  int64  `env:"OZ_MAX_UPLOAD_SIZE" envDefault:"52428800"`
	MaxUploadFiles int    `env:"OZ_MAX_UPLOAD_FILES" envDefault:"20"`

	// Admin authentication
	AdminPassword   string        `env:"OZ_ADMIN_PASSWORD,required"` // Plain text or argon2id hash
	SessionSecret   string        `env:"OZ_SESSION_SECRET,required"`
	SessionLifetime time.Duration `env:"OZ_SESSION_LIFETIME" envDefault:"168h"`

	SiteURL        string   `env:"OZ_SITE_URL" envDefault:"http://localhost:5000"`
	PublicAPIURL   string   `env:"OZ_PUBLIC_API_URL"`
	TrustedOrigins []string `env:"OZ_TRUSTED_ORIGINS" envSeparator:","`

	// Cache configuration
	CacheType    string        `env:"OZ_CACHE_TYPE" envDefault:"memory"`
	RedisURL     string        `env:"OZ_REDIS_URL"`
	CachePrefix  string        `env:"OZ_CACHE_PREFIX" envDefault:"oz:"`
	CacheTTL     time.Duration `env:"OZ_CACHE_TTL" envDefault:"1m"`
	CacheMaxSize int           `env:"OZ_CACHE_MAX_SIZE" envDefault:"1000"`

	// Rate limits in requests per second
	ContactRate  float64 `env:"OZ_CONTACT_RATE" envDefault:"0.05"`
	ContactBurst int     `env:"OZ_CONTACT_BURST" envDefault:"5"`
	LoginRate    float64 `env:"OZ_LOGIN_RATE" envDefault:"0.2"`
	LoginBurst   int     `env:"OZ_LOGIN_BURST" envDefault:"5"`

	RequestTimeout time.Duration `env:"OZ_REQUEST_TIMEOUT" envDefault:"60s"`

	// GeoIP configuration
	GeoIPDBPath string `env:"OZ_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Scheduled jobs; an empty schedule disables the job
	BackupDir       string        `env:"OZ_BACKUP_DIR" envDefault:"./data/backups"`
	BackupSchedule  string        `env:"OZ_BACKUP_SCHEDULE" envDefault:"0 3 * * *"`
	BackupRetention int           `env:"OZ_BACKUP_RETENTION" envDefault:"14"`
	SweepSchedule   string        `env:"OZ_SWEEP_SCHEDULE" envDefault:"30 4 * * *"`
	SweepDelete     bool          `env:"OZ_SWEEP_DELETE" envDefault:"false"`
	SweepMinAge     time.Duration `env:"OZ_SWEEP_MIN_AGE" envDefault:"24h"`
	GeoIPSchedule   string        `env:"OZ_GEOIP_SCHEDULE" envDefault:"0 5 * * 3"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if the application is running in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.CacheType == "redis" && c.RedisURL != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// LoadDotEnv reads .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("OZ_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c *Config) Validate() error {
	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("OZ_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(c.SessionSecret))
	}
	if c.IsProduction() {
		for _, weak := range knownWeakSecrets {
			if c.SessionSecret == weak {
				return errors.New("OZ_SESSION_SECRET is a known default value and must not be used; " +
					"generate a secure secret with: openssl rand -base64 32")
			}
		}
	}

	switch c.StoreDriver {
	case StoreFile, StoreSQLite:
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("OZ_MONGO_URI is required when OZ_STORE_DRIVER=mongo")
		}
	default:
		return fmt.Errorf("OZ_STORE_DRIVER must be one of file, sqlite, mongo; got %q", c.StoreDriver)
	}

	switch c.CacheType {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return errors.New("OZ_REDIS_URL is required when OZ_CACHE_TYPE=redis")
		}
	default:
		return fmt.Errorf("OZ_CACHE_TYPE must be memory or redis; got %q", c.CacheType)
	}

	if c.MaxUploadSize <= 0 || c.MaxUploadFiles <= 0 {
		return errors.New("OZ_MAX_UPLOAD_SIZE and OZ_MAX_UPLOAD_FILES must be positive")
	}
	c.SiteURL = strings.TrimSuffix(c.SiteURL, "/")
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
