package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/templui/importstage/internal/model"
	"github.com/templui/importstage/internal/repository"
)

type Config struct {
	// Application
	AppEnv string

	// Staging store
	Dir         string
	BatchSize   int
	NumericKeys bool
	Recreate    bool

	// Observability (optional)
	SentryDSN string

	// Snapshot storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string // Optional: for S3-compatible services
	S3Prefix        string
	S3PresignExpiry time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	return &Config{
		AppEnv: envString("APP_ENV", "development"),

		Dir:         envString("STAGING_DIR", "./data"),
		BatchSize:   envBatchSize("STAGING_BATCH_SIZE", repository.DefaultBatchSize),
		NumericKeys: envBool("STAGING_NUMERIC_KEYS", false),
		Recreate:    envBool("STAGING_RECREATE", false),

		SentryDSN: envString("SENTRY_DSN", ""),

		S3Region:        envString("S3_REGION", "us-east-1"),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3Prefix:        envString("S3_PREFIX", "staging"),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 1*time.Hour),
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envBatchSize(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		slog.Warn("config invalid batch size, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// Overrides replaces individual settings, typically from command line flags.
// Nil fields keep the loaded value.
type Overrides struct {
	Dir         *string
	BatchSize   *int
	NumericKeys *bool
	Recreate    *bool
}

// WithOverrides returns a copy of c with o applied. c itself is not modified.
func (c *Config) WithOverrides(o Overrides) *Config {
	next := *c
	if o.Dir != nil {
		next.Dir = *o.Dir
	}
	if o.BatchSize != nil && *o.BatchSize > 0 {
		next.BatchSize = *o.BatchSize
	}
	if o.NumericKeys != nil {
		next.NumericKeys = *o.NumericKeys
	}
	if o.Recreate != nil {
		next.Recreate = *o.Recreate
	}
	return &next
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) KeyType() model.KeyType {
	if c.NumericKeys {
		return model.KeyTypeInteger
	}
	return model.KeyTypeText
}

// HasSnapshotStorage reports whether a bucket is configured for snapshot uploads.
func (c *Config) HasSnapshotStorage() bool {
	return c.S3Bucket != ""
}
