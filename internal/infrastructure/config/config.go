package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	WebDir   string `env:"WEB_DIR,   default=web"`

	Postgres PostgresConfig
	Redis    RedisConfig
	Session  SessionConfig
	Upload   UploadConfig
	Storage  StorageConfig
}

type PostgresConfig struct {
	DSN string `env:"DATABASE_URL, default=postgres://localhost:5432/recorder?sslmode=disable"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SessionConfig struct {
	TTL time.Duration `env:"SESSION_TTL, default=24h"`
}

type UploadConfig struct {
	MaxSizeMiB int64 `env:"UPLOAD_MAX_MIB, default=50"`
}

// StorageConfig selects the blob backend: "local" writes under LocalDir and
// serves files back from /uploads, "s3" targets an S3-compatible bucket.
type StorageConfig struct {
	Backend  string `env:"STORAGE_BACKEND, default=local"`
	LocalDir string `env:"UPLOAD_DIR,      default=uploads"`

	S3 S3Config
}

type S3Config struct {
	Region    string        `env:"S3_REGION,     default=us-east-1"`
	Bucket    string        `env:"S3_BUCKET,     default=recordings"`
	Endpoint  string        `env:"S3_ENDPOINT"`
	AccessKey string        `env:"S3_ACCESS_KEY"`
	SecretKey string        `env:"S3_SECRET_KEY"`
	URLTTL    time.Duration `env:"S3_URL_TTL,    default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// IsProduction reports whether the service runs with production hardening
// (secure cookies, JSON logs).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// MaxUploadBytes is the upload ceiling in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.Upload.MaxSizeMiB << 20
}
