package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
)

type Config struct {
	Port       string `env:"PORT,            default=8080"`
	Env        string `env:"ENV,             default=development"`
	LogLevel   string `env:"LOG_LEVEL,       default=info"`
	Storage    string `env:"STORAGE_BACKEND, default=memory"`
	BcryptCost int    `env:"BCRYPT_COST,     default=10"`

	Seed  SeedConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// SeedConfig describes an ADMIN account created at startup when absent.
// Seeding is skipped unless both email and password are set.
type SeedConfig struct {
	Email    string `env:"SEED_ADMIN_EMAIL"`
	Password string `env:"SEED_ADMIN_PASSWORD"`
	Name     string `env:"SEED_ADMIN_NAME, default=Administrator"`
}

func (s SeedConfig) Enabled() bool {
	return s.Email != "" && s.Password != ""
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=store_system"`
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR,       default=localhost:6379"`
	DB        int    `env:"REDIS_DB,         default=0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX, default=store"`
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from environment variables using go-envconfig.
// In development a local .env file, if present, is loaded first without
// overriding variables that are already set.
func Load(ctx context.Context) (*Config, error) {
	if env := os.Getenv("ENV"); env == "" || strings.EqualFold(env, "development") {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load .env: %w", err)
		}
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	switch cfg.Storage {
	case BackendMemory, BackendMongo, BackendRedis:
	default:
		return nil, fmt.Errorf("config: unsupported STORAGE_BACKEND %q", cfg.Storage)
	}
	return &cfg, nil
}
