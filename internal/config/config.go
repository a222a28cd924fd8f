// Package config loads server settings from defaults, an optional YAML file
// and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api"
	"github.com/taichi6930/race-schedule-api-sub006/internal/factory"
	"github.com/taichi6930/race-schedule-api-sub006/internal/services/auth"
	redisstorage "github.com/taichi6930/race-schedule-api-sub006/internal/storage/redis"
)

// Config is the complete server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	Seed    SeedConfig    `yaml:"seed"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig configures the JSON logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// StorageConfig selects and configures the storage backend.
type StorageConfig struct {
	Type  string      `yaml:"type"`
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig mirrors the Redis store settings.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	KeyPrefix    string        `yaml:"key_prefix"`
	RecordTTL    time.Duration `yaml:"record_ttl"`
}

// AuthConfig holds the bcrypt hash of the write API key.
type AuthConfig struct {
	APIKeyHash string `yaml:"api_key_hash"`
}

// SeedConfig names CSV files loaded at startup.
type SeedConfig struct {
	Places string `yaml:"places"`
	Races  string `yaml:"races"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	server := api.DefaultServerConfig()
	redis := redisstorage.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Host:            server.Host,
			Port:            server.Port,
			ReadTimeout:     server.ReadTimeout,
			WriteTimeout:    server.WriteTimeout,
			ShutdownTimeout: server.ShutdownTimeout,
		},
		Log: LogConfig{Level: "info"},
		Storage: StorageConfig{
			Type: factory.StorageTypeMemory,
			Redis: RedisConfig{
				URL:          redis.URL,
				PoolSize:     redis.PoolSize,
				MinIdleConns: redis.MinIdleConns,
				KeyPrefix:    redis.KeyPrefix,
				RecordTTL:    redis.RecordTTL,
			},
		},
	}
}

// Load reads path over the defaults and then applies environment overrides.
// An empty path skips the file; a path that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("RACESCHED_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("RACESCHED_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RACESCHED_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("RACESCHED_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	// Storage
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		c.Storage.Type = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Storage.Redis.URL = v
	}
	if v := os.Getenv("RACESCHED_REDIS_PREFIX"); v != "" {
		c.Storage.Redis.KeyPrefix = v
	}
	if v := os.Getenv("RACESCHED_REDIS_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("RACESCHED_REDIS_TTL: %w", err)
		}
		c.Storage.Redis.RecordTTL = ttl
	}

	if v := os.Getenv("RACESCHED_API_KEY_HASH"); v != "" {
		c.Auth.APIKeyHash = v
	}
	if v := os.Getenv("RACESCHED_SEED_PLACES"); v != "" {
		c.Seed.Places = v
	}
	if v := os.Getenv("RACESCHED_SEED_RACES"); v != "" {
		c.Seed.Races = v
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case factory.StorageTypeMemory:
	case factory.StorageTypeRedis:
		if c.Storage.Redis.URL == "" {
			return errors.New("storage.redis.url required when storage type is redis")
		}
	default:
		return fmt.Errorf("invalid storage type: %q (valid: memory, redis)", c.Storage.Type)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Storage.Redis.RecordTTL < 0 {
		return fmt.Errorf("invalid redis record ttl: %s", c.Storage.Redis.RecordTTL)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c *Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("invalid log level: %q", c.Log.Level)
	}
	return level, nil
}

// NewLogger builds the JSON logger writing to w.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// ServerConfig converts to the HTTP server settings.
func (c *Config) ServerConfig() api.ServerConfig {
	return api.ServerConfig{
		Host:            c.Server.Host,
		Port:            c.Server.Port,
		ReadTimeout:     c.Server.ReadTimeout,
		WriteTimeout:    c.Server.WriteTimeout,
		ShutdownTimeout: c.Server.ShutdownTimeout,
	}
}

// FactoryConfig converts to the application factory settings.
func (c *Config) FactoryConfig(logger *slog.Logger) factory.Config {
	cfg := factory.Config{
		AuthConfig:  auth.Config{APIKeyHash: c.Auth.APIKeyHash},
		Logger:      logger,
		StorageType: c.Storage.Type,
		SeedPlaces:  c.Seed.Places,
		SeedRaces:   c.Seed.Races,
	}
	if c.Storage.Type == factory.StorageTypeRedis {
		cfg.RedisConfig = &redisstorage.Config{
			URL:          c.Storage.Redis.URL,
			PoolSize:     c.Storage.Redis.PoolSize,
			MinIdleConns: c.Storage.Redis.MinIdleConns,
			KeyPrefix:    c.Storage.Redis.KeyPrefix,
			RecordTTL:    c.Storage.Redis.RecordTTL,
		}
	}
	return cfg
}
