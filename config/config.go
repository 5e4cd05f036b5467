// Copyright (c) GraphFlow Authors.
// Licensed under the MIT License.

// Package config loads framework configuration from defaults, a YAML file,
// and environment variable overrides, in that priority order.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the complete GraphFlow configuration.
type Config struct {
	// LLM configures the default provider.
	LLM LLMConfig `yaml:"llm" env:"LLM"`

	// Memory selects and tunes the agent memory backend.
	Memory MemoryConfig `yaml:"memory" env:"MEMORY"`

	// Redis configures the Redis memory backend.
	Redis RedisConfig `yaml:"redis" env:"REDIS"`

	// Database configures the SQL memory backend.
	Database DatabaseConfig `yaml:"database" env:"DATABASE"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log" env:"LOG"`

	// Telemetry configures OpenTelemetry export.
	Telemetry TelemetryConfig `yaml:"telemetry" env:"TELEMETRY"`

	// Metrics configures Prometheus collection.
	Metrics MetricsConfig `yaml:"metrics" env:"METRICS"`
}

// LLMConfig holds provider settings.
type LLMConfig struct {
	// Provider names the default provider, e.g. "openai".
	Provider string `yaml:"provider" env:"PROVIDER"`
	APIKey   string `yaml:"api_key" env:"API_KEY"`
	// BaseURL targets an OpenAI-compatible endpoint; empty uses the
	// provider default.
	BaseURL     string        `yaml:"base_url" env:"BASE_URL"`
	Model       string        `yaml:"model" env:"MODEL"`
	EmbedModel  string        `yaml:"embed_model" env:"EMBED_MODEL"`
	MaxTokens   int           `yaml:"max_tokens" env:"MAX_TOKENS"`
	Temperature float32       `yaml:"temperature" env:"TEMPERATURE"`
	Timeout     time.Duration `yaml:"timeout" env:"TIMEOUT"`
	// RequestsPerSecond caps provider calls; zero disables limiting.
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"REQUESTS_PER_SECOND"`
}

// MemoryConfig selects the memory backend.
type MemoryConfig struct {
	// Backend: inmemory, redis, sqlite.
	Backend    string        `yaml:"backend" env:"BACKEND"`
	MaxEntries int           `yaml:"max_entries" env:"MAX_ENTRIES"`
	TTL        time.Duration `yaml:"ttl" env:"TTL"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"ADDR"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB"`
	// Prefix namespaces every key written by the framework.
	Prefix   string `yaml:"prefix" env:"PREFIX"`
	PoolSize int    `yaml:"pool_size" env:"POOL_SIZE"`
}

// DatabaseConfig holds SQL storage settings.
type DatabaseConfig struct {
	// Path is the SQLite database file; ":memory:" is accepted.
	Path string `yaml:"path" env:"PATH"`
}

// LogConfig holds zap logger settings.
type LogConfig struct {
	// Level: debug, info, warn, error.
	Level string `yaml:"level" env:"LEVEL"`
	// Format: json, console.
	Format       string   `yaml:"format" env:"FORMAT"`
	OutputPaths  []string `yaml:"output_paths" env:"OUTPUT_PATHS"`
	EnableCaller bool     `yaml:"enable_caller" env:"ENABLE_CALLER"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled" env:"ENABLED"`
	OTLPEndpoint string  `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
	ServiceName  string  `yaml:"service_name" env:"SERVICE_NAME"`
	SampleRate   float64 `yaml:"sample_rate" env:"SAMPLE_RATE"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" env:"ENABLED"`
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			EmbedModel:  "text-embedding-3-small",
			MaxTokens:   2048,
			Temperature: 0.7,
			Timeout:     30 * time.Second,
		},
		Memory: MemoryConfig{
			Backend:    "inmemory",
			MaxEntries: 10000,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			Prefix:   "graphflow:",
			PoolSize: 10,
		},
		Database: DatabaseConfig{
			Path: "graphflow.db",
		},
		Log: LogConfig{
			Level:       "info",
			Format:      "json",
			OutputPaths: []string{"stdout"},
		},
		Telemetry: TelemetryConfig{
			Enabled:      false,
			OTLPEndpoint: "localhost:4317",
			ServiceName:  "graphflow",
			SampleRate:   1.0,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "graphflow",
		},
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	var errs []string

	switch c.Memory.Backend {
	case "inmemory", "redis", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("unknown memory backend %q", c.Memory.Backend))
	}
	if c.Memory.Backend == "redis" && c.Redis.Addr == "" {
		errs = append(errs, "redis backend requires redis.addr")
	}
	if c.Memory.Backend == "sqlite" && c.Database.Path == "" {
		errs = append(errs, "sqlite backend requires database.path")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("unknown log level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("unknown log format %q", c.Log.Format))
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, "llm.temperature must be between 0 and 2")
	}
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		errs = append(errs, "telemetry.sample_rate must be between 0 and 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors: %s", strings.Join(errs, "; "))
	}
	return nil
}
