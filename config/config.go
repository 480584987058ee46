package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// MemoryDatabaseURL selects the in-process store instead of Postgres.
const MemoryDatabaseURL = "memory://"

type Config struct {
	Env      string `env:"ENV"       envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT"      envDefault:"5000"  validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"  validate:"oneof=debug info warn error"`

	DatabaseURL string        `env:"DATABASE_URL,required" validate:"required"`
	DBTimeout   time.Duration `env:"DB_TIMEOUT"            envDefault:"5s" validate:"min=1ms"`

	JWTSecret string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	JWTTTL    time.Duration `env:"JWT_TTL"             envDefault:"168h" validate:"min=1m"`

	PerplexityAPIKey string        `env:"PERPLEXITY_API_KEY"`
	PerplexityURL    string        `env:"PERPLEXITY_URL"   envDefault:"https://api.perplexity.ai/chat/completions" validate:"required,url"`
	PerplexityModel  string        `env:"PERPLEXITY_MODEL" envDefault:"sonar" validate:"required"`
	AITimeout        time.Duration `env:"AI_TIMEOUT"       envDefault:"30s"   validate:"min=1s"`
	AIRateLimit      int           `env:"AI_RATE_LIMIT_PER_MIN" envDefault:"20" validate:"min=1,max=10000"`
	RedisURL         string        `env:"REDIS_URL"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:8080" validate:"min=1,dive,required"`

	MetricsPort    string `env:"METRICS_PORT"     envDefault:"9090"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"10485760" validate:"min=1"`
	StatsSchedule  string `env:"STATS_SCHEDULE"   envDefault:"@every 1m" validate:"required"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
}

// Load reads an optional .env file, then parses and validates the environment.
// It fails when JWT_SECRET is absent; there is no fallback signing key.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	for i, origin := range cfg.CORSAllowedOrigins {
		cfg.CORSAllowedOrigins[i] = strings.TrimSpace(origin)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

type databaseConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`
}

// LoadDatabaseURL reads only DATABASE_URL, for commands that never serve traffic.
func LoadDatabaseURL() (string, error) {
	_ = godotenv.Load()

	cfg := &databaseConfig{}
	if err := env.Parse(cfg); err != nil {
		return "", fmt.Errorf("parse env: %w", err)
	}
	if cfg.DatabaseURL == MemoryDatabaseURL {
		return "", fmt.Errorf("DATABASE_URL %s has no schema to migrate", MemoryDatabaseURL)
	}
	return cfg.DatabaseURL, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) UseMemoryStore() bool {
	return c.DatabaseURL == MemoryDatabaseURL
}

func (c *Config) AIEnabled() bool {
	return strings.TrimSpace(c.PerplexityAPIKey) != ""
}
