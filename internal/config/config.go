package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Logging    LoggingConfig
	Evaluation EvaluationConfig
	Notifier   NotifierConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	Environment     string
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// EvaluationConfig contains trigger evaluation configuration
type EvaluationConfig struct {
	// Schedule is a standard cron expression for the periodic pass.
	Schedule string
	// Workers bounds how many triggers are evaluated concurrently.
	Workers int
	// TriggerTimeout wraps each trigger's evaluation so one slow metric
	// fetch cannot stall the whole pass.
	TriggerTimeout time.Duration
	// SimulationLookbackDays is the historical range used by backtests.
	SimulationLookbackDays int
	// BaselineDays is the range used for threshold suggestions and
	// relative-threshold resolution.
	BaselineDays int
	// SampleLimit caps how many matching windows a simulation returns.
	SampleLimit int
	// ROASMode selects how the ROAS metric is computed: "revenue"
	// (raw revenue) or "ratio" (revenue/spend).
	ROASMode string
}

// NotifierConfig contains notification delivery configuration
type NotifierConfig struct {
	WebhookURL string
	Channel    string
	Timeout    time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			CORSOrigins:     getEnvAsSlice("CORS_ORIGINS"),
			Environment:     getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "campwatch"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Path:            getEnv("DB_PATH", "./campwatch.db"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Evaluation: EvaluationConfig{
			Schedule:               getEnv("EVALUATION_SCHEDULE", "0 * * * *"),
			Workers:                getEnvAsInt("EVALUATION_WORKERS", 8),
			TriggerTimeout:         getEnvAsDuration("EVALUATION_TRIGGER_TIMEOUT", 30*time.Second),
			SimulationLookbackDays: getEnvAsInt("SIMULATION_LOOKBACK_DAYS", 30),
			BaselineDays:           getEnvAsInt("BASELINE_DAYS", 7),
			SampleLimit:            getEnvAsInt("SIMULATION_SAMPLE_LIMIT", 20),
			ROASMode:               getEnv("ROAS_MODE", "revenue"),
		},
		Notifier: NotifierConfig{
			WebhookURL: getEnv("NOTIFIER_WEBHOOK_URL", ""),
			Channel:    getEnv("NOTIFIER_CHANNEL", "#campaign-alerts"),
			Timeout:    getEnvAsDuration("NOTIFIER_TIMEOUT", 10*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Evaluation.Workers < 1 {
		return fmt.Errorf("evaluation workers must be at least 1, got %d", c.Evaluation.Workers)
	}

	if c.Evaluation.ROASMode != "revenue" && c.Evaluation.ROASMode != "ratio" {
		return fmt.Errorf("unsupported ROAS mode: %s", c.Evaluation.ROASMode)
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
