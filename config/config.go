// Package config provides centralized configuration for the rslist service
// with validation and type-safe env parsing.
//
// Configuration sources (12-factor):
//  1. Default values (hardcoded)
//  2. .env file (local development via godotenv)
//  3. Environment variables (runtime)
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service.
type Config struct {
	Service   ServiceConfig
	Tracing   TracingConfig
	Profiling ProfilingConfig
	Logging   LoggingConfig
	Metrics   MetricsConfig
	Database  DatabaseConfig
	// ShutdownTimeout is the graceful shutdown timeout in seconds.
	// From SHUTDOWN_TIMEOUT env (default: 10).
	ShutdownTimeout int
	// ReadinessDrainDelay: delay after failing readiness before shutting down
	// the HTTP server, giving routing time to stop sending new traffic.
	// From READINESS_DRAIN_DELAY env (default: 5s, max: 30s).
	ReadinessDrainDelay int
}

type ServiceConfig struct {
	Name    string // SERVICE_NAME
	Port    string // PORT (default: "8080")
	Version string // VERSION
	Env     string // ENV (dev/staging/production)
}

// TracingConfig defines OpenTelemetry tracing configuration.
type TracingConfig struct {
	Enabled            bool    // TRACING_ENABLED (default: true)
	Endpoint           string  // OTEL_COLLECTOR_ENDPOINT
	SampleRate         float64 // OTEL_SAMPLE_RATE (0.0-1.0)
	ServiceName        string  // defaults to ServiceConfig.Name
	MaxExportBatchSize int     // OTEL_BATCH_SIZE (default: 512)
}

// ProfilingConfig defines Pyroscope continuous profiling configuration.
type ProfilingConfig struct {
	Enabled     bool   // PROFILING_ENABLED (default: true)
	Endpoint    string // PYROSCOPE_ENDPOINT
	ServiceName string // defaults to ServiceConfig.Name
}

type LoggingConfig struct {
	Level  string // LOG_LEVEL: debug, info, warn, error (default: "info")
	Format string // LOG_FORMAT: json, console (default: "json")
}

type MetricsConfig struct {
	Enabled bool   // METRICS_ENABLED (default: true)
	Path    string // METRICS_PATH (default: "/metrics")
}

// DatabaseConfig defines PostgreSQL configuration. When Host is empty the
// service falls back to the in-memory store (local development).
type DatabaseConfig struct {
	Host           string // DB_HOST
	Port           string // DB_PORT (default: "5432")
	Name           string // DB_NAME
	User           string // DB_USER
	Password       string // DB_PASSWORD
	SSLMode        string // DB_SSLMODE (default: "disable")
	MaxConnections int    // DB_POOL_MAX_CONNECTIONS (default: 25)
}

// BuildDSN constructs the PostgreSQL connection string from config.
func (c *DatabaseConfig) BuildDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s&pool_max_conns=%d",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode, c.MaxConnections,
	)
}

// Load reads configuration from environment variables with defaults.
// A .env file, if present, is loaded first; real env vars take precedence.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Service: ServiceConfig{
			Name:    getEnv("SERVICE_NAME", "rslist"),
			Port:    getEnv("PORT", "8080"),
			Version: getEnv("VERSION", "dev"),
			Env:     getEnv("ENV", "development"),
		},
		Tracing: TracingConfig{
			Enabled:            getEnvBool("TRACING_ENABLED", true),
			Endpoint:           getEnv("OTEL_COLLECTOR_ENDPOINT", "otel-collector-opentelemetry-collector.monitoring.svc.cluster.local:4318"),
			SampleRate:         getEnvFloat("OTEL_SAMPLE_RATE", 0.1),
			ServiceName:        getEnv("SERVICE_NAME", "rslist"),
			MaxExportBatchSize: getEnvInt("OTEL_BATCH_SIZE", 512),
		},
		Profiling: ProfilingConfig{
			Enabled:     getEnvBool("PROFILING_ENABLED", true),
			Endpoint:    getEnv("PYROSCOPE_ENDPOINT", "http://pyroscope.monitoring.svc.cluster.local:4040"),
			ServiceName: getEnv("SERVICE_NAME", "rslist"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", ""),
			Port:           getEnv("DB_PORT", "5432"),
			Name:           getEnv("DB_NAME", ""),
			User:           getEnv("DB_USER", ""),
			Password:       getEnv("DB_PASSWORD", ""),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConnections: getEnvInt("DB_POOL_MAX_CONNECTIONS", 25),
		},
		ShutdownTimeout:     getEnvDurationSeconds("SHUTDOWN_TIMEOUT", 10, 60),
		ReadinessDrainDelay: getEnvDurationSeconds("READINESS_DRAIN_DELAY", 5, 30),
	}
}

// Validate checks every configuration field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Service.Name == "" {
		errs = append(errs, "SERVICE_NAME is required (e.g., 'rslist')")
	}
	if c.Service.Port == "" {
		errs = append(errs, "PORT is required (e.g., '8080')")
	} else if _, err := strconv.Atoi(c.Service.Port); err != nil {
		errs = append(errs, fmt.Sprintf("PORT must be a valid number, got: %s", c.Service.Port))
	}
	validEnvs := []string{"development", "dev", "staging", "stage", "production", "prod"}
	if !contains(validEnvs, c.Service.Env) {
		errs = append(errs, fmt.Sprintf("ENV must be one of %v, got: %s", validEnvs, c.Service.Env))
	}

	if c.Tracing.Enabled {
		if c.Tracing.Endpoint == "" {
			errs = append(errs, "OTEL_COLLECTOR_ENDPOINT is required when tracing is enabled")
		}
		if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1.0 {
			errs = append(errs, fmt.Sprintf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got: %.2f", c.Tracing.SampleRate))
		}
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		errs = append(errs, "PYROSCOPE_ENDPOINT is required when profiling is enabled")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.Logging.Level)) {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of %v, got: %s", validLogLevels, c.Logging.Level))
	}
	validLogFormats := []string{"json", "console"}
	if !contains(validLogFormats, strings.ToLower(c.Logging.Format)) {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be one of %v, got: %s", validLogFormats, c.Logging.Format))
	}

	// Database is optional; when a host is given the rest must be complete.
	if c.Database.Host != "" {
		if c.Database.Name == "" {
			errs = append(errs, "DB_NAME is required when DB_HOST is set")
		}
		if c.Database.User == "" {
			errs = append(errs, "DB_USER is required when DB_HOST is set")
		}
		if c.Database.Password == "" {
			errs = append(errs, "DB_PASSWORD is required when DB_HOST is set")
		}
		if c.Database.Port != "" {
			if _, err := strconv.Atoi(c.Database.Port); err != nil {
				errs = append(errs, fmt.Sprintf("DB_PORT must be a valid number, got: %s", c.Database.Port))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// IsDevelopment returns true when running in a development environment.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Service.Env)
	return env == "development" || env == "dev"
}

// IsProduction returns true when running in a production environment.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Service.Env)
	return env == "production" || env == "prod"
}

// GetShutdownTimeoutDuration returns the shutdown timeout as time.Duration.
func (c *Config) GetShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// GetReadinessDrainDelayDuration returns the readiness drain delay as time.Duration.
func (c *Config) GetReadinessDrainDelayDuration() time.Duration {
	return time.Duration(c.ReadinessDrainDelay) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool accepts "true", "1", "yes" for true; anything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	value = strings.ToLower(value)
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatValue
}

// getEnvDurationSeconds reads a Go duration (e.g. "10s", "1m") and returns
// whole seconds. Invalid or out-of-range values fall back to the default
// (silent fallback for startup safety).
func getEnvDurationSeconds(key string, defaultValueSeconds, maxSeconds int) int {
	timeoutStr := os.Getenv(key)
	if timeoutStr == "" {
		return defaultValueSeconds
	}

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return defaultValueSeconds
	}

	seconds := int(timeout.Seconds())
	if seconds <= 0 || seconds > maxSeconds {
		return defaultValueSeconds
	}
	return seconds
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
