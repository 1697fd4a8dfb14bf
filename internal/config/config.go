// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"time"

	"github.com/restopsdev/platewatch/internal/report"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Session    SessionConfig
	Upload     UploadConfig
	Rate       RateLimitConfig
	Logging    LoggingConfig
	Thresholds ThresholdConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DatabaseConfig holds database connection settings. The database backs the
// per-session report store; when URL is empty the service falls back to an
// in-memory store.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (optional)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// SessionConfig holds report session settings.
type SessionConfig struct {
	// CookieName is the session cookie name (default: platewatch_session)
	CookieName string `env:"SESSION_COOKIE_NAME" default:"platewatch_session"`

	// TTL is how long an untouched report is kept (default: 24h)
	TTL time.Duration `env:"SESSION_TTL" default:"24h"`

	// CleanupInterval is how often expired reports are purged (default: 1h)
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" default:"1h"`
}

// UploadConfig holds CSV upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed size per CSV file in bytes (default: 10MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"10485760"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// ThresholdConfig holds the report policy thresholds. These are documented
// product constants; environment overrides exist for tuning, not because
// the defaults are expected to change.
type ThresholdConfig struct {
	// HighShrinkageCost flags high-shrinkage ingredients, in dollars (default: 10)
	HighShrinkageCost float64 `env:"THRESHOLD_HIGH_SHRINKAGE_COST" default:"10"`

	// CriticalShrinkageCost escalates to a critical alert, in dollars (default: 50)
	CriticalShrinkageCost float64 `env:"THRESHOLD_CRITICAL_SHRINKAGE_COST" default:"50"`

	// HighWastePct flags high-waste ingredients, in percent (default: 5)
	HighWastePct float64 `env:"THRESHOLD_HIGH_WASTE_PCT" default:"5"`

	// AlertWastePct raises a waste warning alert, in percent (default: 15)
	AlertWastePct float64 `env:"THRESHOLD_ALERT_WASTE_PCT" default:"15"`

	// EfficientPct bounds waste and shrinkage for efficient items, in percent (default: 5)
	EfficientPct float64 `env:"THRESHOLD_EFFICIENT_PCT" default:"5"`

	// AvgWasteNotePct triggers the mean-waste insight, in percent (default: 10)
	AvgWasteNotePct float64 `env:"THRESHOLD_AVG_WASTE_NOTE_PCT" default:"10"`

	// ShrinkageNoteCost triggers the total-shrinkage insight, in dollars (default: 100)
	ShrinkageNoteCost float64 `env:"THRESHOLD_SHRINKAGE_NOTE_COST" default:"100"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// ReportThresholds converts the configured values into report thresholds.
func (c *ThresholdConfig) ReportThresholds() report.Thresholds {
	return report.Thresholds{
		HighShrinkageCost:     decimal.NewFromFloat(c.HighShrinkageCost),
		CriticalShrinkageCost: decimal.NewFromFloat(c.CriticalShrinkageCost),
		HighWastePct:          decimal.NewFromFloat(c.HighWastePct),
		AlertWastePct:         decimal.NewFromFloat(c.AlertWastePct),
		EfficientPct:          decimal.NewFromFloat(c.EfficientPct),
		AvgWasteNotePct:       decimal.NewFromFloat(c.AvgWasteNotePct),
		ShrinkageNoteCost:     decimal.NewFromFloat(c.ShrinkageNoteCost),
	}
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
