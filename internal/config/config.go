// Package config loads CloudSaver settings from the environment.
// Every field has a default, so an empty environment yields a working
// local server. Settings are validated once at startup.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Report   ReportConfig
	Logging  LoggingConfig
	Metrics  MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" envAlt:"PORT" default:"8000"`

	// ReadTimeout covers reading the whole multipart body.
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds connection draining and in-flight analyses.
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is applied by middleware to every request.
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// UploadConfig limits what a single /analyze request may send.
type UploadConfig struct {
	// MaxFileSize caps the whole request body in bytes (default: 32 MiB).
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"33554432"`

	// MaxFiles caps the number of "files" parts per request.
	MaxFiles int `env:"UPLOAD_MAX_FILES" default:"20"`

	// MaxConcurrent is the number of analyses or renders run in parallel.
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"5"`

	// MaxWaitTime is how long a request queues for a slot before a 503.
	MaxWaitTime time.Duration `env:"UPLOAD_MAX_WAIT_TIME" default:"10s"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	Enabled           bool `env:"RATE_LIMIT_ENABLED" default:"true"`
	RequestsPerMinute int  `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// SecurityConfig holds proxy, CORS and header settings.
type SecurityConfig struct {
	// TrustedProxies lists CIDRs or IPs whose forwarding headers are honored.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// AllowedOrigins lists origins allowed by CORS. "*" allows any origin.
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// ReportConfig holds PDF rendering settings.
type ReportConfig struct {
	// FontPath is a Unicode TTF with Hangul glyphs. When it cannot be
	// loaded, PDFs fall back to Helvetica.
	FontPath   string `env:"REPORT_FONT_PATH" default:"assets/fonts/NanumGothic.ttf"`
	FontFamily string `env:"REPORT_FONT_FAMILY" default:"nanumgothic"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is text or json.
	Format string `env:"LOG_FORMAT" default:"text"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `env:"METRICS_ENABLED" default:"true"`
	Path    string `env:"METRICS_PATH" default:"/metrics"`
}

// Addr returns the listen address in host:port form.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
