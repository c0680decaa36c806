// SPDX-License-Identifier: MIT

// Package config loads application configuration with the precedence
// ENV > file > defaults.
package config

import (
	"fmt"
	"time"
)

// AppConfig is the resolved application configuration.
type AppConfig struct {
	// Version is the running binary version, injected at load time.
	Version string

	// LogLevel controls the global zerolog level.
	LogLevel string

	// LogService is the service name attached to every log entry.
	LogService string

	// APIListenAddr is the address the API server binds to.
	APIListenAddr string

	// MetricsEnabled toggles the dedicated Prometheus listener.
	MetricsEnabled bool

	// MetricsAddr is the address of the metrics listener.
	MetricsAddr string

	// AllowedOrigins restricts CORS; empty means same-origin only.
	AllowedOrigins []string

	// RateLimitEnabled toggles the global API rate limit.
	RateLimitEnabled bool

	// RateLimitRPS is the allowed requests per second per client.
	RateLimitRPS int

	// SessionRetention is how long Ended sessions are kept before the
	// sweeper evicts them. Zero disables eviction entirely (sessions
	// accumulate for the process lifetime).
	SessionRetention time.Duration

	// SweepInterval is how often the retention sweeper runs.
	SweepInterval time.Duration

	// TracingEnabled toggles OpenTelemetry trace export.
	TracingEnabled bool

	// TracingExporter selects the OTLP transport: "grpc" or "http".
	TracingExporter string

	// TracingEndpoint is the OTLP collector endpoint.
	TracingEndpoint string

	// TracingSampleRate is the trace sampling ratio in [0, 1].
	TracingSampleRate float64
}

// Defaults returns the built-in configuration defaults.
func Defaults(version string) AppConfig {
	return AppConfig{
		Version:           version,
		LogLevel:          "info",
		LogService:        "halo",
		APIListenAddr:     ":8080",
		MetricsEnabled:    true,
		MetricsAddr:       ":9090",
		RateLimitEnabled:  true,
		RateLimitRPS:      100,
		SessionRetention:  0,
		SweepInterval:     time.Minute,
		TracingEnabled:    false,
		TracingExporter:   "grpc",
		TracingEndpoint:   "localhost:4317",
		TracingSampleRate: 0.1,
	}
}

// Loader resolves configuration from defaults, an optional YAML file and the
// process environment.
type Loader struct {
	path    string
	version string
}

// NewLoader creates a Loader for the given optional file path.
func NewLoader(path, version string) *Loader {
	return &Loader{path: path, version: version}
}

// Load resolves the configuration. File values override defaults; environment
// variables override both.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults(l.version)

	if l.path != "" {
		fc, err := readFile(l.path)
		if err != nil {
			return AppConfig{}, fmt.Errorf("read config file: %w", err)
		}
		mergeFile(&cfg, fc)
	}

	mergeEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func mergeEnv(cfg *AppConfig) {
	cfg.LogLevel = ParseString("HALO_LOG_LEVEL", cfg.LogLevel)
	cfg.LogService = ParseString("HALO_LOG_SERVICE", cfg.LogService)
	cfg.APIListenAddr = ParseString("HALO_LISTEN", cfg.APIListenAddr)
	cfg.MetricsEnabled = ParseBool("HALO_METRICS_ENABLED", cfg.MetricsEnabled)
	cfg.MetricsAddr = ParseString("HALO_METRICS_ADDR", cfg.MetricsAddr)
	cfg.AllowedOrigins = splitCSV(ParseString("HALO_ALLOWED_ORIGINS", joinCSV(cfg.AllowedOrigins)))
	cfg.RateLimitEnabled = ParseBool("HALO_RATE_LIMIT_ENABLED", cfg.RateLimitEnabled)
	cfg.RateLimitRPS = ParseInt("HALO_RATE_LIMIT_RPS", cfg.RateLimitRPS)
	cfg.SessionRetention = ParseDuration("HALO_SESSION_RETENTION", cfg.SessionRetention)
	cfg.SweepInterval = ParseDuration("HALO_SWEEP_INTERVAL", cfg.SweepInterval)
	cfg.TracingEnabled = ParseBool("HALO_TRACING_ENABLED", cfg.TracingEnabled)
	cfg.TracingExporter = ParseString("HALO_TRACING_EXPORTER", cfg.TracingExporter)
	cfg.TracingEndpoint = ParseString("HALO_TRACING_ENDPOINT", cfg.TracingEndpoint)
	cfg.TracingSampleRate = ParseFloat("HALO_TRACING_SAMPLE_RATE", cfg.TracingSampleRate)
}

// Validate checks the configuration for values the daemon cannot start with.
func (cfg AppConfig) Validate() error {
	if cfg.APIListenAddr == "" {
		return fmt.Errorf("%w: listen address is empty", ErrInvalidConfig)
	}
	if cfg.RateLimitEnabled && cfg.RateLimitRPS <= 0 {
		return fmt.Errorf("%w: rate limit enabled with non-positive rps %d", ErrInvalidConfig, cfg.RateLimitRPS)
	}
	if cfg.SessionRetention < 0 {
		return fmt.Errorf("%w: negative session retention", ErrInvalidConfig)
	}
	if cfg.SessionRetention > 0 && cfg.SweepInterval <= 0 {
		return fmt.Errorf("%w: retention enabled with non-positive sweep interval", ErrInvalidConfig)
	}
	if cfg.TracingEnabled {
		switch cfg.TracingExporter {
		case "grpc", "http":
		default:
			return fmt.Errorf("%w: unknown tracing exporter %q", ErrInvalidConfig, cfg.TracingExporter)
		}
		if cfg.TracingSampleRate < 0 || cfg.TracingSampleRate > 1 {
			return fmt.Errorf("%w: tracing sample rate %v outside [0,1]", ErrInvalidConfig, cfg.TracingSampleRate)
		}
	}
	return nil
}
