// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig represents the YAML configuration structure. All fields are
// optional; absent fields leave the defaults untouched.
type FileConfig struct {
	LogLevel   string `yaml:"logLevel,omitempty"`
	LogService string `yaml:"logService,omitempty"`

	API struct {
		ListenAddr string `yaml:"listenAddr,omitempty"`
	} `yaml:"api,omitempty"`

	Metrics struct {
		Enabled *bool  `yaml:"enabled,omitempty"`
		Addr    string `yaml:"addr,omitempty"`
	} `yaml:"metrics,omitempty"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
	} `yaml:"cors,omitempty"`

	RateLimit struct {
		Enabled *bool `yaml:"enabled,omitempty"`
		RPS     *int  `yaml:"rps,omitempty"`
	} `yaml:"rateLimit,omitempty"`

	Sessions struct {
		Retention     string `yaml:"retention,omitempty"`
		SweepInterval string `yaml:"sweepInterval,omitempty"`
	} `yaml:"sessions,omitempty"`

	Tracing struct {
		Enabled    *bool    `yaml:"enabled,omitempty"`
		Exporter   string   `yaml:"exporter,omitempty"`
		Endpoint   string   `yaml:"endpoint,omitempty"`
		SampleRate *float64 `yaml:"sampleRate,omitempty"`
	} `yaml:"tracing,omitempty"`
}

func readFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, err
	}
	return &fc, nil
}

func mergeFile(cfg *AppConfig, fc *FileConfig) {
	if fc == nil {
		return
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogService != "" {
		cfg.LogService = fc.LogService
	}
	if fc.API.ListenAddr != "" {
		cfg.APIListenAddr = fc.API.ListenAddr
	}
	if fc.Metrics.Enabled != nil {
		cfg.MetricsEnabled = *fc.Metrics.Enabled
	}
	if fc.Metrics.Addr != "" {
		cfg.MetricsAddr = fc.Metrics.Addr
	}
	if len(fc.CORS.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = fc.CORS.AllowedOrigins
	}
	if fc.RateLimit.Enabled != nil {
		cfg.RateLimitEnabled = *fc.RateLimit.Enabled
	}
	if fc.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *fc.RateLimit.RPS
	}
	if fc.Sessions.Retention != "" {
		if d, err := time.ParseDuration(fc.Sessions.Retention); err == nil {
			cfg.SessionRetention = d
		}
	}
	if fc.Sessions.SweepInterval != "" {
		if d, err := time.ParseDuration(fc.Sessions.SweepInterval); err == nil {
			cfg.SweepInterval = d
		}
	}
	if fc.Tracing.Enabled != nil {
		cfg.TracingEnabled = *fc.Tracing.Enabled
	}
	if fc.Tracing.Exporter != "" {
		cfg.TracingExporter = fc.Tracing.Exporter
	}
	if fc.Tracing.Endpoint != "" {
		cfg.TracingEndpoint = fc.Tracing.Endpoint
	}
	if fc.Tracing.SampleRate != nil {
		cfg.TracingSampleRate = *fc.Tracing.SampleRate
	}
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func joinCSV(values []string) string {
	return strings.Join(values, ",")
}
