// SPDX-License-Identifier: MIT

package config

import "time"

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	// ListenAddr is the address to listen on (e.g., ":8080")
	ListenAddr string

	// ReadTimeout is the maximum duration for reading the entire request
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout time.Duration

	// IdleTimeout is the maximum amount of time to wait for the next request
	IdleTimeout time.Duration

	// MaxHeaderBytes limits the size of request headers
	MaxHeaderBytes int

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration
}

// ParseServerConfig reads HTTP server settings from the environment.
func ParseServerConfig() ServerConfig {
	return ServerConfig{
		ListenAddr:      ParseString("HALO_LISTEN", ":8080"),
		ReadTimeout:     ParseDuration("HALO_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    ParseDuration("HALO_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:     ParseDuration("HALO_IDLE_TIMEOUT", 120*time.Second),
		MaxHeaderBytes:  ParseInt("HALO_MAX_HEADER_BYTES", 1<<20),
		ShutdownTimeout: ParseDuration("HALO_SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}
