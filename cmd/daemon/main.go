// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/titanx/halo/internal/api"
	"github.com/titanx/halo/internal/config"
	"github.com/titanx/halo/internal/daemon"
	"github.com/titanx/halo/internal/health"
	halolog "github.com/titanx/halo/internal/log"
	"github.com/titanx/halo/internal/session/engine"
	"github.com/titanx/halo/internal/session/store"
	"github.com/titanx/halo/internal/telemetry"
	"github.com/titanx/halo/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		os.Exit(0)
	}

	// Safe defaults until the real config is loaded.
	halolog.Configure(halolog.Config{
		Level:   "info",
		Service: "halo",
		Version: version.Version,
	})

	logger := halolog.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	effectiveConfigPath := strings.TrimSpace(*configPath)

	// ENV > file > defaults
	loader := config.NewLoader(effectiveConfigPath, version.Version)
	cfg, err := loader.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "config.load_failed").
			Str("config_path", effectiveConfigPath).
			Msg("failed to load configuration")
	}

	// Re-configure the logger with the loaded configuration.
	halolog.Configure(halolog.Config{
		Level:   cfg.LogLevel,
		Service: cfg.LogService,
		Version: cfg.Version,
	})

	if effectiveConfigPath != "" {
		logger.Info().
			Str("event", "config.loaded").
			Str("source", "file").
			Str("path", effectiveConfigPath).
			Msg("loaded configuration from file")
	} else {
		logger.Info().
			Str("event", "config.loaded").
			Str("source", "env+defaults").
			Msg("loaded configuration from environment and defaults")
	}

	serverCfg := config.ParseServerConfig()

	// The config file can set the API listen address, but ENV stays the
	// highest priority.
	if strings.TrimSpace(config.ParseString("HALO_LISTEN", "")) == "" {
		if strings.TrimSpace(cfg.APIListenAddr) != "" {
			serverCfg.ListenAddr = cfg.APIListenAddr
		}
	}

	logger.Info().
		Str("event", "startup").
		Str("version", version.Version).
		Str("commit", version.Commit).
		Str("build_date", version.Date).
		Str("addr", serverCfg.ListenAddr).
		Msg("starting halo")

	if cfg.SessionRetention > 0 {
		logger.Info().Msgf("→ Session retention: %s (sweep every %s)", cfg.SessionRetention, cfg.SweepInterval)
	} else {
		logger.Info().Msg("→ Session retention: disabled (sessions kept until process exit)")
	}
	if cfg.MetricsEnabled {
		logger.Info().Msgf("→ Metrics: %s", cfg.MetricsAddr)
	}

	tracing, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.TracingEnabled,
		ServiceName:    cfg.LogService,
		ServiceVersion: cfg.Version,
		ExporterType:   cfg.TracingExporter,
		Endpoint:       cfg.TracingEndpoint,
		SamplingRate:   cfg.TracingSampleRate,
	})
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "telemetry.init_failed").
			Msg("failed to initialize tracing")
	}

	st := store.NewStore()
	eng := engine.New(st)

	hm := health.NewManager(cfg.Version)
	hm.RegisterChecker(health.NewStoreChecker(st))

	server := api.New(cfg, eng, hm)

	deps := daemon.Deps{
		Logger:           halolog.WithComponent("daemon"),
		APIHandler:       server.Routes(),
		Store:            st,
		SessionRetention: cfg.SessionRetention,
		SweepInterval:    cfg.SweepInterval,
	}
	if cfg.MetricsEnabled {
		deps.MetricsHandler = promhttp.Handler()
		deps.MetricsAddr = cfg.MetricsAddr
	}

	mgr, err := daemon.NewManager(serverCfg, deps)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "daemon.init_failed").
			Msg("failed to create daemon manager")
	}

	mgr.RegisterShutdownHook("tracing", tracing.Shutdown)

	if err := mgr.Start(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "daemon.failed").
			Msg("daemon exited with error")
	}

	logger.Info().Msg("halo stopped")
}
