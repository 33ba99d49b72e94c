package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"studentapi/internal/app"
	"studentapi/internal/config"
	"studentapi/internal/logger"
	tracing "studentapi/internal/otel"
)

// @title Student API
// @version 1.0
// @description Echoes a student record built from path variables, query parameters or a JSON body.
// @BasePath /
func main() {
	boot := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Load configuration (.env auto-loaded if present; real env vars take precedence)
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("config_load_failed")
	}

	log, err := logger.FromConfig(cfg)
	if err != nil {
		boot.Fatal().Err(err).Msg("logger_init_failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.AppName, log)
	if err != nil {
		log.Fatal().Err(err).Msg("tracing_init_failed")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv, err := app.New(cfg, log, reg)
	if err != nil {
		log.Fatal().Err(err).Msg("app_init_failed")
	}

	listenErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("server_starting")
		listenErr <- srv.Listen(cfg.Addr())
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			log.Error().Err(err).Msg("server_failed")
		}
	case <-ctx.Done():
		log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("server_stopping")
		if err := srv.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
			log.Error().Err(err).Msg("server_shutdown_failed")
		}
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error().Err(err).Msg("tracing_shutdown_failed")
	}
	log.Info().Msg("server_stopped")
}
