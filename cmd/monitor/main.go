package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"vulcan-monitor-go/internal/api"
	"vulcan-monitor-go/internal/config"
	"vulcan-monitor-go/internal/logging"
	"vulcan-monitor-go/internal/monitor"
	"vulcan-monitor-go/internal/services/inference"
	"vulcan-monitor-go/internal/services/messaging"
)

func main() {
	// Setup structured logging
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg := config.Load()

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("Invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Optional embedded log viewer
	if cfg.LogdyEnabled {
		if writer, _, err := logging.StartLogdy(cfg); err == nil {
			console := zerolog.ConsoleWriter{Out: os.Stderr}
			log.Logger = log.Output(zerolog.MultiLevelWriter(console, writer))
		} else {
			log.Warn().Err(err).Msg("Failed to start Logdy UI")
		}
	}

	log.Info().
		Str("monitor_id", cfg.MonitorID).
		Int("port", cfg.Port).
		Str("nats_url", cfg.NatsURL).
		Float64("alert_threshold", cfg.AlertThreshold).
		Msg("Starting Vulcan Monitor")

	// Messaging bus: inference request/reply and immediate-alert publishing
	msg, err := messaging.NewService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to NATS")
	}

	predictor := inference.NewService(msg, cfg.InferenceSubject, cfg.InferenceTimeout)

	orchestrator, err := monitor.New(cfg, predictor, msg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create orchestrator")
	}

	server := api.NewServer(cfg, orchestrator, msg.IsConnected)
	if err := server.Setup(); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup server")
	}

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if err := orchestrator.StopMonitoring(); err != nil {
		log.Error().Err(err).Msg("Failed to stop monitoring cleanly")
	}

	if err := msg.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown messaging")
	}

	log.Info().Msg("Shutdown complete")
}
