// Command summora runs the recording summarization service: it accepts
// uploaded recordings, transcribes them with AssemblyAI and produces a
// structured meeting summary with Gemini.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/summora/config"
	"github.com/skillsenselab/summora/logger"
	"github.com/skillsenselab/summora/observability"
	"github.com/skillsenselab/summora/pipeline"
	"github.com/skillsenselab/summora/server"
	"github.com/skillsenselab/summora/summary/gemini"
	"github.com/skillsenselab/summora/transcription"
	"github.com/skillsenselab/summora/transcription/assemblyai"
	"github.com/skillsenselab/summora/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "summora: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	var cfg config.Config
	if err := config.Load("summora", &cfg); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	build := version.Get()

	log := logger.New(&cfg.Logging, cfg.Name)
	logger.SetGlobalLogger(log)
	log.Info("starting", logger.Fields(
		"version", build.String(),
		"environment", cfg.Environment,
		"mode", string(cfg.Pipeline.Mode),
	))

	shutdownTelemetry, err := observability.Init(ctx, cfg.Observability, cfg.Name, build.Version)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}

	var metrics *observability.Metrics
	if cfg.Observability.Enabled {
		metrics, err = observability.NewMetrics(observability.Meter(cfg.Name))
		if err != nil {
			return fmt.Errorf("init metrics: %w", err)
		}
	}

	backends := transcription.NewRegistry()
	aai, err := assemblyai.New(cfg.AssemblyAI, log)
	if err != nil {
		return fmt.Errorf("init transcription client: %w", err)
	}
	backends.Register(aai)

	transcriber, err := backends.Get(cfg.Transcriber)
	if err != nil {
		return fmt.Errorf("select transcription backend: %w", err)
	}
	summarizer, err := gemini.New(cfg.Gemini, log)
	if err != nil {
		return fmt.Errorf("init summary client: %w", err)
	}

	orch, err := pipeline.New(cfg.Pipeline, transcriber, summarizer, log, metrics)
	if err != nil {
		return fmt.Errorf("init pipeline: %w", err)
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	srv.RegisterRoutes(orch)

	if err := srv.Start(ctx); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutdown signal received", logger.Fields("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("server shutdown failed", logger.Fields("error", err.Error()))
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		log.Error("telemetry shutdown failed", logger.Fields("error", err.Error()))
	}

	log.Info("stopped")
	return nil
}
