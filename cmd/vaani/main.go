// Vaani is a voice-to-voice translation relay daemon. It accepts a recorded
// utterance in one language and returns the transcript, its translation, and
// synthesized speech in the target language.
//
// Usage:
//
//	vaani [flags]
//	vaani --config /path/to/vaani.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/vaani-labs/vaani/internal/config"
	"github.com/vaani-labs/vaani/internal/health"
	"github.com/vaani-labs/vaani/internal/pipeline"
	"github.com/vaani-labs/vaani/internal/provider/sarvam"
	"github.com/vaani-labs/vaani/internal/transport"
	grpctransport "github.com/vaani-labs/vaani/internal/transport/grpc"
	httptransport "github.com/vaani-labs/vaani/internal/transport/http"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file (e.g. configs/vaani.local.yaml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("vaani %s\n", version)
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging.
	config.SetupLogging(cfg.Logging)
	slog.Info("vaani starting", "version", version)

	// Create root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize the provider client. A missing credential is fatal here,
	// before any request is ever accepted.
	provider, err := sarvam.New(cfg.Provider)
	if err != nil {
		slog.Error("failed to initialize speech provider", "error", err)
		os.Exit(1)
	}
	slog.Info("using sarvam provider",
		"base_url", cfg.Provider.BaseURL,
		"stt_model", cfg.Provider.STTModel,
		"translate_model", cfg.Provider.TranslateModel,
		"tts_model", cfg.Provider.TTSModel)

	// The pipeline is the single handler every transport drives.
	pipe := pipeline.New(provider, cfg.Pipeline)

	// Initialize enabled transports.
	var transports []transport.Transport

	if cfg.Transports.HTTP.Enabled {
		transports = append(transports, httptransport.New(cfg.Transports.HTTP))
	}
	if cfg.Transports.GRPC.Enabled {
		transports = append(transports, grpctransport.New(cfg.Transports.GRPC))
	}

	if len(transports) == 0 {
		slog.Error("no transports enabled — enable at least one in config")
		os.Exit(1)
	}

	// Start health check server.
	healthServer := health.New(cfg.Server.HealthPort)
	go func() {
		if err := healthServer.ListenAndServe(ctx); err != nil {
			slog.Error("health server failed", "error", err)
		}
	}()

	// Start all transports.
	var wg sync.WaitGroup
	for _, t := range transports {
		wg.Add(1)
		go func(t transport.Transport) {
			defer wg.Done()
			slog.Info("starting transport", "name", t.Name())
			if err := t.Listen(ctx, pipe.Translate); err != nil {
				slog.Error("transport failed", "name", t.Name(), "error", err)
			}
		}(t)
	}

	// Mark as ready once all transports are started.
	healthServer.SetReady(true)
	slog.Info("vaani ready",
		"transports", len(transports),
		"health_port", cfg.Server.HealthPort)

	// Block until shutdown signal.
	<-ctx.Done()
	slog.Info("shutdown signal received, draining...")

	// Close all transports gracefully.
	for _, t := range transports {
		if err := t.Close(); err != nil {
			slog.Error("transport close error", "name", t.Name(), "error", err)
		}
	}

	wg.Wait()
	slog.Info("vaani stopped")
}
