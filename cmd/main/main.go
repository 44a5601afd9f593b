package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/avrek/wb-radar/internal/bot"
	"github.com/avrek/wb-radar/internal/config"
	"github.com/avrek/wb-radar/internal/repository/sqlite"
	"github.com/avrek/wb-radar/internal/scheduler"
	"github.com/avrek/wb-radar/internal/server"
	"github.com/avrek/wb-radar/internal/services/comparator"
	"github.com/avrek/wb-radar/internal/services/metrics"
	"github.com/avrek/wb-radar/internal/wbclient"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const shutdownTimeout = 10 * time.Second

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	repo, err := sqlite.NewRepository(ctx, logger, cfg.StoragePath)
	if err != nil {
		log.Fatalf("Failed to init repository: %v", err)
	}
	defer repo.Close()

	fetcher := wbclient.NewClient(logger, cfg.Card.BaseURL, cfg.Card.Timeout, cfg.Card.RPS)
	calculator := metrics.NewCalculator(metrics.DefaultConfig())
	cmp := comparator.NewComparator(
		logger, repo, repo, fetcher, calculator,
		cfg.Compare.TTL, cfg.Compare.FetchConcurrency,
	)

	radarBot, err := bot.NewBot(logger, cmp, cfg.Tg.Token, cfg.Tg.Timeout)
	if err != nil {
		log.Fatalf("Failed to init bot: %v", err)
	}

	apiServer := server.NewServer(logger, cmp, cfg.HTTPAddr)

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Start the bot and the API server in goroutines to allow main to
	// listen for signals.
	go radarBot.Start()
	go func() {
		if err := apiServer.Start(); err != nil {
			logger.Error("API server failed", "error", err)
			stop()
		}
	}()

	var refresher *scheduler.Scheduler
	if cfg.Compare.RefreshSchedule != "" {
		refresher = scheduler.NewScheduler(logger, cmp, repo, cfg.Compare.TTL)
		if err := refresher.Start(cfg.Compare.RefreshSchedule); err != nil {
			log.Fatalf("Failed to start refresh scheduler: %v", err)
		}
	}

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.Info("Shutdown signal received. Stopping application...")

	if refresher != nil {
		refresher.Stop()
	}

	// Stop the bot and the server gracefully.
	radarBot.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("API server shutdown failed", "error", err)
	}

	// Log graceful shutdown completion.
	logger.Info("Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
