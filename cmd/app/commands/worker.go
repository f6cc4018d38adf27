package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/apexclaims/feedback/internal/app"
	"github.com/apexclaims/feedback/internal/config"
)

// RunWorker starts the worker consuming feedback items from the configured
// subscription and running each through the enrichment pipeline. Blocks until
// receiving SIGINT/SIGTERM.
func RunWorker(ctx context.Context) error {
	// Load configuration
	cfg := config.Load()

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("starting worker",
		slog.String("subscription", cfg.PubSubSubscriptionURL),
		slog.Int("concurrency", cfg.WorkerConcurrency),
	)

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	pipeline, err := container.Pipeline()
	if err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	subscriber, err := container.Subscriber(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize subscriber: %w", err)
	}

	handler := func(ctx context.Context, body []byte, metadata map[string]string) error {
		item, err := decodeFeedbackItem(body)
		if err != nil {
			logger.Error("skipping malformed message", slog.Any("error", err))
			// Malformed messages are acked, not redelivered
			return nil
		}

		if _, err := pipeline.Process(ctx, item); err != nil {
			return fmt.Errorf("failed to process feedback %s: %w", item.FeedbackID, err)
		}
		return nil
	}

	if err := subscriber.Run(ctx, handler); err != nil {
		return fmt.Errorf("worker stopped with error: %w", err)
	}

	logger.Info("worker stopped")
	return nil
}
