package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/apexclaims/feedback/internal/app"
	"github.com/apexclaims/feedback/internal/config"
)

// RunProcess enriches a single feedback item read from a file or the reader
// and writes the enriched record as indented JSON. Useful for smoke-testing
// the pipeline configuration without a running server.
func RunProcess(ctx context.Context, filePath string, ioTuple IOTuple) error {
	// Load configuration
	cfg := config.Load()

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	body, err := readInput(filePath, ioTuple.Reader)
	if err != nil {
		return err
	}

	item, err := decodeFeedbackItem(body)
	if err != nil {
		return err
	}

	pipeline, err := container.Pipeline()
	if err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	enriched, err := pipeline.Process(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to process feedback: %w", err)
	}

	encoder := json.NewEncoder(ioTuple.Writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(enriched); err != nil {
		return fmt.Errorf("failed to encode enriched feedback: %w", err)
	}

	return nil
}

// readInput reads the feedback item payload from the file when a path is
// given, otherwise from the reader.
func readInput(filePath string, reader io.Reader) ([]byte, error) {
	if filePath != "" {
		body, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		return body, nil
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return body, nil
}
