// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/apexclaims/feedback/internal/app"
	"github.com/apexclaims/feedback/internal/feedback/domain"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// decodeFeedbackItem parses a feedback item from JSON, assigning an ID and
// submission time when absent.
func decodeFeedbackItem(body []byte) (domain.FeedbackItem, error) {
	var item domain.FeedbackItem
	if err := json.Unmarshal(body, &item); err != nil {
		return domain.FeedbackItem{}, fmt.Errorf("failed to decode feedback item: %w", err)
	}
	if item.FeedbackText == "" {
		return domain.FeedbackItem{}, fmt.Errorf("feedback item has no feedbackText")
	}
	if item.FeedbackID == "" {
		item.FeedbackID = uuid.NewString()
	}
	if item.SubmittedAt.IsZero() {
		item.SubmittedAt = time.Now().UTC()
	}
	return item, nil
}
