// Package http provides HTTP handlers for feedback enrichment.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apexclaims/feedback/internal/feedback/domain"
	"github.com/apexclaims/feedback/internal/feedback/http/dto"
	"github.com/apexclaims/feedback/internal/httputil"
	customValidation "github.com/apexclaims/feedback/internal/validation"
)

// Processor runs the enrichment pipeline over one feedback item.
type Processor interface {
	Process(ctx context.Context, item domain.FeedbackItem) (*domain.EnrichedFeedback, error)
}

// FeedbackHandler handles HTTP requests for feedback enrichment.
type FeedbackHandler struct {
	processor Processor
	logger    *slog.Logger
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(processor Processor, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		processor: processor,
		logger:    logger,
	}
}

// ProcessHandler enriches one feedback item synchronously.
// POST /v1/feedback
// Returns 200 OK with the enriched record. A degraded pipeline run still
// returns 200 with the fallback record and its pipelineError annotation; only
// a publish failure maps to an error status.
func (h *FeedbackHandler) ProcessHandler(c *gin.Context) {
	var req dto.ProcessFeedbackRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	enriched, err := h.processor.Process(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, enriched)
}
