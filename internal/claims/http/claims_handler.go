// Package http provides HTTP handlers for claim fraud scoring, enrichment,
// and the hosted geocode and weather lookups.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/apexclaims/feedback/internal/claims/domain"
	"github.com/apexclaims/feedback/internal/claims/http/dto"
	apperrors "github.com/apexclaims/feedback/internal/errors"
	"github.com/apexclaims/feedback/internal/httputil"
	customValidation "github.com/apexclaims/feedback/internal/validation"
)

// Scorer assesses fraud risk for one claim.
type Scorer interface {
	Score(ctx context.Context, claim domain.Claim, correlationID string) domain.FraudAssessment
}

// GeocodeService resolves a free-text address to coordinates.
type GeocodeService interface {
	Lookup(ctx context.Context, address string) (*domain.GeocodeResult, error)
}

// WeatherService fetches historical conditions for coordinates on a date.
type WeatherService interface {
	Lookup(ctx context.Context, latitude, longitude float64, date string) (*domain.WeatherResult, error)
}

// ClaimEnricher enriches a stored claim with location and weather context.
type ClaimEnricher interface {
	EnrichClaim(ctx context.Context, claimID string) (*domain.Claim, error)
}

// ClaimWriter stores claim records.
type ClaimWriter interface {
	UpdateClaim(ctx context.Context, claim *domain.Claim) error
}

// ClaimsHandler handles HTTP requests for the claims endpoints.
type ClaimsHandler struct {
	scorer   Scorer
	geocode  GeocodeService
	weather  WeatherService
	enricher ClaimEnricher
	store    ClaimWriter
	logger   *slog.Logger
}

// NewClaimsHandler creates a new claims handler.
func NewClaimsHandler(
	scorer Scorer,
	geocode GeocodeService,
	weather WeatherService,
	enricher ClaimEnricher,
	store ClaimWriter,
	logger *slog.Logger,
) *ClaimsHandler {
	return &ClaimsHandler{
		scorer:   scorer,
		geocode:  geocode,
		weather:  weather,
		enricher: enricher,
		store:    store,
		logger:   logger,
	}
}

// FraudScoreHandler assesses fraud risk for a submitted claim.
// POST /v1/claims/fraud-score
// The X-Correlation-Id header, when present, is carried into the assessment.
func (h *ClaimsHandler) FraudScoreHandler(c *gin.Context) {
	var req dto.FraudScoreRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	assessment := h.scorer.Score(c.Request.Context(), req.ToDomain(), c.GetHeader("X-Correlation-Id"))
	c.JSON(http.StatusOK, assessment)
}

// GeocodeHandler resolves an address to coordinates.
// POST /v1/geocode
// A matched or unmatched address both return 200; the response body's success
// flag distinguishes them. Upstream failures return 500 with the same shape so
// callers can always decode the body.
func (h *ClaimsHandler) GeocodeHandler(c *gin.Context) {
	var req dto.GeocodeRequest

	if err := c.ShouldBindJSON(&req); err != nil || !req.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Address is required"})
		return
	}

	result, err := h.geocode.Lookup(c.Request.Context(), req.Address)
	if err != nil {
		message := "Geocoding service unavailable"
		if apperrors.Is(err, apperrors.ErrUnavailable) {
			message = "Geocoding service not configured"
		}
		if h.logger != nil {
			h.logger.Error("geocode lookup failed", slog.String("error", err.Error()))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": message})
		return
	}

	c.JSON(http.StatusOK, result)
}

// WeatherHandler fetches historical weather for coordinates on a date.
// POST /v1/weather
// Validation failures return 400; a date without archive data returns 200 with
// a negative result.
func (h *ClaimsHandler) WeatherHandler(c *gin.Context) {
	var req dto.WeatherRequest

	if err := c.ShouldBindJSON(&req); err != nil || !req.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Latitude, longitude, and date are required",
		})
		return
	}

	result, err := h.weather.Lookup(c.Request.Context(), *req.Latitude, *req.Longitude, req.Date)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": inputMessage(err)})
			return
		}
		if h.logger != nil {
			h.logger.Error("weather lookup failed", slog.String("error", err.Error()))
		}
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// EnrichHandler enriches a stored claim with geocoded coordinates and
// incident-day weather.
// POST /v1/claims/:claimId/enrich
func (h *ClaimsHandler) EnrichHandler(c *gin.Context) {
	claim, err := h.enricher.EnrichClaim(c.Request.Context(), c.Param("claimId"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, claim)
}

// UpsertClaimHandler stores a claim record for later enrichment.
// PUT /v1/claims
func (h *ClaimsHandler) UpsertClaimHandler(c *gin.Context) {
	var req dto.UpsertClaimRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	claim := req.ToDomain()
	if err := h.store.UpdateClaim(c.Request.Context(), &claim); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, claim)
}

// inputMessage strips the sentinel suffix added when validation errors are
// wrapped, leaving the caller-facing message.
func inputMessage(err error) string {
	return strings.TrimSuffix(err.Error(), ": "+apperrors.ErrInvalidInput.Error())
}
