// Package usecase implements the claims-side operations: claim enrichment
// with geocoded coordinates and incident-day weather, the hosted lookup
// services behind those collaborators, and rule-based fraud scoring.
package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/apexclaims/feedback/internal/claims/domain"
	apperrors "github.com/apexclaims/feedback/internal/errors"
	"github.com/apexclaims/feedback/internal/metrics"
)

// Geocoder resolves an address to coordinates. A nil result means total
// failure: previous claim state must be preserved.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*domain.GeocodeResult, error)
}

// WeatherFetcher retrieves conditions for coordinates on a calendar date.
type WeatherFetcher interface {
	Fetch(ctx context.Context, latitude, longitude float64, date string) (*domain.WeatherResult, error)
}

// ClaimStore abstracts the claim record storage.
type ClaimStore interface {
	GetClaim(ctx context.Context, claimID string) (*domain.Claim, error)
	UpdateClaim(ctx context.Context, claim *domain.Claim) error
}

// Enricher updates claim records with geocoded coordinates and the weather on
// the incident date.
type Enricher struct {
	geocoder Geocoder
	weather  WeatherFetcher
	store    ClaimStore
	business metrics.BusinessMetrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewEnricher creates an Enricher with the given collaborators.
func NewEnricher(
	geocoder Geocoder,
	weather WeatherFetcher,
	store ClaimStore,
	business metrics.BusinessMetrics,
	logger *slog.Logger,
) *Enricher {
	return &Enricher{
		geocoder: geocoder,
		weather:  weather,
		store:    store,
		business: business,
		logger:   logger,
		now:      time.Now,
	}
}

// EnrichClaim geocodes the claim's incident location and, when coordinates
// and incident date allow, attaches the weather conditions for that day. The
// record is written back only when something changed. A total lookup failure
// preserves the claim's previous state; an explicit not-found clears the
// coordinates.
func (e *Enricher) EnrichClaim(ctx context.Context, claimID string) (*domain.Claim, error) {
	claim, err := e.store.GetClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(claim.Location) == "" {
		return claim, nil
	}

	changed := e.applyGeocode(ctx, claim)
	if e.shouldFetchWeather(claim) {
		if e.applyWeather(ctx, claim) {
			changed = true
		}
	}

	if changed {
		if err := e.store.UpdateClaim(ctx, claim); err != nil {
			return nil, apperrors.Wrap(err, "update claim")
		}
	}

	if e.business != nil {
		status := "unchanged"
		if changed {
			status = "updated"
		}
		e.business.RecordOperation(ctx, "claims", "enrich_claim", status)
	}

	return claim, nil
}

func (e *Enricher) applyGeocode(ctx context.Context, claim *domain.Claim) bool {
	result, err := e.geocoder.Geocode(ctx, claim.Location)
	if err != nil || result == nil {
		if e.logger != nil {
			e.logger.Warn("geocode unavailable, preserving claim coordinates",
				slog.String("claim_id", claim.ClaimID),
			)
		}
		return false
	}

	if result.Success && result.Latitude != nil && result.Longitude != nil {
		changed := claim.Latitude == nil || claim.Longitude == nil ||
			*claim.Latitude != *result.Latitude || *claim.Longitude != *result.Longitude
		claim.Latitude = result.Latitude
		claim.Longitude = result.Longitude
		if result.FormattedAddress != nil && claim.FormattedAddress != *result.FormattedAddress {
			claim.FormattedAddress = *result.FormattedAddress
			changed = true
		}
		return changed
	}

	// An explicit not-found clears stale coordinates; any other negative
	// result preserves them.
	if strings.Contains(strings.ToLower(result.Error), "not found") {
		if claim.HasCoordinates() {
			claim.Latitude = nil
			claim.Longitude = nil
			return true
		}
	}
	return false
}

func (e *Enricher) shouldFetchWeather(claim *domain.Claim) bool {
	if !claim.HasCoordinates() || claim.IncidentDate.IsZero() {
		return false
	}
	if *claim.Latitude < -90 || *claim.Latitude > 90 {
		return false
	}
	if *claim.Longitude < -180 || *claim.Longitude > 180 {
		return false
	}
	today := e.now().UTC().Truncate(24 * time.Hour)
	return !claim.IncidentDate.UTC().Truncate(24 * time.Hour).After(today)
}

func (e *Enricher) applyWeather(ctx context.Context, claim *domain.Claim) bool {
	date := claim.IncidentDate.UTC().Format("2006-01-02")
	result, err := e.weather.Fetch(ctx, *claim.Latitude, *claim.Longitude, date)
	if err != nil || result == nil {
		if e.logger != nil {
			e.logger.Warn("weather unavailable, preserving claim conditions",
				slog.String("claim_id", claim.ClaimID),
			)
		}
		return false
	}
	if !result.Success || result.Conditions == nil {
		return false
	}
	if claim.WeatherConditions == *result.Conditions {
		return false
	}
	claim.WeatherConditions = *result.Conditions
	return true
}
