package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/apexclaims/feedback/internal/claims/domain"
	apperrors "github.com/apexclaims/feedback/internal/errors"
	"github.com/apexclaims/feedback/internal/remote"
	customValidation "github.com/apexclaims/feedback/internal/validation"
)

// GeocodeLookup is the hosted geocoding service: it resolves free-text
// addresses against the upstream maps search API and grades match confidence.
type GeocodeLookup struct {
	client    *remote.Client
	searchURL string
	apiKey    string
	logger    *slog.Logger
}

// NewGeocodeLookup creates a GeocodeLookup against the given maps search URL.
func NewGeocodeLookup(client *remote.Client, searchURL, apiKey string, logger *slog.Logger) *GeocodeLookup {
	return &GeocodeLookup{
		client:    client,
		searchURL: searchURL,
		apiKey:    apiKey,
		logger:    logger,
	}
}

type mapsSearchResponse struct {
	Results []struct {
		Score    float64 `json:"score"`
		Position struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"position"`
		Address struct {
			FreeformAddress string `json:"freeformAddress"`
		} `json:"address"`
	} `json:"results"`
}

// Lookup geocodes one address. An address with no matches yields a negative
// result, not an error; an unreachable upstream yields an error.
func (g *GeocodeLookup) Lookup(ctx context.Context, address string) (*domain.GeocodeResult, error) {
	if g.apiKey == "" {
		return nil, apperrors.Wrap(apperrors.ErrUnavailable, "geocoding service not configured")
	}

	endpoint := fmt.Sprintf(
		"%s/search/address/json?api-version=1.0&subscription-key=%s&query=%s&limit=1&language=en-US",
		g.searchURL, url.QueryEscape(g.apiKey), url.QueryEscape(address),
	)

	var response mapsSearchResponse
	if err := g.client.Get(ctx, endpoint, nil, &response); err != nil {
		return nil, apperrors.Wrap(err, "maps search failed")
	}

	if len(response.Results) == 0 {
		return &domain.GeocodeResult{Success: false, Error: "No results found"}, nil
	}

	match := response.Results[0]
	result := &domain.GeocodeResult{
		Success:    true,
		Latitude:   &match.Position.Lat,
		Longitude:  &match.Position.Lon,
		Confidence: domain.ConfidenceFromScore(match.Score),
	}
	if match.Address.FreeformAddress != "" {
		result.FormattedAddress = &match.Address.FreeformAddress
	}
	return result, nil
}

// WeatherLookup is the hosted historical weather service backed by the
// upstream weather archive API.
type WeatherLookup struct {
	client     *remote.Client
	archiveURL string
	logger     *slog.Logger
	now        func() time.Time
}

// NewWeatherLookup creates a WeatherLookup against the given archive URL.
func NewWeatherLookup(client *remote.Client, archiveURL string, logger *slog.Logger) *WeatherLookup {
	return &WeatherLookup{
		client:     client,
		archiveURL: archiveURL,
		logger:     logger,
		now:        time.Now,
	}
}

// Series values are pointers: sparse stations report null for missing days.
type archiveResponse struct {
	Daily struct {
		Time             []string   `json:"time"`
		WeatherCode      []*int     `json:"weathercode"`
		TemperatureMax   []*float64 `json:"temperature_2m_max"`
		TemperatureMin   []*float64 `json:"temperature_2m_min"`
		PrecipitationSum []*float64 `json:"precipitation_sum"`
		WindSpeedMax     []*float64 `json:"windspeed_10m_max"`
	} `json:"daily"`
}

// Lookup fetches conditions for coordinates on a calendar date. Validation
// failures return ErrInvalidInput; a day without archive data yields a
// negative result.
func (w *WeatherLookup) Lookup(ctx context.Context, latitude, longitude float64, date string) (*domain.WeatherResult, error) {
	if latitude < -90 || latitude > 90 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "Latitude must be between -90 and 90")
	}
	if longitude < -180 || longitude > 180 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "Longitude must be between -180 and 180")
	}

	day := customValidation.DatePart(date)
	parsed, err := time.Parse("2006-01-02", day)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "Date must be in YYYY-MM-DD format")
	}
	today := w.now().UTC().Truncate(24 * time.Hour)
	if parsed.After(today) {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput,
			"Date cannot be in the future. Historical weather API only supports past dates.")
	}

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%g", latitude))
	params.Set("longitude", fmt.Sprintf("%g", longitude))
	params.Set("start_date", day)
	params.Set("end_date", day)
	params.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,windspeed_10m_max,weathercode")
	params.Set("timezone", "auto")

	var response archiveResponse
	endpoint := fmt.Sprintf("%s/v1/archive?%s", w.archiveURL, params.Encode())
	if err := w.client.Get(ctx, endpoint, nil, &response); err != nil {
		return nil, apperrors.Wrap(err, "weather archive failed")
	}

	daily, ok := firstDay(response)
	if !ok {
		return &domain.WeatherResult{
			Success: false,
			Error:   "Weather data not available for the specified date",
		}, nil
	}

	result := domain.BuildConditions(daily)
	if result == nil {
		return &domain.WeatherResult{
			Success: false,
			Error:   "Weather data not available for the specified date",
		}, nil
	}
	return result, nil
}

// firstDay extracts the first archive day, tolerating sparse stations that
// omit individual series.
func firstDay(response archiveResponse) (domain.DailyWeather, bool) {
	daily := response.Daily
	if len(daily.Time) == 0 {
		return domain.DailyWeather{}, false
	}

	var day domain.DailyWeather
	if len(daily.WeatherCode) > 0 && daily.WeatherCode[0] != nil {
		day.WeatherCode = *daily.WeatherCode[0]
	}
	if len(daily.TemperatureMax) > 0 {
		day.TemperatureMaxC = daily.TemperatureMax[0]
	}
	if len(daily.TemperatureMin) > 0 {
		day.TemperatureMinC = daily.TemperatureMin[0]
	}
	if len(daily.PrecipitationSum) > 0 && daily.PrecipitationSum[0] != nil {
		day.PrecipitationMm = *daily.PrecipitationSum[0]
	}
	if len(daily.WindSpeedMax) > 0 && daily.WindSpeedMax[0] != nil {
		day.WindSpeedKmh = *daily.WindSpeedMax[0]
	}
	return day, true
}
