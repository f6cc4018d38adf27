// Package client provides the CRM-side collaborators that call the geocoding
// and weather lookup services through the shared retry controller. Both
// clients implement the dual error path: a non-2xx response with a decodable
// result body is a valid negative result, not a transport failure, and a nil
// result on total failure tells callers to preserve previous state.
package client

import (
	"context"
	"errors"
	"log/slog"

	"github.com/apexclaims/feedback/internal/claims/domain"
	apperrors "github.com/apexclaims/feedback/internal/errors"
	"github.com/apexclaims/feedback/internal/remote"
)

const functionsKeyHeader = "x-functions-key"

// GeocodeClient calls the geocoding lookup service with bounded retries.
type GeocodeClient struct {
	client   *remote.Client
	policy   remote.Policy
	endpoint string
	apiKey   string
	logger   *slog.Logger
}

// NewGeocodeClient creates a GeocodeClient for the given lookup endpoint.
func NewGeocodeClient(client *remote.Client, policy remote.Policy, endpoint, apiKey string, logger *slog.Logger) *GeocodeClient {
	return &GeocodeClient{
		client:   client,
		policy:   policy,
		endpoint: endpoint,
		apiKey:   apiKey,
		logger:   logger,
	}
}

// Geocode resolves an address to coordinates. It returns a non-nil result for
// both positive and structured negative responses; a nil result means the
// service could not be reached at all.
func (c *GeocodeClient) Geocode(ctx context.Context, address string) (*domain.GeocodeResult, error) {
	result, err := remote.Do(ctx, c.policy, func(ctx context.Context) (*domain.GeocodeResult, error) {
		var out domain.GeocodeResult
		payload := map[string]string{"address": address}
		if err := c.client.Post(ctx, c.endpoint, c.headers(), payload, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		if parsed := decodeResultBody[domain.GeocodeResult](err); parsed != nil {
			return parsed, nil
		}
		return nil, apperrors.Wrap(err, "geocode lookup failed")
	}
	return result, nil
}

func (c *GeocodeClient) headers() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{functionsKeyHeader: c.apiKey}
}

// WeatherClient calls the historical weather lookup service with bounded
// retries.
type WeatherClient struct {
	client   *remote.Client
	policy   remote.Policy
	endpoint string
	apiKey   string
	logger   *slog.Logger
}

// NewWeatherClient creates a WeatherClient for the given lookup endpoint.
func NewWeatherClient(client *remote.Client, policy remote.Policy, endpoint, apiKey string, logger *slog.Logger) *WeatherClient {
	return &WeatherClient{
		client:   client,
		policy:   policy,
		endpoint: endpoint,
		apiKey:   apiKey,
		logger:   logger,
	}
}

// Fetch retrieves the weather conditions for coordinates on a calendar date
// (YYYY-MM-DD). Result semantics match GeocodeClient.Geocode.
func (c *WeatherClient) Fetch(ctx context.Context, latitude, longitude float64, date string) (*domain.WeatherResult, error) {
	result, err := remote.Do(ctx, c.policy, func(ctx context.Context) (*domain.WeatherResult, error) {
		var out domain.WeatherResult
		payload := map[string]any{
			"latitude":  latitude,
			"longitude": longitude,
			"date":      date,
		}
		if err := c.client.Post(ctx, c.endpoint, c.headers(), payload, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		if parsed := decodeResultBody[domain.WeatherResult](err); parsed != nil {
			return parsed, nil
		}
		return nil, apperrors.Wrap(err, "weather lookup failed")
	}
	return result, nil
}

func (c *WeatherClient) headers() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{functionsKeyHeader: c.apiKey}
}

// decodeResultBody extracts a structured lookup result from a failed call's
// response body. The body must carry an explicit error message to count as a
// negative result rather than an unrelated error page.
func decodeResultBody[T interface{ domain.GeocodeResult | domain.WeatherResult }](err error) *T {
	var callErr *remote.CallError
	if !errors.As(err, &callErr) {
		return nil
	}
	var parsed struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if !callErr.DecodeBody(&parsed) || parsed.Error == "" {
		return nil
	}
	var out T
	if !callErr.DecodeBody(&out) {
		return nil
	}
	return &out
}
