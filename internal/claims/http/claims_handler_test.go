package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/apexclaims/feedback/internal/claims/domain"
	apperrors "github.com/apexclaims/feedback/internal/errors"
)

type mockScorer struct {
	mock.Mock
}

func (m *mockScorer) Score(ctx context.Context, claim domain.Claim, correlationID string) domain.FraudAssessment {
	args := m.Called(ctx, claim, correlationID)
	return args.Get(0).(domain.FraudAssessment)
}

type mockGeocodeService struct {
	mock.Mock
}

func (m *mockGeocodeService) Lookup(ctx context.Context, address string) (*domain.GeocodeResult, error) {
	args := m.Called(ctx, address)
	result, _ := args.Get(0).(*domain.GeocodeResult)
	return result, args.Error(1)
}

type mockWeatherService struct {
	mock.Mock
}

func (m *mockWeatherService) Lookup(ctx context.Context, latitude, longitude float64, date string) (*domain.WeatherResult, error) {
	args := m.Called(ctx, latitude, longitude, date)
	result, _ := args.Get(0).(*domain.WeatherResult)
	return result, args.Error(1)
}

type mockEnricher struct {
	mock.Mock
}

func (m *mockEnricher) EnrichClaim(ctx context.Context, claimID string) (*domain.Claim, error) {
	args := m.Called(ctx, claimID)
	claim, _ := args.Get(0).(*domain.Claim)
	return claim, args.Error(1)
}

type mockClaimWriter struct {
	mock.Mock
}

func (m *mockClaimWriter) UpdateClaim(ctx context.Context, claim *domain.Claim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

type claimsMocks struct {
	scorer   *mockScorer
	geocode  *mockGeocodeService
	weather  *mockWeatherService
	enricher *mockEnricher
	store    *mockClaimWriter
}

func setupClaimsRouter(t *testing.T) (*gin.Engine, *claimsMocks) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mocks := &claimsMocks{
		scorer:   &mockScorer{},
		geocode:  &mockGeocodeService{},
		weather:  &mockWeatherService{},
		enricher: &mockEnricher{},
		store:    &mockClaimWriter{},
	}
	handler := NewClaimsHandler(mocks.scorer, mocks.geocode, mocks.weather, mocks.enricher, mocks.store, logger)

	router := gin.New()
	router.POST("/v1/claims/fraud-score", handler.FraudScoreHandler)
	router.POST("/v1/geocode", handler.GeocodeHandler)
	router.POST("/v1/weather", handler.WeatherHandler)
	router.POST("/v1/claims/:claimId/enrich", handler.EnrichHandler)
	router.PUT("/v1/claims", handler.UpsertClaimHandler)
	return router, mocks
}

func postJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestFraudScoreHandler(t *testing.T) {
	router, mocks := setupClaimsRouter(t)

	assessment := domain.FraudAssessment{
		RiskScore:      58,
		RiskFactors:    []string{"Very high claim amount (over $50,000)"},
		Recommendation: domain.RecommendationReview,
		AssessmentID:   "a-1",
		CorrelationID:  "corr-9",
	}
	mocks.scorer.On("Score", mock.Anything, mock.MatchedBy(func(claim domain.Claim) bool {
		return claim.ClaimID == "CLM-001" && claim.Amount == 60000 && !claim.IncidentDate.IsZero()
	}), "corr-9").Return(assessment)

	body := `{
		"claimId": "CLM-001",
		"policyId": "POL-001",
		"claimType": "Auto",
		"amount": 60000,
		"location": "101 Main Street, Springfield",
		"incidentDate": "2026-08-20",
		"description": "Rear-ended at a stop light, significant damage to the trunk and bumper."
	}`
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/v1/claims/fraud-score", bytes.NewBufferString(body))
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("X-Correlation-Id", "corr-9")
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response domain.FraudAssessment
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, 58, response.RiskScore)
	assert.Equal(t, domain.RecommendationReview, response.Recommendation)
	assert.Equal(t, "corr-9", response.CorrelationID)
}

func TestFraudScoreHandler_ValidationError(t *testing.T) {
	router, mocks := setupClaimsRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing claim id", `{"policyId": "POL-1", "claimType": "Auto", "amount": 100, "location": "x", "incidentDate": "2026-08-20", "description": "d"}`},
		{"missing amount", `{"claimId": "CLM-1", "policyId": "POL-1", "claimType": "Auto", "location": "x", "incidentDate": "2026-08-20", "description": "d"}`},
		{"bad incident date", `{"claimId": "CLM-1", "policyId": "POL-1", "claimType": "Auto", "amount": 100, "location": "x", "incidentDate": "08/20/2026", "description": "d"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJSON(router, http.MethodPost, "/v1/claims/fraud-score", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		})
	}
	mocks.scorer.AssertNotCalled(t, "Score", mock.Anything, mock.Anything, mock.Anything)
}

func TestFraudScoreHandler_ZeroAmount(t *testing.T) {
	router, mocks := setupClaimsRouter(t)

	mocks.scorer.On("Score", mock.Anything, mock.MatchedBy(func(claim domain.Claim) bool {
		return claim.Amount == 0
	}), "").Return(domain.FraudAssessment{Recommendation: domain.RecommendationProceed})

	body := `{"claimId": "CLM-1", "policyId": "POL-1", "claimType": "Auto", "amount": 0, "location": "somewhere reasonable", "incidentDate": "2026-08-20", "description": "d"}`
	recorder := postJSON(router, http.MethodPost, "/v1/claims/fraud-score", body)

	require.Equal(t, http.StatusOK, recorder.Code)
	mocks.scorer.AssertExpectations(t)
}

func TestGeocodeHandler(t *testing.T) {
	router, mocks := setupClaimsRouter(t)

	lat, lon := 47.6062, -122.3321
	address := "400 Broad St, Seattle, WA 98109"
	mocks.geocode.On("Lookup", mock.Anything, "space needle").Return(&domain.GeocodeResult{
		Success:          true,
		Latitude:         &lat,
		Longitude:        &lon,
		FormattedAddress: &address,
		Confidence:       domain.ConfidenceHigh,
	}, nil)

	recorder := postJSON(router, http.MethodPost, "/v1/geocode", `{"address": "space needle"}`)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response domain.GeocodeResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.True(t, response.Success)
	require.NotNil(t, response.Latitude)
	assert.InDelta(t, 47.6062, *response.Latitude, 0.0001)
	assert.Equal(t, domain.ConfidenceHigh, response.Confidence)
}

func TestGeocodeHandler_MissingAddress(t *testing.T) {
	router, mocks := setupClaimsRouter(t)

	for _, body := range []string{`{}`, `{"address": "   "}`} {
		recorder := postJSON(router, http.MethodPost, "/v1/geocode", body)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.JSONEq(t, `{"success": false, "error": "Address is required"}`, recorder.Body.String())
	}
	mocks.geocode.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
}

func TestGeocodeHandler_NoResults(t *testing.T) {
	router, mocks := setupClaimsRouter(t)

	mocks.geocode.On("Lookup", mock.Anything, "nowhere").
		Return(&domain.GeocodeResult{Success: false, Error: "No results found"}, nil)

	recorder := postJSON(router, http.MethodPost, "/v1/geocode", `{"address": "nowhere"}`)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response domain.GeocodeResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, "No results found", response.Error)
}

func TestGeocodeHandler_UpstreamFailure(t *testing.T) {
	router, mocks := setupClaimsRouter(t)

	mocks.geocode.On("Lookup", mock.Anything, "somewhere").
		Return(nil, apperrors.New("maps search failed: status 503"))

	recorder := postJSON(router, http.MethodPost, "/v1/geocode", `{"address": "somewhere"}`)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"success": false, "error": "Geocoding service unavailable"}`, recorder.Body.String())
}

func TestGeocodeHandler_NotConfigured(t *testing.T) {
	router, mocks := setupClaimsRouter(t)

	mocks.geocode.On("Lookup", mock.Anything, "somewhere").
		Return(nil, apperrors.Wrap(apperrors.ErrUnavailable, "geocoding service not configured"))

	recorder := postJSON(router, http.MethodPost, "/v1/geocode", `{"address": "somewhere"}`)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"success": false, "error": "Geocoding service not configured"}`, recorder.Body.String())
}

func TestWeatherHandler(t *testing.T) {
	router, mocks := setupClaimsRouter(t)

	conditions := "Moderate Rain, High: 65 degF (19 degC), Low: 49 degF (9 degC), Wind: 21 mph, Precip: 0.49 in"
	mocks.weather.On("Lookup", mock.Anything, 47.6, -122.3, "2026-08-20").
		Return(&domain.WeatherResult{Success: true, Conditions: &conditions}, nil)

	body := `{"latitude": 47.6, "longitude": -122.3, "date": "2026-08-20"}`
	recorder := postJSON(router, http.MethodPost, "/v1/weather", body)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response domain.WeatherResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.True(t, response.Success)
	require.NotNil(t, response.Conditions)
	assert.Equal(t, conditions, *response.Conditions)
}

func TestWeatherHandler_MissingFields(t *testing.T) {
	router, mocks := setupClaimsRouter(t)

	tests := []string{
		`{}`,
		`{"latitude": 47.6, "date": "2026-08-20"}`,
		`{"latitude": 47.6, "longitude": -122.3}`,
	}
	for _, body := range tests {
		recorder := postJSON(router, http.MethodPost, "/v1/weather", body)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.JSONEq(t, `{"success": false, "error": "Latitude, longitude, and date are required"}`, recorder.Body.String())
	}
	mocks.weather.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWeatherHandler_InvalidInput(t *testing.T) {
	router, mocks := setupClaimsRouter(t)

	mocks.weather.On("Lookup", mock.Anything, 95.0, -122.3, "2026-08-20").
		Return(nil, apperrors.Wrap(apperrors.ErrInvalidInput, "Latitude must be between -90 and 90"))

	body := `{"latitude": 95, "longitude": -122.3, "date": "2026-08-20"}`
	recorder := postJSON(router, http.MethodPost, "/v1/weather", body)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"success": false, "error": "Latitude must be between -90 and 90"}`, recorder.Body.String())
}

func TestWeatherHandler_UpstreamFailure(t *testing.T) {
	router, mocks := setupClaimsRouter(t)

	mocks.weather.On("Lookup", mock.Anything, 47.6, -122.3, "2026-08-20").
		Return(nil, apperrors.New("weather archive failed: status 500"))

	body := `{"latitude": 47.6, "longitude": -122.3, "date": "2026-08-20"}`
	recorder := postJSON(router, http.MethodPost, "/v1/weather", body)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response domain.WeatherResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Contains(t, response.Error, "weather archive failed")
}

func TestEnrichHandler(t *testing.T) {
	router, mocks := setupClaimsRouter(t)

	lat, lon := 41.88, -87.63
	mocks.enricher.On("EnrichClaim", mock.Anything, "CLM-77").Return(&domain.Claim{
		ClaimID:           "CLM-77",
		Latitude:          &lat,
		Longitude:         &lon,
		WeatherConditions: "Clear Sky, High: 72 degF (22 degC), Low: 55 degF (13 degC), Wind: 8 mph, Precip: 0.00 in",
	}, nil)

	recorder := postJSON(router, http.MethodPost, "/v1/claims/CLM-77/enrich", "")

	require.Equal(t, http.StatusOK, recorder.Code)

	var response domain.Claim
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "CLM-77", response.ClaimID)
	assert.True(t, response.HasCoordinates())
	assert.NotEmpty(t, response.WeatherConditions)
}

func TestEnrichHandler_NotFound(t *testing.T) {
	router, mocks := setupClaimsRouter(t)

	mocks.enricher.On("EnrichClaim", mock.Anything, "CLM-404").
		Return(nil, apperrors.Wrapf(apperrors.ErrNotFound, "claim %q", "CLM-404"))

	recorder := postJSON(router, http.MethodPost, "/v1/claims/CLM-404/enrich", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestUpsertClaimHandler(t *testing.T) {
	router, mocks := setupClaimsRouter(t)

	mocks.store.On("UpdateClaim", mock.Anything, mock.MatchedBy(func(claim *domain.Claim) bool {
		return claim.ClaimID == "CLM-5" && claim.IncidentDate.Format("2006-01-02") == "2026-08-18"
	})).Return(nil)

	body := `{"claimId": "CLM-5", "policyId": "POL-5", "claimType": "Property", "amount": 1200, "location": "12 Pine Road, Lakeside", "incidentDate": "2026-08-18", "description": "hail damage"}`
	recorder := postJSON(router, http.MethodPut, "/v1/claims", body)

	require.Equal(t, http.StatusCreated, recorder.Code)
	mocks.store.AssertExpectations(t)
}

func TestUpsertClaimHandler_InvalidCoordinates(t *testing.T) {
	router, mocks := setupClaimsRouter(t)

	body := `{"claimId": "CLM-5", "policyId": "POL-5", "latitude": 123.0, "longitude": 10.0}`
	recorder := postJSON(router, http.MethodPut, "/v1/claims", body)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	mocks.store.AssertNotCalled(t, "UpdateClaim", mock.Anything, mock.Anything)
}
