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

	apperrors "github.com/apexclaims/feedback/internal/errors"
	"github.com/apexclaims/feedback/internal/feedback/domain"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, item domain.FeedbackItem) (*domain.EnrichedFeedback, error) {
	args := m.Called(ctx, item)
	enriched, _ := args.Get(0).(*domain.EnrichedFeedback)
	return enriched, args.Error(1)
}

func setupRouter(processor *mockProcessor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewFeedbackHandler(processor, logger)

	router := gin.New()
	router.POST("/v1/feedback", handler.ProcessHandler)
	return router
}

func TestProcessHandler(t *testing.T) {
	processor := &mockProcessor{}
	router := setupRouter(processor)

	enriched := &domain.EnrichedFeedback{
		FeedbackItem: domain.FeedbackItem{
			FeedbackID:   "fb-001",
			CustomerName: "Alice",
			FeedbackText: "great service",
		},
		SentimentCategory: domain.SentimentPositive,
		Priority:          domain.PriorityLow,
	}
	processor.On("Process", mock.Anything, mock.MatchedBy(func(item domain.FeedbackItem) bool {
		return item.FeedbackID == "fb-001" && item.CustomerName == "Alice"
	})).Return(enriched, nil)

	body := `{"feedbackId": "fb-001", "customerName": "Alice", "feedbackText": "great service"}`
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/v1/feedback", bytes.NewBufferString(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response domain.EnrichedFeedback
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "fb-001", response.FeedbackID)
	assert.Equal(t, domain.SentimentPositive, response.SentimentCategory)
	assert.Equal(t, domain.PriorityLow, response.Priority)
}

func TestProcessHandler_AssignsFeedbackID(t *testing.T) {
	processor := &mockProcessor{}
	router := setupRouter(processor)

	processor.On("Process", mock.Anything, mock.MatchedBy(func(item domain.FeedbackItem) bool {
		return item.FeedbackID != "" && !item.SubmittedAt.IsZero()
	})).Return(&domain.EnrichedFeedback{}, nil)

	body := `{"customerName": "Alice", "feedbackText": "great service"}`
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/v1/feedback", bytes.NewBufferString(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	processor.AssertExpectations(t)
}

func TestProcessHandler_InvalidJSON(t *testing.T) {
	processor := &mockProcessor{}
	router := setupRouter(processor)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/v1/feedback", bytes.NewBufferString("{not json"))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestProcessHandler_ValidationError(t *testing.T) {
	processor := &mockProcessor{}
	router := setupRouter(processor)

	tests := []struct {
		name string
		body string
	}{
		{"missing customer name", `{"feedbackText": "great"}`},
		{"blank feedback text", `{"customerName": "Alice", "feedbackText": "   "}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodPost, "/v1/feedback", bytes.NewBufferString(tt.body))
			request.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		})
	}
	processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestProcessHandler_PublishFailure(t *testing.T) {
	processor := &mockProcessor{}
	router := setupRouter(processor)

	processor.On("Process", mock.Anything, mock.Anything).
		Return(nil, apperrors.Wrap(apperrors.ErrUnavailable, "publish analyzed feedback"))

	body := `{"customerName": "Alice", "feedbackText": "great service"}`
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/v1/feedback", bytes.NewBufferString(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}
