package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexclaims/feedback/internal/claims/domain"
	"github.com/apexclaims/feedback/internal/metrics"
)

func TestFraudScorerScore(t *testing.T) {
	scorer := NewFraudScorer(metrics.NewNoOpBusinessMetrics(), testLogger())

	claim := domain.Claim{
		ClaimID:        "claim-001",
		PolicyID:       "policy-001",
		ClaimType:      "Auto",
		Amount:         60000,
		Location:       "Mile 42, Interstate 80, Nebraska",
		IncidentDate:   time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
		SubmissionDate: time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC),
		Description:    "Vehicle totaled.",
	}

	assessment := scorer.Score(context.Background(), claim, "corr-123")

	assert.Equal(t, "corr-123", assessment.CorrelationID)
	assert.NotEmpty(t, assessment.AssessmentID)
	assert.False(t, assessment.Timestamp.IsZero())
	assert.Greater(t, assessment.RiskScore, 60)
	assert.Equal(t, domain.RecommendationInvestigate, assessment.Recommendation)
	assert.Contains(t, assessment.RiskFactors, "High claim amount")
	assert.Contains(t, assessment.RiskFactors, "Weekend incident")
}

func TestFraudScorerScore_GeneratesCorrelationID(t *testing.T) {
	scorer := NewFraudScorer(metrics.NewNoOpBusinessMetrics(), testLogger())

	assessment := scorer.Score(context.Background(), domain.Claim{
		ClaimID:      "claim-002",
		ClaimType:    "Home",
		Amount:       500,
		Location:     "123 Main Street, Springfield, IL",
		IncidentDate: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
		Description:  "Minor roof damage after a storm, photos and contractor estimate are attached here.",
	}, "")

	require.NotEmpty(t, assessment.CorrelationID)
	_, err := uuid.Parse(assessment.CorrelationID)
	assert.NoError(t, err)
}
