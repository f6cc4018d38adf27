package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/apexclaims/feedback/internal/claims/domain"
	"github.com/apexclaims/feedback/internal/metrics"
)

// FraudScorer produces rule-based fraud assessments for claims.
type FraudScorer struct {
	business metrics.BusinessMetrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewFraudScorer creates a FraudScorer.
func NewFraudScorer(business metrics.BusinessMetrics, logger *slog.Logger) *FraudScorer {
	return &FraudScorer{
		business: business,
		logger:   logger,
		now:      time.Now,
	}
}

// Score assesses one claim. The correlation ID is taken from the caller when
// set, otherwise generated, so assessments can be traced across systems.
func (s *FraudScorer) Score(ctx context.Context, claim domain.Claim, correlationID string) domain.FraudAssessment {
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	score, factors, recommendation := domain.ScoreClaim(claim, s.now())

	if s.business != nil {
		s.business.RecordOperation(ctx, "claims", "fraud_score", string(recommendation))
	}
	if s.logger != nil {
		s.logger.Info("claim scored",
			slog.String("claim_id", claim.ClaimID),
			slog.Int("risk_score", score),
			slog.String("recommendation", string(recommendation)),
			slog.String("correlation_id", correlationID),
		)
	}

	return domain.FraudAssessment{
		RiskScore:      score,
		RiskFactors:    factors,
		Recommendation: recommendation,
		AssessmentID:   uuid.NewString(),
		CorrelationID:  correlationID,
		Timestamp:      s.now().UTC(),
	}
}
