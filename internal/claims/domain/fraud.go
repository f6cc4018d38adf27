package domain

import (
	"strings"
	"time"
)

// Recommendation is the triage outcome of a fraud assessment.
type Recommendation string

const (
	RecommendationProceed     Recommendation = "Proceed"
	RecommendationReview      Recommendation = "Review"
	RecommendationInvestigate Recommendation = "Investigate"
)

// FraudAssessment is the result of scoring one claim.
type FraudAssessment struct {
	RiskScore      int            `json:"riskScore"`
	RiskFactors    []string       `json:"riskFactors"`
	Recommendation Recommendation `json:"recommendation"`
	AssessmentID   string         `json:"assessmentId"`
	CorrelationID  string         `json:"correlationId"`
	Timestamp      time.Time      `json:"timestamp"`
}

const baseRiskScore = 15

// ScoreClaim computes the rule-based risk score and its named factors. The
// reference date for submission-delay rules is the claim's submission date
// when set, otherwise now. Scores are clamped to [0, 100]; some rules adjust
// the score without contributing a named factor.
func ScoreClaim(claim Claim, now time.Time) (int, []string, Recommendation) {
	score := baseRiskScore
	factors := []string{}

	reference := claim.SubmissionDate
	if reference.IsZero() {
		reference = now
	}
	daysSinceIncident := int(reference.Sub(claim.IncidentDate).Hours() / 24)

	switch {
	case claim.Amount > 50000:
		score += 25
		factors = append(factors, "High claim amount")
	case claim.Amount > 20000:
		score += 15
		factors = append(factors, "Elevated claim amount")
	case claim.Amount > 10000:
		score += 5
	}

	if weekday := claim.IncidentDate.Weekday(); weekday == time.Sunday || weekday == time.Saturday {
		score += 10
		factors = append(factors, "Weekend incident")
	}
	if daysSinceIncident >= 0 && daysSinceIncident <= 1 {
		score += 8
		factors = append(factors, "Rapid claim submission")
	}
	if daysSinceIncident > 30 {
		score += 12
		factors = append(factors, "Delayed reporting")
	}

	location := strings.ToLower(claim.Location)
	if claim.ClaimType == "Auto" && (strings.Contains(location, "highway") || strings.Contains(location, "interstate")) {
		score += 5
	}
	if len(claim.Location) < 15 {
		score += 10
		factors = append(factors, "Vague location details")
	}

	description := strings.ToLower(claim.Description)
	if len(claim.Description) < 50 {
		score += 15
		factors = append(factors, "Minimal incident description")
	}
	if strings.Contains(description, "total loss") || strings.Contains(description, "totaled") {
		score += 10
		factors = append(factors, "Total loss claim")
	}
	if strings.Contains(description, "witness") || strings.Contains(description, "police report") {
		score -= 10
	}

	if claim.ClaimType == "Commercial" {
		score += 5
	}
	if claim.ClaimType == "Auto" && claim.Amount > 30000 {
		score += 8
		factors = append(factors, "High-value auto claim")
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score, factors, deriveRecommendation(score)
}

func deriveRecommendation(score int) Recommendation {
	switch {
	case score <= 30:
		return RecommendationProceed
	case score <= 60:
		return RecommendationReview
	default:
		return RecommendationInvestigate
	}
}
