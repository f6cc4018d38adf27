// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/apexclaims/feedback/internal/feedback/domain"
	customValidation "github.com/apexclaims/feedback/internal/validation"
)

// ProcessFeedbackRequest contains an incoming feedback item for enrichment.
// FeedbackID is optional; a missing one is assigned on conversion.
type ProcessFeedbackRequest struct {
	FeedbackID   string    `json:"feedbackId"`
	CustomerName string    `json:"customerName"`
	FeedbackText string    `json:"feedbackText"`
	Source       string    `json:"source"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// Validate checks if the process feedback request is valid.
func (r *ProcessFeedbackRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CustomerName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 200),
		),
		validation.Field(&r.FeedbackText,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 10000),
		),
	)
}

// ToDomain converts the request to a domain feedback item, assigning an ID
// and submission time when absent.
func (r *ProcessFeedbackRequest) ToDomain() domain.FeedbackItem {
	item := domain.FeedbackItem{
		FeedbackID:   r.FeedbackID,
		CustomerName: r.CustomerName,
		FeedbackText: r.FeedbackText,
		Source:       r.Source,
		SubmittedAt:  r.SubmittedAt,
	}
	if item.FeedbackID == "" {
		item.FeedbackID = uuid.NewString()
	}
	if item.SubmittedAt.IsZero() {
		item.SubmittedAt = time.Now().UTC()
	}
	return item
}
