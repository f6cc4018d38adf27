// Package dto provides data transfer objects for the claims HTTP endpoints.
package dto

import (
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/apexclaims/feedback/internal/claims/domain"
	customValidation "github.com/apexclaims/feedback/internal/validation"
)

// FraudScoreRequest carries a claim submitted for fraud assessment.
// SubmissionDate is optional; a missing one defaults to the assessment time.
type FraudScoreRequest struct {
	ClaimID        string   `json:"claimId"`
	PolicyID       string   `json:"policyId"`
	ClaimType      string   `json:"claimType"`
	Amount         *float64 `json:"amount"`
	Location       string   `json:"location"`
	IncidentDate   string   `json:"incidentDate"`
	SubmissionDate string   `json:"submissionDate"`
	Description    string   `json:"description"`
}

// Validate checks if the fraud score request is valid.
func (r *FraudScoreRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ClaimID, validation.Required, customValidation.NotBlank),
		validation.Field(&r.PolicyID, validation.Required, customValidation.NotBlank),
		validation.Field(&r.ClaimType, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Amount, validation.NotNil),
		validation.Field(&r.Location, validation.Required),
		validation.Field(&r.IncidentDate, validation.Required, customValidation.ISODate),
		validation.Field(&r.SubmissionDate, customValidation.ISODate),
		validation.Field(&r.Description, validation.Required),
	)
}

// ToDomain converts the request to a domain claim.
func (r *FraudScoreRequest) ToDomain() domain.Claim {
	claim := domain.Claim{
		ClaimID:     r.ClaimID,
		PolicyID:    r.PolicyID,
		ClaimType:   r.ClaimType,
		Location:    r.Location,
		Description: r.Description,
	}
	if r.Amount != nil {
		claim.Amount = *r.Amount
	}
	claim.IncidentDate = parseDate(r.IncidentDate)
	claim.SubmissionDate = parseDate(r.SubmissionDate)
	return claim
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	parsed, err := time.Parse("2006-01-02", customValidation.DatePart(s))
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// GeocodeRequest carries a free-text address to geocode.
type GeocodeRequest struct {
	Address string `json:"address"`
}

// Valid reports whether the request carries a usable address.
func (r *GeocodeRequest) Valid() bool {
	return strings.TrimSpace(r.Address) != ""
}

// WeatherRequest carries coordinates and a calendar date for a historical
// weather lookup. Coordinates are pointers so a missing field can be told
// apart from zero.
type WeatherRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Date      string   `json:"date"`
}

// Complete reports whether every required field is present. Range and format
// checks are left to the lookup so its messages reach the caller unchanged.
func (r *WeatherRequest) Complete() bool {
	return r.Latitude != nil && r.Longitude != nil && r.Date != ""
}

// UpsertClaimRequest carries a claim record to store for later enrichment.
type UpsertClaimRequest struct {
	ClaimID      string   `json:"claimId"`
	PolicyID     string   `json:"policyId"`
	ClaimType    string   `json:"claimType"`
	Amount       float64  `json:"amount"`
	Location     string   `json:"location"`
	IncidentDate string   `json:"incidentDate"`
	Description  string   `json:"description"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// Validate checks if the upsert claim request is valid.
func (r *UpsertClaimRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ClaimID, validation.Required, customValidation.NotBlank),
		validation.Field(&r.PolicyID, validation.Required, customValidation.NotBlank),
		validation.Field(&r.IncidentDate, customValidation.ISODate),
		validation.Field(&r.Latitude, customValidation.Latitude),
		validation.Field(&r.Longitude, customValidation.Longitude),
	)
}

// ToDomain converts the request to a domain claim.
func (r *UpsertClaimRequest) ToDomain() domain.Claim {
	return domain.Claim{
		ClaimID:      r.ClaimID,
		PolicyID:     r.PolicyID,
		ClaimType:    r.ClaimType,
		Amount:       r.Amount,
		Location:     r.Location,
		IncidentDate: parseDate(r.IncidentDate),
		Description:  r.Description,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
	}
}
