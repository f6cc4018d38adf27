// Package domain defines the claims-side entities: the claim record enriched
// by geocoding and weather lookups, the lookup result contracts, and the
// rule-based fraud assessment.
package domain

import (
	"time"
)

// Claim is an insurance claim record. Latitude and Longitude are nil when the
// incident location has not been geocoded.
type Claim struct {
	ClaimID           string    `json:"claimId"`
	PolicyID          string    `json:"policyId"`
	ClaimType         string    `json:"claimType"`
	Amount            float64   `json:"amount"`
	Location          string    `json:"location"`
	IncidentDate      time.Time `json:"incidentDate"`
	SubmissionDate    time.Time `json:"submissionDate,omitempty"`
	Description       string    `json:"description"`
	Latitude          *float64  `json:"latitude"`
	Longitude         *float64  `json:"longitude"`
	FormattedAddress  string    `json:"formattedAddress,omitempty"`
	WeatherConditions string    `json:"weatherConditions,omitempty"`
}

// HasCoordinates reports whether the claim carries a geocoded position.
func (c *Claim) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// GeocodeConfidence grades how well a geocoder matched an address.
type GeocodeConfidence string

const (
	ConfidenceHigh    GeocodeConfidence = "High"
	ConfidenceMedium  GeocodeConfidence = "Medium"
	ConfidenceLow     GeocodeConfidence = "Low"
	ConfidenceVeryLow GeocodeConfidence = "VeryLow"
)

// ConfidenceFromScore maps a geocoder match score onto the confidence grade.
func ConfidenceFromScore(score float64) GeocodeConfidence {
	switch {
	case score >= 9.0:
		return ConfidenceHigh
	case score >= 7.0:
		return ConfidenceMedium
	case score >= 5.0:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// GeocodeResult is the geocoding lookup contract. A nil result at the caller
// means total failure: preserve previous claim state, do not overwrite.
type GeocodeResult struct {
	Success          bool              `json:"success"`
	Latitude         *float64          `json:"latitude"`
	Longitude        *float64          `json:"longitude"`
	FormattedAddress *string           `json:"formattedAddress"`
	Confidence       GeocodeConfidence `json:"confidence,omitempty"`
	Error            string            `json:"error,omitempty"`
}

// WeatherResult is the historical weather lookup contract. Conditions is nil
// when no weather data was available for the requested date.
type WeatherResult struct {
	Success    bool            `json:"success"`
	Conditions *string         `json:"conditions"`
	Details    *WeatherDetails `json:"details,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// WeatherDetails carries the per-day figures behind the conditions summary,
// in both metric and imperial units.
type WeatherDetails struct {
	WeatherCode        int     `json:"weatherCode"`
	WeatherDescription string  `json:"weatherDescription"`
	TemperatureMaxC    int     `json:"temperatureMaxC"`
	TemperatureMinC    int     `json:"temperatureMinC"`
	TemperatureMaxF    int     `json:"temperatureMaxF"`
	TemperatureMinF    int     `json:"temperatureMinF"`
	PrecipitationMm    float64 `json:"precipitationMm"`
	PrecipitationIn    float64 `json:"precipitationIn"`
	WindSpeedKmh       int     `json:"windSpeedKmh"`
	WindSpeedMph       int     `json:"windSpeedMph"`
}
