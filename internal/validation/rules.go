// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	apperrors "github.com/apexclaims/feedback/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// ISODate validates that a string is a calendar date in YYYY-MM-DD form.
// Timestamps are accepted and reduced to their date part.
var ISODate = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := time.Parse("2006-01-02", DatePart(s))
		return err == nil
	},
	validation.NewError("validation_iso_date", "must be a date in YYYY-MM-DD format"),
)

// DatePart strips the time portion from an ISO timestamp, returning the
// YYYY-MM-DD prefix unchanged for plain dates.
func DatePart(s string) string {
	if idx := strings.Index(s, "T"); idx >= 0 {
		return s[:idx]
	}
	return s
}

// Latitude validates that a float is a valid latitude.
var Latitude = validation.By(func(value interface{}) error {
	v, ok := floatValue(value)
	if !ok || v < -90 || v > 90 {
		return validation.NewError("validation_latitude", "must be between -90 and 90")
	}
	return nil
})

// Longitude validates that a float is a valid longitude.
var Longitude = validation.By(func(value interface{}) error {
	v, ok := floatValue(value)
	if !ok || v < -180 || v > 180 {
		return validation.NewError("validation_longitude", "must be between -180 and 180")
	}
	return nil
})

func floatValue(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case *float64:
		if v == nil {
			return 0, true
		}
		return *v, true
	default:
		return 0, false
	}
}
