// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
	"github.com/shopspring/decimal"

	apperrors "github.com/allisson/finledger/internal/errors"
)

var (
	// monthRegex matches a calendar month in YYYY-MM form
	monthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Month validates a YYYY-MM month string
var Month = validation.NewStringRuleWithError(
	monthRegex.MatchString,
	validation.NewError("validation_month", "must be a month in YYYY-MM format"),
)

// Date validates a YYYY-MM-DD calendar date string
var Date = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := time.Parse(time.DateOnly, s)
		return err == nil
	},
	validation.NewError("validation_date", "must be a date in YYYY-MM-DD format"),
)

// UUID validates a canonical UUID string
var UUID = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := uuid.Parse(s)
		return err == nil
	},
	validation.NewError("validation_uuid", "must be a valid UUID"),
)

// PositiveDecimal validates that a decimal amount is greater than zero
var PositiveDecimal = validation.By(func(value interface{}) error {
	d, ok := decimalValue(value)
	if !ok {
		return validation.NewError("validation_decimal_type", "must be a decimal")
	}
	if !d.IsPositive() {
		return validation.NewError("validation_decimal_positive", "must be greater than zero")
	}
	return checkCents(d)
})

// NonNegativeDecimal validates that a decimal amount is zero or greater
var NonNegativeDecimal = validation.By(func(value interface{}) error {
	d, ok := decimalValue(value)
	if !ok {
		return validation.NewError("validation_decimal_type", "must be a decimal")
	}
	if d.IsNegative() {
		return validation.NewError("validation_decimal_non_negative", "must not be negative")
	}
	return checkCents(d)
})

// OneOf validates that a string-based enum value is one of allowed
func OneOf[T ~string](allowed ...T) validation.Rule {
	values := make([]interface{}, len(allowed))
	for i, v := range allowed {
		values[i] = v
	}
	return validation.In(values...).Error("must be one of the supported values")
}

// checkCents rejects amounts with digits past the cent.
func checkCents(d decimal.Decimal) error {
	if !d.Equal(d.Truncate(2)) {
		return validation.NewError("validation_decimal_cents", "must not have more than two decimal places")
	}
	return nil
}

func decimalValue(value interface{}) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, true
		}
		return *v, true
	}
	return decimal.Zero, false
}
