package validation

import (
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/finledger/internal/errors"
)

func TestNoWhitespace(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{
			name:      "no whitespace",
			input:     "Mercado",
			shouldErr: false,
		},
		{
			name:      "leading whitespace",
			input:     " Mercado",
			shouldErr: true,
		},
		{
			name:      "trailing whitespace",
			input:     "Mercado ",
			shouldErr: true,
		},
		{
			name:      "internal spaces allowed",
			input:     "Conta Corrente",
			shouldErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NoWhitespace.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotBlank(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{
			name:      "valid string",
			input:     "Aluguel",
			shouldErr: false,
		},
		{
			name:      "only spaces",
			input:     "   ",
			shouldErr: true,
		},
		{
			name:      "mixed whitespace",
			input:     " \t\n ",
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NotBlank.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMonth(t *testing.T) {
	for _, valid := range []string{"2026-01", "2026-12", "1999-07", ""} {
		assert.NoError(t, Month.Validate(valid), valid)
	}
	for _, invalid := range []string{"2026-13", "2026-00", "2026-1", "26-01", "2026/01", "2026-01-01"} {
		err := Month.Validate(invalid)
		require.Error(t, err, invalid)
		assert.Contains(t, err.Error(), "YYYY-MM")
	}
}

func TestDate(t *testing.T) {
	assert.NoError(t, Date.Validate("2026-02-28"))
	assert.NoError(t, Date.Validate(""))
	assert.Error(t, Date.Validate("2026-02-30"))
	assert.Error(t, Date.Validate("12/02/2026"))
}

func TestUUID(t *testing.T) {
	assert.NoError(t, UUID.Validate("0195d6a1-5c7e-7b6a-9a4e-2f1d3c4b5a69"))
	assert.Error(t, UUID.Validate("not-a-uuid"))
}

func TestDecimalRules(t *testing.T) {
	tests := []struct {
		name        string
		rule        validation.Rule
		value       interface{}
		shouldErr   bool
		errContains string
	}{
		{
			name:  "positive accepts cents",
			rule:  PositiveDecimal,
			value: decimal.RequireFromString("0.01"),
		},
		{
			name:        "positive rejects zero",
			rule:        PositiveDecimal,
			value:       decimal.Zero,
			shouldErr:   true,
			errContains: "greater than zero",
		},
		{
			name:  "non negative accepts zero",
			rule:  NonNegativeDecimal,
			value: decimal.Zero,
		},
		{
			name:  "non negative accepts nil pointer",
			rule:  NonNegativeDecimal,
			value: (*decimal.Decimal)(nil),
		},
		{
			name:        "non negative rejects negatives",
			rule:        NonNegativeDecimal,
			value:       decimal.RequireFromString("-10"),
			shouldErr:   true,
			errContains: "negative",
		},
		{
			name:        "positive rejects fractions of a cent",
			rule:        PositiveDecimal,
			value:       decimal.RequireFromString("10.005"),
			shouldErr:   true,
			errContains: "two decimal places",
		},
		{
			name:        "non negative rejects fractions of a cent",
			rule:        NonNegativeDecimal,
			value:       decimal.RequireFromString("0.001"),
			shouldErr:   true,
			errContains: "two decimal places",
		},
		{
			name:        "wrong type",
			rule:        PositiveDecimal,
			value:       "10.00",
			shouldErr:   true,
			errContains: "decimal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate(tt.value)
			if tt.shouldErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOneOf(t *testing.T) {
	type status string
	rule := OneOf[status]("planned", "completed")

	assert.NoError(t, rule.Validate(status("planned")))
	assert.Error(t, rule.Validate(status("cancelled")))
}

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(assert.AnError)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "invalid input")
}
