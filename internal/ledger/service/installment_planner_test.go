package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/finledger/internal/errors"
	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDueDates(t *testing.T) {
	tests := []struct {
		name       string
		purchase   time.Time
		closingDay int
		dueDay     int
		count      int
		want       []time.Time
	}{
		{
			name:       "purchase after closing goes to next bill",
			purchase:   date(2026, time.February, 12),
			closingDay: 1,
			dueDay:     8,
			count:      1,
			want:       []time.Time{date(2026, time.March, 8)},
		},
		{
			name:       "purchase before closing stays on current bill",
			purchase:   date(2026, time.February, 5),
			closingDay: 8,
			dueDay:     15,
			count:      2,
			want:       []time.Time{date(2026, time.February, 15), date(2026, time.March, 15)},
		},
		{
			name:       "purchase on closing day stays on current bill",
			purchase:   date(2026, time.March, 10),
			closingDay: 10,
			dueDay:     20,
			count:      1,
			want:       []time.Time{date(2026, time.March, 20)},
		},
		{
			name:       "due day clamped to month end",
			purchase:   date(2026, time.January, 2),
			closingDay: 5,
			dueDay:     31,
			count:      3,
			want: []time.Time{
				date(2026, time.January, 31),
				date(2026, time.February, 28),
				date(2026, time.March, 31),
			},
		},
		{
			name:       "crosses year boundary",
			purchase:   date(2026, time.November, 20),
			closingDay: 15,
			dueDay:     5,
			count:      3,
			want: []time.Time{
				date(2026, time.December, 5),
				date(2027, time.January, 5),
				date(2027, time.February, 5),
			},
		},
		{
			name:       "leap year february",
			purchase:   date(2028, time.February, 1),
			closingDay: 3,
			dueDay:     30,
			count:      1,
			want:       []time.Time{date(2028, time.February, 29)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DueDates(tt.purchase, tt.closingDay, tt.dueDay, tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDueDates_TimeOfDayIgnored(t *testing.T) {
	got, err := DueDates(time.Date(2026, time.February, 12, 23, 59, 0, 0, time.UTC), 12, 20, 1)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(2026, time.February, 20)}, got)
}

func TestDueDates_Invalid(t *testing.T) {
	purchase := date(2026, time.February, 12)

	_, err := DueDates(purchase, 1, 8, 0)
	assert.ErrorIs(t, err, ledgerDomain.ErrInvalidInstallmentCount)

	_, err = DueDates(purchase, 0, 8, 1)
	assert.ErrorIs(t, err, ledgerDomain.ErrInvalidDayOfMonth)

	_, err = DueDates(purchase, 1, 32, 1)
	assert.ErrorIs(t, err, ledgerDomain.ErrInvalidDayOfMonth)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestNextBillMonth(t *testing.T) {
	tests := []struct {
		name   string
		today  time.Time
		dueDay int
		want   string
	}{
		{"before due day", date(2026, time.March, 5), 8, "2026-03"},
		{"on due day", date(2026, time.March, 8), 8, "2026-03"},
		{"after due day", date(2026, time.March, 9), 8, "2026-04"},
		{"december rolls over", date(2026, time.December, 20), 10, "2027-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextBillMonth(tt.today, tt.dueDay)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := NextBillMonth(date(2026, time.March, 9), 40)
	assert.ErrorIs(t, err, ledgerDomain.ErrInvalidDayOfMonth)
}

func TestSplitAmounts(t *testing.T) {
	tests := []struct {
		total string
		count int
		want  []string
	}{
		{"100", 3, []string{"33.33", "33.33", "33.34"}},
		{"300", 3, []string{"100", "100", "100"}},
		{"10", 1, []string{"10"}},
		{"0.05", 2, []string{"0.02", "0.03"}},
		{"1000.01", 4, []string{"250", "250", "250", "250.01"}},
	}

	for _, tt := range tests {
		t.Run(tt.total, func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)
			got, err := SplitAmounts(total, tt.count)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))

			sum := decimal.Zero
			for i, part := range got {
				assert.True(t, decimal.RequireFromString(tt.want[i]).Equal(part), "part %d = %s", i, part)
				sum = sum.Add(part)
			}
			assert.True(t, total.Equal(sum))
		})
	}
}

func TestSplitAmounts_Invalid(t *testing.T) {
	_, err := SplitAmounts(decimal.NewFromInt(100), 0)
	assert.ErrorIs(t, err, ledgerDomain.ErrInvalidInstallmentCount)

	_, err = SplitAmounts(decimal.Zero, 2)
	assert.ErrorIs(t, err, ledgerDomain.ErrInvalidAmount)

	_, err = SplitAmounts(decimal.NewFromInt(-5), 2)
	assert.ErrorIs(t, err, ledgerDomain.ErrInvalidAmount)

	_, err = SplitAmounts(decimal.RequireFromString("0.02"), 3)
	assert.ErrorIs(t, err, ledgerDomain.ErrInvalidAmount)

	_, err = SplitAmounts(decimal.RequireFromString("10.005"), 2)
	assert.ErrorIs(t, err, ledgerDomain.ErrAmountPrecision)
}

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange("2028-02")
	require.NoError(t, err)
	assert.Equal(t, date(2028, time.February, 1), start)
	assert.Equal(t, date(2028, time.February, 29), end)

	_, _, err = MonthRange("2028-13")
	assert.ErrorIs(t, err, ledgerDomain.ErrInvalidMonth)

	_, _, err = MonthRange("02/2028")
	assert.ErrorIs(t, err, ledgerDomain.ErrInvalidMonth)
}

func TestClampDay(t *testing.T) {
	assert.Equal(t, date(2026, time.April, 30), ClampDay(2026, time.April, 31))
	assert.Equal(t, date(2026, time.April, 15), ClampDay(2026, time.April, 15))
	assert.Equal(t, "2026-04", MonthOf(ClampDay(2026, time.April, 31)))
}
