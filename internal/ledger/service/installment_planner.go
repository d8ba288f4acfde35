// Package service holds the pure calendar and money arithmetic of the ledger: installment
// due dates, bill months and amount splitting.
package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
)

// DueDates returns the due date of each installment of a card purchase. A purchase made
// after the closing day falls on the following bill. Due days past the end of a month are
// moved to the month's last day.
func DueDates(purchase time.Time, closingDay, dueDay, count int) ([]time.Time, error) {
	if count < 1 {
		return nil, ledgerDomain.ErrInvalidInstallmentCount
	}
	if err := checkDay(closingDay); err != nil {
		return nil, err
	}
	if err := checkDay(dueDay); err != nil {
		return nil, err
	}

	purchase = ledgerDomain.DateOf(purchase)
	offset := 0
	if purchase.Day() > closingDay {
		offset = 1
	}

	dates := make([]time.Time, count)
	for i := range count {
		year, month := addMonths(purchase.Year(), purchase.Month(), offset+i)
		dates[i] = ClampDay(year, month, dueDay)
	}
	return dates, nil
}

// NextBillMonth returns the "YYYY-MM" month of the next bill to be paid: the current month
// until its due day has passed, the following month afterwards.
func NextBillMonth(today time.Time, dueDay int) (string, error) {
	if err := checkDay(dueDay); err != nil {
		return "", err
	}

	today = ledgerDomain.DateOf(today)
	year, month := today.Year(), today.Month()
	if today.Day() > dueDay {
		year, month = addMonths(year, month, 1)
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format(ledgerDomain.MonthLayout), nil
}

// SplitAmounts divides total into count installments. Every installment but the last is
// total/count floored to cents; the last absorbs the remainder so the parts sum to total.
// Every part must be at least one cent.
func SplitAmounts(total decimal.Decimal, count int) ([]decimal.Decimal, error) {
	if count < 1 {
		return nil, ledgerDomain.ErrInvalidInstallmentCount
	}
	if !total.IsPositive() {
		return nil, ledgerDomain.ErrInvalidAmount
	}
	if !ledgerDomain.WholeCents(total) {
		return nil, ledgerDomain.ErrAmountPrecision
	}

	base := total.Div(decimal.NewFromInt(int64(count))).RoundFloor(ledgerDomain.CentPlaces)
	if !base.IsPositive() {
		return nil, fmt.Errorf("%w: %s cannot be split into %d installments", ledgerDomain.ErrInvalidAmount, total, count)
	}
	parts := make([]decimal.Decimal, count)
	sum := decimal.Zero
	for i := range count - 1 {
		parts[i] = base
		sum = sum.Add(base)
	}
	parts[count-1] = total.Sub(sum)
	return parts, nil
}

// MonthRange returns the first and last day of a "YYYY-MM" month.
func MonthRange(month string) (time.Time, time.Time, error) {
	start, err := time.Parse(ledgerDomain.MonthLayout, month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ledgerDomain.ErrInvalidMonth, month)
	}
	end := start.AddDate(0, 1, -1)
	return start, end, nil
}

// ClampDay returns day of the given month, or the month's last day when day exceeds it.
func ClampDay(year int, month time.Month, day int) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return time.Date(year, month, min(day, last), 0, 0, 0, 0, time.UTC)
}

// MonthOf formats the month of t as "YYYY-MM".
func MonthOf(t time.Time) string {
	return t.UTC().Format(ledgerDomain.MonthLayout)
}

func addMonths(year int, month time.Month, n int) (int, time.Month) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return first.Year(), first.Month()
}

func checkDay(day int) error {
	if day < 1 || day > 31 {
		return fmt.Errorf("%w: got %d", ledgerDomain.ErrInvalidDayOfMonth, day)
	}
	return nil
}
