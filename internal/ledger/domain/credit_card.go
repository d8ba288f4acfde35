package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/finledger/internal/entity"
)

// CreditCard holds the cached bill of planned transactions routed to it. CreditLimit and
// CurrentBill are stored encrypted; CurrentBill never goes below zero.
type CreditCard struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	CreditLimit decimal.Decimal
	CurrentBill decimal.Decimal
	DueDay      int
	ClosingDay  int
	Color       *string
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Record converts c into a plaintext record.
func (c *CreditCard) Record() entity.Record {
	return entity.Record{
		"id":           c.ID,
		"user_id":      c.UserID,
		"name":         c.Name,
		"credit_limit": c.CreditLimit,
		"current_bill": c.CurrentBill,
		"due_day":      c.DueDay,
		"closing_day":  c.ClosingDay,
		"color":        nullString(c.Color),
		"version":      c.Version,
		"created_at":   c.CreatedAt,
		"updated_at":   c.UpdatedAt,
	}
}

// AvailableLimit is the credit limit left after the current bill.
func (c *CreditCard) AvailableLimit() decimal.Decimal {
	return c.CreditLimit.Sub(c.CurrentBill)
}

// CreditCardFromRecord builds a card from a decrypted record.
func CreditCardFromRecord(rec entity.Record) (*CreditCard, error) {
	var d decodeErrors
	c := &CreditCard{
		ID:          read(&d, rec.UUID, "id"),
		UserID:      read(&d, rec.UUID, "user_id"),
		Name:        read(&d, rec.Text, "name"),
		CreditLimit: read(&d, rec.Decimal, "credit_limit"),
		CurrentBill: read(&d, rec.Decimal, "current_bill"),
		DueDay:      read(&d, rec.Int, "due_day"),
		ClosingDay:  read(&d, rec.Int, "closing_day"),
		Color:       read(&d, rec.OptionalText, "color"),
		Version:     read(&d, rec.Int64, "version"),
		CreatedAt:   read(&d, rec.Time, "created_at"),
		UpdatedAt:   read(&d, rec.Time, "updated_at"),
	}
	if d.err != nil {
		return nil, fmt.Errorf("failed to decode credit card: %w", d.err)
	}
	return c, nil
}
