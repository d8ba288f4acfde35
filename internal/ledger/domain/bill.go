package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/finledger/internal/entity"
)

// CreditCardBill is the closure of one (card, month) billing cycle.
type CreditCardBill struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	CreditCardID uuid.UUID
	Month        string
	Status       BillStatus
	PaidDate     *time.Time
	TotalAmount  decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Record converts b into a plaintext record.
func (b *CreditCardBill) Record() entity.Record {
	return entity.Record{
		"id":             b.ID,
		"user_id":        b.UserID,
		"credit_card_id": b.CreditCardID,
		"month":          b.Month,
		"status":         string(b.Status),
		"paid_date":      nullDate(b.PaidDate),
		"total_amount":   b.TotalAmount,
		"created_at":     b.CreatedAt,
		"updated_at":     b.UpdatedAt,
	}
}

// CreditCardBillFromRecord builds a bill from a decrypted record.
func CreditCardBillFromRecord(rec entity.Record) (*CreditCardBill, error) {
	var d decodeErrors
	b := &CreditCardBill{
		ID:           read(&d, rec.UUID, "id"),
		UserID:       read(&d, rec.UUID, "user_id"),
		CreditCardID: read(&d, rec.UUID, "credit_card_id"),
		Month:        read(&d, rec.Text, "month"),
		Status:       BillStatus(read(&d, rec.Text, "status")),
		PaidDate:     read(&d, rec.OptionalTime, "paid_date"),
		TotalAmount:  read(&d, rec.Decimal, "total_amount"),
		CreatedAt:    read(&d, rec.Time, "created_at"),
		UpdatedAt:    read(&d, rec.Time, "updated_at"),
	}
	if d.err != nil {
		return nil, fmt.Errorf("failed to decode credit card bill: %w", d.err)
	}
	return b, nil
}
