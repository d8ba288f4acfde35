package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/finledger/internal/entity"
)

// RecurringTemplate repeats a transaction every month on DayOfMonth until EndDate.
// Amount and Description are stored encrypted.
type RecurringTemplate struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Description   string
	Amount        decimal.Decimal
	Type          TransactionType
	Category      *Category
	DayOfMonth    int
	EndDate       time.Time
	PaymentMethod *PaymentMethod
	BankAccountID *uuid.UUID
	CreditCardID  *uuid.UUID
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Record converts r into a plaintext record.
func (r *RecurringTemplate) Record() entity.Record {
	return entity.Record{
		"id":              r.ID,
		"user_id":         r.UserID,
		"description":     r.Description,
		"amount":          r.Amount,
		"type":            string(r.Type),
		"category":        nullString(r.Category),
		"day_of_month":    r.DayOfMonth,
		"end_date":        DateOf(r.EndDate),
		"payment_method":  nullString(r.PaymentMethod),
		"bank_account_id": nullUUID(r.BankAccountID),
		"credit_card_id":  nullUUID(r.CreditCardID),
		"is_active":       r.IsActive,
		"created_at":      r.CreatedAt,
		"updated_at":      r.UpdatedAt,
	}
}

// RecurringTemplateFromRecord builds a template from a decrypted record.
func RecurringTemplateFromRecord(rec entity.Record) (*RecurringTemplate, error) {
	var d decodeErrors
	r := &RecurringTemplate{
		ID:            read(&d, rec.UUID, "id"),
		UserID:        read(&d, rec.UUID, "user_id"),
		Description:   read(&d, rec.Text, "description"),
		Amount:        read(&d, rec.Decimal, "amount"),
		Type:          TransactionType(read(&d, rec.Text, "type")),
		DayOfMonth:    read(&d, rec.Int, "day_of_month"),
		EndDate:       DateOf(read(&d, rec.Time, "end_date")),
		BankAccountID: read(&d, rec.OptionalUUID, "bank_account_id"),
		CreditCardID:  read(&d, rec.OptionalUUID, "credit_card_id"),
		IsActive:      read(&d, rec.Bool, "is_active"),
		CreatedAt:     read(&d, rec.Time, "created_at"),
		UpdatedAt:     read(&d, rec.Time, "updated_at"),
	}
	r.Category = optionalOf[Category](read(&d, rec.OptionalText, "category"))
	r.PaymentMethod = optionalOf[PaymentMethod](read(&d, rec.OptionalText, "payment_method"))
	if d.err != nil {
		return nil, fmt.Errorf("failed to decode recurring template: %w", d.err)
	}
	return r, nil
}
