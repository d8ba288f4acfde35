package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/finledger/internal/entity"
)

// BankAccount holds the cached balance of all completed transactions routed to it.
// Balance is stored encrypted and may be negative. OpeningBalance, also encrypted, is the
// part of Balance not explained by transactions: the initial balance plus manual
// corrections. Version guards concurrent balance adjustments.
type BankAccount struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	Type           AccountType
	Balance        decimal.Decimal
	OpeningBalance decimal.Decimal
	BankName       *string
	Color          *string
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Record converts a into a plaintext record.
func (a *BankAccount) Record() entity.Record {
	return entity.Record{
		"id":              a.ID,
		"user_id":         a.UserID,
		"name":            a.Name,
		"type":            string(a.Type),
		"balance":         a.Balance,
		"opening_balance": a.OpeningBalance,
		"bank_name":       nullString(a.BankName),
		"color":           nullString(a.Color),
		"version":         a.Version,
		"created_at":      a.CreatedAt,
		"updated_at":      a.UpdatedAt,
	}
}

// BankAccountFromRecord builds an account from a decrypted record.
func BankAccountFromRecord(rec entity.Record) (*BankAccount, error) {
	var d decodeErrors
	a := &BankAccount{
		ID:             read(&d, rec.UUID, "id"),
		UserID:         read(&d, rec.UUID, "user_id"),
		Name:           read(&d, rec.Text, "name"),
		Type:           AccountType(read(&d, rec.Text, "type")),
		Balance:        read(&d, rec.Decimal, "balance"),
		OpeningBalance: read(&d, rec.Decimal, "opening_balance"),
		BankName:       read(&d, rec.OptionalText, "bank_name"),
		Color:          read(&d, rec.OptionalText, "color"),
		Version:        read(&d, rec.Int64, "version"),
		CreatedAt:      read(&d, rec.Time, "created_at"),
		UpdatedAt:      read(&d, rec.Time, "updated_at"),
	}
	if d.err != nil {
		return nil, fmt.Errorf("failed to decode bank account: %w", d.err)
	}
	return a, nil
}
