package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/finledger/internal/entity"
)

// Transaction is a ledger entry. Amount, Description and Notes are stored encrypted.
//
// A transaction routes to at most one of BankAccountID and CreditCardID. Installment rows
// share ParentTransactionID, which is the id of the first installment (the first row points
// at itself). Rows materialized from a recurring template carry its id in RecurringGroupID.
type Transaction struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Description         string
	Amount              decimal.Decimal
	Type                TransactionType
	Category            *Category
	Status              TransactionStatus
	DueDate             time.Time
	CompletedDate       *time.Time
	PaymentMethod       *PaymentMethod
	BankAccountID       *uuid.UUID
	CreditCardID        *uuid.UUID
	ParentTransactionID *uuid.UUID
	InstallmentNumber   *int
	TotalInstallments   *int
	RecurringGroupID    *uuid.UUID
	Notes               *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Snapshot returns the balance-relevant view of t.
func (t *Transaction) Snapshot() TxSnapshot {
	return TxSnapshot{
		Amount:        t.Amount,
		Type:          t.Type,
		Status:        t.Status,
		BankAccountID: t.BankAccountID,
		CreditCardID:  t.CreditCardID,
	}
}

// GroupID returns the id shared by every installment of the same purchase.
func (t *Transaction) GroupID() uuid.UUID {
	if t.ParentTransactionID != nil {
		return *t.ParentTransactionID
	}
	return t.ID
}

// Record converts t into a plaintext record.
func (t *Transaction) Record() entity.Record {
	return entity.Record{
		"id":                    t.ID,
		"user_id":               t.UserID,
		"description":           t.Description,
		"amount":                t.Amount,
		"type":                  string(t.Type),
		"category":              nullString(t.Category),
		"status":                string(t.Status),
		"due_date":              DateOf(t.DueDate),
		"completed_date":        nullDate(t.CompletedDate),
		"payment_method":        nullString(t.PaymentMethod),
		"bank_account_id":       nullUUID(t.BankAccountID),
		"credit_card_id":        nullUUID(t.CreditCardID),
		"parent_transaction_id": nullUUID(t.ParentTransactionID),
		"installment_number":    nullInt(t.InstallmentNumber),
		"total_installments":    nullInt(t.TotalInstallments),
		"recurring_group_id":    nullUUID(t.RecurringGroupID),
		"notes":                 nullString(t.Notes),
		"created_at":            t.CreatedAt,
		"updated_at":            t.UpdatedAt,
	}
}

// TransactionFromRecord builds a transaction from a decrypted record.
func TransactionFromRecord(rec entity.Record) (*Transaction, error) {
	var d decodeErrors
	t := &Transaction{
		ID:                  read(&d, rec.UUID, "id"),
		UserID:              read(&d, rec.UUID, "user_id"),
		Description:         read(&d, rec.Text, "description"),
		Amount:              read(&d, rec.Decimal, "amount"),
		Type:                TransactionType(read(&d, rec.Text, "type")),
		Status:              TransactionStatus(read(&d, rec.Text, "status")),
		DueDate:             DateOf(read(&d, rec.Time, "due_date")),
		CompletedDate:       read(&d, rec.OptionalTime, "completed_date"),
		BankAccountID:       read(&d, rec.OptionalUUID, "bank_account_id"),
		CreditCardID:        read(&d, rec.OptionalUUID, "credit_card_id"),
		ParentTransactionID: read(&d, rec.OptionalUUID, "parent_transaction_id"),
		InstallmentNumber:   read(&d, rec.OptionalInt, "installment_number"),
		TotalInstallments:   read(&d, rec.OptionalInt, "total_installments"),
		RecurringGroupID:    read(&d, rec.OptionalUUID, "recurring_group_id"),
		Notes:               read(&d, rec.OptionalText, "notes"),
	}
	t.Category = optionalOf[Category](read(&d, rec.OptionalText, "category"))
	t.PaymentMethod = optionalOf[PaymentMethod](read(&d, rec.OptionalText, "payment_method"))
	if createdAt, err := rec.OptionalTime("created_at"); err == nil && createdAt != nil {
		t.CreatedAt = *createdAt
	}
	if updatedAt, err := rec.OptionalTime("updated_at"); err == nil && updatedAt != nil {
		t.UpdatedAt = *updatedAt
	}

	if d.err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", d.err)
	}
	return t, nil
}
