package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TxSnapshot is the part of a transaction that decides its balance effects.
type TxSnapshot struct {
	Amount        decimal.Decimal
	Type          TransactionType
	Status        TransactionStatus
	BankAccountID *uuid.UUID
	CreditCardID  *uuid.UUID
}

// AccountDelta is the contribution to the routed account balance. Only completed
// transactions move a balance: income adds, expense subtracts.
func (s TxSnapshot) AccountDelta() decimal.Decimal {
	if s.Status != StatusCompleted {
		return decimal.Zero
	}
	if s.Type == TransactionIncome {
		return s.Amount
	}
	return s.Amount.Neg()
}

// BillDelta is the contribution to the routed card's current bill. Only planned
// transactions are still owed.
func (s TxSnapshot) BillDelta() decimal.Decimal {
	if s.Status != StatusPlanned {
		return decimal.Zero
	}
	return s.Amount
}

// WithStatus returns a copy of s with status replaced.
func (s TxSnapshot) WithStatus(status TransactionStatus) TxSnapshot {
	s.Status = status
	return s
}
