package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/finledger/internal/entity"
	apperrors "github.com/allisson/finledger/internal/errors"
	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
)

// routing is the part of a transaction or template that decides where money moves.
type routing struct {
	Type          ledgerDomain.TransactionType
	Category      *ledgerDomain.Category
	PaymentMethod *ledgerDomain.PaymentMethod
	BankAccountID *uuid.UUID
	CreditCardID  *uuid.UUID
}

// normalize validates r and resolves its rail. Credit payments go to the card only, any
// other payment method goes to the account only, and income never has a category. With no
// payment method the caller must pick at most one target.
func (r routing) normalize() (routing, error) {
	if !r.Type.Valid() {
		return r, ledgerDomain.ErrInvalidTransactionType
	}
	if r.PaymentMethod != nil && !r.PaymentMethod.Valid() {
		return r, ledgerDomain.ErrInvalidPaymentMethod
	}

	if r.Type == ledgerDomain.TransactionIncome {
		r.Category = nil
	} else if r.Category != nil && !r.Category.Valid() {
		return r, ledgerDomain.ErrInvalidCategory
	}

	if r.PaymentMethod != nil {
		if *r.PaymentMethod == ledgerDomain.PaymentCredit {
			r.BankAccountID = nil
		} else {
			r.CreditCardID = nil
		}
	}

	if r.BankAccountID != nil && r.CreditCardID != nil {
		return r, ledgerDomain.ErrAmbiguousRouting
	}
	return r, nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ledgerDomain.ErrInvalidAmount
	}
	if !ledgerDomain.WholeCents(amount) {
		return ledgerDomain.ErrAmountPrecision
	}
	return nil
}

func validateDay(day int) error {
	if day < 1 || day > 31 {
		return ledgerDomain.ErrInvalidDayOfMonth
	}
	return nil
}

func requireText(value string, err error) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", err
	}
	return value, nil
}

// owned reports whether rec belongs to owner.
func owned(rec entity.Record, owner uuid.UUID) bool {
	userID, err := rec.UUID("user_id")
	return err == nil && userID == owner
}

// loadOwned reads a decrypted row and hides rows of other owners behind notFound.
func loadOwned(
	ctx context.Context,
	records *recordStore,
	t entity.Type,
	owner, id uuid.UUID,
	notFound error,
) (entity.Record, error) {
	rec, err := records.get(ctx, t, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound
		}
		return nil, err
	}
	if !owned(rec, owner) {
		return nil, notFound
	}
	return rec, nil
}

// checkTargets verifies that the account and card a transaction routes to belong to owner.
func checkTargets(ctx context.Context, records *recordStore, owner uuid.UUID, r routing) error {
	if r.BankAccountID != nil {
		if _, err := loadOwned(
			ctx, records, entity.BankAccounts, owner, *r.BankAccountID, ledgerDomain.ErrBankAccountNotFound,
		); err != nil {
			return err
		}
	}
	if r.CreditCardID != nil {
		if _, err := loadOwned(
			ctx, records, entity.CreditCards, owner, *r.CreditCardID, ledgerDomain.ErrCreditCardNotFound,
		); err != nil {
			return err
		}
	}
	return nil
}

// loadCard reads a card of owner.
func loadCard(ctx context.Context, records *recordStore, owner, id uuid.UUID) (*ledgerDomain.CreditCard, error) {
	rec, err := loadOwned(ctx, records, entity.CreditCards, owner, id, ledgerDomain.ErrCreditCardNotFound)
	if err != nil {
		return nil, err
	}
	return ledgerDomain.CreditCardFromRecord(rec)
}

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
