// Package usecase implements the ledger business operations. Every mutation runs inside a
// database transaction and keeps the cached account balances and card bills in step with
// the transactions routed to them.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/finledger/internal/entity"
	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
)

// Store defines record persistence keyed by entity type.
type Store interface {
	Get(ctx context.Context, t entity.Type, id uuid.UUID) (entity.Record, error)
	Query(ctx context.Context, t entity.Type, q entity.Query) ([]entity.Record, error)
	Insert(ctx context.Context, t entity.Type, rec entity.Record) error
	Update(ctx context.Context, t entity.Type, id uuid.UUID, patch entity.Record) (entity.Record, error)
	UpdateVersioned(
		ctx context.Context,
		t entity.Type,
		id uuid.UUID,
		expectedVersion int64,
		patch entity.Record,
	) (entity.Record, error)
	Delete(ctx context.Context, t entity.Type, id uuid.UUID) error
}

// FieldCipher encrypts and decrypts the sensitive fields of records.
type FieldCipher interface {
	EncryptFields(ctx context.Context, t entity.Type, rec entity.Record) (entity.Record, error)
	DecryptFields(ctx context.Context, t entity.Type, rec entity.Record) (entity.Record, error)
}

// Reconciler applies the balance effects of a transaction changing from prev to next. A nil
// prev means creation and a nil next means deletion.
type Reconciler interface {
	Apply(ctx context.Context, prev, next *ledgerDomain.TxSnapshot) error
}

// DeleteMode selects what a transaction delete removes.
type DeleteMode string

const (
	// DeleteSingle removes only the given transaction.
	DeleteSingle DeleteMode = "single"
	// DeleteAll removes every installment of the purchase the transaction belongs to.
	DeleteAll DeleteMode = "all"
)

// TransactionInput carries the caller-editable fields of a transaction.
type TransactionInput struct {
	Description   string
	Amount        decimal.Decimal
	Type          ledgerDomain.TransactionType
	Category      *ledgerDomain.Category
	Status        ledgerDomain.TransactionStatus
	DueDate       time.Time
	PaymentMethod *ledgerDomain.PaymentMethod
	BankAccountID *uuid.UUID
	CreditCardID  *uuid.UUID
	Notes         *string
}

// CreateTransactionInput describes a new transaction. Installments above one split Amount
// over that many monthly card transactions, with DueDate taken as the purchase date.
type CreateTransactionInput struct {
	TransactionInput
	Installments int
}

// ListTransactionsFilter narrows a transaction listing. Zero fields do not filter.
type ListTransactionsFilter struct {
	Month         string
	BankAccountID *uuid.UUID
	CreditCardID  *uuid.UUID
	Status        ledgerDomain.TransactionStatus
	Search        string
}

// TransactionUseCase defines transaction management with balance reconciliation.
type TransactionUseCase interface {
	Create(ctx context.Context, owner uuid.UUID, input CreateTransactionInput) ([]*ledgerDomain.Transaction, error)
	Get(ctx context.Context, owner, id uuid.UUID) (*ledgerDomain.Transaction, error)
	List(ctx context.Context, owner uuid.UUID, filter ListTransactionsFilter) ([]*ledgerDomain.Transaction, error)
	// Update replaces the editable fields of a transaction. Installment metadata is kept.
	Update(ctx context.Context, owner, id uuid.UUID, input TransactionInput) (*ledgerDomain.Transaction, error)
	Delete(ctx context.Context, owner, id uuid.UUID, mode DeleteMode) error
	ToggleStatus(ctx context.Context, owner, id uuid.UUID) (*ledgerDomain.Transaction, error)
}

// AccountInput carries the editable fields of a bank account.
type AccountInput struct {
	Name     string
	Type     ledgerDomain.AccountType
	Balance  decimal.Decimal
	BankName *string
	Color    *string
}

// AccountUseCase defines bank account management.
type AccountUseCase interface {
	Create(ctx context.Context, owner uuid.UUID, input AccountInput) (*ledgerDomain.BankAccount, error)
	Get(ctx context.Context, owner, id uuid.UUID) (*ledgerDomain.BankAccount, error)
	List(ctx context.Context, owner uuid.UUID) ([]*ledgerDomain.BankAccount, error)
	// Update replaces the account fields. A changed Balance is an explicit correction.
	Update(ctx context.Context, owner, id uuid.UUID, input AccountInput) (*ledgerDomain.BankAccount, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error
}

// CardInput carries the editable fields of a credit card.
type CardInput struct {
	Name        string
	CreditLimit decimal.Decimal
	DueDay      int
	ClosingDay  int
	Color       *string
}

// CardBillAmount is the amount due on a card's next bill.
type CardBillAmount struct {
	CreditCardID uuid.UUID
	Name         string
	Month        string
	Amount       decimal.Decimal
}

// CardUseCase defines credit card management.
type CardUseCase interface {
	Create(ctx context.Context, owner uuid.UUID, input CardInput) (*ledgerDomain.CreditCard, error)
	Get(ctx context.Context, owner, id uuid.UUID) (*ledgerDomain.CreditCard, error)
	List(ctx context.Context, owner uuid.UUID) ([]*ledgerDomain.CreditCard, error)
	Update(ctx context.Context, owner, id uuid.UUID, input CardInput) (*ledgerDomain.CreditCard, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error
	NextBillAmounts(ctx context.Context, owner uuid.UUID) ([]CardBillAmount, error)
}

// BillUseCase defines credit card bill management.
type BillUseCase interface {
	GetOrCreate(ctx context.Context, owner, cardID uuid.UUID, month string) (*ledgerDomain.CreditCardBill, error)
	List(ctx context.Context, owner, cardID uuid.UUID) ([]*ledgerDomain.CreditCardBill, error)
	RecalculateTotal(ctx context.Context, owner, cardID uuid.UUID, month string) (*ledgerDomain.CreditCardBill, error)
	// Pay marks the bill paid and completes every planned card transaction due that month.
	Pay(ctx context.Context, owner, cardID uuid.UUID, month string) (*ledgerDomain.CreditCardBill, error)
}

// BudgetUseCase defines category budget management.
type BudgetUseCase interface {
	List(ctx context.Context, owner uuid.UUID) ([]*ledgerDomain.CategoryBudget, error)
	Upsert(
		ctx context.Context,
		owner uuid.UUID,
		category ledgerDomain.Category,
		monthlyBudget decimal.Decimal,
	) (*ledgerDomain.CategoryBudget, error)
}

// RecurringInput carries the editable fields of a recurring template.
type RecurringInput struct {
	Description   string
	Amount        decimal.Decimal
	Type          ledgerDomain.TransactionType
	Category      *ledgerDomain.Category
	DayOfMonth    int
	EndDate       time.Time
	PaymentMethod *ledgerDomain.PaymentMethod
	BankAccountID *uuid.UUID
	CreditCardID  *uuid.UUID
}

// RecurringUseCase defines recurring template management. Templates materialize planned
// transactions for every month up to their end date.
type RecurringUseCase interface {
	Create(ctx context.Context, owner uuid.UUID, input RecurringInput) (*ledgerDomain.RecurringTemplate, error)
	List(ctx context.Context, owner uuid.UUID) ([]*ledgerDomain.RecurringTemplate, error)
	Update(
		ctx context.Context,
		owner, id uuid.UUID,
		input RecurringInput,
	) (*ledgerDomain.RecurringTemplate, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error
}

// BalanceAuditUseCase compares cached aggregates with the transactions behind them.
type BalanceAuditUseCase interface {
	Verify(ctx context.Context) (*ledgerDomain.DriftReport, error)
}
