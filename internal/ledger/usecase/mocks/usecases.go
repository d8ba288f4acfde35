// Package mocks provides mock implementations of the ledger use cases for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
	ledgerUsecase "github.com/allisson/finledger/internal/ledger/usecase"
)

// value returns the first return value of a mocked call, or the zero value when it is nil.
func value[T any](args mock.Arguments) T {
	var zero T
	if v := args.Get(0); v != nil {
		return v.(T)
	}
	return zero
}

// MockTransactionUseCase is a mock implementation of TransactionUseCase.
type MockTransactionUseCase struct {
	mock.Mock
}

// Create mocks the Create method of TransactionUseCase.
func (m *MockTransactionUseCase) Create(
	ctx context.Context,
	owner uuid.UUID,
	input ledgerUsecase.CreateTransactionInput,
) ([]*ledgerDomain.Transaction, error) {
	args := m.Called(ctx, owner, input)
	return value[[]*ledgerDomain.Transaction](args), args.Error(1)
}

// Get mocks the Get method of TransactionUseCase.
func (m *MockTransactionUseCase) Get(ctx context.Context, owner, id uuid.UUID) (*ledgerDomain.Transaction, error) {
	args := m.Called(ctx, owner, id)
	return value[*ledgerDomain.Transaction](args), args.Error(1)
}

// List mocks the List method of TransactionUseCase.
func (m *MockTransactionUseCase) List(
	ctx context.Context,
	owner uuid.UUID,
	filter ledgerUsecase.ListTransactionsFilter,
) ([]*ledgerDomain.Transaction, error) {
	args := m.Called(ctx, owner, filter)
	return value[[]*ledgerDomain.Transaction](args), args.Error(1)
}

// Update mocks the Update method of TransactionUseCase.
func (m *MockTransactionUseCase) Update(
	ctx context.Context,
	owner, id uuid.UUID,
	input ledgerUsecase.TransactionInput,
) (*ledgerDomain.Transaction, error) {
	args := m.Called(ctx, owner, id, input)
	return value[*ledgerDomain.Transaction](args), args.Error(1)
}

// Delete mocks the Delete method of TransactionUseCase.
func (m *MockTransactionUseCase) Delete(
	ctx context.Context,
	owner, id uuid.UUID,
	mode ledgerUsecase.DeleteMode,
) error {
	args := m.Called(ctx, owner, id, mode)
	return args.Error(0)
}

// ToggleStatus mocks the ToggleStatus method of TransactionUseCase.
func (m *MockTransactionUseCase) ToggleStatus(
	ctx context.Context,
	owner, id uuid.UUID,
) (*ledgerDomain.Transaction, error) {
	args := m.Called(ctx, owner, id)
	return value[*ledgerDomain.Transaction](args), args.Error(1)
}

// MockAccountUseCase is a mock implementation of AccountUseCase.
type MockAccountUseCase struct {
	mock.Mock
}

// Create mocks the Create method of AccountUseCase.
func (m *MockAccountUseCase) Create(
	ctx context.Context,
	owner uuid.UUID,
	input ledgerUsecase.AccountInput,
) (*ledgerDomain.BankAccount, error) {
	args := m.Called(ctx, owner, input)
	return value[*ledgerDomain.BankAccount](args), args.Error(1)
}

// Get mocks the Get method of AccountUseCase.
func (m *MockAccountUseCase) Get(ctx context.Context, owner, id uuid.UUID) (*ledgerDomain.BankAccount, error) {
	args := m.Called(ctx, owner, id)
	return value[*ledgerDomain.BankAccount](args), args.Error(1)
}

// List mocks the List method of AccountUseCase.
func (m *MockAccountUseCase) List(ctx context.Context, owner uuid.UUID) ([]*ledgerDomain.BankAccount, error) {
	args := m.Called(ctx, owner)
	return value[[]*ledgerDomain.BankAccount](args), args.Error(1)
}

// Update mocks the Update method of AccountUseCase.
func (m *MockAccountUseCase) Update(
	ctx context.Context,
	owner, id uuid.UUID,
	input ledgerUsecase.AccountInput,
) (*ledgerDomain.BankAccount, error) {
	args := m.Called(ctx, owner, id, input)
	return value[*ledgerDomain.BankAccount](args), args.Error(1)
}

// Delete mocks the Delete method of AccountUseCase.
func (m *MockAccountUseCase) Delete(ctx context.Context, owner, id uuid.UUID) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

// MockCardUseCase is a mock implementation of CardUseCase.
type MockCardUseCase struct {
	mock.Mock
}

// Create mocks the Create method of CardUseCase.
func (m *MockCardUseCase) Create(
	ctx context.Context,
	owner uuid.UUID,
	input ledgerUsecase.CardInput,
) (*ledgerDomain.CreditCard, error) {
	args := m.Called(ctx, owner, input)
	return value[*ledgerDomain.CreditCard](args), args.Error(1)
}

// Get mocks the Get method of CardUseCase.
func (m *MockCardUseCase) Get(ctx context.Context, owner, id uuid.UUID) (*ledgerDomain.CreditCard, error) {
	args := m.Called(ctx, owner, id)
	return value[*ledgerDomain.CreditCard](args), args.Error(1)
}

// List mocks the List method of CardUseCase.
func (m *MockCardUseCase) List(ctx context.Context, owner uuid.UUID) ([]*ledgerDomain.CreditCard, error) {
	args := m.Called(ctx, owner)
	return value[[]*ledgerDomain.CreditCard](args), args.Error(1)
}

// Update mocks the Update method of CardUseCase.
func (m *MockCardUseCase) Update(
	ctx context.Context,
	owner, id uuid.UUID,
	input ledgerUsecase.CardInput,
) (*ledgerDomain.CreditCard, error) {
	args := m.Called(ctx, owner, id, input)
	return value[*ledgerDomain.CreditCard](args), args.Error(1)
}

// Delete mocks the Delete method of CardUseCase.
func (m *MockCardUseCase) Delete(ctx context.Context, owner, id uuid.UUID) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

// NextBillAmounts mocks the NextBillAmounts method of CardUseCase.
func (m *MockCardUseCase) NextBillAmounts(ctx context.Context, owner uuid.UUID) ([]ledgerUsecase.CardBillAmount, error) {
	args := m.Called(ctx, owner)
	return value[[]ledgerUsecase.CardBillAmount](args), args.Error(1)
}

// MockBillUseCase is a mock implementation of BillUseCase.
type MockBillUseCase struct {
	mock.Mock
}

// GetOrCreate mocks the GetOrCreate method of BillUseCase.
func (m *MockBillUseCase) GetOrCreate(
	ctx context.Context,
	owner, cardID uuid.UUID,
	month string,
) (*ledgerDomain.CreditCardBill, error) {
	args := m.Called(ctx, owner, cardID, month)
	return value[*ledgerDomain.CreditCardBill](args), args.Error(1)
}

// List mocks the List method of BillUseCase.
func (m *MockBillUseCase) List(ctx context.Context, owner, cardID uuid.UUID) ([]*ledgerDomain.CreditCardBill, error) {
	args := m.Called(ctx, owner, cardID)
	return value[[]*ledgerDomain.CreditCardBill](args), args.Error(1)
}

// RecalculateTotal mocks the RecalculateTotal method of BillUseCase.
func (m *MockBillUseCase) RecalculateTotal(
	ctx context.Context,
	owner, cardID uuid.UUID,
	month string,
) (*ledgerDomain.CreditCardBill, error) {
	args := m.Called(ctx, owner, cardID, month)
	return value[*ledgerDomain.CreditCardBill](args), args.Error(1)
}

// Pay mocks the Pay method of BillUseCase.
func (m *MockBillUseCase) Pay(
	ctx context.Context,
	owner, cardID uuid.UUID,
	month string,
) (*ledgerDomain.CreditCardBill, error) {
	args := m.Called(ctx, owner, cardID, month)
	return value[*ledgerDomain.CreditCardBill](args), args.Error(1)
}

// MockBudgetUseCase is a mock implementation of BudgetUseCase.
type MockBudgetUseCase struct {
	mock.Mock
}

// List mocks the List method of BudgetUseCase.
func (m *MockBudgetUseCase) List(ctx context.Context, owner uuid.UUID) ([]*ledgerDomain.CategoryBudget, error) {
	args := m.Called(ctx, owner)
	return value[[]*ledgerDomain.CategoryBudget](args), args.Error(1)
}

// Upsert mocks the Upsert method of BudgetUseCase.
func (m *MockBudgetUseCase) Upsert(
	ctx context.Context,
	owner uuid.UUID,
	category ledgerDomain.Category,
	monthlyBudget decimal.Decimal,
) (*ledgerDomain.CategoryBudget, error) {
	args := m.Called(ctx, owner, category, monthlyBudget)
	return value[*ledgerDomain.CategoryBudget](args), args.Error(1)
}

// MockRecurringUseCase is a mock implementation of RecurringUseCase.
type MockRecurringUseCase struct {
	mock.Mock
}

// Create mocks the Create method of RecurringUseCase.
func (m *MockRecurringUseCase) Create(
	ctx context.Context,
	owner uuid.UUID,
	input ledgerUsecase.RecurringInput,
) (*ledgerDomain.RecurringTemplate, error) {
	args := m.Called(ctx, owner, input)
	return value[*ledgerDomain.RecurringTemplate](args), args.Error(1)
}

// List mocks the List method of RecurringUseCase.
func (m *MockRecurringUseCase) List(ctx context.Context, owner uuid.UUID) ([]*ledgerDomain.RecurringTemplate, error) {
	args := m.Called(ctx, owner)
	return value[[]*ledgerDomain.RecurringTemplate](args), args.Error(1)
}

// Update mocks the Update method of RecurringUseCase.
func (m *MockRecurringUseCase) Update(
	ctx context.Context,
	owner, id uuid.UUID,
	input ledgerUsecase.RecurringInput,
) (*ledgerDomain.RecurringTemplate, error) {
	args := m.Called(ctx, owner, id, input)
	return value[*ledgerDomain.RecurringTemplate](args), args.Error(1)
}

// Delete mocks the Delete method of RecurringUseCase.
func (m *MockRecurringUseCase) Delete(ctx context.Context, owner, id uuid.UUID) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

// MockBalanceAuditUseCase is a mock implementation of BalanceAuditUseCase.
type MockBalanceAuditUseCase struct {
	mock.Mock
}

// Verify mocks the Verify method of BalanceAuditUseCase.
func (m *MockBalanceAuditUseCase) Verify(ctx context.Context) (*ledgerDomain.DriftReport, error) {
	args := m.Called(ctx)
	return value[*ledgerDomain.DriftReport](args), args.Error(1)
}

var (
	_ ledgerUsecase.TransactionUseCase  = (*MockTransactionUseCase)(nil)
	_ ledgerUsecase.AccountUseCase      = (*MockAccountUseCase)(nil)
	_ ledgerUsecase.CardUseCase         = (*MockCardUseCase)(nil)
	_ ledgerUsecase.BillUseCase         = (*MockBillUseCase)(nil)
	_ ledgerUsecase.BudgetUseCase       = (*MockBudgetUseCase)(nil)
	_ ledgerUsecase.RecurringUseCase    = (*MockRecurringUseCase)(nil)
	_ ledgerUsecase.BalanceAuditUseCase = (*MockBalanceAuditUseCase)(nil)
)
