package dto

import (
	"time"

	"github.com/shopspring/decimal"

	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
	ledgerUsecase "github.com/allisson/finledger/internal/ledger/usecase"
)

// ListResponse wraps a collection in API responses.
type ListResponse[T any] struct {
	Data []T `json:"data"`
}

func mapList[S any, T any](items []S, fn func(S) T) ListResponse[T] {
	data := make([]T, 0, len(items))
	for _, item := range items {
		data = append(data, fn(item))
	}
	return ListResponse[T]{Data: data}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

func optionalString[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func optionalID[T interface{ String() string }](v *T) *string {
	if v == nil {
		return nil
	}
	s := (*v).String()
	return &s
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID                  string          `json:"id"`
	Description         string          `json:"description"`
	Amount              decimal.Decimal `json:"amount"`
	Type                string          `json:"type"`
	Category            *string         `json:"category"`
	Status              string          `json:"status"`
	DueDate             string          `json:"due_date"`
	CompletedDate       *string         `json:"completed_date"`
	PaymentMethod       *string         `json:"payment_method"`
	BankAccountID       *string         `json:"bank_account_id"`
	CreditCardID        *string         `json:"credit_card_id"`
	ParentTransactionID *string         `json:"parent_transaction_id"`
	InstallmentNumber   *int            `json:"installment_number"`
	TotalInstallments   *int            `json:"total_installments"`
	RecurringGroupID    *string         `json:"recurring_group_id"`
	Notes               *string         `json:"notes"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// MapTransactionToResponse converts a domain transaction to an API response.
func MapTransactionToResponse(t *ledgerDomain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                  t.ID.String(),
		Description:         t.Description,
		Amount:              t.Amount,
		Type:                string(t.Type),
		Category:            optionalString(t.Category),
		Status:              string(t.Status),
		DueDate:             t.DueDate.Format(time.DateOnly),
		CompletedDate:       formatDate(t.CompletedDate),
		PaymentMethod:       optionalString(t.PaymentMethod),
		BankAccountID:       optionalID(t.BankAccountID),
		CreditCardID:        optionalID(t.CreditCardID),
		ParentTransactionID: optionalID(t.ParentTransactionID),
		InstallmentNumber:   t.InstallmentNumber,
		TotalInstallments:   t.TotalInstallments,
		RecurringGroupID:    optionalID(t.RecurringGroupID),
		Notes:               t.Notes,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

// MapTransactionsToListResponse converts domain transactions to a list response.
func MapTransactionsToListResponse(txs []*ledgerDomain.Transaction) ListResponse[TransactionResponse] {
	return mapList(txs, MapTransactionToResponse)
}

// AccountResponse represents a bank account in API responses.
type AccountResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Balance        decimal.Decimal `json:"balance"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	BankName       *string         `json:"bank_name"`
	Color          *string         `json:"color"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// MapAccountToResponse converts a domain bank account to an API response.
func MapAccountToResponse(a *ledgerDomain.BankAccount) AccountResponse {
	return AccountResponse{
		ID:             a.ID.String(),
		Name:           a.Name,
		Type:           string(a.Type),
		Balance:        a.Balance,
		OpeningBalance: a.OpeningBalance,
		BankName:       a.BankName,
		Color:          a.Color,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// MapAccountsToListResponse converts domain bank accounts to a list response.
func MapAccountsToListResponse(accounts []*ledgerDomain.BankAccount) ListResponse[AccountResponse] {
	return mapList(accounts, MapAccountToResponse)
}

// CardResponse represents a credit card in API responses.
type CardResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	CurrentBill    decimal.Decimal `json:"current_bill"`
	AvailableLimit decimal.Decimal `json:"available_limit"`
	DueDay         int             `json:"due_day"`
	ClosingDay     int             `json:"closing_day"`
	Color          *string         `json:"color"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// MapCardToResponse converts a domain credit card to an API response.
func MapCardToResponse(c *ledgerDomain.CreditCard) CardResponse {
	return CardResponse{
		ID:             c.ID.String(),
		Name:           c.Name,
		CreditLimit:    c.CreditLimit,
		CurrentBill:    c.CurrentBill,
		AvailableLimit: c.AvailableLimit(),
		DueDay:         c.DueDay,
		ClosingDay:     c.ClosingDay,
		Color:          c.Color,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// MapCardsToListResponse converts domain credit cards to a list response.
func MapCardsToListResponse(cards []*ledgerDomain.CreditCard) ListResponse[CardResponse] {
	return mapList(cards, MapCardToResponse)
}

// NextBillAmountResponse is the amount due on a card's next bill.
type NextBillAmountResponse struct {
	CreditCardID string          `json:"credit_card_id"`
	Name         string          `json:"name"`
	Month        string          `json:"month"`
	Amount       decimal.Decimal `json:"amount"`
}

// MapNextBillAmountsToListResponse converts next bill amounts to a list response.
func MapNextBillAmountsToListResponse(
	amounts []ledgerUsecase.CardBillAmount,
) ListResponse[NextBillAmountResponse] {
	return mapList(amounts, func(a ledgerUsecase.CardBillAmount) NextBillAmountResponse {
		return NextBillAmountResponse{
			CreditCardID: a.CreditCardID.String(),
			Name:         a.Name,
			Month:        a.Month,
			Amount:       a.Amount,
		}
	})
}

// BillResponse represents a credit card bill in API responses.
type BillResponse struct {
	ID           string          `json:"id"`
	CreditCardID string          `json:"credit_card_id"`
	Month        string          `json:"month"`
	Status       string          `json:"status"`
	PaidDate     *string         `json:"paid_date"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MapBillToResponse converts a domain bill to an API response.
func MapBillToResponse(b *ledgerDomain.CreditCardBill) BillResponse {
	return BillResponse{
		ID:           b.ID.String(),
		CreditCardID: b.CreditCardID.String(),
		Month:        b.Month,
		Status:       string(b.Status),
		PaidDate:     formatDate(b.PaidDate),
		TotalAmount:  b.TotalAmount,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// MapBillsToListResponse converts domain bills to a list response.
func MapBillsToListResponse(bills []*ledgerDomain.CreditCardBill) ListResponse[BillResponse] {
	return mapList(bills, MapBillToResponse)
}

// BudgetResponse represents a category budget in API responses.
type BudgetResponse struct {
	ID            string          `json:"id"`
	Category      string          `json:"category"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// MapBudgetToResponse converts a domain budget to an API response.
func MapBudgetToResponse(b *ledgerDomain.CategoryBudget) BudgetResponse {
	return BudgetResponse{
		ID:            b.ID.String(),
		Category:      string(b.Category),
		MonthlyBudget: b.MonthlyBudget,
		UpdatedAt:     b.UpdatedAt,
	}
}

// MapBudgetsToListResponse converts domain budgets to a list response.
func MapBudgetsToListResponse(budgets []*ledgerDomain.CategoryBudget) ListResponse[BudgetResponse] {
	return mapList(budgets, MapBudgetToResponse)
}

// RecurringResponse represents a recurring template in API responses.
type RecurringResponse struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Category      *string         `json:"category"`
	DayOfMonth    int             `json:"day_of_month"`
	EndDate       string          `json:"end_date"`
	PaymentMethod *string         `json:"payment_method"`
	BankAccountID *string         `json:"bank_account_id"`
	CreditCardID  *string         `json:"credit_card_id"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MapRecurringToResponse converts a domain recurring template to an API response.
func MapRecurringToResponse(r *ledgerDomain.RecurringTemplate) RecurringResponse {
	return RecurringResponse{
		ID:            r.ID.String(),
		Description:   r.Description,
		Amount:        r.Amount,
		Type:          string(r.Type),
		Category:      optionalString(r.Category),
		DayOfMonth:    r.DayOfMonth,
		EndDate:       r.EndDate.Format(time.DateOnly),
		PaymentMethod: optionalString(r.PaymentMethod),
		BankAccountID: optionalID(r.BankAccountID),
		CreditCardID:  optionalID(r.CreditCardID),
		IsActive:      r.IsActive,
		CreatedAt:     r.CreatedAt,
	}
}

// MapRecurringToListResponse converts domain recurring templates to a list response.
func MapRecurringToListResponse(templates []*ledgerDomain.RecurringTemplate) ListResponse[RecurringResponse] {
	return mapList(templates, MapRecurringToResponse)
}
