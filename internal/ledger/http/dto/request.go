// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
	"github.com/shopspring/decimal"

	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
	ledgerUsecase "github.com/allisson/finledger/internal/ledger/usecase"
	customValidation "github.com/allisson/finledger/internal/validation"
)

var (
	transactionTypes = customValidation.OneOf(ledgerDomain.TransactionIncome, ledgerDomain.TransactionExpense)
	statuses         = customValidation.OneOf(ledgerDomain.StatusPlanned, ledgerDomain.StatusCompleted)
	categories       = customValidation.OneOf(ledgerDomain.Categories()...)
	paymentMethods   = customValidation.OneOf(
		ledgerDomain.PaymentPix,
		ledgerDomain.PaymentCash,
		ledgerDomain.PaymentDebit,
		ledgerDomain.PaymentCredit,
		ledgerDomain.PaymentTransfer,
		ledgerDomain.PaymentBoleto,
	)
	accountTypes = customValidation.OneOf(
		ledgerDomain.AccountChecking,
		ledgerDomain.AccountSavings,
		ledgerDomain.AccountInvestment,
	)
)

// TransactionRequest contains the editable fields of a transaction.
// Dates use the YYYY-MM-DD form. Amounts accept JSON numbers or strings.
type TransactionRequest struct {
	Description   string                         `json:"description"`
	Amount        decimal.Decimal                `json:"amount"`
	Type          ledgerDomain.TransactionType   `json:"type"`
	Category      *ledgerDomain.Category         `json:"category"`
	Status        ledgerDomain.TransactionStatus `json:"status"`
	DueDate       string                         `json:"due_date"`
	PaymentMethod *ledgerDomain.PaymentMethod    `json:"payment_method"`
	BankAccountID *uuid.UUID                     `json:"bank_account_id"`
	CreditCardID  *uuid.UUID                     `json:"credit_card_id"`
	Notes         *string                        `json:"notes"`
}

// Validate checks if the transaction request is valid.
func (r *TransactionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Description, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Amount, customValidation.PositiveDecimal),
		validation.Field(&r.Type, validation.Required, transactionTypes),
		validation.Field(&r.Category, categories),
		validation.Field(&r.Status, statuses),
		validation.Field(&r.DueDate, validation.Required, customValidation.Date),
		validation.Field(&r.PaymentMethod, paymentMethods),
	)
}

// ToInput converts a validated request to the use case input.
func (r *TransactionRequest) ToInput() ledgerUsecase.TransactionInput {
	return ledgerUsecase.TransactionInput{
		Description:   r.Description,
		Amount:        r.Amount,
		Type:          r.Type,
		Category:      r.Category,
		Status:        r.Status,
		DueDate:       parseDate(r.DueDate),
		PaymentMethod: r.PaymentMethod,
		BankAccountID: r.BankAccountID,
		CreditCardID:  r.CreditCardID,
		Notes:         r.Notes,
	}
}

// CreateTransactionRequest contains the parameters for creating a transaction. Installments
// above one split the amount over monthly card transactions.
type CreateTransactionRequest struct {
	TransactionRequest
	Installments int `json:"installments"`
}

// Validate checks if the create transaction request is valid.
func (r *CreateTransactionRequest) Validate() error {
	if err := r.TransactionRequest.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Installments, validation.Min(0)),
	)
}

// ToInput converts a validated request to the use case input.
func (r *CreateTransactionRequest) ToInput() ledgerUsecase.CreateTransactionInput {
	return ledgerUsecase.CreateTransactionInput{
		TransactionInput: r.TransactionRequest.ToInput(),
		Installments:     r.Installments,
	}
}

// AccountRequest contains the editable fields of a bank account.
type AccountRequest struct {
	Name     string                   `json:"name"`
	Type     ledgerDomain.AccountType `json:"type"`
	Balance  decimal.Decimal          `json:"balance"`
	BankName *string                  `json:"bank_name"`
	Color    *string                  `json:"color"`
}

// Validate checks if the account request is valid.
func (r *AccountRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank, validation.Length(1, 100)),
		validation.Field(&r.Type, validation.Required, accountTypes),
		validation.Field(&r.BankName, validation.Length(0, 100)),
		validation.Field(&r.Color, validation.Length(0, 20)),
	)
}

// ToInput converts a validated request to the use case input.
func (r *AccountRequest) ToInput() ledgerUsecase.AccountInput {
	return ledgerUsecase.AccountInput{
		Name:     r.Name,
		Type:     r.Type,
		Balance:  r.Balance,
		BankName: r.BankName,
		Color:    r.Color,
	}
}

// CardRequest contains the editable fields of a credit card.
type CardRequest struct {
	Name        string          `json:"name"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	DueDay      int             `json:"due_day"`
	ClosingDay  int             `json:"closing_day"`
	Color       *string         `json:"color"`
}

// Validate checks if the card request is valid.
func (r *CardRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank, validation.Length(1, 100)),
		validation.Field(&r.CreditLimit, customValidation.NonNegativeDecimal),
		validation.Field(&r.DueDay, validation.Required, validation.Min(1), validation.Max(31)),
		validation.Field(&r.ClosingDay, validation.Required, validation.Min(1), validation.Max(31)),
		validation.Field(&r.Color, validation.Length(0, 20)),
	)
}

// ToInput converts a validated request to the use case input.
func (r *CardRequest) ToInput() ledgerUsecase.CardInput {
	return ledgerUsecase.CardInput{
		Name:        r.Name,
		CreditLimit: r.CreditLimit,
		DueDay:      r.DueDay,
		ClosingDay:  r.ClosingDay,
		Color:       r.Color,
	}
}

// BudgetRequest sets the monthly budget of a category.
type BudgetRequest struct {
	Category      ledgerDomain.Category `json:"category"`
	MonthlyBudget decimal.Decimal       `json:"monthly_budget"`
}

// Validate checks if the budget request is valid.
func (r *BudgetRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Category, validation.Required, categories),
		validation.Field(&r.MonthlyBudget, customValidation.NonNegativeDecimal),
	)
}

// RecurringRequest contains the editable fields of a recurring template.
type RecurringRequest struct {
	Description   string                       `json:"description"`
	Amount        decimal.Decimal              `json:"amount"`
	Type          ledgerDomain.TransactionType `json:"type"`
	Category      *ledgerDomain.Category       `json:"category"`
	DayOfMonth    int                          `json:"day_of_month"`
	EndDate       string                       `json:"end_date"`
	PaymentMethod *ledgerDomain.PaymentMethod  `json:"payment_method"`
	BankAccountID *uuid.UUID                   `json:"bank_account_id"`
	CreditCardID  *uuid.UUID                   `json:"credit_card_id"`
}

// Validate checks if the recurring request is valid.
func (r *RecurringRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Description, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Amount, customValidation.PositiveDecimal),
		validation.Field(&r.Type, validation.Required, transactionTypes),
		validation.Field(&r.Category, categories),
		validation.Field(&r.DayOfMonth, validation.Required, validation.Min(1), validation.Max(31)),
		validation.Field(&r.EndDate, validation.Required, customValidation.Date),
		validation.Field(&r.PaymentMethod, paymentMethods),
	)
}

// ToInput converts a validated request to the use case input.
func (r *RecurringRequest) ToInput() ledgerUsecase.RecurringInput {
	return ledgerUsecase.RecurringInput{
		Description:   r.Description,
		Amount:        r.Amount,
		Type:          r.Type,
		Category:      r.Category,
		DayOfMonth:    r.DayOfMonth,
		EndDate:       parseDate(r.EndDate),
		PaymentMethod: r.PaymentMethod,
		BankAccountID: r.BankAccountID,
		CreditCardID:  r.CreditCardID,
	}
}

// parseDate parses a validated YYYY-MM-DD string. Invalid input yields the zero time, which
// the use cases reject.
func parseDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
