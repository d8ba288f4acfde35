// Package domain defines the ledger entities: transactions, bank accounts, credit cards,
// bills, category budgets and recurring templates, together with the balance deltas a
// transaction contributes to its account or card.
package domain

import "slices"

// TransactionType is the direction of money movement.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	// StatusPlanned transactions are projections, still owed on a card bill.
	StatusPlanned TransactionStatus = "planned"
	// StatusCompleted transactions are settled against an account balance.
	StatusCompleted TransactionStatus = "completed"
)

// Valid reports whether s is a known status.
func (s TransactionStatus) Valid() bool {
	return s == StatusPlanned || s == StatusCompleted
}

// Toggled returns the opposite status.
func (s TransactionStatus) Toggled() TransactionStatus {
	if s == StatusCompleted {
		return StatusPlanned
	}
	return StatusCompleted
}

// PaymentMethod is the rail a transaction was paid through.
type PaymentMethod string

const (
	PaymentPix      PaymentMethod = "pix"
	PaymentCash     PaymentMethod = "cash"
	PaymentDebit    PaymentMethod = "debit"
	PaymentCredit   PaymentMethod = "credit"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentBoleto   PaymentMethod = "boleto"
)

var paymentMethods = []PaymentMethod{
	PaymentPix, PaymentCash, PaymentDebit, PaymentCredit, PaymentTransfer, PaymentBoleto,
}

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return slices.Contains(paymentMethods, m)
}

// Category classifies expenses. Income transactions carry no category.
type Category string

const (
	CategoryFixedHousing       Category = "fixed_housing"
	CategoryFixedUtilities     Category = "fixed_utilities"
	CategoryFixedSubscriptions Category = "fixed_subscriptions"
	CategoryFixedPersonal      Category = "fixed_personal"
	CategoryFixedTaxes         Category = "fixed_taxes"
	CategoryVariableCredit     Category = "variable_credit"
	CategoryVariableFood       Category = "variable_food"
	CategoryVariableTransport  Category = "variable_transport"
	CategoryVariableOther      Category = "variable_other"
)

// Categories returns every expense category.
func Categories() []Category {
	return []Category{
		CategoryFixedHousing,
		CategoryFixedUtilities,
		CategoryFixedSubscriptions,
		CategoryFixedPersonal,
		CategoryFixedTaxes,
		CategoryVariableCredit,
		CategoryVariableFood,
		CategoryVariableTransport,
		CategoryVariableOther,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return slices.Contains(Categories(), c)
}

// AccountType is the kind of bank account.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountInvestment AccountType = "investment"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	return t == AccountChecking || t == AccountSavings || t == AccountInvestment
}

// BillStatus is the state of a card billing cycle.
type BillStatus string

const (
	BillOpen BillStatus = "open"
	BillPaid BillStatus = "paid"
)

// MonthLayout is the layout of billing months ("YYYY-MM").
const MonthLayout = "2006-01"
