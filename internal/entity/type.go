// Package entity defines the closed set of ledger entity types and the untyped record
// representation exchanged between the field cipher and the record store.
package entity

import (
	"fmt"
)

// Type identifies a kind of persisted ledger entity. The set is closed: every value is
// declared below and anything else is rejected by ParseType.
type Type int

const (
	// Transactions are ledger entries.
	Transactions Type = iota + 1
	// TransactionItems are line items that split one transaction.
	TransactionItems
	// BankAccounts hold a cached balance.
	BankAccounts
	// CreditCards hold a cached current bill.
	CreditCards
	// CreditCardBills are per (card, month) billing cycle closures.
	CreditCardBills
	// CategoryBudgets are monthly spending limits per expense category.
	CategoryBudgets
	// RecurringTemplates materialize monthly planned transactions.
	RecurringTemplates
	// FinancialGoals hold savings targets.
	FinancialGoals
	// Investments are portfolio positions.
	Investments
	// InvestmentHistory are price snapshots of a position.
	InvestmentHistory
)

var typeTags = map[Type]string{
	Transactions:       "transactions",
	TransactionItems:   "transaction_items",
	BankAccounts:       "bank_accounts",
	CreditCards:        "credit_cards",
	CreditCardBills:    "credit_card_bills",
	CategoryBudgets:    "category_budgets",
	RecurringTemplates: "recurring_templates",
	FinancialGoals:     "financial_goals",
	Investments:        "investments",
	InvestmentHistory:  "investment_history",
}

// All returns every entity type in declaration order.
func All() []Type {
	types := make([]Type, 0, len(typeTags))
	for t := Transactions; t <= InvestmentHistory; t++ {
		types = append(types, t)
	}
	return types
}

// Tag returns the stable entity-type tag.
func (t Type) Tag() string {
	if tag, ok := typeTags[t]; ok {
		return tag
	}
	return fmt.Sprintf("entity(%d)", int(t))
}

// String implements fmt.Stringer.
func (t Type) String() string {
	return t.Tag()
}

// Valid reports whether t is one of the declared entity types.
func (t Type) Valid() bool {
	_, ok := typeTags[t]
	return ok
}

// ParseType resolves an entity-type tag.
func ParseType(tag string) (Type, error) {
	for t, candidate := range typeTags {
		if candidate == tag {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown entity type: %q", tag)
}
