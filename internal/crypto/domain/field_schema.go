package domain

import (
	"slices"

	"github.com/allisson/finledger/internal/entity"
)

// FieldKind is the plaintext type a sensitive field decrypts to.
type FieldKind int

const (
	// FieldNumeric fields hold decimal amounts encoded as their canonical string.
	FieldNumeric FieldKind = iota + 1
	// FieldText fields hold free text.
	FieldText
)

// String implements fmt.Stringer.
func (k FieldKind) String() string {
	switch k {
	case FieldNumeric:
		return "numeric"
	case FieldText:
		return "text"
	default:
		return "unknown"
	}
}

// FieldSchema lists the sensitive fields of one entity type.
type FieldSchema struct {
	fields map[string]FieldKind
}

// Kind returns the kind of name and whether name is sensitive.
func (s FieldSchema) Kind(name string) (FieldKind, bool) {
	kind, ok := s.fields[name]
	return kind, ok
}

// Fields returns the sensitive field names in lexical order.
func (s FieldSchema) Fields() []string {
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of sensitive fields.
func (s FieldSchema) Len() int {
	return len(s.fields)
}

func numeric(names ...string) map[string]FieldKind {
	m := make(map[string]FieldKind, len(names))
	for _, n := range names {
		m[n] = FieldNumeric
	}
	return m
}

func withText(m map[string]FieldKind, names ...string) map[string]FieldKind {
	for _, n := range names {
		m[n] = FieldText
	}
	return m
}

var schemas = map[entity.Type]FieldSchema{
	entity.Transactions:       {withText(numeric("amount"), "description", "notes")},
	entity.TransactionItems:   {withText(numeric("amount"), "description")},
	entity.BankAccounts:       {numeric("balance", "opening_balance")},
	entity.CreditCards:        {numeric("credit_limit", "current_bill")},
	entity.CreditCardBills:    {numeric("total_amount")},
	entity.CategoryBudgets:    {numeric("monthly_budget")},
	entity.RecurringTemplates: {withText(numeric("amount"), "description")},
	entity.FinancialGoals: {
		withText(numeric("savings_goal", "invested_amount", "total_debts", "dollar_rate"), "notes"),
	},
	entity.Investments:       {withText(numeric("average_price", "current_price", "quantity"), "notes")},
	entity.InvestmentHistory: {numeric("price", "total_value")},
}

// SchemaFor returns the field schema of t. The boolean is false for types without
// sensitive fields.
func SchemaFor(t entity.Type) (FieldSchema, bool) {
	s, ok := schemas[t]
	return s, ok
}
