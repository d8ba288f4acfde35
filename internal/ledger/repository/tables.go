// Package repository implements ledger record persistence for PostgreSQL and MySQL.
//
// Records are untyped column maps; encrypted fields arrive as base64 ciphertext strings and
// are stored in TEXT columns. Only the tables and columns declared here can be read or
// written, so user input never reaches a query as an identifier.
package repository

import (
	"fmt"
	"slices"

	"github.com/allisson/finledger/internal/entity"
)

type table struct {
	name      string
	columns   []string
	versioned bool
}

var tables = map[entity.Type]table{
	entity.Transactions: {
		name: "transactions",
		columns: []string{
			"id", "user_id", "description", "amount", "type", "category", "status",
			"due_date", "completed_date", "payment_method", "bank_account_id", "credit_card_id",
			"parent_transaction_id", "installment_number", "total_installments",
			"recurring_group_id", "notes", "created_at", "updated_at",
		},
	},
	entity.BankAccounts: {
		name: "bank_accounts",
		columns: []string{
			"id", "user_id", "name", "type", "balance", "opening_balance", "bank_name", "color", "version",
			"created_at", "updated_at",
		},
		versioned: true,
	},
	entity.CreditCards: {
		name: "credit_cards",
		columns: []string{
			"id", "user_id", "name", "credit_limit", "current_bill", "due_day", "closing_day",
			"color", "version", "created_at", "updated_at",
		},
		versioned: true,
	},
	entity.CreditCardBills: {
		name: "credit_card_bills",
		columns: []string{
			"id", "user_id", "credit_card_id", "month", "status", "paid_date", "total_amount",
			"created_at", "updated_at",
		},
	},
	entity.CategoryBudgets: {
		name: "category_budgets",
		columns: []string{
			"id", "user_id", "category", "monthly_budget", "created_at", "updated_at",
		},
	},
	entity.RecurringTemplates: {
		name: "recurring_templates",
		columns: []string{
			"id", "user_id", "description", "amount", "type", "category", "day_of_month",
			"end_date", "payment_method", "bank_account_id", "credit_card_id", "is_active",
			"created_at", "updated_at",
		},
	},
}

// immutableColumns are never written by an update.
var immutableColumns = []string{"id", "user_id", "created_at", "version"}

func tableFor(t entity.Type) (table, error) {
	tbl, ok := tables[t]
	if !ok {
		return table{}, fmt.Errorf("entity type %s is not persisted: %w", t, ErrUnknownColumn)
	}
	return tbl, nil
}

func (t table) has(column string) bool {
	return slices.Contains(t.columns, column)
}

// writable returns the columns of rec in declaration order, rejecting unknown ones.
func (t table) writable(rec entity.Record, skip []string) ([]string, error) {
	for key := range rec {
		if !t.has(key) {
			return nil, fmt.Errorf("%s.%s: %w", t.name, key, ErrUnknownColumn)
		}
	}

	cols := make([]string, 0, len(rec))
	for _, col := range t.columns {
		if _, ok := rec[col]; ok && !slices.Contains(skip, col) {
			cols = append(cols, col)
		}
	}
	return cols, nil
}
