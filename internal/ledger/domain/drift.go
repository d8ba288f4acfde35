package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/finledger/internal/entity"
)

// BalanceDrift compares a cached aggregate with the value recomputed from transactions.
type BalanceDrift struct {
	Entity   entity.Type
	ID       uuid.UUID
	UserID   uuid.UUID
	Name     string
	Cached   decimal.Decimal
	Expected decimal.Decimal
}

// Difference is Cached minus Expected.
func (d BalanceDrift) Difference() decimal.Decimal {
	return d.Cached.Sub(d.Expected)
}

// DriftReport is the result of a balance audit.
type DriftReport struct {
	AccountsChecked int
	CardsChecked    int
	Drifts          []BalanceDrift
}
