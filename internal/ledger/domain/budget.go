package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/finledger/internal/entity"
)

// CategoryBudget is the monthly spending limit of one expense category.
type CategoryBudget struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Category      Category
	MonthlyBudget decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Record converts b into a plaintext record.
func (b *CategoryBudget) Record() entity.Record {
	return entity.Record{
		"id":             b.ID,
		"user_id":        b.UserID,
		"category":       string(b.Category),
		"monthly_budget": b.MonthlyBudget,
		"created_at":     b.CreatedAt,
		"updated_at":     b.UpdatedAt,
	}
}

// CategoryBudgetFromRecord builds a budget from a decrypted record.
func CategoryBudgetFromRecord(rec entity.Record) (*CategoryBudget, error) {
	var d decodeErrors
	b := &CategoryBudget{
		ID:            read(&d, rec.UUID, "id"),
		UserID:        read(&d, rec.UUID, "user_id"),
		Category:      Category(read(&d, rec.Text, "category")),
		MonthlyBudget: read(&d, rec.Decimal, "monthly_budget"),
		CreatedAt:     read(&d, rec.Time, "created_at"),
		UpdatedAt:     read(&d, rec.Time, "updated_at"),
	}
	if d.err != nil {
		return nil, fmt.Errorf("failed to decode category budget: %w", d.err)
	}
	return b, nil
}
