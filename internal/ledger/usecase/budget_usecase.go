package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/finledger/internal/database"
	"github.com/allisson/finledger/internal/entity"
	apperrors "github.com/allisson/finledger/internal/errors"
	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
)

// budgetUseCase implements BudgetUseCase.
type budgetUseCase struct {
	txManager database.TxManager
	records   *recordStore
	now       func() time.Time
}

// NewBudgetUseCase creates a category budget use case.
func NewBudgetUseCase(txManager database.TxManager, store Store, cipher FieldCipher) BudgetUseCase {
	return &budgetUseCase{
		txManager: txManager,
		records:   newRecordStore(store, cipher, 1),
		now:       time.Now,
	}
}

// List returns the budgets of owner by category.
func (b *budgetUseCase) List(ctx context.Context, owner uuid.UUID) ([]*ledgerDomain.CategoryBudget, error) {
	rows, err := b.records.query(ctx, entity.CategoryBudgets, entity.Where(
		entity.Eq("user_id", owner),
	).Order("category", false))
	if err != nil {
		return nil, err
	}
	return decodeAll(rows, ledgerDomain.CategoryBudgetFromRecord)
}

// Upsert sets the monthly budget of category.
func (b *budgetUseCase) Upsert(
	ctx context.Context,
	owner uuid.UUID,
	category ledgerDomain.Category,
	monthlyBudget decimal.Decimal,
) (*ledgerDomain.CategoryBudget, error) {
	if !category.Valid() {
		return nil, ledgerDomain.ErrInvalidCategory
	}
	if monthlyBudget.IsNegative() {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "monthly budget must not be negative")
	}
	if !ledgerDomain.WholeCents(monthlyBudget) {
		return nil, ledgerDomain.ErrAmountPrecision
	}

	var budget *ledgerDomain.CategoryBudget
	err := b.txManager.WithTx(ctx, func(ctx context.Context) error {
		q := entity.Where(entity.Eq("user_id", owner), entity.Eq("category", string(category)))
		q.Limit = 1
		rows, err := b.records.query(ctx, entity.CategoryBudgets, q)
		if err != nil {
			return err
		}

		now := b.now().UTC()
		var stored entity.Record
		if len(rows) > 0 {
			id, err := rows[0].UUID("id")
			if err != nil {
				return err
			}
			stored, err = b.records.update(ctx, entity.CategoryBudgets, id, entity.Record{
				"monthly_budget": monthlyBudget,
				"updated_at":     now,
			})
			if err != nil {
				return err
			}
		} else {
			created := &ledgerDomain.CategoryBudget{
				ID:            newID(),
				UserID:        owner,
				Category:      category,
				MonthlyBudget: monthlyBudget,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			stored, err = b.records.insert(ctx, entity.CategoryBudgets, created.Record())
			if err != nil {
				return err
			}
		}

		budget, err = ledgerDomain.CategoryBudgetFromRecord(stored)
		return err
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}
