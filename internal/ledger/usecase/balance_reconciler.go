package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/finledger/internal/entity"
	apperrors "github.com/allisson/finledger/internal/errors"
	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
)

// DefaultBalanceMaxRetries bounds the compare-and-swap retries of one balance adjustment.
const DefaultBalanceMaxRetries = 5

// BalanceReconciler keeps bank account balances and credit card bills equal to the
// aggregate of the transactions routed to them.
//
// The account side and the card side are handled independently: the previous snapshot's
// contribution is reversed, then the next snapshot's contribution is applied. Each
// adjustment is a compare-and-swap on the row version, so concurrent writers never lose
// updates. A target that no longer exists is logged and skipped.
type BalanceReconciler struct {
	records    *recordStore
	logger     *slog.Logger
	maxRetries int
}

// NewBalanceReconciler creates a reconciler. A maxRetries below zero uses the default.
func NewBalanceReconciler(
	store Store,
	cipher FieldCipher,
	logger *slog.Logger,
	maxRetries int,
) *BalanceReconciler {
	if maxRetries < 0 {
		maxRetries = DefaultBalanceMaxRetries
	}
	return &BalanceReconciler{
		records:    newRecordStore(store, cipher, 1),
		logger:     logger,
		maxRetries: maxRetries,
	}
}

// target is one cached aggregate: a column of a versioned row.
type target struct {
	entity entity.Type
	column string
	clamp  bool
}

var (
	accountBalance = target{entity: entity.BankAccounts, column: "balance"}
	cardBill       = target{entity: entity.CreditCards, column: "current_bill", clamp: true}
)

// Apply moves the balance effects of prev to next.
func (r *BalanceReconciler) Apply(ctx context.Context, prev, next *ledgerDomain.TxSnapshot) error {
	if prev != nil && prev.BankAccountID != nil {
		if err := r.adjust(ctx, accountBalance, *prev.BankAccountID, prev.AccountDelta().Neg()); err != nil {
			return err
		}
	}
	if next != nil && next.BankAccountID != nil {
		if err := r.adjust(ctx, accountBalance, *next.BankAccountID, next.AccountDelta()); err != nil {
			return err
		}
	}

	if prev != nil && prev.CreditCardID != nil {
		if err := r.adjust(ctx, cardBill, *prev.CreditCardID, prev.BillDelta().Neg()); err != nil {
			return err
		}
	}
	if next != nil && next.CreditCardID != nil {
		if err := r.adjust(ctx, cardBill, *next.CreditCardID, next.BillDelta()); err != nil {
			return err
		}
	}
	return nil
}

func (r *BalanceReconciler) adjust(ctx context.Context, t target, id uuid.UUID, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}

	for attempt := 0; ; attempt++ {
		err := r.tryAdjust(ctx, t, id, delta)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, apperrors.ErrNotFound):
			r.logger.WarnContext(ctx, "skipping balance adjustment",
				slog.String("entity", t.entity.Tag()),
				slog.String("id", id.String()),
				slog.String("delta", delta.String()),
				slog.Any("error", ledgerDomain.ErrReconciliationTargetMissing),
			)
			return nil
		case errors.Is(err, ledgerDomain.ErrVersionConflict) && attempt < r.maxRetries:
			r.logger.DebugContext(ctx, "balance adjustment conflict, retrying",
				slog.String("entity", t.entity.Tag()),
				slog.String("id", id.String()),
				slog.Int("attempt", attempt+1),
			)
			continue
		default:
			return fmt.Errorf("failed to adjust %s.%s of %s: %w", t.entity.Tag(), t.column, id, err)
		}
	}
}

func (r *BalanceReconciler) tryAdjust(ctx context.Context, t target, id uuid.UUID, delta decimal.Decimal) error {
	rec, err := r.records.get(ctx, t.entity, id)
	if err != nil {
		return err
	}
	current, err := rec.Decimal(t.column)
	if err != nil {
		return err
	}
	version, err := rec.Int64("version")
	if err != nil {
		return err
	}

	next := current.Add(delta)
	if t.clamp && next.IsNegative() {
		next = decimal.Zero
	}

	_, err = r.records.updateVersioned(ctx, t.entity, id, version, entity.Record{t.column: next})
	return err
}
