package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/finledger/internal/entity"
	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
)

// transactionWriter persists transaction rows and reconciles their balance effects. It
// must run inside a unit of work so a row and its effects commit together.
type transactionWriter struct {
	records    *recordStore
	reconciler Reconciler
}

// load reads a transaction of owner.
func (w *transactionWriter) load(ctx context.Context, owner, id uuid.UUID) (*ledgerDomain.Transaction, error) {
	rec, err := loadOwned(ctx, w.records, entity.Transactions, owner, id, ledgerDomain.ErrTransactionNotFound)
	if err != nil {
		return nil, err
	}
	return ledgerDomain.TransactionFromRecord(rec)
}

// insert stores tx and applies its effects from the stored row.
func (w *transactionWriter) insert(
	ctx context.Context,
	tx *ledgerDomain.Transaction,
) (*ledgerDomain.Transaction, error) {
	stored, err := w.records.insert(ctx, entity.Transactions, tx.Record())
	if err != nil {
		return nil, err
	}
	created, err := ledgerDomain.TransactionFromRecord(stored)
	if err != nil {
		return nil, err
	}

	next := created.Snapshot()
	if err := w.reconciler.Apply(ctx, nil, &next); err != nil {
		return nil, err
	}
	return created, nil
}

// replace overwrites prev with next and moves the balance effects accordingly.
func (w *transactionWriter) replace(
	ctx context.Context,
	prev, next *ledgerDomain.Transaction,
) (*ledgerDomain.Transaction, error) {
	stored, err := w.records.update(ctx, entity.Transactions, prev.ID, mutableFields(next.Record()))
	if err != nil {
		return nil, err
	}
	updated, err := ledgerDomain.TransactionFromRecord(stored)
	if err != nil {
		return nil, err
	}

	before, after := prev.Snapshot(), updated.Snapshot()
	if err := w.reconciler.Apply(ctx, &before, &after); err != nil {
		return nil, err
	}
	return updated, nil
}

// remove deletes tx and reverses its effects.
func (w *transactionWriter) remove(ctx context.Context, tx *ledgerDomain.Transaction) error {
	if err := w.records.delete(ctx, entity.Transactions, tx.ID); err != nil {
		return err
	}
	before := tx.Snapshot()
	return w.reconciler.Apply(ctx, &before, nil)
}
