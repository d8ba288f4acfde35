package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/finledger/internal/database"
	"github.com/allisson/finledger/internal/entity"
	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
	ledgerService "github.com/allisson/finledger/internal/ledger/service"
)

// billUseCase implements BillUseCase.
type billUseCase struct {
	txManager    database.TxManager
	records      *recordStore
	transactions TransactionUseCase
	logger       *slog.Logger
	now          func() time.Time
}

// NewBillUseCase creates a bill use case. Paying a bill completes its transactions through
// transactions, so card bills are reduced by the same reconciliation path as any toggle.
func NewBillUseCase(
	txManager database.TxManager,
	store Store,
	cipher FieldCipher,
	transactions TransactionUseCase,
	logger *slog.Logger,
	decryptConcurrency int,
) BillUseCase {
	return &billUseCase{
		txManager:    txManager,
		records:      newRecordStore(store, cipher, decryptConcurrency),
		transactions: transactions,
		logger:       logger,
		now:          time.Now,
	}
}

// GetOrCreate returns the bill of card for month, opening it when it does not exist yet.
func (b *billUseCase) GetOrCreate(
	ctx context.Context,
	owner, cardID uuid.UUID,
	month string,
) (*ledgerDomain.CreditCardBill, error) {
	if _, _, err := ledgerService.MonthRange(month); err != nil {
		return nil, err
	}

	var bill *ledgerDomain.CreditCardBill
	err := b.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		bill, err = b.getOrCreate(ctx, owner, cardID, month)
		return err
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

func (b *billUseCase) getOrCreate(
	ctx context.Context,
	owner, cardID uuid.UUID,
	month string,
) (*ledgerDomain.CreditCardBill, error) {
	if _, err := loadCard(ctx, b.records, owner, cardID); err != nil {
		return nil, err
	}

	existing, err := b.find(ctx, cardID, month)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	total, err := cardMonthTotal(ctx, b.records, owner, cardID, month)
	if err != nil {
		return nil, err
	}

	now := b.now().UTC()
	bill := &ledgerDomain.CreditCardBill{
		ID:           newID(),
		UserID:       owner,
		CreditCardID: cardID,
		Month:        month,
		Status:       ledgerDomain.BillOpen,
		TotalAmount:  total,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	stored, err := b.records.insert(ctx, entity.CreditCardBills, bill.Record())
	if err != nil {
		return nil, err
	}
	return ledgerDomain.CreditCardBillFromRecord(stored)
}

func (b *billUseCase) find(ctx context.Context, cardID uuid.UUID, month string) (*ledgerDomain.CreditCardBill, error) {
	q := entity.Where(entity.Eq("credit_card_id", cardID), entity.Eq("month", month))
	q.Limit = 1
	rows, err := b.records.query(ctx, entity.CreditCardBills, q)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return ledgerDomain.CreditCardBillFromRecord(rows[0])
}

// List returns the bills of a card, latest month first.
func (b *billUseCase) List(ctx context.Context, owner, cardID uuid.UUID) ([]*ledgerDomain.CreditCardBill, error) {
	if _, err := loadCard(ctx, b.records, owner, cardID); err != nil {
		return nil, err
	}
	rows, err := b.records.query(ctx, entity.CreditCardBills, entity.Where(
		entity.Eq("credit_card_id", cardID),
	).Order("month", true))
	if err != nil {
		return nil, err
	}
	return decodeAll(rows, ledgerDomain.CreditCardBillFromRecord)
}

// RecalculateTotal recomputes a bill total from the card transactions due that month.
func (b *billUseCase) RecalculateTotal(
	ctx context.Context,
	owner, cardID uuid.UUID,
	month string,
) (*ledgerDomain.CreditCardBill, error) {
	if _, _, err := ledgerService.MonthRange(month); err != nil {
		return nil, err
	}

	var bill *ledgerDomain.CreditCardBill
	err := b.txManager.WithTx(ctx, func(ctx context.Context) error {
		current, err := b.getOrCreate(ctx, owner, cardID, month)
		if err != nil {
			return err
		}
		bill, err = b.refreshTotal(ctx, owner, current, entity.Record{})
		return err
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// Pay completes every planned card transaction due in month and marks the bill paid.
// Paying a paid bill returns it unchanged.
func (b *billUseCase) Pay(
	ctx context.Context,
	owner, cardID uuid.UUID,
	month string,
) (*ledgerDomain.CreditCardBill, error) {
	if _, _, err := ledgerService.MonthRange(month); err != nil {
		return nil, err
	}

	var bill *ledgerDomain.CreditCardBill
	err := b.txManager.WithTx(ctx, func(ctx context.Context) error {
		current, err := b.getOrCreate(ctx, owner, cardID, month)
		if err != nil {
			return err
		}
		if current.Status == ledgerDomain.BillPaid {
			bill = current
			return nil
		}

		txs, err := cardMonthTransactions(ctx, b.records, owner, cardID, month)
		if err != nil {
			return err
		}
		settled := 0
		for _, tx := range txs {
			if tx.Status != ledgerDomain.StatusPlanned {
				continue
			}
			if _, err := b.transactions.ToggleStatus(ctx, owner, tx.ID); err != nil {
				return err
			}
			settled++
		}

		today := ledgerDomain.DateOf(b.now())
		bill, err = b.refreshTotal(ctx, owner, current, entity.Record{
			"status":    string(ledgerDomain.BillPaid),
			"paid_date": today,
		})
		if err != nil {
			return err
		}

		b.logger.InfoContext(ctx, "credit card bill paid",
			slog.String("credit_card_id", cardID.String()),
			slog.String("month", month),
			slog.Int("settled_transactions", settled),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// refreshTotal writes patch together with a recomputed total.
func (b *billUseCase) refreshTotal(
	ctx context.Context,
	owner uuid.UUID,
	bill *ledgerDomain.CreditCardBill,
	patch entity.Record,
) (*ledgerDomain.CreditCardBill, error) {
	total, err := cardMonthTotal(ctx, b.records, owner, bill.CreditCardID, bill.Month)
	if err != nil {
		return nil, err
	}
	patch["total_amount"] = total
	patch["updated_at"] = b.now().UTC()

	stored, err := b.records.update(ctx, entity.CreditCardBills, bill.ID, patch)
	if err != nil {
		return nil, err
	}
	return ledgerDomain.CreditCardBillFromRecord(stored)
}
