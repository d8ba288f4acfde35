package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/finledger/internal/database"
	"github.com/allisson/finledger/internal/entity"
	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
	ledgerService "github.com/allisson/finledger/internal/ledger/service"
)

// cardUseCase implements CardUseCase.
type cardUseCase struct {
	txManager database.TxManager
	records   *recordStore
	now       func() time.Time
}

// NewCardUseCase creates a credit card use case.
func NewCardUseCase(txManager database.TxManager, store Store, cipher FieldCipher, decryptConcurrency int) CardUseCase {
	return &cardUseCase{
		txManager: txManager,
		records:   newRecordStore(store, cipher, decryptConcurrency),
		now:       time.Now,
	}
}

func (c *cardUseCase) validate(input CardInput) (CardInput, error) {
	name, err := requireText(input.Name, ledgerDomain.ErrNameRequired)
	if err != nil {
		return input, err
	}
	input.Name = name
	if err := validateAmount(input.CreditLimit); err != nil {
		return input, err
	}
	if err := validateDay(input.DueDay); err != nil {
		return input, err
	}
	if err := validateDay(input.ClosingDay); err != nil {
		return input, err
	}
	return input, nil
}

// Create stores a new card with an empty bill.
func (c *cardUseCase) Create(ctx context.Context, owner uuid.UUID, input CardInput) (*ledgerDomain.CreditCard, error) {
	input, err := c.validate(input)
	if err != nil {
		return nil, err
	}

	now := c.now().UTC()
	card := &ledgerDomain.CreditCard{
		ID:          newID(),
		UserID:      owner,
		Name:        input.Name,
		CreditLimit: input.CreditLimit,
		CurrentBill: decimal.Zero,
		DueDay:      input.DueDay,
		ClosingDay:  input.ClosingDay,
		Color:       input.Color,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stored, err := c.records.insert(ctx, entity.CreditCards, card.Record())
	if err != nil {
		return nil, err
	}
	return ledgerDomain.CreditCardFromRecord(stored)
}

// Get returns a card of owner.
func (c *cardUseCase) Get(ctx context.Context, owner, id uuid.UUID) (*ledgerDomain.CreditCard, error) {
	return loadCard(ctx, c.records, owner, id)
}

// List returns the cards of owner by name.
func (c *cardUseCase) List(ctx context.Context, owner uuid.UUID) ([]*ledgerDomain.CreditCard, error) {
	rows, err := c.records.query(ctx, entity.CreditCards, entity.Where(
		entity.Eq("user_id", owner),
	).Order("name", false))
	if err != nil {
		return nil, err
	}
	return decodeAll(rows, ledgerDomain.CreditCardFromRecord)
}

// Update replaces the card settings. The current bill is owned by reconciliation and is
// left untouched.
func (c *cardUseCase) Update(
	ctx context.Context,
	owner, id uuid.UUID,
	input CardInput,
) (*ledgerDomain.CreditCard, error) {
	input, err := c.validate(input)
	if err != nil {
		return nil, err
	}

	var updated *ledgerDomain.CreditCard
	err = c.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := c.Get(ctx, owner, id); err != nil {
			return err
		}

		stored, err := c.records.update(ctx, entity.CreditCards, id, entity.Record{
			"name":         input.Name,
			"credit_limit": input.CreditLimit,
			"due_day":      input.DueDay,
			"closing_day":  input.ClosingDay,
			"color":        nullableText(input.Color),
			"updated_at":   c.now().UTC(),
		})
		if err != nil {
			return err
		}
		updated, err = ledgerDomain.CreditCardFromRecord(stored)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a card together with its bills.
func (c *cardUseCase) Delete(ctx context.Context, owner, id uuid.UUID) error {
	return c.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := c.Get(ctx, owner, id); err != nil {
			return err
		}
		return c.records.delete(ctx, entity.CreditCards, id)
	})
}

// NextBillAmounts returns, for every card of owner, the total of the bill due next.
func (c *cardUseCase) NextBillAmounts(ctx context.Context, owner uuid.UUID) ([]CardBillAmount, error) {
	cards, err := c.List(ctx, owner)
	if err != nil {
		return nil, err
	}

	today := c.now()
	amounts := make([]CardBillAmount, 0, len(cards))
	for _, card := range cards {
		month, err := ledgerService.NextBillMonth(today, card.DueDay)
		if err != nil {
			return nil, err
		}
		total, err := cardMonthTotal(ctx, c.records, owner, card.ID, month)
		if err != nil {
			return nil, err
		}
		amounts = append(amounts, CardBillAmount{
			CreditCardID: card.ID,
			Name:         card.Name,
			Month:        month,
			Amount:       total,
		})
	}
	return amounts, nil
}

// cardMonthTransactions returns the card transactions due in month.
func cardMonthTransactions(
	ctx context.Context,
	records *recordStore,
	owner, cardID uuid.UUID,
	month string,
) ([]*ledgerDomain.Transaction, error) {
	start, end, err := ledgerService.MonthRange(month)
	if err != nil {
		return nil, err
	}
	rows, err := records.query(ctx, entity.Transactions, entity.Where(
		entity.Eq("user_id", owner),
		entity.Eq("credit_card_id", cardID),
		entity.Gte("due_date", start),
		entity.Lte("due_date", end),
	).Order("due_date", false))
	if err != nil {
		return nil, err
	}
	return decodeAll(rows, ledgerDomain.TransactionFromRecord)
}

// cardMonthTotal sums the card transactions due in month.
func cardMonthTotal(
	ctx context.Context,
	records *recordStore,
	owner, cardID uuid.UUID,
	month string,
) (decimal.Decimal, error) {
	txs, err := cardMonthTransactions(ctx, records, owner, cardID, month)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total, nil
}

func nullableText(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
