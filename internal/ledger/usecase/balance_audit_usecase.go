package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/finledger/internal/entity"
	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
)

// balanceAuditUseCase implements BalanceAuditUseCase.
type balanceAuditUseCase struct {
	records *recordStore
	logger  *slog.Logger
}

// NewBalanceAuditUseCase creates a read-only balance audit.
func NewBalanceAuditUseCase(
	store Store,
	cipher FieldCipher,
	logger *slog.Logger,
	decryptConcurrency int,
) BalanceAuditUseCase {
	return &balanceAuditUseCase{
		records: newRecordStore(store, cipher, decryptConcurrency),
		logger:  logger,
	}
}

// Verify recomputes every account balance from its opening balance and completed
// transactions, and every card bill from its planned transactions, reporting the rows whose
// cached value differs.
func (b *balanceAuditUseCase) Verify(ctx context.Context) (*ledgerDomain.DriftReport, error) {
	report := &ledgerDomain.DriftReport{}

	accountRows, err := b.records.query(ctx, entity.BankAccounts, entity.Query{}.Order("created_at", false))
	if err != nil {
		return nil, err
	}
	accounts, err := decodeAll(accountRows, ledgerDomain.BankAccountFromRecord)
	if err != nil {
		return nil, err
	}
	for _, account := range accounts {
		movements, err := b.sum(ctx, "bank_account_id", account.ID, ledgerDomain.TxSnapshot.AccountDelta)
		if err != nil {
			return nil, err
		}
		expected := account.OpeningBalance.Add(movements)
		report.AccountsChecked++
		if !expected.Equal(account.Balance) {
			report.Drifts = append(report.Drifts, ledgerDomain.BalanceDrift{
				Entity:   entity.BankAccounts,
				ID:       account.ID,
				UserID:   account.UserID,
				Name:     account.Name,
				Cached:   account.Balance,
				Expected: expected,
			})
		}
	}

	cardRows, err := b.records.query(ctx, entity.CreditCards, entity.Query{}.Order("created_at", false))
	if err != nil {
		return nil, err
	}
	cards, err := decodeAll(cardRows, ledgerDomain.CreditCardFromRecord)
	if err != nil {
		return nil, err
	}
	for _, card := range cards {
		expected, err := b.sum(ctx, "credit_card_id", card.ID, ledgerDomain.TxSnapshot.BillDelta)
		if err != nil {
			return nil, err
		}
		report.CardsChecked++
		if !expected.Equal(card.CurrentBill) {
			report.Drifts = append(report.Drifts, ledgerDomain.BalanceDrift{
				Entity:   entity.CreditCards,
				ID:       card.ID,
				UserID:   card.UserID,
				Name:     card.Name,
				Cached:   card.CurrentBill,
				Expected: expected,
			})
		}
	}

	b.logger.InfoContext(ctx, "balance audit finished",
		slog.Int("accounts_checked", report.AccountsChecked),
		slog.Int("cards_checked", report.CardsChecked),
		slog.Int("drifts", len(report.Drifts)),
	)
	return report, nil
}

// sum adds the contribution of every transaction routed to id through column.
func (b *balanceAuditUseCase) sum(
	ctx context.Context,
	column string,
	id uuid.UUID,
	contribution func(ledgerDomain.TxSnapshot) decimal.Decimal,
) (decimal.Decimal, error) {
	rows, err := b.records.query(ctx, entity.Transactions, entity.Where(entity.Eq(column, id)))
	if err != nil {
		return decimal.Zero, err
	}
	txs, err := decodeAll(rows, ledgerDomain.TransactionFromRecord)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(contribution(tx.Snapshot()))
	}
	return total, nil
}
