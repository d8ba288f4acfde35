package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/finledger/internal/database"
	"github.com/allisson/finledger/internal/entity"
	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
	ledgerService "github.com/allisson/finledger/internal/ledger/service"
)

// transactionUseCase implements TransactionUseCase.
type transactionUseCase struct {
	txManager database.TxManager
	records   *recordStore
	writer    *transactionWriter
	logger    *slog.Logger
	now       func() time.Time
}

// NewTransactionUseCase creates a transaction use case.
func NewTransactionUseCase(
	txManager database.TxManager,
	store Store,
	cipher FieldCipher,
	reconciler Reconciler,
	logger *slog.Logger,
	decryptConcurrency int,
) TransactionUseCase {
	records := newRecordStore(store, cipher, decryptConcurrency)
	return &transactionUseCase{
		txManager: txManager,
		records:   records,
		writer:    &transactionWriter{records: records, reconciler: reconciler},
		logger:    logger,
		now:       time.Now,
	}
}

// Create stores a single transaction, or one planned card transaction per installment.
func (t *transactionUseCase) Create(
	ctx context.Context,
	owner uuid.UUID,
	input CreateTransactionInput,
) ([]*ledgerDomain.Transaction, error) {
	if input.Installments < 0 {
		return nil, ledgerDomain.ErrInvalidInstallmentCount
	}
	if input.Status == "" {
		input.Status = ledgerDomain.StatusCompleted
	}
	base, err := t.build(owner, input.TransactionInput)
	if err != nil {
		return nil, err
	}

	var created []*ledgerDomain.Transaction
	err = t.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := checkTargets(ctx, t.records, owner, routingOf(base)); err != nil {
			return err
		}

		if input.Installments <= 1 {
			tx, err := t.writer.insert(ctx, base)
			if err != nil {
				return err
			}
			created = []*ledgerDomain.Transaction{tx}
			return nil
		}

		created, err = t.createInstallments(ctx, owner, base, input.Installments)
		return err
	})
	if err != nil {
		return nil, err
	}

	t.logger.DebugContext(ctx, "transactions created",
		slog.String("owner", owner.String()),
		slog.Int("count", len(created)),
	)
	return created, nil
}

func (t *transactionUseCase) createInstallments(
	ctx context.Context,
	owner uuid.UUID,
	base *ledgerDomain.Transaction,
	count int,
) ([]*ledgerDomain.Transaction, error) {
	if base.CreditCardID == nil {
		return nil, ledgerDomain.ErrInstallmentsRequireCard
	}
	card, err := loadCard(ctx, t.records, owner, *base.CreditCardID)
	if err != nil {
		return nil, err
	}

	dates, err := ledgerService.DueDates(base.DueDate, card.ClosingDay, card.DueDay, count)
	if err != nil {
		return nil, err
	}
	amounts, err := ledgerService.SplitAmounts(base.Amount, count)
	if err != nil {
		return nil, err
	}

	parentID := newID()
	total := count
	rows := make([]*ledgerDomain.Transaction, 0, count)
	for i := range count {
		row := *base
		number := i + 1
		row.ID = newID()
		if i == 0 {
			row.ID = parentID
		}
		row.Description = fmt.Sprintf("%s (%d/%d)", base.Description, number, count)
		row.Amount = amounts[i]
		row.Status = ledgerDomain.StatusPlanned
		row.CompletedDate = nil
		row.DueDate = dates[i]
		row.ParentTransactionID = &parentID
		row.InstallmentNumber = &number
		row.TotalInstallments = &total

		stored, err := t.writer.insert(ctx, &row)
		if err != nil {
			return nil, fmt.Errorf("failed to create installment %d/%d: %w", number, count, err)
		}
		rows = append(rows, stored)
	}
	return rows, nil
}

// Get returns a transaction of owner.
func (t *transactionUseCase) Get(ctx context.Context, owner, id uuid.UUID) (*ledgerDomain.Transaction, error) {
	return t.writer.load(ctx, owner, id)
}

// List returns the transactions of owner matching filter, latest due date first.
func (t *transactionUseCase) List(
	ctx context.Context,
	owner uuid.UUID,
	filter ListTransactionsFilter,
) ([]*ledgerDomain.Transaction, error) {
	q := entity.Where(entity.Eq("user_id", owner))
	if filter.Month != "" {
		start, end, err := ledgerService.MonthRange(filter.Month)
		if err != nil {
			return nil, err
		}
		q.Filters = append(q.Filters, entity.Gte("due_date", start), entity.Lte("due_date", end))
	}
	if filter.BankAccountID != nil {
		q.Filters = append(q.Filters, entity.Eq("bank_account_id", *filter.BankAccountID))
	}
	if filter.CreditCardID != nil {
		q.Filters = append(q.Filters, entity.Eq("credit_card_id", *filter.CreditCardID))
	}
	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, ledgerDomain.ErrInvalidStatus
		}
		q.Filters = append(q.Filters, entity.Eq("status", string(filter.Status)))
	}

	rows, err := t.records.query(ctx, entity.Transactions, q.Order("due_date", true))
	if err != nil {
		return nil, err
	}
	txs, err := decodeAll(rows, ledgerDomain.TransactionFromRecord)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	if search == "" {
		return txs, nil
	}
	matched := txs[:0]
	for _, tx := range txs {
		if strings.Contains(strings.ToLower(tx.Description), search) {
			matched = append(matched, tx)
		}
	}
	return matched, nil
}

// Update replaces the editable fields of a transaction and moves its balance effects.
func (t *transactionUseCase) Update(
	ctx context.Context,
	owner, id uuid.UUID,
	input TransactionInput,
) (*ledgerDomain.Transaction, error) {
	// An omitted status keeps the stored one.
	keepStatus := input.Status == ""
	if keepStatus {
		input.Status = ledgerDomain.StatusCompleted
	}
	fields, err := t.build(owner, input)
	if err != nil {
		return nil, err
	}

	var updated *ledgerDomain.Transaction
	err = t.txManager.WithTx(ctx, func(ctx context.Context) error {
		prev, err := t.writer.load(ctx, owner, id)
		if err != nil {
			return err
		}
		if err := checkTargets(ctx, t.records, owner, routingOf(fields)); err != nil {
			return err
		}

		next := *prev
		next.Description = fields.Description
		next.Amount = fields.Amount
		next.Type = fields.Type
		next.Category = fields.Category
		next.Status = fields.Status
		if keepStatus {
			next.Status = prev.Status
		}
		next.DueDate = fields.DueDate
		next.PaymentMethod = fields.PaymentMethod
		next.BankAccountID = fields.BankAccountID
		next.CreditCardID = fields.CreditCardID
		next.Notes = fields.Notes
		next.UpdatedAt = t.now().UTC()
		switch {
		case next.Status != ledgerDomain.StatusCompleted:
			next.CompletedDate = nil
		case prev.Status != ledgerDomain.StatusCompleted:
			next.CompletedDate = fields.CompletedDate
		}

		updated, err = t.writer.replace(ctx, prev, &next)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes one transaction, or every installment of its purchase.
func (t *transactionUseCase) Delete(ctx context.Context, owner, id uuid.UUID, mode DeleteMode) error {
	switch mode {
	case DeleteSingle, "":
		return t.txManager.WithTx(ctx, func(ctx context.Context) error {
			tx, err := t.writer.load(ctx, owner, id)
			if err != nil {
				return err
			}
			return t.writer.remove(ctx, tx)
		})
	case DeleteAll:
		return t.txManager.WithTx(ctx, func(ctx context.Context) error {
			tx, err := t.writer.load(ctx, owner, id)
			if err != nil {
				return err
			}
			siblings, err := t.siblings(ctx, owner, tx)
			if err != nil {
				return err
			}
			for _, sibling := range siblings {
				if err := t.writer.remove(ctx, sibling); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		return fmt.Errorf("%w: %q", ledgerDomain.ErrInvalidDeleteMode, mode)
	}
}

// siblings returns every installment sharing tx's purchase, the parent row first. A row
// without a parent is the root of its group and its children are looked up by its id.
func (t *transactionUseCase) siblings(
	ctx context.Context,
	owner uuid.UUID,
	tx *ledgerDomain.Transaction,
) ([]*ledgerDomain.Transaction, error) {
	var group []*ledgerDomain.Transaction
	seen := make(map[uuid.UUID]bool)

	parentID := tx.ID
	if tx.ParentTransactionID != nil {
		parentID = *tx.ParentTransactionID
		parent, err := t.writer.load(ctx, owner, parentID)
		switch {
		case err == nil:
			group = append(group, parent)
			seen[parent.ID] = true
		case !isNotFound(err):
			return nil, err
		}
	} else {
		group = append(group, tx)
		seen[tx.ID] = true
	}

	rows, err := t.records.query(ctx, entity.Transactions, entity.Where(
		entity.Eq("user_id", owner),
		entity.Eq("parent_transaction_id", parentID),
	).Order("due_date", false))
	if err != nil {
		return nil, err
	}
	children, err := decodeAll(rows, ledgerDomain.TransactionFromRecord)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		if !seen[child.ID] {
			group = append(group, child)
			seen[child.ID] = true
		}
	}
	return group, nil
}

// ToggleStatus flips a transaction between planned and completed.
func (t *transactionUseCase) ToggleStatus(ctx context.Context, owner, id uuid.UUID) (*ledgerDomain.Transaction, error) {
	var updated *ledgerDomain.Transaction
	err := t.txManager.WithTx(ctx, func(ctx context.Context) error {
		prev, err := t.writer.load(ctx, owner, id)
		if err != nil {
			return err
		}

		now := t.now().UTC()
		next := *prev
		next.Status = prev.Status.Toggled()
		next.CompletedDate = nil
		if next.Status == ledgerDomain.StatusCompleted {
			today := ledgerDomain.DateOf(now)
			next.CompletedDate = &today
		}
		next.UpdatedAt = now

		updated, err = t.writer.replace(ctx, prev, &next)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// build validates input into an unsaved transaction of owner.
func (t *transactionUseCase) build(owner uuid.UUID, input TransactionInput) (*ledgerDomain.Transaction, error) {
	description, err := requireText(input.Description, ledgerDomain.ErrDescriptionRequired)
	if err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if !input.Status.Valid() {
		return nil, ledgerDomain.ErrInvalidStatus
	}
	if input.DueDate.IsZero() {
		return nil, ledgerDomain.ErrInvalidDate
	}

	r, err := routing{
		Type:          input.Type,
		Category:      input.Category,
		PaymentMethod: input.PaymentMethod,
		BankAccountID: input.BankAccountID,
		CreditCardID:  input.CreditCardID,
	}.normalize()
	if err != nil {
		return nil, err
	}

	now := t.now().UTC()
	tx := &ledgerDomain.Transaction{
		ID:            newID(),
		UserID:        owner,
		Description:   description,
		Amount:        input.Amount,
		Type:          r.Type,
		Category:      r.Category,
		Status:        input.Status,
		DueDate:       ledgerDomain.DateOf(input.DueDate),
		PaymentMethod: r.PaymentMethod,
		BankAccountID: r.BankAccountID,
		CreditCardID:  r.CreditCardID,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if tx.Status == ledgerDomain.StatusCompleted {
		today := ledgerDomain.DateOf(now)
		tx.CompletedDate = &today
	}
	return tx, nil
}

func routingOf(tx *ledgerDomain.Transaction) routing {
	return routing{
		Type:          tx.Type,
		Category:      tx.Category,
		PaymentMethod: tx.PaymentMethod,
		BankAccountID: tx.BankAccountID,
		CreditCardID:  tx.CreditCardID,
	}
}
