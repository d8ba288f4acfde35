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

// recurringUseCase implements RecurringUseCase.
type recurringUseCase struct {
	txManager database.TxManager
	records   *recordStore
	writer    *transactionWriter
	logger    *slog.Logger
	now       func() time.Time
}

// NewRecurringUseCase creates a recurring template use case.
func NewRecurringUseCase(
	txManager database.TxManager,
	store Store,
	cipher FieldCipher,
	reconciler Reconciler,
	logger *slog.Logger,
	decryptConcurrency int,
) RecurringUseCase {
	records := newRecordStore(store, cipher, decryptConcurrency)
	return &recurringUseCase{
		txManager: txManager,
		records:   records,
		writer:    &transactionWriter{records: records, reconciler: reconciler},
		logger:    logger,
		now:       time.Now,
	}
}

func (r *recurringUseCase) validate(input RecurringInput) (RecurringInput, error) {
	description, err := requireText(input.Description, ledgerDomain.ErrDescriptionRequired)
	if err != nil {
		return input, err
	}
	input.Description = description
	if err := validateAmount(input.Amount); err != nil {
		return input, err
	}
	if err := validateDay(input.DayOfMonth); err != nil {
		return input, err
	}
	if input.EndDate.IsZero() {
		return input, ledgerDomain.ErrInvalidDate
	}
	input.EndDate = ledgerDomain.DateOf(input.EndDate)

	route, err := routing{
		Type:          input.Type,
		Category:      input.Category,
		PaymentMethod: input.PaymentMethod,
		BankAccountID: input.BankAccountID,
		CreditCardID:  input.CreditCardID,
	}.normalize()
	if err != nil {
		return input, err
	}
	input.Category = route.Category
	input.BankAccountID = route.BankAccountID
	input.CreditCardID = route.CreditCardID
	return input, nil
}

// Create stores a template and materializes its planned transactions from today on.
func (r *recurringUseCase) Create(
	ctx context.Context,
	owner uuid.UUID,
	input RecurringInput,
) (*ledgerDomain.RecurringTemplate, error) {
	input, err := r.validate(input)
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	tpl := &ledgerDomain.RecurringTemplate{
		ID:            newID(),
		UserID:        owner,
		Description:   input.Description,
		Amount:        input.Amount,
		Type:          input.Type,
		Category:      input.Category,
		DayOfMonth:    input.DayOfMonth,
		EndDate:       input.EndDate,
		PaymentMethod: input.PaymentMethod,
		BankAccountID: input.BankAccountID,
		CreditCardID:  input.CreditCardID,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var created *ledgerDomain.RecurringTemplate
	err = r.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := checkTargets(ctx, r.records, owner, templateRouting(tpl)); err != nil {
			return err
		}
		stored, err := r.records.insert(ctx, entity.RecurringTemplates, tpl.Record())
		if err != nil {
			return err
		}
		created, err = ledgerDomain.RecurringTemplateFromRecord(stored)
		if err != nil {
			return err
		}
		return r.materialize(ctx, created, ledgerDomain.DateOf(now))
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// List returns the active templates of owner.
func (r *recurringUseCase) List(ctx context.Context, owner uuid.UUID) ([]*ledgerDomain.RecurringTemplate, error) {
	rows, err := r.records.query(ctx, entity.RecurringTemplates, entity.Where(
		entity.Eq("user_id", owner),
		entity.Eq("is_active", true),
	).Order("day_of_month", false))
	if err != nil {
		return nil, err
	}
	return decodeAll(rows, ledgerDomain.RecurringTemplateFromRecord)
}

// Update replaces the template fields and regenerates its future planned transactions.
func (r *recurringUseCase) Update(
	ctx context.Context,
	owner, id uuid.UUID,
	input RecurringInput,
) (*ledgerDomain.RecurringTemplate, error) {
	input, err := r.validate(input)
	if err != nil {
		return nil, err
	}

	var updated *ledgerDomain.RecurringTemplate
	err = r.txManager.WithTx(ctx, func(ctx context.Context) error {
		current, err := r.load(ctx, owner, id)
		if err != nil {
			return err
		}

		current.Description = input.Description
		current.Amount = input.Amount
		current.Type = input.Type
		current.Category = input.Category
		current.DayOfMonth = input.DayOfMonth
		current.EndDate = input.EndDate
		current.PaymentMethod = input.PaymentMethod
		current.BankAccountID = input.BankAccountID
		current.CreditCardID = input.CreditCardID
		current.UpdatedAt = r.now().UTC()
		if err := checkTargets(ctx, r.records, owner, templateRouting(current)); err != nil {
			return err
		}

		stored, err := r.records.update(ctx, entity.RecurringTemplates, id, mutableFields(current.Record()))
		if err != nil {
			return err
		}
		updated, err = ledgerDomain.RecurringTemplateFromRecord(stored)
		if err != nil {
			return err
		}

		today := ledgerDomain.DateOf(r.now())
		if err := r.removeFuture(ctx, owner, id, today); err != nil {
			return err
		}
		if !updated.IsActive {
			return nil
		}
		return r.materialize(ctx, updated, today.AddDate(0, 0, 1))
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete deactivates a template and removes its future planned transactions.
func (r *recurringUseCase) Delete(ctx context.Context, owner, id uuid.UUID) error {
	return r.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := r.load(ctx, owner, id); err != nil {
			return err
		}
		if _, err := r.records.update(ctx, entity.RecurringTemplates, id, entity.Record{
			"is_active":  false,
			"updated_at": r.now().UTC(),
		}); err != nil {
			return err
		}
		return r.removeFuture(ctx, owner, id, ledgerDomain.DateOf(r.now()))
	})
}

func (r *recurringUseCase) load(ctx context.Context, owner, id uuid.UUID) (*ledgerDomain.RecurringTemplate, error) {
	rec, err := loadOwned(
		ctx, r.records, entity.RecurringTemplates, owner, id, ledgerDomain.ErrRecurringTemplateNotFound,
	)
	if err != nil {
		return nil, err
	}
	return ledgerDomain.RecurringTemplateFromRecord(rec)
}

// materialize inserts one planned transaction per month on the template day, for every
// date from from through the end date.
func (r *recurringUseCase) materialize(
	ctx context.Context,
	tpl *ledgerDomain.RecurringTemplate,
	from time.Time,
) error {
	now := r.now().UTC()
	count := 0
	for month := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC); !month.After(tpl.EndDate); month = month.AddDate(0, 1, 0) {
		due := ledgerService.ClampDay(month.Year(), month.Month(), tpl.DayOfMonth)
		if due.Before(from) || due.After(tpl.EndDate) {
			continue
		}

		groupID := tpl.ID
		tx := &ledgerDomain.Transaction{
			ID:               newID(),
			UserID:           tpl.UserID,
			Description:      tpl.Description,
			Amount:           tpl.Amount,
			Type:             tpl.Type,
			Category:         tpl.Category,
			Status:           ledgerDomain.StatusPlanned,
			DueDate:          due,
			PaymentMethod:    tpl.PaymentMethod,
			BankAccountID:    tpl.BankAccountID,
			CreditCardID:     tpl.CreditCardID,
			RecurringGroupID: &groupID,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if _, err := r.writer.insert(ctx, tx); err != nil {
			return err
		}
		count++
	}

	r.logger.DebugContext(ctx, "recurring transactions materialized",
		slog.String("template_id", tpl.ID.String()),
		slog.Int("count", count),
	)
	return nil
}

// removeFuture deletes the planned transactions of a template due after today.
func (r *recurringUseCase) removeFuture(ctx context.Context, owner, id uuid.UUID, today time.Time) error {
	rows, err := r.records.query(ctx, entity.Transactions, entity.Where(
		entity.Eq("user_id", owner),
		entity.Eq("recurring_group_id", id),
		entity.Eq("status", string(ledgerDomain.StatusPlanned)),
		entity.Gt("due_date", today),
	))
	if err != nil {
		return err
	}
	txs, err := decodeAll(rows, ledgerDomain.TransactionFromRecord)
	if err != nil {
		return err
	}
	for _, tx := range txs {
		if err := r.writer.remove(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}

func templateRouting(tpl *ledgerDomain.RecurringTemplate) routing {
	return routing{
		Type:          tpl.Type,
		Category:      tpl.Category,
		PaymentMethod: tpl.PaymentMethod,
		BankAccountID: tpl.BankAccountID,
		CreditCardID:  tpl.CreditCardID,
	}
}
