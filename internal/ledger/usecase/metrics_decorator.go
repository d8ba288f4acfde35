package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/finledger/internal/entity"
	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
	"github.com/allisson/finledger/internal/metrics"
)

const metricsDomain = "ledger"

// observe records the outcome and latency of one ledger operation.
func observe(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	m.RecordOperation(ctx, metricsDomain, operation, status)
	m.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// transactionUseCaseWithMetrics decorates TransactionUseCase with metrics instrumentation.
type transactionUseCaseWithMetrics struct {
	next    TransactionUseCase
	metrics metrics.BusinessMetrics
}

// NewTransactionUseCaseWithMetrics wraps a TransactionUseCase with metrics recording.
func NewTransactionUseCaseWithMetrics(useCase TransactionUseCase, m metrics.BusinessMetrics) TransactionUseCase {
	return &transactionUseCaseWithMetrics{next: useCase, metrics: m}
}

// Create records metrics for transaction creation, installments included.
func (t *transactionUseCaseWithMetrics) Create(
	ctx context.Context,
	owner uuid.UUID,
	input CreateTransactionInput,
) ([]*ledgerDomain.Transaction, error) {
	start := time.Now()
	txs, err := t.next.Create(ctx, owner, input)
	observe(ctx, t.metrics, "transaction_create", start, err)
	return txs, err
}

// Get records metrics for transaction retrieval.
func (t *transactionUseCaseWithMetrics) Get(ctx context.Context, owner, id uuid.UUID) (*ledgerDomain.Transaction, error) {
	start := time.Now()
	tx, err := t.next.Get(ctx, owner, id)
	observe(ctx, t.metrics, "transaction_get", start, err)
	return tx, err
}

// List records metrics for transaction listing.
func (t *transactionUseCaseWithMetrics) List(
	ctx context.Context,
	owner uuid.UUID,
	filter ListTransactionsFilter,
) ([]*ledgerDomain.Transaction, error) {
	start := time.Now()
	txs, err := t.next.List(ctx, owner, filter)
	observe(ctx, t.metrics, "transaction_list", start, err)
	return txs, err
}

// Update records metrics for transaction updates.
func (t *transactionUseCaseWithMetrics) Update(
	ctx context.Context,
	owner, id uuid.UUID,
	input TransactionInput,
) (*ledgerDomain.Transaction, error) {
	start := time.Now()
	tx, err := t.next.Update(ctx, owner, id, input)
	observe(ctx, t.metrics, "transaction_update", start, err)
	return tx, err
}

// Delete records metrics for transaction deletion.
func (t *transactionUseCaseWithMetrics) Delete(ctx context.Context, owner, id uuid.UUID, mode DeleteMode) error {
	start := time.Now()
	err := t.next.Delete(ctx, owner, id, mode)
	observe(ctx, t.metrics, "transaction_delete", start, err)
	return err
}

// ToggleStatus records metrics for status toggles.
func (t *transactionUseCaseWithMetrics) ToggleStatus(
	ctx context.Context,
	owner, id uuid.UUID,
) (*ledgerDomain.Transaction, error) {
	start := time.Now()
	tx, err := t.next.ToggleStatus(ctx, owner, id)
	observe(ctx, t.metrics, "transaction_toggle", start, err)
	return tx, err
}

// accountUseCaseWithMetrics decorates AccountUseCase with metrics instrumentation.
type accountUseCaseWithMetrics struct {
	next    AccountUseCase
	metrics metrics.BusinessMetrics
}

// NewAccountUseCaseWithMetrics wraps an AccountUseCase with metrics recording.
func NewAccountUseCaseWithMetrics(useCase AccountUseCase, m metrics.BusinessMetrics) AccountUseCase {
	return &accountUseCaseWithMetrics{next: useCase, metrics: m}
}

func (a *accountUseCaseWithMetrics) Create(
	ctx context.Context,
	owner uuid.UUID,
	input AccountInput,
) (*ledgerDomain.BankAccount, error) {
	start := time.Now()
	account, err := a.next.Create(ctx, owner, input)
	observe(ctx, a.metrics, "account_create", start, err)
	return account, err
}

func (a *accountUseCaseWithMetrics) Get(ctx context.Context, owner, id uuid.UUID) (*ledgerDomain.BankAccount, error) {
	start := time.Now()
	account, err := a.next.Get(ctx, owner, id)
	observe(ctx, a.metrics, "account_get", start, err)
	return account, err
}

func (a *accountUseCaseWithMetrics) List(ctx context.Context, owner uuid.UUID) ([]*ledgerDomain.BankAccount, error) {
	start := time.Now()
	accounts, err := a.next.List(ctx, owner)
	observe(ctx, a.metrics, "account_list", start, err)
	return accounts, err
}

func (a *accountUseCaseWithMetrics) Update(
	ctx context.Context,
	owner, id uuid.UUID,
	input AccountInput,
) (*ledgerDomain.BankAccount, error) {
	start := time.Now()
	account, err := a.next.Update(ctx, owner, id, input)
	observe(ctx, a.metrics, "account_update", start, err)
	return account, err
}

func (a *accountUseCaseWithMetrics) Delete(ctx context.Context, owner, id uuid.UUID) error {
	start := time.Now()
	err := a.next.Delete(ctx, owner, id)
	observe(ctx, a.metrics, "account_delete", start, err)
	return err
}

// cardUseCaseWithMetrics decorates CardUseCase with metrics instrumentation.
type cardUseCaseWithMetrics struct {
	next    CardUseCase
	metrics metrics.BusinessMetrics
}

// NewCardUseCaseWithMetrics wraps a CardUseCase with metrics recording.
func NewCardUseCaseWithMetrics(useCase CardUseCase, m metrics.BusinessMetrics) CardUseCase {
	return &cardUseCaseWithMetrics{next: useCase, metrics: m}
}

func (c *cardUseCaseWithMetrics) Create(
	ctx context.Context,
	owner uuid.UUID,
	input CardInput,
) (*ledgerDomain.CreditCard, error) {
	start := time.Now()
	card, err := c.next.Create(ctx, owner, input)
	observe(ctx, c.metrics, "card_create", start, err)
	return card, err
}

func (c *cardUseCaseWithMetrics) Get(ctx context.Context, owner, id uuid.UUID) (*ledgerDomain.CreditCard, error) {
	start := time.Now()
	card, err := c.next.Get(ctx, owner, id)
	observe(ctx, c.metrics, "card_get", start, err)
	return card, err
}

func (c *cardUseCaseWithMetrics) List(ctx context.Context, owner uuid.UUID) ([]*ledgerDomain.CreditCard, error) {
	start := time.Now()
	cards, err := c.next.List(ctx, owner)
	observe(ctx, c.metrics, "card_list", start, err)
	return cards, err
}

func (c *cardUseCaseWithMetrics) Update(
	ctx context.Context,
	owner, id uuid.UUID,
	input CardInput,
) (*ledgerDomain.CreditCard, error) {
	start := time.Now()
	card, err := c.next.Update(ctx, owner, id, input)
	observe(ctx, c.metrics, "card_update", start, err)
	return card, err
}

func (c *cardUseCaseWithMetrics) Delete(ctx context.Context, owner, id uuid.UUID) error {
	start := time.Now()
	err := c.next.Delete(ctx, owner, id)
	observe(ctx, c.metrics, "card_delete", start, err)
	return err
}

func (c *cardUseCaseWithMetrics) NextBillAmounts(ctx context.Context, owner uuid.UUID) ([]CardBillAmount, error) {
	start := time.Now()
	amounts, err := c.next.NextBillAmounts(ctx, owner)
	observe(ctx, c.metrics, "card_next_bills", start, err)
	return amounts, err
}

// billUseCaseWithMetrics decorates BillUseCase with metrics instrumentation.
type billUseCaseWithMetrics struct {
	next    BillUseCase
	metrics metrics.BusinessMetrics
}

// NewBillUseCaseWithMetrics wraps a BillUseCase with metrics recording.
func NewBillUseCaseWithMetrics(useCase BillUseCase, m metrics.BusinessMetrics) BillUseCase {
	return &billUseCaseWithMetrics{next: useCase, metrics: m}
}

func (b *billUseCaseWithMetrics) GetOrCreate(
	ctx context.Context,
	owner, cardID uuid.UUID,
	month string,
) (*ledgerDomain.CreditCardBill, error) {
	start := time.Now()
	bill, err := b.next.GetOrCreate(ctx, owner, cardID, month)
	observe(ctx, b.metrics, "bill_get", start, err)
	return bill, err
}

func (b *billUseCaseWithMetrics) List(
	ctx context.Context,
	owner, cardID uuid.UUID,
) ([]*ledgerDomain.CreditCardBill, error) {
	start := time.Now()
	bills, err := b.next.List(ctx, owner, cardID)
	observe(ctx, b.metrics, "bill_list", start, err)
	return bills, err
}

func (b *billUseCaseWithMetrics) RecalculateTotal(
	ctx context.Context,
	owner, cardID uuid.UUID,
	month string,
) (*ledgerDomain.CreditCardBill, error) {
	start := time.Now()
	bill, err := b.next.RecalculateTotal(ctx, owner, cardID, month)
	observe(ctx, b.metrics, "bill_recalculate", start, err)
	return bill, err
}

func (b *billUseCaseWithMetrics) Pay(
	ctx context.Context,
	owner, cardID uuid.UUID,
	month string,
) (*ledgerDomain.CreditCardBill, error) {
	start := time.Now()
	bill, err := b.next.Pay(ctx, owner, cardID, month)
	observe(ctx, b.metrics, "bill_pay", start, err)
	return bill, err
}

// budgetUseCaseWithMetrics decorates BudgetUseCase with metrics instrumentation.
type budgetUseCaseWithMetrics struct {
	next    BudgetUseCase
	metrics metrics.BusinessMetrics
}

// NewBudgetUseCaseWithMetrics wraps a BudgetUseCase with metrics recording.
func NewBudgetUseCaseWithMetrics(useCase BudgetUseCase, m metrics.BusinessMetrics) BudgetUseCase {
	return &budgetUseCaseWithMetrics{next: useCase, metrics: m}
}

func (b *budgetUseCaseWithMetrics) List(ctx context.Context, owner uuid.UUID) ([]*ledgerDomain.CategoryBudget, error) {
	start := time.Now()
	budgets, err := b.next.List(ctx, owner)
	observe(ctx, b.metrics, "budget_list", start, err)
	return budgets, err
}

func (b *budgetUseCaseWithMetrics) Upsert(
	ctx context.Context,
	owner uuid.UUID,
	category ledgerDomain.Category,
	monthlyBudget decimal.Decimal,
) (*ledgerDomain.CategoryBudget, error) {
	start := time.Now()
	budget, err := b.next.Upsert(ctx, owner, category, monthlyBudget)
	observe(ctx, b.metrics, "budget_upsert", start, err)
	return budget, err
}

// recurringUseCaseWithMetrics decorates RecurringUseCase with metrics instrumentation.
type recurringUseCaseWithMetrics struct {
	next    RecurringUseCase
	metrics metrics.BusinessMetrics
}

// NewRecurringUseCaseWithMetrics wraps a RecurringUseCase with metrics recording.
func NewRecurringUseCaseWithMetrics(useCase RecurringUseCase, m metrics.BusinessMetrics) RecurringUseCase {
	return &recurringUseCaseWithMetrics{next: useCase, metrics: m}
}

func (r *recurringUseCaseWithMetrics) Create(
	ctx context.Context,
	owner uuid.UUID,
	input RecurringInput,
) (*ledgerDomain.RecurringTemplate, error) {
	start := time.Now()
	tpl, err := r.next.Create(ctx, owner, input)
	observe(ctx, r.metrics, "recurring_create", start, err)
	return tpl, err
}

func (r *recurringUseCaseWithMetrics) List(
	ctx context.Context,
	owner uuid.UUID,
) ([]*ledgerDomain.RecurringTemplate, error) {
	start := time.Now()
	templates, err := r.next.List(ctx, owner)
	observe(ctx, r.metrics, "recurring_list", start, err)
	return templates, err
}

func (r *recurringUseCaseWithMetrics) Update(
	ctx context.Context,
	owner, id uuid.UUID,
	input RecurringInput,
) (*ledgerDomain.RecurringTemplate, error) {
	start := time.Now()
	tpl, err := r.next.Update(ctx, owner, id, input)
	observe(ctx, r.metrics, "recurring_update", start, err)
	return tpl, err
}

func (r *recurringUseCaseWithMetrics) Delete(ctx context.Context, owner, id uuid.UUID) error {
	start := time.Now()
	err := r.next.Delete(ctx, owner, id)
	observe(ctx, r.metrics, "recurring_delete", start, err)
	return err
}

// balanceAuditUseCaseWithMetrics decorates BalanceAuditUseCase with metrics instrumentation.
// A successful audit also publishes the drift count of each audited entity.
type balanceAuditUseCaseWithMetrics struct {
	next    BalanceAuditUseCase
	metrics metrics.BusinessMetrics
}

// NewBalanceAuditUseCaseWithMetrics wraps a BalanceAuditUseCase with metrics recording.
func NewBalanceAuditUseCaseWithMetrics(useCase BalanceAuditUseCase, m metrics.BusinessMetrics) BalanceAuditUseCase {
	return &balanceAuditUseCaseWithMetrics{next: useCase, metrics: m}
}

func (b *balanceAuditUseCaseWithMetrics) Verify(ctx context.Context) (*ledgerDomain.DriftReport, error) {
	start := time.Now()
	report, err := b.next.Verify(ctx)
	observe(ctx, b.metrics, "balance_audit", start, err)
	if err != nil {
		return nil, err
	}

	counts := map[entity.Type]int{entity.BankAccounts: 0, entity.CreditCards: 0}
	for _, drift := range report.Drifts {
		counts[drift.Entity]++
	}
	for t, n := range counts {
		b.metrics.RecordBalanceDrifts(ctx, t.Tag(), n)
	}
	return report, nil
}
