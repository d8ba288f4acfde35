package app

import (
	"fmt"

	"github.com/allisson/finledger/internal/database"
	"github.com/allisson/finledger/internal/http"
	ledgerHTTP "github.com/allisson/finledger/internal/ledger/http"
	ledgerRepository "github.com/allisson/finledger/internal/ledger/repository"
	ledgerUsecase "github.com/allisson/finledger/internal/ledger/usecase"
)

type ledgerComponents struct {
	store        lazy[ledgerUsecase.Store]
	reconciler   lazy[*ledgerUsecase.BalanceReconciler]
	transactions lazy[ledgerUsecase.TransactionUseCase]
	accounts     lazy[ledgerUsecase.AccountUseCase]
	cards        lazy[ledgerUsecase.CardUseCase]
	bills        lazy[ledgerUsecase.BillUseCase]
	budgets      lazy[ledgerUsecase.BudgetUseCase]
	recurring    lazy[ledgerUsecase.RecurringUseCase]
	audit        lazy[ledgerUsecase.BalanceAuditUseCase]
}

// ledgerDeps bundles what every ledger use case is built from.
type ledgerDeps struct {
	txManager database.TxManager
	store     ledgerUsecase.Store
	cipher    ledgerUsecase.FieldCipher
}

// LedgerStore returns the record store for the configured database driver.
func (c *Container) LedgerStore() (ledgerUsecase.Store, error) {
	return c.ledger.store.get(func() (ledgerUsecase.Store, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for ledger store: %w", err)
		}

		switch c.config.DBDriver {
		case database.DriverPostgres:
			return ledgerRepository.NewPostgreSQLStore(db), nil
		case database.DriverMySQL:
			return ledgerRepository.NewMySQLStore(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
}

// BalanceReconciler returns the reconciler shared by every transaction writer.
func (c *Container) BalanceReconciler() (*ledgerUsecase.BalanceReconciler, error) {
	return c.ledger.reconciler.get(func() (*ledgerUsecase.BalanceReconciler, error) {
		deps, err := c.ledgerDependencies()
		if err != nil {
			return nil, err
		}
		return ledgerUsecase.NewBalanceReconciler(
			deps.store,
			deps.cipher,
			c.Logger(),
			c.config.BalanceMaxRetries,
		), nil
	})
}

// TransactionUseCase returns the transaction use case with metrics.
func (c *Container) TransactionUseCase() (ledgerUsecase.TransactionUseCase, error) {
	return c.ledger.transactions.get(func() (ledgerUsecase.TransactionUseCase, error) {
		deps, err := c.ledgerDependencies()
		if err != nil {
			return nil, err
		}
		reconciler, err := c.BalanceReconciler()
		if err != nil {
			return nil, fmt.Errorf("failed to get reconciler for transaction use case: %w", err)
		}
		business, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}

		useCase := ledgerUsecase.NewTransactionUseCase(
			deps.txManager,
			deps.store,
			deps.cipher,
			reconciler,
			c.Logger(),
			c.config.DecryptConcurrency,
		)
		return ledgerUsecase.NewTransactionUseCaseWithMetrics(useCase, business), nil
	})
}

// AccountUseCase returns the bank account use case with metrics.
func (c *Container) AccountUseCase() (ledgerUsecase.AccountUseCase, error) {
	return c.ledger.accounts.get(func() (ledgerUsecase.AccountUseCase, error) {
		deps, err := c.ledgerDependencies()
		if err != nil {
			return nil, err
		}
		business, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}

		useCase := ledgerUsecase.NewAccountUseCase(deps.txManager, deps.store, deps.cipher)
		return ledgerUsecase.NewAccountUseCaseWithMetrics(useCase, business), nil
	})
}

// CardUseCase returns the credit card use case with metrics.
func (c *Container) CardUseCase() (ledgerUsecase.CardUseCase, error) {
	return c.ledger.cards.get(func() (ledgerUsecase.CardUseCase, error) {
		deps, err := c.ledgerDependencies()
		if err != nil {
			return nil, err
		}
		business, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}

		useCase := ledgerUsecase.NewCardUseCase(deps.txManager, deps.store, deps.cipher, c.config.DecryptConcurrency)
		return ledgerUsecase.NewCardUseCaseWithMetrics(useCase, business), nil
	})
}

// BillUseCase returns the credit card bill use case with metrics. Paying a bill goes through
// the transaction use case.
func (c *Container) BillUseCase() (ledgerUsecase.BillUseCase, error) {
	return c.ledger.bills.get(func() (ledgerUsecase.BillUseCase, error) {
		deps, err := c.ledgerDependencies()
		if err != nil {
			return nil, err
		}
		transactions, err := c.TransactionUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get transaction use case for bill use case: %w", err)
		}
		business, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}

		useCase := ledgerUsecase.NewBillUseCase(
			deps.txManager,
			deps.store,
			deps.cipher,
			transactions,
			c.Logger(),
			c.config.DecryptConcurrency,
		)
		return ledgerUsecase.NewBillUseCaseWithMetrics(useCase, business), nil
	})
}

// BudgetUseCase returns the category budget use case with metrics.
func (c *Container) BudgetUseCase() (ledgerUsecase.BudgetUseCase, error) {
	return c.ledger.budgets.get(func() (ledgerUsecase.BudgetUseCase, error) {
		deps, err := c.ledgerDependencies()
		if err != nil {
			return nil, err
		}
		business, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}

		useCase := ledgerUsecase.NewBudgetUseCase(deps.txManager, deps.store, deps.cipher)
		return ledgerUsecase.NewBudgetUseCaseWithMetrics(useCase, business), nil
	})
}

// RecurringUseCase returns the recurring template use case with metrics.
func (c *Container) RecurringUseCase() (ledgerUsecase.RecurringUseCase, error) {
	return c.ledger.recurring.get(func() (ledgerUsecase.RecurringUseCase, error) {
		deps, err := c.ledgerDependencies()
		if err != nil {
			return nil, err
		}
		reconciler, err := c.BalanceReconciler()
		if err != nil {
			return nil, fmt.Errorf("failed to get reconciler for recurring use case: %w", err)
		}
		business, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}

		useCase := ledgerUsecase.NewRecurringUseCase(
			deps.txManager,
			deps.store,
			deps.cipher,
			reconciler,
			c.Logger(),
			c.config.DecryptConcurrency,
		)
		return ledgerUsecase.NewRecurringUseCaseWithMetrics(useCase, business), nil
	})
}

// BalanceAuditUseCase returns the read-only balance audit with metrics.
func (c *Container) BalanceAuditUseCase() (ledgerUsecase.BalanceAuditUseCase, error) {
	return c.ledger.audit.get(func() (ledgerUsecase.BalanceAuditUseCase, error) {
		deps, err := c.ledgerDependencies()
		if err != nil {
			return nil, err
		}
		business, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}

		useCase := ledgerUsecase.NewBalanceAuditUseCase(deps.store, deps.cipher, c.Logger(), c.config.DecryptConcurrency)
		return ledgerUsecase.NewBalanceAuditUseCaseWithMetrics(useCase, business), nil
	})
}

// LedgerHandlers builds the HTTP handlers mounted under /v1.
func (c *Container) LedgerHandlers() (http.LedgerHandlers, error) {
	logger := c.Logger()

	transactions, err := c.TransactionUseCase()
	if err != nil {
		return http.LedgerHandlers{}, err
	}
	accounts, err := c.AccountUseCase()
	if err != nil {
		return http.LedgerHandlers{}, err
	}
	cards, err := c.CardUseCase()
	if err != nil {
		return http.LedgerHandlers{}, err
	}
	bills, err := c.BillUseCase()
	if err != nil {
		return http.LedgerHandlers{}, err
	}
	budgets, err := c.BudgetUseCase()
	if err != nil {
		return http.LedgerHandlers{}, err
	}
	recurring, err := c.RecurringUseCase()
	if err != nil {
		return http.LedgerHandlers{}, err
	}

	return http.LedgerHandlers{
		Transactions: ledgerHTTP.NewTransactionHandler(transactions, logger),
		Accounts:     ledgerHTTP.NewAccountHandler(accounts, logger),
		Cards:        ledgerHTTP.NewCardHandler(cards, bills, logger),
		Budgets:      ledgerHTTP.NewBudgetHandler(budgets, logger),
		Recurring:    ledgerHTTP.NewRecurringHandler(recurring, logger),
	}, nil
}

func (c *Container) ledgerDependencies() (ledgerDeps, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return ledgerDeps{}, fmt.Errorf("failed to get tx manager: %w", err)
	}
	store, err := c.LedgerStore()
	if err != nil {
		return ledgerDeps{}, fmt.Errorf("failed to get ledger store: %w", err)
	}
	cipher, err := c.FieldCipher()
	if err != nil {
		return ledgerDeps{}, fmt.Errorf("failed to get field cipher: %w", err)
	}
	return ledgerDeps{txManager: txManager, store: store, cipher: cipher}, nil
}
