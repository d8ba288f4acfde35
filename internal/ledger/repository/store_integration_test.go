package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/finledger/internal/database"
	"github.com/allisson/finledger/internal/entity"
	apperrors "github.com/allisson/finledger/internal/errors"
	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
	"github.com/allisson/finledger/internal/testutil"
)

func TestPostgreSQLStore_Integration(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	exerciseStore(t, db, NewPostgreSQLStore(db))
	exerciseVersionRetry(t, db, NewPostgreSQLStore(db))
}

func TestMySQLStore_Integration(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	exerciseStore(t, db, NewMySQLStore(db))
	exerciseVersionRetry(t, db, NewMySQLStore(db))
}

func exerciseStore(t *testing.T, db *sql.DB, store *SQLStore) {
	t.Helper()
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV7())
	now := time.Now().UTC().Truncate(time.Second)

	account := &ledgerDomain.BankAccount{
		ID:             uuid.Must(uuid.NewV7()),
		UserID:         owner,
		Name:           "Checking",
		Type:           ledgerDomain.AccountChecking,
		Balance:        decimal.RequireFromString("150.25"),
		OpeningBalance: decimal.RequireFromString("150.25"),
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	rec := account.Record()
	rec["balance"] = account.Balance.String()
	rec["opening_balance"] = account.OpeningBalance.String()
	require.NoError(t, store.Insert(ctx, entity.BankAccounts, rec))

	got, err := store.Get(ctx, entity.BankAccounts, account.ID)
	require.NoError(t, err)
	loaded, err := ledgerDomain.BankAccountFromRecord(got)
	require.NoError(t, err)
	assert.Equal(t, account.ID, loaded.ID)
	assert.Equal(t, owner, loaded.UserID)
	assert.True(t, account.Balance.Equal(loaded.Balance))
	assert.Nil(t, loaded.BankName)

	updated, err := store.UpdateVersioned(ctx, entity.BankAccounts, account.ID, 1, entity.Record{"balance": "100"})
	require.NoError(t, err)
	version, err := updated.Int64("version")
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	_, err = store.UpdateVersioned(ctx, entity.BankAccounts, account.ID, 1, entity.Record{"balance": "0"})
	assert.ErrorIs(t, err, ledgerDomain.ErrVersionConflict)

	due := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	tx := &ledgerDomain.Transaction{
		ID:            uuid.Must(uuid.NewV7()),
		UserID:        owner,
		Description:   "Groceries",
		Amount:        decimal.NewFromInt(40),
		Type:          ledgerDomain.TransactionExpense,
		Status:        ledgerDomain.StatusCompleted,
		DueDate:       due,
		BankAccountID: &account.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	txRec := tx.Record()
	txRec["amount"] = tx.Amount.String()

	err = database.NewTxManager(db).WithTx(ctx, func(ctx context.Context) error {
		return store.Insert(ctx, entity.Transactions, txRec)
	})
	require.NoError(t, err)

	rows, err := store.Query(ctx, entity.Transactions, entity.Where(
		entity.Eq("user_id", owner),
		entity.Gte("due_date", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
		entity.Lte("due_date", time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)),
		entity.IsNull("credit_card_id"),
	).Order("due_date", false))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	loadedTx, err := ledgerDomain.TransactionFromRecord(rows[0])
	require.NoError(t, err)
	assert.Equal(t, due, loadedTx.DueDate)
	assert.Equal(t, account.ID, *loadedTx.BankAccountID)

	_, err = store.Update(ctx, entity.Transactions, tx.ID, entity.Record{"status": "planned"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, entity.Transactions, tx.ID))
	assert.ErrorIs(t, store.Delete(ctx, entity.Transactions, tx.ID), apperrors.ErrNotFound)
	_, err = store.Update(ctx, entity.Transactions, tx.ID, entity.Record{"status": "planned"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// exerciseVersionRetry loses a conditional write to a writer outside the transaction and
// checks that a re-read inside the same transaction sees the winner's version.
func exerciseVersionRetry(t *testing.T, db *sql.DB, store *SQLStore) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	account := &ledgerDomain.BankAccount{
		ID:             uuid.Must(uuid.NewV7()),
		UserID:         uuid.Must(uuid.NewV7()),
		Name:           "Savings",
		Type:           ledgerDomain.AccountSavings,
		Balance:        decimal.NewFromInt(100),
		OpeningBalance: decimal.NewFromInt(100),
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	rec := account.Record()
	rec["balance"] = account.Balance.String()
	rec["opening_balance"] = account.OpeningBalance.String()
	require.NoError(t, store.Insert(ctx, entity.BankAccounts, rec))

	readVersion := func(ctx context.Context) int64 {
		got, err := store.Get(ctx, entity.BankAccounts, account.ID)
		require.NoError(t, err)
		version, err := got.Int64("version")
		require.NoError(t, err)
		return version
	}

	err := database.NewTxManager(db).WithTx(ctx, func(txCtx context.Context) error {
		stale := readVersion(txCtx)

		_, err := store.UpdateVersioned(ctx, entity.BankAccounts, account.ID, stale, entity.Record{"balance": "90"})
		require.NoError(t, err)

		_, err = store.UpdateVersioned(txCtx, entity.BankAccounts, account.ID, stale, entity.Record{"balance": "80"})
		require.ErrorIs(t, err, ledgerDomain.ErrVersionConflict)

		fresh := readVersion(txCtx)
		require.Equal(t, stale+1, fresh)
		_, err = store.UpdateVersioned(txCtx, entity.BankAccounts, account.ID, fresh, entity.Record{"balance": "70"})
		return err
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, entity.BankAccounts, account.ID)
	require.NoError(t, err)
	balance, err := got.Decimal("balance")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(70).Equal(balance), "balance = %s", balance)
	assert.Equal(t, int64(3), readVersion(ctx))
}
