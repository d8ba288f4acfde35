package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/finledger/internal/entity"
	apperrors "github.com/allisson/finledger/internal/errors"
	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
)

func TestTransactionUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("completed expense debits the account", func(t *testing.T) {
		l := newLedger(t)
		account := l.account(t, "1000")

		tx := l.expense(t, "150.75", ledgerDomain.StatusCompleted, &account.ID, nil)

		assert.Equal(t, ledgerDomain.StatusCompleted, tx.Status)
		require.NotNil(t, tx.CompletedDate)
		assert.Equal(t, date(2026, time.February, 12), *tx.CompletedDate)
		assert.Equal(t, l.owner, tx.UserID)
		requireDecimal(t, "849.25", l.balance(t, account.ID))
	})

	t.Run("status defaults to completed", func(t *testing.T) {
		l := newLedger(t)
		account := l.account(t, "0")

		created, err := l.transactions.Create(ctx, l.owner, CreateTransactionInput{
			TransactionInput: TransactionInput{
				Description:   "Salário",
				Amount:        dec("5000"),
				Type:          ledgerDomain.TransactionIncome,
				DueDate:       fixedNow,
				BankAccountID: &account.ID,
			},
		})

		require.NoError(t, err)
		assert.Equal(t, ledgerDomain.StatusCompleted, created[0].Status)
		requireDecimal(t, "5000", l.balance(t, account.ID))
	})

	t.Run("planned card expense raises the bill", func(t *testing.T) {
		l := newLedger(t)
		card := l.card(t)

		tx := l.expense(t, "89.90", ledgerDomain.StatusPlanned, nil, &card.ID)

		assert.Nil(t, tx.CompletedDate)
		requireDecimal(t, "89.90", l.bill(t, card.ID))
	})

	t.Run("sensitive fields are encrypted at rest", func(t *testing.T) {
		l := newLedger(t)
		account := l.account(t, "0")

		tx := l.expense(t, "42", ledgerDomain.StatusPlanned, &account.ID, nil)

		assert.NotEqual(t, "Mercado", l.storedText(t, entity.Transactions, tx.ID, "description"))
		assert.NotEqual(t, "42", l.storedText(t, entity.Transactions, tx.ID, "amount"))
		assert.Equal(t, "Mercado", tx.Description)
		requireDecimal(t, "42", tx.Amount)
	})

	t.Run("routing rules", func(t *testing.T) {
		l := newLedger(t)
		account := l.account(t, "1000")
		card := l.card(t)
		food := ledgerDomain.CategoryVariableFood

		create := func(input TransactionInput) (*ledgerDomain.Transaction, error) {
			if input.Description == "" {
				input.Description = "Padaria"
			}
			if input.Amount.IsZero() {
				input.Amount = dec("10")
			}
			if input.Type == "" {
				input.Type = ledgerDomain.TransactionExpense
			}
			input.Status = ledgerDomain.StatusPlanned
			input.DueDate = fixedNow
			created, err := l.transactions.Create(ctx, l.owner, CreateTransactionInput{TransactionInput: input})
			if err != nil {
				return nil, err
			}
			return created[0], nil
		}

		tx, err := create(TransactionInput{
			PaymentMethod: ptr(ledgerDomain.PaymentCredit),
			BankAccountID: &account.ID,
			CreditCardID:  &card.ID,
		})
		require.NoError(t, err)
		assert.Nil(t, tx.BankAccountID)
		assert.Equal(t, card.ID, *tx.CreditCardID)

		tx, err = create(TransactionInput{
			PaymentMethod: ptr(ledgerDomain.PaymentPix),
			BankAccountID: &account.ID,
			CreditCardID:  &card.ID,
		})
		require.NoError(t, err)
		assert.Nil(t, tx.CreditCardID)
		assert.Equal(t, account.ID, *tx.BankAccountID)

		tx, err = create(TransactionInput{
			Type:          ledgerDomain.TransactionIncome,
			Category:      &food,
			BankAccountID: &account.ID,
		})
		require.NoError(t, err)
		assert.Nil(t, tx.Category)

		tx, err = create(TransactionInput{Category: &food})
		require.NoError(t, err)
		assert.Equal(t, food, *tx.Category)
		assert.Nil(t, tx.BankAccountID)
		assert.Nil(t, tx.CreditCardID)

		_, err = create(TransactionInput{BankAccountID: &account.ID, CreditCardID: &card.ID})
		assert.ErrorIs(t, err, ledgerDomain.ErrAmbiguousRouting)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("invalid input", func(t *testing.T) {
		l := newLedger(t)
		valid := TransactionInput{
			Description: "Mercado",
			Amount:      dec("10"),
			Type:        ledgerDomain.TransactionExpense,
			DueDate:     fixedNow,
		}

		tests := []struct {
			name   string
			mutate func(in *CreateTransactionInput)
			want   error
		}{
			{
				"blank description",
				func(in *CreateTransactionInput) { in.Description = "  " },
				ledgerDomain.ErrDescriptionRequired,
			},
			{"zero amount", func(in *CreateTransactionInput) { in.Amount = dec("0") }, ledgerDomain.ErrInvalidAmount},
			{"negative amount", func(in *CreateTransactionInput) { in.Amount = dec("-1") }, ledgerDomain.ErrInvalidAmount},
			{"sub-cent amount", func(in *CreateTransactionInput) { in.Amount = dec("10.005") }, ledgerDomain.ErrAmountPrecision},
			{
				"unknown type",
				func(in *CreateTransactionInput) { in.Type = "transfer" },
				ledgerDomain.ErrInvalidTransactionType,
			},
			{"unknown status", func(in *CreateTransactionInput) { in.Status = "cancelled" }, ledgerDomain.ErrInvalidStatus},
			{"missing due date", func(in *CreateTransactionInput) { in.DueDate = time.Time{} }, ledgerDomain.ErrInvalidDate},
			{
				"unknown category",
				func(in *CreateTransactionInput) { in.Category = ptr(ledgerDomain.Category("food")) },
				ledgerDomain.ErrInvalidCategory,
			},
			{
				"unknown payment method",
				func(in *CreateTransactionInput) { in.PaymentMethod = ptr(ledgerDomain.PaymentMethod("cheque")) },
				ledgerDomain.ErrInvalidPaymentMethod,
			},
			{
				"negative installments",
				func(in *CreateTransactionInput) { in.Installments = -1 },
				ledgerDomain.ErrInvalidInstallmentCount,
			},
			{
				"installments without card",
				func(in *CreateTransactionInput) { in.Installments = 3 },
				ledgerDomain.ErrInstallmentsRequireCard,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				input := CreateTransactionInput{TransactionInput: valid}
				tt.mutate(&input)

				_, err := l.transactions.Create(ctx, l.owner, input)

				assert.ErrorIs(t, err, tt.want)
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			})
		}
		assert.Empty(t, l.store.Rows(entity.Transactions))
	})

	t.Run("installments smaller than a cent are rejected", func(t *testing.T) {
		l := newLedger(t)
		card := l.card(t)

		_, err := l.transactions.Create(ctx, l.owner, CreateTransactionInput{
			TransactionInput: TransactionInput{
				Description:  "Chiclete",
				Amount:       dec("0.02"),
				Type:         ledgerDomain.TransactionExpense,
				DueDate:      fixedNow,
				CreditCardID: &card.ID,
			},
			Installments: 3,
		})

		assert.ErrorIs(t, err, ledgerDomain.ErrInvalidAmount)
		assert.Empty(t, l.store.Rows(entity.Transactions))
		requireDecimal(t, "0", l.bill(t, card.ID))
	})

	t.Run("targets of another owner are not found", func(t *testing.T) {
		l := newLedger(t)
		account := l.account(t, "1000")
		stranger := uuid.Must(uuid.NewV7())

		_, err := l.transactions.Create(ctx, stranger, CreateTransactionInput{
			TransactionInput: TransactionInput{
				Description:   "Mercado",
				Amount:        dec("10"),
				Type:          ledgerDomain.TransactionExpense,
				DueDate:       fixedNow,
				BankAccountID: &account.ID,
			},
		})

		assert.ErrorIs(t, err, ledgerDomain.ErrBankAccountNotFound)
		requireDecimal(t, "1000", l.balance(t, account.ID))
	})

	t.Run("reconciliation failure rolls the row back", func(t *testing.T) {
		l := newLedger(t)
		account := l.account(t, "1000")
		boom := errors.New("lock wait timeout")
		l.store.FailOn("update_versioned", entity.BankAccounts, boom)

		_, err := l.transactions.Create(ctx, l.owner, CreateTransactionInput{
			TransactionInput: TransactionInput{
				Description:   "Mercado",
				Amount:        dec("10"),
				Type:          ledgerDomain.TransactionExpense,
				DueDate:       fixedNow,
				BankAccountID: &account.ID,
			},
		})

		require.ErrorIs(t, err, boom)
		assert.Empty(t, l.store.Rows(entity.Transactions))
		l.store.FailOn("update_versioned", entity.BankAccounts, nil)
		requireDecimal(t, "1000", l.balance(t, account.ID))
	})
}

func TestTransactionUseCase_CreateInstallments(t *testing.T) {
	ctx := context.Background()

	t.Run("300 over 3 installments", func(t *testing.T) {
		l := newLedger(t)
		card := l.card(t)

		created, err := l.transactions.Create(ctx, l.owner, CreateTransactionInput{
			TransactionInput: TransactionInput{
				Description:   "Notebook",
				Amount:        dec("300"),
				Type:          ledgerDomain.TransactionExpense,
				Category:      ptr(ledgerDomain.CategoryVariableCredit),
				Status:        ledgerDomain.StatusCompleted,
				DueDate:       fixedNow,
				PaymentMethod: ptr(ledgerDomain.PaymentCredit),
				CreditCardID:  &card.ID,
			},
			Installments: 3,
		})
		require.NoError(t, err)
		require.Len(t, created, 3)

		wantDates := []time.Time{
			date(2026, time.March, 8),
			date(2026, time.April, 8),
			date(2026, time.May, 8),
		}
		parentID := created[0].ID
		for i, tx := range created {
			assert.Equal(t, []string{"Notebook (1/3)", "Notebook (2/3)", "Notebook (3/3)"}[i], tx.Description)
			requireDecimal(t, "100", tx.Amount)
			assert.Equal(t, ledgerDomain.StatusPlanned, tx.Status)
			assert.Nil(t, tx.CompletedDate)
			assert.Equal(t, wantDates[i], tx.DueDate)
			require.NotNil(t, tx.ParentTransactionID)
			assert.Equal(t, parentID, *tx.ParentTransactionID)
			assert.Equal(t, i+1, *tx.InstallmentNumber)
			assert.Equal(t, 3, *tx.TotalInstallments)
			assert.Equal(t, card.ID, *tx.CreditCardID)
		}

		requireDecimal(t, "300", l.bill(t, card.ID))
	})

	t.Run("remainder goes to the last installment", func(t *testing.T) {
		l := newLedger(t)
		card := l.card(t)

		created, err := l.transactions.Create(ctx, l.owner, CreateTransactionInput{
			TransactionInput: TransactionInput{
				Description:  "Geladeira",
				Amount:       dec("100"),
				Type:         ledgerDomain.TransactionExpense,
				DueDate:      date(2026, time.January, 1),
				CreditCardID: &card.ID,
			},
			Installments: 3,
		})
		require.NoError(t, err)

		requireDecimal(t, "33.33", created[0].Amount)
		requireDecimal(t, "33.33", created[1].Amount)
		requireDecimal(t, "33.34", created[2].Amount)
		assert.Equal(t, date(2026, time.January, 8), created[0].DueDate)
		requireDecimal(t, "100", l.bill(t, card.ID))
	})

	t.Run("failure on a later installment rolls back the whole purchase", func(t *testing.T) {
		l := newLedger(t)
		card := l.card(t)

		calls := 0
		l.store.BeforeVersionedUpdate = func(et entity.Type, _ uuid.UUID) {
			if et == entity.CreditCards {
				calls++
				if calls == 2 {
					l.store.FailOn("update_versioned", entity.CreditCards, errors.New("deadlock detected"))
				}
			}
		}

		_, err := l.transactions.Create(ctx, l.owner, CreateTransactionInput{
			TransactionInput: TransactionInput{
				Description:  "Notebook",
				Amount:       dec("300"),
				Type:         ledgerDomain.TransactionExpense,
				DueDate:      fixedNow,
				CreditCardID: &card.ID,
			},
			Installments: 3,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create installment 2/3")
		assert.Empty(t, l.store.Rows(entity.Transactions))
		l.store.FailOn("update_versioned", entity.CreditCards, nil)
		requireDecimal(t, "0", l.bill(t, card.ID))
	})
}

func TestTransactionUseCase_GetAndList(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	account := l.account(t, "1000")

	add := func(description string, due time.Time, status ledgerDomain.TransactionStatus) *ledgerDomain.Transaction {
		created, err := l.transactions.Create(ctx, l.owner, CreateTransactionInput{
			TransactionInput: TransactionInput{
				Description:   description,
				Amount:        dec("10"),
				Type:          ledgerDomain.TransactionExpense,
				Status:        status,
				DueDate:       due,
				BankAccountID: &account.ID,
			},
		})
		require.NoError(t, err)
		return created[0]
	}

	rent := add("Aluguel", date(2026, time.February, 5), ledgerDomain.StatusCompleted)
	market := add("Mercado Extra", date(2026, time.February, 20), ledgerDomain.StatusPlanned)
	add("Mercado", date(2026, time.March, 2), ledgerDomain.StatusPlanned)

	t.Run("get", func(t *testing.T) {
		got, err := l.transactions.Get(ctx, l.owner, rent.ID)
		require.NoError(t, err)
		assert.Equal(t, "Aluguel", got.Description)

		_, err = l.transactions.Get(ctx, uuid.Must(uuid.NewV7()), rent.ID)
		assert.ErrorIs(t, err, ledgerDomain.ErrTransactionNotFound)

		_, err = l.transactions.Get(ctx, l.owner, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("month filter orders by due date descending", func(t *testing.T) {
		got, err := l.transactions.List(ctx, l.owner, ListTransactionsFilter{Month: "2026-02"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, market.ID, got[0].ID)
		assert.Equal(t, rent.ID, got[1].ID)
	})

	t.Run("status and search filters", func(t *testing.T) {
		got, err := l.transactions.List(ctx, l.owner, ListTransactionsFilter{
			Status: ledgerDomain.StatusPlanned,
			Search: "  mercado ",
		})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = l.transactions.List(ctx, l.owner, ListTransactionsFilter{Search: "EXTRA"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, market.ID, got[0].ID)
	})

	t.Run("account filter and other owners", func(t *testing.T) {
		got, err := l.transactions.List(ctx, l.owner, ListTransactionsFilter{BankAccountID: &account.ID})
		require.NoError(t, err)
		assert.Len(t, got, 3)

		got, err = l.transactions.List(ctx, uuid.Must(uuid.NewV7()), ListTransactionsFilter{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("invalid filters", func(t *testing.T) {
		_, err := l.transactions.List(ctx, l.owner, ListTransactionsFilter{Month: "2026-13"})
		assert.ErrorIs(t, err, ledgerDomain.ErrInvalidMonth)

		_, err = l.transactions.List(ctx, l.owner, ListTransactionsFilter{Status: "done"})
		assert.ErrorIs(t, err, ledgerDomain.ErrInvalidStatus)
	})
}

func TestTransactionUseCase_Update(t *testing.T) {
	ctx := context.Background()

	input := func(amount string, status ledgerDomain.TransactionStatus, account, card *uuid.UUID) TransactionInput {
		return TransactionInput{
			Description:   "Mercado",
			Amount:        dec(amount),
			Type:          ledgerDomain.TransactionExpense,
			Status:        status,
			DueDate:       fixedNow,
			BankAccountID: account,
			CreditCardID:  card,
		}
	}

	t.Run("amount change moves the balance by the difference", func(t *testing.T) {
		l := newLedger(t)
		account := l.account(t, "1000")
		tx := l.expense(t, "100", ledgerDomain.StatusCompleted, &account.ID, nil)

		updated, err := l.transactions.Update(ctx, l.owner, tx.ID,
			input("150", ledgerDomain.StatusCompleted, &account.ID, nil))

		require.NoError(t, err)
		requireDecimal(t, "150", updated.Amount)
		assert.Equal(t, tx.CompletedDate, updated.CompletedDate)
		requireDecimal(t, "850", l.balance(t, account.ID))
	})

	t.Run("moving from account to card", func(t *testing.T) {
		l := newLedger(t)
		account := l.account(t, "1000")
		card := l.card(t)
		tx := l.expense(t, "100", ledgerDomain.StatusCompleted, &account.ID, nil)

		updated, err := l.transactions.Update(ctx, l.owner, tx.ID,
			input("100", ledgerDomain.StatusPlanned, nil, &card.ID))

		require.NoError(t, err)
		assert.Nil(t, updated.BankAccountID)
		assert.Nil(t, updated.CompletedDate)
		requireDecimal(t, "1000", l.balance(t, account.ID))
		requireDecimal(t, "100", l.bill(t, card.ID))
	})

	t.Run("completing a planned row sets the completed date", func(t *testing.T) {
		l := newLedger(t)
		account := l.account(t, "1000")
		tx := l.expense(t, "100", ledgerDomain.StatusPlanned, &account.ID, nil)

		updated, err := l.transactions.Update(ctx, l.owner, tx.ID,
			input("100", ledgerDomain.StatusCompleted, &account.ID, nil))

		require.NoError(t, err)
		require.NotNil(t, updated.CompletedDate)
		assert.Equal(t, date(2026, time.February, 12), *updated.CompletedDate)
		requireDecimal(t, "900", l.balance(t, account.ID))
	})

	t.Run("installment metadata is kept", func(t *testing.T) {
		l := newLedger(t)
		card := l.card(t)
		created, err := l.transactions.Create(ctx, l.owner, CreateTransactionInput{
			TransactionInput: input("200", ledgerDomain.StatusPlanned, nil, &card.ID),
			Installments:     2,
		})
		require.NoError(t, err)

		updated, err := l.transactions.Update(ctx, l.owner, created[1].ID,
			input("120", ledgerDomain.StatusPlanned, nil, &card.ID))

		require.NoError(t, err)
		assert.Equal(t, created[0].ID, *updated.ParentTransactionID)
		assert.Equal(t, 2, *updated.InstallmentNumber)
		assert.Equal(t, 2, *updated.TotalInstallments)
		requireDecimal(t, "220", l.bill(t, card.ID))
	})

	t.Run("omitted status keeps the stored one", func(t *testing.T) {
		l := newLedger(t)
		card := l.card(t)
		created, err := l.transactions.Create(ctx, l.owner, CreateTransactionInput{
			TransactionInput: input("300", ledgerDomain.StatusPlanned, nil, &card.ID),
			Installments:     3,
		})
		require.NoError(t, err)

		updated, err := l.transactions.Update(ctx, l.owner, created[0].ID,
			input("100", "", nil, &card.ID))

		require.NoError(t, err)
		assert.Equal(t, ledgerDomain.StatusPlanned, updated.Status)
		assert.Nil(t, updated.CompletedDate)
		requireDecimal(t, "300", l.bill(t, card.ID))
	})

	t.Run("omitted status keeps a completed row and its date", func(t *testing.T) {
		l := newLedger(t)
		account := l.account(t, "1000")
		tx := l.expense(t, "100", ledgerDomain.StatusCompleted, &account.ID, nil)

		updated, err := l.transactions.Update(ctx, l.owner, tx.ID,
			input("80", "", &account.ID, nil))

		require.NoError(t, err)
		assert.Equal(t, ledgerDomain.StatusCompleted, updated.Status)
		assert.Equal(t, tx.CompletedDate, updated.CompletedDate)
		requireDecimal(t, "920", l.balance(t, account.ID))
	})

	t.Run("errors", func(t *testing.T) {
		l := newLedger(t)
		account := l.account(t, "1000")
		tx := l.expense(t, "100", ledgerDomain.StatusCompleted, &account.ID, nil)

		_, err := l.transactions.Update(ctx, uuid.Must(uuid.NewV7()), tx.ID,
			input("1", ledgerDomain.StatusCompleted, nil, nil))
		assert.ErrorIs(t, err, ledgerDomain.ErrTransactionNotFound)

		_, err = l.transactions.Update(ctx, l.owner, tx.ID,
			input("0", ledgerDomain.StatusCompleted, &account.ID, nil))
		assert.ErrorIs(t, err, ledgerDomain.ErrInvalidAmount)

		missing := uuid.Must(uuid.NewV7())
		_, err = l.transactions.Update(ctx, l.owner, tx.ID,
			input("1", ledgerDomain.StatusPlanned, nil, &missing))
		assert.ErrorIs(t, err, ledgerDomain.ErrCreditCardNotFound)

		requireDecimal(t, "900", l.balance(t, account.ID))
	})
}

func TestTransactionUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	installments := func(t *testing.T, l *ledger, cardID uuid.UUID) []*ledgerDomain.Transaction {
		created, err := l.transactions.Create(ctx, l.owner, CreateTransactionInput{
			TransactionInput: TransactionInput{
				Description:  "Notebook",
				Amount:       dec("300"),
				Type:         ledgerDomain.TransactionExpense,
				DueDate:      fixedNow,
				CreditCardID: &cardID,
			},
			Installments: 3,
		})
		require.NoError(t, err)
		return created
	}

	t.Run("single reverses the balance", func(t *testing.T) {
		l := newLedger(t)
		account := l.account(t, "1000")
		tx := l.expense(t, "100", ledgerDomain.StatusCompleted, &account.ID, nil)

		require.NoError(t, l.transactions.Delete(ctx, l.owner, tx.ID, DeleteSingle))

		requireDecimal(t, "1000", l.balance(t, account.ID))
		_, err := l.transactions.Get(ctx, l.owner, tx.ID)
		assert.ErrorIs(t, err, ledgerDomain.ErrTransactionNotFound)
	})

	t.Run("single removes one installment only", func(t *testing.T) {
		l := newLedger(t)
		card := l.card(t)
		created := installments(t, l, card.ID)

		require.NoError(t, l.transactions.Delete(ctx, l.owner, created[1].ID, ""))

		assert.Len(t, l.store.Rows(entity.Transactions), 2)
		requireDecimal(t, "200", l.bill(t, card.ID))
	})

	t.Run("all removes every installment from any member", func(t *testing.T) {
		l := newLedger(t)
		card := l.card(t)
		created := installments(t, l, card.ID)
		_, err := l.transactions.ToggleStatus(ctx, l.owner, created[0].ID)
		require.NoError(t, err)

		require.NoError(t, l.transactions.Delete(ctx, l.owner, created[2].ID, DeleteAll))

		assert.Empty(t, l.store.Rows(entity.Transactions))
		requireDecimal(t, "0", l.bill(t, card.ID))
	})

	t.Run("all from a root row without parent removes its children", func(t *testing.T) {
		l := newLedger(t)
		card := l.card(t)
		created := installments(t, l, card.ID)
		root, err := l.store.Get(ctx, entity.Transactions, created[0].ID)
		require.NoError(t, err)
		root["parent_transaction_id"] = nil
		l.store.Put(entity.Transactions, root)

		require.NoError(t, l.transactions.Delete(ctx, l.owner, created[0].ID, DeleteAll))

		assert.Empty(t, l.store.Rows(entity.Transactions))
		requireDecimal(t, "0", l.bill(t, card.ID))
	})

	t.Run("all on a standalone transaction removes just it", func(t *testing.T) {
		l := newLedger(t)
		account := l.account(t, "1000")
		keep := l.expense(t, "10", ledgerDomain.StatusCompleted, &account.ID, nil)
		drop := l.expense(t, "20", ledgerDomain.StatusCompleted, &account.ID, nil)

		require.NoError(t, l.transactions.Delete(ctx, l.owner, drop.ID, DeleteAll))

		rows := l.store.Rows(entity.Transactions)
		require.Len(t, rows, 1)
		id, err := rows[0].UUID("id")
		require.NoError(t, err)
		assert.Equal(t, keep.ID, id)
		requireDecimal(t, "990", l.balance(t, account.ID))
	})

	t.Run("errors", func(t *testing.T) {
		l := newLedger(t)
		account := l.account(t, "1000")
		tx := l.expense(t, "100", ledgerDomain.StatusCompleted, &account.ID, nil)

		err := l.transactions.Delete(ctx, l.owner, tx.ID, "some")
		assert.ErrorIs(t, err, ledgerDomain.ErrInvalidDeleteMode)

		err = l.transactions.Delete(ctx, uuid.Must(uuid.NewV7()), tx.ID, DeleteSingle)
		assert.ErrorIs(t, err, ledgerDomain.ErrTransactionNotFound)

		l.store.FailOn("update_versioned", entity.BankAccounts, errors.New("timeout"))
		err = l.transactions.Delete(ctx, l.owner, tx.ID, DeleteSingle)
		require.Error(t, err)
		assert.Len(t, l.store.Rows(entity.Transactions), 1)
	})
}

func TestTransactionUseCase_ToggleStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("account transaction", func(t *testing.T) {
		l := newLedger(t)
		account := l.account(t, "1000")
		tx := l.expense(t, "250", ledgerDomain.StatusPlanned, &account.ID, nil)

		completed, err := l.transactions.ToggleStatus(ctx, l.owner, tx.ID)
		require.NoError(t, err)
		assert.Equal(t, ledgerDomain.StatusCompleted, completed.Status)
		require.NotNil(t, completed.CompletedDate)
		assert.Equal(t, date(2026, time.February, 12), *completed.CompletedDate)
		requireDecimal(t, "750", l.balance(t, account.ID))

		planned, err := l.transactions.ToggleStatus(ctx, l.owner, tx.ID)
		require.NoError(t, err)
		assert.Equal(t, ledgerDomain.StatusPlanned, planned.Status)
		assert.Nil(t, planned.CompletedDate)
		requireDecimal(t, "1000", l.balance(t, account.ID))
	})

	t.Run("card transaction", func(t *testing.T) {
		l := newLedger(t)
		card := l.card(t)
		tx := l.expense(t, "60", ledgerDomain.StatusPlanned, nil, &card.ID)

		_, err := l.transactions.ToggleStatus(ctx, l.owner, tx.ID)
		require.NoError(t, err)

		requireDecimal(t, "0", l.bill(t, card.ID))
	})

	t.Run("not found", func(t *testing.T) {
		l := newLedger(t)
		_, err := l.transactions.ToggleStatus(ctx, l.owner, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, ledgerDomain.ErrTransactionNotFound)
	})
}
