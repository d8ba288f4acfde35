package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
)

func rentInput(accountID uuid.UUID) RecurringInput {
	return RecurringInput{
		Description:   "Aluguel",
		Amount:        dec("1800"),
		Type:          ledgerDomain.TransactionExpense,
		Category:      ptr(ledgerDomain.CategoryFixedHousing),
		DayOfMonth:    10,
		EndDate:       date(2026, time.May, 31),
		PaymentMethod: ptr(ledgerDomain.PaymentBoleto),
		BankAccountID: &accountID,
	}
}

func (l *ledger) generated(t *testing.T, templateID uuid.UUID) []*ledgerDomain.Transaction {
	t.Helper()
	all, err := l.transactions.List(context.Background(), l.owner, ListTransactionsFilter{})
	require.NoError(t, err)
	var out []*ledgerDomain.Transaction
	for i := len(all) - 1; i >= 0; i-- {
		if tx := all[i]; tx.RecurringGroupID != nil && *tx.RecurringGroupID == templateID {
			out = append(out, tx)
		}
	}
	return out
}

func TestRecurringUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("materializes the remaining months as planned", func(t *testing.T) {
		l := newLedger(t)
		account := l.account(t, "5000")

		tpl, err := l.recurring.Create(ctx, l.owner, rentInput(account.ID))

		require.NoError(t, err)
		assert.True(t, tpl.IsActive)
		rows := l.generated(t, tpl.ID)
		require.Len(t, rows, 3)
		for i, want := range []time.Time{
			date(2026, time.March, 10),
			date(2026, time.April, 10),
			date(2026, time.May, 10),
		} {
			assert.Equal(t, want, rows[i].DueDate)
			assert.Equal(t, ledgerDomain.StatusPlanned, rows[i].Status)
			assert.Equal(t, "Aluguel", rows[i].Description)
			requireDecimal(t, "1800", rows[i].Amount)
		}
		requireDecimal(t, "5000", l.balance(t, account.ID))
	})

	t.Run("month end days are clamped", func(t *testing.T) {
		l := newLedger(t)
		account := l.account(t, "0")
		input := rentInput(account.ID)
		input.DayOfMonth = 31
		input.EndDate = date(2026, time.April, 30)

		tpl, err := l.recurring.Create(ctx, l.owner, input)

		require.NoError(t, err)
		rows := l.generated(t, tpl.ID)
		require.Len(t, rows, 3)
		assert.Equal(t, date(2026, time.February, 28), rows[0].DueDate)
		assert.Equal(t, date(2026, time.March, 31), rows[1].DueDate)
		assert.Equal(t, date(2026, time.April, 30), rows[2].DueDate)
	})

	t.Run("card templates raise the bill", func(t *testing.T) {
		l := newLedger(t)
		card := l.card(t)
		input := RecurringInput{
			Description:   "Spotify",
			Amount:        dec("21.90"),
			Type:          ledgerDomain.TransactionExpense,
			DayOfMonth:    15,
			EndDate:       date(2026, time.April, 15),
			PaymentMethod: ptr(ledgerDomain.PaymentCredit),
			CreditCardID:  &card.ID,
		}

		_, err := l.recurring.Create(ctx, l.owner, input)

		require.NoError(t, err)
		requireDecimal(t, "65.70", l.bill(t, card.ID))
	})

	t.Run("validation", func(t *testing.T) {
		l := newLedger(t)
		account := l.account(t, "0")
		card := l.card(t)

		input := rentInput(account.ID)
		input.DayOfMonth = 0
		_, err := l.recurring.Create(ctx, l.owner, input)
		assert.ErrorIs(t, err, ledgerDomain.ErrInvalidDayOfMonth)

		input = rentInput(account.ID)
		input.PaymentMethod = nil
		input.CreditCardID = &card.ID
		_, err = l.recurring.Create(ctx, l.owner, input)
		assert.ErrorIs(t, err, ledgerDomain.ErrAmbiguousRouting)

		input = rentInput(account.ID)
		input.EndDate = time.Time{}
		_, err = l.recurring.Create(ctx, l.owner, input)
		assert.ErrorIs(t, err, ledgerDomain.ErrInvalidDate)

		_, err = l.recurring.Create(ctx, uuid.Must(uuid.NewV7()), rentInput(account.ID))
		assert.ErrorIs(t, err, ledgerDomain.ErrBankAccountNotFound)
	})
}

func TestRecurringUseCase_Update(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	account := l.account(t, "5000")
	tpl, err := l.recurring.Create(ctx, l.owner, rentInput(account.ID))
	require.NoError(t, err)

	// Paying March early keeps that row out of the regeneration.
	rows := l.generated(t, tpl.ID)
	_, err = l.transactions.ToggleStatus(ctx, l.owner, rows[0].ID)
	require.NoError(t, err)
	requireDecimal(t, "3200", l.balance(t, account.ID))

	input := rentInput(account.ID)
	input.Amount = dec("1950")
	input.DayOfMonth = 15
	updated, err := l.recurring.Update(ctx, l.owner, tpl.ID, input)

	require.NoError(t, err)
	assert.Equal(t, 15, updated.DayOfMonth)
	requireDecimal(t, "1950", updated.Amount)

	rows = l.generated(t, tpl.ID)
	require.Len(t, rows, 5)
	assert.Equal(t, date(2026, time.February, 15), rows[0].DueDate)
	requireDecimal(t, "1950", rows[0].Amount)
	assert.Equal(t, date(2026, time.March, 10), rows[1].DueDate)
	assert.Equal(t, ledgerDomain.StatusCompleted, rows[1].Status)
	requireDecimal(t, "1800", rows[1].Amount)
	assert.Equal(t, date(2026, time.March, 15), rows[2].DueDate)
	assert.Equal(t, date(2026, time.May, 15), rows[4].DueDate)
	requireDecimal(t, "3200", l.balance(t, account.ID))

	_, err = l.recurring.Update(ctx, uuid.Must(uuid.NewV7()), tpl.ID, input)
	assert.ErrorIs(t, err, ledgerDomain.ErrRecurringTemplateNotFound)
}

func TestRecurringUseCase_ListDelete(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	card := l.card(t)
	account := l.account(t, "0")

	rent, err := l.recurring.Create(ctx, l.owner, rentInput(account.ID))
	require.NoError(t, err)
	gym := RecurringInput{
		Description:   "Academia",
		Amount:        dec("99.90"),
		Type:          ledgerDomain.TransactionExpense,
		DayOfMonth:    5,
		EndDate:       date(2026, time.June, 30),
		PaymentMethod: ptr(ledgerDomain.PaymentCredit),
		CreditCardID:  &card.ID,
	}
	gymTpl, err := l.recurring.Create(ctx, l.owner, gym)
	require.NoError(t, err)
	requireDecimal(t, "399.60", l.bill(t, card.ID))

	templates, err := l.recurring.List(ctx, l.owner)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, gymTpl.ID, templates[0].ID)
	assert.Equal(t, rent.ID, templates[1].ID)

	require.NoError(t, l.recurring.Delete(ctx, l.owner, gymTpl.ID))

	templates, err = l.recurring.List(ctx, l.owner)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, rent.ID, templates[0].ID)
	assert.Empty(t, l.generated(t, gymTpl.ID))
	requireDecimal(t, "0", l.bill(t, card.ID))

	err = l.recurring.Delete(ctx, uuid.Must(uuid.NewV7()), rent.ID)
	assert.ErrorIs(t, err, ledgerDomain.ErrRecurringTemplateNotFound)
}
