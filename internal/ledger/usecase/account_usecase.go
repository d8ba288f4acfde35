package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/finledger/internal/database"
	"github.com/allisson/finledger/internal/entity"
	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
)

// accountUseCase implements AccountUseCase.
type accountUseCase struct {
	txManager database.TxManager
	records   *recordStore
	now       func() time.Time
}

// NewAccountUseCase creates a bank account use case.
func NewAccountUseCase(txManager database.TxManager, store Store, cipher FieldCipher) AccountUseCase {
	return &accountUseCase{
		txManager: txManager,
		records:   newRecordStore(store, cipher, 1),
		now:       time.Now,
	}
}

func (a *accountUseCase) validate(input AccountInput) (AccountInput, error) {
	name, err := requireText(input.Name, ledgerDomain.ErrNameRequired)
	if err != nil {
		return input, err
	}
	input.Name = name
	if !input.Type.Valid() {
		return input, ledgerDomain.ErrInvalidAccountType
	}
	if !ledgerDomain.WholeCents(input.Balance) {
		return input, ledgerDomain.ErrAmountPrecision
	}
	return input, nil
}

// Create stores a new account holding its initial balance.
func (a *accountUseCase) Create(
	ctx context.Context,
	owner uuid.UUID,
	input AccountInput,
) (*ledgerDomain.BankAccount, error) {
	input, err := a.validate(input)
	if err != nil {
		return nil, err
	}

	now := a.now().UTC()
	account := &ledgerDomain.BankAccount{
		ID:             newID(),
		UserID:         owner,
		Name:           input.Name,
		Type:           input.Type,
		Balance:        input.Balance,
		OpeningBalance: input.Balance,
		BankName:       input.BankName,
		Color:          input.Color,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	stored, err := a.records.insert(ctx, entity.BankAccounts, account.Record())
	if err != nil {
		return nil, err
	}
	return ledgerDomain.BankAccountFromRecord(stored)
}

// Get returns an account of owner.
func (a *accountUseCase) Get(ctx context.Context, owner, id uuid.UUID) (*ledgerDomain.BankAccount, error) {
	rec, err := loadOwned(ctx, a.records, entity.BankAccounts, owner, id, ledgerDomain.ErrBankAccountNotFound)
	if err != nil {
		return nil, err
	}
	return ledgerDomain.BankAccountFromRecord(rec)
}

// List returns the accounts of owner by name.
func (a *accountUseCase) List(ctx context.Context, owner uuid.UUID) ([]*ledgerDomain.BankAccount, error) {
	rows, err := a.records.query(ctx, entity.BankAccounts, entity.Where(
		entity.Eq("user_id", owner),
	).Order("name", false))
	if err != nil {
		return nil, err
	}
	return decodeAll(rows, ledgerDomain.BankAccountFromRecord)
}

// Update replaces the account fields. A balance change is a manual correction and moves the
// opening balance by the same amount. The write is conditional on the version read, so a
// correction never silently overwrites a concurrent reconciliation.
func (a *accountUseCase) Update(
	ctx context.Context,
	owner, id uuid.UUID,
	input AccountInput,
) (*ledgerDomain.BankAccount, error) {
	input, err := a.validate(input)
	if err != nil {
		return nil, err
	}

	var updated *ledgerDomain.BankAccount
	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		current, err := a.Get(ctx, owner, id)
		if err != nil {
			return err
		}

		current.Name = input.Name
		current.Type = input.Type
		current.OpeningBalance = current.OpeningBalance.Add(input.Balance.Sub(current.Balance))
		current.Balance = input.Balance
		current.BankName = input.BankName
		current.Color = input.Color
		current.UpdatedAt = a.now().UTC()

		stored, err := a.records.updateVersioned(
			ctx, entity.BankAccounts, id, current.Version, mutableFields(current.Record()),
		)
		if err != nil {
			return err
		}
		updated, err = ledgerDomain.BankAccountFromRecord(stored)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an account. Transactions routed to it lose their account reference.
func (a *accountUseCase) Delete(ctx context.Context, owner, id uuid.UUID) error {
	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := a.Get(ctx, owner, id); err != nil {
			return err
		}
		return a.records.delete(ctx, entity.BankAccounts, id)
	})
}
