package domain

import (
	"github.com/allisson/finledger/internal/errors"
)

// Ledger error definitions.
var (
	// ErrTransactionNotFound indicates the transaction does not exist or belongs to another owner.
	ErrTransactionNotFound = errors.Wrap(errors.ErrNotFound, "transaction not found")

	// ErrBankAccountNotFound indicates the bank account does not exist or belongs to another owner.
	ErrBankAccountNotFound = errors.Wrap(errors.ErrNotFound, "bank account not found")

	// ErrCreditCardNotFound indicates the credit card does not exist or belongs to another owner.
	ErrCreditCardNotFound = errors.Wrap(errors.ErrNotFound, "credit card not found")

	// ErrBillNotFound indicates no bill exists for the card and month.
	ErrBillNotFound = errors.Wrap(errors.ErrNotFound, "credit card bill not found")

	// ErrRecurringTemplateNotFound indicates the template does not exist or belongs to another owner.
	ErrRecurringTemplateNotFound = errors.Wrap(errors.ErrNotFound, "recurring template not found")

	// ErrReconciliationTargetMissing indicates the account or card a snapshot routes to no
	// longer exists. The reconciler logs it and skips that side.
	ErrReconciliationTargetMissing = errors.Wrap(errors.ErrNotFound, "reconciliation target missing")

	// ErrVersionConflict indicates a conditional write lost against a concurrent writer.
	ErrVersionConflict = errors.Wrap(errors.ErrConflict, "version conflict")

	// ErrInvalidAmount indicates an amount that is not strictly positive.
	ErrInvalidAmount = errors.Wrap(errors.ErrInvalidInput, "amount must be greater than zero")

	// ErrAmountPrecision indicates an amount with digits past the cent.
	ErrAmountPrecision = errors.Wrap(errors.ErrInvalidInput, "amount must not have more than two decimal places")

	// ErrInvalidInstallmentCount indicates an installment count below one.
	ErrInvalidInstallmentCount = errors.Wrap(errors.ErrInvalidInput, "installment count must be at least 1")

	// ErrInvalidDayOfMonth indicates a closing, due or recurrence day outside 1 to 31.
	ErrInvalidDayOfMonth = errors.Wrap(errors.ErrInvalidInput, "day of month must be between 1 and 31")

	// ErrInvalidMonth indicates a month that is not in YYYY-MM form.
	ErrInvalidMonth = errors.Wrap(errors.ErrInvalidInput, "month must be in YYYY-MM format")

	// ErrAmbiguousRouting indicates a transaction routed to both an account and a card.
	ErrAmbiguousRouting = errors.Wrap(
		errors.ErrInvalidInput,
		"transaction cannot reference both a bank account and a credit card",
	)

	// ErrInstallmentsRequireCard indicates installments requested without a credit card.
	ErrInstallmentsRequireCard = errors.Wrap(errors.ErrInvalidInput, "installments require a credit card")

	// ErrDescriptionRequired indicates an empty description.
	ErrDescriptionRequired = errors.Wrap(errors.ErrInvalidInput, "description is required")

	// ErrNameRequired indicates an empty account or card name.
	ErrNameRequired = errors.Wrap(errors.ErrInvalidInput, "name is required")

	// ErrInvalidTransactionType indicates a type other than income or expense.
	ErrInvalidTransactionType = errors.Wrap(errors.ErrInvalidInput, "type must be income or expense")

	// ErrInvalidStatus indicates a status other than planned or completed.
	ErrInvalidStatus = errors.Wrap(errors.ErrInvalidInput, "status must be planned or completed")

	// ErrInvalidPaymentMethod indicates an unknown payment method.
	ErrInvalidPaymentMethod = errors.Wrap(errors.ErrInvalidInput, "invalid payment method")

	// ErrInvalidCategory indicates an unknown expense category.
	ErrInvalidCategory = errors.Wrap(errors.ErrInvalidInput, "invalid category")

	// ErrInvalidAccountType indicates an unknown bank account type.
	ErrInvalidAccountType = errors.Wrap(errors.ErrInvalidInput, "invalid account type")

	// ErrInvalidDeleteMode indicates a delete mode other than single or all.
	ErrInvalidDeleteMode = errors.Wrap(errors.ErrInvalidInput, "delete mode must be single or all")

	// ErrInvalidDate indicates a missing or out of range date.
	ErrInvalidDate = errors.Wrap(errors.ErrInvalidInput, "invalid date")
)
