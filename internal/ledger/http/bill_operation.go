package http

import (
	"context"

	"github.com/google/uuid"

	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
)

// billOperation is the shape shared by the month-addressed bill use case methods.
type billOperation func(
	ctx context.Context,
	owner, cardID uuid.UUID,
	month string,
) (*ledgerDomain.CreditCardBill, error)
