package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/finledger/internal/httputil"
	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
	"github.com/allisson/finledger/internal/ledger/http/dto"
	ledgerUsecase "github.com/allisson/finledger/internal/ledger/usecase"
	customValidation "github.com/allisson/finledger/internal/validation"
)

// TransactionHandler handles HTTP requests for transactions. Every mutation keeps the
// cached account balances and card bills in step.
type TransactionHandler struct {
	transactionUseCase ledgerUsecase.TransactionUseCase
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(
	transactionUseCase ledgerUsecase.TransactionUseCase,
	logger *slog.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		transactionUseCase: transactionUseCase,
		logger:             logger,
	}
}

// CreateHandler creates a transaction, or one per installment.
// POST /v1/transactions
// Returns 201 Created with the created transactions.
func (h *TransactionHandler) CreateHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	created, err := h.transactionUseCase.Create(c.Request.Context(), owner, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapTransactionsToListResponse(created))
}

// GetHandler retrieves a transaction by id.
// GET /v1/transactions/:id
func (h *TransactionHandler) GetHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", h.logger)
	if !ok {
		return
	}

	tx, err := h.transactionUseCase.Get(c.Request.Context(), owner, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTransactionToResponse(tx))
}

// ListHandler lists transactions ordered by due date, newest first.
// GET /v1/transactions?month=YYYY-MM&bank_account_id=&credit_card_id=&status=&search=
func (h *TransactionHandler) ListHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	txs, err := h.transactionUseCase.List(c.Request.Context(), owner, filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTransactionsToListResponse(txs))
}

// UpdateHandler replaces the editable fields of a transaction.
// PUT /v1/transactions/:id
func (h *TransactionHandler) UpdateHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", h.logger)
	if !ok {
		return
	}

	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	tx, err := h.transactionUseCase.Update(c.Request.Context(), owner, id, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTransactionToResponse(tx))
}

// DeleteHandler deletes a transaction, or its whole installment group with mode=all.
// DELETE /v1/transactions/:id?mode=single|all
// Returns 204 No Content.
func (h *TransactionHandler) DeleteHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", h.logger)
	if !ok {
		return
	}

	mode := ledgerUsecase.DeleteMode(c.DefaultQuery("mode", string(ledgerUsecase.DeleteSingle)))
	if err := h.transactionUseCase.Delete(c.Request.Context(), owner, id, mode); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ToggleStatusHandler flips a transaction between planned and completed.
// POST /v1/transactions/:id/toggle-status
func (h *TransactionHandler) ToggleStatusHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", h.logger)
	if !ok {
		return
	}

	tx, err := h.transactionUseCase.ToggleStatus(c.Request.Context(), owner, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTransactionToResponse(tx))
}

// parseTransactionFilter reads the listing filters from the query string. Value checks
// beyond UUID parsing are left to the use case.
func parseTransactionFilter(c *gin.Context) (ledgerUsecase.ListTransactionsFilter, error) {
	filter := ledgerUsecase.ListTransactionsFilter{
		Month:  c.Query("month"),
		Status: ledgerDomain.TransactionStatus(c.Query("status")),
		Search: c.Query("search"),
	}

	for param, dst := range map[string]**uuid.UUID{
		"bank_account_id": &filter.BankAccountID,
		"credit_card_id":  &filter.CreditCardID,
	} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid %s parameter: must be a UUID", param)
		}
		*dst = &id
	}

	return filter, nil
}
