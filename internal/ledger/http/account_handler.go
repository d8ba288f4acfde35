package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/finledger/internal/httputil"
	"github.com/allisson/finledger/internal/ledger/http/dto"
	ledgerUsecase "github.com/allisson/finledger/internal/ledger/usecase"
	customValidation "github.com/allisson/finledger/internal/validation"
)

// AccountHandler handles HTTP requests for bank accounts.
type AccountHandler struct {
	accountUseCase ledgerUsecase.AccountUseCase
	logger         *slog.Logger
}

// NewAccountHandler creates a new bank account handler.
func NewAccountHandler(accountUseCase ledgerUsecase.AccountUseCase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		logger:         logger,
	}
}

// CreateHandler creates a bank account. The given balance becomes its opening balance.
// POST /v1/accounts
func (h *AccountHandler) CreateHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}

	var req dto.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	account, err := h.accountUseCase.Create(c.Request.Context(), owner, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAccountToResponse(account))
}

// GetHandler retrieves a bank account by id.
// GET /v1/accounts/:id
func (h *AccountHandler) GetHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", h.logger)
	if !ok {
		return
	}

	account, err := h.accountUseCase.Get(c.Request.Context(), owner, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccountToResponse(account))
}

// ListHandler lists the owner's bank accounts by name.
// GET /v1/accounts
func (h *AccountHandler) ListHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}

	accounts, err := h.accountUseCase.List(c.Request.Context(), owner)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccountsToListResponse(accounts))
}

// UpdateHandler replaces a bank account. A changed balance is recorded as a correction.
// PUT /v1/accounts/:id
func (h *AccountHandler) UpdateHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", h.logger)
	if !ok {
		return
	}

	var req dto.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	account, err := h.accountUseCase.Update(c.Request.Context(), owner, id, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccountToResponse(account))
}

// DeleteHandler deletes a bank account.
// DELETE /v1/accounts/:id
func (h *AccountHandler) DeleteHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", h.logger)
	if !ok {
		return
	}

	if err := h.accountUseCase.Delete(c.Request.Context(), owner, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
