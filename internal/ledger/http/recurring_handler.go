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

// RecurringHandler handles HTTP requests for recurring templates.
type RecurringHandler struct {
	recurringUseCase ledgerUsecase.RecurringUseCase
	logger           *slog.Logger
}

// NewRecurringHandler creates a new recurring template handler.
func NewRecurringHandler(recurringUseCase ledgerUsecase.RecurringUseCase, logger *slog.Logger) *RecurringHandler {
	return &RecurringHandler{
		recurringUseCase: recurringUseCase,
		logger:           logger,
	}
}

// CreateHandler creates a template and materializes its planned transactions.
// POST /v1/recurring
func (h *RecurringHandler) CreateHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}

	req, ok := h.bind(c)
	if !ok {
		return
	}

	tpl, err := h.recurringUseCase.Create(c.Request.Context(), owner, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRecurringToResponse(tpl))
}

// ListHandler lists the owner's active templates.
// GET /v1/recurring
func (h *RecurringHandler) ListHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}

	templates, err := h.recurringUseCase.List(c.Request.Context(), owner)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecurringToListResponse(templates))
}

// UpdateHandler replaces a template and regenerates its planned transactions.
// PUT /v1/recurring/:id
func (h *RecurringHandler) UpdateHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", h.logger)
	if !ok {
		return
	}

	req, ok := h.bind(c)
	if !ok {
		return
	}

	tpl, err := h.recurringUseCase.Update(c.Request.Context(), owner, id, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecurringToResponse(tpl))
}

// DeleteHandler deactivates a template and removes its planned transactions.
// DELETE /v1/recurring/:id
func (h *RecurringHandler) DeleteHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", h.logger)
	if !ok {
		return
	}

	if err := h.recurringUseCase.Delete(c.Request.Context(), owner, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *RecurringHandler) bind(c *gin.Context) (*dto.RecurringRequest, bool) {
	var req dto.RecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return nil, false
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return nil, false
	}
	return &req, true
}
