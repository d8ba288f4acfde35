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

// CardHandler handles HTTP requests for credit cards and their monthly bills.
type CardHandler struct {
	cardUseCase ledgerUsecase.CardUseCase
	billUseCase ledgerUsecase.BillUseCase
	logger      *slog.Logger
}

// NewCardHandler creates a new credit card handler.
func NewCardHandler(
	cardUseCase ledgerUsecase.CardUseCase,
	billUseCase ledgerUsecase.BillUseCase,
	logger *slog.Logger,
) *CardHandler {
	return &CardHandler{
		cardUseCase: cardUseCase,
		billUseCase: billUseCase,
		logger:      logger,
	}
}

// CreateHandler creates a credit card with an empty bill.
// POST /v1/cards
func (h *CardHandler) CreateHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}

	var req dto.CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	card, err := h.cardUseCase.Create(c.Request.Context(), owner, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCardToResponse(card))
}

// GetHandler retrieves a credit card by id.
// GET /v1/cards/:id
func (h *CardHandler) GetHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", h.logger)
	if !ok {
		return
	}

	card, err := h.cardUseCase.Get(c.Request.Context(), owner, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCardToResponse(card))
}

// ListHandler lists the owner's credit cards.
// GET /v1/cards
func (h *CardHandler) ListHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}

	cards, err := h.cardUseCase.List(c.Request.Context(), owner)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCardsToListResponse(cards))
}

// UpdateHandler replaces the editable fields of a credit card. The bill is untouched.
// PUT /v1/cards/:id
func (h *CardHandler) UpdateHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", h.logger)
	if !ok {
		return
	}

	var req dto.CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	card, err := h.cardUseCase.Update(c.Request.Context(), owner, id, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCardToResponse(card))
}

// DeleteHandler deletes a credit card.
// DELETE /v1/cards/:id
func (h *CardHandler) DeleteHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", h.logger)
	if !ok {
		return
	}

	if err := h.cardUseCase.Delete(c.Request.Context(), owner, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// NextBillAmountsHandler reports what each card owes on its next bill.
// GET /v1/cards/next-bill-amounts
func (h *CardHandler) NextBillAmountsHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}

	amounts, err := h.cardUseCase.NextBillAmounts(c.Request.Context(), owner)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapNextBillAmountsToListResponse(amounts))
}

// ListBillsHandler lists the bills of a card, newest month first.
// GET /v1/cards/:id/bills
func (h *CardHandler) ListBillsHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id", h.logger)
	if !ok {
		return
	}

	bills, err := h.billUseCase.List(c.Request.Context(), owner, cardID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBillsToListResponse(bills))
}

// GetBillHandler returns the bill of a month, opening it when missing.
// GET /v1/cards/:id/bills/:month
func (h *CardHandler) GetBillHandler(c *gin.Context) {
	h.billAction(c, h.billUseCase.GetOrCreate)
}

// PayBillHandler pays a month's bill and settles its planned transactions.
// POST /v1/cards/:id/bills/:month/pay
func (h *CardHandler) PayBillHandler(c *gin.Context) {
	h.billAction(c, h.billUseCase.Pay)
}

// RecalculateBillHandler recomputes a month's bill total from its transactions.
// POST /v1/cards/:id/bills/:month/recalculate
func (h *CardHandler) RecalculateBillHandler(c *gin.Context) {
	h.billAction(c, h.billUseCase.RecalculateTotal)
}

// billAction runs a bill operation addressed by card id and month.
func (h *CardHandler) billAction(c *gin.Context, action billOperation) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id", h.logger)
	if !ok {
		return
	}

	bill, err := action(c.Request.Context(), owner, cardID, c.Param("month"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBillToResponse(bill))
}
