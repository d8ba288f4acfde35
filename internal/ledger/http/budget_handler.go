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

// BudgetHandler handles HTTP requests for category budgets.
type BudgetHandler struct {
	budgetUseCase ledgerUsecase.BudgetUseCase
	logger        *slog.Logger
}

// NewBudgetHandler creates a new category budget handler.
func NewBudgetHandler(budgetUseCase ledgerUsecase.BudgetUseCase, logger *slog.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetUseCase: budgetUseCase,
		logger:        logger,
	}
}

// ListHandler lists the owner's budgets by category.
// GET /v1/budgets
func (h *BudgetHandler) ListHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}

	budgets, err := h.budgetUseCase.List(c.Request.Context(), owner)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBudgetsToListResponse(budgets))
}

// UpsertHandler sets the monthly budget of a category.
// PUT /v1/budgets
func (h *BudgetHandler) UpsertHandler(c *gin.Context) {
	owner, ok := mustOwner(c, h.logger)
	if !ok {
		return
	}

	var req dto.BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	budget, err := h.budgetUseCase.Upsert(c.Request.Context(), owner, req.Category, req.MonthlyBudget)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBudgetToResponse(budget))
}
