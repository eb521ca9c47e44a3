package handler

import (
	appfinance "github.com/finman/backend/internal/application/finance"
	"github.com/finman/backend/internal/domain/shared"
	"github.com/finman/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// DebtHandler serves the debt endpoints
type DebtHandler struct {
	BaseHandler
	debtService *appfinance.DebtService
}

// NewDebtHandler creates a new debt handler
func NewDebtHandler(debtService *appfinance.DebtService) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// Create handles POST /api/debt
func (h *DebtHandler) Create(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}

	var req dto.CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	debt, err := h.debtService.CreateDebt(c.Request.Context(), appfinance.CreateDebtRequest{
		ClientID:         clientID,
		InstrumentID:     req.InstrumentID,
		InstrumentCode:   req.InstrumentCode,
		CategoryName:     req.CategoryName,
		Description:      req.Description,
		TotalAmount:      req.TotalAmount,
		DueDate:          req.DueDate,
		InstallmentCount: req.InstallmentCount,
		IsPaid:           req.IsPaid,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.FromDebt(debt, nil))
}

// List handles POST /api/debt/list
func (h *DebtHandler) List(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}

	var req dto.DebtFilters
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	req.Normalize()

	filter := shared.DefaultFilter()
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	filter.OrderBy = req.OrderBy
	filter.OrderDir = req.OrderDir
	if req.OnlyOpen {
		filter.Filters["open"] = true
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.AccountID != nil {
		filter.Filters["account_id"] = *req.AccountID
	}
	if req.DueBefore != nil {
		filter.Filters["due_before"] = *req.DueBefore
	}
	if req.DueAfter != nil {
		filter.Filters["due_after"] = *req.DueAfter
	}

	debts, err := h.debtService.ListDebts(c.Request.Context(), clientID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, dto.FromDebts(debts))
}
