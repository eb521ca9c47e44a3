package handler

import (
	"time"

	appfinance "github.com/finman/backend/internal/application/finance"
	"github.com/finman/backend/internal/domain/shared"
	"github.com/finman/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// IncomeHandler serves the income endpoints
type IncomeHandler struct {
	BaseHandler
	incomeService *appfinance.IncomeService
}

// NewIncomeHandler creates a new income handler
func NewIncomeHandler(incomeService *appfinance.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// Create handles POST /api/income
func (h *IncomeHandler) Create(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}

	var req dto.CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	receiptDate := time.Now()
	if req.ReceiptDate != nil {
		receiptDate = *req.ReceiptDate
	}

	income, err := h.incomeService.CreateIncome(c.Request.Context(), appfinance.CreateIncomeRequest{
		ClientID:       clientID,
		InstrumentID:   req.InstrumentID,
		InstrumentCode: req.InstrumentCode,
		CategoryName:   req.CategoryName,
		Description:    req.Description,
		Amount:         req.Amount,
		ReceiptDate:    receiptDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.FromIncome(income))
}
