package handler

import (
	"time"

	appfinance "github.com/finman/backend/internal/application/finance"
	"github.com/finman/backend/internal/domain/shared"
	"github.com/finman/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler serves the payment endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *appfinance.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *appfinance.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create handles POST /api/payment
func (h *PaymentHandler) Create(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	var paymentDate time.Time
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), appfinance.CreatePaymentRequest{
		ClientID:           clientID,
		DebtID:             req.DebtID,
		DebtIdentification: req.DebtIdentification,
		InstrumentID:       req.InstrumentID,
		InstrumentCode:     req.InstrumentCode,
		Amount:             req.Amount,
		PaymentDate:        paymentDate,
		Reconcile:          req.Reconcile,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.FromPayment(payment))
}

// List handles POST /api/payment/list
func (h *PaymentHandler) List(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}

	var req dto.PaymentFilters
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
	if req.DebtID != nil {
		filter.Filters["debt_id"] = *req.DebtID
	}
	if req.PaidBefore != nil {
		filter.Filters["paid_before"] = *req.PaidBefore
	}
	if req.PaidAfter != nil {
		filter.Filters["paid_after"] = *req.PaidAfter
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), clientID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, dto.FromPayments(payments))
}

// Refund handles POST /api/payment/refund/:id
func (h *PaymentHandler) Refund(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("INVALID_INPUT", "Payment ID must be a valid UUID"))
		return
	}

	if err := h.paymentService.RefundPayment(c.Request.Context(), clientID, paymentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
