package handler

import (
	appfinance "github.com/finman/backend/internal/application/finance"
	"github.com/finman/backend/internal/domain/finance"
	"github.com/finman/backend/internal/domain/shared"
	"github.com/finman/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// InstrumentHandler serves the financial instrument endpoints
type InstrumentHandler struct {
	BaseHandler
	instrumentService *appfinance.InstrumentService
}

// NewInstrumentHandler creates a new instrument handler
func NewInstrumentHandler(instrumentService *appfinance.InstrumentService) *InstrumentHandler {
	return &InstrumentHandler{instrumentService: instrumentService}
}

// CreateAccount handles POST /api/account. It is a shorthand for creating
// a bank-account instrument.
func (h *InstrumentHandler) CreateAccount(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	instrument, err := h.instrumentService.CreateInstrument(c.Request.Context(), appfinance.CreateInstrumentRequest{
		ClientID:           clientID,
		Name:               req.Name,
		Type:               finance.InstrumentTypeBankAccount,
		IdentificationCode: req.IdentificationCode,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.FromInstrument(instrument))
}

// Create handles POST /api/financialInstrument for any instrument type
func (h *InstrumentHandler) Create(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}

	var req dto.CreateInstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	instrument, err := h.instrumentService.CreateInstrument(c.Request.Context(), appfinance.CreateInstrumentRequest{
		ClientID:            clientID,
		Name:                req.Name,
		Type:                finance.InstrumentType(req.Type),
		IdentificationCode:  req.IdentificationCode,
		StatementClosingDay: req.StatementClosingDay,
		PaymentDueDay:       req.PaymentDueDay,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.FromInstrument(instrument))
}

// List handles GET /api/financialInstrument
func (h *InstrumentHandler) List(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}

	instruments, err := h.instrumentService.ListInstruments(c.Request.Context(), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, dto.FromInstruments(instruments))
}
