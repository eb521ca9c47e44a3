package dto

import (
	"time"

	"github.com/finman/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateDebtRequest is the payload for registering a new debt.
// The instrument may be referenced by UUID or by its 4-char code.
type CreateDebtRequest struct {
	InstrumentID     *uuid.UUID      `json:"instrumentId" binding:"omitempty"`
	InstrumentCode   string          `json:"instrumentCode" binding:"omitempty,len=4"`
	CategoryName     string          `json:"categoryName" binding:"omitempty,max=100"`
	Description      string          `json:"description" binding:"required,max=500"`
	TotalAmount      decimal.Decimal `json:"totalAmount" binding:"required"`
	DueDate          time.Time       `json:"dueDate" binding:"required"`
	InstallmentCount *int            `json:"installmentCount" binding:"omitempty,min=2,max=360"`
	IsPaid           bool            `json:"isPaid"`
}

// CreatePaymentRequest is the payload for applying a payment to a debt.
// The debt may be referenced by UUID or by its serial identification.
type CreatePaymentRequest struct {
	DebtID             *uuid.UUID       `json:"debtId" binding:"omitempty"`
	DebtIdentification *int64           `json:"debtIdentification" binding:"omitempty,min=1"`
	InstrumentID       *uuid.UUID       `json:"instrumentId" binding:"omitempty"`
	InstrumentCode     string           `json:"instrumentCode" binding:"omitempty,len=4"`
	Amount             *decimal.Decimal `json:"amount" binding:"omitempty"`
	PaymentDate        *time.Time       `json:"paymentDate" binding:"omitempty"`
	Reconcile          bool             `json:"reconcile"`
}

// CreateAccountRequest is the payload for creating a bank account
type CreateAccountRequest struct {
	Name               string `json:"name" binding:"required,max=100"`
	IdentificationCode string `json:"identificationCode" binding:"required,len=4"`
}

// CreateInstrumentRequest is the payload for creating any instrument type
type CreateInstrumentRequest struct {
	Name                string `json:"name" binding:"required,max=100"`
	Type                string `json:"type" binding:"required,oneof=BANK_ACCOUNT CREDIT_CARD INVESTMENT_BOX"`
	IdentificationCode  string `json:"identificationCode" binding:"required,len=4"`
	StatementClosingDay int    `json:"statementClosingDay" binding:"omitempty,min=1,max=31"`
	PaymentDueDay       int    `json:"paymentDueDay" binding:"omitempty,min=1,max=31"`
}

// CreateIncomeRequest is the payload for recording an income
type CreateIncomeRequest struct {
	InstrumentID   *uuid.UUID      `json:"instrumentId" binding:"omitempty"`
	InstrumentCode string          `json:"instrumentCode" binding:"omitempty,len=4"`
	CategoryName   string          `json:"categoryName" binding:"omitempty,max=100"`
	Description    string          `json:"description" binding:"required,max=500"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	ReceiptDate    *time.Time      `json:"receiptDate" binding:"omitempty"`
}

// DebtFilters is the payload for listing debts
type DebtFilters struct {
	ListRequest
	OnlyOpen  bool       `json:"onlyOpen"`
	Status    string     `json:"status" binding:"omitempty,oneof=UNPAID PARTIALLY_PAID SETTLED"`
	AccountID *uuid.UUID `json:"accountId" binding:"omitempty"`
	DueBefore *time.Time `json:"dueBefore" binding:"omitempty"`
	DueAfter  *time.Time `json:"dueAfter" binding:"omitempty"`
}

// PaymentFilters is the payload for listing payments
type PaymentFilters struct {
	ListRequest
	DebtID     *uuid.UUID `json:"debtId" binding:"omitempty"`
	PaidBefore *time.Time `json:"paidBefore" binding:"omitempty"`
	PaidAfter  *time.Time `json:"paidAfter" binding:"omitempty"`
}

// DebtResponse is the wire representation of a debt
type DebtResponse struct {
	ID               uuid.UUID             `json:"id"`
	Identification   int64                 `json:"identification"`
	AccountID        uuid.UUID             `json:"accountId"`
	CategoryID       *uuid.UUID            `json:"categoryId,omitempty"`
	Description      string                `json:"description"`
	TotalAmount      decimal.Decimal       `json:"totalAmount"`
	PaidAmount       decimal.Decimal       `json:"paidAmount"`
	DiscountAmount   decimal.Decimal       `json:"discountAmount"`
	RemainingAmount  decimal.Decimal       `json:"remainingAmount"`
	DueDate          time.Time             `json:"dueDate"`
	Status           string                `json:"status"`
	InstallmentCount *int                  `json:"installmentCount,omitempty"`
	Installments     []InstallmentResponse `json:"installments,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

// InstallmentResponse is the wire representation of an installment
type InstallmentResponse struct {
	Sequence  int             `json:"sequence"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   time.Time       `json:"dueDate"`
	IsPaid    bool            `json:"isPaid"`
	PaymentID *uuid.UUID      `json:"paymentId,omitempty"`
}

// PaymentResponse is the wire representation of a payment
type PaymentResponse struct {
	ID           uuid.UUID       `json:"id"`
	DebtID       uuid.UUID       `json:"debtId"`
	InstrumentID uuid.UUID       `json:"instrumentId"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentDate  time.Time       `json:"paymentDate"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// InstrumentResponse is the wire representation of a financial instrument
type InstrumentResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Type                string    `json:"type"`
	IdentificationCode  string    `json:"identificationCode"`
	StatementClosingDay int       `json:"statementClosingDay,omitempty"`
	PaymentDueDay       int       `json:"paymentDueDay,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

// IncomeResponse is the wire representation of an income record
type IncomeResponse struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"accountId"`
	CategoryID  *uuid.UUID      `json:"categoryId,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ReceiptDate time.Time       `json:"receiptDate"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// FromDebt maps a domain debt and its installments to the wire shape
func FromDebt(d *finance.Debt, installments []finance.Installment) DebtResponse {
	resp := DebtResponse{
		ID:               d.ID,
		Identification:   d.Identification,
		AccountID:        d.AccountID,
		CategoryID:       d.CategoryID,
		Description:      d.Description,
		TotalAmount:      d.TotalAmount,
		PaidAmount:       d.PaidAmount,
		DiscountAmount:   d.DiscountAmount,
		RemainingAmount:  d.RemainingAmount,
		DueDate:          d.DueDate,
		Status:           string(d.Status),
		InstallmentCount: d.InstallmentCount,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	for _, inst := range installments {
		resp.Installments = append(resp.Installments, InstallmentResponse{
			Sequence:  inst.Sequence,
			Amount:    inst.Amount,
			DueDate:   inst.DueDate,
			IsPaid:    inst.IsPaid,
			PaymentID: inst.PaymentID,
		})
	}
	return resp
}

// FromDebts maps a page of debts without their installment plans
func FromDebts(debts []finance.Debt) []DebtResponse {
	out := make([]DebtResponse, 0, len(debts))
	for i := range debts {
		out = append(out, FromDebt(&debts[i], nil))
	}
	return out
}

// FromPayment maps a domain payment to the wire shape
func FromPayment(p *finance.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		DebtID:       p.DebtID,
		InstrumentID: p.InstrumentID,
		Amount:       p.Amount,
		PaymentDate:  p.PaymentDate,
		CreatedAt:    p.CreatedAt,
	}
}

// FromPayments maps a page of payments
func FromPayments(payments []finance.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, FromPayment(&payments[i]))
	}
	return out
}

// FromInstrument maps a domain instrument to the wire shape
func FromInstrument(i *finance.FinancialInstrument) InstrumentResponse {
	return InstrumentResponse{
		ID:                  i.ID,
		Name:                i.Name,
		Type:                string(i.Type),
		IdentificationCode:  i.IdentificationCode,
		StatementClosingDay: i.StatementClosingDay,
		PaymentDueDay:       i.PaymentDueDay,
		CreatedAt:           i.CreatedAt,
	}
}

// FromInstruments maps a list of instruments
func FromInstruments(instruments []finance.FinancialInstrument) []InstrumentResponse {
	out := make([]InstrumentResponse, 0, len(instruments))
	for i := range instruments {
		out = append(out, FromInstrument(&instruments[i]))
	}
	return out
}

// FromIncome maps a domain income to the wire shape
func FromIncome(in *finance.Income) IncomeResponse {
	return IncomeResponse{
		ID:          in.ID,
		AccountID:   in.AccountID,
		CategoryID:  in.CategoryID,
		Description: in.Description,
		Amount:      in.Amount,
		ReceiptDate: in.ReceiptDate,
		CreatedAt:   in.CreatedAt,
	}
}

// FromIncomes maps a list of incomes
func FromIncomes(incomes []finance.Income) []IncomeResponse {
	out := make([]IncomeResponse, 0, len(incomes))
	for i := range incomes {
		out = append(out, FromIncome(&incomes[i]))
	}
	return out
}
