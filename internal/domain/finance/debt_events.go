package finance

import (
	"time"

	"github.com/finman/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type names published on the bus
const (
	EventTypeDebtCreated         = "DebtCreated"
	EventTypeDebtPaymentApplied  = "DebtPaymentApplied"
	EventTypeDebtPaymentReversed = "DebtPaymentReversed"
	EventTypeDebtSettled         = "DebtSettled"
)

// DebtCreatedEvent is raised when a new debt is created
type DebtCreatedEvent struct {
	shared.BaseDomainEvent
	DebtID      uuid.UUID       `json:"debt_id"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	DueDate     time.Time       `json:"due_date"`
	Installment bool            `json:"installment"`
}

// EventType returns the event type name
func (e *DebtCreatedEvent) EventType() string {
	return EventTypeDebtCreated
}

// NewDebtCreatedEvent creates a new DebtCreatedEvent
func NewDebtCreatedEvent(d *Debt) *DebtCreatedEvent {
	return &DebtCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtCreated, "Debt", d.ID, d.ClientID),
		DebtID:          d.ID,
		Description:     d.Description,
		TotalAmount:     d.TotalAmount,
		DueDate:         d.DueDate,
		Installment:     d.HasInstallments(),
	}
}

// DebtPaymentAppliedEvent is raised when a payment is applied to a debt
type DebtPaymentAppliedEvent struct {
	shared.BaseDomainEvent
	DebtID          uuid.UUID       `json:"debt_id"`
	PaymentID       uuid.UUID       `json:"payment_id"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Status          DebtStatus      `json:"status"`
}

// EventType returns the event type name
func (e *DebtPaymentAppliedEvent) EventType() string {
	return EventTypeDebtPaymentApplied
}

// NewDebtPaymentAppliedEvent creates a new DebtPaymentAppliedEvent
func NewDebtPaymentAppliedEvent(d *Debt, paymentID uuid.UUID, amount decimal.Decimal) *DebtPaymentAppliedEvent {
	return &DebtPaymentAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtPaymentApplied, "Debt", d.ID, d.ClientID),
		DebtID:          d.ID,
		PaymentID:       paymentID,
		Description:     d.Description,
		Amount:          amount,
		RemainingAmount: d.RemainingAmount,
		Status:          d.Status,
	}
}

// DebtPaymentReversedEvent is raised when a payment is reversed
type DebtPaymentReversedEvent struct {
	shared.BaseDomainEvent
	DebtID          uuid.UUID       `json:"debt_id"`
	PaymentID       uuid.UUID       `json:"payment_id"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Status          DebtStatus      `json:"status"`
}

// EventType returns the event type name
func (e *DebtPaymentReversedEvent) EventType() string {
	return EventTypeDebtPaymentReversed
}

// NewDebtPaymentReversedEvent creates a new DebtPaymentReversedEvent
func NewDebtPaymentReversedEvent(d *Debt, paymentID uuid.UUID, amount decimal.Decimal) *DebtPaymentReversedEvent {
	return &DebtPaymentReversedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtPaymentReversed, "Debt", d.ID, d.ClientID),
		DebtID:          d.ID,
		PaymentID:       paymentID,
		Description:     d.Description,
		Amount:          amount,
		RemainingAmount: d.RemainingAmount,
		Status:          d.Status,
	}
}

// DebtSettledEvent is raised when a debt reaches SETTLED
type DebtSettledEvent struct {
	shared.BaseDomainEvent
	DebtID         uuid.UUID       `json:"debt_id"`
	Description    string          `json:"description"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// EventType returns the event type name
func (e *DebtSettledEvent) EventType() string {
	return EventTypeDebtSettled
}

// NewDebtSettledEvent creates a new DebtSettledEvent
func NewDebtSettledEvent(d *Debt) *DebtSettledEvent {
	return &DebtSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtSettled, "Debt", d.ID, d.ClientID),
		DebtID:          d.ID,
		Description:     d.Description,
		TotalAmount:     d.TotalAmount,
		PaidAmount:      d.PaidAmount,
		DiscountAmount:  d.DiscountAmount,
	}
}
