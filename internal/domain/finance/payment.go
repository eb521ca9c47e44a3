package finance

import (
	"time"

	"github.com/finman/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is an immutable record of money applied to a debt. It is created
// only by the payment coordinator and deleted only through reversal.
type Payment struct {
	shared.BaseEntity
	DebtID       uuid.UUID
	InstrumentID uuid.UUID
	ClientID     uuid.UUID
	Amount       decimal.Decimal
	PaymentDate  time.Time
}

// NewPayment creates a payment record for the given debt. The client
// reference is copied from the debt so ownership checks never need a join.
func NewPayment(debt *Debt, instrumentID uuid.UUID, amount decimal.Decimal, paymentDate time.Time) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	return &Payment{
		BaseEntity:   shared.NewBaseEntity(),
		DebtID:       debt.ID,
		InstrumentID: instrumentID,
		ClientID:     debt.ClientID,
		Amount:       amount,
		PaymentDate:  paymentDate,
	}, nil
}

// BelongsTo reports whether the payment is owned by the given client
func (p *Payment) BelongsTo(clientID uuid.UUID) bool {
	return p.ClientID == clientID
}
