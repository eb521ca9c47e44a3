package finance

import (
	"time"

	"github.com/finman/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Income records money received into an instrument
type Income struct {
	shared.ClientAggregateRoot
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Description string
	Amount      decimal.Decimal
	ReceiptDate time.Time
}

// NewIncome creates an income record owned by the given client
func NewIncome(clientID, accountID uuid.UUID, description string, amount decimal.Decimal, receiptDate time.Time) (*Income, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Income description cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Income amount must be positive")
	}
	return &Income{
		ClientAggregateRoot: shared.NewClientAggregateRoot(clientID),
		AccountID:           accountID,
		Description:         description,
		Amount:              amount,
		ReceiptDate:         receiptDate,
	}, nil
}
