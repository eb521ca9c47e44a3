package finance

import (
	"strings"
	"time"

	"github.com/finman/backend/internal/domain/shared"
	"github.com/finman/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// InstrumentType classifies a financial instrument
type InstrumentType string

const (
	InstrumentTypeBankAccount   InstrumentType = "BANK_ACCOUNT"
	InstrumentTypeCreditCard    InstrumentType = "CREDIT_CARD"
	InstrumentTypeInvestmentBox InstrumentType = "INVESTMENT_BOX"
)

// IdentificationCodeLength is the length of the short instrument code
// used in chat commands and payment requests.
const IdentificationCodeLength = 4

// FinancialInstrument is a client-owned money source or destination:
// a bank account, a credit card or an investment box.
type FinancialInstrument struct {
	shared.ClientAggregateRoot
	Name string
	Type InstrumentType
	// IdentificationCode is a 4-character code unique per client,
	// e.g. "nu01" for a Nubank account.
	IdentificationCode string
	// Credit-card fields; zero for other instrument types.
	StatementClosingDay int
	PaymentDueDay       int
}

// NewBankAccount creates a bank-account instrument
func NewBankAccount(clientID uuid.UUID, name, identificationCode string) (*FinancialInstrument, error) {
	return newInstrument(clientID, name, identificationCode, InstrumentTypeBankAccount)
}

// NewInvestmentBox creates an investment-box instrument
func NewInvestmentBox(clientID uuid.UUID, name, identificationCode string) (*FinancialInstrument, error) {
	return newInstrument(clientID, name, identificationCode, InstrumentTypeInvestmentBox)
}

// NewCreditCard creates a credit-card instrument with its statement cycle days
func NewCreditCard(clientID uuid.UUID, name, identificationCode string, closingDay, dueDay int) (*FinancialInstrument, error) {
	instrument, err := newInstrument(clientID, name, identificationCode, InstrumentTypeCreditCard)
	if err != nil {
		return nil, err
	}
	if closingDay < 1 || closingDay > 31 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Statement closing day must be between 1 and 31")
	}
	if dueDay < 1 || dueDay > 31 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment due day must be between 1 and 31")
	}
	instrument.StatementClosingDay = closingDay
	instrument.PaymentDueDay = dueDay
	return instrument, nil
}

func newInstrument(clientID uuid.UUID, name, identificationCode string, t InstrumentType) (*FinancialInstrument, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Instrument name cannot be empty")
	}
	code := strings.ToLower(strings.TrimSpace(identificationCode))
	if len(code) != IdentificationCodeLength {
		return nil, shared.NewDomainError("INVALID_INPUT", "Identification code must be exactly 4 characters")
	}
	return &FinancialInstrument{
		ClientAggregateRoot: shared.NewClientAggregateRoot(clientID),
		Name:                name,
		Type:                t,
		IdentificationCode:  code,
	}, nil
}

// IsCreditCard reports whether the instrument is a credit card
func (f *FinancialInstrument) IsCreditCard() bool {
	return f.Type == InstrumentTypeCreditCard
}

// NextPaymentDueDate returns the card's due date in the month following
// the given reference date, with the due day clamped to the month's length.
func (f *FinancialInstrument) NextPaymentDueDate(reference time.Time) (time.Time, error) {
	if !f.IsCreditCard() {
		return time.Time{}, shared.NewDomainError("INVALID_STATE", "Instrument has no payment cycle")
	}
	anchor := valueobject.DayClampedDate(reference.Year(), reference.Month(), f.PaymentDueDay)
	if reference.Day() > f.StatementClosingDay {
		return valueobject.AddMonthsClamped(anchor, 1), nil
	}
	return anchor, nil
}
