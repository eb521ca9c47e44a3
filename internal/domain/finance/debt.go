package finance

import (
	"time"

	"github.com/finman/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtStatus represents the lifecycle status of a debt
type DebtStatus string

const (
	DebtStatusUnpaid        DebtStatus = "UNPAID"
	DebtStatusPartiallyPaid DebtStatus = "PARTIALLY_PAID"
	DebtStatusSettled       DebtStatus = "SETTLED"
)

// Debt is the aggregate root of the payment lifecycle. It tracks the
// monetary triple (paid, discount, remaining) against the total and keeps
// the invariant remaining = total - paid - discount, never negative.
type Debt struct {
	shared.ClientAggregateRoot
	// Identification is a short serial alternate key assigned by the store,
	// used by humans (and the chat channel) instead of the UUID.
	Identification   int64
	AccountID        uuid.UUID
	CategoryID       *uuid.UUID
	Description      string
	TotalAmount      decimal.Decimal
	PaidAmount       decimal.Decimal
	DiscountAmount   decimal.Decimal
	RemainingAmount  decimal.Decimal
	DueDate          time.Time
	Status           DebtStatus
	InstallmentCount *int
	// DiscountPaymentID identifies the reconciling payment whose shortfall
	// was granted as discount; only that payment's reversal returns it.
	DiscountPaymentID *uuid.UUID
}

// NewDebt creates an unpaid debt owned by the given client
func NewDebt(clientID, accountID uuid.UUID, description string, totalAmount decimal.Decimal, dueDate time.Time) (*Debt, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Debt description cannot be empty")
	}
	if !totalAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Debt total amount must be positive")
	}

	debt := &Debt{
		ClientAggregateRoot: shared.NewClientAggregateRoot(clientID),
		AccountID:           accountID,
		Description:         description,
		TotalAmount:         totalAmount,
		PaidAmount:          decimal.Zero,
		DiscountAmount:      decimal.Zero,
		RemainingAmount:     totalAmount,
		DueDate:             dueDate,
		Status:              DebtStatusUnpaid,
	}

	debt.AddDomainEvent(NewDebtCreatedEvent(debt))
	return debt, nil
}

// SetInstallmentCount marks the debt as installment-based.
// Only valid before any payment has been applied.
func (d *Debt) SetInstallmentCount(count int) error {
	if count < 2 {
		return shared.NewDomainError("INVALID_INPUT", "Installment count must be at least 2")
	}
	if !d.PaidAmount.IsZero() || !d.DiscountAmount.IsZero() {
		return shared.NewDomainError("INVALID_STATE", "Cannot add installments to a debt with payments")
	}
	d.InstallmentCount = &count
	return nil
}

// HasInstallments reports whether the debt carries an installment plan
func (d *Debt) HasInstallments() bool {
	return d.InstallmentCount != nil && *d.InstallmentCount > 0
}

// IsSettled reports whether nothing remains to be paid
func (d *Debt) IsSettled() bool {
	return d.Status == DebtStatusSettled
}

// ValidatePaymentAmount checks a non-installment payment amount against the
// outstanding balance. Installment debts validate against the scheduled
// installment instead. A settled debt has a zero balance, so any positive
// amount fails the overpayment check.
func (d *Debt) ValidatePaymentAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	if amount.GreaterThan(d.RemainingAmount) {
		return shared.ErrOverpayment
	}
	return nil
}

// ProcessPayment applies a payment at exactly the scheduled amount
func (d *Debt) ProcessPayment(paymentID uuid.UUID, amount decimal.Decimal) error {
	if err := d.ValidatePaymentAmount(amount); err != nil {
		return err
	}

	d.PaidAmount = d.PaidAmount.Add(amount)
	d.recalculate()
	d.UpdatedAt = time.Now()

	d.AddDomainEvent(NewDebtPaymentAppliedEvent(d, paymentID, amount))
	if d.Status == DebtStatusSettled {
		d.AddDomainEvent(NewDebtSettledEvent(d))
	}
	return nil
}

// ReconcileWithActualPayment applies a payment whose amount diverges from
// the scheduled one. settlesDebt marks reconciliations that close the debt
// (always true for non-installment debts; for installment debts, only when
// the last open installment is being settled): the shortfall against the
// remaining balance is then registered as discount. A reconciliation that
// leaves installments open takes the amount with no discount.
func (d *Debt) ReconcileWithActualPayment(paymentID uuid.UUID, amount decimal.Decimal, settlesDebt bool) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	if amount.GreaterThan(d.RemainingAmount) {
		return shared.ErrOverpayment
	}

	d.PaidAmount = d.PaidAmount.Add(amount)
	if settlesDebt {
		d.DiscountAmount = d.TotalAmount.Sub(d.PaidAmount)
		if d.DiscountAmount.IsPositive() {
			pid := paymentID
			d.DiscountPaymentID = &pid
		}
	}
	d.recalculate()
	d.UpdatedAt = time.Now()

	d.AddDomainEvent(NewDebtPaymentAppliedEvent(d, paymentID, amount))
	if d.Status == DebtStatusSettled {
		d.AddDomainEvent(NewDebtSettledEvent(d))
	}
	return nil
}

// ReversePayment rewinds a previously applied payment, restoring the state
// the debt held before that payment. The discount travels with the payment
// that granted it: reversing the reconciling payment returns the discount,
// reversing any other payment leaves it in place.
func (d *Debt) ReversePayment(paymentID uuid.UUID, amount decimal.Decimal) error {
	if amount.GreaterThan(d.PaidAmount) {
		return shared.ErrInvalidReversal
	}

	d.PaidAmount = d.PaidAmount.Sub(amount)
	if d.DiscountPaymentID != nil && *d.DiscountPaymentID == paymentID {
		d.DiscountAmount = decimal.Zero
		d.DiscountPaymentID = nil
	}
	d.recalculate()
	d.UpdatedAt = time.Now()

	d.AddDomainEvent(NewDebtPaymentReversedEvent(d, paymentID, amount))
	return nil
}

// recalculate re-derives remaining amount and status from the monetary sums
func (d *Debt) recalculate() {
	d.RemainingAmount = d.TotalAmount.Sub(d.PaidAmount).Sub(d.DiscountAmount)
	if d.RemainingAmount.IsNegative() {
		d.RemainingAmount = decimal.Zero
	}

	switch {
	case d.RemainingAmount.IsZero():
		d.Status = DebtStatusSettled
	case d.PaidAmount.IsZero() && d.DiscountAmount.IsZero():
		d.Status = DebtStatusUnpaid
	default:
		d.Status = DebtStatusPartiallyPaid
	}
}
