package finance

import (
	"sort"
	"time"

	"github.com/finman/backend/internal/domain/shared"
	"github.com/finman/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Installment is a scheduled slice of an installment debt. Its identity is
// the pair (DebtID, Sequence); the sequence starts at 1.
type Installment struct {
	DebtID    uuid.UUID
	Sequence  int
	Amount    decimal.Decimal
	DueDate   time.Time
	IsPaid    bool
	PaymentID *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LatestUnpaid returns the open installment with the smallest sequence,
// or nil when every installment is paid. Payments are applied strictly
// in sequence order.
func LatestUnpaid(installments []Installment) *Installment {
	var target *Installment
	for i := range installments {
		if installments[i].IsPaid {
			continue
		}
		if target == nil || installments[i].Sequence < target.Sequence {
			target = &installments[i]
		}
	}
	return target
}

// ValidatePayment checks a payment against this installment. The amount
// must match the scheduled amount exactly; reconciliation is the only
// path that permits divergence.
func (i *Installment) ValidatePayment(amount decimal.Decimal) error {
	if i.IsPaid {
		return shared.NewDomainError("INVALID_STATE", "Installment is already paid")
	}
	if !amount.Equal(i.Amount) {
		return shared.NewDomainError("INVALID_INPUT", "Payment amount must match the installment amount")
	}
	return nil
}

// ProcessPayment marks the installment paid by the given payment
func (i *Installment) ProcessPayment(paymentID uuid.UUID) error {
	if i.IsPaid {
		return shared.NewDomainError("INVALID_STATE", "Installment is already paid")
	}
	i.IsPaid = true
	i.PaymentID = &paymentID
	i.UpdatedAt = time.Now()
	return nil
}

// ReversePayment reopens the installment, clearing the payment reference
func (i *Installment) ReversePayment() error {
	if !i.IsPaid {
		return shared.ErrInvalidReversal
	}
	i.IsPaid = false
	i.PaymentID = nil
	i.UpdatedAt = time.Now()
	return nil
}

// SortBySequence orders installments in-place by ascending sequence
func SortBySequence(installments []Installment) {
	sort.Slice(installments, func(a, b int) bool {
		return installments[a].Sequence < installments[b].Sequence
	})
}

// BuildInstallmentPlan splits the debt's total into its installment plan.
// Amounts follow Money.SplitEven: parts 1..N-1 carry the banker's-rounded
// quotient, the last part absorbs the residue so the plan sums exactly to
// the total. Due dates step month by month from firstDue, clamping the
// anchor day to shorter months.
func BuildInstallmentPlan(debt *Debt, firstDue time.Time) ([]Installment, error) {
	if !debt.HasInstallments() {
		return nil, shared.NewDomainError("INVALID_STATE", "Debt has no installment plan")
	}
	n := *debt.InstallmentCount

	total := valueobject.NewMoneyBRL(debt.TotalAmount)
	parts, err := total.SplitEven(n)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}

	now := time.Now()
	plan := make([]Installment, n)
	for idx := 0; idx < n; idx++ {
		plan[idx] = Installment{
			DebtID:    debt.ID,
			Sequence:  idx + 1,
			Amount:    parts[idx].Amount(),
			DueDate:   valueobject.AddMonthsClamped(firstDue, idx),
			IsPaid:    false,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return plan, nil
}
