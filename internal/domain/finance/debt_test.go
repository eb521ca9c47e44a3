package finance

import (
	"testing"
	"time"

	"github.com/finman/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDebt(t *testing.T, total string) *Debt {
	t.Helper()
	amount, err := decimal.NewFromString(total)
	require.NoError(t, err)
	debt, err := NewDebt(uuid.New(), uuid.New(), "electricity bill", amount, time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)
	return debt
}

func assertConservation(t *testing.T, d *Debt) {
	t.Helper()
	sum := d.PaidAmount.Add(d.DiscountAmount).Add(d.RemainingAmount)
	assert.True(t, sum.Equal(d.TotalAmount),
		"paid %s + discount %s + remaining %s must equal total %s",
		d.PaidAmount, d.DiscountAmount, d.RemainingAmount, d.TotalAmount)
	assert.False(t, d.RemainingAmount.IsNegative())
}

func TestNewDebt(t *testing.T) {
	t.Run("creates unpaid debt with remaining equal to total", func(t *testing.T) {
		debt := newTestDebt(t, "150.00")
		assert.Equal(t, DebtStatusUnpaid, debt.Status)
		assert.True(t, debt.RemainingAmount.Equal(debt.TotalAmount))
		assert.True(t, debt.PaidAmount.IsZero())
		assert.True(t, debt.DiscountAmount.IsZero())
		assert.False(t, debt.HasInstallments())

		events := debt.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeDebtCreated, events[0].EventType())
	})

	t.Run("rejects non-positive total", func(t *testing.T) {
		_, err := NewDebt(uuid.New(), uuid.New(), "x", decimal.Zero, time.Now())
		assert.Error(t, err)

		_, err = NewDebt(uuid.New(), uuid.New(), "x", decimal.NewFromInt(-5), time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects empty description", func(t *testing.T) {
		_, err := NewDebt(uuid.New(), uuid.New(), "", decimal.NewFromInt(10), time.Now())
		assert.Error(t, err)
	})
}

func TestDebtSetInstallmentCount(t *testing.T) {
	debt := newTestDebt(t, "300.00")
	require.NoError(t, debt.SetInstallmentCount(3))
	assert.True(t, debt.HasInstallments())

	assert.Error(t, debt.SetInstallmentCount(1))

	paid := newTestDebt(t, "300.00")
	require.NoError(t, paid.ProcessPayment(uuid.New(), decimal.NewFromInt(100)))
	assert.Error(t, paid.SetInstallmentCount(3))
}

func TestDebtProcessPayment(t *testing.T) {
	t.Run("full payment settles the debt", func(t *testing.T) {
		debt := newTestDebt(t, "100.00")
		require.NoError(t, debt.ProcessPayment(uuid.New(), decimal.NewFromInt(100)))

		assert.Equal(t, DebtStatusSettled, debt.Status)
		assert.True(t, debt.RemainingAmount.IsZero())
		assertConservation(t, debt)
	})

	t.Run("partial payment moves to PARTIALLY_PAID", func(t *testing.T) {
		debt := newTestDebt(t, "100.00")
		require.NoError(t, debt.ProcessPayment(uuid.New(), decimal.NewFromInt(40)))

		assert.Equal(t, DebtStatusPartiallyPaid, debt.Status)
		assert.True(t, debt.RemainingAmount.Equal(decimal.NewFromInt(60)))
		assertConservation(t, debt)
	})

	t.Run("payment above remaining is rejected", func(t *testing.T) {
		debt := newTestDebt(t, "100.00")
		err := debt.ProcessPayment(uuid.New(), decimal.NewFromInt(150))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OVERPAYMENT", domainErr.Code)
		assert.Equal(t, DebtStatusUnpaid, debt.Status)
	})

	t.Run("payment on settled debt fails as overpayment", func(t *testing.T) {
		debt := newTestDebt(t, "300.00")
		require.NoError(t, debt.ProcessPayment(uuid.New(), decimal.NewFromInt(100)))
		require.NoError(t, debt.ProcessPayment(uuid.New(), decimal.NewFromInt(200)))
		require.Equal(t, DebtStatusSettled, debt.Status)

		err := debt.ProcessPayment(uuid.New(), decimal.RequireFromString("0.01"))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OVERPAYMENT", domainErr.Code)
		assert.Equal(t, DebtStatusSettled, debt.Status)
	})

	t.Run("settlement emits DebtSettled", func(t *testing.T) {
		debt := newTestDebt(t, "50.00")
		debt.ClearDomainEvents()
		require.NoError(t, debt.ProcessPayment(uuid.New(), decimal.NewFromInt(50)))

		events := debt.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeDebtPaymentApplied, events[0].EventType())
		assert.Equal(t, EventTypeDebtSettled, events[1].EventType())
	})
}

func TestDebtReconcileWithActualPayment(t *testing.T) {
	t.Run("shortfall becomes discount and settles", func(t *testing.T) {
		debt := newTestDebt(t, "100.00")
		require.NoError(t, debt.ReconcileWithActualPayment(uuid.New(), decimal.NewFromInt(90), true))

		assert.Equal(t, DebtStatusSettled, debt.Status)
		assert.True(t, debt.PaidAmount.Equal(decimal.NewFromInt(90)))
		assert.True(t, debt.DiscountAmount.Equal(decimal.NewFromInt(10)))
		assert.True(t, debt.RemainingAmount.IsZero())
		assertConservation(t, debt)
	})

	t.Run("exact amount behaves like a plain payment", func(t *testing.T) {
		debt := newTestDebt(t, "100.00")
		require.NoError(t, debt.ReconcileWithActualPayment(uuid.New(), decimal.NewFromInt(100), true))

		assert.Equal(t, DebtStatusSettled, debt.Status)
		assert.True(t, debt.DiscountAmount.IsZero())
		assertConservation(t, debt)
	})

	t.Run("amount above remaining fails with overpayment", func(t *testing.T) {
		debt := newTestDebt(t, "100.00")
		err := debt.ReconcileWithActualPayment(uuid.New(), decimal.NewFromInt(110), true)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OVERPAYMENT", domainErr.Code)
	})

	t.Run("non-settling reconciliation takes the amount without discount", func(t *testing.T) {
		debt := newTestDebt(t, "300.00")
		require.NoError(t, debt.SetInstallmentCount(3))
		require.NoError(t, debt.ProcessPayment(uuid.New(), decimal.NewFromInt(100)))

		require.NoError(t, debt.ReconcileWithActualPayment(uuid.New(), decimal.NewFromInt(90), false))
		assert.Equal(t, DebtStatusPartiallyPaid, debt.Status)
		assert.True(t, debt.DiscountAmount.IsZero())
		assert.True(t, debt.RemainingAmount.Equal(decimal.NewFromInt(110)))
		assertConservation(t, debt)
	})
}

func TestDebtReversePayment(t *testing.T) {
	t.Run("reversal restores the prior state", func(t *testing.T) {
		debt := newTestDebt(t, "100.00")
		paymentID := uuid.New()
		require.NoError(t, debt.ProcessPayment(paymentID, decimal.NewFromInt(40)))
		require.NoError(t, debt.ReversePayment(paymentID, decimal.NewFromInt(40)))

		assert.Equal(t, DebtStatusUnpaid, debt.Status)
		assert.True(t, debt.PaidAmount.IsZero())
		assert.True(t, debt.RemainingAmount.Equal(debt.TotalAmount))
		assertConservation(t, debt)
	})

	t.Run("reversing the settling payment reopens the debt", func(t *testing.T) {
		debt := newTestDebt(t, "100.00")
		p1 := uuid.New()
		p2 := uuid.New()
		require.NoError(t, debt.ProcessPayment(p1, decimal.NewFromInt(60)))
		require.NoError(t, debt.ProcessPayment(p2, decimal.NewFromInt(40)))
		require.Equal(t, DebtStatusSettled, debt.Status)

		require.NoError(t, debt.ReversePayment(p2, decimal.NewFromInt(40)))
		assert.Equal(t, DebtStatusPartiallyPaid, debt.Status)
		assert.True(t, debt.RemainingAmount.Equal(decimal.NewFromInt(40)))
		assertConservation(t, debt)
	})

	t.Run("reversing a discount settlement clears the discount", func(t *testing.T) {
		debt := newTestDebt(t, "100.00")
		paymentID := uuid.New()
		require.NoError(t, debt.ReconcileWithActualPayment(paymentID, decimal.NewFromInt(90), true))
		require.Equal(t, DebtStatusSettled, debt.Status)

		require.NoError(t, debt.ReversePayment(paymentID, decimal.NewFromInt(90)))
		assert.Equal(t, DebtStatusUnpaid, debt.Status)
		assert.True(t, debt.DiscountAmount.IsZero())
		assert.True(t, debt.RemainingAmount.Equal(debt.TotalAmount))
		assertConservation(t, debt)
	})

	t.Run("reversing an earlier payment keeps the discount", func(t *testing.T) {
		debt := newTestDebt(t, "300.00")
		p1 := uuid.New()
		p2 := uuid.New()
		require.NoError(t, debt.ProcessPayment(p1, decimal.NewFromInt(100)))
		require.NoError(t, debt.ReconcileWithActualPayment(p2, decimal.NewFromInt(150), true))
		require.Equal(t, DebtStatusSettled, debt.Status)
		require.True(t, debt.DiscountAmount.Equal(decimal.NewFromInt(50)))

		require.NoError(t, debt.ReversePayment(p1, decimal.NewFromInt(100)))
		assert.Equal(t, DebtStatusPartiallyPaid, debt.Status)
		assert.True(t, debt.PaidAmount.Equal(decimal.NewFromInt(150)))
		assert.True(t, debt.DiscountAmount.Equal(decimal.NewFromInt(50)))
		assert.True(t, debt.RemainingAmount.Equal(decimal.NewFromInt(100)))
		assertConservation(t, debt)

		// the reconciling payment still owns the discount
		require.NoError(t, debt.ReversePayment(p2, decimal.NewFromInt(150)))
		assert.True(t, debt.DiscountAmount.IsZero())
		assert.True(t, debt.RemainingAmount.Equal(decimal.NewFromInt(300)))
		assertConservation(t, debt)
	})

	t.Run("reversal above paid amount is rejected", func(t *testing.T) {
		debt := newTestDebt(t, "100.00")
		require.NoError(t, debt.ProcessPayment(uuid.New(), decimal.NewFromInt(40)))

		err := debt.ReversePayment(uuid.New(), decimal.NewFromInt(50))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_REVERSAL", domainErr.Code)
	})
}

func TestDebtStatusDerivation(t *testing.T) {
	cases := []struct {
		name     string
		paid     string
		discount string
		status   DebtStatus
	}{
		{"nothing applied", "0", "0", DebtStatusUnpaid},
		{"partially paid", "40", "0", DebtStatusPartiallyPaid},
		{"fully paid", "100", "0", DebtStatusSettled},
		{"paid plus discount covers total", "90", "10", DebtStatusSettled},
		{"discount only, not covering", "0", "10", DebtStatusPartiallyPaid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			debt := newTestDebt(t, "100.00")
			debt.PaidAmount, _ = decimal.NewFromString(tc.paid)
			debt.DiscountAmount, _ = decimal.NewFromString(tc.discount)
			debt.recalculate()
			assert.Equal(t, tc.status, debt.Status)
			assertConservation(t, debt)
		})
	}
}
