package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBankAccount(t *testing.T) {
	t.Run("creates account with normalized code", func(t *testing.T) {
		acct, err := NewBankAccount(uuid.New(), "Nubank", "NU01")
		require.NoError(t, err)
		assert.Equal(t, InstrumentTypeBankAccount, acct.Type)
		assert.Equal(t, "nu01", acct.IdentificationCode)
		assert.False(t, acct.IsCreditCard())
	})

	t.Run("rejects code with wrong length", func(t *testing.T) {
		_, err := NewBankAccount(uuid.New(), "Nubank", "nub")
		assert.Error(t, err)

		_, err = NewBankAccount(uuid.New(), "Nubank", "nuban")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewBankAccount(uuid.New(), "", "nu01")
		assert.Error(t, err)
	})
}

func TestNewCreditCard(t *testing.T) {
	t.Run("creates card with cycle days", func(t *testing.T) {
		card, err := NewCreditCard(uuid.New(), "Visa Gold", "vi01", 25, 5)
		require.NoError(t, err)
		assert.True(t, card.IsCreditCard())
		assert.Equal(t, 25, card.StatementClosingDay)
		assert.Equal(t, 5, card.PaymentDueDay)
	})

	t.Run("rejects out-of-range days", func(t *testing.T) {
		_, err := NewCreditCard(uuid.New(), "Visa", "vi01", 0, 5)
		assert.Error(t, err)

		_, err = NewCreditCard(uuid.New(), "Visa", "vi01", 25, 32)
		assert.Error(t, err)
	})
}

func TestNextPaymentDueDate(t *testing.T) {
	card, err := NewCreditCard(uuid.New(), "Visa", "vi01", 20, 31)
	require.NoError(t, err)

	t.Run("before closing stays in the current cycle", func(t *testing.T) {
		ref := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
		due, err := card.NextPaymentDueDate(ref)
		require.NoError(t, err)
		assert.Equal(t, "2026-02-28", due.Format("2006-01-02"))
	})

	t.Run("after closing rolls to the next month", func(t *testing.T) {
		ref := time.Date(2026, time.February, 25, 0, 0, 0, 0, time.UTC)
		due, err := card.NextPaymentDueDate(ref)
		require.NoError(t, err)
		assert.Equal(t, "2026-03-28", due.Format("2006-01-02"))
	})

	t.Run("bank account has no cycle", func(t *testing.T) {
		acct, err := NewBankAccount(uuid.New(), "Nubank", "nu01")
		require.NoError(t, err)
		_, err = acct.NextPaymentDueDate(time.Now())
		assert.Error(t, err)
	})
}
