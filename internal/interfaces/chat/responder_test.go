package chat

import (
	"testing"

	"github.com/finman/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDebtList(t *testing.T) {
	first, err := finance.NewDebt(uuid.New(), uuid.New(), "Internet",
		decimal.NewFromInt(120), day(2026, 3, 15))
	require.NoError(t, err)
	first.Identification = 1

	second, err := finance.NewDebt(uuid.New(), uuid.New(), "Celular",
		decimal.RequireFromString("59.90"), day(2026, 3, 20))
	require.NoError(t, err)
	second.Identification = 2
	require.NoError(t, second.SetInstallmentCount(12))

	out := FormatDebtList([]finance.Debt{*first, *second})

	assert.Contains(t, out, "#1 Internet")
	assert.Contains(t, out, "vence 15/03/2026")
	assert.Contains(t, out, "#2 Celular")
	assert.Contains(t, out, "(12x)")
	assert.Contains(t, out, "Total em aberto: R$ 179,90")
}

func TestFormatDebtCreated(t *testing.T) {
	debt, err := finance.NewDebt(uuid.New(), uuid.New(), "Mercado",
		decimal.RequireFromString("89.90"), day(2026, 3, 12))
	require.NoError(t, err)
	debt.Identification = 5

	out := FormatDebtCreated(debt)
	assert.Equal(t, "Débito #5 criado: Mercado, R$ 89,90, vencimento 12/03/2026.", out)

	require.NoError(t, debt.ProcessPayment(uuid.New(), decimal.RequireFromString("89.90")))
	out = FormatDebtCreated(debt)
	assert.Contains(t, out, "Já quitado.")
}

func TestFormatPaymentApplied(t *testing.T) {
	debt, err := finance.NewDebt(uuid.New(), uuid.New(), "Internet",
		decimal.NewFromInt(120), day(2026, 3, 15))
	require.NoError(t, err)
	debt.Identification = 9

	payment, err := finance.NewPayment(debt, uuid.New(),
		decimal.NewFromInt(50), day(2026, 3, 10))
	require.NoError(t, err)
	require.NoError(t, debt.ProcessPayment(payment.ID, decimal.NewFromInt(50)))

	out := FormatPaymentApplied(debt, payment)
	assert.Equal(t, "Pagamento de R$ 50,00 registrado. Débito #9: restam R$ 70,00.", out)

	require.NoError(t, debt.ProcessPayment(uuid.New(), decimal.NewFromInt(70)))
	out = FormatPaymentApplied(debt, payment)
	assert.Equal(t, "Pagamento de R$ 50,00 registrado. Débito #9 quitado!", out)
}

func TestFormatIncomeCreated(t *testing.T) {
	income, err := finance.NewIncome(uuid.New(), uuid.New(), "Salário",
		decimal.NewFromInt(3500), day(2026, 3, 5))
	require.NoError(t, err)

	out := FormatIncomeCreated(income)
	assert.Equal(t, "Entrada registrada: Salário, R$ 3500,00 em 05/03/2026.", out)
}
