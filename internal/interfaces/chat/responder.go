package chat

import (
	"fmt"
	"strings"

	"github.com/finman/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// Replies are Brazilian Portuguese, matching the command grammar.
const (
	replyNotLinked = "Esta conversa não está vinculada a uma conta. Use /vincular!<usuario>!<senha>."
	replyLinked    = "Conta vinculada com sucesso! Use /debitos para ver seus débitos."
	replyUnknown   = "Comando não reconhecido. Comandos: /debitos, /novo, /novo-pagamento, /entrada."
	replyNoDebts   = "Nenhum débito em aberto."
)

// FormatDebtList renders the open debts as a chat message
func FormatDebtList(debts []finance.Debt) string {
	if len(debts) == 0 {
		return replyNoDebts
	}

	var b strings.Builder
	b.WriteString("*Débitos em aberto:*\n")
	total := decimal.Zero
	for i := range debts {
		d := &debts[i]
		b.WriteString(fmt.Sprintf("\n#%d %s\n  restante R$ %s de R$ %s, vence %s",
			d.Identification,
			d.Description,
			formatMoney(d.RemainingAmount),
			formatMoney(d.TotalAmount),
			d.DueDate.Format("02/01/2006")))
		if d.HasInstallments() {
			b.WriteString(fmt.Sprintf(" (%dx)", *d.InstallmentCount))
		}
		total = total.Add(d.RemainingAmount)
	}
	b.WriteString(fmt.Sprintf("\n\n*Total em aberto: R$ %s*", formatMoney(total)))
	return b.String()
}

// FormatDebtCreated renders the confirmation for a new debt
func FormatDebtCreated(debt *finance.Debt) string {
	msg := fmt.Sprintf("Débito #%d criado: %s, R$ %s, vencimento %s.",
		debt.Identification,
		debt.Description,
		formatMoney(debt.TotalAmount),
		debt.DueDate.Format("02/01/2006"))
	if debt.IsSettled() {
		msg += " Já quitado."
	}
	return msg
}

// FormatPaymentApplied renders the confirmation for a payment
func FormatPaymentApplied(debt *finance.Debt, payment *finance.Payment) string {
	if debt.IsSettled() {
		return fmt.Sprintf("Pagamento de R$ %s registrado. Débito #%d quitado!",
			formatMoney(payment.Amount), debt.Identification)
	}
	return fmt.Sprintf("Pagamento de R$ %s registrado. Débito #%d: restam R$ %s.",
		formatMoney(payment.Amount), debt.Identification, formatMoney(debt.RemainingAmount))
}

// FormatIncomeCreated renders the confirmation for an income
func FormatIncomeCreated(income *finance.Income) string {
	return fmt.Sprintf("Entrada registrada: %s, R$ %s em %s.",
		income.Description,
		formatMoney(income.Amount),
		income.ReceiptDate.Format("02/01/2006"))
}

// formatMoney renders an amount with two decimals and a comma separator
func formatMoney(amount decimal.Decimal) string {
	return strings.ReplaceAll(amount.StringFixed(2), ".", ",")
}
