package chat

import (
	"strconv"
	"strings"
	"time"

	"github.com/finman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Command is a parsed chat command
type Command interface {
	isCommand()
}

// ListDebtsCommand lists the caller's open debts
type ListDebtsCommand struct{}

// NewDebtCommand registers a new debt
type NewDebtCommand struct {
	Description string
	Amount      decimal.Decimal
	AccountCode string
	DueDate     time.Time
	IsPaid      bool
}

// NewPaymentCommand applies a payment to a debt by its identification
type NewPaymentCommand struct {
	DebtIdentification int64
	Amount             *decimal.Decimal
	AccountCode        string
	PaymentDate        time.Time
	Reconcile          bool
}

// NewIncomeCommand records an income
type NewIncomeCommand struct {
	Description string
	Amount      decimal.Decimal
	AccountCode string
	ReceiptDate time.Time
}

// LinkAccountCommand binds the Telegram chat to an existing user
type LinkAccountCommand struct {
	Username string
	Password string
}

func (ListDebtsCommand) isCommand()   {}
func (NewDebtCommand) isCommand()     {}
func (NewPaymentCommand) isCommand()  {}
func (NewIncomeCommand) isCommand()   {}
func (LinkAccountCommand) isCommand() {}

// ErrUnknownCommand marks text that is not a recognized command
var ErrUnknownCommand = shared.NewDomainError("UNKNOWN_COMMAND", "Unknown chat command")

// Parse turns a message text into a command. Commands start with "/" and
// carry "!"-separated arguments; optional parameters use token prefixes
// (d: date, c: account code, baixa: settle flag). now anchors the
// relative date grammar.
func Parse(text string, now time.Time) (Command, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return nil, ErrUnknownCommand
	}

	parts := strings.Split(text[1:], "!")
	name := strings.ToLower(strings.TrimSpace(parts[0]))
	// Strip the bot mention Telegram appends in group chats
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	args := parts[1:]

	switch name {
	case "debitos":
		return ListDebtsCommand{}, nil
	case "novo":
		return parseNewDebt(args, now)
	case "novo-pagamento":
		return parseNewPayment(args, now)
	case "entrada":
		return parseNewIncome(args, now)
	case "vincular":
		return parseLinkAccount(args)
	default:
		return nil, ErrUnknownCommand
	}
}

func parseNewDebt(args []string, now time.Time) (Command, error) {
	cmd := NewDebtCommand{DueDate: today(now)}
	var positional []string

	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		switch {
		case strings.HasPrefix(arg, "d:"):
			d, err := ParseDate(arg[2:], now)
			if err != nil {
				return nil, err
			}
			cmd.DueDate = d
		case strings.HasPrefix(arg, "c:"):
			cmd.AccountCode = strings.ToLower(arg[2:])
		case strings.HasPrefix(arg, "baixa:"):
			b, err := parseFlag(arg[6:])
			if err != nil {
				return nil, err
			}
			cmd.IsPaid = b
		default:
			positional = append(positional, arg)
		}
	}

	if len(positional) < 2 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Usage: /novo!<description>!<amount>!<account>")
	}
	cmd.Description = positional[0]

	amount, err := ParseAmount(positional[1])
	if err != nil {
		return nil, err
	}
	cmd.Amount = amount

	if len(positional) >= 3 {
		cmd.AccountCode = strings.ToLower(positional[2])
	}
	if cmd.AccountCode == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Account code is required (c:xxxx)")
	}
	return cmd, nil
}

func parseNewPayment(args []string, now time.Time) (Command, error) {
	cmd := NewPaymentCommand{PaymentDate: today(now)}
	var positional []string

	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		switch {
		case strings.HasPrefix(arg, "d:"):
			d, err := ParseDate(arg[2:], now)
			if err != nil {
				return nil, err
			}
			cmd.PaymentDate = d
		case strings.HasPrefix(arg, "c:"):
			cmd.AccountCode = strings.ToLower(arg[2:])
		case strings.HasPrefix(arg, "baixa:"):
			b, err := parseFlag(arg[6:])
			if err != nil {
				return nil, err
			}
			cmd.Reconcile = b
		default:
			positional = append(positional, arg)
		}
	}

	if len(positional) < 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Usage: /novo-pagamento!<debtId>!<amount>!<date>")
	}

	id, err := strconv.ParseInt(positional[0], 10, 64)
	if err != nil || id < 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Debt identification must be a positive number")
	}
	cmd.DebtIdentification = id

	if len(positional) >= 2 {
		amount, err := ParseAmount(positional[1])
		if err != nil {
			return nil, err
		}
		cmd.Amount = &amount
	}
	if len(positional) >= 3 {
		d, err := ParseDate(positional[2], now)
		if err != nil {
			return nil, err
		}
		cmd.PaymentDate = d
	}
	return cmd, nil
}

func parseNewIncome(args []string, now time.Time) (Command, error) {
	cmd := NewIncomeCommand{ReceiptDate: today(now)}
	var positional []string

	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		switch {
		case strings.HasPrefix(arg, "d:"):
			d, err := ParseDate(arg[2:], now)
			if err != nil {
				return nil, err
			}
			cmd.ReceiptDate = d
		case strings.HasPrefix(arg, "c:"):
			cmd.AccountCode = strings.ToLower(arg[2:])
		default:
			positional = append(positional, arg)
		}
	}

	if len(positional) < 2 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Usage: /entrada!<description>!<amount>!<account>")
	}
	cmd.Description = positional[0]

	amount, err := ParseAmount(positional[1])
	if err != nil {
		return nil, err
	}
	cmd.Amount = amount

	if len(positional) >= 3 {
		cmd.AccountCode = strings.ToLower(positional[2])
	}
	if cmd.AccountCode == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Account code is required (c:xxxx)")
	}
	return cmd, nil
}

func parseLinkAccount(args []string) (Command, error) {
	if len(args) < 2 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Usage: /vincular!<username>!<password>")
	}
	return LinkAccountCommand{
		Username: strings.TrimSpace(args[0]),
		Password: args[1],
	}, nil
}

// ParseAmount parses a money value, accepting both "12.50" and the
// Brazilian "12,50" form.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", "Invalid amount: "+s)
	}
	if !amount.IsPositive() {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", "Amount must be positive")
	}
	return amount, nil
}

// ParseDate parses the chat date grammar:
// YYYY-MM-DD, DD/MM/YYYY, hoje, amanha, ontem, +N or -N days.
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "hoje":
		return today(now), nil
	case "amanha", "amanhã":
		return today(now).AddDate(0, 0, 1), nil
	case "ontem":
		return today(now).AddDate(0, 0, -1), nil
	}

	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		n, err := strconv.Atoi(s)
		if err == nil {
			return today(now).AddDate(0, 0, n), nil
		}
	}

	if d, err := time.ParseInLocation("2006-01-02", s, now.Location()); err == nil {
		return d, nil
	}
	if d, err := time.ParseInLocation("02/01/2006", s, now.Location()); err == nil {
		return d, nil
	}

	return time.Time{}, shared.NewDomainError("INVALID_INPUT", "Invalid date: "+s)
}

func parseFlag(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "sim":
		return true, nil
	case "n", "nao", "não":
		return false, nil
	}
	return false, shared.NewDomainError("INVALID_INPUT", "Flag must be s or n")
}

func today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
