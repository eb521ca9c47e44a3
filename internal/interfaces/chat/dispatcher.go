package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	appfinance "github.com/finman/backend/internal/application/finance"
	"github.com/finman/backend/internal/domain/identity"
	"github.com/finman/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Dispatcher routes parsed chat commands to the application services,
// using the chat binding on the user record to resolve the caller.
type Dispatcher struct {
	userRepo       identity.UserRepository
	debtService    *appfinance.DebtService
	paymentService *appfinance.PaymentService
	incomeService  *appfinance.IncomeService
	logger         *zap.Logger
}

// NewDispatcher creates a new chat dispatcher
func NewDispatcher(
	userRepo identity.UserRepository,
	debtService *appfinance.DebtService,
	paymentService *appfinance.PaymentService,
	incomeService *appfinance.IncomeService,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		userRepo:       userRepo,
		debtService:    debtService,
		paymentService: paymentService,
		incomeService:  incomeService,
		logger:         logger,
	}
}

// HandleMessage processes one inbound chat message and returns the reply
// text. Failures never propagate: they become reply text, because the
// webhook must answer 200 regardless.
func (d *Dispatcher) HandleMessage(ctx context.Context, chatID int64, text string) string {
	cmd, err := Parse(text, time.Now())
	if err != nil {
		if errors.Is(err, ErrUnknownCommand) {
			return replyUnknown
		}
		return errorReply(err)
	}

	// Linking is the only command available to an unbound chat
	if link, ok := cmd.(LinkAccountCommand); ok {
		return d.linkAccount(ctx, chatID, link)
	}

	user, err := d.userRepo.FindByChatID(ctx, chatID)
	if err != nil {
		d.logger.Error("failed to resolve chat user",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return errorReply(err)
	}
	if user == nil || !user.IsActive() {
		return replyNotLinked
	}

	switch c := cmd.(type) {
	case ListDebtsCommand:
		return d.listDebts(ctx, user)
	case NewDebtCommand:
		return d.createDebt(ctx, user, c)
	case NewPaymentCommand:
		return d.createPayment(ctx, user, c)
	case NewIncomeCommand:
		return d.createIncome(ctx, user, c)
	default:
		return replyUnknown
	}
}

func (d *Dispatcher) linkAccount(ctx context.Context, chatID int64, cmd LinkAccountCommand) string {
	user, err := d.userRepo.FindByUsername(ctx, cmd.Username)
	if err != nil {
		d.logger.Error("failed to load user for chat link", zap.Error(err))
		return errorReply(err)
	}
	if user == nil || !user.VerifyPassword(cmd.Password) || !user.CanLogin() {
		return "Usuário ou senha inválidos."
	}

	user.BindChat(chatID)
	if err := d.userRepo.Update(ctx, user); err != nil {
		d.logger.Error("failed to bind chat",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return errorReply(err)
	}

	d.logger.Info("chat linked",
		zap.String("user_id", user.ID.String()),
		zap.Int64("chat_id", chatID))
	return replyLinked
}

func (d *Dispatcher) listDebts(ctx context.Context, user *identity.User) string {
	debts, err := d.debtService.ListOpenDebts(ctx, user.ID)
	if err != nil {
		return errorReply(err)
	}
	return FormatDebtList(debts)
}

func (d *Dispatcher) createDebt(ctx context.Context, user *identity.User, cmd NewDebtCommand) string {
	debt, err := d.debtService.CreateDebt(ctx, appfinance.CreateDebtRequest{
		ClientID:       user.ID,
		InstrumentCode: cmd.AccountCode,
		Description:    cmd.Description,
		TotalAmount:    cmd.Amount,
		DueDate:        cmd.DueDate,
		IsPaid:         cmd.IsPaid,
	})
	if err != nil {
		return errorReply(err)
	}
	return FormatDebtCreated(debt)
}

func (d *Dispatcher) createPayment(ctx context.Context, user *identity.User, cmd NewPaymentCommand) string {
	if cmd.AccountCode == "" {
		return "Informe a conta com c:<código>."
	}

	payment, err := d.paymentService.CreatePayment(ctx, appfinance.CreatePaymentRequest{
		ClientID:           user.ID,
		DebtIdentification: &cmd.DebtIdentification,
		InstrumentCode:     cmd.AccountCode,
		Amount:             cmd.Amount,
		PaymentDate:        cmd.PaymentDate,
		Reconcile:          cmd.Reconcile,
	})
	if err != nil {
		return errorReply(err)
	}

	debt, _, err := d.debtService.GetDebt(ctx, user.ID, payment.DebtID)
	if err != nil {
		// The payment went through; confirm it without the balance
		return fmt.Sprintf("Pagamento de R$ %s registrado.", formatMoney(payment.Amount))
	}
	return FormatPaymentApplied(debt, payment)
}

func (d *Dispatcher) createIncome(ctx context.Context, user *identity.User, cmd NewIncomeCommand) string {
	income, err := d.incomeService.CreateIncome(ctx, appfinance.CreateIncomeRequest{
		ClientID:       user.ID,
		InstrumentCode: cmd.AccountCode,
		Description:    cmd.Description,
		Amount:         cmd.Amount,
		ReceiptDate:    cmd.ReceiptDate,
	})
	if err != nil {
		return errorReply(err)
	}
	return FormatIncomeCreated(income)
}

// errorReply renders an error as chat text. Domain errors carry a safe
// message; anything else gets a generic apology.
func errorReply(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return "Não foi possível completar: " + domainErr.Message
	}
	return "Algo deu errado, tente novamente mais tarde."
}
