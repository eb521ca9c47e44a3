package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/finman/backend/internal/domain/finance"
	"github.com/finman/backend/internal/domain/identity"
	"github.com/finman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MessageSender delivers a chat message to a user's conversation
type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Notifier subscribes to debt lifecycle events and pushes chat messages
// to the owning user. Delivery is best-effort: a failed or impossible
// send is logged and dropped, never surfaced to the operation that
// raised the event.
type Notifier struct {
	userRepo identity.UserRepository
	sender   MessageSender
	logger   *zap.Logger
}

// NewNotifier creates a new notifier
func NewNotifier(userRepo identity.UserRepository, sender MessageSender, logger *zap.Logger) *Notifier {
	return &Notifier{
		userRepo: userRepo,
		sender:   sender,
		logger:   logger,
	}
}

// EventTypes returns the event types the notifier subscribes to
func (n *Notifier) EventTypes() []string {
	return []string{
		finance.EventTypeDebtCreated,
		finance.EventTypeDebtPaymentApplied,
		finance.EventTypeDebtPaymentReversed,
		finance.EventTypeDebtSettled,
	}
}

// Handle formats and sends the message for one event
func (n *Notifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	text := n.formatMessage(event)
	if text == "" {
		return nil
	}

	user, err := n.userRepo.FindByID(ctx, event.ClientID())
	if err != nil {
		n.logger.Warn("notification skipped: user lookup failed",
			zap.String("event_type", event.EventType()),
			zap.Error(err))
		return nil
	}
	if user == nil || user.ChatID == nil {
		// No chat bound, nothing to deliver
		return nil
	}

	if err := n.sender.SendMessage(ctx, *user.ChatID, text); err != nil {
		n.logger.Warn("notification delivery failed",
			zap.String("event_type", event.EventType()),
			zap.Int64("chat_id", *user.ChatID),
			zap.Error(err))
	}
	return nil
}

func (n *Notifier) formatMessage(event shared.DomainEvent) string {
	switch e := event.(type) {
	case *finance.DebtCreatedEvent:
		return fmt.Sprintf("Novo débito: %s, R$ %s, vencimento %s.",
			e.Description, money(e.TotalAmount), e.DueDate.Format("02/01/2006"))
	case *finance.DebtPaymentAppliedEvent:
		return fmt.Sprintf("Pagamento de R$ %s aplicado em %s. Restante: R$ %s.",
			money(e.Amount), e.Description, money(e.RemainingAmount))
	case *finance.DebtPaymentReversedEvent:
		return fmt.Sprintf("Pagamento de R$ %s estornado em %s. Restante: R$ %s.",
			money(e.Amount), e.Description, money(e.RemainingAmount))
	case *finance.DebtSettledEvent:
		return fmt.Sprintf("Débito quitado: %s.", e.Description)
	default:
		return ""
	}
}

func money(amount decimal.Decimal) string {
	return strings.ReplaceAll(amount.StringFixed(2), ".", ",")
}

var _ shared.EventHandler = (*Notifier)(nil)
