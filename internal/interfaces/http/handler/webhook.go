package handler

import (
	"net/http"
	"strings"

	"github.com/finman/backend/internal/infrastructure/telegram"
	"github.com/finman/backend/internal/interfaces/chat"
	"github.com/finman/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler ingests Telegram updates. It always answers 200: any
// other status makes Telegram redeliver the same update in a loop.
type WebhookHandler struct {
	BaseHandler
	dispatcher *chat.Dispatcher
	sender     telegram.Sender
	logger     *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(dispatcher *chat.Dispatcher, sender telegram.Sender, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		dispatcher: dispatcher,
		sender:     sender,
		logger:     logger,
	}
}

// Handle handles POST /api/webhook/
func (h *WebhookHandler) Handle(c *gin.Context) {
	var update dto.TelegramUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		h.logger.Warn("malformed webhook payload", zap.Error(err))
		c.Status(http.StatusOK)
		return
	}

	msg := update.Message
	if msg == nil || strings.TrimSpace(msg.Text) == "" || (msg.From != nil && msg.From.IsBot) {
		c.Status(http.StatusOK)
		return
	}

	reply := h.dispatcher.HandleMessage(c.Request.Context(), msg.Chat.ID, msg.Text)
	if reply != "" && h.sender != nil {
		if err := h.sender.SendMessage(c.Request.Context(), msg.Chat.ID, reply); err != nil {
			h.logger.Warn("failed to send chat reply",
				zap.Int64("chat_id", msg.Chat.ID),
				zap.Error(err))
		}
	}

	c.Status(http.StatusOK)
}
