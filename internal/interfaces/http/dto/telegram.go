package dto

// TelegramUpdate is the inbound webhook payload. Only the fields the chat
// channel needs are decoded; everything else Telegram sends is ignored.
type TelegramUpdate struct {
	UpdateID int64            `json:"update_id"`
	Message  *TelegramMessage `json:"message"`
}

// TelegramMessage is the message part of an update
type TelegramMessage struct {
	MessageID int64         `json:"message_id"`
	From      *TelegramUser `json:"from"`
	Chat      TelegramChat  `json:"chat"`
	Text      string        `json:"text"`
}

// TelegramUser identifies the sender
type TelegramUser struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// TelegramChat identifies the conversation
type TelegramChat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}
