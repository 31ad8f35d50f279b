package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/starkeae/divarkhaf-bot/internal/conversation"
)

func (h *Handler) deliver(chatID int64, replies []conversation.Reply) {
	for _, r := range replies {
		msg := tgbotapi.NewMessage(chatID, r.Text)
		switch {
		case len(r.Keyboard) > 0:
			msg.ReplyMarkup = buildReplyKeyboard(r.Keyboard)
		case len(r.Inline) > 0:
			msg.ReplyMarkup = buildInlineKeyboard(r.Inline)
		case r.RemoveKeyboard:
			msg.ReplyMarkup = removeKeyboard()
		}

		if err := h.client.Send(msg); err != nil {
			h.logger.Warn("message send failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
}

func (h *Handler) sendText(chatID int64, text string) {
	h.deliver(chatID, []conversation.Reply{{Text: text}})
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, rows [][]string) {
	h.deliver(chatID, []conversation.Reply{{Text: text, Keyboard: rows}})
}
