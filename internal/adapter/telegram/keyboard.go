package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/starkeae/divarkhaf-bot/internal/conversation"
)

func buildReplyKeyboard(rows [][]string) tgbotapi.ReplyKeyboardMarkup {
	keyboardRows := make([][]tgbotapi.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, title := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(title))
		}
		keyboardRows = append(keyboardRows, buttons)
	}

	keyboard := tgbotapi.NewReplyKeyboard(keyboardRows...)
	keyboard.ResizeKeyboard = true
	keyboard.OneTimeKeyboard = false
	return keyboard
}

func buildInlineKeyboard(rows [][]conversation.Button) tgbotapi.InlineKeyboardMarkup {
	keyboardRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		keyboardRows = append(keyboardRows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboardRows...)
}

func removeKeyboard() tgbotapi.ReplyKeyboardRemove {
	return tgbotapi.NewRemoveKeyboard(true)
}
