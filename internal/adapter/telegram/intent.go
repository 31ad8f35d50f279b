package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/starkeae/divarkhaf-bot/internal/conversation"
)

// classify maps one inbound message onto a typed conversation input. The
// machines dispatch on the result, never on raw message text.
func classify(message *tgbotapi.Message) conversation.Input {
	if len(message.Photo) > 0 {
		// Telegram orders photo sizes ascending; the last is the original.
		best := message.Photo[len(message.Photo)-1]
		return conversation.Input{Kind: conversation.InputPhoto, PhotoRef: best.FileID}
	}

	in := conversation.Input{Kind: conversation.InputText, Text: message.Text}

	switch message.Text {
	case conversation.CommandCancel, conversation.LabelCancel, conversation.LabelMainMenu:
		in.Intent = conversation.IntentCancel
	case conversation.CommandSkip:
		in.Intent = conversation.IntentSkipPhotos
	case conversation.LabelFinish:
		in.Intent = conversation.IntentFinishPhotos
	case conversation.LabelMorePhotos:
		in.Intent = conversation.IntentMorePhotos
	case conversation.LabelSubmit:
		in.Intent = conversation.IntentSubmit
	}

	if category, ok := conversation.CategoryFromLabel(message.Text); ok {
		in.Category = category
	}
	return in
}
