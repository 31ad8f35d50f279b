package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"

	"github.com/starkeae/divarkhaf-bot/internal/conversation"
	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

func textMessage(text string) *tgbotapi.Message {
	return &tgbotapi.Message{Text: text}
}

func TestClassifyIntents(t *testing.T) {
	tests := []struct {
		text string
		want conversation.Intent
	}{
		{"/cancel", conversation.IntentCancel},
		{conversation.LabelCancel, conversation.IntentCancel},
		{conversation.LabelMainMenu, conversation.IntentCancel},
		{"/skip", conversation.IntentSkipPhotos},
		{conversation.LabelFinish, conversation.IntentFinishPhotos},
		{conversation.LabelMorePhotos, conversation.IntentMorePhotos},
		{conversation.LabelSubmit, conversation.IntentSubmit},
		{"سلام", conversation.IntentNone},
	}

	for _, tc := range tests {
		in := classify(textMessage(tc.text))
		assert.Equal(t, tc.want, in.Intent, "text %q", tc.text)
		assert.Equal(t, conversation.InputText, in.Kind)
		assert.Equal(t, tc.text, in.Text)
	}
}

func TestClassifyCategoryLabel(t *testing.T) {
	in := classify(textMessage(conversation.CategoryLabel(domain.CategoryDigital)))
	assert.Equal(t, domain.CategoryDigital, in.Category)
	assert.Equal(t, conversation.IntentNone, in.Intent)

	in = classify(textMessage("چیز دیگر"))
	assert.Empty(t, in.Category)
}

func TestClassifyPhotoPicksLargestSize(t *testing.T) {
	msg := &tgbotapi.Message{
		Photo: []tgbotapi.PhotoSize{
			{FileID: "small", Width: 90},
			{FileID: "medium", Width: 320},
			{FileID: "large", Width: 1280},
		},
	}

	in := classify(msg)
	assert.Equal(t, conversation.InputPhoto, in.Kind)
	assert.Equal(t, "large", in.PhotoRef)
}
