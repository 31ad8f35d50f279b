package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/starkeae/divarkhaf-bot/internal/conversation"
	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

const (
	cbContact       = "contact_"
	cbBookmark      = "bookmark_"
	cbReport        = "report_"
	cbApproveReport = "approve_report_"
	cbRejectReport  = "reject_report_"
)

func listingCard(listing *domain.Listing) string {
	header := ""
	if listing.IsUrgent {
		header = "🔥 آگهی فوری\n\n"
	}
	return fmt.Sprintf(
		"%s📌 %s\n\n"+
			"📝 %s\n\n"+
			"💰 قیمت: %s\n"+
			"📍 موقعیت: %s\n"+
			"⏰ ثبت شده در: %s",
		header, listing.Title, listing.Description,
		conversation.FormatPrice(listing.Price), listing.Location,
		listing.CreatedAt.Format("2006-01-02 15:04"))
}

func listingButtons(listingID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📞 تماس", cbContact+listingID),
			tgbotapi.NewInlineKeyboardButtonData("⭐️ نشان کردن", cbBookmark+listingID),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚫 گزارش", cbReport+listingID),
		),
	)
}

// sendListing renders one listing card, as a photo message when the listing
// has photos, and records the view.
func (h *Handler) sendListing(ctx context.Context, chatID int64, viewerID int64, listing *domain.Listing) {
	text := listingCard(listing)
	buttons := listingButtons(listing.ID)

	var msg tgbotapi.Chattable
	if len(listing.Photos) > 0 {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(listing.Photos[0]))
		photo.Caption = text
		photo.ReplyMarkup = buttons
		msg = photo
	} else {
		textMsg := tgbotapi.NewMessage(chatID, text)
		textMsg.ReplyMarkup = buttons
		msg = textMsg
	}

	if err := h.client.Send(msg); err != nil {
		h.logger.Warn("listing card send failed",
			zap.Int64("chat_id", chatID), zap.String("listing_id", listing.ID), zap.Error(err))
		return
	}

	if viewerID != listing.UserID {
		h.listings.TrackView(ctx, listing.ID, viewerID)
	}
}

func (h *Handler) sendListings(ctx context.Context, chatID int64, viewerID int64, listings []*domain.Listing, emptyText string) {
	if len(listings) == 0 {
		h.sendText(chatID, emptyText)
		return
	}
	for _, listing := range listings {
		h.sendListing(ctx, chatID, viewerID, listing)
	}
}
