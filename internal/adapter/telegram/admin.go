package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

var reasonTexts = map[domain.ReportReason]string{
	domain.ReasonInappropriate: "محتوای نامناسب",
	domain.ReasonScam:          "کلاهبرداری",
	domain.ReasonFalseInfo:     "اطلاعات نادرست",
	domain.ReasonDuplicate:     "تکراری",
}

// handleAdminMenu reports whether the message matched an admin menu entry.
// Non-admins never match: the panel entries behave like unknown text.
func (h *Handler) handleAdminMenu(ctx context.Context, message *tgbotapi.Message) bool {
	from := message.From
	chatID := message.Chat.ID

	if !h.auth.IsAdmin(from.ID) {
		if message.Text == menuAdmin {
			h.sendText(chatID, "⛔️ شما دسترسی به این بخش را ندارید.")
			return true
		}
		return false
	}

	switch message.Text {
	case menuAdmin, adminBackToPanel:
		h.sendWithKeyboard(chatID, "🎛 پنل مدیریت دیوار خواف\nلطفا یکی از گزینه های زیر را انتخاب کنید:", adminMenuKeyboard())

	case adminMenuStats:
		h.showStats(ctx, message)

	case adminMenuReports:
		h.showPendingReports(ctx, message)

	case adminMenuUrgent:
		h.sendWithKeyboard(chatID, "✨ مدیریت آگهی های فوری\nلطفا یک گزینه را انتخاب کنید:", adminUrgentKeyboard())

	case adminUrgentAdd:
		h.setPending(chatID, pendingUrgentAdd)
		h.sendText(chatID, "✨ شناسه آگهی مورد نظر برای فوری شدن را وارد کنید:")

	case adminUrgentList:
		listings, err := h.listings.ListUrgent(ctx)
		if err != nil {
			h.sendText(chatID, "❌ مشکلی در دریافت آگهی‌ها پیش آمد.")
			return true
		}
		h.sendListings(ctx, chatID, from.ID, listings, "📭 هیچ آگهی فوری ثبت نشده است.")

	case adminMenuRemoveAd:
		h.setPending(chatID, pendingRemoveAd)
		h.sendText(chatID, "❌ حذف آگهی\nلطفا شناسه آگهی مورد نظر را وارد کنید:")

	case adminMenuBroadcast:
		h.setPending(chatID, pendingBroadcast)
		h.sendText(chatID, "📢 ارسال پیام همگانی\nلطفا پیام خود را وارد کنید:")

	case adminMenuUsers:
		h.showActiveUsers(ctx, message)

	default:
		return false
	}
	return true
}

func (h *Handler) showStats(ctx context.Context, message *tgbotapi.Message) {
	stats, err := h.stats.Collect(ctx, message.From.ID)
	if err != nil {
		h.logger.Error("stats collection failed", zap.Error(err))
		h.sendText(message.Chat.ID, "❌ مشکلی در دریافت آمار پیش آمد.")
		return
	}

	text := fmt.Sprintf(
		"📊 آمار کلی دیوار خواف:\n\n"+
			"👥 تعداد کل کاربران: %d\n"+
			"📢 تعداد کل آگهی ها: %d\n"+
			"✅ آگهی های فعال: %d\n"+
			"🔥 آگهی های فوری: %d\n"+
			"👁 بازدید امروز: %d\n"+
			"👥 کاربران جدید امروز: %d\n"+
			"📝 آگهی های جدید امروز: %d\n"+
			"🚫 گزارش های در انتظار: %d\n\n"+
			"آخرین بروزرسانی: %s",
		stats.TotalUsers, stats.TotalListings, stats.ActiveListings, stats.UrgentListings,
		stats.TodayViews, stats.TodayNewUsers, stats.TodayNewListings, stats.PendingReports,
		time.Now().UTC().Format("2006-01-02 15:04:05"))
	h.sendText(message.Chat.ID, text)
}

func (h *Handler) showPendingReports(ctx context.Context, message *tgbotapi.Message) {
	reports, err := h.reports.Pending(ctx, message.From.ID)
	if err != nil {
		h.logger.Error("pending reports fetch failed", zap.Error(err))
		h.sendText(message.Chat.ID, "❌ مشکلی در دریافت گزارش‌ها پیش آمد.")
		return
	}
	if len(reports) == 0 {
		h.sendText(message.Chat.ID, "🎉 هیچ گزارش تخلفی وجود ندارد!")
		return
	}

	for _, report := range reports {
		text := fmt.Sprintf(
			"🚫 گزارش تخلف:\n\n"+
				"📢 آگهی: %s\n"+
				"👤 گزارش دهنده: %s\n"+
				"📝 دلیل: %s\n"+
				"⏰ زمان گزارش: %s",
			report.ListingTitle, report.ReporterName,
			reasonTexts[report.Reason], report.CreatedAt.Format("2006-01-02 15:04:05"))

		msg := tgbotapi.NewMessage(message.Chat.ID, text)
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ تایید و حذف آگهی", cbApproveReport+report.ID),
				tgbotapi.NewInlineKeyboardButtonData("❌ رد گزارش", cbRejectReport+report.ID),
			),
		)
		if err := h.client.Send(msg); err != nil {
			h.logger.Warn("report card send failed", zap.String("report_id", report.ID), zap.Error(err))
		}
	}
}

func (h *Handler) handleReportDecision(ctx context.Context, query *tgbotapi.CallbackQuery, reportID string, approve bool) {
	var err error
	if approve {
		err = h.reports.Approve(ctx, query.From.ID, reportID)
	} else {
		err = h.reports.Reject(ctx, query.From.ID, reportID)
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		h.client.AnswerCallback(query.ID, "⛔️ شما دسترسی به این بخش را ندارید.")
		return
	case errors.Is(err, domain.ErrReportResolved):
		h.client.AnswerCallback(query.ID, "این گزارش قبلاً بررسی شده است.")
		return
	case errors.Is(err, domain.ErrReportNotFound):
		h.client.AnswerCallback(query.ID, "❌ گزارش مورد نظر یافت نشد.")
		return
	case err != nil:
		h.logger.Error("report decision failed", zap.String("report_id", reportID), zap.Error(err))
		h.client.AnswerCallback(query.ID, "❌ خطا در پردازش گزارش.")
		return
	}

	outcome := "✅ گزارش تایید و آگهی حذف شد."
	if !approve {
		outcome = "✅ گزارش رد شد."
	}
	h.client.AnswerCallback(query.ID, "")

	edit := tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, outcome)
	if err := h.client.Send(edit); err != nil {
		h.logger.Warn("report card edit failed", zap.String("report_id", reportID), zap.Error(err))
	}
}

func (h *Handler) adminRemoveListing(ctx context.Context, message *tgbotapi.Message) {
	if !h.auth.IsAdmin(message.From.ID) {
		return
	}

	deleted, err := h.listings.Delete(ctx, message.Text)
	if err != nil {
		h.logger.Error("admin listing delete failed", zap.String("listing_id", message.Text), zap.Error(err))
		h.sendText(message.Chat.ID, "❌ خطا در حذف آگهی.")
		return
	}
	if !deleted {
		h.sendText(message.Chat.ID, "❌ آگهی مورد نظر یافت نشد.")
		return
	}
	h.sendText(message.Chat.ID, "✅ آگهی با موفقیت حذف شد.")
}

func (h *Handler) adminMarkUrgent(ctx context.Context, message *tgbotapi.Message) {
	if !h.auth.IsAdmin(message.From.ID) {
		return
	}

	urgent := true
	modified, err := h.listings.Update(ctx, message.Text, domain.ListingUpdate{IsUrgent: &urgent})
	if err != nil || !modified {
		h.sendText(message.Chat.ID, "❌ آگهی مورد نظر یافت نشد.")
		return
	}
	h.sendText(message.Chat.ID, "✅ آگهی به بخش فوری اضافه شد.")
}

func (h *Handler) showActiveUsers(ctx context.Context, message *tgbotapi.Message) {
	users, err := h.users.All(ctx)
	if err != nil {
		h.sendText(message.Chat.ID, "❌ مشکلی در دریافت کاربران پیش آمد.")
		return
	}

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	var active int
	for _, u := range users {
		if u.LastActive.After(cutoff) {
			active++
		}
	}
	h.sendText(message.Chat.ID, fmt.Sprintf(
		"👥 کاربران:\n\nکل کاربران: %d\nفعال در ۲۴ ساعت گذشته: %d", len(users), active))
}
