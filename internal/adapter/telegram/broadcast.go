package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// broadcastDelay spaces outbound messages to stay under the Bot API rate
// limit.
const broadcastDelay = 50 * time.Millisecond

// runBroadcast sends the admin's message to every known user, sequentially.
// Users whose chat rejects the delivery are flagged as blocked.
func (h *Handler) runBroadcast(ctx context.Context, message *tgbotapi.Message) {
	if !h.auth.IsAdmin(message.From.ID) {
		return
	}

	users, err := h.users.All(ctx)
	if err != nil {
		h.logger.Error("broadcast user fetch failed", zap.Error(err))
		h.sendText(message.Chat.ID, "❌ مشکلی در دریافت کاربران پیش آمد.")
		return
	}

	body := "📢 پیام مدیریت دیوار خواف:\n\n" + message.Text
	var sent, blocked, failed int

	for _, user := range users {
		if user.Blocked {
			continue
		}

		err := h.client.Send(tgbotapi.NewMessage(user.ID, body))
		switch {
		case err == nil:
			sent++
		case strings.Contains(err.Error(), "bot was blocked"):
			blocked++
			h.users.MarkBlocked(ctx, user.ID)
		default:
			failed++
			h.logger.Warn("broadcast delivery failed", zap.Int64("user_id", user.ID), zap.Error(err))
		}
		time.Sleep(broadcastDelay)
	}

	h.tracker.Track(ctx, message.From.ID, "broadcast",
		map[string]any{"sent": sent, "blocked": blocked, "failed": failed})
	h.sendText(message.Chat.ID, fmt.Sprintf(
		"✅ پیام همگانی ارسال شد!\n\n📊 نتیجه ارسال:\n✅ موفق: %d\n🚫 مسدود: %d\n❌ ناموفق: %d",
		sent, blocked, failed))
}
