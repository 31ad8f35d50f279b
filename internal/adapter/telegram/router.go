package telegram

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/starkeae/divarkhaf-bot/internal/analytics"
	"github.com/starkeae/divarkhaf-bot/internal/conversation"
	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
	"github.com/starkeae/divarkhaf-bot/internal/listing/usecase"
)

// pendingKind marks a chat that owes the bot one free-text input outside the
// conversation machines.
type pendingKind int

const (
	pendingNone pendingKind = iota
	pendingSearch
	pendingBroadcast
	pendingRemoveAd
	pendingUrgentAdd
)

// PhotoArchiver stores a durable copy of a listing photo.
type PhotoArchiver interface {
	Archive(ctx context.Context, listingID string, photo io.Reader, size int64) (string, error)
}

// Handler routes updates between the Bot API and the application core.
type Handler struct {
	client    *Client
	logger    *zap.Logger
	auth      usecase.Authorizer
	listings  *usecase.ListingUsecase
	bookmarks *usecase.BookmarkUsecase
	reports   *usecase.ReportUsecase
	users     *usecase.UserUsecase
	stats     *usecase.StatsUsecase
	tracker   *analytics.Tracker
	machine   *conversation.Machine
	reporting *conversation.ReportFlow
	sessions  *conversation.Store
	archive   PhotoArchiver // nil disables photo archiving

	pendingMu     sync.Mutex
	pendingByChat map[int64]pendingKind
}

type Deps struct {
	Logger    *zap.Logger
	Auth      usecase.Authorizer
	Listings  *usecase.ListingUsecase
	Bookmarks *usecase.BookmarkUsecase
	Reports   *usecase.ReportUsecase
	Users     *usecase.UserUsecase
	Stats     *usecase.StatsUsecase
	Tracker   *analytics.Tracker
	Machine   *conversation.Machine
	Reporting *conversation.ReportFlow
	Sessions  *conversation.Store
	Archive   PhotoArchiver
}

func NewHandler(deps Deps) *Handler {
	return &Handler{
		logger:        deps.Logger,
		auth:          deps.Auth,
		listings:      deps.Listings,
		bookmarks:     deps.Bookmarks,
		reports:       deps.Reports,
		users:         deps.Users,
		stats:         deps.Stats,
		tracker:       deps.Tracker,
		machine:       deps.Machine,
		reporting:     deps.Reporting,
		sessions:      deps.Sessions,
		archive:       deps.Archive,
		pendingByChat: make(map[int64]pendingKind),
	}
}

// Bind attaches the outbound client. The client needs the handler at
// construction time, so wiring happens in two steps.
func (h *Handler) Bind(client *Client) { h.client = client }

func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		h.routeMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		h.routeCallback(ctx, update.CallbackQuery)
	}
}

func (h *Handler) routeMessage(ctx context.Context, message *tgbotapi.Message) {
	from := message.From
	if from == nil {
		return
	}
	chatID := message.Chat.ID

	h.users.Touch(ctx, &domain.User{
		ID:        from.ID,
		Username:  from.UserName,
		FirstName: from.FirstName,
		LastName:  from.LastName,
	})

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			h.handleStart(ctx, message)
			return
		case "help":
			h.handleHelp(ctx, message)
			return
		}
	}

	// An active submission or report session consumes the input first.
	if session, ok := h.sessions.Get(from.ID); ok && session.State != conversation.StateIdle {
		h.driveMachine(ctx, chatID, session, message)
		return
	}

	if h.consumePendingInput(ctx, message) {
		return
	}

	h.handleMenu(ctx, message)
}

func (h *Handler) handleStart(ctx context.Context, message *tgbotapi.Message) {
	from := message.From
	h.tracker.Track(ctx, from.ID, "start_command", map[string]any{"user_name": from.FirstName})
	h.sessions.End(from.ID)
	h.clearPending(message.Chat.ID)

	welcome := "سلام " + from.FirstName + "! 👋\n" +
		"به دیوار خواف خوش آمدید!\n\n" +
		"از منوی زیر گزینه مورد نظر خود را انتخاب کنید:"
	h.sendWithKeyboard(message.Chat.ID, welcome, mainMenuKeyboard(h.auth.IsAdmin(from.ID)))
}

func (h *Handler) handleHelp(ctx context.Context, message *tgbotapi.Message) {
	h.tracker.Track(ctx, message.From.ID, "help_command", nil)
	h.sendText(message.Chat.ID, helpText)
}

func (h *Handler) handleMenu(ctx context.Context, message *tgbotapi.Message) {
	from := message.From
	chatID := message.Chat.ID
	text := message.Text

	h.tracker.Track(ctx, from.ID, "menu_selection", map[string]any{"selection": text})

	switch text {
	case menuNewAd:
		session := h.sessions.Begin(from.ID)
		h.deliver(chatID, h.machine.Start(session).Replies)

	case menuBrowse:
		h.sendWithKeyboard(chatID, "لطفاً دسته‌بندی مورد نظر را انتخاب کنید:", conversation.CategoryKeyboard())

	case menuMyAds:
		listings, err := h.listings.ListByUser(ctx, from.ID)
		if err != nil {
			h.sendText(chatID, "❌ مشکلی در دریافت آگهی‌ها پیش آمد.")
			return
		}
		h.sendListings(ctx, chatID, from.ID, listings, "📭 شما هنوز آگهی ثبت نکرده‌اید.")

	case menuBookmarks:
		listings, err := h.bookmarks.ListForUser(ctx, from.ID)
		if err != nil {
			h.sendText(chatID, "❌ مشکلی در دریافت نشان‌شده‌ها پیش آمد.")
			return
		}
		h.sendListings(ctx, chatID, from.ID, listings, "📭 هیچ آگهی نشان‌شده‌ای ندارید.")

	case menuSearch:
		h.setPending(chatID, pendingSearch)
		h.sendText(chatID, "🔍 عبارت جستجو را وارد کنید:")

	case menuUrgent:
		h.sendWithKeyboard(chatID, "🔥 آگهی های فوری\nلطفاً یک گزینه را انتخاب کنید:", urgentMenuKeyboard())

	case urgentMenuAll:
		h.tracker.Track(ctx, from.ID, "view_urgent_listings", nil)
		listings, err := h.listings.ListUrgent(ctx)
		if err != nil {
			h.sendText(chatID, "❌ مشکلی در دریافت آگهی‌ها پیش آمد.")
			return
		}
		h.sendListings(ctx, chatID, from.ID, listings, "📭 در حال حاضر هیچ آگهی فوری ثبت نشده است.")

	case urgentMenuRequest:
		h.sendText(chatID, urgentRequestText)

	case menuContactUs:
		h.sendText(chatID, contactUsText)

	case menuHelp:
		h.handleHelp(ctx, message)

	case conversation.LabelMainMenu:
		h.clearPending(chatID)
		h.sendWithKeyboard(chatID, "منوی اصلی:", mainMenuKeyboard(h.auth.IsAdmin(from.ID)))

	default:
		if h.handleAdminMenu(ctx, message) {
			return
		}
		if category, ok := conversation.CategoryFromLabel(text); ok {
			h.showCategory(ctx, chatID, from.ID, category)
			return
		}
	}
}

func (h *Handler) showCategory(ctx context.Context, chatID, viewerID int64, category domain.Category) {
	listings, err := h.listings.ListByCategory(ctx, category)
	if err != nil {
		h.sendText(chatID, "❌ مشکلی در دریافت آگهی‌ها پیش آمد.")
		return
	}
	h.sendListings(ctx, chatID, viewerID, listings, "📭 هیچ آگهی در این دسته‌بندی وجود ندارد.")
}

// driveMachine feeds one message to the user's active conversation.
func (h *Handler) driveMachine(ctx context.Context, chatID int64, session *conversation.Session, message *tgbotapi.Message) {
	in := classify(message)

	// The machine discards the draft on commit; the photo refs are needed
	// afterwards for archiving.
	var photos []string
	if session.State == conversation.StateConfirm && session.Draft != nil {
		photos = session.Draft.Photos
	}

	result := h.machine.Handle(ctx, session, in)
	h.deliver(chatID, result.Replies)

	if result.ListingID != "" && len(photos) > 0 && h.archive != nil {
		go h.archivePhotos(result.ListingID, photos)
	}
	if result.Done {
		h.sessions.End(session.UserID)
		h.sendWithKeyboard(chatID, "منوی اصلی:", mainMenuKeyboard(h.auth.IsAdmin(session.UserID)))
	}
}

// archivePhotos copies committed listing photos into object storage. Runs off
// the update loop; failures are logged only.
func (h *Handler) archivePhotos(listingID string, fileIDs []string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	for _, fileID := range fileIDs {
		url, err := h.client.FileURL(fileID)
		if err != nil {
			h.logger.Warn("photo url resolve failed", zap.String("listing_id", listingID), zap.Error(err))
			continue
		}
		h.archivePhoto(ctx, listingID, url)
	}
}

func (h *Handler) archivePhoto(ctx context.Context, listingID, url string) {
	resp, err := http.Get(url)
	if err != nil {
		h.logger.Warn("photo download failed", zap.String("listing_id", listingID), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		h.logger.Warn("photo download failed",
			zap.String("listing_id", listingID), zap.Int("status", resp.StatusCode))
		return
	}
	if _, err := h.archive.Archive(ctx, listingID, resp.Body, resp.ContentLength); err != nil {
		h.logger.Warn("photo archive failed", zap.String("listing_id", listingID), zap.Error(err))
	}
}

func (h *Handler) routeCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		return
	}
	from := query.From
	data := query.Data
	chatID := query.Message.Chat.ID

	switch {
	case strings.HasPrefix(data, cbContact):
		h.handleContact(ctx, query, strings.TrimPrefix(data, cbContact))

	case strings.HasPrefix(data, cbBookmark):
		h.handleBookmark(ctx, query, strings.TrimPrefix(data, cbBookmark))

	case strings.HasPrefix(data, cbApproveReport):
		h.handleReportDecision(ctx, query, strings.TrimPrefix(data, cbApproveReport), true)

	case strings.HasPrefix(data, cbRejectReport):
		h.handleReportDecision(ctx, query, strings.TrimPrefix(data, cbRejectReport), false)

	case strings.HasPrefix(data, cbReport):
		session := h.sessions.Begin(from.ID)
		result := h.reporting.Start(session, strings.TrimPrefix(data, cbReport))
		h.client.AnswerCallback(query.ID, "")
		h.deliver(chatID, result.Replies)

	case strings.HasPrefix(data, conversation.ReasonCallbackPrefix), data == conversation.CancelReportCallback:
		session, ok := h.sessions.Get(from.ID)
		if !ok || session.State != conversation.StateReportReason {
			h.client.AnswerCallback(query.ID, "این گزارش دیگر فعال نیست.")
			return
		}
		result := h.reporting.HandleReason(ctx, session, data, fullName(from))
		h.sessions.End(from.ID)
		h.client.AnswerCallback(query.ID, "")
		h.deliver(chatID, result.Replies)

	default:
		h.client.AnswerCallback(query.ID, "")
	}
}

func (h *Handler) handleContact(ctx context.Context, query *tgbotapi.CallbackQuery, listingID string) {
	listing, err := h.listings.Get(ctx, listingID)
	if errors.Is(err, domain.ErrListingNotFound) {
		h.client.AnswerCallback(query.ID, "❌ آگهی مورد نظر یافت نشد.")
		return
	}
	if err != nil {
		h.client.AnswerCallback(query.ID, "❌ خطا در دریافت اطلاعات تماس.")
		return
	}

	h.tracker.Track(ctx, query.From.ID, "contact_request", map[string]any{"listing_id": listingID})
	h.client.AnswerCallback(query.ID, "")
	h.sendText(query.Message.Chat.ID, "📞 شماره تماس آگهی‌دهنده:\n"+listing.Contact)
}

func (h *Handler) handleBookmark(ctx context.Context, query *tgbotapi.CallbackQuery, listingID string) {
	added, err := h.bookmarks.Toggle(ctx, query.From.ID, listingID)
	if errors.Is(err, domain.ErrListingNotFound) {
		h.client.AnswerCallback(query.ID, "❌ آگهی مورد نظر یافت نشد.")
		return
	}
	if err != nil {
		h.client.AnswerCallback(query.ID, "❌ خطا در نشان کردن آگهی.")
		return
	}

	h.tracker.Track(ctx, query.From.ID, "bookmark_toggle",
		map[string]any{"listing_id": listingID, "added": added})
	if added {
		h.client.AnswerCallback(query.ID, "⭐️ به نشان‌شده‌ها اضافه شد.")
	} else {
		h.client.AnswerCallback(query.ID, "از نشان‌شده‌ها حذف شد.")
	}
}

func (h *Handler) setPending(chatID int64, kind pendingKind) {
	h.pendingMu.Lock()
	defer h.pendingMu.Unlock()
	h.pendingByChat[chatID] = kind
}

func (h *Handler) clearPending(chatID int64) {
	h.pendingMu.Lock()
	defer h.pendingMu.Unlock()
	delete(h.pendingByChat, chatID)
}

func (h *Handler) takePending(chatID int64) pendingKind {
	h.pendingMu.Lock()
	defer h.pendingMu.Unlock()
	kind, ok := h.pendingByChat[chatID]
	if !ok {
		return pendingNone
	}
	delete(h.pendingByChat, chatID)
	return kind
}

// consumePendingInput resolves a chat that owes one free-text answer, like a
// search phrase or a broadcast body.
func (h *Handler) consumePendingInput(ctx context.Context, message *tgbotapi.Message) bool {
	chatID := message.Chat.ID
	kind := h.takePending(chatID)
	if kind == pendingNone {
		return false
	}

	switch kind {
	case pendingSearch:
		h.tracker.Track(ctx, message.From.ID, "search", map[string]any{"query": message.Text})
		listings, err := h.listings.Search(ctx, message.Text)
		if err != nil {
			h.sendText(chatID, "❌ مشکلی در جستجو پیش آمد.")
			return true
		}
		h.sendListings(ctx, chatID, message.From.ID, listings, "📭 آگهی‌ای مطابق جستجوی شما پیدا نشد.")

	case pendingBroadcast:
		h.runBroadcast(ctx, message)

	case pendingRemoveAd:
		h.adminRemoveListing(ctx, message)

	case pendingUrgentAdd:
		h.adminMarkUrgent(ctx, message)
	}
	return true
}

func fullName(user *tgbotapi.User) string {
	name := user.FirstName
	if user.LastName != "" {
		name += " " + user.LastName
	}
	return name
}
