package conversation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
	"github.com/starkeae/divarkhaf-bot/internal/listing/rules"
)

// ListingCreator commits a finished draft. Satisfied by the listing usecase.
type ListingCreator interface {
	Create(ctx context.Context, listing *domain.Listing) (string, error)
}

// InteractionTracker records fire-and-forget interaction events.
type InteractionTracker interface {
	Track(ctx context.Context, userID int64, action string, payload map[string]any)
}

type transition func(ctx context.Context, s *Session, in Input) Result

// Machine drives the listing submission flow:
//
//	Category → Title → Description → Price → Contact → Location → Photo → Confirm → END
//
// A cancel intent is honored in every state and discards the draft. Each
// field state validates its input with the rules package; a failed check
// re-prompts in place without touching the draft.
type Machine struct {
	store       ListingCreator
	tracker     InteractionTracker
	logger      *zap.Logger
	transitions map[State]transition
}

func NewMachine(store ListingCreator, tracker InteractionTracker, logger *zap.Logger) *Machine {
	m := &Machine{store: store, tracker: tracker, logger: logger}
	m.transitions = map[State]transition{
		StateCategory:    m.handleCategory,
		StateTitle:       m.handleTitle,
		StateDescription: m.handleDescription,
		StatePrice:       m.handlePrice,
		StateContact:     m.handleContact,
		StateLocation:    m.handleLocation,
		StatePhoto:       m.handlePhoto,
		StateConfirm:     m.handleConfirm,
	}
	return m
}

// Start puts the session at the head of the flow with an empty draft. Any
// draft from a previous, unfinished run is discarded.
func (m *Machine) Start(s *Session) Result {
	s.State = StateCategory
	s.Draft = &Draft{}
	return Result{Replies: []Reply{{
		Text:     "📝 ثبت آگهی جدید\n\nلطفاً دسته‌بندی آگهی خود را انتخاب کنید:",
		Keyboard: CategoryKeyboard(),
	}}}
}

// Handle feeds one input to the active state's transition.
func (m *Machine) Handle(ctx context.Context, s *Session, in Input) Result {
	if in.Intent == IntentCancel {
		return m.cancel(s)
	}

	handle, ok := m.transitions[s.State]
	if !ok {
		m.logger.Warn("input outside an active submission flow",
			zap.Int64("user_id", s.UserID), zap.String("state", s.State.String()))
		return m.cancel(s)
	}
	return handle(ctx, s, in)
}

func (m *Machine) cancel(s *Session) Result {
	s.State = StateIdle
	s.Draft = nil
	return Result{
		Done:    true,
		Replies: []Reply{{Text: "عملیات لغو شد.", RemoveKeyboard: true}},
	}
}

func (m *Machine) handleCategory(_ context.Context, s *Session, in Input) Result {
	if in.Category == "" || !in.Category.Valid() {
		return Result{Replies: []Reply{reply("❌ لطفاً یک دسته‌بندی معتبر انتخاب کنید.")}}
	}

	s.Draft.Category = in.Category
	s.State = StateTitle
	return Result{Replies: []Reply{{
		Text:           "عنوان آگهی خود را وارد کنید:\n(حداقل ۱۰ و حداکثر ۱۰۰ کاراکتر)",
		RemoveKeyboard: true,
	}}}
}

func (m *Machine) handleTitle(_ context.Context, s *Session, in Input) Result {
	if v := rules.Title(in.Text); !v.OK {
		return Result{Replies: []Reply{reply(v.Reason)}}
	}

	title := in.Text
	s.Draft.Title = &title
	s.State = StateDescription
	return Result{Replies: []Reply{reply("توضیحات آگهی را وارد کنید:\n(حداقل ۳۰ و حداکثر ۱۰۰۰ کاراکتر)")}}
}

func (m *Machine) handleDescription(_ context.Context, s *Session, in Input) Result {
	if v := rules.Description(in.Text); !v.OK {
		return Result{Replies: []Reply{reply(v.Reason)}}
	}

	description := in.Text
	s.Draft.Description = &description
	s.State = StatePrice
	return Result{Replies: []Reply{reply("قیمت را وارد کنید:\nبرای توافقی بودن عدد 0 را وارد کنید")}}
}

func (m *Machine) handlePrice(_ context.Context, s *Session, in Input) Result {
	price, v := rules.Price(in.Text)
	if !v.OK {
		return Result{Replies: []Reply{reply(v.Reason)}}
	}

	s.Draft.Price = &price
	s.State = StateContact
	return Result{Replies: []Reply{reply("شماره تماس خود را وارد کنید:")}}
}

func (m *Machine) handleContact(_ context.Context, s *Session, in Input) Result {
	if v := rules.Phone(in.Text); !v.OK {
		return Result{Replies: []Reply{reply(v.Reason)}}
	}

	contact := strings.TrimSpace(in.Text)
	s.Draft.Contact = &contact
	s.Draft.Photos = []string{}
	s.State = StateLocation
	return Result{Replies: []Reply{reply("موقعیت مکانی را وارد کنید:\nمثال: خواف - خیابان امام رضا")}}
}

func (m *Machine) handleLocation(_ context.Context, s *Session, in Input) Result {
	location := strings.TrimSpace(in.Text)
	if location == "" {
		return Result{Replies: []Reply{reply("❌ لطفاً موقعیت مکانی را وارد کنید:")}}
	}

	s.Draft.Location = &location
	s.State = StatePhoto
	return Result{Replies: []Reply{reply(fmt.Sprintf(
		"عکس آگهی را ارسال کنید:\n(حداکثر %d عکس، برای رد کردن %s را بزنید)",
		rules.MaxPhotos, CommandSkip))}}
}

func (m *Machine) handlePhoto(_ context.Context, s *Session, in Input) Result {
	switch {
	case in.Intent == IntentSkipPhotos || in.Intent == IntentFinishPhotos:
		return m.showConfirmation(s)

	case in.Kind == InputPhoto:
		if !rules.PhotoRoom(len(s.Draft.Photos)) {
			// Cap reached: the attachment is dropped and the flow moves on.
			result := m.showConfirmation(s)
			result.Replies = append([]Reply{reply("❌ حداکثر تعداد عکس‌های مجاز ارسال شده است.")}, result.Replies...)
			return result
		}
		s.Draft.Photos = append(s.Draft.Photos, in.PhotoRef)
		return Result{Replies: []Reply{{
			Text: fmt.Sprintf("عکس %d از %d ذخیره شد.\nمی‌خواهید عکس دیگری اضافه کنید؟",
				len(s.Draft.Photos), rules.MaxPhotos),
			Keyboard: [][]string{{LabelFinish, LabelMorePhotos}},
		}}}

	case in.Intent == IntentMorePhotos:
		return Result{Replies: []Reply{reply("عکس بعدی را ارسال کنید:")}}

	default:
		return Result{Replies: []Reply{reply(fmt.Sprintf(
			"❌ لطفاً یک عکس ارسال کنید یا %s را بزنید.", CommandSkip))}}
	}
}

func (m *Machine) showConfirmation(s *Session) Result {
	s.State = StateConfirm
	d := s.Draft
	text := fmt.Sprintf(
		"📝 پیش‌نمایش آگهی:\n\n"+
			"🏷 عنوان: %s\n"+
			"📝 توضیحات: %s\n"+
			"💰 قیمت: %s\n"+
			"📞 تماس: %s\n"+
			"📍 موقعیت: %s\n"+
			"🖼 تعداد عکس: %d\n\n"+
			"آیا از ثبت آگهی مطمئن هستید؟",
		deref(d.Title), deref(d.Description), FormatPrice(derefInt(d.Price)),
		deref(d.Contact), deref(d.Location), len(d.Photos))

	return Result{Replies: []Reply{{
		Text:     text,
		Keyboard: [][]string{{LabelSubmit, LabelCancel}},
	}}}
}

func (m *Machine) handleConfirm(ctx context.Context, s *Session, in Input) Result {
	if in.Intent != IntentSubmit {
		return m.showConfirmation(s)
	}

	listing, err := s.Draft.listing(s.UserID)
	if err != nil {
		m.logger.Error("confirm reached with incomplete draft",
			zap.Int64("user_id", s.UserID), zap.Error(err))
		return m.cancel(s)
	}

	id, err := m.store.Create(ctx, listing)
	s.State = StateIdle
	s.Draft = nil
	if err != nil {
		// The conversation still ends; the user has to restart the flow.
		return Result{
			Done:    true,
			Replies: []Reply{{Text: "❌ متأسفانه مشکلی در ثبت آگهی پیش آمد. لطفاً دوباره تلاش کنید.", RemoveKeyboard: true}},
		}
	}

	m.tracker.Track(ctx, s.UserID, "create_listing", map[string]any{"listing_id": id})
	return Result{
		Done:      true,
		ListingID: id,
		Replies:   []Reply{{Text: "✅ آگهی شما با موفقیت ثبت شد و پس از تایید نمایش داده خواهد شد.", RemoveKeyboard: true}},
	}
}

// FormatPrice renders a price for display; zero reads as negotiable.
func FormatPrice(price int64) string {
	if price == 0 {
		return "توافقی"
	}
	return groupDigits(price) + " تومان"
}

func groupDigits(n int64) string {
	raw := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, digit := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}
