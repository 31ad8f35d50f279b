package conversation

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

const (
	ReasonCallbackPrefix = "reason_"
	CancelReportCallback = "cancel_report"
)

var reasonLabels = map[domain.ReportReason]string{
	domain.ReasonInappropriate: "🔞 محتوای نامناسب",
	domain.ReasonScam:          "💸 کلاهبرداری",
	domain.ReasonFalseInfo:     "❗️ اطلاعات نادرست",
	domain.ReasonDuplicate:     "🔁 تکراری",
}

// ReportFiler files a report against a listing. Satisfied by the report usecase.
type ReportFiler interface {
	File(ctx context.Context, listingID string, reporterID int64, reporterName string, reason domain.ReportReason) (*domain.Report, error)
}

// ReportFlow is the two-step report conversation: pick a reason from an
// inline keyboard, then the report is filed. The target listing id is
// pinned on the session so the reason callback cannot drift to another
// listing.
type ReportFlow struct {
	reports ReportFiler
	logger  *zap.Logger
}

func NewReportFlow(reports ReportFiler, logger *zap.Logger) *ReportFlow {
	return &ReportFlow{reports: reports, logger: logger}
}

// Start points the session at a listing and asks for the report reason.
func (f *ReportFlow) Start(s *Session, listingID string) Result {
	s.State = StateReportReason
	s.ReportListingID = listingID

	rows := make([][]Button, 0, len(reasonLabels)+1)
	for _, reason := range domain.ReportReasons() {
		rows = append(rows, []Button{{
			Text: reasonLabels[reason],
			Data: ReasonCallbackPrefix + string(reason),
		}})
	}
	rows = append(rows, []Button{{Text: "⛔️ لغو", Data: CancelReportCallback}})

	return Result{Replies: []Reply{{
		Text:   "⚠️ دلیل گزارش این آگهی را انتخاب کنید:",
		Inline: rows,
	}}}
}

// HandleReason resolves a reason callback and files the report.
func (f *ReportFlow) HandleReason(ctx context.Context, s *Session, data string, reporterName string) Result {
	listingID := s.ReportListingID
	s.State = StateIdle
	s.ReportListingID = ""

	if data == CancelReportCallback {
		return Result{Done: true, Replies: []Reply{reply("گزارش لغو شد.")}}
	}

	reason := domain.ReportReason(strings.TrimPrefix(data, ReasonCallbackPrefix))
	if !reason.Valid() {
		return Result{Done: true, Replies: []Reply{reply("❌ دلیل گزارش نامعتبر است.")}}
	}

	_, err := f.reports.File(ctx, listingID, s.UserID, reporterName, reason)
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		return Result{Done: true, Replies: []Reply{reply("❌ آگهی مورد نظر یافت نشد.")}}
	case err != nil:
		f.logger.Error("filing report failed",
			zap.String("listing_id", listingID), zap.Int64("user_id", s.UserID), zap.Error(err))
		return Result{Done: true, Replies: []Reply{reply("❌ مشکلی در ثبت گزارش پیش آمد. لطفاً دوباره تلاش کنید.")}}
	}

	return Result{Done: true, Replies: []Reply{reply("✅ گزارش شما ثبت شد و بررسی خواهد شد. با تشکر از همکاری شما.")}}
}
