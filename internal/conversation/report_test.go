package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

type fakeReportFiler struct {
	filed []domain.Report
	err   error
}

func (f *fakeReportFiler) File(_ context.Context, listingID string, reporterID int64, reporterName string, reason domain.ReportReason) (*domain.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	report := domain.Report{
		ListingID:    listingID,
		ReporterID:   reporterID,
		ReporterName: reporterName,
		Reason:       reason,
		Status:       domain.ReportPending,
	}
	f.filed = append(f.filed, report)
	return &report, nil
}

func TestReportFlowFilesReport(t *testing.T) {
	filer := &fakeReportFiler{}
	flow := NewReportFlow(filer, zap.NewNop())
	s := &Session{UserID: 11}

	res := flow.Start(s, "listing-1")
	assert.Equal(t, StateReportReason, s.State)
	assert.Equal(t, "listing-1", s.ReportListingID)
	require.Len(t, res.Replies, 1)
	assert.Len(t, res.Replies[0].Inline, 5, "four reasons plus cancel")

	res = flow.HandleReason(context.Background(), s, ReasonCallbackPrefix+"scam", "Sara")
	assert.True(t, res.Done)
	assert.Equal(t, StateIdle, s.State)
	assert.Empty(t, s.ReportListingID)

	require.Len(t, filer.filed, 1)
	assert.Equal(t, "listing-1", filer.filed[0].ListingID)
	assert.Equal(t, int64(11), filer.filed[0].ReporterID)
	assert.Equal(t, "Sara", filer.filed[0].ReporterName)
	assert.Equal(t, domain.ReasonScam, filer.filed[0].Reason)
	assert.Contains(t, res.Replies[0].Text, "گزارش شما ثبت شد")
}

func TestReportFlowCancel(t *testing.T) {
	filer := &fakeReportFiler{}
	flow := NewReportFlow(filer, zap.NewNop())
	s := &Session{UserID: 11}
	flow.Start(s, "listing-1")

	res := flow.HandleReason(context.Background(), s, CancelReportCallback, "Sara")

	assert.True(t, res.Done)
	assert.Empty(t, filer.filed)
	assert.Equal(t, StateIdle, s.State)
}

func TestReportFlowUnknownReason(t *testing.T) {
	filer := &fakeReportFiler{}
	flow := NewReportFlow(filer, zap.NewNop())
	s := &Session{UserID: 11}
	flow.Start(s, "listing-1")

	res := flow.HandleReason(context.Background(), s, ReasonCallbackPrefix+"bogus", "Sara")

	assert.True(t, res.Done)
	assert.Empty(t, filer.filed)
	assert.Contains(t, res.Replies[0].Text, "نامعتبر")
}

func TestReportFlowListingGone(t *testing.T) {
	filer := &fakeReportFiler{err: domain.ErrListingNotFound}
	flow := NewReportFlow(filer, zap.NewNop())
	s := &Session{UserID: 11}
	flow.Start(s, "listing-1")

	res := flow.HandleReason(context.Background(), s, ReasonCallbackPrefix+"duplicate", "Sara")

	assert.True(t, res.Done)
	assert.Contains(t, res.Replies[0].Text, "یافت نشد")
}

func TestReportFlowStorageFailure(t *testing.T) {
	filer := &fakeReportFiler{err: errors.New("mongo down")}
	flow := NewReportFlow(filer, zap.NewNop())
	s := &Session{UserID: 11}
	flow.Start(s, "listing-1")

	res := flow.HandleReason(context.Background(), s, ReasonCallbackPrefix+"scam", "Sara")

	assert.True(t, res.Done)
	assert.Contains(t, res.Replies[0].Text, "مشکلی در ثبت گزارش")
}
