package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

const adminID int64 = 1000

type fakeNotifier struct {
	notified []*domain.Report
	err      error
}

func (n *fakeNotifier) NotifyReport(report *domain.Report) error {
	if n.err != nil {
		return n.err
	}
	n.notified = append(n.notified, report)
	return nil
}

func newReportFixture(t *testing.T, notifier Notifier) (*ReportUsecase, *listingFixture) {
	t.Helper()
	f := newListingFixture(t)
	auth := NewStaticAuthorizer(adminID)
	return NewReportUsecase(f.reports, f.uc, auth, notifier, zap.NewNop()), f
}

func TestFileCapturesListingTitle(t *testing.T) {
	notifier := &fakeNotifier{}
	uc, f := newReportFixture(t, notifier)
	ctx := context.Background()
	id := f.seed(t, activeListing(42))

	report, err := uc.File(ctx, id, 7, "Sara", domain.ReasonScam)
	require.NoError(t, err)

	assert.Equal(t, domain.ReportPending, report.Status)
	assert.Equal(t, "Used laptop for sale cheap", report.ListingTitle)
	assert.Equal(t, int64(7), report.ReporterID)
	assert.False(t, report.CreatedAt.IsZero())
	require.Len(t, notifier.notified, 1)
	assert.Equal(t, report.ID, notifier.notified[0].ID)
}

func TestFileMissingListing(t *testing.T) {
	uc, _ := newReportFixture(t, nil)

	_, err := uc.File(context.Background(), "missing", 7, "Sara", domain.ReasonScam)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestFileInvalidReason(t *testing.T) {
	uc, f := newReportFixture(t, nil)
	id := f.seed(t, activeListing(42))

	_, err := uc.File(context.Background(), id, 7, "Sara", domain.ReportReason("spite"))
	assert.ErrorIs(t, err, domain.ErrInvalidReason)
}

func TestFileSurvivesNotifierFailure(t *testing.T) {
	uc, f := newReportFixture(t, &fakeNotifier{err: errors.New("smtp down")})
	id := f.seed(t, activeListing(42))

	report, err := uc.File(context.Background(), id, 7, "Sara", domain.ReasonDuplicate)
	require.NoError(t, err, "notification is best effort")
	assert.NotEmpty(t, report.ID)
}

func TestApproveDeletesListing(t *testing.T) {
	uc, f := newReportFixture(t, nil)
	ctx := context.Background()
	id := f.seed(t, activeListing(42))

	report, err := uc.File(ctx, id, 7, "Sara", domain.ReasonInappropriate)
	require.NoError(t, err)

	require.NoError(t, uc.Approve(ctx, adminID, report.ID))

	assert.Equal(t, domain.ReportApproved, f.reports.reports[report.ID].Status)
	_, err = f.uc.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
	assert.Contains(t, f.views.deletedListings, id, "approval must cascade like any deletion")
}

func TestRejectKeepsListing(t *testing.T) {
	uc, f := newReportFixture(t, nil)
	ctx := context.Background()
	id := f.seed(t, activeListing(42))

	report, err := uc.File(ctx, id, 7, "Sara", domain.ReasonFalseInfo)
	require.NoError(t, err)

	require.NoError(t, uc.Reject(ctx, adminID, report.ID))

	assert.Equal(t, domain.ReportRejected, f.reports.reports[report.ID].Status)
	listing, err := f.uc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, listing.ID)
}

func TestResolutionIsTerminal(t *testing.T) {
	uc, f := newReportFixture(t, nil)
	ctx := context.Background()
	id := f.seed(t, activeListing(42))

	report, err := uc.File(ctx, id, 7, "Sara", domain.ReasonScam)
	require.NoError(t, err)
	require.NoError(t, uc.Reject(ctx, adminID, report.ID))

	err = uc.Approve(ctx, adminID, report.ID)
	assert.ErrorIs(t, err, domain.ErrReportResolved)

	listing, getErr := f.uc.Get(ctx, id)
	require.NoError(t, getErr, "a rejected report must never delete the listing afterwards")
	assert.Equal(t, id, listing.ID)
}

func TestApproveToleratesVanishedListing(t *testing.T) {
	uc, f := newReportFixture(t, nil)
	ctx := context.Background()
	id := f.seed(t, activeListing(42))

	report, err := uc.File(ctx, id, 7, "Sara", domain.ReasonScam)
	require.NoError(t, err)

	_, err = f.uc.Delete(ctx, id)
	require.NoError(t, err)

	require.NoError(t, uc.Approve(ctx, adminID, report.ID), "approval stands even when the listing is already gone")
	assert.Equal(t, domain.ReportApproved, f.reports.reports[report.ID].Status)
}

func TestAdminGatedOperations(t *testing.T) {
	uc, f := newReportFixture(t, nil)
	ctx := context.Background()
	id := f.seed(t, activeListing(42))

	report, err := uc.File(ctx, id, 7, "Sara", domain.ReasonScam)
	require.NoError(t, err)

	const stranger int64 = 7

	_, err = uc.Pending(ctx, stranger)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.ErrorIs(t, uc.Approve(ctx, stranger, report.ID), domain.ErrUnauthorized)
	assert.ErrorIs(t, uc.Reject(ctx, stranger, report.ID), domain.ErrUnauthorized)

	assert.Equal(t, domain.ReportPending, f.reports.reports[report.ID].Status)

	pending, err := uc.Pending(ctx, adminID)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
