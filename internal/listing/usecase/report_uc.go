package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

// Notifier tells the operator about a newly filed report. Best effort.
type Notifier interface {
	NotifyReport(report *domain.Report) error
}

type ReportUsecase struct {
	repo     domain.ReportRepository
	listings *ListingUsecase
	auth     Authorizer
	notifier Notifier
	logger   *zap.Logger
}

// NewReportUsecase accepts a nil notifier when report mail is not configured.
func NewReportUsecase(repo domain.ReportRepository, listings *ListingUsecase, auth Authorizer, notifier Notifier, logger *zap.Logger) *ReportUsecase {
	return &ReportUsecase{repo: repo, listings: listings, auth: auth, notifier: notifier, logger: logger}
}

// File persists a pending report against a listing, capturing the listing
// title at report time. A listing that no longer exists aborts with
// ErrListingNotFound.
func (uc *ReportUsecase) File(ctx context.Context, listingID string, reporterID int64, reporterName string, reason domain.ReportReason) (*domain.Report, error) {
	if !reason.Valid() {
		return nil, domain.ErrInvalidReason
	}

	listing, err := uc.listings.Get(ctx, listingID)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		ListingID:    listingID,
		ListingTitle: listing.Title,
		ReporterID:   reporterID,
		ReporterName: reporterName,
		Reason:       reason,
		Status:       domain.ReportPending,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := uc.repo.Insert(ctx, report); err != nil {
		uc.logger.Error("report insert failed", zap.String("listing_id", listingID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("report filed",
		zap.String("report_id", report.ID),
		zap.String("listing_id", listingID),
		zap.String("reason", string(reason)))

	if uc.notifier != nil {
		if err := uc.notifier.NotifyReport(report); err != nil {
			uc.logger.Warn("report notification failed", zap.String("report_id", report.ID), zap.Error(err))
		}
	}
	return report, nil
}

// Pending lists unresolved reports for admin review.
func (uc *ReportUsecase) Pending(ctx context.Context, actorID int64) ([]*domain.Report, error) {
	if !uc.auth.IsAdmin(actorID) {
		return nil, domain.ErrUnauthorized
	}
	return uc.repo.FindPending(ctx)
}

// Approve resolves the report and deletes the reported listing, cascading per
// the listing store's delete contract. The status transition is terminal:
// approving an already-resolved report fails with ErrReportResolved and the
// listing is not touched again.
func (uc *ReportUsecase) Approve(ctx context.Context, actorID int64, reportID string) error {
	if !uc.auth.IsAdmin(actorID) {
		return domain.ErrUnauthorized
	}

	report, err := uc.repo.Resolve(ctx, reportID, domain.ReportApproved)
	if err != nil {
		return err
	}

	deleted, err := uc.listings.Delete(ctx, report.ListingID)
	if err != nil {
		uc.logger.Error("reported listing delete failed",
			zap.String("report_id", reportID), zap.String("listing_id", report.ListingID), zap.Error(err))
		return err
	}
	if !deleted {
		// Listing vanished between report and approval; the report is still
		// resolved.
		uc.logger.Warn("reported listing already gone",
			zap.String("report_id", reportID), zap.String("listing_id", report.ListingID))
	}
	return nil
}

// Reject resolves the report and leaves the listing untouched.
func (uc *ReportUsecase) Reject(ctx context.Context, actorID int64, reportID string) error {
	if !uc.auth.IsAdmin(actorID) {
		return domain.ErrUnauthorized
	}
	_, err := uc.repo.Resolve(ctx, reportID, domain.ReportRejected)
	return err
}
