package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

// ListingUsecase is the cache-backed listing store. Reads go through the
// cache; writes hit the persistent store first and then invalidate the cache
// entry, never updating it in place. The cache is advisory throughout: any
// cache failure degrades to a direct store access.
type ListingUsecase struct {
	repo      domain.ListingRepository
	reports   domain.ReportRepository
	views     domain.ViewRepository
	bookmarks domain.BookmarkRepository
	cache     domain.ListingCache
	logger    *zap.Logger
	tracer    trace.Tracer
}

func NewListingUsecase(
	repo domain.ListingRepository,
	reports domain.ReportRepository,
	views domain.ViewRepository,
	bookmarks domain.BookmarkRepository,
	cache domain.ListingCache,
	logger *zap.Logger,
) *ListingUsecase {
	return &ListingUsecase{
		repo:      repo,
		reports:   reports,
		views:     views,
		bookmarks: bookmarks,
		cache:     cache,
		logger:    logger,
		tracer:    otel.Tracer("listing"),
	}
}

// Create stamps creation time, active status and the expiry timestamp, then
// inserts. The cache is not touched: nothing can have cached an id that does
// not exist yet.
func (uc *ListingUsecase) Create(ctx context.Context, listing *domain.Listing) (string, error) {
	ctx, span := uc.tracer.Start(ctx, "listing.Create")
	defer span.End()

	now := time.Now().UTC()
	listing.Status = domain.StatusActive
	listing.CreatedAt = now
	listing.ExpiresAt = now.AddDate(0, 0, domain.ListingExpiryDays)

	id, err := uc.repo.Insert(ctx, listing)
	if err != nil {
		uc.logger.Error("listing create failed", zap.Int64("user_id", listing.UserID), zap.Error(err))
		return "", err
	}

	span.SetAttributes(attribute.String("listing.id", id))
	uc.logger.Info("listing created",
		zap.String("listing_id", id),
		zap.Int64("user_id", listing.UserID),
		zap.String("category", string(listing.Category)))
	return id, nil
}

// Get is read-through: cache hit wins, a miss falls back to the store and
// repopulates the cache with a bounded TTL.
func (uc *ListingUsecase) Get(ctx context.Context, id string) (*domain.Listing, error) {
	ctx, span := uc.tracer.Start(ctx, "listing.Get", trace.WithAttributes(attribute.String("listing.id", id)))
	defer span.End()

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, id)
		if err != nil {
			uc.logger.Warn("listing cache read failed", zap.String("listing_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, listing); err != nil {
			uc.logger.Warn("listing cache populate failed", zap.String("listing_id", id), zap.Error(err))
		}
	}
	return listing, nil
}

// Update writes the store first and invalidates the cache entry only after
// the write succeeded, so a reader can never observe the pre-update value
// once Update has returned.
func (uc *ListingUsecase) Update(ctx context.Context, id string, update domain.ListingUpdate) (bool, error) {
	ctx, span := uc.tracer.Start(ctx, "listing.Update", trace.WithAttributes(attribute.String("listing.id", id)))
	defer span.End()

	modified, err := uc.repo.Update(ctx, id, update)
	if err != nil {
		uc.logger.Error("listing update failed", zap.String("listing_id", id), zap.Error(err))
		return false, err
	}

	uc.invalidate(ctx, id)
	return modified, nil
}

// Delete removes the listing and then cascades to reports, views and
// bookmarks referencing it. The cascade is best-effort: a cleanup failure is
// logged and does not undo the primary deletion.
func (uc *ListingUsecase) Delete(ctx context.Context, id string) (bool, error) {
	ctx, span := uc.tracer.Start(ctx, "listing.Delete", trace.WithAttributes(attribute.String("listing.id", id)))
	defer span.End()

	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		uc.logger.Error("listing delete failed", zap.String("listing_id", id), zap.Error(err))
		return false, err
	}
	if !deleted {
		return false, nil
	}

	if _, err := uc.reports.DeleteByListing(ctx, id); err != nil {
		uc.logger.Error("report cascade failed", zap.String("listing_id", id), zap.Error(err))
	}
	if _, err := uc.views.DeleteByListing(ctx, id); err != nil {
		uc.logger.Error("view cascade failed", zap.String("listing_id", id), zap.Error(err))
	}
	if _, err := uc.bookmarks.DeleteByListing(ctx, id); err != nil {
		uc.logger.Error("bookmark cascade failed", zap.String("listing_id", id), zap.Error(err))
	}

	uc.invalidate(ctx, id)
	uc.logger.Info("listing deleted", zap.String("listing_id", id))
	return true, nil
}

func (uc *ListingUsecase) ListByUser(ctx context.Context, userID int64) ([]*domain.Listing, error) {
	return uc.repo.FindByUser(ctx, userID)
}

func (uc *ListingUsecase) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Listing, error) {
	if !category.Valid() {
		return nil, domain.ErrInvalidCategory
	}
	return uc.repo.FindByCategory(ctx, category)
}

func (uc *ListingUsecase) ListUrgent(ctx context.Context) ([]*domain.Listing, error) {
	return uc.repo.FindUrgent(ctx)
}

func (uc *ListingUsecase) Search(ctx context.Context, query string) ([]*domain.Listing, error) {
	return uc.repo.Search(ctx, query)
}

// TrackView records that a user saw a listing. Fire and forget.
func (uc *ListingUsecase) TrackView(ctx context.Context, listingID string, userID int64) {
	view := &domain.View{ListingID: listingID, UserID: userID, Timestamp: time.Now().UTC()}
	if err := uc.views.Insert(ctx, view); err != nil {
		uc.logger.Warn("view insert failed", zap.String("listing_id", listingID), zap.Error(err))
	}
}

func (uc *ListingUsecase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, id); err != nil {
		uc.logger.Warn("listing cache invalidate failed", zap.String("listing_id", id), zap.Error(err))
	}
}
