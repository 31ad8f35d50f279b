package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

type BookmarkUsecase struct {
	repo     domain.BookmarkRepository
	listings *ListingUsecase
	logger   *zap.Logger
}

func NewBookmarkUsecase(repo domain.BookmarkRepository, listings *ListingUsecase, logger *zap.Logger) *BookmarkUsecase {
	return &BookmarkUsecase{repo: repo, listings: listings, logger: logger}
}

// Toggle flips the bookmark for the pair and reports whether it exists
// afterwards. The listing is checked first so a bookmark cannot be created
// for a listing that is already gone.
func (uc *BookmarkUsecase) Toggle(ctx context.Context, userID int64, listingID string) (bool, error) {
	if _, err := uc.listings.Get(ctx, listingID); err != nil {
		return false, err
	}

	added, err := uc.repo.Toggle(ctx, userID, listingID)
	if err != nil {
		uc.logger.Error("bookmark toggle failed",
			zap.Int64("user_id", userID), zap.String("listing_id", listingID), zap.Error(err))
		return false, err
	}
	return added, nil
}

// ListForUser resolves the user's bookmarks into listings. Bookmarks whose
// listing has disappeared are skipped.
func (uc *BookmarkUsecase) ListForUser(ctx context.Context, userID int64) ([]*domain.Listing, error) {
	bookmarks, err := uc.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	listings := make([]*domain.Listing, 0, len(bookmarks))
	for _, b := range bookmarks {
		listing, err := uc.listings.Get(ctx, b.ListingID)
		if errors.Is(err, domain.ErrListingNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, nil
}
