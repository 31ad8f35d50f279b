package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

func newBookmarkFixture(t *testing.T) (*BookmarkUsecase, *listingFixture) {
	t.Helper()
	f := newListingFixture(t)
	return NewBookmarkUsecase(f.bookmarks, f.uc, zap.NewNop()), f
}

func TestBookmarkToggleIsInvolutive(t *testing.T) {
	uc, f := newBookmarkFixture(t)
	ctx := context.Background()
	id := f.seed(t, activeListing(42))

	added, err := uc.Toggle(ctx, 7, id)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = uc.Toggle(ctx, 7, id)
	require.NoError(t, err)
	assert.False(t, added)

	added, err = uc.Toggle(ctx, 7, id)
	require.NoError(t, err)
	assert.True(t, added, "double toggle must restore the original state")
}

func TestBookmarkToggleMissingListing(t *testing.T) {
	uc, f := newBookmarkFixture(t)

	_, err := uc.Toggle(context.Background(), 7, "missing")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
	assert.Empty(t, f.bookmarks.pairs)
}

func TestBookmarkListSkipsVanishedListings(t *testing.T) {
	uc, f := newBookmarkFixture(t)
	ctx := context.Background()

	kept := f.seed(t, activeListing(42))
	gone := f.seed(t, activeListing(42))

	_, err := uc.Toggle(ctx, 7, kept)
	require.NoError(t, err)
	_, err = uc.Toggle(ctx, 7, gone)
	require.NoError(t, err)

	// The recording fake leaves the pair behind, like a cascade that has
	// not run yet.
	_, err = f.uc.Delete(ctx, gone)
	require.NoError(t, err)

	listings, err := uc.ListForUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, kept, listings[0].ID)
}
