package domain

import "context"

type ListingRepository interface {
	Insert(ctx context.Context, listing *Listing) (string, error)
	FindByID(ctx context.Context, id string) (*Listing, error)
	Update(ctx context.Context, id string, update ListingUpdate) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindByUser(ctx context.Context, userID int64) ([]*Listing, error)
	FindByCategory(ctx context.Context, category Category) ([]*Listing, error)
	FindUrgent(ctx context.Context) ([]*Listing, error)
	Search(ctx context.Context, query string) ([]*Listing, error)
}

type UserRepository interface {
	// Upsert overwrites every field unconditionally but sets the creation
	// timestamp only when the record is new.
	Upsert(ctx context.Context, user *User) error
	FindAll(ctx context.Context) ([]*User, error)
	SetBlocked(ctx context.Context, userID int64, blocked bool) error
}

type ReportRepository interface {
	Insert(ctx context.Context, report *Report) (string, error)
	FindByID(ctx context.Context, id string) (*Report, error)
	FindPending(ctx context.Context) ([]*Report, error)
	// Resolve transitions a pending report to the given terminal status and
	// returns the resolved report. A report that is already resolved yields
	// ErrReportResolved; a missing one yields ErrReportNotFound.
	Resolve(ctx context.Context, id string, status ReportStatus) (*Report, error)
	DeleteByListing(ctx context.Context, listingID string) (int64, error)
}

type BookmarkRepository interface {
	// Toggle flips the bookmark for the (user, listing) pair and reports
	// whether the pair exists afterwards.
	Toggle(ctx context.Context, userID int64, listingID string) (bool, error)
	FindByUser(ctx context.Context, userID int64) ([]*Bookmark, error)
	DeleteByListing(ctx context.Context, listingID string) (int64, error)
}

type ViewRepository interface {
	Insert(ctx context.Context, view *View) error
	DeleteByListing(ctx context.Context, listingID string) (int64, error)
}

type InteractionRepository interface {
	Insert(ctx context.Context, interaction *Interaction) error
}

type StatsRepository interface {
	Collect(ctx context.Context) (*Stats, error)
}

// ListingCache holds advisory, time-bounded copies of listings. A nil listing
// with a nil error is a cache miss; errors never carry authority.
type ListingCache interface {
	Get(ctx context.Context, id string) (*Listing, error)
	Set(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id string) error
}
