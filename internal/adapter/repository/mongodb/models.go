package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

type listingDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	UserID      int64                `bson:"user_id"`
	Category    domain.Category      `bson:"category"`
	Title       string               `bson:"title"`
	Description string               `bson:"description"`
	Price       int64                `bson:"price"`
	Contact     string               `bson:"contact"`
	Location    string               `bson:"location"`
	Photos      []string             `bson:"photos,omitempty"`
	Status      domain.ListingStatus `bson:"status"`
	IsUrgent    bool                 `bson:"is_urgent"`
	CreatedAt   time.Time            `bson:"created_at"`
	ExpiresAt   time.Time            `bson:"expires_at"`
}

type userDocument struct {
	UserID     int64     `bson:"user_id"`
	Username   string    `bson:"username"`
	FirstName  string    `bson:"first_name"`
	LastName   string    `bson:"last_name"`
	Blocked    bool      `bson:"blocked"`
	LastActive time.Time `bson:"last_active"`
	CreatedAt  time.Time `bson:"created_at,omitempty"`
}

type reportDocument struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty"`
	ListingID    string              `bson:"listing_id"`
	ListingTitle string              `bson:"listing_title"`
	ReporterID   int64               `bson:"reporter_id"`
	ReporterName string              `bson:"reporter_name"`
	Reason       domain.ReportReason `bson:"reason"`
	Status       domain.ReportStatus `bson:"status"`
	CreatedAt    time.Time           `bson:"created_at"`
}

type bookmarkDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    int64              `bson:"user_id"`
	ListingID string             `bson:"listing_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

type viewDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ListingID string             `bson:"listing_id"`
	UserID    int64              `bson:"user_id"`
	Timestamp time.Time          `bson:"timestamp"`
}

type interactionDocument struct {
	ID        string         `bson:"_id"`
	UserID    int64          `bson:"user_id"`
	Action    string         `bson:"action_type"`
	Timestamp time.Time      `bson:"timestamp"`
	Payload   map[string]any `bson:"data,omitempty"`
}

func toListingDocument(l *domain.Listing) (*listingDocument, error) {
	if l == nil {
		return nil, nil
	}

	docID := primitive.NilObjectID
	if l.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid listing id %q: %w", l.ID, err)
		}
	}

	return &listingDocument{
		ID:          docID,
		UserID:      l.UserID,
		Category:    l.Category,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Contact:     l.Contact,
		Location:    l.Location,
		Photos:      l.Photos,
		Status:      l.Status,
		IsUrgent:    l.IsUrgent,
		CreatedAt:   l.CreatedAt,
		ExpiresAt:   l.ExpiresAt,
	}, nil
}

func toDomainListing(d *listingDocument) *domain.Listing {
	if d == nil {
		return nil
	}
	return &domain.Listing{
		ID:          d.ID.Hex(),
		UserID:      d.UserID,
		Category:    d.Category,
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Contact:     d.Contact,
		Location:    d.Location,
		Photos:      d.Photos,
		Status:      d.Status,
		IsUrgent:    d.IsUrgent,
		CreatedAt:   d.CreatedAt,
		ExpiresAt:   d.ExpiresAt,
	}
}

func toDomainListings(docs []*listingDocument) []*domain.Listing {
	listings := make([]*domain.Listing, 0, len(docs))
	for _, doc := range docs {
		listings = append(listings, toDomainListing(doc))
	}
	return listings
}

func toDomainUser(d *userDocument) *domain.User {
	if d == nil {
		return nil
	}
	return &domain.User{
		ID:         d.UserID,
		Username:   d.Username,
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Blocked:    d.Blocked,
		LastActive: d.LastActive,
		CreatedAt:  d.CreatedAt,
	}
}

func toDomainReport(d *reportDocument) *domain.Report {
	if d == nil {
		return nil
	}
	return &domain.Report{
		ID:           d.ID.Hex(),
		ListingID:    d.ListingID,
		ListingTitle: d.ListingTitle,
		ReporterID:   d.ReporterID,
		ReporterName: d.ReporterName,
		Reason:       d.Reason,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt,
	}
}

func toDomainBookmark(d *bookmarkDocument) *domain.Bookmark {
	if d == nil {
		return nil
	}
	return &domain.Bookmark{
		UserID:    d.UserID,
		ListingID: d.ListingID,
		CreatedAt: d.CreatedAt,
	}
}
