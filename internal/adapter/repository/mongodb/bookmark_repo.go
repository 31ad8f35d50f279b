package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

type BookmarkRepository struct {
	collection *mongo.Collection
}

func NewBookmarkRepository(db *mongo.Database) *BookmarkRepository {
	return &BookmarkRepository{collection: db.Collection("bookmarks")}
}

// Toggle relies on the unique (user_id, listing_id) index instead of a
// check-then-act read: insert first, and treat a duplicate-key rejection as
// "pair exists" to be removed. Concurrent toggles of the same pair therefore
// cannot produce duplicate rows.
func (r *BookmarkRepository) Toggle(ctx context.Context, userID int64, listingID string) (bool, error) {
	doc := &bookmarkDocument{
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if err == nil {
		return true, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return false, storageErr("insert bookmark", err)
	}

	filter := bson.M{"user_id": userID, "listing_id": listingID}
	if _, err := r.collection.DeleteOne(ctx, filter); err != nil {
		return false, storageErr("delete bookmark", err)
	}
	return false, nil
}

func (r *BookmarkRepository) FindByUser(ctx context.Context, userID int64) ([]*domain.Bookmark, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, storageErr("find bookmarks", err)
	}
	defer cursor.Close(ctx)

	var docs []*bookmarkDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storageErr("decode bookmarks", err)
	}

	bookmarks := make([]*domain.Bookmark, 0, len(docs))
	for _, doc := range docs {
		bookmarks = append(bookmarks, toDomainBookmark(doc))
	}
	return bookmarks, nil
}

func (r *BookmarkRepository) DeleteByListing(ctx context.Context, listingID string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"listing_id": listingID})
	if err != nil {
		return 0, storageErr("delete bookmarks by listing", err)
	}
	return res.DeletedCount, nil
}
