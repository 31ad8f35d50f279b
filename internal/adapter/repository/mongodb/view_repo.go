package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

type ViewRepository struct {
	collection *mongo.Collection
}

func NewViewRepository(db *mongo.Database) *ViewRepository {
	return &ViewRepository{collection: db.Collection("views")}
}

func (r *ViewRepository) Insert(ctx context.Context, view *domain.View) error {
	doc := &viewDocument{
		ListingID: view.ListingID,
		UserID:    view.UserID,
		Timestamp: view.Timestamp,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return storageErr("insert view", err)
	}
	return nil
}

func (r *ViewRepository) DeleteByListing(ctx context.Context, listingID string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"listing_id": listingID})
	if err != nil {
		return 0, storageErr("delete views by listing", err)
	}
	return res.DeletedCount, nil
}
