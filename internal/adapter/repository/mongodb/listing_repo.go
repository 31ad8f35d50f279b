package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

// storageErr tags driver failures so callers can branch on the storage class
// without inspecting driver internals.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, op, err)
}

type ListingRepository struct {
	collection *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{collection: db.Collection("listings")}
}

func (r *ListingRepository) Insert(ctx context.Context, listing *domain.Listing) (string, error) {
	doc, err := toListingDocument(listing)
	if err != nil {
		return "", err
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", storageErr("insert listing", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	listing.ID = oid.Hex()
	return listing.ID, nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}

	var doc listingDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrListingNotFound
	}
	if err != nil {
		return nil, storageErr("find listing", err)
	}
	return toDomainListing(&doc), nil
}

func (r *ListingRepository) Update(ctx context.Context, id string, update domain.ListingUpdate) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, domain.ErrListingNotFound
	}

	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Contact != nil {
		set["contact"] = *update.Contact
	}
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.IsUrgent != nil {
		set["is_urgent"] = *update.IsUrgent
	}
	if len(set) == 0 {
		return false, nil
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return false, storageErr("update listing", err)
	}
	// MatchedCount, not ModifiedCount: a no-op update of an existing listing
	// is still a found listing.
	return res.MatchedCount > 0, nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, domain.ErrListingNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, storageErr("delete listing", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *ListingRepository) FindByUser(ctx context.Context, userID int64) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *ListingRepository) FindByCategory(ctx context.Context, category domain.Category) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{"category": category, "status": domain.StatusActive})
}

func (r *ListingRepository) FindUrgent(ctx context.Context) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{"is_urgent": true, "status": domain.StatusActive})
}

func (r *ListingRepository) Search(ctx context.Context, query string) ([]*domain.Listing, error) {
	filter := bson.M{
		"$text":  bson.M{"$search": query},
		"status": domain.StatusActive,
	}
	return r.find(ctx, filter)
}

func (r *ListingRepository) find(ctx context.Context, filter bson.M) ([]*domain.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, storageErr("find listings", err)
	}
	defer cursor.Close(ctx)

	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storageErr("decode listings", err)
	}
	return toDomainListings(docs), nil
}
