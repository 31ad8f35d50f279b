package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the per-collection indexes at startup. Creation is
// idempotent on the server side.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}},
		{Keys: bson.D{{Key: "last_active", Value: 1}}},
	}
	listings := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "is_urgent", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}}},
	}
	reports := []mongo.IndexModel{
		{Keys: bson.D{{Key: "listing_id", Value: 1}}},
		{Keys: bson.D{{Key: "reporter_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	views := []mongo.IndexModel{
		{Keys: bson.D{{Key: "listing_id", Value: 1}, {Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: 1}}},
	}
	bookmarks := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "listing_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	for collection, models := range map[string][]mongo.IndexModel{
		"users":     users,
		"listings":  listings,
		"reports":   reports,
		"views":     views,
		"bookmarks": bookmarks,
	} {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return storageErr("create "+collection+" indexes", err)
		}
	}
	return nil
}
