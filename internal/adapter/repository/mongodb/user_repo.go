package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection("users")}
}

// Upsert refreshes the user record on every interaction. created_at is written
// only when the document is inserted.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	set := bson.M{
		"username":    user.Username,
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
		"blocked":     user.Blocked,
		"last_active": user.LastActive,
	}

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": user.ID},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"created_at": time.Now().UTC()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return storageErr("upsert user", err)
	}
	return nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, storageErr("find users", err)
	}
	defer cursor.Close(ctx)

	var docs []*userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storageErr("decode users", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, toDomainUser(doc))
	}
	return users, nil
}

func (r *UserRepository) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"blocked": blocked}},
	)
	if err != nil {
		return storageErr("set user blocked", err)
	}
	return nil
}
