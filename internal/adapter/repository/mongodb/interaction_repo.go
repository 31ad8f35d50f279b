package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

type InteractionRepository struct {
	collection *mongo.Collection
}

func NewInteractionRepository(db *mongo.Database) *InteractionRepository {
	return &InteractionRepository{collection: db.Collection("interactions")}
}

func (r *InteractionRepository) Insert(ctx context.Context, interaction *domain.Interaction) error {
	doc := &interactionDocument{
		ID:        interaction.ID,
		UserID:    interaction.UserID,
		Action:    interaction.Action,
		Timestamp: interaction.Timestamp,
		Payload:   interaction.Payload,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return storageErr("insert interaction", err)
	}
	return nil
}
