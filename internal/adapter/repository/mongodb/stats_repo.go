package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

// StatsRepository aggregates usage counters across collections for the admin
// panel.
type StatsRepository struct {
	db *mongo.Database
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Collect(ctx context.Context) (*domain.Stats, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	stats := &domain.Stats{}

	type counter struct {
		collection string
		filter     bson.M
		dest       *int64
	}
	counters := []counter{
		{"users", bson.M{}, &stats.TotalUsers},
		{"listings", bson.M{}, &stats.TotalListings},
		{"listings", bson.M{"status": domain.StatusActive}, &stats.ActiveListings},
		{"listings", bson.M{"is_urgent": true}, &stats.UrgentListings},
		{"views", bson.M{"timestamp": bson.M{"$gte": today}}, &stats.TodayViews},
		{"users", bson.M{"created_at": bson.M{"$gte": today}}, &stats.TodayNewUsers},
		{"listings", bson.M{"created_at": bson.M{"$gte": today}}, &stats.TodayNewListings},
		{"reports", bson.M{"status": domain.ReportPending}, &stats.PendingReports},
	}

	for _, c := range counters {
		n, err := r.db.Collection(c.collection).CountDocuments(ctx, c.filter)
		if err != nil {
			return nil, storageErr("count "+c.collection, err)
		}
		*c.dest = n
	}
	return stats, nil
}
