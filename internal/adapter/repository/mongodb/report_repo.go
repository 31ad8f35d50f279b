package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

type ReportRepository struct {
	collection *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{collection: db.Collection("reports")}
}

func (r *ReportRepository) Insert(ctx context.Context, report *domain.Report) (string, error) {
	doc := &reportDocument{
		ListingID:    report.ListingID,
		ListingTitle: report.ListingTitle,
		ReporterID:   report.ReporterID,
		ReporterName: report.ReporterName,
		Reason:       report.Reason,
		Status:       report.Status,
		CreatedAt:    report.CreatedAt,
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", storageErr("insert report", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		report.ID = oid.Hex()
	}
	return report.ID, nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*domain.Report, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReportNotFound
	}

	var doc reportDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrReportNotFound
	}
	if err != nil {
		return nil, storageErr("find report", err)
	}
	return toDomainReport(&doc), nil
}

func (r *ReportRepository) FindPending(ctx context.Context) ([]*domain.Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"status": domain.ReportPending}, opts)
	if err != nil {
		return nil, storageErr("find pending reports", err)
	}
	defer cursor.Close(ctx)

	var docs []*reportDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storageErr("decode reports", err)
	}

	reports := make([]*domain.Report, 0, len(docs))
	for _, doc := range docs {
		reports = append(reports, toDomainReport(doc))
	}
	return reports, nil
}

// Resolve performs the terminal status transition as a single conditional
// update, so a report can be resolved at most once.
func (r *ReportRepository) Resolve(ctx context.Context, id string, status domain.ReportStatus) (*domain.Report, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReportNotFound
	}

	filter := bson.M{"_id": oid, "status": domain.ReportPending}
	update := bson.M{"$set": bson.M{"status": status}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc reportDocument
	err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Either the report never existed or it is no longer pending.
		if _, findErr := r.FindByID(ctx, id); findErr == nil {
			return nil, domain.ErrReportResolved
		}
		return nil, domain.ErrReportNotFound
	}
	if err != nil {
		return nil, storageErr("resolve report", err)
	}
	return toDomainReport(&doc), nil
}

func (r *ReportRepository) DeleteByListing(ctx context.Context, listingID string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"listing_id": listingID})
	if err != nil {
		return 0, storageErr("delete reports by listing", err)
	}
	return res.DeletedCount, nil
}
