package ingestion

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"casemail/internal/constants"
)

// ReportStore archives run reports for operational inspection. Reports older
// than the retention window are pruned on each archive.
type ReportStore struct {
	collection    *mongo.Collection
	retentionDays int
}

func NewReportStore(db *mongo.Database, retentionDays int) *ReportStore {
	return &ReportStore{
		collection:    db.Collection(constants.RunReportCollection),
		retentionDays: retentionDays,
	}
}

func (s *ReportStore) Archive(ctx context.Context, report *RunReport) error {
	if _, err := s.collection.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to archive run report: %w", err)
	}

	if s.retentionDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
		if _, err := s.collection.DeleteMany(ctx, bson.M{"started_at": bson.M{"$lt": cutoff}}); err != nil {
			return fmt.Errorf("failed to prune old run reports: %w", err)
		}
	}

	return nil
}

// Latest returns the most recent run report, or nil when none exists.
func (s *ReportStore) Latest(ctx context.Context) (*RunReport, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "started_at", Value: -1}})

	var report RunReport
	err := s.collection.FindOne(ctx, bson.M{}, opts).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest run report: %w", err)
	}

	return &report, nil
}
