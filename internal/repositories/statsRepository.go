package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skilltwin/internal/database"
	"skilltwin/internal/models"
)

// StatsRepository answers the read-only aggregate queries of the admin dashboard.
type StatsRepository interface {
	Count(ctx context.Context, collection string, filter bson.M) (int64, error)
	CountCreatedBetween(ctx context.Context, collection string, start, end time.Time) (int64, error)
	LeadsBySource(ctx context.Context) (map[models.LeadSource]int64, error)
	PopularPrograms(ctx context.Context, limit int) ([]models.PopularProgram, error)
}

// Collection names the dashboard counts over.
const (
	StatsBlogs       = blogCollection
	StatsLeads       = leadCollection
	StatsEnrollments = enrollmentCollection
	StatsExperts     = expertCollection
	StatsCatalog     = catalogCollection
)

type statsRepository struct {
	db database.Service
}

func NewStatsRepository(db database.Service) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Count(ctx context.Context, collection string, filter bson.M) (_ int64, err error) {
	defer trackQuery("stats", "count")(&err)

	if filter == nil {
		filter = bson.M{}
	}
	count, err := r.db.DB().Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", collection, err)
	}
	return count, nil
}

func (r *statsRepository) CountCreatedBetween(ctx context.Context, collection string, start, end time.Time) (_ int64, err error) {
	defer trackQuery("stats", "countCreatedBetween")(&err)

	filter := bson.M{"created_at": bson.M{"$gte": start, "$lte": end}}
	count, err := r.db.DB().Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s created between dates: %w", collection, err)
	}
	return count, nil
}

func (r *statsRepository) LeadsBySource(ctx context.Context) (_ map[models.LeadSource]int64, err error) {
	defer trackQuery("stats", "leadsBySource")(&err)

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$source"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
	}
	cursor, err := r.db.DB().Collection(leadCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to group leads: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Source models.LeadSource `bson:"_id"`
		Count  int64             `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding lead groups: %w", err)
	}

	out := make(map[models.LeadSource]int64, len(rows))
	for _, row := range rows {
		out[row.Source] = row.Count
	}
	return out, nil
}

// PopularPrograms groups enrollments by program title, most enrolled first.
func (r *statsRepository) PopularPrograms(ctx context.Context, limit int) (_ []models.PopularProgram, err error) {
	defer trackQuery("stats", "popularPrograms")(&err)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "program_title", Value: bson.D{{Key: "$nin", Value: bson.A{nil, ""}}}}}}},
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$program_title"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}
	cursor, err := r.db.DB().Collection(enrollmentCollection).Aggregate(ctx, pipeline, options.Aggregate())
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate popular programs: %w", err)
	}
	defer cursor.Close(ctx)

	programs := []models.PopularProgram{}
	if err = cursor.All(ctx, &programs); err != nil {
		return nil, fmt.Errorf("error decoding popular programs: %w", err)
	}
	return programs, nil
}
