package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skilltwin/internal/database"
	"skilltwin/internal/models"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error)
	List(ctx context.Context) ([]models.Enrollment, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type enrollmentRepository struct {
	db database.Service
}

func NewEnrollmentRepository(db database.Service) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) collection() *mongo.Collection {
	return r.db.DB().Collection(enrollmentCollection)
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) (_ *models.Enrollment, err error) {
	defer trackQuery("enrollment", "create")(&err)

	enrollment.ID = primitive.NewObjectID()
	enrollment.CreatedAt = time.Now().UTC()

	if _, err = r.collection().InsertOne(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("failed to save enrollment: %w", err)
	}
	return enrollment, nil
}

func (r *enrollmentRepository) List(ctx context.Context) (_ []models.Enrollment, err error) {
	defer trackQuery("enrollment", "list")(&err)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve enrollments: %w", err)
	}
	defer cursor.Close(ctx)

	enrollments := []models.Enrollment{}
	if err = cursor.All(ctx, &enrollments); err != nil {
		return nil, fmt.Errorf("error decoding enrollments: %w", err)
	}
	return enrollments, nil
}

func (r *enrollmentRepository) Exists(ctx context.Context, id primitive.ObjectID) (_ bool, err error) {
	defer trackQuery("enrollment", "exists")(&err)

	count, err := r.collection().CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to look up enrollment: %w", err)
	}
	return count > 0, nil
}
