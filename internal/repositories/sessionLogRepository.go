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

type SessionLogRepository interface {
	Create(ctx context.Context, log *models.SessionLog) (*models.SessionLog, error)
	// List returns every log when enrollmentID is nil.
	List(ctx context.Context, enrollmentID *primitive.ObjectID) ([]models.SessionLog, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.SessionLog, error)
}

type sessionLogRepository struct {
	db database.Service
}

func NewSessionLogRepository(db database.Service) SessionLogRepository {
	return &sessionLogRepository{db: db}
}

func (r *sessionLogRepository) collection() *mongo.Collection {
	return r.db.DB().Collection(sessionLogCollection)
}

func (r *sessionLogRepository) Create(ctx context.Context, log *models.SessionLog) (_ *models.SessionLog, err error) {
	defer trackQuery("sessionLog", "create")(&err)

	log.ID = primitive.NewObjectID()
	log.CreatedAt = time.Now().UTC()

	if _, err = r.collection().InsertOne(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to create session log: %w", err)
	}
	return log, nil
}

func (r *sessionLogRepository) List(ctx context.Context, enrollmentID *primitive.ObjectID) (_ []models.SessionLog, err error) {
	defer trackQuery("sessionLog", "list")(&err)

	filter := bson.M{}
	if enrollmentID != nil {
		filter["enrollment_id"] = *enrollmentID
	}
	opts := options.Find().SetSort(bson.D{{Key: "session_date", Value: -1}})

	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve session logs: %w", err)
	}
	defer cursor.Close(ctx)

	logs := []models.SessionLog{}
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("error decoding session logs: %w", err)
	}
	return logs, nil
}

func (r *sessionLogRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (_ *models.SessionLog, err error) {
	defer trackQuery("sessionLog", "update")(&err)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var log models.SessionLog
	if err = r.collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&log); err != nil {
		return nil, err
	}
	return &log, nil
}
