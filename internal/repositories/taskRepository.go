package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"skilltwin/internal/database"
	"skilltwin/internal/models"
)

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	ListDetailed(ctx context.Context) ([]models.TaskDetail, error)
}

type taskRepository struct {
	db database.Service
}

func NewTaskRepository(db database.Service) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) collection() *mongo.Collection {
	return r.db.DB().Collection(taskCollection)
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) (_ *models.Task, err error) {
	defer trackQuery("task", "create")(&err)

	task.ID = primitive.NewObjectID()
	task.CreatedAt = time.Now().UTC()

	if _, err = r.collection().InsertOne(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// ListDetailed joins each task with its lead and expert, newest first.
func (r *taskRepository) ListDetailed(ctx context.Context) (_ []models.TaskDetail, err error) {
	defer trackQuery("task", "listDetailed")(&err)

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: leadCollection},
			{Key: "localField", Value: "inquiry_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "inquiry"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: expertCollection},
			{Key: "localField", Value: "expert_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "expert"},
		}}},
		{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$inquiry"}, {Key: "preserveNullAndEmptyArrays", Value: true}}}},
		{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$expert"}, {Key: "preserveNullAndEmptyArrays", Value: true}}}},
	}

	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.TaskDetail{}
	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("error decoding tasks: %w", err)
	}
	return tasks, nil
}
