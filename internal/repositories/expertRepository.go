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

type ExpertRepository interface {
	Create(ctx context.Context, expert *models.Expert) (*models.Expert, error)
	List(ctx context.Context) ([]models.Expert, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Expert, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Expert, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type expertRepository struct {
	db database.Service
}

func NewExpertRepository(db database.Service) ExpertRepository {
	return &expertRepository{db: db}
}

func (r *expertRepository) collection() *mongo.Collection {
	return r.db.DB().Collection(expertCollection)
}

func (r *expertRepository) Create(ctx context.Context, expert *models.Expert) (_ *models.Expert, err error) {
	defer trackQuery("expert", "create")(&err)

	expert.ID = primitive.NewObjectID()
	expert.CreatedAt = time.Now().UTC()

	if _, err = r.collection().InsertOne(ctx, expert); err != nil {
		return nil, fmt.Errorf("failed to create expert: %w", err)
	}
	return expert, nil
}

func (r *expertRepository) List(ctx context.Context) (_ []models.Expert, err error) {
	defer trackQuery("expert", "list")(&err)

	cursor, err := r.collection().Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve experts: %w", err)
	}
	defer cursor.Close(ctx)

	experts := []models.Expert{}
	if err = cursor.All(ctx, &experts); err != nil {
		return nil, fmt.Errorf("error decoding experts: %w", err)
	}
	return experts, nil
}

func (r *expertRepository) FindByID(ctx context.Context, id primitive.ObjectID) (_ *models.Expert, err error) {
	defer trackQuery("expert", "findById")(&err)

	var expert models.Expert
	if err = r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&expert); err != nil {
		return nil, err
	}
	return &expert, nil
}

func (r *expertRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (_ *models.Expert, err error) {
	defer trackQuery("expert", "update")(&err)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var expert models.Expert
	if err = r.collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&expert); err != nil {
		return nil, err
	}
	return &expert, nil
}

func (r *expertRepository) Delete(ctx context.Context, id primitive.ObjectID) (_ int64, err error) {
	defer trackQuery("expert", "delete")(&err)

	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expert: %w", err)
	}
	return result.DeletedCount, nil
}
