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

type LeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) (*models.Lead, error)
	// List returns leads newest first; an empty source lists every lead.
	List(ctx context.Context, source models.LeadSource) ([]models.Lead, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Lead, error)
}

type leadRepository struct {
	db database.Service
}

func NewLeadRepository(db database.Service) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) collection() *mongo.Collection {
	return r.db.DB().Collection(leadCollection)
}

func (r *leadRepository) Create(ctx context.Context, lead *models.Lead) (_ *models.Lead, err error) {
	defer trackQuery("lead", "create")(&err)

	lead.ID = primitive.NewObjectID()
	lead.CreatedAt = time.Now().UTC()

	if _, err = r.collection().InsertOne(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to save lead: %w", err)
	}
	return lead, nil
}

func (r *leadRepository) List(ctx context.Context, source models.LeadSource) (_ []models.Lead, err error) {
	defer trackQuery("lead", "list")(&err)

	filter := bson.M{}
	if source != "" {
		filter["source"] = source
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve leads: %w", err)
	}
	defer cursor.Close(ctx)

	leads := []models.Lead{}
	if err = cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("error decoding leads: %w", err)
	}
	return leads, nil
}

func (r *leadRepository) FindByID(ctx context.Context, id primitive.ObjectID) (_ *models.Lead, err error) {
	defer trackQuery("lead", "findById")(&err)

	var lead models.Lead
	if err = r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&lead); err != nil {
		return nil, err
	}
	return &lead, nil
}
