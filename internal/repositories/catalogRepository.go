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

// CatalogRepository stores services and training programs in one collection
// tagged by kind. Every filter is scoped to the kind.
type CatalogRepository interface {
	Create(ctx context.Context, item *models.CatalogItem) (*models.CatalogItem, error)
	List(ctx context.Context, kind models.CatalogKind, activeOnly bool) ([]models.CatalogItem, error)
	FindOne(ctx context.Context, kind models.CatalogKind, filter bson.M) (*models.CatalogItem, error)
	Update(ctx context.Context, kind models.CatalogKind, id primitive.ObjectID, fields bson.M) (*models.CatalogItem, error)
	Delete(ctx context.Context, kind models.CatalogKind, id primitive.ObjectID) (int64, error)
}

type catalogRepository struct {
	db database.Service
}

func NewCatalogRepository(db database.Service) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) collection() *mongo.Collection {
	return r.db.DB().Collection(catalogCollection)
}

func scoped(kind models.CatalogKind, filter bson.M) bson.M {
	out := bson.M{"kind": kind}
	for k, v := range filter {
		out[k] = v
	}
	return out
}

func (r *catalogRepository) Create(ctx context.Context, item *models.CatalogItem) (_ *models.CatalogItem, err error) {
	defer trackQuery("catalog", "create")(&err)

	now := time.Now().UTC()
	item.ID = primitive.NewObjectID()
	item.CreatedAt = now
	item.UpdatedAt = now

	if _, err = r.collection().InsertOne(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", item.Kind, err)
	}
	return item, nil
}

func (r *catalogRepository) List(ctx context.Context, kind models.CatalogKind, activeOnly bool) (_ []models.CatalogItem, err error) {
	defer trackQuery("catalog", "list")(&err)

	filter := bson.M{"kind": kind}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve %s items: %w", kind, err)
	}
	defer cursor.Close(ctx)

	items := []models.CatalogItem{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("error decoding %s items: %w", kind, err)
	}
	return items, nil
}

func (r *catalogRepository) FindOne(ctx context.Context, kind models.CatalogKind, filter bson.M) (_ *models.CatalogItem, err error) {
	defer trackQuery("catalog", "findOne")(&err)

	var item models.CatalogItem
	if err = r.collection().FindOne(ctx, scoped(kind, filter)).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *catalogRepository) Update(ctx context.Context, kind models.CatalogKind, id primitive.ObjectID, fields bson.M) (_ *models.CatalogItem, err error) {
	defer trackQuery("catalog", "update")(&err)

	fields["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item models.CatalogItem
	if err = r.collection().FindOneAndUpdate(ctx, scoped(kind, bson.M{"_id": id}), bson.M{"$set": fields}, opts).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *catalogRepository) Delete(ctx context.Context, kind models.CatalogKind, id primitive.ObjectID) (_ int64, err error) {
	defer trackQuery("catalog", "delete")(&err)

	result, err := r.collection().DeleteOne(ctx, scoped(kind, bson.M{"_id": id}))
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	return result.DeletedCount, nil
}
