package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skilltwin/internal/database"
	"skilltwin/internal/models"
)

type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) (*models.Blog, error)
	List(ctx context.Context, p models.Pagination) ([]models.Blog, int64, error)
	FindOne(ctx context.Context, filter bson.M) (*models.Blog, error)
	Update(ctx context.Context, filter bson.M, fields bson.M) (*models.Blog, error)
	Delete(ctx context.Context, filter bson.M) (int64, error)
}

type blogRepository struct {
	db database.Service
}

func NewBlogRepository(db database.Service) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) collection() *mongo.Collection {
	return r.db.DB().Collection(blogCollection)
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) (_ *models.Blog, err error) {
	defer trackQuery("blog", "create")(&err)

	now := time.Now().UTC()
	blog.ID = primitive.NewObjectID()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	if _, err = r.collection().InsertOne(ctx, blog); err != nil {
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}
	return blog, nil
}

func (r *blogRepository) List(ctx context.Context, p models.Pagination) (_ []models.Blog, _ int64, err error) {
	defer trackQuery("blog", "list")(&err)

	opts := options.Find().
		SetSort(bson.D{{Key: "published_at", Value: -1}, {Key: "created_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))

	cursor, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve blogs: %w", err)
	}
	defer cursor.Close(ctx)

	var blogs []models.Blog
	if err = cursor.All(ctx, &blogs); err != nil {
		return nil, 0, fmt.Errorf("error decoding blogs: %w", err)
	}

	total, err := r.collection().CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count blogs: %w", err)
	}
	return blogs, total, nil
}

func (r *blogRepository) FindOne(ctx context.Context, filter bson.M) (_ *models.Blog, err error) {
	defer trackQuery("blog", "findOne")(&err)

	var blog models.Blog
	if err = r.collection().FindOne(ctx, filter).Decode(&blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) Update(ctx context.Context, filter bson.M, fields bson.M) (_ *models.Blog, err error) {
	defer trackQuery("blog", "update")(&err)

	fields["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var blog models.Blog
	if err = r.collection().FindOneAndUpdate(ctx, filter, bson.M{"$set": fields}, opts).Decode(&blog); err != nil {
		if err != mongo.ErrNoDocuments {
			log.Error().Err(err).Msg("Error updating blog")
		}
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) Delete(ctx context.Context, filter bson.M) (_ int64, err error) {
	defer trackQuery("blog", "delete")(&err)

	result, err := r.collection().DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete blog: %w", err)
	}
	return result.DeletedCount, nil
}
