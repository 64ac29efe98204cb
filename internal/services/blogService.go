package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/metrics"
	"skilltwin/internal/models"
	"skilltwin/internal/repositories"
	"skilltwin/internal/utils"
)

type BlogService interface {
	CreateBlog(ctx context.Context, input *models.BlogInput) (*models.Blog, error)
	ListBlogs(ctx context.Context, p models.Pagination) (models.Page[models.Blog], error)
	GetBlog(ctx context.Context, idOrSlug string) (*models.Blog, error)
	UpdateBlog(ctx context.Context, idOrSlug string, patch *models.BlogUpdate) (*models.Blog, error)
	DeleteBlog(ctx context.Context, idOrSlug string) error
	AssistBlog(ctx context.Context, idOrSlug string) (*models.BlogAssist, error)
}

type blogService struct {
	blogRepo  repositories.BlogRepository
	assistant ContentAssistant
}

func NewBlogService(blogRepo repositories.BlogRepository, assistant ContentAssistant) BlogService {
	return &blogService{blogRepo: blogRepo, assistant: assistant}
}

func blogNotFound() error {
	return apperrors.NotFound("Blog not found")
}

func (s *blogService) CreateBlog(ctx context.Context, input *models.BlogInput) (*models.Blog, error) {
	blog := &models.Blog{
		Title:   input.Title,
		Slug:    utils.NormalizeSlug(input.Slug),
		Excerpt: input.Excerpt,
		Content: input.Content,
		Tags:    input.Tags,
		Images:  input.Images,
		Author:  input.Author,
	}
	if blog.Tags == nil {
		blog.Tags = []string{}
	}
	if blog.Images == nil {
		blog.Images = []string{}
	}
	if blog.Author == "" {
		blog.Author = models.DefaultBlogAuthor
	}
	if input.PublishedAt != nil {
		blog.PublishedAt = input.PublishedAt.UTC()
	} else {
		blog.PublishedAt = time.Now().UTC()
	}

	created, err := s.blogRepo.Create(ctx, blog)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Warn().Str("slug", blog.Slug).Msg("Blog slug already exists")
			return nil, apperrors.Conflict("A blog with this slug already exists")
		}
		return nil, err
	}

	metrics.BlogsCreatedTotal.Inc()
	log.Info().Str("blog_id", created.ID.Hex()).Str("slug", created.Slug).Msg("Blog created successfully")
	return created, nil
}

func (s *blogService) ListBlogs(ctx context.Context, p models.Pagination) (models.Page[models.Blog], error) {
	blogs, total, err := s.blogRepo.List(ctx, p)
	if err != nil {
		return models.Page[models.Blog]{}, err
	}
	return models.NewPage(blogs, p, total), nil
}

func (s *blogService) GetBlog(ctx context.Context, idOrSlug string) (*models.Blog, error) {
	blog, err := s.blogRepo.FindOne(ctx, utils.IDOrSlugFilter(idOrSlug))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, blogNotFound()
		}
		return nil, fmt.Errorf("failed to retrieve blog: %w", err)
	}
	return blog, nil
}

func (s *blogService) UpdateBlog(ctx context.Context, idOrSlug string, patch *models.BlogUpdate) (*models.Blog, error) {
	if patch.Slug != nil {
		slug := utils.NormalizeSlug(*patch.Slug)
		patch.Slug = &slug
	}
	fields, err := updateFields(patch)
	if err != nil {
		return nil, err
	}

	blog, err := s.blogRepo.Update(ctx, utils.IDOrSlugFilter(idOrSlug), fields)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, blogNotFound()
		case mongo.IsDuplicateKeyError(err):
			return nil, apperrors.Conflict("A blog with this slug already exists")
		}
		return nil, err
	}
	log.Info().Str("blog_id", blog.ID.Hex()).Msg("Blog updated successfully")
	return blog, nil
}

func (s *blogService) DeleteBlog(ctx context.Context, idOrSlug string) error {
	deleted, err := s.blogRepo.Delete(ctx, utils.IDOrSlugFilter(idOrSlug))
	if err != nil {
		return err
	}
	if deleted == 0 {
		return blogNotFound()
	}
	log.Info().Str("blog", idOrSlug).Msg("Blog deleted successfully")
	return nil
}

func (s *blogService) AssistBlog(ctx context.Context, idOrSlug string) (*models.BlogAssist, error) {
	blog, err := s.GetBlog(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	assist, err := s.assistant.DraftBlogAssist(ctx, blog.Title, blog.Content)
	if err != nil {
		return nil, err
	}
	metrics.BlogAssistsTotal.Inc()
	return assist, nil
}
