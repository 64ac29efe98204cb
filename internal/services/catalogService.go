package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/models"
	"skilltwin/internal/repositories"
	"skilltwin/internal/utils"
)

// CatalogService manages services and training programs. Every call is
// scoped to one catalog kind.
type CatalogService interface {
	CreateItem(ctx context.Context, kind models.CatalogKind, input *models.CatalogInput) (*models.CatalogItem, error)
	ListItems(ctx context.Context, kind models.CatalogKind, activeOnly bool) ([]models.CatalogItem, error)
	GetItem(ctx context.Context, kind models.CatalogKind, idOrSlug string, activeOnly bool) (*models.CatalogItem, error)
	UpdateItem(ctx context.Context, kind models.CatalogKind, id primitive.ObjectID, patch *models.CatalogUpdate) (*models.CatalogItem, error)
	DeleteItem(ctx context.Context, kind models.CatalogKind, id primitive.ObjectID) error
}

type catalogService struct {
	catalogRepo repositories.CatalogRepository
}

func NewCatalogService(catalogRepo repositories.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func catalogLabel(kind models.CatalogKind) string {
	if kind == models.CatalogTraining {
		return "Training program"
	}
	return "Service"
}

func (s *catalogService) CreateItem(ctx context.Context, kind models.CatalogKind, input *models.CatalogInput) (*models.CatalogItem, error) {
	item := &models.CatalogItem{
		Kind:        kind,
		Title:       input.Title,
		Slug:        utils.NormalizeSlug(input.Slug),
		Description: input.Description,
		Pricing:     input.Pricing,
		Duration:    input.Duration,
		Features:    input.Features,
		Active:      true,
	}
	if input.Active != nil {
		item.Active = *input.Active
	}
	if item.Features == nil {
		item.Features = []string{}
	}

	created, err := s.catalogRepo.Create(ctx, item)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict(catalogLabel(kind) + " with this slug already exists")
		}
		return nil, err
	}
	log.Info().Str("kind", string(kind)).Str("item_id", created.ID.Hex()).Msg("Catalog item created")
	return created, nil
}

func (s *catalogService) ListItems(ctx context.Context, kind models.CatalogKind, activeOnly bool) ([]models.CatalogItem, error) {
	return s.catalogRepo.List(ctx, kind, activeOnly)
}

func (s *catalogService) GetItem(ctx context.Context, kind models.CatalogKind, idOrSlug string, activeOnly bool) (*models.CatalogItem, error) {
	filter := utils.IDOrSlugFilter(idOrSlug)
	if activeOnly {
		filter = bson.M{"$and": bson.A{filter, bson.M{"active": true}}}
	}
	item, err := s.catalogRepo.FindOne(ctx, kind, filter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound(catalogLabel(kind) + " not found")
		}
		return nil, fmt.Errorf("failed to retrieve %s: %w", kind, err)
	}
	return item, nil
}

func (s *catalogService) UpdateItem(ctx context.Context, kind models.CatalogKind, id primitive.ObjectID, patch *models.CatalogUpdate) (*models.CatalogItem, error) {
	if patch.Slug != nil {
		slug := utils.NormalizeSlug(*patch.Slug)
		patch.Slug = &slug
	}
	fields, err := updateFields(patch)
	if err != nil {
		return nil, err
	}

	item, err := s.catalogRepo.Update(ctx, kind, id, fields)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, apperrors.NotFound(catalogLabel(kind) + " not found")
		case mongo.IsDuplicateKeyError(err):
			return nil, apperrors.Conflict(catalogLabel(kind) + " with this slug already exists")
		}
		return nil, err
	}
	return item, nil
}

func (s *catalogService) DeleteItem(ctx context.Context, kind models.CatalogKind, id primitive.ObjectID) error {
	deleted, err := s.catalogRepo.Delete(ctx, kind, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperrors.NotFound(catalogLabel(kind) + " not found")
	}
	log.Info().Str("kind", string(kind)).Str("item_id", id.Hex()).Msg("Catalog item deleted")
	return nil
}
