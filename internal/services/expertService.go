package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/models"
	"skilltwin/internal/repositories"
)

type ExpertService interface {
	CreateExpert(ctx context.Context, input *models.ExpertInput) (*models.Expert, error)
	ListExperts(ctx context.Context) ([]models.Expert, error)
	UpdateExpert(ctx context.Context, id primitive.ObjectID, patch *models.ExpertUpdate) (*models.Expert, error)
	DeleteExpert(ctx context.Context, id primitive.ObjectID) error
}

type expertService struct {
	expertRepo repositories.ExpertRepository
}

func NewExpertService(expertRepo repositories.ExpertRepository) ExpertService {
	return &expertService{expertRepo: expertRepo}
}

func (s *expertService) CreateExpert(ctx context.Context, input *models.ExpertInput) (*models.Expert, error) {
	expert, err := s.expertRepo.Create(ctx, &models.Expert{
		Name:         input.Name,
		Skills:       input.Skills,
		Availability: input.Availability,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("expert_id", expert.ID.Hex()).Msg("Expert created")
	return expert, nil
}

func (s *expertService) ListExperts(ctx context.Context) ([]models.Expert, error) {
	return s.expertRepo.List(ctx)
}

func (s *expertService) UpdateExpert(ctx context.Context, id primitive.ObjectID, patch *models.ExpertUpdate) (*models.Expert, error) {
	fields, err := updateFields(patch)
	if err != nil {
		return nil, err
	}
	expert, err := s.expertRepo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Expert not found")
		}
		return nil, fmt.Errorf("failed to update expert: %w", err)
	}
	return expert, nil
}

func (s *expertService) DeleteExpert(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.expertRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperrors.NotFound("Expert not found")
	}
	log.Info().Str("expert_id", id.Hex()).Msg("Expert deleted")
	return nil
}
