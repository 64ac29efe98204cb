package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/metrics"
	"skilltwin/internal/models"
	"skilltwin/internal/repositories"
	"skilltwin/internal/utils"
)

type LeadService interface {
	SubmitLead(ctx context.Context, lead *models.Lead) (*models.Lead, error)
	ListLeads(ctx context.Context, source models.LeadSource) ([]models.Lead, error)
	GetLead(ctx context.Context, id primitive.ObjectID) (*models.Lead, error)
}

type leadService struct {
	leadRepo repositories.LeadRepository
}

func NewLeadService(leadRepo repositories.LeadRepository) LeadService {
	return &leadService{leadRepo: leadRepo}
}

func (s *leadService) SubmitLead(ctx context.Context, lead *models.Lead) (*models.Lead, error) {
	if !lead.Source.Valid() {
		return nil, apperrors.Validation("Invalid lead source")
	}
	lead.Email = utils.NormalizeEmail(lead.Email)

	created, err := s.leadRepo.Create(ctx, lead)
	if err != nil {
		return nil, err
	}
	metrics.LeadsCreatedTotal.WithLabelValues(string(created.Source)).Inc()
	log.Info().Str("lead_id", created.ID.Hex()).Str("source", string(created.Source)).Msg("Lead submitted")
	return created, nil
}

func (s *leadService) ListLeads(ctx context.Context, source models.LeadSource) ([]models.Lead, error) {
	if source != "" && !source.Valid() {
		return nil, apperrors.Validation("source must be one of: inquiry, service, contact")
	}
	return s.leadRepo.List(ctx, source)
}

func (s *leadService) GetLead(ctx context.Context, id primitive.ObjectID) (*models.Lead, error) {
	lead, err := s.leadRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Lead not found")
		}
		return nil, fmt.Errorf("failed to retrieve lead: %w", err)
	}
	return lead, nil
}

// RenderLeadText is the plain-text summary admins download for a lead.
func RenderLeadText(lead *models.Lead) string {
	dash := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}

	lines := []string{
		"Name: " + lead.Name,
		"Email: " + dash(lead.Email),
		"Phone: " + dash(lead.Phone),
	}
	switch lead.Source {
	case models.LeadInquiry:
		lines = append(lines,
			"Technology: "+dash(lead.Technology),
			"Help Type: "+dash(lead.HelpType),
		)
	case models.LeadService:
		lines = append(lines,
			"Service: "+dash(lead.ServiceTitle),
			"Pricing: "+dash(lead.ServicePricing),
		)
	case models.LeadContact:
		lines = append(lines,
			"Subject: "+dash(lead.Subject),
			"Message: "+dash(lead.Message),
		)
	}
	lines = append(lines, "Submitted: "+lead.CreatedAt.UTC().Format(time.RFC3339))
	return strings.Join(lines, "\n")
}
