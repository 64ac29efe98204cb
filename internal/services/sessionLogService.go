package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/models"
	"skilltwin/internal/repositories"
)

type SessionLogService interface {
	CreateSessionLog(ctx context.Context, input *models.SessionLogInput) (*models.SessionLog, error)
	ListSessionLogs(ctx context.Context, enrollmentID *primitive.ObjectID) ([]models.SessionLog, error)
	UpdateSessionLog(ctx context.Context, id primitive.ObjectID, patch *models.SessionLogUpdate) (*models.SessionLog, error)
}

type sessionLogService struct {
	sessionLogRepo repositories.SessionLogRepository
	enrollmentRepo repositories.EnrollmentRepository
}

func NewSessionLogService(sessionLogRepo repositories.SessionLogRepository, enrollmentRepo repositories.EnrollmentRepository) SessionLogService {
	return &sessionLogService{sessionLogRepo: sessionLogRepo, enrollmentRepo: enrollmentRepo}
}

func (s *sessionLogService) CreateSessionLog(ctx context.Context, input *models.SessionLogInput) (*models.SessionLog, error) {
	enrollmentID, err := primitive.ObjectIDFromHex(input.EnrollmentID)
	if err != nil {
		return nil, apperrors.Validation("enrollmentId must be a valid id")
	}
	exists, err := s.enrollmentRepo.Exists(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound("Enrollment not found")
	}

	status := input.Status
	if status == "" {
		status = models.SessionScheduled
	}
	return s.sessionLogRepo.Create(ctx, &models.SessionLog{
		EnrollmentID: enrollmentID,
		SessionDate:  input.SessionDate.UTC(),
		Notes:        input.Notes,
		Status:       status,
		Progress:     input.Progress,
	})
}

func (s *sessionLogService) ListSessionLogs(ctx context.Context, enrollmentID *primitive.ObjectID) ([]models.SessionLog, error) {
	return s.sessionLogRepo.List(ctx, enrollmentID)
}

func (s *sessionLogService) UpdateSessionLog(ctx context.Context, id primitive.ObjectID, patch *models.SessionLogUpdate) (*models.SessionLog, error) {
	fields, err := updateFields(patch)
	if err != nil {
		return nil, err
	}
	updated, err := s.sessionLogRepo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Session log not found")
		}
		return nil, fmt.Errorf("failed to update session log: %w", err)
	}
	return updated, nil
}
