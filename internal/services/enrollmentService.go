package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"skilltwin/internal/metrics"
	"skilltwin/internal/models"
	"skilltwin/internal/repositories"
	"skilltwin/internal/utils"
)

type EnrollmentService interface {
	Enroll(ctx context.Context, req *models.EnrollmentRequest) (*models.Enrollment, error)
	ListEnrollments(ctx context.Context) ([]models.Enrollment, error)
}

type enrollmentService struct {
	enrollmentRepo repositories.EnrollmentRepository
}

func NewEnrollmentService(enrollmentRepo repositories.EnrollmentRepository) EnrollmentService {
	return &enrollmentService{enrollmentRepo: enrollmentRepo}
}

func (s *enrollmentService) Enroll(ctx context.Context, req *models.EnrollmentRequest) (*models.Enrollment, error) {
	enrollment := req.Enrollment()
	enrollment.Email = utils.NormalizeEmail(enrollment.Email)

	created, err := s.enrollmentRepo.Create(ctx, enrollment)
	if err != nil {
		return nil, err
	}
	metrics.EnrollmentsCreatedTotal.Inc()
	log.Info().Str("enrollment_id", created.ID.Hex()).Str("program", created.ProgramTitle).Msg("Enrollment received")
	return created, nil
}

func (s *enrollmentService) ListEnrollments(ctx context.Context) ([]models.Enrollment, error) {
	return s.enrollmentRepo.List(ctx)
}
