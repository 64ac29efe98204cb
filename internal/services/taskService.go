package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/models"
	"skilltwin/internal/repositories"
)

type TaskService interface {
	AssignTask(ctx context.Context, req *models.AssignTaskRequest) (*models.Task, error)
	ListTasks(ctx context.Context) ([]models.TaskDetail, error)
}

type taskService struct {
	taskRepo   repositories.TaskRepository
	leadRepo   repositories.LeadRepository
	expertRepo repositories.ExpertRepository
}

func NewTaskService(taskRepo repositories.TaskRepository, leadRepo repositories.LeadRepository, expertRepo repositories.ExpertRepository) TaskService {
	return &taskService{taskRepo: taskRepo, leadRepo: leadRepo, expertRepo: expertRepo}
}

func (s *taskService) AssignTask(ctx context.Context, req *models.AssignTaskRequest) (*models.Task, error) {
	inquiryID, err := primitive.ObjectIDFromHex(req.InquiryID)
	if err != nil {
		return nil, apperrors.Validation("inquiryId must be a valid id")
	}
	expertID, err := primitive.ObjectIDFromHex(req.ExpertID)
	if err != nil {
		return nil, apperrors.Validation("expertId must be a valid id")
	}

	if _, err := s.leadRepo.FindByID(ctx, inquiryID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Inquiry not found")
		}
		return nil, err
	}
	if _, err := s.expertRepo.FindByID(ctx, expertID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Expert not found")
		}
		return nil, err
	}

	task, err := s.taskRepo.Create(ctx, &models.Task{InquiryID: inquiryID, ExpertID: expertID})
	if err != nil {
		return nil, err
	}
	log.Info().Str("task_id", task.ID.Hex()).Str("inquiry_id", inquiryID.Hex()).Str("expert_id", expertID.Hex()).Msg("Task assigned")
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context) ([]models.TaskDetail, error) {
	return s.taskRepo.ListDetailed(ctx)
}
