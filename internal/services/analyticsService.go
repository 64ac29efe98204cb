package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/models"
	"skilltwin/internal/repositories"
)

const popularProgramsLimit = 5

type AnalyticsService struct {
	AccountRepository repositories.AccountRepository
	StatsRepository   repositories.StatsRepository
}

func NewAnalyticsService(accountRepo repositories.AccountRepository, statsRepo repositories.StatsRepository) *AnalyticsService {
	return &AnalyticsService{
		AccountRepository: accountRepo,
		StatsRepository:   statsRepo,
	}
}

func (s *AnalyticsService) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	var err error

	if stats.Users, err = s.AccountRepository.CountAll(ctx, models.KindUser); err != nil {
		return nil, err
	}
	if stats.Admins, err = s.AccountRepository.CountAll(ctx, models.KindAdmin); err != nil {
		return nil, err
	}

	counts := []struct {
		dst        *int64
		collection string
		filter     bson.M
	}{
		{&stats.Leads, repositories.StatsLeads, bson.M{}},
		{&stats.Enrollments, repositories.StatsEnrollments, bson.M{}},
		{&stats.Blogs, repositories.StatsBlogs, bson.M{}},
		{&stats.Experts, repositories.StatsExperts, bson.M{}},
		{&stats.Services, repositories.StatsCatalog, bson.M{"kind": models.CatalogService}},
		{&stats.Trainings, repositories.StatsCatalog, bson.M{"kind": models.CatalogTraining}},
	}
	for _, c := range counts {
		if *c.dst, err = s.StatsRepository.Count(ctx, c.collection, c.filter); err != nil {
			return nil, err
		}
	}

	if stats.LeadsBySource, err = s.StatsRepository.LeadsBySource(ctx); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *AnalyticsService) GetGrowth(ctx context.Context, startDate, endDate time.Time) (*models.GrowthStats, error) {
	if endDate.Before(startDate) {
		return nil, apperrors.Validation("endDate must not be before startDate")
	}

	growth := &models.GrowthStats{StartDate: startDate, EndDate: endDate}
	var err error
	if growth.NewUsers, err = s.AccountRepository.CountCreatedBetween(ctx, models.KindUser, startDate, endDate); err != nil {
		return nil, err
	}
	if growth.NewLeads, err = s.StatsRepository.CountCreatedBetween(ctx, repositories.StatsLeads, startDate, endDate); err != nil {
		return nil, err
	}
	if growth.NewEnrollments, err = s.StatsRepository.CountCreatedBetween(ctx, repositories.StatsEnrollments, startDate, endDate); err != nil {
		return nil, err
	}
	return growth, nil
}

func (s *AnalyticsService) GetPopularPrograms(ctx context.Context) ([]models.PopularProgram, error) {
	return s.StatsRepository.PopularPrograms(ctx, popularProgramsLimit)
}
