package handlers

import (
	"context"
	"net/http"
	"time"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/models"
	"skilltwin/internal/utils"
)

// StatsProvider is the read side of the dashboard.
type StatsProvider interface {
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
	GetGrowth(ctx context.Context, startDate, endDate time.Time) (*models.GrowthStats, error)
	GetPopularPrograms(ctx context.Context) ([]models.PopularProgram, error)
}

type AnalyticsHandlers struct {
	stats StatsProvider
}

func NewAnalyticsHandlers(stats StatsProvider) *AnalyticsHandlers {
	return &AnalyticsHandlers{stats: stats}
}

func (h *AnalyticsHandlers) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.GetDashboardStats(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *AnalyticsHandlers) GetGrowth(w http.ResponseWriter, r *http.Request) {
	startDateStr := r.URL.Query().Get("startDate")
	endDateStr := r.URL.Query().Get("endDate")

	if startDateStr == "" || endDateStr == "" {
		utils.WriteError(w, apperrors.Validation("startDate and endDate are required query parameters"))
		return
	}

	startDate, err := time.Parse(time.RFC3339, startDateStr)
	if err != nil {
		utils.WriteError(w, apperrors.Validation("Invalid startDate format. Use RFC3339."))
		return
	}
	endDate, err := time.Parse(time.RFC3339, endDateStr)
	if err != nil {
		utils.WriteError(w, apperrors.Validation("Invalid endDate format. Use RFC3339."))
		return
	}

	growth, err := h.stats.GetGrowth(r.Context(), startDate, endDate)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, growth)
}

func (h *AnalyticsHandlers) GetPopularPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.stats.GetPopularPrograms(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, programs)
}
