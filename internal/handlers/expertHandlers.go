package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"skilltwin/internal/models"
	"skilltwin/internal/services"
	"skilltwin/internal/utils"
)

type ExpertHandler struct {
	expertService services.ExpertService
}

func NewExpertHandler(expertService services.ExpertService) *ExpertHandler {
	return &ExpertHandler{expertService: expertService}
}

func (h *ExpertHandler) CreateExpert(w http.ResponseWriter, r *http.Request) {
	var input models.ExpertInput
	if err := utils.DecodeAndValidate(w, r, &input); err != nil {
		utils.WriteError(w, err)
		return
	}

	expert, err := h.expertService.CreateExpert(r.Context(), &input)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, expert)
}

func (h *ExpertHandler) ListExperts(w http.ResponseWriter, r *http.Request) {
	experts, err := h.expertService.ListExperts(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, experts)
}

func (h *ExpertHandler) UpdateExpert(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetObjectIDFromVars(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var patch models.ExpertUpdate
	if err := utils.DecodeAndValidate(w, r, &patch); err != nil {
		utils.WriteError(w, err)
		return
	}

	expert, err := h.expertService.UpdateExpert(r.Context(), id, &patch)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, expert)
}

func (h *ExpertHandler) DeleteExpert(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetObjectIDFromVars(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.expertService.DeleteExpert(r.Context(), id); err != nil {
		utils.WriteError(w, err)
		return
	}

	log.Info().Str("expert_id", id.Hex()).Msg("Expert deleted")
	w.WriteHeader(http.StatusNoContent)
}
