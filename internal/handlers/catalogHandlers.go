package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"skilltwin/internal/models"
	"skilltwin/internal/services"
	"skilltwin/internal/utils"
)

// CatalogHandler serves one catalog kind, services or trainings.
type CatalogHandler struct {
	kind           models.CatalogKind
	catalogService services.CatalogService
}

func NewCatalogHandler(kind models.CatalogKind, catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{kind: kind, catalogService: catalogService}
}

func (h *CatalogHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *CatalogHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	items, err := h.catalogService.ListItems(r.Context(), h.kind, activeOnly)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, items)
}

func (h *CatalogHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalogService.GetItem(r.Context(), h.kind, mux.Vars(r)["idOrSlug"], true)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, item)
}

func (h *CatalogHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var input models.CatalogInput
	if err := utils.DecodeAndValidate(w, r, &input); err != nil {
		utils.WriteError(w, err)
		return
	}

	item, err := h.catalogService.CreateItem(r.Context(), h.kind, &input)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, item)
}

func (h *CatalogHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetObjectIDFromVars(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var patch models.CatalogUpdate
	if err := utils.DecodeAndValidate(w, r, &patch); err != nil {
		utils.WriteError(w, err)
		return
	}

	item, err := h.catalogService.UpdateItem(r.Context(), h.kind, id, &patch)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, item)
}

func (h *CatalogHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetObjectIDFromVars(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.catalogService.DeleteItem(r.Context(), h.kind, id); err != nil {
		utils.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
