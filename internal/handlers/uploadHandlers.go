package handlers

import (
	"net/http"

	"skilltwin/internal/models"
	"skilltwin/internal/services"
	"skilltwin/internal/utils"
)

type UploadHandler struct {
	uploadService services.UploadService
}

func NewUploadHandler(uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// PresignImage hands the admin UI a short lived PUT URL for a blog image.
func (h *UploadHandler) PresignImage(w http.ResponseWriter, r *http.Request) {
	var req models.PresignRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	resp, err := h.uploadService.PresignImageUpload(r.Context(), &req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}
