package handlers

import (
	"net/http"

	"skilltwin/internal/models"
	"skilltwin/internal/services"
	"skilltwin/internal/utils"
)

type EnrollmentHandler struct {
	enrollmentService services.EnrollmentService
	exportService     services.ExportService
}

func NewEnrollmentHandler(enrollmentService services.EnrollmentService, exportService services.ExportService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService, exportService: exportService}
}

func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req models.EnrollmentRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	enrollment, err := h.enrollmentService.Enroll(r.Context(), &req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Enrollment submitted successfully",
		"data":    enrollment,
	})
}

func (h *EnrollmentHandler) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	enrollments, err := h.enrollmentService.ListEnrollments(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, enrollments)
}

func (h *EnrollmentHandler) ExportEnrollments(w http.ResponseWriter, r *http.Request) {
	data, err := h.exportService.ExportEnrollments(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	writeAttachment(w, services.XLSXContentType, exportFilename("enrollments"), data)
}
