package handlers

import (
	"fmt"
	"net/http"
	"time"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/models"
	"skilltwin/internal/services"
	"skilltwin/internal/utils"
)

// leadForm is implemented by every public intake request body.
type leadForm interface {
	Lead() *models.Lead
}

type LeadHandler struct {
	leadService   services.LeadService
	exportService services.ExportService
}

func NewLeadHandler(leadService services.LeadService, exportService services.ExportService) *LeadHandler {
	return &LeadHandler{leadService: leadService, exportService: exportService}
}

func (h *LeadHandler) submit(w http.ResponseWriter, r *http.Request, form leadForm, message string) {
	if err := utils.DecodeAndValidate(w, r, form); err != nil {
		utils.WriteError(w, err)
		return
	}

	lead, err := h.leadService.SubmitLead(r.Context(), form.Lead())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": message,
		"data":    lead,
	})
}

func (h *LeadHandler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, &models.InquiryRequest{}, "Inquiry submitted successfully")
}

func (h *LeadHandler) SubmitServiceInquiry(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, &models.ServiceInquiryRequest{}, "Service inquiry submitted successfully")
}

func (h *LeadHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, &models.ContactRequest{}, "Message sent successfully")
}

func sourceFromQuery(r *http.Request) (models.LeadSource, error) {
	source := models.LeadSource(r.URL.Query().Get("source"))
	if source != "" && !source.Valid() {
		return "", apperrors.Validation("source must be one of: inquiry, service, contact")
	}
	return source, nil
}

func (h *LeadHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	source, err := sourceFromQuery(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	leads, err := h.leadService.ListLeads(r.Context(), source)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) ExportLeads(w http.ResponseWriter, r *http.Request) {
	source, err := sourceFromQuery(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	data, err := h.exportService.ExportLeads(r.Context(), source)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	writeAttachment(w, services.XLSXContentType, exportFilename("leads"), data)
}

// DownloadLead returns a single lead as a plain text attachment.
func (h *LeadHandler) DownloadLead(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetObjectIDFromVars(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	lead, err := h.leadService.GetLead(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	filename := fmt.Sprintf("%s-%s.txt", lead.Source, lead.ID.Hex())
	writeAttachment(w, "text/plain; charset=utf-8", filename, []byte(services.RenderLeadText(lead)))
}

func exportFilename(dataset string) string {
	return fmt.Sprintf("%s-%s.xlsx", dataset, time.Now().UTC().Format("2006-01-02"))
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
