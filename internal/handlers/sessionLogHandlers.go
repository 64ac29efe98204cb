package handlers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/models"
	"skilltwin/internal/services"
	"skilltwin/internal/utils"
)

type SessionLogHandler struct {
	sessionLogService services.SessionLogService
}

func NewSessionLogHandler(sessionLogService services.SessionLogService) *SessionLogHandler {
	return &SessionLogHandler{sessionLogService: sessionLogService}
}

// ListSessionLogs optionally narrows to one enrollment via ?enrollmentId=.
func (h *SessionLogHandler) ListSessionLogs(w http.ResponseWriter, r *http.Request) {
	var enrollmentID *primitive.ObjectID
	if raw := r.URL.Query().Get("enrollmentId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.WriteError(w, apperrors.Validation("Invalid enrollmentId").Wrap(err))
			return
		}
		enrollmentID = &id
	}

	logs, err := h.sessionLogService.ListSessionLogs(r.Context(), enrollmentID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, logs)
}

func (h *SessionLogHandler) CreateSessionLog(w http.ResponseWriter, r *http.Request) {
	var input models.SessionLogInput
	if err := utils.DecodeAndValidate(w, r, &input); err != nil {
		utils.WriteError(w, err)
		return
	}

	sessionLog, err := h.sessionLogService.CreateSessionLog(r.Context(), &input)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, sessionLog)
}

func (h *SessionLogHandler) UpdateSessionLog(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetObjectIDFromVars(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var patch models.SessionLogUpdate
	if err := utils.DecodeAndValidate(w, r, &patch); err != nil {
		utils.WriteError(w, err)
		return
	}

	sessionLog, err := h.sessionLogService.UpdateSessionLog(r.Context(), id, &patch)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, sessionLog)
}
