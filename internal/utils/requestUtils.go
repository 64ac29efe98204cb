package utils

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"skilltwin/internal/apperrors"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
	RoleKey   contextKey = "role"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Message string                 `json:"message"`
	Code    string                 `json:"code,omitempty"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
}

func RespondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// WriteError maps err onto an HTTP reply. Unknown errors are logged and
// reported as a bare "Server error".
func WriteError(w http.ResponseWriter, err error) {
	if appErr, ok := apperrors.As(err); ok {
		if appErr.Status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("code", appErr.Code).Msg("Request failed")
		}
		RespondWithJSON(w, appErr.Status, ErrorResponse{
			Message: appErr.Message,
			Code:    appErr.Code,
			Errors:  appErr.Fields,
		})
		return
	}

	log.Error().Err(err).Msg("Unexpected error while handling request")
	RespondWithJSON(w, http.StatusInternalServerError, ErrorResponse{
		Message: "Server error",
		Code:    apperrors.CodeServerError,
	})
}

// WithIdentity stores the authenticated account id and role on ctx.
func WithIdentity(ctx context.Context, id, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	return context.WithValue(ctx, RoleKey, role)
}

// GetUserIDFromContext extracts and parses the account id placed by the auth middleware.
func GetUserIDFromContext(r *http.Request) (primitive.ObjectID, error) {
	userIDStr, ok := r.Context().Value(UserIDKey).(string)
	if !ok || userIDStr == "" {
		return primitive.NilObjectID, apperrors.Unauthenticated("No token, authorization denied")
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		return primitive.NilObjectID, apperrors.Unauthenticated("Token is not valid")
	}
	return userID, nil
}

func GetRoleFromContext(r *http.Request) string {
	role, _ := r.Context().Value(RoleKey).(string)
	return role
}

// GetObjectIDFromVars parses the named mux path variable as an ObjectID.
func GetObjectIDFromVars(r *http.Request, key string) (primitive.ObjectID, error) {
	idStr, ok := mux.Vars(r)[key]
	if !ok || idStr == "" {
		return primitive.NilObjectID, apperrors.Validation("Missing " + key)
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation("Invalid " + key).Wrap(err)
	}
	return id, nil
}
