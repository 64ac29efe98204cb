package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"skilltwin/internal/apperrors"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestWriteError_AppError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, apperrors.InvalidOrExpired())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	body := decodeError(t, w)
	assert.Equal(t, "Invalid or expired OTP", body.Message)
	assert.Equal(t, apperrors.CodeInvalidOrExpired, body.Code)
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, errors.New("mongo: connection pool closed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "Server error", body.Message)
	assert.Equal(t, apperrors.CodeServerError, body.Code)
}

func TestWriteError_ValidationFields(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, apperrors.Validation("email is required", apperrors.FieldError{Field: "email", Message: "email is required"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "email", body.Errors[0].Field)
}

func TestGetUserIDFromContext(t *testing.T) {
	id := primitive.NewObjectID()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := GetUserIDFromContext(r)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	r = r.WithContext(WithIdentity(r.Context(), id.Hex(), "admin"))
	got, err := GetUserIDFromContext(r)
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, "admin", GetRoleFromContext(r))
}

func TestGetObjectIDFromVars(t *testing.T) {
	id := primitive.NewObjectID()

	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": id.Hex()})
	got, err := GetObjectIDFromVars(r, "id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "xyz"})
	_, err = GetObjectIDFromVars(r, "id")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
