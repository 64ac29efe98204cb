package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad input"), http.StatusBadRequest},
		{"not found", NotFound("User not found"), http.StatusNotFound},
		{"invalid otp", InvalidOrExpired(), http.StatusBadRequest},
		{"conflict", Conflict("Slug already exists"), http.StatusConflict},
		{"duplicate account", DuplicateAccount("User already exists"), http.StatusBadRequest},
		{"unauthenticated", Unauthenticated("Token is not valid"), http.StatusUnauthorized},
		{"forbidden", Forbidden("Admin access required"), http.StatusForbidden},
		{"too many", TooManyRequests("slow down"), http.StatusTooManyRequests},
		{"delivery", DeliveryFailed("Failed to send OTP email"), http.StatusBadGateway},
		{"unavailable", Unavailable("not configured"), http.StatusServiceUnavailable},
		{"wrapped", fmt.Errorf("handler: %w", NotFound("gone")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestErrorIsKind(t *testing.T) {
	cause := errors.New("smtp: connection refused")
	err := DeliveryFailed("Failed to send OTP email").Wrap(cause)

	assert.ErrorIs(t, err, ErrDeliveryFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Failed to send OTP email: smtp: connection refused", err.Error())

	dup := DuplicateAccount("User already exists")
	assert.ErrorIs(t, dup, ErrConflict)
}

func TestAs(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("Blog not found").WithCode("BLOG_NOT_FOUND"))

	appErr, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, "BLOG_NOT_FOUND", appErr.Code)
	assert.Equal(t, "Blog not found", appErr.Message)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}
