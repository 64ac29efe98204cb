package apperrors

import (
	"errors"
	"net/http"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrInvalidOrExpired = errors.New("invalid or expired OTP")
	ErrConflict         = errors.New("already exists")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrForbidden        = errors.New("forbidden")
	ErrTooManyRequests  = errors.New("too many requests")
	ErrDeliveryFailed   = errors.New("delivery failed")
	ErrUnavailable      = errors.New("service unavailable")
)

// Codes surfaced to clients in the "code" field of error responses.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidOrExpired = "OTP_INVALID_OR_EXPIRED"
	CodeConflict         = "ALREADY_EXISTS"
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeForbidden        = "FORBIDDEN"
	CodeTooManyRequests  = "TOO_MANY_REQUESTS"
	CodeDeliveryFailed   = "DELIVERY_FAILED"
	CodeUnavailable      = "UNAVAILABLE"
	CodeServerError      = "SERVER_ERROR"

	CodeEmailNotFound   = "EMAIL_NOT_FOUND"
	CodeInvalidPassword = "INVALID_PASSWORD"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a business error carrying its kind, the client-facing message and
// the HTTP status it maps to.
type Error struct {
	Kind    error
	Code    string
	Message string
	Status  int
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap attaches an underlying cause.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// WithCode overrides the client-facing code.
func (e *Error) WithCode(code string) *Error {
	e.Code = code
	return e
}

func Validation(message string, fields ...FieldError) *Error {
	return &Error{Kind: ErrValidation, Code: CodeValidationFailed, Message: message, Status: http.StatusBadRequest, Fields: fields}
}

func NotFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Code: CodeNotFound, Message: message, Status: http.StatusNotFound}
}

// InvalidOrExpired is deliberately the same for every OTP or ticket failure.
func InvalidOrExpired() *Error {
	return &Error{Kind: ErrInvalidOrExpired, Code: CodeInvalidOrExpired, Message: "Invalid or expired OTP", Status: http.StatusBadRequest}
}

func Conflict(message string) *Error {
	return &Error{Kind: ErrConflict, Code: CodeConflict, Message: message, Status: http.StatusConflict}
}

// DuplicateAccount is a conflict reported as 400, which is what the
// registration forms expect.
func DuplicateAccount(message string) *Error {
	return &Error{Kind: ErrConflict, Code: CodeConflict, Message: message, Status: http.StatusBadRequest}
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: ErrUnauthenticated, Code: CodeUnauthenticated, Message: message, Status: http.StatusUnauthorized}
}

func Forbidden(message string) *Error {
	return &Error{Kind: ErrForbidden, Code: CodeForbidden, Message: message, Status: http.StatusForbidden}
}

func TooManyRequests(message string) *Error {
	return &Error{Kind: ErrTooManyRequests, Code: CodeTooManyRequests, Message: message, Status: http.StatusTooManyRequests}
}

func DeliveryFailed(message string) *Error {
	return &Error{Kind: ErrDeliveryFailed, Code: CodeDeliveryFailed, Message: message, Status: http.StatusBadGateway}
}

func Unavailable(message string) *Error {
	return &Error{Kind: ErrUnavailable, Code: CodeUnavailable, Message: message, Status: http.StatusServiceUnavailable}
}

// StatusCode returns the HTTP status for err; unknown errors are 500.
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// As extracts the *Error from err, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
