package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync/atomic"

	"github.com/google/uuid"

	apperrors "github.com/Rakesh-27-git/WellnessSpace/pkg/errors"
	"github.com/Rakesh-27-git/WellnessSpace/pkg/logger"
	"github.com/Rakesh-27-git/WellnessSpace/pkg/validator"
)

// Response is the uniform JSON envelope used by every endpoint:
// success mirrors statusCode < 400. Error responses carry an errors list and,
// in debug mode only, a stack trace.
type Response struct {
	StatusCode int      `json:"statusCode"`
	Data       any      `json:"data"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
	Stack      string   `json:"stack,omitempty"`
}

// debugMode controls whether error envelopes include stack traces.
// Enabled only for development builds; see SetDebug.
var debugMode atomic.Bool

// SetDebug toggles inclusion of stack traces in error envelopes.
// Must never be enabled in production.
func SetDebug(on bool) {
	debugMode.Store(on)
}

// NewResponse builds a success envelope for the given status code.
func NewResponse(statusCode int, data any, message string) Response {
	if message == "" {
		message = "Success"
	}
	return Response{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < http.StatusBadRequest,
		Errors:     []string{},
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a success envelope with the given status, data, and message.
func WriteSuccess(w http.ResponseWriter, status int, data any, message string) {
	WriteJSON(w, status, NewResponse(status, data, message))
}

// WriteError converts err into the uniform error envelope and writes it.
// AppError values keep their status, message, and detail list; sentinel errors
// map through apperrors.HTTPStatus; anything else is a 500 whose internal
// message is logged but replaced with a generic one on the wire. It prefers
// the request-scoped logger from context over the fallback logger.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	status := apperrors.HTTPStatus(err)
	message := "an internal error occurred"
	var details []string

	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		message = appErr.Message
		details = appErr.Errors
	case status != http.StatusInternalServerError:
		message = err.Error()
	}

	if status == http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	resp := Response{
		StatusCode: status,
		Data:       nil,
		Message:    message,
		Success:    false,
		Errors:     details,
	}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	if debugMode.Load() {
		resp.Stack = string(debug.Stack())
	}

	WriteJSON(w, status, resp)
}

// WriteValidationError writes a 400 envelope with one detail entry per
// failing field.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		fields := valErr.Fields()
		details := make([]string, 0, len(fields))
		for field, msg := range fields {
			details = append(details, field+" "+msg)
		}
		WriteJSON(w, http.StatusBadRequest, Response{
			StatusCode: http.StatusBadRequest,
			Message:    "request validation failed",
			Errors:     details,
		})
		return
	}

	WriteJSON(w, http.StatusBadRequest, Response{
		StatusCode: http.StatusBadRequest,
		Message:    err.Error(),
		Errors:     []string{},
	})
}

// ParseUUID validates that the given string is a valid UUID and returns it.
// On failure it writes a 400 envelope and returns false, signaling the caller
// to return early.
func ParseUUID(w http.ResponseWriter, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(param)
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, Response{
			StatusCode: http.StatusBadRequest,
			Message:    "invalid id: " + param,
			Errors:     []string{},
		})
		return uuid.Nil, false
	}
	return id, true
}
