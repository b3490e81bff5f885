package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rakesh-27-git/WellnessSpace/internal/domain"
	"github.com/Rakesh-27-git/WellnessSpace/internal/service"
	apperrors "github.com/Rakesh-27-git/WellnessSpace/pkg/errors"
	"github.com/Rakesh-27-git/WellnessSpace/pkg/httputil"
	"github.com/Rakesh-27-git/WellnessSpace/pkg/middleware"
	"github.com/Rakesh-27-git/WellnessSpace/pkg/validator"
)

// SessionHandler handles HTTP requests for wellness session endpoints.
type SessionHandler struct {
	service *service.SessionService
	logger  *slog.Logger
}

// NewSessionHandler creates a new session HTTP handler.
func NewSessionHandler(svc *service.SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{service: svc, logger: logger}
}

// UpsertSessionRequest is the JSON request body for saving or publishing a
// session. When SessionID is empty a new session is created.
type UpsertSessionRequest struct {
	SessionID  string   `json:"sessionId" validate:"omitempty,uuid"`
	Title      string   `json:"title" validate:"required,min=1,max=200"`
	Tags       []string `json:"tags" validate:"omitempty,dive,min=1,max=50"`
	PayloadURL string   `json:"payloadUrl" validate:"required,url"`
}

// ListPublished handles GET /api/sessions
func (h *SessionHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.ListPublished(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, sessions, "")
}

// ListMine handles GET /api/my-sessions
func (h *SessionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	sessions, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, sessions, "")
}

// GetMine handles GET /api/my-sessions/{id}
func (h *SessionHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	session, err := h.service.GetMine(r.Context(), id.String(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, session, "")
}

// SaveDraft handles POST /api/my-sessions/save-draft
func (h *SessionHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	h.upsert(w, r, h.service.SaveDraft, "draft saved successfully")
}

// Publish handles POST /api/my-sessions/publish
func (h *SessionHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.upsert(w, r, h.service.Publish, "session published successfully")
}

func (h *SessionHandler) upsert(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, ownerID string, input service.UpsertInput) (*domain.Session, error),
	message string,
) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req UpsertSessionRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	session, err := fn(r.Context(), userID, service.UpsertInput{
		SessionID:  req.SessionID,
		Title:      req.Title,
		Tags:       req.Tags,
		PayloadURL: req.PayloadURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// Upserts answer 200 whether the record was created or updated; the
	// client addresses the result by the returned id either way.
	httputil.WriteSuccess(w, http.StatusOK, session, message)
}
