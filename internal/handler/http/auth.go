package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Rakesh-27-git/WellnessSpace/internal/service"
	apperrors "github.com/Rakesh-27-git/WellnessSpace/pkg/errors"
	"github.com/Rakesh-27-git/WellnessSpace/pkg/httputil"
	"github.com/Rakesh-27-git/WellnessSpace/pkg/middleware"
	"github.com/Rakesh-27-git/WellnessSpace/pkg/validator"
)

// AuthHandler handles HTTP requests for auth endpoints.
type AuthHandler struct {
	service *service.AuthService
	cookies CookieConfig
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(svc *service.AuthService, cookies CookieConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, cookies: cookies, logger: logger}
}

// --- Request DTOs ---

// RegisterRequest is the JSON request body for user registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the JSON request body for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest is the JSON request body for token refresh. The body
// is a fallback for clients that cannot send the refresh cookie.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// --- Response types ---

// AuthResponse wraps user data with the issued token pair.
type AuthResponse struct {
	User   any `json:"user"`
	Tokens any `json:"tokens"`
}

// --- Handlers ---

// Register handles POST /api/users/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req RegisterRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	user, tokens, err := h.service.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	setAuthCookies(w, tokens.AccessToken, tokens.RefreshToken, h.cookies)
	httputil.WriteSuccess(w, http.StatusCreated, AuthResponse{User: user, Tokens: tokens}, "user registered successfully")
}

// Login handles POST /api/users/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req LoginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	user, tokens, err := h.service.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	setAuthCookies(w, tokens.AccessToken, tokens.RefreshToken, h.cookies)
	httputil.WriteSuccess(w, http.StatusOK, AuthResponse{User: user, Tokens: tokens}, "logged in successfully")
}

// Logout handles POST /api/users/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	if err := h.service.Logout(r.Context(), userID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	clearAuthCookies(w, h.cookies)
	httputil.WriteSuccess(w, http.StatusOK, nil, "logged out successfully")
}

// RefreshToken handles POST /api/users/refresh-token
//
// The refresh token is read from the refresh cookie first, then from the
// JSON body. An empty body is not an error when the cookie is present.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	token := ""
	if cookie, err := r.Cookie(RefreshTokenCookie); err == nil && cookie.Value != "" {
		token = cookie.Value
	}
	if token == "" && r.ContentLength > 0 {
		var req RefreshTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
			return
		}
		token = req.RefreshToken
	}
	if token == "" {
		httputil.WriteError(w, r, apperrors.Unauthorized("refresh token required"), h.logger)
		return
	}

	tokens, err := h.service.RefreshToken(r.Context(), token)
	if err != nil {
		clearAuthCookies(w, h.cookies)
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	setAuthCookies(w, tokens.AccessToken, tokens.RefreshToken, h.cookies)
	httputil.WriteSuccess(w, http.StatusOK, tokens, "tokens refreshed successfully")
}

// Me handles GET /api/users/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, user, "")
}
