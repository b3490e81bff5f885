package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/Rakesh-27-git/WellnessSpace/pkg/httputil"
	"github.com/Rakesh-27-git/WellnessSpace/pkg/middleware"
)

// RefreshTokenCookie is the cookie carrying the refresh token. The access
// token cookie name is owned by the auth middleware so both layers agree.
const RefreshTokenCookie = "refresh_token"

// CookieConfig controls how auth cookies are issued.
type CookieConfig struct {
	// Secure marks cookies as HTTPS-only. Off in development so the
	// frontend dev server can read responses over plain HTTP.
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// setAuthCookies attaches the token pair as httpOnly cookies. SameSite is
// Strict: the API and frontend share a site, and strict mode blocks the
// cookies from riding along on cross-site requests.
func setAuthCookies(w http.ResponseWriter, accessToken, refreshToken string, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(cfg.AccessTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(cfg.RefreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearAuthCookies expires both auth cookies.
func clearAuthCookies(w http.ResponseWriter, cfg CookieConfig) {
	for _, name := range []string{middleware.AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   cfg.Secure,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 {
			ct := r.Header.Get("Content-Type")
			if !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					StatusCode: http.StatusUnsupportedMediaType,
					Message:    "Content-Type must be application/json",
					Errors:     []string{},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
