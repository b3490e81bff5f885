package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Rakesh-27-git/WellnessSpace/internal/service"
	"github.com/Rakesh-27-git/WellnessSpace/pkg/health"
	"github.com/Rakesh-27-git/WellnessSpace/pkg/middleware"
)

// RouterConfig bundles everything the router needs beyond the handlers.
type RouterConfig struct {
	Cookies     CookieConfig
	CORS        middleware.CORSConfig
	ServiceName string
	PprofCIDRs  []string
}

// NewRouter creates a chi router with all routes registered.
func NewRouter(
	authService *service.AuthService,
	sessionService *service.SessionService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware. RequestLogger sits after RequestLogging and
	// Tracing so the request-scoped logger picks up the correlation ID
	// and span context they establish.
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.RequestLogger(logger))

	// Health and metrics endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	// Token validator that bridges to the auth service.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := authService.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID: claims.UserID,
			Email:  claims.Email,
		}, nil
	}

	authHandler := NewAuthHandler(authService, cfg.Cookies, logger)
	sessionHandler := NewSessionHandler(sessionService, logger)

	// Auth endpoints (public)
	r.Route("/api/users", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh-token", authHandler.RefreshToken)

		// Authenticated auth endpoints. RequestLogger runs again after
		// Auth so the request-scoped logger gains the user ID.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokenValidator))
			r.Use(middleware.RequestLogger(logger))

			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})
	})

	// Published sessions (public, browser-cacheable)
	r.Route("/api/sessions", func(r chi.Router) {
		r.Use(middleware.CacheControl(30))

		r.Get("/", sessionHandler.ListPublished)
	})

	// Owner-scoped session endpoints (auth required)
	r.Route("/api/my-sessions", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(tokenValidator))
		r.Use(middleware.RequestLogger(logger))

		r.Get("/", sessionHandler.ListMine)
		r.Get("/{id}", sessionHandler.GetMine)
		r.Post("/save-draft", sessionHandler.SaveDraft)
		r.Post("/publish", sessionHandler.Publish)
	})

	return r
}
