package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/studyspot/studyspot/internal/metrics"
	"github.com/studyspot/studyspot/internal/middleware"
)

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Deps       Deps
	Health     *HealthHandler
	Gatherer   prometheus.Gatherer
	Recorder   metrics.Recorder
	Security   middleware.SecurityConfig
	AuthLimits middleware.RateLimitConfig
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) *chi.Mux {
	h := New(cfg.Deps)
	accounts := NewAccountHandler(cfg.Deps)
	listings := NewListingHandler(cfg.Deps)

	recorder := cfg.Recorder
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Deps.Logger))
	r.Use(middleware.Recoverer(cfg.Deps.Logger))
	r.Use(middleware.Security(cfg.Security))
	if cfg.Security.MaxRequestBodySize > 0 {
		r.Use(middleware.MaxBodySize(cfg.Security.MaxRequestBodySize))
	}
	r.Use(middleware.Metrics(recorder))

	if cfg.Health != nil {
		r.Get("/healthz", cfg.Health.Healthz)
		r.Get("/readyz", cfg.Health.Readyz)
	}
	r.Method(http.MethodGet, "/metrics", NewMetricsHandler(cfg.Gatherer))
	r.Method(http.MethodGet, "/static/*", staticHandler())

	r.Get("/", h.Root)

	limited := r.With(middleware.RateLimitIP(cfg.AuthLimits))
	r.Get("/login", accounts.LoginForm)
	limited.Post("/login", accounts.Login)
	r.Get("/signup", accounts.SignupForm)
	limited.Post("/signup", accounts.Signup)
	r.Get("/logout", accounts.Logout)

	r.Get("/home", listings.Home)
	r.Get("/map", listings.Map)

	r.Route("/posts", func(r chi.Router) {
		r.Get("/create", listings.CreateForm)
		r.Post("/create", listings.Create)
		r.Get("/{id}", listings.View)
		r.Get("/{id}/edit", listings.EditForm)
		r.Post("/{id}/edit", listings.Edit)
		r.Post("/{id}/delete", listings.Delete)
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
