package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xavierca1/nhfg-leads/internal/infra/http/handlers"
	"github.com/xavierca1/nhfg-leads/internal/infra/http/middleware"
)

type routerDeps struct {
	Auth      *handlers.AuthHandler
	Leads     *handlers.LeadHandler
	Clients   *handlers.ClientHandler
	Webhooks  *handlers.WebhookHandler
	Dashboard *handlers.DashboardHandler
	Health    *handlers.HealthHandler

	Verifier       middleware.TokenVerifier
	Limiter        *middleware.RateLimiter
	AllowedOrigins []string
	// TrustProxy lets X-Forwarded-For and X-Real-IP replace RemoteAddr, and
	// with it the rate limiter key. Only safe behind a proxy that sets them.
	TrustProxy bool
	Logger     *zap.Logger
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if d.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false, // bearer tokens only, no cookies
		MaxAge:           300,
	}))

	r.Get("/health", d.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(d.Limiter.Middleware)

		r.Post("/auth/login", d.Auth.Login)
		// Ad platforms cannot send our bearer tokens.
		r.Post("/webhooks/{platform}", d.Webhooks.Handle)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(d.Verifier, d.Logger))

			r.Get("/leads", d.Leads.List)
			r.Post("/leads", d.Leads.Create)
			r.Get("/clients", d.Clients.List)
			r.Post("/clients", d.Clients.Create)
			r.Get("/dashboard/metrics", d.Dashboard.Metrics)
		})
	})

	return r
}
