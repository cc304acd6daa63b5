package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trimarkity/auth-service/internal/application/auth"
	"github.com/trimarkity/auth-service/internal/infrastructure/redis"
	"github.com/trimarkity/auth-service/internal/transport/http/handlers"
	"github.com/trimarkity/auth-service/internal/transport/http/middleware"
)

// RouterDeps carries everything the HTTP layer needs wired in.
type RouterDeps struct {
	Auth     *auth.Service
	Verifier middleware.TokenVerifier
	Limiter  *redis.FixedWindowLimiter
	DB       handlers.Pinger
	BaseURL  handlers.BaseURLConfig
}

// NewRouter builds the service's route tree.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.Metrics)

	authH := handlers.NewAuthHandler(deps.Auth, deps.BaseURL)
	usersH := handlers.NewUsersHandler(deps.Auth)
	adminH := handlers.NewAdminHandler(deps.Auth)
	healthH := handlers.NewHealthHandler(deps.DB)

	loginLimit := middleware.RateLimit(deps.Limiter, "login", 10, time.Minute)
	signupLimit := middleware.RateLimit(deps.Limiter, "signup", 5, time.Minute)
	resetLimit := middleware.RateLimit(deps.Limiter, "reset", 5, time.Minute)

	r.Route("/auth", func(r chi.Router) {
		r.With(loginLimit).Post("/login", authH.Login)
		r.With(signupLimit).Post("/signup", authH.Signup)
		r.With(resetLimit).Post("/forgot-password", authH.ForgotPassword)
		r.With(resetLimit).Post("/reset-password", authH.ResetPassword)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Verifier))
		r.Put("/password", usersH.ChangePassword)
		r.Post("/password", usersH.SetupPassword)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Verifier))
		r.Use(middleware.RequireAdmin)
		r.Post("/create-user", adminH.CreateUser)
	})

	r.Get("/healthz", healthH.Live)
	r.Get("/readyz", healthH.Ready)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
