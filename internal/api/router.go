package api

import (
	"net/http"
	"time"

	"contesthub/internal/api/handler"
	"contesthub/internal/api/middleware"
	"contesthub/internal/app/service"
	"contesthub/internal/common/security"
	"contesthub/internal/domain/repository"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

type RouterDeps struct {
	Tokens            *security.TokenManager
	UserRepo          repository.UserRepository
	AuthService       *service.AuthService
	UserService       *service.UserService
	ContestService    *service.ContestService
	SubmissionService *service.SubmissionService
	PaymentService    *service.PaymentService
	CORSOrigins       []string
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ContestHub server is running"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.UserService)
	contestHandler := handler.NewContestHandler(deps.ContestService)
	submissionHandler := handler.NewSubmissionHandler(deps.SubmissionService)
	paymentHandler := handler.NewPaymentHandler(deps.PaymentService)

	// Public routes
	r.Group(func(public chi.Router) {
		authHandler.RegisterRoutes(public)
		userHandler.RegisterPublicRoutes(public)
		contestHandler.RegisterPublicRoutes(public)
	})

	// Authenticated routes
	r.Group(func(authed chi.Router) {
		authed.Use(jwtauth.Verifier(deps.Tokens.JWTAuth()))
		authed.Use(middleware.Authenticator)

		userHandler.RegisterAuthedRoutes(authed)
		contestHandler.RegisterAuthedRoutes(authed)
		submissionHandler.RegisterAuthedRoutes(authed)
		paymentHandler.RegisterAuthedRoutes(authed)

		// Admin routes
		authed.Group(func(admin chi.Router) {
			admin.Use(middleware.AdminOnly(deps.UserRepo))

			userHandler.RegisterAdminRoutes(admin)
			contestHandler.RegisterAdminRoutes(admin)
		})
	})

	return r
}
