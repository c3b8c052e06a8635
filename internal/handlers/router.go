// internal/handlers/router.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"course_portal/internal/config"
	"course_portal/internal/middleware"
	"course_portal/internal/service"
	"course_portal/internal/sse"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// requestTimeout は SSE 以外のAPIに掛ける上限
const requestTimeout = 60 * time.Second

// Dependencies はルーターが必要とするサービス一式
type Dependencies struct {
	Accounts service.AccountService
	Courses  service.CourseService
	Admin    service.AdminService
	Hub      *sse.Hub
	// HealthCheck は /health で呼ばれる (DB の ping など)。nil なら常に OK
	HealthCheck func(ctx context.Context) error
}

// NewRouter はミドルウェアとAPIルートを組み立てます
func NewRouter(cfg *config.Config, logger *slog.Logger, deps Dependencies) http.Handler {
	authHandler := NewAuthHandler(deps.Accounts)
	courseHandler := NewCourseHandler(deps.Courses)
	adminHandler := NewAdminHandler(deps.Admin)
	eventsHandler := NewEventsHandler(deps.Accounts, deps.Hub)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
		Debug:            false,
	})
	r.Use(corsHandler.Handler)
	r.Use(chimiddleware.Recoverer)

	authMiddleware := middleware.JWTAuthMiddleware(cfg)
	if !cfg.Auth.Enabled {
		logger.Warn("Authentication is DISABLED. Using X-Account-ID header for development")
		authMiddleware = middleware.DevAccountContextMiddleware
	}

	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(requestTimeout))
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
			r.Get("/courses", courseHandler.ListCourses)
		})

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.DeviceIDMiddleware)

			// ★ SSE は Timeout の外に置く
			r.Get("/me/events", eventsHandler.StreamAccount)

			r.Group(func(r chi.Router) {
				r.Use(chimiddleware.Timeout(requestTimeout))

				r.Get("/me", authHandler.GetMe)
				r.Get("/dashboard", courseHandler.Dashboard)

				r.Route("/courses/{course_id}", func(r chi.Router) {
					r.Get("/", courseHandler.OpenCourse)
					r.Get("/progress", courseHandler.GetProgress)
					r.Post("/progress/import", courseHandler.ImportProgress)
					r.Get("/lessons/{lesson_id}", courseHandler.GetLesson)
					r.Post("/lessons/{lesson_id}/toggle", courseHandler.ToggleLesson)
				})

				r.Route("/admin", func(r chi.Router) {
					r.Use(middleware.RequireAdmin(deps.Accounts))
					r.Get("/accounts", adminHandler.ListAccounts)
					r.Get("/stats", adminHandler.Stats)
					r.Post("/accounts/{account_id}/grant", adminHandler.GrantAccess)
					r.Put("/accounts/{account_id}/contacted", adminHandler.MarkContacted)
				})
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(r.Context()); err != nil {
				middleware.GetLogger(r.Context()).Error("Health check failed", "error", err)
				http.Error(w, "Health check failed", http.StatusInternalServerError)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
