// Package http provides HTTP routing and middleware configuration
// for the learner progress service.
package http

import (
	"net/http"

	"github.com/omsandippatil/9Lives-sub003/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the learner
// progress API. It applies JSON content-type enforcement and request logging
// globally, bearer-token resolution on the user endpoints, and the admin
// capability token on the administrative endpoints.
//
// Routes:
//
//	POST /api/register              → authHandler.Register
//	POST /api/login                 → authHandler.Login
//	POST /api/advance               → advanceHandler.Advance        (bearer)
//	POST /api/activity              → streakHandler.RecordActivity  (bearer)
//	GET  /api/streak                → streakHandler.Current         (bearer)
//	POST /api/focus/flush           → focusHandler.Flush            (bearer)
//	GET  /api/leaderboard           → leaderboardHandler.TopN       (bearer)
//	POST /api/admin/advance/force   → adminHandler.ForceAdvance     (admin token)
//	POST /api/admin/score/reset     → adminHandler.ResetScore       (admin token)
//	POST /api/admin/catalogs        → adminHandler.UpsertCatalog    (admin token)
func NewRouter(
	authHandler *AuthHandler,
	advanceHandler *AdvanceHandler,
	streakHandler *StreakHandler,
	focusHandler *FocusHandler,
	leaderboardHandler *LeaderboardHandler,
	adminHandler *AdminHandler,
	jwtSecret string,
	adminToken string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Protected group: requires a resolvable bearer identity
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(jwtSecret))

			r.Post("/advance", advanceHandler.Advance)
			r.Post("/activity", streakHandler.RecordActivity)
			r.Get("/streak", streakHandler.Current)
			r.Post("/focus/flush", focusHandler.Flush)
			r.Get("/leaderboard", leaderboardHandler.TopN)
		})

		// Admin group: requires the explicit admin capability token
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminAuth(adminToken))

			r.Post("/advance/force", adminHandler.ForceAdvance)
			r.Post("/score/reset", adminHandler.ResetScore)
			r.Post("/catalogs", adminHandler.UpsertCatalog)
		})
	})

	return r
}
