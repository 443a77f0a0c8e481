package routes

import (
	"net/http"
	"time"

	"Blogview/internal/api/handlers/auth"
	"Blogview/internal/api/middleware"
	"Blogview/internal/core/authors"

	"github.com/go-chi/chi/v5"
)

// RegisterAuthRoutes registers the session endpoints on the router.
// Login is rate limited per IP to slow down author id enumeration.
func RegisterAuthRoutes(r chi.Router, sessions *middleware.SessionAuth, authorService authors.Service) {
	handler := auth.NewHandler(sessions, authorService)

	loginRateLimiter := middleware.NewRateLimiter(20, 10*time.Minute)

	// POST /auth/login  body: {"userId": 5}
	r.Post("/auth/login",
		loginRateLimiter.Middleware(http.HandlerFunc(handler.HandleLogin)).ServeHTTP)

	// POST /auth/logout
	r.Post("/auth/logout", handler.HandleLogout)

	// GET /auth/me
	r.Get("/auth/me", handler.HandleMe)
}
