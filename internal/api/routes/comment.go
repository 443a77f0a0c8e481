package routes

import (
	"Blogview/internal/api/handlers/comment"
	"Blogview/internal/api/middleware"
	"Blogview/internal/core/comments"

	"github.com/go-chi/chi/v5"
)

// RegisterCommentRoutes registers the unified comment endpoints on the
// router. Listing is public; create, update and delete require an actor
// session.
func RegisterCommentRoutes(r chi.Router, service comments.Service, sessions *middleware.SessionAuth) {
	handler := comment.NewHandler(service)

	// GET /api/posts/{id}/comments
	r.Get("/api/posts/{id}/comments", handler.HandleListForPost)

	// POST /api/posts/{id}/comments
	// Commenting is allowed on catalog posts too; the comment itself is
	// always a local record.
	r.With(sessions.RequireActor).Post("/api/posts/{id}/comments", handler.HandleCreate)

	// PUT /api/comments/{id}
	r.With(sessions.RequireActor).Put("/api/comments/{id}", handler.HandleUpdate)

	// DELETE /api/comments/{id}
	r.With(sessions.RequireActor).Delete("/api/comments/{id}", handler.HandleDelete)
}
