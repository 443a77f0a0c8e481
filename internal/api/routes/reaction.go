package routes

import (
	"Blogview/internal/api/handlers/reaction"
	"Blogview/internal/api/middleware"
	"Blogview/internal/core/reactions"

	"github.com/go-chi/chi/v5"
)

// RegisterReactionRoutes registers the reaction toggle endpoints on the
// router. Both are writes against local records and require an actor
// session.
func RegisterReactionRoutes(r chi.Router, service reactions.Service, sessions *middleware.SessionAuth) {
	handler := reaction.NewHandler(service)

	// POST /api/posts/{id}/reactions  body: {"type": "like" | "dislike"}
	r.With(sessions.RequireActor).Post("/api/posts/{id}/reactions", handler.HandleReactToPost)

	// POST /api/comments/{id}/like
	r.With(sessions.RequireActor).Post("/api/comments/{id}/like", handler.HandleLikeComment)
}
