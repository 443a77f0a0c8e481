package routes

import (
	"Blogview/internal/api/handlers/post"
	"Blogview/internal/api/middleware"
	"Blogview/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers the unified post endpoints on the router.
// Reads are public; writes require an actor session.
func RegisterPostRoutes(r chi.Router, service posts.Service, sessions *middleware.SessionAuth) {
	handler := post.NewHandler(service)

	// Unified listing with pagination and sorting
	// GET /api/posts?page=1&perPage=25&sort=title&order=desc
	r.Get("/api/posts", handler.HandleList)

	// Whole-collection sorted view, catalog ordering delegated upstream
	// GET /api/posts/sort?field=title&order=asc
	r.Get("/api/posts/sort", handler.HandleSort)

	// Unified search across title, body and exact tag
	// GET /api/posts/search?q=term
	r.Get("/api/posts/search", handler.HandleSearch)

	// GET /api/posts/{id}
	r.Get("/api/posts/{id}", handler.HandleGet)

	// Local writes, ids allocated above the catalog range
	r.With(sessions.RequireActor).Post("/api/posts", handler.HandleCreate)
	r.With(sessions.RequireActor).Put("/api/posts/{id}", handler.HandleUpdate)
	r.With(sessions.RequireActor).Delete("/api/posts/{id}", handler.HandleDelete)
}
