package routes

import (
	"Blogview/internal/api/handlers/tag"
	"Blogview/internal/core/posts"
	"Blogview/internal/core/tags"

	"github.com/go-chi/chi/v5"
)

// RegisterTagRoutes registers the unified tag endpoints on the router
func RegisterTagRoutes(r chi.Router, tagService tags.Service, postService posts.Service) {
	handler := tag.NewHandler(tagService, postService)

	// GET /api/tags
	r.Get("/api/tags", handler.HandleList)

	// GET /api/tags/{slug}/posts
	r.Get("/api/tags/{slug}/posts", handler.HandlePostsByTag)
}
