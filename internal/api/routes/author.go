package routes

import (
	"Blogview/internal/api/handlers/author"
	"Blogview/internal/core/authors"
	"Blogview/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterAuthorRoutes registers the catalog author endpoints on the router
func RegisterAuthorRoutes(r chi.Router, authorService authors.Service, postService posts.Service) {
	handler := author.NewHandler(authorService, postService)

	// GET /api/authors
	r.Get("/api/authors", handler.HandleList)

	// GET /api/authors/{id}
	r.Get("/api/authors/{id}", handler.HandleGet)

	// GET /api/authors/{id}/posts
	r.Get("/api/authors/{id}/posts", handler.HandlePosts)
}
