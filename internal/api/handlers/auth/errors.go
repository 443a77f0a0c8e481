package auth

import (
	"errors"
	"log"
	"net/http"

	"Blogview/internal/api/handlers"
	"Blogview/internal/core/authors"
	"Blogview/internal/core/posts"
)

// handleServiceError converts author lookup errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authors.ErrNotFound):
		handlers.WriteError(w, http.StatusNotFound, "AuthorNotFound", "Author not found")
	case errors.Is(err, posts.ErrUpstreamUnavailable):
		handlers.WriteError(w, http.StatusBadGateway, "UpstreamUnavailable", "Remote catalog is unavailable")
	default:
		log.Printf("Auth handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "An internal error occurred")
	}
}
