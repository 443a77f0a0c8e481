package comment

import (
	"errors"
	"log"
	"net/http"

	"Blogview/internal/api/handlers"
	"Blogview/internal/core/authors"
	"Blogview/internal/core/comments"
	"Blogview/internal/core/posts"
)

// handleServiceError converts comment service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var valErr *posts.ValidationError

	switch {
	case errors.Is(err, comments.ErrNotAuthenticated):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
	case errors.Is(err, comments.ErrForbidden):
		handlers.WriteError(w, http.StatusForbidden, "Forbidden", "You cannot modify this comment")
	case errors.Is(err, comments.ErrCommentNotFound):
		handlers.WriteError(w, http.StatusNotFound, "CommentNotFound", "Comment not found")
	case errors.Is(err, authors.ErrNotFound):
		handlers.WriteError(w, http.StatusNotFound, "AuthorNotFound", "No catalog author for this actor")
	case errors.Is(err, posts.ErrUpstreamUnavailable):
		handlers.WriteError(w, http.StatusBadGateway, "UpstreamUnavailable", "Remote catalog is unavailable")
	case errors.As(err, &valErr):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", valErr.Message)
	default:
		log.Printf("Comment handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "An internal error occurred")
	}
}
