package author

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Blogview/internal/api/handlers"
	"Blogview/internal/core/authors"
	"Blogview/internal/core/posts"
)

// Handler serves catalog authors and their unified post listings
type Handler struct {
	authorService authors.Service
	postService   posts.Service
}

// NewHandler creates a new author handler
func NewHandler(authorService authors.Service, postService posts.Service) *Handler {
	return &Handler{authorService: authorService, postService: postService}
}

// HandleList returns all catalog authors with at least one post
// GET /api/authors
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.authorService.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"authors": list})
}

// HandleGet returns a single catalog author
// GET /api/authors/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	a, err := h.authorService.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, a)
}

// HandlePosts returns the author's catalog posts followed by their local
// posts, each group in source order
// GET /api/authors/{id}/posts
func (h *Handler) HandlePosts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	list, err := h.postService.ListByAuthor(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"posts": list, "total": len(list)})
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authors.ErrNotFound):
		handlers.WriteError(w, http.StatusNotFound, "AuthorNotFound", "Author not found")
	case errors.Is(err, posts.ErrUpstreamUnavailable):
		handlers.WriteError(w, http.StatusBadGateway, "UpstreamUnavailable", "Remote catalog is unavailable")
	default:
		log.Printf("Author handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "An internal error occurred")
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "id must be an integer")
		return 0, false
	}
	return id, true
}
