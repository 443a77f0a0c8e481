package tag

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Blogview/internal/api/handlers"
	"Blogview/internal/core/posts"
	"Blogview/internal/core/tags"
)

// Handler serves the unified tag list and tag-restricted post search
type Handler struct {
	tagService  tags.Service
	postService posts.Service
}

// NewHandler creates a new tag handler
func NewHandler(tagService tags.Service, postService posts.Service) *Handler {
	return &Handler{tagService: tagService, postService: postService}
}

// HandleList returns the merged, de-duplicated tag list
// GET /api/tags
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.tagService.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"tags": list})
}

// HandlePostsByTag returns unified posts carrying the exact tag
// GET /api/tags/{slug}/posts?sort=&order=
func (h *Handler) HandlePostsByTag(w http.ResponseWriter, r *http.Request) {
	result, err := h.postService.SearchByTag(
		r.Context(),
		chi.URLParam(r, "slug"),
		posts.ParseSortField(r.URL.Query().Get("sort")),
		posts.ParseSortOrder(r.URL.Query().Get("order")),
	)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, result)
}

func handleServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, posts.ErrUpstreamUnavailable) {
		handlers.WriteError(w, http.StatusBadGateway, "UpstreamUnavailable", "Remote catalog is unavailable")
		return
	}
	log.Printf("Tag handler error: %v", err)
	handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "An internal error occurred")
}
