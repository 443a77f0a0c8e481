package post

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Blogview/internal/api/handlers"
	"Blogview/internal/api/middleware"
	"Blogview/internal/core/posts"
)

// Handler serves unified post reads and guarded local writes
type Handler struct {
	service posts.Service
}

// NewHandler creates a new post handler
func NewHandler(service posts.Service) *Handler {
	return &Handler{service: service}
}

// HandleList returns one page of the unified post collection
// GET /api/posts?page=&perPage=&sort=&order=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	req := posts.ListPageRequest{
		Page:      intQuery(r, "page", 1),
		PerPage:   intQuery(r, "perPage", posts.DefaultPerPage),
		SortField: posts.ParseSortField(r.URL.Query().Get("sort")),
		SortOrder: posts.ParseSortOrder(r.URL.Query().Get("order")),
	}

	result, err := h.service.ListPage(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, toPageView(result, middleware.ActorID(r)))
}

// HandleSort is a thin wrapper over HandleList using explicit field/order
// parameter names, kept for callers of the original sort endpoint
// GET /api/posts/sort?field=&order=&page=&perPage=
func (h *Handler) HandleSort(w http.ResponseWriter, r *http.Request) {
	req := posts.ListPageRequest{
		Page:      intQuery(r, "page", 1),
		PerPage:   intQuery(r, "perPage", posts.DefaultPerPage),
		SortField: posts.ParseSortField(r.URL.Query().Get("field")),
		SortOrder: posts.ParseSortOrder(r.URL.Query().Get("order")),
	}

	result, err := h.service.ListPage(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, toPageView(result, middleware.ActorID(r)))
}

// HandleSearch returns the full, unpaginated unified search result
// GET /api/posts/search?q=&sort=&order=
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "q is required")
		return
	}

	result, err := h.service.Search(
		r.Context(),
		query,
		posts.ParseSortField(r.URL.Query().Get("sort")),
		posts.ParseSortOrder(r.URL.Query().Get("order")),
	)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, toPageView(result, middleware.ActorID(r)))
}

// HandleGet returns a single unified post
// GET /api/posts/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	post, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, toView(*post, middleware.ActorID(r)))
}

// HandleCreate creates a local post owned by the current actor
// POST /api/posts
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req posts.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	post, err := h.service.CreatePost(r.Context(), middleware.ActorID(r), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, toView(*post, middleware.ActorID(r)))
}

// HandleUpdate applies partial changes to a local post
// PUT /api/posts/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req posts.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	post, err := h.service.UpdatePost(r.Context(), middleware.ActorID(r), id, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, toView(*post, middleware.ActorID(r)))
}

// HandleDelete removes a local post and cascades to its local comments
// DELETE /api/posts/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePost(r.Context(), middleware.ActorID(r), id); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "id": id})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "id must be an integer")
		return 0, false
	}
	return id, true
}

func intQuery(r *http.Request, name string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
