package comment

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Blogview/internal/api/handlers"
	"Blogview/internal/api/middleware"
	"Blogview/internal/core/comments"
	"Blogview/internal/core/permissions"
)

// Handler serves unified comment reads and guarded local writes
type Handler struct {
	service comments.Service
}

// NewHandler creates a new comment handler
func NewHandler(service comments.Service) *Handler {
	return &Handler{service: service}
}

// commentView is a unified comment annotated for the current actor
type commentView struct {
	comments.Comment
	LikedByCurrentUser bool                     `json:"likedByCurrentUser"`
	Capabilities       permissions.Capabilities `json:"capabilities"`
}

func toView(c comments.Comment, actorID *int64) commentView {
	view := commentView{
		Comment:      c,
		Capabilities: permissions.Evaluate(c.IsLocal(), c.AuthorID, actorID),
	}
	if actorID != nil && c.IsLocal() {
		view.LikedByCurrentUser = c.LikedByActor(*actorID)
	}
	return view
}

// HandleListForPost returns the unified comments of a post
// GET /api/posts/{id}/comments
func (h *Handler) HandleListForPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	list, err := h.service.ListForPost(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	actorID := middleware.ActorID(r)
	views := make([]commentView, 0, len(list))
	for _, c := range list {
		views = append(views, toView(c, actorID))
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"comments": views})
}

// HandleCreate adds a local comment on any post
// POST /api/posts/{id}/comments
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	comment, err := h.service.Create(r.Context(), middleware.ActorID(r), postID, req.Body)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, toView(*comment, middleware.ActorID(r)))
}

// HandleUpdate changes the body of a local comment
// PUT /api/comments/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	comment, err := h.service.Update(r.Context(), middleware.ActorID(r), id, req.Body)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, toView(*comment, middleware.ActorID(r)))
}

// HandleDelete removes a local comment
// DELETE /api/comments/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	postID, err := h.service.Delete(r.Context(), middleware.ActorID(r), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "postId": postID})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", name+" must be an integer")
		return 0, false
	}
	return id, true
}
