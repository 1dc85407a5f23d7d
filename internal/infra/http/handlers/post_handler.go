package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/lintra-console/internal/entity"
	"github.com/xavierca1/lintra-console/internal/usecase"
)

type PostHandler struct {
	Posts  *usecase.PostService
	logger *zap.Logger
}

func NewPostHandler(posts *usecase.PostService, logger *zap.Logger) *PostHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostHandler{Posts: posts, logger: logger}
}

func (h *PostHandler) Routes(r chi.Router) {
	r.Get("/posts", h.List)
	r.Get("/posts/{id}", h.Get)
	r.Put("/posts/{id}", h.Update)
	r.Put("/posts/{id}/status", h.SetStatus)
	r.Delete("/posts/{id}", h.Delete)
	r.Get("/categories", h.Categories)
}

// List aceita ?q= e ?status= como filtros.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.PostFilter{
		Query:  r.URL.Query().Get("q"),
		Status: entity.PostStatus(r.URL.Query().Get("status")),
	}
	list, err := h.Posts.List(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in entity.PostInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := h.Posts.Update(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PostHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status entity.PostStatus `json:"status"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := h.Posts.SetStatus(r.Context(), chi.URLParam(r, "id"), in.Status); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Posts.Delete(r.Context(), chi.URLParam(r, "id"), confirmFromQuery(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

func (h *PostHandler) Categories(w http.ResponseWriter, r *http.Request) {
	list, err := h.Posts.Categories(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
