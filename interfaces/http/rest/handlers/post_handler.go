package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"blogapi/application/services"
	apperrors "blogapi/pkg/errors"
	"blogapi/pkg/utils"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	service services.PostService
	errors  *apperrors.ErrorHandler
	logger  *zap.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(service services.PostService, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		service: service,
		errors:  errorHandler,
		logger:  logger,
	}
}

// CreatePost handles POST /api/v1/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("Invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	post, err := h.service.Create(r.Context(), toCreateCommand(req))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/posts/"+post.ID)
	h.respondJSON(w, http.StatusCreated, toPostResponse(post))
}

// GetPost handles GET /api/v1/posts/{id}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, found, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if !found {
		h.errors.Handle(w, r, apperrors.NewNotFoundError("Post", id))
		return
	}

	h.respondJSON(w, http.StatusOK, toPostResponse(post))
}

// ListPosts handles GET /api/v1/posts?term=
// A blank term is treated as "no filter" and returns all posts.
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")

	var err error
	var posts []PostResponse
	if strings.TrimSpace(term) == "" {
		result, listErr := h.service.GetAll(r.Context())
		err = listErr
		posts = toPostResponses(result)
	} else {
		result, searchErr := h.service.Search(r.Context(), term)
		err = searchErr
		posts = toPostResponses(result)
	}
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, posts)
}

// UpdatePost handles PUT /api/v1/posts/{id}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("Invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	post, err := h.service.Update(r.Context(), id, toUpdateCommand(req))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toPostResponse(post))
}

// DeletePost handles DELETE /api/v1/posts/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PostHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
