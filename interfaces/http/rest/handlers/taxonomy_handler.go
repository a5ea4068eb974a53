package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"blogapi/application/services"
	apperrors "blogapi/pkg/errors"
	"blogapi/pkg/utils"
)

// TaxonomyHandler handles category and tag HTTP requests
type TaxonomyHandler struct {
	service services.TaxonomyService
	errors  *apperrors.ErrorHandler
	logger  *zap.Logger
}

// NewTaxonomyHandler creates a new taxonomy handler
func NewTaxonomyHandler(service services.TaxonomyService, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		service: service,
		errors:  errorHandler,
		logger:  logger,
	}
}

// NameRequest represents the request body for creating a category or tag
type NameRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CreateCategory handles POST /api/v1/categories
func (h *TaxonomyHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeName(w, r)
	if !ok {
		return
	}

	category, err := h.service.CreateCategory(r.Context(), req.Name)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/categories/"+category.ID)
	h.respondJSON(w, http.StatusCreated, CategoryResponse{ID: category.ID, Name: category.Name})
}

// ListCategories handles GET /api/v1/categories
func (h *TaxonomyHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, CategoryResponse{ID: category.ID, Name: category.Name})
	}
	h.respondJSON(w, http.StatusOK, responses)
}

// CreateTag handles POST /api/v1/tags
func (h *TaxonomyHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeName(w, r)
	if !ok {
		return
	}

	tag, err := h.service.CreateTag(r.Context(), req.Name)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/tags/"+tag.ID)
	h.respondJSON(w, http.StatusCreated, TagResponse{ID: tag.ID, Name: tag.Name})
}

// ListTags handles GET /api/v1/tags
func (h *TaxonomyHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.ListTags(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	responses := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		responses = append(responses, TagResponse{ID: tag.ID, Name: tag.Name})
	}
	h.respondJSON(w, http.StatusOK, responses)
}

func (h *TaxonomyHandler) decodeName(w http.ResponseWriter, r *http.Request) (NameRequest, bool) {
	var req NameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("Invalid request body: "+err.Error()))
		return req, false
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, err)
		return req, false
	}
	return req, true
}

func (h *TaxonomyHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
