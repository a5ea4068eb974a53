// Package rest wires the HTTP surface of the blog API.
package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"blogapi/application/services"
	"blogapi/infrastructure/config"
	"blogapi/interfaces/http/rest/handlers"
	"blogapi/interfaces/http/rest/middleware"
	apperrors "blogapi/pkg/errors"
	"blogapi/pkg/utils"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg      *config.Config
	posts    services.PostService
	taxonomy services.TaxonomyService
	errors   *apperrors.ErrorHandler
	logger   *zap.Logger
	ready    func(ctx context.Context) error
}

// NewRouter creates a new router instance. The ready func checks the
// backing store for the readiness probe.
func NewRouter(
	cfg *config.Config,
	posts services.PostService,
	taxonomy services.TaxonomyService,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
	ready func(ctx context.Context) error,
) *Router {
	return &Router{
		cfg:      cfg,
		posts:    posts,
		taxonomy: taxonomy,
		errors:   errorHandler,
		logger:   logger,
		ready:    ready,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.cfg.EnableMetrics {
		router.Use(middleware.Metrics())
	}

	// CORS configuration
	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"Location", "X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.cfg.EnableMetrics {
		router.Handle("/metrics", promhttp.Handler())
	}

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/posts", func(r chi.Router) {
			postHandler := handlers.NewPostHandler(rt.posts, rt.errors, rt.logger)
			r.Post("/", postHandler.CreatePost)
			r.Get("/", postHandler.ListPosts)
			r.Get("/{id}", postHandler.GetPost)
			r.Put("/{id}", postHandler.UpdatePost)
			r.Delete("/{id}", postHandler.DeletePost)
		})

		taxonomyHandler := handlers.NewTaxonomyHandler(rt.taxonomy, rt.errors, rt.logger)
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", taxonomyHandler.CreateCategory)
			r.Get("/", taxonomyHandler.ListCategories)
		})
		r.Route("/tags", func(r chi.Router) {
			r.Post("/", taxonomyHandler.CreateTag)
			r.Get("/", taxonomyHandler.ListTags)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	rt.writeStatus(w, http.StatusOK, "healthy")
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if rt.ready != nil {
		if err := rt.ready(req.Context()); err != nil {
			rt.logger.Warn("Readiness check failed", zap.Error(err))
			rt.writeStatus(w, http.StatusServiceUnavailable, "unavailable")
			return
		}
	}
	rt.writeStatus(w, http.StatusOK, "ready")
}

func (rt *Router) writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"status":%q,"timestamp":%q}`, status, utils.NowRFC3339())
}
