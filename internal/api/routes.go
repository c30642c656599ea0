package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yegors/atcopilot/internal/config"
	"github.com/yegors/atcopilot/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(planner Planner, config *config.Config, logger *logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(planner, config, logger),
		middleware: NewMiddleware(logger),
		config:     config,
		logger:     logger.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	router.Route("/api/v1", func(router chi.Router) {
		// Checklist generation and history
		router.Post("/checklist", r.handler.GenerateChecklist)
		router.Get("/checklists", r.handler.GetRecentChecklists)

		// Pipeline stages
		router.Get("/airports/{icao}", r.handler.GetAirport)
		router.Get("/airports/{icao}/frequencies", r.handler.GetAirportFrequencies)
		router.Get("/route", r.handler.GetRoute)

		// Health check
		router.Get("/health", r.handler.GetHealth)
	})

	return router
}
