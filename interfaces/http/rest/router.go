package rest

import (
	"net/http"

	querybus "lattice-backend/application/queries/bus"
	"lattice-backend/interfaces/http/rest/handlers"
	"lattice-backend/interfaces/http/rest/middleware"
	"lattice-backend/pkg/auth"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	queryBus       *querybus.QueryBus
	jwtValidator   *auth.JWTValidator
	rateLimiter    *auth.OrganizationRateLimiter
	allowedOrigins []string
	logger         *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	queryBus *querybus.QueryBus,
	jwtValidator *auth.JWTValidator,
	rateLimiter *auth.OrganizationRateLimiter,
	allowedOrigins []string,
	logger *zap.Logger,
) *Router {
	return &Router{
		queryBus:       queryBus,
		jwtValidator:   jwtValidator,
		rateLimiter:    rateLimiter,
		allowedOrigins: allowedOrigins,
		logger:         logger,
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

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.jwtValidator, rt.logger))
		r.Use(middleware.RateLimit(rt.rateLimiter, rt.logger))

		r.Route("/graph", func(r chi.Router) {
			graphHandler := handlers.NewGraphQueryHandler(rt.queryBus, rt.logger)
			r.Post("/shortest-path", graphHandler.ShortestPath)
			r.Post("/astar", graphHandler.WeightedShortestPath)
			r.Post("/subgraph", graphHandler.ExtractSubgraph)
			r.Post("/metrics", graphHandler.GraphMetrics)
			r.Get("/search", graphHandler.SearchNodes)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
