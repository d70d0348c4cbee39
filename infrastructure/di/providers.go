package di

import (
	"context"
	"fmt"

	"lattice-backend/application/ports"
	"lattice-backend/application/queries"
	querybus "lattice-backend/application/queries/bus"
	queries_handlers "lattice-backend/application/queries/handlers"
	"lattice-backend/application/services"
	"lattice-backend/infrastructure/config"
	"lattice-backend/infrastructure/persistence/postgres"
	"lattice-backend/pkg/auth"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err == nil {
		zapCfg.Level = level
	}

	return zapCfg.Build()
}

// ProvidePool creates the Postgres connection pool
func ProvidePool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	return postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns)
}

// ProvideDBPool exposes the pool behind the query interface used by the stores
func ProvideDBPool(pool *pgxpool.Pool) postgres.DBPool {
	return pool
}

// ProvideNodeStore creates the Postgres node store
func ProvideNodeStore(pool postgres.DBPool, logger *zap.Logger) ports.NodeStore {
	return postgres.NewNodeRepository(pool, logger)
}

// ProvideEdgeStore creates the Postgres edge store
func ProvideEdgeStore(pool postgres.DBPool, logger *zap.Logger) ports.EdgeStore {
	return postgres.NewEdgeRepository(pool, logger)
}

// ProvideNeighborResolver creates the edge-scan neighbor resolver
func ProvideNeighborResolver(edges ports.EdgeStore, logger *zap.Logger) *services.NeighborResolver {
	return services.NewNeighborResolver(edges, logger)
}

// ProvidePathFinder creates the path finder with the configured expansion cap
func ProvidePathFinder(
	nodes ports.NodeStore,
	resolver *services.NeighborResolver,
	cfg *config.Config,
	logger *zap.Logger,
) *services.PathFinder {
	return services.NewPathFinder(nodes, resolver, cfg.MaxExpandedNodes, logger)
}

// ProvideSubgraphExtractor creates the subgraph extractor
func ProvideSubgraphExtractor(
	nodes ports.NodeStore,
	edges ports.EdgeStore,
	logger *zap.Logger,
) *services.SubgraphExtractor {
	return services.NewSubgraphExtractor(nodes, edges, logger)
}

// ProvidePatternSearcher creates the pattern searcher
func ProvidePatternSearcher(nodes ports.NodeStore, logger *zap.Logger) *services.PatternSearcher {
	return services.NewPatternSearcher(nodes, logger)
}

// ProvideJWTValidator creates the JWT validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
		Audience:  cfg.JWTAudience,
	})
}

// ProvideRateLimiter creates the per-organization rate limiter
func ProvideRateLimiter(cfg *config.Config) *auth.OrganizationRateLimiter {
	return auth.NewOrganizationRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	pathFinder *services.PathFinder,
	extractor *services.SubgraphExtractor,
	searcher *services.PatternSearcher,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()

	// Register ShortestPathQuery handler
	shortestPathHandler := queries_handlers.NewShortestPathHandler(pathFinder, logger)
	err := queryBus.Register(queries.ShortestPathQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, query querybus.Query) (interface{}, error) {
		pathQuery, ok := query.(queries.ShortestPathQuery)
		if !ok {
			return nil, fmt.Errorf("invalid query type")
		}
		return shortestPathHandler.Handle(ctx, pathQuery)
	}))
	if err != nil {
		return nil, err
	}

	// Register WeightedShortestPathQuery handler
	weightedHandler := queries_handlers.NewWeightedShortestPathHandler(pathFinder, logger)
	err = queryBus.Register(queries.WeightedShortestPathQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, query querybus.Query) (interface{}, error) {
		pathQuery, ok := query.(queries.WeightedShortestPathQuery)
		if !ok {
			return nil, fmt.Errorf("invalid query type")
		}
		return weightedHandler.Handle(ctx, pathQuery)
	}))
	if err != nil {
		return nil, err
	}

	// Register SubgraphQuery handler
	subgraphHandler := queries_handlers.NewSubgraphHandler(extractor, logger)
	err = queryBus.Register(queries.SubgraphQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, query querybus.Query) (interface{}, error) {
		subQuery, ok := query.(queries.SubgraphQuery)
		if !ok {
			return nil, fmt.Errorf("invalid query type")
		}
		return subgraphHandler.Handle(ctx, subQuery)
	}))
	if err != nil {
		return nil, err
	}

	// Register GraphMetricsQuery handler
	metricsHandler := queries_handlers.NewGraphMetricsHandler(extractor, logger)
	err = queryBus.Register(queries.GraphMetricsQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, query querybus.Query) (interface{}, error) {
		metricsQuery, ok := query.(queries.GraphMetricsQuery)
		if !ok {
			return nil, fmt.Errorf("invalid query type")
		}
		return metricsHandler.Handle(ctx, metricsQuery)
	}))
	if err != nil {
		return nil, err
	}

	// Register PatternSearchQuery handler
	searchHandler := queries_handlers.NewPatternSearchHandler(searcher, logger)
	err = queryBus.Register(queries.PatternSearchQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, query querybus.Query) (interface{}, error) {
		searchQuery, ok := query.(queries.PatternSearchQuery)
		if !ok {
			return nil, fmt.Errorf("invalid query type")
		}
		return searchHandler.Handle(ctx, searchQuery)
	}))
	if err != nil {
		return nil, err
	}

	return queryBus, nil
}
