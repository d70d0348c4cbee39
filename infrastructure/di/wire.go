//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"lattice-backend/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvidePool,
	ProvideDBPool,
	ProvideNodeStore,
	ProvideEdgeStore,
	ProvideNeighborResolver,
	ProvidePathFinder,
	ProvideSubgraphExtractor,
	ProvidePatternSearcher,
	ProvideJWTValidator,
	ProvideRateLimiter,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
