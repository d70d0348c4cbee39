package di

import (
	"lattice-backend/application/ports"
	querybus "lattice-backend/application/queries/bus"
	"lattice-backend/application/services"
	"lattice-backend/infrastructure/config"
	"lattice-backend/pkg/auth"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config            *config.Config
	Logger            *zap.Logger
	Pool              *pgxpool.Pool
	NodeStore         ports.NodeStore
	EdgeStore         ports.EdgeStore
	NeighborResolver  *services.NeighborResolver
	PathFinder        *services.PathFinder
	SubgraphExtractor *services.SubgraphExtractor
	PatternSearcher   *services.PatternSearcher
	QueryBus          *querybus.QueryBus
	JWTValidator      *auth.JWTValidator
	RateLimiter       *auth.OrganizationRateLimiter
}

// Close releases held resources
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
