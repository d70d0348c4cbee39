package handlers

import (
	"context"
	"fmt"

	"lattice-backend/application/queries"
	"lattice-backend/application/services"
	"lattice-backend/domain/graph"

	"go.uber.org/zap"
)

// ShortestPathHandler handles hop-prioritized shortest-path queries
type ShortestPathHandler struct {
	finder *services.PathFinder
	logger *zap.Logger
}

// NewShortestPathHandler creates a new shortest path handler
func NewShortestPathHandler(finder *services.PathFinder, logger *zap.Logger) *ShortestPathHandler {
	return &ShortestPathHandler{finder: finder, logger: logger}
}

// Handle executes the shortest path query
func (h *ShortestPathHandler) Handle(ctx context.Context, query queries.ShortestPathQuery) (*queries.PathResultView, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	orgID, err := parseOrganizationID(query.OrganizationID)
	if err != nil {
		return nil, err
	}
	sourceID, err := parseNodeID(query.SourceID)
	if err != nil {
		return nil, err
	}
	targetID, err := parseNodeID(query.TargetID)
	if err != nil {
		return nil, err
	}
	relTypes, err := parseRelationshipTypes(query.RelationshipTypes)
	if err != nil {
		return nil, err
	}
	direction, err := graph.ParseDirection(query.Direction)
	if err != nil {
		return nil, err
	}

	result, err := h.finder.ShortestPath(ctx, orgID, sourceID, targetID, relTypes, direction)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return &queries.PathResultView{Found: false}, nil
	}

	h.logger.Debug("Shortest path found",
		zap.String("sourceID", query.SourceID),
		zap.String("targetID", query.TargetID),
		zap.Int("distance", result.Distance),
		zap.Float64("totalWeight", result.TotalWeight),
	)

	return &queries.PathResultView{Found: true, Path: toPathView(result)}, nil
}
