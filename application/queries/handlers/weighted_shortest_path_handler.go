package handlers

import (
	"context"
	"fmt"

	"lattice-backend/application/queries"
	"lattice-backend/application/services"

	"go.uber.org/zap"
)

// WeightedShortestPathHandler handles minimum-total-weight path queries
type WeightedShortestPathHandler struct {
	finder *services.PathFinder
	logger *zap.Logger
}

// NewWeightedShortestPathHandler creates a new weighted shortest path handler
func NewWeightedShortestPathHandler(finder *services.PathFinder, logger *zap.Logger) *WeightedShortestPathHandler {
	return &WeightedShortestPathHandler{finder: finder, logger: logger}
}

// Handle executes the weighted shortest path query
func (h *WeightedShortestPathHandler) Handle(ctx context.Context, query queries.WeightedShortestPathQuery) (*queries.PathResultView, error) {
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

	result, err := h.finder.WeightedShortestPath(ctx, orgID, sourceID, targetID, relTypes)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return &queries.PathResultView{Found: false}, nil
	}

	h.logger.Debug("Weighted shortest path found",
		zap.String("sourceID", query.SourceID),
		zap.String("targetID", query.TargetID),
		zap.Float64("totalWeight", result.TotalWeight),
	)

	return &queries.PathResultView{Found: true, Path: toPathView(result)}, nil
}
