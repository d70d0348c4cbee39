package services

import (
	"context"

	"lattice-backend/application/ports"
	"lattice-backend/domain/core/valueobjects"
	"lattice-backend/domain/graph"
	pkgerrors "lattice-backend/pkg/errors"

	"go.uber.org/zap"
)

// NeighborResolver is the engine's only adjacency primitive. Each call issues
// one or two filtered edge scans; adjacency is never cached between calls, so
// traversals always observe the live graph.
type NeighborResolver struct {
	edges  ports.EdgeStore
	logger *zap.Logger
}

// NewNeighborResolver creates a new neighbor resolver
func NewNeighborResolver(edges ports.EdgeStore, logger *zap.Logger) *NeighborResolver {
	return &NeighborResolver{
		edges:  edges,
		logger: logger,
	}
}

// Neighbors returns the adjacency entries of a node under the given direction
// and optional relationship-type filter. With DirectionBoth, a node connected
// to the same neighbor by both an outgoing and an incoming edge yields two
// distinct entries; duplicates are not merged. Result order is unspecified.
func (r *NeighborResolver) Neighbors(
	ctx context.Context,
	orgID valueobjects.OrganizationID,
	nodeID valueobjects.NodeID,
	relationshipTypes []graph.RelationshipType,
	direction graph.Direction,
) ([]graph.NeighborEdge, error) {
	filter := ports.EdgeFilter{Types: relationshipTypes}
	neighbors := []graph.NeighborEdge{}

	if direction == graph.DirectionOutgoing || direction == graph.DirectionBoth {
		outgoing, err := r.edges.FindBySource(ctx, orgID, nodeID, filter)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "failed to resolve outgoing neighbors")
		}
		for _, e := range outgoing {
			neighbors = append(neighbors, graph.NeighborEdge{
				NeighborID: e.TargetNodeID(),
				EdgeID:     e.ID(),
				SourceID:   e.SourceNodeID(),
				TargetID:   e.TargetNodeID(),
				Weight:     e.Weight(),
				Type:       e.Type(),
			})
		}
	}

	if direction == graph.DirectionIncoming || direction == graph.DirectionBoth {
		incoming, err := r.edges.FindByTarget(ctx, orgID, nodeID, filter)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "failed to resolve incoming neighbors")
		}
		for _, e := range incoming {
			neighbors = append(neighbors, graph.NeighborEdge{
				NeighborID: e.SourceNodeID(),
				EdgeID:     e.ID(),
				SourceID:   e.SourceNodeID(),
				TargetID:   e.TargetNodeID(),
				Weight:     e.Weight(),
				Type:       e.Type(),
			})
		}
	}

	r.logger.Debug("Resolved neighbors",
		zap.String("nodeID", nodeID.String()),
		zap.String("direction", string(direction)),
		zap.Int("count", len(neighbors)),
	)

	return neighbors, nil
}
