package graph

import (
	"lattice-backend/domain/core/valueobjects"
	pkgerrors "lattice-backend/pkg/errors"
)

// Direction selects which edges count as adjacency during traversal.
// Edges are stored directed; DirectionBoth treats them as undirected.
type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
	DirectionBoth     Direction = "both"
)

// ParseDirection validates a raw direction string
func ParseDirection(raw string) (Direction, error) {
	switch Direction(raw) {
	case DirectionOutgoing, DirectionIncoming, DirectionBoth:
		return Direction(raw), nil
	case "":
		return DirectionBoth, nil
	default:
		return "", pkgerrors.NewValidationError("unknown direction: " + raw)
	}
}

// NeighborEdge is one adjacency entry produced by the neighbor resolver.
// SourceID/TargetID keep the storage direction so callers can tell which
// way the edge was traversed.
type NeighborEdge struct {
	NeighborID valueobjects.NodeID   `json:"neighbor_id"`
	EdgeID     valueobjects.EdgeID   `json:"edge_id"`
	SourceID   valueobjects.NodeID   `json:"source_id"`
	TargetID   valueobjects.NodeID   `json:"target_id"`
	Weight     float64               `json:"weight"`
	Type       RelationshipType      `json:"type"`
}

// PathResult is a discovered path between two nodes.
// Distance is the hop count; TotalWeight is the sum of edge weights.
type PathResult struct {
	Path        []valueobjects.NodeID `json:"path"`
	Distance    int                   `json:"distance"`
	TotalWeight float64               `json:"total_weight"`
	Edges       []NeighborEdge        `json:"edges"`
}

// Subgraph is a filtered subset of an organization's graph
type Subgraph struct {
	Nodes []*Node
	Edges []*Edge
}
