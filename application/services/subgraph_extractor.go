package services

import (
	"context"
	"time"

	"lattice-backend/application/ports"
	"lattice-backend/domain/core/valueobjects"
	"lattice-backend/domain/graph"
	pkgerrors "lattice-backend/pkg/errors"

	"go.uber.org/zap"
)

// SubgraphCriteria is the composite filter for subgraph extraction.
// Node filtering and edge-type filtering are independent of each other.
type SubgraphCriteria struct {
	NodeTypes         []graph.NodeType
	RelationshipTypes []graph.RelationshipType
	MinWeight         *float64
	MaxWeight         *float64
	Tags              []string
	CreatedAfter      *time.Time
	CreatedBefore     *time.Time
	Properties        map[string]interface{}
}

// Validate fails fast on nonsensical weight bounds
func (c SubgraphCriteria) Validate() error {
	if c.MinWeight != nil && *c.MinWeight < 0 {
		return pkgerrors.NewValidationError("minWeight cannot be negative")
	}
	if c.MaxWeight != nil && *c.MaxWeight < 0 {
		return pkgerrors.NewValidationError("maxWeight cannot be negative")
	}
	if c.MinWeight != nil && c.MaxWeight != nil && *c.MinWeight > *c.MaxWeight {
		return pkgerrors.NewValidationError("minWeight cannot exceed maxWeight")
	}
	return nil
}

// SubgraphExtractor filters nodes and edges independently by criteria, then
// restricts edges to pairs inside the node-filtered set.
type SubgraphExtractor struct {
	nodes  ports.NodeStore
	edges  ports.EdgeStore
	logger *zap.Logger
}

// NewSubgraphExtractor creates a new subgraph extractor
func NewSubgraphExtractor(nodes ports.NodeStore, edges ports.EdgeStore, logger *zap.Logger) *SubgraphExtractor {
	return &SubgraphExtractor{
		nodes:  nodes,
		edges:  edges,
		logger: logger,
	}
}

// Extract returns the organization's subgraph matching the criteria.
//
// Edges are computed against the node set BEFORE the in-memory property
// filter is applied, so the returned edge list may reference nodes the
// property filter later excluded. Downstream consumers rely on this;
// do not re-filter the edges against the final node set.
func (s *SubgraphExtractor) Extract(ctx context.Context, orgID valueobjects.OrganizationID, criteria SubgraphCriteria) (*graph.Subgraph, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	nodes, err := s.nodes.FindByOrganization(ctx, orgID, ports.NodeFilter{
		Types:         criteria.NodeTypes,
		Tags:          criteria.Tags,
		CreatedAfter:  criteria.CreatedAfter,
		CreatedBefore: criteria.CreatedBefore,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to query subgraph nodes")
	}

	if len(nodes) == 0 {
		return &graph.Subgraph{Nodes: []*graph.Node{}, Edges: []*graph.Edge{}}, nil
	}

	nodeIDs := make([]valueobjects.NodeID, len(nodes))
	for i, n := range nodes {
		nodeIDs[i] = n.ID()
	}

	edges, err := s.edges.FindByOrganizationAndNodeSet(ctx, orgID, nodeIDs, ports.EdgeFilter{
		Types:     criteria.RelationshipTypes,
		MinWeight: criteria.MinWeight,
		MaxWeight: criteria.MaxWeight,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to query subgraph edges")
	}

	if len(criteria.Properties) > 0 {
		filtered := make([]*graph.Node, 0, len(nodes))
		for _, n := range nodes {
			if n.MatchesProperties(criteria.Properties) {
				filtered = append(filtered, n)
			}
		}
		nodes = filtered
	}

	s.logger.Debug("Extracted subgraph",
		zap.String("organizationID", orgID.String()),
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(edges)),
	)

	return &graph.Subgraph{Nodes: nodes, Edges: edges}, nil
}
