package handlers

import (
	"context"
	"fmt"

	"lattice-backend/application/queries"
	"lattice-backend/application/services"
	"lattice-backend/domain/graph"

	"go.uber.org/zap"
)

// SubgraphHandler handles subgraph extraction queries
type SubgraphHandler struct {
	extractor *services.SubgraphExtractor
	logger    *zap.Logger
}

// NewSubgraphHandler creates a new subgraph handler
func NewSubgraphHandler(extractor *services.SubgraphExtractor, logger *zap.Logger) *SubgraphHandler {
	return &SubgraphHandler{extractor: extractor, logger: logger}
}

// Handle executes the subgraph query
func (h *SubgraphHandler) Handle(ctx context.Context, query queries.SubgraphQuery) (*queries.SubgraphView, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	orgID, err := parseOrganizationID(query.OrganizationID)
	if err != nil {
		return nil, err
	}
	nodeTypes, err := parseNodeTypes(query.NodeTypes)
	if err != nil {
		return nil, err
	}
	relTypes, err := parseRelationshipTypes(query.RelationshipTypes)
	if err != nil {
		return nil, err
	}

	subgraph, err := h.extractor.Extract(ctx, orgID, services.SubgraphCriteria{
		NodeTypes:         nodeTypes,
		RelationshipTypes: relTypes,
		MinWeight:         query.MinWeight,
		MaxWeight:         query.MaxWeight,
		Tags:              query.Tags,
		CreatedAfter:      query.CreatedAfter,
		CreatedBefore:     query.CreatedBefore,
		Properties:        query.Properties,
	})
	if err != nil {
		return nil, err
	}

	view := &queries.SubgraphView{
		Nodes: make([]queries.NodeView, len(subgraph.Nodes)),
		Edges: make([]queries.EdgeView, len(subgraph.Edges)),
	}
	for i, n := range subgraph.Nodes {
		view.Nodes[i] = toNodeView(n)
	}
	for i, e := range subgraph.Edges {
		view.Edges[i] = toEdgeView(e)
	}

	if query.IncludeMetrics {
		m := graph.CalculateGraphMetrics(subgraph.Nodes, subgraph.Edges)
		view.Metrics = &queries.MetricsView{
			NodeCount:     m.NodeCount,
			EdgeCount:     m.EdgeCount,
			AverageDegree: m.AverageDegree,
			DensityRatio:  m.DensityRatio,
		}
	}

	h.logger.Debug("Subgraph extracted",
		zap.String("organizationID", query.OrganizationID),
		zap.Int("nodes", len(view.Nodes)),
		zap.Int("edges", len(view.Edges)),
	)

	return view, nil
}
