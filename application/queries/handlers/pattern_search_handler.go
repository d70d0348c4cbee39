package handlers

import (
	"context"
	"fmt"

	"lattice-backend/application/queries"
	"lattice-backend/application/services"

	"go.uber.org/zap"
)

// PatternSearchHandler handles free-text node search queries
type PatternSearchHandler struct {
	searcher *services.PatternSearcher
	logger   *zap.Logger
}

// NewPatternSearchHandler creates a new pattern search handler
func NewPatternSearchHandler(searcher *services.PatternSearcher, logger *zap.Logger) *PatternSearchHandler {
	return &PatternSearchHandler{searcher: searcher, logger: logger}
}

// Handle executes the pattern search query
func (h *PatternSearchHandler) Handle(ctx context.Context, query queries.PatternSearchQuery) (*queries.PatternSearchView, error) {
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

	nodes, err := h.searcher.FindNodesByPattern(ctx, orgID, query.Pattern, nodeTypes, query.Tags)
	if err != nil {
		return nil, err
	}

	view := &queries.PatternSearchView{
		Nodes: make([]queries.NodeView, len(nodes)),
	}
	for i, n := range nodes {
		view.Nodes[i] = toNodeView(n)
	}

	h.logger.Debug("Pattern search handled",
		zap.String("organizationID", query.OrganizationID),
		zap.Int("matches", len(nodes)),
	)

	return view, nil
}
