package services

import (
	"context"

	"lattice-backend/application/ports"
	"lattice-backend/domain/core/valueobjects"
	"lattice-backend/domain/graph"
	pkgerrors "lattice-backend/pkg/errors"

	"go.uber.org/zap"
)

// PatternSearcher runs free-text plus structural filters over the node store
type PatternSearcher struct {
	nodes  ports.NodeStore
	logger *zap.Logger
}

// NewPatternSearcher creates a new pattern searcher
func NewPatternSearcher(nodes ports.NodeStore, logger *zap.Logger) *PatternSearcher {
	return &PatternSearcher{
		nodes:  nodes,
		logger: logger,
	}
}

// FindNodesByPattern returns active nodes whose name or description contains
// the pattern case-insensitively, optionally narrowed by node type and tag
// overlap. Results carry no ranking; order is unspecified.
func (s *PatternSearcher) FindNodesByPattern(
	ctx context.Context,
	orgID valueobjects.OrganizationID,
	pattern string,
	nodeTypes []graph.NodeType,
	tags []string,
) ([]*graph.Node, error) {
	if pattern == "" {
		return nil, pkgerrors.NewValidationError("search pattern cannot be empty")
	}

	nodes, err := s.nodes.FindByPattern(ctx, orgID, pattern, ports.NodeFilter{
		Types: nodeTypes,
		Tags:  tags,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to search nodes by pattern")
	}

	s.logger.Debug("Pattern search completed",
		zap.String("organizationID", orgID.String()),
		zap.Int("matches", len(nodes)),
	)

	return nodes, nil
}
