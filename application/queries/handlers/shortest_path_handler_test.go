package handlers

import (
	"context"
	"testing"
	"time"

	"lattice-backend/application/ports"
	"lattice-backend/application/queries"
	"lattice-backend/application/services"
	"lattice-backend/domain/core/valueobjects"
	"lattice-backend/domain/graph"
	pkgerrors "lattice-backend/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryGraph is a minimal NodeStore/EdgeStore for handler tests
type memoryGraph struct {
	nodes map[valueobjects.NodeID]*graph.Node
	edges []*graph.Edge
}

var _ ports.NodeStore = (*memoryGraph)(nil)
var _ ports.EdgeStore = (*memoryGraph)(nil)

func (g *memoryGraph) FindByID(ctx context.Context, orgID valueobjects.OrganizationID, id valueobjects.NodeID) (*graph.Node, error) {
	n, ok := g.nodes[id]
	if !ok || !n.OrganizationID().Equals(orgID) {
		return nil, pkgerrors.NewNotFoundError("node")
	}
	return n, nil
}

func (g *memoryGraph) FindByOrganization(ctx context.Context, orgID valueobjects.OrganizationID, filter ports.NodeFilter) ([]*graph.Node, error) {
	matched := []*graph.Node{}
	for _, n := range g.nodes {
		if !n.OrganizationID().Equals(orgID) {
			continue
		}
		if len(filter.Tags) > 0 && !n.HasTagOverlap(filter.Tags) {
			continue
		}
		matched = append(matched, n)
	}
	return matched, nil
}

func (g *memoryGraph) FindByPattern(ctx context.Context, orgID valueobjects.OrganizationID, pattern string, filter ports.NodeFilter) ([]*graph.Node, error) {
	return nil, nil
}

func (g *memoryGraph) FindBySource(ctx context.Context, orgID valueobjects.OrganizationID, sourceID valueobjects.NodeID, filter ports.EdgeFilter) ([]*graph.Edge, error) {
	matched := []*graph.Edge{}
	for _, e := range g.edges {
		if e.SourceNodeID().Equals(sourceID) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (g *memoryGraph) FindByTarget(ctx context.Context, orgID valueobjects.OrganizationID, targetID valueobjects.NodeID, filter ports.EdgeFilter) ([]*graph.Edge, error) {
	matched := []*graph.Edge{}
	for _, e := range g.edges {
		if e.TargetNodeID().Equals(targetID) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (g *memoryGraph) FindByOrganizationAndNodeSet(ctx context.Context, orgID valueobjects.OrganizationID, nodeIDs []valueobjects.NodeID, filter ports.EdgeFilter) ([]*graph.Edge, error) {
	inSet := make(map[valueobjects.NodeID]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		inSet[id] = true
	}
	matched := []*graph.Edge{}
	for _, e := range g.edges {
		if inSet[e.SourceNodeID()] && inSet[e.TargetNodeID()] {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func buildTestGraph(t *testing.T) (valueobjects.OrganizationID, *memoryGraph, *graph.Node, *graph.Node) {
	t.Helper()
	orgID, err := valueobjects.NewOrganizationIDFromString(uuid.New().String())
	require.NoError(t, err)

	now := time.Now()
	a, err := graph.ReconstructNode(valueobjects.NewNodeID(), orgID, "a", graph.NodeTypeConcept, "", nil, nil, true, now, now)
	require.NoError(t, err)
	b, err := graph.ReconstructNode(valueobjects.NewNodeID(), orgID, "b", graph.NodeTypeConcept, "", nil, nil, true, now, now)
	require.NoError(t, err)
	edge, err := graph.ReconstructEdge(valueobjects.NewEdgeID(), orgID, a.ID(), b.ID(), graph.RelRelatedTo, 1.5, nil, true, now, now)
	require.NoError(t, err)

	store := &memoryGraph{
		nodes: map[valueobjects.NodeID]*graph.Node{a.ID(): a, b.ID(): b},
		edges: []*graph.Edge{edge},
	}
	return orgID, store, a, b
}

func newTestFinder(store *memoryGraph) *services.PathFinder {
	logger := zap.NewNop()
	return services.NewPathFinder(store, services.NewNeighborResolver(store, logger), 0, logger)
}

func TestShortestPathHandler_Found(t *testing.T) {
	orgID, store, a, b := buildTestGraph(t)
	handler := NewShortestPathHandler(newTestFinder(store), zap.NewNop())

	result, err := handler.Handle(context.Background(), queries.ShortestPathQuery{
		OrganizationID: orgID.String(),
		SourceID:       a.ID().String(),
		TargetID:       b.ID().String(),
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Found)
	require.NotNil(t, result.Path)
	assert.Equal(t, 1, result.Path.Distance)
	assert.Equal(t, 1.5, result.Path.TotalWeight)
	assert.Equal(t, []string{a.ID().String(), b.ID().String()}, result.Path.Path)
	require.Len(t, result.Path.Edges, 1)
	assert.Equal(t, string(graph.RelRelatedTo), result.Path.Edges[0].Type)
}

func TestShortestPathHandler_NoPathIsFoundFalse(t *testing.T) {
	orgID, store, a, _ := buildTestGraph(t)
	handler := NewShortestPathHandler(newTestFinder(store), zap.NewNop())

	// Target was never stored, so the lookup misses.
	result, err := handler.Handle(context.Background(), queries.ShortestPathQuery{
		OrganizationID: orgID.String(),
		SourceID:       a.ID().String(),
		TargetID:       valueobjects.NewNodeID().String(),
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Found)
	assert.Nil(t, result.Path)
}

func TestShortestPathHandler_InvalidInputs(t *testing.T) {
	orgID, store, a, b := buildTestGraph(t)
	handler := NewShortestPathHandler(newTestFinder(store), zap.NewNop())

	t.Run("missing source", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), queries.ShortestPathQuery{
			OrganizationID: orgID.String(),
			TargetID:       b.ID().String(),
		})
		require.Error(t, err)
	})

	t.Run("malformed node ID", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), queries.ShortestPathQuery{
			OrganizationID: orgID.String(),
			SourceID:       "not-a-uuid",
			TargetID:       b.ID().String(),
		})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("unknown relationship type", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), queries.ShortestPathQuery{
			OrganizationID:    orgID.String(),
			SourceID:          a.ID().String(),
			TargetID:          b.ID().String(),
			RelationshipTypes: []string{"owns"},
		})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("unknown direction", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), queries.ShortestPathQuery{
			OrganizationID: orgID.String(),
			SourceID:       a.ID().String(),
			TargetID:       b.ID().String(),
			Direction:      "sideways",
		})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestWeightedShortestPathHandler_Found(t *testing.T) {
	orgID, store, a, b := buildTestGraph(t)
	handler := NewWeightedShortestPathHandler(newTestFinder(store), zap.NewNop())

	result, err := handler.Handle(context.Background(), queries.WeightedShortestPathQuery{
		OrganizationID: orgID.String(),
		SourceID:       b.ID().String(),
		TargetID:       a.ID().String(),
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Found)
	require.NotNil(t, result.Path)
	assert.Equal(t, 1, result.Path.Distance)
	assert.Equal(t, 1.5, result.Path.TotalWeight)
}
