package services

import (
	"context"
	"testing"

	"lattice-backend/domain/graph"
	pkgerrors "lattice-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFindNodesByPattern_EmptyPattern(t *testing.T) {
	orgID := newOrgID(t)
	searcher := NewPatternSearcher(newFakeStore(), zap.NewNop())

	nodes, err := searcher.FindNodesByPattern(context.Background(), orgID, "", nil, nil)

	require.Error(t, err)
	assert.Nil(t, nodes)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestFindNodesByPattern_CaseInsensitiveNameAndDescription(t *testing.T) {
	orgID := newOrgID(t)
	store := newFakeStore()
	byName := buildNode(t, orgID, nodeSpec{name: "Deployment Pipeline"})
	byDescription := buildNode(t, orgID, nodeSpec{name: "infra", description: "owns the deployment workflow"})
	unrelated := buildNode(t, orgID, nodeSpec{name: "billing"})
	for _, n := range []*graph.Node{byName, byDescription, unrelated} {
		store.addNode(n)
	}

	searcher := NewPatternSearcher(store, zap.NewNop())

	nodes, err := searcher.FindNodesByPattern(context.Background(), orgID, "DEPLOY", nil, nil)

	require.NoError(t, err)
	assert.Len(t, nodes, 2)
}

func TestFindNodesByPattern_StructuralFilters(t *testing.T) {
	orgID := newOrgID(t)
	store := newFakeStore()
	person := buildNode(t, orgID, nodeSpec{name: "search alice", nodeType: graph.NodeTypePerson, tags: []string{"core"}})
	tool := buildNode(t, orgID, nodeSpec{name: "search engine", nodeType: graph.NodeTypeTool})
	store.addNode(person)
	store.addNode(tool)

	searcher := NewPatternSearcher(store, zap.NewNop())

	nodes, err := searcher.FindNodesByPattern(context.Background(), orgID, "search",
		[]graph.NodeType{graph.NodeTypePerson}, []string{"core"})

	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.True(t, nodes[0].ID().Equals(person.ID()))
}

func TestFindNodesByPattern_ExcludesInactiveAndForeignOrg(t *testing.T) {
	orgID := newOrgID(t)
	otherOrg := newOrgID(t)
	store := newFakeStore()
	store.addNode(buildNode(t, orgID, nodeSpec{name: "report", inactive: true}))
	store.addNode(buildNode(t, otherOrg, nodeSpec{name: "report"}))

	searcher := NewPatternSearcher(store, zap.NewNop())

	nodes, err := searcher.FindNodesByPattern(context.Background(), orgID, "report", nil, nil)

	require.NoError(t, err)
	assert.Empty(t, nodes)
}
