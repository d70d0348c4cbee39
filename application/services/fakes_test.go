package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"lattice-backend/application/ports"
	"lattice-backend/domain/core/valueobjects"
	"lattice-backend/domain/graph"
	pkgerrors "lattice-backend/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory NodeStore and EdgeStore honoring the same
// organization-scope, active-only, and filter semantics as the Postgres
// implementation.
type fakeStore struct {
	nodes map[valueobjects.NodeID]*graph.Node
	edges []*graph.Edge

	// err, when set, is returned by every method
	err error

	// nodeSetCalls counts FindByOrganizationAndNodeSet invocations
	nodeSetCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{nodes: map[valueobjects.NodeID]*graph.Node{}}
}

var _ ports.NodeStore = (*fakeStore)(nil)
var _ ports.EdgeStore = (*fakeStore)(nil)

func (s *fakeStore) addNode(n *graph.Node) {
	s.nodes[n.ID()] = n
}

func (s *fakeStore) addEdge(e *graph.Edge) {
	s.edges = append(s.edges, e)
}

func (s *fakeStore) FindByID(ctx context.Context, orgID valueobjects.OrganizationID, id valueobjects.NodeID) (*graph.Node, error) {
	if s.err != nil {
		return nil, s.err
	}
	n, ok := s.nodes[id]
	if !ok || !n.IsActive() || !n.OrganizationID().Equals(orgID) {
		return nil, pkgerrors.NewNotFoundError("node")
	}
	return n, nil
}

func (s *fakeStore) FindByOrganization(ctx context.Context, orgID valueobjects.OrganizationID, filter ports.NodeFilter) ([]*graph.Node, error) {
	if s.err != nil {
		return nil, s.err
	}
	matched := []*graph.Node{}
	for _, n := range s.nodes {
		if nodeMatches(n, orgID, filter) {
			matched = append(matched, n)
		}
	}
	return matched, nil
}

func (s *fakeStore) FindByPattern(ctx context.Context, orgID valueobjects.OrganizationID, pattern string, filter ports.NodeFilter) ([]*graph.Node, error) {
	if s.err != nil {
		return nil, s.err
	}
	needle := strings.ToLower(pattern)
	matched := []*graph.Node{}
	for _, n := range s.nodes {
		if !nodeMatches(n, orgID, filter) {
			continue
		}
		if strings.Contains(strings.ToLower(n.Name()), needle) ||
			strings.Contains(strings.ToLower(n.Description()), needle) {
			matched = append(matched, n)
		}
	}
	return matched, nil
}

func (s *fakeStore) FindBySource(ctx context.Context, orgID valueobjects.OrganizationID, sourceID valueobjects.NodeID, filter ports.EdgeFilter) ([]*graph.Edge, error) {
	if s.err != nil {
		return nil, s.err
	}
	matched := []*graph.Edge{}
	for _, e := range s.edges {
		if e.SourceNodeID().Equals(sourceID) && edgeMatches(e, orgID, filter) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (s *fakeStore) FindByTarget(ctx context.Context, orgID valueobjects.OrganizationID, targetID valueobjects.NodeID, filter ports.EdgeFilter) ([]*graph.Edge, error) {
	if s.err != nil {
		return nil, s.err
	}
	matched := []*graph.Edge{}
	for _, e := range s.edges {
		if e.TargetNodeID().Equals(targetID) && edgeMatches(e, orgID, filter) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (s *fakeStore) FindByOrganizationAndNodeSet(ctx context.Context, orgID valueobjects.OrganizationID, nodeIDs []valueobjects.NodeID, filter ports.EdgeFilter) ([]*graph.Edge, error) {
	s.nodeSetCalls++
	if s.err != nil {
		return nil, s.err
	}
	inSet := make(map[valueobjects.NodeID]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		inSet[id] = true
	}
	matched := []*graph.Edge{}
	for _, e := range s.edges {
		if inSet[e.SourceNodeID()] && inSet[e.TargetNodeID()] && edgeMatches(e, orgID, filter) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func nodeMatches(n *graph.Node, orgID valueobjects.OrganizationID, filter ports.NodeFilter) bool {
	if !n.IsActive() || !n.OrganizationID().Equals(orgID) {
		return false
	}
	if len(filter.Types) > 0 {
		found := false
		for _, t := range filter.Types {
			if n.Type() == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(filter.Tags) > 0 && !n.HasTagOverlap(filter.Tags) {
		return false
	}
	// Bounds are inclusive, matching the >= / <= the SQL store emits.
	if filter.CreatedAfter != nil && n.CreatedAt().Before(*filter.CreatedAfter) {
		return false
	}
	if filter.CreatedBefore != nil && n.CreatedAt().After(*filter.CreatedBefore) {
		return false
	}
	return true
}

func edgeMatches(e *graph.Edge, orgID valueobjects.OrganizationID, filter ports.EdgeFilter) bool {
	if !e.IsActive() || !e.OrganizationID().Equals(orgID) {
		return false
	}
	if len(filter.Types) > 0 {
		found := false
		for _, t := range filter.Types {
			if e.Type() == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.MinWeight != nil && e.Weight() < *filter.MinWeight {
		return false
	}
	if filter.MaxWeight != nil && e.Weight() > *filter.MaxWeight {
		return false
	}
	return true
}

// test data helpers

func newOrgID(t *testing.T) valueobjects.OrganizationID {
	t.Helper()
	orgID, err := valueobjects.NewOrganizationIDFromString(uuid.New().String())
	require.NoError(t, err)
	return orgID
}

type nodeSpec struct {
	name        string
	nodeType    graph.NodeType
	description string
	tags        []string
	properties  map[string]interface{}
	inactive    bool
	createdAt   time.Time
}

func buildNode(t *testing.T, orgID valueobjects.OrganizationID, spec nodeSpec) *graph.Node {
	t.Helper()
	if spec.nodeType == "" {
		spec.nodeType = graph.NodeTypeConcept
	}
	if spec.createdAt.IsZero() {
		spec.createdAt = time.Now()
	}
	n, err := graph.ReconstructNode(
		valueobjects.NewNodeID(),
		orgID,
		spec.name,
		spec.nodeType,
		spec.description,
		spec.properties,
		spec.tags,
		!spec.inactive,
		spec.createdAt, spec.createdAt,
	)
	require.NoError(t, err)
	return n
}

type edgeSpec struct {
	edgeType graph.RelationshipType
	weight   float64
	inactive bool
}

func buildEdge(t *testing.T, orgID valueobjects.OrganizationID, source, target *graph.Node, spec edgeSpec) *graph.Edge {
	t.Helper()
	if spec.edgeType == "" {
		spec.edgeType = graph.RelRelatedTo
	}
	if spec.weight == 0 {
		spec.weight = graph.DefaultEdgeWeight
	}
	now := time.Now()
	e, err := graph.ReconstructEdge(
		valueobjects.NewEdgeID(),
		orgID,
		source.ID(),
		target.ID(),
		spec.edgeType,
		spec.weight,
		nil,
		!spec.inactive,
		now, now,
	)
	require.NoError(t, err)
	return e
}
