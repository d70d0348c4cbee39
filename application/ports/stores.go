package ports

import (
	"context"
	"time"

	"lattice-backend/domain/core/valueobjects"
	"lattice-backend/domain/graph"
)

// NodeStore is the read-side port for persisted graph vertices.
// Every method is scoped to one organization and returns active nodes only;
// the query engine never observes soft-deleted rows.
type NodeStore interface {
	// FindByID retrieves a single active node within the organization.
	// A missing, inactive, or foreign-organization node yields a NOT_FOUND error.
	FindByID(ctx context.Context, orgID valueobjects.OrganizationID, id valueobjects.NodeID) (*graph.Node, error)

	// FindByOrganization scans the organization's active nodes with optional filters
	FindByOrganization(ctx context.Context, orgID valueobjects.OrganizationID, filter NodeFilter) ([]*graph.Node, error)

	// FindByPattern scans active nodes whose name or description contains the
	// pattern, case-insensitively, with optional structural filters
	FindByPattern(ctx context.Context, orgID valueobjects.OrganizationID, pattern string, filter NodeFilter) ([]*graph.Node, error)
}

// EdgeStore is the read-side port for persisted graph edges, scoped the same
// way as NodeStore. It is the only adjacency-access primitive in the engine;
// no adjacency list is ever cached.
type EdgeStore interface {
	// FindBySource scans active edges whose source endpoint is the given node
	FindBySource(ctx context.Context, orgID valueobjects.OrganizationID, sourceID valueobjects.NodeID, filter EdgeFilter) ([]*graph.Edge, error)

	// FindByTarget scans active edges whose target endpoint is the given node
	FindByTarget(ctx context.Context, orgID valueobjects.OrganizationID, targetID valueobjects.NodeID, filter EdgeFilter) ([]*graph.Edge, error)

	// FindByOrganizationAndNodeSet scans active edges with BOTH endpoints in
	// the given node set
	FindByOrganizationAndNodeSet(ctx context.Context, orgID valueobjects.OrganizationID, nodeIDs []valueobjects.NodeID, filter EdgeFilter) ([]*graph.Edge, error)
}

// NodeFilter narrows node scans. Zero values mean "no constraint".
type NodeFilter struct {
	Types         []graph.NodeType
	Tags          []string // overlap semantics: any shared tag matches
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// EdgeFilter narrows edge scans. Zero values mean "no constraint".
type EdgeFilter struct {
	Types     []graph.RelationshipType
	MinWeight *float64
	MaxWeight *float64
}
