package graph

import (
	"strings"
	"time"

	"lattice-backend/domain/core/valueobjects"
	pkgerrors "lattice-backend/pkg/errors"
)

// RelationshipType is the closed enumeration of edge kinds
type RelationshipType string

const (
	RelCreatedBy        RelationshipType = "created_by"
	RelBelongsTo        RelationshipType = "belongs_to"
	RelManages          RelationshipType = "manages"
	RelCollaboratesWith RelationshipType = "collaborates_with"
	RelDependsOn        RelationshipType = "depends_on"
	RelReferences       RelationshipType = "references"
	RelImplements       RelationshipType = "implements"
	RelDerivesFrom      RelationshipType = "derives_from"
	RelRelatedTo        RelationshipType = "related_to"
	RelChildOf          RelationshipType = "child_of"
	RelPartOf           RelationshipType = "part_of"
	RelCustom           RelationshipType = "custom"
)

var validRelationshipTypes = map[RelationshipType]bool{
	RelCreatedBy:        true,
	RelBelongsTo:        true,
	RelManages:          true,
	RelCollaboratesWith: true,
	RelDependsOn:        true,
	RelReferences:       true,
	RelImplements:       true,
	RelDerivesFrom:      true,
	RelRelatedTo:        true,
	RelChildOf:          true,
	RelPartOf:           true,
	RelCustom:           true,
}

// ParseRelationshipType validates a raw type string against the closed enumeration
func ParseRelationshipType(raw string) (RelationshipType, error) {
	t := RelationshipType(strings.ToLower(strings.TrimSpace(raw)))
	if !validRelationshipTypes[t] {
		return "", pkgerrors.NewValidationError("unknown relationship type: " + raw)
	}
	return t, nil
}

// IsValid reports whether the relationship type belongs to the closed enumeration
func (t RelationshipType) IsValid() bool {
	return validRelationshipTypes[t]
}

// DefaultEdgeWeight is used when the writer did not record an explicit cost
const DefaultEdgeWeight = 1.0

// Edge is a typed, weighted relation between two node ids. Storage direction
// is source -> target; traversal direction is a query-time choice.
type Edge struct {
	id             valueobjects.EdgeID
	organizationID valueobjects.OrganizationID
	sourceNodeID   valueobjects.NodeID
	targetNodeID   valueobjects.NodeID
	edgeType       RelationshipType
	weight         float64
	properties     map[string]interface{}
	isActive       bool
	createdAt      time.Time
	updatedAt      time.Time
}

// ReconstructEdge rebuilds an edge from persisted data
func ReconstructEdge(
	id valueobjects.EdgeID,
	organizationID valueobjects.OrganizationID,
	sourceNodeID, targetNodeID valueobjects.NodeID,
	edgeType RelationshipType,
	weight float64,
	properties map[string]interface{},
	isActive bool,
	createdAt, updatedAt time.Time,
) (*Edge, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("edge ID cannot be empty")
	}
	if organizationID.IsZero() {
		return nil, pkgerrors.NewValidationError("organizationID cannot be empty")
	}
	if sourceNodeID.IsZero() || targetNodeID.IsZero() {
		return nil, pkgerrors.NewValidationError("edge endpoints cannot be empty")
	}
	if !edgeType.IsValid() {
		return nil, pkgerrors.NewValidationError("unknown relationship type: " + string(edgeType))
	}
	if weight < 0 {
		return nil, pkgerrors.NewValidationError("edge weight cannot be negative")
	}
	if properties == nil {
		properties = make(map[string]interface{})
	}
	return &Edge{
		id:             id,
		organizationID: organizationID,
		sourceNodeID:   sourceNodeID,
		targetNodeID:   targetNodeID,
		edgeType:       edgeType,
		weight:         weight,
		properties:     properties,
		isActive:       isActive,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

// ID returns the edge's unique identifier
func (e *Edge) ID() valueobjects.EdgeID {
	return e.id
}

// OrganizationID returns the tenant the edge belongs to
func (e *Edge) OrganizationID() valueobjects.OrganizationID {
	return e.organizationID
}

// SourceNodeID returns the storage-direction origin of the edge
func (e *Edge) SourceNodeID() valueobjects.NodeID {
	return e.sourceNodeID
}

// TargetNodeID returns the storage-direction destination of the edge
func (e *Edge) TargetNodeID() valueobjects.NodeID {
	return e.targetNodeID
}

// Type returns the relationship type
func (e *Edge) Type() RelationshipType {
	return e.edgeType
}

// Weight returns the non-negative traversal cost; lower means closer
func (e *Edge) Weight() float64 {
	return e.weight
}

// Properties returns a copy of the edge's open key-value map
func (e *Edge) Properties() map[string]interface{} {
	props := make(map[string]interface{}, len(e.properties))
	for k, v := range e.properties {
		props[k] = v
	}
	return props
}

// IsActive reports whether the edge is visible to queries
func (e *Edge) IsActive() bool {
	return e.isActive
}

// CreatedAt returns when the edge was created
func (e *Edge) CreatedAt() time.Time {
	return e.createdAt
}

// UpdatedAt returns when the edge was last updated
func (e *Edge) UpdatedAt() time.Time {
	return e.updatedAt
}
