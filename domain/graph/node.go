package graph

import (
	"reflect"
	"strings"
	"time"

	"lattice-backend/domain/core/valueobjects"
	pkgerrors "lattice-backend/pkg/errors"
)

// NodeType is the closed enumeration of knowledge-graph vertex kinds.
// Unknown type strings are rejected at the store boundary rather than
// passed through untyped.
type NodeType string

const (
	NodeTypePerson       NodeType = "person"
	NodeTypeOrganization NodeType = "organization"
	NodeTypeTeam         NodeType = "team"
	NodeTypeTask         NodeType = "task"
	NodeTypeDocument     NodeType = "document"
	NodeTypeCode         NodeType = "code"
	NodeTypeConcept      NodeType = "concept"
	NodeTypeGoal         NodeType = "goal"
	NodeTypeSkill        NodeType = "skill"
	NodeTypeTool         NodeType = "tool"
	NodeTypeCustom       NodeType = "custom"
)

var validNodeTypes = map[NodeType]bool{
	NodeTypePerson:       true,
	NodeTypeOrganization: true,
	NodeTypeTeam:         true,
	NodeTypeTask:         true,
	NodeTypeDocument:     true,
	NodeTypeCode:         true,
	NodeTypeConcept:      true,
	NodeTypeGoal:         true,
	NodeTypeSkill:        true,
	NodeTypeTool:         true,
	NodeTypeCustom:       true,
}

// ParseNodeType validates a raw type string against the closed enumeration
func ParseNodeType(raw string) (NodeType, error) {
	t := NodeType(strings.ToLower(strings.TrimSpace(raw)))
	if !validNodeTypes[t] {
		return "", pkgerrors.NewValidationError("unknown node type: " + raw)
	}
	return t, nil
}

// IsValid reports whether the node type belongs to the closed enumeration
func (t NodeType) IsValid() bool {
	return validNodeTypes[t]
}

// Node is a vertex in the knowledge graph. The query engine only reads
// nodes; creation and soft-deletion are owned by the writer service.
type Node struct {
	id             valueobjects.NodeID
	organizationID valueobjects.OrganizationID
	name           string
	nodeType       NodeType
	description    string
	properties     map[string]interface{}
	tags           []string
	isActive       bool
	createdAt      time.Time
	updatedAt      time.Time
}

// ReconstructNode rebuilds a node from persisted data with preserved timestamps
func ReconstructNode(
	id valueobjects.NodeID,
	organizationID valueobjects.OrganizationID,
	name string,
	nodeType NodeType,
	description string,
	properties map[string]interface{},
	tags []string,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*Node, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("node ID cannot be empty")
	}
	if organizationID.IsZero() {
		return nil, pkgerrors.NewValidationError("organizationID cannot be empty")
	}
	if !nodeType.IsValid() {
		return nil, pkgerrors.NewValidationError("unknown node type: " + string(nodeType))
	}
	if properties == nil {
		properties = make(map[string]interface{})
	}
	return &Node{
		id:             id,
		organizationID: organizationID,
		name:           name,
		nodeType:       nodeType,
		description:    description,
		properties:     properties,
		tags:           tags,
		isActive:       isActive,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

// ID returns the node's unique identifier
func (n *Node) ID() valueobjects.NodeID {
	return n.id
}

// OrganizationID returns the tenant the node belongs to
func (n *Node) OrganizationID() valueobjects.OrganizationID {
	return n.organizationID
}

// Name returns the node's short display name
func (n *Node) Name() string {
	return n.name
}

// Type returns the node's type
func (n *Node) Type() NodeType {
	return n.nodeType
}

// Description returns the node's optional long description
func (n *Node) Description() string {
	return n.description
}

// Properties returns a copy of the node's open key-value map
func (n *Node) Properties() map[string]interface{} {
	props := make(map[string]interface{}, len(n.properties))
	for k, v := range n.properties {
		props[k] = v
	}
	return props
}

// Tags returns a copy of the node's tags
func (n *Node) Tags() []string {
	tags := make([]string, len(n.tags))
	copy(tags, n.tags)
	return tags
}

// IsActive reports whether the node is visible to queries.
// Soft-deleted nodes stay in the store but never appear in results.
func (n *Node) IsActive() bool {
	return n.isActive
}

// CreatedAt returns when the node was created
func (n *Node) CreatedAt() time.Time {
	return n.createdAt
}

// UpdatedAt returns when the node was last updated
func (n *Node) UpdatedAt() time.Time {
	return n.updatedAt
}

// HasTagOverlap reports whether the node carries at least one of the given tags
func (n *Node) HasTagOverlap(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, want := range tags {
		for _, have := range n.tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// MatchesProperties reports whether the node's property map contains every
// requested key with an exactly equal value
func (n *Node) MatchesProperties(required map[string]interface{}) bool {
	for k, want := range required {
		have, ok := n.properties[k]
		if !ok || !reflect.DeepEqual(have, want) {
			return false
		}
	}
	return true
}
