package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// NodeID is a value object representing a unique node identifier
// Value objects are immutable and have no identity beyond their value
type NodeID struct {
	value string
}

// NewNodeID creates a new random NodeID
func NewNodeID() NodeID {
	return NodeID{value: uuid.New().String()}
}

// NewNodeIDFromString creates a NodeID from an existing string
func NewNodeIDFromString(id string) (NodeID, error) {
	if id == "" {
		return NodeID{}, errors.New("node ID cannot be empty")
	}
	if !isValidUUID(id) {
		return NodeID{}, errors.New("node ID must be a valid UUID")
	}
	return NodeID{value: id}, nil
}

// String returns the string representation of the NodeID
func (id NodeID) String() string {
	return id.value
}

// Equals checks if two NodeIDs are equal
func (id NodeID) Equals(other NodeID) bool {
	return id.value == other.value
}

// IsZero checks if the NodeID is the zero value
func (id NodeID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id NodeID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *NodeID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("NodeID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}

// EdgeID is a value object representing a unique edge identifier
type EdgeID struct {
	value string
}

// NewEdgeID creates a new random EdgeID
func NewEdgeID() EdgeID {
	return EdgeID{value: uuid.New().String()}
}

// NewEdgeIDFromString creates an EdgeID from an existing string
func NewEdgeIDFromString(id string) (EdgeID, error) {
	if id == "" {
		return EdgeID{}, errors.New("edge ID cannot be empty")
	}
	if !isValidUUID(id) {
		return EdgeID{}, errors.New("edge ID must be a valid UUID")
	}
	return EdgeID{value: id}, nil
}

// String returns the string representation of the EdgeID
func (id EdgeID) String() string {
	return id.value
}

// Equals checks if two EdgeIDs are equal
func (id EdgeID) Equals(other EdgeID) bool {
	return id.value == other.value
}

// IsZero checks if the EdgeID is the zero value
func (id EdgeID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id EdgeID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *EdgeID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("EdgeID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}

// OrganizationID is a value object representing the tenant boundary.
// Every graph query is scoped to exactly one OrganizationID.
type OrganizationID struct {
	value string
}

// NewOrganizationIDFromString creates an OrganizationID from an existing string
func NewOrganizationIDFromString(id string) (OrganizationID, error) {
	if id == "" {
		return OrganizationID{}, errors.New("organization ID cannot be empty")
	}
	if !isValidUUID(id) {
		return OrganizationID{}, errors.New("organization ID must be a valid UUID")
	}
	return OrganizationID{value: id}, nil
}

// String returns the string representation of the OrganizationID
func (id OrganizationID) String() string {
	return id.value
}

// Equals checks if two OrganizationIDs are equal
func (id OrganizationID) Equals(other OrganizationID) bool {
	return id.value == other.value
}

// IsZero checks if the OrganizationID is the zero value
func (id OrganizationID) IsZero() bool {
	return id.value == ""
}

// isValidUUID validates if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
