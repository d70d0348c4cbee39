package queries

import (
	"errors"
	"time"
)

// ShortestPathQuery asks for a path using the hop-prioritized label-setting
// search. Direction defaults to "both" when empty.
type ShortestPathQuery struct {
	OrganizationID    string
	SourceID          string
	TargetID          string
	RelationshipTypes []string
	Direction         string
}

// Validate validates the ShortestPathQuery
func (q ShortestPathQuery) Validate() error {
	if q.OrganizationID == "" {
		return errors.New("organization ID is required")
	}
	if q.SourceID == "" {
		return errors.New("source node ID is required")
	}
	if q.TargetID == "" {
		return errors.New("target node ID is required")
	}
	return nil
}

// WeightedShortestPathQuery asks for a minimum-total-weight path using the
// zero-heuristic A* search. Traversal direction is always "both".
type WeightedShortestPathQuery struct {
	OrganizationID    string
	SourceID          string
	TargetID          string
	RelationshipTypes []string
}

// Validate validates the WeightedShortestPathQuery
func (q WeightedShortestPathQuery) Validate() error {
	if q.OrganizationID == "" {
		return errors.New("organization ID is required")
	}
	if q.SourceID == "" {
		return errors.New("source node ID is required")
	}
	if q.TargetID == "" {
		return errors.New("target node ID is required")
	}
	return nil
}

// SubgraphQuery asks for the organization's subgraph under composite criteria
type SubgraphQuery struct {
	OrganizationID    string
	NodeTypes         []string
	RelationshipTypes []string
	MinWeight         *float64
	MaxWeight         *float64
	Tags              []string
	CreatedAfter      *time.Time
	CreatedBefore     *time.Time
	Properties        map[string]interface{}
	IncludeMetrics    bool
}

// Validate validates the SubgraphQuery
func (q SubgraphQuery) Validate() error {
	if q.OrganizationID == "" {
		return errors.New("organization ID is required")
	}
	return nil
}

// GraphMetricsQuery asks for structural metrics over the subgraph selected
// by the same criteria SubgraphQuery accepts, without materializing the
// nodes and edges in the response.
type GraphMetricsQuery struct {
	OrganizationID    string
	NodeTypes         []string
	RelationshipTypes []string
	MinWeight         *float64
	MaxWeight         *float64
	Tags              []string
	CreatedAfter      *time.Time
	CreatedBefore     *time.Time
	Properties        map[string]interface{}
}

// Validate validates the GraphMetricsQuery
func (q GraphMetricsQuery) Validate() error {
	if q.OrganizationID == "" {
		return errors.New("organization ID is required")
	}
	return nil
}

// PatternSearchQuery asks for nodes matching a case-insensitive substring
type PatternSearchQuery struct {
	OrganizationID string
	Pattern        string
	NodeTypes      []string
	Tags           []string
}

// Validate validates the PatternSearchQuery
func (q PatternSearchQuery) Validate() error {
	if q.OrganizationID == "" {
		return errors.New("organization ID is required")
	}
	if q.Pattern == "" {
		return errors.New("search pattern is required")
	}
	return nil
}

// PathView is the serializable form of a discovered path
type PathView struct {
	Path        []string   `json:"path"`
	Distance    int        `json:"distance"`
	TotalWeight float64    `json:"totalWeight"`
	Edges       []EdgeView `json:"edges"`
}

// PathResultView wraps a path lookup; Found distinguishes "no path exists"
// from a populated result, so absence is never reported as an error
type PathResultView struct {
	Found bool      `json:"found"`
	Path  *PathView `json:"pathResult,omitempty"`
}

// NodeView is the serializable form of a graph node
type NodeView struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Type        string                 `json:"type"`
	Description string                 `json:"description,omitempty"`
	Properties  map[string]interface{} `json:"properties,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
	CreatedAt   string                 `json:"createdAt"`
	UpdatedAt   string                 `json:"updatedAt"`
}

// EdgeView is the serializable form of a graph edge
type EdgeView struct {
	ID         string                 `json:"id"`
	SourceID   string                 `json:"sourceId"`
	TargetID   string                 `json:"targetId"`
	Type       string                 `json:"type"`
	Weight     float64                `json:"weight"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// SubgraphView is the serializable form of a subgraph extraction
type SubgraphView struct {
	Nodes   []NodeView   `json:"nodes"`
	Edges   []EdgeView   `json:"edges"`
	Metrics *MetricsView `json:"metrics,omitempty"`
}

// MetricsView is the serializable form of graph metrics
type MetricsView struct {
	NodeCount     int     `json:"nodeCount"`
	EdgeCount     int     `json:"edgeCount"`
	AverageDegree float64 `json:"averageDegree"`
	DensityRatio  float64 `json:"densityRatio"`
}

// PatternSearchView is the serializable form of a pattern search
type PatternSearchView struct {
	Nodes []NodeView `json:"nodes"`
}
