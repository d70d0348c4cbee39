package handlers

import (
	"time"

	"lattice-backend/application/queries"
	"lattice-backend/domain/core/valueobjects"
	"lattice-backend/domain/graph"
	pkgerrors "lattice-backend/pkg/errors"
)

// parseRelationshipTypes validates raw type strings against the closed enumeration
func parseRelationshipTypes(raw []string) ([]graph.RelationshipType, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	types := make([]graph.RelationshipType, len(raw))
	for i, s := range raw {
		t, err := graph.ParseRelationshipType(s)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	return types, nil
}

// parseNodeTypes validates raw type strings against the closed enumeration
func parseNodeTypes(raw []string) ([]graph.NodeType, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	types := make([]graph.NodeType, len(raw))
	for i, s := range raw {
		t, err := graph.ParseNodeType(s)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	return types, nil
}

func parseOrganizationID(raw string) (valueobjects.OrganizationID, error) {
	id, err := valueobjects.NewOrganizationIDFromString(raw)
	if err != nil {
		return valueobjects.OrganizationID{}, pkgerrors.NewValidationError(err.Error())
	}
	return id, nil
}

func parseNodeID(raw string) (valueobjects.NodeID, error) {
	id, err := valueobjects.NewNodeIDFromString(raw)
	if err != nil {
		return valueobjects.NodeID{}, pkgerrors.NewValidationError(err.Error())
	}
	return id, nil
}

func toPathView(result *graph.PathResult) *queries.PathView {
	path := make([]string, len(result.Path))
	for i, id := range result.Path {
		path[i] = id.String()
	}
	edges := make([]queries.EdgeView, len(result.Edges))
	for i, e := range result.Edges {
		edges[i] = queries.EdgeView{
			ID:       e.EdgeID.String(),
			SourceID: e.SourceID.String(),
			TargetID: e.TargetID.String(),
			Type:     string(e.Type),
			Weight:   e.Weight,
		}
	}
	return &queries.PathView{
		Path:        path,
		Distance:    result.Distance,
		TotalWeight: result.TotalWeight,
		Edges:       edges,
	}
}

func toNodeView(n *graph.Node) queries.NodeView {
	return queries.NodeView{
		ID:          n.ID().String(),
		Name:        n.Name(),
		Type:        string(n.Type()),
		Description: n.Description(),
		Properties:  n.Properties(),
		Tags:        n.Tags(),
		CreatedAt:   n.CreatedAt().Format(time.RFC3339),
		UpdatedAt:   n.UpdatedAt().Format(time.RFC3339),
	}
}

func toEdgeView(e *graph.Edge) queries.EdgeView {
	return queries.EdgeView{
		ID:         e.ID().String(),
		SourceID:   e.SourceNodeID().String(),
		TargetID:   e.TargetNodeID().String(),
		Type:       string(e.Type()),
		Weight:     e.Weight(),
		Properties: e.Properties(),
	}
}
