package graph

// FilterByRelationshipType keeps only edges whose type is in the given set.
// Intended for callers that already hold a materialized edge collection,
// such as a subgraph extraction result. An empty set keeps everything.
func FilterByRelationshipType(edges []*Edge, types []RelationshipType) []*Edge {
	if len(types) == 0 {
		return edges
	}

	wanted := make(map[RelationshipType]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}

	filtered := make([]*Edge, 0, len(edges))
	for _, e := range edges {
		if wanted[e.Type()] {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// FilterByNodeType keeps only nodes whose type is in the given set.
// An empty set keeps everything.
func FilterByNodeType(nodes []*Node, types []NodeType) []*Node {
	if len(types) == 0 {
		return nodes
	}

	wanted := make(map[NodeType]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}

	filtered := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if wanted[n.Type()] {
			filtered = append(filtered, n)
		}
	}
	return filtered
}
