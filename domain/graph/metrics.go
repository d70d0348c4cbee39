package graph

// GraphMetrics summarizes an already-materialized node/edge set
type GraphMetrics struct {
	NodeCount     int     `json:"node_count"`
	EdgeCount     int     `json:"edge_count"`
	AverageDegree float64 `json:"average_degree"`
	DensityRatio  float64 `json:"density_ratio"`
}

// CalculateGraphMetrics is a pure computation over a materialized subgraph;
// it performs no I/O. Edges are counted as undirected for both the degree
// and the density denominator.
func CalculateGraphMetrics(nodes []*Node, edges []*Edge) GraphMetrics {
	m := GraphMetrics{
		NodeCount: len(nodes),
		EdgeCount: len(edges),
	}

	if m.NodeCount > 0 {
		m.AverageDegree = float64(m.EdgeCount*2) / float64(m.NodeCount)
	}

	maxEdges := float64(m.NodeCount*(m.NodeCount-1)) / 2
	if maxEdges > 0 {
		m.DensityRatio = float64(m.EdgeCount) / maxEdges
	}

	return m
}
