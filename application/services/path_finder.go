package services

import (
	"container/heap"
	"context"

	"lattice-backend/application/ports"
	"lattice-backend/domain/core/valueobjects"
	"lattice-backend/domain/graph"
	pkgerrors "lattice-backend/pkg/errors"

	"go.uber.org/zap"
)

// PathFinder answers shortest-path queries over the store-backed graph.
// It holds no state between calls; every query builds its own labels and
// fetches adjacency on demand through the neighbor resolver, so worst-case
// store I/O is proportional to the number of expanded nodes.
type PathFinder struct {
	nodes       ports.NodeStore
	resolver    *NeighborResolver
	logger      *zap.Logger
	maxExpanded int
}

// NewPathFinder creates a new path finder. maxExpanded caps how many nodes a
// single traversal may expand; zero or negative means unbounded.
func NewPathFinder(nodes ports.NodeStore, resolver *NeighborResolver, maxExpanded int, logger *zap.Logger) *PathFinder {
	return &PathFinder{
		nodes:       nodes,
		resolver:    resolver,
		logger:      logger,
		maxExpanded: maxExpanded,
	}
}

// pathLabel is the per-node search state for the label-setting variant
type pathLabel struct {
	hopCount    int
	totalWeight float64
	path        []valueobjects.NodeID
	edges       []graph.NeighborEdge
}

// ShortestPath is the label-setting ("Dijkstra") variant.
//
// NOTE: node selection minimizes hop count while relaxation minimizes
// accumulated weight. The result is a hop-count-prioritized search that
// tracks, but does not optimize by, weight. On graphs with non-uniform
// weights it is NOT guaranteed to return the minimum-weight path. This
// asymmetry is intentional and load-bearing for existing consumers; use
// WeightedShortestPath when a true minimum-weight guarantee is needed.
//
// A nil result with a nil error means no path exists (or an endpoint is
// missing/inactive); errors are reserved for store failures, truncation,
// and cancellation.
func (f *PathFinder) ShortestPath(
	ctx context.Context,
	orgID valueobjects.OrganizationID,
	sourceID, targetID valueobjects.NodeID,
	relationshipTypes []graph.RelationshipType,
	direction graph.Direction,
) (*graph.PathResult, error) {
	if direction == "" {
		direction = graph.DirectionBoth
	}

	ok, err := f.endpointsExist(ctx, orgID, sourceID, targetID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	labels := map[valueobjects.NodeID]*pathLabel{
		sourceID: {
			hopCount:    0,
			totalWeight: 0,
			path:        []valueobjects.NodeID{sourceID},
			edges:       []graph.NeighborEdge{},
		},
	}
	unvisited := map[valueobjects.NodeID]bool{sourceID: true}
	visited := map[valueobjects.NodeID]bool{}
	expanded := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, pkgerrors.NewTimeoutError("shortest path").WithCause(err)
		}

		current, label := selectMinHop(unvisited, labels)
		if label == nil {
			// Reachable component exhausted without touching the target.
			return nil, nil
		}

		if current.Equals(targetID) {
			return &graph.PathResult{
				Path:        label.path,
				Distance:    label.hopCount,
				TotalWeight: label.totalWeight,
				Edges:       label.edges,
			}, nil
		}

		if f.maxExpanded > 0 && expanded >= f.maxExpanded {
			return nil, pkgerrors.NewTruncatedError("shortest path", expanded)
		}
		expanded++

		delete(unvisited, current)
		visited[current] = true

		neighbors, err := f.resolver.Neighbors(ctx, orgID, current, relationshipTypes, direction)
		if err != nil {
			return nil, err
		}

		for _, n := range neighbors {
			if visited[n.NeighborID] {
				continue
			}

			candidateHop := label.hopCount + 1
			candidateWeight := label.totalWeight + n.Weight

			existing, seen := labels[n.NeighborID]
			if seen && candidateWeight > existing.totalWeight {
				continue
			}
			if seen && candidateWeight == existing.totalWeight && candidateHop >= existing.hopCount {
				continue
			}

			labels[n.NeighborID] = &pathLabel{
				hopCount:    candidateHop,
				totalWeight: candidateWeight,
				path:        appendPath(label.path, n.NeighborID),
				edges:       appendEdges(label.edges, n),
			}
			unvisited[n.NeighborID] = true
		}
	}
}

// WeightedShortestPath is the heuristic ("A*") variant with a zero heuristic,
// making it a uniform-cost search whose result IS minimum total weight,
// unlike ShortestPath. Traversal direction is fixed at both. Any future
// non-zero heuristic wired here must stay admissible or the optimality
// guarantee is lost.
func (f *PathFinder) WeightedShortestPath(
	ctx context.Context,
	orgID valueobjects.OrganizationID,
	sourceID, targetID valueobjects.NodeID,
	relationshipTypes []graph.RelationshipType,
) (*graph.PathResult, error) {
	ok, err := f.endpointsExist(ctx, orgID, sourceID, targetID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	gScore := map[valueobjects.NodeID]float64{sourceID: 0}
	cameFrom := map[valueobjects.NodeID]valueobjects.NodeID{}
	cameEdge := map[valueobjects.NodeID]graph.NeighborEdge{}
	closed := map[valueobjects.NodeID]bool{}

	open := &openSet{}
	heap.Init(open)
	heap.Push(open, &openItem{nodeID: sourceID, fScore: heuristic(sourceID, targetID)})

	expanded := 0

	for open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, pkgerrors.NewTimeoutError("weighted shortest path").WithCause(err)
		}

		current := heap.Pop(open).(*openItem)
		if closed[current.nodeID] {
			// Stale entry from a later relaxation of the same node.
			continue
		}

		if current.nodeID.Equals(targetID) {
			return reconstructPath(sourceID, targetID, gScore[targetID], cameFrom, cameEdge), nil
		}

		if f.maxExpanded > 0 && expanded >= f.maxExpanded {
			return nil, pkgerrors.NewTruncatedError("weighted shortest path", expanded)
		}
		expanded++
		closed[current.nodeID] = true

		neighbors, err := f.resolver.Neighbors(ctx, orgID, current.nodeID, relationshipTypes, graph.DirectionBoth)
		if err != nil {
			return nil, err
		}

		for _, n := range neighbors {
			if closed[n.NeighborID] {
				continue
			}

			tentativeG := gScore[current.nodeID] + n.Weight
			if existing, seen := gScore[n.NeighborID]; seen && tentativeG >= existing {
				continue
			}

			cameFrom[n.NeighborID] = current.nodeID
			cameEdge[n.NeighborID] = n
			gScore[n.NeighborID] = tentativeG
			heap.Push(open, &openItem{
				nodeID: n.NeighborID,
				fScore: tentativeG + heuristic(n.NeighborID, targetID),
			})
		}
	}

	return nil, nil
}

// endpointsExist verifies both endpoints are active members of the
// organization. Absent endpoints are a normal not-found outcome.
func (f *PathFinder) endpointsExist(ctx context.Context, orgID valueobjects.OrganizationID, sourceID, targetID valueobjects.NodeID) (bool, error) {
	for _, id := range []valueobjects.NodeID{sourceID, targetID} {
		if _, err := f.nodes.FindByID(ctx, orgID, id); err != nil {
			if pkgerrors.IsNotFound(err) {
				f.logger.Debug("Path endpoint not found",
					zap.String("nodeID", id.String()),
					zap.String("organizationID", orgID.String()),
				)
				return false, nil
			}
			return false, err
		}
	}
	return true, nil
}

// heuristic is the A* guide function. It returns zero for every node, which
// keeps the search admissible (uniform-cost) in the absence of any spatial
// embedding to estimate remaining distance from.
func heuristic(_, _ valueobjects.NodeID) float64 {
	return 0
}

// selectMinHop picks the unvisited node with the minimum recorded hop count.
// Ties break on map iteration order, which is deliberately unspecified.
func selectMinHop(unvisited map[valueobjects.NodeID]bool, labels map[valueobjects.NodeID]*pathLabel) (valueobjects.NodeID, *pathLabel) {
	var (
		bestID    valueobjects.NodeID
		bestLabel *pathLabel
	)
	for id := range unvisited {
		label, ok := labels[id]
		if !ok {
			continue
		}
		if bestLabel == nil || label.hopCount < bestLabel.hopCount {
			bestID = id
			bestLabel = label
		}
	}
	return bestID, bestLabel
}

// reconstructPath walks parent pointers from target back to source
func reconstructPath(
	sourceID, targetID valueobjects.NodeID,
	totalWeight float64,
	cameFrom map[valueobjects.NodeID]valueobjects.NodeID,
	cameEdge map[valueobjects.NodeID]graph.NeighborEdge,
) *graph.PathResult {
	path := []valueobjects.NodeID{targetID}
	edges := []graph.NeighborEdge{}

	current := targetID
	for !current.Equals(sourceID) {
		edges = append(edges, cameEdge[current])
		current = cameFrom[current]
		path = append(path, current)
	}

	// Reverse into source-to-target order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	return &graph.PathResult{
		Path:        path,
		Distance:    len(path) - 1,
		TotalWeight: totalWeight,
		Edges:       edges,
	}
}

func appendPath(path []valueobjects.NodeID, next valueobjects.NodeID) []valueobjects.NodeID {
	out := make([]valueobjects.NodeID, len(path), len(path)+1)
	copy(out, path)
	return append(out, next)
}

func appendEdges(edges []graph.NeighborEdge, next graph.NeighborEdge) []graph.NeighborEdge {
	out := make([]graph.NeighborEdge, len(edges), len(edges)+1)
	copy(out, edges)
	return append(out, next)
}

// openItem is one entry in the A* open set
type openItem struct {
	nodeID valueobjects.NodeID
	fScore float64
}

// openSet is a min-heap over fScore
type openSet []*openItem

func (s openSet) Len() int            { return len(s) }
func (s openSet) Less(i, j int) bool  { return s[i].fScore < s[j].fScore }
func (s openSet) Swap(i, j int)       { s[i], s[j] = s[j], s[i] }
func (s *openSet) Push(x interface{}) { *s = append(*s, x.(*openItem)) }
func (s *openSet) Pop() interface{} {
	old := *s
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*s = old[:n-1]
	return item
}
