package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"lattice-backend/application/ports"
	"lattice-backend/domain/core/valueobjects"
	"lattice-backend/domain/graph"
	pkgerrors "lattice-backend/pkg/errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const edgeColumns = `id, organization_id, source_node_id, target_node_id, edge_type, weight, properties, is_active, created_at, updated_at`

// EdgeRepository implements ports.EdgeStore on PostgreSQL
type EdgeRepository struct {
	pool   DBPool
	logger *zap.Logger
}

// NewEdgeRepository creates a new EdgeRepository
func NewEdgeRepository(pool DBPool, logger *zap.Logger) *EdgeRepository {
	return &EdgeRepository{pool: pool, logger: logger}
}

var _ ports.EdgeStore = (*EdgeRepository)(nil)

// FindBySource scans active edges whose source endpoint is the given node
func (r *EdgeRepository) FindBySource(ctx context.Context, orgID valueobjects.OrganizationID, sourceID valueobjects.NodeID, filter ports.EdgeFilter) ([]*graph.Edge, error) {
	where, args := edgeWhereClause(orgID, filter)
	args = append(args, sourceID.String())
	where += fmt.Sprintf(" AND source_node_id = $%d", len(args))

	query := fmt.Sprintf(`SELECT %s FROM graph_edges WHERE %s`, edgeColumns, where)
	return r.queryEdges(ctx, "find edges by source", query, args)
}

// FindByTarget scans active edges whose target endpoint is the given node
func (r *EdgeRepository) FindByTarget(ctx context.Context, orgID valueobjects.OrganizationID, targetID valueobjects.NodeID, filter ports.EdgeFilter) ([]*graph.Edge, error) {
	where, args := edgeWhereClause(orgID, filter)
	args = append(args, targetID.String())
	where += fmt.Sprintf(" AND target_node_id = $%d", len(args))

	query := fmt.Sprintf(`SELECT %s FROM graph_edges WHERE %s`, edgeColumns, where)
	return r.queryEdges(ctx, "find edges by target", query, args)
}

// FindByOrganizationAndNodeSet scans active edges with both endpoints in the
// given node set
func (r *EdgeRepository) FindByOrganizationAndNodeSet(ctx context.Context, orgID valueobjects.OrganizationID, nodeIDs []valueobjects.NodeID, filter ports.EdgeFilter) ([]*graph.Edge, error) {
	if len(nodeIDs) == 0 {
		return []*graph.Edge{}, nil
	}

	ids := make([]string, len(nodeIDs))
	for i, id := range nodeIDs {
		ids[i] = id.String()
	}

	where, args := edgeWhereClause(orgID, filter)
	args = append(args, ids)
	where += fmt.Sprintf(" AND source_node_id = ANY($%d) AND target_node_id = ANY($%d)", len(args), len(args))

	query := fmt.Sprintf(`SELECT %s FROM graph_edges WHERE %s`, edgeColumns, where)
	return r.queryEdges(ctx, "find edges by node set", query, args)
}

func (r *EdgeRepository) queryEdges(ctx context.Context, operation, query string, args []any) ([]*graph.Edge, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError(operation, err)
	}
	defer rows.Close()

	edges := []*graph.Edge{}
	for rows.Next() {
		edge, err := scanEdge(rows)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError(operation, err)
		}
		edges = append(edges, edge)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.NewDatabaseError(operation, err)
	}

	r.logger.Debug("Edge scan completed",
		zap.String("operation", operation),
		zap.Int("count", len(edges)),
	)
	return edges, nil
}

// edgeWhereClause builds the shared WHERE fragment for edge scans.
// Arguments are numbered from $1.
func edgeWhereClause(orgID valueobjects.OrganizationID, filter ports.EdgeFilter) (string, []any) {
	clauses := []string{"organization_id = $1", "is_active"}
	args := []any{orgID.String()}

	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		args = append(args, types)
		clauses = append(clauses, fmt.Sprintf("edge_type = ANY($%d)", len(args)))
	}
	if filter.MinWeight != nil {
		args = append(args, *filter.MinWeight)
		clauses = append(clauses, fmt.Sprintf("weight >= $%d", len(args)))
	}
	if filter.MaxWeight != nil {
		args = append(args, *filter.MaxWeight)
		clauses = append(clauses, fmt.Sprintf("weight <= $%d", len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

// scanEdge maps one row onto a domain edge
func scanEdge(row pgx.Row) (*graph.Edge, error) {
	var (
		idRaw, orgRaw, sourceRaw, targetRaw, edgeType string
		weight                                        float64
		propsRaw                                      []byte
		isActive                                      bool
		createdAt, updatedAt                          time.Time
	)

	if err := row.Scan(&idRaw, &orgRaw, &sourceRaw, &targetRaw, &edgeType, &weight, &propsRaw, &isActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var properties map[string]interface{}
	if len(propsRaw) > 0 {
		if err := json.Unmarshal(propsRaw, &properties); err != nil {
			return nil, fmt.Errorf("failed to unmarshal edge properties: %w", err)
		}
	}

	id, err := valueobjects.NewEdgeIDFromString(idRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid edge id %q: %w", idRaw, err)
	}
	orgID, err := valueobjects.NewOrganizationIDFromString(orgRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid organization id %q: %w", orgRaw, err)
	}
	sourceID, err := valueobjects.NewNodeIDFromString(sourceRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid source node id %q: %w", sourceRaw, err)
	}
	targetID, err := valueobjects.NewNodeIDFromString(targetRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid target node id %q: %w", targetRaw, err)
	}
	parsedType, err := graph.ParseRelationshipType(edgeType)
	if err != nil {
		return nil, fmt.Errorf("stored edge %s has invalid type: %w", idRaw, err)
	}

	return graph.ReconstructEdge(id, orgID, sourceID, targetID, parsedType, weight, properties, isActive, createdAt, updatedAt)
}
