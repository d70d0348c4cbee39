package postgres

import (
	"context"
	"encoding/json"
	"errors"
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

const nodeColumns = `id, organization_id, name, node_type, description, properties, tags, is_active, created_at, updated_at`

// NodeRepository implements ports.NodeStore on PostgreSQL
type NodeRepository struct {
	pool   DBPool
	logger *zap.Logger
}

// NewNodeRepository creates a new NodeRepository
func NewNodeRepository(pool DBPool, logger *zap.Logger) *NodeRepository {
	return &NodeRepository{pool: pool, logger: logger}
}

var _ ports.NodeStore = (*NodeRepository)(nil)

// FindByID retrieves a single active node within the organization
func (r *NodeRepository) FindByID(ctx context.Context, orgID valueobjects.OrganizationID, id valueobjects.NodeID) (*graph.Node, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM graph_nodes
		WHERE id = $1 AND organization_id = $2 AND is_active`, nodeColumns),
		id.String(), orgID.String())

	node, err := scanNode(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pkgerrors.NewNotFoundError("node")
		}
		return nil, pkgerrors.NewDatabaseError("find node by id", err)
	}
	return node, nil
}

// FindByOrganization scans the organization's active nodes with optional filters
func (r *NodeRepository) FindByOrganization(ctx context.Context, orgID valueobjects.OrganizationID, filter ports.NodeFilter) ([]*graph.Node, error) {
	where, args := nodeWhereClause(orgID, filter)

	query := fmt.Sprintf(`SELECT %s FROM graph_nodes WHERE %s`, nodeColumns, where)
	return r.queryNodes(ctx, "find nodes by organization", query, args)
}

// FindByPattern scans active nodes whose name or description contains the
// pattern, case-insensitively
func (r *NodeRepository) FindByPattern(ctx context.Context, orgID valueobjects.OrganizationID, pattern string, filter ports.NodeFilter) ([]*graph.Node, error) {
	where, args := nodeWhereClause(orgID, filter)

	args = append(args, "%"+escapeLike(pattern)+"%")
	where += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", len(args), len(args))

	query := fmt.Sprintf(`SELECT %s FROM graph_nodes WHERE %s`, nodeColumns, where)
	return r.queryNodes(ctx, "find nodes by pattern", query, args)
}

func (r *NodeRepository) queryNodes(ctx context.Context, operation, query string, args []any) ([]*graph.Node, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError(operation, err)
	}
	defer rows.Close()

	nodes := []*graph.Node{}
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError(operation, err)
		}
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.NewDatabaseError(operation, err)
	}

	r.logger.Debug("Node scan completed",
		zap.String("operation", operation),
		zap.Int("count", len(nodes)),
	)
	return nodes, nil
}

// nodeWhereClause builds the shared WHERE fragment for node scans.
// Arguments are numbered from $1.
func nodeWhereClause(orgID valueobjects.OrganizationID, filter ports.NodeFilter) (string, []any) {
	clauses := []string{"organization_id = $1", "is_active"}
	args := []any{orgID.String()}

	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		args = append(args, types)
		clauses = append(clauses, fmt.Sprintf("node_type = ANY($%d)", len(args)))
	}
	if len(filter.Tags) > 0 {
		args = append(args, filter.Tags)
		clauses = append(clauses, fmt.Sprintf("tags && $%d", len(args)))
	}
	if filter.CreatedAfter != nil {
		args = append(args, *filter.CreatedAfter)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedBefore != nil {
		args = append(args, *filter.CreatedBefore)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

// scanNode maps one row onto a domain node
func scanNode(row pgx.Row) (*graph.Node, error) {
	var (
		idRaw, orgRaw, name, nodeType, description string
		propsRaw                                   []byte
		tags                                       []string
		isActive                                   bool
		createdAt, updatedAt                       time.Time
	)

	if err := row.Scan(&idRaw, &orgRaw, &name, &nodeType, &description, &propsRaw, &tags, &isActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var properties map[string]interface{}
	if len(propsRaw) > 0 {
		if err := json.Unmarshal(propsRaw, &properties); err != nil {
			return nil, fmt.Errorf("failed to unmarshal node properties: %w", err)
		}
	}

	id, err := valueobjects.NewNodeIDFromString(idRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid node id %q: %w", idRaw, err)
	}
	orgID, err := valueobjects.NewOrganizationIDFromString(orgRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid organization id %q: %w", orgRaw, err)
	}
	parsedType, err := graph.ParseNodeType(nodeType)
	if err != nil {
		return nil, fmt.Errorf("stored node %s has invalid type: %w", idRaw, err)
	}

	return graph.ReconstructNode(id, orgID, name, parsedType, description, properties, tags, isActive, createdAt, updatedAt)
}

// escapeLike escapes LIKE metacharacters so patterns are matched literally
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
