package postgres

import (
	"context"
	"fmt"
)

// schemaStatements holds the in-code migrations for the graph tables.
// The writer service owns row lifecycle; this service only needs the tables
// and the indexes its filtered scans depend on to exist.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS graph_nodes (
		id              UUID PRIMARY KEY,
		organization_id UUID NOT NULL,
		name            TEXT NOT NULL,
		node_type       TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		properties      JSONB NOT NULL DEFAULT '{}'::jsonb,
		tags            TEXT[] NOT NULL DEFAULT '{}',
		is_active       BOOLEAN NOT NULL DEFAULT TRUE,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS graph_edges (
		id              UUID PRIMARY KEY,
		organization_id UUID NOT NULL,
		source_node_id  UUID NOT NULL,
		target_node_id  UUID NOT NULL,
		edge_type       TEXT NOT NULL,
		weight          DOUBLE PRECISION NOT NULL DEFAULT 1.0 CHECK (weight >= 0),
		properties      JSONB NOT NULL DEFAULT '{}'::jsonb,
		is_active       BOOLEAN NOT NULL DEFAULT TRUE,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_graph_nodes_org_active
		ON graph_nodes (organization_id) WHERE is_active`,
	`CREATE INDEX IF NOT EXISTS idx_graph_nodes_org_type
		ON graph_nodes (organization_id, node_type)`,
	`CREATE INDEX IF NOT EXISTS idx_graph_nodes_tags
		ON graph_nodes USING GIN (tags)`,
	`CREATE INDEX IF NOT EXISTS idx_graph_edges_org_source
		ON graph_edges (organization_id, source_node_id) WHERE is_active`,
	`CREATE INDEX IF NOT EXISTS idx_graph_edges_org_target
		ON graph_edges (organization_id, target_node_id) WHERE is_active`,
	`CREATE INDEX IF NOT EXISTS idx_graph_edges_org_type
		ON graph_edges (organization_id, edge_type)`,
}

// EnsureSchema creates the graph tables and indexes if they do not exist
func EnsureSchema(ctx context.Context, pool DBPool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply graph schema: %w", err)
		}
	}
	return nil
}
