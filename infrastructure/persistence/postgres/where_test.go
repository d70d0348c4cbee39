package postgres

import (
	"testing"
	"time"

	"lattice-backend/application/ports"
	"lattice-backend/domain/core/valueobjects"
	"lattice-backend/domain/graph"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func whereOrgID(t *testing.T) valueobjects.OrganizationID {
	t.Helper()
	orgID, err := valueobjects.NewOrganizationIDFromString(uuid.New().String())
	require.NoError(t, err)
	return orgID
}

func TestNodeWhereClause(t *testing.T) {
	orgID := whereOrgID(t)

	t.Run("empty filter scopes by organization and liveness only", func(t *testing.T) {
		where, args := nodeWhereClause(orgID, ports.NodeFilter{})

		assert.Equal(t, "organization_id = $1 AND is_active", where)
		require.Len(t, args, 1)
		assert.Equal(t, orgID.String(), args[0])
	})

	t.Run("full filter numbers placeholders sequentially", func(t *testing.T) {
		after := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		before := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		where, args := nodeWhereClause(orgID, ports.NodeFilter{
			Types:         []graph.NodeType{graph.NodeTypeTask, graph.NodeTypePerson},
			Tags:          []string{"infra"},
			CreatedAfter:  &after,
			CreatedBefore: &before,
		})

		assert.Equal(t,
			"organization_id = $1 AND is_active AND node_type = ANY($2) AND tags && $3 AND created_at >= $4 AND created_at <= $5",
			where)
		require.Len(t, args, 5)
		assert.Equal(t, []string{"task", "person"}, args[1])
		assert.Equal(t, []string{"infra"}, args[2])
		assert.Equal(t, after, args[3])
		assert.Equal(t, before, args[4])
	})
}

func TestEdgeWhereClause(t *testing.T) {
	orgID := whereOrgID(t)
	minWeight := 0.5
	maxWeight := 2.0

	where, args := edgeWhereClause(orgID, ports.EdgeFilter{
		Types:     []graph.RelationshipType{graph.RelDependsOn},
		MinWeight: &minWeight,
		MaxWeight: &maxWeight,
	})

	assert.Equal(t,
		"organization_id = $1 AND is_active AND edge_type = ANY($2) AND weight >= $3 AND weight <= $4",
		where)
	require.Len(t, args, 4)
	assert.Equal(t, []string{"depends_on"}, args[1])
	assert.Equal(t, minWeight, args[2])
	assert.Equal(t, maxWeight, args[3])
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "plain", want: "plain"},
		{input: "50%", want: `50\%`},
		{input: "snake_case", want: `snake\_case`},
		{input: `back\slash`, want: `back\\slash`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLike(tt.input))
		})
	}
}
