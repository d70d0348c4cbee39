package graph

import (
	"testing"
	"time"

	"lattice-backend/domain/core/valueobjects"
	pkgerrors "lattice-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRelationshipType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RelationshipType
		wantErr bool
	}{
		{name: "valid lowercase", input: "depends_on", want: RelDependsOn},
		{name: "mixed case is normalized", input: "Manages", want: RelManages},
		{name: "whitespace is trimmed", input: " related_to ", want: RelRelatedTo},
		{name: "unknown type is rejected", input: "owns", wantErr: true},
		{name: "empty string is rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelationshipType(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, pkgerrors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReconstructEdge_Validation(t *testing.T) {
	orgID := testOrgID(t)
	source := valueobjects.NewNodeID()
	target := valueobjects.NewNodeID()
	now := time.Now()

	t.Run("negative weight is rejected", func(t *testing.T) {
		_, err := ReconstructEdge(valueobjects.NewEdgeID(), orgID, source, target, RelRelatedTo, -0.5, nil, true, now, now)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("zero weight is allowed", func(t *testing.T) {
		edge, err := ReconstructEdge(valueobjects.NewEdgeID(), orgID, source, target, RelRelatedTo, 0, nil, true, now, now)
		require.NoError(t, err)
		assert.Equal(t, 0.0, edge.Weight())
	})

	t.Run("missing endpoint is rejected", func(t *testing.T) {
		_, err := ReconstructEdge(valueobjects.NewEdgeID(), orgID, valueobjects.NodeID{}, target, RelRelatedTo, 1, nil, true, now, now)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("unknown relationship type is rejected", func(t *testing.T) {
		_, err := ReconstructEdge(valueobjects.NewEdgeID(), orgID, source, target, RelationshipType("owns"), 1, nil, true, now, now)
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    Direction
		wantErr bool
	}{
		{input: "outgoing", want: DirectionOutgoing},
		{input: "incoming", want: DirectionIncoming},
		{input: "both", want: DirectionBoth},
		{input: "", want: DirectionBoth},
		{input: "sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("direction "+tt.input, func(t *testing.T) {
			got, err := ParseDirection(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
