package di

import (
	"context"
	"testing"

	"lattice-backend/application/queries"
	querybus "lattice-backend/application/queries/bus"
	"lattice-backend/application/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProvideQueryBus_RegistersAllQueryTypes(t *testing.T) {
	logger := zap.NewNop()
	finder := services.NewPathFinder(nil, services.NewNeighborResolver(nil, logger), 0, logger)
	extractor := services.NewSubgraphExtractor(nil, nil, logger)
	searcher := services.NewPatternSearcher(nil, logger)

	bus, err := ProvideQueryBus(finder, extractor, searcher, logger)

	require.NoError(t, err)
	require.NotNil(t, bus)

	noop := querybus.QueryHandlerFunc(func(ctx context.Context, query querybus.Query) (interface{}, error) {
		return nil, nil
	})
	for _, query := range []querybus.Query{
		queries.ShortestPathQuery{},
		queries.WeightedShortestPathQuery{},
		queries.SubgraphQuery{},
		queries.GraphMetricsQuery{},
		queries.PatternSearchQuery{},
	} {
		err := bus.Register(query, noop)
		assert.Errorf(t, err, "expected %T to already be registered", query)
	}
}
