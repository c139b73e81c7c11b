package client

import (
	"context"
	"log"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminawell/luminawell-api/api"
	"github.com/luminawell/luminawell-api/auth"
	"github.com/luminawell/luminawell-api/infrastructure"
	"github.com/luminawell/luminawell-api/schema"
	"github.com/luminawell/luminawell-api/usecase"
)

var testLogger = log.New(os.Stdout, "client-test ", log.LstdFlags|log.Lshortfile)

// newTestServer runs the real handler stack over in-memory repositories.
func newTestServer(t *testing.T) *httptest.Server {
	tokens, err := auth.NewClient("test-secret")
	require.NoError(t, err)

	metricUC := usecase.NewMetricUseCase(testLogger, infrastructure.NewMockMetricRepository())
	accountUCs := []*usecase.AccountUseCase{
		usecase.NewAccountUseCase(testLogger, infrastructure.NewMockAccountRepository(), tokens, schema.RoleUser),
		usecase.NewAccountUseCase(testLogger, infrastructure.NewMockAccountRepository(), tokens, schema.RoleAdmin),
	}
	quoteUC := usecase.NewQuoteUseCase(testLogger, infrastructure.NewMockQuoteRepository())

	a := api.InitAPI(metricUC, accountUCs, quoteUC, infrastructure.NewMockDatabaseAdapter(), auth.NewMock(), testLogger)
	router := mux.NewRouter()
	a.SetHandlers("", router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestClientCreateAndList(t *testing.T) {
	server := newTestServer(t)
	c := NewClient(server.URL, "test-token", testLogger)
	ctx := context.Background()

	entry, err := c.Create(ctx, schema.MetricTypeSleep,
		map[string]interface{}{"date": "2026-08-01", "hoursSlept": 5})
	require.NoError(t, err)
	assert.Len(t, entry.Recommendations, 7)

	entries, err := c.List(ctx, schema.MetricTypeSleep)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
}

func TestClientUpdateAndDelete(t *testing.T) {
	server := newTestServer(t)
	c := NewClient(server.URL, "test-token", testLogger)
	ctx := context.Background()

	entry, err := c.Create(ctx, schema.MetricTypeWeight, map[string]interface{}{"weight": 80})
	require.NoError(t, err)

	updated, err := c.Update(ctx, schema.MetricTypeWeight, entry.ID.Hex(),
		map[string]interface{}{"weight": 82.5})
	require.NoError(t, err)
	assert.Equal(t, 82.5, updated.Weight.Weight)

	require.NoError(t, c.Delete(ctx, schema.MetricTypeWeight, entry.ID.Hex()))

	err = c.Delete(ctx, schema.MetricTypeWeight, entry.ID.Hex())
	require.Error(t, err)
	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "data_not_found", apiErr.Code)
}

func TestClientMissingToken(t *testing.T) {
	server := newTestServer(t)
	c := NewClient(server.URL, "", testLogger)

	_, err := c.List(context.Background(), schema.MetricTypeSleep)
	require.Error(t, err)
	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, "unauthorized", apiErr.Code)
}

func TestSliceFetchAndMutationsRefetch(t *testing.T) {
	server := newTestServer(t)
	c := NewClient(server.URL, "test-token", testLogger)
	slice := NewMetricSlice(c, schema.MetricTypeHydration)
	ctx := context.Background()

	require.NoError(t, slice.Fetch(ctx))
	assert.Empty(t, slice.Items)

	entry, err := slice.Create(ctx, map[string]interface{}{"dailyWaterIntake": 1500})
	require.NoError(t, err)
	// the list reflects store state, not a local insert
	require.Len(t, slice.Items, 1)
	assert.Equal(t, entry.ID, slice.Items[0].ID)
	assert.False(t, slice.Loading)
	assert.Nil(t, slice.Err)

	_, err = slice.Update(ctx, entry.ID.Hex(), map[string]interface{}{"dailyWaterIntake": 2500})
	require.NoError(t, err)
	require.Len(t, slice.Items, 1)
	assert.Equal(t, 2500.0, slice.Items[0].Hydration.DailyWaterIntake)

	require.NoError(t, slice.Delete(ctx, entry.ID.Hex()))
	assert.Empty(t, slice.Items)
}

func TestSliceKeepsItemsOnFetchFailure(t *testing.T) {
	server := newTestServer(t)
	c := NewClient(server.URL, "test-token", testLogger)
	slice := NewMetricSlice(c, schema.MetricTypeMood)
	ctx := context.Background()

	_, err := slice.Create(ctx, map[string]interface{}{"moodStatus": "Happy"})
	require.NoError(t, err)
	require.Len(t, slice.Items, 1)

	c.SetToken("")
	require.Error(t, slice.Fetch(ctx))
	assert.NotNil(t, slice.Err)
	// stale items stay for the retry view
	assert.Len(t, slice.Items, 1)
}

func TestSliceGet(t *testing.T) {
	server := newTestServer(t)
	c := NewClient(server.URL, "test-token", testLogger)
	slice := NewMetricSlice(c, schema.MetricTypeSteps)
	ctx := context.Background()

	entry, err := slice.Create(ctx, map[string]interface{}{"stepsCount": 8000})
	require.NoError(t, err)

	assert.NotNil(t, slice.Get(entry.ID.Hex()))
	assert.Nil(t, slice.Get("aaaaaaaaaaaaaaaaaaaaaaaa"))
}
