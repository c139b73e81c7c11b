package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminawell/luminawell-api/auth"
	"github.com/luminawell/luminawell-api/infrastructure"
	"github.com/luminawell/luminawell-api/schema"
	"github.com/luminawell/luminawell-api/usecase"
)

var testLogger = log.New(os.Stdout, "api-test ", log.LstdFlags|log.Lshortfile)

type testStack struct {
	router     *mux.Router
	metricRepo *infrastructure.MockMetricRepository
	authMock   *auth.ClientMock
	dbAdapter  *infrastructure.MockDatabaseAdapter
}

func newTestStack(t *testing.T) *testStack {
	tokens, err := auth.NewClient("test-secret")
	require.NoError(t, err)

	metricRepo := infrastructure.NewMockMetricRepository()
	metricUC := usecase.NewMetricUseCase(testLogger, metricRepo)
	accountUCs := []*usecase.AccountUseCase{
		usecase.NewAccountUseCase(testLogger, infrastructure.NewMockAccountRepository(), tokens, schema.RoleUser),
		usecase.NewAccountUseCase(testLogger, infrastructure.NewMockAccountRepository(), tokens, schema.RoleAdmin),
	}
	quoteUC := usecase.NewQuoteUseCase(testLogger, infrastructure.NewMockQuoteRepository())
	dbAdapter := infrastructure.NewMockDatabaseAdapter()
	authMock := auth.NewMock()

	a := InitAPI(metricUC, accountUCs, quoteUC, dbAdapter, authMock, testLogger)
	router := mux.NewRouter()
	a.SetHandlers("", router)

	return &testStack{
		router:     router,
		metricRepo: metricRepo,
		authMock:   authMock,
		dbAdapter:  dbAdapter,
	}
}

func (s *testStack) request(method string, target string, body string, withToken bool) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if withToken {
		req.Header.Set("Authorization", "Bearer test-token")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

func TestStatusOK(t *testing.T) {
	s := newTestStack(t)

	rec := s.request(http.MethodGet, "/status", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"code":200,"reason":"OK"}`, rec.Body.String())
}

func TestStatusKO(t *testing.T) {
	s := newTestStack(t)
	s.dbAdapter.EnablePingError()

	rec := s.request(http.MethodGet, "/status", "", false)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":500,"reason":"KO"}`, rec.Body.String())
}

func TestTrackerRoutesRequireToken(t *testing.T) {
	s := newTestStack(t)

	rec := s.request(http.MethodGet, "/api/metrics/sleep", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeBody(t, rec)["code"])
}

func TestTrackerRoutesInvalidToken(t *testing.T) {
	s := newTestStack(t)
	s.authMock.Unauthorized = true

	rec := s.request(http.MethodGet, "/api/metrics/sleep", "", true)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_token", decodeBody(t, rec)["code"])
	assert.Empty(t, s.metricRepo.Entries, "no store access before auth")
}

func TestCreateThenList(t *testing.T) {
	s := newTestStack(t)

	rec := s.request(http.MethodPost, "/api/metrics/sleep",
		`{"newSleepData":{"date":"2026-08-01","hoursSlept":5}}`, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decodeBody(t, rec)
	assert.Equal(t, "Sleep data saved successfully", created["message"])
	entry := created["newMetricEntry"].(map[string]interface{})
	assert.Len(t, entry["recommendations"], 7)

	rec = s.request(http.MethodGet, "/api/metrics/sleep", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decodeBody(t, rec)
	existing := listed["existingSleepData"].([]interface{})
	require.Len(t, existing, 1)
	assert.Equal(t, entry["_id"], existing[0].(map[string]interface{})["_id"])
}

func TestCreateIgnoresClientRecommendations(t *testing.T) {
	s := newTestStack(t)

	rec := s.request(http.MethodPost, "/api/metrics/mood",
		`{"newMoodData":{"moodStatus":"Sad"},"recommendations":["eat chocolate"]}`, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	entry := decodeBody(t, rec)["newMetricEntry"].(map[string]interface{})
	recommendations := entry["recommendations"].([]interface{})
	require.Len(t, recommendations, 3)
	assert.NotContains(t, recommendations, "eat chocolate")
}

func TestCreateInvalidPayload(t *testing.T) {
	s := newTestStack(t)

	rec := s.request(http.MethodPost, "/api/metrics/mood",
		`{"newMoodData":{"moodStatus":"Ecstatic"}}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_payload", decodeBody(t, rec)["code"])
}

func TestUpdateWeightRoundTrip(t *testing.T) {
	s := newTestStack(t)

	rec := s.request(http.MethodPost, "/api/metrics/weight",
		`{"newWeightData":{"date":"2026-08-01","weight":80,"note":"morning"}}`, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decodeBody(t, rec)["newMetricEntry"].(map[string]interface{})["_id"].(string)

	rec = s.request(http.MethodPut, "/api/metrics/weight?id="+id,
		`{"weightDataUpdateEntries":{"date":"2026-08-01","weight":82.5}}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, "Weight data updated successfully", body["message"])
	updated := body["updatedWeightDataEntry"].(map[string]interface{})
	weight := updated["weight"].(map[string]interface{})
	assert.Equal(t, 82.5, weight["weight"])
	// wholesale replacement, the note is gone
	assert.NotContains(t, weight, "note")
}

func TestUpdateRequiresID(t *testing.T) {
	s := newTestStack(t)

	rec := s.request(http.MethodPut, "/api/metrics/weight",
		`{"weightDataUpdateEntries":{"weight":82.5}}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOtherOwnerReadsAsNotFound(t *testing.T) {
	s := newTestStack(t)

	other, err := schema.NewMetricEntry("999999999999999999999999", schema.MetricTypeWeight,
		json.RawMessage(`{"weight":90}`))
	require.NoError(t, err)
	require.NoError(t, s.metricRepo.Create(context.Background(), other))

	rec := s.request(http.MethodPut, "/api/metrics/weight?id="+other.ID.Hex(),
		`{"weightDataUpdateEntries":{"weight":1}}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "data_not_found", decodeBody(t, rec)["code"])
}

func TestUpdateCrossTypeEndpointReadsAsNotFound(t *testing.T) {
	s := newTestStack(t)

	rec := s.request(http.MethodPost, "/api/metrics/sleep",
		`{"newSleepData":{"date":"2026-08-01","hoursSlept":7}}`, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decodeBody(t, rec)["newMetricEntry"].(map[string]interface{})["_id"].(string)

	// the owner's own sleep entry id on the weight endpoint
	rec = s.request(http.MethodPut, "/api/metrics/weight?id="+id,
		`{"weightDataUpdateEntries":{"weight":80}}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "data_not_found", decodeBody(t, rec)["code"])

	// the sleep document kept its single payload
	rec = s.request(http.MethodGet, "/api/metrics/sleep", "", true)
	existing := decodeBody(t, rec)["existingSleepData"].([]interface{})
	require.Len(t, existing, 1)
	entry := existing[0].(map[string]interface{})
	assert.NotNil(t, entry["sleep"])
	assert.NotContains(t, entry, "weight")

	rec = s.request(http.MethodDelete, "/api/metrics/weight?id="+id, "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteThenNotFound(t *testing.T) {
	s := newTestStack(t)

	rec := s.request(http.MethodPost, "/api/metrics/hydration",
		`{"newHydrationData":{"dailyWaterIntake":2000}}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody(t, rec)["newMetricEntry"].(map[string]interface{})["_id"].(string)

	rec = s.request(http.MethodDelete, "/api/metrics/hydration?id="+id, "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.request(http.MethodGet, "/api/metrics/hydration", "", true)
	listed := decodeBody(t, rec)["existingHydrationData"].([]interface{})
	assert.Empty(t, listed)

	rec = s.request(http.MethodDelete, "/api/metrics/hydration?id="+id, "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenericMetricRoutes(t *testing.T) {
	s := newTestStack(t)

	rec := s.request(http.MethodPost, "/api/metrics", `{"metricType":"steps","value":8000}`, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decodeBody(t, rec)["metric"].(map[string]interface{})["_id"].(string)

	rec = s.request(http.MethodGet, "/api/metrics?metricId="+id, "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 8000.0, decodeBody(t, rec)["metric"].(map[string]interface{})["value"])

	rec = s.request(http.MethodPut, "/api/metrics",
		fmt.Sprintf(`{"metricId":"%s","value":9000}`, id), true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.request(http.MethodDelete, "/api/metrics?metricType=steps", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, decodeBody(t, rec)["deletedCount"])

	rec = s.request(http.MethodGet, "/api/metrics", "", true)
	assert.Empty(t, decodeBody(t, rec)["metrics"])
}

func TestSummaryRequiresAdmin(t *testing.T) {
	s := newTestStack(t)

	rec := s.request(http.MethodGet, "/api/metrics/summary", "", true)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	s.authMock.Role = schema.RoleAdmin
	rec = s.request(http.MethodGet, "/api/metrics/summary", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestStack(t)

	rec := s.request(http.MethodPost, "/api/auth/user/register",
		`{"fullName":"Ada Lovelace","email":"ada@example.com","password":"secret123"}`, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	account := decodeBody(t, rec)["account"].(map[string]interface{})
	assert.NotEmpty(t, account["token"])
	assert.Equal(t, "user", account["role"])

	rec = s.request(http.MethodPost, "/api/auth/user/login",
		`{"email":"ada@example.com","password":"secret123"}`, false)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.request(http.MethodPost, "/api/auth/user/login",
		`{"email":"ada@example.com","password":"wrong"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterUnknownRole(t *testing.T) {
	s := newTestStack(t)

	rec := s.request(http.MethodPost, "/api/auth/superuser/register",
		`{"email":"ada@example.com","password":"secret123"}`, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuoteRoutes(t *testing.T) {
	s := newTestStack(t)

	rec := s.request(http.MethodPost, "/api/quotes",
		`{"text":"Walk before you run.","author":"Anonymous"}`, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decodeBody(t, rec)["quote"].(map[string]interface{})["_id"].(string)

	rec = s.request(http.MethodGet, "/api/quotes?author=anon", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["quotes"], 1)

	rec = s.request(http.MethodPut, "/api/quotes?id="+id,
		`{"text":"Run after you walk.","author":"Anonymous"}`, false)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.request(http.MethodDelete, "/api/quotes?id="+id, "", false)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.request(http.MethodDelete, "/api/quotes?id="+id, "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
