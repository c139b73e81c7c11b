package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/luminawell/luminawell-api/auth"
	"github.com/luminawell/luminawell-api/common"
	"github.com/luminawell/luminawell-api/schema"
	"github.com/luminawell/luminawell-api/usecase"
)

type (
	// API struct for the luminawell service
	API struct {
		metrics         *usecase.MetricUseCase
		accounts        map[string]*usecase.AccountUseCase
		quotes          *usecase.QuoteUseCase
		databaseAdapter usecase.DatabaseAdapter
		authClient      auth.ClientInterface
		logger          *log.Logger
	}

	apiStatus struct {
		Code   int    `json:"code"`
		Reason string `json:"reason"`
	}
)

const (
	// MetricsAPIPrefix logging prefix
	MetricsAPIPrefix = "api/metrics "
)

var (
	errorStatusCheck = common.DetailedError{Status: http.StatusInternalServerError, Code: "status_check", Message: "checking of the status endpoint showed an error"}
	errorInvalidJSON = common.DetailedError{Status: http.StatusBadRequest, Code: "invalid_json", Message: "the request body is not valid JSON"}
	errorMissingID   = common.DetailedError{Status: http.StatusBadRequest, Code: "missing_parameter", Message: "the id query parameter is required"}
)

func InitAPI(metricUC *usecase.MetricUseCase, accountUCs []*usecase.AccountUseCase, quoteUC *usecase.QuoteUseCase, dbAdapter usecase.DatabaseAdapter, authClient auth.ClientInterface, logger *log.Logger) *API {
	accounts := make(map[string]*usecase.AccountUseCase, len(accountUCs))
	for _, accountUC := range accountUCs {
		accounts[accountUC.Role()] = accountUC
	}
	return &API{
		metrics:         metricUC,
		accounts:        accounts,
		quotes:          quoteUC,
		databaseAdapter: dbAdapter,
		authClient:      authClient,
		logger:          logger,
	}
}

// SetHandlers set the API routes
func (a *API) SetHandlers(prefix string, rtr *mux.Router) {
	// Tracker routes, one set per metric type. The summary route is
	// registered first so it is never shadowed.
	rtr.HandleFunc(prefix+"/api/metrics/summary", a.middleware(a.getSummary, accessAdmin)).Methods(http.MethodGet)
	for _, metricType := range schema.TrackedMetricTypes {
		route := prefix + "/api/metrics/" + string(metricType)
		rtr.HandleFunc(route, a.middleware(a.listMetric(metricType), accessUser)).Methods(http.MethodGet)
		rtr.HandleFunc(route, a.middleware(a.createMetric(metricType), accessUser)).Methods(http.MethodPost)
		rtr.HandleFunc(route, a.middleware(a.updateMetric(metricType), accessUser)).Methods(http.MethodPut)
		rtr.HandleFunc(route, a.middleware(a.deleteMetric(metricType), accessUser)).Methods(http.MethodDelete)
	}

	// Generic loose-shape routes
	rtr.HandleFunc(prefix+"/api/metrics", a.middleware(a.getMetrics, accessUser)).Methods(http.MethodGet)
	rtr.HandleFunc(prefix+"/api/metrics", a.middleware(a.enrolMetric, accessUser)).Methods(http.MethodPost)
	rtr.HandleFunc(prefix+"/api/metrics", a.middleware(a.updateMetricValue, accessUser)).Methods(http.MethodPut)
	rtr.HandleFunc(prefix+"/api/metrics", a.middleware(a.deleteMetricsByType, accessUser)).Methods(http.MethodDelete)

	// Account routes, one set per role
	rtr.HandleFunc(prefix+"/api/auth/{role}/register", a.middleware(a.register, accessPublic)).Methods(http.MethodPost)
	rtr.HandleFunc(prefix+"/api/auth/{role}/login", a.middleware(a.login, accessPublic)).Methods(http.MethodPost)
	rtr.HandleFunc(prefix+"/api/auth/{role}/reset-password", a.middleware(a.resetPassword, accessPublic)).Methods(http.MethodPost)

	// Quote routes
	rtr.HandleFunc(prefix+"/api/quotes", a.middleware(a.getQuotes, accessPublic)).Methods(http.MethodGet)
	rtr.HandleFunc(prefix+"/api/quotes", a.middleware(a.createQuote, accessPublic)).Methods(http.MethodPost)
	rtr.HandleFunc(prefix+"/api/quotes", a.middleware(a.updateQuote, accessPublic)).Methods(http.MethodPut)
	rtr.HandleFunc(prefix+"/api/quotes", a.middleware(a.deleteQuote, accessPublic)).Methods(http.MethodDelete)

	rtr.HandleFunc("/status", a.getStatus).Methods(http.MethodGet)
}

// getStatus pings the store and reports the service health.
func (a *API) getStatus(res http.ResponseWriter, req *http.Request) {
	start := time.Now()
	s := apiStatus{Code: http.StatusOK, Reason: "OK"}
	if err := a.databaseAdapter.Ping(req.Context()); err != nil {
		errorLog := errorStatusCheck.SetInternalMessage(err)
		a.logError(&errorLog, start)
		s = apiStatus{Code: errorLog.Status, Reason: "KO"}
	}
	jsonDetails, _ := json.Marshal(s)
	res.Header().Add("content-type", "application/json")
	res.WriteHeader(s.Code)
	res.Write(jsonDetails)
}

func (a *API) logError(err *common.DetailedError, startedAt time.Time) {
	err.ID = uuid.New().String()
	a.logger.Println(MetricsAPIPrefix, fmt.Sprintf("[%s][%s] failed after [%.3f]secs with error [%s][%s] ", err.ID, err.Code, time.Since(startedAt).Seconds(), err.Message, err.InternalMessage))
}
