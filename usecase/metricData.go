package usecase

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/luminawell/luminawell-api/common"
	"github.com/luminawell/luminawell-api/schema"
)

var (
	errorRunningQuery   = common.DetailedError{Status: http.StatusInternalServerError, Code: "data_store_error", Message: "internal server error"}
	errorEntryNotFound  = common.DetailedError{Status: http.StatusNotFound, Code: "data_not_found", Message: "no entry found for the specified id"}
	errorInvalidPayload = common.DetailedError{Status: http.StatusBadRequest, Code: "invalid_payload", Message: "the submitted payload is not valid"}
)

var storeTimer = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:      "metric_store_time",
	Help:      "A histogram for metric store operation time (ms)",
	Buckets:   prometheus.LinearBuckets(5, 5, 100),
	Subsystem: "metrics",
	Namespace: "luminawell",
})

// MetricUseCase holds the owner-scoped entry operations. Every operation
// filters by the authenticated owner id; an id belonging to another owner
// reads as not found.
type MetricUseCase struct {
	logger *log.Logger
	repo   MetricRepository
}

func NewMetricUseCase(logger *log.Logger, repo MetricRepository) *MetricUseCase {
	return &MetricUseCase{
		logger: logger,
		repo:   repo,
	}
}

// timeStore tracks one store call on the request timer context, so the
// middleware log line carries the store timings, and on the prometheus
// histogram.
func timeStore(ctx context.Context, name string) func() {
	common.TimeIt(ctx, name)
	start := time.Now()
	return func() {
		common.TimeEnd(ctx, name)
		storeTimer.Observe(float64(time.Since(start).Milliseconds()))
	}
}

// List returns all entries of the owner for one metric type, in store-native
// order.
func (uc *MetricUseCase) List(ctx context.Context, ownerID string, metricType schema.MetricType) ([]schema.MetricEntry, *common.DetailedError) {
	defer timeStore(ctx, "listEntries")()
	entries, err := uc.repo.ListByOwnerAndType(ctx, ownerID, metricType)
	if err != nil {
		detailed := errorRunningQuery.SetInternalMessage(err)
		return nil, &detailed
	}
	if entries == nil {
		entries = []schema.MetricEntry{}
	}
	return entries, nil
}

// Create builds an entry from the submitted payload, computes the
// recommendation list once from that payload and stores it verbatim
// alongside the entry. Duplicate entries per day are expected time-series
// data and are not prevented.
func (uc *MetricUseCase) Create(ctx context.Context, ownerID string, metricType schema.MetricType, rawPayload json.RawMessage) (*schema.MetricEntry, *common.DetailedError) {
	entry, err := schema.NewMetricEntry(ownerID, metricType, rawPayload)
	if err != nil {
		detailed := errorInvalidPayload.SetInternalMessage(err)
		return nil, &detailed
	}
	entry.Recommendations = RecommendationsFor(metricType, rawPayload)

	defer timeStore(ctx, "createEntry")()
	if err := uc.repo.Create(ctx, entry); err != nil {
		detailed := errorRunningQuery.SetInternalMessage(err)
		return nil, &detailed
	}
	return entry, nil
}

// Update replaces the typed payload of the owner's entry wholesale.
// Recommendations are not recomputed on update.
func (uc *MetricUseCase) Update(ctx context.Context, ownerID string, metricType schema.MetricType, id string, rawPayload json.RawMessage) (*schema.MetricEntry, *common.DetailedError) {
	probe := &schema.MetricEntry{MetricType: metricType}
	if err := probe.SetPayload(metricType, rawPayload); err != nil {
		detailed := errorInvalidPayload.SetInternalMessage(err)
		return nil, &detailed
	}

	defer timeStore(ctx, "replacePayload")()
	updated, err := uc.repo.ReplacePayload(ctx, id, ownerID, metricType, probe.Payload())
	if err != nil {
		detailed := errorRunningQuery.SetInternalMessage(err)
		return nil, &detailed
	}
	if updated == nil {
		detailed := errorEntryNotFound
		return nil, &detailed
	}
	return updated, nil
}

// Delete removes the owner's entry by id. The metric type of the route is
// part of the match, so an id of another type reads as not found.
func (uc *MetricUseCase) Delete(ctx context.Context, ownerID string, metricType schema.MetricType, id string) *common.DetailedError {
	defer timeStore(ctx, "deleteEntry")()
	deleted, err := uc.repo.Delete(ctx, id, ownerID, metricType)
	if err != nil {
		detailed := errorRunningQuery.SetInternalMessage(err)
		return &detailed
	}
	if deleted == 0 {
		detailed := errorEntryNotFound
		return &detailed
	}
	return nil
}

// ListAll returns every entry of the owner regardless of type (generic
// route).
func (uc *MetricUseCase) ListAll(ctx context.Context, ownerID string) ([]schema.MetricEntry, *common.DetailedError) {
	defer timeStore(ctx, "listAllEntries")()
	entries, err := uc.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		detailed := errorRunningQuery.SetInternalMessage(err)
		return nil, &detailed
	}
	if entries == nil {
		entries = []schema.MetricEntry{}
	}
	return entries, nil
}

// Get returns one entry of the owner by id (generic route).
func (uc *MetricUseCase) Get(ctx context.Context, ownerID string, id string) (*schema.MetricEntry, *common.DetailedError) {
	defer timeStore(ctx, "getEntry")()
	entry, err := uc.repo.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		detailed := errorRunningQuery.SetInternalMessage(err)
		return nil, &detailed
	}
	if entry == nil {
		detailed := errorEntryNotFound
		return nil, &detailed
	}
	return entry, nil
}

// Enrol stores a loose-shape document (generic route): metricType, an
// opaque value and a date.
func (uc *MetricUseCase) Enrol(ctx context.Context, ownerID string, metricType schema.MetricType, value interface{}, date string) (*schema.MetricEntry, *common.DetailedError) {
	if !metricType.Valid() {
		detailed := errorInvalidPayload
		detailed.InternalMessage = "unknown metric type " + string(metricType)
		return nil, &detailed
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	entry := &schema.MetricEntry{
		OwnerID:    ownerID,
		MetricType: metricType,
		Value:      value,
		Date:       date,
	}
	defer timeStore(ctx, "enrolEntry")()
	if err := uc.repo.Create(ctx, entry); err != nil {
		detailed := errorRunningQuery.SetInternalMessage(err)
		return nil, &detailed
	}
	return entry, nil
}

// UpdateValue sets the loose value of the owner's document (generic route).
func (uc *MetricUseCase) UpdateValue(ctx context.Context, ownerID string, id string, value interface{}) (*schema.MetricEntry, *common.DetailedError) {
	defer timeStore(ctx, "updateValue")()
	updated, err := uc.repo.UpdateValue(ctx, id, ownerID, value)
	if err != nil {
		detailed := errorRunningQuery.SetInternalMessage(err)
		return nil, &detailed
	}
	if updated == nil {
		detailed := errorEntryNotFound
		return nil, &detailed
	}
	return updated, nil
}

// DeleteByType removes every loose or typed entry of the owner for a metric
// type (generic route) and returns the removed count.
func (uc *MetricUseCase) DeleteByType(ctx context.Context, ownerID string, metricType schema.MetricType) (int64, *common.DetailedError) {
	defer timeStore(ctx, "deleteByType")()
	deleted, err := uc.repo.DeleteByType(ctx, ownerID, metricType)
	if err != nil {
		detailed := errorRunningQuery.SetInternalMessage(err)
		return 0, &detailed
	}
	return deleted, nil
}

// Summarize aggregates entry counts per metric type across all owners
// (admin view).
func (uc *MetricUseCase) Summarize(ctx context.Context) ([]schema.MetricSummary, *common.DetailedError) {
	defer timeStore(ctx, "summarize")()
	summaries, err := uc.repo.SummarizeByType(ctx)
	if err != nil {
		detailed := errorRunningQuery.SetInternalMessage(err)
		return nil, &detailed
	}
	if summaries == nil {
		summaries = []schema.MetricSummary{}
	}
	return summaries, nil
}
