package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/luminawell/luminawell-api/common"
	"github.com/luminawell/luminawell-api/schema"
)

// Tracker response bodies name their fields after the metric type, e.g.
// "existingSleepData" on GET or "updatedWeightDataEntry" on PUT.

func listFieldName(t schema.MetricType) string {
	return "existing" + t.Label() + "Data"
}

func createFieldName(t schema.MetricType) string {
	return "new" + t.Label() + "Data"
}

func updateFieldName(t schema.MetricType) string {
	return "updated" + t.Label() + "DataEntry"
}

// listMetric returns every entry of the authenticated owner for one type.
func (a *API) listMetric(metricType schema.MetricType) HandlerLoggerFunc {
	return func(ctx context.Context, res *common.HttpResponseWriter) error {
		entries, detailed := a.metrics.List(ctx, res.AuthUserID, metricType)
		if detailed != nil {
			return res.WriteError(detailed)
		}
		return res.WriteJSON(map[string]interface{}{
			"message":                 fmt.Sprintf("%s data retrieved successfully", metricType.Label()),
			listFieldName(metricType): entries,
		})
	}
}

// createMetric stores a new entry and computes its recommendations. The
// payload is read from the "new<Type>Data" field; a client-provided
// recommendations field is ignored. Falls back to the whole body for bare
// payloads.
func (a *API) createMetric(metricType schema.MetricType) HandlerLoggerFunc {
	return func(ctx context.Context, res *common.HttpResponseWriter) error {
		rawPayload := trackerPayload(res.Body, createFieldName(metricType))
		if rawPayload == nil {
			detailed := errorInvalidJSON
			return res.WriteError(&detailed)
		}
		entry, detailed := a.metrics.Create(ctx, res.AuthUserID, metricType, rawPayload)
		if detailed != nil {
			return res.WriteError(detailed)
		}
		res.WriteHeader(201)
		return res.WriteJSON(map[string]interface{}{
			"message":        fmt.Sprintf("%s data saved successfully", metricType.Label()),
			"newMetricEntry": entry,
		})
	}
}

// updateMetric replaces the typed payload of the entry ?id= wholesale. The
// payload is read from "<type>DataUpdateEntries", or "new<Type>Data" as sent
// by older clients.
func (a *API) updateMetric(metricType schema.MetricType) HandlerLoggerFunc {
	return func(ctx context.Context, res *common.HttpResponseWriter) error {
		id := res.URL.Query().Get("id")
		if id == "" {
			detailed := errorMissingID
			return res.WriteError(&detailed)
		}
		rawPayload := trackerPayload(res.Body, string(metricType)+"DataUpdateEntries", createFieldName(metricType))
		if rawPayload == nil {
			detailed := errorInvalidJSON
			return res.WriteError(&detailed)
		}
		updated, detailed := a.metrics.Update(ctx, res.AuthUserID, metricType, id, rawPayload)
		if detailed != nil {
			return res.WriteError(detailed)
		}
		return res.WriteJSON(map[string]interface{}{
			"message":                   fmt.Sprintf("%s data updated successfully", metricType.Label()),
			updateFieldName(metricType): updated,
		})
	}
}

// deleteMetric removes the entry ?id= of the authenticated owner.
func (a *API) deleteMetric(metricType schema.MetricType) HandlerLoggerFunc {
	return func(ctx context.Context, res *common.HttpResponseWriter) error {
		id := res.URL.Query().Get("id")
		if id == "" {
			detailed := errorMissingID
			return res.WriteError(&detailed)
		}
		if detailed := a.metrics.Delete(ctx, res.AuthUserID, metricType, id); detailed != nil {
			return res.WriteError(detailed)
		}
		return res.WriteJSON(map[string]interface{}{
			"message": fmt.Sprintf("%s data deleted successfully", metricType.Label()),
		})
	}
}

// trackerPayload extracts the typed payload from a tracker request body,
// trying the given wrapper fields in order and falling back to the body
// itself. Returns nil when the body is not a JSON object.
func trackerPayload(body []byte, fields ...string) json.RawMessage {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil
	}
	for _, field := range fields {
		if raw, ok := wrapper[field]; ok {
			return raw
		}
	}
	return body
}

// getMetrics lists all entries of the owner, or one by ?metricId= (generic
// route).
func (a *API) getMetrics(ctx context.Context, res *common.HttpResponseWriter) error {
	if id := res.URL.Query().Get("metricId"); id != "" {
		entry, detailed := a.metrics.Get(ctx, res.AuthUserID, id)
		if detailed != nil {
			return res.WriteError(detailed)
		}
		return res.WriteJSON(map[string]interface{}{
			"message": "Metric retrieved successfully",
			"metric":  entry,
		})
	}
	entries, detailed := a.metrics.ListAll(ctx, res.AuthUserID)
	if detailed != nil {
		return res.WriteError(detailed)
	}
	return res.WriteJSON(map[string]interface{}{
		"message": "Metrics retrieved successfully",
		"metrics": entries,
	})
}

type enrolMetricBody struct {
	MetricType schema.MetricType `json:"metricType"`
	Value      interface{}       `json:"value"`
	Date       string            `json:"date"`
}

// enrolMetric stores a loose-shape document (generic route).
func (a *API) enrolMetric(ctx context.Context, res *common.HttpResponseWriter) error {
	var body enrolMetricBody
	if err := json.Unmarshal(res.Body, &body); err != nil {
		detailed := errorInvalidJSON
		detailed.InternalMessage = err.Error()
		return res.WriteError(&detailed)
	}
	entry, detailed := a.metrics.Enrol(ctx, res.AuthUserID, body.MetricType, body.Value, body.Date)
	if detailed != nil {
		return res.WriteError(detailed)
	}
	res.WriteHeader(201)
	return res.WriteJSON(map[string]interface{}{
		"message": "Metric saved successfully",
		"metric":  entry,
	})
}

type updateMetricValueBody struct {
	MetricID string      `json:"metricId"`
	Value    interface{} `json:"value"`
}

// updateMetricValue sets the loose value of a document (generic route).
func (a *API) updateMetricValue(ctx context.Context, res *common.HttpResponseWriter) error {
	var body updateMetricValueBody
	if err := json.Unmarshal(res.Body, &body); err != nil {
		detailed := errorInvalidJSON
		detailed.InternalMessage = err.Error()
		return res.WriteError(&detailed)
	}
	if body.MetricID == "" {
		detailed := errorMissingID
		return res.WriteError(&detailed)
	}
	updated, detailed := a.metrics.UpdateValue(ctx, res.AuthUserID, body.MetricID, body.Value)
	if detailed != nil {
		return res.WriteError(detailed)
	}
	return res.WriteJSON(map[string]interface{}{
		"message": "Metric updated successfully",
		"metric":  updated,
	})
}

// deleteMetricsByType removes every entry of the owner for ?metricType=
// (generic route) and reports the removed count.
func (a *API) deleteMetricsByType(ctx context.Context, res *common.HttpResponseWriter) error {
	metricType := schema.MetricType(res.URL.Query().Get("metricType"))
	if !metricType.Valid() {
		detailed := errorInvalidJSON
		detailed.Message = "a valid metricType query parameter is required"
		return res.WriteError(&detailed)
	}
	deleted, detailed := a.metrics.DeleteByType(ctx, res.AuthUserID, metricType)
	if detailed != nil {
		return res.WriteError(detailed)
	}
	return res.WriteJSON(map[string]interface{}{
		"message":      "Metrics deleted successfully",
		"deletedCount": deleted,
	})
}

// getSummary aggregates entry counts per metric type across all owners
// (admin route).
func (a *API) getSummary(ctx context.Context, res *common.HttpResponseWriter) error {
	summaries, detailed := a.metrics.Summarize(ctx)
	if detailed != nil {
		return res.WriteError(detailed)
	}
	return res.WriteJSON(map[string]interface{}{
		"message": "Metrics summary retrieved successfully",
		"summary": summaries,
	})
}
