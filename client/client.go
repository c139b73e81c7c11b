package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/luminawell/luminawell-api/schema"
)

// Client is the typed HTTP client of the metrics API, used by the tracker
// state slices. It carries the bearer token of one authenticated account.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *log.Logger
}

// Error is the decoded JSON error body of a failed request.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d [%s]: %s", e.Status, e.Code, e.Message)
}

func NewClient(baseURL string, token string, logger *log.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// SetToken swaps the bearer token, e.g. after a fresh login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// List fetches every entry of the authenticated owner for one type.
func (c *Client) List(ctx context.Context, metricType schema.MetricType) ([]schema.MetricEntry, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/metrics/"+string(metricType), nil)
	if err != nil {
		return nil, err
	}
	var entries []schema.MetricEntry
	if err := decodeField(body, "existing"+metricType.Label()+"Data", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Create stores a new entry and returns the created document, including its
// server-computed recommendations.
func (c *Client) Create(ctx context.Context, metricType schema.MetricType, payload interface{}) (*schema.MetricEntry, error) {
	requestBody := map[string]interface{}{
		"new" + metricType.Label() + "Data": payload,
	}
	body, err := c.do(ctx, http.MethodPost, "/api/metrics/"+string(metricType), requestBody)
	if err != nil {
		return nil, err
	}
	var entry schema.MetricEntry
	if err := decodeField(body, "newMetricEntry", &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update replaces the typed payload of one entry wholesale.
func (c *Client) Update(ctx context.Context, metricType schema.MetricType, id string, payload interface{}) (*schema.MetricEntry, error) {
	requestBody := map[string]interface{}{
		string(metricType) + "DataUpdateEntries": payload,
	}
	body, err := c.do(ctx, http.MethodPut, "/api/metrics/"+string(metricType)+"?id="+id, requestBody)
	if err != nil {
		return nil, err
	}
	var entry schema.MetricEntry
	if err := decodeField(body, "updated"+metricType.Label()+"DataEntry", &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete removes one entry by id.
func (c *Client) Delete(ctx context.Context, metricType schema.MetricType, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/metrics/"+string(metricType)+"?id="+id, nil)
	return err
}

func (c *Client) do(ctx context.Context, method string, path string, requestBody interface{}) ([]byte, error) {
	var reader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode}
		if err := json.Unmarshal(body, apiErr); err != nil {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		c.logger.Printf("%s %s failed: %s", method, path, apiErr)
		return nil, apiErr
	}
	return body, nil
}

// decodeField extracts one named field of a response body.
func decodeField(body []byte, field string, v interface{}) error {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return err
	}
	raw, ok := wrapper[field]
	if !ok {
		return fmt.Errorf("response field %s missing", field)
	}
	return json.Unmarshal(raw, v)
}
