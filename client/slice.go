package client

import (
	"context"

	"github.com/luminawell/luminawell-api/schema"
)

// MetricSlice is the list state of one metric type: items, the loading flag
// and the last error. Every mutation refetches the list from the server
// rather than patching it locally, so the slice always reflects store state.
//
// A slice belongs to one view event loop and is not safe for concurrent use.
type MetricSlice struct {
	client     *Client
	metricType schema.MetricType

	Items   []schema.MetricEntry
	Loading bool
	Err     error
}

func NewMetricSlice(client *Client, metricType schema.MetricType) *MetricSlice {
	return &MetricSlice{
		client:     client,
		metricType: metricType,
		Items:      []schema.MetricEntry{},
	}
}

func (s *MetricSlice) MetricType() schema.MetricType {
	return s.metricType
}

// Fetch reloads the full list. A failure keeps the previous items so the
// view can offer a retry over stale data.
func (s *MetricSlice) Fetch(ctx context.Context) error {
	s.Loading = true
	s.Err = nil
	items, err := s.client.List(ctx, s.metricType)
	s.Loading = false
	if err != nil {
		s.Err = err
		return err
	}
	s.Items = items
	return nil
}

// Create stores a new entry and refetches the list.
func (s *MetricSlice) Create(ctx context.Context, payload interface{}) (*schema.MetricEntry, error) {
	s.Loading = true
	s.Err = nil
	entry, err := s.client.Create(ctx, s.metricType, payload)
	s.Loading = false
	if err != nil {
		s.Err = err
		return nil, err
	}
	if err := s.Fetch(ctx); err != nil {
		return entry, err
	}
	return entry, nil
}

// Update replaces one entry's payload and refetches the list.
func (s *MetricSlice) Update(ctx context.Context, id string, payload interface{}) (*schema.MetricEntry, error) {
	s.Loading = true
	s.Err = nil
	entry, err := s.client.Update(ctx, s.metricType, id, payload)
	s.Loading = false
	if err != nil {
		s.Err = err
		return nil, err
	}
	if err := s.Fetch(ctx); err != nil {
		return entry, err
	}
	return entry, nil
}

// Delete removes one entry and refetches the list.
func (s *MetricSlice) Delete(ctx context.Context, id string) error {
	s.Loading = true
	s.Err = nil
	err := s.client.Delete(ctx, s.metricType, id)
	s.Loading = false
	if err != nil {
		s.Err = err
		return err
	}
	return s.Fetch(ctx)
}

// Get selects one item of the slice by id.
func (s *MetricSlice) Get(id string) *schema.MetricEntry {
	for i := range s.Items {
		if s.Items[i].ID.Hex() == id {
			return &s.Items[i]
		}
	}
	return nil
}
