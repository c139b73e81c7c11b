package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/luminawell/luminawell-api/schema"
)

// MockMetricRepository is an in-memory stand-in for the mongo repository,
// used by usecase and api tests.
type MockMetricRepository struct {
	Entries []schema.MetricEntry
	// QueryError makes every operation fail the way a broken store would.
	QueryError bool
}

func NewMockMetricRepository() *MockMetricRepository {
	return &MockMetricRepository{Entries: []schema.MetricEntry{}}
}

func (m *MockMetricRepository) EnableQueryError() {
	m.QueryError = true
}

var errMockStore = errors.New("mock store failure")

func (m *MockMetricRepository) ListByOwnerAndType(ctx context.Context, ownerID string, metricType schema.MetricType) ([]schema.MetricEntry, error) {
	if m.QueryError {
		return nil, errMockStore
	}
	entries := []schema.MetricEntry{}
	for _, entry := range m.Entries {
		if entry.OwnerID == ownerID && entry.MetricType == metricType {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (m *MockMetricRepository) ListByOwner(ctx context.Context, ownerID string) ([]schema.MetricEntry, error) {
	if m.QueryError {
		return nil, errMockStore
	}
	entries := []schema.MetricEntry{}
	for _, entry := range m.Entries {
		if entry.OwnerID == ownerID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (m *MockMetricRepository) GetByIDAndOwner(ctx context.Context, id string, ownerID string) (*schema.MetricEntry, error) {
	if m.QueryError {
		return nil, errMockStore
	}
	for i := range m.Entries {
		if m.Entries[i].ID.Hex() == id && m.Entries[i].OwnerID == ownerID {
			entry := m.Entries[i]
			return &entry, nil
		}
	}
	return nil, nil
}

func (m *MockMetricRepository) Create(ctx context.Context, entry *schema.MetricEntry) error {
	if m.QueryError {
		return errMockStore
	}
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	m.Entries = append(m.Entries, *entry)
	return nil
}

func (m *MockMetricRepository) ReplacePayload(ctx context.Context, id string, ownerID string, metricType schema.MetricType, payload interface{}) (*schema.MetricEntry, error) {
	if m.QueryError {
		return nil, errMockStore
	}
	for i := range m.Entries {
		if m.Entries[i].ID.Hex() != id || m.Entries[i].OwnerID != ownerID || m.Entries[i].MetricType != metricType {
			continue
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		if err := m.Entries[i].SetPayload(metricType, raw); err != nil {
			return nil, err
		}
		m.Entries[i].UpdatedAt = time.Now()
		entry := m.Entries[i]
		return &entry, nil
	}
	return nil, nil
}

func (m *MockMetricRepository) UpdateValue(ctx context.Context, id string, ownerID string, value interface{}) (*schema.MetricEntry, error) {
	if m.QueryError {
		return nil, errMockStore
	}
	for i := range m.Entries {
		if m.Entries[i].ID.Hex() != id || m.Entries[i].OwnerID != ownerID {
			continue
		}
		m.Entries[i].Value = value
		m.Entries[i].UpdatedAt = time.Now()
		entry := m.Entries[i]
		return &entry, nil
	}
	return nil, nil
}

func (m *MockMetricRepository) Delete(ctx context.Context, id string, ownerID string, metricType schema.MetricType) (int64, error) {
	if m.QueryError {
		return 0, errMockStore
	}
	for i := range m.Entries {
		if m.Entries[i].ID.Hex() == id && m.Entries[i].OwnerID == ownerID && m.Entries[i].MetricType == metricType {
			m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockMetricRepository) DeleteByType(ctx context.Context, ownerID string, metricType schema.MetricType) (int64, error) {
	if m.QueryError {
		return 0, errMockStore
	}
	kept := m.Entries[:0]
	var deleted int64
	for _, entry := range m.Entries {
		if entry.OwnerID == ownerID && entry.MetricType == metricType {
			deleted++
			continue
		}
		kept = append(kept, entry)
	}
	m.Entries = kept
	return deleted, nil
}

func (m *MockMetricRepository) SummarizeByType(ctx context.Context) ([]schema.MetricSummary, error) {
	if m.QueryError {
		return nil, errMockStore
	}
	type bucket struct {
		count  int64
		owners map[string]struct{}
		latest time.Time
	}
	buckets := map[schema.MetricType]*bucket{}
	for _, entry := range m.Entries {
		b, ok := buckets[entry.MetricType]
		if !ok {
			b = &bucket{owners: map[string]struct{}{}}
			buckets[entry.MetricType] = b
		}
		b.count++
		b.owners[entry.OwnerID] = struct{}{}
		if entry.UpdatedAt.After(b.latest) {
			b.latest = entry.UpdatedAt
		}
	}
	summaries := []schema.MetricSummary{}
	for _, metricType := range schema.MetricTypes {
		b, ok := buckets[metricType]
		if !ok {
			continue
		}
		summaries = append(summaries, schema.MetricSummary{
			MetricType:  metricType,
			EntryCount:  b.count,
			OwnerCount:  int64(len(b.owners)),
			LatestEntry: b.latest,
		})
	}
	return summaries, nil
}
