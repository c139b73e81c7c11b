package usecase

import (
	"context"

	"github.com/luminawell/luminawell-api/schema"
)

type MetricRepository interface {
	ListByOwnerAndType(ctx context.Context, ownerID string, metricType schema.MetricType) ([]schema.MetricEntry, error)
	ListByOwner(ctx context.Context, ownerID string) ([]schema.MetricEntry, error)
	// GetByIDAndOwner returns nil, nil when no document matches both keys.
	GetByIDAndOwner(ctx context.Context, id string, ownerID string) (*schema.MetricEntry, error)
	Create(ctx context.Context, entry *schema.MetricEntry) error
	// ReplacePayload swaps the typed payload of the owner's document
	// wholesale and returns the updated document, or nil, nil on a miss.
	// The metric type is part of the match: an id of another type misses.
	ReplacePayload(ctx context.Context, id string, ownerID string, metricType schema.MetricType, payload interface{}) (*schema.MetricEntry, error)
	// UpdateValue sets the loose value field of the owner's document and
	// returns the updated document, or nil, nil on a miss.
	UpdateValue(ctx context.Context, id string, ownerID string, value interface{}) (*schema.MetricEntry, error)
	// Delete returns the number of documents removed.
	Delete(ctx context.Context, id string, ownerID string, metricType schema.MetricType) (int64, error)
	DeleteByType(ctx context.Context, ownerID string, metricType schema.MetricType) (int64, error)
	SummarizeByType(ctx context.Context) ([]schema.MetricSummary, error)
}

type AccountRepository interface {
	// FindByEmail returns nil, nil when the email is not registered.
	FindByEmail(ctx context.Context, email string) (*schema.Account, error)
	Create(ctx context.Context, account *schema.Account) error
	// UpdatePassword reports whether an account was updated.
	UpdatePassword(ctx context.Context, email string, passwordHash string) (bool, error)
}

type QuoteRepository interface {
	List(ctx context.Context, filter schema.QuoteFilter) ([]schema.Quote, error)
	Create(ctx context.Context, quote *schema.Quote) error
	// Update returns the updated quote, or nil, nil on a miss.
	Update(ctx context.Context, id string, quote *schema.Quote) (*schema.Quote, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// DatabaseAdapter is what the status route needs from the store.
type DatabaseAdapter interface {
	Ping(ctx context.Context) error
}
