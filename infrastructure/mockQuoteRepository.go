package infrastructure

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/luminawell/luminawell-api/schema"
)

// MockQuoteRepository is an in-memory stand-in for the quote collection.
type MockQuoteRepository struct {
	Quotes     []schema.Quote
	QueryError bool
}

func NewMockQuoteRepository() *MockQuoteRepository {
	return &MockQuoteRepository{Quotes: []schema.Quote{}}
}

func (m *MockQuoteRepository) EnableQueryError() {
	m.QueryError = true
}

func (m *MockQuoteRepository) List(ctx context.Context, filter schema.QuoteFilter) ([]schema.Quote, error) {
	if m.QueryError {
		return nil, errMockStore
	}
	quotes := []schema.Quote{}
	for _, quote := range m.Quotes {
		if filter.ID != "" && quote.ID.Hex() != filter.ID {
			continue
		}
		if filter.Text != "" && !strings.Contains(strings.ToLower(quote.Text), strings.ToLower(filter.Text)) {
			continue
		}
		if filter.Author != "" && !strings.Contains(strings.ToLower(quote.Author), strings.ToLower(filter.Author)) {
			continue
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

func (m *MockQuoteRepository) Create(ctx context.Context, quote *schema.Quote) error {
	if m.QueryError {
		return errMockStore
	}
	now := time.Now()
	quote.CreatedAt = now
	quote.UpdatedAt = now
	if quote.ID.IsZero() {
		quote.ID = primitive.NewObjectID()
	}
	m.Quotes = append(m.Quotes, *quote)
	return nil
}

func (m *MockQuoteRepository) Update(ctx context.Context, id string, quote *schema.Quote) (*schema.Quote, error) {
	if m.QueryError {
		return nil, errMockStore
	}
	for i := range m.Quotes {
		if m.Quotes[i].ID.Hex() != id {
			continue
		}
		m.Quotes[i].Text = quote.Text
		m.Quotes[i].Author = quote.Author
		m.Quotes[i].Category = quote.Category
		m.Quotes[i].UpdatedAt = time.Now()
		updated := m.Quotes[i]
		return &updated, nil
	}
	return nil, nil
}

func (m *MockQuoteRepository) Delete(ctx context.Context, id string) (int64, error) {
	if m.QueryError {
		return 0, errMockStore
	}
	for i := range m.Quotes {
		if m.Quotes[i].ID.Hex() == id {
			m.Quotes = append(m.Quotes[:i], m.Quotes[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}
