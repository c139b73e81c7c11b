package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminawell/luminawell-api/infrastructure"
	"github.com/luminawell/luminawell-api/schema"
)

func TestQuoteCreateAndList(t *testing.T) {
	repo := infrastructure.NewMockQuoteRepository()
	uc := NewQuoteUseCase(testLogger, repo)
	ctx := context.Background()

	quote := &schema.Quote{Text: "Walk before you run.", Author: "Anonymous"}
	require.Nil(t, uc.Create(ctx, quote))
	assert.False(t, quote.ID.IsZero())

	quotes, detailed := uc.List(ctx, schema.QuoteFilter{Author: "anon"})
	require.Nil(t, detailed)
	assert.Len(t, quotes, 1)

	quotes, detailed = uc.List(ctx, schema.QuoteFilter{Author: "someone else"})
	require.Nil(t, detailed)
	assert.Empty(t, quotes)
}

func TestQuoteCreateRequiresText(t *testing.T) {
	uc := NewQuoteUseCase(testLogger, infrastructure.NewMockQuoteRepository())

	detailed := uc.Create(context.Background(), &schema.Quote{Author: "Anonymous"})
	require.NotNil(t, detailed)
	assert.Equal(t, 400, detailed.Status)
}

func TestQuoteUpdateNotFound(t *testing.T) {
	uc := NewQuoteUseCase(testLogger, infrastructure.NewMockQuoteRepository())

	_, detailed := uc.Update(context.Background(), "aaaaaaaaaaaaaaaaaaaaaaaa", &schema.Quote{Text: "x"})
	require.NotNil(t, detailed)
	assert.Equal(t, 404, detailed.Status)
}

func TestQuoteDelete(t *testing.T) {
	repo := infrastructure.NewMockQuoteRepository()
	uc := NewQuoteUseCase(testLogger, repo)
	ctx := context.Background()

	quote := &schema.Quote{Text: "Walk before you run."}
	require.Nil(t, uc.Create(ctx, quote))

	require.Nil(t, uc.Delete(ctx, quote.ID.Hex()))

	detailed := uc.Delete(ctx, quote.ID.Hex())
	require.NotNil(t, detailed)
	assert.Equal(t, 404, detailed.Status)
}
