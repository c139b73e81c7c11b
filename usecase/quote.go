package usecase

import (
	"context"
	"log"
	"net/http"

	"github.com/luminawell/luminawell-api/common"
	"github.com/luminawell/luminawell-api/schema"
)

var (
	errorQuoteStore    = common.DetailedError{Status: http.StatusInternalServerError, Code: "quote_store_error", Message: "internal server error"}
	errorQuoteNotFound = common.DetailedError{Status: http.StatusNotFound, Code: "quote_not_found", Message: "Quote not found"}
	errorQuoteText     = common.DetailedError{Status: http.StatusBadRequest, Code: "missing_field", Message: "quote text is required"}
)

// QuoteUseCase holds the motivational quote operations.
type QuoteUseCase struct {
	logger *log.Logger
	repo   QuoteRepository
}

func NewQuoteUseCase(logger *log.Logger, repo QuoteRepository) *QuoteUseCase {
	return &QuoteUseCase{
		logger: logger,
		repo:   repo,
	}
}

func (uc *QuoteUseCase) List(ctx context.Context, filter schema.QuoteFilter) ([]schema.Quote, *common.DetailedError) {
	quotes, err := uc.repo.List(ctx, filter)
	if err != nil {
		detailed := errorQuoteStore.SetInternalMessage(err)
		return nil, &detailed
	}
	if quotes == nil {
		quotes = []schema.Quote{}
	}
	return quotes, nil
}

func (uc *QuoteUseCase) Create(ctx context.Context, quote *schema.Quote) *common.DetailedError {
	if quote.Text == "" {
		detailed := errorQuoteText
		return &detailed
	}
	if err := uc.repo.Create(ctx, quote); err != nil {
		detailed := errorQuoteStore.SetInternalMessage(err)
		return &detailed
	}
	return nil
}

func (uc *QuoteUseCase) Update(ctx context.Context, id string, quote *schema.Quote) (*schema.Quote, *common.DetailedError) {
	if quote.Text == "" {
		detailed := errorQuoteText
		return nil, &detailed
	}
	updated, err := uc.repo.Update(ctx, id, quote)
	if err != nil {
		detailed := errorQuoteStore.SetInternalMessage(err)
		return nil, &detailed
	}
	if updated == nil {
		detailed := errorQuoteNotFound
		return nil, &detailed
	}
	return updated, nil
}

func (uc *QuoteUseCase) Delete(ctx context.Context, id string) *common.DetailedError {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		detailed := errorQuoteStore.SetInternalMessage(err)
		return &detailed
	}
	if deleted == 0 {
		detailed := errorQuoteNotFound
		return &detailed
	}
	return nil
}
