package api

import (
	"context"
	"encoding/json"

	"github.com/luminawell/luminawell-api/common"
	"github.com/luminawell/luminawell-api/schema"
)

type quoteBody struct {
	Text     string `json:"text"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

// getQuotes lists quotes, optionally filtered by ?id=, ?text= or ?author=.
func (a *API) getQuotes(ctx context.Context, res *common.HttpResponseWriter) error {
	query := res.URL.Query()
	filter := schema.QuoteFilter{
		ID:     query.Get("id"),
		Text:   query.Get("text"),
		Author: query.Get("author"),
	}
	quotes, detailed := a.quotes.List(ctx, filter)
	if detailed != nil {
		return res.WriteError(detailed)
	}
	return res.WriteJSON(map[string]interface{}{
		"message": "Quotes retrieved successfully",
		"quotes":  quotes,
	})
}

func (a *API) createQuote(ctx context.Context, res *common.HttpResponseWriter) error {
	var body quoteBody
	if err := json.Unmarshal(res.Body, &body); err != nil {
		detailed := errorInvalidJSON
		detailed.InternalMessage = err.Error()
		return res.WriteError(&detailed)
	}
	quote := &schema.Quote{Text: body.Text, Author: body.Author, Category: body.Category}
	if detailed := a.quotes.Create(ctx, quote); detailed != nil {
		return res.WriteError(detailed)
	}
	res.WriteHeader(201)
	return res.WriteJSON(map[string]interface{}{
		"message": "Quote saved successfully",
		"quote":   quote,
	})
}

func (a *API) updateQuote(ctx context.Context, res *common.HttpResponseWriter) error {
	id := res.URL.Query().Get("id")
	if id == "" {
		detailed := errorMissingID
		return res.WriteError(&detailed)
	}
	var body quoteBody
	if err := json.Unmarshal(res.Body, &body); err != nil {
		detailed := errorInvalidJSON
		detailed.InternalMessage = err.Error()
		return res.WriteError(&detailed)
	}
	quote := &schema.Quote{Text: body.Text, Author: body.Author, Category: body.Category}
	updated, detailed := a.quotes.Update(ctx, id, quote)
	if detailed != nil {
		return res.WriteError(detailed)
	}
	return res.WriteJSON(map[string]interface{}{
		"message": "Quote updated successfully",
		"quote":   updated,
	})
}

func (a *API) deleteQuote(ctx context.Context, res *common.HttpResponseWriter) error {
	id := res.URL.Query().Get("id")
	if id == "" {
		detailed := errorMissingID
		return res.WriteError(&detailed)
	}
	if detailed := a.quotes.Delete(ctx, id); detailed != nil {
		return res.WriteError(detailed)
	}
	return res.WriteJSON(map[string]interface{}{
		"message": "Quote deleted successfully",
	})
}
