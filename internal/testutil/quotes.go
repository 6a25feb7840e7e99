package testutil

import (
	"context"
	"strings"
	"time"

	"folio/internal/quote"
)

// StaticQuotes is a quote.Provider serving fixed prices. Symbols without an
// entry return quote.ErrSymbolNotFound.
type StaticQuotes map[string]StaticQuote

// StaticQuote is one fixed price and previous close.
type StaticQuote struct {
	Price         float64
	PreviousClose float64
}

// Name implements quote.Provider.
func (StaticQuotes) Name() string { return "Static" }

// GetQuote implements quote.Provider.
func (s StaticQuotes) GetQuote(_ context.Context, symbol string) (*quote.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	q, ok := s[symbol]
	if !ok {
		return nil, &quote.FetchError{Provider: "Static", Symbol: symbol, Err: quote.ErrSymbolNotFound}
	}
	prev := q.PreviousClose
	return &quote.Quote{
		Symbol:        symbol,
		Price:         q.Price,
		Currency:      "USD",
		PreviousClose: &prev,
		AsOf:          time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
	}, nil
}

// GetHistory implements quote.Provider with a flat two-point series.
func (s StaticQuotes) GetHistory(ctx context.Context, symbol string, r quote.Range) (*quote.History, error) {
	q, err := s.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return &quote.History{
		Symbol:   q.Symbol,
		Range:    r,
		Currency: q.Currency,
		Points: []quote.Point{
			{At: q.AsOf.AddDate(0, 0, -1), Price: *q.PreviousClose},
			{At: q.AsOf, Price: q.Price},
		},
	}, nil
}
