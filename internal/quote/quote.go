// Package quote defines the market-data provider contract and its
// implementations: a deterministic stub, a generic REST provider, Yahoo
// Finance, and a caching decorator.
package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Quote is the latest known price for a symbol.
// PreviousClose is nil when the provider does not report one.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Currency      string    `json:"currency,omitempty"`
	PreviousClose *float64  `json:"previous_close,omitempty"`
	AsOf          time.Time `json:"as_of"`
}

// Point is one historical price observation.
type Point struct {
	At    time.Time `json:"at"`
	Price float64   `json:"price"`
}

// History is a price series for a symbol over a range, oldest point first.
type History struct {
	Symbol   string  `json:"symbol"`
	Range    Range   `json:"range"`
	Currency string  `json:"currency,omitempty"`
	Points   []Point `json:"points"`
}

// Range selects the window of a price history.
type Range string

const (
	Range1D Range = "1D"
	Range5D Range = "5D"
	Range1M Range = "1M"
	Range6M Range = "6M"
	Range1Y Range = "1Y"
)

// SupportedRanges lists the accepted history ranges, shortest first.
var SupportedRanges = []Range{Range1D, Range5D, Range1M, Range6M, Range1Y}

// ParseRange normalizes s and reports whether it names a supported range.
func ParseRange(s string) (Range, bool) {
	r := Range(strings.ToUpper(strings.TrimSpace(s)))
	for _, supported := range SupportedRanges {
		if r == supported {
			return r, true
		}
	}
	return "", false
}

// Provider fetches quotes and price history for ticker symbols.
// Implementations must honor ctx cancellation.
type Provider interface {
	// Name returns the provider's display name.
	Name() string

	GetQuote(ctx context.Context, symbol string) (*Quote, error)
	GetHistory(ctx context.Context, symbol string, r Range) (*History, error)
}

// ErrSymbolNotFound is returned when a provider has no data for a symbol.
var ErrSymbolNotFound = errors.New("symbol not found")

// FetchError represents a failed lookup for a specific symbol.
type FetchError struct {
	Provider string
	Symbol   string
	Err      error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: failed to fetch %s: %v", e.Provider, e.Symbol, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error { return e.Err }

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
