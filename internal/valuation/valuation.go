// Package valuation turns stored positions plus live quotes into a
// portfolio summary. A symbol whose quote is missing, late or malformed is
// valued at its average cost and reported as a warning; the summary itself
// never fails because of the quote source.
package valuation

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"folio/internal/logger"
	"folio/internal/models"
	"folio/internal/quote"
)

// Warning codes and fallback strategies reported in a Summary.
const (
	WarningQuoteUnavailable = "QUOTE_UNAVAILABLE"
	FallbackUseAverageCost  = "USE_AVERAGE_COST"
)

const (
	defaultTimeout     = 5 * time.Second
	defaultConcurrency = 8
)

// Warning describes a position valued without a usable quote.
type Warning struct {
	Code             string  `json:"code"`
	Symbol           string  `json:"symbol"`
	FallbackPrice    float64 `json:"fallback_price"`
	FallbackStrategy string  `json:"fallback_strategy"`
}

// Summary is the valuation of one portfolio. Monetary figures are rounded to
// two decimals; Warnings is omitted when every quote was usable.
type Summary struct {
	PortfolioID    string    `json:"portfolio_id"`
	Currency       string    `json:"currency,omitempty"`
	TotalValue     float64   `json:"total_value"`
	InvestedValue  float64   `json:"invested_value"`
	DayChange      float64   `json:"day_change"`
	TotalGainLoss  float64   `json:"total_gain_loss"`
	PositionsCount int       `json:"positions_count"`
	Warnings       []Warning `json:"warnings,omitempty"`
}

// Options tunes quote fetching. Zero values select the defaults.
type Options struct {
	// Timeout bounds each symbol's quote lookup.
	Timeout time.Duration
	// Concurrency caps in-flight quote lookups.
	Concurrency int
}

// Aggregator computes summaries using a quote provider.
type Aggregator struct {
	provider quote.Provider
	opts     Options
	log      *zap.SugaredLogger
}

// NewAggregator creates an Aggregator over provider.
func NewAggregator(provider quote.Provider, opts Options) *Aggregator {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	return &Aggregator{provider: provider, opts: opts, log: logger.Named("valuation")}
}

// contribution is one holding's share of the totals.
type contribution struct {
	value    float64
	invested float64
	day      float64
	gain     float64
	warning  *Warning
}

// Compute values holdings. Quotes are fetched concurrently; contributions are
// folded in holding order so the result does not depend on which lookup
// finished first.
func (a *Aggregator) Compute(ctx context.Context, portfolioID string, holdings []models.Holding) Summary {
	quotes := make([]*quote.Quote, len(holdings))

	var g errgroup.Group
	g.SetLimit(a.opts.Concurrency)
	for i := range holdings {
		symbol := holdings[i].Symbol
		g.Go(func() error {
			q, err := a.fetchQuote(ctx, symbol)
			if err != nil {
				a.log.Warnw("quote unavailable, using average cost",
					"portfolio_id", portfolioID,
					"symbol", symbol,
					"error", err,
				)
				return nil
			}
			quotes[i] = q
			return nil
		})
	}
	_ = g.Wait()

	var totalValue, invested, dayChange, gainLoss float64
	var warnings []Warning
	for i := range holdings {
		c := valueHolding(holdings[i], quotes[i])
		totalValue += c.value
		invested += c.invested
		dayChange += c.day
		gainLoss += c.gain
		if c.warning != nil {
			warnings = append(warnings, *c.warning)
		}
	}

	return Summary{
		PortfolioID:    portfolioID,
		TotalValue:     Round2(totalValue),
		InvestedValue:  Round2(invested),
		DayChange:      Round2(dayChange),
		TotalGainLoss:  Round2(gainLoss),
		PositionsCount: len(holdings),
		Warnings:       warnings,
	}
}

type fetchResult struct {
	quote *quote.Quote
	err   error
}

// fetchQuote bounds one lookup by the configured timeout. A provider that
// ignores ctx or panics costs this symbol its quote and nothing more.
func (a *Aggregator) fetchQuote(ctx context.Context, symbol string) (*quote.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()

	done := make(chan fetchResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fetchResult{err: fmt.Errorf("provider panic: %v", r)}
			}
		}()
		q, err := a.provider.GetQuote(ctx, symbol)
		done <- fetchResult{quote: q, err: err}
	}()

	select {
	case res := <-done:
		return res.quote, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// usable reports whether q can price a holding of symbol.
func usable(q *quote.Quote, symbol string) bool {
	return q != nil && strings.EqualFold(q.Symbol, symbol) && isFinite(q.Price)
}

func valueHolding(h models.Holding, q *quote.Quote) contribution {
	c := contribution{invested: h.Quantity * h.AverageCost}

	if !usable(q, h.Symbol) {
		c.value = h.Quantity * h.AverageCost
		c.warning = &Warning{
			Code:             WarningQuoteUnavailable,
			Symbol:           h.Symbol,
			FallbackPrice:    h.AverageCost,
			FallbackStrategy: FallbackUseAverageCost,
		}
		return c
	}

	previousClose := q.Price
	if q.PreviousClose != nil && isFinite(*q.PreviousClose) {
		previousClose = *q.PreviousClose
	}

	c.value = h.Quantity * q.Price
	c.day = h.Quantity * (q.Price - previousClose)
	c.gain = h.Quantity * (q.Price - h.AverageCost)
	return c
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Round2 rounds v to two decimals, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
