package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	yahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	yahooUA      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
)

// yahooWindows maps history ranges to the chart API's range and interval.
var yahooWindows = map[Range][2]string{
	Range1D: {"1d", "1d"},
	Range5D: {"5d", "1d"},
	Range1M: {"1mo", "1d"},
	Range6M: {"6mo", "1wk"},
	Range1Y: {"1y", "1wk"},
}

// yahooChartResponse is the top-level v8 chart API response.
type yahooChartResponse struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooChartResult struct {
	Meta struct {
		Symbol             string    `json:"symbol"`
		Currency           string    `json:"currency"`
		RegularMarketPrice flexFloat `json:"regularMarketPrice"`
		ChartPreviousClose flexFloat `json:"chartPreviousClose"`
		PreviousClose      flexFloat `json:"previousClose"`
		RegularMarketTime  int64     `json:"regularMarketTime"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

// YahooProvider fetches quotes and history from the Yahoo Finance chart API.
type YahooProvider struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	limiter    *rate.Limiter
}

// NewYahooProvider creates a new Yahoo Finance provider. A nil limiter
// disables rate limiting.
func NewYahooProvider(httpClient *http.Client, limiter *rate.Limiter) *YahooProvider {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &YahooProvider{httpClient: httpClient, baseURL: yahooBaseURL, limiter: limiter}
}

// Name returns the provider's display name.
func (p *YahooProvider) Name() string { return "Yahoo Finance" }

// GetQuote returns regularMarketPrice with the chart's previous close.
func (p *YahooProvider) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	result, err := p.fetchChart(ctx, symbol, "1d", "1d")
	if err != nil {
		return nil, &FetchError{Provider: p.Name(), Symbol: symbol, Err: err}
	}

	meta := result.Meta
	previous := meta.ChartPreviousClose.finitePtr()
	if previous == nil {
		previous = meta.PreviousClose.finitePtr()
	}
	asOf := time.Now().UTC()
	if meta.RegularMarketTime > 0 {
		asOf = time.Unix(meta.RegularMarketTime, 0).UTC()
	}

	q := &Quote{
		Symbol:        meta.Symbol,
		Price:         meta.RegularMarketPrice.orNaN(),
		Currency:      meta.Currency,
		PreviousClose: previous,
		AsOf:          asOf,
	}
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	return q, nil
}

// GetHistory returns closing prices for the range. Bars without a close are skipped.
func (p *YahooProvider) GetHistory(ctx context.Context, symbol string, r Range) (*History, error) {
	window, ok := yahooWindows[r]
	if !ok {
		return nil, fmt.Errorf("unsupported range %q", r)
	}

	result, err := p.fetchChart(ctx, symbol, window[0], window[1])
	if err != nil {
		return nil, &FetchError{Provider: p.Name(), Symbol: symbol, Err: err}
	}

	h := &History{Symbol: result.Meta.Symbol, Range: r, Currency: result.Meta.Currency, Points: []Point{}}
	if h.Symbol == "" {
		h.Symbol = symbol
	}
	if len(result.Indicators.Quote) == 0 {
		return h, nil
	}
	closes := result.Indicators.Quote[0].Close
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		h.Points = append(h.Points, Point{At: time.Unix(ts, 0).UTC(), Price: *closes[i]})
	}
	return h, nil
}

// fetchChart fetches a single symbol's chart.
func (p *YahooProvider) fetchChart(ctx context.Context, symbol, chartRange, interval string) (*yahooChartResult, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := p.baseURL + "/" + url.PathEscape(symbol) + "?" + url.Values{
		"range":    {chartRange},
		"interval": {interval},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrSymbolNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var chartResp yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chartResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if chartResp.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, chartResp.Chart.Error.Description)
	}
	if len(chartResp.Chart.Result) == 0 {
		return nil, ErrSymbolNotFound
	}
	return &chartResp.Chart.Result[0], nil
}
