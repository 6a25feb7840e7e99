package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// LiveProvider reads quotes from a REST market-data API exposing
// GET /quote?symbol=&token= and GET /history?symbol=&range=&token=.
type LiveProvider struct {
	httpClient *http.Client
	baseURL    *url.URL
	apiKey     string
	limiter    *rate.Limiter
	now        func() time.Time
}

type liveQuotePayload struct {
	Symbol        string    `json:"symbol"`
	Price         flexFloat `json:"price"`
	Currency      string    `json:"currency"`
	PreviousClose flexFloat `json:"previousClose"`
	AsOf          string    `json:"asOf"`
}

type liveHistoryPayload struct {
	Symbol   string `json:"symbol"`
	Currency string `json:"currency"`
	Points   []struct {
		At    string    `json:"at"`
		Price flexFloat `json:"price"`
	} `json:"points"`
}

// NewLiveProvider creates a LiveProvider. Both baseURL and apiKey are required.
// A nil limiter disables rate limiting.
func NewLiveProvider(httpClient *http.Client, baseURL, apiKey string, limiter *rate.Limiter) (*LiveProvider, error) {
	if baseURL == "" || apiKey == "" {
		return nil, errors.New("live stock provider requires STOCK_API_BASE_URL and STOCK_API_KEY")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid STOCK_API_BASE_URL %q", baseURL)
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &LiveProvider{
		httpClient: httpClient,
		baseURL:    parsed,
		apiKey:     apiKey,
		limiter:    limiter,
		now:        time.Now,
	}, nil
}

// Name returns the provider's display name.
func (p *LiveProvider) Name() string { return "Live" }

// GetQuote fetches the latest quote. A missing or non-numeric price comes
// back as NaN rather than an error.
func (p *LiveProvider) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	var payload liveQuotePayload
	if err := p.fetchJSON(ctx, "/quote", url.Values{"symbol": {symbol}}, &payload); err != nil {
		return nil, &FetchError{Provider: p.Name(), Symbol: symbol, Err: err}
	}

	q := &Quote{
		Symbol:        payload.Symbol,
		Price:         payload.Price.orNaN(),
		Currency:      payload.Currency,
		PreviousClose: payload.PreviousClose.finitePtr(),
		AsOf:          parseTimestamp(payload.AsOf, p.now()),
	}
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	if q.Currency == "" {
		q.Currency = "USD"
	}
	return q, nil
}

// GetHistory fetches a price series. Points with unreadable timestamps or
// prices are dropped.
func (p *LiveProvider) GetHistory(ctx context.Context, symbol string, r Range) (*History, error) {
	var payload liveHistoryPayload
	params := url.Values{"symbol": {symbol}, "range": {string(r)}}
	if err := p.fetchJSON(ctx, "/history", params, &payload); err != nil {
		return nil, &FetchError{Provider: p.Name(), Symbol: symbol, Err: err}
	}

	h := &History{
		Symbol:   payload.Symbol,
		Range:    r,
		Currency: payload.Currency,
		Points:   make([]Point, 0, len(payload.Points)),
	}
	if h.Symbol == "" {
		h.Symbol = symbol
	}
	if h.Currency == "" {
		h.Currency = "USD"
	}
	for _, pt := range payload.Points {
		at, err := time.Parse(time.RFC3339Nano, pt.At)
		price := pt.Price.finitePtr()
		if err != nil || price == nil {
			continue
		}
		h.Points = append(h.Points, Point{At: at.UTC(), Price: *price})
	}
	return h, nil
}

func (p *LiveProvider) fetchJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	u := p.baseURL.ResolveReference(&url.URL{Path: path})
	params.Set("token", p.apiKey)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ErrSymbolNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("live stock provider request failed with status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
