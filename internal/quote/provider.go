package quote

import (
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"folio/internal/config"
	"folio/internal/logger"
)

// Provider names accepted in STOCK_PROVIDER.
const (
	ProviderStub  = "stub"
	ProviderLive  = "live"
	ProviderYahoo = "yahoo"
)

// New builds the provider selected by cfg.StockProvider. Remote providers are
// rate limited and, when QuoteCacheTTL > 0, cached. Unknown names fall back
// to the stub.
func New(cfg *config.Config, httpClient *http.Client) (Provider, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.QuoteTimeout}
	}

	var limiter *rate.Limiter
	if cfg.QuoteRateLimit > 0 {
		burst := int(cfg.QuoteRateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.QuoteRateLimit), burst)
	}

	var remote Provider
	switch name := strings.ToLower(strings.TrimSpace(cfg.StockProvider)); name {
	case ProviderLive:
		live, err := NewLiveProvider(httpClient, cfg.StockAPIBaseURL, cfg.StockAPIKey, limiter)
		if err != nil {
			return nil, err
		}
		remote = live
	case ProviderYahoo:
		remote = NewYahooProvider(httpClient, limiter)
	case ProviderStub, "":
		return NewStubProvider(), nil
	default:
		logger.Named("quote").Warnw("unknown stock provider, using stub", "provider", name)
		return NewStubProvider(), nil
	}

	if cfg.QuoteCacheTTL > 0 {
		return NewCachedProvider(remote, cfg.QuoteCacheTTL), nil
	}
	return remote, nil
}
