package quote

import (
	"context"
	"math"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedProvider memoizes successful lookups of another provider for a TTL.
// Failures and non-finite prices are never cached.
type CachedProvider struct {
	next  Provider
	cache *cache.Cache
}

// NewCachedProvider wraps next with a cache whose entries live for ttl.
func NewCachedProvider(next Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{next: next, cache: cache.New(ttl, 2*ttl)}
}

// Name returns the wrapped provider's name.
func (p *CachedProvider) Name() string { return p.next.Name() }

// GetQuote returns a cached quote or fetches a fresh one.
func (p *CachedProvider) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	key := "quote:" + normalizeSymbol(symbol)
	if hit, ok := p.cache.Get(key); ok {
		q := *hit.(*Quote)
		return &q, nil
	}

	q, err := p.next.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if q != nil && !math.IsNaN(q.Price) && !math.IsInf(q.Price, 0) {
		stored := *q
		p.cache.SetDefault(key, &stored)
	}
	return q, nil
}

// GetHistory returns a cached history or fetches a fresh one.
func (p *CachedProvider) GetHistory(ctx context.Context, symbol string, r Range) (*History, error) {
	key := "history:" + normalizeSymbol(symbol) + ":" + string(r)
	if hit, ok := p.cache.Get(key); ok {
		h := *hit.(*History)
		h.Points = append([]Point(nil), h.Points...)
		return &h, nil
	}

	h, err := p.next.GetHistory(ctx, symbol, r)
	if err != nil {
		return nil, err
	}
	if h != nil {
		stored := *h
		stored.Points = append([]Point(nil), h.Points...)
		p.cache.SetDefault(key, &stored)
	}
	return h, nil
}
