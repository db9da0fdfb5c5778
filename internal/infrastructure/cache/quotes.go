package cache

import (
	"context"

	market "stockplus/internal/domain/entity/market"
	interfaces "stockplus/internal/domain/interfaces"
)

// CachedQuotes serves chart bars from the cache and delegates everything
// else to the wrapped quote source. Intraday charts are never cached.
type CachedQuotes struct {
	interfaces.QuoteAPI
	charts *ChartCache
}

var _ interfaces.QuoteAPI = (*CachedQuotes)(nil)

func NewCachedQuotes(next interfaces.QuoteAPI, charts *ChartCache) *CachedQuotes {
	return &CachedQuotes{QuoteAPI: next, charts: charts}
}

func (q *CachedQuotes) Chart(ctx context.Context, code string, venue market.Venue, period market.Period) ([]market.RawCandle, error) {
	if period.IsIntraday() {
		return q.QuoteAPI.Chart(ctx, code, venue, period)
	}
	key := ChartKey(code, venue, period)
	if bars, ok := q.charts.Get(ctx, key); ok {
		return bars, nil
	}
	bars, err := q.QuoteAPI.Chart(ctx, code, venue, period)
	if err != nil {
		return nil, err
	}
	if len(bars) > 0 {
		q.charts.Set(ctx, key, bars)
	}
	return bars, nil
}
