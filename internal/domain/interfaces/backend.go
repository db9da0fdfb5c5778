package interfaces

//go:generate mockgen -source=backend.go -destination=mocks/backend_mock.go -package=mocks WatchlistAPI,QuoteAPI,InsightAPI,HoldingsAPI

import (
	"context"
	"io"

	market "stockplus/internal/domain/entity/market"
)

// WatchlistAPI manages watchlist membership on the backend.
type WatchlistAPI interface {
	Watchlist(ctx context.Context, groupID int) ([]market.WatchlistEntry, error)
	AddToWatchlist(ctx context.Context, entry market.WatchlistEntry) error
	DeleteFromWatchlist(ctx context.Context, code string, groupID int) error
	DeleteGroup(ctx context.Context, groupID int) error
	SetFavorite(ctx context.Context, code string, groupID int, favorite bool) error
}

// QuoteAPI reads prices, charts and instrument data.
type QuoteAPI interface {
	Price(ctx context.Context, code string, venue market.Venue) (market.PriceSnapshot, error)
	Chart(ctx context.Context, code string, venue market.Venue, period market.Period) ([]market.RawCandle, error)
	Investors(ctx context.Context, code string, venue market.Venue) (market.InvestorTable, error)
	Search(ctx context.Context, keyword string) ([]market.SearchResult, error)
}

type InsightAPI interface {
	RecentNews(ctx context.Context) ([]market.NewsItem, error)
	MarketInsight(ctx context.Context) (string, error)
	SpecialReport(ctx context.Context) (string, error)
	Keywords(ctx context.Context) ([]market.Keyword, error)
	AddKeyword(ctx context.Context, keyword string) error
	DeleteKeyword(ctx context.Context, keyword string) error
}

type HoldingsAPI interface {
	Holdings(ctx context.Context) ([]market.Holding, error)
	TradeHistory(ctx context.Context, code string) ([]market.TradeEntry, error)
	AddTrade(ctx context.Context, trade market.TradeEntry) error
	DeleteTrade(ctx context.Context, id int64) error
}

// StreamAPI opens the backend's long-lived streaming responses. Callers own
// the returned body and must close it.
type StreamAPI interface {
	OpenPriceStream(ctx context.Context) (io.ReadCloser, error)
	OpenAnalysis(ctx context.Context, code string) (io.ReadCloser, error)
}

type Backend interface {
	WatchlistAPI
	QuoteAPI
	InsightAPI
	HoldingsAPI
	StreamAPI
}
