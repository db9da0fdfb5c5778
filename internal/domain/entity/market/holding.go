package market

import "github.com/shopspring/decimal"

// TradeEntry is one recorded buy.
type TradeEntry struct {
	ID        int64           `json:"id,omitempty"`
	StockCode string          `json:"stockCode"`
	StockName string          `json:"stockName,omitempty"`
	TradeDate string          `json:"tradeDate"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Holding is an aggregated position.
type Holding struct {
	ID        int64           `json:"id,omitempty"`
	StockCode string          `json:"stockCode"`
	StockName string          `json:"stockName"`
	Quantity  int64           `json:"quantity"`
	AvgPrice  decimal.Decimal `json:"avgPrice"`
}

// Valuation is a holding priced at the latest market price.
type Valuation struct {
	Holding
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	Cost          decimal.Decimal `json:"cost"`
	MarketValue   decimal.Decimal `json:"marketValue"`
	UnrealizedPnL decimal.Decimal `json:"unrealizedPnl"`
	PnLRate       decimal.Decimal `json:"pnlRate"`
	Priced        bool            `json:"priced"`
}

// Portfolio totals a set of valuations.
type Portfolio struct {
	Positions     []Valuation     `json:"positions"`
	Cost          decimal.Decimal `json:"cost"`
	MarketValue   decimal.Decimal `json:"marketValue"`
	UnrealizedPnL decimal.Decimal `json:"unrealizedPnl"`
	PnLRate       decimal.Decimal `json:"pnlRate"`
}
