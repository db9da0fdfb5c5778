package market

import "fmt"

// GroupCount is the number of fixed watchlist slots per user.
const GroupCount = 4

// ValidGroup reports whether id names one of the watchlist slots.
func ValidGroup(id int) bool {
	return id >= 1 && id <= GroupCount
}

// ChartData is chart state attached to an instrument. It survives watchlist
// reloads for symbols that persist.
type ChartData struct {
	Raw    []RawCandle `json:"-"`
	Period Period      `json:"period,omitempty"`
	Venue  Venue       `json:"venue,omitempty"`
}

// Loaded reports whether chart data was fetched at least once.
func (c ChartData) Loaded() bool {
	return c.Period != ""
}

// Instrument is a watched stock merged with its latest price snapshot.
type Instrument struct {
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Venue        Venue     `json:"exchangeCode"`
	GroupID      int       `json:"groupId"`
	Favorite     bool      `json:"isFavorite"`
	Price        float64   `json:"price"`
	Change       float64   `json:"change"`
	ChangeRate   float64   `json:"changeRate"`
	Sign         Sign      `json:"priceSign"`
	Open         float64   `json:"open"`
	High         float64   `json:"high"`
	Low          float64   `json:"low"`
	PrevClose    float64   `json:"prevClose"`
	Volume       float64   `json:"volume"`
	MarketCap    float64   `json:"marketCap"`
	ListedShares float64   `json:"listedShares"`
	High52w      float64   `json:"high52w"`
	Low52w       float64   `json:"low52w"`
	IsExpected   bool      `json:"isExpected"`
	Chart        ChartData `json:"chart"`
}

func (i Instrument) Key() string {
	return TickKey(i.Code, i.Venue)
}

// ApplyTick copies price, change and change rate from t.
func (i *Instrument) ApplyTick(t Tick) {
	i.Price = t.CurrentPrice.FloatOr(0)
	i.Change = t.Change.FloatOr(0)
	i.ChangeRate = t.ChangeRate.FloatOr(0)
}

// ApplySnapshot merges a price snapshot; unparseable fields fall back to zero.
func (i *Instrument) ApplySnapshot(p PriceSnapshot) {
	i.Price = p.CurrentPrice.FloatOr(0)
	i.Change = p.Change.FloatOr(0)
	i.ChangeRate = p.ChangeRate.FloatOr(0)
	i.Sign = Sign(p.PriceSign).OrDefault()
	i.Open = p.Open.FloatOr(0)
	i.High = p.High.FloatOr(0)
	i.Low = p.Low.FloatOr(0)
	i.PrevClose = p.PrevClose.FloatOr(0)
	i.Volume = p.Volume.FloatOr(0)
	i.MarketCap = p.MarketCap.FloatOr(0)
	i.ListedShares = p.ListedShares.FloatOr(0)
	i.High52w = p.High52w.FloatOr(0)
	i.Low52w = p.Low52w.FloatOr(0)
	i.IsExpected = p.IsExpected
}

// WatchlistEntry is one membership row returned by the backend.
type WatchlistEntry struct {
	StockCode    string `json:"stockCode"`
	StockName    string `json:"stockName"`
	ExchangeCode string `json:"exchangeCode,omitempty"`
	GroupID      int    `json:"groupId,omitempty"`
	IsFavorite   bool   `json:"isFavorite"`
}

// PriceSnapshot is the backend's current price document.
type PriceSnapshot struct {
	CurrentPrice Number `json:"currentPrice"`
	Change       Number `json:"change"`
	ChangeRate   Number `json:"changeRate"`
	PriceSign    string `json:"priceSign"`
	Volume       Number `json:"volume"`
	Open         Number `json:"open"`
	High         Number `json:"high"`
	Low          Number `json:"low"`
	PrevClose    Number `json:"prevClose"`
	MarketCap    Number `json:"marketCap"`
	ListedShares Number `json:"listedShares"`
	High52w      Number `json:"high52w"`
	Low52w       Number `json:"low52w"`
	IsExpected   bool   `json:"isExpected"`
}

// SearchResult is a stock search hit.
type SearchResult struct {
	StockCode    string `json:"stockCode"`
	StockName    string `json:"stockName"`
	MarketType   string `json:"marketType"`
	ExchangeCode string `json:"exchangeCode"`
}

// InvestorFlow is one day of net buying by investor class.
type InvestorFlow struct {
	Date           string `json:"date"`
	Price          Number `json:"price"`
	Change         Number `json:"change"`
	RetailNet      Number `json:"retailNet"`
	ForeignNet     Number `json:"foreignNet"`
	InstitutionNet Number `json:"institutionNet"`
}

type InvestorTable struct {
	Items []InvestorFlow `json:"items"`
}

// Tick is one streamed price update for a symbol and venue.
type Tick struct {
	StockCode    string `json:"stockCode"`
	ExchangeCode string `json:"exchangeCode"`
	CurrentPrice Number `json:"currentPrice"`
	Change       Number `json:"change"`
	ChangeRate   Number `json:"changeRate"`
}

func (t Tick) Venue() Venue {
	return Venue(t.ExchangeCode).OrDefault()
}

func (t Tick) Key() string {
	return TickKey(t.StockCode, t.Venue())
}

// TickKey renders the buffer key for a symbol on a venue.
func TickKey(code string, venue Venue) string {
	return fmt.Sprintf("%s|%s", code, venue.OrDefault())
}
