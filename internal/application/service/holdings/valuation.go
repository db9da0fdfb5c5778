package holdings

import (
	market "stockplus/internal/domain/entity/market"

	"github.com/shopspring/decimal"
)

// pricePlaces is the scale of stored average prices.
const pricePlaces = 2

var hundred = decimal.NewFromInt(100)

// Accumulate folds a buy into a position. The average price is re-derived
// from the running totals and rounded half up to two places after every buy,
// the way the backend stores it.
func Accumulate(h market.Holding, e market.TradeEntry) market.Holding {
	if h.StockCode == "" {
		h.StockCode = e.StockCode
		h.StockName = e.StockName
	}
	if h.Quantity <= 0 {
		h.Quantity = e.Quantity
		h.AvgPrice = e.Price
		return h
	}
	oldTotal := h.AvgPrice.Mul(decimal.NewFromInt(h.Quantity))
	newTotal := e.Price.Mul(decimal.NewFromInt(e.Quantity))
	qty := h.Quantity + e.Quantity
	h.AvgPrice = oldTotal.Add(newTotal).DivRound(decimal.NewFromInt(qty), pricePlaces)
	h.Quantity = qty
	return h
}

// Unwind removes a recorded buy from a position. ok is false when nothing is
// left of the position.
func Unwind(h market.Holding, e market.TradeEntry) (market.Holding, bool) {
	qty := h.Quantity - e.Quantity
	if qty <= 0 {
		return market.Holding{}, false
	}
	currentTotal := h.AvgPrice.Mul(decimal.NewFromInt(h.Quantity))
	removed := e.Price.Mul(decimal.NewFromInt(e.Quantity))
	h.AvgPrice = currentTotal.Sub(removed).DivRound(decimal.NewFromInt(qty), pricePlaces)
	h.Quantity = qty
	return h, true
}

// Aggregate rebuilds positions from trade history, in first-trade order.
func Aggregate(entries []market.TradeEntry) []market.Holding {
	index := make(map[string]int)
	out := make([]market.Holding, 0)
	for _, e := range entries {
		if e.StockCode == "" || e.Quantity <= 0 {
			continue
		}
		i, ok := index[e.StockCode]
		if !ok {
			index[e.StockCode] = len(out)
			out = append(out, Accumulate(market.Holding{}, e))
			continue
		}
		out[i] = Accumulate(out[i], e)
	}
	return out
}

// Valuate prices every holding found in prices and totals the portfolio.
// Holdings without a price are carried at cost with zero P&L.
func Valuate(holdings []market.Holding, prices map[string]decimal.Decimal) market.Portfolio {
	p := market.Portfolio{
		Positions:     make([]market.Valuation, 0, len(holdings)),
		Cost:          decimal.Zero,
		MarketValue:   decimal.Zero,
		UnrealizedPnL: decimal.Zero,
		PnLRate:       decimal.Zero,
	}
	for _, h := range holdings {
		qty := decimal.NewFromInt(h.Quantity)
		v := market.Valuation{
			Holding:       h,
			Cost:          h.AvgPrice.Mul(qty),
			UnrealizedPnL: decimal.Zero,
			PnLRate:       decimal.Zero,
		}
		if price, ok := prices[h.StockCode]; ok && price.IsPositive() {
			v.Priced = true
			v.CurrentPrice = price
			v.MarketValue = price.Mul(qty)
			v.UnrealizedPnL = v.MarketValue.Sub(v.Cost)
			v.PnLRate = rate(v.UnrealizedPnL, v.Cost)
		} else {
			v.CurrentPrice = h.AvgPrice
			v.MarketValue = v.Cost
		}
		p.Positions = append(p.Positions, v)
		p.Cost = p.Cost.Add(v.Cost)
		p.MarketValue = p.MarketValue.Add(v.MarketValue)
		p.UnrealizedPnL = p.UnrealizedPnL.Add(v.UnrealizedPnL)
	}
	p.PnLRate = rate(p.UnrealizedPnL, p.Cost)
	return p
}

func rate(pnl, cost decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return pnl.Div(cost).Mul(hundred).Round(pricePlaces)
}
