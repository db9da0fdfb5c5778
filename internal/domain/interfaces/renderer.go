package interfaces

import market "stockplus/internal/domain/entity/market"

// ChartRenderer is the capability surface of the external charting engine.
// It owns drawing, crosshair, zoom and resize; callers only feed it data.
type ChartRenderer interface {
	Reset()
	SetSeries(series market.Series)
	UpdateTrailing(candle market.Candle)
}
