package chart

import (
	"sync"

	market "stockplus/internal/domain/entity/market"
	interfaces "stockplus/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Meta identifies what a View currently displays.
type Meta struct {
	Code   string        `json:"code"`
	Venue  market.Venue  `json:"venue"`
	Period market.Period `json:"period"`
}

// View binds a Processor to a renderer. Reload and Tick are serialized so a
// tick can never touch the trailing candle of a replaced series.
type View struct {
	mu       sync.Mutex
	proc     *Processor
	renderer interfaces.ChartRenderer
	meta     Meta
	logger   *logrus.Entry
}

func NewView(renderer interfaces.ChartRenderer, logger *logrus.Logger) *View {
	return &View{
		proc:     NewProcessor(),
		renderer: renderer,
		logger:   logger.WithField("component", "chart_view"),
	}
}

// Reload clears the renderer and replaces the series with one built from raw.
func (v *View) Reload(meta Meta, raw []market.RawCandle) market.Series {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.renderer.Reset()
	v.proc.Reset()
	v.meta = meta

	series := v.proc.Process(raw)
	if len(series.Candles) > 0 {
		v.renderer.SetSeries(series)
	}
	v.logger.WithFields(logrus.Fields{
		"code":    meta.Code,
		"venue":   meta.Venue,
		"period":  meta.Period,
		"raw":     len(raw),
		"candles": len(series.Candles),
	}).Debug("chart reloaded")
	return series
}

// Tick applies a live price to the trailing candle and pushes it to the renderer.
func (v *View) Tick(code string, price float64, isExpected bool) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if code != v.meta.Code {
		return false
	}
	candle, ok := v.proc.ApplyTick(price, isExpected)
	if !ok {
		return false
	}
	v.renderer.UpdateTrailing(candle)
	return true
}

// Clear empties the view.
func (v *View) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.renderer.Reset()
	v.proc.Reset()
	v.meta = Meta{}
}

func (v *View) Meta() Meta {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.meta
}

func (v *View) Series() market.Series {
	return v.proc.Series()
}

func (v *View) DailyPrices() []market.DailyPrice {
	return DailyPriceTable(v.proc.Series().Candles)
}
