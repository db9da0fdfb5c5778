package chart

import (
	"math"
	"sort"
	"sync"

	market "stockplus/internal/domain/entity/market"
)

// Bar times must convert to int64 exactly; 2^63 itself is out of range.
const (
	minBarTime = -(1 << 63)
	maxBarTime = 1 << 63
)

// Normalize coerces raw bars, drops bars with a time that is non-finite or
// outside the int64 range or with a non-positive close, sorts ascending and keeps the first bar per time.
func Normalize(raw []market.RawCandle) []market.Candle {
	parsed := make([]market.Candle, 0, len(raw))
	for _, r := range raw {
		t, ok := r.Time.Float()
		if !ok || t < minBarTime || t >= maxBarTime {
			continue
		}
		closePrice, ok := r.Close.Float()
		if !ok || closePrice <= 0 {
			continue
		}
		parsed = append(parsed, market.Candle{
			Time:   int64(t),
			Open:   r.Open.FloatOr(0),
			High:   r.High.FloatOr(0),
			Low:    r.Low.FloatOr(0),
			Close:  closePrice,
			Volume: r.Volume.FloatOr(0),
		})
	}

	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].Time < parsed[j].Time
	})

	out := parsed[:0]
	for i, c := range parsed {
		if i > 0 && c.Time == out[len(out)-1].Time {
			continue
		}
		out = append(out, c)
	}
	return out
}

// MovingAverage returns the simple moving average of closes over window bars.
// Bars before the first full window have no point.
func MovingAverage(candles []market.Candle, window int) []market.MAPoint {
	if window <= 0 || len(candles) < window {
		return []market.MAPoint{}
	}
	points := make([]market.MAPoint, 0, len(candles)-window+1)
	for i := window - 1; i < len(candles); i++ {
		sum := 0.0
		for _, c := range candles[i-window+1 : i+1] {
			sum += c.Close
		}
		points = append(points, market.MAPoint{Time: candles[i].Time, Value: sum / float64(window)})
	}
	return points
}

// DailyPriceTable derives one row per bar with the change against the previous
// close, newest first.
func DailyPriceTable(candles []market.Candle) []market.DailyPrice {
	rows := make([]market.DailyPrice, len(candles))
	for i, c := range candles {
		row := market.DailyPrice{
			Date:   c.Time,
			Close:  c.Close,
			Sign:   market.SignUnchanged,
			Volume: c.Volume,
		}
		if i > 0 {
			prev := candles[i-1].Close
			if prev != 0 {
				row.Change = c.Close - prev
				row.ChangeRate = row.Change / prev * 100
			}
			row.Sign = market.SignForRate(row.ChangeRate)
		}
		rows[len(candles)-1-i] = row
	}
	return rows
}

// Build produces a render-ready series from raw bars.
func Build(raw []market.RawCandle) market.Series {
	candles := Normalize(raw)
	mas := make(map[int][]market.MAPoint, len(market.MAWindows))
	for _, w := range market.MAWindows {
		mas[w] = MovingAverage(candles, w)
	}
	return market.Series{Candles: candles, MovingAverages: mas}
}

// Processor holds the last processed series and its trailing candle, the
// only bar that live ticks may mutate.
type Processor struct {
	mu      sync.Mutex
	candles []market.Candle
	mas     map[int][]market.MAPoint
}

func NewProcessor() *Processor {
	return &Processor{}
}

// Process replaces all state with the series built from raw and returns a copy.
func (p *Processor) Process(raw []market.RawCandle) market.Series {
	series := Build(raw)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.candles = series.Candles
	p.mas = series.MovingAverages
	return p.snapshotLocked()
}

// Reset drops the series, so ticks are ignored until the next Process.
func (p *Processor) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.candles = nil
	p.mas = nil
}

// ApplyTick folds price into the trailing candle. Open and time never change.
// It is a no-op without a trailing candle, for a non-finite or non-positive
// price, or while the instrument's price is only indicative.
func (p *Processor) ApplyTick(price float64, isExpected bool) (market.Candle, bool) {
	if isExpected || price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return market.Candle{}, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.candles) == 0 {
		return market.Candle{}, false
	}
	trailing := &p.candles[len(p.candles)-1]
	if price > trailing.High {
		trailing.High = price
	}
	if price < trailing.Low {
		trailing.Low = price
	}
	trailing.Close = price
	return *trailing, true
}

// Trailing returns the current trailing candle.
func (p *Processor) Trailing() (market.Candle, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.candles) == 0 {
		return market.Candle{}, false
	}
	return p.candles[len(p.candles)-1], true
}

// Series returns a copy of the current series, including tick updates.
func (p *Processor) Series() market.Series {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Processor) snapshotLocked() market.Series {
	candles := make([]market.Candle, len(p.candles))
	copy(candles, p.candles)
	mas := make(map[int][]market.MAPoint, len(p.mas))
	for w, points := range p.mas {
		cp := make([]market.MAPoint, len(points))
		copy(cp, points)
		mas[w] = cp
	}
	return market.Series{Candles: candles, MovingAverages: mas}
}
