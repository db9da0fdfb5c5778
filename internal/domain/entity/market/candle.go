package market

// RawCandle is a chart bar as received from the backend, before coercion.
type RawCandle struct {
	Time   Number `json:"time"`
	Open   Number `json:"open"`
	High   Number `json:"high"`
	Low    Number `json:"low"`
	Close  Number `json:"close"`
	Volume Number `json:"volume"`
}

// Candle is one normalized OHLCV bar. Time is the integer bar time.
type Candle struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// Raw converts a normalized candle back to its wire shape.
func (c Candle) Raw() RawCandle {
	return RawCandle{
		Time:   NumberOf(float64(c.Time)),
		Open:   NumberOf(c.Open),
		High:   NumberOf(c.High),
		Low:    NumberOf(c.Low),
		Close:  NumberOf(c.Close),
		Volume: NumberOf(c.Volume),
	}
}

func RawCandles(candles []Candle) []RawCandle {
	out := make([]RawCandle, len(candles))
	for i, c := range candles {
		out[i] = c.Raw()
	}
	return out
}

// MAPoint is one moving-average value at a bar time.
type MAPoint struct {
	Time  int64   `json:"time"`
	Value float64 `json:"value"`
}

// MAWindows are the moving-average window sizes derived for every series.
var MAWindows = [...]int{5, 10, 20, 60}

// Series is a render-ready chart: ascending unique candles plus moving averages
// keyed by window size.
type Series struct {
	Candles        []Candle          `json:"candles"`
	MovingAverages map[int][]MAPoint `json:"movingAverages"`
}

// Trailing returns the last candle of the series.
func (s Series) Trailing() (Candle, bool) {
	if len(s.Candles) == 0 {
		return Candle{}, false
	}
	return s.Candles[len(s.Candles)-1], true
}

// DailyPrice is one row of the daily price table.
type DailyPrice struct {
	Date       int64   `json:"date"`
	Close      float64 `json:"close"`
	Change     float64 `json:"change"`
	ChangeRate float64 `json:"changeRate"`
	Sign       Sign    `json:"sign"`
	Volume     float64 `json:"volume"`
}
