package render

import (
	"sync"

	market "stockplus/internal/domain/entity/market"
	interfaces "stockplus/internal/domain/interfaces"
)

const (
	FrameReset  = "chart.reset"
	FrameSeries = "chart.series"
	FrameUpdate = "chart.update"
)

// Frame is one chart instruction sent to browser renderers.
type Frame struct {
	Type   string         `json:"type"`
	Series *market.Series `json:"series,omitempty"`
	Candle *market.Candle `json:"candle,omitempty"`
}

// Broadcaster delivers frames to connected renderers.
type Broadcaster interface {
	Broadcast(v any)
}

// FramePublisher drives remote chart renderers. It remembers the current
// series so late joiners can be brought up to date.
type FramePublisher struct {
	out Broadcaster

	mu     sync.RWMutex
	series *market.Series
}

var _ interfaces.ChartRenderer = (*FramePublisher)(nil)

func NewFramePublisher(out Broadcaster) *FramePublisher {
	return &FramePublisher{out: out}
}

func (p *FramePublisher) Reset() {
	p.mu.Lock()
	p.series = nil
	p.mu.Unlock()
	p.out.Broadcast(Frame{Type: FrameReset})
}

func (p *FramePublisher) SetSeries(series market.Series) {
	p.mu.Lock()
	p.series = &series
	p.mu.Unlock()
	p.out.Broadcast(Frame{Type: FrameSeries, Series: &series})
}

func (p *FramePublisher) UpdateTrailing(candle market.Candle) {
	p.mu.Lock()
	if p.series != nil && len(p.series.Candles) > 0 {
		candles := append([]market.Candle(nil), p.series.Candles...)
		candles[len(candles)-1] = candle
		p.series = &market.Series{Candles: candles, MovingAverages: p.series.MovingAverages}
	}
	p.mu.Unlock()
	p.out.Broadcast(Frame{Type: FrameUpdate, Candle: &candle})
}

// Current returns the frames that rebuild the present chart state.
func (p *FramePublisher) Current() []any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	frames := []any{Frame{Type: FrameReset}}
	if p.series != nil {
		frames = append(frames, Frame{Type: FrameSeries, Series: p.series})
	}
	return frames
}
