package pricebuffer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	market "stockplus/internal/domain/entity/market"

	"github.com/sirupsen/logrus"
)

// DefaultInterval is the flush period used when none is configured.
const DefaultInterval = 200 * time.Millisecond

var ErrEmptyPayload = errors.New("empty tick payload")

// Snapshot is the set of ticks accumulated during one flush window, keyed by
// code|venue.
type Snapshot map[string]market.Tick

// Lookup finds the tick for an instrument held on venue. The unified venue has
// no feed of its own and falls back to the primary, then the alternate venue.
// Concrete venues only match their own ticks.
func (s Snapshot) Lookup(code string, venue market.Venue) (market.Tick, bool) {
	venue = venue.OrDefault()
	if t, ok := s[market.TickKey(code, venue)]; ok {
		return t, true
	}
	if venue != market.VenueUnified {
		return market.Tick{}, false
	}
	if t, ok := s[market.TickKey(code, market.VenuePrimary)]; ok {
		return t, true
	}
	if t, ok := s[market.TickKey(code, market.VenueAlternate)]; ok {
		return t, true
	}
	return market.Tick{}, false
}

// Consumer receives every non-empty flush.
type Consumer func(Snapshot)

// Buffer coalesces ticks per code|venue and hands them to consumers on a
// fixed interval. Only the latest tick per key survives a window.
type Buffer struct {
	interval time.Duration
	logger   *logrus.Entry

	mu      sync.Mutex
	pending map[string]market.Tick

	subMu     sync.RWMutex
	consumers []Consumer
}

func New(interval time.Duration, logger *logrus.Logger) *Buffer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Buffer{
		interval: interval,
		logger:   logger.WithField("component", "price_buffer"),
		pending:  make(map[string]market.Tick),
	}
}

// Subscribe registers a consumer of flush snapshots.
func (b *Buffer) Subscribe(fn Consumer) {
	if fn == nil {
		return
	}
	b.subMu.Lock()
	defer b.subMu.Unlock()
	b.consumers = append(b.consumers, fn)
}

// Absorb inserts or overwrites the pending tick for its key. Ticks without a
// code or a parseable price are dropped.
func (b *Buffer) Absorb(t market.Tick) bool {
	if t.StockCode == "" {
		return false
	}
	if _, ok := t.CurrentPrice.Float(); !ok {
		return false
	}
	b.mu.Lock()
	b.pending[t.Key()] = t
	b.mu.Unlock()
	return true
}

// AbsorbPayload decodes a JSON tick object or array and absorbs every valid
// tick. Malformed payloads are dropped.
func (b *Buffer) AbsorbPayload(raw []byte) int {
	ticks, err := DecodeTicks(raw)
	if err != nil {
		b.logger.WithError(err).Debug("dropped malformed tick payload")
		return 0
	}
	absorbed := 0
	for _, t := range ticks {
		if b.Absorb(t) {
			absorbed++
		}
	}
	return absorbed
}

// Pending reports the number of distinct keys waiting for the next flush.
func (b *Buffer) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Flush swaps out the accumulated ticks and delivers them to consumers.
// An empty window is a no-op and returns nil.
func (b *Buffer) Flush() Snapshot {
	b.mu.Lock()
	if len(b.pending) == 0 {
		b.mu.Unlock()
		return nil
	}
	snapshot := Snapshot(b.pending)
	b.pending = make(map[string]market.Tick, len(snapshot))
	b.mu.Unlock()

	b.subMu.RLock()
	consumers := make([]Consumer, len(b.consumers))
	copy(consumers, b.consumers)
	b.subMu.RUnlock()

	start := time.Now()
	for _, fn := range consumers {
		fn(snapshot)
	}
	b.logger.WithFields(logrus.Fields{
		"size":    len(snapshot),
		"took_ms": time.Since(start).Milliseconds(),
	}).Trace("flushed ticks")
	return snapshot
}

// Run flushes on every interval until ctx is done.
func (b *Buffer) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Flush()
		}
	}
}

// DecodeTicks accepts a single tick object or an array of ticks.
func DecodeTicks(raw []byte) ([]market.Tick, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, ErrEmptyPayload
	}
	if raw[0] == '[' {
		var ticks []market.Tick
		if err := json.Unmarshal(raw, &ticks); err != nil {
			return nil, err
		}
		return ticks, nil
	}
	var tick market.Tick
	if err := json.Unmarshal(raw, &tick); err != nil {
		return nil, err
	}
	return []market.Tick{tick}, nil
}
