package pricebuffer

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	market "stockplus/internal/domain/entity/market"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestBuffer(interval time.Duration) *Buffer {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(interval, logger)
}

func tick(code, venue, price string) market.Tick {
	return market.Tick{StockCode: code, ExchangeCode: venue, CurrentPrice: market.Number(price)}
}

func TestFlush_LastWriteWins(t *testing.T) {
	buf := newTestBuffer(time.Hour)

	var got []Snapshot
	buf.Subscribe(func(s Snapshot) { got = append(got, s) })

	require.True(t, buf.Absorb(tick("005930", "J", "70000")))
	require.True(t, buf.Absorb(tick("005930", "J", "70100")))
	require.Equal(t, 1, buf.Pending(), "same key must coalesce")

	snapshot := buf.Flush()
	require.Len(t, got, 1)
	require.Len(t, snapshot, 1)
	require.Equal(t, market.Number("70100"), got[0]["005930|J"].CurrentPrice)
	require.Zero(t, buf.Pending(), "flush must reset the buffer")
}

func TestFlush_EmptyIsNoop(t *testing.T) {
	buf := newTestBuffer(time.Hour)
	calls := 0
	buf.Subscribe(func(Snapshot) { calls++ })

	require.Nil(t, buf.Flush())
	require.Zero(t, calls, "empty flush must not reach consumers")
}

func TestAbsorb_DefaultsVenueAndKeepsVenuesApart(t *testing.T) {
	buf := newTestBuffer(time.Hour)
	buf.Absorb(tick("005930", "", "1"))
	buf.Absorb(tick("005930", "NX", "2"))

	snapshot := buf.Flush()
	require.Len(t, snapshot, 2)
	require.Contains(t, snapshot, "005930|J")
	require.Contains(t, snapshot, "005930|NX")
}

func TestAbsorbPayload(t *testing.T) {
	buf := newTestBuffer(time.Hour)

	require.Equal(t, 1, buf.AbsorbPayload([]byte(`{"stockCode":"000660","exchangeCode":"J","currentPrice":"180000","change":"-500","changeRate":"-0.28"}`)))
	require.Equal(t, 2, buf.AbsorbPayload([]byte(`[{"stockCode":"005930","currentPrice":70000},{"stockCode":"035420","exchangeCode":"NX","currentPrice":"201500"}]`)))
	require.Zero(t, buf.AbsorbPayload([]byte(`{not json`)))
	require.Zero(t, buf.AbsorbPayload([]byte(`   `)))
	require.Zero(t, buf.AbsorbPayload([]byte(`{"stockCode":"005930","currentPrice":"n/a"}`)), "unparseable price is dropped")
	require.Zero(t, buf.AbsorbPayload([]byte(`{"currentPrice":"1"}`)), "tick without code is dropped")

	require.Equal(t, 3, buf.Pending())
}

func TestSnapshotLookup_VenueFallback(t *testing.T) {
	snapshot := Snapshot{
		"005930|J":  tick("005930", "J", "70000"),
		"000660|NX": tick("000660", "NX", "180000"),
	}

	got, ok := snapshot.Lookup("005930", market.VenueUnified)
	require.True(t, ok)
	require.Equal(t, market.Number("70000"), got.CurrentPrice)

	got, ok = snapshot.Lookup("000660", market.VenueUnified)
	require.True(t, ok, "unified falls back to the alternate venue")
	require.Equal(t, market.Number("180000"), got.CurrentPrice)

	_, ok = snapshot.Lookup("005930", market.VenueAlternate)
	require.False(t, ok, "a concrete venue must not accept the other venue's tick")

	_, ok = snapshot.Lookup("000660", market.VenuePrimary)
	require.False(t, ok)
}

func TestSnapshotLookup_UnifiedPrefersPrimary(t *testing.T) {
	snapshot := Snapshot{
		"005930|J":  tick("005930", "J", "1"),
		"005930|NX": tick("005930", "NX", "2"),
	}
	got, ok := snapshot.Lookup("005930", market.VenueUnified)
	require.True(t, ok)
	require.Equal(t, market.Number("1"), got.CurrentPrice)
}

func TestRun_FlushesOnInterval(t *testing.T) {
	buf := newTestBuffer(10 * time.Millisecond)

	var mu sync.Mutex
	var seen []Snapshot
	buf.Subscribe(func(s Snapshot) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go buf.Run(ctx)

	buf.Absorb(tick("005930", "J", "70000"))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestConcurrentAbsorbAndFlush(t *testing.T) {
	buf := newTestBuffer(time.Hour)
	var mu sync.Mutex
	total := 0
	buf.Subscribe(func(s Snapshot) {
		mu.Lock()
		total += len(s)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	codes := []string{"A", "B", "C", "D"}
	for _, code := range codes {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				buf.Absorb(tick(code, "J", "1"))
				if i%50 == 0 {
					buf.Flush()
				}
			}
		}(code)
	}
	wg.Wait()
	buf.Flush()

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, total, len(codes))
}
