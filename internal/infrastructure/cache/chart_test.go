package cache

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	market "stockplus/internal/domain/entity/market"
	"stockplus/internal/domain/interfaces/mocks"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestCache(t *testing.T) *ChartCache {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	c, err := NewChartCache(1<<20, time.Minute, nil, logger)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func bars(closes ...string) []market.RawCandle {
	out := make([]market.RawCandle, len(closes))
	for i, v := range closes {
		out[i] = market.RawCandle{Time: market.NumberOf(float64(20240101 + i)), Close: market.Number(v)}
	}
	return out
}

func TestChartKey(t *testing.T) {
	require.Equal(t, "chart:005930:J:1D", ChartKey("005930", "", market.PeriodDay))
	require.Equal(t, "chart:005930:NX:1W", ChartKey("005930", market.VenueAlternate, market.PeriodWeek))
}

func TestChartCache_LocalTier(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	key := ChartKey("005930", market.VenuePrimary, market.PeriodDay)

	_, ok := c.Get(ctx, key)
	require.False(t, ok)

	c.Set(ctx, key, bars("100", "101"))
	c.Wait()
	got, ok := c.Get(ctx, key)
	require.True(t, ok)
	require.Equal(t, bars("100", "101"), got)

	c.Invalidate(ctx, key)
	_, ok = c.Get(ctx, key)
	require.False(t, ok)
}

func TestCachedQuotes_Chart(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockQuoteAPI(ctrl)
	c := newTestCache(t)
	q := NewCachedQuotes(next, c)
	ctx := context.Background()

	next.EXPECT().Chart(gomock.Any(), "005930", market.VenuePrimary, market.PeriodDay).Return(bars("100"), nil).Times(1)
	got, err := q.Chart(ctx, "005930", market.VenuePrimary, market.PeriodDay)
	require.NoError(t, err)
	require.Equal(t, bars("100"), got)

	c.Wait()
	got, err = q.Chart(ctx, "005930", market.VenuePrimary, market.PeriodDay)
	require.NoError(t, err)
	require.Equal(t, bars("100"), got)
}

func TestCachedQuotes_IntradayAndErrorsBypassCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockQuoteAPI(ctrl)
	c := newTestCache(t)
	q := NewCachedQuotes(next, c)
	ctx := context.Background()

	next.EXPECT().Chart(gomock.Any(), "005930", market.VenuePrimary, market.PeriodFiveMinutes).Return(bars("1"), nil).Times(2)
	for range 2 {
		_, err := q.Chart(ctx, "005930", market.VenuePrimary, market.PeriodFiveMinutes)
		require.NoError(t, err)
		c.Wait()
	}

	next.EXPECT().Chart(gomock.Any(), "000660", market.VenuePrimary, market.PeriodMonth).Return(nil, errors.New("502"))
	_, err := q.Chart(ctx, "000660", market.VenuePrimary, market.PeriodMonth)
	require.Error(t, err)
	c.Wait()
	_, ok := c.Get(ctx, ChartKey("000660", market.VenuePrimary, market.PeriodMonth))
	require.False(t, ok)
}
