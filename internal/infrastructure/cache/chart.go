package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	market "stockplus/internal/domain/entity/market"

	"github.com/dgraph-io/ristretto"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxCost = 1 << 24
	keyPrefix      = "chart"
)

// ChartCache keeps chart bars in an in-process cache backed by an optional
// Redis tier shared between instances.
type ChartCache struct {
	local  *ristretto.Cache
	remote *redis.Client
	ttl    time.Duration
	logger *logrus.Entry
}

// NewChartCache builds the cache. A nil remote client disables the Redis tier.
func NewChartCache(maxCost int64, ttl time.Duration, remote *redis.Client, logger *logrus.Logger) (*ChartCache, error) {
	if maxCost <= 0 {
		maxCost = defaultMaxCost
	}
	local, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create chart cache: %w", err)
	}
	return &ChartCache{
		local:  local,
		remote: remote,
		ttl:    ttl,
		logger: logger.WithField("component", "chart_cache"),
	}, nil
}

// ChartKey names the cached bars of a symbol on a venue and period.
func ChartKey(code string, venue market.Venue, period market.Period) string {
	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, code, venue.OrDefault(), period)
}

func (c *ChartCache) Get(ctx context.Context, key string) ([]market.RawCandle, bool) {
	if v, ok := c.local.Get(key); ok {
		if bars, ok := v.([]market.RawCandle); ok {
			return bars, true
		}
	}
	if c.remote == nil {
		return nil, false
	}
	raw, err := c.remote.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WithError(err).WithField("key", key).Warn("redis chart lookup failed")
		}
		return nil, false
	}
	var bars []market.RawCandle
	if err := json.Unmarshal(raw, &bars); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("discarding corrupt cached chart")
		return nil, false
	}
	c.setLocal(key, bars)
	return bars, true
}

func (c *ChartCache) Set(ctx context.Context, key string, bars []market.RawCandle) {
	c.setLocal(key, bars)
	if c.remote == nil {
		return
	}
	payload, err := json.Marshal(bars)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("encode chart for redis")
		return
	}
	if err := c.remote.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("redis chart store failed")
	}
}

func (c *ChartCache) Invalidate(ctx context.Context, key string) {
	c.local.Del(key)
	if c.remote != nil {
		_ = c.remote.Del(ctx, key).Err()
	}
}

// Wait blocks until pending local writes are visible.
func (c *ChartCache) Wait() {
	c.local.Wait()
}

func (c *ChartCache) Close() {
	c.local.Close()
}

func (c *ChartCache) setLocal(key string, bars []market.RawCandle) {
	cost := int64(len(bars)) + 1
	c.local.SetWithTTL(key, bars, cost, c.ttl)
}
