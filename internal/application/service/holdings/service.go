package holdings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	market "stockplus/internal/domain/entity/market"
	interfaces "stockplus/internal/domain/interfaces"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const defaultPriceConcurrency = 4

var (
	ErrInvalidTrade = errors.New("trade requires code, positive quantity, positive price and date")
	ErrInvalidID    = errors.New("trade id must be positive")
	ErrEmptyCode    = errors.New("stock code is required")
)

type Service struct {
	api    interfaces.HoldingsAPI
	quotes interfaces.QuoteAPI
	logger *logrus.Entry
}

func NewService(api interfaces.HoldingsAPI, quotes interfaces.QuoteAPI, logger *logrus.Logger) *Service {
	return &Service{
		api:    api,
		quotes: quotes,
		logger: logger.WithField("component", "holdings_service"),
	}
}

func (s *Service) Holdings(ctx context.Context) ([]market.Holding, error) {
	items, err := s.api.Holdings(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("failed to fetch holdings")
		return []market.Holding{}, fmt.Errorf("fetch holdings: %w", err)
	}
	return items, nil
}

func (s *Service) History(ctx context.Context, code string) ([]market.TradeEntry, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrEmptyCode
	}
	items, err := s.api.TradeHistory(ctx, code)
	if err != nil {
		s.logger.WithError(err).WithField("code", code).Warn("failed to fetch trade history")
		return []market.TradeEntry{}, fmt.Errorf("fetch trade history %s: %w", code, err)
	}
	return items, nil
}

func (s *Service) AddTrade(ctx context.Context, trade market.TradeEntry) error {
	trade.StockCode = strings.TrimSpace(trade.StockCode)
	if trade.StockCode == "" || trade.Quantity <= 0 || !trade.Price.IsPositive() || trade.TradeDate == "" {
		return ErrInvalidTrade
	}
	if err := s.api.AddTrade(ctx, trade); err != nil {
		s.logger.WithError(err).WithField("code", trade.StockCode).Warn("failed to add trade")
		return fmt.Errorf("add trade %s: %w", trade.StockCode, err)
	}
	return nil
}

func (s *Service) DeleteTrade(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if err := s.api.DeleteTrade(ctx, id); err != nil {
		s.logger.WithError(err).WithField("trade_id", id).Warn("failed to delete trade")
		return fmt.Errorf("delete trade %d: %w", id, err)
	}
	return nil
}

// Portfolio values current holdings at the venue's latest prices. Holdings
// whose price cannot be fetched are carried at cost.
func (s *Service) Portfolio(ctx context.Context, venue market.Venue) (market.Portfolio, error) {
	items, err := s.Holdings(ctx)
	if err != nil {
		return Valuate(nil, nil), err
	}

	var mu sync.Mutex
	prices := make(map[string]decimal.Decimal, len(items))
	var g errgroup.Group
	g.SetLimit(defaultPriceConcurrency)
	for _, h := range items {
		g.Go(func() error {
			snap, err := s.quotes.Price(ctx, h.StockCode, venue.OrDefault())
			if err != nil {
				s.logger.WithError(err).WithField("code", h.StockCode).Debug("holding priced at cost")
				return nil
			}
			v, ok := snap.CurrentPrice.Float()
			if !ok {
				return nil
			}
			mu.Lock()
			prices[h.StockCode] = decimal.NewFromFloat(v)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return Valuate(items, prices), nil
}
