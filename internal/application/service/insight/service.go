package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	market "stockplus/internal/domain/entity/market"
	interfaces "stockplus/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxKeywords     = 10
	DefaultRefreshInterval = 60 * time.Second

	MarketInsightFallback = "Failed to fetch the AI market insight."
	SpecialReportFallback = "The dedicated AI report has not been generated yet."
)

var (
	ErrEmptyKeyword     = errors.New("keyword is required")
	ErrKeywordLimit     = errors.New("keyword limit reached")
	ErrDuplicateKeyword = errors.New("keyword already registered")
)

// Digest is the periodically refreshed news and AI commentary.
type Digest struct {
	News          []market.NewsItem `json:"news"`
	MarketInsight string            `json:"marketInsight"`
	SpecialReport string            `json:"specialReport"`
	RefreshedAt   time.Time         `json:"refreshedAt"`
}

type Options struct {
	MaxKeywords     int
	RefreshInterval time.Duration
}

// Service serves news, AI commentary, search and keyword management. Read
// failures degrade to empty values or fallback text.
type Service struct {
	api    interfaces.InsightAPI
	quotes interfaces.QuoteAPI
	opts   Options
	logger *logrus.Entry

	mu       sync.RWMutex
	digest   Digest
	keywords []market.Keyword
}

func NewService(api interfaces.InsightAPI, quotes interfaces.QuoteAPI, opts Options, logger *logrus.Logger) *Service {
	if opts.MaxKeywords <= 0 {
		opts.MaxKeywords = DefaultMaxKeywords
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	return &Service{
		api:    api,
		quotes: quotes,
		opts:   opts,
		logger: logger.WithField("component", "insight_service"),
		digest: Digest{
			News:          []market.NewsItem{},
			MarketInsight: MarketInsightFallback,
			SpecialReport: SpecialReportFallback,
		},
	}
}

func (s *Service) News(ctx context.Context) []market.NewsItem {
	items, err := s.api.RecentNews(ctx)
	if err != nil || items == nil {
		if err != nil {
			s.logger.WithError(err).Warn("failed to fetch news")
		}
		return []market.NewsItem{}
	}
	return items
}

func (s *Service) MarketInsight(ctx context.Context) string {
	text, err := s.api.MarketInsight(ctx)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			s.logger.WithError(err).Warn("failed to fetch market insight")
		}
		return MarketInsightFallback
	}
	return text
}

func (s *Service) SpecialReport(ctx context.Context) string {
	text, err := s.api.SpecialReport(ctx)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			s.logger.WithError(err).Warn("failed to fetch special report")
		}
		return SpecialReportFallback
	}
	return text
}

// Refresh fetches news, insight and report concurrently and caches them.
func (s *Service) Refresh(ctx context.Context) Digest {
	var d Digest
	var g errgroup.Group
	g.Go(func() error {
		d.News = s.News(ctx)
		return nil
	})
	g.Go(func() error {
		d.MarketInsight = s.MarketInsight(ctx)
		return nil
	})
	g.Go(func() error {
		d.SpecialReport = s.SpecialReport(ctx)
		return nil
	})
	_ = g.Wait()
	d.RefreshedAt = time.Now()

	s.mu.Lock()
	s.digest = d
	s.mu.Unlock()
	return d
}

// Digest returns the last refreshed digest.
func (s *Service) Digest() Digest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.digest
}

// Run refreshes immediately and then on every interval until ctx is done.
func (s *Service) Run(ctx context.Context) {
	s.Refresh(ctx)
	ticker := time.NewTicker(s.opts.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d := s.Refresh(ctx)
			s.logger.WithField("news", len(d.News)).Debug("insight refreshed")
		}
	}
}

// Search looks up stocks by name or code. An empty keyword is rejected
// without calling the backend.
func (s *Service) Search(ctx context.Context, keyword string) ([]market.SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	results, err := s.quotes.Search(ctx, keyword)
	if err != nil {
		s.logger.WithError(err).WithField("keyword", keyword).Warn("search failed")
		return []market.SearchResult{}, nil
	}
	if results == nil {
		results = []market.SearchResult{}
	}
	return results, nil
}

// Investors returns the investor flow table, empty on failure.
func (s *Service) Investors(ctx context.Context, code string, venue market.Venue) market.InvestorTable {
	table, err := s.quotes.Investors(ctx, code, venue.OrDefault())
	if err != nil {
		s.logger.WithError(err).WithField("code", code).Warn("failed to fetch investors")
		return market.InvestorTable{Items: []market.InvestorFlow{}}
	}
	if table.Items == nil {
		table.Items = []market.InvestorFlow{}
	}
	return table
}

// Keywords fetches the registered AI keywords and caches them for limit checks.
func (s *Service) Keywords(ctx context.Context) ([]market.Keyword, error) {
	items, err := s.api.Keywords(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("failed to fetch keywords")
		return []market.Keyword{}, fmt.Errorf("fetch keywords: %w", err)
	}
	if items == nil {
		items = []market.Keyword{}
	}
	s.mu.Lock()
	s.keywords = items
	s.mu.Unlock()
	return items, nil
}

// AddKeyword registers a keyword. Empty, duplicate and over-limit keywords
// are rejected before the backend is asked to add anything.
func (s *Service) AddKeyword(ctx context.Context, keyword string) ([]market.Keyword, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}

	s.mu.RLock()
	current := s.keywords
	s.mu.RUnlock()
	if current == nil {
		var err error
		if current, err = s.Keywords(ctx); err != nil {
			return nil, err
		}
	}
	if len(current) >= s.opts.MaxKeywords {
		return nil, fmt.Errorf("%w: %d", ErrKeywordLimit, s.opts.MaxKeywords)
	}
	for _, k := range current {
		if strings.EqualFold(k.Keyword, keyword) {
			return nil, ErrDuplicateKeyword
		}
	}

	if err := s.api.AddKeyword(ctx, keyword); err != nil {
		s.logger.WithError(err).WithField("keyword", keyword).Warn("failed to add keyword")
		return nil, fmt.Errorf("add keyword: %w", err)
	}
	return s.Keywords(ctx)
}

func (s *Service) DeleteKeyword(ctx context.Context, keyword string) ([]market.Keyword, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	if err := s.api.DeleteKeyword(ctx, keyword); err != nil {
		s.logger.WithError(err).WithField("keyword", keyword).Warn("failed to delete keyword")
		return nil, fmt.Errorf("delete keyword: %w", err)
	}
	return s.Keywords(ctx)
}
