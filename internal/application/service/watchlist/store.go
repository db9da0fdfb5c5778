package watchlist

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

const defaultFetchLimit = 8

var (
	ErrInvalidGroup = errors.New("watchlist group must be within 1..4")
	ErrNotFound     = errors.New("instrument not in watchlist group")
	ErrEmptyCode    = errors.New("stock code is required")
)

// TickLookup resolves the latest tick for an instrument held on a venue.
type TickLookup interface {
	Lookup(code string, venue market.Venue) (market.Tick, bool)
}

// ChangeFunc observes a group after its instruments changed.
type ChangeFunc func(groupID int, items []market.Instrument)

type Options struct {
	// FetchLimit bounds concurrent price fetches during Load.
	FetchLimit int
	// RollbackOnFailure restores the previous favorite flag when the backend
	// rejects a toggle.
	RollbackOnFailure bool
}

type group struct {
	venue    market.Venue
	items    []market.Instrument
	loadedAt time.Time
}

// Store holds each watchlist group's instruments merged with their latest
// prices. Reads return copies.
type Store struct {
	watchlist interfaces.WatchlistAPI
	quotes    interfaces.QuoteAPI
	opts      Options
	logger    *logrus.Entry

	mu        sync.RWMutex
	groups    map[int]*group
	mutations map[string]*Mutation

	listenMu  sync.RWMutex
	listeners []ChangeFunc
}

func NewStore(watchlist interfaces.WatchlistAPI, quotes interfaces.QuoteAPI, opts Options, logger *logrus.Logger) *Store {
	if opts.FetchLimit <= 0 {
		opts.FetchLimit = defaultFetchLimit
	}
	return &Store{
		watchlist: watchlist,
		quotes:    quotes,
		opts:      opts,
		logger:    logger.WithField("component", "watchlist_store"),
		groups:    make(map[int]*group),
		mutations: make(map[string]*Mutation),
	}
}

// OnChange registers an observer of group changes.
func (s *Store) OnChange(fn ChangeFunc) {
	if fn == nil {
		return
	}
	s.listenMu.Lock()
	defer s.listenMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(groupID int, items []market.Instrument) {
	s.listenMu.RLock()
	listeners := make([]ChangeFunc, len(s.listeners))
	copy(listeners, s.listeners)
	s.listenMu.RUnlock()
	for _, fn := range listeners {
		fn(groupID, items)
	}
}

// Load fetches group membership and a price snapshot per member, then
// replaces the group. A failed price fetch leaves that instrument at zero
// values. Chart data cached for symbols that persist is carried forward.
func (s *Store) Load(ctx context.Context, venue market.Venue, groupID int) ([]market.Instrument, error) {
	if !market.ValidGroup(groupID) {
		return nil, ErrInvalidGroup
	}
	venue = venue.OrDefault()

	log := s.logger.WithFields(logrus.Fields{"group": groupID, "venue": venue})
	entries, err := s.watchlist.Watchlist(ctx, groupID)
	if err != nil {
		log.WithError(err).Warn("failed to fetch watchlist")
		return nil, fmt.Errorf("fetch watchlist group %d: %w", groupID, err)
	}

	items := make([]market.Instrument, len(entries))
	var g errgroup.Group
	g.SetLimit(s.opts.FetchLimit)
	for i, entry := range entries {
		items[i] = market.Instrument{
			Code:     entry.StockCode,
			Name:     entry.StockName,
			Venue:    venue,
			GroupID:  groupID,
			Favorite: entry.IsFavorite,
			Sign:     market.SignUnchanged,
		}
		g.Go(func() error {
			snapshot, err := s.quotes.Price(ctx, entry.StockCode, venue)
			if err != nil {
				log.WithError(err).WithField("code", entry.StockCode).Warn("price fetch failed, using defaults")
				return nil
			}
			items[i].ApplySnapshot(snapshot)
			return nil
		})
	}
	_ = g.Wait()

	s.mu.Lock()
	if prev, ok := s.groups[groupID]; ok {
		cached := make(map[string]market.ChartData, len(prev.items))
		for _, it := range prev.items {
			if it.Chart.Loaded() {
				cached[it.Code] = it.Chart
			}
		}
		for i := range items {
			if chart, ok := cached[items[i].Code]; ok {
				items[i].Chart = chart
			}
		}
	}
	for i := range items {
		if m, ok := s.mutations[mutationKey(groupID, items[i].Code)]; ok && m.State == MutationPending {
			items[i].Favorite = m.Desired
		}
	}
	s.groups[groupID] = &group{venue: venue, items: items, loadedAt: time.Now()}
	out := cloneInstruments(items)
	s.mu.Unlock()

	log.WithField("count", len(out)).Debug("watchlist loaded")
	s.notify(groupID, cloneInstruments(out))
	return out, nil
}

// ApplyUpdates merges a flush snapshot into every held instrument and returns
// the instruments that changed. Instruments without a matching tick are left
// untouched.
func (s *Store) ApplyUpdates(ticks TickLookup) []market.Instrument {
	if ticks == nil {
		return nil
	}
	var updated []market.Instrument
	changed := make(map[int][]market.Instrument)

	s.mu.Lock()
	for id, g := range s.groups {
		touched := false
		for i := range g.items {
			t, ok := ticks.Lookup(g.items[i].Code, g.items[i].Venue)
			if !ok {
				continue
			}
			g.items[i].ApplyTick(t)
			updated = append(updated, g.items[i])
			touched = true
		}
		if touched {
			changed[id] = cloneInstruments(g.items)
		}
	}
	s.mu.Unlock()

	for id, items := range changed {
		s.notify(id, items)
	}
	return updated
}

// Add puts a search result into a group on the backend and reloads the group.
func (s *Store) Add(ctx context.Context, result market.SearchResult, venue market.Venue, groupID int) ([]market.Instrument, error) {
	if !market.ValidGroup(groupID) {
		return nil, ErrInvalidGroup
	}
	code := strings.TrimSpace(result.StockCode)
	if code == "" {
		return nil, ErrEmptyCode
	}
	venue = venue.OrDefault()
	entry := market.WatchlistEntry{
		StockCode:    code,
		StockName:    result.StockName,
		ExchangeCode: venue.String(),
		GroupID:      groupID,
	}
	if err := s.watchlist.AddToWatchlist(ctx, entry); err != nil {
		s.logger.WithError(err).WithField("code", code).Warn("failed to add to watchlist")
		return nil, fmt.Errorf("add %s to group %d: %w", code, groupID, err)
	}
	return s.Load(ctx, venue, groupID)
}

// Ensure adds the entries missing from a group on the backend and marks the
// requested favorites, then loads the group once. Failed entries are skipped
// and reported together.
func (s *Store) Ensure(ctx context.Context, groupID int, venue market.Venue, entries []market.WatchlistEntry) ([]market.Instrument, error) {
	if !market.ValidGroup(groupID) {
		return nil, ErrInvalidGroup
	}
	venue = venue.OrDefault()
	current, err := s.watchlist.Watchlist(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("fetch watchlist group %d: %w", groupID, err)
	}
	held := make(map[string]struct{}, len(current))
	for _, e := range current {
		held[e.StockCode] = struct{}{}
	}

	var errs []error
	for _, e := range entries {
		code := strings.TrimSpace(e.StockCode)
		if code == "" {
			continue
		}
		if _, ok := held[code]; ok {
			continue
		}
		entry := market.WatchlistEntry{
			StockCode:    code,
			StockName:    e.StockName,
			ExchangeCode: e.ExchangeCode,
			GroupID:      groupID,
		}
		if entry.ExchangeCode == "" {
			entry.ExchangeCode = venue.String()
		}
		if err := s.watchlist.AddToWatchlist(ctx, entry); err != nil {
			errs = append(errs, fmt.Errorf("add %s to group %d: %w", code, groupID, err))
			continue
		}
		held[code] = struct{}{}
		if e.IsFavorite {
			if err := s.watchlist.SetFavorite(ctx, code, groupID, true); err != nil {
				errs = append(errs, fmt.Errorf("favorite %s in group %d: %w", code, groupID, err))
			}
		}
	}

	items, err := s.Load(ctx, venue, groupID)
	if err != nil {
		return nil, err
	}
	return items, errors.Join(errs...)
}

// Delete removes one symbol on the backend, then reloads the group.
func (s *Store) Delete(ctx context.Context, code string, groupID int) ([]market.Instrument, error) {
	if !market.ValidGroup(groupID) {
		return nil, ErrInvalidGroup
	}
	if code == "" {
		return nil, ErrEmptyCode
	}
	if err := s.watchlist.DeleteFromWatchlist(ctx, code, groupID); err != nil {
		s.logger.WithError(err).WithField("code", code).Warn("failed to delete from watchlist")
		return nil, fmt.Errorf("delete %s from group %d: %w", code, groupID, err)
	}
	return s.Load(ctx, s.Venue(groupID), groupID)
}

// DeleteAll clears a group on the backend, then reloads it.
func (s *Store) DeleteAll(ctx context.Context, groupID int) ([]market.Instrument, error) {
	if !market.ValidGroup(groupID) {
		return nil, ErrInvalidGroup
	}
	if err := s.watchlist.DeleteGroup(ctx, groupID); err != nil {
		s.logger.WithError(err).WithField("group", groupID).Warn("failed to clear watchlist group")
		return nil, fmt.Errorf("clear group %d: %w", groupID, err)
	}
	return s.Load(ctx, s.Venue(groupID), groupID)
}

// Instruments returns a copy of the group's instruments.
func (s *Store) Instruments(groupID int) []market.Instrument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[groupID]
	if !ok {
		return []market.Instrument{}
	}
	return cloneInstruments(g.items)
}

// Find returns a copy of one instrument of a group.
func (s *Store) Find(groupID int, code string) (market.Instrument, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[groupID]
	if !ok {
		return market.Instrument{}, false
	}
	for _, it := range g.items {
		if it.Code == code {
			return it, true
		}
	}
	return market.Instrument{}, false
}

// Venue returns the venue the group was last loaded with.
func (s *Store) Venue(groupID int) market.Venue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if g, ok := s.groups[groupID]; ok {
		return g.venue
	}
	return market.VenuePrimary
}

// Loaded reports whether the group was loaded at least once.
func (s *Store) Loaded(groupID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.groups[groupID]
	return ok
}

// SetChartData caches chart data on an instrument so it survives reloads.
func (s *Store) SetChartData(groupID int, code string, raw []market.RawCandle, period market.Period, venue market.Venue) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[groupID]
	if !ok {
		return false
	}
	for i := range g.items {
		if g.items[i].Code == code {
			g.items[i].Chart = market.ChartData{Raw: raw, Period: period, Venue: venue.OrDefault()}
			return true
		}
	}
	return false
}

// cloneInstruments copies the slice. Chart.Raw is shared; it is replaced
// wholesale and never mutated in place.
func cloneInstruments(items []market.Instrument) []market.Instrument {
	out := make([]market.Instrument, len(items))
	copy(out, items)
	return out
}
