package coordinator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"stockplus/internal/application/service/chart"
	"stockplus/internal/application/service/watchlist"
	market "stockplus/internal/domain/entity/market"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidPeriod = errors.New("invalid chart period")
	ErrInvalidVenue  = errors.New("invalid venue")
	ErrNotSelected   = errors.New("no instrument selected")
)

// ChartSource fetches raw candles for an instrument.
type ChartSource interface {
	Chart(ctx context.Context, code string, venue market.Venue, period market.Period) ([]market.RawCandle, error)
}

// State is a consistent snapshot of what the dashboard shows.
type State struct {
	Group            int                `json:"group"`
	Venue            market.Venue       `json:"venue"`
	Period           market.Period      `json:"period"`
	Selected         *market.Instrument `json:"selected,omitempty"`
	PendingSelection string             `json:"pendingSelection,omitempty"`
	Chart            chart.Meta         `json:"chart"`
}

// Coordinator owns the current selection and routes flushes and chart loads
// to the watchlist store and the chart view. The store stays the single
// owner of instrument data; the selection is kept as a code.
type Coordinator struct {
	store  *watchlist.Store
	charts ChartSource
	view   *chart.View
	logger *logrus.Entry

	mu       sync.Mutex
	group    int
	venue    market.Venue
	period   market.Period
	selected string
	pending  string
	chartSeq uint64
}

func New(store *watchlist.Store, charts ChartSource, view *chart.View, group int, venue market.Venue, period market.Period, logger *logrus.Logger) *Coordinator {
	if !market.ValidGroup(group) {
		group = 1
	}
	if !period.IsValid() {
		period = market.PeriodDay
	}
	return &Coordinator{
		store:  store,
		charts: charts,
		view:   view,
		logger: logger.WithField("component", "view_coordinator"),
		group:  group,
		venue:  venue.OrDefault(),
		period: period,
	}
}

// needsReload reports whether the instrument's cached chart was loaded for a
// different period or venue, or never loaded.
func needsReload(inst market.Instrument, period market.Period, venue market.Venue) bool {
	return !inst.Chart.Loaded() || inst.Chart.Period != period || inst.Chart.Venue != venue
}

// Reload refreshes the active group with the active venue.
func (c *Coordinator) Reload(ctx context.Context) ([]market.Instrument, error) {
	c.mu.Lock()
	group, venue := c.group, c.venue
	c.mu.Unlock()

	items, err := c.store.Load(ctx, venue, group)
	if err != nil {
		return nil, err
	}
	return items, c.afterLoad(ctx, group, items)
}

// SelectGroup switches the active watchlist group and loads it.
func (c *Coordinator) SelectGroup(ctx context.Context, group int) ([]market.Instrument, error) {
	if !market.ValidGroup(group) {
		return nil, watchlist.ErrInvalidGroup
	}
	c.mu.Lock()
	c.group = group
	c.mu.Unlock()
	return c.Reload(ctx)
}

// SetVenue switches the venue, reloads prices for the active group and
// reloads the selected chart once.
func (c *Coordinator) SetVenue(ctx context.Context, venue market.Venue) ([]market.Instrument, error) {
	venue = venue.OrDefault()
	if !venue.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidVenue, venue)
	}
	c.mu.Lock()
	c.venue = venue
	c.mu.Unlock()
	return c.Reload(ctx)
}

// SetPeriod switches the chart period and reloads the selected chart once.
func (c *Coordinator) SetPeriod(ctx context.Context, period market.Period) error {
	if !period.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidPeriod, period)
	}
	c.mu.Lock()
	c.period = period
	c.mu.Unlock()
	return c.ensureChart(ctx)
}

// Select makes code the selected instrument of the active group.
func (c *Coordinator) Select(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return watchlist.ErrEmptyCode
	}
	c.mu.Lock()
	group := c.group
	c.mu.Unlock()

	if _, ok := c.store.Find(group, code); !ok {
		return watchlist.ErrNotFound
	}
	c.mu.Lock()
	c.selected = code
	c.pending = ""
	c.mu.Unlock()
	return c.ensureChart(ctx)
}

// SelectFromPath selects code if the active group already holds it, and
// otherwise remembers it until a load brings it in.
func (c *Coordinator) SelectFromPath(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return watchlist.ErrEmptyCode
	}
	c.mu.Lock()
	group := c.group
	c.mu.Unlock()

	if _, ok := c.store.Find(group, code); ok {
		return c.Select(ctx, code)
	}
	c.mu.Lock()
	c.pending = code
	c.mu.Unlock()
	c.logger.WithField("code", code).Debug("selection deferred until the instrument loads")
	return nil
}

// ClearSelection drops the selection and empties the chart.
func (c *Coordinator) ClearSelection() {
	c.mu.Lock()
	c.selected = ""
	c.pending = ""
	c.chartSeq++
	c.mu.Unlock()
	c.view.Clear()
}

func (c *Coordinator) afterLoad(ctx context.Context, group int, items []market.Instrument) error {
	c.mu.Lock()
	if group != c.group {
		c.mu.Unlock()
		return nil
	}
	var target string
	dropped := false
	switch {
	case c.pending != "" && containsCode(items, c.pending):
		target = c.pending
	case c.selected != "" && !containsCode(items, c.selected):
		c.selected = ""
		c.chartSeq++
		dropped = true
	}
	selected := c.selected
	c.mu.Unlock()

	switch {
	case target != "":
		return c.Select(ctx, target)
	case dropped:
		c.view.Clear()
		return nil
	case selected != "":
		return c.ensureChart(ctx)
	default:
		return nil
	}
}

// ensureChart fetches the selected chart once when the cached data does not
// match the active period and venue. A response that arrives after a newer
// request started is discarded.
func (c *Coordinator) ensureChart(ctx context.Context) error {
	c.mu.Lock()
	code, group, venue, period := c.selected, c.group, c.venue, c.period
	c.mu.Unlock()
	if code == "" {
		return nil
	}

	inst, ok := c.store.Find(group, code)
	if !ok {
		return watchlist.ErrNotFound
	}
	meta := chart.Meta{Code: code, Venue: venue, Period: period}

	if !needsReload(inst, period, venue) {
		if c.view.Meta() != meta {
			c.view.Reload(meta, inst.Chart.Raw)
		}
		return nil
	}

	c.mu.Lock()
	c.chartSeq++
	seq := c.chartSeq
	c.mu.Unlock()

	log := c.logger.WithFields(logrus.Fields{"code": code, "venue": venue, "period": period})
	raw, err := c.charts.Chart(ctx, code, venue, period)

	c.mu.Lock()
	stale := seq != c.chartSeq
	c.mu.Unlock()
	if stale {
		log.Debug("discarded stale chart response")
		return nil
	}
	if err != nil {
		log.WithError(err).Warn("chart fetch failed")
		c.view.Reload(meta, nil)
		return fmt.Errorf("fetch chart %s: %w", code, err)
	}

	c.store.SetChartData(group, code, raw, period, venue)
	c.view.Reload(meta, raw)
	return nil
}

// OnFlush applies one buffer flush to the watchlist and to the selected
// chart. Indicative prices never reach the chart.
func (c *Coordinator) OnFlush(ticks watchlist.TickLookup) {
	c.store.ApplyUpdates(ticks)

	c.mu.Lock()
	code, group := c.selected, c.group
	c.mu.Unlock()
	if code == "" {
		return
	}
	inst, ok := c.store.Find(group, code)
	if !ok {
		return
	}
	t, ok := ticks.Lookup(inst.Code, inst.Venue)
	if !ok {
		return
	}
	p, ok := t.CurrentPrice.Float()
	if !ok {
		return
	}
	c.view.Tick(code, p, inst.IsExpected)
}

// State returns a consistent snapshot for readers.
func (c *Coordinator) State() State {
	c.mu.Lock()
	st := State{
		Group:            c.group,
		Venue:            c.venue,
		Period:           c.period,
		PendingSelection: c.pending,
	}
	code := c.selected
	c.mu.Unlock()

	if code != "" {
		if inst, ok := c.store.Find(st.Group, code); ok {
			st.Selected = &inst
		}
	}
	st.Chart = c.view.Meta()
	return st
}

// Instruments returns the active group, loading it on first use.
func (c *Coordinator) Instruments(ctx context.Context) ([]market.Instrument, error) {
	c.mu.Lock()
	group := c.group
	c.mu.Unlock()
	if !c.store.Loaded(group) {
		return c.Reload(ctx)
	}
	return c.store.Instruments(group), nil
}

// Selected returns the selected instrument, if any.
func (c *Coordinator) Selected() (market.Instrument, error) {
	st := c.State()
	if st.Selected == nil {
		return market.Instrument{}, ErrNotSelected
	}
	return *st.Selected, nil
}

func (c *Coordinator) Series() market.Series {
	return c.view.Series()
}

func (c *Coordinator) DailyPrices() []market.DailyPrice {
	return c.view.DailyPrices()
}

// Add puts a search result into the active group and applies any pending
// selection.
func (c *Coordinator) Add(ctx context.Context, result market.SearchResult) ([]market.Instrument, error) {
	c.mu.Lock()
	group, venue := c.group, c.venue
	c.mu.Unlock()
	items, err := c.store.Add(ctx, result, venue, group)
	if err != nil {
		return nil, err
	}
	return items, c.afterLoad(ctx, group, items)
}

// Delete removes code from the active group; the selection is dropped if it
// pointed at the removed instrument.
func (c *Coordinator) Delete(ctx context.Context, code string) ([]market.Instrument, error) {
	c.mu.Lock()
	group := c.group
	c.mu.Unlock()
	items, err := c.store.Delete(ctx, code, group)
	if err != nil {
		return nil, err
	}
	return items, c.afterLoad(ctx, group, items)
}

func (c *Coordinator) DeleteAll(ctx context.Context) ([]market.Instrument, error) {
	c.mu.Lock()
	group := c.group
	c.mu.Unlock()
	items, err := c.store.DeleteAll(ctx, group)
	if err != nil {
		return nil, err
	}
	return items, c.afterLoad(ctx, group, items)
}

func (c *Coordinator) ToggleFavorite(ctx context.Context, code string, value bool) (watchlist.Mutation, error) {
	c.mu.Lock()
	group := c.group
	c.mu.Unlock()
	return c.store.ToggleFavorite(ctx, code, group, value)
}

func containsCode(items []market.Instrument, code string) bool {
	for _, it := range items {
		if it.Code == code {
			return true
		}
	}
	return false
}
