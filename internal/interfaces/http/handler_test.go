package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"stockplus/internal/application/service/analysis"
	"stockplus/internal/application/service/chart"
	"stockplus/internal/application/service/coordinator"
	"stockplus/internal/application/service/holdings"
	"stockplus/internal/application/service/insight"
	"stockplus/internal/application/service/watchlist"
	market "stockplus/internal/domain/entity/market"
	"stockplus/internal/domain/interfaces/mocks"
	"stockplus/internal/infrastructure/archive"
	"stockplus/internal/infrastructure/render"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(any) {}

type fakeFeed struct {
	refs atomic.Int32
}

func (f *fakeFeed) Subscribe()   { f.refs.Add(1) }
func (f *fakeFeed) Unsubscribe() { f.refs.Add(-1) }

type fakeArchive struct {
	rows  []archive.TickRow
	limit int
	venue market.Venue
}

func (f *fakeArchive) LastTicks(_ context.Context, _ string, venue market.Venue, limit int) ([]archive.TickRow, error) {
	f.limit = limit
	f.venue = venue
	return f.rows, nil
}

type fixture struct {
	h         *Handler
	watchlist *mocks.MockWatchlistAPI
	quotes    *mocks.MockQuoteAPI
	insight   *mocks.MockInsightAPI
	holdings  *mocks.MockHoldingsAPI
	feed      *fakeFeed
}

func newFixture(t *testing.T, opener analysis.Opener, tweak func(*Deps)) fixture {
	ctrl := gomock.NewController(t)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	wl := mocks.NewMockWatchlistAPI(ctrl)
	q := mocks.NewMockQuoteAPI(ctrl)
	ins := mocks.NewMockInsightAPI(ctrl)
	hd := mocks.NewMockHoldingsAPI(ctrl)

	store := watchlist.NewStore(wl, q, watchlist.Options{RollbackOnFailure: true}, logger)
	view := chart.NewView(render.NewFramePublisher(nopBroadcaster{}), logger)
	feed := &fakeFeed{}
	if opener == nil {
		opener = analysis.OpenerFunc(func(context.Context, string) (io.ReadCloser, error) {
			return nil, errors.New("no analysis")
		})
	}

	deps := Deps{
		Coordinator: coordinator.New(store, q, view, 1, market.VenuePrimary, market.PeriodDay, logger),
		Insight:     insight.NewService(ins, q, insight.Options{MaxKeywords: 2}, logger),
		Holdings:    holdings.NewService(hd, q, logger),
		Analysis:    opener,
		Feed:        feed,
		Logger:      logger,
	}
	if tweak != nil {
		tweak(&deps)
	}
	return fixture{
		h:         NewHandler(deps),
		watchlist: wl,
		quotes:    q,
		insight:   ins,
		holdings:  hd,
		feed:      feed,
	}
}

func (f fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, apiBasePath+path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func (f fixture) expectGroup(group int, codes ...string) {
	entries := make([]market.WatchlistEntry, len(codes))
	for i, code := range codes {
		entries[i] = market.WatchlistEntry{StockCode: code, StockName: "name " + code}
		f.quotes.EXPECT().Price(gomock.Any(), code, market.VenuePrimary).Return(market.PriceSnapshot{CurrentPrice: "70000"}, nil)
	}
	f.watchlist.EXPECT().Watchlist(gomock.Any(), group).Return(entries, nil)
}

func TestWatchlist_LoadsOnFirstRead(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.expectGroup(1, "005930")

	rec := f.do(t, http.MethodGet, "/watchlist", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]market.Instrument](t, rec)
	require.Len(t, items, 1)
	require.Equal(t, 70000.0, items[0].Price)

	// loaded groups are served from the store
	rec = f.do(t, http.MethodGet, "/watchlist", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestWatchlist_BackendFailure(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.watchlist.EXPECT().Watchlist(gomock.Any(), 1).Return(nil, errors.New("boom"))

	rec := f.do(t, http.MethodGet, "/watchlist", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, decode[map[string]string](t, rec)["error"], "boom")
}

func TestWatchlist_Validation(t *testing.T) {
	f := newFixture(t, nil, nil)

	rec := f.do(t, http.MethodPut, "/watchlist/group", gin.H{"group": 7})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPut, "/watchlist/venue", gin.H{"exchangeCode": "XX"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPut, "/chart/period", gin.H{"period": "2H"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPut, "/selection", gin.H{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSelection_Flow(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.expectGroup(1, "005930")
	f.quotes.EXPECT().Chart(gomock.Any(), "005930", market.VenuePrimary, market.PeriodDay).Return([]market.RawCandle{
		{Time: "1", Open: "1", High: "2", Low: "1", Close: "2", Volume: "10"},
		{Time: "2", Open: "2", High: "3", Low: "2", Close: "3", Volume: "10"},
	}, nil)

	rec := f.do(t, http.MethodGet, "/chart", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/watchlist", nil).Code)

	rec = f.do(t, http.MethodPut, "/selection", gin.H{"stockCode": "000660"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPut, "/selection", gin.H{"stockCode": "005930"})
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[coordinator.State](t, rec)
	require.NotNil(t, st.Selected)
	require.Equal(t, "005930", st.Selected.Code)

	rec = f.do(t, http.MethodGet, "/chart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[chartResponse](t, rec)
	require.Equal(t, "005930", resp.Code)
	require.Len(t, resp.Series.Candles, 2)

	rec = f.do(t, http.MethodDelete, "/selection", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/chart/daily", nil).Code)
}

func TestOpenStock_DefersUntilLoaded(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.expectGroup(1, "005930")

	rec := f.do(t, http.MethodGet, "/stock/000660", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[coordinator.State](t, rec)
	require.Nil(t, st.Selected)
	require.Equal(t, "000660", st.PendingSelection)
}

func TestSearch_RequiresKeyword(t *testing.T) {
	f := newFixture(t, nil, nil)
	require.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/stocks/search", nil).Code)

	f.quotes.EXPECT().Search(gomock.Any(), "sam").Return([]market.SearchResult{{StockCode: "005930", StockName: "Samsung"}}, nil)
	rec := f.do(t, http.MethodGet, "/stocks/search?keyword=sam", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]market.SearchResult](t, rec), 1)
}

func TestArchivedTicks(t *testing.T) {
	f := newFixture(t, nil, nil)
	require.Equal(t, http.StatusServiceUnavailable, f.do(t, http.MethodGet, "/stocks/005930/ticks", nil).Code)

	store := &fakeArchive{rows: []archive.TickRow{{StockCode: "005930", Venue: "NX", Price: 70000}}}
	f = newFixture(t, nil, func(d *Deps) { d.Archive = store })

	require.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/stocks/005930/ticks?limit=0", nil).Code)
	require.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/stocks/005930/ticks?exchangeCode=XX", nil).Code)

	rec := f.do(t, http.MethodGet, "/stocks/005930/ticks?exchangeCode=NX&limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 5, store.limit)
	require.Equal(t, market.VenueAlternate, store.venue)
	require.Len(t, decode[[]archive.TickRow](t, rec), 1)
}

func TestKeywords_Conflicts(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.insight.EXPECT().Keywords(gomock.Any()).Return([]market.Keyword{{Keyword: "chips"}}, nil)

	rec := f.do(t, http.MethodPost, "/keywords", gin.H{"keyword": "Chips"})
	require.Equal(t, http.StatusConflict, rec.Code)

	require.Equal(t, http.StatusBadRequest, f.do(t, http.MethodDelete, "/keywords", nil).Code)
}

func TestHoldings_Validation(t *testing.T) {
	f := newFixture(t, nil, nil)

	require.Equal(t, http.StatusBadRequest, f.do(t, http.MethodDelete, "/holdings/history/abc", nil).Code)
	require.Equal(t, http.StatusBadRequest, f.do(t, http.MethodDelete, "/holdings/history/-1", nil).Code)
	require.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/holdings", gin.H{"stockCode": "005930", "quantity": 0}).Code)

	f.holdings.EXPECT().DeleteTrade(gomock.Any(), int64(12)).Return(nil)
	require.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/holdings/history/12", nil).Code)
}

func pipeOpener() (analysis.OpenerFunc, *io.PipeWriter) {
	pr, pw := io.Pipe()
	return func(ctx context.Context, _ string) (io.ReadCloser, error) {
		return pr, nil
	}, pw
}

func TestAnalysis_DashboardStream(t *testing.T) {
	opener, pw := pipeOpener()
	f := newFixture(t, opener, nil)

	rec := f.do(t, http.MethodPost, "/analysis/005930", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = f.do(t, http.MethodPost, "/analysis/000660", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	_, err := pw.Write([]byte("data: first line\n"))
	require.NoError(t, err)
	_, err = pw.Write([]byte("data: [DONE]\n"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		st := decode[analysisStatus](t, f.do(t, http.MethodGet, "/analysis", nil))
		return st.State == "completed"
	}, 2*time.Second, 10*time.Millisecond)

	st := decode[analysisStatus](t, f.do(t, http.MethodGet, "/analysis", nil))
	require.Equal(t, "005930", st.Code)
	require.Equal(t, "first line\n", st.Text)

	rec = f.do(t, http.MethodDelete, "/analysis", nil)
	require.Equal(t, false, decode[map[string]bool](t, rec)["cancelled"])
}

func TestAnalysis_CancelDashboardStream(t *testing.T) {
	opener, pw := pipeOpener()
	defer pw.Close()
	f := newFixture(t, opener, nil)

	require.Equal(t, http.StatusAccepted, f.do(t, http.MethodPost, "/analysis/005930", nil).Code)
	rec := f.do(t, http.MethodDelete, "/analysis", nil)
	require.True(t, decode[map[string]bool](t, rec)["cancelled"])

	st := decode[analysisStatus](t, f.do(t, http.MethodGet, "/analysis", nil))
	require.Equal(t, "cancelled", st.State)
}

// readEvents returns the next n events as "name data" strings.
func readEvents(t *testing.T, r *bufio.Reader, n int) []string {
	t.Helper()
	var events []string
	current := ""
	for len(events) < n {
		line, err := r.ReadString('\n')
		if err != nil {
			return events
		}
		line = strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasPrefix(line, "event:"):
			current = strings.TrimPrefix(line, "event:")
		case strings.HasPrefix(line, "data:"):
			current += " " + strings.TrimPrefix(line, "data:")
		case line == "" && current != "":
			events = append(events, current)
			current = ""
		}
	}
	return events
}

func TestStreamAnalysis_RelaysChunks(t *testing.T) {
	opener := analysis.OpenerFunc(func(context.Context, string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("data: hello\n\ndata: [DONE]\n")), nil
	})
	f := newFixture(t, opener, nil)
	srv := httptest.NewServer(f.h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + apiBasePath + "/analysis/005930/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	events := readEvents(t, bufio.NewReader(resp.Body), 2)
	require.Len(t, events, 2)
	require.True(t, strings.HasPrefix(events[0], "chunk"))
	require.Contains(t, events[0], "hello")
	require.True(t, strings.HasPrefix(events[1], "done"))
	require.Contains(t, events[1], "completed")
}

func TestStreamPrices_PublishesWatchlistChanges(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.expectGroup(1)
	srv := httptest.NewServer(f.h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + apiBasePath + "/stream/prices")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := bufio.NewReader(resp.Body)

	events := readEvents(t, body, 1)
	require.Len(t, events, 1)
	require.True(t, strings.HasPrefix(events[0], "watchlist"))
	require.EqualValues(t, 1, f.feed.refs.Load())

	f.h.PublishWatchlist(1, []market.Instrument{{Code: "005930", Price: 71000}})
	events = readEvents(t, body, 1)
	require.Len(t, events, 1)
	require.Contains(t, events[0], "71000")

	require.NoError(t, resp.Body.Close())
	require.Eventually(t, func() bool { return f.feed.refs.Load() == 0 }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return f.h.updates.size() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestFanout_DropsForSlowSubscribers(t *testing.T) {
	fo := newFanout()
	ch := fo.subscribe()
	for i := 0; i < subscriberBuffer+5; i++ {
		fo.publish(i)
	}
	require.Len(t, ch, subscriberBuffer)
	fo.unsubscribe(ch)
	fo.publish("after")
	require.Len(t, ch, subscriberBuffer)
	require.Zero(t, fo.size())
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{watchlist.ErrInvalidGroup, http.StatusBadRequest},
		{watchlist.ErrNotFound, http.StatusNotFound},
		{insight.ErrKeywordLimit, http.StatusConflict},
		{analysis.ErrAlreadyStreaming, http.StatusConflict},
		{errArchiveOff, http.StatusServiceUnavailable},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}
