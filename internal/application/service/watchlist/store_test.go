package watchlist

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"stockplus/internal/application/service/pricebuffer"
	market "stockplus/internal/domain/entity/market"
	"stockplus/internal/domain/interfaces/mocks"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	store     *Store
	watchlist *mocks.MockWatchlistAPI
	quotes    *mocks.MockQuoteAPI
}

func newFixture(t *testing.T, opts Options) fixture {
	ctrl := gomock.NewController(t)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	wl := mocks.NewMockWatchlistAPI(ctrl)
	q := mocks.NewMockQuoteAPI(ctrl)
	return fixture{store: NewStore(wl, q, opts, logger), watchlist: wl, quotes: q}
}

func price(current string) market.PriceSnapshot {
	return market.PriceSnapshot{CurrentPrice: market.Number(current), Change: "100", ChangeRate: "0.14", PriceSign: "2"}
}

func TestAddAndLoad(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	f.quotes.EXPECT().Search(gomock.Any(), "005930").
		Return([]market.SearchResult{{StockCode: "005930", StockName: "Samsung Electronics", MarketType: "KOSPI", ExchangeCode: "J"}}, nil)
	f.watchlist.EXPECT().AddToWatchlist(gomock.Any(), market.WatchlistEntry{
		StockCode: "005930", StockName: "Samsung Electronics", ExchangeCode: "J", GroupID: 1,
	}).Return(nil)
	f.watchlist.EXPECT().Watchlist(gomock.Any(), 1).
		Return([]market.WatchlistEntry{{StockCode: "005930", StockName: "Samsung Electronics"}}, nil)
	f.quotes.EXPECT().Price(gomock.Any(), "005930", market.VenuePrimary).Return(price("70100"), nil)

	results, err := f.quotes.Search(ctx, "005930")
	require.NoError(t, err)
	items, err := f.store.Add(ctx, results[0], market.VenuePrimary, 1)
	require.NoError(t, err)

	require.Len(t, items, 1)
	require.Equal(t, "005930", items[0].Code)
	require.Equal(t, market.VenuePrimary, items[0].Venue)
	require.Equal(t, 70100.0, items[0].Price)
	require.Equal(t, market.SignUp, items[0].Sign)
	require.Equal(t, items, f.store.Instruments(1))
}

func TestLoad_PriceFailureFallsBackToDefaults(t *testing.T) {
	f := newFixture(t, Options{FetchLimit: 2})
	f.watchlist.EXPECT().Watchlist(gomock.Any(), 2).Return([]market.WatchlistEntry{
		{StockCode: "005930", StockName: "Samsung"},
		{StockCode: "000660", StockName: "SK hynix"},
		{StockCode: "035420", StockName: "NAVER"},
	}, nil)
	f.quotes.EXPECT().Price(gomock.Any(), "005930", market.VenueAlternate).Return(price("70000"), nil)
	f.quotes.EXPECT().Price(gomock.Any(), "000660", market.VenueAlternate).Return(market.PriceSnapshot{}, errors.New("timeout"))
	f.quotes.EXPECT().Price(gomock.Any(), "035420", market.VenueAlternate).Return(price("201500"), nil)

	items, err := f.store.Load(context.Background(), market.VenueAlternate, 2)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, []string{"005930", "000660", "035420"}, []string{items[0].Code, items[1].Code, items[2].Code}, "membership order is kept")
	require.Equal(t, 70000.0, items[0].Price)
	require.Zero(t, items[1].Price)
	require.Equal(t, market.SignUnchanged, items[1].Sign)
	require.Equal(t, 201500.0, items[2].Price)
}

func TestLoad_MembershipFailureKeepsPreviousList(t *testing.T) {
	f := newFixture(t, Options{})
	gomock.InOrder(
		f.watchlist.EXPECT().Watchlist(gomock.Any(), 1).Return([]market.WatchlistEntry{{StockCode: "005930"}}, nil),
		f.watchlist.EXPECT().Watchlist(gomock.Any(), 1).Return(nil, errors.New("502")),
	)
	f.quotes.EXPECT().Price(gomock.Any(), "005930", market.VenuePrimary).Return(price("1"), nil)

	_, err := f.store.Load(context.Background(), "", 1)
	require.NoError(t, err)
	_, err = f.store.Load(context.Background(), "", 1)
	require.Error(t, err)
	require.Len(t, f.store.Instruments(1), 1)
}

func TestLoad_CarriesChartDataForward(t *testing.T) {
	f := newFixture(t, Options{})
	f.watchlist.EXPECT().Watchlist(gomock.Any(), 1).Return([]market.WatchlistEntry{{StockCode: "005930"}, {StockCode: "000660"}}, nil)
	f.watchlist.EXPECT().Watchlist(gomock.Any(), 1).Return([]market.WatchlistEntry{{StockCode: "005930"}}, nil)
	f.quotes.EXPECT().Price(gomock.Any(), gomock.Any(), gomock.Any()).Return(price("1"), nil).AnyTimes()

	ctx := context.Background()
	_, err := f.store.Load(ctx, market.VenuePrimary, 1)
	require.NoError(t, err)

	raw := []market.RawCandle{{Time: "1", Close: "10"}}
	require.True(t, f.store.SetChartData(1, "005930", raw, market.PeriodWeek, market.VenuePrimary))
	require.False(t, f.store.SetChartData(1, "999999", raw, market.PeriodWeek, market.VenuePrimary))

	items, err := f.store.Load(ctx, market.VenuePrimary, 1)
	require.NoError(t, err)
	require.Len(t, items, 1, "reload replaces the list")
	require.Equal(t, market.PeriodWeek, items[0].Chart.Period)
	require.Equal(t, raw, items[0].Chart.Raw)
}

func TestApplyUpdates_VenueFallback(t *testing.T) {
	f := newFixture(t, Options{})
	f.watchlist.EXPECT().Watchlist(gomock.Any(), 1).Return([]market.WatchlistEntry{{StockCode: "005930"}}, nil)
	f.watchlist.EXPECT().Watchlist(gomock.Any(), 2).Return([]market.WatchlistEntry{{StockCode: "005930"}}, nil)
	f.watchlist.EXPECT().Watchlist(gomock.Any(), 3).Return([]market.WatchlistEntry{{StockCode: "005930"}}, nil)
	f.quotes.EXPECT().Price(gomock.Any(), gomock.Any(), gomock.Any()).Return(price("100"), nil).AnyTimes()

	ctx := context.Background()
	_, err := f.store.Load(ctx, market.VenueUnified, 1)
	require.NoError(t, err)
	_, err = f.store.Load(ctx, market.VenuePrimary, 2)
	require.NoError(t, err)
	_, err = f.store.Load(ctx, market.VenueAlternate, 3)
	require.NoError(t, err)

	snapshot := pricebuffer.Snapshot{
		"005930|NX": {StockCode: "005930", ExchangeCode: "NX", CurrentPrice: "70500", Change: "500", ChangeRate: "0.71"},
	}
	updated := f.store.ApplyUpdates(snapshot)
	require.Len(t, updated, 2)

	unified, _ := f.store.Find(1, "005930")
	require.Equal(t, 70500.0, unified.Price, "unified accepts the alternate venue")
	primary, _ := f.store.Find(2, "005930")
	require.Equal(t, 100.0, primary.Price, "primary must not accept the alternate venue")
	alternate, _ := f.store.Find(3, "005930")
	require.Equal(t, 70500.0, alternate.Price)
	require.Equal(t, 0.71, alternate.ChangeRate)
}

func TestApplyUpdates_NotifiesChangedGroups(t *testing.T) {
	f := newFixture(t, Options{})
	f.watchlist.EXPECT().Watchlist(gomock.Any(), 1).Return([]market.WatchlistEntry{{StockCode: "005930"}}, nil)
	f.quotes.EXPECT().Price(gomock.Any(), gomock.Any(), gomock.Any()).Return(price("100"), nil)

	_, err := f.store.Load(context.Background(), market.VenuePrimary, 1)
	require.NoError(t, err)

	var seen []int
	f.store.OnChange(func(groupID int, _ []market.Instrument) { seen = append(seen, groupID) })

	f.store.ApplyUpdates(pricebuffer.Snapshot{"000660|J": {StockCode: "000660", CurrentPrice: "1"}})
	require.Empty(t, seen, "untouched groups are not re-published")

	f.store.ApplyUpdates(pricebuffer.Snapshot{"005930|J": {StockCode: "005930", CurrentPrice: "1"}})
	require.Equal(t, []int{1}, seen)
}

func TestToggleFavorite_RoundTrip(t *testing.T) {
	f := newFixture(t, Options{RollbackOnFailure: true})

	var mu sync.Mutex
	server := true
	f.watchlist.EXPECT().SetFavorite(gomock.Any(), "005930", 1, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ int, v bool) error {
			mu.Lock()
			server = v
			mu.Unlock()
			return nil
		}).Times(2)
	f.watchlist.EXPECT().Watchlist(gomock.Any(), 1).
		DoAndReturn(func(context.Context, int) ([]market.WatchlistEntry, error) {
			mu.Lock()
			defer mu.Unlock()
			return []market.WatchlistEntry{{StockCode: "005930", IsFavorite: server}}, nil
		}).Times(2)
	f.quotes.EXPECT().Price(gomock.Any(), gomock.Any(), gomock.Any()).Return(price("1"), nil).AnyTimes()

	ctx := context.Background()
	_, err := f.store.Load(ctx, market.VenuePrimary, 1)
	require.NoError(t, err)

	m, err := f.store.ToggleFavorite(ctx, "005930", 1, false)
	require.NoError(t, err)
	require.Equal(t, MutationConfirmed, m.State)
	require.True(t, m.Previous)

	m, err = f.store.ToggleFavorite(ctx, "005930", 1, true)
	require.NoError(t, err)
	require.Equal(t, MutationConfirmed, m.State)

	local, _ := f.store.Find(1, "005930")
	reloaded, err := f.store.Load(ctx, market.VenuePrimary, 1)
	require.NoError(t, err)
	require.True(t, local.Favorite)
	require.Equal(t, local.Favorite, reloaded[0].Favorite)
	_, pending := f.store.PendingMutation(1, "005930")
	require.False(t, pending)
}

func TestToggleFavorite_FailurePolicies(t *testing.T) {
	for _, tc := range []struct {
		name     string
		rollback bool
		state    MutationState
		favorite bool
	}{
		{name: "rollback", rollback: true, state: MutationRolledBack, favorite: false},
		{name: "keep optimistic value", rollback: false, state: MutationDiverged, favorite: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, Options{RollbackOnFailure: tc.rollback})
			f.watchlist.EXPECT().Watchlist(gomock.Any(), 1).Return([]market.WatchlistEntry{{StockCode: "005930"}}, nil)
			f.quotes.EXPECT().Price(gomock.Any(), gomock.Any(), gomock.Any()).Return(price("1"), nil)
			f.watchlist.EXPECT().SetFavorite(gomock.Any(), "005930", 1, true).Return(errors.New("503"))

			ctx := context.Background()
			_, err := f.store.Load(ctx, market.VenuePrimary, 1)
			require.NoError(t, err)

			m, err := f.store.ToggleFavorite(ctx, "005930", 1, true)
			require.Error(t, err)
			require.Equal(t, tc.state, m.State)
			require.Error(t, m.Err)

			got, _ := f.store.Find(1, "005930")
			require.Equal(t, tc.favorite, got.Favorite)
		})
	}
}

func TestToggleFavorite_Validation(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	_, err := f.store.ToggleFavorite(ctx, "005930", 5, true)
	require.ErrorIs(t, err, ErrInvalidGroup)
	_, err = f.store.ToggleFavorite(ctx, "", 1, true)
	require.ErrorIs(t, err, ErrEmptyCode)
	_, err = f.store.ToggleFavorite(ctx, "005930", 1, true)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_ReloadsGroup(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	f.quotes.EXPECT().Price(gomock.Any(), gomock.Any(), market.VenueAlternate).Return(price("1"), nil).AnyTimes()

	gomock.InOrder(
		f.watchlist.EXPECT().Watchlist(gomock.Any(), 3).Return([]market.WatchlistEntry{{StockCode: "005930"}, {StockCode: "000660"}}, nil),
		f.watchlist.EXPECT().DeleteFromWatchlist(gomock.Any(), "000660", 3).Return(nil),
		f.watchlist.EXPECT().Watchlist(gomock.Any(), 3).Return([]market.WatchlistEntry{{StockCode: "005930"}}, nil),
		f.watchlist.EXPECT().DeleteGroup(gomock.Any(), 3).Return(nil),
		f.watchlist.EXPECT().Watchlist(gomock.Any(), 3).Return([]market.WatchlistEntry{}, nil),
	)

	_, err := f.store.Load(ctx, market.VenueAlternate, 3)
	require.NoError(t, err)

	items, err := f.store.Delete(ctx, "000660", 3)
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = f.store.DeleteAll(ctx, 3)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestInvalidGroup(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	_, err := f.store.Load(ctx, market.VenuePrimary, 0)
	require.ErrorIs(t, err, ErrInvalidGroup)
	_, err = f.store.DeleteAll(ctx, 5)
	require.ErrorIs(t, err, ErrInvalidGroup)
	_, err = f.store.Add(ctx, market.SearchResult{StockCode: "005930"}, market.VenuePrimary, 9)
	require.ErrorIs(t, err, ErrInvalidGroup)
}

func TestEnsure_AddsOnlyMissingEntries(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	boom := errors.New("boom")

	gomock.InOrder(
		f.watchlist.EXPECT().Watchlist(gomock.Any(), 2).Return([]market.WatchlistEntry{{StockCode: "005930"}}, nil),
		f.watchlist.EXPECT().AddToWatchlist(gomock.Any(), market.WatchlistEntry{
			StockCode: "000660", StockName: "SK hynix", ExchangeCode: "J", GroupID: 2,
		}).Return(nil),
		f.watchlist.EXPECT().SetFavorite(gomock.Any(), "000660", 2, true).Return(nil),
		f.watchlist.EXPECT().AddToWatchlist(gomock.Any(), market.WatchlistEntry{
			StockCode: "035420", ExchangeCode: "NX", GroupID: 2,
		}).Return(boom),
		f.watchlist.EXPECT().Watchlist(gomock.Any(), 2).
			Return([]market.WatchlistEntry{{StockCode: "005930"}, {StockCode: "000660", IsFavorite: true}}, nil),
	)
	f.quotes.EXPECT().Price(gomock.Any(), gomock.Any(), market.VenuePrimary).Return(price("100"), nil).Times(2)

	items, err := f.store.Ensure(ctx, 2, market.VenuePrimary, []market.WatchlistEntry{
		{StockCode: "005930"},
		{StockCode: " 000660 ", StockName: "SK hynix", IsFavorite: true},
		{StockCode: "035420", ExchangeCode: "NX"},
		{StockCode: ""},
	})
	require.ErrorIs(t, err, boom)
	require.Len(t, items, 2)
	require.True(t, items[1].Favorite)
}
