package service

import (
	"context"
	"sync"
	"testing"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/catalog"
	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}

// fakeProvider records Refresh calls; Refresh on the real providers is
// fire-and-forget so the service only needs the call to happen.
type fakeProvider struct {
	domain entity.DataDomain

	mu       sync.Mutex
	bindings []entity.ProviderBinding
}

func (f *fakeProvider) Domain() entity.DataDomain { return f.domain }

func (f *fakeProvider) Refresh(ctx context.Context, binding entity.ProviderBinding) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bindings = append(f.bindings, binding)
}

func (f *fakeProvider) State() port.ProviderState {
	return port.ProviderState{Domain: f.domain, Status: port.ProviderReady}
}

func (f *fakeProvider) refreshed() []entity.ProviderBinding {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.ProviderBinding, len(f.bindings))
	copy(out, f.bindings)
	return out
}

type fixture struct {
	svc       DashboardService
	store     *repository.InMemoryStore
	providers map[entity.DataDomain]*fakeProvider
	dashID    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := repository.NewInMemoryStore()
	store.RegisterUser("u-1", "alice")
	dashID, err := store.CreateDashboard(context.Background(), entity.Dashboard{
		Slug: "main", Title: "Main", OwnerUserID: "u-1",
	})
	require.NoError(t, err)

	fakes := map[entity.DataDomain]*fakeProvider{
		entity.DomainCryptoQuote:   {domain: entity.DomainCryptoQuote},
		entity.DomainFiatRate:      {domain: entity.DomainFiatRate},
		entity.DomainChainBalance:  {domain: entity.DomainChainBalance},
		entity.DomainGlobalMetrics: {domain: entity.DomainGlobalMetrics},
	}
	providers := make(map[entity.DataDomain]port.DataProvider, len(fakes))
	for d, p := range fakes {
		providers[d] = p
	}

	svc := NewDashboardService(store, store, catalog.Default(), providers, nopLogger{})
	return &fixture{svc: svc, store: store, providers: fakes, dashID: dashID}
}

func (fx *fixture) addCard(t *testing.T, card entity.CardInstance) {
	t.Helper()
	_, err := fx.store.CreateCard(context.Background(), fx.dashID, card)
	require.NoError(t, err)
}

var owner = entity.Viewer{UserID: "u-1", Username: "alice"}

func TestRenderDashboardNotFound(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.RenderDashboard(context.Background(), owner, "alice", "missing")
	assert.ErrorIs(t, err, entity.ErrDashboardNotFound)
}

func TestRenderDashboardComposesAndRefreshes(t *testing.T) {
	fx := newFixture(t)
	fx.addCard(t, entity.CardInstance{
		CardTypeID: catalog.TypeCrypto,
		XOrder:     0,
		Values:     []entity.ValueEntry{{ID: catalog.FieldCoinID, Value: "1"}},
	})
	fx.addCard(t, entity.CardInstance{
		CardTypeID: catalog.TypeFiatCurrency,
		XOrder:     1,
		Values: []entity.ValueEntry{
			{ID: catalog.FieldTickerBase, Value: "EUR"},
			{ID: catalog.FieldTickerQuote, Value: "USD"},
		},
	})

	rendered, err := fx.svc.RenderDashboard(context.Background(), owner, "alice", "main")
	require.NoError(t, err)

	assert.True(t, rendered.IsOwner)
	require.Len(t, rendered.Providers, 2)
	assert.Equal(t, entity.DomainFiatRate, rendered.Providers[0].Domain)
	assert.Equal(t, entity.DomainCryptoQuote, rendered.Providers[1].Domain)
	assert.Len(t, rendered.Slots, 2)
	assert.Empty(t, rendered.Errors)

	rateRefreshes := fx.providers[entity.DomainFiatRate].refreshed()
	require.Len(t, rateRefreshes, 1)
	assert.Equal(t, []string{"EUR/USD"}, rateRefreshes[0].Tickers)

	quoteRefreshes := fx.providers[entity.DomainCryptoQuote].refreshed()
	require.Len(t, quoteRefreshes, 1)
	assert.Equal(t, []int64{1}, quoteRefreshes[0].CoinIDs)
	assert.Empty(t, fx.providers[entity.DomainChainBalance].refreshed())
}

func TestRenderDashboardAttachesConvertCurrencies(t *testing.T) {
	fx := newFixture(t)
	fx.addCard(t, entity.CardInstance{
		CardTypeID:        catalog.TypeCrypto,
		XOrder:            0,
		Values:            []entity.ValueEntry{{ID: catalog.FieldCoinID, Value: "1"}},
		PrimaryCurrency:   "CHF",
		SecondaryCurrency: "USD",
		TertiaryCurrency:  "ETH",
	})

	rendered, err := fx.svc.RenderDashboard(context.Background(), owner, "alice", "main")
	require.NoError(t, err)

	assert.Equal(t, entity.CurrencyPreference{Primary: "CHF", Secondary: "USD", Tertiary: "ETH"}, rendered.Preference)
	require.Len(t, rendered.Providers, 1)
	assert.Equal(t, []string{"CHF", "USD", "ETH"}, rendered.Providers[0].Convert)
	assert.Contains(t, rendered.Providers[0].Fingerprint, "|cv:CHF,USD,ETH")
}

func TestRenderDashboardFirstCardWinsPreference(t *testing.T) {
	fx := newFixture(t)
	fx.addCard(t, entity.CardInstance{
		CardTypeID:      catalog.TypeCrypto,
		XOrder:          1,
		Values:          []entity.ValueEntry{{ID: catalog.FieldCoinID, Value: "1027"}},
		PrimaryCurrency: "GBP",
	})
	fx.addCard(t, entity.CardInstance{
		CardTypeID:      catalog.TypeCrypto,
		XOrder:          0,
		Values:          []entity.ValueEntry{{ID: catalog.FieldCoinID, Value: "1"}},
		PrimaryCurrency: "JPY",
	})

	rendered, err := fx.svc.RenderDashboard(context.Background(), owner, "alice", "main")
	require.NoError(t, err)

	// The card at xOrder 0 wins; its unset slots fall back to defaults.
	assert.Equal(t, "JPY", rendered.Preference.Primary)
	assert.Equal(t, entity.DefaultCurrencyPreference.Secondary, rendered.Preference.Secondary)
}

func TestRenderDashboardEmptyUsesDefaultPreference(t *testing.T) {
	fx := newFixture(t)

	rendered, err := fx.svc.RenderDashboard(context.Background(), entity.Viewer{}, "alice", "main")
	require.NoError(t, err)

	assert.False(t, rendered.IsOwner)
	assert.Empty(t, rendered.Providers)
	assert.Empty(t, rendered.Slots)
	assert.Equal(t, entity.DefaultCurrencyPreference, rendered.Preference)
}

func TestRenderDashboardDegradedCardsSurfaceAsErrors(t *testing.T) {
	fx := newFixture(t)
	fx.addCard(t, entity.CardInstance{
		CardTypeID: catalog.TypeCrypto,
		XOrder:     0,
		Values:     []entity.ValueEntry{{ID: catalog.FieldCoinID, Value: "garbage"}},
	})
	fx.addCard(t, entity.CardInstance{
		CardTypeID: catalog.TypeCrypto,
		XOrder:     1,
		Values:     []entity.ValueEntry{{ID: catalog.FieldCoinID, Value: "1"}},
	})

	rendered, err := fx.svc.RenderDashboard(context.Background(), owner, "alice", "main")
	require.NoError(t, err)

	// The malformed card degrades; the rest of the dashboard renders.
	require.Len(t, rendered.Errors, 1)
	assert.Equal(t, catalog.TypeCrypto, rendered.Errors[0].CardTypeID)
	assert.Len(t, rendered.Slots, 2)
	require.Len(t, rendered.Providers, 1)
	assert.Equal(t, []int64{1}, rendered.Providers[0].CoinIDs)
}

func TestProviderStatesFollowBindingOrder(t *testing.T) {
	fx := newFixture(t)

	states := fx.svc.ProviderStates([]entity.ProviderBinding{
		{Domain: entity.DomainFiatRate},
		{Domain: entity.DomainCryptoQuote},
	})

	require.Len(t, states, 2)
	assert.Equal(t, entity.DomainFiatRate, states[0].Domain)
	assert.Equal(t, entity.DomainCryptoQuote, states[1].Domain)
}

func TestCreateDashboardRequiresIdentity(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.CreateDashboard(context.Background(), entity.Viewer{}, "new", "New")
	assert.ErrorIs(t, err, entity.ErrNotOwner)
}

func TestCreateDashboardRejectsTakenSlug(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.CreateDashboard(context.Background(), owner, "main", "Duplicate")
	assert.ErrorIs(t, err, entity.ErrSlugTaken)
}

func TestMutationsRequireOwnership(t *testing.T) {
	fx := newFixture(t)
	stranger := entity.Viewer{UserID: "u-2", Username: "bob"}
	ctx := context.Background()

	assert.ErrorIs(t, fx.svc.RenameDashboard(ctx, stranger, "alice", "main", "Hijacked"), entity.ErrNotOwner)
	_, err := fx.svc.CreateCard(ctx, stranger, "alice", "main", entity.CardInstance{CardTypeID: catalog.TypeCrypto}, false)
	assert.ErrorIs(t, err, entity.ErrNotOwner)
	assert.ErrorIs(t, fx.svc.DeleteCards(ctx, stranger, "alice", "main", []string{"card_1"}), entity.ErrNotOwner)
	assert.ErrorIs(t, fx.svc.ReorderCards(ctx, stranger, "alice", "main", map[string]int{"card_1": 0}), entity.ErrNotOwner)
}

func TestCreateCardPlacement(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	first, err := fx.svc.CreateCard(ctx, owner, "alice", "main", entity.CardInstance{
		CardTypeID: catalog.TypeCrypto,
		Values:     []entity.ValueEntry{{ID: catalog.FieldCoinID, Value: "1"}},
	}, false)
	require.NoError(t, err)

	second, err := fx.svc.CreateCard(ctx, owner, "alice", "main", entity.CardInstance{
		CardTypeID: catalog.TypeFearGreedIndex,
	}, false)
	require.NoError(t, err)

	// placeFirst shifts every existing card down one slot.
	third, err := fx.svc.CreateCard(ctx, owner, "alice", "main", entity.CardInstance{
		CardTypeID: catalog.TypeCalculator,
	}, true)
	require.NoError(t, err)

	cards, err := fx.store.GetCards(ctx, fx.dashID)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, third, cards[0].ID)
	assert.Equal(t, first, cards[1].ID)
	assert.Equal(t, second, cards[2].ID)
}

func TestListDashboards(t *testing.T) {
	fx := newFixture(t)

	dashboards, isOwner, err := fx.svc.ListDashboards(context.Background(), owner, "alice")
	require.NoError(t, err)
	assert.True(t, isOwner)
	require.Len(t, dashboards, 1)
	assert.Equal(t, "main", dashboards[0].Slug)

	_, isOwner, err = fx.svc.ListDashboards(context.Background(), entity.Viewer{}, "alice")
	require.NoError(t, err)
	assert.False(t, isOwner)
}
