package service

import (
	"context"
	"fmt"
	"strings"

	"crypto_dashboard/internal/aggregate"
	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/catalog"
	"crypto_dashboard/internal/compose"
	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/pkg/metrics"
)

// dashboardServiceImpl wires the composition pipeline: card list in,
// provider-wrapped render tree out.
type dashboardServiceImpl struct {
	cards      port.CardStore
	dashboards port.DashboardStore
	catalog    *catalog.Catalog
	aggregator *aggregate.Aggregator
	composer   *compose.Composer
	sequencer  *compose.Sequencer
	providers  map[entity.DataDomain]port.DataProvider
	logger     port.Logger
}

// DashboardService exposes the composition entry point and the dashboard
// CRUD the rendering surface needs.
type DashboardService interface {
	// RenderDashboard is the one composition entry point: it derives the
	// requirement sets, decides the provider chain, sequences the card
	// list, and kicks each active provider's batched fetch. Aggregation is
	// pure and completes before any fetch is issued.
	RenderDashboard(ctx context.Context, viewer entity.Viewer, username, slug string) (entity.RenderedDashboard, error)

	// ProviderStates returns snapshots for the given bindings, in order.
	ProviderStates(bindings []entity.ProviderBinding) []port.ProviderState

	ListDashboards(ctx context.Context, viewer entity.Viewer, username string) ([]entity.Dashboard, bool, error)
	CreateDashboard(ctx context.Context, viewer entity.Viewer, slug, title string) (entity.Dashboard, error)
	RenameDashboard(ctx context.Context, viewer entity.Viewer, username, slug, title string) error
	CreateCard(ctx context.Context, viewer entity.Viewer, username, slug string, card entity.CardInstance, placeFirst bool) (string, error)
	DeleteCards(ctx context.Context, viewer entity.Viewer, username, slug string, cardIDs []string) error
	ReorderCards(ctx context.Context, viewer entity.Viewer, username, slug string, orders map[string]int) error
}

// NewDashboardService creates the service over its collaborators. providers
// maps each data domain to its shared provider; domains without an entry are
// composed into bindings but not refreshed (useful in tests).
func NewDashboardService(
	cards port.CardStore,
	dashboards port.DashboardStore,
	cat *catalog.Catalog,
	providers map[entity.DataDomain]port.DataProvider,
	logger port.Logger,
) DashboardService {
	return &dashboardServiceImpl{
		cards:      cards,
		dashboards: dashboards,
		catalog:    cat,
		aggregator: aggregate.NewAggregator(cat),
		composer:   compose.NewComposer(),
		sequencer:  compose.NewSequencer(cat),
		providers:  providers,
		logger:     logger,
	}
}

// RenderDashboard implements DashboardService.
func (s *dashboardServiceImpl) RenderDashboard(ctx context.Context, viewer entity.Viewer, username, slug string) (entity.RenderedDashboard, error) {
	dashboard, err := s.dashboards.GetDashboard(ctx, username, slug)
	if err != nil {
		metrics.RenderTotal.WithLabelValues("not_found").Inc()
		return entity.RenderedDashboard{}, err
	}

	cards, err := s.cards.GetCards(ctx, dashboard.ID)
	if err != nil {
		metrics.RenderTotal.WithLabelValues("error").Inc()
		return entity.RenderedDashboard{}, fmt.Errorf("loading cards for dashboard %s: %w", dashboard.ID, err)
	}

	// Pure, synchronous derivation: the requirement sets are fixed for
	// this render pass before any provider fetch starts.
	reqs := s.aggregator.Aggregate(cards)
	metrics.RequirementSetSize.WithLabelValues(string(entity.DomainCryptoQuote)).Observe(float64(len(reqs.CoinIDs)))
	metrics.RequirementSetSize.WithLabelValues(string(entity.DomainFiatRate)).Observe(float64(len(reqs.Tickers)))
	metrics.RequirementSetSize.WithLabelValues(string(entity.DomainChainBalance)).Observe(float64(len(reqs.Accounts)))

	preference := currencyPreferenceOf(cards)
	bindings := s.composer.Compose(reqs)
	attachConvert(bindings, preference)

	slots := s.sequencer.Sequence(cards)

	var renderErrors []entity.RenderError
	for _, slot := range slots {
		if slot.Kind == entity.SlotCard && slot.Card.Degraded {
			renderErrors = append(renderErrors, entity.RenderError{
				CardID:     slot.Card.ID,
				CardTypeID: slot.Card.CardTypeID,
				Message:    "card configuration is missing or malformed; card renders degraded",
			})
		}
	}

	// Fire-and-forget: providers fetch in the background, render proceeds
	// with whatever state each provider currently holds.
	for _, binding := range bindings {
		if p, ok := s.providers[binding.Domain]; ok {
			p.Refresh(ctx, binding)
		}
	}

	metrics.RenderTotal.WithLabelValues("success").Inc()
	s.logger.Debug("dashboard rendered",
		"dashboard", dashboard.Slug,
		"cards", len(cards),
		"providers", len(bindings),
		"degraded", len(renderErrors))

	return entity.RenderedDashboard{
		Dashboard:  dashboard,
		IsOwner:    viewer.IsOwnerOf(dashboard),
		Providers:  bindings,
		Slots:      slots,
		Preference: preference,
		Errors:     renderErrors,
	}, nil
}

// ProviderStates implements DashboardService.
func (s *dashboardServiceImpl) ProviderStates(bindings []entity.ProviderBinding) []port.ProviderState {
	states := make([]port.ProviderState, 0, len(bindings))
	for _, binding := range bindings {
		if p, ok := s.providers[binding.Domain]; ok {
			states = append(states, p.State())
		}
	}
	return states
}

// currencyPreferenceOf reads the dashboard preference off the first card in
// order. All cards are expected to store the same preference; when they
// conflict, the first card wins (deleting or reordering it changes the
// effective preference).
func currencyPreferenceOf(cards []entity.CardInstance) entity.CurrencyPreference {
	if len(cards) == 0 {
		return entity.DefaultCurrencyPreference
	}
	first := cards[0]
	if first.PrimaryCurrency == "" {
		return entity.DefaultCurrencyPreference
	}
	pref := entity.CurrencyPreference{
		Primary:   first.PrimaryCurrency,
		Secondary: first.SecondaryCurrency,
		Tertiary:  first.TertiaryCurrency,
	}
	if pref.Secondary == "" {
		pref.Secondary = entity.DefaultCurrencyPreference.Secondary
	}
	if pref.Tertiary == "" {
		pref.Tertiary = entity.DefaultCurrencyPreference.Tertiary
	}
	return pref
}

// attachConvert puts the preference currencies onto the quote and metrics
// bindings and folds them into the fingerprint, so the same id set converted
// into different currencies is cached as distinct content.
func attachConvert(bindings []entity.ProviderBinding, pref entity.CurrencyPreference) {
	convert := []string{pref.Primary, pref.Secondary, pref.Tertiary}
	for i := range bindings {
		switch bindings[i].Domain {
		case entity.DomainCryptoQuote, entity.DomainGlobalMetrics:
			bindings[i].Convert = convert
			bindings[i].Fingerprint += "|cv:" + strings.Join(convert, ",")
		}
	}
}
