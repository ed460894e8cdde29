package restapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}

// fakeService returns canned results and records the viewer each call saw.
type fakeService struct {
	lastViewer entity.Viewer
	rendered   entity.RenderedDashboard
	renderErr  error
	crudErr    error
}

func (f *fakeService) RenderDashboard(ctx context.Context, viewer entity.Viewer, username, slug string) (entity.RenderedDashboard, error) {
	f.lastViewer = viewer
	return f.rendered, f.renderErr
}

func (f *fakeService) ProviderStates(bindings []entity.ProviderBinding) []port.ProviderState {
	states := make([]port.ProviderState, len(bindings))
	for i, b := range bindings {
		states[i] = port.ProviderState{Domain: b.Domain, Status: port.ProviderPending}
	}
	return states
}

func (f *fakeService) ListDashboards(ctx context.Context, viewer entity.Viewer, username string) ([]entity.Dashboard, bool, error) {
	f.lastViewer = viewer
	return []entity.Dashboard{{Slug: "main"}}, viewer.Username == username, nil
}

func (f *fakeService) CreateDashboard(ctx context.Context, viewer entity.Viewer, slug, title string) (entity.Dashboard, error) {
	f.lastViewer = viewer
	if f.crudErr != nil {
		return entity.Dashboard{}, f.crudErr
	}
	return entity.Dashboard{ID: "dash_1", Slug: slug, Title: title, OwnerUserID: viewer.UserID}, nil
}

func (f *fakeService) RenameDashboard(ctx context.Context, viewer entity.Viewer, username, slug, title string) error {
	f.lastViewer = viewer
	return f.crudErr
}

func (f *fakeService) CreateCard(ctx context.Context, viewer entity.Viewer, username, slug string, card entity.CardInstance, placeFirst bool) (string, error) {
	f.lastViewer = viewer
	if f.crudErr != nil {
		return "", f.crudErr
	}
	return "card_1", nil
}

func (f *fakeService) DeleteCards(ctx context.Context, viewer entity.Viewer, username, slug string, cardIDs []string) error {
	f.lastViewer = viewer
	return f.crudErr
}

func (f *fakeService) ReorderCards(ctx context.Context, viewer entity.Viewer, username, slug string, orders map[string]int) error {
	f.lastViewer = viewer
	return f.crudErr
}

type fakeGasClient struct {
	err error
}

func (f *fakeGasClient) GasSuggestionFor(ctx context.Context, network string) (entity.GasSuggestion, error) {
	if f.err != nil {
		return entity.GasSuggestion{}, f.err
	}
	return entity.GasSuggestion{
		Network:      network,
		GasPriceWei:  "25000000000",
		GasPriceGwei: 25,
	}, nil
}

func newTestRouter(svc *fakeService, gas *fakeGasClient) http.Handler {
	handler := NewDashboardHandler(svc, gas, nopLogger{})
	return SetupRouter(handler, zap.NewNop())
}

func TestRenderDashboardRoute(t *testing.T) {
	svc := &fakeService{rendered: entity.RenderedDashboard{
		Dashboard: entity.Dashboard{Slug: "main"},
		Providers: []entity.ProviderBinding{{Domain: entity.DomainCryptoQuote, Fingerprint: "quote:1"}},
	}}
	router := newTestRouter(svc, &fakeGasClient{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/alice/dashboards/main", nil)
	req.Header.Set("X-User-Id", "u-1")
	req.Header.Set("X-Username", "alice")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.Viewer{UserID: "u-1", Username: "alice"}, svc.lastViewer)
	assert.Contains(t, w.Body.String(), `"providerStates"`)
	assert.Contains(t, w.Body.String(), `"quote:1"`)
}

func TestRenderDashboardNotFoundRoute(t *testing.T) {
	svc := &fakeService{renderErr: entity.ErrDashboardNotFound}
	router := newTestRouter(svc, &fakeGasClient{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/alice/dashboards/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestViewerMiddlewareDefaultsToAnonymous(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc, &fakeGasClient{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/alice/dashboards", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.Viewer{}, svc.lastViewer)
}

func TestCreateDashboardRoute(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc, &fakeGasClient{})

	body := strings.NewReader(`{"slug":"new","title":"New"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboards", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "u-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"new"`)
}

func TestCreateDashboardRouteValidation(t *testing.T) {
	router := newTestRouter(&fakeService{}, &fakeGasClient{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboards", strings.NewReader(`{"slug":""}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{entity.ErrDashboardNotFound, http.StatusNotFound},
		{entity.ErrNotOwner, http.StatusForbidden},
		{entity.ErrSlugTaken, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		router := newTestRouter(&fakeService{crudErr: tc.err}, &fakeGasClient{})

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/alice/dashboards/main", strings.NewReader(`{"title":"X"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, tc.code, w.Code, tc.err)
	}
}

func TestReorderCardsRoute(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc, &fakeGasClient{})

	body := strings.NewReader(`{"orders":{"card_1":1,"card_2":0}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/alice/dashboards/main/cards/reorder", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGasRoute(t *testing.T) {
	router := newTestRouter(&fakeService{}, &fakeGasClient{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/gas/ethereum", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"gasPriceWei":"25000000000"`)
	assert.Contains(t, w.Body.String(), `"gasPriceGwei":25`)
	assert.Contains(t, w.Body.String(), `"network":"ethereum"`)
}

func TestGasRouteUpstreamFailure(t *testing.T) {
	router := newTestRouter(&fakeService{}, &fakeGasClient{err: errors.New("rpc down")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/gas/ethereum", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHealthRoute(t *testing.T) {
	router := newTestRouter(&fakeService{}, &fakeGasClient{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
