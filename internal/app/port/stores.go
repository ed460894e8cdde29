package port

import (
	"context"

	"crypto_dashboard/internal/domain/entity"
)

// CardStore is the persistence boundary for cards. The composition core
// treats it as a black box returning cards in ascending xOrder.
type CardStore interface {
	// GetCards returns the dashboard's cards ordered by xOrder ascending.
	GetCards(ctx context.Context, dashboardID string) ([]entity.CardInstance, error)

	// CreateCard inserts a card with its value bag at the given xOrder.
	CreateCard(ctx context.Context, dashboardID string, card entity.CardInstance) (string, error)

	// DeleteCards removes the given cards. Unknown ids are skipped.
	DeleteCards(ctx context.Context, dashboardID string, cardIDs []string) error

	// ReorderCards applies new xOrder values. Ids absent from the map keep
	// their current order.
	ReorderCards(ctx context.Context, dashboardID string, orders map[string]int) error

	// MaxXOrder returns the highest xOrder on the dashboard, -1 when empty.
	MaxXOrder(ctx context.Context, dashboardID string) (int, error)
}

// DashboardStore is the persistence boundary for dashboards.
type DashboardStore interface {
	// GetDashboard resolves a dashboard by owner username and slug.
	// Returns entity.ErrDashboardNotFound when absent or when it is not
	// visible to the viewer.
	GetDashboard(ctx context.Context, username, slug string) (entity.Dashboard, error)

	// GetDashboards lists a user's dashboards ordered by xOrder.
	GetDashboards(ctx context.Context, username string) ([]entity.Dashboard, error)

	// CreateDashboard inserts a dashboard; returns entity.ErrSlugTaken if
	// the owner already uses the slug.
	CreateDashboard(ctx context.Context, d entity.Dashboard) (string, error)

	// RenameDashboard sets a new title.
	RenameDashboard(ctx context.Context, dashboardID, title string) error

	// SlugAvailable reports whether the owner may use the slug.
	SlugAvailable(ctx context.Context, ownerUserID, slug string) (bool, error)
}
