package service

import (
	"context"
	"fmt"

	"crypto_dashboard/internal/domain/entity"
)

// ownedDashboard resolves a dashboard by slug and checks the viewer owns it.
func (s *dashboardServiceImpl) ownedDashboard(ctx context.Context, viewer entity.Viewer, username, slug string) (entity.Dashboard, error) {
	dashboard, err := s.dashboards.GetDashboard(ctx, username, slug)
	if err != nil {
		return entity.Dashboard{}, err
	}
	if !viewer.IsOwnerOf(dashboard) {
		return entity.Dashboard{}, entity.ErrNotOwner
	}
	return dashboard, nil
}

// ListDashboards implements DashboardService.
func (s *dashboardServiceImpl) ListDashboards(ctx context.Context, viewer entity.Viewer, username string) ([]entity.Dashboard, bool, error) {
	dashboards, err := s.dashboards.GetDashboards(ctx, username)
	if err != nil {
		return nil, false, err
	}
	isOwner := viewer.Username != "" && viewer.Username == username
	return dashboards, isOwner, nil
}

// CreateDashboard implements DashboardService.
func (s *dashboardServiceImpl) CreateDashboard(ctx context.Context, viewer entity.Viewer, slug, title string) (entity.Dashboard, error) {
	if viewer.UserID == "" {
		return entity.Dashboard{}, entity.ErrNotOwner
	}
	available, err := s.dashboards.SlugAvailable(ctx, viewer.UserID, slug)
	if err != nil {
		return entity.Dashboard{}, err
	}
	if !available {
		return entity.Dashboard{}, entity.ErrSlugTaken
	}

	dashboard := entity.Dashboard{
		Slug:        slug,
		Title:       title,
		OwnerUserID: viewer.UserID,
	}
	id, err := s.dashboards.CreateDashboard(ctx, dashboard)
	if err != nil {
		return entity.Dashboard{}, fmt.Errorf("creating dashboard %q: %w", slug, err)
	}
	dashboard.ID = id
	s.logger.Info("dashboard created", "slug", slug, "owner", viewer.UserID)
	return dashboard, nil
}

// RenameDashboard implements DashboardService.
func (s *dashboardServiceImpl) RenameDashboard(ctx context.Context, viewer entity.Viewer, username, slug, title string) error {
	dashboard, err := s.ownedDashboard(ctx, viewer, username, slug)
	if err != nil {
		return err
	}
	return s.dashboards.RenameDashboard(ctx, dashboard.ID, title)
}

// CreateCard implements DashboardService. The card lands first or last in
// xOrder; values are stored as given, validation happens at render time
// where a malformed card degrades instead of failing.
func (s *dashboardServiceImpl) CreateCard(ctx context.Context, viewer entity.Viewer, username, slug string, card entity.CardInstance, placeFirst bool) (string, error) {
	dashboard, err := s.ownedDashboard(ctx, viewer, username, slug)
	if err != nil {
		return "", err
	}
	if _, known := s.catalog.Lookup(card.CardTypeID); !known {
		s.logger.Warn("creating card of unknown type; it will render degraded",
			"cardTypeId", card.CardTypeID, "dashboard", slug)
	}

	if placeFirst {
		card.XOrder = 0
		cards, err := s.cards.GetCards(ctx, dashboard.ID)
		if err != nil {
			return "", err
		}
		orders := make(map[string]int, len(cards))
		for _, existing := range cards {
			orders[existing.ID] = existing.XOrder + 1
		}
		if err := s.cards.ReorderCards(ctx, dashboard.ID, orders); err != nil {
			return "", err
		}
	} else {
		max, err := s.cards.MaxXOrder(ctx, dashboard.ID)
		if err != nil {
			return "", err
		}
		card.XOrder = max + 1
	}

	id, err := s.cards.CreateCard(ctx, dashboard.ID, card)
	if err != nil {
		return "", fmt.Errorf("creating %s card on dashboard %s: %w", card.CardTypeID, slug, err)
	}
	s.logger.Info("card created", "cardTypeId", card.CardTypeID, "dashboard", slug, "xOrder", card.XOrder)
	return id, nil
}

// DeleteCards implements DashboardService.
func (s *dashboardServiceImpl) DeleteCards(ctx context.Context, viewer entity.Viewer, username, slug string, cardIDs []string) error {
	dashboard, err := s.ownedDashboard(ctx, viewer, username, slug)
	if err != nil {
		return err
	}
	return s.cards.DeleteCards(ctx, dashboard.ID, cardIDs)
}

// ReorderCards implements DashboardService.
func (s *dashboardServiceImpl) ReorderCards(ctx context.Context, viewer entity.Viewer, username, slug string, orders map[string]int) error {
	dashboard, err := s.ownedDashboard(ctx, viewer, username, slug)
	if err != nil {
		return err
	}
	return s.cards.ReorderCards(ctx, dashboard.ID, orders)
}
