// Package repository provides the in-memory persistence used behind the
// store ports. The composition core only sees the port interfaces; swapping
// in a database-backed implementation is a drop-in change.
package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"crypto_dashboard/internal/domain/entity"
)

// InMemoryStore implements port.CardStore and port.DashboardStore.
type InMemoryStore struct {
	mu         sync.RWMutex
	dashboards map[string]entity.Dashboard
	cards      map[string][]entity.CardInstance // keyed by dashboard id
	usernames  map[string]string                // username -> user id
	nextID     atomic.Uint64
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		dashboards: make(map[string]entity.Dashboard),
		cards:      make(map[string][]entity.CardInstance),
		usernames:  make(map[string]string),
	}
}

// RegisterUser records a username for an owner id so dashboards resolve by
// username. Called by the seed loader; a real deployment gets this from the
// identity service.
func (s *InMemoryStore) RegisterUser(userID, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usernames[username] = userID
}

func (s *InMemoryStore) newID(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, s.nextID.Add(1))
}

// GetDashboard implements port.DashboardStore.
func (s *InMemoryStore) GetDashboard(ctx context.Context, username, slug string) (entity.Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.usernames[username]
	if !ok {
		return entity.Dashboard{}, entity.ErrDashboardNotFound
	}
	for _, d := range s.dashboards {
		if d.OwnerUserID == userID && d.Slug == slug {
			return d, nil
		}
	}
	return entity.Dashboard{}, entity.ErrDashboardNotFound
}

// GetDashboards implements port.DashboardStore.
func (s *InMemoryStore) GetDashboards(ctx context.Context, username string) ([]entity.Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.usernames[username]
	if !ok {
		return nil, nil
	}
	var result []entity.Dashboard
	for _, d := range s.dashboards {
		if d.OwnerUserID == userID {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].XOrder < result[j].XOrder })
	return result, nil
}

// CreateDashboard implements port.DashboardStore.
func (s *InMemoryStore) CreateDashboard(ctx context.Context, d entity.Dashboard) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.dashboards {
		if existing.OwnerUserID == d.OwnerUserID && existing.Slug == d.Slug {
			return "", entity.ErrSlugTaken
		}
	}
	if d.ID == "" {
		d.ID = s.newID("dash")
	}
	s.dashboards[d.ID] = d
	return d.ID, nil
}

// RenameDashboard implements port.DashboardStore.
func (s *InMemoryStore) RenameDashboard(ctx context.Context, dashboardID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.dashboards[dashboardID]
	if !ok {
		return entity.ErrDashboardNotFound
	}
	d.Title = title
	s.dashboards[dashboardID] = d
	return nil
}

// SlugAvailable implements port.DashboardStore.
func (s *InMemoryStore) SlugAvailable(ctx context.Context, ownerUserID, slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.dashboards {
		if d.OwnerUserID == ownerUserID && d.Slug == slug {
			return false, nil
		}
	}
	return true, nil
}

// GetCards implements port.CardStore. Cards come back ordered by xOrder
// ascending, the authoritative render order.
func (s *InMemoryStore) GetCards(ctx context.Context, dashboardID string) ([]entity.CardInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cards := s.cards[dashboardID]
	result := make([]entity.CardInstance, len(cards))
	copy(result, cards)
	sort.SliceStable(result, func(i, j int) bool { return result[i].XOrder < result[j].XOrder })
	return result, nil
}

// CreateCard implements port.CardStore.
func (s *InMemoryStore) CreateCard(ctx context.Context, dashboardID string, card entity.CardInstance) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.dashboards[dashboardID]; !ok {
		return "", entity.ErrDashboardNotFound
	}
	if card.ID == "" {
		card.ID = s.newID("card")
	}
	s.cards[dashboardID] = append(s.cards[dashboardID], card)
	return card.ID, nil
}

// DeleteCards implements port.CardStore. Unknown ids are skipped.
func (s *InMemoryStore) DeleteCards(ctx context.Context, dashboardID string, cardIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]struct{}, len(cardIDs))
	for _, id := range cardIDs {
		drop[id] = struct{}{}
	}
	kept := s.cards[dashboardID][:0]
	for _, card := range s.cards[dashboardID] {
		if _, gone := drop[card.ID]; !gone {
			kept = append(kept, card)
		}
	}
	s.cards[dashboardID] = kept
	return nil
}

// ReorderCards implements port.CardStore.
func (s *InMemoryStore) ReorderCards(ctx context.Context, dashboardID string, orders map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := s.cards[dashboardID]
	for i, card := range cards {
		if newOrder, ok := orders[card.ID]; ok {
			cards[i].XOrder = newOrder
		}
	}
	return nil
}

// MaxXOrder implements port.CardStore.
func (s *InMemoryStore) MaxXOrder(ctx context.Context, dashboardID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	max := -1
	for _, card := range s.cards[dashboardID] {
		if card.XOrder > max {
			max = card.XOrder
		}
	}
	return max, nil
}
