// Package seedloader populates the in-memory store from a YAML seed file at
// startup: users, their dashboards, and each dashboard's cards.
package seedloader

import (
	"context"
	"fmt"
	"os"

	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/internal/repository"

	"gopkg.in/yaml.v3"
)

// Seed is the file layout.
type Seed struct {
	Users []SeedUser `yaml:"users"`
}

// SeedUser is one user with their dashboards.
type SeedUser struct {
	ID         string          `yaml:"id"`
	Username   string          `yaml:"username"`
	Dashboards []SeedDashboard `yaml:"dashboards"`
}

// SeedDashboard is one dashboard with its cards in render order.
type SeedDashboard struct {
	Slug  string     `yaml:"slug"`
	Title string     `yaml:"title"`
	Cards []SeedCard `yaml:"cards"`
}

// SeedCard is one card entry. XOrder is a pointer so an explicit 0 is
// distinguishable from an omitted field.
type SeedCard struct {
	CardTypeID        string              `yaml:"cardTypeId"`
	XOrder            *int                `yaml:"xOrder"`
	Values            []entity.ValueEntry `yaml:"values"`
	PrimaryCurrency   string              `yaml:"primaryCurrency"`
	SecondaryCurrency string              `yaml:"secondaryCurrency"`
	TertiaryCurrency  string              `yaml:"tertiaryCurrency"`
}

// Load reads the seed file and inserts its contents into the store. Cards
// without an explicit xOrder get their position in the file.
func Load(ctx context.Context, path string, store *repository.InMemoryStore, loggerInfo func(msg string, args ...any)) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to unmarshal seed file %s: %w", path, err)
	}

	var dashboards, cards int
	for _, user := range seed.Users {
		store.RegisterUser(user.ID, user.Username)
		for di, sd := range user.Dashboards {
			dashID, err := store.CreateDashboard(ctx, entity.Dashboard{
				Slug:        sd.Slug,
				Title:       sd.Title,
				OwnerUserID: user.ID,
				XOrder:      di,
			})
			if err != nil {
				return fmt.Errorf("seeding dashboard %s/%s: %w", user.Username, sd.Slug, err)
			}
			dashboards++
			for ci, sc := range sd.Cards {
				card := entity.CardInstance{
					CardTypeID:        sc.CardTypeID,
					XOrder:            ci,
					Values:            sc.Values,
					PrimaryCurrency:   sc.PrimaryCurrency,
					SecondaryCurrency: sc.SecondaryCurrency,
					TertiaryCurrency:  sc.TertiaryCurrency,
				}
				if sc.XOrder != nil {
					card.XOrder = *sc.XOrder
				}
				if _, err := store.CreateCard(ctx, dashID, card); err != nil {
					return fmt.Errorf("seeding card %d on %s/%s: %w", ci, user.Username, sd.Slug, err)
				}
				cards++
			}
		}
	}

	if loggerInfo != nil {
		loggerInfo("Seed data loaded", "path", path, "users", len(seed.Users), "dashboards", dashboards, "cards", cards)
	}
	return nil
}
