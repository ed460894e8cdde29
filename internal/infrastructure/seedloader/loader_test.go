package seedloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"crypto_dashboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSeed = `
users:
  - id: "u-1"
    username: "alice"
    dashboards:
      - slug: "main"
        title: "Main"
        cards:
          - cardTypeId: "crypto"
            values:
              - id: "coin_id"
                value: "1"
          - cardTypeId: "fear_greed_index"
      - slug: "empty"
        title: "Empty"
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSeed(t *testing.T) {
	store := repository.NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, Load(ctx, writeSeed(t, sampleSeed), store, nil))

	dashboards, err := store.GetDashboards(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, dashboards, 2)
	assert.Equal(t, "main", dashboards[0].Slug)

	cards, err := store.GetCards(ctx, dashboards[0].ID)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "crypto", cards[0].CardTypeID)
	assert.Equal(t, 1, cards[1].XOrder, "cards without explicit xOrder take their file position")

	cards, err = store.GetCards(ctx, dashboards[1].ID)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestLoadSeedExplicitZeroOrder(t *testing.T) {
	const seed = `
users:
  - id: "u-1"
    username: "alice"
    dashboards:
      - slug: "main"
        title: "Main"
        cards:
          - cardTypeId: "crypto"
            xOrder: 1
          - cardTypeId: "fiat"
            xOrder: 0
`
	store := repository.NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, Load(ctx, writeSeed(t, seed), store, nil))

	dashboards, err := store.GetDashboards(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, dashboards, 1)

	cards, err := store.GetCards(ctx, dashboards[0].ID)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "fiat", cards[0].CardTypeID, "an explicit xOrder of 0 wins over file position")
	assert.Equal(t, 0, cards[0].XOrder)
	assert.Equal(t, "crypto", cards[1].CardTypeID)
	assert.Equal(t, 1, cards[1].XOrder)
}

func TestLoadSeedMissingFile(t *testing.T) {
	store := repository.NewInMemoryStore()

	err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.yml"), store, nil)
	assert.Error(t, err)
}

func TestLoadSeedMalformedYAML(t *testing.T) {
	store := repository.NewInMemoryStore()

	err := Load(context.Background(), writeSeed(t, "users: [oops"), store, nil)
	assert.Error(t, err)
}
