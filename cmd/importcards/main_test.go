package main

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/cardplanner/internal/cache"
	"github.com/mmynk/cardplanner/internal/models"
	"github.com/mmynk/cardplanner/internal/storage/sqlite"
	"github.com/mmynk/cardplanner/pkg/api"
)

// invalidations records the users whose plans were invalidated.
type invalidations struct {
	mu    sync.Mutex
	users []string
}

func (c *invalidations) Lookup(context.Context, string, string) (*api.OptimalPlan, int64, error) {
	return nil, 0, nil
}

func (c *invalidations) Store(context.Context, string, string, int64, *api.OptimalPlan) error {
	return nil
}

func (c *invalidations) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = append(c.users, userID)
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunImportsAndUpdates(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "cards.db")

	n, err := run(ctx, dbPath, writeFile(t, `[
		{"id": "bolt", "name": "Lightning Bolt", "color": "R"},
		{"id": "path", "name": "Path to Exile", "color": "W", "imagePath": "/img/path.png"}
	]`), cache.Noop{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = run(ctx, dbPath, writeFile(t, `[{"id": "bolt", "name": "Lightning Bolt (M10)", "color": "R"}]`), cache.Noop{})
	require.NoError(t, err)

	store, err := sqlite.New(dbPath)
	require.NoError(t, err)
	defer store.Close()

	card, err := store.GetCard(ctx, "bolt")
	require.NoError(t, err)
	assert.Equal(t, "Lightning Bolt (M10)", card.Name)

	card, err = store.GetCard(ctx, "path")
	require.NoError(t, err)
	assert.Equal(t, "/img/path.png", card.ImagePath)
}

func TestRunInvalidatesPlansOfAffectedUsers(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "cards.db")

	_, err := run(ctx, dbPath, writeFile(t, `[
		{"id": "bolt", "name": "Lightning Bolt"},
		{"id": "path", "name": "Path to Exile"}
	]`), cache.Noop{})
	require.NoError(t, err)

	store, err := sqlite.New(dbPath)
	require.NoError(t, err)
	defer store.Close()

	owner := func(email, cardID string) *models.User {
		user := models.NewUser(email, email, "hash")
		require.NoError(t, store.CreateUser(ctx, user))
		list := &models.PurchaseList{UserID: user.ID}
		require.NoError(t, store.CreatePurchaseList(ctx, list))
		require.NoError(t, store.CreatePurchaseItem(ctx, user.ID, &models.PurchaseItem{ListID: list.ID, CardID: cardID, Quantity: 1}))
		return user
	}
	alice := owner("alice@example.com", "bolt")
	owner("bob@example.com", "path")

	plans := &invalidations{}
	_, err = run(ctx, dbPath, writeFile(t, `[{"id": "bolt", "name": "Lightning Bolt (M10)"}]`), plans)
	require.NoError(t, err)
	assert.Equal(t, []string{alice.ID}, plans.users)
}

func TestReadCardsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{{`},
		{"missing id", `[{"name": "Nameless"}]`},
		{"missing name", `[{"id": "x"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readCards(writeFile(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := readCards(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
