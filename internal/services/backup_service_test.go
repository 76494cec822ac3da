package services

import (
	"context"
	"testing"

	"catering_manager/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	order := confirmSampleOrder(t, env)

	snap := env.backup.Snapshot()
	require.Len(t, snap.Orders, 1)
	assert.Equal(t, order.ID, snap.Orders[0].ID)

	other := newTestEnv(t)
	require.NoError(t, other.backup.Restore(context.Background(), snap))
	assert.Equal(t, snap, other.backup.Snapshot())

	persisted, err := other.repos.Orders.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snap.Orders, persisted)
}

func TestRestorePrunesUnknownItemReferences(t *testing.T) {
	env := newTestEnv(t)

	err := env.backup.Restore(context.Background(), models.Snapshot{
		Items: []models.Item{{ID: "1", Name: "Idli"}},
		Menus: []models.Menu{{ID: "2", Name: "Breakfast", Price: 100, Items: []string{"1", "9", "1"}}},
	})
	require.NoError(t, err)

	menus := env.menus.ListMenus()
	require.Len(t, menus, 1)
	assert.Equal(t, []string{"1"}, menus[0].Items)
	assert.NotNil(t, env.orders.ListOrders())
}

func TestRestoreResetsTransientState(t *testing.T) {
	env := newTestEnv(t)
	confirmSampleOrder(t, env)
	items := env.catalog.ListItems()
	env.catalog.EditItem(items[0].ID)

	require.NoError(t, env.backup.Restore(context.Background(), env.backup.Snapshot()))
	assert.Nil(t, env.orders.Draft())
	assert.False(t, env.orders.ExportsEnabled())
	assert.Empty(t, env.catalog.EditingItemID())
}

func TestRestoreRejectsInvalidSnapshots(t *testing.T) {
	tests := []struct {
		name string
		snap models.Snapshot
	}{
		{name: "blank item", snap: models.Snapshot{Items: []models.Item{{ID: "1"}}}},
		{name: "duplicate item", snap: models.Snapshot{Items: []models.Item{{ID: "1", Name: "a"}, {ID: "1", Name: "b"}}}},
		{name: "negative price", snap: models.Snapshot{Menus: []models.Menu{{ID: "1", Name: "m", Price: -5}}}},
		{name: "duplicate menu", snap: models.Snapshot{Menus: []models.Menu{{ID: "1", Name: "m"}, {ID: "1", Name: "n"}}}},
		{name: "zero quantity", snap: models.Snapshot{Orders: []models.Order{{ID: "1", Quantity: 0}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.addItem(t, "Keep me")

			err := env.backup.Restore(context.Background(), tt.snap)
			assert.True(t, IsValidation(err))
			assert.Len(t, env.catalog.ListItems(), 1)
		})
	}
}

func TestIDsAfterRestoreStayAhead(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.backup.Restore(context.Background(), models.Snapshot{
		Items: []models.Item{{ID: "9999999999999", Name: "Future"}},
	}))

	item := env.addItem(t, "Now")
	assert.Equal(t, "10000000000000", item.ID)
}
