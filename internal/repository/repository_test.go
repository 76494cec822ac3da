package repository

import (
	"context"
	"testing"

	"catering_manager/internal/models"
	"catering_manager/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionsStartEmpty(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(store.NewMemory(), DefaultKeys("lakshmi_"))

	items, err := repos.Items.LoadAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	menus, err := repos.Menus.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, menus)

	orders, err := repos.Orders.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCollectionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	repos := NewRepositories(mem, DefaultKeys("lakshmi_"))

	items := []models.Item{{ID: "1", Name: "Idli"}, {ID: "2", Name: "Vada"}}
	menus := []models.Menu{{ID: "10", Name: "Breakfast", Price: 150, Items: []string{"1", "2"}}, {ID: "11", Name: "Empty", Price: 0}}
	orders := []models.Order{{ID: "20", ClientName: "Ravi", MenuName: "Breakfast", MenuPrice: 150,
		Items: []string{"Idli", "Vada"}, Quantity: 5, TotalAmount: 750, Date: "2024-05-01T10:00:00Z"}}

	require.NoError(t, repos.Items.SaveAll(ctx, items))
	require.NoError(t, repos.Menus.SaveAll(ctx, menus))
	require.NoError(t, repos.Orders.SaveAll(ctx, orders))

	gotItems, err := repos.Items.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, gotItems)

	gotMenus, err := repos.Menus.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{}, gotMenus[1].Items)
	assert.Equal(t, menus[0], gotMenus[0])

	gotOrders, err := repos.Orders.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, orders, gotOrders)

	raw, err := mem.Get(ctx, "lakshmi_menus")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"items":[]`)
}

func TestCorruptCollection(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.Set(ctx, "lakshmi_items", []byte("{not json")))

	_, err := NewItemRepository(mem, "lakshmi_items").LoadAll(ctx)
	assert.Error(t, err)
}

func TestSessionFlag(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	repo := NewSessionRepository(mem, "lakshmi_session")

	active, err := repo.IsActive(ctx)
	require.NoError(t, err)
	assert.False(t, active)

	require.NoError(t, repo.Activate(ctx))
	raw, err := mem.Get(ctx, "lakshmi_session")
	require.NoError(t, err)
	assert.Equal(t, "active", string(raw))

	active, err = repo.IsActive(ctx)
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, repo.Deactivate(ctx))
	active, err = repo.IsActive(ctx)
	require.NoError(t, err)
	assert.False(t, active)
}
