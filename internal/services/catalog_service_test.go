package services

import (
	"context"
	"encoding/json"
	"testing"

	"catering_manager/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemRejectsBlankNames(t *testing.T) {
	env := newTestEnv(t)

	for _, name := range []string{"", "   ", "\t"} {
		item, err := env.catalog.AddItem(context.Background(), name)
		assert.Nil(t, item)
		assert.True(t, IsValidation(err), "name %q", name)
	}
	assert.Empty(t, env.catalog.ListItems())
}

func TestAddItemTrimsAndPersists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	item, err := env.catalog.AddItem(ctx, "  Idli ")
	require.NoError(t, err)
	assert.Equal(t, "Idli", item.Name)

	raw, err := env.store.Get(ctx, "lakshmi_items")
	require.NoError(t, err)
	var stored []models.Item
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, []models.Item{*item}, stored)
}

func TestItemIDsAreUniqueWithinOneMillisecond(t *testing.T) {
	env := newTestEnv(t)

	a := env.addItem(t, "Idli")
	b := env.addItem(t, "Vada")

	assert.Equal(t, "1715767200000", a.ID)
	assert.Equal(t, "1715767200001", b.ID)
}

func TestUpdateItemRequiresEditTarget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	idli := env.addItem(t, "Idli")
	vada := env.addItem(t, "Vada")

	updated, err := env.catalog.UpdateItem(ctx, idli.ID, "Rava Idli")
	require.NoError(t, err)
	assert.Nil(t, updated)

	_, ok := env.catalog.EditItem(idli.ID)
	require.True(t, ok)

	// a different id is not the target
	updated, err = env.catalog.UpdateItem(ctx, vada.ID, "Medu Vada")
	require.NoError(t, err)
	assert.Nil(t, updated)

	_, err = env.catalog.UpdateItem(ctx, idli.ID, " ")
	assert.True(t, IsValidation(err))
	assert.Equal(t, idli.ID, env.catalog.EditingItemID())

	updated, err = env.catalog.UpdateItem(ctx, idli.ID, "Rava Idli")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Rava Idli", updated.Name)
	assert.Empty(t, env.catalog.EditingItemID())
	assert.Equal(t, []models.Item{{ID: idli.ID, Name: "Rava Idli"}, vada}, env.catalog.ListItems())
}

func TestEditUnknownItemIsIgnored(t *testing.T) {
	env := newTestEnv(t)

	item, ok := env.catalog.EditItem("missing")
	assert.False(t, ok)
	assert.Nil(t, item)
	assert.Empty(t, env.catalog.EditingItemID())
}

func TestCancelItemEdit(t *testing.T) {
	env := newTestEnv(t)
	idli := env.addItem(t, "Idli")

	env.catalog.EditItem(idli.ID)
	env.catalog.CancelItemEdit()
	assert.Empty(t, env.catalog.EditingItemID())
}

func TestDeleteItemCascadesToMenus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.addItem(t, "Idli")
	b := env.addItem(t, "Vada")
	c := env.addItem(t, "Pongal")
	breakfast := env.addMenu(t, "Breakfast", "150", a, b)
	festive := env.addMenu(t, "Festive", "300", c)
	snacks := env.addMenu(t, "Snacks", "80", b)

	require.NoError(t, env.catalog.DeleteItem(ctx, b.ID))

	menus := env.menus.ListMenus()
	require.Len(t, menus, 3)
	assert.Equal(t, breakfast.ID, menus[0].ID)
	assert.Equal(t, []string{a.ID}, menus[0].Items)
	assert.Equal(t, festive.ID, menus[1].ID)
	assert.Equal(t, []string{c.ID}, menus[1].Items)
	assert.Equal(t, snacks.ID, menus[2].ID)
	assert.Empty(t, menus[2].Items)

	for _, m := range menus {
		assert.NotContains(t, m.ItemNames, "Vada")
	}

	persisted, err := env.repos.Menus.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, persisted[0].Items)
	assert.Equal(t, []string{}, persisted[2].Items)
}

func TestDeleteItemClearsEditTarget(t *testing.T) {
	env := newTestEnv(t)
	idli := env.addItem(t, "Idli")

	env.catalog.EditItem(idli.ID)
	require.NoError(t, env.catalog.DeleteItem(context.Background(), idli.ID))
	assert.Empty(t, env.catalog.EditingItemID())
	assert.Empty(t, env.catalog.ListItems())
}

func TestDeleteUnknownItemIsNoop(t *testing.T) {
	env := newTestEnv(t)
	env.addItem(t, "Idli")

	require.NoError(t, env.catalog.DeleteItem(context.Background(), "missing"))
	assert.Len(t, env.catalog.ListItems(), 1)
}

func TestStorageFailureKeepsInMemoryItem(t *testing.T) {
	st := newFlakyStore()
	env := newTestEnvWithStore(t, st)
	st.setFailing(true)

	item, err := env.catalog.AddItem(context.Background(), "Idli")
	assert.Nil(t, item)
	require.Error(t, err)
	assert.True(t, IsStorage(err))
	assert.ErrorIs(t, err, errDiskFull)

	items := env.catalog.ListItems()
	require.Len(t, items, 1)
	assert.Equal(t, "Idli", items[0].Name)
}
