package repository

import (
	"context"

	"catering_manager/internal/models"
	"catering_manager/internal/store"
)

type ItemRepository interface {
	LoadAll(ctx context.Context) ([]models.Item, error)
	SaveAll(ctx context.Context, items []models.Item) error
}

type itemRepository struct {
	st  store.Store
	key string
}

func NewItemRepository(st store.Store, key string) ItemRepository {
	return &itemRepository{st: st, key: key}
}

func (r *itemRepository) LoadAll(ctx context.Context) ([]models.Item, error) {
	items := []models.Item{}
	if err := loadJSON(ctx, r.st, r.key, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) SaveAll(ctx context.Context, items []models.Item) error {
	if items == nil {
		items = []models.Item{}
	}
	return saveJSON(ctx, r.st, r.key, items)
}
