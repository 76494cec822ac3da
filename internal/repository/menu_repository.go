package repository

import (
	"context"

	"catering_manager/internal/models"
	"catering_manager/internal/store"
)

type MenuRepository interface {
	LoadAll(ctx context.Context) ([]models.Menu, error)
	SaveAll(ctx context.Context, menus []models.Menu) error
}

type menuRepository struct {
	st  store.Store
	key string
}

func NewMenuRepository(st store.Store, key string) MenuRepository {
	return &menuRepository{st: st, key: key}
}

func (r *menuRepository) LoadAll(ctx context.Context) ([]models.Menu, error) {
	menus := []models.Menu{}
	if err := loadJSON(ctx, r.st, r.key, &menus); err != nil {
		return nil, err
	}
	for i := range menus {
		if menus[i].Items == nil {
			menus[i].Items = []string{}
		}
	}
	return menus, nil
}

func (r *menuRepository) SaveAll(ctx context.Context, menus []models.Menu) error {
	out := make([]models.Menu, len(menus))
	for i, m := range menus {
		if m.Items == nil {
			m.Items = []string{}
		}
		out[i] = m
	}
	return saveJSON(ctx, r.st, r.key, out)
}
