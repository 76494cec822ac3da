package repository

import (
	"context"

	"catering_manager/internal/models"
	"catering_manager/internal/store"
)

type OrderRepository interface {
	LoadAll(ctx context.Context) ([]models.Order, error)
	SaveAll(ctx context.Context, orders []models.Order) error
}

type orderRepository struct {
	st  store.Store
	key string
}

func NewOrderRepository(st store.Store, key string) OrderRepository {
	return &orderRepository{st: st, key: key}
}

func (r *orderRepository) LoadAll(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := loadJSON(ctx, r.st, r.key, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) SaveAll(ctx context.Context, orders []models.Order) error {
	out := make([]models.Order, len(orders))
	for i, o := range orders {
		if o.Items == nil {
			o.Items = []string{}
		}
		out[i] = o
	}
	return saveJSON(ctx, r.st, r.key, out)
}
