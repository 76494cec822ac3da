package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"catering_manager/internal/store"
)

// Keys names the store keys the collections are written under.
type Keys struct {
	Items   string
	Menus   string
	Orders  string
	Session string
}

func DefaultKeys(prefix string) Keys {
	return Keys{
		Items:   prefix + "items",
		Menus:   prefix + "menus",
		Orders:  prefix + "orders",
		Session: prefix + "session",
	}
}

// Repositories groups the collection repositories sharing one store.
type Repositories struct {
	Items   ItemRepository
	Menus   MenuRepository
	Orders  OrderRepository
	Session SessionRepository
}

func NewRepositories(st store.Store, keys Keys) *Repositories {
	return &Repositories{
		Items:   NewItemRepository(st, keys.Items),
		Menus:   NewMenuRepository(st, keys.Menus),
		Orders:  NewOrderRepository(st, keys.Orders),
		Session: NewSessionRepository(st, keys.Session),
	}
}

// loadJSON decodes the collection at key into dest. A missing key leaves dest untouched.
func loadJSON(ctx context.Context, st store.Store, key string, dest interface{}) error {
	data, err := st.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func saveJSON(ctx context.Context, st store.Store, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := st.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
