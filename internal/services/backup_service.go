package services

import (
	"context"
	"math"
	"strings"

	"catering_manager/internal/models"
	"catering_manager/internal/repository"

	"github.com/sirupsen/logrus"
)

// BackupService moves the three collections in and out as one JSON document,
// in the same shape the collections are stored in.
type BackupService interface {
	Snapshot() models.Snapshot
	Restore(ctx context.Context, snap models.Snapshot) error
}

type backupService struct {
	state *State
	repos *repository.Repositories
	log   *logrus.Entry
}

func NewBackupService(state *State, repos *repository.Repositories, logger *logrus.Logger) BackupService {
	return &backupService{state: state, repos: repos, log: componentLogger(logger, "backup")}
}

func (s *backupService) Snapshot() models.Snapshot {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.snapshot()
}

// Restore validates the snapshot, replaces the state and writes every
// collection. Menu references to unknown items are dropped.
func (s *backupService) Restore(ctx context.Context, snap models.Snapshot) error {
	itemIDs := make(map[string]bool, len(snap.Items))
	items := make([]models.Item, 0, len(snap.Items))
	for _, it := range snap.Items {
		it.Name = strings.TrimSpace(it.Name)
		if it.ID == "" || it.Name == "" {
			return NewValidationError("every item needs an id and a name")
		}
		if itemIDs[it.ID] {
			return NewValidationError("duplicate item id %s", it.ID)
		}
		itemIDs[it.ID] = true
		items = append(items, it)
	}

	menuIDs := make(map[string]bool, len(snap.Menus))
	menus := make([]models.Menu, 0, len(snap.Menus))
	for _, m := range snap.Menus {
		if m.ID == "" || strings.TrimSpace(m.Name) == "" {
			return NewValidationError("every menu needs an id and a name")
		}
		if math.IsNaN(m.Price) || math.IsInf(m.Price, 0) || m.Price < 0 {
			return NewValidationError("menu %s has an invalid price", m.ID)
		}
		if menuIDs[m.ID] {
			return NewValidationError("duplicate menu id %s", m.ID)
		}
		menuIDs[m.ID] = true

		refs := make([]string, 0, len(m.Items))
		seen := map[string]bool{}
		for _, id := range m.Items {
			if itemIDs[id] && !seen[id] {
				seen[id] = true
				refs = append(refs, id)
			}
		}
		m.Items = refs
		menus = append(menus, m)
	}

	orders := make([]models.Order, 0, len(snap.Orders))
	for _, o := range snap.Orders {
		if o.ID == "" || o.Quantity < 1 {
			return NewValidationError("order %q needs an id and a quantity of at least 1", o.ID)
		}
		orders = append(orders, copyOrder(o))
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	s.state.replace(models.Snapshot{Items: items, Menus: menus, Orders: orders})
	s.log.WithFields(logrus.Fields{
		"items":  len(items),
		"menus":  len(menus),
		"orders": len(orders),
	}).Info("state restored")

	var firstErr error
	for _, save := range []struct {
		collection string
		fn         func(ctx context.Context) error
	}{
		{"items", func(ctx context.Context) error { return s.repos.Items.SaveAll(ctx, s.state.items) }},
		{"menus", func(ctx context.Context) error { return s.repos.Menus.SaveAll(ctx, s.state.menus) }},
		{"orders", func(ctx context.Context) error { return s.repos.Orders.SaveAll(ctx, s.state.orders) }},
	} {
		if err := persist(ctx, s.log, save.collection, save.fn); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
