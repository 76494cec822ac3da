package services

import (
	"context"
	"strings"

	"catering_manager/internal/models"
	"catering_manager/internal/repository"

	"github.com/sirupsen/logrus"
)

type CatalogService interface {
	ListItems() []models.Item
	AddItem(ctx context.Context, name string) (*models.Item, error)
	EditItem(id string) (*models.Item, bool)
	UpdateItem(ctx context.Context, id, name string) (*models.Item, error)
	CancelItemEdit()
	EditingItemID() string
	DeleteItem(ctx context.Context, id string) error
}

type catalogService struct {
	state    *State
	itemRepo repository.ItemRepository
	menuRepo repository.MenuRepository
	log      *logrus.Entry
}

func NewCatalogService(state *State, itemRepo repository.ItemRepository, menuRepo repository.MenuRepository, logger *logrus.Logger) CatalogService {
	return &catalogService{
		state:    state,
		itemRepo: itemRepo,
		menuRepo: menuRepo,
		log:      componentLogger(logger, "catalog"),
	}
}

func (s *catalogService) ListItems() []models.Item {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return append([]models.Item{}, s.state.items...)
}

func (s *catalogService) AddItem(ctx context.Context, name string) (*models.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("please enter an item name")
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	item := models.Item{ID: s.state.newID(), Name: name}
	s.state.items = append(s.state.items, item)
	s.log.WithField("item_id", item.ID).Info("item added")

	if err := s.saveItems(ctx); err != nil {
		return nil, err
	}
	return &item, nil
}

// EditItem makes id the item edit target. Unknown ids are ignored.
func (s *catalogService) EditItem(id string) (*models.Item, bool) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	_, item := s.state.findItem(id)
	if item == nil {
		return nil, false
	}
	s.state.editingItemID = id
	found := *item
	return &found, true
}

// UpdateItem renames the item currently being edited. It returns nil without
// error when id is not the active edit target.
func (s *catalogService) UpdateItem(ctx context.Context, id, name string) (*models.Item, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if s.state.editingItemID == "" || s.state.editingItemID != id {
		return nil, nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("please enter an item name")
	}

	_, item := s.state.findItem(id)
	if item == nil {
		s.state.editingItemID = ""
		return nil, nil
	}
	item.Name = name
	updated := *item
	s.state.editingItemID = ""
	s.log.WithField("item_id", id).Info("item updated")

	if err := s.saveItems(ctx); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *catalogService) CancelItemEdit() {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	s.state.editingItemID = ""
}

func (s *catalogService) EditingItemID() string {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.editingItemID
}

// DeleteItem removes the item and strips its id from every menu. Orders keep
// their copied item names.
func (s *catalogService) DeleteItem(ctx context.Context, id string) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	idx, _ := s.state.findItem(id)
	if idx < 0 {
		return nil
	}
	s.state.items = append(s.state.items[:idx:idx], s.state.items[idx+1:]...)

	for i := range s.state.menus {
		kept := s.state.menus[i].Items[:0:0]
		for _, itemID := range s.state.menus[i].Items {
			if itemID != id {
				kept = append(kept, itemID)
			}
		}
		s.state.menus[i].Items = kept
	}
	if s.state.editingItemID == id {
		s.state.editingItemID = ""
	}
	s.log.WithField("item_id", id).Info("item deleted")

	itemsErr := s.saveItems(ctx)
	menusErr := persist(ctx, s.log, "menus", func(ctx context.Context) error {
		return s.menuRepo.SaveAll(ctx, s.state.menus)
	})
	if itemsErr != nil {
		return itemsErr
	}
	return menusErr
}

func (s *catalogService) saveItems(ctx context.Context) error {
	return persist(ctx, s.log, "items", func(ctx context.Context) error {
		return s.itemRepo.SaveAll(ctx, s.state.items)
	})
}
