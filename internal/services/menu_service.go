package services

import (
	"context"
	"math"
	"strconv"
	"strings"

	"catering_manager/internal/models"
	"catering_manager/internal/repository"

	"github.com/sirupsen/logrus"
)

// MenuInput is the menu form as submitted. Price arrives as text.
type MenuInput struct {
	Name  string
	Price string
	Items []string
}

// MenuView is a menu with its item ids resolved to names.
type MenuView struct {
	models.Menu
	ItemNames []string `json:"itemNames"`
}

// SelectorOption is one row of the menu form's item checklist.
type SelectorOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

type MenuService interface {
	ListMenus() []MenuView
	SaveMenu(ctx context.Context, in MenuInput) (*models.Menu, error)
	EditMenu(id string) ([]SelectorOption, bool)
	Selector() []SelectorOption
	CancelMenuEdit()
	EditingMenuID() string
	DeleteMenu(ctx context.Context, id string) error
}

type menuService struct {
	state    *State
	menuRepo repository.MenuRepository
	log      *logrus.Entry
}

func NewMenuService(state *State, menuRepo repository.MenuRepository, logger *logrus.Logger) MenuService {
	return &menuService{
		state:    state,
		menuRepo: menuRepo,
		log:      componentLogger(logger, "menus"),
	}
}

func (s *menuService) ListMenus() []MenuView {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	views := make([]MenuView, 0, len(s.state.menus))
	for _, m := range s.state.menus {
		views = append(views, MenuView{Menu: copyMenu(m), ItemNames: s.state.itemNames(m.Items)})
	}
	return views
}

func (s *menuService) SaveMenu(ctx context.Context, in MenuInput) (*models.Menu, error) {
	name := strings.TrimSpace(in.Name)
	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if name == "" || err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return nil, NewValidationError("please enter a menu name and a valid price")
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	items := make([]string, 0, len(in.Items))
	seen := make(map[string]bool, len(in.Items))
	for _, id := range in.Items {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, it := s.state.findItem(id); it != nil {
			items = append(items, id)
		}
	}

	var saved models.Menu
	if idx, existing := s.state.findMenu(s.state.editingMenuID); s.state.editingMenuID != "" && existing != nil {
		saved = models.Menu{ID: existing.ID, Name: name, Price: price, Items: items}
		s.state.menus[idx] = saved
		s.log.WithField("menu_id", saved.ID).Info("menu updated")
	} else {
		saved = models.Menu{ID: s.state.newID(), Name: name, Price: price, Items: items}
		s.state.menus = append(s.state.menus, saved)
		s.log.WithField("menu_id", saved.ID).Info("menu created")
	}
	s.state.editingMenuID = ""

	if err := s.saveMenus(ctx); err != nil {
		return nil, err
	}
	saved = copyMenu(saved)
	return &saved, nil
}

// EditMenu makes id the menu edit target and returns the checklist with the
// menu's items selected. Unknown ids are ignored.
func (s *menuService) EditMenu(id string) ([]SelectorOption, bool) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if _, m := s.state.findMenu(id); m == nil {
		return nil, false
	}
	s.state.editingMenuID = id
	return s.selector(), true
}

func (s *menuService) Selector() []SelectorOption {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.selector()
}

func (s *menuService) selector() []SelectorOption {
	selected := map[string]bool{}
	if _, m := s.state.findMenu(s.state.editingMenuID); m != nil {
		for _, id := range m.Items {
			selected[id] = true
		}
	}

	opts := make([]SelectorOption, 0, len(s.state.items))
	for _, it := range s.state.items {
		opts = append(opts, SelectorOption{ID: it.ID, Name: it.Name, Selected: selected[it.ID]})
	}
	return opts
}

func (s *menuService) CancelMenuEdit() {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	s.state.editingMenuID = ""
}

func (s *menuService) EditingMenuID() string {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.editingMenuID
}

// DeleteMenu removes the menu. Orders already placed against it are kept.
func (s *menuService) DeleteMenu(ctx context.Context, id string) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	idx, _ := s.state.findMenu(id)
	if idx < 0 {
		return nil
	}
	s.state.menus = append(s.state.menus[:idx:idx], s.state.menus[idx+1:]...)
	if s.state.editingMenuID == id {
		s.state.editingMenuID = ""
	}
	s.log.WithField("menu_id", id).Info("menu deleted")

	return s.saveMenus(ctx)
}

func (s *menuService) saveMenus(ctx context.Context) error {
	return persist(ctx, s.log, "menus", func(ctx context.Context) error {
		return s.menuRepo.SaveAll(ctx, s.state.menus)
	})
}
