package services

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"catering_manager/internal/metrics"
	"catering_manager/internal/models"
	"catering_manager/internal/repository"

	"github.com/sirupsen/logrus"
)

// isoLayout matches the millisecond UTC timestamps stored on orders.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// State is the single application session: the three collections, the order
// form and its draft, and the item and menu edit targets. Every service reads
// and mutates it under mu.
type State struct {
	mu sync.Mutex

	items  []models.Item
	menus  []models.Menu
	orders []models.Order

	form           models.OrderForm
	draft          *models.Order
	exportsEnabled bool

	editingItemID string
	editingMenuID string

	lastID int64
	now    func() time.Time
}

func NewState(now func() time.Time) *State {
	if now == nil {
		now = time.Now
	}
	return &State{
		items:  []models.Item{},
		menus:  []models.Menu{},
		orders: []models.Order{},
		form:   models.DefaultOrderForm(),
		now:    now,
	}
}

// Load replaces the collections with what the repositories hold.
func (s *State) Load(ctx context.Context, repos *repository.Repositories) error {
	items, err := repos.Items.LoadAll(ctx)
	if err != nil {
		return &StorageError{Collection: "items", Err: err}
	}
	menus, err := repos.Menus.LoadAll(ctx)
	if err != nil {
		return &StorageError{Collection: "menus", Err: err}
	}
	orders, err := repos.Orders.LoadAll(ctx)
	if err != nil {
		return &StorageError{Collection: "orders", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(models.Snapshot{Items: items, Menus: menus, Orders: orders})
	return nil
}

// replace swaps in a full snapshot and resets the transient UI state.
// Caller holds mu.
func (s *State) replace(snap models.Snapshot) {
	s.items = snap.Items
	s.menus = snap.Menus
	s.orders = snap.Orders
	if s.items == nil {
		s.items = []models.Item{}
	}
	if s.menus == nil {
		s.menus = []models.Menu{}
	}
	if s.orders == nil {
		s.orders = []models.Order{}
	}
	s.form = models.DefaultOrderForm()
	s.draft = nil
	s.exportsEnabled = false
	s.editingItemID = ""
	s.editingMenuID = ""

	for _, it := range s.items {
		s.observeID(it.ID)
	}
	for _, m := range s.menus {
		s.observeID(m.ID)
	}
	for _, o := range s.orders {
		s.observeID(o.ID)
	}
}

func (s *State) observeID(id string) {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > s.lastID {
		s.lastID = n
	}
}

// newID returns the creation time in milliseconds, bumped past the last issued
// or loaded id so ids stay unique and increasing. Caller holds mu.
func (s *State) newID() string {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

func (s *State) findItem(id string) (int, *models.Item) {
	for i := range s.items {
		if s.items[i].ID == id {
			return i, &s.items[i]
		}
	}
	return -1, nil
}

func (s *State) findMenu(id string) (int, *models.Menu) {
	for i := range s.menus {
		if s.menus[i].ID == id {
			return i, &s.menus[i]
		}
	}
	return -1, nil
}

func (s *State) findOrder(id string) (int, *models.Order) {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return i, &s.orders[i]
		}
	}
	return -1, nil
}

// itemNames resolves ids to names, skipping ids no longer in the catalog.
func (s *State) itemNames(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, it := s.findItem(id); it != nil {
			names = append(names, it.Name)
		}
	}
	return names
}

// recomputeDraft derives the draft from the form. Exports are disabled until
// the next confirmation.
func (s *State) recomputeDraft() {
	s.draft = nil
	s.exportsEnabled = false

	f := s.form
	if f.MenuID == "" || f.Quantity < 1 {
		return
	}
	_, menu := s.findMenu(f.MenuID)
	if menu == nil {
		return
	}

	client := strings.TrimSpace(f.ClientName)
	if client == "" {
		client = models.GuestClientName
	}
	s.draft = &models.Order{
		ID:            s.newID(),
		ClientName:    client,
		ClientPhone:   strings.TrimSpace(f.ClientPhone),
		ClientAddress: strings.TrimSpace(f.ClientAddress),
		MenuID:        menu.ID,
		MenuName:      menu.Name,
		MenuPrice:     menu.Price,
		Items:         s.itemNames(menu.Items),
		Quantity:      f.Quantity,
		TotalAmount:   menu.Price * float64(f.Quantity),
		Date:          s.now().UTC().Format(isoLayout),
	}
}

func (s *State) snapshot() models.Snapshot {
	snap := models.Snapshot{
		Items:  append([]models.Item{}, s.items...),
		Menus:  make([]models.Menu, len(s.menus)),
		Orders: make([]models.Order, len(s.orders)),
	}
	for i, m := range s.menus {
		snap.Menus[i] = copyMenu(m)
	}
	for i, o := range s.orders {
		snap.Orders[i] = copyOrder(o)
	}
	return snap
}

func copyMenu(m models.Menu) models.Menu {
	m.Items = append([]string{}, m.Items...)
	return m
}

func copyOrder(o models.Order) models.Order {
	o.Items = append([]string{}, o.Items...)
	return o
}

// persist runs a collection write and converts a failure into a StorageError.
func persist(ctx context.Context, log *logrus.Entry, collection string, save func(ctx context.Context) error) error {
	if err := save(ctx); err != nil {
		metrics.RecordStoreFailure(collection)
		log.WithError(err).WithField("collection", collection).Error("failed to persist collection")
		return &StorageError{Collection: collection, Err: err}
	}
	return nil
}

func componentLogger(logger *logrus.Logger, component string) *logrus.Entry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return logger.WithField("component", component)
}

func notFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}
