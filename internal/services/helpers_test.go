package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"catering_manager/internal/models"
	"catering_manager/internal/repository"
	"catering_manager/internal/store"
	"catering_manager/pkg/invoice"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	state    *State
	store    store.Store
	repos    *repository.Repositories
	catalog  CatalogService
	menus    MenuService
	orders   OrderService
	reports  ReportService
	exports  ExportService
	sessions SessionService
	backup   BackupService
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithStore(t, store.NewMemory())
}

func newTestEnvWithStore(t *testing.T, st store.Store) *testEnv {
	t.Helper()

	logger := quietLogger()
	repos := repository.NewRepositories(st, repository.DefaultKeys("lakshmi_"))
	state := NewState(func() time.Time { return testNow })
	require.NoError(t, state.Load(context.Background(), repos))

	branding := invoice.DefaultBranding()
	branding.Location = time.UTC

	return &testEnv{
		state:    state,
		store:    st,
		repos:    repos,
		catalog:  NewCatalogService(state, repos.Items, repos.Menus, logger),
		menus:    NewMenuService(state, repos.Menus, logger),
		orders:   NewOrderService(state, repos.Orders, logger),
		reports:  NewReportService(state, time.UTC, "₹"),
		exports:  NewExportService(state, invoice.NewSinks(branding, nil), logger),
		sessions: NewSessionService(repos.Session, logger),
		backup:   NewBackupService(state, repos, logger),
	}
}

func (e *testEnv) addItem(t *testing.T, name string) models.Item {
	t.Helper()
	item, err := e.catalog.AddItem(context.Background(), name)
	require.NoError(t, err)
	return *item
}

func (e *testEnv) addMenu(t *testing.T, name, price string, items ...models.Item) models.Menu {
	t.Helper()
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	menu, err := e.menus.SaveMenu(context.Background(), MenuInput{Name: name, Price: price, Items: ids})
	require.NoError(t, err)
	return *menu
}

// seedOrders puts orders straight into the state, bypassing confirmation.
func (e *testEnv) seedOrders(orders ...models.Order) {
	e.state.mu.Lock()
	defer e.state.mu.Unlock()
	e.state.orders = append(e.state.orders, orders...)
}

// flakyStore fails writes while failing is set.
type flakyStore struct {
	*store.Memory
	mu      sync.Mutex
	failing bool
}

var errDiskFull = errors.New("disk full")

func newFlakyStore() *flakyStore {
	return &flakyStore{Memory: store.NewMemory()}
}

func (s *flakyStore) setFailing(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = v
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	failing := s.failing
	s.mu.Unlock()
	if failing {
		return errDiskFull
	}
	return s.Memory.Set(ctx, key, value)
}

func (s *flakyStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	failing := s.failing
	s.mu.Unlock()
	if failing {
		return errDiskFull
	}
	return s.Memory.Remove(ctx, key)
}
