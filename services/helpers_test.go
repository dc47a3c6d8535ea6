package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"foodly/configs"
	"foodly/entity"
	"foodly/pkg/cart"
	"foodly/pkg/kv"
	"foodly/repository"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := configs.SetupDatabase(db); err != nil {
		t.Fatal(err)
	}
	if err := configs.SeedCatalog(db, zap.NewNop()); err != nil {
		t.Fatal(err)
	}
	return db
}

type recordingHub struct {
	mu    sync.Mutex
	carts map[uint][]cart.Cart
}

func (h *recordingHub) Broadcast(userID uint, c cart.Cart) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.carts == nil {
		h.carts = map[uint][]cart.Cart{}
	}
	h.carts[userID] = append(h.carts[userID], c)
}

func (h *recordingHub) sent(userID uint) []cart.Cart {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.carts[userID]
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []OrderEvent
	err    error
}

func (n *recordingNotifier) Publish(_ context.Context, ev OrderEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return n.err
}

// flakyStore fails the next failSets writes, and every Remove when
// failRemove is set.
type flakyStore struct {
	*kv.Memory
	mu         sync.Mutex
	failSets   int
	failRemove bool
}

var errStoreDown = errors.New("store down")

func (s *flakyStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	if s.failSets > 0 {
		s.failSets--
		s.mu.Unlock()
		return errStoreDown
	}
	s.mu.Unlock()
	return s.Memory.Set(ctx, key, value)
}

func (s *flakyStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	fail := s.failRemove
	s.mu.Unlock()
	if fail {
		return errStoreDown
	}
	return s.Memory.Remove(ctx, key)
}

func (s *flakyStore) arm(sets int, remove bool) {
	s.mu.Lock()
	s.failSets, s.failRemove = sets, remove
	s.mu.Unlock()
}

type fixture struct {
	db     *gorm.DB
	store  *kv.Memory
	hub    *recordingHub
	notes  *recordingNotifier
	carts  *CartService
	orders *OrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{
		db:    db,
		store: kv.NewMemory(),
		hub:   &recordingHub{},
		notes: &recordingNotifier{},
	}
	f.wire(f.store)
	return f
}

// wire rebuilds the services on top of store.
func (f *fixture) wire(store kv.Store) {
	restRepo := repository.NewRestaurantRepository(f.db)
	menuRepo := repository.NewMenuRepository(f.db)
	f.carts = NewCartService(store, menuRepo, restRepo, f.hub, zap.NewNop())
	f.orders = NewOrderService(repository.NewOrderRepository(f.db), restRepo, menuRepo, f.carts, f.notes, zap.NewNop())
}

func (f *fixture) orderCount() int64 {
	var n int64
	f.db.Model(&entity.Order{}).Count(&n)
	return n
}

func (f *fixture) menuItem(t *testing.T, name string) entity.MenuItem {
	t.Helper()
	var m entity.MenuItem
	if err := f.db.Where("name = ?", name).First(&m).Error; err != nil {
		t.Fatalf("menu item %q: %v", name, err)
	}
	return m
}

func (f *fixture) user(t *testing.T, email, role string) entity.User {
	t.Helper()
	u := entity.User{Name: email, Email: email, Password: "x", Role: role}
	if err := f.db.Create(&u).Error; err != nil {
		t.Fatal(err)
	}
	return u
}

func fullAddress() entity.DeliveryAddress {
	return entity.DeliveryAddress{
		FullName: "Ann Smith", Phone: "555-0100", Street: "1 Main St",
		City: "Springfield", State: "IL", ZipCode: "62701",
	}
}
