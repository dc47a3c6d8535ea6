package services

import (
	"context"
	"strconv"
	"sync"

	"foodly/entity"
	"foodly/pkg/cart"
	"foodly/pkg/kv"
	"foodly/pkg/pricing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MenuLookup resolves the menu item behind a cart line.
type MenuLookup interface {
	FindByID(ctx context.Context, id uint) (*entity.MenuItem, error)
}

// Broadcaster pushes a user's cart to their open sockets.
type Broadcaster interface {
	Broadcast(userID uint, c cart.Cart)
}

// CartService keeps one cart per user in the kv store. Mutations of the
// same user run one at a time so load-mutate-save never interleaves.
type CartService struct {
	store kv.Store
	menus MenuLookup
	fees  pricing.FeeSource
	hub   Broadcaster
	log   *zap.Logger

	mu    sync.Mutex
	locks map[uint]*userLock
}

// userLock is dropped from the map once nobody holds or waits on it.
type userLock struct {
	sync.Mutex
	refs int
}

func NewCartService(store kv.Store, menus MenuLookup, fees pricing.FeeSource, hub Broadcaster, log *zap.Logger) *CartService {
	return &CartService{
		store: store,
		menus: menus,
		fees:  fees,
		hub:   hub,
		log:   log,
		locks: make(map[uint]*userLock),
	}
}

// CartView is what GET /cart answers.
type CartView struct {
	Items        []cart.Item         `json:"items"`
	RestaurantID *string             `json:"restaurantId"`
	ItemCount    int                 `json:"itemCount"`
	Total        decimal.Decimal     `json:"total"`
	Summary      pricing.CartSummary `json:"summary"`
}

// lock takes the user's lock and returns the matching unlock.
func (s *CartService) lock(userID uint) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userLock{}
		s.locks[userID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, userID)
		}
		s.mu.Unlock()
	}
}

// open loads the user's cart into a Store that saves and broadcasts on
// every mutation. The caller must hold the user lock.
func (s *CartService) open(ctx context.Context, userID uint) *cart.Store {
	key := cart.UserKey(userID)
	initial := cart.Load(ctx, s.store, key, s.log)
	st := cart.NewStore(initial, cart.Saver(s.store, key))
	if s.hub != nil {
		st.Observe(func(_ context.Context, c cart.Cart) error {
			s.hub.Broadcast(userID, c)
			return nil
		})
	}
	return st
}

func (s *CartService) mutate(ctx context.Context, userID uint, fn func(*cart.Store) (cart.Cart, error)) (cart.Cart, error) {
	defer s.lock(userID)()

	c, err := fn(s.open(ctx, userID))
	if err != nil {
		s.log.Warn("cart save failed", zap.Uint("user_id", userID), zap.Error(err))
	}
	return c, err
}

func (s *CartService) Get(ctx context.Context, userID uint) cart.Cart {
	defer s.lock(userID)()
	return cart.Load(ctx, s.store, cart.UserKey(userID), s.log)
}

// AddMenuItem adds one unit of a menu item, priced from the menu.
func (s *CartService) AddMenuItem(ctx context.Context, userID, menuItemID uint, size string) (cart.Cart, error) {
	m, err := s.menus.FindByID(ctx, menuItemID)
	if err != nil {
		return cart.Cart{}, err
	}
	if !m.IsAvailable {
		return cart.Cart{}, ErrItemUnavailable
	}
	price, ok := m.PriceFor(size)
	if !ok {
		return cart.Cart{}, ErrUnknownSize
	}

	id := strconv.FormatUint(uint64(m.ID), 10)
	it := cart.Item{
		ID:           cart.LineID(id, size),
		Name:         m.Name,
		Price:        price,
		Image:        m.Image,
		Size:         size,
		RestaurantID: strconv.FormatUint(uint64(m.RestaurantID), 10),
	}
	return s.mutate(ctx, userID, func(st *cart.Store) (cart.Cart, error) {
		return st.AddItem(ctx, it)
	})
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID uint, lineID string, qty int) (cart.Cart, error) {
	return s.mutate(ctx, userID, func(st *cart.Store) (cart.Cart, error) {
		return st.UpdateQuantity(ctx, lineID, qty)
	})
}

func (s *CartService) RemoveItem(ctx context.Context, userID uint, lineID string) (cart.Cart, error) {
	return s.mutate(ctx, userID, func(st *cart.Store) (cart.Cart, error) {
		return st.RemoveItem(ctx, lineID)
	})
}

func (s *CartService) Clear(ctx context.Context, userID uint) (cart.Cart, error) {
	return s.mutate(ctx, userID, func(st *cart.Store) (cart.Cart, error) {
		return st.Clear(ctx)
	})
}

// View prices the cart with the cart-page formula. No promotions exist
// server-side, so the discount is always zero.
func (s *CartService) View(ctx context.Context, userID uint) (CartView, error) {
	c := s.Get(ctx, userID)
	fee, err := pricing.DeliveryFee(ctx, s.fees, c.RestaurantID)
	if err != nil {
		return CartView{}, err
	}

	v := CartView{
		Items:     c.Items,
		ItemCount: c.ItemCount(),
		Total:     c.Total(),
		Summary:   pricing.ForCart(c.Total(), fee, decimal.Zero),
	}
	if v.Items == nil {
		v.Items = []cart.Item{}
	}
	if c.RestaurantID != "" {
		id := c.RestaurantID
		v.RestaurantID = &id
	}
	return v, nil
}

// CheckoutSummary prices the cart with the checkout formula.
func (s *CartService) CheckoutSummary(ctx context.Context, userID uint) (pricing.CheckoutSummary, error) {
	c := s.Get(ctx, userID)
	fee, err := pricing.DeliveryFee(ctx, s.fees, c.RestaurantID)
	if err != nil {
		return pricing.CheckoutSummary{}, err
	}
	return pricing.ForCheckout(c.Total(), fee), nil
}

// Drain hands the user's cart to fn and clears it when fn succeeds.
// The user lock is held throughout, so the cart cannot change underneath.
// cleared is false when fn succeeded but the cart could not be emptied.
func (s *CartService) Drain(ctx context.Context, userID uint, fn func(cart.Cart) error) (cleared bool, err error) {
	defer s.lock(userID)()

	st := s.open(ctx, userID)
	if err := fn(st.Snapshot()); err != nil {
		return false, err
	}
	if _, err = st.Clear(ctx); err == nil {
		return true, nil
	}
	s.log.Warn("cart clear after checkout failed, retrying", zap.Uint("user_id", userID), zap.Error(err))
	if _, err = st.Clear(ctx); err == nil {
		return true, nil
	}
	if err = s.store.Remove(ctx, cart.UserKey(userID)); err == nil {
		return true, nil
	}
	// the order is already stored, so checkout still succeeds
	s.log.Error("cart left full after checkout", zap.Uint("user_id", userID), zap.Error(err))
	return false, nil
}
