package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"foodly/entity"
	"foodly/pkg/cart"
	"foodly/pkg/pricing"
	"foodly/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService struct {
	Repo     *repository.OrderRepository
	RestRepo *repository.RestaurantRepository
	MenuRepo *repository.MenuRepository
	Carts    *CartService
	Notifier OrderNotifier
	log      *zap.Logger
}

func NewOrderService(
	repo *repository.OrderRepository,
	restRepo *repository.RestaurantRepository,
	menuRepo *repository.MenuRepository,
	carts *CartService,
	notifier OrderNotifier,
	log *zap.Logger,
) *OrderService {
	if notifier == nil {
		notifier = LogNotifier{Log: log}
	}
	return &OrderService{
		Repo: repo, RestRepo: restRepo, MenuRepo: menuRepo,
		Carts: carts, Notifier: notifier, log: log,
	}
}

// ----- DTOs from controller -----

type CheckoutReq struct {
	Address       entity.DeliveryAddress `json:"address"`
	PaymentMethod entity.PaymentMethod   `json:"paymentMethod"`
}

type OrderLineIn struct {
	MenuItemID uint   `json:"menuItemId"`
	Size       string `json:"size"`
	Quantity   int    `json:"quantity"`
}

// PlaceOrderReq carries a cart kept by the client. Prices are taken from
// the menu, not from the request.
type PlaceOrderReq struct {
	RestaurantID  uint                   `json:"restaurantId"`
	Items         []OrderLineIn          `json:"items"`
	Address       entity.DeliveryAddress `json:"address"`
	PaymentMethod entity.PaymentMethod   `json:"paymentMethod"`
}

type CheckoutRes struct {
	ID        uint                    `json:"id"`
	Reference string                  `json:"reference"`
	Total     decimal.Decimal         `json:"total"`
	Summary   pricing.CheckoutSummary `json:"summary"`
	// CartKept is set when the order was stored but the server cart could
	// not be emptied afterwards.
	CartKept bool `json:"cartKept,omitempty"`
}

// ValidateAddress names every empty field of the delivery address.
func ValidateAddress(a entity.DeliveryAddress) error {
	if missing := a.Missing(); len(missing) > 0 {
		return missingAddress(missing)
	}
	return nil
}

func paymentMethod(m entity.PaymentMethod) (entity.PaymentMethod, error) {
	if m == "" {
		return entity.PayCard, nil
	}
	if !m.Valid() {
		return "", ErrInvalidPayment
	}
	return m, nil
}

// NewReference returns "ORD-" followed by 8 upper-case characters.
func NewReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(id[:8])
}

// ----- Checkout from the server cart -----

func (s *OrderService) Checkout(ctx context.Context, userID uint, req *CheckoutReq) (*CheckoutRes, error) {
	if err := ValidateAddress(req.Address); err != nil {
		return nil, err
	}
	pm, err := paymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var res *CheckoutRes
	cleared, err := s.Carts.Drain(ctx, userID, func(c cart.Cart) error {
		if c.IsEmpty() {
			return ErrCartEmpty
		}
		restID, err := strconv.ParseUint(c.RestaurantID, 10, 64)
		if err != nil {
			return fmt.Errorf("cart restaurant %q: %w", c.RestaurantID, err)
		}

		lines := make([]OrderLineIn, 0, len(c.Items))
		for _, it := range c.Items {
			menuID, _, _ := strings.Cut(it.ID, "-")
			mid, err := strconv.ParseUint(menuID, 10, 64)
			if err != nil {
				return fmt.Errorf("cart line %q: %w", it.ID, err)
			}
			lines = append(lines, OrderLineIn{MenuItemID: uint(mid), Size: it.Size, Quantity: it.Quantity})
		}
		items, err := s.priceLines(ctx, uint(restID), lines)
		if err != nil {
			return err
		}

		res, err = s.place(ctx, userID, uint(restID), items, req.Address, pm)
		return err
	})
	if err != nil {
		return nil, err
	}
	res.CartKept = !cleared
	return res, nil
}

// ----- Place an order from client lines -----

func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, req *PlaceOrderReq) (*CheckoutRes, error) {
	if len(req.Items) == 0 {
		return nil, ErrCartEmpty
	}
	if err := ValidateAddress(req.Address); err != nil {
		return nil, err
	}
	pm, err := paymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if _, err := s.RestRepo.FindByID(req.RestaurantID); err != nil {
		return nil, err
	}

	items, err := s.priceLines(ctx, req.RestaurantID, req.Items)
	if err != nil {
		return nil, err
	}

	return s.place(ctx, userID, req.RestaurantID, items, req.Address, pm)
}

// priceLines turns order lines into order items priced from the current
// menu. Both order paths go through it.
func (s *OrderService) priceLines(ctx context.Context, restID uint, lines []OrderLineIn) ([]entity.OrderItem, error) {
	ids := make([]uint, 0, len(lines))
	for _, in := range lines {
		if in.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		ids = append(ids, in.MenuItemID)
	}
	menus, err := s.MenuRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]entity.OrderItem, 0, len(lines))
	for _, in := range lines {
		m, ok := menus[in.MenuItemID]
		if !ok {
			return nil, fmt.Errorf("menu item %d: %w", in.MenuItemID, gorm.ErrRecordNotFound)
		}
		if m.RestaurantID != restID {
			return nil, ErrWrongRestaurant
		}
		if !m.IsAvailable {
			return nil, fmt.Errorf("%s: %w", m.Name, ErrItemUnavailable)
		}
		price, ok := m.PriceFor(in.Size)
		if !ok {
			return nil, fmt.Errorf("%s %q: %w", m.Name, in.Size, ErrUnknownSize)
		}
		items = append(items, entity.OrderItem{
			MenuItemID: m.ID,
			Name:       m.Name,
			Price:      price,
			Quantity:   in.Quantity,
			Size:       in.Size,
		})
	}
	return items, nil
}

func (s *OrderService) place(ctx context.Context, userID, restID uint, items []entity.OrderItem, addr entity.DeliveryAddress, pm entity.PaymentMethod) (*CheckoutRes, error) {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	fee, err := pricing.DeliveryFee(ctx, s.RestRepo, strconv.FormatUint(uint64(restID), 10))
	if err != nil {
		return nil, err
	}
	sum := pricing.ForCheckout(subtotal, fee)

	ref, err := s.uniqueReference(ctx)
	if err != nil {
		return nil, err
	}

	o := &entity.Order{
		Reference:     ref,
		UserID:        userID,
		RestaurantID:  restID,
		Items:         items,
		Status:        entity.StatusPending,
		Subtotal:      sum.Subtotal,
		DeliveryFee:   sum.DeliveryFee,
		Discount:      decimal.Zero,
		Tax:           sum.Tax,
		Total:         sum.Total,
		PaymentMethod: pm,
		PaymentStatus: entity.PaymentPending,
		Address:       addr,
	}
	if err := s.Repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}
	s.log.Info("order placed",
		zap.Uint("user_id", userID),
		zap.String("order", o.Reference),
		zap.String("total", o.Total.StringFixed(2)),
	)
	s.publish(ctx, EventOrderPlaced, o)

	return &CheckoutRes{ID: o.ID, Reference: o.Reference, Total: o.Total, Summary: sum}, nil
}

func (s *OrderService) uniqueReference(ctx context.Context) (string, error) {
	for i := 0; i < 5; i++ {
		ref := NewReference()
		taken, err := s.Repo.ReferenceExists(ctx, ref)
		if err != nil {
			return "", err
		}
		if !taken {
			return ref, nil
		}
	}
	return "", errors.New("could not allocate an order reference")
}

// publish never fails the request; the order is already committed.
func (s *OrderService) publish(ctx context.Context, typ string, o *entity.Order) {
	ev := OrderEvent{
		Type:         typ,
		OrderID:      o.ID,
		Reference:    o.Reference,
		UserID:       o.UserID,
		RestaurantID: o.RestaurantID,
		Status:       string(o.Status),
		Total:        o.Total,
		At:           time.Now().UTC(),
	}
	if err := s.Notifier.Publish(ctx, ev); err != nil {
		s.log.Warn("publish order event failed", zap.String("order", o.Reference), zap.Error(err))
	}
}

// ----- Reads -----

func (s *OrderService) ListForUser(userID uint, state string) ([]repository.OrderSummary, error) {
	switch state {
	case repository.StateAll, repository.StateActive, repository.StatePast:
	default:
		return nil, fmt.Errorf("%w %q", ErrInvalidState, state)
	}
	return s.Repo.ListOrdersForUser(userID, state, 50)
}

func (s *OrderService) GetForUser(userID, orderID uint) (*entity.Order, error) {
	return s.Repo.GetOrderForUser(userID, orderID)
}

// ----- Owner side -----

func (s *OrderService) canManage(ctx context.Context, actorID uint, role string, restID uint) error {
	if role == entity.RoleAdmin {
		return nil
	}
	ok, err := s.RestRepo.IsOwner(restID, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func (s *OrderService) ListForRestaurant(ctx context.Context, actorID uint, role string, restID uint, status entity.OrderStatus, page, limit int) ([]repository.OwnerOrderSummary, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	if err := s.canManage(ctx, actorID, role, restID); err != nil {
		return nil, 0, err
	}
	return s.Repo.ListOrdersForRestaurant(restID, status, page, limit)
}

// UpdateStatus lets the restaurant owner or an admin set any known status.
func (s *OrderService) UpdateStatus(ctx context.Context, actorID uint, role string, orderID uint, status entity.OrderStatus) (*entity.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if err := s.canManage(ctx, actorID, role, o.RestaurantID); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateStatus(ctx, o.ID, status); err != nil {
		return nil, err
	}
	o.Status = status
	s.log.Info("order status changed", zap.String("order", o.Reference), zap.String("status", string(status)))
	s.publish(ctx, EventStatusChanged, o)
	return o, nil
}
