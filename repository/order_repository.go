package repository

import (
	"context"
	"time"

	"foodly/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// CreateOrder inserts the order together with its items.
func (r *OrderRepository) CreateOrder(ctx context.Context, o *entity.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(o).Error
	})
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// OrderSummary is one row of an order list.
type OrderSummary struct {
	ID            uint                 `json:"id"`
	Reference     string               `json:"reference"`
	RestaurantID  uint                 `json:"restaurantId"`
	Total         decimal.Decimal      `json:"total"`
	Status        entity.OrderStatus   `json:"status"`
	PaymentStatus entity.PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// Order state filters for ListOrdersForUser.
const (
	StateAll    = ""
	StateActive = "active"
	StatePast   = "past"
)

// ListOrdersForUser returns the newest orders of a user first.
func (r *OrderRepository) ListOrdersForUser(userID uint, state string, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	db := r.DB.Model(&entity.Order{}).
		Select("id, reference, restaurant_id, total, status, payment_status, created_at").
		Where("user_id = ?", userID)

	switch state {
	case StateActive:
		db = db.Where("status IN ?", []entity.OrderStatus{entity.StatusPending, entity.StatusPreparing, entity.StatusReady})
	case StatePast:
		db = db.Where("status IN ?", []entity.OrderStatus{entity.StatusDelivered, entity.StatusCancelled})
	}

	var out []OrderSummary
	err := db.Order("id DESC").Limit(limit).Scan(&out).Error
	return out, err
}

func (r *OrderRepository) GetOrderForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// OwnerOrderSummary is one row of a restaurant's order list.
type OwnerOrderSummary struct {
	ID           uint               `json:"id"`
	Reference    string             `json:"reference"`
	UserID       uint               `json:"userId"`
	CustomerName string             `json:"customerName"`
	Total        decimal.Decimal    `json:"total"`
	Status       entity.OrderStatus `json:"status"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// ListOrdersForRestaurant pages through the orders of one restaurant.
// An empty status means every status.
func (r *OrderRepository) ListOrdersForRestaurant(restID uint, status entity.OrderStatus, page, limit int) ([]OwnerOrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	dbCount := r.DB.Model(&entity.Order{}).Where("restaurant_id = ?", restID)
	if status != "" {
		dbCount = dbCount.Where("status = ?", status)
	}
	if err := dbCount.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db := r.DB.Table("orders AS o").
		Select("o.id, o.reference, o.user_id, u.name AS customer_name, o.total, o.status, o.created_at").
		Joins("JOIN users u ON u.id = o.user_id").
		Where("o.restaurant_id = ? AND o.deleted_at IS NULL", restID)
	if status != "" {
		db = db.Where("o.status = ?", status)
	}

	var out []OwnerOrderSummary
	if err := db.Order("o.id DESC").Limit(limit).Offset(offset).Scan(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// UpdateStatus overwrites the status. Any valid status may follow any other.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID uint, status entity.OrderStatus) error {
	res := r.DB.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReferenceExists is used to retry on the rare reference collision.
func (r *OrderRepository) ReferenceExists(ctx context.Context, ref string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&entity.Order{}).Where("reference = ?", ref).Count(&count).Error
	return count > 0, err
}
