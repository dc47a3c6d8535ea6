package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is a snapshot of a cart line at checkout.
type OrderItem struct {
	gorm.Model
	OrderID    uint            `gorm:"index" json:"-"`
	MenuItemID uint            `json:"menuItemId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity   int             `json:"quantity"`
	Size       string          `json:"size,omitempty"`
}
