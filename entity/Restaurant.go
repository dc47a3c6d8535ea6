package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Image        string          `json:"image"`
	Cuisine      string          `gorm:"index" json:"cuisine"`
	Rating       float64         `json:"rating"`
	DeliveryFee  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"deliveryFee"`
	DeliveryTime string          `json:"deliveryTime"` // e.g. "25-35 min"

	OwnerID *uint `json:"ownerId,omitempty"`
	Owner   *User `json:"-"`

	MenuItems []MenuItem `json:"-"`
	Orders    []Order    `json:"-"`
}
