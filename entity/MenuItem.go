package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuSize struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type MenuItem struct {
	gorm.Model
	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string          `gorm:"index" json:"category"`
	Sizes       []MenuSize      `gorm:"serializer:json" json:"sizes,omitempty"`
	IsAvailable bool            `gorm:"not null" json:"isAvailable"`
}

// PriceFor returns the price of a size, or the base price when size is empty.
func (m MenuItem) PriceFor(size string) (decimal.Decimal, bool) {
	if size == "" {
		return m.Price, true
	}
	for _, s := range m.Sizes {
		if s.Name == size {
			return s.Price, true
		}
	}
	return decimal.Zero, false
}
