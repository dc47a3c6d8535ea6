package entity

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DeliveryAddress struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
}

// Missing lists the json names of the blank fields.
func (a DeliveryAddress) Missing() []string {
	var out []string
	for _, f := range []struct{ name, v string }{
		{"fullName", a.FullName},
		{"phone", a.Phone},
		{"street", a.Street},
		{"city", a.City},
		{"state", a.State},
		{"zipCode", a.ZipCode},
	} {
		if strings.TrimSpace(f.v) == "" {
			out = append(out, f.name)
		}
	}
	return out
}

type Order struct {
	gorm.Model
	Reference string `gorm:"size:32;uniqueIndex;not null" json:"reference"` // ORD-XXXXXXXX

	UserID       uint       `gorm:"index" json:"userId"`
	User         User       `json:"-"`
	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Items  []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	Status OrderStatus `gorm:"size:20;not null;default:pending;index" json:"status"`

	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	DeliveryFee decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"deliveryFee"`
	Discount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount"`
	Tax         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"tax"`
	Total       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`

	PaymentMethod PaymentMethod `gorm:"size:20" json:"paymentMethod"`
	PaymentStatus PaymentStatus `gorm:"size:20" json:"paymentStatus"`

	Address DeliveryAddress `gorm:"embedded;embeddedPrefix:address_" json:"address"`
}
