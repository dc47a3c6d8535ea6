package entity

import (
	"gorm.io/gorm"
)

// Category groups menu items ("Burgers", "Drinks", ...).
type Category struct {
	gorm.Model
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Icon string `json:"icon,omitempty"`
}
