package entity

import (
	"gorm.io/gorm"
)

const (
	RoleCustomer   = "customer"
	RoleRestaurant = "restaurant"
	RoleAdmin      = "admin"
)

// User is a profile row. Restaurant owners have role "restaurant".
type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	Role     string `gorm:"not null;default:customer" json:"role"`

	Orders      []Order      `json:"-"`
	Restaurants []Restaurant `gorm:"foreignKey:OwnerID" json:"-"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
