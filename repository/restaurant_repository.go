package repository

import (
	"context"
	"errors"
	"strconv"

	"foodly/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

// FindAll lists restaurants, best rated first. An empty cuisine means all.
func (r *RestaurantRepository) FindAll(cuisine string) ([]entity.Restaurant, error) {
	q := r.DB.Order("rating desc").Order("id")
	if cuisine != "" {
		q = q.Where("LOWER(cuisine) = LOWER(?)", cuisine)
	}
	var rests []entity.Restaurant
	err := q.Find(&rests).Error
	return rests, err
}

func (r *RestaurantRepository) FindByID(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

// IsOwner reports whether userID owns the restaurant.
func (r *RestaurantRepository) IsOwner(restaurantID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.Restaurant{}).
		Where("id = ? AND owner_id = ?", restaurantID, userID).
		Count(&count).Error
	return count > 0, err
}

// DeliveryFee looks a restaurant up by its string id, as carts carry it.
func (r *RestaurantRepository) DeliveryFee(ctx context.Context, restaurantID string) (decimal.Decimal, bool, error) {
	id, err := strconv.ParseUint(restaurantID, 10, 64)
	if err != nil {
		return decimal.Zero, false, nil
	}
	var rest entity.Restaurant
	err = r.DB.WithContext(ctx).Select("id", "delivery_fee").First(&rest, uint(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	return rest.DeliveryFee, true, nil
}
