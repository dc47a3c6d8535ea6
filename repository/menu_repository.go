package repository

import (
	"context"

	"foodly/entity"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// FindByRestaurant lists the menu of one restaurant, optionally one category.
func (r *MenuRepository) FindByRestaurant(restID uint, category string) ([]entity.MenuItem, error) {
	q := r.DB.Where("restaurant_id = ?", restID)
	if category != "" {
		q = q.Where("LOWER(category) = LOWER(?)", category)
	}
	var items []entity.MenuItem
	err := q.Order("id").Find(&items).Error
	return items, err
}

func (r *MenuRepository) FindByID(ctx context.Context, id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := r.DB.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// FindByIDs loads the given menu items keyed by id.
func (r *MenuRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]entity.MenuItem, error) {
	var items []entity.MenuItem
	if len(ids) > 0 {
		if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
			return nil, err
		}
	}
	out := make(map[uint]entity.MenuItem, len(items))
	for _, m := range items {
		out[m.ID] = m
	}
	return out, nil
}
