package configs

import (
	"foodly/entity"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the first admin from ADMIN_EMAIL / ADMIN_PASSWORD.
func SeedAdmin(db *gorm.DB, cfg *Config, log *zap.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Info("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Name:     "Admin",
		Email:    cfg.AdminEmail,
		Password: string(hash),
		Role:     entity.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Info("admin seeded", zap.String("email", admin.Email))
	return nil
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// SeedCatalog fills an empty database with the demo restaurants and menus.
func SeedCatalog(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&entity.Restaurant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []entity.Category{
		{Name: "Main Dishes", Icon: "utensils"},
		{Name: "Vegan", Icon: "leaf"},
		{Name: "Street Food", Icon: "food-truck"},
		{Name: "Desserts", Icon: "ice-cream"},
		{Name: "Drinks", Icon: "coffee"},
	}

	restaurants := []entity.Restaurant{
		{
			Name: "Flavors of Italy", Cuisine: "Italian", Rating: 4.7, DeliveryTime: "25-35 min",
			Description: "Authentic Italian cuisine with fresh pasta and wood-fired pizza",
			DeliveryFee: money("3.99"),
			MenuItems: []entity.MenuItem{
				{Name: "Rotini Delight", Category: "Pasta", Price: money("4.50"), IsAvailable: true,
					Sizes: []entity.MenuSize{{Name: "380g", Price: money("4.50")}, {Name: "480g", Price: money("5.50")}, {Name: "560g", Price: money("6.50")}}},
				{Name: "Caprese Salad", Category: "Salad", Price: money("3.50"), IsAvailable: true},
				{Name: "Tomato Sauce", Category: "Sauce", Price: money("0.75"), IsAvailable: true},
				{Name: "Iced Lemonade", Category: "Drinks", Price: money("1.50"), IsAvailable: true},
			},
		},
		{
			Name: "Spice Garden", Cuisine: "Indian", Rating: 4.5, DeliveryTime: "30-40 min",
			Description: "Aromatic curries and biryanis", DeliveryFee: money("2.99"),
			MenuItems: []entity.MenuItem{
				{Name: "Chicken Biryani", Category: "Rice", Price: money("4.50"), IsAvailable: true},
				{Name: "Crust Supreme", Category: "Oven-Baked", Price: money("5.50"), IsAvailable: true},
			},
		},
		{
			Name: "Tokyo Bento", Cuisine: "Japanese", Rating: 4.6, DeliveryTime: "20-30 min",
			Description: "Bento boxes, sushi and ramen", DeliveryFee: money("4.50"),
			MenuItems: []entity.MenuItem{
				{Name: "Gleam Breeze", Category: "Drinks", Price: money("2.15"), IsAvailable: true},
			},
		},
		{
			Name: "Green Bistro", Cuisine: "Vegetarian", Rating: 4.4, DeliveryTime: "15-25 min",
			Description: "Plant-based bowls and salads", DeliveryFee: money("2.50"),
		},
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}
		return tx.Create(&restaurants).Error
	})
	if err != nil {
		return err
	}
	log.Info("demo catalog seeded", zap.Int("restaurants", len(restaurants)))
	return nil
}
