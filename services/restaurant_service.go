package services

import (
	"foodly/entity"
	"foodly/repository"
)

// RestaurantService serves the read-only catalog.
type RestaurantService struct {
	Repo     *repository.RestaurantRepository
	MenuRepo *repository.MenuRepository
	CatRepo  *repository.CategoryRepository
}

func NewRestaurantService(repo *repository.RestaurantRepository, menuRepo *repository.MenuRepository, catRepo *repository.CategoryRepository) *RestaurantService {
	return &RestaurantService{Repo: repo, MenuRepo: menuRepo, CatRepo: catRepo}
}

func (s *RestaurantService) List(cuisine string) ([]entity.Restaurant, error) {
	return s.Repo.FindAll(cuisine)
}

func (s *RestaurantService) Get(id uint) (*entity.Restaurant, error) {
	return s.Repo.FindByID(id)
}

// Menu returns the menu of an existing restaurant.
func (s *RestaurantService) Menu(restID uint, category string) ([]entity.MenuItem, error) {
	if _, err := s.Repo.FindByID(restID); err != nil {
		return nil, err
	}
	return s.MenuRepo.FindByRestaurant(restID, category)
}

func (s *RestaurantService) Categories() ([]entity.Category, error) {
	return s.CatRepo.FindAll()
}
