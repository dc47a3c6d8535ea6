package controllers

import (
	"foodly/pkg/resp"
	"foodly/services"

	"github.com/gin-gonic/gin"
)

type RestaurantController struct {
	Service *services.RestaurantService
}

func NewRestaurantController(s *services.RestaurantService) *RestaurantController {
	return &RestaurantController{Service: s}
}

// GET /restaurants?cuisine=
func (ctl *RestaurantController) List(c *gin.Context) {
	rests, err := ctl.Service.List(c.Query("cuisine"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, rests)
}

// GET /restaurants/:id
func (ctl *RestaurantController) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rest, err := ctl.Service.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, rest)
}

// GET /restaurants/:id/menu?category=
func (ctl *RestaurantController) Menu(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	items, err := ctl.Service.Menu(id, c.Query("category"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /categories
func (ctl *RestaurantController) Categories(c *gin.Context) {
	cats, err := ctl.Service.Categories()
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, cats)
}
