package controllers

import (
	"foodly/pkg/resp"
	"foodly/services"
	"foodly/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	view, err := h.Svc.View(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, view)
}

// GET /cart/checkout
func (h *CartController) Checkout(c *gin.Context) {
	sum, err := h.Svc.CheckoutSummary(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, sum)
}

// POST /cart/items
func (h *CartController) Add(c *gin.Context) {
	var body struct {
		MenuItemID uint   `json:"menuItemId" binding:"required"`
		Size       string `json:"size"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cart, err := h.Svc.AddMenuItem(c.Request.Context(), utils.CurrentUserID(c), body.MenuItemID, body.Size)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, cart)
}

// PATCH /cart/items/:itemId
func (h *CartController) UpdateQty(c *gin.Context) {
	var body struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cart, err := h.Svc.UpdateQuantity(c.Request.Context(), utils.CurrentUserID(c), c.Param("itemId"), *body.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, cart)
}

// DELETE /cart/items/:itemId
func (h *CartController) RemoveItem(c *gin.Context) {
	cart, err := h.Svc.RemoveItem(c.Request.Context(), utils.CurrentUserID(c), c.Param("itemId"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, cart)
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	cart, err := h.Svc.Clear(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, cart)
}
