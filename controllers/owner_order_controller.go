package controllers

import (
	"strconv"

	"foodly/entity"
	"foodly/pkg/resp"
	"foodly/services"
	"foodly/utils"

	"github.com/gin-gonic/gin"
)

type OwnerOrderController struct{ Svc *services.OrderService }

func NewOwnerOrderController(s *services.OrderService) *OwnerOrderController {
	return &OwnerOrderController{Svc: s}
}

// GET /partner/restaurants/:id/orders?status=&page=&limit=
func (h *OwnerOrderController) List(c *gin.Context) {
	restID, ok := paramID(c, "id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	rows, total, err := h.Svc.ListForRestaurant(c.Request.Context(),
		utils.CurrentUserID(c), utils.CurrentRole(c),
		restID, entity.OrderStatus(c.Query("status")), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": rows, "total": total, "page": page, "limit": limit})
}

// PATCH /partner/orders/:id/status
func (h *OwnerOrderController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Status entity.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	o, err := h.Svc.UpdateStatus(c.Request.Context(), utils.CurrentUserID(c), utils.CurrentRole(c), id, body.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{"id": o.ID, "reference": o.Reference, "status": o.Status})
}
