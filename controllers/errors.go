package controllers

import (
	"errors"
	"strconv"

	"foodly/pkg/resp"
	"foodly/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// writeError maps service errors onto the response envelope.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "not found")
	case errors.Is(err, services.ErrInvalidCredentials):
		resp.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCartEmpty),
		errors.Is(err, services.ErrMissingAddress),
		errors.Is(err, services.ErrInvalidPayment),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrItemUnavailable),
		errors.Is(err, services.ErrUnknownSize),
		errors.Is(err, services.ErrWrongRestaurant):
		resp.BadRequest(c, err.Error())
	default:
		_ = c.Error(err)
		resp.ServerError(c, err)
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
