package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrMissingAddress     = errors.New("missing address fields")
	ErrInvalidPayment     = errors.New("unknown payment method")
	ErrInvalidStatus      = errors.New("unknown order status")
	ErrInvalidState       = errors.New("unknown order state")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrForbidden          = errors.New("forbidden")
	ErrItemUnavailable    = errors.New("menu item is not available")
	ErrUnknownSize        = errors.New("unknown size for menu item")
	ErrWrongRestaurant    = errors.New("menu item belongs to another restaurant")
)

func missingAddress(fields []string) error {
	return fmt.Errorf("%w: %s", ErrMissingAddress, strings.Join(fields, ", "))
}
