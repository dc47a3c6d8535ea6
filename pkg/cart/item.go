package cart

import "github.com/shopspring/decimal"

// Item is one line of the cart. ID is unique per product and size.
type Item struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Image        string          `json:"image,omitempty"`
	Size         string          `json:"size,omitempty"`
	RestaurantID string          `json:"restaurantId"`
}

// LineID builds the line identifier for a menu item and an optional size.
func LineID(menuItemID, size string) string {
	if size == "" {
		return menuItemID
	}
	return menuItemID + "-" + size
}

// LineTotal is price times quantity.
func (it Item) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
