// Package cart holds the restaurant-scoped shopping cart and its persistence.
package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Cart is an ordered list of lines that all belong to RestaurantID.
// An empty cart has no restaurant.
type Cart struct {
	Items        []Item
	RestaurantID string
}

// AddItem adds one unit of it. The incoming quantity is ignored.
// An item from another restaurant replaces the whole cart.
func (c *Cart) AddItem(it Item) {
	it.Quantity = 1

	if c.RestaurantID != "" && it.RestaurantID != c.RestaurantID {
		c.Items = []Item{it}
		c.RestaurantID = it.RestaurantID
		return
	}
	if c.RestaurantID == "" {
		c.RestaurantID = it.RestaurantID
	}

	if i := c.index(it.ID); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	c.Items = append(c.Items, it)
}

// UpdateQuantity sets the quantity of a line. qty <= 0 removes the line.
func (c *Cart) UpdateQuantity(itemID string, qty int) {
	if qty <= 0 {
		c.RemoveItem(itemID)
		return
	}
	if i := c.index(itemID); i >= 0 {
		c.Items[i].Quantity = qty
	}
}

// RemoveItem drops a line; removing the last line clears the restaurant.
func (c *Cart) RemoveItem(itemID string) {
	i := c.index(itemID)
	if i < 0 {
		return
	}
	c.Items = append(c.Items[:i:i], c.Items[i+1:]...)
	if len(c.Items) == 0 {
		c.Items = nil
		c.RestaurantID = ""
	}
}

func (c *Cart) Clear() {
	c.Items = nil
	c.RestaurantID = ""
}

func (c Cart) IsEmpty() bool { return len(c.Items) == 0 }

// ItemCount is the sum of quantities.
func (c Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Total is the sum of price*quantity over all lines.
func (c Cart) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.Items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// Find returns the line with the given id.
func (c Cart) Find(itemID string) (Item, bool) {
	if i := c.index(itemID); i >= 0 {
		return c.Items[i], true
	}
	return Item{}, false
}

// Clone returns a copy that shares no backing array with c.
func (c Cart) Clone() Cart {
	out := Cart{RestaurantID: c.RestaurantID}
	if len(c.Items) > 0 {
		out.Items = make([]Item, len(c.Items))
		copy(out.Items, c.Items)
	}
	return out
}

func (c Cart) index(itemID string) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// normalize enforces the cart invariants on data read from storage.
func (c *Cart) normalize() {
	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.Quantity < 1 || it.ID == "" {
			continue
		}
		if c.RestaurantID == "" {
			c.RestaurantID = it.RestaurantID
		}
		if it.RestaurantID != c.RestaurantID {
			continue
		}
		kept = append(kept, it)
	}
	c.Items = kept
	if len(c.Items) == 0 {
		c.Items = nil
		c.RestaurantID = ""
	}
}

// record is the stored shape: {"items": [...], "restaurantId": "..." | null}.
type record struct {
	Items        []Item  `json:"items"`
	RestaurantID *string `json:"restaurantId"`
}

func (c Cart) MarshalJSON() ([]byte, error) {
	rec := record{Items: c.Items}
	if rec.Items == nil {
		rec.Items = []Item{}
	}
	if c.RestaurantID != "" {
		id := c.RestaurantID
		rec.RestaurantID = &id
	}
	return json.Marshal(rec)
}

func (c *Cart) UnmarshalJSON(b []byte) error {
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return err
	}
	c.Items = rec.Items
	c.RestaurantID = ""
	if rec.RestaurantID != nil {
		c.RestaurantID = *rec.RestaurantID
	}
	if len(c.Items) == 0 {
		c.Items = nil
	}
	return nil
}
