package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func item(id, price, restaurant string) Item {
	return Item{ID: id, Name: "item " + id, Price: decimal.RequireFromString(price), RestaurantID: restaurant}
}

func TestAddItem_SameLineTwice(t *testing.T) {
	var c Cart
	c.AddItem(item("a", "4.50", "r1"))
	c.AddItem(item("a", "4.50", "r1"))

	if len(c.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", c.Items[0].Quantity)
	}
	if !c.Total().Equal(decimal.RequireFromString("9.00")) {
		t.Errorf("expected total 9.00, got %s", c.Total())
	}
	if c.RestaurantID != "r1" {
		t.Errorf("expected restaurant r1, got %q", c.RestaurantID)
	}
}

func TestAddItem_IgnoresIncomingQuantity(t *testing.T) {
	var c Cart
	it := item("a", "1.00", "r1")
	it.Quantity = 7
	c.AddItem(it)

	if c.Items[0].Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", c.Items[0].Quantity)
	}
}

func TestAddItem_CountEqualsCalls(t *testing.T) {
	ids := []string{"a", "b", "a", "c", "b", "a", "d"}
	var c Cart
	for i, id := range ids {
		c.AddItem(item(id, "2.25", "r1"))
		if c.ItemCount() != i+1 {
			t.Fatalf("after %d adds item count is %d", i+1, c.ItemCount())
		}
	}
	if len(c.Items) != 4 {
		t.Errorf("expected 4 lines, got %d", len(c.Items))
	}
	// insertion order
	for i, want := range []string{"a", "b", "c", "d"} {
		if c.Items[i].ID != want {
			t.Errorf("line %d: expected %s, got %s", i, want, c.Items[i].ID)
		}
	}
}

func TestAddItem_OtherRestaurantReplacesCart(t *testing.T) {
	var c Cart
	c.AddItem(item("a", "4.50", "r1"))
	c.AddItem(item("x", "1.00", "r1"))
	c.AddItem(item("x", "1.00", "r1"))

	c.AddItem(item("b", "3.00", "r2"))

	if len(c.Items) != 1 || c.Items[0].ID != "b" || c.Items[0].Quantity != 1 {
		t.Fatalf("expected only b@1, got %+v", c.Items)
	}
	if c.RestaurantID != "r2" {
		t.Errorf("expected restaurant r2, got %q", c.RestaurantID)
	}
}

func TestUpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		qty       int
		wantLines int
		wantQty   int
		wantRest  string
	}{
		{"absolute set", 5, 1, 5, "r1"},
		{"zero removes", 0, 0, 0, ""},
		{"negative removes", -1, 0, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cart
			c.AddItem(item("a", "4.50", "r1"))
			c.AddItem(item("a", "4.50", "r1"))

			c.UpdateQuantity("a", tt.qty)

			if len(c.Items) != tt.wantLines {
				t.Fatalf("expected %d lines, got %d", tt.wantLines, len(c.Items))
			}
			if tt.wantLines > 0 && c.Items[0].Quantity != tt.wantQty {
				t.Errorf("expected quantity %d, got %d", tt.wantQty, c.Items[0].Quantity)
			}
			if c.RestaurantID != tt.wantRest {
				t.Errorf("expected restaurant %q, got %q", tt.wantRest, c.RestaurantID)
			}
		})
	}
}

func TestUpdateQuantity_NonPositiveMatchesRemove(t *testing.T) {
	build := func() Cart {
		var c Cart
		c.AddItem(item("a", "1.00", "r1"))
		c.AddItem(item("b", "2.00", "r1"))
		return c
	}
	removed := build()
	removed.RemoveItem("a")

	for _, qty := range []int{0, -1} {
		c := build()
		c.UpdateQuantity("a", qty)
		if len(c.Items) != len(removed.Items) || c.Items[0].ID != removed.Items[0].ID || c.RestaurantID != removed.RestaurantID {
			t.Errorf("UpdateQuantity(a, %d) = %+v, RemoveItem(a) = %+v", qty, c, removed)
		}
	}
}

func TestUpdateQuantity_UnknownIsNoop(t *testing.T) {
	var c Cart
	c.AddItem(item("a", "1.00", "r1"))
	c.UpdateQuantity("zzz", 3)
	c.UpdateQuantity("zzz", 0)

	if c.ItemCount() != 1 || c.RestaurantID != "r1" {
		t.Errorf("unexpected cart %+v", c)
	}
}

func TestRemoveItem(t *testing.T) {
	var c Cart
	c.AddItem(item("a", "1.00", "r1"))
	c.AddItem(item("b", "2.00", "r1"))

	c.RemoveItem("a")
	if c.RestaurantID != "r1" {
		t.Errorf("removing a non-last line changed restaurant to %q", c.RestaurantID)
	}

	c.RemoveItem("missing")
	if len(c.Items) != 1 {
		t.Errorf("removing a missing line changed the cart: %+v", c.Items)
	}

	c.RemoveItem("b")
	if !c.IsEmpty() || c.RestaurantID != "" {
		t.Errorf("expected empty cart without restaurant, got %+v", c)
	}
}

func TestClearAndEmptyDerivations(t *testing.T) {
	var c Cart
	if c.ItemCount() != 0 || !c.Total().IsZero() {
		t.Fatalf("empty cart: count %d total %s", c.ItemCount(), c.Total())
	}

	c.AddItem(item("a", "1.00", "r1"))
	c.Clear()
	if !c.IsEmpty() || c.RestaurantID != "" || c.ItemCount() != 0 || !c.Total().IsZero() {
		t.Errorf("expected cleared cart, got %+v", c)
	}
}

func TestTotalSumsLines(t *testing.T) {
	var c Cart
	c.AddItem(item("a", "4.50", "r1"))
	c.AddItem(item("b", "0.99", "r1"))
	c.UpdateQuantity("b", 3)

	want := decimal.RequireFromString("7.47")
	if !c.Total().Equal(want) {
		t.Errorf("expected %s, got %s", want, c.Total())
	}
	if c.ItemCount() != 4 {
		t.Errorf("expected 4, got %d", c.ItemCount())
	}
}

func TestRemoveItem_DoesNotAliasClone(t *testing.T) {
	var c Cart
	c.AddItem(item("a", "1.00", "r1"))
	c.AddItem(item("b", "1.00", "r1"))
	c.AddItem(item("c", "1.00", "r1"))
	snap := c.Clone()

	c.RemoveItem("a")

	if snap.Items[0].ID != "a" || len(snap.Items) != 3 {
		t.Errorf("snapshot changed: %+v", snap.Items)
	}
}

func TestLineID(t *testing.T) {
	if got := LineID("12", ""); got != "12" {
		t.Errorf("got %q", got)
	}
	if got := LineID("12", "Large"); got != "12-Large" {
		t.Errorf("got %q", got)
	}
}
