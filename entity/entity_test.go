package entity

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDeliveryAddress_Missing(t *testing.T) {
	a := DeliveryAddress{FullName: "Ann", Street: " ", City: "Springfield", State: "IL"}
	if got := a.Missing(); !reflect.DeepEqual(got, []string{"phone", "street", "zipCode"}) {
		t.Errorf("missing = %v", got)
	}
}

func TestOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		if !s.Valid() {
			t.Errorf("%s not valid", s)
		}
	}
	if OrderStatus("shipped").Valid() || OrderStatus("").Valid() {
		t.Error("unknown status accepted")
	}
	if !StatusReady.Active() || StatusDelivered.Active() || StatusCancelled.Active() {
		t.Error("active set wrong")
	}
}

func TestMenuItem_PriceFor(t *testing.T) {
	m := MenuItem{
		Price: decimal.RequireFromString("4.50"),
		Sizes: []MenuSize{{Name: "480g", Price: decimal.RequireFromString("5.50")}},
	}
	if p, ok := m.PriceFor(""); !ok || !p.Equal(m.Price) {
		t.Errorf("base = %s", p)
	}
	if p, ok := m.PriceFor("480g"); !ok || p.String() != "5.5" {
		t.Errorf("480g = %s", p)
	}
	if _, ok := m.PriceFor("1kg"); ok {
		t.Error("unknown size priced")
	}
}
