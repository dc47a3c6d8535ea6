package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"foodly/entity"
	"foodly/repository"
)

var refPattern = regexp.MustCompile(`^ORD-[0-9A-F]{8}$`)

func TestNewReference(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		ref := NewReference()
		if !refPattern.MatchString(ref) {
			t.Fatalf("bad reference %q", ref)
		}
		seen[ref] = true
	}
	if len(seen) < 99 {
		t.Errorf("references repeat too often: %d unique", len(seen))
	}
}

func TestValidateAddress_NamesMissingFields(t *testing.T) {
	addr := fullAddress()
	addr.Phone = ""
	addr.ZipCode = "   "

	err := ValidateAddress(addr)
	if !errors.Is(err, ErrMissingAddress) {
		t.Fatalf("err = %v", err)
	}
	if !strings.HasSuffix(err.Error(), "phone, zipCode") {
		t.Errorf("message = %q", err.Error())
	}
	if err := ValidateAddress(fullAddress()); err != nil {
		t.Errorf("complete address rejected: %v", err)
	}
}

func TestCheckout_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	salad := f.menuItem(t, "Caprese Salad")

	if _, err := f.orders.Checkout(ctx, 1, &CheckoutReq{Address: fullAddress()}); !errors.Is(err, ErrCartEmpty) {
		t.Errorf("empty cart: %v", err)
	}

	_, _ = f.carts.AddMenuItem(ctx, 1, salad.ID, "")

	noCity := fullAddress()
	noCity.City = ""
	if _, err := f.orders.Checkout(ctx, 1, &CheckoutReq{Address: noCity}); !errors.Is(err, ErrMissingAddress) {
		t.Errorf("missing city: %v", err)
	}
	if _, err := f.orders.Checkout(ctx, 1, &CheckoutReq{Address: fullAddress(), PaymentMethod: "cash"}); !errors.Is(err, ErrInvalidPayment) {
		t.Errorf("bad payment: %v", err)
	}

	if f.carts.Get(ctx, 1).ItemCount() != 1 {
		t.Error("rejected checkout touched the cart")
	}
	var count int64
	f.db.Model(&entity.Order{}).Count(&count)
	if count != 0 || len(f.notes.events) != 0 {
		t.Errorf("orders=%d events=%d", count, len(f.notes.events))
	}
}

func TestCheckout_PlacesOrderAndClearsCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer := f.user(t, "ann@x.io", entity.RoleCustomer)
	rotini := f.menuItem(t, "Rotini Delight")

	_, _ = f.carts.AddMenuItem(ctx, customer.ID, rotini.ID, "480g")
	_, _ = f.carts.AddMenuItem(ctx, customer.ID, rotini.ID, "480g")

	res, err := f.orders.Checkout(ctx, customer.ID, &CheckoutReq{Address: fullAddress()})
	if err != nil {
		t.Fatal(err)
	}
	// 2 x 5.50 = 11.00, fee 3.99, tax 0.55
	if !refPattern.MatchString(res.Reference) || !res.Total.Equal(dec("15.54")) {
		t.Errorf("result = %+v", res)
	}

	o, err := f.orders.GetForUser(customer.ID, res.ID)
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != entity.StatusPending || o.PaymentMethod != entity.PayCard || o.PaymentStatus != entity.PaymentPending {
		t.Errorf("order state = %s/%s/%s", o.Status, o.PaymentMethod, o.PaymentStatus)
	}
	if len(o.Items) != 1 || o.Items[0].MenuItemID != rotini.ID || o.Items[0].Quantity != 2 || o.Items[0].Size != "480g" {
		t.Errorf("items = %+v", o.Items)
	}
	if !o.Tax.Equal(dec("0.55")) || !o.Discount.IsZero() || o.Address.City != "Springfield" {
		t.Errorf("order = %+v", o)
	}

	if !f.carts.Get(ctx, customer.ID).IsEmpty() {
		t.Error("cart not cleared")
	}
	if len(f.notes.events) != 1 || f.notes.events[0].Type != EventOrderPlaced || f.notes.events[0].Reference != res.Reference {
		t.Errorf("events = %+v", f.notes.events)
	}
}

func TestCheckout_NotifierFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	f.notes.err = errors.New("queue down")
	ctx := context.Background()
	salad := f.menuItem(t, "Caprese Salad")

	_, _ = f.carts.AddMenuItem(ctx, 1, salad.ID, "")
	if _, err := f.orders.Checkout(ctx, 1, &CheckoutReq{Address: fullAddress(), PaymentMethod: entity.PayUPI}); err != nil {
		t.Fatalf("checkout failed on notifier error: %v", err)
	}
}

func TestCheckout_RechecksMenu(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	salad := f.menuItem(t, "Caprese Salad")

	if _, err := f.carts.AddMenuItem(ctx, 1, salad.ID, ""); err != nil {
		t.Fatal(err)
	}
	f.db.Model(&salad).Update("is_available", false)

	if _, err := f.orders.Checkout(ctx, 1, &CheckoutReq{Address: fullAddress()}); !errors.Is(err, ErrItemUnavailable) {
		t.Fatalf("err = %v, want ErrItemUnavailable", err)
	}
	if f.carts.Get(ctx, 1).ItemCount() != 1 || f.orderCount() != 0 {
		t.Error("rejected checkout stored an order or touched the cart")
	}
}

func TestCheckout_ChargesCurrentMenuPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer := f.user(t, "ann@x.io", entity.RoleCustomer)
	salad := f.menuItem(t, "Caprese Salad")

	_, _ = f.carts.AddMenuItem(ctx, customer.ID, salad.ID, "")
	f.db.Model(&salad).Update("price", dec("4.00"))

	res, err := f.orders.Checkout(ctx, customer.ID, &CheckoutReq{Address: fullAddress()})
	if err != nil {
		t.Fatal(err)
	}
	// 4.00 + 3.99 + 0.20
	if !res.Total.Equal(dec("8.19")) {
		t.Errorf("total = %s", res.Total)
	}
}

func TestCheckout_RetriesCartClear(t *testing.T) {
	f := newFixture(t)
	store := &flakyStore{Memory: f.store}
	f.wire(store)
	ctx := context.Background()
	customer := f.user(t, "ann@x.io", entity.RoleCustomer)
	salad := f.menuItem(t, "Caprese Salad")

	_, _ = f.carts.AddMenuItem(ctx, customer.ID, salad.ID, "")
	store.arm(1, false)

	res, err := f.orders.Checkout(ctx, customer.ID, &CheckoutReq{Address: fullAddress()})
	if err != nil {
		t.Fatal(err)
	}
	if res.CartKept || !f.carts.Get(ctx, customer.ID).IsEmpty() {
		t.Errorf("cartKept=%v cart=%+v", res.CartKept, f.carts.Get(ctx, customer.ID))
	}
}

func TestCheckout_FlagsCartThatCouldNotBeCleared(t *testing.T) {
	f := newFixture(t)
	store := &flakyStore{Memory: f.store}
	f.wire(store)
	ctx := context.Background()
	customer := f.user(t, "ann@x.io", entity.RoleCustomer)
	salad := f.menuItem(t, "Caprese Salad")

	_, _ = f.carts.AddMenuItem(ctx, customer.ID, salad.ID, "")
	store.arm(2, true)

	res, err := f.orders.Checkout(ctx, customer.ID, &CheckoutReq{Address: fullAddress()})
	if err != nil {
		t.Fatalf("stored order reported as failed: %v", err)
	}
	if !res.CartKept {
		t.Error("cartKept not set")
	}
	if f.orderCount() != 1 {
		t.Errorf("orders = %d", f.orderCount())
	}
}

func TestPlaceOrder_RepricesFromMenu(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	salad := f.menuItem(t, "Caprese Salad")

	res, err := f.orders.PlaceOrder(ctx, 1, &PlaceOrderReq{
		RestaurantID: salad.RestaurantID,
		Items:        []OrderLineIn{{MenuItemID: salad.ID, Quantity: 2}},
		Address:      fullAddress(),
	})
	if err != nil {
		t.Fatal(err)
	}
	// 7.00 + 3.99 + 0.35
	if !res.Total.Equal(dec("11.34")) {
		t.Errorf("total = %s", res.Total)
	}
}

func TestPlaceOrder_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	salad := f.menuItem(t, "Caprese Salad")
	biryani := f.menuItem(t, "Chicken Biryani")
	lemonade := f.menuItem(t, "Iced Lemonade")
	f.db.Model(&lemonade).Update("is_available", false)

	cases := map[string]struct {
		lines []OrderLineIn
		want  error
	}{
		"no lines":         {nil, ErrCartEmpty},
		"zero quantity":    {[]OrderLineIn{{MenuItemID: salad.ID, Quantity: 0}}, ErrInvalidQuantity},
		"other restaurant": {[]OrderLineIn{{MenuItemID: biryani.ID, Quantity: 1}}, ErrWrongRestaurant},
		"unavailable":      {[]OrderLineIn{{MenuItemID: lemonade.ID, Quantity: 1}}, ErrItemUnavailable},
		"unknown size":     {[]OrderLineIn{{MenuItemID: salad.ID, Size: "xl", Quantity: 1}}, ErrUnknownSize},
	}
	for name, tc := range cases {
		_, err := f.orders.PlaceOrder(ctx, 1, &PlaceOrderReq{
			RestaurantID: salad.RestaurantID,
			Items:        tc.lines,
			Address:      fullAddress(),
		})
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", name, err, tc.want)
		}
	}
}

func TestUpdateStatus_AnyToAnyForOwnerAndAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@x.io", entity.RoleRestaurant)
	stranger := f.user(t, "other@x.io", entity.RoleRestaurant)
	admin := f.user(t, "admin@x.io", entity.RoleAdmin)
	customer := f.user(t, "ann@x.io", entity.RoleCustomer)
	salad := f.menuItem(t, "Caprese Salad")
	f.db.Model(&entity.Restaurant{}).Where("id = ?", salad.RestaurantID).Update("owner_id", owner.ID)

	res, err := f.orders.PlaceOrder(ctx, customer.ID, &PlaceOrderReq{
		RestaurantID: salad.RestaurantID,
		Items:        []OrderLineIn{{MenuItemID: salad.ID, Quantity: 1}},
		Address:      fullAddress(),
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, st := range []entity.OrderStatus{entity.StatusDelivered, entity.StatusPending, entity.StatusCancelled, entity.StatusReady} {
		o, err := f.orders.UpdateStatus(ctx, owner.ID, owner.Role, res.ID, st)
		if err != nil || o.Status != st {
			t.Fatalf("owner -> %s: %v", st, err)
		}
	}
	if _, err := f.orders.UpdateStatus(ctx, admin.ID, admin.Role, res.ID, entity.StatusPreparing); err != nil {
		t.Errorf("admin: %v", err)
	}
	if _, err := f.orders.UpdateStatus(ctx, stranger.ID, stranger.Role, res.ID, entity.StatusReady); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger: %v", err)
	}
	if _, err := f.orders.UpdateStatus(ctx, owner.ID, owner.Role, res.ID, "shipped"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("unknown status: %v", err)
	}

	o, _ := f.orders.Repo.GetOrder(res.ID)
	if o.Status != entity.StatusPreparing {
		t.Errorf("stored status = %s", o.Status)
	}
	last := f.notes.events[len(f.notes.events)-1]
	if last.Type != EventStatusChanged || last.Status != string(entity.StatusPreparing) {
		t.Errorf("last event = %+v", last)
	}

	rows, total, err := f.orders.ListForRestaurant(ctx, owner.ID, owner.Role, salad.RestaurantID, "", 1, 20)
	if err != nil || total != 1 || len(rows) != 1 || rows[0].Reference != res.Reference {
		t.Errorf("owner list = %+v total=%d err=%v", rows, total, err)
	}
}

func TestListForUser_StateFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	salad := f.menuItem(t, "Caprese Salad")
	place := func() uint {
		res, err := f.orders.PlaceOrder(ctx, 5, &PlaceOrderReq{
			RestaurantID: salad.RestaurantID,
			Items:        []OrderLineIn{{MenuItemID: salad.ID, Quantity: 1}},
			Address:      fullAddress(),
		})
		if err != nil {
			t.Fatal(err)
		}
		return res.ID
	}
	first, second := place(), place()
	_ = f.orders.Repo.UpdateStatus(ctx, first, entity.StatusDelivered)

	all, _ := f.orders.ListForUser(5, repository.StateAll)
	active, _ := f.orders.ListForUser(5, repository.StateActive)
	past, _ := f.orders.ListForUser(5, repository.StatePast)

	if len(all) != 2 || all[0].ID != second {
		t.Errorf("all = %+v", all)
	}
	if len(active) != 1 || active[0].ID != second {
		t.Errorf("active = %+v", active)
	}
	if len(past) != 1 || past[0].ID != first || past[0].Status != entity.StatusDelivered {
		t.Errorf("past = %+v", past)
	}
	if _, err := f.orders.ListForUser(5, "soon"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("bad state: %v", err)
	}
	if other, _ := f.orders.ListForUser(6, ""); len(other) != 0 {
		t.Errorf("another user sees %d orders", len(other))
	}
}
