package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, code int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["password"] != "pw" {
			write(w, http.StatusUnauthorized, `{"ok":false,"error":"invalid credentials"}`)
			return
		}
		write(w, http.StatusOK, `{"ok":true,"data":{"token":"tok","user":{"id":12,"name":"Ann","email":"ann@x.io","isAdmin":false}}}`)
	})
	mux.HandleFunc("/restaurants/1", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, `{"ok":true,"data":{"ID":1,"name":"Flavors of Italy","deliveryFee":"3.99"}}`)
	})
	mux.HandleFunc("/restaurants/404", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusNotFound, `{"ok":false,"error":"not found"}`)
	})
	mux.HandleFunc("/restaurants/1/menu", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, `{"ok":true,"data":[{"ID":7,"restaurantId":1,"name":"Rotini","price":"4.50","isAvailable":true,
			"sizes":[{"name":"480g","price":"5.50"}]}]}`)
	})
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			write(w, http.StatusUnauthorized, `{"ok":false,"error":"missing or invalid token"}`)
			return
		}
		var req PlaceOrderRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Items) != 1 || req.Items[0].MenuItemID != 7 || req.Address.City != "Springfield" {
			write(w, http.StatusBadRequest, `{"ok":false,"error":"bad request"}`)
			return
		}
		write(w, http.StatusCreated, `{"ok":true,"data":{"id":3,"reference":"ORD-ABCDEF12","total":"15.54"}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLogin(t *testing.T) {
	c := New(fakeAPI(t).URL)
	ctx := context.Background()

	u, err := c.Login(ctx, "ann@x.io", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != "12" || u.Token != "tok" || u.Name != "Ann" {
		t.Errorf("user = %+v", u)
	}

	_, err = c.Login(ctx, "ann@x.io", "bad")
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.Status != http.StatusUnauthorized || apiErr.Message != "invalid credentials" {
		t.Errorf("err = %v", err)
	}
}

func TestDeliveryFee(t *testing.T) {
	c := New(fakeAPI(t).URL)
	ctx := context.Background()

	fee, found, err := c.DeliveryFee(ctx, "1")
	if err != nil || !found || !fee.Equal(decimal.RequireFromString("3.99")) {
		t.Errorf("fee=%s found=%v err=%v", fee, found, err)
	}
	fee, found, err = c.DeliveryFee(ctx, "404")
	if err != nil || found || !fee.IsZero() {
		t.Errorf("missing restaurant: fee=%s found=%v err=%v", fee, found, err)
	}
}

func TestMenuItem(t *testing.T) {
	c := New(fakeAPI(t).URL)
	ctx := context.Background()

	m, err := c.MenuItem(ctx, "1", "7")
	if err != nil {
		t.Fatal(err)
	}
	if p, ok := m.PriceFor("480g"); !ok || !p.Equal(decimal.RequireFromString("5.50")) {
		t.Errorf("size price = %s ok=%v", p, ok)
	}
	if _, err := c.MenuItem(ctx, "1", "8"); !IsNotFound(err) {
		t.Errorf("missing item: %v", err)
	}
}

func TestPlaceOrder_SendsToken(t *testing.T) {
	c := New(fakeAPI(t).URL)
	req := PlaceOrderRequest{RestaurantID: 1, Items: []OrderLine{{MenuItemID: 7, Quantity: 2}}}
	req.Address.City = "Springfield"

	if _, err := c.PlaceOrder(context.Background(), req); err == nil {
		t.Error("anonymous order accepted")
	}
	placed, err := c.WithToken("tok").PlaceOrder(context.Background(), req)
	if err != nil || placed.Reference != "ORD-ABCDEF12" {
		t.Errorf("placed = %+v err=%v", placed, err)
	}
}
