// Package client talks to the foodly API on behalf of the command line.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"foodly/entity"
	"foodly/pkg/identity"

	"github.com/shopspring/decimal"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Token   string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// WithToken returns a copy that authenticates as token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.Token = token
	return &cp
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return &APIError{Status: res.StatusCode, Message: "unreadable response"}
	}
	if res.StatusCode >= 300 || !env.OK {
		return &APIError{Status: res.StatusCode, Message: env.Error}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// ----- auth -----

type authUser struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

type authResult struct {
	Token string   `json:"token"`
	User  authUser `json:"user"`
}

func (r authResult) identity() identity.User {
	return identity.User{
		ID:      strconv.FormatUint(uint64(r.User.ID), 10),
		Name:    r.User.Name,
		Email:   r.User.Email,
		IsAdmin: r.User.IsAdmin,
		Token:   r.Token,
	}
}

// Login implements identity.Provider.
func (c *Client) Login(ctx context.Context, email, password string) (identity.User, error) {
	var out authResult
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return identity.User{}, err
	}
	return out.identity(), nil
}

// Signup implements identity.Provider.
func (c *Client) Signup(ctx context.Context, name, email, password string) (identity.User, error) {
	var out authResult
	in := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &out); err != nil {
		return identity.User{}, err
	}
	return out.identity(), nil
}

// ----- catalog -----

type Restaurant struct {
	ID           uint            `json:"ID"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Cuisine      string          `json:"cuisine"`
	Rating       float64         `json:"rating"`
	DeliveryFee  decimal.Decimal `json:"deliveryFee"`
	DeliveryTime string          `json:"deliveryTime"`
}

type MenuItem struct {
	ID           uint              `json:"ID"`
	RestaurantID uint              `json:"restaurantId"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Image        string            `json:"image"`
	Price        decimal.Decimal   `json:"price"`
	Category     string            `json:"category"`
	Sizes        []entity.MenuSize `json:"sizes"`
	IsAvailable  bool              `json:"isAvailable"`
}

// PriceFor returns the price of size, the base price for "".
func (m MenuItem) PriceFor(size string) (decimal.Decimal, bool) {
	return entity.MenuItem{Price: m.Price, Sizes: m.Sizes}.PriceFor(size)
}

func (c *Client) Restaurants(ctx context.Context, cuisine string) ([]Restaurant, error) {
	path := "/restaurants"
	if cuisine != "" {
		path += "?cuisine=" + url.QueryEscape(cuisine)
	}
	var out []Restaurant
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) Restaurant(ctx context.Context, id string) (Restaurant, error) {
	var out Restaurant
	err := c.do(ctx, http.MethodGet, "/restaurants/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) Menu(ctx context.Context, restaurantID, category string) ([]MenuItem, error) {
	path := "/restaurants/" + url.PathEscape(restaurantID) + "/menu"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var out []MenuItem
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// MenuItem finds one item on a restaurant's menu.
func (c *Client) MenuItem(ctx context.Context, restaurantID, itemID string) (MenuItem, error) {
	items, err := c.Menu(ctx, restaurantID, "")
	if err != nil {
		return MenuItem{}, err
	}
	for _, m := range items {
		if strconv.FormatUint(uint64(m.ID), 10) == itemID {
			return m, nil
		}
	}
	return MenuItem{}, &APIError{Status: http.StatusNotFound, Message: "menu item " + itemID + " not found"}
}

// DeliveryFee implements pricing.FeeSource.
func (c *Client) DeliveryFee(ctx context.Context, restaurantID string) (decimal.Decimal, bool, error) {
	r, err := c.Restaurant(ctx, restaurantID)
	if IsNotFound(err) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	return r.DeliveryFee, true, nil
}

// ----- orders -----

type OrderLine struct {
	MenuItemID uint   `json:"menuItemId"`
	Size       string `json:"size,omitempty"`
	Quantity   int    `json:"quantity"`
}

type PlaceOrderRequest struct {
	RestaurantID  uint                   `json:"restaurantId"`
	Items         []OrderLine            `json:"items"`
	Address       entity.DeliveryAddress `json:"address"`
	PaymentMethod entity.PaymentMethod   `json:"paymentMethod,omitempty"`
}

type PlacedOrder struct {
	ID        uint            `json:"id"`
	Reference string          `json:"reference"`
	Total     decimal.Decimal `json:"total"`
}

type OrderSummary struct {
	ID            uint                 `json:"id"`
	Reference     string               `json:"reference"`
	RestaurantID  uint                 `json:"restaurantId"`
	Total         decimal.Decimal      `json:"total"`
	Status        entity.OrderStatus   `json:"status"`
	PaymentStatus entity.PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time            `json:"createdAt"`
}

func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (PlacedOrder, error) {
	var out PlacedOrder
	err := c.do(ctx, http.MethodPost, "/orders", req, &out)
	return out, err
}

func (c *Client) Orders(ctx context.Context, state string) ([]OrderSummary, error) {
	path := "/orders"
	if state != "" {
		path += "?state=" + url.QueryEscape(state)
	}
	var out []OrderSummary
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}
