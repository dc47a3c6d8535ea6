// Package pricing derives the amounts shown for a cart and at checkout.
//
// The cart page and the checkout page use different formulas: the cart
// page subtracts the discount and charges no tax, checkout adds a flat 5%
// tax and ignores the discount. Both are kept so totals match what
// customers already see on each page.
package pricing

import (
	"context"

	"github.com/shopspring/decimal"
)

// TaxRate is the flat checkout tax.
var TaxRate = decimal.RequireFromString("0.05")

// FeeSource resolves the delivery fee of a restaurant. found is false when
// the restaurant does not exist.
type FeeSource interface {
	DeliveryFee(ctx context.Context, restaurantID string) (fee decimal.Decimal, found bool, err error)
}

// CartSummary is the cart-page breakdown.
type CartSummary struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// CheckoutSummary is the checkout-page breakdown.
type CheckoutSummary struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

// ForCart computes subtotal + deliveryFee - discount.
func ForCart(subtotal, deliveryFee, discount decimal.Decimal) CartSummary {
	return CartSummary{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Discount:    discount,
		Total:       subtotal.Add(deliveryFee).Sub(discount),
	}
}

// ForCheckout computes subtotal + deliveryFee + tax, tax rounded to cents.
func ForCheckout(subtotal, deliveryFee decimal.Decimal) CheckoutSummary {
	tax := Tax(subtotal)
	return CheckoutSummary{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Tax:         tax,
		Total:       subtotal.Add(deliveryFee).Add(tax),
	}
}

func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate).Round(2)
}

// DeliveryFee returns 0 when there is no restaurant or it cannot be found.
func DeliveryFee(ctx context.Context, src FeeSource, restaurantID string) (decimal.Decimal, error) {
	if restaurantID == "" || src == nil {
		return decimal.Zero, nil
	}
	fee, found, err := src.DeliveryFee(ctx, restaurantID)
	if err != nil {
		return decimal.Zero, err
	}
	if !found {
		return decimal.Zero, nil
	}
	return fee, nil
}
