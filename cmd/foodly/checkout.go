package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"foodly/client"
	"foodly/entity"
	"foodly/pkg/cart"
	"foodly/pkg/pricing"

	"github.com/spf13/cobra"
)

func newCheckoutCmd(a *app) *cobra.Command {
	var addr entity.DeliveryAddress
	var payment string
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if _, err := a.requireUser(); err != nil {
				return err
			}
			c := a.cart.Snapshot()
			if c.IsEmpty() {
				return errCartEmpty
			}
			if missing := addr.Missing(); len(missing) > 0 {
				return fmt.Errorf("please fill in: %s", strings.Join(missing, ", "))
			}

			req, err := orderRequest(c, addr, entity.PaymentMethod(payment))
			if err != nil {
				return err
			}
			sum := pricing.ForCheckout(c.Total(), a.deliveryFee(ctx, c.RestaurantID))
			fmt.Fprintf(a.out, "Subtotal $%s + delivery $%s + tax $%s = $%s\n",
				sum.Subtotal.StringFixed(2), sum.DeliveryFee.StringFixed(2),
				sum.Tax.StringFixed(2), sum.Total.StringFixed(2))

			placed, err := a.api.PlaceOrder(ctx, req)
			if err != nil {
				return err
			}
			if _, err := a.cart.Clear(ctx); err != nil {
				return fmt.Errorf("order %s placed but the cart was not cleared: %w", placed.Reference, err)
			}
			fmt.Fprintf(a.out, "Order %s placed. Total charged: $%s\n", placed.Reference, placed.Total.StringFixed(2))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&addr.FullName, "name", "", "recipient full name")
	f.StringVar(&addr.Phone, "phone", "", "contact phone")
	f.StringVar(&addr.Street, "street", "", "street address")
	f.StringVar(&addr.City, "city", "", "city")
	f.StringVar(&addr.State, "state", "", "state")
	f.StringVar(&addr.ZipCode, "zip", "", "zip code")
	f.StringVar(&payment, "payment", string(entity.PayCard), "card | upi | wallet")
	return cmd
}

// orderRequest turns cart lines back into menu references.
func orderRequest(c cart.Cart, addr entity.DeliveryAddress, pm entity.PaymentMethod) (client.PlaceOrderRequest, error) {
	restID, err := strconv.ParseUint(c.RestaurantID, 10, 64)
	if err != nil {
		return client.PlaceOrderRequest{}, fmt.Errorf("cart restaurant %q: %w", c.RestaurantID, err)
	}
	req := client.PlaceOrderRequest{
		RestaurantID:  uint(restID),
		Address:       addr,
		PaymentMethod: pm,
	}
	for _, it := range c.Items {
		menuID := strings.TrimSuffix(it.ID, "-"+it.Size)
		if it.Size == "" {
			menuID = it.ID
		}
		id, err := strconv.ParseUint(menuID, 10, 64)
		if err != nil {
			return client.PlaceOrderRequest{}, fmt.Errorf("cart line %q: %w", it.ID, err)
		}
		req.Items = append(req.Items, client.OrderLine{MenuItemID: uint(id), Size: it.Size, Quantity: it.Quantity})
	}
	return req, nil
}

func newOrdersCmd(a *app) *cobra.Command {
	var state string
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List your orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.requireUser(); err != nil {
				return err
			}
			orders, err := a.api.Orders(cmd.Context(), state)
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Fprintln(a.out, "No orders yet.")
				return nil
			}
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "REFERENCE\tSTATUS\tTOTAL\tPLACED")
			for _, o := range orders {
				fmt.Fprintf(w, "%s\t%s\t$%s\t%s\n",
					o.Reference, o.Status, o.Total.StringFixed(2), o.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "active | past")
	return cmd
}
