package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"foodly/pkg/cart"
	"foodly/pkg/pricing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printCart(cmd.Context())
		},
	}
	cmd.AddCommand(newCartAddCmd(a), newCartUpdateCmd(a), newCartRemoveCmd(a), newCartClearCmd(a))
	return cmd
}

func newCartAddCmd(a *app) *cobra.Command {
	var size string
	cmd := &cobra.Command{
		Use:   "add <restaurant-id> <menu-item-id>",
		Short: "Add one unit of a menu item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := a.api.MenuItem(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if !m.IsAvailable {
				return fmt.Errorf("%s is not available right now", m.Name)
			}
			price, ok := m.PriceFor(size)
			if !ok {
				return fmt.Errorf("%s has no size %q", m.Name, size)
			}

			before := a.cart.Snapshot().RestaurantID
			c, err := a.cart.AddItem(ctx, cart.Item{
				ID:           cart.LineID(args[1], size),
				Name:         m.Name,
				Price:        price,
				Image:        m.Image,
				Size:         size,
				RestaurantID: args[0],
			})
			if err != nil {
				return err
			}
			if before != "" && before != c.RestaurantID {
				fmt.Fprintln(a.out, "Your cart had items from another restaurant; it now holds only this item.")
			}
			fmt.Fprintf(a.out, "Added %s. %d item(s) in cart.\n", m.Name, c.ItemCount())
			return nil
		},
	}
	cmd.Flags().StringVar(&size, "size", "", "size name, e.g. 480g")
	return cmd
}

func newCartUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <line-id> <quantity>",
		Short: "Set the quantity of a line; 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity %q is not a number", args[1])
			}
			c, err := a.cart.UpdateQuantity(cmd.Context(), args[0], qty)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%d item(s) in cart.\n", c.ItemCount())
			return nil
		},
	}
}

func newCartRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <line-id>",
		Short: "Remove a line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.cart.RemoveItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%d item(s) in cart.\n", c.ItemCount())
			return nil
		},
	}
}

func newCartClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.cart.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Cart cleared.")
			return nil
		},
	}
}

// deliveryFee falls back to zero when the API cannot be reached, the cart
// stays usable offline.
func (a *app) deliveryFee(ctx context.Context, restaurantID string) decimal.Decimal {
	fee, err := pricing.DeliveryFee(ctx, a.api, restaurantID)
	if err != nil {
		a.log.Warn("delivery fee unavailable", zap.String("restaurant", restaurantID), zap.Error(err))
		return decimal.Zero
	}
	return fee
}

func (a *app) printCart(ctx context.Context) error {
	c := a.cart.Snapshot()
	if c.IsEmpty() {
		fmt.Fprintln(a.out, "Your cart is empty.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LINE\tITEM\tQTY\tPRICE\tTOTAL")
	for _, it := range c.Items {
		name := it.Name
		if it.Size != "" {
			name += " (" + it.Size + ")"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t$%s\t$%s\n",
			it.ID, name, it.Quantity, it.Price.StringFixed(2), it.LineTotal().StringFixed(2))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	sum := pricing.ForCart(c.Total(), a.deliveryFee(ctx, c.RestaurantID), decimal.Zero)
	fmt.Fprintf(a.out, "\nSubtotal      $%s\n", sum.Subtotal.StringFixed(2))
	fmt.Fprintf(a.out, "Delivery fee  $%s\n", sum.DeliveryFee.StringFixed(2))
	fmt.Fprintf(a.out, "Total         $%s\n", sum.Total.StringFixed(2))
	return nil
}

var errCartEmpty = errors.New("your cart is empty")
