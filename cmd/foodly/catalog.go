package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRestaurantsCmd(a *app) *cobra.Command {
	var cuisine string
	cmd := &cobra.Command{
		Use:   "restaurants",
		Short: "List restaurants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rests, err := a.api.Restaurants(cmd.Context(), cuisine)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCUISINE\tRATING\tFEE\tTIME")
			for _, r := range rests {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.1f\t$%s\t%s\n",
					r.ID, r.Name, r.Cuisine, r.Rating, r.DeliveryFee.StringFixed(2), r.DeliveryTime)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&cuisine, "cuisine", "", "only this cuisine")
	return cmd
}

func newMenuCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "menu <restaurant-id>",
		Short: "Show a restaurant's menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.api.Menu(cmd.Context(), args[0], category)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSIZES")
			for _, m := range items {
				sizes := ""
				for i, s := range m.Sizes {
					if i > 0 {
						sizes += ", "
					}
					sizes += s.Name + " $" + s.Price.StringFixed(2)
				}
				name := m.Name
				if !m.IsAvailable {
					name += " (unavailable)"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t$%s\t%s\n", m.ID, name, m.Category, m.Price.StringFixed(2), sizes)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only this category")
	return cmd
}
